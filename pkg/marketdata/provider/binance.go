package provider

import (
	"context"
	"fmt"
	"strconv"
	"time"

	binance "github.com/adshao/go-binance/v2"
	"github.com/rxtech-lab/coin-signal/internal/types"
	"github.com/rxtech-lab/coin-signal/pkg/errors"
)

// BinanceKlinesLimit is the largest page the klines endpoint serves.
const BinanceKlinesLimit = 1000

// KlinesFetcher fetches one page of klines.
type KlinesFetcher interface {
	FetchKlines(ctx context.Context, symbol string, interval string, startTime int64, endTime int64, limit int) ([]*binance.Kline, error)
}

// binanceKlinesFetcher is the KlinesFetcher backed by the public REST API.
type binanceKlinesFetcher struct {
	client *binance.Client
}

func (f *binanceKlinesFetcher) FetchKlines(ctx context.Context, symbol string, interval string, startTime int64, endTime int64, limit int) ([]*binance.Kline, error) {
	return f.client.NewKlinesService().
		Symbol(symbol).
		Interval(interval).
		StartTime(startTime).
		EndTime(endTime).
		Limit(limit).
		Do(ctx)
}

type BinanceClient struct {
	fetcher    KlinesFetcher
	onProgress OnDownloadProgress
}

// NewBinanceClient creates a provider for Binance spot klines. The public market
// data endpoints need no credentials.
func NewBinanceClient(baseURL string, onProgress OnDownloadProgress) *BinanceClient {
	client := binance.NewClient("", "")
	if baseURL != "" {
		client.BaseURL = baseURL
	}

	return NewBinanceClientWithFetcher(&binanceKlinesFetcher{client: client}, onProgress)
}

// NewBinanceClientWithFetcher creates a provider over an arbitrary klines fetcher.
func NewBinanceClientWithFetcher(fetcher KlinesFetcher, onProgress OnDownloadProgress) *BinanceClient {
	return &BinanceClient{
		fetcher:    fetcher,
		onProgress: onProgress,
	}
}

func (c *BinanceClient) Exchange() types.Exchange {
	return types.ExchangeBinance
}

// Download pages through the klines of the window. Each page starts one
// millisecond after the close time of the previous page's last kline.
func (c *BinanceClient) Download(ctx context.Context, params DownloadParams) ([]types.Candle, error) {
	interval, err := binanceInterval(params.Timeframe)
	if err != nil {
		return nil, err
	}

	startMillis := params.Start.UnixMilli()
	endMillis := params.End.UnixMilli()
	cursor := startMillis

	candles := make([]types.Candle, 0)

	for cursor <= endMillis {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeMarketDataFetch, "download cancelled", err)
		}

		klines, err := c.fetcher.FetchKlines(ctx, params.Symbol, interval, cursor, endMillis, BinanceKlinesLimit)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrCodeMarketDataFetch, err, "failed to fetch %s klines from Binance", params.Symbol)
		}

		page, err := convertKlines(klines, params)
		if err != nil {
			return nil, err
		}

		candles = append(candles, page...)

		if c.onProgress != nil {
			c.onProgress(float64(cursor-startMillis), float64(endMillis-startMillis), fmt.Sprintf("Downloading %s klines from Binance", params.Symbol))
		}

		// A short page is the last one
		if len(klines) < BinanceKlinesLimit {
			break
		}

		cursor = klines[len(klines)-1].CloseTime + 1
	}

	if c.onProgress != nil {
		c.onProgress(float64(endMillis-startMillis), float64(endMillis-startMillis), fmt.Sprintf("Downloaded %d %s klines", len(candles), params.Symbol))
	}

	return candles, nil
}

// convertKlines turns Binance klines into candles, dropping any that open
// outside the requested window.
func convertKlines(klines []*binance.Kline, params DownloadParams) ([]types.Candle, error) {
	candles := make([]types.Candle, 0, len(klines))

	for _, k := range klines {
		openTime := time.UnixMilli(k.OpenTime).UTC()
		if openTime.Before(params.Start) || openTime.After(params.End) {
			continue
		}

		values, err := parsePrices(k.Open, k.High, k.Low, k.Close, k.Volume)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrCodeMarketDataParse, err, "invalid kline at %d", k.OpenTime)
		}

		candles = append(candles, types.Candle{
			Exchange:  types.ExchangeBinance,
			Symbol:    params.Symbol,
			Timeframe: params.Timeframe,
			OpenTime:  openTime,
			Open:      values[0],
			High:      values[1],
			Low:       values[2],
			Close:     values[3],
			Volume:    values[4],
		})
	}

	return candles, nil
}

func parsePrices(raw ...string) ([]float64, error) {
	values := make([]float64, len(raw))

	for i, r := range raw {
		v, err := strconv.ParseFloat(r, 64)
		if err != nil {
			return nil, err
		}

		values[i] = v
	}

	return values, nil
}

// binanceInterval maps a timeframe onto a Binance interval string.
// Ref: https://binance-docs.github.io/apidocs/spot/en/#kline-candlestick-data
func binanceInterval(timeframe types.Timeframe) (string, error) {
	switch timeframe {
	case types.Timeframe1m, types.Timeframe3m, types.Timeframe5m, types.Timeframe15m,
		types.Timeframe30m, types.Timeframe1h, types.Timeframe4h, types.Timeframe1d:
		return string(timeframe), nil
	default:
		return "", errors.Newf(errors.ErrCodeUnknownTimeframe, "unsupported timeframe for Binance: %s", timeframe)
	}
}
