package provider

import (
	"context"
	"time"

	"github.com/rxtech-lab/coin-signal/internal/types"
	"github.com/rxtech-lab/coin-signal/pkg/errors"
)

// ProviderType defines the type of market data provider.
type ProviderType string

const (
	ProviderBinance ProviderType = "binance"
)

// OnDownloadProgress reports how far a download has come. current and total
// share a unit chosen by the provider.
type OnDownloadProgress = func(current float64, total float64, message string)

// DownloadParams holds the parameters for a market data download request.
// Both bounds are inclusive open times.
type DownloadParams struct {
	Symbol    string          `validate:"required"`
	Timeframe types.Timeframe `validate:"required,oneof=1m 3m 5m 15m 30m 1h 4h 1d"`
	Start     time.Time       `validate:"required"`
	End       time.Time       `validate:"required,gtfield=Start"`
}

type Provider interface {
	// Exchange returns the venue stamped onto downloaded candles
	Exchange() types.Exchange
	// Download fetches every candle whose open time falls in the window, ascending.
	// The context can be used to cancel the download operation.
	Download(ctx context.Context, params DownloadParams) ([]types.Candle, error)
}

// NewMarketDataProvider creates a new market data provider based on the provider type.
// baseURL overrides the provider's default endpoint when not empty.
func NewMarketDataProvider(providerType ProviderType, baseURL string, onProgress OnDownloadProgress) (Provider, error) {
	switch providerType {
	case ProviderBinance:
		return NewBinanceClient(baseURL, onProgress), nil
	default:
		return nil, errors.Newf(errors.ErrCodeUnsupportedFetch, "unsupported market data provider: %s", providerType)
	}
}
