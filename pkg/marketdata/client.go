package marketdata

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/coin-signal/internal/storage"
	"github.com/rxtech-lab/coin-signal/pkg/errors"
	"github.com/rxtech-lab/coin-signal/pkg/marketdata/provider"
	"github.com/rxtech-lab/coin-signal/pkg/marketdata/writer"
)

// WriterType defines the type of market data writer.
type WriterType string

const (
	// WriterStore upserts into the configured candle store
	WriterStore WriterType = "store"
	// WriterParquet writes a parquet file with parquet-go
	WriterParquet WriterType = "parquet"
	// WriterDuckDB stages candles in DuckDB and exports parquet with COPY
	WriterDuckDB WriterType = "duckdb"
)

// ClientConfig holds the configuration for the market data client.
type ClientConfig struct {
	ProviderType provider.ProviderType `validate:"required,oneof=binance"`
	WriterType   WriterType            `validate:"required,oneof=store parquet duckdb"`
	// DataPath is a parquet file, or a directory that receives a generated file name.
	// Unused by the store writer.
	DataPath string `validate:"required_unless=WriterType store"`
	// BaseURL overrides the provider endpoint
	BaseURL string
}

// DownloadParams holds the parameters for a market data download request.
type DownloadParams = provider.DownloadParams

// Client is the market data client responsible for downloading data from providers and storing it using writers.
type Client struct {
	provider provider.Provider
	store    storage.CandleStore
	config   ClientConfig
	validate *validator.Validate
}

// NewClient creates a new market data client with the given configuration.
// store is required by the store writer and ignored otherwise.
func NewClient(config ClientConfig, store storage.CandleStore, onProgress provider.OnDownloadProgress) (*Client, error) {
	marketProvider, err := provider.NewMarketDataProvider(config.ProviderType, config.BaseURL, onProgress)
	if err != nil {
		return nil, err
	}

	return NewClientWithProvider(config, marketProvider, store)
}

// NewClientWithProvider creates a client over an existing provider.
func NewClientWithProvider(config ClientConfig, marketProvider provider.Provider, store storage.CandleStore) (*Client, error) {
	validate := validator.New()
	if err := validate.Struct(config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid client configuration", err)
	}

	if config.WriterType == WriterStore && store == nil {
		return nil, errors.New(errors.ErrCodeInvalidConfiguration, "store writer requires a candle store")
	}

	return &Client{
		provider: marketProvider,
		store:    store,
		config:   config,
		validate: validate,
	}, nil
}

// Download fetches the window from the provider and hands every candle to a
// fresh writer. It returns where the candles ended up.
// The context can be used to cancel the download operation.
func (c *Client) Download(ctx context.Context, params DownloadParams) (string, error) {
	if err := c.validate.Struct(params); err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidParameter, "invalid download parameters", err)
	}

	candles, err := c.provider.Download(ctx, params)
	if err != nil {
		return "", err
	}

	marketWriter, err := c.setupWriter(params)
	if err != nil {
		return "", err
	}
	defer marketWriter.Close()

	if err := marketWriter.Initialize(); err != nil {
		return "", err
	}

	for _, candle := range candles {
		if err := marketWriter.Write(candle); err != nil {
			return "", err
		}
	}

	return marketWriter.Finalize()
}

// setupWriter creates the writer selected by the configuration.
func (c *Client) setupWriter(params DownloadParams) (writer.MarketDataWriter, error) {
	switch c.config.WriterType {
	case WriterStore:
		return writer.NewStoreWriter(c.store, "store"), nil
	case WriterParquet:
		return writer.NewParquetWriter(c.outputPath(params)), nil
	case WriterDuckDB:
		return writer.NewDuckDBWriter(c.outputPath(params)), nil
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidConfiguration, "unsupported writer type: %s", c.config.WriterType)
	}
}

// outputPath constructs EXCHANGE_SYMBOL_START_END_TIMEFRAME.parquet under DataPath
// unless DataPath already names a parquet file.
func (c *Client) outputPath(params DownloadParams) string {
	if strings.HasSuffix(c.config.DataPath, ".parquet") {
		return c.config.DataPath
	}

	name := fmt.Sprintf("%s_%s_%s_%s_%s.parquet",
		c.provider.Exchange(),
		params.Symbol,
		params.Start.Format("2006-01-02"),
		params.End.Format("2006-01-02"),
		params.Timeframe)

	return filepath.Join(c.config.DataPath, name)
}
