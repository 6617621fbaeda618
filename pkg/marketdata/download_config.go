package marketdata

import (
	"encoding/json"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/coin-signal/internal/types"
	"github.com/rxtech-lab/coin-signal/pkg/errors"
)

// DownloadConfig is the user facing form of a download request. Times are RFC3339.
type DownloadConfig struct {
	Symbol    string `json:"symbol" yaml:"symbol" jsonschema:"title=Symbol,description=The trading pair to download (e.g. BTCUSDT),required" validate:"required"`
	Timeframe string `json:"timeframe" yaml:"timeframe" jsonschema:"title=Timeframe,description=Candle width,required,enum=1m,enum=3m,enum=5m,enum=15m,enum=30m,enum=1h,enum=4h,enum=1d" validate:"required,oneof=1m 3m 5m 15m 30m 1h 4h 1d"`
	Start     string `json:"start" yaml:"start" jsonschema:"title=Start,description=First open time (inclusive),format=date-time,required" validate:"required"`
	End       string `json:"end" yaml:"end" jsonschema:"title=End,description=Last open time (inclusive),format=date-time,required" validate:"required"`
}

// Validate validates the DownloadConfig fields and time formats.
func (c *DownloadConfig) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid download config", err)
	}

	start, err := time.Parse(time.RFC3339, c.Start)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid start format, expected RFC3339", err)
	}

	end, err := time.Parse(time.RFC3339, c.End)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid end format, expected RFC3339", err)
	}

	if !end.After(start) {
		return errors.New(errors.ErrCodeInvalidConfiguration, "end must be after start")
	}

	return nil
}

// ToDownloadParams converts a validated DownloadConfig to DownloadParams.
func (c *DownloadConfig) ToDownloadParams() (DownloadParams, error) {
	if err := c.Validate(); err != nil {
		return DownloadParams{}, err
	}

	start, _ := time.Parse(time.RFC3339, c.Start)
	end, _ := time.Parse(time.RFC3339, c.End)

	return DownloadParams{
		Symbol:    c.Symbol,
		Timeframe: types.Timeframe(c.Timeframe),
		Start:     start.UTC(),
		End:       end.UTC(),
	}, nil
}

// ParseDownloadConfig parses JSON into a validated DownloadConfig.
func ParseDownloadConfig(jsonConfig string) (*DownloadConfig, error) {
	var config DownloadConfig
	if err := json.Unmarshal([]byte(jsonConfig), &config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse JSON config", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}
