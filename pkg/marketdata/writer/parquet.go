package writer

import (
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"
	"github.com/rxtech-lab/coin-signal/internal/types"
	"github.com/rxtech-lab/coin-signal/pkg/errors"
)

// ParquetWriter buffers candles and writes them as one parquet file on Finalize.
type ParquetWriter struct {
	outputPath  string
	rows        []CandleRow
	initialized bool
}

func NewParquetWriter(outputPath string) MarketDataWriter {
	return &ParquetWriter{
		outputPath:  outputPath,
		rows:        nil,
		initialized: false,
	}
}

// Initialize creates the parent directory of the output file.
func (w *ParquetWriter) Initialize() error {
	if err := os.MkdirAll(filepath.Dir(w.outputPath), 0o755); err != nil {
		return errors.Wrapf(errors.ErrCodeMarketDataWrite, err, "failed to create directory for %s", w.outputPath)
	}

	w.rows = make([]CandleRow, 0)
	w.initialized = true

	return nil
}

func (w *ParquetWriter) Write(candle types.Candle) error {
	if !w.initialized {
		return errors.New(errors.ErrCodeMarketDataWrite, "writer not initialized")
	}

	w.rows = append(w.rows, NewCandleRow(candle))

	return nil
}

func (w *ParquetWriter) Finalize() (string, error) {
	if !w.initialized {
		return "", errors.New(errors.ErrCodeMarketDataWrite, "writer not initialized")
	}

	if err := parquet.WriteFile(w.outputPath, w.rows); err != nil {
		return "", errors.Wrapf(errors.ErrCodeMarketDataWrite, err, "failed to write %s", w.outputPath)
	}

	return w.outputPath, nil
}

func (w *ParquetWriter) Close() error {
	w.rows = nil
	w.initialized = false

	return nil
}

func (w *ParquetWriter) GetOutputPath() string {
	return w.outputPath
}

// ReadParquetCandles loads every candle of a file written by ParquetWriter or DuckDBWriter.
func ReadParquetCandles(path string) ([]types.Candle, error) {
	rows, err := parquet.ReadFile[CandleRow](path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeMarketDataParse, err, "failed to read %s", path)
	}

	candles := make([]types.Candle, len(rows))
	for i, row := range rows {
		candles[i] = row.Candle()
	}

	return candles, nil
}
