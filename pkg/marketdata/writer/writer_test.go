package writer

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rxtech-lab/coin-signal/internal/logger"
	"github.com/rxtech-lab/coin-signal/internal/storage"
	"github.com/rxtech-lab/coin-signal/internal/types"
	"github.com/rxtech-lab/coin-signal/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type WriterTestSuite struct {
	suite.Suite
	tempDir string
	start   time.Time
}

func TestWriterSuite(t *testing.T) {
	suite.Run(t, new(WriterTestSuite))
}

func (suite *WriterTestSuite) SetupTest() {
	suite.tempDir = suite.T().TempDir()
	suite.start = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
}

func (suite *WriterTestSuite) candles(n int) []types.Candle {
	candles := make([]types.Candle, n)
	for i := range candles {
		price := 100 + float64(i)
		candles[i] = types.Candle{
			Exchange:  types.ExchangeBinance,
			Symbol:    "BTCUSDT",
			Timeframe: types.Timeframe1h,
			OpenTime:  suite.start.Add(time.Duration(i) * time.Hour),
			Open:      price,
			High:      price + 1,
			Low:       price - 1,
			Close:     price + 0.5,
			Volume:    float64(10 + i),
		}
	}

	return candles
}

func (suite *WriterTestSuite) writeAll(w MarketDataWriter, candles []types.Candle) string {
	suite.Require().NoError(w.Initialize())
	defer w.Close()

	for _, c := range candles {
		suite.Require().NoError(w.Write(c))
	}

	path, err := w.Finalize()
	suite.Require().NoError(err)

	return path
}

func (suite *WriterTestSuite) TestCandleRowRoundTrip() {
	candle := suite.candles(1)[0]

	row := NewCandleRow(candle)
	suite.Equal(suite.start.UnixMilli(), row.OpenTime)
	suite.Equal("binance", row.Exchange)
	suite.Equal(candle, row.Candle())
}

func (suite *WriterTestSuite) TestParquetWriter() {
	outputPath := filepath.Join(suite.tempDir, "nested", "btc.parquet")
	candles := suite.candles(25)

	w := NewParquetWriter(outputPath)
	suite.Equal(outputPath, w.GetOutputPath())
	suite.Equal(outputPath, suite.writeAll(w, candles))

	read, err := ReadParquetCandles(outputPath)
	suite.Require().NoError(err)
	suite.Equal(candles, read)
}

func (suite *WriterTestSuite) TestDuckDBWriter() {
	outputPath := filepath.Join(suite.tempDir, "btc_duckdb.parquet")
	candles := suite.candles(25)

	// Written out of order; the export sorts by open time
	shuffled := append([]types.Candle{}, candles[10:]...)
	shuffled = append(shuffled, candles[:10]...)

	suite.Equal(outputPath, suite.writeAll(NewDuckDBWriter(outputPath), shuffled))

	read, err := ReadParquetCandles(outputPath)
	suite.Require().NoError(err)
	suite.Equal(candles, read)
}

func (suite *WriterTestSuite) TestFileWritersCreateMissingDirectories() {
	candles := suite.candles(5)

	writers := []struct {
		name string
		path string
		new  func(string) MarketDataWriter
	}{
		{"parquet", filepath.Join(suite.tempDir, "parquet", "nested", "btc.parquet"), NewParquetWriter},
		{"duckdb", filepath.Join(suite.tempDir, "duckdb", "nested", "btc.parquet"), NewDuckDBWriter},
	}

	for _, tc := range writers {
		suite.Run(tc.name, func() {
			suite.Equal(tc.path, suite.writeAll(tc.new(tc.path), candles))

			read, err := ReadParquetCandles(tc.path)
			suite.Require().NoError(err)
			suite.Equal(candles, read)
		})
	}
}

func (suite *WriterTestSuite) TestStoreWriter() {
	store, err := storage.NewSQLStore(storage.DriverSQLite, ":memory:", logger.NewNopLogger())
	suite.Require().NoError(err)
	defer store.Close()

	candles := suite.candles(DefaultStoreBatchSize + 37)
	w := NewStoreWriter(store, "sqlite3::memory:")

	suite.Equal("sqlite3::memory:", suite.writeAll(w, candles))
	suite.Equal(len(candles), w.Written())

	stored, err := store.GetCandles(context.Background(), types.ExchangeBinance, "BTCUSDT", types.Timeframe1h,
		candles[0].OpenTime, candles[len(candles)-1].OpenTime)
	suite.Require().NoError(err)
	suite.Len(stored, len(candles))
}

func (suite *WriterTestSuite) TestWriteBeforeInitialize() {
	writers := []struct {
		name   string
		writer MarketDataWriter
	}{
		{"parquet", NewParquetWriter(filepath.Join(suite.tempDir, "a.parquet"))},
		{"duckdb", NewDuckDBWriter(filepath.Join(suite.tempDir, "b.parquet"))},
		{"store", NewStoreWriter(nil, "")},
	}

	for _, tc := range writers {
		suite.Run(tc.name, func() {
			err := tc.writer.Write(suite.candles(1)[0])
			suite.True(errors.HasCode(err, errors.ErrCodeMarketDataWrite))

			_, err = tc.writer.Finalize()
			suite.True(errors.HasCode(err, errors.ErrCodeMarketDataWrite))
		})
	}

	suite.True(errors.HasCode(NewStoreWriter(nil, "").Initialize(), errors.ErrCodeMarketDataWrite))
}
