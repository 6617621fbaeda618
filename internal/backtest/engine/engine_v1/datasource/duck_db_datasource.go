package datasource

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/rxtech-lab/coin-signal/internal/logger"
	"github.com/rxtech-lab/coin-signal/internal/types"
	"github.com/rxtech-lab/coin-signal/pkg/errors"
	"go.uber.org/zap"
)

// DuckDBDataSource reads candles from parquet files through DuckDB.
// Files carry the columns exchange, symbol, timeframe, open_time (unix
// milliseconds), open, high, low, close and volume.
type DuckDBDataSource struct {
	db     *sql.DB
	logger *logger.Logger
	sq     squirrel.StatementBuilderType
}

// NewDataSource creates a DuckDB data source backed by the database at path.
// Use ":memory:" for a throwaway database. Call Initialize to attach parquet files.
func NewDataSource(path string, logger *logger.Logger) (*DuckDBDataSource, error) {
	if path == ":memory:" {
		path = ""
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataSourceUnavailable, "failed to open duckdb", err)
	}

	return &DuckDBDataSource{
		db:     db,
		logger: logger,
		sq:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}, nil
}

// Initialize exposes the parquet files matching pattern as the candles view.
func (d *DuckDBDataSource) Initialize(pattern string) error {
	d.logger.Debug("Initializing DuckDB data source", zap.String("pattern", pattern))

	_, err := d.db.Exec(`DROP VIEW IF EXISTS candles;`)
	if err != nil {
		return errors.Wrap(errors.ErrCodeDataSourceUnavailable, "failed to drop existing view", err)
	}

	// Squirrel has no CREATE VIEW support
	query := fmt.Sprintf(`
		CREATE VIEW candles AS
		SELECT exchange, symbol, timeframe, open_time, open, high, low, close, volume
		FROM read_parquet('%s');
	`, strings.ReplaceAll(pattern, "'", "''"))

	if _, err := d.db.Exec(query); err != nil {
		return errors.Wrapf(errors.ErrCodeDataSourceUnavailable, err, "failed to read parquet files %q", pattern)
	}

	return nil
}

// GetCandles implements CandleSource.
func (d *DuckDBDataSource) GetCandles(ctx context.Context, exchange types.Exchange, symbol string, timeframe types.Timeframe, start time.Time, end time.Time) ([]types.Candle, error) {
	query, args, err := d.sq.
		Select("open_time", "open", "high", "low", "close", "volume").
		From("candles").
		Where(squirrel.Eq{
			"exchange":  string(exchange),
			"symbol":    symbol,
			"timeframe": string(timeframe),
		}).
		Where(squirrel.GtOrEq{"open_time": start.UnixMilli()}).
		Where(squirrel.LtOrEq{"open_time": end.UnixMilli()}).
		OrderBy("open_time ASC").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build candle query", err)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query candles", err)
	}
	defer rows.Close()

	candles := make([]types.Candle, 0)

	for rows.Next() {
		var (
			openTime                       int64
			open, high, low, close, volume float64
		)

		if err := rows.Scan(&openTime, &open, &high, &low, &close, &volume); err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan candle", err)
		}

		candles = append(candles, types.Candle{
			Exchange:  exchange,
			Symbol:    symbol,
			Timeframe: timeframe,
			OpenTime:  time.UnixMilli(openTime).UTC(),
			Open:      open,
			High:      high,
			Low:       low,
			Close:     close,
			Volume:    volume,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to iterate candles", err)
	}

	d.logger.Debug("Loaded candles",
		zap.String("exchange", string(exchange)),
		zap.String("symbol", symbol),
		zap.String("timeframe", string(timeframe)),
		zap.Int("count", len(candles)),
	)

	return normalize(candles), nil
}

// Close closes the data source and releases any resources
func (d *DuckDBDataSource) Close() error {
	return d.db.Close()
}
