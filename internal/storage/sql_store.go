package storage

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rxtech-lab/coin-signal/internal/logger"
	"github.com/rxtech-lab/coin-signal/internal/types"
	"github.com/rxtech-lab/coin-signal/pkg/errors"
	"go.uber.org/zap"
)

// upsertBatchSize keeps multi-row inserts under the SQLite variable limit.
const upsertBatchSize = 500

var candleColumns = []string{"exchange", "symbol", "timeframe", "open_time", "open", "high", "low", "close", "volume"}

var runColumns = []string{
	"run_id", "model_name", "exchange", "symbol", "timeframe", "start_time", "end_time",
	"initial_capital", "final_equity", "total_return_pct", "max_drawdown_pct", "win_rate_pct",
	"trade_count", "engine_version", "created_at",
}

var tradeColumns = []string{
	"run_id", "seq", "exchange", "symbol", "entry_time", "exit_time", "entry_price", "exit_price",
	"quantity", "gross_pnl", "net_pnl", "fee_paid", "reason",
}

// SQLStore implements CandleStore and ResultStore over database/sql.
// Instants are stored as unix milliseconds so both drivers share one schema.
type SQLStore struct {
	db     *sql.DB
	driver Driver
	logger *logger.Logger
	sq     squirrel.StatementBuilderType
}

// NewSQLStore opens dsn with driver and creates the tables if needed.
// An empty dsn or ":memory:" opens a private in-memory database.
func NewSQLStore(driver Driver, dsn string, logger *logger.Logger) (*SQLStore, error) {
	if _, err := ParseDriver(string(driver)); err != nil {
		return nil, err
	}

	if driver == DriverDuckDB && dsn == ":memory:" {
		dsn = ""
	}

	if driver == DriverSQLite && dsn == "" {
		dsn = ":memory:"
	}

	db, err := sql.Open(string(driver), dsn)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeStorageInitFailed, err, "failed to open %s database", driver)
	}

	if driver == DriverSQLite {
		// every sqlite connection to :memory: is its own database
		db.SetMaxOpenConns(1)
	}

	store := &SQLStore{
		db:     db,
		driver: driver,
		logger: logger,
		sq:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}

	if err := store.Initialize(); err != nil {
		db.Close()

		return nil, err
	}

	return store, nil
}

// Initialize creates the candle and result tables
func (s *SQLStore) Initialize() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS candles (
			exchange TEXT NOT NULL,
			symbol TEXT NOT NULL,
			timeframe TEXT NOT NULL,
			open_time BIGINT NOT NULL,
			open DOUBLE NOT NULL,
			high DOUBLE NOT NULL,
			low DOUBLE NOT NULL,
			close DOUBLE NOT NULL,
			volume DOUBLE NOT NULL,
			PRIMARY KEY (exchange, symbol, timeframe, open_time)
		)`,
		`CREATE TABLE IF NOT EXISTS backtest_runs (
			run_id TEXT PRIMARY KEY,
			model_name TEXT NOT NULL,
			exchange TEXT NOT NULL,
			symbol TEXT NOT NULL,
			timeframe TEXT NOT NULL,
			start_time BIGINT NOT NULL,
			end_time BIGINT NOT NULL,
			initial_capital DOUBLE NOT NULL,
			final_equity DOUBLE NOT NULL,
			total_return_pct DOUBLE NOT NULL,
			max_drawdown_pct DOUBLE NOT NULL,
			win_rate_pct DOUBLE NOT NULL,
			trade_count INTEGER NOT NULL,
			engine_version TEXT NOT NULL,
			created_at BIGINT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS backtest_trades (
			run_id TEXT NOT NULL,
			seq INTEGER NOT NULL,
			exchange TEXT NOT NULL,
			symbol TEXT NOT NULL,
			entry_time BIGINT NOT NULL,
			exit_time BIGINT NOT NULL,
			entry_price DOUBLE NOT NULL,
			exit_price DOUBLE NOT NULL,
			quantity DOUBLE NOT NULL,
			gross_pnl DOUBLE NOT NULL,
			net_pnl DOUBLE NOT NULL,
			fee_paid DOUBLE NOT NULL,
			reason TEXT NOT NULL,
			PRIMARY KEY (run_id, seq)
		)`,
	}

	for _, statement := range statements {
		if _, err := s.db.Exec(statement); err != nil {
			return errors.Wrap(errors.ErrCodeStorageInitFailed, "failed to create tables", err)
		}
	}

	return nil
}

// UpsertCandles inserts candles, replacing existing rows with the same
// (exchange, symbol, timeframe, open_time).
func (s *SQLStore) UpsertCandles(ctx context.Context, candles []types.Candle) error {
	candles = dedupCandles(candles)
	if len(candles) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(errors.ErrCodePersistFailed, "failed to begin transaction", err)
	}

	for start := 0; start < len(candles); start += upsertBatchSize {
		end := min(start+upsertBatchSize, len(candles))

		insert := s.sq.Insert("candles").Columns(candleColumns...)
		for _, c := range candles[start:end] {
			insert = insert.Values(string(c.Exchange), c.Symbol, string(c.Timeframe), c.OpenTime.UnixMilli(),
				c.Open, c.High, c.Low, c.Close, c.Volume)
		}

		insert = insert.Suffix(`ON CONFLICT (exchange, symbol, timeframe, open_time) DO UPDATE SET
			open = excluded.open, high = excluded.high, low = excluded.low,
			close = excluded.close, volume = excluded.volume`)

		query, args, err := insert.ToSql()
		if err != nil {
			tx.Rollback()

			return errors.Wrap(errors.ErrCodePersistFailed, "failed to build candle upsert", err)
		}

		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			tx.Rollback()

			return errors.Wrap(errors.ErrCodePersistFailed, "failed to upsert candles", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(errors.ErrCodePersistFailed, "failed to commit candles", err)
	}

	s.logger.Debug("Upserted candles", zap.Int("count", len(candles)))

	return nil
}

// GetCandles returns candles with start <= open_time <= end, ascending.
func (s *SQLStore) GetCandles(ctx context.Context, exchange types.Exchange, symbol string, timeframe types.Timeframe, start time.Time, end time.Time) ([]types.Candle, error) {
	query, args, err := s.sq.
		Select(candleColumns[3:]...).
		From("candles").
		Where(squirrel.Eq{"exchange": string(exchange), "symbol": symbol, "timeframe": string(timeframe)}).
		Where(squirrel.GtOrEq{"open_time": start.UnixMilli()}).
		Where(squirrel.LtOrEq{"open_time": end.UnixMilli()}).
		OrderBy("open_time ASC").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build candle query", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query candles", err)
	}
	defer rows.Close()

	candles := make([]types.Candle, 0)

	for rows.Next() {
		candle := types.Candle{Exchange: exchange, Symbol: symbol, Timeframe: timeframe}

		var openTime int64
		if err := rows.Scan(&openTime, &candle.Open, &candle.High, &candle.Low, &candle.Close, &candle.Volume); err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan candle", err)
		}

		candle.OpenTime = fromMillis(openTime)
		candles = append(candles, candle)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to iterate candles", err)
	}

	return candles, nil
}

// SaveRun writes the run and its trades in one transaction.
func (s *SQLStore) SaveRun(ctx context.Context, run types.Run, trades []types.Trade) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(errors.ErrCodePersistFailed, "failed to begin transaction", err)
	}

	if err := s.saveRun(ctx, tx, run, trades); err != nil {
		tx.Rollback()

		return err
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrapf(errors.ErrCodePersistFailed, err, "failed to commit run %s", run.RunID)
	}

	s.logger.Debug("Saved run", zap.String("run_id", run.RunID), zap.Int("trades", len(trades)))

	return nil
}

func (s *SQLStore) saveRun(ctx context.Context, tx *sql.Tx, run types.Run, trades []types.Trade) error {
	query, args, err := s.sq.Insert("backtest_runs").
		Columns(runColumns...).
		Values(run.RunID, run.ModelName, string(run.Exchange), run.Symbol, string(run.Timeframe),
			run.StartTime.UnixMilli(), run.EndTime.UnixMilli(),
			run.InitialCapital, run.FinalEquity, run.TotalReturnPct, run.MaxDrawdownPct, run.WinRatePct,
			run.TradeCount, run.EngineVersion, run.CreatedAt.UnixMilli()).
		ToSql()
	if err != nil {
		return errors.Wrap(errors.ErrCodePersistFailed, "failed to build run insert", err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrapf(errors.ErrCodePersistFailed, err, "failed to insert run %s", run.RunID)
	}

	for start := 0; start < len(trades); start += upsertBatchSize {
		end := min(start+upsertBatchSize, len(trades))

		insert := s.sq.Insert("backtest_trades").Columns(tradeColumns...)
		for i, t := range trades[start:end] {
			insert = insert.Values(run.RunID, start+i, string(t.Exchange), t.Symbol,
				t.EntryTime.UnixMilli(), t.ExitTime.UnixMilli(), t.EntryPrice, t.ExitPrice,
				t.Quantity, t.GrossPnL, t.NetPnL, t.FeePaid, string(t.Reason))
		}

		query, args, err := insert.ToSql()
		if err != nil {
			return errors.Wrap(errors.ErrCodePersistFailed, "failed to build trade insert", err)
		}

		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return errors.Wrapf(errors.ErrCodePersistFailed, err, "failed to insert trades of run %s", run.RunID)
		}
	}

	return nil
}

// ListRuns returns runs newest first.
func (s *SQLStore) ListRuns(ctx context.Context, page Page) ([]types.Run, error) {
	page = page.normalize(DefaultRunsLimit)

	query, args, err := s.sq.Select(runColumns...).
		From("backtest_runs").
		OrderBy("created_at DESC", "run_id DESC").
		Limit(uint64(page.Limit)).
		Offset(uint64(page.Offset)).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build run query", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query runs", err)
	}
	defer rows.Close()

	runs := make([]types.Run, 0)

	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}

		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to iterate runs", err)
	}

	return runs, nil
}

// GetRun returns one run by id.
func (s *SQLStore) GetRun(ctx context.Context, runID string) (types.Run, error) {
	query, args, err := s.sq.Select(runColumns...).
		From("backtest_runs").
		Where(squirrel.Eq{"run_id": runID}).
		ToSql()
	if err != nil {
		return types.Run{}, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build run query", err)
	}

	run, err := scanRun(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return types.Run{}, errors.Newf(errors.ErrCodeRunNotFound, "run %s not found", runID)
	}

	if err != nil {
		return types.Run{}, err
	}

	return run, nil
}

// ListTrades returns the trades of a run, most recent exit first.
func (s *SQLStore) ListTrades(ctx context.Context, runID string, page Page) ([]types.Trade, error) {
	page = page.normalize(DefaultTradesLimit)

	query, args, err := s.sq.Select(tradeColumns...).
		From("backtest_trades").
		Where(squirrel.Eq{"run_id": runID}).
		OrderBy("exit_time DESC", "seq DESC").
		Limit(uint64(page.Limit)).
		Offset(uint64(page.Offset)).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build trade query", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query trades", err)
	}
	defer rows.Close()

	trades := make([]types.Trade, 0)

	for rows.Next() {
		var (
			trade               types.Trade
			seq                 int
			exchange, reason    string
			entryTime, exitTime int64
		)

		err := rows.Scan(&trade.RunID, &seq, &exchange, &trade.Symbol, &entryTime, &exitTime,
			&trade.EntryPrice, &trade.ExitPrice, &trade.Quantity, &trade.GrossPnL, &trade.NetPnL,
			&trade.FeePaid, &reason)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan trade", err)
		}

		trade.Exchange = types.Exchange(exchange)
		trade.Reason = types.ExitReason(reason)
		trade.EntryTime = fromMillis(entryTime)
		trade.ExitTime = fromMillis(exitTime)
		trades = append(trades, trade)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to iterate trades", err)
	}

	return trades, nil
}

// Close closes the underlying database
func (s *SQLStore) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (types.Run, error) {
	var (
		run                           types.Run
		exchange, timeframe           string
		startTime, endTime, createdAt int64
	)

	err := row.Scan(&run.RunID, &run.ModelName, &exchange, &run.Symbol, &timeframe, &startTime, &endTime,
		&run.InitialCapital, &run.FinalEquity, &run.TotalReturnPct, &run.MaxDrawdownPct, &run.WinRatePct,
		&run.TradeCount, &run.EngineVersion, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Run{}, err
	}

	if err != nil {
		return types.Run{}, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan run", err)
	}

	run.Exchange = types.Exchange(exchange)
	run.Timeframe = types.Timeframe(timeframe)
	run.StartTime = fromMillis(startTime)
	run.EndTime = fromMillis(endTime)
	run.CreatedAt = fromMillis(createdAt)

	return run, nil
}

// dedupCandles keeps the last candle per key. One statement may not update the
// same row twice.
func dedupCandles(candles []types.Candle) []types.Candle {
	type key struct {
		exchange  types.Exchange
		symbol    string
		timeframe types.Timeframe
		openTime  int64
	}

	index := make(map[key]int, len(candles))
	result := make([]types.Candle, 0, len(candles))

	for _, c := range candles {
		k := key{c.Exchange, c.Symbol, c.Timeframe, c.OpenTime.UnixMilli()}
		if i, ok := index[k]; ok {
			result[i] = c

			continue
		}

		index[k] = len(result)
		result = append(result, c)
	}

	return result
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
