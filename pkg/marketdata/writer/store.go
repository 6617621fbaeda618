package writer

import (
	"context"

	"github.com/rxtech-lab/coin-signal/internal/storage"
	"github.com/rxtech-lab/coin-signal/internal/types"
	"github.com/rxtech-lab/coin-signal/pkg/errors"
)

// DefaultStoreBatchSize is how many candles StoreWriter buffers between upserts.
const DefaultStoreBatchSize = 500

// StoreWriter upserts candles into a candle store in batches.
type StoreWriter struct {
	store       storage.CandleStore
	label       string
	batchSize   int
	buffer      []types.Candle
	written     int
	initialized bool
}

// NewStoreWriter creates a writer over store. label is reported as the output path.
func NewStoreWriter(store storage.CandleStore, label string) *StoreWriter {
	return &StoreWriter{
		store:       store,
		label:       label,
		batchSize:   DefaultStoreBatchSize,
		buffer:      nil,
		written:     0,
		initialized: false,
	}
}

func (w *StoreWriter) Initialize() error {
	if w.store == nil {
		return errors.New(errors.ErrCodeMarketDataWrite, "candle store is nil")
	}

	w.buffer = make([]types.Candle, 0, w.batchSize)
	w.written = 0
	w.initialized = true

	return nil
}

func (w *StoreWriter) Write(candle types.Candle) error {
	if !w.initialized {
		return errors.New(errors.ErrCodeMarketDataWrite, "writer not initialized")
	}

	w.buffer = append(w.buffer, candle)
	if len(w.buffer) >= w.batchSize {
		return w.flush()
	}

	return nil
}

func (w *StoreWriter) Finalize() (string, error) {
	if !w.initialized {
		return "", errors.New(errors.ErrCodeMarketDataWrite, "writer not initialized")
	}

	if err := w.flush(); err != nil {
		return "", err
	}

	return w.label, nil
}

// Written returns how many candles reached the store.
func (w *StoreWriter) Written() int {
	return w.written
}

func (w *StoreWriter) Close() error {
	w.buffer = nil
	w.initialized = false

	return nil
}

func (w *StoreWriter) GetOutputPath() string {
	return w.label
}

func (w *StoreWriter) flush() error {
	if len(w.buffer) == 0 {
		return nil
	}

	if err := w.store.UpsertCandles(context.Background(), w.buffer); err != nil {
		return errors.Wrap(errors.ErrCodeMarketDataWrite, "failed to upsert candles", err)
	}

	w.written += len(w.buffer)
	w.buffer = w.buffer[:0]

	return nil
}
