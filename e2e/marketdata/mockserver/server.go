// Package mockserver provides a mock of the Binance klines REST endpoint.
package mockserver

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/rxtech-lab/coin-signal/internal/types"
	"github.com/rxtech-lab/coin-signal/pkg/errors"
)

const (
	defaultKlinesLimit = 500
	maxKlinesLimit     = 1000
)

// MockBinanceServer serves preloaded candles as Binance klines.
type MockBinanceServer struct {
	mu sync.RWMutex

	httpServer *http.Server
	listener   net.Listener

	// candles keyed by symbol then interval, ascending
	candles  map[string]map[string][]types.Candle
	requests int
	// failWith, when non-zero, is returned as the status of every klines request
	failWith int
}

// NewMockBinanceServer creates a new mock Binance server.
func NewMockBinanceServer() *MockBinanceServer {
	return &MockBinanceServer{
		mu:         sync.RWMutex{},
		httpServer: nil,
		listener:   nil,
		candles:    make(map[string]map[string][]types.Candle),
		requests:   0,
		failWith:   0,
	}
}

// Start starts the mock server on the given address.
// If address is empty or ":0", a random available port is used.
func (s *MockBinanceServer) Start(address string) error {
	if address == "" {
		address = ":0"
	}

	listener, err := net.Listen("tcp", address)
	if err != nil {
		return errors.Wrap(errors.ErrCodeDataSourceUnavailable, "failed to create listener", err)
	}

	s.listener = listener

	router := mux.NewRouter()
	router.HandleFunc("/api/v3/klines", s.handleKlines).Methods(http.MethodGet)

	s.httpServer = &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		_ = s.httpServer.Serve(listener)
	}()

	return nil
}

// Stop stops the mock server.
func (s *MockBinanceServer) Stop() error {
	if s.httpServer == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.httpServer.Shutdown(ctx)
}

// Address returns the address the server is listening on.
func (s *MockBinanceServer) Address() string {
	if s.listener == nil {
		return ""
	}

	return s.listener.Addr().String()
}

// BaseURL returns the base URL for the server.
func (s *MockBinanceServer) BaseURL() string {
	return "http://" + s.Address()
}

// SetCandles replaces the candles served for symbol at interval.
func (s *MockBinanceServer) SetCandles(symbol string, interval string, candles []types.Candle) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.candles[symbol] == nil {
		s.candles[symbol] = make(map[string][]types.Candle)
	}

	s.candles[symbol][interval] = candles
}

// FailWith makes every klines request answer with status. 0 restores normal behavior.
func (s *MockBinanceServer) FailWith(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.failWith = status
}

// RequestCount returns how many klines requests were served.
func (s *MockBinanceServer) RequestCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.requests
}

// handleKlines handles GET /api/v3/klines
func (s *MockBinanceServer) handleKlines(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.requests++
	failWith := s.failWith
	s.mu.Unlock()

	if failWith != 0 {
		writeAPIError(w, failWith, -1003, "Too many requests")

		return
	}

	query := r.URL.Query()
	symbol := query.Get("symbol")
	interval := query.Get("interval")

	if symbol == "" || interval == "" {
		writeAPIError(w, http.StatusBadRequest, -1102, "Mandatory parameter was not sent")

		return
	}

	intervalDuration := parseInterval(interval)
	if intervalDuration == 0 {
		writeAPIError(w, http.StatusBadRequest, -1120, "Invalid interval")

		return
	}

	startMillis := parseMillis(query.Get("startTime"), 0)
	endMillis := parseMillis(query.Get("endTime"), time.Now().UnixMilli())

	limit := int(parseMillis(query.Get("limit"), defaultKlinesLimit))
	if limit <= 0 || limit > maxKlinesLimit {
		limit = maxKlinesLimit
	}

	s.mu.RLock()
	candles := s.candles[symbol][interval]
	s.mu.RUnlock()

	// Binance kline format: [openTime, open, high, low, close, volume, closeTime, ...]
	klines := make([][]any, 0, limit)

	for _, c := range candles {
		openMillis := c.OpenTime.UnixMilli()
		if openMillis < startMillis || openMillis > endMillis {
			continue
		}

		if len(klines) == limit {
			break
		}

		klines = append(klines, []any{
			openMillis,
			strconv.FormatFloat(c.Open, 'f', 8, 64),
			strconv.FormatFloat(c.High, 'f', 8, 64),
			strconv.FormatFloat(c.Low, 'f', 8, 64),
			strconv.FormatFloat(c.Close, 'f', 8, 64),
			strconv.FormatFloat(c.Volume, 'f', 8, 64),
			c.OpenTime.Add(intervalDuration).UnixMilli() - 1,
			"0", // Quote asset volume
			0,   // Number of trades
			"0", // Taker buy base asset volume
			"0", // Taker buy quote asset volume
			"0", // Ignore
		})
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(klines)
}

func writeAPIError(w http.ResponseWriter, status int, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"code": code, "msg": msg})
}

func parseMillis(raw string, fallback int64) int64 {
	if raw == "" {
		return fallback
	}

	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fallback
	}

	return value
}

// parseInterval parses a Binance interval string to a duration.
func parseInterval(interval string) time.Duration {
	if len(interval) < 2 {
		return 0
	}

	num, err := strconv.Atoi(interval[:len(interval)-1])
	if err != nil {
		return 0
	}

	switch interval[len(interval)-1:] {
	case "m":
		return time.Duration(num) * time.Minute
	case "h":
		return time.Duration(num) * time.Hour
	case "d":
		return time.Duration(num) * 24 * time.Hour
	default:
		return 0
	}
}
