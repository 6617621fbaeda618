// Package api serves stored backtest results over HTTP.
package api

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/rxtech-lab/coin-signal/internal/logger"
	"github.com/rxtech-lab/coin-signal/internal/storage"
	"github.com/rxtech-lab/coin-signal/internal/types"
	"github.com/rxtech-lab/coin-signal/pkg/errors"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

// Server is a read-only view of a ResultStore.
type Server struct {
	store  storage.ResultStore
	log    *logger.Logger
	router *mux.Router
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code  errors.ErrorCode `json:"code"`
	Error string           `json:"error"`
}

type RunsResponse struct {
	Runs   []types.Run `json:"runs"`
	Limit  int         `json:"limit"`
	Offset int         `json:"offset"`
}

type TradesResponse struct {
	RunID  string        `json:"run_id"`
	Trades []types.Trade `json:"trades"`
	Limit  int           `json:"limit"`
	Offset int           `json:"offset"`
}

func NewServer(store storage.ResultStore, log *logger.Logger) *Server {
	if log == nil {
		log = logger.NewNopLogger()
	}

	server := &Server{
		store:  store,
		log:    log,
		router: mux.NewRouter(),
	}

	server.router.HandleFunc("/runs", server.handleListRuns).Methods(http.MethodGet)
	server.router.HandleFunc("/runs/{id}", server.handleGetRun).Methods(http.MethodGet)
	server.router.HandleFunc("/runs/{id}/trades", server.handleListTrades).Methods(http.MethodGet)

	return server
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Serve accepts connections on listener until ctx is cancelled, then shuts
// the server down gracefully.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		errCh <- httpServer.Serve(listener)
	}()

	s.log.Info("API server listening", zap.String("address", listener.Addr().String()))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		s.log.Info("Shutting down API server")

		return httpServer.Shutdown(shutdownCtx)
	}
}

// ListenAndServe listens on address and calls Serve.
func (s *Server) ListenAndServe(ctx context.Context, address string) error {
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to listen on %s", address)
	}

	return s.Serve(ctx, listener)
}

// handleListRuns handles GET /runs
func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r, storage.DefaultRunsLimit)
	if err != nil {
		s.writeError(w, err)

		return
	}

	runs, err := s.store.ListRuns(r.Context(), page)
	if err != nil {
		s.writeError(w, err)

		return
	}

	if runs == nil {
		runs = []types.Run{}
	}

	s.writeJSON(w, http.StatusOK, RunsResponse{Runs: runs, Limit: page.Limit, Offset: page.Offset})
}

// handleGetRun handles GET /runs/{id}
func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	run, err := s.store.GetRun(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, err)

		return
	}

	s.writeJSON(w, http.StatusOK, run)
}

// handleListTrades handles GET /runs/{id}/trades
func (s *Server) handleListTrades(w http.ResponseWriter, r *http.Request) {
	runID := mux.Vars(r)["id"]

	page, err := parsePage(r, storage.DefaultTradesLimit)
	if err != nil {
		s.writeError(w, err)

		return
	}

	// an unknown run is a 404 rather than an empty list
	if _, err := s.store.GetRun(r.Context(), runID); err != nil {
		s.writeError(w, err)

		return
	}

	trades, err := s.store.ListTrades(r.Context(), runID, page)
	if err != nil {
		s.writeError(w, err)

		return
	}

	if trades == nil {
		trades = []types.Trade{}
	}

	s.writeJSON(w, http.StatusOK, TradesResponse{RunID: runID, Trades: trades, Limit: page.Limit, Offset: page.Offset})
}

// parsePage reads limit and offset from the query string. A missing limit
// takes defaultLimit.
func parsePage(r *http.Request, defaultLimit int) (storage.Page, error) {
	page := storage.Page{Limit: defaultLimit, Offset: 0}
	query := r.URL.Query()

	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			return storage.Page{}, errors.Newf(errors.ErrCodeInvalidParameter, "limit must be a positive integer, got %q", raw)
		}

		page.Limit = limit
	}

	if raw := query.Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return storage.Page{}, errors.Newf(errors.ErrCodeInvalidParameter, "offset must be a non-negative integer, got %q", raw)
		}

		page.Offset = offset
	}

	return page, nil
}

func statusFor(err error) int {
	switch {
	case errors.HasCode(err, errors.ErrCodeRunNotFound):
		return http.StatusNotFound
	case errors.HasCode(err, errors.ErrCodeInvalidParameter):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.log.Error("API request failed", zap.Error(err))
	}

	s.writeJSON(w, status, ErrorResponse{Code: errors.GetCode(err), Error: err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Warn("Failed to encode response", zap.Error(err))
	}
}
