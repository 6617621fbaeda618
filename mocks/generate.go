package mocks

//go:generate mockgen -destination=./mock_indicator.go -package=mocks github.com/rxtech-lab/coin-signal/internal/indicator Indicator
//go:generate mockgen -destination=./mock_datasource.go -package=mocks github.com/rxtech-lab/coin-signal/internal/backtest/engine/engine_v1/datasource CandleSource
//go:generate mockgen -destination=./mock_result_store.go -package=mocks github.com/rxtech-lab/coin-signal/internal/storage ResultStore
//go:generate mockgen -destination=./mock_provider.go -package=mocks github.com/rxtech-lab/coin-signal/pkg/marketdata/provider Provider
//go:generate mockgen -destination=./mock_klines_fetcher.go -package=mocks github.com/rxtech-lab/coin-signal/pkg/marketdata/provider KlinesFetcher
