package main

import (
	"github.com/rxtech-lab/coin-signal/internal/config"
	"github.com/rxtech-lab/coin-signal/internal/logger"
	"github.com/rxtech-lab/coin-signal/internal/storage"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// app carries what every command needs once the global flags are resolved.
type app struct {
	config config.Config
	log    *logger.Logger
}

func loadApp(cmd *cli.Command) (*app, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, err
	}

	if level := cmd.String("log-level"); level != "" {
		cfg.Log.Level = level
	}

	// stdout carries command output only
	log, err := logger.NewLoggerWithOutput(cfg.Log.Level, "stderr")
	if err != nil {
		return nil, err
	}

	return &app{config: cfg, log: log}, nil
}

func (a *app) openStore() (*storage.SQLStore, error) {
	a.log.Debug("Opening store",
		zap.String("driver", a.config.Storage.Driver),
		zap.String("dsn", a.config.Storage.DSN),
	)

	return storage.NewSQLStore(a.config.StorageDriver(), a.config.Storage.DSN, a.log)
}

func (a *app) close() {
	_ = a.log.Sync()
}
