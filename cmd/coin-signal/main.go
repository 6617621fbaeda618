package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rxtech-lab/coin-signal/internal/version"
	"github.com/urfave/cli/v3"
)

func newRootCommand() *cli.Command {
	return &cli.Command{
		Name:    "coin-signal",
		Usage:   "Backtest indicator driven trading models on crypto candles",
		Version: version.GetVersion(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the application config `FILE`",
				Sources: cli.EnvVars("COIN_SIGNAL_CONFIG"),
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Overrides log.level from the config (debug, info, warn, error)",
			},
		},
		Commands: []*cli.Command{
			backtestCommand(),
			dataCommand(),
			serveCommand(),
			schemaCommand(),
		},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
