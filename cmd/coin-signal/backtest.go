package main

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rxtech-lab/coin-signal/internal/backtest/engine"
	enginev1 "github.com/rxtech-lab/coin-signal/internal/backtest/engine/engine_v1"
	"github.com/rxtech-lab/coin-signal/internal/backtest/engine/engine_v1/datasource"
	"github.com/rxtech-lab/coin-signal/internal/browser"
	"github.com/rxtech-lab/coin-signal/internal/report"
	"github.com/rxtech-lab/coin-signal/internal/storage"
	"github.com/rxtech-lab/coin-signal/internal/types"
	"github.com/rxtech-lab/coin-signal/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func backtestCommand() *cli.Command {
	return &cli.Command{
		Name:  "backtest",
		Usage: "Run backtests and inspect stored results",
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Run a backtest document and save the result",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "Backtest document `FILE` (YAML)",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "parquet",
						Usage: "Read candles from parquet files matching `GLOB` instead of the store",
					},
					&cli.StringFlag{
						Name:  "out",
						Usage: "Also write stats.yaml and trades.parquet into `DIR`",
					},
					&cli.BoolFlag{
						Name:  "no-progress",
						Usage: "Disable the progress bar",
					},
				},
				Action: backtestRunAction,
			},
			{
				Name:  "report",
				Usage: "Show stored runs, or one run with its trades",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "run-id",
						Usage: "Show this run and its trades",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Number of runs to list",
						Value: storage.DefaultRunsLimit,
					},
					&cli.IntFlag{
						Name:  "offset",
						Usage: "Number of runs to skip",
						Value: 0,
					},
					&cli.IntFlag{
						Name:  "trades-limit",
						Usage: "Number of trades to show with --run-id",
						Value: storage.DefaultTradesLimit,
					},
				},
				Action: backtestReportAction,
			},
			{
				Name:  "browse",
				Usage: "Page through stored runs in a terminal UI",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Number of runs to load",
						Value: 50,
					},
					&cli.IntFlag{
						Name:  "offset",
						Usage: "Number of runs to skip",
						Value: 0,
					},
					&cli.IntFlag{
						Name:  "trades-limit",
						Usage: "Number of trades to load per run",
						Value: 200,
					},
				},
				Action: backtestBrowseAction,
			},
		},
	}
}

func backtestRunAction(ctx context.Context, cmd *cli.Command) error {
	app, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer app.close()

	document, err := os.ReadFile(cmd.String("file"))
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to read backtest document %s", cmd.String("file"))
	}

	eng := enginev1.NewBacktestEngineV1WithLogger(app.log)
	if err := eng.Initialize(string(document)); err != nil {
		return err
	}

	store, err := app.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	var source datasource.CandleSource = store

	if pattern := cmd.String("parquet"); pattern != "" {
		parquetSource, err := datasource.NewDataSource(":memory:", app.log)
		if err != nil {
			return err
		}
		defer parquetSource.Close()

		if err := parquetSource.Initialize(pattern); err != nil {
			return err
		}

		source = parquetSource
	}

	if err := eng.SetDataSource(source); err != nil {
		return err
	}

	if err := eng.SetResultStore(store); err != nil {
		return err
	}

	output, err := eng.Run(ctx, runCallbacks(!cmd.Bool("no-progress")))
	if err != nil {
		// the run is complete even when saving it failed
		if output.Run.RunID == "" {
			return err
		}

		app.log.Error("Failed to save run", zap.String("run_id", output.Run.RunID), zap.Error(err))
	}

	if dir := cmd.String("out"); dir != "" {
		if reportErr := report.WriteRunReport(dir, output.Run, output.Trades); reportErr != nil {
			return reportErr
		}

		app.log.Info("Wrote run report", zap.String("dir", dir))
	}

	printRunSummary(os.Stdout, output.Run)

	return err
}

// runCallbacks drives a progress bar over the simulated candles.
func runCallbacks(showProgress bool) engine.LifecycleCallbacks {
	if !showProgress {
		return engine.LifecycleCallbacks{}
	}

	var bar *progressbar.ProgressBar

	onRunStart := engine.OnRunStartCallback(func(totalCandles int) error {
		bar = progressbar.NewOptions(max(totalCandles-1, 0),
			progressbar.OptionSetDescription("Simulating"),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWriter(os.Stderr),
		)

		return nil
	})
	onProcessData := engine.OnProcessDataCallback(func(current int, _ int) error {
		return bar.Set(current)
	})
	onRunEnd := engine.OnRunEndCallback(func(_ types.Run) {
		if bar != nil {
			_ = bar.Finish()
			fmt.Fprintln(os.Stderr)
		}
	})

	return engine.LifecycleCallbacks{
		OnRunStart:    &onRunStart,
		OnProcessData: &onProcessData,
		OnRunEnd:      &onRunEnd,
	}
}

func printRunSummary(w io.Writer, run types.Run) {
	fmt.Fprintf(w, "run_id:       %s\n", run.RunID)
	fmt.Fprintf(w, "trades:       %d\n", run.TradeCount)
	fmt.Fprintf(w, "final_equity: %s\n", report.FormatMoney(run.FinalEquity))
	fmt.Fprintf(w, "return:       %s\n", report.FormatPercent(run.TotalReturnPct))
	fmt.Fprintf(w, "mdd:          %s\n", report.FormatPercent(run.MaxDrawdownPct))
	fmt.Fprintf(w, "win_rate:     %s\n", report.FormatPercent(run.WinRatePct))
}

func backtestReportAction(ctx context.Context, cmd *cli.Command) error {
	app, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer app.close()

	store, err := app.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	return writeReport(ctx, os.Stdout, store, reportOptions{
		runID:       cmd.String("run-id"),
		limit:       int(cmd.Int("limit")),
		offset:      int(cmd.Int("offset")),
		tradesLimit: int(cmd.Int("trades-limit")),
	})
}

func backtestBrowseAction(ctx context.Context, cmd *cli.Command) error {
	app, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer app.close()

	store, err := app.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	model := browser.NewModel(store, storage.Page{Limit: int(cmd.Int("limit")), Offset: int(cmd.Int("offset"))}, int(cmd.Int("trades-limit")))

	_, err = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()

	return err
}

type reportOptions struct {
	runID       string
	limit       int
	offset      int
	tradesLimit int
}

func writeReport(ctx context.Context, w io.Writer, store storage.ResultStore, opts reportOptions) error {
	if opts.runID == "" {
		runs, err := store.ListRuns(ctx, storage.Page{Limit: opts.limit, Offset: opts.offset})
		if err != nil {
			return err
		}

		_, err = fmt.Fprintln(w, report.RenderRuns(runs))

		return err
	}

	run, err := store.GetRun(ctx, opts.runID)
	if err != nil {
		return err
	}

	trades, err := store.ListTrades(ctx, opts.runID, storage.Page{Limit: opts.tradesLimit, Offset: 0})
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, report.RenderRun(run, trades))

	return err
}
