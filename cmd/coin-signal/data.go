package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rxtech-lab/coin-signal/internal/storage"
	"github.com/rxtech-lab/coin-signal/pkg/marketdata"
	"github.com/rxtech-lab/coin-signal/pkg/marketdata/provider"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func dataCommand() *cli.Command {
	return &cli.Command{
		Name:  "data",
		Usage: "Download exchange candles",
		Commands: []*cli.Command{
			{
				Name:  "fetch",
				Usage: "Download candles into the store or a parquet file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "symbol",
						Aliases:  []string{"s"},
						Usage:    "Trading pair, e.g. BTCUSDT",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "timeframe",
						Aliases:  []string{"t"},
						Usage:    "Candle width (1m, 3m, 5m, 15m, 30m, 1h, 4h, 1d)",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "start",
						Usage:    "First open time in RFC3339",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "end",
						Usage:    "Last open time in RFC3339",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "provider",
						Aliases: []string{"p"},
						Usage:   fmt.Sprintf("Data provider (%s)", strings.Join(marketdata.GetSupportedProviders(), ", ")),
						Value:   string(provider.ProviderBinance),
					},
					&cli.StringFlag{
						Name:  "parquet",
						Usage: "Write a parquet `FILE` (or directory) instead of the store",
					},
					&cli.StringFlag{
						Name:  "writer",
						Usage: fmt.Sprintf("Parquet writer used with --parquet (%s, %s)", marketdata.WriterParquet, marketdata.WriterDuckDB),
						Value: string(marketdata.WriterParquet),
					},
				},
				Action: dataFetchAction,
			},
			{
				Name:   "providers",
				Usage:  "List the supported data providers",
				Action: dataProvidersAction,
			},
		},
	}
}

func dataFetchAction(ctx context.Context, cmd *cli.Command) error {
	app, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer app.close()

	downloadConfig := marketdata.DownloadConfig{
		Symbol:    cmd.String("symbol"),
		Timeframe: cmd.String("timeframe"),
		Start:     cmd.String("start"),
		End:       cmd.String("end"),
	}

	params, err := downloadConfig.ToDownloadParams()
	if err != nil {
		return err
	}

	clientConfig := marketdata.ClientConfig{
		ProviderType: provider.ProviderType(cmd.String("provider")),
		WriterType:   marketdata.WriterStore,
		DataPath:     "",
		BaseURL:      app.config.Binance.BaseURL,
	}

	var store storage.CandleStore

	if path := cmd.String("parquet"); path != "" {
		clientConfig.WriterType = marketdata.WriterType(cmd.String("writer"))
		clientConfig.DataPath = path
	} else {
		sqlStore, err := app.openStore()
		if err != nil {
			return err
		}
		defer sqlStore.Close()

		store = sqlStore
	}

	bar := progressbar.NewOptions(100,
		progressbar.OptionSetDescription("Downloading "+params.Symbol),
		progressbar.OptionSetWriter(os.Stderr),
	)

	client, err := marketdata.NewClient(clientConfig, store, func(current, total float64, message string) {
		if total <= 0 {
			return
		}

		bar.Describe(message)
		_ = bar.Set(int(current / total * 100))
	})
	if err != nil {
		return err
	}

	app.log.Info("Starting download",
		zap.String("provider", string(clientConfig.ProviderType)),
		zap.String("writer", string(clientConfig.WriterType)),
		zap.String("symbol", params.Symbol),
		zap.String("timeframe", string(params.Timeframe)),
		zap.Time("start", params.Start),
		zap.Time("end", params.End),
	)

	output, err := client.Download(ctx, params)
	_ = bar.Finish()
	fmt.Fprintln(os.Stderr)

	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "saved: %s\n", output)

	return nil
}

func dataProvidersAction(_ context.Context, _ *cli.Command) error {
	return writeProviders(os.Stdout)
}

func writeProviders(w io.Writer) error {
	for _, name := range marketdata.GetSupportedProviders() {
		info, err := marketdata.GetProviderInfo(name)
		if err != nil {
			return err
		}

		if _, err := fmt.Fprintf(w, "%-10s %-10s %s\n", info.Name, info.Exchange, info.Description); err != nil {
			return err
		}
	}

	return nil
}
