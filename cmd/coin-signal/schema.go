package main

import (
	"context"
	"fmt"
	"io"
	"os"

	enginev1 "github.com/rxtech-lab/coin-signal/internal/backtest/engine/engine_v1"
	"github.com/rxtech-lab/coin-signal/internal/config"
	"github.com/rxtech-lab/coin-signal/pkg/errors"
	"github.com/rxtech-lab/coin-signal/pkg/marketdata"
	"github.com/rxtech-lab/coin-signal/pkg/marketdata/provider"
	"github.com/urfave/cli/v3"
)

const (
	schemaBacktest = "backtest"
	schemaConfig   = "config"
	schemaDownload = "download"
)

func schemaCommand() *cli.Command {
	return &cli.Command{
		Name:  "schema",
		Usage: "Print a JSON schema",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "kind",
				Usage: fmt.Sprintf("Schema to print (%s, %s, %s)", schemaBacktest, schemaConfig, schemaDownload),
				Value: schemaBacktest,
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			return writeSchema(os.Stdout, cmd.String("kind"))
		},
	}
}

func writeSchema(w io.Writer, kind string) error {
	var (
		schema string
		err    error
	)

	switch kind {
	case schemaBacktest:
		schema, err = enginev1.NewBacktestEngineV1().GetConfigSchema()
	case schemaConfig:
		schema, err = config.Schema()
	case schemaDownload:
		schema, err = marketdata.GetDownloadConfigSchema(string(provider.ProviderBinance))
	default:
		return errors.Newf(errors.ErrCodeInvalidParameter, "unknown schema kind %q", kind)
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, schema)

	return err
}
