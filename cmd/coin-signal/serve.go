package main

import (
	"context"

	"github.com/rxtech-lab/coin-signal/internal/api"
	"github.com/urfave/cli/v3"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve stored runs and trades as JSON",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "address",
				Usage: "Overrides api.address from the config",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			app, err := loadApp(cmd)
			if err != nil {
				return err
			}
			defer app.close()

			address := app.config.API.Address
			if override := cmd.String("address"); override != "" {
				address = override
			}

			store, err := app.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			return api.NewServer(store, app.log).ListenAndServe(ctx, address)
		},
	}
}
