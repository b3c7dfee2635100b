package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/nandolawson/keyforge95/cmd/app/commands"
	"github.com/nandolawson/keyforge95/internal/app"
	"github.com/nandolawson/keyforge95/internal/config"
)

func getKeyCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "generate",
			Usage: "Generate one or more product keys",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "type",
					Aliases: []string{"t"},
					Value:   "retail",
					Usage:   "Key type: 'retail' or 'oem'",
				},
				&cli.IntFlag{
					Name:    "count",
					Aliases: []string{"c"},
					Value:   1,
					Usage:   "Number of keys to generate",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				useCase, err := container.ProductKeyUseCase()
				if err != nil {
					return err
				}

				return commands.RunGenerate(
					ctx,
					useCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("type"),
					int(cmd.Int("count")),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "validate",
			Usage: "Validate a product key",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "key",
					Aliases:  []string{"k"},
					Required: true,
					Usage:    "Product key to validate (e.g., 111-1111111)",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				useCase, err := container.ProductKeyUseCase()
				if err != nil {
					return err
				}

				return commands.RunValidate(
					ctx,
					useCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("key"),
					cmd.String("format"),
				)
			},
		},
	}
}
