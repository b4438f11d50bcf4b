package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"keydash/internal/app"
	"keydash/internal/config"
)

func run(ctx context.Context, cmd *cli.Command) error {
	opts := []app.Option{
		app.WithConfigPath(cmd.String("config")),
		app.WithDataPath(cmd.String("data")),
		app.WithPage(cmd.String("page")),
		app.WithLogFile(cmd.String("log-file")),
	}

	if err := app.Run(ctx, opts...); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}
	return nil
}

func main() {
	cmd := &cli.Command{
		Name:   "keydash",
		Usage:  "Keyboard-driven bookmark dashboard for the terminal",
		Action: run,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: config.DefaultPath(),
				Sources:     cli.EnvVars("KEYDASH_CONFIG"),
			},
			&cli.StringFlag{
				Name:    "data",
				Aliases: []string{"d"},
				Usage:   "Path to the bookmark data file (overrides data_file)",
				Sources: cli.EnvVars("KEYDASH_DATA"),
			},
			&cli.StringFlag{
				Name:  "page",
				Usage: "Page to show at startup",
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "Where to write logs (default: next to the config file)",
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
