// Package main provides the entry point for the application with CLI commands.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/accordia/securecomm/cmd/app/commands"
)

var version = "1.0.0"

func main() {
	cmd := &cli.Command{
		Name:    "securecomm",
		Usage:   "Secure communication and field protection engine",
		Version: version,
		Commands: []*cli.Command{
			{
				Name:  "server",
				Usage: "Start the HTTP server",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunServer(ctx, version)
				},
			},
			{
				Name:  "migrate",
				Usage: "Run database migrations",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunMigrations()
				},
			},
			{
				Name:  "create-master-key",
				Usage: "Generate a new master key for field encryption",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "kms-key-uri",
						Aliases: []string{"k"},
						Value:   "",
						Usage:   "KMS key URI to wrap the key with (e.g., gcpkms://..., base64key://...)",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunCreateMasterKey(cmd.String("kms-key-uri"))
				},
			},
			{
				Name:  "create-anonymization-salt",
				Usage: "Generate a new deployment-wide anonymization salt",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunCreateAnonymizationSalt()
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.Any("error", err))
		os.Exit(1)
	}
}
