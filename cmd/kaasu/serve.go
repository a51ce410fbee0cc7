package main

import (
	"fmt"
	"log/slog"

	"kaasu/internal/config"
	"kaasu/internal/database"
	"kaasu/internal/server"

	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	var (
		sqlitePath string
		port       string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if sqlitePath != "" {
				cfg.Database.Driver = config.DriverSQLite
				cfg.Database.SQLitePath = sqlitePath
			}
			if port != "" {
				cfg.Server.Port = port
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			db, err := database.Initialize(cfg)
			if err != nil {
				return err
			}
			defer func() {
				if err := db.Close(); err != nil {
					slog.Warn("Failed to close database", "error", err)
				}
			}()

			return server.New(cfg, db).Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&sqlitePath, "sqlite", "", "use a SQLite database file instead of PostgreSQL")
	cmd.Flags().StringVar(&port, "port", "", "listen port; overrides SERVER_PORT")
	return cmd
}
