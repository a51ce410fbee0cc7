package main

import (
	"database/sql"
	"fmt"
	"strconv"

	"kaasu/internal/database"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the PostgreSQL schema",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRunner(func(runner *database.MigrationRunner) error {
				if err := runner.WaitForDatabase(); err != nil {
					return err
				}
				return runner.RunMigrations()
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down [steps]",
		Short: "Roll back migrations (default 1 step)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			steps := 1
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil || n <= 0 {
					return fmt.Errorf("steps must be a positive integer, got %q", args[0])
				}
				steps = n
			}
			return withRunner(func(runner *database.MigrationRunner) error {
				return runner.RollbackMigrations(steps)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the applied migration version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRunner(func(runner *database.MigrationRunner) error {
				version, dirty, err := runner.GetMigrationStatus()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "version %d (dirty: %t)\n", version, dirty)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "seed",
		Short: "Load the SQL seed files",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg.Migration.SeedDatabase = true
			return withRunner(func(runner *database.MigrationRunner) error {
				return runner.LoadSeeds()
			})
		},
	})

	return cmd
}

func withRunner(fn func(*database.MigrationRunner) error) error {
	if cfg.Database.IsSQLite() {
		return fmt.Errorf("migrations target PostgreSQL; SQLite schemas are created on serve")
	}

	db, err := sql.Open("postgres", cfg.Database.MigrationURL())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	return fn(database.NewMigrationRunner(db, cfg.Migration))
}
