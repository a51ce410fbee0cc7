package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"kaasu/internal/config"
	"kaasu/internal/database"
	"kaasu/internal/models"
	"kaasu/internal/repositories"
	"kaasu/internal/services"

	"github.com/spf13/cobra"
)

func exportCmd() *cobra.Command {
	var (
		format     string
		output     string
		sqlitePath string
		from       string
		to         string
		categoryID int64
		tagID      int64
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write expenses to an xlsx or csv file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			exportFormat, err := models.ParseExportFormat(format)
			if err != nil {
				return err
			}

			filters := models.ExpenseFilters{}
			if categoryID > 0 {
				filters.CategoryID = &categoryID
			}
			if tagID > 0 {
				filters.TagID = &tagID
			}
			if filters.DateFrom, err = parseDateFlag("from", from); err != nil {
				return err
			}
			if filters.DateTo, err = parseDateFlag("to", to); err != nil {
				return err
			}

			if sqlitePath != "" {
				cfg.Database.Driver = config.DriverSQLite
				cfg.Database.SQLitePath = sqlitePath
			}
			db, err := database.New(&cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close()

			if output == "" {
				output = exportFormat.Filename(time.Now())
			}
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", output, err)
			}
			defer f.Close()

			exporter := services.NewExportService(repositories.NewExpenseRepository(db.DB), services.NoopMetrics{})
			rows, err := exporter.Export(cmd.Context(), filters, exportFormat, f)
			if err != nil {
				return err
			}

			slog.Info("Export written", "file", output, "rows", rows, "format", string(exportFormat))
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "xlsx", "xlsx or csv")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default expenses_<timestamp>.<ext>)")
	cmd.Flags().StringVar(&sqlitePath, "sqlite", "", "read from a SQLite database file")
	cmd.Flags().StringVar(&from, "from", "", "inclusive start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "inclusive end date (YYYY-MM-DD)")
	cmd.Flags().Int64Var(&categoryID, "category", 0, "only this category id")
	cmd.Flags().Int64Var(&tagID, "tag", 0, "only expenses carrying this tag id")
	return cmd
}

func parseDateFlag(name, value string) (*models.Date, error) {
	if value == "" {
		return nil, nil
	}
	date, err := models.ParseDate(value)
	if err != nil {
		return nil, fmt.Errorf("--%s: %w", name, err)
	}
	return &date, nil
}
