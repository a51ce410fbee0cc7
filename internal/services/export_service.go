package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"kaasu/internal/models"
	"kaasu/internal/repositories"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const exportSheetName = "Expenses"

var exportHeaders = []string{"ID", "Date", "Category", "Amount", "Description", "Tags", "Created At"}

type exportService struct {
	expenseRepo repositories.ExpenseRepositoryInterface
	metrics     MetricsRecorderInterface
}

// NewExportService creates a new ExportServiceInterface instance
func NewExportService(expenseRepo repositories.ExpenseRepositoryInterface, metrics MetricsRecorderInterface) ExportServiceInterface {
	return &exportService{
		expenseRepo: expenseRepo,
		metrics:     metrics,
	}
}

// Export writes the filtered expenses, newest first, followed by a total row
func (s *exportService) Export(ctx context.Context, filters models.ExpenseFilters, format models.ExportFormat, w io.Writer) (int, error) {
	expenses, err := s.expenseRepo.List(ctx, filters)
	if err != nil {
		return 0, err
	}

	switch format {
	case models.ExportCSV:
		err = writeExpensesCSV(expenses, w)
	case models.ExportXLSX:
		err = writeExpensesXLSX(expenses, w)
	default:
		return 0, fmt.Errorf("%w: %q", models.ErrUnsupportedExportFormat, format)
	}
	if err != nil {
		return 0, err
	}

	s.metrics.IncrementCounter(MetricExportGenerated, map[string]string{"format": string(format)})
	s.metrics.RecordGauge(MetricExportRows, float64(len(expenses)), nil)
	return len(expenses), nil
}

func exportRow(expense models.Expense) []string {
	return []string{
		strconv.FormatInt(expense.ID, 10),
		expense.Date.String(),
		expense.Category.Name,
		expense.Amount.StringFixed(models.AmountScale),
		expense.Description,
		strings.Join(expense.TagNames(), ", "),
		expense.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func sumAmounts(expenses []models.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, expense := range expenses {
		total = total.Add(expense.Amount)
	}
	return total
}

func writeExpensesCSV(expenses []models.Expense, w io.Writer) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(exportHeaders); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, expense := range expenses {
		if err := writer.Write(exportRow(expense)); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	total := []string{"Total", "", "", sumAmounts(expenses).StringFixed(models.AmountScale), fmt.Sprintf("%d expenses", len(expenses)), "", ""}
	if err := writer.Write(total); err != nil {
		return fmt.Errorf("failed to write csv total: %w", err)
	}

	writer.Flush()
	return writer.Error()
}

func writeExpensesXLSX(expenses []models.Expense, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	// Built-in format 2 is "0.00"
	amountStyle, err := f.NewStyle(&excelize.Style{NumFmt: 2})
	if err != nil {
		return fmt.Errorf("failed to create amount style: %w", err)
	}
	totalStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"FFC000"}, Pattern: 1},
		NumFmt: 2,
	})
	if err != nil {
		return fmt.Errorf("failed to create total style: %w", err)
	}

	widths := map[string]float64{"A": 8, "B": 12, "C": 18, "D": 12, "E": 40, "F": 24, "G": 22}
	for col, width := range widths {
		if err := f.SetColWidth(exportSheetName, col, col, width); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}

	header := make([]interface{}, len(exportHeaders))
	for i, h := range exportHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(exportSheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := f.SetCellStyle(exportSheetName, "A1", "G1", headerStyle); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for i, expense := range expenses {
		row := i + 2
		values := []interface{}{
			expense.ID,
			expense.Date.String(),
			expense.Category.Name,
			expense.Amount.InexactFloat64(),
			expense.Description,
			strings.Join(expense.TagNames(), ", "),
			expense.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := f.SetSheetRow(exportSheetName, fmt.Sprintf("A%d", row), &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", row, err)
		}
		if err := f.SetCellStyle(exportSheetName, fmt.Sprintf("D%d", row), fmt.Sprintf("D%d", row), amountStyle); err != nil {
			return fmt.Errorf("failed to style row %d: %w", row, err)
		}
	}

	totalRow := len(expenses) + 2
	totals := []interface{}{"Total", "", "", sumAmounts(expenses).InexactFloat64(), fmt.Sprintf("%d expenses", len(expenses))}
	if err := f.SetSheetRow(exportSheetName, fmt.Sprintf("A%d", totalRow), &totals); err != nil {
		return fmt.Errorf("failed to write total row: %w", err)
	}
	if err := f.SetCellStyle(exportSheetName, fmt.Sprintf("A%d", totalRow), fmt.Sprintf("G%d", totalRow), totalStyle); err != nil {
		return fmt.Errorf("failed to style total row: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
