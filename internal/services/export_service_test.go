package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"kaasu/internal/models"
	"kaasu/internal/repositories/repository_mocks"
	"kaasu/internal/services/service_mocks"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/xuri/excelize/v2"
)

type ExportServiceSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	expenseRepo *repository_mocks.MockExpenseRepositoryInterface
	metrics     *service_mocks.MockMetricsRecorderInterface
	service     ExportServiceInterface
	ctx         context.Context
	expenses    []models.Expense
}

func (s *ExportServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.expenseRepo = repository_mocks.NewMockExpenseRepositoryInterface(s.ctrl)
	s.metrics = service_mocks.NewMockMetricsRecorderInterface(s.ctrl)
	s.service = NewExportService(s.expenseRepo, s.metrics)
	s.ctx = context.Background()

	created := time.Date(2024, time.January, 10, 9, 0, 0, 0, time.UTC)
	s.expenses = []models.Expense{
		{
			ID:          2,
			Amount:      decimal.RequireFromString("7.50"),
			Description: "coffee, beans",
			Date:        models.NewDate(2024, time.January, 10),
			Category:    models.Category{ID: 1, Name: "Food"},
			Tags:        []models.Tag{{ID: 1, Name: "home"}, {ID: 2, Name: "urgent"}},
			CreatedAt:   created,
		},
		{
			ID:        1,
			Amount:    decimal.RequireFromString("12.5"),
			Date:      models.NewDate(2024, time.January, 2),
			Category:  models.Category{ID: 1, Name: "Food"},
			CreatedAt: created,
		},
	}
}

func (s *ExportServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestExportServiceSuite(t *testing.T) {
	suite.Run(t, new(ExportServiceSuite))
}

func (s *ExportServiceSuite) expectExport(format models.ExportFormat, rows int) {
	s.metrics.EXPECT().IncrementCounter(MetricExportGenerated, map[string]string{"format": string(format)})
	s.metrics.EXPECT().RecordGauge(MetricExportRows, float64(rows), nil)
}

func (s *ExportServiceSuite) TestExportCSV() {
	s.expenseRepo.EXPECT().List(s.ctx, models.ExpenseFilters{}).Return(s.expenses, nil)
	s.expectExport(models.ExportCSV, 2)

	var buf bytes.Buffer
	count, err := s.service.Export(s.ctx, models.ExpenseFilters{}, models.ExportCSV, &buf)

	s.Require().NoError(err)
	s.Equal(2, count)

	records, err := csv.NewReader(&buf).ReadAll()
	s.Require().NoError(err)
	s.Require().Len(records, 4)
	s.Equal(exportHeaders, records[0])
	s.Equal([]string{"2", "2024-01-10", "Food", "7.50", "coffee, beans", "home, urgent", "2024-01-10T09:00:00Z"}, records[1])
	s.Equal("12.50", records[2][3])
	s.Equal([]string{"Total", "", "", "20.00", "2 expenses", "", ""}, records[3])
}

func (s *ExportServiceSuite) TestExportXLSX() {
	s.expenseRepo.EXPECT().List(s.ctx, gomock.Any()).Return(s.expenses, nil)
	s.expectExport(models.ExportXLSX, 2)

	var buf bytes.Buffer
	_, err := s.service.Export(s.ctx, models.ExpenseFilters{}, models.ExportXLSX, &buf)
	s.Require().NoError(err)

	f, err := excelize.OpenReader(&buf)
	s.Require().NoError(err)
	defer f.Close()

	rows, err := f.GetRows(exportSheetName)
	s.Require().NoError(err)
	s.Require().Len(rows, 4)
	s.Equal("ID", rows[0][0])
	s.Equal("Food", rows[1][2])
	s.Equal("home, urgent", rows[1][5])
	s.Equal("Total", rows[3][0])
	s.Contains([]string{"20", "20.00"}, rows[3][3])
}

func (s *ExportServiceSuite) TestExportEmpty() {
	s.expenseRepo.EXPECT().List(s.ctx, gomock.Any()).Return([]models.Expense{}, nil)
	s.expectExport(models.ExportCSV, 0)

	var buf bytes.Buffer
	count, err := s.service.Export(s.ctx, models.ExpenseFilters{}, models.ExportCSV, &buf)

	s.NoError(err)
	s.Zero(count)
	records, err := csv.NewReader(&buf).ReadAll()
	s.Require().NoError(err)
	s.Len(records, 2)
}

func (s *ExportServiceSuite) TestExportUnsupportedFormat() {
	s.expenseRepo.EXPECT().List(s.ctx, gomock.Any()).Return(s.expenses, nil)

	var buf bytes.Buffer
	_, err := s.service.Export(s.ctx, models.ExpenseFilters{}, models.ExportFormat("pdf"), &buf)

	s.ErrorIs(err, models.ErrUnsupportedExportFormat)
	s.Zero(buf.Len())
}
