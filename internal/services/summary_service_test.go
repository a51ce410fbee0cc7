package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"kaasu/internal/models"
	"kaasu/internal/repositories/repository_mocks"
	"kaasu/internal/services/service_mocks"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type SummaryServiceSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	summaryRepo *repository_mocks.MockSummaryRepositoryInterface
	metrics     *service_mocks.MockMetricsRecorderInterface
	service     SummaryServiceInterface
	ctx         context.Context
}

func (s *SummaryServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.summaryRepo = repository_mocks.NewMockSummaryRepositoryInterface(s.ctrl)
	s.metrics = service_mocks.NewMockMetricsRecorderInterface(s.ctrl)
	s.service = NewSummaryService(s.summaryRepo, s.metrics)
	s.ctx = context.Background()
}

func (s *SummaryServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestSummaryServiceSuite(t *testing.T) {
	suite.Run(t, new(SummaryServiceSuite))
}

func (s *SummaryServiceSuite) TestCategoryTotals() {
	from := models.NewDate(2024, time.January, 1)
	to := models.NewDate(2024, time.January, 31)
	filters := models.SummaryFilters{DateFrom: &from, DateTo: &to}
	expected := []models.CategoryTotal{
		{Category: "Food", Total: decimal.RequireFromString("20.00")},
		{Category: "Rent", Total: decimal.RequireFromString("5.00")},
	}
	s.summaryRepo.EXPECT().CategoryTotals(s.ctx, filters).Return(expected, nil)
	s.metrics.EXPECT().RecordProcessingTime("summary.category_totals", gomock.Any())

	totals, err := s.service.CategoryTotals(s.ctx, filters)

	s.NoError(err)
	s.Equal(expected, totals)
}

func (s *SummaryServiceSuite) TestCategoryTotals_InvertedWindowIsNotAnError() {
	from := models.NewDate(2024, time.February, 1)
	to := models.NewDate(2024, time.January, 1)
	filters := models.SummaryFilters{DateFrom: &from, DateTo: &to}
	s.summaryRepo.EXPECT().CategoryTotals(s.ctx, filters).Return([]models.CategoryTotal{}, nil)
	s.metrics.EXPECT().RecordProcessingTime(gomock.Any(), gomock.Any())

	totals, err := s.service.CategoryTotals(s.ctx, filters)

	s.NoError(err)
	s.Empty(totals)
}

func (s *SummaryServiceSuite) TestCategoryTotals_Error() {
	s.summaryRepo.EXPECT().CategoryTotals(s.ctx, gomock.Any()).Return(nil, errors.New("boom"))
	s.metrics.EXPECT().RecordProcessingTime(gomock.Any(), gomock.Any())

	_, err := s.service.CategoryTotals(s.ctx, models.SummaryFilters{})

	s.Error(err)
}

func (s *SummaryServiceSuite) TestTotals_RecordsGauge() {
	s.summaryRepo.EXPECT().Totals(s.ctx, models.SummaryFilters{}).
		Return(&models.SpendingTotals{Total: decimal.RequireFromString("42.50"), Count: 3}, nil)
	s.metrics.EXPECT().RecordGauge(MetricSummaryTotal, 42.5, nil)

	totals, err := s.service.Totals(s.ctx, models.SummaryFilters{})

	s.NoError(err)
	s.Equal(int64(3), totals.Count)
}
