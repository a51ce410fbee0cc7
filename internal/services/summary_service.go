package services

import (
	"context"
	"log/slog"
	"time"

	"kaasu/internal/models"
	"kaasu/internal/repositories"
)

type summaryService struct {
	summaryRepo repositories.SummaryRepositoryInterface
	metrics     MetricsRecorderInterface
}

// NewSummaryService creates a new SummaryServiceInterface instance
func NewSummaryService(summaryRepo repositories.SummaryRepositoryInterface, metrics MetricsRecorderInterface) SummaryServiceInterface {
	return &summaryService{
		summaryRepo: summaryRepo,
		metrics:     metrics,
	}
}

// CategoryTotals returns per-category spending, largest first. A window
// whose start is after its end is valid and simply matches nothing.
func (s *summaryService) CategoryTotals(ctx context.Context, filters models.SummaryFilters) ([]models.CategoryTotal, error) {
	start := time.Now()
	defer func() { s.metrics.RecordProcessingTime("summary.category_totals", time.Since(start)) }()

	totals, err := s.summaryRepo.CategoryTotals(ctx, filters)
	if err != nil {
		slog.ErrorContext(ctx, "failed to summarize expenses",
			"error", err,
			"request_id", getRequestID(ctx),
		)
		return nil, err
	}

	slog.DebugContext(ctx, "expense summary generated",
		"categories", len(totals),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return totals, nil
}

// Totals returns the overall spending and expense count in the window
func (s *summaryService) Totals(ctx context.Context, filters models.SummaryFilters) (*models.SpendingTotals, error) {
	totals, err := s.summaryRepo.Totals(ctx, filters)
	if err != nil {
		slog.ErrorContext(ctx, "failed to total expenses",
			"error", err,
			"request_id", getRequestID(ctx),
		)
		return nil, err
	}

	s.metrics.RecordGauge(MetricSummaryTotal, totals.Total.InexactFloat64(), nil)
	return totals, nil
}
