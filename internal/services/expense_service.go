package services

import (
	"context"
	"time"

	"kaasu/internal/models"
	"kaasu/internal/repositories"
)

const entityExpense = "expense"

type expenseService struct {
	expenseRepo repositories.ExpenseRepositoryInterface
	activity    ActivityLoggerInterface
	metrics     MetricsRecorderInterface
	now         func() time.Time
}

// NewExpenseService creates a new ExpenseServiceInterface instance
func NewExpenseService(
	expenseRepo repositories.ExpenseRepositoryInterface,
	activity ActivityLoggerInterface,
	metrics MetricsRecorderInterface,
) ExpenseServiceInterface {
	return &expenseService{
		expenseRepo: expenseRepo,
		activity:    activity,
		metrics:     metrics,
		now:         time.Now,
	}
}

// CreateExpense rounds the amount to cents, fills in today's date when none
// is given and stores the expense with whichever of the requested tags exist.
func (s *expenseService) CreateExpense(ctx context.Context, input models.NewExpense) (expense *models.Expense, err error) {
	start := time.Now()
	defer func() { recordOperation(s.metrics, entityExpense, "create", start, err) }()

	if input.CategoryID <= 0 {
		return nil, models.ErrCategoryMissing
	}

	amount, err := models.NormalizeAmount(input.Amount)
	if err != nil {
		return nil, err
	}

	date := models.DateOf(s.now())
	if input.Date != nil {
		date = *input.Date
	}

	expense, err = s.expenseRepo.Create(ctx, &models.Expense{
		Amount:      amount,
		Description: input.Description,
		Date:        date,
		CategoryID:  input.CategoryID,
	}, input.TagIDs)
	if err != nil {
		s.activity.LogFailed(ctx, entityExpense, "create", err)
		return nil, err
	}

	s.noteDroppedTags(ctx, expense, input.TagIDs)
	s.activity.LogCreated(ctx, entityExpense, expense.ID)
	return expense, nil
}

func (s *expenseService) ListExpenses(ctx context.Context, filters models.ExpenseFilters) ([]models.Expense, error) {
	return s.expenseRepo.List(ctx, filters)
}

func (s *expenseService) GetExpense(ctx context.Context, id int64) (*models.Expense, error) {
	return s.expenseRepo.GetByID(ctx, id)
}

// UpdateExpense writes only the fields set in update
func (s *expenseService) UpdateExpense(ctx context.Context, id int64, update models.ExpenseUpdate) (expense *models.Expense, err error) {
	start := time.Now()
	defer func() { recordOperation(s.metrics, entityExpense, "update", start, err) }()

	if amount, ok := update.Amount.Get(); ok {
		rounded, err := models.NormalizeAmount(amount)
		if err != nil {
			return nil, err
		}
		update.Amount = models.Some(rounded)
	}

	expense, err = s.expenseRepo.Update(ctx, id, update)
	if err != nil {
		s.activity.LogFailed(ctx, entityExpense, "update", err)
		return nil, err
	}

	if tagIDs, ok := update.TagIDs.Get(); ok {
		s.noteDroppedTags(ctx, expense, tagIDs)
	}
	s.activity.LogUpdated(ctx, entityExpense, id, updatedFields(update))
	return expense, nil
}

func (s *expenseService) DeleteExpense(ctx context.Context, id int64) (deleted bool, err error) {
	start := time.Now()
	defer func() { recordOperation(s.metrics, entityExpense, "delete", start, err) }()

	deleted, err = s.expenseRepo.Delete(ctx, id)
	if err != nil {
		s.activity.LogFailed(ctx, entityExpense, "delete", err)
		return false, err
	}

	s.activity.LogDeleted(ctx, entityExpense, id, deleted)
	return deleted, nil
}

// noteDroppedTags reports requested tag ids that did not end up attached
func (s *expenseService) noteDroppedTags(ctx context.Context, expense *models.Expense, requested []int64) {
	unique := models.UniqueIDs(requested)
	if len(unique) == len(expense.Tags) {
		return
	}

	s.activity.LogTagsDropped(ctx, expense.ID, len(unique), len(expense.Tags))
	s.metrics.IncrementCounter(MetricExpenseTagsDropped, nil)
}

func updatedFields(update models.ExpenseUpdate) []string {
	fields := make([]string, 0, 5)
	if update.Amount.Set {
		fields = append(fields, "amount")
	}
	if update.Description.Set {
		fields = append(fields, "description")
	}
	if update.Date.Set {
		fields = append(fields, "date")
	}
	if update.CategoryID.Set {
		fields = append(fields, "category_id")
	}
	if update.TagIDs.Set {
		fields = append(fields, "tag_ids")
	}
	return fields
}
