package repositories

import (
	"context"
	"testing"

	"kaasu/internal/database"
	"kaasu/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// CategoryRepositorySuite defines the test suite for CategoryRepository
type CategoryRepositorySuite struct {
	suite.Suite
	db       *database.DB
	repo     CategoryRepositoryInterface
	expenses ExpenseRepositoryInterface
	ctx      context.Context
}

// SetupTest runs before each test in the suite
func (s *CategoryRepositorySuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewCategoryRepository(s.db.DB)
	s.expenses = NewExpenseRepository(s.db.DB)
	s.ctx = context.Background()
}

// TearDownTest runs after each test in the suite
func (s *CategoryRepositorySuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

// TestCategoryRepositorySuite runs the test suite
func TestCategoryRepositorySuite(t *testing.T) {
	suite.Run(t, new(CategoryRepositorySuite))
}

func (s *CategoryRepositorySuite) TestCreate() {
	name := gofakeit.ProductCategory()

	category, err := s.repo.Create(s.ctx, name)
	s.Require().NoError(err)
	s.NotZero(category.ID)
	s.Equal(name, category.Name)

	found, err := s.repo.GetByID(s.ctx, category.ID)
	s.Require().NoError(err)
	s.Equal(*category, *found)
}

func (s *CategoryRepositorySuite) TestCreate_DuplicateName() {
	_, err := s.repo.Create(s.ctx, "Food")
	s.Require().NoError(err)

	_, err = s.repo.Create(s.ctx, "Food")
	s.ErrorIs(err, ErrCategoryExists)
	s.ErrorIs(err, ErrConflict)

	categories, err := s.repo.List(s.ctx)
	s.Require().NoError(err)
	s.Len(categories, 1)
}

func (s *CategoryRepositorySuite) TestList_OrderedByName() {
	for _, name := range []string{"Transport", "Food", "Housing"} {
		_, err := s.repo.Create(s.ctx, name)
		s.Require().NoError(err)
	}

	categories, err := s.repo.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(categories, 3)
	s.Equal("Food", categories[0].Name)
	s.Equal("Housing", categories[1].Name)
	s.Equal("Transport", categories[2].Name)
}

func (s *CategoryRepositorySuite) TestList_Empty() {
	categories, err := s.repo.List(s.ctx)
	s.NoError(err)
	s.NotNil(categories)
	s.Empty(categories)
}

func (s *CategoryRepositorySuite) TestGetByID_NotFound() {
	_, err := s.repo.GetByID(s.ctx, 4242)
	s.ErrorIs(err, ErrCategoryNotFound)
	s.ErrorIs(err, ErrNotFound)
}

func (s *CategoryRepositorySuite) TestDelete() {
	category, err := s.repo.Create(s.ctx, "Food")
	s.Require().NoError(err)

	deleted, err := s.repo.Delete(s.ctx, category.ID)
	s.NoError(err)
	s.True(deleted)

	_, err = s.repo.GetByID(s.ctx, category.ID)
	s.ErrorIs(err, ErrCategoryNotFound)
}

func (s *CategoryRepositorySuite) TestDelete_Idempotent() {
	category, err := s.repo.Create(s.ctx, "Food")
	s.Require().NoError(err)

	deleted, err := s.repo.Delete(s.ctx, category.ID)
	s.Require().NoError(err)
	s.True(deleted)

	deleted, err = s.repo.Delete(s.ctx, category.ID)
	s.NoError(err)
	s.False(deleted)
}

func (s *CategoryRepositorySuite) TestDelete_InUseIsRestricted() {
	category, err := s.repo.Create(s.ctx, "Food")
	s.Require().NoError(err)

	expense := &models.Expense{
		Amount:     decimal.RequireFromString("12.50"),
		Date:       models.NewDate(2024, 1, 5),
		CategoryID: category.ID,
	}
	_, err = s.expenses.Create(s.ctx, expense, nil)
	s.Require().NoError(err)

	deleted, err := s.repo.Delete(s.ctx, category.ID)
	s.ErrorIs(err, ErrCategoryInUse)
	s.ErrorIs(err, ErrConflict)
	s.False(deleted)

	// Nothing changed
	_, err = s.repo.GetByID(s.ctx, category.ID)
	s.NoError(err)
	remaining, err := s.expenses.List(s.ctx, models.ExpenseFilters{})
	s.NoError(err)
	s.Len(remaining, 1)
}
