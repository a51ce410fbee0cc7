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

// TagRepositorySuite defines the test suite for TagRepository
type TagRepositorySuite struct {
	suite.Suite
	db       *database.DB
	repo     TagRepositoryInterface
	expenses ExpenseRepositoryInterface
	ctx      context.Context
}

// SetupTest runs before each test in the suite
func (s *TagRepositorySuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewTagRepository(s.db.DB)
	s.expenses = NewExpenseRepository(s.db.DB)
	s.ctx = context.Background()
}

// TearDownTest runs after each test in the suite
func (s *TagRepositorySuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

// TestTagRepositorySuite runs the test suite
func TestTagRepositorySuite(t *testing.T) {
	suite.Run(t, new(TagRepositorySuite))
}

func (s *TagRepositorySuite) TestCreate() {
	name := gofakeit.Adjective()

	tag, err := s.repo.Create(s.ctx, name)
	s.Require().NoError(err)
	s.NotZero(tag.ID)
	s.Equal(name, tag.Name)
}

func (s *TagRepositorySuite) TestCreate_DuplicateName() {
	_, err := s.repo.Create(s.ctx, "urgent")
	s.Require().NoError(err)

	_, err = s.repo.Create(s.ctx, "urgent")
	s.ErrorIs(err, ErrTagExists)
	s.ErrorIs(err, ErrConflict)
}

func (s *TagRepositorySuite) TestList_OrderedByName() {
	for _, name := range []string{"work", "recurring", "urgent"} {
		_, err := s.repo.Create(s.ctx, name)
		s.Require().NoError(err)
	}

	tags, err := s.repo.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(tags, 3)
	s.Equal([]string{"recurring", "urgent", "work"}, []string{tags[0].Name, tags[1].Name, tags[2].Name})
}

func (s *TagRepositorySuite) TestGetByID_NotFound() {
	_, err := s.repo.GetByID(s.ctx, 99)
	s.ErrorIs(err, ErrTagNotFound)
}

func (s *TagRepositorySuite) TestFindByIDs_DropsUnknownAndDuplicates() {
	urgent, err := s.repo.Create(s.ctx, "urgent")
	s.Require().NoError(err)
	work, err := s.repo.Create(s.ctx, "work")
	s.Require().NoError(err)

	tags, err := s.repo.FindByIDs(s.ctx, []int64{work.ID, 9999, urgent.ID, work.ID})
	s.Require().NoError(err)
	s.Require().Len(tags, 2)
	s.Equal("urgent", tags[0].Name)
	s.Equal("work", tags[1].Name)

	tags, err = s.repo.FindByIDs(s.ctx, nil)
	s.NoError(err)
	s.Empty(tags)
}

func (s *TagRepositorySuite) TestDelete_Idempotent() {
	tag, err := s.repo.Create(s.ctx, "urgent")
	s.Require().NoError(err)

	deleted, err := s.repo.Delete(s.ctx, tag.ID)
	s.NoError(err)
	s.True(deleted)

	deleted, err = s.repo.Delete(s.ctx, tag.ID)
	s.NoError(err)
	s.False(deleted)
}

func (s *TagRepositorySuite) TestDelete_DetachesFromExpenses() {
	category := database.CreateTestCategory(s.T(), s.db, "Food")
	urgent, err := s.repo.Create(s.ctx, "urgent")
	s.Require().NoError(err)
	work, err := s.repo.Create(s.ctx, "work")
	s.Require().NoError(err)

	expense, err := s.expenses.Create(s.ctx, &models.Expense{
		Amount:     decimal.RequireFromString("30.00"),
		Date:       models.NewDate(2024, 2, 1),
		CategoryID: category.ID,
	}, []int64{urgent.ID, work.ID})
	s.Require().NoError(err)
	s.Require().Len(expense.Tags, 2)

	deleted, err := s.repo.Delete(s.ctx, urgent.ID)
	s.Require().NoError(err)
	s.True(deleted)

	reloaded, err := s.expenses.GetByID(s.ctx, expense.ID)
	s.Require().NoError(err)
	s.Equal([]string{"work"}, reloaded.TagNames())

	var links int64
	s.NoError(s.db.Model(&models.ExpenseTag{}).Where("tag_id = ?", urgent.ID).Count(&links).Error)
	s.Zero(links)
}
