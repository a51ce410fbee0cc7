package repositories

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Error classes. Entity-specific errors wrap one of these so callers can
// branch on either the class or the exact condition.
var (
	ErrNotFound            = errors.New("record not found")
	ErrConflict            = errors.New("conflicting record")
	ErrConstraintViolation = errors.New("constraint violation")
)

var (
	ErrCategoryNotFound = fmt.Errorf("category not found: %w", ErrNotFound)
	ErrCategoryExists   = fmt.Errorf("category name already exists: %w", ErrConflict)
	ErrCategoryInUse    = fmt.Errorf("category still has expenses: %w", ErrConflict)
	ErrUnknownCategory  = fmt.Errorf("category does not exist: %w", ErrConstraintViolation)

	ErrTagNotFound = fmt.Errorf("tag not found: %w", ErrNotFound)
	ErrTagExists   = fmt.Errorf("tag name already exists: %w", ErrConflict)

	ErrExpenseNotFound = fmt.Errorf("expense not found: %w", ErrNotFound)
)

// isDuplicateKeyError detects unique violations, translated or not
func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	errStr := err.Error()
	return strings.Contains(errStr, "duplicate key") ||
		strings.Contains(errStr, "UNIQUE constraint") ||
		strings.Contains(errStr, "23505")
}

// isForeignKeyError detects foreign key violations, translated or not
func isForeignKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}

	errStr := err.Error()
	return strings.Contains(errStr, "FOREIGN KEY constraint") ||
		strings.Contains(errStr, "violates foreign key constraint") ||
		strings.Contains(errStr, "23503")
}
