package models

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

const MaxNameLength = 100

var (
	ErrNameRequired = errors.New("name is required")
	ErrNameTooLong  = errors.New("name is too long")
)

// Category is a named spending bucket. Every expense belongs to exactly one.
type Category struct {
	ID   int64  `gorm:"primaryKey" json:"id"`
	Name string `gorm:"type:varchar(100);not null;uniqueIndex" json:"name"`
}

// TableName returns the table name for Category
func (Category) TableName() string {
	return "categories"
}

// BeforeCreate hook for Category
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	c.Name = NormalizeName(c.Name)
	return ValidateName(c.Name)
}

// NormalizeName trims surrounding whitespace from a category or tag name.
func NormalizeName(name string) string {
	return strings.TrimSpace(name)
}

// ValidateName checks a normalized category or tag name.
func ValidateName(name string) error {
	if name == "" {
		return ErrNameRequired
	}
	if len([]rune(name)) > MaxNameLength {
		return ErrNameTooLong
	}
	return nil
}
