package models

import "gorm.io/gorm"

// Tag is a free-form label attached to any number of expenses.
type Tag struct {
	ID   int64  `gorm:"primaryKey" json:"id"`
	Name string `gorm:"type:varchar(100);not null;uniqueIndex" json:"name"`
}

// TableName returns the table name for Tag
func (Tag) TableName() string {
	return "tags"
}

// BeforeCreate hook for Tag
func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	t.Name = NormalizeName(t.Name)
	return ValidateName(t.Name)
}

// ExpenseTag is a row of the expense <-> tag join table. The pair is the
// primary key, so an expense never carries the same tag twice.
type ExpenseTag struct {
	ExpenseID int64 `gorm:"primaryKey;autoIncrement:false"`
	TagID     int64 `gorm:"primaryKey;autoIncrement:false;index"`
}

// TableName returns the table name for ExpenseTag
func (ExpenseTag) TableName() string {
	return "expense_tags"
}
