package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType represents the type of transaction
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// Transaction represents a single income or expense. It references a
// category only; estimates pick it up by category and date range.
type Transaction struct {
	Base
	Type       TransactionType `gorm:"column:transaction_type;size:32;not null;default:expense;index" json:"transaction_type"`
	CategoryID string          `gorm:"type:varchar(36);not null;index" json:"category_id"`
	Amount     decimal.Decimal `gorm:"type:numeric(11,2);not null" json:"amount"`
	Date       time.Time       `gorm:"type:date;not null;index" json:"date"`
	Notes      string          `gorm:"size:255" json:"notes"`

	// Relationships
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
