package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// monthsPerYear converts monthly estimates into yearly ones.
var monthsPerYear = decimal.NewFromInt(12)

// Budget is a named, dated container of per-category monthly estimates.
// It becomes effective on StartDate and stays current until a budget with a
// later start date exists.
type Budget struct {
	Base
	Name      string    `gorm:"size:100;not null" json:"name"`
	Slug      string    `gorm:"size:100;not null;uniqueIndex" json:"slug"`
	StartDate time.Time `gorm:"type:date;not null;index" json:"start_date"`

	// Relationships
	Estimates []BudgetEstimate `gorm:"foreignKey:BudgetID" json:"estimates,omitempty"`
}

// BudgetEstimate is the planned monthly spend for one category in one budget.
type BudgetEstimate struct {
	Base
	BudgetID   string          `gorm:"type:varchar(36);not null;index" json:"budget_id"`
	CategoryID string          `gorm:"type:varchar(36);not null;index" json:"category_id"`
	Amount     decimal.Decimal `gorm:"type:numeric(11,2);not null" json:"amount"`

	// Relationships
	Budget   *Budget   `gorm:"foreignKey:BudgetID" json:"-"`
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// YearlyEstimatedAmount returns the monthly amount scaled to a year.
func (e BudgetEstimate) YearlyEstimatedAmount() decimal.Decimal {
	return e.Amount.Mul(monthsPerYear)
}

// Yearly scales a monthly amount to a year.
func Yearly(monthly decimal.Decimal) decimal.Decimal {
	return monthly.Mul(monthsPerYear)
}
