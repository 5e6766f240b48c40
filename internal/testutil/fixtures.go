package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"budgeteer/internal/models"
	"budgeteer/internal/period"
	"budgeteer/internal/repository"
	"budgeteer/internal/slug"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// Date builds a calendar date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Money parses a decimal literal, failing the test on bad input.
func Money(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("invalid amount %q: %v", s, err)
	}
	return d
}

// CreateTestCategory creates a category with a unique name.
func CreateTestCategory(t *testing.T, db *gorm.DB) *models.Category {
	t.Helper()
	return CreateTestCategoryNamed(t, db, fmt.Sprintf("Test Category %d", nextID()))
}

// CreateTestCategoryNamed creates a category with the given name.
func CreateTestCategoryNamed(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()

	category := &models.Category{
		Name: name,
		Slug: slug.Make(name),
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestBudget creates a budget starting on the given date.
func CreateTestBudget(t *testing.T, db *gorm.DB, startDate time.Time) *models.Budget {
	t.Helper()

	name := fmt.Sprintf("Test Budget %d", nextID())
	budget := &models.Budget{
		Name:      name,
		Slug:      slug.Make(name),
		StartDate: period.Day(startDate),
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}

// CreateTestEstimate creates a monthly estimate for a category in a budget.
func CreateTestEstimate(t *testing.T, db *gorm.DB, budgetID, categoryID, amount string) *models.BudgetEstimate {
	t.Helper()

	estimate := &models.BudgetEstimate{
		BudgetID:   budgetID,
		CategoryID: categoryID,
		Amount:     Money(t, amount),
	}
	if err := db.Create(estimate).Error; err != nil {
		t.Fatalf("failed to create test estimate: %v", err)
	}
	return estimate
}

// CreateTestTransaction creates a transaction of the given type, amount and date.
func CreateTestTransaction(t *testing.T, db *gorm.DB, categoryID string, txType models.TransactionType, amount string, date time.Time) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		Type:       txType,
		CategoryID: categoryID,
		Amount:     Money(t, amount),
		Date:       period.Day(date),
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// SoftDelete marks a fixture as deleted.
func SoftDelete(t *testing.T, db *gorm.DB, model any) {
	t.Helper()

	if err := repository.SoftDelete(db, model); err != nil {
		t.Fatalf("failed to soft delete fixture: %v", err)
	}
}
