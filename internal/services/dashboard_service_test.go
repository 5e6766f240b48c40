package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"budgeteer/internal/models"
	"budgeteer/internal/severity"
	"budgeteer/internal/testutil"
)

func newDashboard(db *gorm.DB, latestLimit int) DashboardServicer {
	transactions := NewTransactionService(db)
	return NewDashboardService(
		NewBudgetService(db),
		transactions,
		NewAggregationService(db, transactions),
		severity.NewClassifier(severity.DefaultBands()),
		latestLimit,
	)
}

func TestDashboard(t *testing.T) {
	today := testutil.Date(2024, time.December, 15)

	t.Run("no_budget", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := newDashboard(db, 10)

		_, err := svc.Dashboard(today)
		testutil.AssertAppError(t, err, "NO_CURRENT_BUDGET")
	})

	t.Run("current_month_progress", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := newDashboard(db, 2)
		budget := testutil.CreateTestBudget(t, db, testutil.Date(2024, time.November, 1))
		food := testutil.CreateTestCategory(t, db)
		rent := testutil.CreateTestCategory(t, db)
		testutil.CreateTestEstimate(t, db, budget.ID, food.ID, "200.00")
		testutil.CreateTestEstimate(t, db, budget.ID, rent.ID, "800.00")

		testutil.CreateTestTransaction(t, db, food.ID, models.TransactionTypeExpense, "150.00", testutil.Date(2024, time.December, 1))
		testutil.CreateTestTransaction(t, db, rent.ID, models.TransactionTypeExpense, "650.00", testutil.Date(2024, time.December, 31))
		testutil.CreateTestTransaction(t, db, rent.ID, models.TransactionTypeExpense, "999.00", testutil.Date(2024, time.November, 30))
		testutil.CreateTestTransaction(t, db, food.ID, models.TransactionTypeIncome, "3000.00", testutil.Date(2024, time.December, 2))

		d, err := svc.Dashboard(today)
		testutil.AssertNoError(t, err)

		assert.Equal(t, budget.ID, d.Budget.ID)
		assert.True(t, d.EstimatedAmount.Equal(dec("1000.00")))
		assert.True(t, d.AmountUsed.Equal(dec("800.00")))
		assert.True(t, d.ProgressPercent.Equal(dec("80")), "progress %s", d.ProgressPercent)
		assert.Equal(t, severity.Warning, d.Severity)
		assert.Len(t, d.LatestExpenses, 2)
		require.Len(t, d.LatestIncomes, 1)
		assert.True(t, d.LatestIncomes[0].Amount.Equal(dec("3000.00")))
	})

	t.Run("over_budget_caps_progress", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := newDashboard(db, 10)
		budget := testutil.CreateTestBudget(t, db, testutil.Date(2024, time.December, 1))
		category := testutil.CreateTestCategory(t, db)
		testutil.CreateTestEstimate(t, db, budget.ID, category.ID, "10.00")
		testutil.CreateTestTransaction(t, db, category.ID, models.TransactionTypeExpense, "25.00", today)

		d, err := svc.Dashboard(today)
		testutil.AssertNoError(t, err)
		assert.True(t, d.ProgressPercent.Equal(dec("100")))
		assert.Equal(t, severity.Danger, d.Severity)
	})

	t.Run("budget_without_estimates", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := newDashboard(db, 10)
		testutil.CreateTestBudget(t, db, testutil.Date(2024, time.December, 1))

		d, err := svc.Dashboard(today)
		testutil.AssertNoError(t, err)
		assert.True(t, d.ProgressPercent.IsZero())
		assert.Equal(t, "", d.Severity)
		assert.NotNil(t, d.LatestExpenses)
		assert.NotNil(t, d.LatestIncomes)
	})
}

func TestProgressPercent(t *testing.T) {
	tests := []struct {
		name      string
		estimated string
		used      string
		want      string
	}{
		{"zero estimate", "0", "50", "0"},
		{"nothing used", "100", "0", "0"},
		{"partial", "300", "100", "33.33"},
		{"exact", "100", "100", "100"},
		{"over", "100", "250", "100"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProgressPercent(dec(tt.estimated), dec(tt.used))
			assert.True(t, got.Equal(dec(tt.want)), "got %s want %s", got, tt.want)
		})
	}
}
