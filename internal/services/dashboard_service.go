package services

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"budgeteer/internal/models"
	"budgeteer/internal/period"
	"budgeteer/internal/severity"
)

var hundred = decimal.NewFromInt(100)

// dashboardService assembles the current-month overview.
type dashboardService struct {
	budgets      BudgetServicer
	transactions TransactionServicer
	aggregation  AggregationServicer
	classifier   *severity.Classifier
	latestLimit  int
}

// NewDashboardService creates a new DashboardServicer. latestLimit bounds the
// latest expense and income lists.
func NewDashboardService(
	budgets BudgetServicer,
	transactions TransactionServicer,
	aggregation AggregationServicer,
	classifier *severity.Classifier,
	latestLimit int,
) DashboardServicer {
	return &dashboardService{
		budgets:      budgets,
		transactions: transactions,
		aggregation:  aggregation,
		classifier:   classifier,
		latestLimit:  latestLimit,
	}
}

// Dashboard reports the month containing today against the budget current
// on today. It returns ErrNoCurrentBudget when setup has not happened yet.
func (s *dashboardService) Dashboard(today time.Time) (*Dashboard, error) {
	budget, err := s.budgets.MostCurrentForDate(today)
	if err != nil {
		return nil, err
	}

	month := period.MonthOf(today)
	d := &Dashboard{Budget: budget, Period: month}

	var g errgroup.Group
	g.Go(func() error {
		estimated, err := s.aggregation.MonthlyEstimatedTotal(budget)
		d.EstimatedAmount = estimated
		return err
	})
	g.Go(func() error {
		used, err := s.aggregation.ActualTotal(budget, month.Start, month.End)
		d.AmountUsed = used
		return err
	})
	g.Go(func() error {
		expenses, err := s.transactions.Latest(models.TransactionTypeExpense, s.latestLimit)
		d.LatestExpenses = expenses
		return err
	})
	g.Go(func() error {
		incomes, err := s.transactions.Latest(models.TransactionTypeIncome, s.latestLimit)
		d.LatestIncomes = incomes
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	d.ProgressPercent = ProgressPercent(d.EstimatedAmount, d.AmountUsed)
	d.Severity = s.classifier.Colorize(d.EstimatedAmount, d.AmountUsed)
	return d, nil
}

// ProgressPercent is used/estimated as a percentage capped at 100. A zero
// estimate yields 0.
func ProgressPercent(estimated, used decimal.Decimal) decimal.Decimal {
	if estimated.IsZero() {
		return decimal.Zero
	}
	pct := used.Div(estimated).Mul(hundred).Round(2)
	if pct.GreaterThan(hundred) {
		return hundred
	}
	return pct
}
