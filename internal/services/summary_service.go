package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	apperrors "budgeteer/internal/errors"
	"budgeteer/internal/models"
	"budgeteer/internal/period"
	"budgeteer/internal/severity"
)

// summaryService builds budget-versus-actual reports for past periods.
type summaryService struct {
	budgets      BudgetServicer
	transactions TransactionServicer
	aggregation  AggregationServicer
	classifier   *severity.Classifier
}

// NewSummaryService creates a new SummaryServicer.
func NewSummaryService(
	budgets BudgetServicer,
	transactions TransactionServicer,
	aggregation AggregationServicer,
	classifier *severity.Classifier,
) SummaryServicer {
	return &summaryService{
		budgets:      budgets,
		transactions: transactions,
		aggregation:  aggregation,
		classifier:   classifier,
	}
}

// Months lists the months that have transactions, newest first.
func (s *summaryService) Months() ([]period.YearMonth, error) {
	return s.transactions.Months()
}

// Year reports the whole calendar year against the budget in effect on
// December 31st, comparing actuals to yearly estimates.
func (s *summaryService) Year(year int) (*PeriodSummary, error) {
	if year < 1 || year > 9999 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "year out of range")
	}
	return s.summarize(period.Year(year), models.Yearly)
}

// Month reports one calendar month against the budget in effect on its
// last day, comparing actuals to monthly estimates.
func (s *summaryService) Month(year int, month time.Month) (*PeriodSummary, error) {
	if year < 1 || year > 9999 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "year out of range")
	}
	r, err := period.Month(year, month)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
	}
	return s.summarize(r, monthly)
}

func monthly(amount decimal.Decimal) decimal.Decimal { return amount }

// summarize resolves the budget current at the end of r and rolls its
// estimates up over r. scale turns a monthly estimate into the period's.
func (s *summaryService) summarize(r period.Range, scale func(decimal.Decimal) decimal.Decimal) (*PeriodSummary, error) {
	summary := &PeriodSummary{
		Period:         r,
		Rows:           []SummaryRow{},
		ActualTotal:    decimal.Zero,
		EstimatedTotal: decimal.Zero,
	}

	budget, err := s.budgets.MostCurrentForDate(r.End)
	if err != nil {
		if errors.Is(err, apperrors.ErrNoCurrentBudget) {
			return summary, nil
		}
		return nil, err
	}
	summary.Budget = budget

	rows, actualTotal, err := s.aggregation.EstimatesAndTransactions(budget, r.Start, r.End)
	if err != nil {
		return nil, err
	}

	estimatedTotal := decimal.Zero
	for _, row := range rows {
		estimated := scale(row.Estimate.Amount)
		estimatedTotal = estimatedTotal.Add(estimated)
		summary.Rows = append(summary.Rows, SummaryRow{
			EstimateActual:  row,
			EstimatedAmount: estimated,
			Severity:        s.classifier.Colorize(estimated, row.ActualAmount),
		})
	}

	summary.ActualTotal = actualTotal
	summary.EstimatedTotal = estimatedTotal
	summary.Severity = s.classifier.Colorize(estimatedTotal, actualTotal)
	return summary, nil
}
