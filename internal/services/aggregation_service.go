package services

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "budgeteer/internal/errors"
	"budgeteer/internal/models"
)

// aggregationService rolls expense transactions up against budget estimates.
// Transactions are matched to an estimate by category and date range only.
type aggregationService struct {
	db           *gorm.DB
	transactions TransactionServicer
}

// NewAggregationService creates a new AggregationServicer.
func NewAggregationService(db *gorm.DB, transactions TransactionServicer) AggregationServicer {
	return &aggregationService{db: db, transactions: transactions}
}

// EstimatesAndTransactions returns, for each active estimate of the budget in
// creation order, the expenses of its category within [start, end] and their
// sum. The second result is the sum of every row's actual amount.
func (s *aggregationService) EstimatesAndTransactions(budget *models.Budget, start, end time.Time) ([]EstimateActual, decimal.Decimal, error) {
	estimates, err := s.estimates(budget)
	if err != nil {
		return nil, decimal.Zero, err
	}

	expense := models.TransactionTypeExpense
	rows := make([]EstimateActual, 0, len(estimates))
	total := decimal.Zero

	for _, estimate := range estimates {
		transactions, err := s.transactions.Matching(estimate.CategoryID, start, end, &expense)
		if err != nil {
			return nil, decimal.Zero, err
		}

		actual := sumAmounts(transactions)
		total = total.Add(actual)
		rows = append(rows, EstimateActual{
			Estimate:     estimate,
			Transactions: transactions,
			ActualAmount: actual,
		})
	}

	return rows, total, nil
}

// ActualTotal returns the total expenses counted against the budget's
// estimates over [start, end].
func (s *aggregationService) ActualTotal(budget *models.Budget, start, end time.Time) (decimal.Decimal, error) {
	_, total, err := s.EstimatesAndTransactions(budget, start, end)
	return total, err
}

// MonthlyEstimatedTotal sums the amounts of the budget's active estimates.
func (s *aggregationService) MonthlyEstimatedTotal(budget *models.Budget) (decimal.Decimal, error) {
	estimates, err := s.estimates(budget)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, estimate := range estimates {
		total = total.Add(estimate.Amount)
	}
	return total, nil
}

// YearlyEstimatedTotal is the monthly estimated total times twelve.
func (s *aggregationService) YearlyEstimatedTotal(budget *models.Budget) (decimal.Decimal, error) {
	monthly, err := s.MonthlyEstimatedTotal(budget)
	if err != nil {
		return decimal.Zero, err
	}
	return models.Yearly(monthly), nil
}

// estimates reloads the budget's active estimates so that results never
// depend on what the caller happened to preload.
func (s *aggregationService) estimates(budget *models.Budget) ([]models.BudgetEstimate, error) {
	if budget == nil {
		return nil, apperrors.ErrBudgetNotFound
	}

	var estimates []models.BudgetEstimate
	if err := activeEstimates(s.db).
		Preload("Category").
		Where("budget_id = ?", budget.ID).
		Find(&estimates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return estimates, nil
}

func sumAmounts(transactions []models.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range transactions {
		total = total.Add(tx.Amount)
	}
	return total
}
