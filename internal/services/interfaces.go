package services

import (
	"time"

	"github.com/shopspring/decimal"

	"budgeteer/internal/models"
	"budgeteer/internal/pagination"
	"budgeteer/internal/period"
)

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	CreateCategory(name string) (*models.Category, error)
	ListCategories(page pagination.PageRequest) (*pagination.PageResponse[models.Category], error)
	GetCategoryBySlug(slug string) (*models.Category, error)
	GetCategoryByID(categoryID string) (*models.Category, error)
	UpdateCategory(slug, name string) (*models.Category, error)
	DeleteCategory(slug string) error
}

// BudgetServicer defines the contract for budget-related business logic.
type BudgetServicer interface {
	CreateBudget(name string, startDate *time.Time) (*models.Budget, error)
	ListBudgets(page pagination.PageRequest) (*pagination.PageResponse[models.Budget], error)
	GetBudgetBySlug(slug string) (*models.Budget, error)
	UpdateBudget(slug, name string, startDate *time.Time) (*models.Budget, error)
	DeleteBudget(slug string) error
	MostCurrentForDate(date time.Time) (*models.Budget, error)
}

// EstimateServicer defines the contract for budget estimate business logic.
// Estimates are always addressed through their owning budget.
type EstimateServicer interface {
	CreateEstimate(budgetSlug, categoryID string, amount decimal.Decimal) (*models.BudgetEstimate, error)
	ListEstimates(budgetSlug string) ([]models.BudgetEstimate, error)
	GetEstimate(budgetSlug, estimateID string) (*models.BudgetEstimate, error)
	UpdateEstimate(budgetSlug, estimateID string, categoryID *string, amount *decimal.Decimal) (*models.BudgetEstimate, error)
	DeleteEstimate(budgetSlug, estimateID string) error
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	FromDate   *time.Time
	ToDate     *time.Time
	Type       *models.TransactionType
	CategoryID *string
	MinAmount  *decimal.Decimal
	MaxAmount  *decimal.Decimal
}

// TransactionUpdate carries the fields to change on a transaction. Nil
// fields are left untouched.
type TransactionUpdate struct {
	Type       *models.TransactionType
	CategoryID *string
	Amount     *decimal.Decimal
	Date       *time.Time
	Notes      *string
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(transactionType models.TransactionType, categoryID string, amount decimal.Decimal, date *time.Time, notes string) (*models.Transaction, error)
	ListTransactions(page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetTransactionByID(transactionID string) (*models.Transaction, error)
	UpdateTransaction(transactionID string, update TransactionUpdate) (*models.Transaction, error)
	DeleteTransaction(transactionID string) error

	// Matching returns active transactions of a category dated within
	// [start, end], oldest first, optionally restricted to one type.
	Matching(categoryID string, start, end time.Time, transactionType *models.TransactionType) ([]models.Transaction, error)
	// Latest returns the most recent active transactions of a type.
	Latest(transactionType models.TransactionType, limit int) ([]models.Transaction, error)
	// Months lists the calendar months that have active transactions, newest first.
	Months() ([]period.YearMonth, error)
}

// EstimateActual pairs an estimate with the expenses that count against it
// over a period.
type EstimateActual struct {
	Estimate     models.BudgetEstimate `json:"estimate"`
	Transactions []models.Transaction  `json:"transactions"`
	ActualAmount decimal.Decimal       `json:"actual_amount"`
}

// AggregationServicer rolls transactions up against a budget's estimates.
type AggregationServicer interface {
	EstimatesAndTransactions(budget *models.Budget, start, end time.Time) ([]EstimateActual, decimal.Decimal, error)
	ActualTotal(budget *models.Budget, start, end time.Time) (decimal.Decimal, error)
	MonthlyEstimatedTotal(budget *models.Budget) (decimal.Decimal, error)
	YearlyEstimatedTotal(budget *models.Budget) (decimal.Decimal, error)
}

// SummaryRow is one estimate line of a period summary.
type SummaryRow struct {
	EstimateActual
	EstimatedAmount decimal.Decimal `json:"estimated_amount"`
	Severity        string          `json:"severity"`
}

// PeriodSummary is the budget-versus-actual report for a month or a year.
type PeriodSummary struct {
	Period         period.Range    `json:"period"`
	Budget         *models.Budget  `json:"budget"`
	Rows           []SummaryRow    `json:"rows"`
	ActualTotal    decimal.Decimal `json:"actual_total"`
	EstimatedTotal decimal.Decimal `json:"estimated_total"`
	Severity       string          `json:"severity"`
}

// SummaryServicer builds historical summaries.
type SummaryServicer interface {
	Months() ([]period.YearMonth, error)
	Year(year int) (*PeriodSummary, error)
	Month(year int, month time.Month) (*PeriodSummary, error)
}

// Dashboard is the current-month overview.
type Dashboard struct {
	Budget          *models.Budget       `json:"budget"`
	Period          period.Range         `json:"period"`
	EstimatedAmount decimal.Decimal      `json:"estimated_amount"`
	AmountUsed      decimal.Decimal      `json:"amount_used"`
	ProgressPercent decimal.Decimal      `json:"progress_percent"`
	Severity        string               `json:"severity"`
	LatestExpenses  []models.Transaction `json:"latest_expenses"`
	LatestIncomes   []models.Transaction `json:"latest_incomes"`
}

// DashboardServicer builds the dashboard for a reference date.
type DashboardServicer interface {
	Dashboard(today time.Time) (*Dashboard, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
