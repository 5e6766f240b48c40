package services

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "budgeteer/internal/errors"
	"budgeteer/internal/models"
	"budgeteer/internal/pagination"
	"budgeteer/internal/period"
	"budgeteer/internal/repository"
)

// DefaultLatestLimit is the number of rows Latest returns when no positive
// limit is given.
const DefaultLatestLimit = 10

// transactionService handles transaction-related business logic.
type transactionService struct {
	db *gorm.DB
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB) TransactionServicer {
	return &transactionService{db: db}
}

// CreateTransaction records a transaction against an active category. A nil
// date means today.
func (s *transactionService) CreateTransaction(
	transactionType models.TransactionType,
	categoryID string,
	amount decimal.Decimal,
	date *time.Time,
	notes string,
) (*models.Transaction, error) {
	if transactionType == "" {
		transactionType = models.TransactionTypeExpense
	}
	if !transactionType.Valid() {
		return nil, apperrors.ErrInvalidTransactionType
	}
	if !amount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be positive")
	}

	category, err := activeCategory(s.db, categoryID)
	if err != nil {
		return nil, err
	}

	day := period.Today()
	if date != nil {
		day = period.Day(*date)
	}

	tx := &models.Transaction{
		Type:       transactionType,
		CategoryID: category.ID,
		Amount:     amount.Round(2),
		Date:       day,
		Notes:      strings.TrimSpace(notes),
	}
	if err := s.db.Create(tx).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	tx.Category = category

	return tx, nil
}

// ListTransactions returns a filtered, paginated list of active transactions,
// newest first.
func (s *transactionService) ListTransactions(page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults(pagination.DefaultPageSize)

	base := applyTransactionFilter(repository.Active(s.db).Model(&models.Transaction{}), filter)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := base.Preload("Category").
		Order("date DESC").Order("created_at DESC").
		Scopes(pagination.Paginate(page)).
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

func applyTransactionFilter(q *gorm.DB, filter TransactionFilter) *gorm.DB {
	if filter.FromDate != nil {
		q = q.Where("date >= ?", period.Day(*filter.FromDate))
	}
	if filter.ToDate != nil {
		q = q.Where("date <= ?", period.Day(*filter.ToDate))
	}
	if filter.Type != nil {
		q = q.Where("transaction_type = ?", *filter.Type)
	}
	if filter.CategoryID != nil {
		q = q.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.MinAmount != nil {
		q = q.Where("amount >= ?", *filter.MinAmount)
	}
	if filter.MaxAmount != nil {
		q = q.Where("amount <= ?", *filter.MaxAmount)
	}
	return q
}

// GetTransactionByID retrieves an active transaction by ID.
func (s *transactionService) GetTransactionByID(transactionID string) (*models.Transaction, error) {
	var tx models.Transaction
	err := repository.Active(s.db).Query().
		Preload("Category").
		Where("id = ?", transactionID).
		First(&tx).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &tx, nil
}

// UpdateTransaction applies the non-nil fields of update.
func (s *transactionService) UpdateTransaction(transactionID string, update TransactionUpdate) (*models.Transaction, error) {
	tx, err := s.GetTransactionByID(transactionID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if update.Type != nil {
		if !update.Type.Valid() {
			return nil, apperrors.ErrInvalidTransactionType
		}
		updates["transaction_type"] = *update.Type
	}
	if update.CategoryID != nil && *update.CategoryID != tx.CategoryID {
		category, err := activeCategory(s.db, *update.CategoryID)
		if err != nil {
			return nil, err
		}
		updates["category_id"] = category.ID
		tx.Category = category
	}
	if update.Amount != nil {
		if !update.Amount.IsPositive() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be positive")
		}
		updates["amount"] = update.Amount.Round(2)
	}
	if update.Date != nil {
		updates["date"] = period.Day(*update.Date)
	}
	if update.Notes != nil {
		updates["notes"] = strings.TrimSpace(*update.Notes)
	}

	if len(updates) > 0 {
		if err := repository.Update(s.db, tx, updates); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return tx, nil
}

// DeleteTransaction soft-deletes a transaction. It stops counting toward
// every aggregate immediately.
func (s *transactionService) DeleteTransaction(transactionID string) error {
	tx, err := s.GetTransactionByID(transactionID)
	if err != nil {
		return err
	}

	if err := repository.SoftDelete(s.db, tx); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// Matching returns active transactions for a category dated between start
// and end inclusive, ordered by date then creation time. An empty result is
// not an error.
func (s *transactionService) Matching(
	categoryID string,
	start, end time.Time,
	transactionType *models.TransactionType,
) ([]models.Transaction, error) {
	q := repository.Active(s.db).Model(&models.Transaction{}).
		Where("category_id = ?", categoryID).
		Where("date >= ? AND date <= ?", period.Day(start), period.Day(end))
	if transactionType != nil {
		q = q.Where("transaction_type = ?", *transactionType)
	}

	transactions := []models.Transaction{}
	if err := q.Order("date ASC").Order("created_at ASC").Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}

// Latest returns up to limit active transactions of the given type, newest
// first. A non-positive limit means DefaultLatestLimit.
func (s *transactionService) Latest(transactionType models.TransactionType, limit int) ([]models.Transaction, error) {
	if limit <= 0 {
		limit = DefaultLatestLimit
	}

	transactions := []models.Transaction{}
	err := repository.Active(s.db).Model(&models.Transaction{}).
		Preload("Category").
		Where("transaction_type = ?", transactionType).
		Order("date DESC").Order("created_at DESC").
		Limit(limit).
		Find(&transactions).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}

// Months lists the distinct calendar months holding at least one active
// transaction, newest first.
func (s *transactionService) Months() ([]period.YearMonth, error) {
	var dates []time.Time
	if err := repository.Active(s.db).Model(&models.Transaction{}).
		Distinct().
		Pluck("date", &dates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	seen := make(map[period.YearMonth]struct{}, len(dates))
	months := make([]period.YearMonth, 0, len(dates))
	for _, d := range dates {
		ym := period.Of(d)
		if _, ok := seen[ym]; ok {
			continue
		}
		seen[ym] = struct{}{}
		months = append(months, ym)
	}

	sort.Slice(months, func(i, j int) bool { return months[j].Before(months[i]) })
	return months, nil
}
