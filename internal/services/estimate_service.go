package services

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "budgeteer/internal/errors"
	"budgeteer/internal/models"
	"budgeteer/internal/repository"
)

// estimateService handles budget estimate business logic.
type estimateService struct {
	db *gorm.DB
}

// NewEstimateService creates a new EstimateServicer.
func NewEstimateService(db *gorm.DB) EstimateServicer {
	return &estimateService{db: db}
}

// CreateEstimate adds a monthly estimate for a category to a budget. Both
// the budget and the category must be active.
func (s *estimateService) CreateEstimate(budgetSlug, categoryID string, amount decimal.Decimal) (*models.BudgetEstimate, error) {
	if !amount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be positive")
	}

	budget, err := activeBudget(s.db, budgetSlug)
	if err != nil {
		return nil, err
	}
	category, err := activeCategory(s.db, categoryID)
	if err != nil {
		return nil, err
	}

	estimate := &models.BudgetEstimate{
		BudgetID:   budget.ID,
		CategoryID: category.ID,
		Amount:     amount.Round(2),
	}
	if err := s.db.Create(estimate).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	estimate.Category = category

	return estimate, nil
}

// ListEstimates returns the active estimates of an active budget in creation order.
func (s *estimateService) ListEstimates(budgetSlug string) ([]models.BudgetEstimate, error) {
	budget, err := activeBudget(s.db, budgetSlug)
	if err != nil {
		return nil, err
	}

	var estimates []models.BudgetEstimate
	if err := activeEstimates(s.db).
		Preload("Category").
		Where("budget_id = ?", budget.ID).
		Find(&estimates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if estimates == nil {
		estimates = []models.BudgetEstimate{}
	}
	return estimates, nil
}

// GetEstimate returns one active estimate of an active budget.
func (s *estimateService) GetEstimate(budgetSlug, estimateID string) (*models.BudgetEstimate, error) {
	budget, err := activeBudget(s.db, budgetSlug)
	if err != nil {
		return nil, err
	}

	var estimate models.BudgetEstimate
	err = repository.Active(s.db).Query().
		Preload("Category").
		Where("id = ? AND budget_id = ?", estimateID, budget.ID).
		First(&estimate).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrEstimateNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &estimate, nil
}

// UpdateEstimate changes an estimate's category or amount.
func (s *estimateService) UpdateEstimate(budgetSlug, estimateID string, categoryID *string, amount *decimal.Decimal) (*models.BudgetEstimate, error) {
	estimate, err := s.GetEstimate(budgetSlug, estimateID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if categoryID != nil && *categoryID != estimate.CategoryID {
		category, err := activeCategory(s.db, *categoryID)
		if err != nil {
			return nil, err
		}
		updates["category_id"] = category.ID
		estimate.Category = category
	}
	if amount != nil {
		if !amount.IsPositive() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be positive")
		}
		updates["amount"] = amount.Round(2)
	}

	if len(updates) > 0 {
		if err := repository.Update(s.db, estimate, updates); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return estimate, nil
}

// DeleteEstimate soft-deletes an estimate.
func (s *estimateService) DeleteEstimate(budgetSlug, estimateID string) error {
	estimate, err := s.GetEstimate(budgetSlug, estimateID)
	if err != nil {
		return err
	}

	if err := repository.SoftDelete(s.db, estimate); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
