package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "budgeteer/internal/errors"
	"budgeteer/internal/models"
	"budgeteer/internal/pagination"
	"budgeteer/internal/period"
	"budgeteer/internal/repository"
)

// budgetService handles budget-related business logic.
type budgetService struct {
	db *gorm.DB
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB) BudgetServicer {
	return &budgetService{db: db}
}

// CreateBudget creates a budget. A nil start date means today.
func (s *budgetService) CreateBudget(name string, startDate *time.Time) (*models.Budget, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "budget name is required")
	}

	sl, err := uniqueSlug(s.db, &models.Budget{}, name)
	if err != nil {
		return nil, err
	}

	start := period.Today()
	if startDate != nil {
		start = period.Day(*startDate)
	}

	budget := &models.Budget{
		Name:      name,
		Slug:      sl,
		StartDate: start,
	}
	if err := s.db.Create(budget).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return budget, nil
}

// ListBudgets returns a paginated list of active budgets, latest start date first.
func (s *budgetService) ListBudgets(page pagination.PageRequest) (*pagination.PageResponse[models.Budget], error) {
	page.Defaults(pagination.DefaultPageSize)

	base := repository.Active(s.db).Model(&models.Budget{})

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var budgets []models.Budget
	if err := base.Order("start_date DESC").Order("created_at DESC").
		Scopes(pagination.Paginate(page)).Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(budgets, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetBudgetBySlug returns an active budget with its active estimates.
func (s *budgetService) GetBudgetBySlug(sl string) (*models.Budget, error) {
	var budget models.Budget
	err := repository.Active(s.db).Query().
		Preload("Estimates", activeEstimates).
		Preload("Estimates.Category").
		Where("slug = ?", sl).
		First(&budget).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &budget, nil
}

// UpdateBudget changes a budget's name or start date. The slug is kept.
func (s *budgetService) UpdateBudget(sl, name string, startDate *time.Time) (*models.Budget, error) {
	budget, err := s.GetBudgetBySlug(sl)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if name = strings.TrimSpace(name); name != "" {
		updates["name"] = name
	}
	if startDate != nil {
		updates["start_date"] = period.Day(*startDate)
	}

	if len(updates) > 0 {
		if err := repository.Update(s.db, budget, updates); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return budget, nil
}

// DeleteBudget soft-deletes a budget. Its estimates stay as they are but are
// no longer reachable through the active budget listing.
func (s *budgetService) DeleteBudget(sl string) error {
	budget, err := s.GetBudgetBySlug(sl)
	if err != nil {
		return err
	}

	if err := repository.SoftDelete(s.db, budget); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// MostCurrentForDate returns the active budget with the latest start date on
// or before date. Budgets sharing that start date are ordered by creation
// time, most recent first. It returns ErrNoCurrentBudget when no budget has
// started yet.
func (s *budgetService) MostCurrentForDate(date time.Time) (*models.Budget, error) {
	var budget models.Budget
	err := repository.Active(s.db).Query().
		Where("start_date <= ?", period.Day(date)).
		Order("start_date DESC").
		Order("created_at DESC").
		Preload("Estimates", activeEstimates).
		Preload("Estimates.Category").
		First(&budget).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNoCurrentBudget
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &budget, nil
}

// activeEstimates restricts a preload to non-deleted estimates in creation order.
func activeEstimates(db *gorm.DB) *gorm.DB {
	return repository.NotDeleted(db).Order("created_at ASC")
}

// activeBudget loads a non-deleted budget by slug without its estimates.
func activeBudget(db *gorm.DB, sl string) (*models.Budget, error) {
	var budget models.Budget
	if err := repository.Active(db).Query().Where("slug = ?", sl).First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &budget, nil
}
