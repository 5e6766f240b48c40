package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "budgeteer/internal/errors"
	"budgeteer/internal/models"
	"budgeteer/internal/pagination"
	"budgeteer/internal/repository"
	"budgeteer/internal/slug"
)

// categoryService handles category-related business logic.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// CreateCategory creates a new category. The slug is derived from the name
// and never changes afterwards.
func (s *categoryService) CreateCategory(name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}

	sl, err := uniqueSlug(s.db, &models.Category{}, name)
	if err != nil {
		return nil, err
	}

	category := &models.Category{Name: name, Slug: sl}
	if err := s.db.Create(category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return category, nil
}

// ListCategories retrieves a paginated list of active categories ordered by name.
func (s *categoryService) ListCategories(page pagination.PageRequest) (*pagination.PageResponse[models.Category], error) {
	page.Defaults(pagination.DefaultPageSize)

	var totalItems int64
	base := repository.Active(s.db).Model(&models.Category{})
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var categories []models.Category
	if err := base.Order("name ASC").Scopes(pagination.Paginate(page)).Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(categories, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetCategoryBySlug retrieves an active category by slug.
func (s *categoryService) GetCategoryBySlug(sl string) (*models.Category, error) {
	var category models.Category
	if err := repository.Active(s.db).Query().Where("slug = ?", sl).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// GetCategoryByID retrieves an active category by ID.
func (s *categoryService) GetCategoryByID(categoryID string) (*models.Category, error) {
	return activeCategory(s.db, categoryID)
}

// UpdateCategory renames a category. The slug is left as it was.
func (s *categoryService) UpdateCategory(sl, name string) (*models.Category, error) {
	category, err := s.GetCategoryBySlug(sl)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" || name == category.Name {
		return category, nil
	}

	if err := repository.Update(s.db, category, map[string]interface{}{"name": name}); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return category, nil
}

// DeleteCategory soft-deletes a category. Transactions and estimates keep
// their reference to it.
func (s *categoryService) DeleteCategory(sl string) error {
	category, err := s.GetCategoryBySlug(sl)
	if err != nil {
		return err
	}

	if err := repository.SoftDelete(s.db, category); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// activeCategory loads a non-deleted category by ID.
func activeCategory(db *gorm.DB, categoryID string) (*models.Category, error) {
	var category models.Category
	if err := repository.Active(db).Query().Where("id = ?", categoryID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// uniqueSlug derives a slug from name and checks it against every row of
// model's table, deleted ones included, since the column is unique.
func uniqueSlug(db *gorm.DB, model any, name string) (string, error) {
	sl := slug.Make(name)
	if sl == "" {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "name must contain at least one letter or digit")
	}

	var count int64
	if err := repository.All(db).Model(model).Where("slug = ?", sl).Count(&count).Error; err != nil {
		return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return "", apperrors.ErrDuplicateSlug
	}
	return sl, nil
}
