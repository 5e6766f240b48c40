package handlers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "budgeteer/internal/errors"
	"budgeteer/internal/models"
	"budgeteer/internal/pagination"
	"budgeteer/internal/services"
)

// --- mock category service ---

type mockCategoryService struct {
	createCategoryFn    func(name string) (*models.Category, error)
	listCategoriesFn    func(page pagination.PageRequest) (*pagination.PageResponse[models.Category], error)
	getCategoryBySlugFn func(slug string) (*models.Category, error)
	updateCategoryFn    func(slug, name string) (*models.Category, error)
	deleteCategoryFn    func(slug string) error
}

func (m *mockCategoryService) CreateCategory(name string) (*models.Category, error) {
	if m.createCategoryFn != nil {
		return m.createCategoryFn(name)
	}
	return &models.Category{Name: name}, nil
}

func (m *mockCategoryService) ListCategories(page pagination.PageRequest) (*pagination.PageResponse[models.Category], error) {
	if m.listCategoriesFn != nil {
		return m.listCategoriesFn(page)
	}
	resp := pagination.NewPageResponse([]models.Category{}, page.Page, page.PageSize, 0)
	return &resp, nil
}

func (m *mockCategoryService) GetCategoryBySlug(slug string) (*models.Category, error) {
	if m.getCategoryBySlugFn != nil {
		return m.getCategoryBySlugFn(slug)
	}
	return &models.Category{Slug: slug}, nil
}

func (m *mockCategoryService) GetCategoryByID(categoryID string) (*models.Category, error) {
	return &models.Category{Base: models.Base{ID: categoryID}}, nil
}

func (m *mockCategoryService) UpdateCategory(slug, name string) (*models.Category, error) {
	if m.updateCategoryFn != nil {
		return m.updateCategoryFn(slug, name)
	}
	return &models.Category{Slug: slug, Name: name}, nil
}

func (m *mockCategoryService) DeleteCategory(slug string) error {
	if m.deleteCategoryFn != nil {
		return m.deleteCategoryFn(slug)
	}
	return nil
}

var _ services.CategoryServicer = (*mockCategoryService)(nil)

func setupCategoryRouter(handler *CategoryHandler) *gin.Engine {
	r := gin.New()
	r.POST("/categories", handler.CreateCategory)
	r.GET("/categories", handler.ListCategories)
	r.GET("/categories/:slug", handler.GetCategory)
	r.PUT("/categories/:slug", handler.UpdateCategory)
	r.DELETE("/categories/:slug", handler.DeleteCategory)
	return r
}

func TestCategoryHandler_CreateCategory(t *testing.T) {
	t.Run("returns 201 and audits", func(t *testing.T) {
		svc := &mockCategoryService{
			createCategoryFn: func(name string) (*models.Category, error) {
				return &models.Category{Base: models.Base{ID: testCategoryID}, Name: name, Slug: "groceries"}, nil
			},
		}
		audit := &mockAuditService{}
		r := setupCategoryRouter(NewCategoryHandler(svc, audit, 10))

		rec := doRequest(r, "POST", "/categories", `{"name":"Groceries"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		category := parseJSON(t, rec)["category"].(map[string]interface{})
		if category["slug"] != "groceries" {
			t.Errorf("expected slug groceries, got %v", category["slug"])
		}
		if len(audit.calls) != 1 || audit.calls[0].action != services.AuditActionCreate || audit.calls[0].resourceID != testCategoryID {
			t.Errorf("unexpected audit calls: %+v", audit.calls)
		}
	})

	t.Run("returns 400 on missing name", func(t *testing.T) {
		r := setupCategoryRouter(NewCategoryHandler(&mockCategoryService{}, &mockAuditService{}, 10))

		rec := doRequest(r, "POST", "/categories", `{}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 409 on duplicate slug", func(t *testing.T) {
		svc := &mockCategoryService{
			createCategoryFn: func(string) (*models.Category, error) { return nil, apperrors.ErrDuplicateSlug },
		}
		audit := &mockAuditService{}
		r := setupCategoryRouter(NewCategoryHandler(svc, audit, 10))

		rec := doRequest(r, "POST", "/categories", `{"name":"Groceries"}`)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "DUPLICATE_SLUG")
		if len(audit.calls) != 0 {
			t.Errorf("expected no audit on failure, got %+v", audit.calls)
		}
	})
}

func TestCategoryHandler_ListCategories(t *testing.T) {
	t.Run("applies configured page size", func(t *testing.T) {
		var got pagination.PageRequest
		svc := &mockCategoryService{
			listCategoriesFn: func(page pagination.PageRequest) (*pagination.PageResponse[models.Category], error) {
				got = page
				resp := pagination.NewPageResponse([]models.Category{{Name: "Rent"}}, page.Page, page.PageSize, 1)
				return &resp, nil
			},
		}
		r := setupCategoryRouter(NewCategoryHandler(svc, &mockAuditService{}, 7))

		rec := doRequest(r, "GET", "/categories", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if got.Page != 1 || got.PageSize != 7 {
			t.Errorf("expected page 1 size 7, got %+v", got)
		}
		if parseJSON(t, rec)["total_items"].(float64) != 1 {
			t.Error("expected total_items 1")
		}
	})

	t.Run("returns 400 on bad page size", func(t *testing.T) {
		r := setupCategoryRouter(NewCategoryHandler(&mockCategoryService{}, &mockAuditService{}, 10))

		rec := doRequest(r, "GET", "/categories?page_size=1000", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestCategoryHandler_GetCategory(t *testing.T) {
	t.Run("returns 404 when missing", func(t *testing.T) {
		svc := &mockCategoryService{
			getCategoryBySlugFn: func(string) (*models.Category, error) { return nil, apperrors.ErrCategoryNotFound },
		}
		r := setupCategoryRouter(NewCategoryHandler(svc, &mockAuditService{}, 10))

		rec := doRequest(r, "GET", "/categories/nope", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "CATEGORY_NOT_FOUND")
	})

	t.Run("returns 500 without leaking internals", func(t *testing.T) {
		svc := &mockCategoryService{
			getCategoryBySlugFn: func(string) (*models.Category, error) {
				return nil, apperrors.Wrap(apperrors.ErrInternalServer, errors.New("disk on fire"))
			},
		}
		r := setupCategoryRouter(NewCategoryHandler(svc, &mockAuditService{}, 10))

		rec := doRequest(r, "GET", "/categories/food", "")

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
		errObj := parseJSON(t, rec)["error"].(map[string]interface{})
		if errObj["message"] != apperrors.ErrInternalServer.Message {
			t.Errorf("expected generic message, got %v", errObj["message"])
		}
	})
}

func TestCategoryHandler_UpdateAndDelete(t *testing.T) {
	audit := &mockAuditService{}
	var renamedSlug, deletedSlug string
	svc := &mockCategoryService{
		updateCategoryFn: func(slug, name string) (*models.Category, error) {
			renamedSlug = slug
			return &models.Category{Base: models.Base{ID: testCategoryID}, Slug: slug, Name: name}, nil
		},
		deleteCategoryFn: func(slug string) error {
			deletedSlug = slug
			return nil
		},
	}
	r := setupCategoryRouter(NewCategoryHandler(svc, audit, 10))

	rec := doRequest(r, "PUT", "/categories/food", `{"name":"Food and Drink"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if renamedSlug != "food" {
		t.Errorf("expected slug food, got %s", renamedSlug)
	}

	rec = doRequest(r, "DELETE", "/categories/food", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if deletedSlug != "food" {
		t.Errorf("expected slug food, got %s", deletedSlug)
	}
	if len(audit.calls) != 2 || audit.calls[1].action != services.AuditActionDelete {
		t.Errorf("unexpected audit calls: %+v", audit.calls)
	}
}
