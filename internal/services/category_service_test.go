package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"budgeteer/internal/models"
	"budgeteer/internal/pagination"
	"budgeteer/internal/repository"
	"budgeteer/internal/testutil"
)

func TestCreateCategory(t *testing.T) {
	t.Run("derives_slug", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewCategoryService(db)

		category, err := svc.CreateCategory("  Café & Restaurants ")
		testutil.AssertNoError(t, err)

		assert.NotEmpty(t, category.ID)
		assert.Equal(t, "Café & Restaurants", category.Name)
		assert.Equal(t, "cafe-restaurants", category.Slug)
	})

	t.Run("empty_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewCategoryService(db)

		_, err := svc.CreateCategory("   ")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("name_without_slug_characters", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewCategoryService(db)

		_, err := svc.CreateCategory("!!!")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("duplicate_slug", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewCategoryService(db)

		_, err := svc.CreateCategory("Rent")
		testutil.AssertNoError(t, err)

		_, err = svc.CreateCategory("rent")
		testutil.AssertAppError(t, err, "DUPLICATE_SLUG")
	})

	t.Run("duplicate_of_deleted_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewCategoryService(db)

		category := testutil.CreateTestCategoryNamed(t, db, "Utilities")
		testutil.SoftDelete(t, db, category)

		_, err := svc.CreateCategory("Utilities")
		testutil.AssertAppError(t, err, "DUPLICATE_SLUG")
	})
}

func TestListCategories(t *testing.T) {
	t.Run("excludes_deleted_and_orders_by_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewCategoryService(db)

		testutil.CreateTestCategoryNamed(t, db, "Travel")
		testutil.CreateTestCategoryNamed(t, db, "Groceries")
		deleted := testutil.CreateTestCategoryNamed(t, db, "Books")
		testutil.SoftDelete(t, db, deleted)

		result, err := svc.ListCategories(pagination.PageRequest{})
		testutil.AssertNoError(t, err)

		assert.Equal(t, int64(2), result.TotalItems)
		require.Len(t, result.Data, 2)
		assert.Equal(t, "Groceries", result.Data[0].Name)
		assert.Equal(t, "Travel", result.Data[1].Name)
		assert.Equal(t, pagination.DefaultPageSize, result.PageSize)
	})

	t.Run("paginates", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewCategoryService(db)

		for i := 0; i < 5; i++ {
			testutil.CreateTestCategory(t, db)
		}

		result, err := svc.ListCategories(pagination.PageRequest{Page: 2, PageSize: 2})
		testutil.AssertNoError(t, err)

		assert.Equal(t, int64(5), result.TotalItems)
		assert.Equal(t, 3, result.TotalPages)
		assert.Len(t, result.Data, 2)
	})
}

func TestGetCategory(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewCategoryService(db)

	category := testutil.CreateTestCategoryNamed(t, db, "Fuel")

	found, err := svc.GetCategoryBySlug("fuel")
	testutil.AssertNoError(t, err)
	assert.Equal(t, category.ID, found.ID)

	found, err = svc.GetCategoryByID(category.ID)
	testutil.AssertNoError(t, err)
	assert.Equal(t, "fuel", found.Slug)

	_, err = svc.GetCategoryBySlug("missing")
	testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")

	testutil.SoftDelete(t, db, category)
	_, err = svc.GetCategoryBySlug("fuel")
	testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	_, err = svc.GetCategoryByID(category.ID)
	testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
}

func TestUpdateCategory(t *testing.T) {
	t.Run("keeps_slug", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewCategoryService(db)
		testutil.CreateTestCategoryNamed(t, db, "Food")

		updated, err := svc.UpdateCategory("food", "Food and Drink")
		testutil.AssertNoError(t, err)

		assert.Equal(t, "Food and Drink", updated.Name)
		assert.Equal(t, "food", updated.Slug)

		reloaded, err := svc.GetCategoryBySlug("food")
		testutil.AssertNoError(t, err)
		assert.Equal(t, "Food and Drink", reloaded.Name)
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewCategoryService(db)

		_, err := svc.UpdateCategory("nope", "Anything")
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})
}

func TestDeleteCategory(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewCategoryService(db)
	category := testutil.CreateTestCategoryNamed(t, db, "Gifts")

	testutil.AssertNoError(t, svc.DeleteCategory("gifts"))

	var stored models.Category
	require.NoError(t, repository.All(db).Query().Where("id = ?", category.ID).First(&stored).Error)
	assert.True(t, stored.IsDeleted)

	err := svc.DeleteCategory("gifts")
	testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
}
