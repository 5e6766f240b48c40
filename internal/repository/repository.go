// Package repository provides the two read scopes over soft-deletable
// tables. Every read path that represents current data goes through
// Active; All is kept for audit and administrative lookups.
package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ActiveRepository restricts queries to rows that are not soft-deleted.
type ActiveRepository struct {
	db *gorm.DB
}

// AllRepository sees every row, including soft-deleted ones.
type AllRepository struct {
	db *gorm.DB
}

// Active returns a repository over non-deleted rows.
func Active(db *gorm.DB) ActiveRepository {
	return ActiveRepository{db: db}
}

// All returns an unfiltered repository.
func All(db *gorm.DB) AllRepository {
	return AllRepository{db: db}
}

// Model starts a query on the given model's table.
func (r ActiveRepository) Model(model any) *gorm.DB {
	return NotDeleted(r.db.Model(model))
}

// Query returns a session restricted to non-deleted rows.
func (r ActiveRepository) Query() *gorm.DB {
	return NotDeleted(r.db)
}

// Model starts a query on the given model's table.
func (r AllRepository) Model(model any) *gorm.DB {
	return r.db.Model(model)
}

// Query returns an unscoped session.
func (r AllRepository) Query() *gorm.DB {
	return r.db
}

// NotDeleted is the soft-delete predicate.
func NotDeleted(db *gorm.DB) *gorm.DB {
	return db.Where("is_deleted = ?", false)
}

// SoftDelete flips the is_deleted flag on a loaded record. The record must
// have its primary key set. Loaded associations are not written back.
func SoftDelete(db *gorm.DB, model any) error {
	return db.Model(model).Omit(clause.Associations).Update("is_deleted", true).Error
}

// Update writes the given columns of a loaded record without touching its
// associations.
func Update(db *gorm.DB, model any, updates map[string]interface{}) error {
	return db.Model(model).Omit(clause.Associations).Updates(updates).Error
}
