package models

// Category loosely groups transactions and budget estimates. A transaction
// counts against whichever estimate shares its category in the budget that
// is current for the transaction's date.
type Category struct {
	Base
	Name string `gorm:"size:100;not null" json:"name"`
	Slug string `gorm:"size:100;not null;uniqueIndex" json:"slug"`
}
