package models

// LineKind distinguishes the income and expense sides of a budget.
type LineKind string

const (
	LineKindIncome  LineKind = "income"
	LineKindExpense LineKind = "expense"
)

// BudgetCategory classifies line items. Income and expense each have their
// own taxonomy, discriminated by Kind. Categories are reference data owned
// by the catalog migrations; the budget core never mutates them.
type BudgetCategory struct {
	Base
	Kind LineKind `gorm:"not null;index" json:"kind"`
	Name string   `gorm:"not null" json:"name"`
	Code string   `gorm:"not null" json:"code"`

	Subcategories []BudgetSubcategory `gorm:"foreignKey:CategoryID" json:"subcategories,omitempty"`
}

// BudgetSubcategory is an optional second classification level under a category.
type BudgetSubcategory struct {
	Base
	CategoryID uint   `gorm:"not null;index" json:"categoryId"`
	Name       string `gorm:"not null" json:"name"`
}
