package models

import "github.com/shopspring/decimal"

// MonthlyAmounts holds a line item's January through December breakdown.
// Months not supplied by the client stay at zero. The breakdown is an
// annotation: it is not reconciled against ProjectedAmount.
type MonthlyAmounts struct {
	January   decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"january"`
	February  decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"february"`
	March     decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"march"`
	April     decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"april"`
	May       decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"may"`
	June      decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"june"`
	July      decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"july"`
	August    decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"august"`
	September decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"september"`
	October   decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"october"`
	November  decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"november"`
	December  decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"december"`
}

// BudgetIncomeLine is a projected income entry owned by exactly one budget.
// Deleting the budget deletes its lines.
type BudgetIncomeLine struct {
	Base
	BudgetID        uint            `gorm:"not null;index" json:"budgetId"`
	CategoryID      uint            `gorm:"not null" json:"categoryId"`
	SubcategoryID   *uint           `json:"subcategoryId,omitempty"`
	Concept         string          `gorm:"not null" json:"concept"`
	ProjectedAmount decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"projectedAmount"`
	MonthlyAmounts
	Description string `json:"description"`

	// Relationships
	Category    BudgetCategory     `gorm:"foreignKey:CategoryID" json:"category"`
	Subcategory *BudgetSubcategory `gorm:"foreignKey:SubcategoryID" json:"subcategory,omitempty"`
}

// BudgetExpenseLine is a projected expense entry owned by exactly one budget.
// Structurally identical to BudgetIncomeLine; the two kinds live in
// separate tables and reference separate category taxonomies.
type BudgetExpenseLine struct {
	Base
	BudgetID        uint            `gorm:"not null;index" json:"budgetId"`
	CategoryID      uint            `gorm:"not null" json:"categoryId"`
	SubcategoryID   *uint           `json:"subcategoryId,omitempty"`
	Concept         string          `gorm:"not null" json:"concept"`
	ProjectedAmount decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"projectedAmount"`
	MonthlyAmounts
	Description string `json:"description"`

	// Relationships
	Category    BudgetCategory     `gorm:"foreignKey:CategoryID" json:"category"`
	Subcategory *BudgetSubcategory `gorm:"foreignKey:SubcategoryID" json:"subcategory,omitempty"`
}
