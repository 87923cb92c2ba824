package models

import "github.com/shopspring/decimal"

// BudgetStatus represents the lifecycle status of a budget.
type BudgetStatus string

const (
	BudgetStatusDraft  BudgetStatus = "draft"
	BudgetStatusActive BudgetStatus = "active"
	BudgetStatusClosed BudgetStatus = "closed"
)

// Budget is a financial plan for a fiscal year, optionally scoped to a
// municipality and park. TotalIncome and TotalExpenses are denormalized
// aggregates: they always equal the sum of ProjectedAmount over the
// budget's income and expense lines, and are rewritten by recalculation
// after every line mutation.
type Budget struct {
	Base
	Name           string          `gorm:"not null" json:"name"`
	MunicipalityID *uint           `gorm:"index" json:"municipalityId,omitempty"`
	ParkID         *uint           `gorm:"index" json:"parkId,omitempty"`
	Year           int             `gorm:"not null;index" json:"year"`
	Status         BudgetStatus    `gorm:"not null;default:draft" json:"status"`
	Notes          string          `json:"notes"`
	TotalIncome    decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"totalIncome"`
	TotalExpenses  decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"totalExpenses"`

	// Relationships
	Municipality *Municipality `gorm:"foreignKey:MunicipalityID" json:"municipality,omitempty"`
	Park         *Park         `gorm:"foreignKey:ParkID" json:"park,omitempty"`
}
