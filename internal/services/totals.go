package services

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "parkledger/internal/errors"
	"parkledger/internal/models"
	"parkledger/internal/money"
)

// totalsService re-derives a budget's denormalized income and expense
// totals from its line items. Sums are computed with decimal arithmetic
// in-process rather than in SQL, so no float ever enters a total.
type totalsService struct {
	db *gorm.DB
}

// NewTotalsService creates a new Recalculator.
func NewTotalsService(db *gorm.DB) Recalculator {
	return &totalsService{db: db}
}

// Recalculate reads all line items for the budget, sums their projected
// amounts per kind, and writes both totals back in a single update.
// Repeated calls without intervening line changes produce identical totals.
func (s *totalsService) Recalculate(budgetID uint) error {
	income, err := s.sumProjected(&models.BudgetIncomeLine{}, budgetID)
	if err != nil {
		return err
	}
	expenses, err := s.sumProjected(&models.BudgetExpenseLine{}, budgetID)
	if err != nil {
		return err
	}

	res := s.db.Model(&models.Budget{}).Where("id = ?", budgetID).
		Updates(map[string]interface{}{
			"total_income":   income,
			"total_expenses": expenses,
		})
	if res.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrBudgetNotFound
	}
	return nil
}

func (s *totalsService) sumProjected(lineModel interface{}, budgetID uint) (decimal.Decimal, error) {
	var amounts []decimal.Decimal
	if err := s.db.Model(lineModel).Where("budget_id = ?", budgetID).
		Pluck("projected_amount", &amounts).Error; err != nil {
		return decimal.Decimal{}, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return money.Sum(amounts...), nil
}
