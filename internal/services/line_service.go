package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "parkledger/internal/errors"
	"parkledger/internal/logger"
	"parkledger/internal/models"
	"parkledger/internal/money"
)

// lineService handles income and expense line items. The two kinds live
// in separate tables, so each operation comes in an income and an
// expense flavor; delete is the exception and probes both tables.
type lineService struct {
	db     *gorm.DB
	totals Recalculator
}

// NewLineService creates a new LineServicer.
func NewLineService(db *gorm.DB, totals Recalculator) LineServicer {
	return &lineService{db: db, totals: totals}
}

// ListLines returns a budget's income and expense lines with their
// category and subcategory loaded.
func (s *lineService) ListLines(budgetID uint) (*BudgetLines, error) {
	if err := s.requireBudget(budgetID); err != nil {
		return nil, err
	}

	var incomeLines []models.BudgetIncomeLine
	if err := s.db.Preload("Category").Preload("Subcategory").
		Where("budget_id = ?", budgetID).Order("id").
		Find(&incomeLines).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var expenseLines []models.BudgetExpenseLine
	if err := s.db.Preload("Category").Preload("Subcategory").
		Where("budget_id = ?", budgetID).Order("id").
		Find(&expenseLines).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if incomeLines == nil {
		incomeLines = []models.BudgetIncomeLine{}
	}
	if expenseLines == nil {
		expenseLines = []models.BudgetExpenseLine{}
	}
	return &BudgetLines{IncomeLines: incomeLines, ExpenseLines: expenseLines}, nil
}

// CreateIncomeLine inserts an income line and recalculates the budget's totals.
func (s *lineService) CreateIncomeLine(budgetID uint, in LineInput) (*models.BudgetIncomeLine, error) {
	if err := s.requireBudget(budgetID); err != nil {
		return nil, err
	}
	if err := s.requireCategory(in.CategoryID, models.LineKindIncome); err != nil {
		return nil, err
	}

	line := &models.BudgetIncomeLine{
		BudgetID:        budgetID,
		CategoryID:      in.CategoryID,
		SubcategoryID:   in.SubcategoryID,
		Concept:         in.Concept,
		ProjectedAmount: money.Normalize(in.ProjectedAmount),
		MonthlyAmounts:  normalizeMonths(in.Months),
		Description:     in.Description,
	}
	if err := s.db.Create(line).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.recalc(budgetID)

	if err := s.db.Preload("Category").Preload("Subcategory").First(line, line.ID).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return line, nil
}

// CreateExpenseLine inserts an expense line and recalculates the budget's totals.
func (s *lineService) CreateExpenseLine(budgetID uint, in LineInput) (*models.BudgetExpenseLine, error) {
	if err := s.requireBudget(budgetID); err != nil {
		return nil, err
	}
	if err := s.requireCategory(in.CategoryID, models.LineKindExpense); err != nil {
		return nil, err
	}

	line := &models.BudgetExpenseLine{
		BudgetID:        budgetID,
		CategoryID:      in.CategoryID,
		SubcategoryID:   in.SubcategoryID,
		Concept:         in.Concept,
		ProjectedAmount: money.Normalize(in.ProjectedAmount),
		MonthlyAmounts:  normalizeMonths(in.Months),
		Description:     in.Description,
	}
	if err := s.db.Create(line).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.recalc(budgetID)

	if err := s.db.Preload("Category").Preload("Subcategory").First(line, line.ID).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return line, nil
}

// UpdateIncomeLine applies a partial update to an income line and
// recalculates the owning budget's totals.
func (s *lineService) UpdateIncomeLine(lineID uint, in LineUpdate) (*models.BudgetIncomeLine, error) {
	var line models.BudgetIncomeLine
	if err := s.db.First(&line, lineID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrLineNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if in.CategoryID != nil {
		if err := s.requireCategory(*in.CategoryID, models.LineKindIncome); err != nil {
			return nil, err
		}
	}

	updates := lineUpdates(in)
	if len(updates) > 0 {
		if err := s.db.Model(&line).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	s.recalc(line.BudgetID)

	if err := s.db.Preload("Category").Preload("Subcategory").First(&line, lineID).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &line, nil
}

// UpdateExpenseLine applies a partial update to an expense line and
// recalculates the owning budget's totals.
func (s *lineService) UpdateExpenseLine(lineID uint, in LineUpdate) (*models.BudgetExpenseLine, error) {
	var line models.BudgetExpenseLine
	if err := s.db.First(&line, lineID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrLineNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if in.CategoryID != nil {
		if err := s.requireCategory(*in.CategoryID, models.LineKindExpense); err != nil {
			return nil, err
		}
	}

	updates := lineUpdates(in)
	if len(updates) > 0 {
		if err := s.db.Model(&line).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	s.recalc(line.BudgetID)

	if err := s.db.Preload("Category").Preload("Subcategory").First(&line, lineID).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &line, nil
}

// DeleteLine removes a line by ID without the caller naming its kind.
// The income table is probed first, then the expense table.
func (s *lineService) DeleteLine(lineID uint) error {
	var income models.BudgetIncomeLine
	err := s.db.First(&income, lineID).Error
	if err == nil {
		if err := s.db.Delete(&income).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		s.recalc(income.BudgetID)
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var expense models.BudgetExpenseLine
	err = s.db.First(&expense, lineID).Error
	if err == nil {
		if err := s.db.Delete(&expense).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		s.recalc(expense.BudgetID)
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return apperrors.ErrLineNotFound
}

// recalc triggers recalculation for a budget. A failure is logged and
// does not fail the line mutation that triggered it; totals self-heal
// on the next successful recalculation.
func (s *lineService) recalc(budgetID uint) {
	if err := s.totals.Recalculate(budgetID); err != nil {
		logger.Get().Errorw("budget totals recalculation failed",
			"budget_id", budgetID,
			"error", err,
		)
	}
}

func (s *lineService) requireBudget(budgetID uint) error {
	var count int64
	if err := s.db.Model(&models.Budget{}).Where("id = ?", budgetID).Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return apperrors.ErrBudgetNotFound
	}
	return nil
}

func (s *lineService) requireCategory(categoryID uint, kind models.LineKind) error {
	var count int64
	if err := s.db.Model(&models.BudgetCategory{}).
		Where("id = ? AND kind = ?", categoryID, kind).
		Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return apperrors.ErrCategoryNotFound
	}
	return nil
}

// lineUpdates builds the column map for a partial line update.
func lineUpdates(in LineUpdate) map[string]interface{} {
	updates := make(map[string]interface{})
	if in.CategoryID != nil {
		updates["category_id"] = *in.CategoryID
	}
	if in.SubcategoryID != nil {
		updates["subcategory_id"] = *in.SubcategoryID
	}
	if in.Concept != nil {
		updates["concept"] = *in.Concept
	}
	if in.ProjectedAmount != nil {
		updates["projected_amount"] = money.Normalize(*in.ProjectedAmount)
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	for month, amount := range in.Months {
		updates[month] = money.Normalize(amount)
	}
	return updates
}

func normalizeMonths(m models.MonthlyAmounts) models.MonthlyAmounts {
	return models.MonthlyAmounts{
		January:   money.Normalize(m.January),
		February:  money.Normalize(m.February),
		March:     money.Normalize(m.March),
		April:     money.Normalize(m.April),
		May:       money.Normalize(m.May),
		June:      money.Normalize(m.June),
		July:      money.Normalize(m.July),
		August:    money.Normalize(m.August),
		September: money.Normalize(m.September),
		October:   money.Normalize(m.October),
		November:  money.Normalize(m.November),
		December:  money.Normalize(m.December),
	}
}
