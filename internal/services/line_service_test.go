package services

import (
	"testing"

	"github.com/shopspring/decimal"

	"parkledger/internal/models"
	"parkledger/internal/testutil"
)

// reloadBudget fetches the current persisted state of a budget.
func reloadBudget(t *testing.T, s BudgetServicer, id uint) *models.Budget {
	t.Helper()
	budget, err := s.GetByID(id)
	testutil.AssertNoError(t, err)
	return budget
}

func TestLineService_CreateIncomeLine(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	budgets := NewBudgetService(db)
	lines := NewLineService(db, NewTotalsService(db))

	t.Run("creates line and updates totals", func(t *testing.T) {
		budget := testutil.CreateTestBudget(t, db, 2025)
		cat := testutil.CreateTestCategory(t, db, models.LineKindIncome)

		line, err := lines.CreateIncomeLine(budget.ID, LineInput{
			CategoryID:      cat.ID,
			Concept:         "Entry fees",
			ProjectedAmount: decimal.RequireFromString("10000.00"),
		})
		testutil.AssertNoError(t, err)

		if line.ID == 0 {
			t.Error("expected line to have an ID")
		}
		if line.Category.ID != cat.ID {
			t.Error("expected category to be preloaded")
		}

		fresh := reloadBudget(t, budgets, budget.ID)
		testutil.AssertAmount(t, fresh.TotalIncome, "10000.00")
		testutil.AssertAmount(t, fresh.TotalExpenses, "0")
	})

	t.Run("monthly buckets default to zero", func(t *testing.T) {
		budget := testutil.CreateTestBudget(t, db, 2025)
		cat := testutil.CreateTestCategory(t, db, models.LineKindIncome)

		line, err := lines.CreateIncomeLine(budget.ID, LineInput{
			CategoryID:      cat.ID,
			Concept:         "Concessions",
			ProjectedAmount: decimal.RequireFromString("1200.00"),
		})
		testutil.AssertNoError(t, err)

		testutil.AssertAmount(t, line.January, "0")
		testutil.AssertAmount(t, line.June, "0")
		testutil.AssertAmount(t, line.December, "0")
	})

	t.Run("amounts are rounded to cents", func(t *testing.T) {
		budget := testutil.CreateTestBudget(t, db, 2025)
		cat := testutil.CreateTestCategory(t, db, models.LineKindIncome)

		line, err := lines.CreateIncomeLine(budget.ID, LineInput{
			CategoryID:      cat.ID,
			Concept:         "Permits",
			ProjectedAmount: decimal.RequireFromString("99.999"),
		})
		testutil.AssertNoError(t, err)
		testutil.AssertAmount(t, line.ProjectedAmount, "100.00")
	})

	t.Run("budget not found", func(t *testing.T) {
		cat := testutil.CreateTestCategory(t, db, models.LineKindIncome)
		_, err := lines.CreateIncomeLine(99999, LineInput{
			CategoryID:      cat.ID,
			Concept:         "Orphan",
			ProjectedAmount: decimal.RequireFromString("10.00"),
		})
		testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")
	})

	t.Run("rejects expense category on income line", func(t *testing.T) {
		budget := testutil.CreateTestBudget(t, db, 2025)
		expenseCat := testutil.CreateTestCategory(t, db, models.LineKindExpense)

		_, err := lines.CreateIncomeLine(budget.ID, LineInput{
			CategoryID:      expenseCat.ID,
			Concept:         "Wrong kind",
			ProjectedAmount: decimal.RequireFromString("10.00"),
		})
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})
}

func TestLineService_CreateExpenseLine(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	budgets := NewBudgetService(db)
	lines := NewLineService(db, NewTotalsService(db))

	t.Run("only the expense total moves", func(t *testing.T) {
		budget := testutil.CreateTestBudget(t, db, 2025)
		incomeCat := testutil.CreateTestCategory(t, db, models.LineKindIncome)
		expenseCat := testutil.CreateTestCategory(t, db, models.LineKindExpense)

		_, err := lines.CreateIncomeLine(budget.ID, LineInput{
			CategoryID:      incomeCat.ID,
			Concept:         "Grants",
			ProjectedAmount: decimal.RequireFromString("10000.00"),
		})
		testutil.AssertNoError(t, err)

		_, err = lines.CreateExpenseLine(budget.ID, LineInput{
			CategoryID:      expenseCat.ID,
			Concept:         "Maintenance",
			ProjectedAmount: decimal.RequireFromString("4000.00"),
		})
		testutil.AssertNoError(t, err)

		fresh := reloadBudget(t, budgets, budget.ID)
		testutil.AssertAmount(t, fresh.TotalIncome, "10000.00")
		testutil.AssertAmount(t, fresh.TotalExpenses, "4000.00")
	})

	t.Run("rejects income category on expense line", func(t *testing.T) {
		budget := testutil.CreateTestBudget(t, db, 2025)
		incomeCat := testutil.CreateTestCategory(t, db, models.LineKindIncome)

		_, err := lines.CreateExpenseLine(budget.ID, LineInput{
			CategoryID:      incomeCat.ID,
			Concept:         "Wrong kind",
			ProjectedAmount: decimal.RequireFromString("10.00"),
		})
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})
}

func TestLineService_UpdateLines(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	budgets := NewBudgetService(db)
	lines := NewLineService(db, NewTotalsService(db))

	t.Run("amount change re-derives the total", func(t *testing.T) {
		budget := testutil.CreateTestBudget(t, db, 2025)
		cat := testutil.CreateTestCategory(t, db, models.LineKindExpense)

		line, err := lines.CreateExpenseLine(budget.ID, LineInput{
			CategoryID:      cat.ID,
			Concept:         "Maintenance",
			ProjectedAmount: decimal.RequireFromString("4000.00"),
		})
		testutil.AssertNoError(t, err)

		amount := decimal.RequireFromString("7500.00")
		updated, err := lines.UpdateExpenseLine(line.ID, LineUpdate{ProjectedAmount: &amount})
		testutil.AssertNoError(t, err)
		testutil.AssertAmount(t, updated.ProjectedAmount, "7500.00")

		fresh := reloadBudget(t, budgets, budget.ID)
		testutil.AssertAmount(t, fresh.TotalExpenses, "7500.00")
	})

	t.Run("partial month update leaves other months alone", func(t *testing.T) {
		budget := testutil.CreateTestBudget(t, db, 2025)
		cat := testutil.CreateTestCategory(t, db, models.LineKindIncome)

		line, err := lines.CreateIncomeLine(budget.ID, LineInput{
			CategoryID:      cat.ID,
			Concept:         "Event rentals",
			ProjectedAmount: decimal.RequireFromString("1200.00"),
			Months: models.MonthlyAmounts{
				January:  decimal.RequireFromString("100.00"),
				February: decimal.RequireFromString("100.00"),
			},
		})
		testutil.AssertNoError(t, err)

		updated, err := lines.UpdateIncomeLine(line.ID, LineUpdate{
			Months: map[string]decimal.Decimal{
				"february": decimal.RequireFromString("250.00"),
			},
		})
		testutil.AssertNoError(t, err)

		testutil.AssertAmount(t, updated.January, "100.00")
		testutil.AssertAmount(t, updated.February, "250.00")
	})

	t.Run("concept change does not move totals", func(t *testing.T) {
		budget := testutil.CreateTestBudget(t, db, 2025)
		cat := testutil.CreateTestCategory(t, db, models.LineKindIncome)

		line, err := lines.CreateIncomeLine(budget.ID, LineInput{
			CategoryID:      cat.ID,
			Concept:         "Old concept",
			ProjectedAmount: decimal.RequireFromString("300.00"),
		})
		testutil.AssertNoError(t, err)

		concept := "New concept"
		updated, err := lines.UpdateIncomeLine(line.ID, LineUpdate{Concept: &concept})
		testutil.AssertNoError(t, err)
		if updated.Concept != "New concept" {
			t.Errorf("expected concept updated, got %q", updated.Concept)
		}

		fresh := reloadBudget(t, budgets, budget.ID)
		testutil.AssertAmount(t, fresh.TotalIncome, "300.00")
	})

	t.Run("income line not found", func(t *testing.T) {
		concept := "Ghost"
		_, err := lines.UpdateIncomeLine(99999, LineUpdate{Concept: &concept})
		testutil.AssertAppError(t, err, "BUDGET_LINE_NOT_FOUND")
	})

	t.Run("expense line not found", func(t *testing.T) {
		concept := "Ghost"
		_, err := lines.UpdateExpenseLine(99999, LineUpdate{Concept: &concept})
		testutil.AssertAppError(t, err, "BUDGET_LINE_NOT_FOUND")
	})
}

func TestLineService_DeleteLine(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	budgets := NewBudgetService(db)
	lines := NewLineService(db, NewTotalsService(db))

	t.Run("deletes income line without naming its kind", func(t *testing.T) {
		budget := testutil.CreateTestBudget(t, db, 2025)
		incomeCat := testutil.CreateTestCategory(t, db, models.LineKindIncome)
		expenseCat := testutil.CreateTestCategory(t, db, models.LineKindExpense)

		income, err := lines.CreateIncomeLine(budget.ID, LineInput{
			CategoryID:      incomeCat.ID,
			Concept:         "Grants",
			ProjectedAmount: decimal.RequireFromString("10000.00"),
		})
		testutil.AssertNoError(t, err)

		_, err = lines.CreateExpenseLine(budget.ID, LineInput{
			CategoryID:      expenseCat.ID,
			Concept:         "Maintenance",
			ProjectedAmount: decimal.RequireFromString("4000.00"),
		})
		testutil.AssertNoError(t, err)

		testutil.AssertNoError(t, lines.DeleteLine(income.ID))

		fresh := reloadBudget(t, budgets, budget.ID)
		testutil.AssertAmount(t, fresh.TotalIncome, "0")
		testutil.AssertAmount(t, fresh.TotalExpenses, "4000.00")
	})

	t.Run("deletes expense line", func(t *testing.T) {
		budget := testutil.CreateTestBudget(t, db, 2025)
		cat := testutil.CreateTestCategory(t, db, models.LineKindExpense)

		expense, err := lines.CreateExpenseLine(budget.ID, LineInput{
			CategoryID:      cat.ID,
			Concept:         "Utilities",
			ProjectedAmount: decimal.RequireFromString("800.00"),
		})
		testutil.AssertNoError(t, err)

		testutil.AssertNoError(t, lines.DeleteLine(expense.ID))

		fresh := reloadBudget(t, budgets, budget.ID)
		testutil.AssertAmount(t, fresh.TotalExpenses, "0")
	})

	t.Run("not found", func(t *testing.T) {
		err := lines.DeleteLine(99999)
		testutil.AssertAppError(t, err, "BUDGET_LINE_NOT_FOUND")
	})
}

func TestLineService_ListLines(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	lines := NewLineService(db, NewTotalsService(db))

	t.Run("groups lines by kind", func(t *testing.T) {
		budget := testutil.CreateTestBudget(t, db, 2025)
		incomeCat := testutil.CreateTestCategory(t, db, models.LineKindIncome)
		expenseCat := testutil.CreateTestCategory(t, db, models.LineKindExpense)
		testutil.CreateTestIncomeLine(t, db, budget.ID, incomeCat.ID, "100.00")
		testutil.CreateTestIncomeLine(t, db, budget.ID, incomeCat.ID, "200.00")
		testutil.CreateTestExpenseLine(t, db, budget.ID, expenseCat.ID, "50.00")

		result, err := lines.ListLines(budget.ID)
		testutil.AssertNoError(t, err)

		if len(result.IncomeLines) != 2 {
			t.Errorf("expected 2 income lines, got %d", len(result.IncomeLines))
		}
		if len(result.ExpenseLines) != 1 {
			t.Errorf("expected 1 expense line, got %d", len(result.ExpenseLines))
		}
		if result.IncomeLines[0].Category.ID != incomeCat.ID {
			t.Error("expected category to be preloaded")
		}
	})

	t.Run("empty budget returns empty slices", func(t *testing.T) {
		budget := testutil.CreateTestBudget(t, db, 2025)

		result, err := lines.ListLines(budget.ID)
		testutil.AssertNoError(t, err)

		if result.IncomeLines == nil || result.ExpenseLines == nil {
			t.Error("expected empty slices, got nil")
		}
		if len(result.IncomeLines) != 0 || len(result.ExpenseLines) != 0 {
			t.Error("expected no lines")
		}
	})

	t.Run("budget not found", func(t *testing.T) {
		_, err := lines.ListLines(99999)
		testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")
	})
}
