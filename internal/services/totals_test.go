package services

import (
	"testing"

	"parkledger/internal/models"
	"parkledger/internal/testutil"
)

func TestTotalsService_Recalculate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	budgets := NewBudgetService(db)
	totals := NewTotalsService(db)

	t.Run("sums each kind independently", func(t *testing.T) {
		budget := testutil.CreateTestBudget(t, db, 2025)
		incomeCat := testutil.CreateTestCategory(t, db, models.LineKindIncome)
		expenseCat := testutil.CreateTestCategory(t, db, models.LineKindExpense)

		testutil.CreateTestIncomeLine(t, db, budget.ID, incomeCat.ID, "1500.50")
		testutil.CreateTestIncomeLine(t, db, budget.ID, incomeCat.ID, "2499.50")
		testutil.CreateTestExpenseLine(t, db, budget.ID, expenseCat.ID, "999.99")

		testutil.AssertNoError(t, totals.Recalculate(budget.ID))

		fresh := reloadBudget(t, budgets, budget.ID)
		testutil.AssertAmount(t, fresh.TotalIncome, "4000.00")
		testutil.AssertAmount(t, fresh.TotalExpenses, "999.99")
	})

	t.Run("idempotent without line changes", func(t *testing.T) {
		budget := testutil.CreateTestBudget(t, db, 2025)
		cat := testutil.CreateTestCategory(t, db, models.LineKindIncome)
		testutil.CreateTestIncomeLine(t, db, budget.ID, cat.ID, "123.45")

		testutil.AssertNoError(t, totals.Recalculate(budget.ID))
		first := reloadBudget(t, budgets, budget.ID)

		testutil.AssertNoError(t, totals.Recalculate(budget.ID))
		second := reloadBudget(t, budgets, budget.ID)

		if !first.TotalIncome.Equal(second.TotalIncome) {
			t.Errorf("totals drifted between runs: %s then %s",
				first.TotalIncome.String(), second.TotalIncome.String())
		}
	})

	t.Run("heals a stale total", func(t *testing.T) {
		budget := testutil.CreateTestBudget(t, db, 2025)
		cat := testutil.CreateTestCategory(t, db, models.LineKindIncome)
		testutil.CreateTestIncomeLine(t, db, budget.ID, cat.ID, "750.00")

		// Corrupt the denormalized value directly.
		err := db.Model(&models.Budget{}).Where("id = ?", budget.ID).
			Update("total_income", "999999.00").Error
		testutil.AssertNoError(t, err)

		testutil.AssertNoError(t, totals.Recalculate(budget.ID))

		fresh := reloadBudget(t, budgets, budget.ID)
		testutil.AssertAmount(t, fresh.TotalIncome, "750.00")
	})

	t.Run("empty budget sums to zero", func(t *testing.T) {
		budget := testutil.CreateTestBudget(t, db, 2025)

		testutil.AssertNoError(t, totals.Recalculate(budget.ID))

		fresh := reloadBudget(t, budgets, budget.ID)
		testutil.AssertAmount(t, fresh.TotalIncome, "0")
		testutil.AssertAmount(t, fresh.TotalExpenses, "0")
	})

	t.Run("budget not found", func(t *testing.T) {
		err := totals.Recalculate(99999)
		testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")
	})
}
