package services

import (
	"strconv"
	"testing"

	"parkledger/internal/models"
	"parkledger/internal/pagination"
	"parkledger/internal/testutil"
)

func formatID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func TestBudgetService_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	service := NewBudgetService(db)

	t.Run("successful creation with defaults", func(t *testing.T) {
		budget, err := service.Create(BudgetInput{
			Name: "Parks FY2025",
			Year: 2025,
		})
		testutil.AssertNoError(t, err)

		if budget.ID == 0 {
			t.Error("expected budget to have an ID")
		}
		if budget.Status != models.BudgetStatusDraft {
			t.Errorf("expected status draft, got %s", budget.Status)
		}
		testutil.AssertAmount(t, budget.TotalIncome, "0")
		testutil.AssertAmount(t, budget.TotalExpenses, "0")
	})

	t.Run("with municipality and park scope", func(t *testing.T) {
		muni := testutil.CreateTestMunicipality(t, db)
		park := testutil.CreateTestPark(t, db, muni.ID)

		budget, err := service.Create(BudgetInput{
			Name:           "Central Park FY2025",
			MunicipalityID: &muni.ID,
			ParkID:         &park.ID,
			Year:           2025,
			Status:         models.BudgetStatusActive,
		})
		testutil.AssertNoError(t, err)

		if budget.MunicipalityID == nil || *budget.MunicipalityID != muni.ID {
			t.Error("expected budget to reference the municipality")
		}
		if budget.Status != models.BudgetStatusActive {
			t.Errorf("expected status active, got %s", budget.Status)
		}
	})

	t.Run("unknown municipality", func(t *testing.T) {
		missing := uint(99999)
		_, err := service.Create(BudgetInput{
			Name:           "Orphan",
			MunicipalityID: &missing,
			Year:           2025,
		})
		testutil.AssertAppError(t, err, "MUNICIPALITY_NOT_FOUND")
	})

	t.Run("unknown park", func(t *testing.T) {
		missing := uint(99999)
		_, err := service.Create(BudgetInput{
			Name:   "Orphan",
			ParkID: &missing,
			Year:   2025,
		})
		testutil.AssertAppError(t, err, "PARK_NOT_FOUND")
	})
}

func TestBudgetService_GetByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	service := NewBudgetService(db)

	t.Run("found", func(t *testing.T) {
		created := testutil.CreateTestBudget(t, db, 2025)

		budget, err := service.GetByID(created.ID)
		testutil.AssertNoError(t, err)
		if budget.Name != created.Name {
			t.Errorf("expected name %q, got %q", created.Name, budget.Name)
		}
	})

	t.Run("not found", func(t *testing.T) {
		_, err := service.GetByID(99999)
		testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")
	})
}

func TestBudgetService_List(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	service := NewBudgetService(db)
	page := pagination.PageRequest{Page: 1, PageSize: 50}

	muniA := testutil.CreateTestMunicipality(t, db)
	muniB := testutil.CreateTestMunicipality(t, db)
	parkA := testutil.CreateTestPark(t, db, muniA.ID)

	mk := func(year int, muniID, parkID *uint, status models.BudgetStatus) {
		t.Helper()
		_, err := service.Create(BudgetInput{
			Name:           "Budget",
			MunicipalityID: muniID,
			ParkID:         parkID,
			Year:           year,
			Status:         status,
		})
		testutil.AssertNoError(t, err)
	}

	mk(2024, &muniA.ID, &parkA.ID, models.BudgetStatusClosed)
	mk(2025, &muniA.ID, &parkA.ID, models.BudgetStatusActive)
	mk(2025, &muniB.ID, nil, models.BudgetStatusDraft)

	t.Run("no filters returns everything", func(t *testing.T) {
		result, err := service.List(BudgetFilter{}, page)
		testutil.AssertNoError(t, err)
		if result.TotalItems != 3 {
			t.Errorf("expected 3 budgets, got %d", result.TotalItems)
		}
	})

	t.Run("all sentinel equals no filters", func(t *testing.T) {
		withSentinels, err := service.List(BudgetFilter{
			Year:           "all",
			MunicipalityID: "all",
			ParkID:         "all",
			Status:         "all",
		}, page)
		testutil.AssertNoError(t, err)

		without, err := service.List(BudgetFilter{}, page)
		testutil.AssertNoError(t, err)

		if withSentinels.TotalItems != without.TotalItems {
			t.Errorf("sentinel filters returned %d items, unfiltered returned %d",
				withSentinels.TotalItems, without.TotalItems)
		}
	})

	t.Run("filter by year", func(t *testing.T) {
		result, err := service.List(BudgetFilter{Year: "2025"}, page)
		testutil.AssertNoError(t, err)
		if result.TotalItems != 2 {
			t.Errorf("expected 2 budgets for 2025, got %d", result.TotalItems)
		}
	})

	t.Run("filters combine conjunctively", func(t *testing.T) {
		result, err := service.List(BudgetFilter{
			Year:           "2025",
			MunicipalityID: formatID(muniA.ID),
			Status:         "active",
		}, page)
		testutil.AssertNoError(t, err)
		if result.TotalItems != 1 {
			t.Errorf("expected 1 budget, got %d", result.TotalItems)
		}
	})

	t.Run("filter by status", func(t *testing.T) {
		result, err := service.List(BudgetFilter{Status: "draft"}, page)
		testutil.AssertNoError(t, err)
		if result.TotalItems != 1 {
			t.Errorf("expected 1 draft budget, got %d", result.TotalItems)
		}
	})

	t.Run("no matches is empty not error", func(t *testing.T) {
		result, err := service.List(BudgetFilter{Year: "1999"}, page)
		testutil.AssertNoError(t, err)
		if result.TotalItems != 0 {
			t.Errorf("expected 0 budgets, got %d", result.TotalItems)
		}
		if result.Data == nil {
			t.Error("expected empty slice, got nil")
		}
	})

	t.Run("invalid year filter", func(t *testing.T) {
		_, err := service.List(BudgetFilter{Year: "not-a-year"}, page)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("invalid municipality filter", func(t *testing.T) {
		_, err := service.List(BudgetFilter{MunicipalityID: "abc"}, page)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestBudgetService_Update(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	service := NewBudgetService(db)

	t.Run("partial update leaves other fields alone", func(t *testing.T) {
		budget := testutil.CreateTestBudget(t, db, 2025)

		newStatus := models.BudgetStatusActive
		updated, err := service.Update(budget.ID, BudgetUpdate{Status: &newStatus})
		testutil.AssertNoError(t, err)

		if updated.Status != models.BudgetStatusActive {
			t.Errorf("expected status active, got %s", updated.Status)
		}
		if updated.Name != budget.Name {
			t.Errorf("expected name unchanged, got %q", updated.Name)
		}
		if updated.Year != 2025 {
			t.Errorf("expected year unchanged, got %d", updated.Year)
		}
	})

	t.Run("totals are not touched by header updates", func(t *testing.T) {
		budget := testutil.CreateTestBudget(t, db, 2025)
		cat := testutil.CreateTestCategory(t, db, models.LineKindIncome)
		testutil.CreateTestIncomeLine(t, db, budget.ID, cat.ID, "500.00")
		testutil.AssertNoError(t, NewTotalsService(db).Recalculate(budget.ID))

		name := "Renamed"
		updated, err := service.Update(budget.ID, BudgetUpdate{Name: &name})
		testutil.AssertNoError(t, err)

		testutil.AssertAmount(t, updated.TotalIncome, "500.00")
	})

	t.Run("not found", func(t *testing.T) {
		name := "Ghost"
		_, err := service.Update(99999, BudgetUpdate{Name: &name})
		testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")
	})
}

func TestBudgetService_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	service := NewBudgetService(db)

	t.Run("removes budget and its lines", func(t *testing.T) {
		budget := testutil.CreateTestBudget(t, db, 2025)
		incomeCat := testutil.CreateTestCategory(t, db, models.LineKindIncome)
		expenseCat := testutil.CreateTestCategory(t, db, models.LineKindExpense)
		testutil.CreateTestIncomeLine(t, db, budget.ID, incomeCat.ID, "1000.00")
		testutil.CreateTestExpenseLine(t, db, budget.ID, expenseCat.ID, "400.00")

		testutil.AssertNoError(t, service.Delete(budget.ID))

		var count int64
		db.Model(&models.Budget{}).Where("id = ?", budget.ID).Count(&count)
		if count != 0 {
			t.Error("expected budget to be deleted")
		}
		db.Model(&models.BudgetIncomeLine{}).Where("budget_id = ?", budget.ID).Count(&count)
		if count != 0 {
			t.Error("expected income lines to be deleted")
		}
		db.Model(&models.BudgetExpenseLine{}).Where("budget_id = ?", budget.ID).Count(&count)
		if count != 0 {
			t.Error("expected expense lines to be deleted")
		}
	})

	t.Run("not found", func(t *testing.T) {
		err := service.Delete(99999)
		testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")
	})
}
