package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"parkledger/internal/models"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates an administrator with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    fmt.Sprintf("admin%d@test.com", nextID()),
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestMunicipality creates a municipality.
func CreateTestMunicipality(t *testing.T, db *gorm.DB) *models.Municipality {
	t.Helper()

	m := &models.Municipality{
		Name:  fmt.Sprintf("Test Municipality %d", nextID()),
		State: "Test State",
	}
	if err := db.Create(m).Error; err != nil {
		t.Fatalf("failed to create test municipality: %v", err)
	}
	return m
}

// CreateTestPark creates a park in the given municipality.
func CreateTestPark(t *testing.T, db *gorm.DB, municipalityID uint) *models.Park {
	t.Helper()

	p := &models.Park{
		MunicipalityID: municipalityID,
		Name:           fmt.Sprintf("Test Park %d", nextID()),
	}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("failed to create test park: %v", err)
	}
	return p
}

// CreateTestCategory creates a category of the given kind.
func CreateTestCategory(t *testing.T, db *gorm.DB, kind models.LineKind) *models.BudgetCategory {
	t.Helper()

	n := nextID()
	cat := &models.BudgetCategory{
		Kind: kind,
		Name: fmt.Sprintf("Test Category %d", n),
		Code: fmt.Sprintf("CAT-%d", n),
	}
	if err := db.Create(cat).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return cat
}

// CreateTestSubcategory creates a subcategory under the given category.
func CreateTestSubcategory(t *testing.T, db *gorm.DB, categoryID uint) *models.BudgetSubcategory {
	t.Helper()

	sub := &models.BudgetSubcategory{
		CategoryID: categoryID,
		Name:       fmt.Sprintf("Test Subcategory %d", nextID()),
	}
	if err := db.Create(sub).Error; err != nil {
		t.Fatalf("failed to create test subcategory: %v", err)
	}
	return sub
}

// CreateTestBudget creates a draft budget with zero totals.
func CreateTestBudget(t *testing.T, db *gorm.DB, year int) *models.Budget {
	t.Helper()

	budget := &models.Budget{
		Name:          fmt.Sprintf("Test Budget %d", nextID()),
		Year:          year,
		Status:        models.BudgetStatusDraft,
		TotalIncome:   decimal.NewFromInt(0),
		TotalExpenses: decimal.NewFromInt(0),
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}

// CreateTestIncomeLine creates an income line with the given projected amount.
func CreateTestIncomeLine(t *testing.T, db *gorm.DB, budgetID, categoryID uint, amount string) *models.BudgetIncomeLine {
	t.Helper()

	projected, err := decimal.NewFromString(amount)
	if err != nil {
		t.Fatalf("invalid amount %q: %v", amount, err)
	}

	line := &models.BudgetIncomeLine{
		BudgetID:        budgetID,
		CategoryID:      categoryID,
		Concept:         fmt.Sprintf("Test income %d", nextID()),
		ProjectedAmount: projected,
	}
	if err := db.Create(line).Error; err != nil {
		t.Fatalf("failed to create test income line: %v", err)
	}
	return line
}

// CreateTestExpenseLine creates an expense line with the given projected amount.
func CreateTestExpenseLine(t *testing.T, db *gorm.DB, budgetID, categoryID uint, amount string) *models.BudgetExpenseLine {
	t.Helper()

	projected, err := decimal.NewFromString(amount)
	if err != nil {
		t.Fatalf("invalid amount %q: %v", amount, err)
	}

	line := &models.BudgetExpenseLine{
		BudgetID:        budgetID,
		CategoryID:      categoryID,
		Concept:         fmt.Sprintf("Test expense %d", nextID()),
		ProjectedAmount: projected,
	}
	if err := db.Create(line).Error; err != nil {
		t.Fatalf("failed to create test expense line: %v", err)
	}
	return line
}
