package services

import (
	"github.com/shopspring/decimal"

	"parkledger/internal/models"
	"parkledger/internal/pagination"
)

// BudgetFilter holds raw query-string filters for listing budgets.
// A key that is absent, empty, or the literal "all" imposes no
// constraint. Client code relies on the "all" sentinel.
type BudgetFilter struct {
	Year           string
	MunicipalityID string
	ParkID         string
	Status         string
}

// BudgetInput holds the fields for creating a budget header.
type BudgetInput struct {
	Name           string
	MunicipalityID *uint
	ParkID         *uint
	Year           int
	Status         models.BudgetStatus
	Notes          string
}

// BudgetUpdate holds optional header fields for a partial update.
// Nil fields are left unchanged. Totals are never updated through here;
// they belong to the recalculation path alone.
type BudgetUpdate struct {
	Name   *string
	Status *models.BudgetStatus
	Notes  *string
}

// BudgetServicer defines the contract for budget header operations.
type BudgetServicer interface {
	List(filter BudgetFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Budget], error)
	GetByID(id uint) (*models.Budget, error)
	Create(in BudgetInput) (*models.Budget, error)
	Update(id uint, in BudgetUpdate) (*models.Budget, error)
	Delete(id uint) error
}

// LineInput holds the fields for creating a line item.
type LineInput struct {
	CategoryID      uint
	SubcategoryID   *uint
	Concept         string
	ProjectedAmount decimal.Decimal
	Months          models.MonthlyAmounts
	Description     string
}

// LineUpdate holds optional line fields for a partial update.
// Months maps month column names ("january".."december") to replacement
// amounts; months absent from the map are left unchanged.
type LineUpdate struct {
	CategoryID      *uint
	SubcategoryID   *uint
	Concept         *string
	ProjectedAmount *decimal.Decimal
	Months          map[string]decimal.Decimal
	Description     *string
}

// BudgetLines groups a budget's line items by kind, each enriched with
// its category and subcategory.
type BudgetLines struct {
	IncomeLines  []models.BudgetIncomeLine  `json:"incomeLines"`
	ExpenseLines []models.BudgetExpenseLine `json:"expenseLines"`
}

// LineServicer defines the contract for line item operations. Every
// mutation persists the line first and then triggers recalculation of
// the owning budget's totals.
type LineServicer interface {
	ListLines(budgetID uint) (*BudgetLines, error)
	CreateIncomeLine(budgetID uint, in LineInput) (*models.BudgetIncomeLine, error)
	CreateExpenseLine(budgetID uint, in LineInput) (*models.BudgetExpenseLine, error)
	UpdateIncomeLine(lineID uint, in LineUpdate) (*models.BudgetIncomeLine, error)
	UpdateExpenseLine(lineID uint, in LineUpdate) (*models.BudgetExpenseLine, error)
	DeleteLine(lineID uint) error
}

// Recalculator re-derives a budget's denormalized totals from its
// current set of line items.
type Recalculator interface {
	Recalculate(budgetID uint) error
}

// CatalogServicer defines read-only access to the reference taxonomy.
type CatalogServicer interface {
	ListMunicipalities() ([]models.Municipality, error)
	ListParks(municipalityID uint) ([]models.Park, error)
	ListCategories(kind models.LineKind) ([]models.BudgetCategory, error)
}

// UserServicer defines the contract for administrator accounts.
type UserServicer interface {
	CreateUser(email, password, fullName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID uint, action, resourceType string, resourceID uint, ipAddress string, changes map[string]interface{})
}
