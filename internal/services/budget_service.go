package services

import (
	"errors"
	"strconv"

	"gorm.io/gorm"

	apperrors "parkledger/internal/errors"
	"parkledger/internal/models"
	"parkledger/internal/money"
	"parkledger/internal/pagination"
)

// budgetService handles budget header CRUD and the filtered listing.
type budgetService struct {
	db *gorm.DB
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB) BudgetServicer {
	return &budgetService{db: db}
}

// filterSet reports whether a filter value imposes a constraint.
// Empty strings and the "all" sentinel do not.
func filterSet(v string) bool {
	return v != "" && v != "all"
}

// applyBudgetFilter translates the filter bag into conjunctive predicates.
func applyBudgetFilter(db *gorm.DB, f BudgetFilter) (*gorm.DB, error) {
	if filterSet(f.Year) {
		year, err := strconv.Atoi(f.Year)
		if err != nil {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "year must be an integer")
		}
		db = db.Where("year = ?", year)
	}
	if filterSet(f.MunicipalityID) {
		id, err := strconv.ParseUint(f.MunicipalityID, 10, 32)
		if err != nil {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "municipalityId must be a positive integer")
		}
		db = db.Where("municipality_id = ?", uint(id))
	}
	if filterSet(f.ParkID) {
		id, err := strconv.ParseUint(f.ParkID, 10, 32)
		if err != nil {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "parkId must be a positive integer")
		}
		db = db.Where("park_id = ?", uint(id))
	}
	if filterSet(f.Status) {
		db = db.Where("status = ?", f.Status)
	}
	return db, nil
}

// List returns budgets matching all supplied filters, newest first.
func (s *budgetService) List(filter BudgetFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Budget], error) {
	page.Defaults()

	base, err := applyBudgetFilter(s.db.Model(&models.Budget{}), filter)
	if err != nil {
		return nil, err
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var budgets []models.Budget
	if err := base.Preload("Municipality").Preload("Park").
		Order("created_at DESC").
		Scopes(pagination.Paginate(page)).
		Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(budgets, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetByID returns a budget by ID.
func (s *budgetService) GetByID(id uint) (*models.Budget, error) {
	var budget models.Budget
	if err := s.db.Preload("Municipality").Preload("Park").First(&budget, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &budget, nil
}

// Create inserts a new budget header with zero totals.
func (s *budgetService) Create(in BudgetInput) (*models.Budget, error) {
	if in.MunicipalityID != nil {
		var count int64
		if err := s.db.Model(&models.Municipality{}).Where("id = ?", *in.MunicipalityID).Count(&count).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count == 0 {
			return nil, apperrors.ErrMunicipalityNotFound
		}
	}
	if in.ParkID != nil {
		var count int64
		if err := s.db.Model(&models.Park{}).Where("id = ?", *in.ParkID).Count(&count).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count == 0 {
			return nil, apperrors.ErrParkNotFound
		}
	}

	status := in.Status
	if status == "" {
		status = models.BudgetStatusDraft
	}

	budget := &models.Budget{
		Name:           in.Name,
		MunicipalityID: in.MunicipalityID,
		ParkID:         in.ParkID,
		Year:           in.Year,
		Status:         status,
		Notes:          in.Notes,
		TotalIncome:    money.Zero(),
		TotalExpenses:  money.Zero(),
	}

	if err := s.db.Create(budget).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return budget, nil
}

// Update applies a partial update to header fields. Totals are out of
// reach here: they change only through recalculation.
func (s *budgetService) Update(id uint, in BudgetUpdate) (*models.Budget, error) {
	budget, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if in.Name != nil {
		updates["name"] = *in.Name
	}
	if in.Status != nil {
		updates["status"] = *in.Status
	}
	if in.Notes != nil {
		updates["notes"] = *in.Notes
	}

	if len(updates) > 0 {
		if err := s.db.Model(budget).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return budget, nil
}

// Delete removes a budget and, first, every line item it owns.
func (s *budgetService) Delete(id uint) error {
	budget, err := s.GetByID(id)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("budget_id = ?", id).Delete(&models.BudgetIncomeLine{}).Error; err != nil {
			return err
		}
		if err := tx.Where("budget_id = ?", id).Delete(&models.BudgetExpenseLine{}).Error; err != nil {
			return err
		}
		return tx.Delete(budget).Error
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
