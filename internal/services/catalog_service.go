package services

import (
	"gorm.io/gorm"

	apperrors "parkledger/internal/errors"
	"parkledger/internal/models"
)

// catalogService provides read-only access to municipalities, parks, and
// the category taxonomy. The catalog is seeded by migrations; nothing in
// the budget core writes to it.
type catalogService struct {
	db *gorm.DB
}

// NewCatalogService creates a new CatalogServicer.
func NewCatalogService(db *gorm.DB) CatalogServicer {
	return &catalogService{db: db}
}

// ListMunicipalities returns all municipalities ordered by name.
func (s *catalogService) ListMunicipalities() ([]models.Municipality, error) {
	var municipalities []models.Municipality
	if err := s.db.Order("name").Find(&municipalities).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return municipalities, nil
}

// ListParks returns the parks of one municipality ordered by name.
func (s *catalogService) ListParks(municipalityID uint) ([]models.Park, error) {
	var count int64
	if err := s.db.Model(&models.Municipality{}).Where("id = ?", municipalityID).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return nil, apperrors.ErrMunicipalityNotFound
	}

	var parks []models.Park
	if err := s.db.Where("municipality_id = ?", municipalityID).Order("name").Find(&parks).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return parks, nil
}

// ListCategories returns categories with their subcategories, optionally
// restricted to one kind. An empty kind returns both taxonomies.
func (s *catalogService) ListCategories(kind models.LineKind) ([]models.BudgetCategory, error) {
	q := s.db.Preload("Subcategories").Order("code")
	if kind != "" {
		q = q.Where("kind = ?", kind)
	}

	var categories []models.BudgetCategory
	if err := q.Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return categories, nil
}
