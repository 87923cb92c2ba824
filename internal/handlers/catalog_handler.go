package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "parkledger/internal/errors"
	"parkledger/internal/models"
	"parkledger/internal/services"
)

// CatalogHandler serves the read-only reference data: municipalities,
// parks, and the income/expense category taxonomy.
type CatalogHandler struct {
	catalogService services.CatalogServicer
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalogService services.CatalogServicer) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// ListMunicipalities handles listing all municipalities.
// @Summary     List municipalities
// @Tags        catalog
// @Produce     json
// @Success     200 {array} models.Municipality
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /municipalities [get]
func (h *CatalogHandler) ListMunicipalities(c *gin.Context) {
	municipalities, err := h.catalogService.ListMunicipalities()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"municipalities": municipalities})
}

// ListParks handles listing the parks of one municipality.
// @Summary     List parks of a municipality
// @Tags        catalog
// @Produce     json
// @Param       id path int true "Municipality ID"
// @Success     200 {array} models.Park
// @Failure     404 {object} ErrorResponse "Municipality not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /municipalities/{id}/parks [get]
func (h *CatalogHandler) ListParks(c *gin.Context) {
	municipalityID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	parks, err := h.catalogService.ListParks(municipalityID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"parks": parks})
}

// ListCategories handles listing the category taxonomy.
// @Summary     List budget categories
// @Description List categories with subcategories, optionally filtered by kind (income/expense)
// @Tags        catalog
// @Produce     json
// @Param       kind query string false "Category kind (income/expense)"
// @Success     200 {array} models.BudgetCategory
// @Failure     400 {object} ErrorResponse "Invalid kind"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budget-categories [get]
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	kind := models.LineKind(c.Query("kind"))
	if kind != "" && kind != models.LineKindIncome && kind != models.LineKindExpense {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "kind must be 'income' or 'expense'"))
		return
	}

	categories, err := h.catalogService.ListCategories(kind)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}
