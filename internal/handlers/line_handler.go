package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "parkledger/internal/errors"
	"parkledger/internal/models"
	"parkledger/internal/services"
)

// LineHandler handles budget line item requests.
type LineHandler struct {
	lineService  services.LineServicer
	auditService services.AuditServicer
}

// NewLineHandler creates a new LineHandler.
func NewLineHandler(lineService services.LineServicer, auditService services.AuditServicer) *LineHandler {
	return &LineHandler{lineService: lineService, auditService: auditService}
}

// CreateLineRequest is the payload for the kind-specific create endpoints.
// Amounts may be sent as JSON numbers or numeric strings.
type CreateLineRequest struct {
	CategoryID      uint            `json:"categoryId" binding:"required"`
	SubcategoryID   *uint           `json:"subcategoryId"`
	Concept         string          `json:"concept" binding:"required,min=1,max=200"`
	ProjectedAmount decimal.Decimal `json:"projectedAmount"`
	Description     string          `json:"description"`
}

// CreateGenericLineRequest is the payload for the generic create endpoint.
// It carries the kind discriminant and an optional monthly breakdown;
// months not supplied default to zero.
type CreateGenericLineRequest struct {
	Type            models.LineKind `json:"type" binding:"required,line_kind"`
	CategoryID      uint            `json:"categoryId" binding:"required"`
	SubcategoryID   *uint           `json:"subcategoryId"`
	Concept         string          `json:"concept" binding:"required,min=1,max=200"`
	ProjectedAmount decimal.Decimal `json:"projectedAmount"`
	models.MonthlyAmounts
	Description string `json:"description"`
}

// UpdateLineRequest is the payload for updating a line. Type selects the
// collection; every other field is optional and absent fields are left
// unchanged.
type UpdateLineRequest struct {
	Type            models.LineKind  `json:"type" binding:"required,line_kind"`
	CategoryID      *uint            `json:"categoryId"`
	SubcategoryID   *uint            `json:"subcategoryId"`
	Concept         *string          `json:"concept" binding:"omitempty,min=1,max=200"`
	ProjectedAmount *decimal.Decimal `json:"projectedAmount"`
	January         *decimal.Decimal `json:"january"`
	February        *decimal.Decimal `json:"february"`
	March           *decimal.Decimal `json:"march"`
	April           *decimal.Decimal `json:"april"`
	May             *decimal.Decimal `json:"may"`
	June            *decimal.Decimal `json:"june"`
	July            *decimal.Decimal `json:"july"`
	August          *decimal.Decimal `json:"august"`
	September       *decimal.Decimal `json:"september"`
	October         *decimal.Decimal `json:"october"`
	November        *decimal.Decimal `json:"november"`
	December        *decimal.Decimal `json:"december"`
	Description     *string          `json:"description"`
}

// monthUpdates collects the supplied month fields into a column map.
func (r *UpdateLineRequest) monthUpdates() map[string]decimal.Decimal {
	months := map[string]*decimal.Decimal{
		"january": r.January, "february": r.February, "march": r.March,
		"april": r.April, "may": r.May, "june": r.June,
		"july": r.July, "august": r.August, "september": r.September,
		"october": r.October, "november": r.November, "december": r.December,
	}
	updates := make(map[string]decimal.Decimal)
	for name, v := range months {
		if v != nil {
			updates[name] = *v
		}
	}
	return updates
}

// GetBudgetLines handles listing a budget's line items.
// @Summary     Get budget lines
// @Description Get a budget's income and expense lines with category and subcategory details
// @Tags        budget-lines
// @Accept      json
// @Produce     json
// @Param       id path int true "Budget ID"
// @Success     200 {object} services.BudgetLines "Income and expense lines"
// @Failure     400 {object} ErrorResponse "Invalid budget ID"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id}/lines [get]
func (h *LineHandler) GetBudgetLines(c *gin.Context) {
	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	lines, err := h.lineService.ListLines(budgetID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, lines)
}

// CreateIncomeLine handles creating an income line for a budget.
// @Summary     Create income line
// @Description Add an income line to a budget; the budget's totals are recalculated
// @Tags        budget-lines
// @Accept      json
// @Produce     json
// @Param       id      path int               true "Budget ID"
// @Param       request body CreateLineRequest true "Line details"
// @Success     201 {object} models.BudgetIncomeLine "Line created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Budget or category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id}/income-lines [post]
func (h *LineHandler) CreateIncomeLine(c *gin.Context) {
	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	line, err := h.lineService.CreateIncomeLine(budgetID, services.LineInput{
		CategoryID:      req.CategoryID,
		SubcategoryID:   req.SubcategoryID,
		Concept:         req.Concept,
		ProjectedAmount: req.ProjectedAmount,
		Description:     req.Description,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"line": line})
}

// CreateExpenseLine handles creating an expense line for a budget.
// @Summary     Create expense line
// @Description Add an expense line to a budget; the budget's totals are recalculated
// @Tags        budget-lines
// @Accept      json
// @Produce     json
// @Param       id      path int               true "Budget ID"
// @Param       request body CreateLineRequest true "Line details"
// @Success     201 {object} models.BudgetExpenseLine "Line created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Budget or category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id}/expenses-lines [post]
func (h *LineHandler) CreateExpenseLine(c *gin.Context) {
	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	line, err := h.lineService.CreateExpenseLine(budgetID, services.LineInput{
		CategoryID:      req.CategoryID,
		SubcategoryID:   req.SubcategoryID,
		Concept:         req.Concept,
		ProjectedAmount: req.ProjectedAmount,
		Description:     req.Description,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"line": line})
}

// CreateLine handles the generic create endpoint with an explicit kind
// and optional monthly breakdown.
// @Summary     Create line
// @Description Add an income or expense line with an optional monthly breakdown
// @Tags        budget-lines
// @Accept      json
// @Produce     json
// @Param       id      path int                      true "Budget ID"
// @Param       request body CreateGenericLineRequest true "Line details with kind"
// @Success     201 {object} models.BudgetIncomeLine "Line created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Budget or category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id}/lines [post]
func (h *LineHandler) CreateLine(c *gin.Context) {
	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateGenericLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	input := services.LineInput{
		CategoryID:      req.CategoryID,
		SubcategoryID:   req.SubcategoryID,
		Concept:         req.Concept,
		ProjectedAmount: req.ProjectedAmount,
		Months:          req.MonthlyAmounts,
		Description:     req.Description,
	}

	if req.Type == models.LineKindIncome {
		line, err := h.lineService.CreateIncomeLine(budgetID, input)
		if err != nil {
			respondWithError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"line": line})
		return
	}

	line, err := h.lineService.CreateExpenseLine(budgetID, input)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"line": line})
}

// UpdateLine handles updating a line item.
// @Summary     Update line
// @Description Update a line item; the owning budget's totals are recalculated
// @Tags        budget-lines
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int               true "Line ID"
// @Param       request body UpdateLineRequest true "Updated line fields with kind"
// @Success     200 {object} models.BudgetIncomeLine "Updated line"
// @Failure     400 {object} ErrorResponse "Invalid input or line ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Line not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budget-lines/{id} [put]
func (h *LineHandler) UpdateLine(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	lineID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	update := services.LineUpdate{
		CategoryID:      req.CategoryID,
		SubcategoryID:   req.SubcategoryID,
		Concept:         req.Concept,
		ProjectedAmount: req.ProjectedAmount,
		Months:          req.monthUpdates(),
		Description:     req.Description,
	}

	if req.Type == models.LineKindIncome {
		line, err := h.lineService.UpdateIncomeLine(lineID, update)
		if err != nil {
			respondWithError(c, err)
			return
		}
		h.auditService.Log(userID, "UPDATE_BUDGET_LINE", "budget_income_line", lineID, c.ClientIP(), nil)
		c.JSON(http.StatusOK, gin.H{"line": line})
		return
	}

	line, err := h.lineService.UpdateExpenseLine(lineID, update)
	if err != nil {
		respondWithError(c, err)
		return
	}
	h.auditService.Log(userID, "UPDATE_BUDGET_LINE", "budget_expense_line", lineID, c.ClientIP(), nil)
	c.JSON(http.StatusOK, gin.H{"line": line})
}

// DeleteLine handles deleting a line item without knowing its kind.
// @Summary     Delete line
// @Description Delete a line item, auto-detecting income vs expense; the owning budget's totals are recalculated
// @Tags        budget-lines
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Line ID"
// @Success     200 {object} MessageResponse "Line deleted"
// @Failure     400 {object} ErrorResponse "Invalid line ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Line not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budget-lines/{id} [delete]
func (h *LineHandler) DeleteLine(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	lineID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.lineService.DeleteLine(lineID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_BUDGET_LINE", "budget_line", lineID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Budget line deleted successfully"})
}
