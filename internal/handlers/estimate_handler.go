package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "budgeteer/internal/errors"
	"budgeteer/internal/services"
)

// EstimateHandler handles the estimates nested under a budget.
type EstimateHandler struct {
	estimateService services.EstimateServicer
	auditService    services.AuditServicer
}

// NewEstimateHandler creates a new EstimateHandler.
func NewEstimateHandler(estimateService services.EstimateServicer, auditService services.AuditServicer) *EstimateHandler {
	return &EstimateHandler{estimateService: estimateService, auditService: auditService}
}

// CreateEstimateRequest represents the request payload for adding an estimate.
type CreateEstimateRequest struct {
	CategoryID string          `json:"category_id" binding:"required,uuid"`
	Amount     decimal.Decimal `json:"amount" swaggertype:"string" example:"250.00" binding:"required,money"`
}

// UpdateEstimateRequest represents the request payload for changing an estimate.
type UpdateEstimateRequest struct {
	CategoryID *string          `json:"category_id" binding:"omitempty,uuid"`
	Amount     *decimal.Decimal `json:"amount" swaggertype:"string" example:"250.00" binding:"omitempty,money"`
}

// CreateEstimate handles adding an estimate to a budget.
// @Summary     Add estimate
// @Description Add a monthly estimate for an active category to an active budget
// @Tags        estimates
// @Accept      json
// @Produce     json
// @Param       slug    path string                true "Budget slug"
// @Param       request body CreateEstimateRequest true "Estimate details"
// @Success     201 {object} models.BudgetEstimate "Estimate created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Budget or category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{slug}/estimates [post]
func (h *EstimateHandler) CreateEstimate(c *gin.Context) {
	var req CreateEstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	estimate, err := h.estimateService.CreateEstimate(c.Param("slug"), req.CategoryID, req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(services.AuditActionCreate, "budget_estimate", estimate.ID, c.ClientIP(),
		map[string]interface{}{"budget": c.Param("slug"), "category_id": req.CategoryID, "amount": req.Amount.StringFixed(2)})

	c.JSON(http.StatusCreated, gin.H{"estimate": estimate})
}

// ListEstimates handles listing a budget's estimates.
// @Summary     List estimates
// @Tags        estimates
// @Produce     json
// @Param       slug path string true "Budget slug"
// @Success     200 {array}  models.BudgetEstimate "Estimates in creation order"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{slug}/estimates [get]
func (h *EstimateHandler) ListEstimates(c *gin.Context) {
	estimates, err := h.estimateService.ListEstimates(c.Param("slug"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"estimates": estimates})
}

// GetEstimate handles retrieving one estimate.
// @Summary     Get estimate
// @Tags        estimates
// @Produce     json
// @Param       slug path string true "Budget slug"
// @Param       id   path string true "Estimate ID"
// @Success     200 {object} models.BudgetEstimate "Estimate details"
// @Failure     400 {object} ErrorResponse "Invalid estimate ID"
// @Failure     404 {object} ErrorResponse "Budget or estimate not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{slug}/estimates/{id} [get]
func (h *EstimateHandler) GetEstimate(c *gin.Context) {
	estimateID, err := parseIDParam(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	estimate, err := h.estimateService.GetEstimate(c.Param("slug"), estimateID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"estimate": estimate})
}

// UpdateEstimate handles changing an estimate's category or amount.
// @Summary     Update estimate
// @Tags        estimates
// @Accept      json
// @Produce     json
// @Param       slug    path string                true "Budget slug"
// @Param       id      path string                true "Estimate ID"
// @Param       request body UpdateEstimateRequest true "Changes"
// @Success     200 {object} models.BudgetEstimate "Updated estimate"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Budget, estimate or category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{slug}/estimates/{id} [put]
func (h *EstimateHandler) UpdateEstimate(c *gin.Context) {
	estimateID, err := parseIDParam(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateEstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	estimate, err := h.estimateService.UpdateEstimate(c.Param("slug"), estimateID, req.CategoryID, req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	changes := map[string]interface{}{}
	if req.CategoryID != nil {
		changes["category_id"] = *req.CategoryID
	}
	if req.Amount != nil {
		changes["amount"] = req.Amount.StringFixed(2)
	}
	h.auditService.Log(services.AuditActionUpdate, "budget_estimate", estimate.ID, c.ClientIP(), changes)

	c.JSON(http.StatusOK, gin.H{"estimate": estimate})
}

// DeleteEstimate handles soft-deleting an estimate.
// @Summary     Delete estimate
// @Tags        estimates
// @Produce     json
// @Param       slug path string true "Budget slug"
// @Param       id   path string true "Estimate ID"
// @Success     200 {object} map[string]string "Estimate deleted"
// @Failure     400 {object} ErrorResponse "Invalid estimate ID"
// @Failure     404 {object} ErrorResponse "Budget or estimate not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{slug}/estimates/{id} [delete]
func (h *EstimateHandler) DeleteEstimate(c *gin.Context) {
	estimateID, err := parseIDParam(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.estimateService.DeleteEstimate(c.Param("slug"), estimateID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(services.AuditActionDelete, "budget_estimate", estimateID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Estimate deleted successfully"})
}
