package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "budgeteer/internal/errors"
	"budgeteer/internal/models"
	"budgeteer/internal/services"
)

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
	auditService       services.AuditServicer
	pageSize           int
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer, auditService services.AuditServicer, pageSize int) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService, auditService: auditService, pageSize: pageSize}
}

// CreateTransactionRequest represents the request payload for recording a transaction.
type CreateTransactionRequest struct {
	TransactionType string          `json:"transaction_type" binding:"omitempty,transaction_type" example:"expense"`
	CategoryID      string          `json:"category_id" binding:"required,uuid"`
	Amount          decimal.Decimal `json:"amount" swaggertype:"string" example:"12.50" binding:"required,money"`
	Date            string          `json:"date" binding:"omitempty,datetime=2006-01-02" example:"2024-05-01"`
	Notes           string          `json:"notes" binding:"max=255"`
}

// UpdateTransactionRequest represents the request payload for changing a transaction.
type UpdateTransactionRequest struct {
	TransactionType *string          `json:"transaction_type" binding:"omitempty,transaction_type"`
	CategoryID      *string          `json:"category_id" binding:"omitempty,uuid"`
	Amount          *decimal.Decimal `json:"amount" swaggertype:"string" binding:"omitempty,money"`
	Date            *string          `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Notes           *string          `json:"notes" binding:"omitempty,max=255"`
}

// TransactionListQuery holds the optional list filters.
type TransactionListQuery struct {
	FromDate        string `form:"from_date" binding:"omitempty,datetime=2006-01-02"`
	ToDate          string `form:"to_date" binding:"omitempty,datetime=2006-01-02"`
	TransactionType string `form:"transaction_type" binding:"omitempty,transaction_type"`
	CategoryID      string `form:"category_id" binding:"omitempty,uuid"`
	MinAmount       string `form:"min_amount" binding:"omitempty,numeric"`
	MaxAmount       string `form:"max_amount" binding:"omitempty,numeric"`
}

// CreateTransaction handles recording a transaction.
// @Summary     Create transaction
// @Description Record an income or expense; type defaults to expense and date to today
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       request body CreateTransactionRequest true "Transaction details"
// @Success     201 {object} models.Transaction "Transaction created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	date, err := parseDate(req.Date, "date")
	if err != nil {
		respondWithError(c, err)
		return
	}

	tx, err := h.transactionService.CreateTransaction(
		models.TransactionType(req.TransactionType), req.CategoryID, req.Amount, date, req.Notes,
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(services.AuditActionCreate, "transaction", tx.ID, c.ClientIP(),
		map[string]interface{}{
			"transaction_type": tx.Type,
			"category_id":      tx.CategoryID,
			"amount":           tx.Amount.StringFixed(2),
			"date":             tx.Date.Format(dateLayout),
		})

	c.JSON(http.StatusCreated, gin.H{"transaction": tx})
}

// ListTransactions handles listing transactions.
// @Summary     List transactions
// @Description Active transactions, newest first, with optional filters
// @Tags        transactions
// @Produce     json
// @Param       from_date        query string false "Earliest date (YYYY-MM-DD, inclusive)"
// @Param       to_date          query string false "Latest date (YYYY-MM-DD, inclusive)"
// @Param       transaction_type query string false "income or expense"
// @Param       category_id      query string false "Category ID"
// @Param       min_amount       query string false "Minimum amount"
// @Param       max_amount       query string false "Maximum amount"
// @Param       page             query int    false "Page number (default 1)"
// @Param       page_size        query int    false "Items per page (max 100)"
// @Success     200 {object} pagination.PageResponse[models.Transaction] "Paginated transactions"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [get]
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	page, err := bindPage(c, h.pageSize)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var q TransactionListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter, err := q.filter()
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.transactionService.ListTransactions(page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (q TransactionListQuery) filter() (services.TransactionFilter, error) {
	var filter services.TransactionFilter
	var err error

	if filter.FromDate, err = parseDate(q.FromDate, "from_date"); err != nil {
		return filter, err
	}
	if filter.ToDate, err = parseDate(q.ToDate, "to_date"); err != nil {
		return filter, err
	}
	if q.TransactionType != "" {
		t := models.TransactionType(q.TransactionType)
		filter.Type = &t
	}
	if q.CategoryID != "" {
		filter.CategoryID = &q.CategoryID
	}
	if q.MinAmount != "" {
		d, err := decimal.NewFromString(q.MinAmount)
		if err != nil {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "min_amount must be a number")
		}
		filter.MinAmount = &d
	}
	if q.MaxAmount != "" {
		d, err := decimal.NewFromString(q.MaxAmount)
		if err != nil {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "max_amount must be a number")
		}
		filter.MaxAmount = &d
	}
	return filter, nil
}

// GetTransaction handles retrieving a transaction.
// @Summary     Get transaction
// @Tags        transactions
// @Produce     json
// @Param       id path string true "Transaction ID"
// @Success     200 {object} models.Transaction "Transaction details"
// @Failure     400 {object} ErrorResponse "Invalid transaction ID"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [get]
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	transactionID, err := parseIDParam(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	tx, err := h.transactionService.GetTransactionByID(transactionID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": tx})
}

// UpdateTransaction handles changing a transaction.
// @Summary     Update transaction
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       id      path string                   true "Transaction ID"
// @Param       request body UpdateTransactionRequest true "Changes"
// @Success     200 {object} models.Transaction "Updated transaction"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Transaction or category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	transactionID, err := parseIDParam(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	update := services.TransactionUpdate{
		CategoryID: req.CategoryID,
		Amount:     req.Amount,
		Notes:      req.Notes,
	}
	changes := map[string]interface{}{}
	if req.TransactionType != nil {
		t := models.TransactionType(*req.TransactionType)
		update.Type = &t
		changes["transaction_type"] = t
	}
	if req.Date != nil {
		if update.Date, err = parseDate(*req.Date, "date"); err != nil {
			respondWithError(c, err)
			return
		}
		changes["date"] = *req.Date
	}
	if req.CategoryID != nil {
		changes["category_id"] = *req.CategoryID
	}
	if req.Amount != nil {
		changes["amount"] = req.Amount.StringFixed(2)
	}
	if req.Notes != nil {
		changes["notes"] = *req.Notes
	}

	tx, err := h.transactionService.UpdateTransaction(transactionID, update)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(services.AuditActionUpdate, "transaction", tx.ID, c.ClientIP(), changes)

	c.JSON(http.StatusOK, gin.H{"transaction": tx})
}

// DeleteTransaction handles soft-deleting a transaction.
// @Summary     Delete transaction
// @Tags        transactions
// @Produce     json
// @Param       id path string true "Transaction ID"
// @Success     200 {object} map[string]string "Transaction deleted"
// @Failure     400 {object} ErrorResponse "Invalid transaction ID"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	transactionID, err := parseIDParam(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.transactionService.DeleteTransaction(transactionID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(services.AuditActionDelete, "transaction", transactionID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted successfully"})
}
