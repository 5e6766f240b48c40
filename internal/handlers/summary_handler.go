package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "budgeteer/internal/errors"
	"budgeteer/internal/services"
)

// SummaryHandler serves the historical summaries.
type SummaryHandler struct {
	summaryService services.SummaryServicer
}

// NewSummaryHandler creates a new SummaryHandler.
func NewSummaryHandler(summaryService services.SummaryServicer) *SummaryHandler {
	return &SummaryHandler{summaryService: summaryService}
}

// ListMonths handles listing the months that have transactions.
// @Summary     List summary months
// @Description Year-month buckets with at least one active transaction, newest first
// @Tags        summary
// @Produce     json
// @Success     200 {array}  period.YearMonth "Months"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /summary [get]
func (h *SummaryHandler) ListMonths(c *gin.Context) {
	months, err := h.summaryService.Months()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"months": months})
}

// GetYear handles the yearly summary.
// @Summary     Yearly summary
// @Description Actuals for the year against the yearly estimates of the budget current on December 31st
// @Tags        summary
// @Produce     json
// @Param       year path int true "Year"
// @Success     200 {object} services.PeriodSummary "Summary; budget is null when none applies"
// @Failure     400 {object} ErrorResponse "Invalid year"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /summary/{year} [get]
func (h *SummaryHandler) GetYear(c *gin.Context) {
	year, err := parseYear(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.summaryService.Year(year)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetMonth handles the monthly summary.
// @Summary     Monthly summary
// @Description Actuals for the month against the budget current on its last day
// @Tags        summary
// @Produce     json
// @Param       year  path int true "Year"
// @Param       month path int true "Month (1-12)"
// @Success     200 {object} services.PeriodSummary "Summary; budget is null when none applies"
// @Failure     400 {object} ErrorResponse "Invalid year or month"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /summary/{year}/{month} [get]
func (h *SummaryHandler) GetMonth(c *gin.Context) {
	year, err := parseYear(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	month, err := strconv.Atoi(c.Param("month"))
	if err != nil || month < 1 || month > 12 {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid month"))
		return
	}

	summary, err := h.summaryService.Month(year, time.Month(month))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

func parseYear(c *gin.Context) (int, error) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 1 || year > 9999 {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid year")
	}
	return year, nil
}
