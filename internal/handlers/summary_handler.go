package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"expensetracker/internal/services"
)

// SummaryHandler handles expense aggregation requests.
type SummaryHandler struct {
	summaryService services.SummaryServicer
}

// NewSummaryHandler creates a new SummaryHandler.
func NewSummaryHandler(summaryService services.SummaryServicer) *SummaryHandler {
	return &SummaryHandler{summaryService: summaryService}
}

// GetSummary handles the aggregation of expenses over a date range
// @Summary     Summarize expenses
// @Description Get the total amount, expense count, and per-category breakdown over an optional date range
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Param       start_date query string false "Range start (RFC3339 e.g. 2024-01-01T00:00:00Z, or YYYY-MM-DD)"
// @Param       end_date   query string false "Range end (RFC3339 or YYYY-MM-DD)"
// @Success     200 {object} services.Summary "Expense summary"
// @Failure     400 {object} ErrorResponse "Invalid date range"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/summary [get]
func (h *SummaryHandler) GetSummary(c *gin.Context) {
	summary, err := h.summaryService.GetSummary(c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
