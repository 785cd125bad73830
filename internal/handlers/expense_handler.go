package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"expensetracker/internal/pagination"
	"expensetracker/internal/services"
)

// ExpenseHandler handles expense-related requests.
type ExpenseHandler struct {
	expenseService services.ExpenseServicer
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(expenseService services.ExpenseServicer) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// CreateExpenseRequest represents the request payload for creating an expense
type CreateExpenseRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required,positive_amount"`
	Description string          `json:"description" binding:"required,max=255"`
	Category    string          `json:"category" binding:"max=100"`
	Date        *string         `json:"date"`
}

// UpdateExpenseRequest represents the request payload for updating an
// expense. All fields are optional; unknown fields like id are ignored.
type UpdateExpenseRequest struct {
	Amount      *decimal.Decimal `json:"amount" binding:"omitempty,positive_amount"`
	Description *string          `json:"description" binding:"omitempty,max=255"`
	Category    *string          `json:"category" binding:"omitempty,max=100"`
	Date        *string          `json:"date"`
}

// ExpenseResponse represents an expense in the response
type ExpenseResponse struct {
	ID          uint      `json:"id"`
	Amount      string    `json:"amount"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ExpenseListResponse represents one page of expenses
type ExpenseListResponse struct {
	Expenses   []ExpenseResponse `json:"expenses"`
	Pagination pagination.Meta   `json:"pagination"`
}

// CreateExpense handles the creation of a new expense
// @Summary     Create an expense
// @Description Record a new expense. The date defaults to now and the category to "Uncategorized".
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Param       request body CreateExpenseRequest true "Expense details"
// @Success     201 {object} ExpenseResponse "Expense created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses [post]
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	var req CreateExpenseRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	expense, err := h.expenseService.CreateExpense(services.CreateExpenseInput{
		Amount:      req.Amount,
		Description: req.Description,
		Category:    req.Category,
		Date:        req.Date,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, expense)
}

// GetExpenses handles the paginated listing of expenses
// @Summary     List expenses
// @Description Get a paginated list of expenses with optional filters and sorting
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Param       page       query int    false "Page number (default 1)"
// @Param       per_page   query int    false "Items per page (default 20, max 100)"
// @Param       category   query string false "Filter by exact category"
// @Param       start_date query string false "Filter by start date (RFC3339 e.g. 2024-01-01T00:00:00Z, or YYYY-MM-DD)"
// @Param       end_date   query string false "Filter by end date (RFC3339 or YYYY-MM-DD)"
// @Param       sort_by    query string false "Sort field (amount, date, category, description; default date)"
// @Param       sort_order query string false "Sort direction (asc or desc; defaults to desc for date, asc otherwise)"
// @Success     200 {object} ExpenseListResponse "Paginated expenses"
// @Failure     400 {object} ErrorResponse "Invalid parameters"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses [get]
func (h *ExpenseHandler) GetExpenses(c *gin.Context) {
	params := services.ListParams{
		Page:      c.Query("page"),
		PerPage:   c.Query("per_page"),
		Category:  c.Query("category"),
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}

	expenses, meta, err := h.expenseService.GetExpenses(params)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"expenses":   expenses,
		"pagination": meta,
	})
}

// GetExpenseByID handles the retrieval of a specific expense
// @Summary     Get expense by ID
// @Description Get a single expense by its ID
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Param       id path int true "Expense ID"
// @Success     200 {object} ExpenseResponse "Expense details"
// @Failure     400 {object} ErrorResponse "Invalid expense ID"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{id} [get]
func (h *ExpenseHandler) GetExpenseByID(c *gin.Context) {
	id, err := parseExpenseID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expense, err := h.expenseService.GetExpenseByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, expense)
}

// UpdateExpense handles partial updates of an existing expense
// @Summary     Update expense
// @Description Update one or more fields of an existing expense. The id and created_at fields are immutable.
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Param       id      path int                  true "Expense ID"
// @Param       request body UpdateExpenseRequest true "Fields to update"
// @Success     200 {object} ExpenseResponse "Updated expense"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{id} [put]
func (h *ExpenseHandler) UpdateExpense(c *gin.Context) {
	id, err := parseExpenseID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateExpenseRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	expense, err := h.expenseService.UpdateExpense(id, services.UpdateExpenseInput{
		Amount:      req.Amount,
		Description: req.Description,
		Category:    req.Category,
		Date:        req.Date,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, expense)
}

// DeleteExpense handles the permanent deletion of an expense
// @Summary     Delete expense
// @Description Permanently delete an expense by ID
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Param       id path int true "Expense ID"
// @Success     204 "Expense deleted"
// @Failure     400 {object} ErrorResponse "Invalid expense ID"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{id} [delete]
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	id, err := parseExpenseID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.expenseService.DeleteExpense(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
