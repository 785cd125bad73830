package services

import (
	"time"

	"github.com/shopspring/decimal"

	"expensetracker/internal/models"
	"expensetracker/internal/money"
	"expensetracker/internal/pagination"
)

// CreateExpenseInput carries the fields accepted when creating an expense.
// Date is the raw request value; it defaults to the creation instant when nil.
type CreateExpenseInput struct {
	Amount      decimal.Decimal
	Description string
	Category    string
	Date        *string
}

// UpdateExpenseInput carries the optional fields of a partial update. Nil
// fields keep their stored values; id and created_at are never mutable.
type UpdateExpenseInput struct {
	Amount      *decimal.Decimal
	Description *string
	Category    *string
	Date        *string
}

// Empty reports whether the update supplies no fields at all.
func (u UpdateExpenseInput) Empty() bool {
	return u.Amount == nil && u.Description == nil && u.Category == nil && u.Date == nil
}

// ListParams holds the raw query-string parameters of a listing request.
// Normalization and validation happen in NewListQuery.
type ListParams struct {
	Page      string
	PerPage   string
	Category  string
	StartDate string
	EndDate   string
	SortBy    string
	SortOrder string
}

// ExpenseServicer defines the contract for expense-related business logic.
type ExpenseServicer interface {
	CreateExpense(input CreateExpenseInput) (*models.Expense, error)
	GetExpenseByID(id uint) (*models.Expense, error)
	GetExpenses(params ListParams) ([]models.Expense, pagination.Meta, error)
	UpdateExpense(id uint, input UpdateExpenseInput) (*models.Expense, error)
	DeleteExpense(id uint) error
}

// CategorySummary is the aggregate for a single category within a summary.
type CategorySummary struct {
	Category string      `json:"category"`
	Amount   money.Money `json:"amount"`
	Count    int64       `json:"count"`
}

// DateRange echoes the bounds a summary was filtered by.
type DateRange struct {
	Start *time.Time `json:"start"`
	End   *time.Time `json:"end"`
}

// Summary contains the total and per-category aggregates over a date range.
type Summary struct {
	TotalAmount  money.Money       `json:"total_amount"`
	ExpenseCount int64             `json:"expense_count"`
	DateRange    DateRange         `json:"date_range"`
	Categories   []CategorySummary `json:"categories"`
}

// SummaryServicer defines the contract for expense aggregation.
type SummaryServicer interface {
	GetSummary(startDate, endDate string) (*Summary, error)
}

// CategoryServicer defines the contract for the category registry.
type CategoryServicer interface {
	GetCategories() ([]string, error)
}
