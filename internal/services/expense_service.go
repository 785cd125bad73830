package services

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"

	apperrors "expensetracker/internal/errors"
	"expensetracker/internal/models"
	"expensetracker/internal/money"
	"expensetracker/internal/pagination"
)

// expenseService handles expense-related business logic.
type expenseService struct {
	db     *gorm.DB
	limits pagination.Limits
}

// NewExpenseService creates a new expense service instance.
func NewExpenseService(db *gorm.DB, limits pagination.Limits) ExpenseServicer {
	return &expenseService{db: db, limits: limits}
}

// CreateExpense validates the input and persists a new expense. A missing
// date defaults to the current UTC instant and a blank category to the
// default category.
func (s *expenseService) CreateExpense(input CreateExpenseInput) (*models.Expense, error) {
	amount, err := money.FromDecimal(input.Amount)
	if err != nil {
		return nil, apperrors.ValidationFailed("amount", "Amount must be a positive decimal")
	}

	description, err := normalizeDescription(input.Description)
	if err != nil {
		return nil, err
	}

	category, err := normalizeCategory(input.Category)
	if err != nil {
		return nil, err
	}

	date := time.Now().UTC()
	if input.Date != nil {
		parsed, err := parseFlexibleTime(*input.Date)
		if err != nil {
			return nil, apperrors.ValidationFailed("date", "Date must be a valid timestamp")
		}
		date = parsed
	}

	expense := &models.Expense{
		Amount:      amount,
		Description: description,
		Category:    category,
		Date:        date,
	}

	if err := s.db.Create(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}

	return expense, nil
}

// GetExpenseByID retrieves a single expense.
func (s *expenseService) GetExpenseByID(id uint) (*models.Expense, error) {
	var expense models.Expense
	if err := s.db.First(&expense, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.WithMessage(apperrors.ErrExpenseNotFound,
				fmt.Sprintf("Expense with ID %d not found", id))
		}
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return &expense, nil
}

// GetExpenses returns one page of expenses matching the raw parameters,
// together with pagination metadata. The total count is taken before the
// page window is applied, so a page past the end yields an empty slice and
// the true total.
func (s *expenseService) GetExpenses(params ListParams) ([]models.Expense, pagination.Meta, error) {
	query, err := NewListQuery(params, s.limits)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	base := s.db.Model(&models.Expense{})
	base = applyExpenseFilters(base, query)

	var totalCount int64
	if err := base.Count(&totalCount).Error; err != nil {
		return nil, pagination.Meta{}, apperrors.Wrap(apperrors.ErrStorage, err)
	}

	expenses := make([]models.Expense, 0)
	if err := base.
		Scopes(pagination.Paginate(query.Page)).
		Order(query.orderClause()).
		Find(&expenses).Error; err != nil {
		return nil, pagination.Meta{}, apperrors.Wrap(apperrors.ErrStorage, err)
	}

	return expenses, pagination.NewMeta(query.Page, totalCount), nil
}

// UpdateExpense applies a partial update inside a transaction. Supplied
// fields are validated under the same rules as creation; omitted fields are
// left untouched.
func (s *expenseService) UpdateExpense(id uint, input UpdateExpenseInput) (*models.Expense, error) {
	if input.Empty() {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "Update data cannot be empty")
	}

	updates := make(map[string]interface{})
	if input.Amount != nil {
		amount, err := money.FromDecimal(*input.Amount)
		if err != nil {
			return nil, apperrors.ValidationFailed("amount", "Amount must be a positive decimal")
		}
		updates["amount"] = amount
	}
	if input.Description != nil {
		description, err := normalizeDescription(*input.Description)
		if err != nil {
			return nil, err
		}
		updates["description"] = description
	}
	if input.Category != nil {
		category, err := normalizeCategory(*input.Category)
		if err != nil {
			return nil, err
		}
		updates["category"] = category
	}
	if input.Date != nil {
		parsed, err := parseFlexibleTime(*input.Date)
		if err != nil {
			return nil, apperrors.ValidationFailed("date", "Date must be a valid timestamp")
		}
		updates["date"] = parsed
	}

	var expense models.Expense
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&expense, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.WithMessage(apperrors.ErrExpenseNotFound,
					fmt.Sprintf("Expense with ID %d not found", id))
			}
			return apperrors.Wrap(apperrors.ErrStorage, err)
		}

		if err := tx.Model(&expense).Updates(updates).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrStorage, err)
		}

		// Reload so the caller sees exactly what was stored.
		if err := tx.First(&expense, id).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrStorage, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &expense, nil
}

// DeleteExpense permanently removes an expense. There is no soft delete;
// deleted rows are gone and their ids are never reused.
func (s *expenseService) DeleteExpense(id uint) error {
	result := s.db.Delete(&models.Expense{}, id)
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrStorage, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.WithMessage(apperrors.ErrExpenseNotFound,
			fmt.Sprintf("Expense with ID %d not found", id))
	}
	return nil
}

func normalizeDescription(raw string) (string, error) {
	description := strings.TrimSpace(raw)
	if description == "" {
		return "", apperrors.ValidationFailed("description", "Description cannot be empty")
	}
	if utf8.RuneCountInString(description) > 255 {
		return "", apperrors.ValidationFailed("description", "Description must be 255 characters or less")
	}
	return description, nil
}

// applyExpenseFilters narrows a query to the filters of a validated listing
// request. Date bounds are inclusive.
func applyExpenseFilters(q *gorm.DB, query *ListQuery) *gorm.DB {
	if query.Category != "" {
		q = q.Where("category = ?", query.Category)
	}
	if query.StartDate != nil {
		q = q.Where("date >= ?", *query.StartDate)
	}
	if query.EndDate != nil {
		q = q.Where("date <= ?", *query.EndDate)
	}
	return q
}
