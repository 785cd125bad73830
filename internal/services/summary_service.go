package services

import (
	"gorm.io/gorm"

	apperrors "expensetracker/internal/errors"
	"expensetracker/internal/models"
	"expensetracker/internal/money"
)

// summaryService handles expense aggregation.
type summaryService struct {
	db *gorm.DB
}

// NewSummaryService creates a new summary service instance.
func NewSummaryService(db *gorm.DB) SummaryServicer {
	return &summaryService{db: db}
}

// GetSummary aggregates expenses over an optional date range. Sums run on
// integer cents in SQL, so the totals are exact. An empty range yields zero
// totals and an empty category list.
func (s *summaryService) GetSummary(startDate, endDate string) (*Summary, error) {
	start, end, err := NewDateRange(startDate, endDate)
	if err != nil {
		return nil, err
	}

	dateRange := func(q *gorm.DB) *gorm.DB {
		if start != nil {
			q = q.Where("date >= ?", *start)
		}
		if end != nil {
			q = q.Where("date <= ?", *end)
		}
		return q
	}

	var totals struct {
		TotalAmount  int64
		ExpenseCount int64
	}
	if err := s.db.Model(&models.Expense{}).
		Scopes(dateRange).
		Select("COALESCE(SUM(amount), 0) AS total_amount, COUNT(id) AS expense_count").
		Scan(&totals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}

	var rows []struct {
		Category string
		Amount   int64
		Count    int64
	}
	if err := s.db.Model(&models.Expense{}).
		Scopes(dateRange).
		Select("category, COALESCE(SUM(amount), 0) AS amount, COUNT(id) AS count").
		Group("category").
		Order("amount DESC, category ASC").
		Scan(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}

	categories := make([]CategorySummary, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, CategorySummary{
			Category: row.Category,
			Amount:   money.FromCents(row.Amount),
			Count:    row.Count,
		})
	}

	return &Summary{
		TotalAmount:  money.FromCents(totals.TotalAmount),
		ExpenseCount: totals.ExpenseCount,
		DateRange:    DateRange{Start: start, End: end},
		Categories:   categories,
	}, nil
}
