package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	apperrors "expensetracker/internal/errors"
	"expensetracker/internal/logger"
	"expensetracker/internal/models"
	"expensetracker/internal/pagination"
)

// SortField enumerates the columns a listing can be ordered by.
type SortField string

const (
	SortByAmount      SortField = "amount"
	SortByDate        SortField = "date"
	SortByCategory    SortField = "category"
	SortByDescription SortField = "description"
)

// SortOrder is the direction of a listing sort.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

var sortFields = []SortField{SortByAmount, SortByDate, SortByCategory, SortByDescription}

// ListQuery is a validated, normalized listing request. Construct it with
// NewListQuery; a zero value is not meaningful.
type ListQuery struct {
	Category  string
	StartDate *time.Time
	EndDate   *time.Time
	SortBy    SortField
	SortOrder SortOrder
	Page      pagination.PageRequest
}

// NewListQuery validates raw query parameters and applies defaults: page 1,
// the configured page size, and date-descending order. Out-of-range values
// are rejected rather than clamped.
func NewListQuery(params ListParams, limits pagination.Limits) (*ListQuery, error) {
	page := 1
	if params.Page != "" {
		n, err := strconv.Atoi(params.Page)
		if err != nil || n < 1 {
			return nil, apperrors.ValidationFailed("page", "Page must be a positive integer")
		}
		page = n
	}

	perPage := limits.DefaultPageSize
	if params.PerPage != "" {
		n, err := strconv.Atoi(params.PerPage)
		if err != nil || n < 1 || n > limits.MaxPageSize {
			return nil, apperrors.ValidationFailed("per_page",
				fmt.Sprintf("Per page must be between 1 and %d", limits.MaxPageSize))
		}
		perPage = n
	}

	startDate, endDate, err := NewDateRange(params.StartDate, params.EndDate)
	if err != nil {
		return nil, err
	}

	sortBy := SortByDate
	if params.SortBy != "" {
		sortBy = SortField(params.SortBy)
		if !validSortField(sortBy) {
			return nil, apperrors.ValidationFailed("sort_by",
				fmt.Sprintf("Sort field must be one of: %s", sortFieldNames()))
		}
	}

	var sortOrder SortOrder
	switch params.SortOrder {
	case "":
		if sortBy == SortByDate {
			sortOrder = SortDesc
		} else {
			sortOrder = SortAsc
			logger.Get().Debugw("sort order not specified, defaulting to ascending",
				"sort_by", sortBy)
		}
	case string(SortAsc):
		sortOrder = SortAsc
	case string(SortDesc):
		sortOrder = SortDesc
	default:
		return nil, apperrors.ValidationFailed("sort_order", "Sort order must be 'asc' or 'desc'")
	}

	return &ListQuery{
		Category:  strings.TrimSpace(params.Category),
		StartDate: startDate,
		EndDate:   endDate,
		SortBy:    sortBy,
		SortOrder: sortOrder,
		Page:      pagination.PageRequest{Page: page, PerPage: perPage},
	}, nil
}

// orderClause renders the deterministic ORDER BY for the query. The id
// tie-break keeps pagination stable across requests.
func (q *ListQuery) orderClause() string {
	direction := "ASC"
	if q.SortOrder == SortDesc {
		direction = "DESC"
	}
	return fmt.Sprintf("%s %s, id ASC", q.SortBy, direction)
}

// NewDateRange parses optional range bounds and rejects inverted ranges.
// Empty strings mean an open bound.
func NewDateRange(startDate, endDate string) (*time.Time, *time.Time, error) {
	var start, end *time.Time
	if startDate != "" {
		t, err := parseFlexibleTime(startDate)
		if err != nil {
			return nil, nil, apperrors.ValidationFailed("start_date", "Start date must be a valid timestamp")
		}
		start = &t
	}
	if endDate != "" {
		t, err := parseFlexibleTime(endDate)
		if err != nil {
			return nil, nil, apperrors.ValidationFailed("end_date", "End date must be a valid timestamp")
		}
		end = &t
	}
	if start != nil && end != nil && start.After(*end) {
		return nil, nil, apperrors.ValidationFailed("date_range", "Start date must be before or equal to end date")
	}
	return start, end, nil
}

// parseFlexibleTime accepts RFC 3339 timestamps or bare dates and
// normalizes the result to UTC.
func parseFlexibleTime(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// normalizeCategory trims and title-cases a category name, falling back to
// the default when the input is blank.
func normalizeCategory(raw string) (string, error) {
	category := strings.TrimSpace(raw)
	if category == "" {
		return models.DefaultCategory, nil
	}
	category = cases.Title(language.Und).String(category)
	if utf8.RuneCountInString(category) > 100 {
		return "", apperrors.ValidationFailed("category", "Category must be 100 characters or less")
	}
	return category, nil
}

func validSortField(f SortField) bool {
	for _, field := range sortFields {
		if f == field {
			return true
		}
	}
	return false
}

func sortFieldNames() string {
	names := make([]string, len(sortFields))
	for i, field := range sortFields {
		names[i] = string(field)
	}
	return strings.Join(names, ", ")
}
