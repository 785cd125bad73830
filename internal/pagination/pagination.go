package pagination

import (
	"math"

	"gorm.io/gorm"
)

// Limits carries the configured page-size policy. It is passed explicitly
// to the query constructors rather than read from globals.
type Limits struct {
	DefaultPageSize int
	MaxPageSize     int
}

// DefaultLimits returns the standard policy: 20 items per page, 100 max.
func DefaultLimits() Limits {
	return Limits{DefaultPageSize: 20, MaxPageSize: 100}
}

// PageRequest holds validated pagination parameters.
type PageRequest struct {
	Page    int
	PerPage int
}

// Offset returns the SQL OFFSET for the current page.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// Meta is the pagination metadata attached to list responses.
type Meta struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	TotalCount int64 `json:"total_count"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// NewMeta computes pagination metadata from the request and the
// pre-pagination total count.
func NewMeta(req PageRequest, totalCount int64) Meta {
	totalPages := int(math.Ceil(float64(totalCount) / float64(req.PerPage)))
	return Meta{
		Page:       req.Page,
		PerPage:    req.PerPage,
		TotalCount: totalCount,
		TotalPages: totalPages,
		HasNext:    req.Page < totalPages,
		HasPrev:    req.Page > 1,
	}
}

// Paginate returns a GORM scope that applies OFFSET and LIMIT for the given page request.
func Paginate(req PageRequest) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(req.Offset()).Limit(req.PerPage)
	}
}
