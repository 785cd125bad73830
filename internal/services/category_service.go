package services

import (
	"gorm.io/gorm"

	apperrors "expensetracker/internal/errors"
	"expensetracker/internal/models"
)

// categoryService exposes the categories currently in use. Categories are
// not a managed table; they exist only as values on stored expenses.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new category service instance.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// GetCategories returns the distinct categories across all expenses in
// ascending order. The list is computed per call so deletions are
// reflected immediately.
func (s *categoryService) GetCategories() ([]string, error) {
	categories := make([]string, 0)
	if err := s.db.Model(&models.Expense{}).
		Distinct().
		Order("category ASC").
		Pluck("category", &categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return categories, nil
}
