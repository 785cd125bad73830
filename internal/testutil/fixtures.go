package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"expensetracker/internal/models"
	"expensetracker/internal/money"

	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestExpense creates an expense with the given amount (in cents),
// category, and date. The description is generated and unique.
func CreateTestExpense(t *testing.T, db *gorm.DB, cents int64, category string, date time.Time) *models.Expense {
	t.Helper()
	description := fmt.Sprintf("Test Expense %d", nextID())
	return CreateTestExpenseWithDescription(t, db, cents, description, category, date)
}

// CreateTestExpenseWithDescription creates an expense with every field
// supplied.
func CreateTestExpenseWithDescription(t *testing.T, db *gorm.DB, cents int64, description, category string, date time.Time) *models.Expense {
	t.Helper()

	expense := &models.Expense{
		Amount:      money.FromCents(cents),
		Description: description,
		Category:    category,
		Date:        date,
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return expense
}
