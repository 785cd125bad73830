package models

import (
	"time"

	"expensetracker/internal/money"
)

// DefaultCategory is the category assigned when none is supplied.
const DefaultCategory = "Uncategorized"

// Expense represents a single expense record. Amounts are stored as
// integer cents; deletion is permanent.
type Expense struct {
	Base
	Amount      money.Money `gorm:"type:bigint;not null" json:"amount"`
	Description string      `gorm:"size:255;not null" json:"description"`
	Category    string      `gorm:"size:100;not null;index" json:"category"`
	Date        time.Time   `gorm:"not null;index" json:"date"`
}
