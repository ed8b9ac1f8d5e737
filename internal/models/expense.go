package models

// ExpenseType categorizes an expense as fixed or variable.
type ExpenseType string

// Expense types.
const (
	ExpenseTypeFixed    ExpenseType = "fixed"
	ExpenseTypeVariable ExpenseType = "variable"
)

// Expense is a recurring monthly expense. Amounts are never negative;
// the check constraint backs up request validation.
type Expense struct {
	Base
	UserID uint        `gorm:"not null;index" json:"user_id"`
	Name   string      `gorm:"not null" json:"name"`
	Amount float64     `gorm:"not null;check:amount >= 0" json:"amount"`
	Type   ExpenseType `gorm:"not null" json:"type"`
}
