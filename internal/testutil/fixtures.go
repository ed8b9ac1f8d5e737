package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"peakfinance/internal/models"
)

var userCounter uint64

// CreateTestUser inserts a user with the given monthly net income and a
// unique email. The password is "password123".
func CreateTestUser(t *testing.T, db *gorm.DB, income float64) *models.User {
	t.Helper()

	n := atomic.AddUint64(&userCounter, 1)
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:            fmt.Sprintf("user%d@example.com", n),
		Password:         string(hashed),
		Locale:           "bn_BD",
		Currency:         "BDT",
		MonthlyNetIncome: income,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestExpense inserts an expense for the user.
func CreateTestExpense(t *testing.T, db *gorm.DB, userID uint, name string, amount float64, expenseType models.ExpenseType) *models.Expense {
	t.Helper()

	expense := &models.Expense{
		UserID: userID,
		Name:   name,
		Amount: amount,
		Type:   expenseType,
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return expense
}

// CreateTestDebt inserts a debt account for the user.
func CreateTestDebt(t *testing.T, db *gorm.DB, userID uint, principal, annualRatePct float64, termMonths int, currentEMI float64) *models.DebtAccount {
	t.Helper()

	debt := &models.DebtAccount{
		UserID:        userID,
		Name:          "Test Loan",
		Principal:     principal,
		AnnualRatePct: annualRatePct,
		TermMonths:    termMonths,
		CurrentEMI:    currentEMI,
		StartDate:     time.Now().AddDate(0, -1, 0),
	}
	if err := db.Create(debt).Error; err != nil {
		t.Fatalf("failed to create test debt: %v", err)
	}
	return debt
}

// CreateTestGoal inserts a savings goal for the user.
func CreateTestGoal(t *testing.T, db *gorm.DB, userID uint, name string, target, saved float64) *models.Goal {
	t.Helper()

	goal := &models.Goal{
		UserID:       userID,
		Name:         name,
		TargetAmount: target,
		SavedAmount:  saved,
		Priority:     1,
	}
	if err := db.Create(goal).Error; err != nil {
		t.Fatalf("failed to create test goal: %v", err)
	}
	return goal
}

// CreateTestAIRule inserts an advisor rule override for the user.
func CreateTestAIRule(t *testing.T, db *gorm.DB, userID uint, funRatio float64) *models.AIRule {
	t.Helper()

	rule := &models.AIRule{
		UserID:             userID,
		FunRatio:           funRatio,
		CategoryCapsJSON:   "{}",
		VelocityThresholdK: 2.0,
		MerchantRulesJSON:  "[]",
	}
	if err := db.Create(rule).Error; err != nil {
		t.Fatalf("failed to create test AI rule: %v", err)
	}
	return rule
}
