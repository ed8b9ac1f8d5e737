package services

import (
	"fmt"
	"math"

	"gorm.io/gorm"

	apperrors "peakfinance/internal/errors"
	"peakfinance/internal/models"
)

// Insight severities.
const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)

// insightService generates rule-based financial observations.
type insightService struct {
	db *gorm.DB
}

// NewInsightService creates a new InsightServicer.
func NewInsightService(db *gorm.DB) InsightServicer {
	return &insightService{db: db}
}

// GenerateInsights evaluates the insight rules in a fixed order against the
// user's current records. Deficit and positive-cash-flow are mutually
// exclusive by construction.
func (s *insightService) GenerateInsights(userID uint) ([]Insight, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, apperrors.ErrUserNotFound
	}

	var expenses []models.Expense
	if err := s.db.Where("user_id = ?", userID).Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	var debts []models.DebtAccount
	if err := s.db.Where("user_id = ?", userID).Find(&debts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	var goals []models.Goal
	if err := s.db.Where("user_id = ?", userID).Order("priority DESC, created_at ASC").Limit(3).Find(&goals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	totalExpenses := 0.0
	for _, e := range expenses {
		totalExpenses += e.Amount
	}
	totalDebtEMI := 0.0
	for _, d := range debts {
		totalDebtEMI += d.CurrentEMI
	}
	surplus := user.MonthlyNetIncome - totalExpenses - totalDebtEMI

	insights := make([]Insight, 0, 4)

	// Rule 1: surplus or deficit.
	if surplus < 0 {
		insights = append(insights, Insight{
			Type:     "budget",
			Title:    "Budget Deficit",
			Message:  fmt.Sprintf("You're spending %s more than you earn monthly. Consider reducing variable expenses.", formatMoney(math.Abs(surplus))),
			Severity: SeverityCritical,
		})
	} else if surplus > 0 {
		insights = append(insights, Insight{
			Type:     "budget",
			Title:    "Positive Cash Flow",
			Message:  fmt.Sprintf("You have a surplus of %s/month. Great job! Consider allocating to goals or emergency fund.", formatMoney(surplus)),
			Severity: SeverityInfo,
		})
	}

	// Rule 2: high debt-to-income ratio.
	if user.MonthlyNetIncome > 0 {
		dti := totalDebtEMI / user.MonthlyNetIncome
		if dti > 0.4 {
			insights = append(insights, Insight{
				Type:     "debt",
				Title:    "High Debt-to-Income Ratio",
				Message:  fmt.Sprintf("Your DTI is %.1f%% (recommended: <40%%). Avoid taking new loans until DTI improves.", dti*100),
				Severity: SeverityWarning,
			})
		}
	}

	// Rule 3: lagging progress on the top goals.
	for _, goal := range goals {
		if goal.TargetAmount <= 0 {
			continue
		}
		progress := goal.SavedAmount / goal.TargetAmount * 100
		if progress < 25 {
			insights = append(insights, Insight{
				Type:     "goal",
				Title:    fmt.Sprintf("Goal: %s", goal.Name),
				Message:  fmt.Sprintf("Only %.1f%% complete. Increase monthly contributions to stay on track.", progress),
				Severity: SeverityInfo,
			})
		}
	}

	// Rule 4: prepayment opportunity.
	if len(debts) > 0 && surplus > totalDebtEMI*0.5 {
		insights = append(insights, Insight{
			Type:     "debt",
			Title:    "Prepayment Opportunity",
			Message:  fmt.Sprintf("You could pay extra %s/month on debts to save on interest and finish early.", formatMoney(surplus*0.2)),
			Severity: SeverityInfo,
		})
	}

	return insights, nil
}
