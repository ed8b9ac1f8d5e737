package services

import (
	"math"

	"gorm.io/gorm"

	"peakfinance/internal/calculators"
	"peakfinance/internal/config"
	apperrors "peakfinance/internal/errors"
	"peakfinance/internal/models"
)

// dashboardService aggregates the user's records into a single summary.
type dashboardService struct {
	db  *gorm.DB
	cfg *config.Config
}

// NewDashboardService creates a new DashboardServicer.
func NewDashboardService(db *gorm.DB, cfg *config.Config) DashboardServicer {
	return &dashboardService{db: db, cfg: cfg}
}

// GetSummary computes the dashboard metrics from the user's current records.
func (s *dashboardService) GetSummary(userID uint) (*DashboardSummary, error) {
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
	if err := s.db.Where("user_id = ?", userID).Find(&goals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	totalExpenses := 0.0
	for _, e := range expenses {
		totalExpenses += e.Amount
	}
	totalDebtEMI := 0.0
	totalPrincipal := 0.0
	for _, d := range debts {
		totalDebtEMI += d.CurrentEMI
		totalPrincipal += d.Principal
	}

	totalIncome := user.MonthlyNetIncome
	surplus := totalIncome - totalExpenses - totalDebtEMI

	// Safe-to-spend sets aside 20% of a positive surplus for goals.
	goalAllocation := 0.0
	if surplus > 0 {
		goalAllocation = surplus * 0.2
	}
	safeToSpend := math.Max(0, surplus-goalAllocation)

	totalGoalTarget := 0.0
	totalGoalSaved := 0.0
	for _, g := range goals {
		totalGoalTarget += g.TargetAmount
		totalGoalSaved += g.SavedAmount
	}
	goalProgress := 0.0
	if totalGoalTarget > 0 {
		goalProgress = totalGoalSaved / totalGoalTarget * 100
	}

	// Payoff ETA is undefined without debt service, not zero.
	var payoffETA *int
	if totalDebtEMI > 0 {
		months := int(totalPrincipal / totalDebtEMI)
		payoffETA = &months
	}

	return &DashboardSummary{
		TotalIncome:         round2(totalIncome),
		TotalExpenses:       round2(totalExpenses),
		Surplus:             round2(surplus),
		DTI:                 round4(calculators.DTI(totalDebtEMI, totalIncome)),
		SafeToSpend:         round2(safeToSpend),
		FunBudget:           round2(calculators.FunBudget(totalIncome, s.cfg.DefaultFunRatio)),
		GoalProgressPct:     round2(goalProgress),
		DebtPayoffETAMonths: payoffETA,
	}, nil
}
