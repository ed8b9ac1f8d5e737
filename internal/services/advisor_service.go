package services

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"peakfinance/internal/calculators"
	"peakfinance/internal/compliance"
	"peakfinance/internal/config"
	apperrors "peakfinance/internal/errors"
	"peakfinance/internal/intent"
	"peakfinance/internal/logger"
	"peakfinance/internal/models"
	"peakfinance/internal/provider"
)

// blockedAnswer is the fixed explanation returned for regulated requests.
const blockedAnswer = "This request needs regulated capabilities (loan approval, e-KYC, or CIB access). " +
	"Peak Finance operates in educational mode, so we cannot process it."

// unavailableAnswer replaces the AI answer whenever the backend fails. The
// advisor degrades, it never errors out toward the user.
const unavailableAnswer = "The advisor is temporarily unavailable. Please try again in a few minutes."

// advisorService runs the guarded ask flow: classify, gate, ground, generate.
type advisorService struct {
	db       *gorm.DB
	cfg      *config.Config
	provider provider.Provider
	audit    AuditServicer
}

// NewAdvisorService creates a new AdvisorServicer. The provider is selected
// once at startup and injected here.
func NewAdvisorService(db *gorm.DB, cfg *config.Config, p provider.Provider, audit AuditServicer) AdvisorServicer {
	return &advisorService{db: db, cfg: cfg, provider: p, audit: audit}
}

// Ask answers a financial question. Regulated intents are refused before any
// data is gathered or any AI backend is called.
func (s *advisorService) Ask(ctx context.Context, userID uint, question string) (*AdvisorReply, error) {
	if strings.TrimSpace(question) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "question is required")
	}

	category := intent.Classify(question)

	meta := make(map[string]any)
	for k, v := range compliance.AIMeta() {
		meta[k] = v
	}
	meta["intent"] = string(category)
	meta["regulated_mode"] = s.cfg.RegulatedPartner

	if !intent.Allowed(category, s.cfg.RegulatedPartner) {
		s.audit.Record(userID, "ai_request_blocked", map[string]any{
			"intent":   string(category),
			"question": compliance.RedactPII(question),
		})
		return &AdvisorReply{
			Answer:    blockedAnswer,
			Intent:    string(category),
			IsBlocked: true,
			Meta:      meta,
		}, nil
	}

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
	var rule *models.AIRule
	var found models.AIRule
	if err := s.db.Where("user_id = ?", userID).First(&found).Error; err == nil {
		rule = &found
	}

	grounding := BuildUserContext(s.cfg, &user, expenses, debts, goals, rule)

	answer, err := s.provider.Generate(ctx, question, grounding)
	if err != nil {
		logger.Get().Warnw("AI provider failed, degrading to fallback answer",
			"provider", s.provider.Name(),
			"error", err,
		)
		answer = unavailableAnswer
	}

	meta["provider"] = s.provider.Name()
	meta["context_summary"] = grounding

	s.audit.Record(userID, "ai_request_answered", map[string]any{
		"intent":   string(category),
		"question": compliance.RedactPII(question),
		"provider": s.provider.Name(),
	})

	return &AdvisorReply{
		Answer:    answer,
		Intent:    string(category),
		IsBlocked: false,
		Meta:      meta,
	}, nil
}

// BuildUserContext summarizes the user's finances for AI grounding. It is an
// aggregated snapshot, never a dump of raw records.
func BuildUserContext(cfg *config.Config, user *models.User, expenses []models.Expense, debts []models.DebtAccount, goals []models.Goal, rule *models.AIRule) string {
	totalExpenses := 0.0
	for _, e := range expenses {
		totalExpenses += e.Amount
	}
	totalDebtEMI := 0.0
	for _, d := range debts {
		totalDebtEMI += d.CurrentEMI
	}
	totalGoalTarget := 0.0
	totalGoalSaved := 0.0
	for _, g := range goals {
		totalGoalTarget += g.TargetAmount
		totalGoalSaved += g.SavedAmount
	}

	funRatio := cfg.DefaultFunRatio
	if rule != nil {
		funRatio = rule.FunRatio
	}
	funBudget := calculators.FunBudget(user.MonthlyNetIncome, funRatio)

	riskTolerance := "Not set"
	if user.RiskTolerance != nil {
		riskTolerance = string(*user.RiskTolerance)
	}

	var b strings.Builder
	b.WriteString("User Financial Summary:\n")
	fmt.Fprintf(&b, "- Monthly Income: %s\n", formatMoney(user.MonthlyNetIncome))
	fmt.Fprintf(&b, "- Total Monthly Expenses: %s\n", formatMoney(totalExpenses))
	fmt.Fprintf(&b, "- Total Monthly Debt Payments (EMI): %s\n", formatMoney(totalDebtEMI))
	fmt.Fprintf(&b, "- Surplus: %s\n", formatMoney(user.MonthlyNetIncome-totalExpenses-totalDebtEMI))
	fmt.Fprintf(&b, "- Fun Budget Allocation: %s (%.0f%% of income)\n", formatMoney(funBudget), funRatio*100)
	fmt.Fprintf(&b, "- Goals: %d active (Target: %s, Saved: %s)\n", len(goals), formatMoney(totalGoalTarget), formatMoney(totalGoalSaved))
	fmt.Fprintf(&b, "- Risk Tolerance: %s", riskTolerance)
	return b.String()
}
