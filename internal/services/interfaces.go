package services

import (
	"context"
	"time"

	"peakfinance/internal/models"
	"peakfinance/internal/pagination"
)

// ProfileUpdate holds optional profile fields; nil means leave unchanged.
type ProfileUpdate struct {
	Locale           *string
	Currency         *string
	RiskTolerance    *models.RiskTolerance
	MonthlyNetIncome *float64
}

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	Register(email, password string) (*models.User, error)
	AttemptLogin(email, password string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	UpdateProfile(userID uint, update ProfileUpdate) (*models.User, error)
}

// ExpenseServicer defines the contract for expense-related business logic.
type ExpenseServicer interface {
	CreateExpense(userID uint, name string, amount float64, expenseType models.ExpenseType) (*models.Expense, error)
	GetUserExpenses(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error)
	GetExpenseByID(userID, expenseID uint) (*models.Expense, error)
	UpdateExpense(userID, expenseID uint, name string, amount *float64, expenseType *models.ExpenseType) (*models.Expense, error)
	DeleteExpense(userID, expenseID uint) error
}

// DebtServicer defines the contract for debt-account business logic.
type DebtServicer interface {
	CreateDebt(userID uint, name string, principal, annualRatePct float64, termMonths int, currentEMI float64, startDate time.Time) (*models.DebtAccount, error)
	GetUserDebts(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.DebtAccount], error)
	GetDebtByID(userID, debtID uint) (*models.DebtAccount, error)
	UpdateDebt(userID, debtID uint, name string, principal, annualRatePct *float64, termMonths *int, currentEMI *float64) (*models.DebtAccount, error)
	DeleteDebt(userID, debtID uint) error
}

// GoalServicer defines the contract for savings-goal business logic.
type GoalServicer interface {
	CreateGoal(userID uint, name string, targetAmount, savedAmount float64, targetDate *time.Time, priority int) (*models.Goal, error)
	GetUserGoals(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Goal], error)
	GetGoalByID(userID, goalID uint) (*models.Goal, error)
	UpdateGoal(userID, goalID uint, name string, targetAmount, savedAmount *float64, targetDate *time.Time, priority *int) (*models.Goal, error)
	DeleteGoal(userID, goalID uint) error
}

// AIRuleUpdate holds optional advisor-rule fields; nil means leave unchanged.
type AIRuleUpdate struct {
	FunRatio           *float64
	CategoryCaps       map[string]float64
	VelocityThresholdK *float64
	MerchantRules      []map[string]any
}

// AIRuleServicer defines the contract for per-user advisor rule overrides.
type AIRuleServicer interface {
	GetRule(userID uint) (*models.AIRule, error)
	UpsertRule(userID uint, update AIRuleUpdate) (*models.AIRule, error)
}

// ConsentServicer defines the contract for consent tracking.
type ConsentServicer interface {
	GetUserConsents(userID uint) ([]models.Consent, error)
	SetConsent(userID uint, scope models.ConsentScope, granted bool) (*models.Consent, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	// Record persists an audit event. Failures are logged, never returned,
	// so auditing cannot break the operation being audited.
	Record(userID uint, action string, payload map[string]any)
}

// StressScenario is one stress-test row of a loan pre-assessment.
type StressScenario struct {
	Scenario      string  `json:"scenario"`
	DTI           float64 `json:"dti"`
	AffordableEMI float64 `json:"affordable_emi"`
	PrincipalEst  float64 `json:"principal_est"`
}

// LoanAssessment is an educational loan-affordability estimate.
type LoanAssessment struct {
	DTI              float64           `json:"dti"`
	AffordableEMICap float64           `json:"affordable_emi_cap"`
	PrincipalEst     float64           `json:"principal_est"`
	StressTests      []StressScenario  `json:"stress_tests"`
	Meta             map[string]string `json:"meta"`
}

// PayoffPlan describes what finishing an existing loan costs.
type PayoffPlan struct {
	RequiredEMI   float64           `json:"required_emi"`
	TotalInterest float64           `json:"total_interest"`
	TotalPayment  float64           `json:"total_payment"`
	Meta          map[string]string `json:"meta"`
}

// InflationItem is one essential-expense input to the inflation forecast.
type InflationItem struct {
	Name        string  `json:"name"`
	CurrentCost float64 `json:"current_cost"`
	Weight      float64 `json:"weight"`
}

// InflationProjectionItem is one projected cost line in a forecast scenario.
type InflationProjectionItem struct {
	Name          string  `json:"name"`
	CurrentCost   float64 `json:"current_cost"`
	ProjectedCost float64 `json:"projected_cost"`
	IncreasePct   float64 `json:"increase_pct"`
}

// InflationForecast projects costs under base, optimistic, and pessimistic
// CPI scenarios, with weighted totals for the base scenario.
type InflationForecast struct {
	BaseScenario        []InflationProjectionItem `json:"base_scenario"`
	OptimisticScenario  []InflationProjectionItem `json:"optimistic_scenario"`
	PessimisticScenario []InflationProjectionItem `json:"pessimistic_scenario"`
	TotalCurrent        float64                   `json:"total_current"`
	TotalProjected      float64                   `json:"total_projected"`
	Meta                map[string]string         `json:"meta"`
}

// PlannerServicer defines the contract for the calculator-backed planning
// surface. All methods are pure computations over the given inputs.
type PlannerServicer interface {
	PreAssessLoan(income, existingMonthlyDebt, annualRatePct float64, termMonths int) (*LoanAssessment, error)
	LoanPayoffPlan(principal, annualRatePct float64, monthsRemaining int) (*PayoffPlan, error)
	ForecastInflation(items []InflationItem, cpiRate float64, years int) (*InflationForecast, error)
}

// DashboardSummary is the single-screen financial overview.
type DashboardSummary struct {
	TotalIncome         float64 `json:"total_income"`
	TotalExpenses       float64 `json:"total_expenses"`
	Surplus             float64 `json:"surplus"`
	DTI                 float64 `json:"dti"`
	SafeToSpend         float64 `json:"safe_to_spend"`
	FunBudget           float64 `json:"fun_budget"`
	GoalProgressPct     float64 `json:"goal_progress_pct"`
	DebtPayoffETAMonths *int    `json:"debt_payoff_eta_months"`
}

// DashboardServicer defines the contract for the dashboard aggregation.
type DashboardServicer interface {
	GetSummary(userID uint) (*DashboardSummary, error)
}

// Insight is a rule-generated observation about the user's finances.
type Insight struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

// InsightServicer defines the contract for rule-based insight generation.
type InsightServicer interface {
	GenerateInsights(userID uint) ([]Insight, error)
}

// AdvisorReply is the advisor's response to a user question.
type AdvisorReply struct {
	Answer    string         `json:"answer"`
	Intent    string         `json:"intent"`
	IsBlocked bool           `json:"is_blocked"`
	Meta      map[string]any `json:"meta"`
}

// AdvisorServicer defines the contract for the guarded AI advisor.
type AdvisorServicer interface {
	Ask(ctx context.Context, userID uint, question string) (*AdvisorReply, error)
}
