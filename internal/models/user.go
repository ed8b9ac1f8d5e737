package models

// RiskTolerance describes how much investment risk a user is comfortable with.
type RiskTolerance string

// Risk tolerance levels.
const (
	RiskToleranceLow    RiskTolerance = "low"
	RiskToleranceMedium RiskTolerance = "medium"
	RiskToleranceHigh   RiskTolerance = "high"
)

// User represents the user model in the database. Monthly net income is the
// single income figure every affordability calculation is based on.
type User struct {
	Base
	Email            string         `gorm:"uniqueIndex;not null" json:"email"`
	Password         string         `gorm:"not null" json:"-"`
	Locale           string         `gorm:"size:10;default:bn_BD" json:"locale"`
	Currency         string         `gorm:"size:3;default:BDT" json:"currency"`
	RiskTolerance    *RiskTolerance `json:"risk_tolerance,omitempty"`
	MonthlyNetIncome float64        `gorm:"default:0" json:"monthly_net_income"`
	Expenses         []Expense      `gorm:"foreignKey:UserID" json:"expenses,omitempty"`
	Debts            []DebtAccount  `gorm:"foreignKey:UserID" json:"debts,omitempty"`
	Goals            []Goal         `gorm:"foreignKey:UserID" json:"goals,omitempty"`
	Consents         []Consent      `gorm:"foreignKey:UserID" json:"consents,omitempty"`
}
