package models

import "time"

// DebtAccount is a loan the user is servicing. TermMonths is at least 1,
// which keeps the amortization formulas free of division by zero.
type DebtAccount struct {
	Base
	UserID        uint      `gorm:"not null;index" json:"user_id"`
	Name          string    `gorm:"not null" json:"name"`
	Principal     float64   `gorm:"not null;check:principal >= 0" json:"principal"`
	AnnualRatePct float64   `gorm:"not null;check:annual_rate_pct >= 0" json:"annual_rate_pct"`
	TermMonths    int       `gorm:"not null;check:term_months >= 1" json:"term_months"`
	CurrentEMI    float64   `gorm:"not null;check:current_emi >= 0" json:"current_emi"`
	StartDate     time.Time `json:"start_date"`
}
