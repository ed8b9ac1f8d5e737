// Package calculators implements the financial formula library: amortized
// loan payments, debt-to-income ratios, inflation compounding, and
// discretionary-budget allocation. Every function is a pure, deterministic
// computation over its inputs and returns full-precision floats; rounding
// happens at the presentation boundary, never here.
package calculators

import (
	"math"

	apperrors "peakfinance/internal/errors"
)

// EMI computes the equated monthly installment for an amortizing loan:
// P·r·(1+r)^n / ((1+r)^n − 1), with r the monthly rate. A zero rate
// degenerates to straight-line principal/term.
func EMI(principal, annualRatePct float64, termMonths int) (float64, error) {
	if termMonths < 1 {
		return 0, apperrors.ErrInvalidTerm
	}
	if principal < 0 {
		return 0, apperrors.ErrInvalidPrincipal
	}

	r := annualRatePct / 12 / 100
	n := float64(termMonths)
	if r == 0 {
		return principal / n, nil
	}

	factor := math.Pow(1+r, n)
	return principal * r * factor / (factor - 1), nil
}

// PrincipalFromEMI is the algebraic inverse of EMI: the principal a given
// monthly payment can amortize over the term at the given rate.
func PrincipalFromEMI(emi, annualRatePct float64, termMonths int) (float64, error) {
	if termMonths < 1 {
		return 0, apperrors.ErrInvalidTerm
	}
	if emi < 0 {
		return 0, apperrors.ErrInvalidPayment
	}

	r := annualRatePct / 12 / 100
	n := float64(termMonths)
	if r == 0 {
		return emi * n, nil
	}

	factor := math.Pow(1+r, n)
	return emi * (factor - 1) / (r * factor), nil
}

// DTI returns the debt-to-income ratio. Non-positive income yields 0 rather
// than an error so affordability views degrade gracefully.
func DTI(monthlyDebtPayment, monthlyIncome float64) float64 {
	if monthlyIncome <= 0 {
		return 0
	}
	return monthlyDebtPayment / monthlyIncome
}

// RequiredEMIToFinish returns the EMI that retires the remaining balance
// within the months remaining at the given rate.
func RequiredEMIToFinish(principal, annualRatePct float64, monthsRemaining int) (float64, error) {
	return EMI(principal, annualRatePct, monthsRemaining)
}

// InflationProjection compounds a cost forward: cost × (1 + rate/100)^years.
func InflationProjection(currentCost, annualRatePct float64, years int) float64 {
	return currentCost * math.Pow(1+annualRatePct/100, float64(years))
}

// FunBudget returns the discretionary allocation income × ratio. The ratio is
// expected in [0,1]; range validation is the caller's responsibility.
func FunBudget(income, ratio float64) float64 {
	return income * ratio
}
