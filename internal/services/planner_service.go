package services

import (
	"math"

	"peakfinance/internal/calculators"
	"peakfinance/internal/compliance"
	"peakfinance/internal/config"
	apperrors "peakfinance/internal/errors"
)

// plannerService computes the educational planning surfaces: loan
// pre-assessment, payoff plans, and inflation forecasts. It holds no state
// beyond policy configuration.
type plannerService struct {
	cfg *config.Config
}

// NewPlannerService creates a new PlannerServicer.
func NewPlannerService(cfg *config.Config) PlannerServicer {
	return &plannerService{cfg: cfg}
}

// round2 rounds to 2 decimal places (currency amounts).
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// round4 rounds to 4 decimal places (ratios).
func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

// PreAssessLoan estimates how much new loan the user can afford under the
// DTI policy cap, with two stress scenarios: interest rate +2% and income
// -10%. Educational only, never an approval.
func (s *plannerService) PreAssessLoan(income, existingMonthlyDebt, annualRatePct float64, termMonths int) (*LoanAssessment, error) {
	if income <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "income must be positive")
	}
	if existingMonthlyDebt < 0 || annualRatePct < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amounts cannot be negative")
	}
	if termMonths < 1 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "term must be at least 1 month")
	}

	dti := calculators.DTI(existingMonthlyDebt, income)

	affordableEMI := math.Max(0, income*s.cfg.MaxDTIRatio-existingMonthlyDebt)
	principalEst, err := calculators.PrincipalFromEMI(affordableEMI, annualRatePct, termMonths)
	if err != nil {
		return nil, err
	}

	// Scenario 1: rate +2%, same principal. DTI reflects the costlier EMI.
	stressEMI, err := calculators.EMI(principalEst, annualRatePct+2, termMonths)
	if err != nil {
		return nil, err
	}
	stressRate := StressScenario{
		Scenario:      "Interest rate +2%",
		DTI:           round4(calculators.DTI(existingMonthlyDebt+stressEMI, income)),
		AffordableEMI: round2(affordableEMI),
		PrincipalEst:  round2(principalEst),
	}

	// Scenario 2: income -10%, affordability recomputed from scratch.
	stressIncome := income * 0.9
	stressAffordable := math.Max(0, stressIncome*s.cfg.MaxDTIRatio-existingMonthlyDebt)
	stressPrincipal, err := calculators.PrincipalFromEMI(stressAffordable, annualRatePct, termMonths)
	if err != nil {
		return nil, err
	}
	stressIncomeDrop := StressScenario{
		Scenario:      "Income -10%",
		DTI:           round4(calculators.DTI(existingMonthlyDebt, stressIncome)),
		AffordableEMI: round2(stressAffordable),
		PrincipalEst:  round2(stressPrincipal),
	}

	return &LoanAssessment{
		DTI:              round4(dti),
		AffordableEMICap: round2(affordableEMI),
		PrincipalEst:     round2(principalEst),
		StressTests:      []StressScenario{stressRate, stressIncomeDrop},
		Meta:             compliance.LoanMeta(),
	}, nil
}

// LoanPayoffPlan computes the EMI required to finish a loan in the remaining
// months, plus total interest and total payment over that horizon.
func (s *plannerService) LoanPayoffPlan(principal, annualRatePct float64, monthsRemaining int) (*PayoffPlan, error) {
	requiredEMI, err := calculators.RequiredEMIToFinish(principal, annualRatePct, monthsRemaining)
	if err != nil {
		return nil, err
	}

	totalPayment := requiredEMI * float64(monthsRemaining)
	totalInterest := totalPayment - principal

	return &PayoffPlan{
		RequiredEMI:   round2(requiredEMI),
		TotalInterest: round2(totalInterest),
		TotalPayment:  round2(totalPayment),
		Meta:          compliance.CalcMeta(),
	}, nil
}

// ForecastInflation projects each item's cost under three CPI scenarios:
// base, optimistic (base - 2, floored at 0), and pessimistic (base + 3).
// Weighted totals cover the base scenario only.
func (s *plannerService) ForecastInflation(items []InflationItem, cpiRate float64, years int) (*InflationForecast, error) {
	if len(items) == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "at least one item is required")
	}
	if years < 1 || years > 30 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "years must be between 1 and 30")
	}
	if cpiRate < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "CPI rate cannot be negative")
	}

	forecast := &InflationForecast{
		BaseScenario:        make([]InflationProjectionItem, 0, len(items)),
		OptimisticScenario:  make([]InflationProjectionItem, 0, len(items)),
		PessimisticScenario: make([]InflationProjectionItem, 0, len(items)),
		Meta:                compliance.ProjectionMeta(),
	}

	totalCurrent := 0.0
	totalProjected := 0.0

	for _, item := range items {
		if item.CurrentCost < 0 || item.Weight < 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "item cost and weight cannot be negative")
		}
		totalCurrent += item.CurrentCost * item.Weight

		baseFuture := calculators.InflationProjection(item.CurrentCost, cpiRate, years)
		forecast.BaseScenario = append(forecast.BaseScenario, projectionItem(item.Name, item.CurrentCost, baseFuture))
		totalProjected += baseFuture * item.Weight

		optFuture := calculators.InflationProjection(item.CurrentCost, math.Max(0, cpiRate-2), years)
		forecast.OptimisticScenario = append(forecast.OptimisticScenario, projectionItem(item.Name, item.CurrentCost, optFuture))

		pessFuture := calculators.InflationProjection(item.CurrentCost, cpiRate+3, years)
		forecast.PessimisticScenario = append(forecast.PessimisticScenario, projectionItem(item.Name, item.CurrentCost, pessFuture))
	}

	forecast.TotalCurrent = round2(totalCurrent)
	forecast.TotalProjected = round2(totalProjected)
	return forecast, nil
}

// projectionItem builds one rounded projection line. Increase percent is 0
// when the current cost is 0 rather than dividing by zero.
func projectionItem(name string, current, projected float64) InflationProjectionItem {
	increasePct := 0.0
	if current > 0 {
		increasePct = (projected - current) / current * 100
	}
	return InflationProjectionItem{
		Name:          name,
		CurrentCost:   round2(current),
		ProjectedCost: round2(projected),
		IncreasePct:   round2(increasePct),
	}
}
