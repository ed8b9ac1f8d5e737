package services

import (
	"math"
	"testing"

	"peakfinance/internal/testutil"
)

func almostEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}

func TestPreAssessLoan(t *testing.T) {
	svc := NewPlannerService(testConfig())

	t.Run("computes_dti_and_affordability", func(t *testing.T) {
		result, err := svc.PreAssessLoan(50000, 10000, 10, 12)
		testutil.AssertNoError(t, err)

		if result.DTI != 0.2 {
			t.Errorf("expected DTI 0.2, got %f", result.DTI)
		}
		// 40% of 50000 minus 10000 existing
		if result.AffordableEMICap != 10000 {
			t.Errorf("expected affordable EMI cap 10000, got %f", result.AffordableEMICap)
		}
		if result.PrincipalEst <= 0 {
			t.Errorf("expected positive principal estimate, got %f", result.PrincipalEst)
		}
		if len(result.StressTests) != 2 {
			t.Fatalf("expected 2 stress scenarios, got %d", len(result.StressTests))
		}
		if result.Meta["disclosure"] != "educational_only" {
			t.Error("expected educational disclosure in meta")
		}
	})

	t.Run("income_stress_recomputes_affordability", func(t *testing.T) {
		result, err := svc.PreAssessLoan(50000, 10000, 10, 12)
		testutil.AssertNoError(t, err)

		incomeDrop := result.StressTests[1]
		if incomeDrop.Scenario != "Income -10%" {
			t.Fatalf("unexpected scenario name %q", incomeDrop.Scenario)
		}
		// 45000 * 0.4 - 10000 = 8000
		if incomeDrop.AffordableEMI != 8000 {
			t.Errorf("expected stressed affordable EMI 8000, got %f", incomeDrop.AffordableEMI)
		}
		if !almostEqual(incomeDrop.DTI, 0.2222, 0.0001) {
			t.Errorf("expected stressed DTI ~0.2222, got %f", incomeDrop.DTI)
		}
	})

	t.Run("rate_stress_raises_dti", func(t *testing.T) {
		result, err := svc.PreAssessLoan(50000, 10000, 10, 12)
		testutil.AssertNoError(t, err)

		rateStress := result.StressTests[0]
		if rateStress.Scenario != "Interest rate +2%" {
			t.Fatalf("unexpected scenario name %q", rateStress.Scenario)
		}
		if rateStress.DTI <= result.DTI {
			t.Errorf("expected stressed DTI above base %f, got %f", result.DTI, rateStress.DTI)
		}
	})

	t.Run("maxed_out_borrower", func(t *testing.T) {
		// Existing debt already above the DTI cap
		result, err := svc.PreAssessLoan(50000, 25000, 10, 12)
		testutil.AssertNoError(t, err)

		if result.AffordableEMICap != 0 {
			t.Errorf("expected affordable EMI cap 0, got %f", result.AffordableEMICap)
		}
		if result.PrincipalEst != 0 {
			t.Errorf("expected principal estimate 0, got %f", result.PrincipalEst)
		}
	})

	t.Run("rejects_non_positive_income", func(t *testing.T) {
		_, err := svc.PreAssessLoan(0, 0, 10, 12)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("rejects_zero_term", func(t *testing.T) {
		_, err := svc.PreAssessLoan(50000, 0, 10, 0)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestLoanPayoffPlan(t *testing.T) {
	svc := NewPlannerService(testConfig())

	t.Run("known_value", func(t *testing.T) {
		plan, err := svc.LoanPayoffPlan(100000, 10, 12)
		testutil.AssertNoError(t, err)

		if !almostEqual(plan.RequiredEMI, 8791.59, 0.01) {
			t.Errorf("expected required EMI ~8791.59, got %f", plan.RequiredEMI)
		}
		if !almostEqual(plan.TotalPayment, plan.RequiredEMI*12, 0.1) {
			t.Errorf("expected total payment ~12x EMI, got %f", plan.TotalPayment)
		}
		if !almostEqual(plan.TotalInterest, plan.TotalPayment-100000, 0.1) {
			t.Errorf("expected interest = payment - principal, got %f", plan.TotalInterest)
		}
	})

	t.Run("zero_rate", func(t *testing.T) {
		plan, err := svc.LoanPayoffPlan(12000, 0, 12)
		testutil.AssertNoError(t, err)

		if plan.RequiredEMI != 1000 {
			t.Errorf("expected EMI 1000, got %f", plan.RequiredEMI)
		}
		if plan.TotalInterest != 0 {
			t.Errorf("expected zero interest, got %f", plan.TotalInterest)
		}
		if plan.TotalPayment != 12000 {
			t.Errorf("expected total payment 12000, got %f", plan.TotalPayment)
		}
	})

	t.Run("invalid_months", func(t *testing.T) {
		_, err := svc.LoanPayoffPlan(100000, 10, 0)
		testutil.AssertAppError(t, err, "INVALID_TERM")
	})
}

func TestForecastInflation(t *testing.T) {
	svc := NewPlannerService(testConfig())

	t.Run("three_scenarios", func(t *testing.T) {
		items := []InflationItem{{Name: "Rice", CurrentCost: 1000, Weight: 1}}
		forecast, err := svc.ForecastInflation(items, 7, 5)
		testutil.AssertNoError(t, err)

		if !almostEqual(forecast.BaseScenario[0].ProjectedCost, 1402.55, 0.01) {
			t.Errorf("expected base projection ~1402.55, got %f", forecast.BaseScenario[0].ProjectedCost)
		}
		// optimistic at 5%, pessimistic at 10%
		if !almostEqual(forecast.OptimisticScenario[0].ProjectedCost, 1276.28, 0.01) {
			t.Errorf("expected optimistic projection ~1276.28, got %f", forecast.OptimisticScenario[0].ProjectedCost)
		}
		if !almostEqual(forecast.PessimisticScenario[0].ProjectedCost, 1610.51, 0.01) {
			t.Errorf("expected pessimistic projection ~1610.51, got %f", forecast.PessimisticScenario[0].ProjectedCost)
		}
		if !almostEqual(forecast.BaseScenario[0].IncreasePct, 40.26, 0.01) {
			t.Errorf("expected increase ~40.26%%, got %f", forecast.BaseScenario[0].IncreasePct)
		}
	})

	t.Run("weighted_totals", func(t *testing.T) {
		items := []InflationItem{
			{Name: "Rice", CurrentCost: 1000, Weight: 2},
			{Name: "Transport", CurrentCost: 500, Weight: 1},
		}
		forecast, err := svc.ForecastInflation(items, 7, 1)
		testutil.AssertNoError(t, err)

		if forecast.TotalCurrent != 2500 {
			t.Errorf("expected weighted total current 2500, got %f", forecast.TotalCurrent)
		}
		// 2*1070 + 1*535 = 2675
		if !almostEqual(forecast.TotalProjected, 2675, 0.01) {
			t.Errorf("expected weighted total projected ~2675, got %f", forecast.TotalProjected)
		}
	})

	t.Run("optimistic_rate_floors_at_zero", func(t *testing.T) {
		items := []InflationItem{{Name: "Rice", CurrentCost: 1000, Weight: 1}}
		forecast, err := svc.ForecastInflation(items, 1, 5)
		testutil.AssertNoError(t, err)

		if forecast.OptimisticScenario[0].ProjectedCost != 1000 {
			t.Errorf("expected flat optimistic projection at 0%% rate, got %f", forecast.OptimisticScenario[0].ProjectedCost)
		}
	})

	t.Run("rejects_empty_items", func(t *testing.T) {
		_, err := svc.ForecastInflation(nil, 7, 5)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("rejects_bad_years", func(t *testing.T) {
		items := []InflationItem{{Name: "Rice", CurrentCost: 1000, Weight: 1}}
		if _, err := svc.ForecastInflation(items, 7, 0); err == nil {
			t.Error("expected error for 0 years")
		}
		if _, err := svc.ForecastInflation(items, 7, 31); err == nil {
			t.Error("expected error for 31 years")
		}
	})
}
