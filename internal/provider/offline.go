package provider

import (
	"context"
	"strings"
)

// OfflineProvider returns hand-authored educational paragraphs keyed on the
// same keyword families the intent classifier uses. It never errors, which
// guarantees useful behavior with zero external dependencies.
type OfflineProvider struct{}

// NewOfflineProvider creates the deterministic offline fallback provider.
func NewOfflineProvider() *OfflineProvider {
	return &OfflineProvider{}
}

// Name returns the provider identifier.
func (p *OfflineProvider) Name() string { return "offline" }

// Generate pattern-matches the question into a response family.
func (p *OfflineProvider) Generate(_ context.Context, question, _ string) (string, error) {
	q := strings.ToLower(question)

	switch {
	case containsAny(q, "budget", "spend", "expense"):
		return "Based on your current financial situation, here's some guidance:\n\n" +
			"1. Track all expenses (fixed and variable)\n" +
			"2. Aim to keep essential expenses below 50% of income\n" +
			"3. Allocate 20% to savings and goals\n" +
			"4. Keep discretionary spending around 15-20%\n\n" +
			"Your current safe-to-spend amount is calculated by: " +
			"Balance - Bills - Debt Minimums - Reserve - Goal Allocations\n\n" +
			"This is educational guidance. Please consult a financial advisor for personalized advice.", nil

	case containsAny(q, "loan", "debt", "emi"):
		return "When considering a loan:\n\n" +
			"1. Keep your DTI (Debt-to-Income) ratio below 40%\n" +
			"2. EMI formula: P x r x (1+r)^n / ((1+r)^n - 1)\n" +
			"   Where P=principal, r=monthly rate, n=months\n" +
			"3. Compare offers from multiple lenders\n" +
			"4. Consider stress scenarios (+2% rate, -10% income)\n\n" +
			"Use our loan calculator for estimates. Remember: estimates are illustrative; " +
			"approval and terms are set by licensed lenders.\n\n" +
			"This is educational information, not a loan offer.", nil

	case containsAny(q, "goal", "save", "saving"):
		return "Tips for reaching your financial goals:\n\n" +
			"1. Set specific, measurable targets with deadlines\n" +
			"2. Automate savings (pay yourself first)\n" +
			"3. Prioritize goals (emergency fund, then debt, then long-term)\n" +
			"4. Review progress monthly and adjust as needed\n\n" +
			"Track your goals in the Goals section. We'll help monitor your progress!\n\n" +
			"This is educational guidance based on your inputs.", nil

	default:
		return "I'm here to help with:\n" +
			"- Budget planning and expense tracking\n" +
			"- Loan affordability estimates (educational)\n" +
			"- Inflation projections for essential expenses\n" +
			"- Goal setting and savings strategies\n\n" +
			"What would you like to know more about?\n\n" +
			"Note: This is educational guidance, not professional financial advice.", nil
	}
}

func containsAny(s string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
