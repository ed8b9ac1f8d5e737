// Package intent classifies free-text advisor questions into a closed set of
// categories and decides whether a category is permitted. Classification is
// deliberately keyword-based and deterministic: the guardrail has to be
// auditable, which matters more here than recall.
package intent

import "strings"

// Category is the classified purpose of a user question.
type Category string

// Intent categories. The first three are regulated capabilities and are
// blocked unless the deployment runs as a licensed partner.
const (
	CategoryLoanApprovalRequest Category = "loan_approval_request"
	CategoryEKYCRequest         Category = "ekyc_request"
	CategoryCIBAccessRequest    Category = "cib_access_request"
	CategoryBudgetHelp          Category = "budget_help"
	CategoryLoanQuestion        Category = "loan_question"
	CategoryGoalPlanning        Category = "goal_planning"
	CategorySpendingQuery       Category = "spending_query"
	CategoryGeneralAdvice       Category = "general_advice"
	CategoryUnknown             Category = "unknown"
)

// keywordGroup binds a category to the phrases that select it.
type keywordGroup struct {
	category Category
	keywords []string
}

// orderedGroups is checked top to bottom. Blocked groups come first so that a
// message containing both a blocked and an allowed keyword classifies as
// blocked (fail-closed). Reordering these groups is a policy change, not a
// refactor.
var orderedGroups = []keywordGroup{
	{CategoryLoanApprovalRequest, []string{"approve", "approval", "grant loan", "give me loan"}},
	{CategoryEKYCRequest, []string{"ekyc", "e-kyc", "kyc", "verify identity", "id verification"}},
	{CategoryCIBAccessRequest, []string{"cib", "credit bureau", "credit report", "credit score"}},
	{CategoryBudgetHelp, []string{"budget", "expense", "spend"}},
	{CategoryLoanQuestion, []string{"loan", "emi", "debt", "borrow"}},
	{CategoryGoalPlanning, []string{"goal", "save", "saving"}},
	{CategorySpendingQuery, []string{"safe to spend", "can i spend", "afford"}},
	{CategoryGeneralAdvice, []string{"advice", "help", "suggest"}},
}

// blocked is the set of regulated categories.
var blocked = map[Category]bool{
	CategoryLoanApprovalRequest: true,
	CategoryEKYCRequest:         true,
	CategoryCIBAccessRequest:    true,
}

// Classify maps a free-text message to a Category. Unmatched messages fall
// through to CategoryUnknown.
func Classify(message string) Category {
	msg := strings.ToLower(message)
	for _, group := range orderedGroups {
		for _, kw := range group.keywords {
			if strings.Contains(msg, kw) {
				return group.category
			}
		}
	}
	return CategoryUnknown
}

// Blocked reports whether the category is a regulated capability.
func Blocked(c Category) bool {
	return blocked[c]
}

// Allowed is the compliance gate: blocked categories pass only in regulated
// mode; everything else always passes. This is the only place that decision
// is made.
func Allowed(c Category, regulated bool) bool {
	if blocked[c] && !regulated {
		return false
	}
	return true
}
