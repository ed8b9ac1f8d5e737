package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"peakfinance/internal/models"
	"peakfinance/internal/testutil"
)

// stubProvider records the last call and returns a canned answer or error.
type stubProvider struct {
	name          string
	answer        string
	err           error
	calls         int
	lastQuestion  string
	lastGrounding string
}

func (p *stubProvider) Name() string { return p.name }

func (p *stubProvider) Generate(_ context.Context, question, grounding string) (string, error) {
	p.calls++
	p.lastQuestion = question
	p.lastGrounding = grounding
	if p.err != nil {
		return "", p.err
	}
	return p.answer, nil
}

func TestAsk(t *testing.T) {
	t.Run("blocks_regulated_request", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		stub := &stubProvider{name: "stub", answer: "should not appear"}
		svc := NewAdvisorService(db, testConfig(), stub, NewAuditService(db))
		user := testutil.CreateTestUser(t, db, 50000)

		reply, err := svc.Ask(context.Background(), user.ID, "Please approve my loan application")
		testutil.AssertNoError(t, err)

		if !reply.IsBlocked {
			t.Fatal("expected request to be blocked")
		}
		if reply.Intent != "loan_approval_request" {
			t.Errorf("expected intent loan_approval_request, got %s", reply.Intent)
		}
		if reply.Answer == "" || strings.Contains(reply.Answer, "should not appear") {
			t.Errorf("expected fixed refusal answer, got %q", reply.Answer)
		}
		if stub.calls != 0 {
			t.Error("provider must not be called for blocked requests")
		}

		var logs []models.AuditLog
		testutil.AssertNoError(t, db.Where("user_id = ?", user.ID).Find(&logs).Error)
		if len(logs) != 1 || logs[0].Action != "ai_request_blocked" {
			t.Errorf("expected one ai_request_blocked audit entry, got %v", logs)
		}
	})

	t.Run("answers_allowed_request", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		stub := &stubProvider{name: "stub", answer: "Spend less than you earn."}
		svc := NewAdvisorService(db, testConfig(), stub, NewAuditService(db))
		user := testutil.CreateTestUser(t, db, 50000)

		reply, err := svc.Ask(context.Background(), user.ID, "How should I budget my salary?")
		testutil.AssertNoError(t, err)

		if reply.IsBlocked {
			t.Fatal("expected request to be allowed")
		}
		if reply.Answer != "Spend less than you earn." {
			t.Errorf("expected provider answer, got %q", reply.Answer)
		}
		if reply.Intent != "budget_help" {
			t.Errorf("expected intent budget_help, got %s", reply.Intent)
		}
		if reply.Meta["provider"] != "stub" {
			t.Errorf("expected provider name in meta, got %v", reply.Meta["provider"])
		}
		if !strings.Contains(stub.lastGrounding, "User Financial Summary") {
			t.Errorf("expected aggregated grounding, got %q", stub.lastGrounding)
		}

		var logs []models.AuditLog
		testutil.AssertNoError(t, db.Where("user_id = ?", user.ID).Find(&logs).Error)
		if len(logs) != 1 || logs[0].Action != "ai_request_answered" {
			t.Errorf("expected one ai_request_answered audit entry, got %v", logs)
		}
	})

	t.Run("provider_failure_degrades", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		stub := &stubProvider{name: "stub", err: errors.New("backend down")}
		svc := NewAdvisorService(db, testConfig(), stub, NewAuditService(db))
		user := testutil.CreateTestUser(t, db, 50000)

		reply, err := svc.Ask(context.Background(), user.ID, "What is an EMI?")
		testutil.AssertNoError(t, err)

		if reply.IsBlocked {
			t.Error("provider failure must not block the request")
		}
		if !strings.Contains(reply.Answer, "temporarily unavailable") {
			t.Errorf("expected fallback answer, got %q", reply.Answer)
		}
	})

	t.Run("redacts_pii_in_audit", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		stub := &stubProvider{name: "stub", answer: "ok"}
		svc := NewAdvisorService(db, testConfig(), stub, NewAuditService(db))
		user := testutil.CreateTestUser(t, db, 50000)

		_, err := svc.Ask(context.Background(), user.ID, "My budget question, reach me at me@example.com")
		testutil.AssertNoError(t, err)

		var logs []models.AuditLog
		testutil.AssertNoError(t, db.Where("user_id = ?", user.ID).Find(&logs).Error)
		if len(logs) != 1 {
			t.Fatalf("expected 1 audit entry, got %d", len(logs))
		}
		if strings.Contains(logs[0].Payload, "me@example.com") {
			t.Errorf("expected email to be redacted, got %s", logs[0].Payload)
		}
		if !strings.Contains(logs[0].Payload, "[EMAIL]") {
			t.Errorf("expected [EMAIL] placeholder, got %s", logs[0].Payload)
		}
	})

	t.Run("empty_question", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		stub := &stubProvider{name: "stub", answer: "ok"}
		svc := NewAdvisorService(db, testConfig(), stub, NewAuditService(db))
		user := testutil.CreateTestUser(t, db, 50000)

		_, err := svc.Ask(context.Background(), user.ID, "   ")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestBuildUserContext(t *testing.T) {
	cfg := testConfig()
	risk := models.RiskToleranceHigh
	user := &models.User{MonthlyNetIncome: 50000, RiskTolerance: &risk}
	expenses := []models.Expense{{Amount: 20000}, {Amount: 10000}}
	debts := []models.DebtAccount{{CurrentEMI: 5000}}
	goals := []models.Goal{{TargetAmount: 100000, SavedAmount: 10000}}

	t.Run("default_fun_ratio", func(t *testing.T) {
		summary := BuildUserContext(cfg, user, expenses, debts, goals, nil)

		for _, want := range []string{
			"Monthly Income: ৳50,000.00",
			"Total Monthly Expenses: ৳30,000.00",
			"Total Monthly Debt Payments (EMI): ৳5,000.00",
			"Surplus: ৳15,000.00",
			"(15% of income)",
			"Goals: 1 active",
			"Risk Tolerance: high",
		} {
			if !strings.Contains(summary, want) {
				t.Errorf("expected summary to contain %q, got:\n%s", want, summary)
			}
		}
	})

	t.Run("rule_overrides_fun_ratio", func(t *testing.T) {
		rule := &models.AIRule{FunRatio: 0.25}
		summary := BuildUserContext(cfg, user, expenses, debts, goals, rule)

		if !strings.Contains(summary, "৳12,500.00 (25% of income)") {
			t.Errorf("expected overridden fun budget, got:\n%s", summary)
		}
	})

	t.Run("never_dumps_raw_records", func(t *testing.T) {
		named := []models.Expense{{Name: "Secret Clinic Visit", Amount: 5000}}
		summary := BuildUserContext(cfg, user, named, debts, goals, nil)

		if strings.Contains(summary, "Secret Clinic Visit") {
			t.Error("summary must not contain individual record names")
		}
	})
}

func TestFormatMoney(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "৳0.00"},
		{999.5, "৳999.50"},
		{15000, "৳15,000.00"},
		{1234567.891, "৳1,234,567.89"},
		{-5000, "-৳5,000.00"},
	}
	for _, tc := range cases {
		if got := formatMoney(tc.in); got != tc.want {
			t.Errorf("formatMoney(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
