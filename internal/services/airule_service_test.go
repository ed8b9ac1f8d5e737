package services

import (
	"testing"

	"peakfinance/internal/testutil"
)

func TestGetRule(t *testing.T) {
	t.Run("not_found_without_override", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAIRuleService(db)
		user := testutil.CreateTestUser(t, db, 50000)

		_, err := svc.GetRule(user.ID)
		testutil.AssertAppError(t, err, "NOT_FOUND")
	})

	t.Run("returns_existing", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAIRuleService(db)
		user := testutil.CreateTestUser(t, db, 50000)
		testutil.CreateTestAIRule(t, db, user.ID, 0.25)

		rule, err := svc.GetRule(user.ID)
		testutil.AssertNoError(t, err)
		if rule.FunRatio != 0.25 {
			t.Errorf("expected fun ratio 0.25, got %f", rule.FunRatio)
		}
	})
}

func TestUpsertRule(t *testing.T) {
	t.Run("creates_on_first_use", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAIRuleService(db)
		user := testutil.CreateTestUser(t, db, 50000)

		ratio := 0.2
		rule, err := svc.UpsertRule(user.ID, AIRuleUpdate{FunRatio: &ratio})
		testutil.AssertNoError(t, err)

		if rule.ID == 0 {
			t.Fatal("expected non-zero rule ID")
		}
		if rule.FunRatio != 0.2 {
			t.Errorf("expected fun ratio 0.2, got %f", rule.FunRatio)
		}
		if rule.VelocityThresholdK != 2.0 {
			t.Errorf("expected default velocity threshold 2.0, got %f", rule.VelocityThresholdK)
		}
	})

	t.Run("updates_existing", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAIRuleService(db)
		user := testutil.CreateTestUser(t, db, 50000)
		existing := testutil.CreateTestAIRule(t, db, user.ID, 0.15)

		caps := map[string]float64{"dining": 5000}
		rule, err := svc.UpsertRule(user.ID, AIRuleUpdate{CategoryCaps: caps})
		testutil.AssertNoError(t, err)

		if rule.ID != existing.ID {
			t.Errorf("expected same rule row %d, got %d", existing.ID, rule.ID)
		}
		if rule.CategoryCaps()["dining"] != 5000 {
			t.Errorf("expected dining cap 5000, got %v", rule.CategoryCaps())
		}
		if rule.FunRatio != 0.15 {
			t.Errorf("expected fun ratio unchanged, got %f", rule.FunRatio)
		}
	})

	t.Run("rejects_out_of_range_ratio", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAIRuleService(db)
		user := testutil.CreateTestUser(t, db, 50000)

		ratio := 1.5
		_, err := svc.UpsertRule(user.ID, AIRuleUpdate{FunRatio: &ratio})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}
