package services

import (
	"testing"
	"time"

	"peakfinance/internal/pagination"
	"peakfinance/internal/testutil"
)

func TestCreateGoal(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user := testutil.CreateTestUser(t, db, 50000)

		target := time.Now().AddDate(1, 0, 0)
		goal, err := svc.CreateGoal(user.ID, "Emergency Fund", 100000, 10000, &target, 2)
		testutil.AssertNoError(t, err)

		if goal.ID == 0 {
			t.Fatal("expected non-zero goal ID")
		}
		if goal.Priority != 2 {
			t.Errorf("expected priority 2, got %d", goal.Priority)
		}
		if goal.TargetDate == nil {
			t.Error("expected target date to be set")
		}
	})

	t.Run("saved_may_exceed_target", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user := testutil.CreateTestUser(t, db, 50000)

		goal, err := svc.CreateGoal(user.ID, "Overfunded", 1000, 1500, nil, 1)
		testutil.AssertNoError(t, err)
		if goal.SavedAmount != 1500 {
			t.Errorf("expected saved 1500, got %f", goal.SavedAmount)
		}
	})

	t.Run("negative_target", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user := testutil.CreateTestUser(t, db, 50000)

		_, err := svc.CreateGoal(user.ID, "Bad", -1, 0, nil, 1)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestGetUserGoals(t *testing.T) {
	t.Run("orders_by_priority", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user := testutil.CreateTestUser(t, db, 50000)

		low, err := svc.CreateGoal(user.ID, "Low", 1000, 0, nil, 1)
		testutil.AssertNoError(t, err)
		high, err := svc.CreateGoal(user.ID, "High", 1000, 0, nil, 5)
		testutil.AssertNoError(t, err)

		result, err := svc.GetUserGoals(user.ID, pagination.PageRequest{})
		testutil.AssertNoError(t, err)

		if len(result.Data) != 2 {
			t.Fatalf("expected 2 goals, got %d", len(result.Data))
		}
		if result.Data[0].ID != high.ID {
			t.Errorf("expected goal %d first, got %d", high.ID, result.Data[0].ID)
		}
		if result.Data[1].ID != low.ID {
			t.Errorf("expected goal %d second, got %d", low.ID, result.Data[1].ID)
		}
	})
}

func TestUpdateGoal(t *testing.T) {
	t.Run("updates_saved_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user := testutil.CreateTestUser(t, db, 50000)
		goal := testutil.CreateTestGoal(t, db, user.ID, "Emergency Fund", 100000, 10000)

		saved := 20000.0
		updated, err := svc.UpdateGoal(user.ID, goal.ID, "", nil, &saved, nil, nil)
		testutil.AssertNoError(t, err)

		if updated.SavedAmount != 20000 {
			t.Errorf("expected saved 20000, got %f", updated.SavedAmount)
		}
	})

	t.Run("wrong_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user1 := testutil.CreateTestUser(t, db, 50000)
		user2 := testutil.CreateTestUser(t, db, 50000)
		goal := testutil.CreateTestGoal(t, db, user1.ID, "Mine", 1000, 0)

		_, err := svc.UpdateGoal(user2.ID, goal.ID, "Hijacked", nil, nil, nil, nil)
		testutil.AssertAppError(t, err, "GOAL_NOT_FOUND")
	})
}

func TestDeleteGoal(t *testing.T) {
	t.Run("deletes", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user := testutil.CreateTestUser(t, db, 50000)
		goal := testutil.CreateTestGoal(t, db, user.ID, "Emergency Fund", 100000, 10000)

		testutil.AssertNoError(t, svc.DeleteGoal(user.ID, goal.ID))

		_, err := svc.GetGoalByID(user.ID, goal.ID)
		testutil.AssertAppError(t, err, "GOAL_NOT_FOUND")
	})
}
