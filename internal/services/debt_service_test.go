package services

import (
	"testing"
	"time"

	"peakfinance/internal/pagination"
	"peakfinance/internal/testutil"
)

func TestCreateDebt(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDebtService(db)
		user := testutil.CreateTestUser(t, db, 50000)

		debt, err := svc.CreateDebt(user.ID, "Car Loan", 500000, 10, 60, 10624, time.Now())
		testutil.AssertNoError(t, err)

		if debt.ID == 0 {
			t.Fatal("expected non-zero debt ID")
		}
		if debt.TermMonths != 60 {
			t.Errorf("expected term 60, got %d", debt.TermMonths)
		}
	})

	t.Run("zero_term", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDebtService(db)
		user := testutil.CreateTestUser(t, db, 50000)

		_, err := svc.CreateDebt(user.ID, "Bad", 500000, 10, 0, 10624, time.Now())
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("negative_principal", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDebtService(db)
		user := testutil.CreateTestUser(t, db, 50000)

		_, err := svc.CreateDebt(user.ID, "Bad", -1, 10, 12, 100, time.Now())
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestGetUserDebts(t *testing.T) {
	t.Run("returns_user_debts_only", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDebtService(db)
		user1 := testutil.CreateTestUser(t, db, 50000)
		user2 := testutil.CreateTestUser(t, db, 50000)

		testutil.CreateTestDebt(t, db, user1.ID, 100000, 10, 12, 8792)
		testutil.CreateTestDebt(t, db, user2.ID, 200000, 12, 24, 9415)

		result, err := svc.GetUserDebts(user1.ID, pagination.PageRequest{})
		testutil.AssertNoError(t, err)

		if result.TotalItems != 1 {
			t.Errorf("expected 1 debt, got %d", result.TotalItems)
		}
	})
}

func TestUpdateDebt(t *testing.T) {
	t.Run("updates_emi", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDebtService(db)
		user := testutil.CreateTestUser(t, db, 50000)
		debt := testutil.CreateTestDebt(t, db, user.ID, 100000, 10, 12, 8792)

		emi := 9000.0
		updated, err := svc.UpdateDebt(user.ID, debt.ID, "", nil, nil, nil, &emi)
		testutil.AssertNoError(t, err)

		if updated.CurrentEMI != 9000 {
			t.Errorf("expected EMI 9000, got %f", updated.CurrentEMI)
		}
	})

	t.Run("invalid_term", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDebtService(db)
		user := testutil.CreateTestUser(t, db, 50000)
		debt := testutil.CreateTestDebt(t, db, user.ID, 100000, 10, 12, 8792)

		term := 0
		_, err := svc.UpdateDebt(user.ID, debt.ID, "", nil, nil, &term, nil)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("wrong_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDebtService(db)
		user1 := testutil.CreateTestUser(t, db, 50000)
		user2 := testutil.CreateTestUser(t, db, 50000)
		debt := testutil.CreateTestDebt(t, db, user1.ID, 100000, 10, 12, 8792)

		_, err := svc.UpdateDebt(user2.ID, debt.ID, "Hijacked", nil, nil, nil, nil)
		testutil.AssertAppError(t, err, "DEBT_NOT_FOUND")
	})
}

func TestDeleteDebt(t *testing.T) {
	t.Run("deletes", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDebtService(db)
		user := testutil.CreateTestUser(t, db, 50000)
		debt := testutil.CreateTestDebt(t, db, user.ID, 100000, 10, 12, 8792)

		testutil.AssertNoError(t, svc.DeleteDebt(user.ID, debt.ID))

		_, err := svc.GetDebtByID(user.ID, debt.ID)
		testutil.AssertAppError(t, err, "DEBT_NOT_FOUND")
	})
}
