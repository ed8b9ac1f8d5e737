package services

import (
	"testing"

	"peakfinance/internal/config"
	"peakfinance/internal/models"
	"peakfinance/internal/testutil"
)

func testConfig() *config.Config {
	return &config.Config{
		DefaultCurrency: "BDT",
		DefaultFunRatio: 0.15,
		MaxDTIRatio:     0.4,
		DefaultCPIRate:  7.0,
	}
}

func TestRegister(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, testConfig())

		user, err := svc.Register("Alice@Example.com", "password123")
		testutil.AssertNoError(t, err)

		if user.ID == 0 {
			t.Fatal("expected non-zero user ID")
		}
		if user.Email != "alice@example.com" {
			t.Errorf("expected lowercased email, got %s", user.Email)
		}
		if user.Password == "password123" {
			t.Error("expected password to be hashed")
		}
		if user.Currency != "BDT" {
			t.Errorf("expected default currency BDT, got %s", user.Currency)
		}
	})

	t.Run("duplicate_email", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, testConfig())

		_, err := svc.Register("bob@example.com", "password123")
		testutil.AssertNoError(t, err)

		_, err = svc.Register("bob@example.com", "password456")
		testutil.AssertAppError(t, err, "DUPLICATE_EMAIL")
	})

	t.Run("short_password", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, testConfig())

		_, err := svc.Register("carol@example.com", "short")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("missing_fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, testConfig())

		_, err := svc.Register("", "password123")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestAttemptLogin(t *testing.T) {
	t.Run("valid_credentials", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, testConfig())

		created, err := svc.Register("dave@example.com", "password123")
		testutil.AssertNoError(t, err)

		user, err := svc.AttemptLogin("dave@example.com", "password123")
		testutil.AssertNoError(t, err)
		if user.ID != created.ID {
			t.Errorf("expected user ID %d, got %d", created.ID, user.ID)
		}
	})

	t.Run("wrong_password", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, testConfig())

		_, err := svc.Register("eve@example.com", "password123")
		testutil.AssertNoError(t, err)

		_, err = svc.AttemptLogin("eve@example.com", "wrongpassword")
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
	})

	t.Run("unknown_email", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, testConfig())

		_, err := svc.AttemptLogin("nobody@example.com", "password123")
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
	})
}

func TestUpdateProfile(t *testing.T) {
	t.Run("updates_income_and_risk", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, testConfig())
		user := testutil.CreateTestUser(t, db, 0)

		income := 50000.0
		risk := models.RiskToleranceMedium
		updated, err := svc.UpdateProfile(user.ID, ProfileUpdate{
			MonthlyNetIncome: &income,
			RiskTolerance:    &risk,
		})
		testutil.AssertNoError(t, err)

		if updated.MonthlyNetIncome != 50000 {
			t.Errorf("expected income 50000, got %f", updated.MonthlyNetIncome)
		}

		fetched, err := svc.GetUserByID(user.ID)
		testutil.AssertNoError(t, err)
		if fetched.RiskTolerance == nil || *fetched.RiskTolerance != models.RiskToleranceMedium {
			t.Error("expected risk tolerance to persist")
		}
	})

	t.Run("negative_income", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, testConfig())
		user := testutil.CreateTestUser(t, db, 0)

		income := -1.0
		_, err := svc.UpdateProfile(user.ID, ProfileUpdate{MonthlyNetIncome: &income})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("unknown_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, testConfig())

		_, err := svc.UpdateProfile(9999, ProfileUpdate{})
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})
}
