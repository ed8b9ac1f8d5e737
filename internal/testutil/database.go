// Package testutil provides helpers shared by package tests: an in-memory
// SQLite database, fixture builders, and assertion helpers.
package testutil

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"peakfinance/internal/models"
)

// allModels lists every model migrated into the test database.
var allModels = []interface{}{
	&models.User{},
	&models.Expense{},
	&models.DebtAccount{},
	&models.Goal{},
	&models.AIRule{},
	&models.Consent{},
	&models.AuditLog{},
}

// SetupTestDB creates an in-memory SQLite database with the full schema.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// TeardownTestDB drops all tables and closes the connection.
func TeardownTestDB(t *testing.T, db *gorm.DB) {
	t.Helper()

	if err := db.Migrator().DropTable(allModels...); err != nil {
		t.Fatalf("failed to drop tables: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get underlying DB: %v", err)
	}
	if err := sqlDB.Close(); err != nil {
		t.Fatalf("failed to close test database: %v", err)
	}
}
