package services

import (
	"testing"

	sqlite "github.com/glebarez/sqlite"
	"github.com/plfelter/verbatims-utn-vdl/internal/models"
	"gorm.io/gorm"
)

// openTestDB returns an isolated in-memory database. Connections are
// capped at one so concurrent writers serialize instead of tripping
// over SQLite's single-writer lock.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.Contribution{},
		&models.Comment{},
		&models.Answer{},
		&models.SearchLog{},
		&models.DownloadLog{},
		&models.AnalyseChat{},
	); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}
	return db
}
