package db

import (
	"fmt"
	"log"

	"github.com/glebarez/sqlite"
	"github.com/plfelter/verbatims-utn-vdl/internal/config"
	"github.com/plfelter/verbatims-utn-vdl/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Init opens the database, migrates the schema and seeds the
// contributions dataset. PostgreSQL is used when DATABASE_URL is set,
// otherwise a local SQLite file (the original deployment shape).
func Init(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	if cfg.DatabaseURL != "" {
		dialector = postgres.Open(cfg.DatabaseURL)
	} else {
		dialector = sqlite.Open(cfg.SQLitePath)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	log.Println("Database connection established")

	if err := Migrate(db); err != nil {
		return nil, err
	}
	log.Println("Database migration completed")

	if err := SeedContributions(db, cfg.DatasetPath); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Contribution{},
		&models.Comment{},
		&models.Answer{},
		&models.SearchLog{},
		&models.DownloadLog{},
		&models.AnalyseChat{},
	)
	if err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	return nil
}
