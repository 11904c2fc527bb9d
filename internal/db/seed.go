package db

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/plfelter/verbatims-utn-vdl/internal/models"
	"gorm.io/gorm"
)

// datasetTimeLayout is the timestamp format of the exported dataset.
const datasetTimeLayout = "2006-01-02 15:04:05"

// contributionRecord mirrors one entry of contributions.json.
type contributionRecord struct {
	Number json.Number `json:"number"`
	User   string      `json:"user"`
	Body   string      `json:"body"`
	Time   string      `json:"time"`
}

// SeedContributions bulk-loads the verbatim dataset when the
// contributions table is empty. The table is never touched again
// afterwards: contributions are immutable historical records.
func SeedContributions(db *gorm.DB, path string) error {
	var count int64
	if err := db.Model(&models.Contribution{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count contributions: %w", err)
	}
	if count > 0 {
		log.Println("Contributions table already populated, skipping seed")
		return nil
	}

	contribs, err := LoadContributions(path)
	if err != nil {
		return err
	}
	if contribs == nil {
		log.Printf("Contributions dataset not found at %s, starting with an empty table", path)
		return nil
	}

	log.Printf("Importing %d contributions...", len(contribs))
	err = db.Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(contribs, 200).Error
	})
	if err != nil {
		return fmt.Errorf("seed contributions: %w", err)
	}
	log.Println("Contributions table populated successfully")
	return nil
}

// LoadContributions parses the dataset file. A missing file returns
// (nil, nil): the application still runs, just without data.
func LoadContributions(path string) ([]models.Contribution, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}

	var records []contributionRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse dataset %s: %w", path, err)
	}

	contribs := make([]models.Contribution, 0, len(records))
	for i, rec := range records {
		if rec.User == "" {
			return nil, fmt.Errorf("dataset entry %d: user is required", i)
		}
		id, err := rec.Number.Int64()
		if err != nil {
			return nil, fmt.Errorf("dataset entry %d: bad number %q: %w", i, rec.Number, err)
		}
		t, err := time.Parse(datasetTimeLayout, rec.Time)
		if err != nil {
			return nil, fmt.Errorf("dataset entry %d: bad time %q: %w", i, rec.Time, err)
		}
		contribs = append(contribs, models.Contribution{
			ID:          uint(id),
			Contributor: rec.User,
			Body:        rec.Body,
			Time:        t,
		})
	}
	return contribs, nil
}
