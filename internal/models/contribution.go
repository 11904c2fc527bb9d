package models

import (
	"time"
)

// TimeLayout is the display format for contribution timestamps
// (French day-first). The SQL rendering used by search must stay in
// sync with it, see services.ContributionService.
const TimeLayout = "02/01/2006 15:04"

// Contribution is one verbatim submission from the public dataset.
// Rows are bulk-loaded once at startup and never mutated; the ID is the
// submission number from the dataset, not an autoincrement.
type Contribution struct {
	ID          uint      `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Contributor string    `gorm:"size:80;not null" json:"contributor"`
	Body        string    `gorm:"type:text;not null" json:"body"`
	Time        time.Time `gorm:"not null" json:"time"`
}

// FormattedTime renders the submission time for display and search.
func (c *Contribution) FormattedTime() string {
	return c.Time.Format(TimeLayout)
}
