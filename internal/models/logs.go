package models

import (
	"time"
)

// Append-only audit rows. Nothing in the application reads these back;
// they exist for the operators.

type SearchLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Query     string    `gorm:"size:255;not null" json:"query"`
	IPAddress string    `gorm:"size:45" json:"-"`
	UserAgent string    `gorm:"size:255" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

type DownloadLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Filename  string    `gorm:"size:255;not null" json:"filename"`
	IPAddress string    `gorm:"size:45" json:"-"`
	UserAgent string    `gorm:"size:255" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

type AnalyseChat struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	SessionID string    `gorm:"size:64;index" json:"session_id"`
	Question  string    `gorm:"type:text;not null" json:"question"`
	Answer    string    `gorm:"type:text" json:"answer"`
	IPAddress string    `gorm:"size:45" json:"-"`
	UserAgent string    `gorm:"size:255" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
