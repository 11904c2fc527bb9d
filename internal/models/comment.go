package models

import (
	"time"
)

// Comment is a discussion-board entry. It is created unconfirmed and
// becomes publicly visible only after the confirmation token sent by
// mail has been redeemed.
type Comment struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	Username          string    `gorm:"size:80;not null" json:"username"`
	Email             string    `gorm:"size:120;not null" json:"-"`
	Body              string    `gorm:"type:text;not null" json:"body"`
	IPAddress         string    `gorm:"size:45" json:"-"`
	UserAgent         string    `gorm:"size:255" json:"-"`
	Confirmed         bool      `gorm:"default:false;not null" json:"confirmed"`
	ConfirmationToken string    `gorm:"size:64;not null" json:"-"`
	Upvotes           int       `gorm:"default:0;not null" json:"upvotes"`
	Downvotes         int       `gorm:"default:0;not null" json:"downvotes"`
	CreatedAt         time.Time `json:"created_at"`

	Answers []Answer `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"answers"`
}

// VoteScore is upvotes minus downvotes, always recomputed, never stored.
func (c *Comment) VoteScore() int {
	return c.Upvotes - c.Downvotes
}

// Answer is a threaded reply to a Comment, with the same
// confirm-once lifecycle.
type Answer struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	CommentID         uint      `gorm:"not null;index" json:"comment_id"`
	Username          string    `gorm:"size:80;not null" json:"username"`
	Email             string    `gorm:"size:120;not null" json:"-"`
	Body              string    `gorm:"type:text;not null" json:"body"`
	IPAddress         string    `gorm:"size:45" json:"-"`
	UserAgent         string    `gorm:"size:255" json:"-"`
	Confirmed         bool      `gorm:"default:false;not null" json:"confirmed"`
	ConfirmationToken string    `gorm:"size:64;not null" json:"-"`
	CreatedAt         time.Time `json:"created_at"`
}
