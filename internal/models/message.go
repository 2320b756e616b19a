package models

import (
	"strings"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"
)

// MaxMessageLength is the upper bound on message text, counted in runes.
const MaxMessageLength = 140

// Message represents a short text post owned by exactly one user.
type Message struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Text      string    `gorm:"type:varchar(140);not null" json:"text"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	// LikesCount is not persisted; computed at query time.
	LikesCount int `gorm:"->" json:"likes_count"`
}

// BeforeSave rejects empty, oversized, or ownerless messages at the commit boundary.
func (m *Message) BeforeSave(_ *gorm.DB) error {
	if strings.TrimSpace(m.Text) == "" {
		return NewValidationError("Message text is required")
	}
	if utf8.RuneCountInString(m.Text) > MaxMessageLength {
		return NewValidationError("Message text too long (max 140 characters)")
	}
	if m.UserID == 0 {
		return NewValidationError("Message must belong to a user")
	}
	return nil
}
