// Package models contains data structures for the application's domain models.
package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Default images applied at signup when the client does not supply any.
const (
	DefaultImageURL       = "/static/images/default-pic.png"
	DefaultHeaderImageURL = "/static/images/warbler-hero.jpg"
)

// User represents a registered account.
type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Username       string    `gorm:"unique;not null" json:"username"`
	Email          string    `gorm:"unique;not null" json:"email"`
	Password       string    `gorm:"not null" json:"-"`
	ImageURL       string    `json:"image_url"`
	HeaderImageURL string    `json:"header_image_url"`
	Bio            string    `json:"bio"`
	Location       string    `json:"location"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	Messages []Message `gorm:"foreignKey:UserID" json:"messages,omitempty"`
}

// BeforeSave enforces the non-empty username/email invariant at the commit
// boundary, so an invalid record aborts the whole transaction it is staged in.
func (u *User) BeforeSave(_ *gorm.DB) error {
	if strings.TrimSpace(u.Username) == "" {
		return NewValidationError("Username is required")
	}
	if strings.TrimSpace(u.Email) == "" {
		return NewValidationError("Email is required")
	}
	if u.Password == "" {
		return NewValidationError("Password is required")
	}
	return nil
}
