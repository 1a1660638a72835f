// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents a registered member of the Miso platform.
type User struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Username   string    `gorm:"unique;not null" json:"username"`
	Email      string    `gorm:"unique;not null" json:"email"`
	Password   string    `gorm:"not null" json:"-"`
	ProfilePic string    `gorm:"default:default.jpg" json:"profile_pic"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Articles   []Article `gorm:"foreignKey:AuthorID" json:"articles,omitempty"`
}
