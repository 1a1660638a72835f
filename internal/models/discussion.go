package models

import (
	"time"
)

// Discussion represents a threaded discussion topic.
type Discussion struct {
	ID          uint                `gorm:"primaryKey" json:"id"`
	Title       string              `gorm:"not null" json:"title"`
	Description string              `gorm:"type:text;not null" json:"description"`
	ProfilePic  string              `gorm:"default:default_discussion.jpg" json:"profile_pic"`
	AuthorID    uint                `gorm:"not null;index" json:"author_id"`
	Author      User                `gorm:"foreignKey:AuthorID" json:"author"`
	Messages    []DiscussionMessage `gorm:"foreignKey:DiscussionID" json:"messages,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
}

// DiscussionMessage represents a single message inside a discussion thread.
type DiscussionMessage struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Text         string    `gorm:"type:text;not null" json:"text"`
	AuthorID     uint      `gorm:"not null;index" json:"author_id"`
	DiscussionID uint      `gorm:"not null;index" json:"discussion_id"`
	Author       User      `gorm:"foreignKey:AuthorID" json:"author"`
	CreatedAt    time.Time `json:"created_at"`
}
