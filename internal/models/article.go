package models

import (
	"time"
)

// Category is one of the eight fixed topical tags assigned to an article.
type Category string

const (
	CategoryArt              Category = "art"
	CategoryCulture          Category = "culture"
	CategorySport            Category = "sport"
	CategoryEconomy          Category = "economy"
	CategoryTechnology       Category = "technology"
	CategoryHealth           Category = "health"
	CategoryEntrepreneurship Category = "entrepreneurship"
	CategoryOther            Category = "other"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryArt,
	CategoryCulture,
	CategorySport,
	CategoryEconomy,
	CategoryTechnology,
	CategoryHealth,
	CategoryEntrepreneurship,
	CategoryOther,
}

// ParseCategory validates a raw category value. The bool reports whether the
// value is one of the eight known categories.
func ParseCategory(raw string) (Category, bool) {
	c := Category(raw)
	for _, known := range Categories {
		if c == known {
			return c, true
		}
	}
	return "", false
}

// Article represents a published article in the Miso platform.
type Article struct {
	ID       uint     `gorm:"primaryKey" json:"id"`
	Title    string   `gorm:"not null" json:"title"`
	Content  string   `gorm:"type:text;not null" json:"content"`
	Excerpt  string   `gorm:"size:300" json:"excerpt"`
	Category Category `gorm:"not null;index" json:"category"`
	ImageURL string   `gorm:"default:default_article.jpg" json:"image_url"`
	AuthorID uint     `gorm:"not null;index" json:"author_id"`
	Author   User     `gorm:"foreignKey:AuthorID" json:"author"`
	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->" json:"likes_count"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int `gorm:"->" json:"comments_count"`
	// Liked indicates whether the current requesting user liked this article (computed)
	Liked     bool      `gorm:"->" json:"liked"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
