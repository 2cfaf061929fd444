package domain

import (
	"time"
)

// Category groups articles. The slug is derived from the name at creation
// time and is unique across all categories.
type Category struct {
	CreatedAt   time.Time `json:"created_at"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	ID          int64     `json:"id"`
}

// Article is a locally stored article. Every article belongs to exactly one
// category; recency ordering is by CreatedAt descending.
type Article struct {
	CreatedAt    time.Time `json:"created_at"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	ImageURL     string    `json:"image_url,omitempty"`
	CategoryName string    `json:"category,omitempty"`
	ID           int64     `json:"id"`
	CategoryID   int64     `json:"category_id"`
}
