// Package repository persists categories, articles, and cached values.
package repository

import (
	"context"
	"time"

	"github.com/hshubham24beit-oss/news-website/domain"
)

// CategoryRepository handles category persistence.
type CategoryRepository interface {
	// Create persists a category, deriving a unique slug from the name.
	Create(ctx context.Context, name, description, imageURL string) (*domain.Category, error)
	FindByID(ctx context.Context, id int64) (*domain.Category, error)
	List(ctx context.Context) ([]*domain.Category, error)
}

// ArticleRepository handles local article persistence.
type ArticleRepository interface {
	Create(ctx context.Context, article *domain.Article) (*domain.Article, error)
	FindByID(ctx context.Context, id int64) (*domain.Article, error)
	// ListByCategory returns articles of one category, newest first.
	ListByCategory(ctx context.Context, categoryID int64) ([]*domain.Article, error)
	// Latest returns the newest article, or nil when the store is empty.
	Latest(ctx context.Context) (*domain.Article, error)
	// LatestExcluding returns the newest articles skipping the given ID,
	// newest first.
	LatestExcluding(ctx context.Context, excludeID int64, limit int) ([]*domain.Article, error)
}

// Cache is the shared TTL key-value store. Implementations must return
// domain.ErrCacheMiss for absent or expired keys.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
