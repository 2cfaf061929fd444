package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/hshubham24beit-oss/news-website/domain"
)

type categoryRepository struct {
	pool Pool
}

// NewCategoryRepository creates a Postgres-backed category repository.
func NewCategoryRepository(pool Pool) CategoryRepository {
	return &categoryRepository{pool: pool}
}

func (r *categoryRepository) Create(ctx context.Context, name, description, imageURL string) (*domain.Category, error) {
	if r.pool == nil {
		return nil, errors.New("database connection not available")
	}
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("category name cannot be empty")
	}

	slug, err := r.uniqueSlug(ctx, name)
	if err != nil {
		return nil, err
	}

	category := &domain.Category{
		Name:        name,
		Slug:        slug,
		Description: description,
		ImageURL:    imageURL,
	}

	query := `
		INSERT INTO categories (name, slug, description, image_url)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	err = r.pool.QueryRow(ctx, query, name, slug, description, imageURL).
		Scan(&category.ID, &category.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return category, nil
}

// uniqueSlug derives a URL-safe slug from the name, resolving collisions by
// suffixing an incrementing counter.
func (r *categoryRepository) uniqueSlug(ctx context.Context, name string) (string, error) {
	base := Slugify(name)
	slug := base
	for n := 2; ; n++ {
		var exists bool
		err := r.pool.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM categories WHERE slug = $1)`, slug).
			Scan(&exists)
		if err != nil {
			return "", fmt.Errorf("failed to check slug: %w", err)
		}
		if !exists {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, n)
	}
}

func (r *categoryRepository) FindByID(ctx context.Context, id int64) (*domain.Category, error) {
	if r.pool == nil {
		return nil, errors.New("database connection not available")
	}

	query := `
		SELECT id, name, slug, description, image_url, created_at
		FROM categories
		WHERE id = $1
	`
	category := &domain.Category{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&category.ID,
		&category.Name,
		&category.Slug,
		&category.Description,
		&category.ImageURL,
		&category.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch category: %w", err)
	}

	return category, nil
}

func (r *categoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	if r.pool == nil {
		return nil, errors.New("database connection not available")
	}

	query := `
		SELECT id, name, slug, description, image_url, created_at
		FROM categories
		ORDER BY name
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []*domain.Category
	for rows.Next() {
		category := &domain.Category{}
		if err := rows.Scan(
			&category.ID,
			&category.Name,
			&category.Slug,
			&category.Description,
			&category.ImageURL,
			&category.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read categories: %w", err)
	}

	return categories, nil
}

var (
	slugInvalidRe = regexp.MustCompile(`[^a-z0-9-]+`)
	slugHyphenRe  = regexp.MustCompile(`-{2,}`)
)

// Slugify lowercases the name, maps whitespace and underscores to hyphens,
// and drops everything outside [a-z0-9-].
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.NewReplacer(" ", "-", "_", "-").Replace(s)
	s = slugInvalidRe.ReplaceAllString(s, "")
	s = slugHyphenRe.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "category"
	}
	return s
}
