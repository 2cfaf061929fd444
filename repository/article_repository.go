package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/hshubham24beit-oss/news-website/domain"
)

type articleRepository struct {
	pool Pool
}

// NewArticleRepository creates a Postgres-backed article repository.
func NewArticleRepository(pool Pool) ArticleRepository {
	return &articleRepository{pool: pool}
}

const articleColumns = `a.id, a.title, a.content, a.image_url, a.category_id, c.name, a.created_at`

func (r *articleRepository) scanArticle(row pgx.Row) (*domain.Article, error) {
	article := &domain.Article{}
	err := row.Scan(
		&article.ID,
		&article.Title,
		&article.Content,
		&article.ImageURL,
		&article.CategoryID,
		&article.CategoryName,
		&article.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return article, nil
}

func (r *articleRepository) Create(ctx context.Context, article *domain.Article) (*domain.Article, error) {
	if r.pool == nil {
		return nil, errors.New("database connection not available")
	}

	query := `
		INSERT INTO articles (title, content, image_url, category_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	err := r.pool.QueryRow(ctx, query,
		article.Title,
		article.Content,
		article.ImageURL,
		article.CategoryID,
	).Scan(&article.ID, &article.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create article: %w", err)
	}

	return article, nil
}

func (r *articleRepository) FindByID(ctx context.Context, id int64) (*domain.Article, error) {
	if r.pool == nil {
		return nil, errors.New("database connection not available")
	}

	query := `
		SELECT ` + articleColumns + `
		FROM articles a
		JOIN categories c ON c.id = a.category_id
		WHERE a.id = $1
	`
	article, err := r.scanArticle(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrArticleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch article: %w", err)
	}

	return article, nil
}

func (r *articleRepository) ListByCategory(ctx context.Context, categoryID int64) ([]*domain.Article, error) {
	if r.pool == nil {
		return nil, errors.New("database connection not available")
	}

	query := `
		SELECT ` + articleColumns + `
		FROM articles a
		JOIN categories c ON c.id = a.category_id
		WHERE a.category_id = $1
		ORDER BY a.created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	defer rows.Close()

	return r.collectArticles(rows)
}

func (r *articleRepository) Latest(ctx context.Context) (*domain.Article, error) {
	if r.pool == nil {
		return nil, errors.New("database connection not available")
	}

	query := `
		SELECT ` + articleColumns + `
		FROM articles a
		JOIN categories c ON c.id = a.category_id
		ORDER BY a.created_at DESC
		LIMIT 1
	`
	article, err := r.scanArticle(r.pool.QueryRow(ctx, query))
	if errors.Is(err, pgx.ErrNoRows) {
		// An empty store is a normal outcome, not an error.
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch latest article: %w", err)
	}

	return article, nil
}

func (r *articleRepository) LatestExcluding(ctx context.Context, excludeID int64, limit int) ([]*domain.Article, error) {
	if r.pool == nil {
		return nil, errors.New("database connection not available")
	}

	query := `
		SELECT ` + articleColumns + `
		FROM articles a
		JOIN categories c ON c.id = a.category_id
		WHERE a.id <> $1
		ORDER BY a.created_at DESC
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, excludeID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list latest articles: %w", err)
	}
	defer rows.Close()

	return r.collectArticles(rows)
}

func (r *articleRepository) collectArticles(rows pgx.Rows) ([]*domain.Article, error) {
	var articles []*domain.Article
	for rows.Next() {
		article, err := r.scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan article: %w", err)
		}
		articles = append(articles, article)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read articles: %w", err)
	}
	return articles, nil
}
