package handler

import (
	"context"
	"io"
	"log/slog"

	"github.com/hshubham24beit-oss/news-website/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stubArticleRepo implements repository.ArticleRepository with overridable
// function fields; unset operations return zero values.
type stubArticleRepo struct {
	createFn          func(ctx context.Context, article *domain.Article) (*domain.Article, error)
	findByIDFn        func(ctx context.Context, id int64) (*domain.Article, error)
	listByCategoryFn  func(ctx context.Context, categoryID int64) ([]*domain.Article, error)
	latestFn          func(ctx context.Context) (*domain.Article, error)
	latestExcludingFn func(ctx context.Context, excludeID int64, limit int) ([]*domain.Article, error)
}

func (s *stubArticleRepo) Create(ctx context.Context, article *domain.Article) (*domain.Article, error) {
	if s.createFn != nil {
		return s.createFn(ctx, article)
	}
	return article, nil
}

func (s *stubArticleRepo) FindByID(ctx context.Context, id int64) (*domain.Article, error) {
	if s.findByIDFn != nil {
		return s.findByIDFn(ctx, id)
	}
	return nil, domain.ErrArticleNotFound
}

func (s *stubArticleRepo) ListByCategory(ctx context.Context, categoryID int64) ([]*domain.Article, error) {
	if s.listByCategoryFn != nil {
		return s.listByCategoryFn(ctx, categoryID)
	}
	return nil, nil
}

func (s *stubArticleRepo) Latest(ctx context.Context) (*domain.Article, error) {
	if s.latestFn != nil {
		return s.latestFn(ctx)
	}
	return nil, nil
}

func (s *stubArticleRepo) LatestExcluding(ctx context.Context, excludeID int64, limit int) ([]*domain.Article, error) {
	if s.latestExcludingFn != nil {
		return s.latestExcludingFn(ctx, excludeID, limit)
	}
	return nil, nil
}

type stubCategoryRepo struct {
	createFn   func(ctx context.Context, name, description, imageURL string) (*domain.Category, error)
	findByIDFn func(ctx context.Context, id int64) (*domain.Category, error)
	listFn     func(ctx context.Context) ([]*domain.Category, error)
}

func (s *stubCategoryRepo) Create(ctx context.Context, name, description, imageURL string) (*domain.Category, error) {
	if s.createFn != nil {
		return s.createFn(ctx, name, description, imageURL)
	}
	return &domain.Category{ID: 1, Name: name, Description: description, ImageURL: imageURL}, nil
}

func (s *stubCategoryRepo) FindByID(ctx context.Context, id int64) (*domain.Category, error) {
	if s.findByIDFn != nil {
		return s.findByIDFn(ctx, id)
	}
	return nil, domain.ErrCategoryNotFound
}

func (s *stubCategoryRepo) List(ctx context.Context) ([]*domain.Category, error) {
	if s.listFn != nil {
		return s.listFn(ctx)
	}
	return nil, nil
}

type stubHeroResolver struct {
	article *domain.ExternalArticle
	err     error
	calls   int
}

func (s *stubHeroResolver) ResolveHero(ctx context.Context) (*domain.ExternalArticle, error) {
	s.calls++
	return s.article, s.err
}

type stubRegistry struct {
	resolveFn func(ctx context.Context, id string) (*domain.ExternalArticle, error)
}

func (s *stubRegistry) Register(ctx context.Context, article *domain.ExternalArticle) *domain.ExternalArticle {
	return article
}

func (s *stubRegistry) Resolve(ctx context.Context, id string) (*domain.ExternalArticle, error) {
	if s.resolveFn != nil {
		return s.resolveFn(ctx, id)
	}
	return nil, domain.ErrExternalArticleNotFound
}

type stubWeatherService struct {
	weather *domain.NormalizedWeather
	err     error
}

func (s *stubWeatherService) CurrentWeather(ctx context.Context, lat, lon float64) (*domain.NormalizedWeather, error) {
	return s.weather, s.err
}
