// Package service implements the external hero pipeline, the external
// article registry, and the weather proxy.
package service

import (
	"context"

	"github.com/hshubham24beit-oss/news-website/domain"
)

// HeroResolver resolves today's external hero. A nil article with a nil
// error means "no hero" and is a normal, handleable outcome.
type HeroResolver interface {
	ResolveHero(ctx context.Context) (*domain.ExternalArticle, error)
}

// ExternalArticleRegistry assigns stable short identifiers to external
// articles and resolves them back, lazily extracting full text.
type ExternalArticleRegistry interface {
	Register(ctx context.Context, article *domain.ExternalArticle) *domain.ExternalArticle
	Resolve(ctx context.Context, id string) (*domain.ExternalArticle, error)
}

// WeatherService proxies the configured weather provider with caching.
type WeatherService interface {
	CurrentWeather(ctx context.Context, lat, lon float64) (*domain.NormalizedWeather, error)
}
