// Package bootstrap wires configuration, infrastructure, services, and
// handlers together and runs the HTTP server.
package bootstrap

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/hshubham24beit-oss/news-website/config"
	"github.com/hshubham24beit-oss/news-website/driver"
	"github.com/hshubham24beit-oss/news-website/handler"
	"github.com/hshubham24beit-oss/news-website/middleware"
	"github.com/hshubham24beit-oss/news-website/repository"
	"github.com/hshubham24beit-oss/news-website/service"
)

// Dependencies holds all application dependencies.
type Dependencies struct {
	Config *config.Config
	Logger *slog.Logger

	DBPool      *pgxpool.Pool
	RedisClient *redis.Client
	Cache       repository.Cache

	HeroHandler    *handler.HeroHandler
	ArticleHandler *handler.ArticleHandler
	WeatherHandler *handler.WeatherHandler
	CSRFStore      *middleware.CSRFTokenStore
}

// BuildDependencies constructs the full dependency graph. Postgres and
// Redis are both optional: without DATABASE_URL the local article store is
// disabled, without REDIS_URL the cache is process-local.
func BuildDependencies(ctx context.Context, cfg *config.Config, log *slog.Logger) (*Dependencies, func(), error) {
	deps := &Dependencies{Config: cfg, Logger: log}

	var pool repository.Pool
	if cfg.Database.URL != "" {
		dbPool, err := driver.InitDB(ctx, cfg.Database.URL)
		if err != nil {
			return nil, nil, err
		}
		if err := driver.EnsureSchema(ctx, dbPool); err != nil {
			dbPool.Close()
			return nil, nil, err
		}
		deps.DBPool = dbPool
		pool = dbPool
	} else {
		log.Warn("DATABASE_URL not set, local article store disabled")
	}

	if cfg.Cache.RedisURL != "" {
		client, err := driver.NewRedisClient(ctx, cfg.Cache.RedisURL)
		if err != nil {
			if deps.DBPool != nil {
				deps.DBPool.Close()
			}
			return nil, nil, err
		}
		deps.RedisClient = client
		deps.Cache = repository.NewRedisCache(client)
	} else {
		log.Warn("REDIS_URL not set, using process-local cache")
		deps.Cache = repository.NewMemoryCache()
	}

	articleRepo := repository.NewArticleRepository(pool)
	categoryRepo := repository.NewCategoryRepository(pool)

	registry := service.NewExternalArticleService(cfg, deps.Cache, log)
	heroResolver := service.NewHeroResolverService(cfg, deps.Cache, registry, log)
	weatherService := service.NewWeatherProxyService(cfg, deps.Cache, log)

	deps.HeroHandler = handler.NewHeroHandler(cfg.News.HeroMode, articleRepo, heroResolver, log)
	deps.ArticleHandler = handler.NewArticleHandler(articleRepo, categoryRepo, registry, log)
	deps.WeatherHandler = handler.NewWeatherHandler(weatherService, log)
	deps.CSRFStore = middleware.NewCSRFTokenStore(deps.Cache, cfg.Cache.TTL)

	cleanup := func() {
		if deps.DBPool != nil {
			deps.DBPool.Close()
		}
		if deps.RedisClient != nil {
			deps.RedisClient.Close()
		}
	}

	return deps, cleanup, nil
}
