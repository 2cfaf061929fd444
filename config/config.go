// Package config loads service configuration from environment variables
// with explicit defaults and validation.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/hshubham24beit-oss/news-website/domain"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Cache    CacheConfig
	News     NewsConfig
	Weather  WeatherConfig
}

type ServerConfig struct {
	Port            int
	ShutdownTimeout time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
}

type DatabaseConfig struct {
	// URL is the Postgres connection string. Empty disables the local
	// article store (external hero and weather proxy still work).
	URL string
}

type CacheConfig struct {
	// RedisURL is the shared cache store. Empty falls back to the
	// process-local in-memory cache.
	RedisURL string
	// TTL bounds every cached value: hero, external articles, weather,
	// CSRF tokens use their own multiples of it where documented.
	TTL time.Duration
}

type NewsConfig struct {
	// ProviderURL is the primary top-news API endpoint.
	ProviderURL string
	// APIKey authenticates against the primary provider, first via the
	// x-api-key header, then once more as the api-key query parameter.
	APIKey string
	// RSSFallbackURL is the fixed public feed used when the primary
	// provider fails.
	RSSFallbackURL string
	// FetchTimeout bounds API and RSS calls.
	FetchTimeout time.Duration
	// PageFetchTimeout bounds the full source-page refetch for text
	// extraction.
	PageFetchTimeout time.Duration
	// HeroMode selects between local and external heroes.
	HeroMode domain.HeroMode
	// MaxParagraphs caps extracted article text.
	MaxParagraphs int
	// UserAgent is sent on all outbound news requests.
	UserAgent string
}

type WeatherConfig struct {
	// Provider is "openweather" (keyed) or "openmeteo" (keyless).
	Provider string
	// APIKey is required by the openweather provider.
	APIKey string
	// OpenWeatherURL and OpenMeteoURL are the provider endpoints.
	OpenWeatherURL string
	OpenMeteoURL   string
	// Timeout bounds provider calls.
	Timeout time.Duration
}

const (
	WeatherProviderOpenWeather = "openweather"
	WeatherProviderOpenMeteo   = "openmeteo"
)

func LoadConfig() (*Config, error) {
	config := &Config{}

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

func loadFromEnv(config *Config) error {
	var err error

	if config.Server.Port, err = intFromEnv("SERVER_PORT", 9300); err != nil {
		return err
	}
	if config.Server.ShutdownTimeout, err = durationFromEnv("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second); err != nil {
		return err
	}
	if config.Server.ReadTimeout, err = durationFromEnv("SERVER_READ_TIMEOUT", 10*time.Second); err != nil {
		return err
	}
	if config.Server.WriteTimeout, err = durationFromEnv("SERVER_WRITE_TIMEOUT", 30*time.Second); err != nil {
		return err
	}

	config.Database.URL = os.Getenv("DATABASE_URL")

	config.Cache.RedisURL = os.Getenv("REDIS_URL")
	if config.Cache.TTL, err = durationFromEnv("CACHE_TTL", 5*time.Minute); err != nil {
		return err
	}

	config.News.ProviderURL = stringFromEnv("NEWS_PROVIDER_URL", "https://api.worldnewsapi.com/top-news")
	config.News.APIKey = os.Getenv("NEWS_API_KEY")
	config.News.RSSFallbackURL = stringFromEnv("NEWS_RSS_FALLBACK_URL", "https://feeds.bbci.co.uk/news/world/rss.xml")
	if config.News.FetchTimeout, err = durationFromEnv("NEWS_FETCH_TIMEOUT", 6*time.Second); err != nil {
		return err
	}
	if config.News.PageFetchTimeout, err = durationFromEnv("NEWS_PAGE_FETCH_TIMEOUT", 12*time.Second); err != nil {
		return err
	}
	config.News.HeroMode = domain.HeroMode(stringFromEnv("HERO_MODE", string(domain.HeroModeLocalFirst)))
	if config.News.MaxParagraphs, err = intFromEnv("NEWS_MAX_PARAGRAPHS", 40); err != nil {
		return err
	}
	config.News.UserAgent = stringFromEnv("NEWS_USER_AGENT", "Mozilla/5.0 (compatible; NewsSiteBot/1.0)")

	config.Weather.Provider = stringFromEnv("WEATHER_PROVIDER", WeatherProviderOpenMeteo)
	config.Weather.APIKey = os.Getenv("WEATHER_API_KEY")
	config.Weather.OpenWeatherURL = stringFromEnv("WEATHER_OPENWEATHER_URL", "https://api.openweathermap.org/data/2.5/weather")
	config.Weather.OpenMeteoURL = stringFromEnv("WEATHER_OPENMETEO_URL", "https://api.open-meteo.com/v1/forecast")
	if config.Weather.Timeout, err = durationFromEnv("WEATHER_TIMEOUT", 6*time.Second); err != nil {
		return err
	}

	return nil
}

func validateConfig(config *Config) error {
	if config.Server.Port < 1 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}
	if config.Cache.TTL <= 0 {
		return fmt.Errorf("cache TTL must be positive: %s", config.Cache.TTL)
	}
	if _, err := domain.ParseHeroMode(string(config.News.HeroMode)); err != nil {
		return err
	}
	switch config.Weather.Provider {
	case WeatherProviderOpenWeather, WeatherProviderOpenMeteo:
	default:
		return fmt.Errorf("unknown weather provider %q", config.Weather.Provider)
	}
	if config.News.MaxParagraphs < 1 {
		return fmt.Errorf("max paragraphs must be positive: %d", config.News.MaxParagraphs)
	}
	return nil
}

func stringFromEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func intFromEnv(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %s", key, v)
	}
	return n, nil
}

func durationFromEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %s", key, v)
	}
	return d, nil
}
