package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hshubham24beit-oss/news-website/domain"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 9300, cfg.Server.Port)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, 6*time.Second, cfg.News.FetchTimeout)
	assert.Equal(t, 12*time.Second, cfg.News.PageFetchTimeout)
	assert.Equal(t, domain.HeroModeLocalFirst, cfg.News.HeroMode)
	assert.Equal(t, 40, cfg.News.MaxParagraphs)
	assert.Equal(t, WeatherProviderOpenMeteo, cfg.Weather.Provider)
	assert.NotEmpty(t, cfg.News.ProviderURL)
	assert.NotEmpty(t, cfg.News.RSSFallbackURL)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("CACHE_TTL", "10m")
	t.Setenv("HERO_MODE", "external-first")
	t.Setenv("WEATHER_PROVIDER", "openweather")
	t.Setenv("NEWS_MAX_PARAGRAPHS", "15")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 10*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, domain.HeroModeExternalFirst, cfg.News.HeroMode)
	assert.Equal(t, WeatherProviderOpenWeather, cfg.Weather.Provider)
	assert.Equal(t, 15, cfg.News.MaxParagraphs)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad port", "SERVER_PORT", "70000"},
		{"non-numeric port", "SERVER_PORT", "not-a-port"},
		{"zero ttl", "CACHE_TTL", "0s"},
		{"unknown hero mode", "HERO_MODE", "sideways"},
		{"unknown weather provider", "WEATHER_PROVIDER", "darksky"},
		{"zero paragraphs", "NEWS_MAX_PARAGRAPHS", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}
