package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/hshubham24beit-oss/news-website/config"
	"github.com/hshubham24beit-oss/news-website/domain"
	"github.com/hshubham24beit-oss/news-website/repository"
)

// weatherCacheKeyFormat rounds coordinates to four decimals (roughly 11
// meters) so nearby requests share a cache entry.
const weatherCacheKeyFormat = "weather:%.4f:%.4f"

// wmoConditions maps the keyless provider's WMO weather codes to readable
// conditions. Unknown codes fall back to "unknown".
var wmoConditions = map[int]string{
	0:  "clear sky",
	1:  "mainly clear",
	2:  "partly cloudy",
	3:  "overcast",
	45: "fog",
	48: "depositing rime fog",
	51: "light drizzle",
	53: "moderate drizzle",
	55: "dense drizzle",
	61: "slight rain",
	63: "moderate rain",
	65: "heavy rain",
	66: "freezing rain",
	67: "heavy freezing rain",
	71: "slight snow",
	73: "moderate snow",
	75: "heavy snow",
	77: "snow grains",
	80: "slight rain showers",
	81: "moderate rain showers",
	82: "violent rain showers",
	85: "slight snow showers",
	86: "heavy snow showers",
	95: "thunderstorm",
	96: "thunderstorm with slight hail",
	99: "thunderstorm with heavy hail",
}

// WeatherProxyService proxies one of two providers into the normalized
// weather shape, caching by rounded coordinates.
type WeatherProxyService struct {
	cfg        *config.Config
	cache      repository.Cache
	httpClient *http.Client
	logger     *slog.Logger
}

func NewWeatherProxyService(cfg *config.Config, cache repository.Cache, logger *slog.Logger) *WeatherProxyService {
	return &WeatherProxyService{
		cfg:        cfg,
		cache:      cache,
		httpClient: &http.Client{Timeout: cfg.Weather.Timeout},
		logger:     logger,
	}
}

func (s *WeatherProxyService) CurrentWeather(ctx context.Context, lat, lon float64) (*domain.NormalizedWeather, error) {
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return nil, domain.ErrInvalidCoordinates
	}

	key := fmt.Sprintf(weatherCacheKeyFormat, lat, lon)
	if cached, err := s.cache.Get(ctx, key); err == nil {
		var weather domain.NormalizedWeather
		if err := json.Unmarshal(cached, &weather); err == nil {
			return &weather, nil
		}
	} else if !errors.Is(err, domain.ErrCacheMiss) {
		s.logger.Warn("weather cache read failed", "error", err)
	}

	var (
		weather *domain.NormalizedWeather
		err     error
	)
	switch s.cfg.Weather.Provider {
	case config.WeatherProviderOpenWeather:
		weather, err = s.fetchOpenWeather(ctx, lat, lon)
	default:
		weather, err = s.fetchOpenMeteo(ctx, lat, lon)
	}
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(weather); err == nil {
		if err := s.cache.Set(ctx, key, payload, s.cfg.Cache.TTL); err != nil {
			s.logger.Warn("weather cache write failed", "error", err)
		}
	}

	return weather, nil
}

type openWeatherResponse struct {
	Weather []struct {
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Sys struct {
		Sunrise int64 `json:"sunrise"`
		Sunset  int64 `json:"sunset"`
	} `json:"sys"`
	Name string `json:"name"`
}

func (s *WeatherProxyService) fetchOpenWeather(ctx context.Context, lat, lon float64) (*domain.NormalizedWeather, error) {
	if s.cfg.Weather.APIKey == "" {
		return nil, domain.ErrMissingAPIKey
	}

	query := url.Values{}
	query.Set("lat", fmt.Sprintf("%.4f", lat))
	query.Set("lon", fmt.Sprintf("%.4f", lon))
	query.Set("units", "metric")
	query.Set("appid", s.cfg.Weather.APIKey)

	body, err := s.fetchProvider(ctx, s.cfg.Weather.OpenWeatherURL, query)
	if err != nil {
		return nil, err
	}

	var resp openWeatherResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: undecodable provider payload", domain.ErrWeatherUnavailable)
	}

	weather := &domain.NormalizedWeather{
		Temp:         resp.Main.Temp,
		Humidity:     resp.Main.Humidity,
		WindKph:      resp.Wind.Speed * 3.6,
		LocationName: resp.Name,
		Raw:          body,
	}
	if len(resp.Weather) > 0 {
		weather.Condition = resp.Weather[0].Description
		weather.Icon = resp.Weather[0].Icon
	}
	if resp.Sys.Sunrise > 0 {
		weather.Sunrise = time.Unix(resp.Sys.Sunrise, 0).UTC().Format(time.RFC3339)
	}
	if resp.Sys.Sunset > 0 {
		weather.Sunset = time.Unix(resp.Sys.Sunset, 0).UTC().Format(time.RFC3339)
	}
	return weather, nil
}

type openMeteoResponse struct {
	Current struct {
		Temperature float64 `json:"temperature_2m"`
		Humidity    int     `json:"relative_humidity_2m"`
		WeatherCode int     `json:"weather_code"`
		WindSpeed   float64 `json:"wind_speed_10m"`
	} `json:"current"`
	Daily struct {
		Sunrise []string `json:"sunrise"`
		Sunset  []string `json:"sunset"`
	} `json:"daily"`
}

func (s *WeatherProxyService) fetchOpenMeteo(ctx context.Context, lat, lon float64) (*domain.NormalizedWeather, error) {
	query := url.Values{}
	query.Set("latitude", fmt.Sprintf("%.4f", lat))
	query.Set("longitude", fmt.Sprintf("%.4f", lon))
	query.Set("current", "temperature_2m,relative_humidity_2m,weather_code,wind_speed_10m")
	query.Set("daily", "sunrise,sunset")
	query.Set("timezone", "auto")
	query.Set("forecast_days", "1")
	query.Set("wind_speed_unit", "kmh")

	body, err := s.fetchProvider(ctx, s.cfg.Weather.OpenMeteoURL, query)
	if err != nil {
		return nil, err
	}

	var resp openMeteoResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: undecodable provider payload", domain.ErrWeatherUnavailable)
	}

	condition, ok := wmoConditions[resp.Current.WeatherCode]
	if !ok {
		condition = "unknown"
	}

	weather := &domain.NormalizedWeather{
		Temp:      resp.Current.Temperature,
		Condition: condition,
		Humidity:  resp.Current.Humidity,
		WindKph:   resp.Current.WindSpeed,
		Raw:       body,
	}
	if len(resp.Daily.Sunrise) > 0 {
		weather.Sunrise = resp.Daily.Sunrise[0]
	}
	if len(resp.Daily.Sunset) > 0 {
		weather.Sunset = resp.Daily.Sunset[0]
	}
	return weather, nil
}

func (s *WeatherProxyService) fetchProvider(ctx context.Context, providerURL string, query url.Values) ([]byte, error) {
	u, err := url.Parse(providerURL)
	if err != nil {
		return nil, fmt.Errorf("%w: bad provider url", domain.ErrWeatherUnavailable)
	}
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrWeatherUnavailable, err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.Warn("weather provider unreachable", "host", u.Host, "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrWeatherUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		s.logger.Warn("weather provider returned bad status", "host", u.Host, "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: status %d", domain.ErrWeatherUnavailable, resp.StatusCode)
	}

	return io.ReadAll(io.LimitReader(resp.Body, 1<<20))
}
