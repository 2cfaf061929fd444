package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hshubham24beit-oss/news-website/domain"
	"github.com/hshubham24beit-oss/news-website/service"
)

// WeatherRequest carries client coordinates. Pointers distinguish an absent
// field from a legitimate zero coordinate.
type WeatherRequest struct {
	Lat *float64 `json:"lat"`
	Lon *float64 `json:"lon"`
}

type WeatherHandler struct {
	weather service.WeatherService
	logger  *slog.Logger
}

func NewWeatherHandler(weather service.WeatherService, logger *slog.Logger) *WeatherHandler {
	return &WeatherHandler{weather: weather, logger: logger}
}

func (h *WeatherHandler) HandleCurrentWeather(c echo.Context) error {
	var req WeatherRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Lat == nil || req.Lon == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "lat and lon are required")
	}

	weather, err := h.weather.CurrentWeather(c.Request().Context(), *req.Lat, *req.Lon)
	switch {
	case errors.Is(err, domain.ErrInvalidCoordinates):
		return echo.NewHTTPError(http.StatusBadRequest, "coordinates out of range")
	case errors.Is(err, domain.ErrMissingAPIKey):
		h.logger.Error("weather provider misconfigured: missing API key")
		return echo.NewHTTPError(http.StatusInternalServerError, "weather provider not configured")
	case errors.Is(err, domain.ErrWeatherUnavailable):
		return echo.NewHTTPError(http.StatusBadGateway, "weather provider unavailable")
	case err != nil:
		return err
	}

	return c.JSON(http.StatusOK, weather)
}
