// Package middleware holds the Echo middleware shared by all routes: CSRF
// protection and the centralized error handler.
package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/hshubham24beit-oss/news-website/domain"
	"github.com/hshubham24beit-oss/news-website/repository"
)

const csrfCacheKeyPrefix = "csrf:"

// CSRFTokenStore issues and validates single-origin CSRF tokens backed by
// the cache store. Tokens expire with the cache TTL.
type CSRFTokenStore struct {
	cache repository.Cache
	ttl   time.Duration
}

func NewCSRFTokenStore(cache repository.Cache, ttl time.Duration) *CSRFTokenStore {
	return &CSRFTokenStore{cache: cache, ttl: ttl}
}

func (s *CSRFTokenStore) GenerateToken(ctx context.Context) (string, error) {
	token := uuid.New().String()
	if err := s.cache.Set(ctx, csrfCacheKeyPrefix+token, []byte("1"), s.ttl); err != nil {
		return "", err
	}
	return token, nil
}

func (s *CSRFTokenStore) ValidateToken(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}
	_, err := s.cache.Get(ctx, csrfCacheKeyPrefix+token)
	if errors.Is(err, domain.ErrCacheMiss) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// CSRFMiddleware rejects state-changing requests that lack a valid
// X-CSRF-Token header. Reads and the token endpoint itself are exempt.
func CSRFMiddleware(store *CSRFTokenStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !isCSRFProtected(c.Request().Method, c.Request().URL.Path) {
				return next(c)
			}

			token := c.Request().Header.Get("X-CSRF-Token")
			if token == "" {
				return echo.NewHTTPError(http.StatusForbidden, map[string]any{
					"error":   "csrf_token_missing",
					"message": "CSRF token is required",
				})
			}

			valid, err := store.ValidateToken(c.Request().Context(), token)
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{
					"error":   "csrf_validation_error",
					"message": "Failed to validate CSRF token",
				})
			}
			if !valid {
				return echo.NewHTTPError(http.StatusForbidden, map[string]any{
					"error":   "csrf_token_invalid",
					"message": "Invalid CSRF token",
				})
			}

			return next(c)
		}
	}
}

// CSRFTokenHandler serves new tokens for clients about to POST.
func CSRFTokenHandler(store *CSRFTokenStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, err := store.GenerateToken(c.Request().Context())
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{
				"error":   "csrf_token_generation_error",
				"message": "Failed to generate CSRF token",
			})
		}
		return c.JSON(http.StatusOK, map[string]any{"csrf_token": token})
	}
}

func isCSRFProtected(method, path string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return false
	}
	switch path {
	case "/v1/health", "/v1/csrf-token":
		return false
	}
	return true
}
