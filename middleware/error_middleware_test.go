package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newErrorServer(handler echo.HandlerFunc) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = CustomHTTPErrorHandler(slog.New(slog.NewTextHandler(io.Discard, nil)))
	e.GET("/boom", handler)
	return e
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestCustomHTTPErrorHandler_ClientErrorKeepsMessage(t *testing.T) {
	e := newErrorServer(func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusBadRequest, "lat and lon are required")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "lat and lon are required", decodeError(t, rec).Message)
}

func TestCustomHTTPErrorHandler_ServerErrorMasked(t *testing.T) {
	e := newErrorServer(func(c echo.Context) error {
		return errors.New("pgx: connection refused on 10.0.0.5")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "internal_error", body.Error)
	assert.NotContains(t, body.Message, "pgx", "internal details must never reach the client")
}

func TestCustomHTTPErrorHandler_StructuredBodyPassesThrough(t *testing.T) {
	e := newErrorServer(func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusForbidden, map[string]any{
			"error":   "csrf_token_missing",
			"message": "CSRF token is required",
		})
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "csrf_token_missing")
}
