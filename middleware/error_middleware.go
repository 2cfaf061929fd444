package middleware

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// CustomHTTPErrorHandler converts errors into consistent JSON responses.
// Messages on 5xx responses are replaced with a generic one; the real error
// is logged server-side only.
func CustomHTTPErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := "An unexpected error occurred. Please try again later."

		if he, ok := err.(*echo.HTTPError); ok {
			status = he.Code
			switch m := he.Message.(type) {
			case string:
				message = m
			case map[string]any:
				// Structured error bodies (CSRF middleware) pass through.
				if status >= 500 {
					logger.Error("http error", "status", status, "detail", m)
					m = map[string]any{
						"error":   "internal_error",
						"message": "An unexpected error occurred. Please try again later.",
					}
				}
				if err := c.JSON(status, m); err != nil {
					logger.Error("failed to send error response", "error", err)
				}
				return
			}
		}

		code := "http_error"
		if status >= 500 {
			logger.Error("request failed", "status", status, "error", err)
			message = "An unexpected error occurred. Please try again later."
			code = "internal_error"
		} else {
			logger.Warn("request rejected", "status", status, "message", message)
		}

		if err := c.JSON(status, errorResponse{Error: code, Message: message}); err != nil {
			logger.Error("failed to send error response", "error", err)
		}
	}
}
