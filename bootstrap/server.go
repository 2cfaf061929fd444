package bootstrap

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	appmiddleware "github.com/hshubham24beit-oss/news-website/middleware"
)

// NewHTTPServer creates and configures the Echo HTTP server.
func NewHTTPServer(deps *Dependencies, otelEnabled bool, otelServiceName string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.HTTPErrorHandler = appmiddleware.CustomHTTPErrorHandler(deps.Logger)

	if otelEnabled {
		e.Use(otelecho.Middleware(otelServiceName))
	}

	e.Use(echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		Skipper: func(c echo.Context) bool {
			return c.Request().URL.Path == "/v1/health"
		},
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ctx := c.Request().Context()
			deps.Logger.InfoContext(ctx, "HTTP request completed",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"error", v.Error)
			return nil
		},
	}))
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(appmiddleware.CSRFMiddleware(deps.CSRFStore))

	v1 := e.Group("/v1")
	v1.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "healthy"})
	})
	v1.GET("/csrf-token", appmiddleware.CSRFTokenHandler(deps.CSRFStore))

	v1.GET("/hero", deps.HeroHandler.HandleHero)

	v1.GET("/articles/external/:id", deps.ArticleHandler.HandleExternalDetail)
	v1.GET("/articles/:id", deps.ArticleHandler.HandleGetArticle)
	v1.POST("/articles", deps.ArticleHandler.HandleCreateArticle)

	v1.GET("/categories", deps.ArticleHandler.HandleListCategories)
	v1.POST("/categories", deps.ArticleHandler.HandleCreateCategory)
	v1.GET("/categories/:id/articles", deps.ArticleHandler.HandleListByCategory)

	v1.POST("/weather", deps.WeatherHandler.HandleCurrentWeather)

	return e
}

// StartHTTPServer starts the HTTP server in a goroutine.
func StartHTTPServer(e *echo.Echo, deps *Dependencies, log *slog.Logger) {
	go func() {
		addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
		log.Info("Starting HTTP server", "addr", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
		}
	}()
}
