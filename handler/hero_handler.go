// Package handler implements the HTTP layer: hero, articles, categories,
// and the weather proxy.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hshubham24beit-oss/news-website/domain"
	"github.com/hshubham24beit-oss/news-website/repository"
	"github.com/hshubham24beit-oss/news-website/service"
)

// HeroHandler serves the featured hero slot. The hero mode decides the
// precedence between the newest local article and the external pipeline; an
// empty slot is 204, never an error.
type HeroHandler struct {
	mode     domain.HeroMode
	articles repository.ArticleRepository
	resolver service.HeroResolver
	logger   *slog.Logger
}

func NewHeroHandler(
	mode domain.HeroMode,
	articles repository.ArticleRepository,
	resolver service.HeroResolver,
	logger *slog.Logger,
) *HeroHandler {
	return &HeroHandler{mode: mode, articles: articles, resolver: resolver, logger: logger}
}

func (h *HeroHandler) HandleHero(c echo.Context) error {
	ctx := c.Request().Context()

	switch h.mode {
	case domain.HeroModeLocalOnly:
		if local := h.latestLocal(c); local != nil {
			return c.JSON(http.StatusOK, domain.NewLocalHeroView(local))
		}

	case domain.HeroModeExternalFirst:
		if external, err := h.resolver.ResolveHero(ctx); err == nil && external != nil {
			return c.JSON(http.StatusOK, domain.NewExternalHeroView(external))
		}
		if local := h.latestLocal(c); local != nil {
			return c.JSON(http.StatusOK, domain.NewLocalHeroView(local))
		}

	default: // local-first
		if local := h.latestLocal(c); local != nil {
			return c.JSON(http.StatusOK, domain.NewLocalHeroView(local))
		}
		if external, err := h.resolver.ResolveHero(ctx); err == nil && external != nil {
			return c.JSON(http.StatusOK, domain.NewExternalHeroView(external))
		}
	}

	return c.NoContent(http.StatusNoContent)
}

// latestLocal degrades gracefully: a missing database or a query failure
// means "no local hero", not a request failure.
func (h *HeroHandler) latestLocal(c echo.Context) *domain.Article {
	if h.articles == nil {
		return nil
	}
	article, err := h.articles.Latest(c.Request().Context())
	if err != nil {
		h.logger.Warn("latest local article lookup failed", "error", err)
		return nil
	}
	return article
}
