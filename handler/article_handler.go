package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/hshubham24beit-oss/news-website/domain"
	"github.com/hshubham24beit-oss/news-website/repository"
	"github.com/hshubham24beit-oss/news-website/service"
)

const relatedArticleLimit = 6

// ArticleHandler serves local articles, categories, and the external
// article detail view.
type ArticleHandler struct {
	articles   repository.ArticleRepository
	categories repository.CategoryRepository
	registry   service.ExternalArticleRegistry
	logger     *slog.Logger
}

func NewArticleHandler(
	articles repository.ArticleRepository,
	categories repository.CategoryRepository,
	registry service.ExternalArticleRegistry,
	logger *slog.Logger,
) *ArticleHandler {
	return &ArticleHandler{
		articles:   articles,
		categories: categories,
		registry:   registry,
		logger:     logger,
	}
}

// HandleExternalDetail resolves a registered external article. Unknown or
// expired identifiers redirect home instead of stranding the reader on an
// error page.
func (h *ArticleHandler) HandleExternalDetail(c echo.Context) error {
	id := c.Param("id")

	article, err := h.registry.Resolve(c.Request().Context(), id)
	if errors.Is(err, domain.ErrExternalArticleNotFound) {
		return c.Redirect(http.StatusFound, "/")
	}
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, article)
}

func (h *ArticleHandler) HandleGetArticle(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid article id")
	}

	article, err := h.articles.FindByID(c.Request().Context(), id)
	if errors.Is(err, domain.ErrArticleNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "article not found")
	}
	if err != nil {
		return err
	}

	related, err := h.articles.LatestExcluding(c.Request().Context(), article.ID, relatedArticleLimit)
	if err != nil {
		h.logger.Warn("related articles lookup failed", "article_id", article.ID, "error", err)
		related = nil
	}

	return c.JSON(http.StatusOK, map[string]any{
		"article": article,
		"related": related,
	})
}

type createArticleRequest struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	ImageURL   string `json:"image_url"`
	CategoryID int64  `json:"category_id"`
}

func (h *ArticleHandler) HandleCreateArticle(c echo.Context) error {
	var req createArticleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title is required")
	}
	if req.CategoryID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "category_id is required")
	}

	if _, err := h.categories.FindByID(c.Request().Context(), req.CategoryID); err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return echo.NewHTTPError(http.StatusBadRequest, "category does not exist")
		}
		return err
	}

	article, err := h.articles.Create(c.Request().Context(), &domain.Article{
		Title:      req.Title,
		Content:    req.Content,
		ImageURL:   req.ImageURL,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, article)
}

func (h *ArticleHandler) HandleListByCategory(c echo.Context) error {
	categoryID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid category id")
	}

	category, err := h.categories.FindByID(c.Request().Context(), categoryID)
	if errors.Is(err, domain.ErrCategoryNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "category not found")
	}
	if err != nil {
		return err
	}

	articles, err := h.articles.ListByCategory(c.Request().Context(), categoryID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{
		"category": category,
		"articles": articles,
	})
}

type createCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

func (h *ArticleHandler) HandleCreateCategory(c echo.Context) error {
	var req createCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}

	category, err := h.categories.Create(c.Request().Context(), req.Name, req.Description, req.ImageURL)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, category)
}

func (h *ArticleHandler) HandleListCategories(c echo.Context) error {
	categories, err := h.categories.List(c.Request().Context())
	if err != nil {
		return err
	}
	if categories == nil {
		categories = []*domain.Category{}
	}
	return c.JSON(http.StatusOK, categories)
}
