package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/hshubham24beit-oss/news-website/config"
	"github.com/hshubham24beit-oss/news-website/domain"
	"github.com/hshubham24beit-oss/news-website/repository"
	"github.com/hshubham24beit-oss/news-website/utils/html_parser"
)

const externalCacheKeyPrefix = "news:external:"

// ExternalID derives the stable short identifier for an external article
// URL: the first 12 hex characters of its SHA-256. The same URL always maps
// to the same identifier, across processes and restarts.
func ExternalID(sourceURL string) string {
	if sourceURL == "" {
		sourceURL = "no-url"
	}
	sum := sha256.Sum256([]byte(sourceURL))
	return hex.EncodeToString(sum[:])[:12]
}

// externalEnvelope is the cached record for a registered external article.
type externalEnvelope struct {
	Article   *domain.ExternalArticle `json:"article"`
	FetchedAt time.Time               `json:"fetched_at"`
	SourceURL string                  `json:"source_url"`
}

// ExternalArticleService registers external articles in the cache under
// their derived identifiers and resolves them for the detail view, fetching
// and extracting the source page's full text on first resolve.
type ExternalArticleService struct {
	cfg        *config.Config
	cache      repository.Cache
	pageClient *http.Client
	logger     *slog.Logger
}

func NewExternalArticleService(cfg *config.Config, cache repository.Cache, logger *slog.Logger) *ExternalArticleService {
	return &ExternalArticleService{
		cfg:        cfg,
		cache:      cache,
		pageClient: &http.Client{Timeout: cfg.News.PageFetchTimeout},
		logger:     logger,
	}
}

// Register assigns the article its identifier and internal URL and persists
// it. Cache failures are logged and swallowed: the article is still
// servable for the current request.
func (s *ExternalArticleService) Register(ctx context.Context, article *domain.ExternalArticle) *domain.ExternalArticle {
	article.ID = ExternalID(article.URL)
	article.InternalURL = "/v1/articles/external/" + article.ID

	envelope := externalEnvelope{
		Article:   article,
		FetchedAt: time.Now().UTC(),
		SourceURL: article.URL,
	}
	s.persist(ctx, envelope)

	return article
}

func (s *ExternalArticleService) Resolve(ctx context.Context, id string) (*domain.ExternalArticle, error) {
	cached, err := s.cache.Get(ctx, externalCacheKeyPrefix+id)
	if errors.Is(err, domain.ErrCacheMiss) {
		return nil, domain.ErrExternalArticleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read external article cache: %w", err)
	}

	var envelope externalEnvelope
	if err := json.Unmarshal(cached, &envelope); err != nil || envelope.Article == nil {
		return nil, domain.ErrExternalArticleNotFound
	}

	if envelope.Article.FullText == "" {
		envelope.Article.FullText = s.fullText(ctx, envelope.Article)
		s.persist(ctx, envelope)
	}

	return envelope.Article, nil
}

// fullText produces the detail-view body: the source page's extracted text,
// then the raw payload's own text, then a terminal pointer to the original.
func (s *ExternalArticleService) fullText(ctx context.Context, article *domain.ExternalArticle) string {
	if text := s.extractFromPage(ctx, article.URL); text != "" {
		return text
	}

	if len(article.Raw) > 0 {
		var raw any
		if err := json.Unmarshal(article.Raw, &raw); err == nil {
			if text := TextFromRaw(raw); text != "" {
				return text
			}
		}
	}
	if article.Content != "" {
		return article.Content
	}

	return fmt.Sprintf("Full text is not available for %q. Read the original article at %s.", article.Title, article.URL)
}

func (s *ExternalArticleService) extractFromPage(ctx context.Context, pageURL string) string {
	if pageURL == "" {
		return ""
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return ""
	}
	req.Header.Set("User-Agent", s.cfg.News.UserAgent)

	resp, err := s.pageClient.Do(req)
	if err != nil {
		s.logger.Info("source page fetch failed", "url", pageURL, "error", err)
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		s.logger.Info("source page returned bad status", "url", pageURL, "status", resp.StatusCode)
		return ""
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return ""
	}

	return html_parser.ExtractArticleText(string(body), s.cfg.News.MaxParagraphs)
}

func (s *ExternalArticleService) persist(ctx context.Context, envelope externalEnvelope) {
	payload, err := json.Marshal(envelope)
	if err != nil {
		s.logger.Warn("failed to encode external article", "id", envelope.Article.ID, "error", err)
		return
	}
	if err := s.cache.Set(ctx, externalCacheKeyPrefix+envelope.Article.ID, payload, s.cfg.Cache.TTL); err != nil {
		s.logger.Warn("external article cache write failed", "id", envelope.Article.ID, "error", err)
	}
}
