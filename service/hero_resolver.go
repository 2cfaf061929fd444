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
	"strings"

	"github.com/mmcdole/gofeed"

	"github.com/hshubham24beit-oss/news-website/config"
	"github.com/hshubham24beit-oss/news-website/domain"
	"github.com/hshubham24beit-oss/news-website/repository"
)

const heroCacheKey = "news:hero:today"

// HeroResolverService fetches today's external hero: primary provider
// first, RSS fallback second, with the resolved hero cached for the
// configured TTL. Exhausting every source yields (nil, nil), never an
// error, so the caller can degrade to a local hero.
type HeroResolverService struct {
	cfg        *config.Config
	cache      repository.Cache
	registry   ExternalArticleRegistry
	httpClient *http.Client
	logger     *slog.Logger
}

func NewHeroResolverService(
	cfg *config.Config,
	cache repository.Cache,
	registry ExternalArticleRegistry,
	logger *slog.Logger,
) *HeroResolverService {
	return &HeroResolverService{
		cfg:        cfg,
		cache:      cache,
		registry:   registry,
		httpClient: &http.Client{Timeout: cfg.News.FetchTimeout},
		logger:     logger,
	}
}

func (s *HeroResolverService) ResolveHero(ctx context.Context) (*domain.ExternalArticle, error) {
	if cached, err := s.cache.Get(ctx, heroCacheKey); err == nil {
		var article domain.ExternalArticle
		if err := json.Unmarshal(cached, &article); err == nil {
			return &article, nil
		}
		s.logger.Warn("discarding undecodable hero cache entry", "key", heroCacheKey)
	} else if !errors.Is(err, domain.ErrCacheMiss) {
		s.logger.Warn("hero cache read failed", "error", err)
	}

	article := s.fetchPrimary(ctx)
	if article == nil {
		article = s.fetchRSS(ctx)
	}
	if article == nil {
		return nil, nil
	}

	article = s.registry.Register(ctx, article)

	if payload, err := json.Marshal(article); err == nil {
		if err := s.cache.Set(ctx, heroCacheKey, payload, s.cfg.Cache.TTL); err != nil {
			s.logger.Warn("hero cache write failed", "error", err)
		}
	}

	return article, nil
}

// fetchPrimary queries the news API. Authentication is attempted with the
// x-api-key header first; if that request errors or returns a non-2xx
// status, one retry is made with the key as the api-key query parameter.
func (s *HeroResolverService) fetchPrimary(ctx context.Context) *domain.ExternalArticle {
	if s.cfg.News.ProviderURL == "" {
		return nil
	}

	body, err := s.fetchPrimaryWithHeader(ctx)
	if err != nil {
		s.logger.Info("primary provider header auth failed, retrying with query param", "error", err)
		body, err = s.fetchPrimaryWithQueryParam(ctx)
	}
	if err != nil {
		s.logger.Warn("primary news provider unavailable", "error", err)
		return nil
	}

	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		s.logger.Warn("primary provider returned undecodable payload", "error", err)
		return nil
	}

	obj, ok := FirstArticle(payload)
	if !ok {
		s.logger.Warn("no article found in primary provider payload")
		return nil
	}

	article := NormalizeArticle(obj)
	if article.Title == "" && article.URL == "" {
		s.logger.Warn("primary provider article missing both title and url")
		return nil
	}
	return article
}

func (s *HeroResolverService) fetchPrimaryWithHeader(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.News.ProviderURL, nil)
	if err != nil {
		return nil, err
	}
	if s.cfg.News.APIKey != "" {
		req.Header.Set("x-api-key", s.cfg.News.APIKey)
	}
	return s.doNewsRequest(req)
}

func (s *HeroResolverService) fetchPrimaryWithQueryParam(ctx context.Context) ([]byte, error) {
	u, err := url.Parse(s.cfg.News.ProviderURL)
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Set("api-key", s.cfg.News.APIKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	return s.doNewsRequest(req)
}

func (s *HeroResolverService) doNewsRequest(req *http.Request) ([]byte, error) {
	req.Header.Set("User-Agent", s.cfg.News.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, req.URL.Host)
	}
	return io.ReadAll(io.LimitReader(resp.Body, 4<<20))
}

// fetchRSS pulls the first item from the fixed fallback feed.
func (s *HeroResolverService) fetchRSS(ctx context.Context) *domain.ExternalArticle {
	if s.cfg.News.RSSFallbackURL == "" {
		return nil
	}

	fp := gofeed.NewParser()
	fp.Client = s.httpClient
	fp.UserAgent = s.cfg.News.UserAgent

	feed, err := fp.ParseURLWithContext(s.cfg.News.RSSFallbackURL, ctx)
	if err != nil {
		s.logger.Info("feed parser failed, scanning raw feed", "error", err)
		return s.fetchRSSRaw(ctx)
	}
	if len(feed.Items) == 0 {
		s.logger.Warn("rss fallback feed has no items", "url", s.cfg.News.RSSFallbackURL)
		return nil
	}

	sourceName := strings.TrimSpace(feed.Title)
	if sourceName == "" {
		sourceName = "RSS"
	}
	return ArticleFromFeedItem(feed.Items[0], sourceName)
}

// fetchRSSRaw is the last-ditch path for feeds gofeed rejects: fetch the
// document and token-scan the first <item>.
func (s *HeroResolverService) fetchRSSRaw(ctx context.Context) *domain.ExternalArticle {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.News.RSSFallbackURL, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", s.cfg.News.UserAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.Warn("rss fallback unavailable", "error", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		s.logger.Warn("rss fallback returned bad status", "status", resp.StatusCode)
		return nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil
	}

	article := firstItemFallback(body)
	if article == nil {
		s.logger.Warn("no usable item in raw rss fallback")
	}
	return article
}
