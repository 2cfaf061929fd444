package service

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hshubham24beit-oss/news-website/config"
	"github.com/hshubham24beit-oss/news-website/repository"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newsConfig(providerURL, rssURL string) *config.Config {
	return &config.Config{
		Cache: config.CacheConfig{TTL: 5 * time.Minute},
		News: config.NewsConfig{
			ProviderURL:      providerURL,
			APIKey:           "test-key",
			RSSFallbackURL:   rssURL,
			FetchTimeout:     2 * time.Second,
			PageFetchTimeout: 2 * time.Second,
			MaxParagraphs:    40,
			UserAgent:        "test-agent",
		},
	}
}

func newHeroService(cfg *config.Config, cache repository.Cache) *HeroResolverService {
	registry := NewExternalArticleService(cfg, cache, testLogger())
	return NewHeroResolverService(cfg, cache, registry, testLogger())
}

const clusterPayload = `{"top_news":[{"news":[{"title":"A","url":"http://x/1","image":"http://x/1.jpg"}]}]}`

func TestResolveHero_PrimaryClusterShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		w.Write([]byte(clusterPayload))
	}))
	defer server.Close()

	svc := newHeroService(newsConfig(server.URL, ""), repository.NewMemoryCache())

	article, err := svc.ResolveHero(context.Background())
	require.NoError(t, err)
	require.NotNil(t, article)

	assert.Equal(t, "A", article.Title)
	assert.Equal(t, "http://x/1", article.URL)
	assert.Equal(t, "http://x/1.jpg", article.ImageURL)
	assert.Equal(t, ExternalID("http://x/1"), article.ID)
	assert.Equal(t, "/v1/articles/external/"+article.ID, article.InternalURL)
}

func TestResolveHero_HeaderThenQueryParamAuth(t *testing.T) {
	var headerAttempts, queryAttempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("api-key") == "test-key" {
			queryAttempts.Add(1)
			w.Write([]byte(clusterPayload))
			return
		}
		headerAttempts.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	svc := newHeroService(newsConfig(server.URL, ""), repository.NewMemoryCache())

	article, err := svc.ResolveHero(context.Background())
	require.NoError(t, err)
	require.NotNil(t, article)
	assert.Equal(t, int32(1), headerAttempts.Load())
	assert.Equal(t, int32(1), queryAttempts.Load())
}

const rssPayload = `<?xml version="1.0"?>
<rss version="2.0">
<channel>
  <title>Example News Feed</title>
  <item>
    <title>Feed Headline</title>
    <link>http://example.com/feed-story</link>
    <description>Feed summary.</description>
    <pubDate>Sun, 30 Aug 2026 08:00:00 GMT</pubDate>
    <enclosure url="http://example.com/feed.jpg" type="image/jpeg" length="1"/>
  </item>
</channel>
</rss>`

func TestResolveHero_RSSFallback(t *testing.T) {
	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer primary.Close()

	rss := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(rssPayload))
	}))
	defer rss.Close()

	svc := newHeroService(newsConfig(primary.URL, rss.URL), repository.NewMemoryCache())

	article, err := svc.ResolveHero(context.Background())
	require.NoError(t, err)
	require.NotNil(t, article)

	assert.Equal(t, "Feed Headline", article.Title)
	assert.Equal(t, "http://example.com/feed-story", article.URL)
	assert.Equal(t, "http://example.com/feed.jpg", article.ImageURL)
	assert.Equal(t, "Example News Feed", article.SourceName)
	assert.Equal(t, "Feed summary.", article.Content)
	assert.NotEmpty(t, article.ID)
}

func TestResolveHero_AllSourcesDown(t *testing.T) {
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer down.Close()

	svc := newHeroService(newsConfig(down.URL, down.URL), repository.NewMemoryCache())

	article, err := svc.ResolveHero(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, article)
}

func TestResolveHero_CacheHitSkipsProviders(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.Write([]byte(clusterPayload))
	}))
	defer server.Close()

	svc := newHeroService(newsConfig(server.URL, ""), repository.NewMemoryCache())

	first, err := svc.ResolveHero(context.Background())
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := svc.ResolveHero(context.Background())
	require.NoError(t, err)
	require.NotNil(t, second)

	assert.Equal(t, int32(1), requests.Load())
	assert.Equal(t, first.ID, second.ID)
}
