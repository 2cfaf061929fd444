package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hshubham24beit-oss/news-website/config"
	"github.com/hshubham24beit-oss/news-website/domain"
	"github.com/hshubham24beit-oss/news-website/repository"
)

func TestExternalID(t *testing.T) {
	id := ExternalID("http://example.com/story")

	assert.Len(t, id, 12)
	assert.Equal(t, id, ExternalID("http://example.com/story"), "same URL must map to the same ID")
	assert.NotEqual(t, id, ExternalID("http://example.com/other"))
	assert.Equal(t, ExternalID("no-url"), ExternalID(""), "empty URL uses the placeholder")
}

func newRegistry(cfg *config.Config) (*ExternalArticleService, repository.Cache) {
	cache := repository.NewMemoryCache()
	return NewExternalArticleService(cfg, cache, testLogger()), cache
}

func TestRegisterAndResolve(t *testing.T) {
	longParagraph := strings.Repeat("Body text of the original story. ", 10)
	var pageFetches atomic.Int32
	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pageFetches.Add(1)
		w.Write([]byte(`<html><body><article><p>` + longParagraph + `</p></article></body></html>`))
	}))
	defer page.Close()

	svc, _ := newRegistry(newsConfig("", ""))

	registered := svc.Register(context.Background(), &domain.ExternalArticle{
		Title: "Story",
		URL:   page.URL,
	})
	require.Equal(t, ExternalID(page.URL), registered.ID)
	require.Equal(t, "/v1/articles/external/"+registered.ID, registered.InternalURL)

	resolved, err := svc.Resolve(context.Background(), registered.ID)
	require.NoError(t, err)
	assert.Equal(t, "Story", resolved.Title)
	assert.Equal(t, strings.TrimSpace(longParagraph), resolved.FullText)
	assert.Equal(t, int32(1), pageFetches.Load())

	// Second resolve reuses the cached extraction.
	again, err := svc.Resolve(context.Background(), registered.ID)
	require.NoError(t, err)
	assert.Equal(t, resolved.FullText, again.FullText)
	assert.Equal(t, int32(1), pageFetches.Load())
}

func TestResolve_UnknownID(t *testing.T) {
	svc, _ := newRegistry(newsConfig("", ""))

	_, err := svc.Resolve(context.Background(), "feedcafe0000")
	assert.ErrorIs(t, err, domain.ErrExternalArticleNotFound)
}

func TestResolve_ExpiredEntry(t *testing.T) {
	cfg := newsConfig("", "")
	cfg.Cache.TTL = time.Nanosecond
	svc, _ := newRegistry(cfg)

	registered := svc.Register(context.Background(), &domain.ExternalArticle{
		Title: "Gone",
		URL:   "http://example.com/gone",
	})

	time.Sleep(time.Millisecond)

	_, err := svc.Resolve(context.Background(), registered.ID)
	assert.ErrorIs(t, err, domain.ErrExternalArticleNotFound)
}

func TestResolve_PageDownFallsBackToRaw(t *testing.T) {
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer down.Close()

	svc, _ := newRegistry(newsConfig("", ""))

	registered := svc.Register(context.Background(), &domain.ExternalArticle{
		Title: "Story",
		URL:   down.URL,
		Raw:   []byte(`{"content": "<p>raw provider text</p>"}`),
	})

	resolved, err := svc.Resolve(context.Background(), registered.ID)
	require.NoError(t, err)
	assert.Equal(t, "raw provider text", resolved.FullText)
}

func TestResolve_TerminalFallbackMessage(t *testing.T) {
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer down.Close()

	svc, _ := newRegistry(newsConfig("", ""))

	registered := svc.Register(context.Background(), &domain.ExternalArticle{
		Title: "Unreachable Story",
		URL:   down.URL,
	})

	resolved, err := svc.Resolve(context.Background(), registered.ID)
	require.NoError(t, err)
	assert.Contains(t, resolved.FullText, "Unreachable Story")
	assert.Contains(t, resolved.FullText, down.URL)
}
