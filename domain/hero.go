package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// HeroMode selects between a local and an external article for the featured
// "hero" slot.
type HeroMode string

const (
	// HeroModeExternalFirst prefers the external hero and overrides local
	// articles; local is only the fallback.
	HeroModeExternalFirst HeroMode = "external-first"
	// HeroModeLocalFirst prefers the newest local article and consults the
	// external providers only when no local article exists.
	HeroModeLocalFirst HeroMode = "local-first"
	// HeroModeLocalOnly never consults external providers.
	HeroModeLocalOnly HeroMode = "local-only"
)

// ParseHeroMode validates a configured hero mode string.
func ParseHeroMode(s string) (HeroMode, error) {
	switch HeroMode(s) {
	case HeroModeExternalFirst, HeroModeLocalFirst, HeroModeLocalOnly:
		return HeroMode(s), nil
	}
	return "", fmt.Errorf("unknown hero mode %q", s)
}

const excerptRunes = 200

// LocalHeroView is the rendering-boundary view of a local hero article.
type LocalHeroView struct {
	External    bool   `json:"external"`
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	InternalURL string `json:"internal_url"`
	ImageURL    string `json:"image_url,omitempty"`
	PublishedAt string `json:"published_at"`
	Category    string `json:"category"`
	Excerpt     string `json:"excerpt"`
}

// ExternalHeroView is the rendering-boundary view of an external hero.
type ExternalHeroView struct {
	External    bool            `json:"external"`
	ExternalID  string          `json:"external_id"`
	Title       string          `json:"title"`
	URL         string          `json:"url"`
	InternalURL string          `json:"internal_url"`
	ImageURL    string          `json:"image_url,omitempty"`
	PublishedAt string          `json:"published_at,omitempty"`
	SourceName  string          `json:"source_name,omitempty"`
	Content     string          `json:"content,omitempty"`
	Raw         json.RawMessage `json:"raw,omitempty"`
}

// NewLocalHeroView resolves a local article into the hero view once, at the
// rendering boundary.
func NewLocalHeroView(a *Article) LocalHeroView {
	return LocalHeroView{
		External:    false,
		ID:          a.ID,
		Title:       a.Title,
		InternalURL: fmt.Sprintf("/v1/articles/%d", a.ID),
		ImageURL:    a.ImageURL,
		PublishedAt: a.CreatedAt.Format(time.RFC3339),
		Category:    a.CategoryName,
		Excerpt:     excerpt(a.Content),
	}
}

// NewExternalHeroView resolves an external article into the hero view.
func NewExternalHeroView(a *ExternalArticle) ExternalHeroView {
	return ExternalHeroView{
		External:    true,
		ExternalID:  a.ID,
		Title:       a.Title,
		URL:         a.URL,
		InternalURL: a.InternalURL,
		ImageURL:    a.ImageURL,
		PublishedAt: a.PublishedAt,
		SourceName:  a.SourceName,
		Content:     a.Content,
		Raw:         a.Raw,
	}
}

func excerpt(content string) string {
	content = strings.TrimSpace(content)
	if utf8.RuneCountInString(content) <= excerptRunes {
		return content
	}
	runes := []rune(content)
	return strings.TrimSpace(string(runes[:excerptRunes])) + "…"
}
