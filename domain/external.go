package domain

import (
	"encoding/json"
)

// ExternalArticle is an article sourced from a third-party provider. It has
// no durable storage tier: it lives in the cache store under its derived
// short identifier and expires with the cache TTL.
type ExternalArticle struct {
	ID          string          `json:"external_id"`
	Title       string          `json:"title"`
	URL         string          `json:"url"`
	InternalURL string          `json:"internal_url"`
	ImageURL    string          `json:"image_url,omitempty"`
	PublishedAt string          `json:"published_at,omitempty"`
	SourceName  string          `json:"source_name,omitempty"`
	Content     string          `json:"content,omitempty"`
	FullText    string          `json:"full_text,omitempty"`
	Raw         json.RawMessage `json:"raw,omitempty"`
}
