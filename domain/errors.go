// Package domain holds the entities and sentinel errors of the news backend.
package domain

import "errors"

// Store errors
var (
	// ErrArticleNotFound indicates the requested local article does not exist
	ErrArticleNotFound = errors.New("article not found")

	// ErrCategoryNotFound indicates the requested category does not exist
	ErrCategoryNotFound = errors.New("category not found")

	// ErrExternalArticleNotFound indicates the external article identifier is
	// unknown or its cache entry has expired
	ErrExternalArticleNotFound = errors.New("external article not found")
)

// Cache errors
var (
	// ErrCacheMiss indicates the key is absent from the cache store
	ErrCacheMiss = errors.New("cache miss")
)

// Weather errors
var (
	// ErrMissingAPIKey indicates required provider configuration is absent
	ErrMissingAPIKey = errors.New("weather provider API key is not configured")

	// ErrWeatherUnavailable indicates the weather provider request failed at
	// the network layer or returned a non-success status
	ErrWeatherUnavailable = errors.New("weather provider unavailable")

	// ErrInvalidCoordinates indicates latitude/longitude are out of range
	ErrInvalidCoordinates = errors.New("invalid coordinates")
)
