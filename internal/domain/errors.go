package domain

import "errors"

var (
	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrNotConfigured is returned when the inference provider credential is missing
	ErrNotConfigured = errors.New("enrichment service is not configured")

	// ErrInferenceFailure is returned when the inference provider request fails
	ErrInferenceFailure = errors.New("inference provider request failed")

	// ErrMalformedResponse is returned when the provider answered but its
	// payload did not contain a valid JSON array of products
	ErrMalformedResponse = errors.New("malformed AI response")

	// ErrNotebookNotFound is returned when a catalog entry does not exist
	ErrNotebookNotFound = errors.New("notebook not found")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)
