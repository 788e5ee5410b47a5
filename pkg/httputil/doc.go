// Package httputil provides HTTP utilities for pivot source clients.
//
// # Overview
//
// This package provides infrastructure used by the remote pivot sources:
//
//   - [Cache]: File-based HTTP response caching
//   - [Retry]: Automatic retry with exponential backoff
//
// # Caching
//
// [Cache] stores HTTP responses in the filesystem (~/.cache/clinigrid/)
// with configurable TTL. This keeps repeated renders of the same subject
// from hammering the analytics endpoint.
//
// Usage:
//
//	cache, err := httputil.NewCache("", 15*time.Minute)
//	var payload pivotResponse
//	if ok, _ := cache.Get("patient-042:symptom", &payload); !ok {
//	    payload = fetchFromAPI()
//	    cache.Set("patient-042:symptom", payload)
//	}
//
// Cache keys should be namespaced by source to avoid collisions.
//
// # Retry
//
// [Retry] wraps HTTP requests with automatic retry for transient failures:
//
//   - Network errors
//   - 5xx server errors
//   - 429 rate limit responses
//
// It uses exponential backoff to avoid hammering a struggling endpoint:
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    return fetchPivot(ctx, ref)
//	})
//
// # Configuration
//
// Default settings are suitable for most use cases:
//
//   - Cache directory: ~/.cache/clinigrid/
//   - Default TTL: 15 minutes
//   - Max retries: 3
//   - Base backoff: 1 second
//
// The cache can be cleared via `clinigrid cache clear` or by deleting
// the cache directory.
package httputil
