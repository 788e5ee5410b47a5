package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/clinigrid/clinigrid/pkg/errors"
	"github.com/clinigrid/clinigrid/pkg/httputil"
	"github.com/clinigrid/clinigrid/pkg/pivot"
)

const httpTimeout = 10 * time.Second

// HTTPSource fetches pivots from the analytics endpoint:
// GET <base>/pivot?subject=<subject>&category=<category>.
//
// Responses are cached by (subject, category) in an optional file cache so
// repeated renders do not refetch, and transient failures (network errors,
// 5xx) are retried with exponential backoff. 404 maps to PIVOT_NOT_FOUND.
type HTTPSource struct {
	base    string
	http    *http.Client
	cache   *httputil.Cache
	headers map[string]string
}

// NewHTTPSource creates an HTTP source for the given base URL.
// Pass nil for cache to disable response caching, and nil for headers if
// no default headers (auth tokens, API keys) are needed.
func NewHTTPSource(base string, cache *httputil.Cache, headers map[string]string) (*HTTPSource, error) {
	if err := errors.ValidateURL(base); err != nil {
		return nil, err
	}
	if cache != nil {
		cache = cache.Namespace("http:")
	}
	return &HTTPSource{
		base:    strings.TrimRight(base, "/"),
		http:    &http.Client{Timeout: httpTimeout},
		cache:   cache,
		headers: headers,
	}, nil
}

// Name identifies the source kind.
func (s *HTTPSource) Name() string { return "http" }

// Fetch retrieves the pivot payload, consulting the response cache first.
func (s *HTTPSource) Fetch(ctx context.Context, ref Ref) (*pivot.Matrix, error) {
	if err := ref.Validate(); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%s:%s", ref.Subject, ref.Category)
	var raw []byte
	if s.cache != nil {
		if ok, _ := s.cache.Get(key, &raw); ok {
			return decodeFor(raw, ref)
		}
	}

	return observeFetch(ctx, s.Name(), ref, func() (*pivot.Matrix, error) {
		err := httputil.RetryWithBackoff(ctx, func() error {
			var fetchErr error
			raw, fetchErr = s.get(ctx, ref)
			return fetchErr
		})
		if err != nil {
			return nil, err
		}

		if s.cache != nil {
			_ = s.cache.Set(key, raw)
		}
		return decodeFor(raw, ref)
	})
}

// Close does nothing; the underlying http.Client needs no teardown.
func (s *HTTPSource) Close(ctx context.Context) error { return nil }

func (s *HTTPSource) get(ctx context.Context, ref Ref) ([]byte, error) {
	endpoint := fmt.Sprintf("%s/pivot?subject=%s&category=%s",
		s.base, url.QueryEscape(ref.Subject), url.QueryEscape(string(ref.Category)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "build pivot request")
	}
	for k, v := range s.headers {
		req.Header.Set(k, v)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, &httputil.RetryableError{
			Err: errors.Wrap(errors.ErrCodeNetwork, err, "fetch pivot for %s", ref.Subject),
		}
	}
	defer resp.Body.Close()

	if err := checkStatus(resp.StatusCode, ref); err != nil {
		return nil, err
	}
	return io.ReadAll(resp.Body)
}

// checkStatus maps HTTP status codes onto the engine's error codes.
// 5xx and 429 are wrapped as retryable so the backoff loop tries again.
func checkStatus(code int, ref Ref) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return errors.New(errors.ErrCodePivotNotFound,
			"no pivot for %s/%s", ref.Subject, ref.Category)
	case code == http.StatusTooManyRequests:
		return &httputil.RetryableError{
			Err: errors.New(errors.ErrCodeRateLimited, "pivot endpoint rate limited"),
		}
	case code >= 500:
		return &httputil.RetryableError{
			Err: errors.New(errors.ErrCodeNetwork, "pivot endpoint status %d", code),
		}
	default:
		return errors.New(errors.ErrCodeNetwork, "pivot endpoint status %d", code)
	}
}

func decodeFor(raw []byte, ref Ref) (*pivot.Matrix, error) {
	m, err := pivot.Decode(raw)
	if err != nil {
		return nil, err
	}
	fillRef(m, ref)
	return m, nil
}

// Ensure HTTPSource implements Source.
var _ Source = (*HTTPSource)(nil)
