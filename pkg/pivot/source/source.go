package source

import (
	"context"
	"time"

	"github.com/clinigrid/clinigrid/pkg/errors"
	"github.com/clinigrid/clinigrid/pkg/observability"
	"github.com/clinigrid/clinigrid/pkg/pivot"
)

// Ref identifies one pivot: a subject and a data category.
type Ref struct {
	Subject  string
	Category pivot.Category
}

// Validate checks that the reference can be fetched.
func (r Ref) Validate() error {
	if err := errors.ValidateSubject(r.Subject); err != nil {
		return err
	}
	if _, err := pivot.ParseCategory(string(r.Category)); err != nil {
		return err
	}
	return nil
}

// Source fetches pivot matrices from a backing store.
//
// Implementations return verified matrices (Decode runs on every payload)
// and report missing pivots with a PIVOT_NOT_FOUND coded error, so the
// pipeline can distinguish "no such subject" from transport failures.
type Source interface {
	// Fetch retrieves and decodes the pivot for the given reference.
	Fetch(ctx context.Context, ref Ref) (*pivot.Matrix, error)

	// Name identifies the source kind ("file", "http", "mongo") for
	// cache keys and log lines.
	Name() string

	// Close releases any connections held by the source.
	Close(ctx context.Context) error
}

// observeFetch wraps the I/O portion of a source fetch with source hook
// events. Callers run their cache checks before entering, so hooks only
// fire for fetches that actually reach the backing store.
func observeFetch(ctx context.Context, name string, ref Ref, fetch func() (*pivot.Matrix, error)) (*pivot.Matrix, error) {
	hooks := observability.Source()
	hooks.OnRequest(ctx, name, ref.Subject, string(ref.Category))
	start := time.Now()
	m, err := fetch()
	if err != nil {
		hooks.OnError(ctx, name, ref.Subject, string(ref.Category), err)
		return nil, err
	}
	hooks.OnResponse(ctx, name, ref.Subject, string(ref.Category), time.Since(start))
	return m, nil
}
