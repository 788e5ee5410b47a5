package cache

import (
	"context"
	"time"
)

// Default TTLs for the three cache tiers. Pivot data is clinical state that
// changes as encounters are recorded, so it expires quickly. Models and
// artifacts are keyed by content hash and only expire for housekeeping.
const (
	// TTLPivot bounds how stale a fetched pivot may be served.
	TTLPivot = 15 * time.Minute

	// TTLModel applies to serialized chart models.
	TTLModel = 24 * time.Hour

	// TTLArtifact applies to rendered export bytes (png, pdf, xlsx, ...).
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is the storage interface shared by the pipeline and server.
//
// Implementations store opaque byte payloads under string keys with a
// per-entry TTL. A TTL of 0 means the entry never expires. Get reports
// misses via the bool, not an error; errors are reserved for backend
// failures (I/O, network).
type Cache interface {
	// Get retrieves a value. Returns (data, true, nil) on a hit and
	// (nil, false, nil) on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL (0 = no expiration).
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// PivotKeyOpts captures the parameters that distinguish pivot fetches
// beyond subject and source.
type PivotKeyOpts struct {
	Category string `json:"category"`
}

// ModelKeyOpts captures the projection parameters baked into a serialized
// chart model.
type ModelKeyOpts struct {
	Chart   string `json:"chart"`
	Theme   string `json:"theme"`
	Curve   string `json:"curve"`
	AllRows bool   `json:"all_rows"`
}

// ArtifactKeyOpts captures everything that changes rendered bytes for the
// same matrix: format, scaling parameters, and page geometry.
type ArtifactKeyOpts struct {
	Format      string  `json:"format"`
	Chart       string  `json:"chart"`
	Theme       string  `json:"theme"`
	Curve       string  `json:"curve"`
	AllRows     bool    `json:"all_rows"`
	Supersample int     `json:"supersample"`
	PageWidth   float64 `json:"page_width"`
	PageHeight  float64 `json:"page_height"`
}

// Keyer generates cache keys for the data flowing through the engine.
//
// Keys form a hierarchy mirroring the pipeline: raw HTTP responses, decoded
// pivot matrices, serialized chart models, and rendered artifacts. Each
// tier is keyed by the content hash of the previous one plus the options
// that shaped the transformation, so a changed matrix invalidates exactly
// the models and artifacts derived from it.
type Keyer interface {
	// HTTPKey generates a key for raw HTTP response caching.
	HTTPKey(namespace, key string) string

	// PivotKey generates a key for a decoded pivot matrix fetched from
	// the named source for one subject.
	PivotKey(source, subject string, opts PivotKeyOpts) string

	// ModelKey generates a key for a serialized chart model derived from
	// the matrix with the given content hash.
	ModelKey(matrixHash string, opts ModelKeyOpts) string

	// ArtifactKey generates a key for rendered bytes derived from the
	// matrix with the given content hash.
	ArtifactKey(matrixHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard Keyer implementation. Keys embed a tier
// prefix and a SHA-256 hash of the identifying parts, so arbitrary subject
// names never leak filesystem- or redis-unsafe characters into keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// HTTPKey generates a key for HTTP response caching. The namespace keeps
// different sources from colliding on the same URL path.
func (k *DefaultKeyer) HTTPKey(namespace, key string) string {
	return "http:" + namespace + ":" + key
}

// PivotKey generates a key for pivot matrix caching.
func (k *DefaultKeyer) PivotKey(source, subject string, opts PivotKeyOpts) string {
	return hashKey("pivot", source, subject, opts)
}

// ModelKey generates a key for chart model caching.
func (k *DefaultKeyer) ModelKey(matrixHash string, opts ModelKeyOpts) string {
	return hashKey("model", matrixHash, opts)
}

// ArtifactKey generates a key for rendered artifact caching.
func (k *DefaultKeyer) ArtifactKey(matrixHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", matrixHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
