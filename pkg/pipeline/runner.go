package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/clinigrid/clinigrid/pkg/cache"
	"github.com/clinigrid/clinigrid/pkg/chart"
	"github.com/clinigrid/clinigrid/pkg/errors"
	"github.com/clinigrid/clinigrid/pkg/export"
	"github.com/clinigrid/clinigrid/pkg/observability"
	"github.com/clinigrid/clinigrid/pkg/pivot"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// MatrixHash computes the content hash used in model and artifact cache
// keys. Two matrices with the same subject, category, labels, and cells
// hash identically regardless of where they were fetched from.
func MatrixHash(m *pivot.Matrix) string {
	data, err := json.Marshal(m)
	if err != nil {
		return ""
	}
	return cache.Hash(data)
}

// Execute runs the complete fetch → project → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	hooks := observability.Pipeline()
	result := &Result{
		RunID:     uuid.NewString(),
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Fetch
	fetchStart := time.Now()
	hooks.OnFetchStart(ctx, sourceName(opts), opts.Subject)
	m, pivotHit, err := r.FetchWithCacheInfo(ctx, opts)
	rowCount := 0
	if m != nil {
		rowCount = len(m.Rows)
	}
	hooks.OnFetchComplete(ctx, sourceName(opts), opts.Subject, rowCount, time.Since(fetchStart), err)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	result.Matrix = m
	result.MatrixHash = MatrixHash(m)
	result.Stats.FetchTime = time.Since(fetchStart)
	result.Stats.RowCount = len(m.Rows)
	result.Stats.ColumnCount = len(m.Columns)
	result.CacheInfo.PivotHit = pivotHit

	r.Logger.Info("fetched pivot",
		"subject", m.Subject,
		"category", m.Category,
		"rows", len(m.Rows),
		"columns", len(m.Columns),
		"duration", result.Stats.FetchTime)

	// Stage 2: Project
	modelStart := time.Now()
	hooks.OnModelStart(ctx, opts.Chart, len(m.Rows))
	p, err := Project(m, opts)
	hooks.OnModelComplete(ctx, opts.Chart, time.Since(modelStart), err)
	if err != nil {
		return nil, fmt.Errorf("project: %w", err)
	}
	result.Projection = p
	result.Stats.ModelTime = time.Since(modelStart)
	result.Stats.RankedCount = len(p.Ranked())

	for _, w := range p.Warnings() {
		r.Logger.Warn(w)
	}
	r.Logger.Info("projected matrix",
		"chart", opts.Chart,
		"ranked", len(p.Ranked()),
		"max_value", p.MaxValue(),
		"duration", result.Stats.ModelTime)

	// Stage 3: Render
	renderStart := time.Now()
	hooks.OnRenderStart(ctx, opts.Formats)
	artifacts, artifactHits, err := r.RenderWithCacheInfo(ctx, result.MatrixHash, p, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(renderStart), err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.CacheInfo.ArtifactHits = artifactHits
	result.Stats.RenderTime = time.Since(renderStart)
	result.Stats.PageCount = export.Pages(p, opts.exportOptions())

	r.Logger.Info("rendered artifacts",
		"formats", opts.Formats,
		"pages", result.Stats.PageCount,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// FetchWithCacheInfo retrieves the pivot matrix with caching and returns cache hit info.
func (r *Runner) FetchWithCacheInfo(ctx context.Context, opts Options) (*pivot.Matrix, bool, error) {
	if err := opts.ValidateForFetch(); err != nil {
		return nil, false, err
	}
	if opts.Source == nil {
		return nil, false, errors.New(errors.ErrCodeInvalidInput, "no pivot source configured")
	}
	r.applyLogger(&opts)

	cacheKey := r.Keyer.PivotKey(opts.Source.Name(), opts.Subject, opts.PivotKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if m, err := pivot.Decode(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "pivot")
				return m, true, nil // Cache hit
			}
			// Corrupt entries fall through to a fresh fetch
		}
		observability.Cache().OnCacheMiss(ctx, "pivot")
	}

	// Fetch from the source
	m, err := Fetch(ctx, opts)
	if err != nil {
		return nil, false, err
	}

	// Cache the result. Refresh skips the read above, not this write: a
	// forced fetch still lands in the cache for the next run.
	if data, err := json.Marshal(m); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLPivot)
		observability.Cache().OnCacheSet(ctx, "pivot", len(data))
	}

	return m, false, nil // Cache miss
}

// Fetch is a convenience wrapper that calls FetchWithCacheInfo and discards the cache hit info.
func (r *Runner) Fetch(ctx context.Context, opts Options) (*pivot.Matrix, error) {
	m, _, err := r.FetchWithCacheInfo(ctx, opts)
	return m, err
}

// ModelWithCacheInfo returns the serialized chart model with caching and
// returns cache hit info. The model tier is shared between json artifacts
// and API model responses.
func (r *Runner) ModelWithCacheInfo(ctx context.Context, matrixHash string, p *chart.Projection, opts Options) ([]byte, bool, error) {
	if err := opts.ValidateForModel(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	cacheKey := r.Keyer.ModelKey(matrixHash, opts.ModelKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "model")
			return data, true, nil // Cache hit
		}
		observability.Cache().OnCacheMiss(ctx, "model")
	}

	data, err := MarshalModel(p.Model(opts.ChartKind()))
	if err != nil {
		return nil, false, err
	}

	_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLModel)
	observability.Cache().OnCacheSet(ctx, "model", len(data))

	return data, false, nil // Cache miss
}

// RenderWithCacheInfo generates artifacts with per-format caching and
// returns per-format cache hit info. Formats are cached independently, so
// adding pdf to a run that already cached xlsx only renders the pdf.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, matrixHash string, p *chart.Projection, opts Options) (map[string][]byte, map[string]bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, nil, err
	}
	r.applyLogger(&opts)

	artifacts := make(map[string][]byte, len(opts.Formats))
	hits := make(map[string]bool, len(opts.Formats))

	for _, format := range opts.Formats {
		// JSON artifacts are chart models and live in the model tier.
		if format == FormatJSON {
			data, hit, err := r.ModelWithCacheInfo(ctx, matrixHash, p, opts)
			if err != nil {
				return nil, nil, fmt.Errorf("render %s: %w", format, err)
			}
			artifacts[format] = data
			hits[format] = hit
			continue
		}

		cacheKey := r.Keyer.ArtifactKey(matrixHash, opts.ArtifactKeyOpts(format))

		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, "artifact")
				artifacts[format] = data
				hits[format] = true
				continue
			}
			observability.Cache().OnCacheMiss(ctx, "artifact")
		}

		data, err := RenderFormat(ctx, p, format, opts)
		if err != nil {
			return nil, nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
		hits[format] = false

		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return artifacts, hits, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, matrixHash string, p *chart.Projection, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, matrixHash, p, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// sourceName names the configured source for hooks and log lines.
func sourceName(opts Options) string {
	if opts.Source == nil {
		return ""
	}
	return opts.Source.Name()
}
