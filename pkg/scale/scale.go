// Package scale maps raw occurrence counts to discrete color buckets and
// continuous visual sizes.
//
// One Engine value is shared by the on-screen renderers and every export
// path. That sharing is the point: when spreadsheet fills and screen cells
// compute thresholds independently, their colors drift apart the first
// time one side is tuned. Bucket assignment depends only on
// (value, maxValue) and the chosen curve, never on the theme; themes only
// decide how a bucket is painted.
package scale

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/clinigrid/clinigrid/pkg/errors"
)

// =============================================================================
// Buckets
// =============================================================================

// Bucket is a discrete intensity level. BucketEmpty is reserved for zero
// values and is never painted with a ramp color. The remaining five levels
// order by severity, which keeps bucket comparisons meaningful.
type Bucket int

// Severity-ordered buckets.
const (
	BucketEmpty Bucket = iota
	BucketLowest
	BucketLow
	BucketMedium
	BucketHigh
	BucketHighest
)

// String returns the lowercase bucket name.
func (b Bucket) String() string {
	switch b {
	case BucketEmpty:
		return "empty"
	case BucketLowest:
		return "lowest"
	case BucketLow:
		return "low"
	case BucketMedium:
		return "medium"
	case BucketHigh:
		return "high"
	case BucketHighest:
		return "highest"
	}
	return "unknown"
}

// ParseBucket resolves a bucket from its lowercase name.
func ParseBucket(s string) (Bucket, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "empty":
		return BucketEmpty, nil
	case "lowest":
		return BucketLowest, nil
	case "low":
		return BucketLow, nil
	case "medium":
		return BucketMedium, nil
	case "high":
		return BucketHigh, nil
	case "highest":
		return BucketHighest, nil
	}
	return BucketEmpty, errors.New(errors.ErrCodeInvalidInput, "unknown bucket %q", s)
}

// MarshalJSON encodes the bucket as its name so render models stay
// readable in API responses and cached artifacts.
func (b Bucket) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.String())
}

// UnmarshalJSON decodes a bucket name.
func (b *Bucket) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseBucket(s)
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// Bucket thresholds applied to the curve output.
const (
	thresholdHighest = 0.80
	thresholdHigh    = 0.60
	thresholdMedium  = 0.40
	thresholdLow     = 0.20
)

// =============================================================================
// Curves
// =============================================================================

// Curve selects how the value/max ratio is shaped before thresholding.
type Curve string

// Supported curves.
const (
	// CurveLinear thresholds the plain ratio value/max. This is the
	// default and matches the documented bucket expectations (3 of 5 is
	// high, 1 of 5 is low).
	CurveLinear Curve = "linear"

	// CurveLog thresholds max(n, log10(1+9n)), compressing toward the
	// high end so a single outlier maximum does not collapse every other
	// cell into the lowest bucket. Opt-in for heavily skewed matrices.
	CurveLog Curve = "log"
)

// ValidCurves maps curve names for validation.
var ValidCurves = map[Curve]bool{
	CurveLinear: true,
	CurveLog:    true,
}

// =============================================================================
// Engine
// =============================================================================

// DotRange bounds the continuous size mapping for bubble marks.
type DotRange struct {
	Min  float64 // smallest painted diameter, keeps low counts visible
	Max  float64 // largest painted diameter
	Gain float64 // growth factor applied to ln(1+value)
}

// Default dot sizing.
const (
	DefaultDotMin  = 4.0
	DefaultDotMax  = 24.0
	DefaultDotGain = 4.0
)

// Engine is the shared scaling model: a theme, a curve, and a dot range.
// The zero value is not usable; construct with Default or New.
type Engine struct {
	Theme Theme
	Curve Curve
	Dot   DotRange
}

// Default returns an Engine with the heat theme, linear curve, and
// default dot range.
func Default() Engine {
	return Engine{Theme: ThemeHeat, Curve: CurveLinear, Dot: DefaultDotRange()}
}

// DefaultDotRange returns the standard dot sizing bounds.
func DefaultDotRange() DotRange {
	return DotRange{Min: DefaultDotMin, Max: DefaultDotMax, Gain: DefaultDotGain}
}

// New returns an Engine with the given theme and curve and default dot
// sizing.
func New(theme Theme, curve Curve) Engine {
	return Engine{Theme: theme, Curve: curve, Dot: DefaultDotRange()}
}

// Bucket assigns the discrete intensity level for a cell value against
// the matrix-wide maximum.
//
// Zero always maps to BucketEmpty regardless of the maximum: an empty
// cell is rendered distinctly (transparent or background), never painted
// with a ramp color. maxValue is clamped to at least 1 so an all-zero
// matrix cannot divide by zero.
func (e Engine) Bucket(value, maxValue int) Bucket {
	if value <= 0 {
		return BucketEmpty
	}
	if maxValue < 1 {
		maxValue = 1
	}

	n := float64(value) / float64(maxValue)
	if n > 1 {
		n = 1
	}

	effective := n
	if e.Curve == CurveLog {
		logScaled := math.Log10(1 + 9*n)
		effective = math.Max(n, logScaled)
	}

	switch {
	case effective >= thresholdHighest:
		return BucketHighest
	case effective >= thresholdHigh:
		return BucketHigh
	case effective >= thresholdMedium:
		return BucketMedium
	case effective >= thresholdLow:
		return BucketLow
	}
	return BucketLowest
}

// DotSize maps a raw count to a painted diameter in pixels:
// clamp(Min, Max, Min + Gain*ln(1+value)).
//
// The mapping is monotonic and logarithmic, so doubling the count does not
// double the diameter, and bounded below by Dot.Min so single occurrences
// stay visible and clickable. Zero returns 0: no mark is drawn at all.
func (e Engine) DotSize(value int) float64 {
	if value <= 0 {
		return 0
	}

	d := e.Dot
	if d.Min <= 0 {
		d.Min = DefaultDotMin
	}
	if d.Max <= d.Min {
		d.Max = DefaultDotMax
	}
	if d.Gain <= 0 {
		d.Gain = DefaultDotGain
	}

	size := d.Min + d.Gain*math.Log1p(float64(value))
	if size > d.Max {
		return d.Max
	}
	return size
}

// Color returns the theme paint for a bucket. BucketEmpty yields the
// theme's empty color (the background fill for spreadsheet cells and
// heatmap grids).
func (e Engine) Color(b Bucket) RGB {
	return e.Theme.Color(b)
}
