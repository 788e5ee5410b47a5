package scale

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/clinigrid/clinigrid/pkg/errors"
)

// =============================================================================
// Colors
// =============================================================================

// RGB is an opaque paint color.
type RGB struct {
	R, G, B uint8
}

// Hex returns the #RRGGBB form used by spreadsheet fills and HTML output.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// RGBA converts to the standard library color type for raster painting.
func (c RGB) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xFF}
}

// =============================================================================
// Themes
// =============================================================================

// Theme is a named five-color ramp plus the paint for empty cells. Themes
// are interchangeable at any time: swapping one never changes which bucket
// a cell lands in, only the paint applied to that bucket.
type Theme struct {
	Name  string
	Ramp  [5]RGB // lowest → highest
	Empty RGB
}

// Color returns the paint for a bucket.
func (t Theme) Color(b Bucket) RGB {
	if b <= BucketEmpty || b > BucketHighest {
		return t.Empty
	}
	return t.Ramp[b-1]
}

// Built-in themes.
var (
	// ThemeHeat is the default yellow-to-red clinical heatmap ramp.
	ThemeHeat = Theme{
		Name: "heat",
		Ramp: [5]RGB{
			{0xFF, 0xED, 0xA0},
			{0xFE, 0xD9, 0x76},
			{0xFE, 0xB2, 0x4C},
			{0xFD, 0x8D, 0x3C},
			{0xE3, 0x1A, 0x1C},
		},
		Empty: RGB{0xFF, 0xFF, 0xFF},
	}

	// ThemeViridis is the perceptually uniform ramp, dark to bright.
	ThemeViridis = Theme{
		Name: "viridis",
		Ramp: [5]RGB{
			{0x44, 0x01, 0x54},
			{0x3B, 0x52, 0x8B},
			{0x21, 0x91, 0x8C},
			{0x5E, 0xC9, 0x62},
			{0xFD, 0xE7, 0x25},
		},
		Empty: RGB{0xFF, 0xFF, 0xFF},
	}

	// ThemeOcean is a light-to-deep blue ramp.
	ThemeOcean = Theme{
		Name: "ocean",
		Ramp: [5]RGB{
			{0xEF, 0xF3, 0xFF},
			{0xBD, 0xD7, 0xE7},
			{0x6B, 0xAE, 0xD6},
			{0x31, 0x82, 0xBD},
			{0x08, 0x51, 0x9C},
		},
		Empty: RGB{0xFF, 0xFF, 0xFF},
	}

	// ThemeSlate is a grayscale ramp for monochrome printing.
	ThemeSlate = Theme{
		Name: "slate",
		Ramp: [5]RGB{
			{0xF0, 0xF0, 0xF0},
			{0xBD, 0xBD, 0xBD},
			{0x96, 0x96, 0x96},
			{0x63, 0x63, 0x63},
			{0x25, 0x25, 0x25},
		},
		Empty: RGB{0xFF, 0xFF, 0xFF},
	}
)

// builtinThemes holds the registry in display order.
var builtinThemes = []Theme{ThemeHeat, ThemeViridis, ThemeOcean, ThemeSlate}

// Themes returns the built-in themes in display order.
func Themes() []Theme {
	out := make([]Theme, len(builtinThemes))
	copy(out, builtinThemes)
	return out
}

// Names returns the built-in theme names in display order.
func Names() []string {
	names := make([]string, len(builtinThemes))
	for i, t := range builtinThemes {
		names[i] = t.Name
	}
	return names
}

// Lookup resolves a theme by name (case-insensitive).
func Lookup(name string) (Theme, error) {
	want := strings.ToLower(strings.TrimSpace(name))
	for _, t := range builtinThemes {
		if t.Name == want {
			return t, nil
		}
	}
	return Theme{}, errors.New(errors.ErrCodeInvalidTheme, "unknown theme %q (valid: %s)", name, strings.Join(Names(), ", "))
}
