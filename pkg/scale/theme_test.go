package scale

import (
	"testing"

	"github.com/clinigrid/clinigrid/pkg/errors"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"default theme", "heat", "heat", false},
		{"case insensitive", "VIRIDIS", "viridis", false},
		{"surrounding whitespace", " ocean ", "ocean", false},
		{"slate", "slate", "slate", false},
		{"unknown", "neon", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			theme, err := Lookup(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Lookup(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidTheme) {
					t.Errorf("Lookup(%q) code = %v, want INVALID_THEME", tt.input, errors.GetCode(err))
				}
				return
			}
			if theme.Name != tt.want {
				t.Errorf("Lookup(%q).Name = %q, want %q", tt.input, theme.Name, tt.want)
			}
		})
	}
}

func TestNames(t *testing.T) {
	want := []string{"heat", "viridis", "ocean", "slate"}
	got := Names()
	if len(got) != len(want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestHex(t *testing.T) {
	tests := []struct {
		c    RGB
		want string
	}{
		{RGB{0xE3, 0x1A, 0x1C}, "#E31A1C"},
		{RGB{0x00, 0x00, 0x00}, "#000000"},
		{RGB{0xFF, 0xFF, 0xFF}, "#FFFFFF"},
		{RGB{0x08, 0x51, 0x9C}, "#08519C"},
	}
	for _, tt := range tests {
		if got := tt.c.Hex(); got != tt.want {
			t.Errorf("Hex(%+v) = %q, want %q", tt.c, got, tt.want)
		}
	}
}

func TestRGBA(t *testing.T) {
	c := RGB{0xFE, 0xB2, 0x4C}.RGBA()
	if c.R != 0xFE || c.G != 0xB2 || c.B != 0x4C || c.A != 0xFF {
		t.Errorf("RGBA() = %+v, want opaque FEB24C", c)
	}
}

func TestThemeColor(t *testing.T) {
	theme := ThemeHeat

	// Empty never takes a ramp color.
	if got := theme.Color(BucketEmpty); got != theme.Empty {
		t.Errorf("Color(BucketEmpty) = %v, want empty paint %v", got, theme.Empty)
	}

	if got := theme.Color(BucketLowest); got != theme.Ramp[0] {
		t.Errorf("Color(BucketLowest) = %v, want %v", got, theme.Ramp[0])
	}
	if got := theme.Color(BucketHighest); got != theme.Ramp[4] {
		t.Errorf("Color(BucketHighest) = %v, want %v", got, theme.Ramp[4])
	}

	// Out-of-range buckets fall back to the empty paint.
	if got := theme.Color(Bucket(42)); got != theme.Empty {
		t.Errorf("Color(42) = %v, want empty paint", got)
	}
}

func TestThemesDistinct(t *testing.T) {
	// Each theme paints the highest bucket differently; a swapped theme
	// must be visibly different, not a silent alias.
	seen := map[string]string{}
	for _, theme := range Themes() {
		hex := theme.Color(BucketHighest).Hex()
		if prev, dup := seen[hex]; dup {
			t.Errorf("themes %s and %s share highest color %s", prev, theme.Name, hex)
		}
		seen[hex] = theme.Name
	}
}
