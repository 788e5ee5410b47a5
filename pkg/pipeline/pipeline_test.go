package pipeline

import (
	"testing"
	"time"

	"github.com/clinigrid/clinigrid/pkg/errors"
	"github.com/clinigrid/clinigrid/pkg/export"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"xlsx", false},
		{"pdf", false},
		{"png", false},
		{"html", false},
		{"svg", false},
		{"dot", false},
		{"json", false},
		{"invalid", true},
		{"XLSX", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"xlsx", "pdf"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"xlsx", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}
	if err := ValidateFormats([]string{"xlsx", "invalid"}); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Error("Invalid format should carry INVALID_FORMAT")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateChart(t *testing.T) {
	tests := []struct {
		kind    string
		wantErr bool
	}{
		{"heatmap", false},
		{"bubble", false},
		{"scatter", false},
		{"table", false},
		{"network", false},
		{"invalid", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateChart(tt.kind)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateChart(%q) error = %v, wantErr %v", tt.kind, err, tt.wantErr)
		}
	}
}

func TestValidateTheme(t *testing.T) {
	tests := []struct {
		theme   string
		wantErr bool
	}{
		{"heat", false},
		{"viridis", false},
		{"ocean", false},
		{"slate", false},
		{"Heat", false}, // lookup is case-insensitive
		{"invalid", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateTheme(tt.theme)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateTheme(%q) error = %v, wantErr %v", tt.theme, err, tt.wantErr)
		}
	}
}

func TestValidateCurve(t *testing.T) {
	tests := []struct {
		curve   string
		wantErr bool
	}{
		{"linear", false},
		{"log", false},
		{"invalid", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateCurve(tt.curve)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateCurve(%q) error = %v, wantErr %v", tt.curve, err, tt.wantErr)
		}
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{
		Subject: "patient-042",
	}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Valid options should pass: %v", err)
	}

	// Check defaults were set
	if opts.Category != DefaultCategory {
		t.Errorf("Category should be %s, got %s", DefaultCategory, opts.Category)
	}
	if opts.Chart != DefaultChart {
		t.Errorf("Chart should be %s, got %s", DefaultChart, opts.Chart)
	}
	if opts.Theme != DefaultTheme {
		t.Errorf("Theme should be %s, got %s", DefaultTheme, opts.Theme)
	}
	if opts.Curve != DefaultCurve {
		t.Errorf("Curve should be %s, got %s", DefaultCurve, opts.Curve)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != DefaultFormat {
		t.Errorf("Formats should be [%s], got %v", DefaultFormat, opts.Formats)
	}
	if opts.Supersample != DefaultSupersample {
		t.Errorf("Supersample should be %d, got %d", DefaultSupersample, opts.Supersample)
	}
	if opts.PageWidth != export.DefaultPageWidth {
		t.Errorf("PageWidth should be %f, got %f", export.DefaultPageWidth, opts.PageWidth)
	}
	if opts.PageHeight != export.DefaultPageHeight {
		t.Errorf("PageHeight should be %f, got %f", export.DefaultPageHeight, opts.PageHeight)
	}
	if opts.GeneratedAt.IsZero() {
		t.Error("GeneratedAt should default to now")
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}
}

func TestOptionsValidateForFetch(t *testing.T) {
	// Missing subject
	opts := Options{}
	if err := opts.ValidateForFetch(); !errors.Is(err, errors.ErrCodeInvalidSubject) {
		t.Errorf("Missing subject should fail with INVALID_SUBJECT, got %v", err)
	}

	// Path traversal in subject
	opts = Options{Subject: "../etc/passwd"}
	if err := opts.ValidateForFetch(); err == nil {
		t.Error("Traversal subject should fail")
	}

	// Unknown category
	opts = Options{Subject: "patient-042", Category: "vitals"}
	if err := opts.ValidateForFetch(); !errors.Is(err, errors.ErrCodeInvalidCategory) {
		t.Errorf("Unknown category should fail with INVALID_CATEGORY, got %v", err)
	}

	// Aliases normalize so cache keys stay canonical
	for alias, want := range map[string]string{
		"Symptoms": "symptom",
		"dx":       "diagnosis",
		"HRSN":     "hrsn",
	} {
		opts = Options{Subject: "patient-042", Category: alias}
		if err := opts.ValidateForFetch(); err != nil {
			t.Errorf("Alias %q should pass: %v", alias, err)
		}
		if opts.Category != want {
			t.Errorf("Alias %q should normalize to %q, got %q", alias, want, opts.Category)
		}
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{
		Subject:     "patient-042",
		GeneratedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	// First call
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}

	originalChart := opts.Chart
	originalTheme := opts.Theme
	originalGeneratedAt := opts.GeneratedAt

	// Second call should be idempotent
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}

	if opts.Chart != originalChart {
		t.Error("Chart changed on second call")
	}
	if opts.Theme != originalTheme {
		t.Error("Theme changed on second call")
	}
	if !opts.GeneratedAt.Equal(originalGeneratedAt) {
		t.Error("GeneratedAt changed on second call")
	}
}

func TestValidateForModelRejectsBadValues(t *testing.T) {
	opts := Options{Chart: "sparkline"}
	if err := opts.ValidateForModel(); !errors.Is(err, errors.ErrCodeInvalidChart) {
		t.Errorf("Bad chart should fail with INVALID_CHART, got %v", err)
	}

	opts = Options{Theme: "neon"}
	if err := opts.ValidateForModel(); !errors.Is(err, errors.ErrCodeInvalidTheme) {
		t.Errorf("Bad theme should fail with INVALID_THEME, got %v", err)
	}

	opts = Options{Curve: "cubic"}
	if err := opts.ValidateForModel(); err == nil {
		t.Error("Bad curve should fail")
	}
}

func TestSetRenderDefaults(t *testing.T) {
	opts := Options{}
	opts.SetRenderDefaults()

	if len(opts.Formats) != 1 || opts.Formats[0] != DefaultFormat {
		t.Errorf("Formats should be [%s], got %v", DefaultFormat, opts.Formats)
	}
	if opts.Supersample != DefaultSupersample {
		t.Errorf("Supersample should be %d, got %d", DefaultSupersample, opts.Supersample)
	}
	if opts.PageWidth != export.DefaultPageWidth {
		t.Errorf("PageWidth should be %f, got %f", export.DefaultPageWidth, opts.PageWidth)
	}
}

func TestOptionsKeyOpts(t *testing.T) {
	opts := Options{
		Subject:     "patient-042",
		Category:    "symptom",
		Chart:       "bubble",
		Theme:       "viridis",
		Curve:       "log",
		AllRows:     true,
		Supersample: 2,
		PageWidth:   800,
		PageHeight:  600,
	}

	pk := opts.PivotKeyOpts()
	if pk.Category != "symptom" {
		t.Errorf("PivotKeyOpts category = %q", pk.Category)
	}

	mk := opts.ModelKeyOpts()
	if mk.Chart != "bubble" || mk.Theme != "viridis" || mk.Curve != "log" || !mk.AllRows {
		t.Errorf("ModelKeyOpts = %+v", mk)
	}

	ak := opts.ArtifactKeyOpts(FormatPDF)
	if ak.Format != FormatPDF {
		t.Errorf("ArtifactKeyOpts format = %q", ak.Format)
	}
	if ak.Supersample != 2 || ak.PageWidth != 800 || ak.PageHeight != 600 {
		t.Errorf("ArtifactKeyOpts geometry = %+v", ak)
	}
	if opts.ArtifactKeyOpts(FormatXLSX).Format == ak.Format {
		t.Error("Formats should produce distinct key opts")
	}
}

func TestOptionsEngine(t *testing.T) {
	opts := Options{Theme: "slate", Curve: "log"}
	eng := opts.Engine()
	if eng.Theme.Name != "slate" {
		t.Errorf("Engine theme = %q, want slate", eng.Theme.Name)
	}
	if string(eng.Curve) != "log" {
		t.Errorf("Engine curve = %q, want log", eng.Curve)
	}

	// Unknown themes fall back to the default engine rather than panicking
	opts = Options{Theme: "unknown"}
	if eng := opts.Engine(); eng.Theme.Name != "heat" {
		t.Errorf("Fallback engine theme = %q, want heat", eng.Theme.Name)
	}
}
