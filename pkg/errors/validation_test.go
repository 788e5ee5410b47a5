package errors

import (
	"strings"
	"testing"
)

func TestValidateSubject(t *testing.T) {
	tests := []struct {
		name    string
		subject string
		wantErr bool
	}{
		{"valid simple", "patient-042", false},
		{"valid with spaces", "Ward 3 Cohort", false},
		{"valid mixed case", "Smith_J", false},
		{"empty", "", true},
		{"too long", strings.Repeat("a", 129), true},
		{"control character", "patient\x01", true},
		{"null byte", "patient\x00x", true},
		{"path traversal", "../etc", true},
		{"forward slash", "a/b", true},
		{"backslash", "a\\b", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSubject(tt.subject)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSubject(%q) error = %v, wantErr %v", tt.subject, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidSubject) {
				t.Errorf("ValidateSubject(%q) code = %v, want %v", tt.subject, GetCode(err), ErrCodeInvalidSubject)
			}
		})
	}
}

func TestValidateFilename(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		wantErr  bool
	}{
		{"valid xlsx", "patient-042_symptom_2024-01-01.xlsx", false},
		{"valid pdf", "patient-042_symptom_visualization.pdf", false},
		{"empty", "", true},
		{"path separator", "dir/file.xlsx", true},
		{"backslash", "dir\\file.xlsx", true},
		{"hidden file", ".hidden", true},
		{"control character", "file\x07.xlsx", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFilename(tt.filename)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFilename(%q) error = %v, wantErr %v", tt.filename, err, tt.wantErr)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"valid http", "http://localhost:8080/pivot", false},
		{"valid https", "https://analytics.example.com/pivot", false},
		{"empty", "", true},
		{"no scheme", "analytics.example.com", true},
		{"file scheme", "file:///etc/passwd", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}
