package errors

import (
	"strings"
	"unicode"
)

// ValidateSubject validates a subject identifier (patient or population label).
// Subjects flow into cache keys, query parameters, and export file names, so
// the rules are intentionally conservative:
//   - No empty identifiers
//   - No control characters or null bytes
//   - No path separators or traversal sequences
//   - Maximum length of 128 characters
func ValidateSubject(subject string) error {
	if subject == "" {
		return New(ErrCodeInvalidSubject, "subject cannot be empty")
	}

	if len(subject) > 128 {
		return New(ErrCodeInvalidSubject, "subject too long (max 128 characters)")
	}

	for _, r := range subject {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidSubject, "subject contains invalid control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"/",    // Path separator
		"\\",   // Backslash (Windows path)
		"\x00", // Null byte
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(subject, pattern) {
			return New(ErrCodeInvalidSubject, "subject contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidateFilename validates an export filename for safety.
// It ensures the filename is a simple basename without path components.
func ValidateFilename(filename string) error {
	if filename == "" {
		return New(ErrCodeInvalidInput, "filename cannot be empty")
	}

	// Must be a simple filename, not a path
	if strings.ContainsAny(filename, "/\\") {
		return New(ErrCodeInvalidInput, "filename cannot contain path separators")
	}

	// No hidden files (starting with .)
	if strings.HasPrefix(filename, ".") {
		return New(ErrCodeInvalidInput, "filename cannot be a hidden file")
	}

	for _, r := range filename {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "filename contains invalid characters")
		}
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
