package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/clinigrid/clinigrid/pkg/pivot"
)

// =============================================================================
// Artifact Names - Stable Download Filenames
// =============================================================================

// SpreadsheetName returns the filename for a spreadsheet export, e.g.
// "patient_042_symptom_2024-03-01.xlsx". The date is the export date, so
// repeated exports of the same pivot on different days stay distinguishable.
func SpreadsheetName(subject string, category pivot.Category, t time.Time) string {
	return fmt.Sprintf("%s_%s_%s.xlsx",
		sanitizeFileLabel(subject), sanitizeFileLabel(string(category)), t.Format("2006-01-02"))
}

// DocumentName returns the filename for a paginated PDF export, e.g.
// "patient_042_symptom_visualization.pdf".
func DocumentName(subject string, category pivot.Category) string {
	return fmt.Sprintf("%s_%s_visualization.pdf",
		sanitizeFileLabel(subject), sanitizeFileLabel(string(category)))
}

// ImageName returns the filename for a chart image export, e.g.
// "patient_042_symptom.png".
func ImageName(subject string, category pivot.Category) string {
	return fmt.Sprintf("%s_%s.png", sanitizeFileLabel(subject), sanitizeFileLabel(string(category)))
}

// WebName returns the filename for an interactive HTML export, e.g.
// "patient_042_symptom.html".
func WebName(subject string, category pivot.Category) string {
	return fmt.Sprintf("%s_%s.html", sanitizeFileLabel(subject), sanitizeFileLabel(string(category)))
}

// ArtifactName returns the download filename for an artifact in the given
// format. The document formats use their canonical names; vector and model
// formats share the image stem with their own extension.
func ArtifactName(format, subject string, category pivot.Category, t time.Time) string {
	switch format {
	case "xlsx":
		return SpreadsheetName(subject, category, t)
	case "pdf":
		return DocumentName(subject, category)
	case "png":
		return ImageName(subject, category)
	case "html":
		return WebName(subject, category)
	default:
		return fmt.Sprintf("%s_%s.%s",
			sanitizeFileLabel(subject), sanitizeFileLabel(string(category)), format)
	}
}

// sanitizeFileLabel lowercases a label and replaces every run of characters
// outside [a-z0-9] with a single underscore. Empty results become "unknown"
// so a blank subject never produces filenames like "_symptom.png".
func sanitizeFileLabel(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	pendingSep := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
		default:
			pendingSep = true
		}
	}
	if b.Len() == 0 {
		return "unknown"
	}
	return b.String()
}

// sanitizeSheetName strips the characters Excel forbids in worksheet names
// and clamps the result to the 31-character sheet name limit.
func sanitizeSheetName(s string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return -1
		}
		return r
	}, s)
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		cleaned = "Export"
	}
	if len(cleaned) > 31 {
		cleaned = strings.TrimSpace(cleaned[:31])
	}
	return cleaned
}
