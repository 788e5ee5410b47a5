package pdf

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"testing"
	"time"
)

func buildSample() []byte {
	doc := NewDocument(Info{
		Title:   "Smith, Jane - Symptoms",
		Subject: "Smith, Jane",
		Created: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	})
	for i := 0; i < 2; i++ {
		page := NewPage(LetterHeight, LetterWidth)
		page.FillRect(36, 36, 100, 20, FromBytes(255, 80, 80))
		page.StrokeRect(36, 36, 100, 20, 0.5, Color{0.2, 0.2, 0.2})
		page.Line(36, 30, 136, 30, 1, Color{0, 0, 0})
		page.Circle(300, 300, 8, FromBytes(10, 120, 200))
		page.Text(36, 580, 12, Color{}, fmt.Sprintf("Page %d", i+1))
		page.TextCentered(396, 560, 10, Color{}, "centered")
		page.TextRight(756, 560, 10, Color{}, "right")
		doc.AddPage(page)
	}
	return doc.Bytes()
}

func TestDocumentStructure(t *testing.T) {
	data := buildSample()

	if !bytes.HasPrefix(data, []byte("%PDF-1.4\n")) {
		t.Fatalf("missing PDF header, got %q", data[:16])
	}
	if !bytes.HasSuffix(data, []byte("%%EOF\n")) {
		t.Fatalf("missing EOF marker")
	}
	for _, want := range []string{
		"/Type /Catalog",
		"/Count 2",
		"/BaseFont /Helvetica",
		"/Filter /FlateDecode",
		"/Producer (clinigrid)",
		"/CreationDate (D:20240301120000Z)",
	} {
		if !bytes.Contains(data, []byte(want)) {
			t.Errorf("output missing %q", want)
		}
	}
	if bytes.Contains(data, []byte("/ID")) {
		t.Errorf("trailer must not carry an /ID entry")
	}
}

func TestDocumentXrefOffsets(t *testing.T) {
	data := buildSample()

	idx := bytes.LastIndex(data, []byte("startxref\n"))
	if idx < 0 {
		t.Fatal("missing startxref")
	}
	rest := string(data[idx+len("startxref\n"):])
	xrefPos, err := strconv.Atoi(strings.TrimSpace(strings.TrimSuffix(rest, "%%EOF\n")))
	if err != nil {
		t.Fatalf("unparseable startxref offset: %v", err)
	}
	if !bytes.HasPrefix(data[xrefPos:], []byte("xref\n")) {
		t.Fatalf("startxref %d does not point at the xref table", xrefPos)
	}

	// Every in-use xref entry must point at the matching "N 0 obj" line.
	lines := strings.Split(string(data[xrefPos:]), "\n")
	for i, line := range lines[3:] { // skip "xref", "0 N", free entry
		if !strings.HasSuffix(line, "n ") {
			break
		}
		off, err := strconv.Atoi(strings.TrimSpace(strings.Split(line, " ")[0]))
		if err != nil {
			t.Fatalf("bad xref line %q: %v", line, err)
		}
		want := fmt.Sprintf("%d 0 obj\n", i+1)
		if !bytes.HasPrefix(data[off:], []byte(want)) {
			t.Errorf("xref entry %d points at %q, want %q", i+1, data[off:off+10], want)
		}
	}
}

func TestDocumentDeterministic(t *testing.T) {
	if !bytes.Equal(buildSample(), buildSample()) {
		t.Fatal("identical input produced different bytes")
	}
}

func TestPageCount(t *testing.T) {
	doc := NewDocument(Info{Created: time.Unix(0, 0)})
	if doc.PageCount() != 0 {
		t.Fatalf("PageCount() = %d, want 0", doc.PageCount())
	}
	doc.AddPage(NewPage(100, 100))
	doc.AddPage(NewPage(100, 100))
	doc.AddPage(NewPage(100, 100))
	if doc.PageCount() != 3 {
		t.Fatalf("PageCount() = %d, want 3", doc.PageCount())
	}
}

func TestTruncateToWidth(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth float64
		want     string
	}{
		{"fits untouched", "Cough", 100, "Cough"},
		{"truncated with ellipsis", "a very long symptom label", 40, "a ver..."},
		{"too narrow for anything", "abc", 1, "..."},
		{"empty", "", 10, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateToWidth(tt.input, 10, tt.maxWidth)
			if got != tt.want {
				t.Errorf("TruncateToWidth(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if TextWidth(got, 10) > tt.maxWidth && got != "..." {
				t.Errorf("result %q exceeds max width %v", got, tt.maxWidth)
			}
		})
	}
}

func TestEscapeString(t *testing.T) {
	got := escapeString(`(paren) and \slash`)
	want := `\(paren\) and \\slash`
	if got != want {
		t.Errorf("escapeString = %q, want %q", got, want)
	}
}
