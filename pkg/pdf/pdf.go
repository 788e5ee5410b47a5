// Package pdf writes minimal PDF 1.4 documents without external tooling.
//
// The writer supports exactly what paginated matrix documents need: multiple
// fixed-size pages, flate-compressed content streams, filled rectangles,
// stroked lines, Bezier-approximated circles, and Helvetica text. Output is
// deterministic: object order, stream compression, and metadata depend only
// on the input, so identical inputs produce byte-identical files. The trailer
// carries no /ID entry for the same reason.
package pdf

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"strings"
	"time"
)

const (
	version  = "1.4"
	producer = "clinigrid"
)

// US Letter dimensions in points (1 point = 1/72 inch).
const (
	LetterWidth  = 612.0
	LetterHeight = 792.0
)

// =============================================================================
// Color
// =============================================================================

// Color is an RGB color with components in [0, 1].
type Color struct {
	R, G, B float64
}

// FromBytes converts 8-bit RGB channels to a Color.
func FromBytes(r, g, b uint8) Color {
	return Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

func (c Color) String() string {
	return fmt.Sprintf("%.3f %.3f %.3f", c.R, c.G, c.B)
}

// =============================================================================
// Page - Content Stream Builder
// =============================================================================

// Page accumulates drawing operators for a single page. Coordinates follow
// the PDF convention: origin at the bottom-left corner, y increasing upward.
type Page struct {
	width  float64
	height float64
	buf    strings.Builder
}

// NewPage creates an empty page with the given dimensions in points.
func NewPage(width, height float64) *Page {
	return &Page{width: width, height: height}
}

func (p *Page) Width() float64  { return p.width }
func (p *Page) Height() float64 { return p.height }

// FillRect draws a filled rectangle with its lower-left corner at (x, y).
func (p *Page) FillRect(x, y, w, h float64, c Color) {
	fmt.Fprintf(&p.buf, "%s rg\n%.2f %.2f %.2f %.2f re f\n", c, x, y, w, h)
}

// StrokeRect draws a rectangle outline with the given line width.
func (p *Page) StrokeRect(x, y, w, h, lineWidth float64, c Color) {
	fmt.Fprintf(&p.buf, "%s RG\n%.2f w\n%.2f %.2f %.2f %.2f re S\n", c, lineWidth, x, y, w, h)
}

// Line draws a straight stroked line between two points.
func (p *Page) Line(x1, y1, x2, y2, lineWidth float64, c Color) {
	fmt.Fprintf(&p.buf, "%s RG\n%.2f w\n%.2f %.2f m %.2f %.2f l S\n", c, lineWidth, x1, y1, x2, y2)
}

// Circle draws a filled circle centered at (cx, cy) using four cubic Bezier
// segments. The 0.5523 control offset is the standard circle approximation.
func (p *Page) Circle(cx, cy, r float64, c Color) {
	if r <= 0 {
		return
	}
	k := r * 0.5523
	fmt.Fprintf(&p.buf, "%s rg\n", c)
	fmt.Fprintf(&p.buf, "%.2f %.2f m\n", cx+r, cy)
	fmt.Fprintf(&p.buf, "%.2f %.2f %.2f %.2f %.2f %.2f c\n", cx+r, cy+k, cx+k, cy+r, cx, cy+r)
	fmt.Fprintf(&p.buf, "%.2f %.2f %.2f %.2f %.2f %.2f c\n", cx-k, cy+r, cx-r, cy+k, cx-r, cy)
	fmt.Fprintf(&p.buf, "%.2f %.2f %.2f %.2f %.2f %.2f c\n", cx-r, cy-k, cx-k, cy-r, cx, cy-r)
	fmt.Fprintf(&p.buf, "%.2f %.2f %.2f %.2f %.2f %.2f c\n", cx+k, cy-r, cx+r, cy-k, cx+r, cy)
	p.buf.WriteString("f\n")
}

// Text draws a string at (x, y) in Helvetica at the given size. The
// y coordinate is the text baseline.
func (p *Page) Text(x, y, size float64, c Color, s string) {
	fmt.Fprintf(&p.buf, "BT\n/F1 %.2f Tf\n%s rg\n%.2f %.2f Td\n(%s) Tj\nET\n",
		size, c, x, y, escapeString(s))
}

// TextCentered draws a string horizontally centered on cx.
func (p *Page) TextCentered(cx, y, size float64, c Color, s string) {
	p.Text(cx-TextWidth(s, size)/2, y, size, c, s)
}

// TextRight draws a string right-aligned so it ends at x.
func (p *Page) TextRight(x, y, size float64, c Color, s string) {
	p.Text(x-TextWidth(s, size), y, size, c, s)
}

// TextWidth estimates the rendered width of s in Helvetica at the given size.
// The 0.5 average glyph factor is a slight overestimate for lowercase text,
// which keeps truncation decisions on the safe side.
func TextWidth(s string, size float64) float64 {
	return float64(len(s)) * size * 0.5
}

// TruncateToWidth shortens s so it fits within maxWidth at the given size,
// appending an ellipsis when anything is cut.
func TruncateToWidth(s string, size, maxWidth float64) string {
	if TextWidth(s, size) <= maxWidth {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 {
		candidate := string(runes) + "..."
		if TextWidth(candidate, size) <= maxWidth {
			return candidate
		}
		runes = runes[:len(runes)-1]
	}
	return "..."
}

func escapeString(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "(", "\\(")
	s = strings.ReplaceAll(s, ")", "\\)")
	return s
}

// =============================================================================
// Document - File Assembly
// =============================================================================

// Info holds the document metadata embedded in the PDF Info dictionary.
// Created pins both CreationDate and ModDate so repeated runs over the same
// input produce identical bytes.
type Info struct {
	Title   string
	Subject string
	Created time.Time
}

// Document assembles pages into a complete PDF file.
type Document struct {
	info    Info
	objects []string
	pages   []int
}

// NewDocument creates an empty document with the given metadata.
func NewDocument(info Info) *Document {
	return &Document{info: info}
}

// PageCount reports the number of pages added so far.
func (d *Document) PageCount() int { return len(d.pages) }

// AddPage appends a finished page to the document. The content stream is
// flate-compressed.
func (d *Document) AddPage(p *Page) {
	var compressed bytes.Buffer
	zw := zlib.NewWriter(&compressed)
	zw.Write([]byte(p.buf.String()))
	zw.Close()

	stream := fmt.Sprintf("<< /Length %d\n/Filter /FlateDecode\n>>\nstream\n%sendstream",
		compressed.Len(), compressed.Bytes())
	streamNum := d.addObject(stream)

	page := fmt.Sprintf("<< /Type /Page\n/Parent 2 0 R\n/MediaBox [0 0 %.2f %.2f]\n/Contents %d 0 R\n/Resources << /Font << /F1 3 0 R >> >>\n>>",
		p.width, p.height, streamNum)
	d.pages = append(d.pages, d.addObject(page))
}

// addObject stores an object body and returns its final object number.
// Objects 1-3 are reserved for the catalog, page tree, and font.
func (d *Document) addObject(body string) int {
	d.objects = append(d.objects, body)
	return len(d.objects) + 3
}

// Bytes serializes the document: header, objects, xref table, and trailer.
func (d *Document) Bytes() []byte {
	var buf bytes.Buffer
	buf.WriteString("%PDF-" + version + "\n")
	buf.WriteString("%\xE2\xE3\xCF\xD3\n")

	kids := make([]string, len(d.pages))
	for i, num := range d.pages {
		kids[i] = fmt.Sprintf("%d 0 R", num)
	}

	objects := []string{
		"<< /Type /Catalog\n/Pages 2 0 R\n>>",
		fmt.Sprintf("<< /Type /Pages\n/Kids [%s]\n/Count %d\n>>", strings.Join(kids, " "), len(d.pages)),
		"<< /Type /Font\n/Subtype /Type1\n/BaseFont /Helvetica\n/Encoding /WinAnsiEncoding\n>>",
	}
	objects = append(objects, d.objects...)
	objects = append(objects, d.infoDict())
	infoNum := len(objects)

	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xrefPos := buf.Len()
	buf.WriteString("xref\n")
	fmt.Fprintf(&buf, "0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}

	buf.WriteString("trailer\n")
	fmt.Fprintf(&buf, "<< /Size %d\n/Root 1 0 R\n/Info %d 0 R\n>>\n", len(objects)+1, infoNum)
	buf.WriteString("startxref\n")
	fmt.Fprintf(&buf, "%d\n", xrefPos)
	buf.WriteString("%%EOF\n")
	return buf.Bytes()
}

func (d *Document) infoDict() string {
	var sb strings.Builder
	sb.WriteString("<<\n")
	if d.info.Title != "" {
		fmt.Fprintf(&sb, "/Title (%s)\n", escapeString(d.info.Title))
	}
	if d.info.Subject != "" {
		fmt.Fprintf(&sb, "/Subject (%s)\n", escapeString(d.info.Subject))
	}
	fmt.Fprintf(&sb, "/Producer (%s)\n", producer)
	date := d.info.Created.UTC().Format("D:20060102150405Z")
	fmt.Fprintf(&sb, "/CreationDate (%s)\n/ModDate (%s)\n", date, date)
	sb.WriteString(">>")
	return sb.String()
}
