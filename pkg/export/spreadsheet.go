package export

import (
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/clinigrid/clinigrid/pkg/chart"
	"github.com/clinigrid/clinigrid/pkg/errors"
	"github.com/clinigrid/clinigrid/pkg/scale"
)

// =============================================================================
// Spreadsheet Export - Styled .xlsx Workbook
// =============================================================================

const (
	defaultSheetName = "Sheet1"
	labelColumnWidth = 32.0
	valueColumnWidth = 10.0
)

// Spreadsheet renders a projection as a single-sheet .xlsx workbook: one
// header row of chronological date labels, one row per ranked item carrying
// its rank label and numeric counts, value cells filled with the scale
// engine's bucket colors, and the header row plus label column frozen.
//
// Workbook metadata is pinned to Options.GeneratedAt, so the same projection
// exported with the same options produces byte-identical output.
func Spreadsheet(p *chart.Projection, opts Options) ([]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := sanitizeSheetName(p.Title())
	if err := f.SetSheetName(defaultSheetName, sheet); err != nil {
		return nil, errors.Wrap(errors.ErrCodeExportIO, err, "name worksheet %q", sheet)
	}

	w := &sheetWriter{f: f, sheet: sheet}
	writeGrid(w, p)
	if w.err != nil {
		return nil, errors.Wrap(errors.ErrCodeExportIO, w.err, "build worksheet %q", sheet)
	}

	created := opts.GeneratedAt.UTC().Format(time.RFC3339)
	if err := f.SetDocProps(&excelize.DocProperties{
		Title:    p.Title(),
		Subject:  p.Subject(),
		Creator:  "clinigrid",
		Created:  created,
		Modified: created,
	}); err != nil {
		return nil, errors.Wrap(errors.ErrCodeExportIO, err, "set workbook properties")
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeExportIO, err, "encode workbook")
	}
	return buf.Bytes(), nil
}

// writeGrid fills the worksheet from the projection's ranked table.
func writeGrid(w *sheetWriter, p *chart.Projection) {
	if p.Empty() {
		w.setCell(1, 1, "No data available")
		return
	}

	labels := p.Labels()
	header := w.newStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})

	w.setCell(1, 1, p.Category().Title())
	for i, label := range labels {
		w.setCell(i+2, 1, label)
	}
	w.styleRange(1, 1, len(labels)+1, 1, header)

	eng := p.Engine()
	maxValue := p.MaxValue()
	buckets := make(map[scale.Bucket]int)
	for r, row := range p.RankedTable() {
		w.setCell(1, r+2, row.Label())
		for c, v := range row.Values {
			b := eng.Bucket(v, maxValue)
			id, ok := buckets[b]
			if !ok {
				id = w.newStyle(bucketStyle(eng, b))
				buckets[b] = id
			}
			w.setCell(c+2, r+2, v)
			w.styleRange(c+2, r+2, c+2, r+2, id)
		}
	}

	w.colWidth(1, 1, labelColumnWidth)
	if len(labels) > 0 {
		w.colWidth(2, len(labels)+1, valueColumnWidth)
	}

	// Keep the date header and the rank labels visible while scrolling.
	w.panes(&excelize.Panes{
		Freeze:      true,
		XSplit:      1,
		YSplit:      1,
		TopLeftCell: "B2",
		ActivePane:  "bottomRight",
	})
}

// bucketStyle builds the cell style for one intensity bucket: the engine's
// fill color, centered numbers, and white text on the darker fills.
func bucketStyle(eng scale.Engine, b scale.Bucket) *excelize.Style {
	fill := eng.Color(b)
	font := &excelize.Font{}
	if isDark(fill) {
		font.Color = "#ffffff"
	}
	return &excelize.Style{
		Fill: excelize.Fill{
			Type:    "pattern",
			Pattern: 1,
			Color:   []string{fill.Hex()},
		},
		Font:      font,
		Alignment: &excelize.Alignment{Horizontal: "center"},
	}
}

// isDark reports whether text drawn over the color needs to be white.
// Uses the perceived-luminance weighting rather than a plain average.
func isDark(c scale.RGB) bool {
	lum := 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
	return lum < 140
}

// =============================================================================
// Sheet Writer - Sticky Error Helper
// =============================================================================

// sheetWriter wraps an excelize file with sticky-error semantics so the grid
// code reads as straight-line writes. The first failure is kept and every
// later call becomes a no-op, mirroring how bufio.Writer handles errors.
type sheetWriter struct {
	f     *excelize.File
	sheet string
	err   error
}

func (w *sheetWriter) setCell(col, row int, v any) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetCellValue(w.sheet, cell, v)
}

func (w *sheetWriter) newStyle(s *excelize.Style) int {
	if w.err != nil {
		return 0
	}
	id, err := w.f.NewStyle(s)
	if err != nil {
		w.err = err
		return 0
	}
	return id
}

func (w *sheetWriter) styleRange(fromCol, fromRow, toCol, toRow, styleID int) {
	if w.err != nil {
		return
	}
	from, err := excelize.CoordinatesToCellName(fromCol, fromRow)
	if err != nil {
		w.err = err
		return
	}
	to, err := excelize.CoordinatesToCellName(toCol, toRow)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetCellStyle(w.sheet, from, to, styleID)
}

func (w *sheetWriter) colWidth(fromCol, toCol int, width float64) {
	if w.err != nil {
		return
	}
	from, err := excelize.ColumnNumberToName(fromCol)
	if err != nil {
		w.err = err
		return
	}
	to, err := excelize.ColumnNumberToName(toCol)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetColWidth(w.sheet, from, to, width)
}

func (w *sheetWriter) panes(p *excelize.Panes) {
	if w.err != nil {
		return
	}
	w.err = w.f.SetPanes(w.sheet, p)
}
