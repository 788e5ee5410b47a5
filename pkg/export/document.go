package export

import (
	"context"
	"fmt"

	"github.com/clinigrid/clinigrid/pkg/chart"
	"github.com/clinigrid/clinigrid/pkg/errors"
	"github.com/clinigrid/clinigrid/pkg/pdf"
	"github.com/clinigrid/clinigrid/pkg/tile"
)

// =============================================================================
// Document Export - Paginated PDF
// =============================================================================

const (
	titleFontSize  = 14.0
	metaFontSize   = 9.0
	headerFontSize = 8.0
	valueFontSize  = 8.0
	footerFontSize = 8.0

	// footerBaseline sits inside the bottom margin, below the grid.
	footerBaseline = 20.0
)

var (
	inkColor   = pdf.Color{R: 0.13, G: 0.13, B: 0.13}
	mutedColor = pdf.Color{R: 0.45, G: 0.45, B: 0.45}
	gridColor  = pdf.Color{R: 0.80, G: 0.80, B: 0.80}
)

// Document renders a projection as a paginated PDF. Page capacities are
// derived from the page geometry in opts, the matrix is tiled into blocks
// reading left-to-right then top-to-bottom, and every page repeats the
// title, column headers, row labels, a range line such as
// "Rows 1–24 of 83, Columns 1–10 of 18", and a "Page X of Y" footer.
//
// The context is checked between pages; once cancelled, no bytes are
// returned and the error carries EXPORT_CANCELLED.
func Document(ctx context.Context, p *chart.Projection, opts Options) ([]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	doc := pdf.NewDocument(pdf.Info{
		Title:   p.Title(),
		Subject: p.Subject(),
		Created: opts.GeneratedAt,
	})

	table := p.RankedTable()
	labels := p.Labels()
	rowCap, colCap := pageCapacities(opts)
	blocks := tile.Tile(len(table), len(labels), rowCap, colCap)

	if len(blocks) == 0 {
		doc.AddPage(placeholderPage(p.Title(), opts))
		return doc.Bytes(), nil
	}

	for _, b := range blocks {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeExportCancelled, err,
				"document export cancelled at page %d of %d", b.PageNumber(), b.Total)
		}
		doc.AddPage(gridPage(p, table, labels, b, opts))
	}
	return doc.Bytes(), nil
}

// Pages reports how many pages Document will emit for the projection. The
// no-data state counts as one placeholder page. Invalid options report 0.
func Pages(p *chart.Projection, opts Options) int {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return 0
	}
	rowCap, colCap := pageCapacities(opts)
	blocks := tile.Tile(len(p.Ranked()), len(p.Columns()), rowCap, colCap)
	if len(blocks) == 0 {
		return 1
	}
	return len(blocks)
}

// pageCapacities derives the row and column budget of one page from the
// geometry. One RowHeight is reserved for the column header row; the
// footer lives inside the bottom margin and costs nothing.
func pageCapacities(o Options) (rowCap, colCap int) {
	rowCap = tile.Capacity(o.PageHeight-2*o.Margin-o.HeaderBand-o.RowHeight, o.RowHeight)
	colCap = tile.Capacity(o.PageWidth-2*o.Margin-o.LabelGutter, o.ColumnWidth)
	return rowCap, colCap
}

// gridPage draws one tile block: header band, column header row, label
// gutter, and the bucket-colored value grid.
func gridPage(p *chart.Projection, table []chart.TableRow, labels []string, b tile.Block, o Options) *pdf.Page {
	page := pdf.NewPage(o.PageWidth, o.PageHeight)
	yTop := o.PageHeight - o.Margin

	// Header band: title, generated line with page counter, range line.
	page.Text(o.Margin, yTop-titleFontSize, titleFontSize, inkColor, p.Title())
	meta := "Generated " + o.GeneratedAt.UTC().Format("2006-01-02 15:04 UTC")
	page.Text(o.Margin, yTop-titleFontSize-16, metaFontSize, mutedColor, meta)
	pageLabel := fmt.Sprintf("Page %d of %d", b.PageNumber(), b.Total)
	page.TextRight(o.PageWidth-o.Margin, yTop-titleFontSize-16, metaFontSize, mutedColor, pageLabel)
	page.Text(o.Margin, yTop-titleFontSize-30, metaFontSize, mutedColor, b.Describe())

	// Column header row: category title over the gutter, then one date
	// label centered per visible column.
	gridTop := yTop - o.HeaderBand
	headerBaseline := gridTop - o.RowHeight + (o.RowHeight-headerFontSize)/2 + 1
	page.Text(o.Margin, headerBaseline, headerFontSize, inkColor, p.Category().Title())
	gutterRight := o.Margin + o.LabelGutter
	for j := b.ColStart; j < b.ColEnd; j++ {
		cx := gutterRight + float64(j-b.ColStart)*o.ColumnWidth + o.ColumnWidth/2
		page.TextCentered(cx, headerBaseline, headerFontSize, inkColor, labels[j])
	}

	// Grid body.
	bodyTop := gridTop - o.RowHeight
	eng := p.Engine()
	maxValue := p.MaxValue()
	for i := b.RowStart; i < b.RowEnd; i++ {
		row := table[i]
		cellBottom := bodyTop - float64(i-b.RowStart+1)*o.RowHeight
		labelBaseline := cellBottom + (o.RowHeight-headerFontSize)/2 + 1
		label := pdf.TruncateToWidth(row.Label(), headerFontSize, o.LabelGutter-8)
		page.TextRight(gutterRight-8, labelBaseline, headerFontSize, inkColor, label)

		for j := b.ColStart; j < b.ColEnd; j++ {
			v := row.Values[j]
			x := gutterRight + float64(j-b.ColStart)*o.ColumnWidth
			fill := eng.Color(eng.Bucket(v, maxValue))
			page.FillRect(x+0.5, cellBottom+0.5, o.ColumnWidth-1, o.RowHeight-1, pdf.FromBytes(fill.R, fill.G, fill.B))
			if v == 0 {
				continue
			}
			ink := inkColor
			if isDark(fill) {
				ink = pdf.Color{R: 1, G: 1, B: 1}
			}
			valueBaseline := cellBottom + (o.RowHeight-valueFontSize)/2 + 1
			page.TextCentered(x+o.ColumnWidth/2, valueBaseline, valueFontSize, ink, fmt.Sprintf("%d", v))
		}
	}

	// Light frame around the visible grid keeps partial pages readable.
	bodyHeight := float64(b.Rows()) * o.RowHeight
	bodyWidth := float64(b.Cols()) * o.ColumnWidth
	page.StrokeRect(gutterRight, bodyTop-bodyHeight, bodyWidth, bodyHeight, 0.5, gridColor)

	page.TextCentered(o.PageWidth/2, footerBaseline, footerFontSize, mutedColor, pageLabel)
	return page
}

// placeholderPage is the single page emitted for a projection with no
// nonzero counts.
func placeholderPage(title string, o Options) *pdf.Page {
	page := pdf.NewPage(o.PageWidth, o.PageHeight)
	yTop := o.PageHeight - o.Margin
	page.Text(o.Margin, yTop-titleFontSize, titleFontSize, inkColor, title)
	page.TextCentered(o.PageWidth/2, o.PageHeight/2, 12, mutedColor, "No data available")
	page.TextCentered(o.PageWidth/2, footerBaseline, footerFontSize, mutedColor, "Page 1 of 1")
	return page
}
