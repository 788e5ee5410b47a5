// Package tile partitions an oversized matrix into page-sized blocks for
// paginated export.
//
// Pagination here is two-dimensional: ranked rows can overflow a page
// vertically while date columns overflow horizontally, so a matrix tiles
// into verticalPages × horizontalPages blocks. Blocks enumerate in
// row-major order (all column pages for the first row window, then the
// next row window), which is the page numbering users see and therefore
// must never change. Every block carries enough context to render a
// self-contained page: consumers re-attach row labels and column headers
// per block because exported pages are printed and read out of order.
package tile

import "fmt"

// Block is one page's worth of the matrix: a contiguous row window and
// column window plus positional metadata. Ranges are half-open.
type Block struct {
	RowStart, RowEnd int // ranked-row window [RowStart, RowEnd)
	ColStart, ColEnd int // column window [ColStart, ColEnd)

	Index int // zero-based page position in row-major order
	Total int // total page count for the whole matrix

	TotalRows int // ranked rows in the whole matrix
	TotalCols int // columns in the whole matrix
}

// Rows returns the number of rows in this block.
func (b Block) Rows() int { return b.RowEnd - b.RowStart }

// Cols returns the number of columns in this block.
func (b Block) Cols() int { return b.ColEnd - b.ColStart }

// PageNumber returns the 1-based page number for headers and footers.
func (b Block) PageNumber() int { return b.Index + 1 }

// Describe renders the human range description shown in page headers,
// e.g. "Rows 1–40 of 83, Columns 5–12 of 18".
func (b Block) Describe() string {
	return fmt.Sprintf("Rows %d–%d of %d, Columns %d–%d of %d",
		b.RowStart+1, b.RowEnd, b.TotalRows,
		b.ColStart+1, b.ColEnd, b.TotalCols)
}

// Tile partitions rowCount ranked rows and colCount columns into page
// blocks of at most rowCap×colCap cells.
//
// The blocks exactly partition both ranges: no gaps, no overlaps, and the
// row windows of any column-page stripe sum to rowCount. A matrix that
// fits within one page yields exactly one block with Total == 1. Zero
// rows or zero columns yield no blocks (the no-data state renders a
// placeholder page instead). Capacities below 1 are clamped to 1.
func Tile(rowCount, colCount, rowCap, colCap int) []Block {
	if rowCount <= 0 || colCount <= 0 {
		return nil
	}
	if rowCap < 1 {
		rowCap = 1
	}
	if colCap < 1 {
		colCap = 1
	}

	verticalPages := ceilDiv(rowCount, rowCap)
	horizontalPages := ceilDiv(colCount, colCap)
	total := verticalPages * horizontalPages

	blocks := make([]Block, 0, total)
	for v := 0; v < verticalPages; v++ {
		rowStart := v * rowCap
		rowEnd := min(rowStart+rowCap, rowCount)
		for h := 0; h < horizontalPages; h++ {
			colStart := h * colCap
			colEnd := min(colStart+colCap, colCount)
			blocks = append(blocks, Block{
				RowStart:  rowStart,
				RowEnd:    rowEnd,
				ColStart:  colStart,
				ColEnd:    colEnd,
				Index:     len(blocks),
				Total:     total,
				TotalRows: rowCount,
				TotalCols: colCount,
			})
		}
	}
	return blocks
}

// Capacity derives how many rows or columns fit in the available drawing
// span given a per-unit budget. The result is never below 1 so a single
// oversized row still lands on a page rather than producing an infinite
// page count.
func Capacity(available, per float64) int {
	if per <= 0 || available <= 0 {
		return 1
	}
	n := int(available / per)
	if n < 1 {
		return 1
	}
	return n
}

func ceilDiv(n, d int) int {
	return (n + d - 1) / d
}
