package chart

import (
	"fmt"

	"github.com/clinigrid/clinigrid/pkg/dates"
	"github.com/clinigrid/clinigrid/pkg/pivot"
	"github.com/clinigrid/clinigrid/pkg/rank"
	"github.com/clinigrid/clinigrid/pkg/scale"
)

// Projection is the shared render model for one matrix snapshot: verified
// matrix, chronological columns, single ranking, single scale engine.
// It is immutable after New and safe to share across encodings.
type Projection struct {
	m        *pivot.Matrix
	eng      scale.Engine
	title    string
	columns  []string
	labels   []string
	ranked   []rank.Row
	warnings []string
	allRows  bool
}

// Option adjusts how a projection is built.
type Option func(*projectionOpts)

type projectionOpts struct {
	allRows bool
	title   string
}

// WithAllRows includes all-zero rows (unranked, name order) after the
// ranked rows. Exports that promise a complete item listing use this.
func WithAllRows() Option {
	return func(o *projectionOpts) { o.allRows = true }
}

// WithTitle overrides the derived chart title.
func WithTitle(title string) Option {
	return func(o *projectionOpts) { o.title = title }
}

// New builds the shared projection for a matrix.
//
// The matrix is verified first; rendering never proceeds on a broken one.
// Columns are sorted chronologically. If any column label fails to parse,
// the original column order is kept for the whole set and a warning is
// recorded: a visibly reported fallback beats silently misordered dates.
func New(m *pivot.Matrix, eng scale.Engine, opts ...Option) (*Projection, error) {
	if err := m.Verify(); err != nil {
		return nil, err
	}

	var o projectionOpts
	for _, opt := range opts {
		opt(&o)
	}

	p := &Projection{
		m:       m,
		eng:     eng,
		allRows: o.allRows,
	}

	sorted, err := dates.SortLabels(m.Columns)
	if err != nil {
		p.columns = append([]string(nil), m.Columns...)
		p.warnings = append(p.warnings, fmt.Sprintf("columns kept in original order: %s", err))
	} else {
		p.columns = sorted
	}

	p.labels = make([]string, len(p.columns))
	for i, col := range p.columns {
		if d, err := dates.Parse(col); err == nil {
			p.labels[i] = d.Display()
		} else {
			p.labels[i] = col
		}
	}

	if o.allRows {
		p.ranked = rank.AllRows(m)
	} else {
		p.ranked = rank.Rows(m)
	}

	p.title = o.title
	if p.title == "" {
		p.title = deriveTitle(m)
	}

	return p, nil
}

func deriveTitle(m *pivot.Matrix) string {
	switch {
	case m.Category != "" && m.Subject != "":
		return fmt.Sprintf("%s for %s", m.Category.Title(), m.Subject)
	case m.Category != "":
		return m.Category.Title()
	case m.Subject != "":
		return m.Subject
	}
	return "Occurrence Matrix"
}

// Subject returns the matrix subject, if any.
func (p *Projection) Subject() string { return p.m.Subject }

// Category returns the matrix category, if any.
func (p *Projection) Category() pivot.Category { return p.m.Category }

// Title returns the chart title.
func (p *Projection) Title() string { return p.title }

// Columns returns the chronologically ordered column labels.
func (p *Projection) Columns() []string {
	return append([]string(nil), p.columns...)
}

// Labels returns the display form (MM/DD/YY) of each column, aligned to
// Columns. Unparseable labels pass through unchanged.
func (p *Projection) Labels() []string {
	return append([]string(nil), p.labels...)
}

// Ranked returns the shared row ordering.
func (p *Projection) Ranked() []rank.Row {
	return append([]rank.Row(nil), p.ranked...)
}

// MaxValue returns the verified matrix-wide maximum.
func (p *Projection) MaxValue() int { return p.m.MaxValue }

// Engine returns the shared scale engine.
func (p *Projection) Engine() scale.Engine { return p.eng }

// Warnings returns non-fatal conditions recorded while building the
// projection, such as the date-ordering fallback.
func (p *Projection) Warnings() []string {
	return append([]string(nil), p.warnings...)
}

// Value returns the count at (row name, column label).
func (p *Projection) Value(row, column string) int {
	return p.m.Value(row, column)
}

// AllRows reports whether the projection includes unranked zero rows.
func (p *Projection) AllRows() bool { return p.allRows }

// Empty reports the no-data state: nothing ranked or no columns.
// Callers render "No data available" instead of a chart.
func (p *Projection) Empty() bool {
	if len(p.columns) == 0 {
		return true
	}
	for _, r := range p.ranked {
		if r.Total > 0 {
			return false
		}
	}
	return true
}

// HeatmapCells projects the grid encoding: every (ranked row × column)
// cell including zeros, bucketed by the shared engine.
func (p *Projection) HeatmapCells() []Cell {
	cells := make([]Cell, 0, len(p.ranked)*len(p.columns))
	for i, row := range p.ranked {
		for j, col := range p.columns {
			v := p.m.Value(row.Name, col)
			cells = append(cells, Cell{
				Row:      row.Name,
				Column:   col,
				RowIndex: i,
				ColIndex: j,
				Value:    v,
				Bucket:   p.eng.Bucket(v, p.m.MaxValue),
			})
		}
	}
	return cells
}

// BubblePoints projects the bubble encoding: one point per non-zero
// cell, sized and bucketed by the shared engine. Zero cells produce no
// point at all.
func (p *Projection) BubblePoints() []Point {
	var points []Point
	for i, row := range p.ranked {
		for j, col := range p.columns {
			v := p.m.Value(row.Name, col)
			if v == 0 {
				continue
			}
			points = append(points, Point{
				Row:      row.Name,
				Column:   col,
				Label:    row.Label(),
				RowIndex: i,
				ColIndex: j,
				Value:    v,
				Size:     p.eng.DotSize(v),
				Bucket:   p.eng.Bucket(v, p.m.MaxValue),
			})
		}
	}
	return points
}

// RankedTable projects the tabular encoding: ranked rows with raw values
// aligned to the chronological columns.
func (p *Projection) RankedTable() []TableRow {
	table := make([]TableRow, len(p.ranked))
	for i, row := range p.ranked {
		values := make([]int, len(p.columns))
		for j, col := range p.columns {
			values[j] = p.m.Value(row.Name, col)
		}
		table[i] = TableRow{Row: row, Values: values}
	}
	return table
}

// Model serializes the projection for one chart kind.
func (p *Projection) Model(kind Kind) Model {
	m := Model{
		Subject:  p.m.Subject,
		Category: p.m.Category,
		Title:    p.title,
		Chart:    kind,
		Columns:  p.Columns(),
		Labels:   p.Labels(),
		Ranked:   p.Ranked(),
		MaxValue: p.m.MaxValue,
		Empty:    p.Empty(),
		Warnings: p.Warnings(),
	}
	switch kind {
	case KindHeatmap:
		m.Cells = p.HeatmapCells()
	case KindBubble:
		m.Points = p.BubblePoints()
	case KindTable, KindScatter, KindNetwork:
		m.Table = p.RankedTable()
	}
	return m
}
