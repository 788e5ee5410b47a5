package chart

import (
	"github.com/clinigrid/clinigrid/pkg/pivot"
	"github.com/clinigrid/clinigrid/pkg/rank"
	"github.com/clinigrid/clinigrid/pkg/scale"
)

// Cell is one heatmap grid cell. Zero-value cells are included with
// BucketEmpty so grid renderers can paint the background explicitly.
type Cell struct {
	Row      string       `json:"row"`
	Column   string       `json:"column"`
	RowIndex int          `json:"rowIndex"` // index into the ranked rows
	ColIndex int          `json:"colIndex"` // index into the chronological columns
	Value    int          `json:"value"`
	Bucket   scale.Bucket `json:"bucket"`
}

// Point is one bubble mark: a non-zero cell with its painted size. The
// Label is the full ranked row label used on the y axis.
type Point struct {
	Row      string       `json:"row"`
	Column   string       `json:"column"`
	Label    string       `json:"label"`
	RowIndex int          `json:"rowIndex"`
	ColIndex int          `json:"colIndex"`
	Value    int          `json:"value"`
	Size     float64      `json:"size"`
	Bucket   scale.Bucket `json:"bucket"`
}

// TableRow is one ranked row with its raw values aligned to the
// projection's column order.
type TableRow struct {
	rank.Row
	Values []int `json:"values"`
}

// Model is the serializable form of a projection, shaped for one chart
// kind. API responses and JSON render artifacts use this type.
type Model struct {
	Subject  string         `json:"subject,omitempty"`
	Category pivot.Category `json:"category,omitempty"`
	Title    string         `json:"title"`
	Chart    Kind           `json:"chart"`
	Columns  []string       `json:"columns"`
	Labels   []string       `json:"labels"` // display form of Columns (MM/DD/YY)
	Ranked   []rank.Row     `json:"ranked"`
	MaxValue int            `json:"maxValue"`
	Empty    bool           `json:"empty"`
	Warnings []string       `json:"warnings,omitempty"`

	Cells  []Cell     `json:"cells,omitempty"`  // heatmap
	Points []Point    `json:"points,omitempty"` // bubble
	Table  []TableRow `json:"table,omitempty"`  // table
}
