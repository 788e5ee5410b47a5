// Package chart projects a verified pivot matrix into the render models
// consumed by every visualization and export.
//
// The Projection is built once per matrix and shared: it verifies matrix
// integrity, sorts columns chronologically, and computes the single
// ranking, then every presentation (heatmap cells, bubble points, ranked
// table) reads from that one model. No chart type sorts, ranks, or
// buckets on its own; that rule is what keeps a heatmap, a bubble chart,
// and a spreadsheet of the same matrix from disagreeing about the data.
package chart

import (
	"strings"

	"github.com/clinigrid/clinigrid/pkg/errors"
)

// Kind selects a visual encoding of the projection.
type Kind string

// Supported chart kinds.
const (
	KindHeatmap Kind = "heatmap" // grid of bucket-colored cells
	KindBubble  Kind = "bubble"  // circles sized by count, zero cells omitted
	KindScatter Kind = "scatter" // rank vs total overview
	KindTable   Kind = "table"   // ranked rows with per-column values
	KindNetwork Kind = "network" // co-occurrence graph
)

// ValidKinds maps chart kinds for validation.
var ValidKinds = map[Kind]bool{
	KindHeatmap: true,
	KindBubble:  true,
	KindScatter: true,
	KindTable:   true,
	KindNetwork: true,
}

// Kinds returns the chart kinds in display order.
func Kinds() []Kind {
	return []Kind{KindHeatmap, KindBubble, KindScatter, KindTable, KindNetwork}
}

// ParseKind resolves a chart kind from user input.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if !ValidKinds[k] {
		names := make([]string, 0, len(ValidKinds))
		for _, kind := range Kinds() {
			names = append(names, string(kind))
		}
		return "", errors.New(errors.ErrCodeInvalidChart, "unknown chart kind %q (valid: %s)", s, strings.Join(names, ", "))
	}
	return k, nil
}
