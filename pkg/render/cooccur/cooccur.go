// Package cooccur renders a projection as a co-occurrence network.
//
// Ranked items become nodes sized by their totals; an undirected edge joins
// two items weighted by the number of dates on which both have nonzero
// counts. The network reads the shared projection only: it never re-ranks
// or re-buckets. DOT emission is deterministic (ranked order for nodes,
// rank-pair order for edges), so rendered output is stable across runs.
package cooccur

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/clinigrid/clinigrid/pkg/chart"
	"github.com/clinigrid/clinigrid/pkg/errors"
)

// DOT converts a projection to Graphviz DOT. The resulting text can be
// rendered with [RenderSVG] or [RenderPNG], or exported as-is.
func DOT(p *chart.Projection) []byte {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  splines=true;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fixedsize=true, fontsize=11];\n")
	buf.WriteString("\n")

	if p.Empty() {
		buf.WriteString("  empty [label=\"No data available\", shape=plaintext, style=\"\", fixedsize=false];\n")
		buf.WriteString("}\n")
		return buf.Bytes()
	}

	ranked := p.Ranked()
	eng := p.Engine()
	maxValue := p.MaxValue()

	maxTotal := 0
	for _, r := range ranked {
		if r.Total > maxTotal {
			maxTotal = r.Total
		}
	}

	for _, r := range ranked {
		width := 0.6 + 1.2*float64(r.Total)/float64(maxTotal)
		fill := eng.Color(eng.Bucket(peakValue(p, r.Name), maxValue)).Hex()
		fmt.Fprintf(&buf, "  %q [label=%q, width=%.2f, fillcolor=%q, fontcolor=white];\n",
			r.Name, r.Label(), width, fill)
	}

	buf.WriteString("\n")
	columns := p.Columns()
	maxWeight := len(columns)
	for i := 0; i < len(ranked); i++ {
		for j := i + 1; j < len(ranked); j++ {
			w := coWeight(p, columns, ranked[i].Name, ranked[j].Name)
			if w == 0 {
				continue
			}
			pen := 0.5 + 2.5*float64(w)/float64(maxWeight)
			fmt.Fprintf(&buf, "  %q -- %q [penwidth=%.2f];\n", ranked[i].Name, ranked[j].Name, pen)
		}
	}

	buf.WriteString("}\n")
	return buf.Bytes()
}

// peakValue is the largest single-date count for an item, which is what
// the shared bucket scale is defined over.
func peakValue(p *chart.Projection, name string) int {
	peak := 0
	for _, col := range p.Columns() {
		if v := p.Value(name, col); v > peak {
			peak = v
		}
	}
	return peak
}

// coWeight counts the dates on which both items have nonzero counts.
func coWeight(p *chart.Projection, columns []string, a, b string) int {
	w := 0
	for _, col := range columns {
		if p.Value(a, col) > 0 && p.Value(b, col) > 0 {
			w++
		}
	}
	return w
}

// RenderSVG renders the network to SVG using Graphviz.
func RenderSVG(ctx context.Context, p *chart.Projection) ([]byte, error) {
	return render(ctx, p, graphviz.SVG, true)
}

// RenderPNG renders the network to PNG using Graphviz's built-in rasterizer.
func RenderPNG(ctx context.Context, p *chart.Projection) ([]byte, error) {
	return render(ctx, p, graphviz.PNG, false)
}

func render(ctx context.Context, p *chart.Projection, format graphviz.Format, normalize bool) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes(DOT(p))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render network")
	}
	if normalize {
		return normalizeViewBox(buf.Bytes()), nil
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the Graphviz SVG root element so the viewBox
// starts at the origin and width/height match it, which keeps the result
// embeddable without the pt-based sizing Graphviz emits.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
