// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package svgsurface

import (
	"bytes"
	"io"

	"github.com/aclements/go-gg/gg"
	"github.com/aclements/go-gg/table"
	svg "github.com/ajstarks/svgo"

	"github.com/hotelbookings/hotelstory/view"
)

// histogram plots the bins of p as a step outline.
func histogram(w io.Writer, p *view.Panel, width, height int) error {
	if len(p.Bins) == 0 {
		return writeSVG(w, width, height, func(c *svg.SVG) { title(c, p, width) })
	}
	// Each bin contributes its lower edge. The final upper edge
	// repeats the last count so the last step has a width.
	xs := make([]float64, 0, len(p.Bins)+1)
	ys := make([]int, 0, len(p.Bins)+1)
	for _, b := range p.Bins {
		xs = append(xs, b.Lower)
		ys = append(ys, b.Count)
	}
	last := p.Bins[len(p.Bins)-1]
	xs = append(xs, last.Upper)
	ys = append(ys, last.Count)

	tab := new(table.Builder).Add("adr", xs).Add("bookings", ys).Done()
	plot := gg.NewPlot(tab)
	plot.SetScale("y", gg.NewLinearScaler().Include(0))
	plot.Add(gg.LayerSteps{LayerPaths: gg.LayerPaths{X: "adr", Y: "bookings"}})
	return writePlot(w, plot, p, width, height)
}

// strip plots one row of points per group.
func strip(w io.Writer, p *view.Panel, width, height int) error {
	if len(p.Points) == 0 {
		return writeSVG(w, width, height, func(c *svg.SVG) { title(c, p, width) })
	}
	groups := make([]string, len(p.Points))
	values := make([]float64, len(p.Points))
	for i, pt := range p.Points {
		groups[i], values[i] = pt.Group, pt.Value
	}
	tab := new(table.Builder).Add("adr", values).Add("hotel", groups).Done()
	plot := gg.NewPlot(tab)
	plot.Add(gg.LayerPoints{X: "adr", Y: "hotel", Color: "hotel"})
	return writePlot(w, plot, p, width, height)
}

func writePlot(w io.Writer, plot *gg.Plot, p *view.Panel, width, height int) error {
	if p.Title != "" {
		plot.Add(gg.Title(p.Title))
	}
	if p.XLabel != "" {
		plot.Add(gg.AxisLabel("x", p.XLabel))
	}
	if p.YLabel != "" {
		plot.Add(gg.AxisLabel("y", p.YLabel))
	}
	var buf bytes.Buffer
	if err := plot.WriteSVG(&buf, width, height); err != nil {
		return err
	}
	_, err := w.Write(stripDecl(buf.Bytes()))
	return err
}
