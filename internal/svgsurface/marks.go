// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package svgsurface

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/aclements/go-moremath/scale"
	svg "github.com/ajstarks/svgo"

	"github.com/hotelbookings/hotelstory/booking"
	"github.com/hotelbookings/hotelstory/view"
)

var drawers = map[view.Kind]func(*svg.SVG, *view.Panel, box){
	view.KindBar:     bars,
	view.KindStacked: bars,
	view.KindPie:     pie,
	view.KindHeatmap: heatmap,
	view.KindMosaic:  mosaic,
	view.KindSankey:  sankey,
	view.KindTreemap: treemap,
}

var fixedColors = map[string]string{
	booking.NotCanceled: "#4e79a7",
	booking.Canceled:    "#e15759",
	booking.CityHotel:   "#59a14f",
	booking.ResortHotel: "#f28e2b",
}

var palette = []string{"#76b7b2", "#edc948", "#b07aa1", "#ff9da7", "#9c755f", "#bab0ac"}

// color returns the fill of category name. Categories without a fixed
// color take palette entries by their index in domain.
func color(name string, domain []string) string {
	if c, ok := fixedColors[name]; ok {
		return c
	}
	for i, d := range domain {
		if d == name {
			return palette[i%len(palette)]
		}
	}
	return palette[len(palette)-1]
}

func fill(c string) string { return `fill="` + c + `"` }

func round(x float64) int { return int(math.Round(x)) }

func bars(c *svg.SVG, p *view.Panel, b box) {
	top := 0.0
	for _, bar := range p.Bars {
		top = math.Max(top, bar.High)
	}
	if p.Percent {
		top = 100
	}
	if top == 0 {
		top = 1
	}
	ys := scale.Linear{Min: 0, Max: top}
	y := func(v float64) float64 { return b.y + b.h - ys.Map(v)*b.h }

	if len(p.Groups) == 0 {
		return
	}
	slot := b.w / float64(len(p.Groups))
	index := make(map[string]int)
	for i, g := range p.Groups {
		index[g] = i
		c.Text(round(b.x+slot*(float64(i)+0.5)), round(b.y+b.h+14), g, `text-anchor="middle"`, `font-size="10px"`)
	}
	for _, bar := range p.Bars {
		x := b.x + slot*float64(index[bar.Group]) + slot*0.1
		mark(c, bar.Tooltip, bar.Drill)
		layer := bar.Layer
		if layer == "" {
			layer = bar.Group
		}
		c.Rect(round(x), round(y(bar.High)), round(slot*0.8), round(y(bar.Low)-y(bar.High)), fill(color(layer, p.Layers)))
		c.Gend()
	}
	c.Line(round(b.x), round(b.y+b.h), round(b.x+b.w), round(b.y+b.h), `stroke="#333"`)
	c.Text(round(b.x-6), round(b.y+4), fmt.Sprintf("%.0f", top), `text-anchor="end"`, `font-size="10px"`)
	if p.YLabel != "" {
		c.Text(round(b.x-6), round(b.y-8), p.YLabel, `text-anchor="start"`, `font-size="10px"`, `fill="#666"`)
	}
}

func pie(c *svg.SVG, p *view.Panel, b box) {
	cx, cy := b.x+b.w/2, b.y+b.h/2
	r := math.Min(b.w, b.h) / 2
	total := 0.0
	for _, s := range p.Slices {
		total += s.Value
	}
	if total == 0 {
		return
	}
	angle := -math.Pi / 2
	for _, s := range p.Slices {
		sweep := 2 * math.Pi * s.Value / total
		mark(c, s.Tooltip, s.Drill)
		if sweep >= 2*math.Pi-1e-9 {
			c.Circle(round(cx), round(cy), round(r), fill(color(s.Label, p.Groups)))
		} else if sweep > 0 {
			x0, y0 := cx+r*math.Cos(angle), cy+r*math.Sin(angle)
			x1, y1 := cx+r*math.Cos(angle+sweep), cy+r*math.Sin(angle+sweep)
			large := 0
			if sweep > math.Pi {
				large = 1
			}
			d := fmt.Sprintf("M%.2f %.2f L%.2f %.2f A%.2f %.2f 0 %d 1 %.2f %.2f Z", cx, cy, x0, y0, r, r, large, x1, y1)
			c.Path(d, fill(color(s.Label, p.Groups)), `stroke="white"`)
		}
		c.Gend()
		angle += sweep
	}
}

func heatmap(c *svg.SVG, p *view.Panel, b box) {
	if len(p.Groups) == 0 || len(p.Layers) == 0 {
		return
	}
	cw, ch := b.w/float64(len(p.Groups)), b.h/float64(len(p.Layers))
	col, row := make(map[string]int), make(map[string]int)
	for i, g := range p.Groups {
		col[g] = i
		c.Text(round(b.x+cw*(float64(i)+0.5)), round(b.y+b.h+14), abbrev(g), `text-anchor="middle"`, `font-size="10px"`)
	}
	for i, l := range p.Layers {
		row[l] = i
	}
	top := 0.0
	for _, cell := range p.Cells {
		top = math.Max(top, cell.Value)
	}
	if top == 0 {
		top = 1
	}
	shade := scale.Linear{Min: 0, Max: top}
	for _, cell := range p.Cells {
		x, y := b.x+cw*float64(col[cell.Col]), b.y+ch*float64(row[cell.Row])
		mark(c, cell.Tooltip, cell.Drill)
		c.Rect(round(x), round(y), round(cw)-1, round(ch)-1, fill(color(cell.Row, p.Layers)),
			fmt.Sprintf(`fill-opacity="%.3f"`, 0.1+0.9*shade.Map(cell.Value)))
		c.Gend()
	}
}

func abbrev(s string) string {
	if len(s) > 3 {
		return s[:3]
	}
	return s
}

func mosaic(c *svg.SVG, p *view.Panel, b box) {
	for _, t := range p.Tiles {
		mark(c, t.Tooltip, t.Drill)
		c.Rect(round(b.x+t.X0*b.w), round(b.y+t.Y0*b.h), round((t.X1-t.X0)*b.w), round((t.Y1-t.Y0)*b.h),
			fill(color(t.Layer, p.Layers)), `stroke="white"`)
		c.Gend()
		if t.Y0 == 0 {
			c.Text(round(b.x+(t.X0+t.X1)/2*b.w), round(b.y+b.h+14), t.Group, `text-anchor="middle"`, `font-size="9px"`)
		}
	}
}

// sankey stacks each column's nodes top to bottom with heights
// proportional to their values and connects them with bands.
func sankey(c *svg.SVG, p *view.Panel, b box) {
	const nodeWidth, gap = 12.0, 8.0
	columns := 0
	colTotal := make(map[int]float64)
	colLen := make(map[int]int)
	for _, n := range p.Nodes {
		if n.Column+1 > columns {
			columns = n.Column + 1
		}
		colTotal[n.Column] += n.Value
		colLen[n.Column]++
	}
	if columns == 0 {
		return
	}
	maxTotal := 0.0
	for col, t := range colTotal {
		avail := b.h - gap*float64(colLen[col]-1)
		maxTotal = math.Max(maxTotal, t/avail)
	}
	if maxTotal == 0 {
		return
	}
	unit := 1 / maxTotal

	type pos struct{ x, y, h, out, in float64 }
	nodes := make(map[string]*pos)
	cursor := make(map[int]float64)
	step := (b.w - nodeWidth) / math.Max(1, float64(columns-1))
	for _, n := range p.Nodes {
		h := n.Value * unit
		np := &pos{x: b.x + step*float64(n.Column), y: b.y + cursor[n.Column], h: h}
		nodes[n.Name] = np
		cursor[n.Column] += h + gap
	}

	for _, l := range p.Links {
		src, dst := nodes[l.Source], nodes[l.Target]
		if src == nil || dst == nil {
			continue
		}
		w := l.Value * unit
		y0, y1 := src.y+src.out+w/2, dst.y+dst.in+w/2
		src.out += w
		dst.in += w
		x0, x1 := src.x+nodeWidth, dst.x
		mx := (x0 + x1) / 2
		stroke := "#bab0ac"
		if l.Highlight {
			stroke = fixedColors[booking.Canceled]
		}
		mark(c, fmt.Sprintf("%s → %s\n%.0f bookings", l.Source, l.Target, l.Value), nil)
		c.Path(fmt.Sprintf("M%.2f %.2f C%.2f %.2f,%.2f %.2f,%.2f %.2f", x0, y0, mx, y0, mx, y1, x1, y1),
			`fill="none"`, `stroke="`+stroke+`"`, `stroke-opacity="0.5"`, fmt.Sprintf(`stroke-width="%.2f"`, math.Max(w, 1)))
		c.Gend()
	}

	var names []string
	for _, n := range p.Nodes {
		names = append(names, n.Name)
	}
	for _, n := range p.Nodes {
		np := nodes[n.Name]
		mark(c, fmt.Sprintf("%s\n%.0f bookings", n.Name, n.Value), nil)
		c.Rect(round(np.x), round(np.y), round(nodeWidth), round(math.Max(np.h, 1)), fill(color(n.Name, names)))
		c.Gend()
		anchor, tx := `text-anchor="start"`, np.x+nodeWidth+4
		if n.Column == columns-1 {
			anchor, tx = `text-anchor="end"`, np.x-4
		}
		c.Text(round(tx), round(np.y+np.h/2+4), n.Name, anchor, `font-size="10px"`)
	}
}

// treemap lays out the hierarchy by slice and dice, alternating the
// split direction at each level.
func treemap(c *svg.SVG, p *view.Panel, b box) {
	if p.Tree == nil {
		return
	}
	var layout func(n *view.TreeNode, b box, depth int, path []string)
	layout = func(n *view.TreeNode, b box, depth int, path []string) {
		if len(n.Children) == 0 {
			mark(c, fmt.Sprintf("%s\n%.0f bookings", joinPath(path), n.Value), nil)
			c.Rect(round(b.x), round(b.y), round(b.w), round(b.h), fill(color(leafStatus(path), booking.Statuses)), `stroke="white"`)
			c.Gend()
			return
		}
		children := append([]*view.TreeNode(nil), n.Children...)
		sort.SliceStable(children, func(i, j int) bool { return children[i].Value > children[j].Value })
		off := 0.0
		for _, ch := range children {
			if n.Value == 0 {
				break
			}
			frac := ch.Value / n.Value
			var cb box
			if depth%2 == 0 {
				cb = box{b.x + off*b.w, b.y, frac * b.w, b.h}
			} else {
				cb = box{b.x, b.y + off*b.h, b.w, frac * b.h}
			}
			off += frac
			layout(ch, cb, depth+1, append(path[:len(path):len(path)], ch.Name))
			if depth == 0 && cb.w > 24 {
				c.Text(round(cb.x+3), round(cb.y+12), ch.Name, `font-size="10px"`, `fill="white"`)
			}
		}
	}
	layout(p.Tree, b, 0, nil)
}

func joinPath(path []string) string { return strings.Join(path, " / ") }

// leafStatus returns the booking status named along a treemap path.
func leafStatus(path []string) string {
	for _, p := range path {
		for _, s := range booking.Statuses {
			if strings.EqualFold(p, s) {
				return s
			}
		}
	}
	return ""
}
