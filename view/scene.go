// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package view

import (
	"fmt"
	"math"

	"github.com/hotelbookings/hotelstory/agg"
)

// A Kind is the chart type of a Panel.
type Kind string

const (
	KindBar       Kind = "bar"
	KindStacked   Kind = "stacked"
	KindPie       Kind = "pie"
	KindHeatmap   Kind = "heatmap"
	KindMosaic    Kind = "mosaic"
	KindSankey    Kind = "sankey"
	KindTreemap   Kind = "treemap"
	KindHistogram Kind = "histogram"
	KindStrip     Kind = "strip"
)

// A Scene is everything a Surface needs to draw one view: the
// aggregates behind each mark, the tooltip text of each mark, and the
// drill-down each mark leads to. Scenes are plain data; two renders of
// the same view over the same inputs produce equal Scenes.
type Scene struct {
	View     ID
	Title    string
	Subtitle string

	// Selection is the drill-down context, or nil for an overview.
	Selection *Selection

	// Empty is set when the selection matched no records. An
	// empty Scene has no panels.
	Empty bool

	Panels []*Panel
}

// A Panel is one chart within a Scene.
type Panel struct {
	Kind  Kind
	Title string

	// Groups and Layers give the category domains of the panel in
	// display order.
	Groups []string
	Layers []string

	// XLabel and YLabel name the axes, where there are axes.
	XLabel, YLabel string

	// Percent indicates that values are percentages.
	Percent bool

	Bars   []Bar
	Slices []Slice
	Cells  []Cell
	Tiles  []Tile
	Nodes  []FlowNode
	Links  []Link
	Bins   []agg.Bin
	Points []Point
	Tree   *TreeNode
}

// A Bar is one (possibly stacked) bar segment spanning [Low, High).
type Bar struct {
	Group, Layer string
	Low, High    float64
	Tooltip      string
	Drill        *Selection
}

// A Slice is one pie wedge.
type Slice struct {
	Label   string
	Value   float64
	Percent float64
	Tooltip string
	Drill   *Selection
}

// A Cell is one heatmap cell.
type Cell struct {
	Col, Row string
	Value    float64
	Tooltip  string
	Drill    *Selection
}

// A Tile is one mosaic rectangle in unit coordinates: [X0, X1) and
// [Y0, Y1) are within [0, 1].
type Tile struct {
	Group, Layer   string
	X0, X1, Y0, Y1 float64
	Tooltip        string
	Drill          *Selection
}

// A FlowNode is a sankey node. Column orders nodes left to right.
type FlowNode struct {
	Name     string
	Column   int
	Value    float64
	Category string
}

// A Link is a sankey flow between two nodes by name.
type Link struct {
	Source, Target string
	Value          float64
	Highlight      bool
}

// A Point is one observation of a strip plot.
type Point struct {
	Group string
	Value float64
}

// A TreeNode is one node of a treemap hierarchy. A leaf's Value is
// its count; an inner node's Value is the sum of its children.
type TreeNode struct {
	Name     string
	Value    float64
	Children []*TreeNode
}

// Leaves returns the leaves under n in depth-first order.
func (n *TreeNode) Leaves() []*TreeNode {
	if len(n.Children) == 0 {
		return []*TreeNode{n}
	}
	var out []*TreeNode
	for _, c := range n.Children {
		out = append(out, c.Leaves()...)
	}
	return out
}

// Targets returns the distinct drill-down selections reachable from
// the marks of s, in mark order.
func (s *Scene) Targets() []Selection {
	var out []Selection
	seen := make(map[Selection]bool)
	add := func(sel *Selection) {
		if sel != nil && !seen[*sel] {
			seen[*sel] = true
			out = append(out, *sel)
		}
	}
	for _, p := range s.Panels {
		for _, b := range p.Bars {
			add(b.Drill)
		}
		for _, sl := range p.Slices {
			add(sl.Drill)
		}
		for _, c := range p.Cells {
			add(c.Drill)
		}
		for _, t := range p.Tiles {
			add(t.Drill)
		}
	}
	return out
}

// Validate checks that every number in s is finite. A NaN in a
// scene would become a NaN height or width on the surface.
func (s *Scene) Validate() error {
	if s.Empty && len(s.Panels) != 0 {
		return fmt.Errorf("%s: empty scene has %d panels", s.View, len(s.Panels))
	}
	for i, p := range s.Panels {
		bad := func(what string, v float64) error {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%s: panel %d: %s is %v", s.View, i, what, v)
			}
			return nil
		}
		var err error
		check := func(what string, vs ...float64) {
			for _, v := range vs {
				if err == nil {
					err = bad(what, v)
				}
			}
		}
		for _, b := range p.Bars {
			check("bar", b.Low, b.High)
		}
		for _, sl := range p.Slices {
			check("slice", sl.Value, sl.Percent)
		}
		for _, c := range p.Cells {
			check("cell", c.Value)
		}
		for _, t := range p.Tiles {
			check("tile", t.X0, t.X1, t.Y0, t.Y1)
		}
		for _, n := range p.Nodes {
			check("node", n.Value)
		}
		for _, l := range p.Links {
			check("link", l.Value)
		}
		for _, b := range p.Bins {
			check("bin", b.Lower, b.Upper)
		}
		for _, pt := range p.Points {
			check("point", pt.Value)
		}
		if p.Tree != nil {
			var walk func(n *TreeNode)
			walk = func(n *TreeNode) {
				check("tree node "+n.Name, n.Value)
				for _, c := range n.Children {
					walk(c)
				}
			}
			walk(p.Tree)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// A Surface is a drawing target for Scenes. The controller treats it
// as opaque: it only clears it, draws on it, and posts notices.
type Surface interface {
	// Clear cancels any in-progress drawing and removes
	// everything drawn so far.
	Clear()

	// Draw draws a scene on a cleared surface.
	Draw(*Scene) error

	// Notice displays a message in place of a scene, for example
	// when the dataset cannot be loaded.
	Notice(msg string)
}
