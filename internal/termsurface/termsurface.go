// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package termsurface draws view scenes as styled terminal text.
package termsurface

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/hotelbookings/hotelstory/agg"
	"github.com/hotelbookings/hotelstory/booking"
	"github.com/hotelbookings/hotelstory/view"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	subtitleStyle = lipgloss.NewStyle().Faint(true)
	panelStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	noticeStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#e15759"))

	layerStyles = map[string]lipgloss.Style{
		booking.NotCanceled: lipgloss.NewStyle().Foreground(lipgloss.Color("#4e79a7")),
		booking.Canceled:    lipgloss.NewStyle().Foreground(lipgloss.Color("#e15759")),
	}
)

// Surface is a view.Surface that keeps the text of the scene drawn
// since the last Clear.
type Surface struct {
	mu    sync.Mutex
	width int
	items []item
}

// An item is one drawn scene or notice. sc is nil for a notice.
type item struct {
	sc   *view.Scene
	text string
}

// New returns a surface that lays scenes out in width columns.
func New(width int) *Surface {
	return &Surface{width: width}
}

// SetWidth lays the scenes on the surface out again in width columns.
func (s *Surface) SetWidth(width int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if width == s.width {
		return
	}
	s.width = width
	for i, it := range s.items {
		if it.sc == nil {
			continue
		}
		// A scene that rendered once only fails on its width.
		if text, err := Render(it.sc, width); err == nil {
			s.items[i].text = text
		}
	}
}

func (s *Surface) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
}

func (s *Surface) Draw(sc *view.Scene) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	text, err := Render(sc, s.width)
	if err != nil {
		return err
	}
	s.items = append(s.items, item{sc, text})
	return nil
}

func (s *Surface) Notice(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, item{text: noticeStyle.Render(msg) + "\n"})
}

// String returns the text on the surface.
func (s *Surface) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var b strings.Builder
	for _, it := range s.items {
		b.WriteString(it.text)
	}
	return b.String()
}

// Render returns sc as text at most width columns wide.
func Render(sc *view.Scene, width int) (string, error) {
	var b strings.Builder
	b.WriteString(titleStyle.Render(sc.Title) + "\n")
	if sc.Subtitle != "" {
		b.WriteString(subtitleStyle.Render(sc.Subtitle) + "\n")
	}
	if sc.Empty {
		return b.String(), nil
	}
	// Room for the border and padding.
	inner := width - 4
	if inner < 20 {
		inner = 20
	}
	var panels []string
	for _, p := range sc.Panels {
		body, err := panel(p, inner)
		if err != nil {
			return "", fmt.Errorf("%s: %w", sc.View, err)
		}
		if p.Title != "" {
			body = titleStyle.Render(p.Title) + "\n" + body
		}
		panels = append(panels, panelStyle.Render(strings.TrimRight(body, "\n")))
	}
	b.WriteString(lipgloss.JoinVertical(lipgloss.Left, panels...) + "\n")
	return b.String(), nil
}

func panel(p *view.Panel, width int) (string, error) {
	switch p.Kind {
	case view.KindBar, view.KindStacked:
		return bars(p, width), nil
	case view.KindPie:
		return pie(p, width), nil
	case view.KindHeatmap:
		return heatmap(p), nil
	case view.KindMosaic:
		return mosaic(p), nil
	case view.KindSankey:
		return sankey(p), nil
	case view.KindTreemap:
		return treemap(p), nil
	case view.KindHistogram:
		return histogram(p, width), nil
	case view.KindStrip:
		return strip(p), nil
	}
	return "", fmt.Errorf("unknown panel kind %q", p.Kind)
}

func labelWidth(labels []string) int {
	w := 0
	for _, l := range labels {
		w = max(w, lipgloss.Width(l))
	}
	return w
}

// blocks returns a run of n block characters in the style of layer.
func blocks(layer string, n int) string {
	s := strings.Repeat("█", max(n, 0))
	if st, ok := layerStyles[layer]; ok {
		return st.Render(s)
	}
	return s
}

func bars(p *view.Panel, width int) string {
	lw := labelWidth(p.Groups)
	top := 0.0
	for _, bar := range p.Bars {
		top = math.Max(top, bar.High)
	}
	if p.Percent {
		top = 100
	}
	avail := width - lw - 10
	var b strings.Builder
	for _, g := range p.Groups {
		line := fmt.Sprintf("%-*s ", lw, g)
		total := 0.0
		for _, bar := range p.Bars {
			if bar.Group != g {
				continue
			}
			n := 0
			if top > 0 {
				n = int(math.Round((bar.High - bar.Low) / top * float64(avail)))
			}
			layer := bar.Layer
			line += blocks(layer, n)
			total = math.Max(total, bar.High)
		}
		b.WriteString(fmt.Sprintf("%s %.0f\n", line, total))
	}
	if len(p.Layers) > 0 {
		b.WriteString(legend(p.Layers))
	}
	return b.String()
}

func legend(layers []string) string {
	var parts []string
	for _, l := range layers {
		parts = append(parts, blocks(l, 1)+" "+l)
	}
	return strings.Join(parts, "  ") + "\n"
}

func pie(p *view.Panel, width int) string {
	var labels []string
	for _, s := range p.Slices {
		labels = append(labels, s.Label)
	}
	lw := labelWidth(labels)
	avail := width - lw - 10
	var b strings.Builder
	for _, s := range p.Slices {
		n := int(math.Round(s.Percent / 100 * float64(avail)))
		b.WriteString(fmt.Sprintf("%-*s %s %5.1f%%\n", lw, s.Label, blocks(s.Label, n), s.Percent))
	}
	return b.String()
}

var shades = []string{" ", "░", "▒", "▓", "█"}

func heatmap(p *view.Panel) string {
	top := 0.0
	for _, c := range p.Cells {
		top = math.Max(top, c.Value)
	}
	value := make(map[[2]string]float64)
	for _, c := range p.Cells {
		value[[2]string{c.Col, c.Row}] = c.Value
	}
	lw := labelWidth(p.Layers)
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", lw+1))
	for _, g := range p.Groups {
		b.WriteString(fmt.Sprintf("%-4.3s", g))
	}
	b.WriteString("\n")
	for _, row := range p.Layers {
		b.WriteString(fmt.Sprintf("%-*s ", lw, row))
		for _, col := range p.Groups {
			i := 0
			if top > 0 {
				i = int(math.Round(value[[2]string{col, row}] / top * float64(len(shades)-1)))
			}
			b.WriteString(strings.Repeat(shades[i], 3) + " ")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func mosaic(p *view.Panel) string {
	var b strings.Builder
	lw := labelWidth(p.Groups)
	for _, t := range p.Tiles {
		b.WriteString(fmt.Sprintf("%-*s %-12s width %4.1f%%  share %5.1f%%\n",
			lw, t.Group, t.Layer, (t.X1-t.X0)*100, (t.Y1-t.Y0)*100))
	}
	return b.String()
}

func sankey(p *view.Panel) string {
	var b strings.Builder
	for _, l := range p.Links {
		line := fmt.Sprintf("%s → %s: %.0f", l.Source, l.Target, l.Value)
		if l.Highlight {
			line = layerStyles[booking.Canceled].Render(line)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func treemap(p *view.Panel) string {
	if p.Tree == nil {
		return ""
	}
	var b strings.Builder
	var walk func(n *view.TreeNode, depth int)
	walk = func(n *view.TreeNode, depth int) {
		b.WriteString(fmt.Sprintf("%s%s %.0f\n", strings.Repeat("  ", depth), n.Name, n.Value))
		children := append([]*view.TreeNode(nil), n.Children...)
		sort.SliceStable(children, func(i, j int) bool { return children[i].Value > children[j].Value })
		for _, c := range children {
			walk(c, depth+1)
		}
	}
	walk(p.Tree, 0)
	return b.String()
}

func histogram(p *view.Panel, width int) string {
	top := 0
	for _, bin := range p.Bins {
		top = max(top, bin.Count)
	}
	avail := width - 30
	var b strings.Builder
	for _, bin := range p.Bins {
		n := 0
		if top > 0 {
			n = bin.Count * avail / top
		}
		b.WriteString(fmt.Sprintf("%7.1f–%-7.1f %s %d\n", bin.Lower, bin.Upper, blocks("", n), bin.Count))
	}
	return b.String()
}

// strip summarizes each group's points, which do not fit a terminal.
func strip(p *view.Panel) string {
	byGroup := make(map[string][]float64)
	var groups []string
	for _, pt := range p.Points {
		if _, ok := byGroup[pt.Group]; !ok {
			groups = append(groups, pt.Group)
		}
		byGroup[pt.Group] = append(byGroup[pt.Group], pt.Value)
	}
	lw := labelWidth(groups)
	var b strings.Builder
	for _, g := range groups {
		lo, hi, ok := agg.Extent(byGroup[g])
		mean, err := agg.Mean(byGroup[g])
		if !ok || err != nil {
			continue
		}
		b.WriteString(fmt.Sprintf("%-*s n=%d  min %.1f  mean %.1f  max %.1f\n",
			lw, g, len(byGroup[g]), lo, mean, hi))
	}
	return b.String()
}
