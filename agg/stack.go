// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package agg

// A Series is the per-layer values of one group to be stacked.
type Series struct {
	Group  string
	Values map[string]float64
}

// A Segment is one layer of a stacked group, spanning [Low, High).
type Segment struct {
	Layer     string
	Low, High float64
}

// A Stack is the stacked layers of one group, in layer order.
type Stack struct {
	Group    string
	Segments []Segment
}

// Top returns the cumulative height of s.
func (s Stack) Top() float64 {
	if len(s.Segments) == 0 {
		return 0
	}
	return s.Segments[len(s.Segments)-1].High
}

// StackLayers stacks each series by prefix sum in layerOrder, which is
// the same for every group. Layers missing from a series contribute
// zero-height segments, so every Stack has len(layerOrder) segments.
func StackLayers(series []Series, layerOrder []string) []Stack {
	out := make([]Stack, len(series))
	for i, s := range series {
		st := Stack{Group: s.Group, Segments: make([]Segment, len(layerOrder))}
		y := 0.0
		for j, layer := range layerOrder {
			v := s.Values[layer]
			st.Segments[j] = Segment{Layer: layer, Low: y, High: y + v}
			y += v
		}
		out[i] = st
	}
	return out
}

// MaxTop returns the largest Top of stacks.
func MaxTop(stacks []Stack) float64 {
	m := 0.0
	for _, s := range stacks {
		if t := s.Top(); t > m {
			m = t
		}
	}
	return m
}
