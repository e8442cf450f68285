// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package view

import (
	"github.com/hotelbookings/hotelstory/agg"
	"github.com/hotelbookings/hotelstory/booking"
)

// Sankey node categories.
const (
	categoryFamily = "family"
	categoryHotel  = "hotel"
	categoryStatus = "status"
)

// flowBuilder accumulates sankey nodes and links. Node values are the
// larger of their inflow and outflow.
type flowBuilder struct {
	p        *Panel
	index    map[string]int
	in, out  map[string]float64
	canceled bool
}

func newFlowBuilder(p *Panel, highlightCanceled bool) *flowBuilder {
	return &flowBuilder{p: p, index: make(map[string]int), in: make(map[string]float64), out: make(map[string]float64), canceled: highlightCanceled}
}

func (b *flowBuilder) node(name string, column int, category string) {
	if _, ok := b.index[name]; ok {
		return
	}
	b.index[name] = len(b.p.Nodes)
	b.p.Nodes = append(b.p.Nodes, FlowNode{Name: name, Column: column, Category: category})
}

// links adds one link per two-level group of c. Groups of zero
// records are absent from c and so get no link.
func (b *flowBuilder) links(c *agg.Counts) {
	for _, k := range c.Keys() {
		v := float64(c.Get(k))
		b.p.Links = append(b.p.Links, Link{
			Source:    k[0],
			Target:    k[1],
			Value:     v,
			Highlight: b.canceled && k[1] == booking.Canceled,
		})
		b.out[k[0]] += v
		b.in[k[1]] += v
	}
}

func (b *flowBuilder) done() {
	for i := range b.p.Nodes {
		n := &b.p.Nodes[i]
		n.Value = b.in[n.Name]
		if b.out[n.Name] > n.Value {
			n.Value = b.out[n.Name]
		}
	}
}

// hotelFlow is the hotel to check-out or cancellation sankey.
type hotelFlow struct {
	highlight bool
}

func (hotelFlow) ID() ID { return HotelFlow }

func (v hotelFlow) Overview(ds booking.Dataset) *Scene {
	const title = "Where bookings end up"
	if len(ds) == 0 {
		return emptyScene(HotelFlow, title, Selection{})
	}
	p := &Panel{Kind: KindSankey}
	b := newFlowBuilder(p, v.highlight)
	for _, h := range hotelDomain(ds) {
		b.node(h, 0, categoryHotel)
	}
	for _, s := range booking.Statuses {
		b.node(s, 1, categoryStatus)
	}
	b.links(agg.GroupCount(ds, agg.ByHotel, agg.ByStatus))
	b.done()
	return &Scene{View: HotelFlow, Title: title, Panels: []*Panel{p}}
}

func (hotelFlow) Drill(booking.Dataset, Selection, DrillOptions) (*Scene, error) {
	return nil, ErrNoDrill
}

// familySankey follows bookings from family type through hotel to
// cancellation status.
type familySankey struct{}

func (familySankey) ID() ID { return FamilySankey }

func (familySankey) Overview(ds booking.Dataset) *Scene {
	const title = "Children, babies, and cancellations"
	if len(ds) == 0 {
		return emptyScene(FamilySankey, title, Selection{})
	}
	p := &Panel{Kind: KindSankey}
	b := newFlowBuilder(p, false)
	for _, f := range []string{booking.WithChildren, booking.WithoutChildren} {
		b.node(f, 0, categoryFamily)
	}
	for _, h := range hotelDomain(ds) {
		b.node(h, 1, categoryHotel)
	}
	for _, s := range booking.Statuses {
		b.node(s, 2, categoryStatus)
	}
	b.links(agg.GroupCount(ds, agg.ByFamily, agg.ByHotel))
	b.links(agg.GroupCount(ds, agg.ByHotel, agg.ByStatus))
	b.done()
	return &Scene{View: FamilySankey, Title: title, Panels: []*Panel{p}}
}

func (familySankey) Drill(booking.Dataset, Selection, DrillOptions) (*Scene, error) {
	return nil, ErrNoDrill
}
