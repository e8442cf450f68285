// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package view

import (
	"fmt"

	"github.com/hotelbookings/hotelstory/agg"
	"github.com/hotelbookings/hotelstory/booking"
)

// cancellations is the global cancellation share next to the
// per-hotel counts. Drilling into a hotel shows its bookings by
// arrival month.
type cancellations struct{}

func (cancellations) ID() ID { return Cancellations }

func (cancellations) Overview(ds booking.Dataset) *Scene {
	const title = "Cancellations overall and by hotel"
	if len(ds) == 0 {
		return emptyScene(Cancellations, title, Selection{})
	}

	byStatus := agg.GroupCount(ds, agg.ByStatus)
	pie := &Panel{Kind: KindPie, Title: "All bookings", Groups: booking.Statuses}
	for _, s := range booking.Statuses {
		n := byStatus.Get(agg.K(s))
		pc, _ := agg.PercentOf(n, len(ds))
		pie.Slices = append(pie.Slices, Slice{
			Label:   s,
			Value:   float64(n),
			Percent: pc,
			Tooltip: fmt.Sprintf("%s\n%d bookings (%.1f%%)", capitalize(s), n, pc),
		})
	}

	hotels := hotelDomain(ds)
	bars := &Panel{Kind: KindStacked, Title: "Cancellations by hotel", Groups: hotels, Layers: booking.Statuses, YLabel: "bookings"}
	bars.Bars = stackedCounts(agg.GroupCount(ds, agg.ByHotel, agg.ByStatus), hotels, func(h string) *Selection {
		return &Selection{Hotel: h}
	})

	return &Scene{View: Cancellations, Title: title, Panels: []*Panel{pie, bars}}
}

func (cancellations) Drill(ds booking.Dataset, sel Selection, _ DrillOptions) (*Scene, error) {
	title := sel.Hotel + ": bookings by arrival month"
	sub := sel.Filter(ds)
	if len(sub) == 0 {
		return emptyScene(Cancellations, title, sel), nil
	}
	p := monthlyPanel(sub)
	return &Scene{View: Cancellations, Title: title, Selection: &sel, Panels: []*Panel{p}}, nil
}

// stackedCounts stacks two-level counts keyed by (group, status) for
// the given groups, kept bookings beneath canceled ones.
func stackedCounts(c *agg.Counts, groups []string, drill func(group string) *Selection) []Bar {
	series := make([]agg.Series, len(groups))
	for i, g := range groups {
		vals := make(map[string]float64)
		for _, s := range booking.Statuses {
			vals[s] = float64(c.Get(agg.K(g, s)))
		}
		series[i] = agg.Series{Group: g, Values: vals}
	}
	var bars []Bar
	for _, st := range agg.StackLayers(series, booking.Statuses) {
		var d *Selection
		if drill != nil {
			d = drill(st.Group)
		}
		for _, seg := range st.Segments {
			bars = append(bars, Bar{
				Group:   st.Group,
				Layer:   seg.Layer,
				Low:     seg.Low,
				High:    seg.High,
				Tooltip: fmt.Sprintf("%s\n%s: %.0f", st.Group, capitalize(seg.Layer), seg.High-seg.Low),
				Drill:   d,
			})
		}
	}
	return bars
}

func monthlyPanel(ds booking.Dataset) *Panel {
	p := &Panel{Kind: KindStacked, Groups: booking.Months, Layers: booking.Statuses, XLabel: "arrival month", YLabel: "bookings"}
	p.Bars = stackedCounts(agg.GroupCount(ds, agg.ByMonth, agg.ByStatus), booking.Months, nil)
	return p
}

// monthly stacks kept and canceled bookings by arrival month.
type monthly struct{}

func (monthly) ID() ID { return Monthly }

func (monthly) Overview(ds booking.Dataset) *Scene {
	const title = "Cancellations by arrival month"
	if len(ds) == 0 {
		return emptyScene(Monthly, title, Selection{})
	}
	return &Scene{View: Monthly, Title: title, Panels: []*Panel{monthlyPanel(ds)}}
}

func (monthly) Drill(booking.Dataset, Selection, DrillOptions) (*Scene, error) {
	return nil, ErrNoDrill
}

// heatmap is the month by status booking count grid. Drilling into a
// cell shows the per-hotel counts of that month and status.
type heatmap struct{}

func (heatmap) ID() ID { return Heatmap }

func (heatmap) Overview(ds booking.Dataset) *Scene {
	const title = "Seasonality of cancellations by arrival month"
	if len(ds) == 0 {
		return emptyScene(Heatmap, title, Selection{})
	}
	counts := agg.GroupCount(ds, agg.ByMonth, agg.ByStatus)
	p := &Panel{Kind: KindHeatmap, Groups: booking.Months, Layers: booking.Statuses, XLabel: "arrival month"}
	for _, b := range agg.Densify(counts, booking.Months, booking.Statuses) {
		month, status := b.Key[0], b.Key[1]
		m, _ := booking.ParseMonth(month)
		st, _ := ParseStatus(status)
		p.Cells = append(p.Cells, Cell{
			Col:     month,
			Row:     status,
			Value:   float64(b.Count),
			Tooltip: fmt.Sprintf("%s\n%s\nBookings: %d", month, capitalize(status), b.Count),
			Drill:   &Selection{Month: m, Status: st},
		})
	}
	return &Scene{View: Heatmap, Title: title, Panels: []*Panel{p}}
}

func (heatmap) Drill(ds booking.Dataset, sel Selection, _ DrillOptions) (*Scene, error) {
	when := "All months"
	if sel.Month != 0 {
		when = sel.Month.String()
	}
	title := fmt.Sprintf("%s: %s", when, statusTitle(sel.Status))
	return hotelBars(Heatmap, ds, sel, title), nil
}
