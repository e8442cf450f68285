// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package view

import (
	"fmt"

	"github.com/hotelbookings/hotelstory/agg"
	"github.com/hotelbookings/hotelstory/booking"
)

// adrOverview compares the mean daily rate of each hotel.
type adrOverview struct{}

func (adrOverview) ID() ID { return ADROverview }

func (adrOverview) Overview(ds booking.Dataset) *Scene {
	const title = "Average daily rate by hotel"
	means, err := agg.MeanADRByHotel(ds)
	if err != nil {
		return emptyScene(ADROverview, title, Selection{})
	}
	p := &Panel{Kind: KindBar, YLabel: "mean ADR"}
	for _, m := range means {
		p.Groups = append(p.Groups, m.Hotel)
		p.Bars = append(p.Bars, Bar{
			Group:   m.Hotel,
			High:    m.Mean,
			Tooltip: fmt.Sprintf("%s\nMean ADR: %.2f\nBookings: %d", m.Hotel, m.Mean, m.N),
		})
	}
	return &Scene{View: ADROverview, Title: title, Panels: []*Panel{p}}
}

func (adrOverview) Drill(booking.Dataset, Selection, DrillOptions) (*Scene, error) {
	return nil, ErrNoDrill
}

// adrDistribution plots individual daily rates per hotel.
type adrDistribution struct {
	maxPoints int
}

func (adrDistribution) ID() ID { return ADRDistribution }

func (v adrDistribution) Overview(ds booking.Dataset) *Scene {
	const title = "Distribution of daily rates"
	valid := ds.Filter((*booking.Record).HasADR)
	if len(valid) == 0 {
		return emptyScene(ADRDistribution, title, Selection{})
	}
	p := &Panel{Kind: KindStrip, Groups: hotelDomain(valid), YLabel: "ADR"}
	for _, h := range p.Groups {
		xs := valid.Filter(func(r *booking.Record) bool { return r.Hotel == h }).ADRs()
		// Thin evenly so the plot stays readable and the
		// choice of points is deterministic.
		step := 1
		if v.maxPoints > 0 && len(xs) > v.maxPoints {
			step = (len(xs) + v.maxPoints - 1) / v.maxPoints
		}
		for i := 0; i < len(xs); i += step {
			p.Points = append(p.Points, Point{Group: h, Value: xs[i]})
		}
	}
	return &Scene{View: ADRDistribution, Title: title, Panels: []*Panel{p}}
}

func (adrDistribution) Drill(booking.Dataset, Selection, DrillOptions) (*Scene, error) {
	return nil, ErrNoDrill
}

// adrQuartiles shows the cancellation share within each ADR quartile
// of each hotel. Drilling into a (hotel, quartile) bar shows the ADR
// histogram of that quartile.
type adrQuartiles struct {
	bins int
}

func (adrQuartiles) ID() ID { return ADRQuartiles }

func (adrQuartiles) Overview(ds booking.Dataset) *Scene {
	const title = "ADR quartiles and cancellation risk"
	valid := ds.Filter((*booking.Record).HasADR)
	if len(valid) == 0 {
		return emptyScene(ADRQuartiles, title, Selection{})
	}
	q := agg.AssignQuartiles(valid, agg.ByHotel)
	counts := agg.GroupCount(valid, agg.ByHotel, q.KeyFunc(), agg.ByStatus)

	sc := &Scene{View: ADRQuartiles, Title: title}
	for _, h := range hotelDomain(valid) {
		p := &Panel{Kind: KindStacked, Title: h, Layers: booking.Statuses, Percent: true, XLabel: "share of bookings"}
		var series []agg.Series
		for _, ql := range agg.AllQuartiles {
			p.Groups = append(p.Groups, ql.String())
			kept := counts.Get(agg.K(h, ql.String(), booking.NotCanceled))
			canceled := counts.Get(agg.K(h, ql.String(), booking.Canceled))
			s := agg.Series{Group: ql.String(), Values: map[string]float64{}}
			// A quartile can be empty when many values tie
			// at a boundary; it then has no bar.
			if pc, err := agg.PercentOf(canceled, kept+canceled); err == nil {
				s.Values[booking.Canceled] = pc
				s.Values[booking.NotCanceled] = 100 - pc
			}
			series = append(series, s)
		}
		for _, st := range agg.StackLayers(series, booking.Statuses) {
			ql, _ := agg.ParseQuartile(st.Group)
			drill := &Selection{Hotel: h, Quartile: ql}
			canceled, kept := st.Segments[1].High-st.Segments[1].Low, st.Segments[0].High-st.Segments[0].Low
			for _, seg := range st.Segments {
				p.Bars = append(p.Bars, Bar{
					Group:   st.Group,
					Layer:   seg.Layer,
					Low:     seg.Low,
					High:    seg.High,
					Tooltip: fmt.Sprintf("%s\nQuartile %s\nCanceled: %.1f%%\nNot canceled: %.1f%%", h, st.Group, canceled, kept),
					Drill:   drill,
				})
			}
		}
		sc.Panels = append(sc.Panels, p)
	}
	return sc
}

func (v adrQuartiles) Drill(ds booking.Dataset, sel Selection, opts DrillOptions) (*Scene, error) {
	title := fmt.Sprintf("%s: %s ADR distribution", sel.Hotel, sel.Quartile)
	if sel.Quartile == agg.NoQuartile {
		title = fmt.Sprintf("%s: ADR distribution", sel.Hotel)
	}
	quartileFree := sel
	quartileFree.Quartile = agg.NoQuartile
	sub := quartileFree.Filter(ds).Filter((*booking.Record).HasADR)
	if len(sub) == 0 {
		return emptyScene(ADRQuartiles, title, sel), nil
	}

	var b agg.Boundaries
	if opts.RecomputeBoundaries {
		b, _ = agg.BoundariesOf(sub.ADRs())
	} else {
		parent := agg.AssignQuartiles(ds.Filter((*booking.Record).HasADR), agg.ByHotel)
		var ok bool
		if b, ok = parent.Bounds(sel.Hotel); !ok {
			return emptyScene(ADRQuartiles, title, sel), nil
		}
	}
	if sel.Quartile != agg.NoQuartile {
		sub = sub.Filter(func(r *booking.Record) bool {
			return agg.AssignQuartile(r.ADR, b) == sel.Quartile
		})
	}
	xs := sub.ADRs()
	lo, hi, ok := agg.Extent(xs)
	if !ok {
		return emptyScene(ADRQuartiles, title, sel), nil
	}
	p := &Panel{
		Kind:   KindHistogram,
		XLabel: "ADR",
		YLabel: "bookings",
		Bins:   agg.HistogramBins(xs, lo, hi, v.bins),
	}
	return &Scene{
		View:      ADRQuartiles,
		Title:     title,
		Subtitle:  fmt.Sprintf("Quartile boundaries %.2f / %.2f / %.2f", b.Q1, b.Q2, b.Q3),
		Selection: &sel,
		Panels:    []*Panel{p},
	}, nil
}
