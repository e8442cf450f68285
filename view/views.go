// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package view

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hotelbookings/hotelstory/agg"
	"github.com/hotelbookings/hotelstory/booking"
)

// View IDs of the standard story.
const (
	ADROverview     ID = "adr-overview"
	ADRDistribution ID = "adr-distribution"
	Cancellations   ID = "cancellations"
	Monthly         ID = "monthly"
	Heatmap         ID = "heatmap"
	ADRQuartiles    ID = "adr-quartiles"
	Mosaic          ID = "mosaic"
	HotelFlow       ID = "hotel-flow"
	FamilySankey    ID = "family-sankey"
	Treemap         ID = "treemap"
)

// Options configure the standard views.
type Options struct {
	// MosaicCountries and TreemapCountries restrict those
	// views to the listed country codes.
	MosaicCountries  []string
	TreemapCountries []string

	// HistogramBins is the number of bins of the ADR drill-down
	// histogram.
	HistogramBins int

	// StripPoints caps the number of points per hotel in the ADR
	// strip plot.
	StripPoints int

	// HighlightCanceled marks canceled flows in the hotel flow
	// sankey.
	HighlightCanceled bool
}

// DefaultOptions returns the options of the standard story.
func DefaultOptions() Options {
	mosaic := []string{
		"AUT", "BEL", "BRA", "CHE", "CN", "DEU", "ESP", "FRA",
		"GBR", "IRL", "ITA", "NLD", "PRT", "SWE",
	}
	return Options{
		MosaicCountries:  mosaic,
		TreemapCountries: append(append([]string(nil), mosaic...), "USA"),
		HistogramBins:    20,
		StripPoints:      400,
	}
}

// Standard returns the views of the standard story configured by o.
func Standard(o Options) []View {
	return []View{
		adrOverview{},
		adrDistribution{o.StripPoints},
		cancellations{},
		monthly{},
		heatmap{},
		adrQuartiles{o.HistogramBins},
		mosaic{o.MosaicCountries},
		hotelFlow{o.HighlightCanceled},
		familySankey{},
		treemap{o.TreemapCountries},
	}
}

// DefaultSteps is the step table of the standard story.
var DefaultSteps = []ID{
	ADROverview,
	ADRDistribution,
	Cancellations,
	Monthly,
	Heatmap,
	ADRQuartiles,
	Mosaic,
	FamilySankey,
	Treemap,
	HotelFlow,
}

// NewStandardRegistry returns a registry holding the standard views
// mapped to DefaultSteps.
func NewStandardRegistry(o Options) *Registry {
	r := NewRegistry()
	for _, v := range Standard(o) {
		r.Register(v)
	}
	for i, id := range DefaultSteps {
		if err := r.Map(i, id); err != nil {
			panic(err)
		}
	}
	return r
}

func emptyScene(id ID, title string, sel Selection) *Scene {
	return &Scene{View: id, Title: title, Subtitle: "No bookings match " + sel.String(), Selection: &sel, Empty: true}
}

// hotelDomain returns the hotels of ds: the known hotels first, then
// any others alphabetically.
func hotelDomain(ds booking.Dataset) []string {
	present := make(map[string]bool)
	for _, r := range ds {
		present[r.Hotel] = true
	}
	var out []string
	for _, h := range booking.Hotels {
		if present[h] {
			out = append(out, h)
			delete(present, h)
		}
	}
	var rest []string
	for h := range present {
		rest = append(rest, h)
	}
	sort.Strings(rest)
	return append(out, rest...)
}

func statusTitle(s Status) string {
	switch s {
	case Canceled:
		return "Canceled bookings"
	case NotCanceled:
		return "Kept bookings"
	}
	return "All bookings"
}

// hotelBars is the drill-down shared by the heatmap and the mosaic:
// one bar per hotel counting the selected bookings.
func hotelBars(id ID, ds booking.Dataset, sel Selection, title string) *Scene {
	sub := sel.Filter(ds)
	if len(sub) == 0 {
		return emptyScene(id, title, sel)
	}
	counts := agg.GroupCount(sub, agg.ByHotel)
	p := &Panel{Kind: KindBar, Groups: hotelDomain(sub), YLabel: "bookings"}
	for _, h := range p.Groups {
		n := counts.Get(agg.K(h))
		p.Bars = append(p.Bars, Bar{
			Group:   h,
			High:    float64(n),
			Tooltip: fmt.Sprintf("%s\n%s: %d", h, statusTitle(sel.Status), n),
		})
	}
	return &Scene{View: id, Title: title, Selection: &sel, Panels: []*Panel{p}}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
