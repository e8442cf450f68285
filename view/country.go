// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package view

import (
	"fmt"
	"sort"

	"github.com/hotelbookings/hotelstory/agg"
	"github.com/hotelbookings/hotelstory/booking"
)

func inCountries(ds booking.Dataset, countries []string) booking.Dataset {
	set := make(map[string]bool, len(countries))
	for _, c := range countries {
		set[c] = true
	}
	return ds.Filter(func(r *booking.Record) bool { return set[r.Country] })
}

// mosaic shows each top country as a column whose width is its share
// of bookings, split by cancellation status. Drilling into a tile
// shows the per-hotel counts of that country and status.
type mosaic struct {
	countries []string
}

func (mosaic) ID() ID { return Mosaic }

func (v mosaic) Overview(ds booking.Dataset) *Scene {
	const title = "Cancellations by country"
	sub := inCountries(ds, v.countries)
	if len(sub) == 0 {
		return emptyScene(Mosaic, title, Selection{})
	}
	counts := agg.GroupCount(sub, agg.ByCountry, agg.ByStatus)
	byCountry := agg.GroupCount(sub, agg.ByCountry)

	countries := byCountry.Firsts()
	sort.SliceStable(countries, func(i, j int) bool {
		ni, nj := byCountry.Get(agg.K(countries[i])), byCountry.Get(agg.K(countries[j]))
		if ni != nj {
			return ni > nj
		}
		return countries[i] < countries[j]
	})

	total := float64(len(sub))
	p := &Panel{Kind: KindMosaic, Groups: countries, Layers: booking.Statuses}
	x := 0.0
	for _, c := range countries {
		n := byCountry.Get(agg.K(c))
		w := float64(n) / total
		y := 0.0
		for _, s := range booking.Statuses {
			k := counts.Get(agg.K(c, s))
			if k == 0 {
				continue
			}
			pc, _ := agg.PercentOf(k, n)
			st, _ := ParseStatus(s)
			p.Tiles = append(p.Tiles, Tile{
				Group:   c,
				Layer:   s,
				X0:      x,
				X1:      x + w,
				Y0:      y,
				Y1:      y + pc/100,
				Tooltip: fmt.Sprintf("%s\n%s\n%.1f%%", c, capitalize(s), pc),
				Drill:   &Selection{Country: c, Status: st},
			})
			y += pc / 100
		}
		x += w
	}
	return &Scene{View: Mosaic, Title: title, Panels: []*Panel{p}}
}

func (mosaic) Drill(ds booking.Dataset, sel Selection, _ DrillOptions) (*Scene, error) {
	title := fmt.Sprintf("%s: %s", sel.Country, statusTitle(sel.Status))
	return hotelBars(Mosaic, ds, sel, title), nil
}

// treemap nests bookings of the top countries by country, status,
// and hotel.
type treemap struct {
	countries []string
}

func (treemap) ID() ID { return Treemap }

func (v treemap) Overview(ds booking.Dataset) *Scene {
	const title = "Bookings by country, status, and hotel"
	sub := inCountries(ds, v.countries)
	if len(sub) == 0 {
		return emptyScene(Treemap, title, Selection{})
	}
	counts := agg.GroupCount(sub, agg.ByCountry, agg.ByStatus, agg.ByHotel)
	root := &TreeNode{Name: "Total"}
	for _, c := range counts.Firsts() {
		cn := &TreeNode{Name: c}
		byStatus := counts.Sub(c)
		for _, s := range byStatus.Firsts() {
			sn := &TreeNode{Name: capitalize(s)}
			byHotel := byStatus.Sub(s)
			for _, k := range byHotel.Keys() {
				n := float64(byHotel.Get(k))
				sn.Children = append(sn.Children, &TreeNode{Name: k[0], Value: n})
				sn.Value += n
			}
			cn.Children = append(cn.Children, sn)
			cn.Value += sn.Value
		}
		root.Children = append(root.Children, cn)
		root.Value += cn.Value
	}
	sortTree(root)
	return &Scene{View: Treemap, Title: title, Panels: []*Panel{{Kind: KindTreemap, Tree: root}}}
}

// sortTree orders children by decreasing value, then by name.
func sortTree(n *TreeNode) {
	sort.SliceStable(n.Children, func(i, j int) bool {
		a, b := n.Children[i], n.Children[j]
		if a.Value != b.Value {
			return a.Value > b.Value
		}
		return a.Name < b.Name
	})
	for _, c := range n.Children {
		sortTree(c)
	}
}

func (treemap) Drill(booking.Dataset, Selection, DrillOptions) (*Scene, error) {
	return nil, ErrNoDrill
}
