// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package agg

import (
	"fmt"
	"math"
	"sort"

	"github.com/aclements/go-gg/ggstat"
	"github.com/aclements/go-gg/table"
	"github.com/hotelbookings/hotelstory/booking"
)

// Columns of the table produced by Table.
const (
	ColHotel   = "hotel"
	ColCountry = "country"
	ColMonth   = "month"
	ColStatus  = "status"
	ColADR     = "adr"
	ColFamily  = "family"
)

// Table returns recs as a go-gg table with one row per record. ADR is
// NaN for records without a usable rate.
func Table(recs booking.Dataset) *table.Table {
	n := len(recs)
	var (
		hotels    = make([]string, n)
		countries = make([]string, n)
		months    = make([]string, n)
		statuses  = make([]string, n)
		adrs      = make([]float64, n)
		families  = make([]string, n)
	)
	for i, r := range recs {
		hotels[i] = r.Hotel
		countries[i] = r.Country
		months[i] = r.ArrivalMonth.String()
		statuses[i] = r.Status()
		adrs[i] = r.ADR
		families[i] = r.Family()
	}
	return new(table.Builder).
		Add(ColHotel, hotels).
		Add(ColCountry, countries).
		Add(ColMonth, months).
		Add(ColStatus, statuses).
		Add(ColADR, adrs).
		Add(ColFamily, families).
		Done()
}

// KeyFor returns the grouping key of categorical column col.
func KeyFor(col string) (KeyFunc, bool) {
	switch col {
	case ColHotel:
		return ByHotel, true
	case ColCountry:
		return ByCountry, true
	case ColMonth:
		return ByMonth, true
	case ColStatus:
		return ByStatus, true
	case ColFamily:
		return ByFamily, true
	}
	return nil, false
}

func removeNaNs(g table.Grouping, col string) table.Grouping {
	return table.Filter(g, func(v float64) bool {
		return !math.IsNaN(v)
	}, col)
}

// A HotelMean is the mean ADR of one hotel.
type HotelMean struct {
	Hotel string
	Mean  float64
	N     int
}

// MeanADRByHotel returns the mean usable ADR of each hotel, in
// booking.Hotels order followed by any other hotels alphabetically.
func MeanADRByHotel(recs booking.Dataset) ([]HotelMean, error) {
	valid := recs.Filter((*booking.Record).HasADR)
	if len(valid) == 0 {
		return nil, ErrEmpty
	}
	sizes := GroupCount(valid, ByHotel)

	g := removeNaNs(Table(valid), ColADR)
	g = ggstat.Agg(ColHotel)(ggstat.AggMean(ColADR)).F(g)

	var out []HotelMean
	for _, gid := range g.Tables() {
		t := g.Table(gid)
		hotels := t.MustColumn(ColHotel).([]string)
		means := t.MustColumn("mean " + ColADR).([]float64)
		for i, h := range hotels {
			out = append(out, HotelMean{h, means[i], sizes.Get(K(h))})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		oi, oj := hotelOrder(out[i].Hotel), hotelOrder(out[j].Hotel)
		if oi != oj {
			return oi < oj
		}
		return out[i].Hotel < out[j].Hotel
	})
	return out, nil
}

func hotelOrder(h string) int {
	for i, known := range booking.Hotels {
		if h == known {
			return i
		}
	}
	return len(booking.Hotels)
}

// CountTable returns c as a go-gg table with one column per key
// component, named by names, and a "count" column.
func CountTable(c *Counts, names ...string) *table.Table {
	if len(names) != c.arity {
		panic(fmt.Sprintf("CountTable: %d names for arity %d", len(names), c.arity))
	}
	cols := make([][]string, c.arity)
	counts := make([]int, 0, c.Len())
	for _, k := range c.keys {
		for i := range cols {
			cols[i] = append(cols[i], k[i])
		}
		counts = append(counts, c.m[k])
	}
	b := new(table.Builder)
	for i, name := range names {
		col := cols[i]
		if col == nil {
			col = []string{}
		}
		b.Add(name, col)
	}
	return b.Add("count", counts).Done()
}
