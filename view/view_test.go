// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package view

import (
	"errors"
	"math"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/hotelbookings/hotelstory/agg"
	"github.com/hotelbookings/hotelstory/booking"
)

func testDataset() booking.Dataset {
	r := rand.New(rand.NewSource(1))
	countries := []string{"PRT", "GBR", "ESP", "FRA", "USA", "XXX"}
	ds := make(booking.Dataset, 500)
	for i := range ds {
		adr := 40 + math.Round(r.Float64()*2000)/10
		if i%50 == 0 {
			adr = math.NaN()
		}
		ds[i] = &booking.Record{
			Hotel:        booking.Hotels[r.Intn(2)],
			Country:      countries[r.Intn(len(countries))],
			ArrivalMonth: time.Month(1 + r.Intn(12)),
			IsCanceled:   r.Intn(3) == 0,
			ADR:          adr,
			Children:     r.Intn(4) / 3,
			Babies:       r.Intn(10) / 9,
		}
	}
	return ds
}

func TestRenderIdempotent(t *testing.T) {
	ds := testDataset()
	reg := NewStandardRegistry(DefaultOptions())
	for _, id := range reg.IDs() {
		a, err := reg.Scene(id, ds, nil)
		if err != nil {
			t.Errorf("%s: %v", id, err)
			continue
		}
		b, _ := reg.Scene(id, ds, nil)
		if diff := cmp.Diff(a, b); diff != "" {
			t.Errorf("%s: second render differs (-first +second):\n%s", id, diff)
		}
		if a.Empty || len(a.Panels) == 0 {
			t.Errorf("%s: overview is empty", id)
		}

		// Every drill target of the overview renders.
		for _, sel := range a.Targets() {
			sel := sel
			d, err := reg.Scene(id, ds, &sel)
			if err != nil {
				t.Errorf("%s: drill %v: %v", id, sel, err)
				continue
			}
			if d.Selection == nil || *d.Selection != sel {
				t.Errorf("%s: drill %v: scene selection %v", id, sel, d.Selection)
			}
		}
	}
}

func TestEmptyDataset(t *testing.T) {
	reg := NewStandardRegistry(DefaultOptions())
	for _, id := range reg.IDs() {
		sc, err := reg.Scene(id, booking.Dataset{}, nil)
		if err != nil {
			t.Errorf("%s: %v", id, err)
			continue
		}
		if !sc.Empty || len(sc.Panels) != 0 {
			t.Errorf("%s: empty dataset gave non-empty scene", id)
		}
	}
}

func TestDrillNoMatches(t *testing.T) {
	ds := testDataset()
	reg := NewStandardRegistry(DefaultOptions())
	sel := Selection{Country: "XYZ", Status: Canceled}
	sc, err := reg.Scene(Mosaic, ds, &sel)
	if err != nil {
		t.Fatal(err)
	}
	if !sc.Empty || len(sc.Panels) != 0 {
		t.Errorf("drill into %v: want empty scene, got %d panels", sel, len(sc.Panels))
	}
	if err := sc.Validate(); err != nil {
		t.Error(err)
	}
}

func TestDrillTitles(t *testing.T) {
	ds := testDataset()
	reg := NewStandardRegistry(DefaultOptions())
	tests := []struct {
		id     ID
		sel    Selection
		prefix string
		status string
	}{
		{Mosaic, Selection{Country: "PRT"}, "PRT", "All bookings"},
		{Mosaic, Selection{Country: "PRT", Status: Canceled}, "PRT", "Canceled bookings"},
		{Mosaic, Selection{Country: "PRT", Status: NotCanceled}, "PRT", "Kept bookings"},
		{Heatmap, Selection{Month: time.March}, "March", "All bookings"},
	}
	for _, test := range tests {
		sc, err := reg.Scene(test.id, ds, &test.sel)
		if err != nil {
			t.Errorf("%s %v: %v", test.id, test.sel, err)
			continue
		}
		if want := test.prefix + ": " + test.status; sc.Title != want {
			t.Errorf("%s %v: title %q, want %q", test.id, test.sel, sc.Title, want)
		}
		for _, b := range sc.Panels[0].Bars {
			if !strings.Contains(b.Tooltip, test.status) {
				t.Errorf("%s %v: tooltip %q does not name %q", test.id, test.sel, b.Tooltip, test.status)
			}
		}
	}
}

func TestDrillUnsupported(t *testing.T) {
	reg := NewStandardRegistry(DefaultOptions())
	sel := Selection{Hotel: booking.CityHotel}
	if _, err := reg.Scene(Monthly, testDataset(), &sel); !errors.Is(err, ErrNoDrill) {
		t.Errorf("drill into monthly: got %v, want ErrNoDrill", err)
	}
	if _, err := reg.Scene("nope", nil, nil); !errors.Is(err, ErrUnknownView) {
		t.Errorf("unknown view: got %v", err)
	}
}

func TestMonthlyStacking(t *testing.T) {
	ds := testDataset()
	sc := monthly{}.Overview(ds)
	p := sc.Panels[0]
	if len(p.Bars) != 24 {
		t.Fatalf("got %d bars, want 24", len(p.Bars))
	}
	total := 0.0
	for i := 0; i < len(p.Bars); i += 2 {
		kept, canceled := p.Bars[i], p.Bars[i+1]
		if kept.Layer != booking.NotCanceled || canceled.Layer != booking.Canceled {
			t.Fatalf("layer order %s, %s", kept.Layer, canceled.Layer)
		}
		if kept.Low != 0 || canceled.Low != kept.High {
			t.Errorf("%s: segments [%v,%v) [%v,%v) not stacked", kept.Group, kept.Low, kept.High, canceled.Low, canceled.High)
		}
		total += canceled.High
	}
	if int(total) != len(ds) {
		t.Errorf("stacked total %v, want %d", total, len(ds))
	}
}

func TestQuartileShares(t *testing.T) {
	sc := adrQuartiles{20}.Overview(testDataset())
	if len(sc.Panels) != 2 {
		t.Fatalf("got %d panels, want one per hotel", len(sc.Panels))
	}
	for _, p := range sc.Panels {
		for _, b := range p.Bars {
			if b.Layer == booking.Canceled && b.High != 0 && math.Abs(b.High-100) > 1e-9 {
				t.Errorf("%s %s: stacked share ends at %v, want 100", p.Title, b.Group, b.High)
			}
			if b.Drill == nil || b.Drill.Hotel != p.Title || b.Drill.Quartile == agg.NoQuartile {
				t.Errorf("%s %s: bad drill %v", p.Title, b.Group, b.Drill)
			}
		}
	}
}

func TestQuartileDrillBoundaries(t *testing.T) {
	// Within Spain the City Hotel rates are all high, so
	// recomputed boundaries differ from the hotel-wide ones.
	ds := booking.Dataset{}
	for i := 1; i <= 8; i++ {
		ds = append(ds, &booking.Record{Hotel: booking.CityHotel, Country: "PRT", ArrivalMonth: time.May, ADR: float64(10 * i)})
		ds = append(ds, &booking.Record{Hotel: booking.CityHotel, Country: "ESP", ArrivalMonth: time.May, ADR: float64(100 + i)})
	}
	sel := Selection{Hotel: booking.CityHotel, Country: "ESP", Quartile: agg.Q1}
	v := adrQuartiles{4}

	inherited, err := v.Drill(ds, sel, DrillOptions{})
	if err != nil {
		t.Fatal(err)
	}
	// Hotel-wide Q1 is 47.5: no Spanish booking is below it.
	if !inherited.Empty {
		t.Errorf("inherited boundaries: want empty scene, got %+v", inherited.Panels)
	}

	recomputed, err := v.Drill(ds, sel, DrillOptions{RecomputeBoundaries: true})
	if err != nil {
		t.Fatal(err)
	}
	if recomputed.Empty {
		t.Fatalf("recomputed boundaries: got empty scene")
	}
	n := 0
	for _, b := range recomputed.Panels[0].Bins {
		n += b.Count
	}
	// Spanish rates 101..108: Q1 = 102.75 covers 101 and 102.
	if n != 2 {
		t.Errorf("recomputed Q1 has %d bookings, want 2", n)
	}
}

func TestHeatmapDensified(t *testing.T) {
	ds := booking.Dataset{{Hotel: booking.CityHotel, ArrivalMonth: time.March, IsCanceled: true, ADR: 1}}
	sc := heatmap{}.Overview(ds)
	cells := sc.Panels[0].Cells
	if len(cells) != 24 {
		t.Fatalf("got %d cells, want 24", len(cells))
	}
	for _, c := range cells {
		want := 0.0
		if c.Col == "March" && c.Row == booking.Canceled {
			want = 1
		}
		if c.Value != want {
			t.Errorf("cell %s/%s = %v, want %v", c.Col, c.Row, c.Value, want)
		}
	}
	d, _ := heatmap{}.Drill(ds, *cells[5].Drill, DrillOptions{})
	if d.Empty || d.Panels[0].Bars[0].High != 1 {
		t.Errorf("drill into March canceled: %+v", d)
	}
}

func TestMosaicTiles(t *testing.T) {
	sc := mosaic{DefaultOptions().MosaicCountries}.Overview(testDataset())
	p := sc.Panels[0]
	width := 0.0
	last := ""
	for _, tile := range p.Tiles {
		if tile.Group == "USA" || tile.Group == "XXX" {
			t.Errorf("country %s is not in the mosaic list", tile.Group)
		}
		if tile.Group != last {
			width += tile.X1 - tile.X0
			last = tile.Group
		}
	}
	if math.Abs(width-1) > 1e-9 {
		t.Errorf("column widths sum to %v, want 1", width)
	}
}

func TestTreemapTotals(t *testing.T) {
	ds := testDataset()
	o := DefaultOptions()
	sc := treemap{o.TreemapCountries}.Overview(ds)
	root := sc.Panels[0].Tree
	want := len(inCountries(ds, o.TreemapCountries))
	if int(root.Value) != want {
		t.Errorf("root value %v, want %d", root.Value, want)
	}
	sum := 0.0
	for _, l := range root.Leaves() {
		sum += l.Value
	}
	if sum != root.Value {
		t.Errorf("leaves sum to %v, root is %v", sum, root.Value)
	}
	for i := 1; i < len(root.Children); i++ {
		if root.Children[i].Value > root.Children[i-1].Value {
			t.Errorf("countries not sorted by size")
		}
	}
}

func TestFamilySankey(t *testing.T) {
	ds := testDataset()
	sc := familySankey{}.Overview(ds)
	p := sc.Panels[0]
	if len(p.Nodes) != 6 {
		t.Fatalf("got %d nodes, want 6", len(p.Nodes))
	}
	in := 0.0
	for _, n := range p.Nodes {
		if n.Column == 0 {
			in += n.Value
		}
	}
	if int(in) != len(ds) {
		t.Errorf("family nodes carry %v bookings, want %d", in, len(ds))
	}
}

func TestHotelFlowHighlight(t *testing.T) {
	sc := hotelFlow{highlight: true}.Overview(testDataset())
	for _, l := range sc.Panels[0].Links {
		if l.Highlight != (l.Target == booking.Canceled) {
			t.Errorf("link %s -> %s highlight = %v", l.Source, l.Target, l.Highlight)
		}
	}
}

func TestValidate(t *testing.T) {
	sc := &Scene{View: "x", Panels: []*Panel{{Kind: KindBar, Bars: []Bar{{Group: "a", High: math.NaN()}}}}}
	if sc.Validate() == nil {
		t.Errorf("NaN bar validated")
	}
	sc = &Scene{View: "x", Panels: []*Panel{{Kind: KindTreemap, Tree: &TreeNode{Name: "r", Children: []*TreeNode{{Name: "c", Value: math.Inf(1)}}}}}}
	if sc.Validate() == nil {
		t.Errorf("infinite tree node validated")
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	r.Register(monthly{})
	if err := r.Map(0, Monthly); err != nil {
		t.Fatal(err)
	}
	if err := r.Map(1, Heatmap); !errors.Is(err, ErrUnknownView) {
		t.Errorf("mapping unregistered view: %v", err)
	}
	if id, ok := r.ViewFor(0); !ok || id != Monthly {
		t.Errorf("ViewFor(0) = %v, %v", id, ok)
	}
	if _, ok := r.ViewFor(1); ok {
		t.Errorf("ViewFor(1) mapped")
	}
	defer func() {
		if recover() == nil {
			t.Errorf("duplicate Register did not panic")
		}
	}()
	r.Register(monthly{})
}

func TestRecorderOverlap(t *testing.T) {
	var rec Recorder
	rec.Clear()
	rec.Draw(&Scene{})
	rec.Draw(&Scene{})
	if rec.Overlaps() != 1 {
		t.Errorf("Overlaps = %d, want 1", rec.Overlaps())
	}
}
