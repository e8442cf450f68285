// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package termsurface

import (
	"strings"
	"testing"

	"github.com/hotelbookings/hotelstory/agg"
	"github.com/hotelbookings/hotelstory/booking"
	"github.com/hotelbookings/hotelstory/view"
)

func TestRender(t *testing.T) {
	for _, test := range []struct {
		scene *view.Scene
		want  []string
	}{
		{
			&view.Scene{Title: "Mean ADR", Panels: []*view.Panel{{
				Kind:   view.KindBar,
				Groups: []string{booking.CityHotel, booking.ResortHotel},
				Bars: []view.Bar{
					{Group: booking.CityHotel, High: 105},
					{Group: booking.ResortHotel, High: 95},
				},
			}}},
			[]string{"Mean ADR", "City Hotel", "Resort Hotel", "105", "95"},
		},
		{
			&view.Scene{Title: "Share", Panels: []*view.Panel{{
				Kind: view.KindPie,
				Slices: []view.Slice{
					{Label: booking.NotCanceled, Value: 63, Percent: 63},
					{Label: booking.Canceled, Value: 37, Percent: 37},
				},
			}}},
			[]string{"not canceled", " 63.0%", " 37.0%"},
		},
		{
			&view.Scene{Title: "Flow", Panels: []*view.Panel{{
				Kind:  view.KindSankey,
				Links: []view.Link{{Source: "City Hotel", Target: "Canceled", Value: 12}},
			}}},
			[]string{"City Hotel → Canceled: 12"},
		},
		{
			&view.Scene{Title: "Tree", Panels: []*view.Panel{{
				Kind: view.KindTreemap,
				Tree: &view.TreeNode{Name: "Total", Value: 3, Children: []*view.TreeNode{
					{Name: "PRT", Value: 1},
					{Name: "GBR", Value: 2},
				}},
			}}},
			[]string{"Total 3", "  GBR 2", "  PRT 1"},
		},
		{
			&view.Scene{Title: "Histogram", Panels: []*view.Panel{{
				Kind: view.KindHistogram,
				Bins: agg.HistogramBins([]float64{1, 2, 8}, 0, 10, 2),
			}}},
			[]string{"0.0–5.0", "5.0–10.0"},
		},
		{
			&view.Scene{Title: "Strip", Panels: []*view.Panel{{
				Kind:   view.KindStrip,
				Points: []view.Point{{Group: "City Hotel", Value: 10}, {Group: "City Hotel", Value: 30}},
			}}},
			[]string{"n=2", "min 10.0", "mean 20.0", "max 30.0"},
		},
		{
			&view.Scene{Title: "Nothing", Subtitle: "No bookings match country=XYZ", Empty: true},
			[]string{"Nothing", "country=XYZ"},
		},
	} {
		got, err := Render(test.scene, 60)
		if err != nil {
			t.Errorf("%s: %v", test.scene.Title, err)
			continue
		}
		for _, want := range test.want {
			if !strings.Contains(got, want) {
				t.Errorf("%s: missing %q in:\n%s", test.scene.Title, want, got)
			}
		}
	}
}

func TestTreemapOrder(t *testing.T) {
	got, err := Render(&view.Scene{Panels: []*view.Panel{{
		Kind: view.KindTreemap,
		Tree: &view.TreeNode{Name: "Total", Value: 3, Children: []*view.TreeNode{
			{Name: "PRT", Value: 1},
			{Name: "GBR", Value: 2},
		}},
	}}}, 40)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Index(got, "GBR") > strings.Index(got, "PRT") {
		t.Errorf("larger child not listed first:\n%s", got)
	}
}

func TestSurface(t *testing.T) {
	s := New(60)
	if err := s.Draw(&view.Scene{Title: "Monthly", Empty: true}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(s.String(), "Monthly") {
		t.Errorf("surface = %q", s.String())
	}
	s.Clear()
	if s.String() != "" {
		t.Errorf("Clear left %q", s.String())
	}
	s.Notice("unavailable")
	if !strings.Contains(s.String(), "unavailable") {
		t.Errorf("notice missing: %q", s.String())
	}
	if _, err := Render(&view.Scene{Panels: []*view.Panel{{Kind: "radar"}}}, 40); err == nil {
		t.Error("unknown kind rendered")
	}
}

func TestSetWidth(t *testing.T) {
	sc := &view.Scene{Title: "Mean ADR", Panels: []*view.Panel{{
		Kind:   view.KindBar,
		Groups: []string{booking.CityHotel, booking.ResortHotel},
		Bars: []view.Bar{
			{Group: booking.CityHotel, High: 105},
			{Group: booking.ResortHotel, High: 95},
		},
	}}}
	s := New(40)
	if err := s.Draw(sc); err != nil {
		t.Fatal(err)
	}
	s.Notice("stale")
	s.SetWidth(120)
	want, err := Render(sc, 120)
	if err != nil {
		t.Fatal(err)
	}
	if got := s.String(); !strings.HasPrefix(got, want) || !strings.Contains(got[len(want):], "stale") {
		t.Errorf("after SetWidth(120) surface = %q, want %q then the notice", got, want)
	}
	narrow, _ := Render(sc, 40)
	if narrow == want {
		t.Errorf("bar scene renders the same at 40 and 120 columns")
	}
}
