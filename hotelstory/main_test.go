// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hotelbookings/hotelstory/booking"
	"github.com/hotelbookings/hotelstory/internal/termsurface"
	"github.com/hotelbookings/hotelstory/story"
)

// writeBookings writes a small bookings CSV covering both hotels,
// both statuses, and several countries and months.
func writeBookings(t *testing.T) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("hotel,is_canceled,arrival_date_month,children,babies,country,adr\n")
	months := []string{"January", "April", "July", "August", "December"}
	countries := []string{"PRT", "GBR", "ESP", "FRA"}
	for i := 0; i < 60; i++ {
		hotel := booking.Hotels[i%2]
		fmt.Fprintf(&b, "%s,%d,%s,%d,0,%s,%d\n", hotel, i%3/2, months[i%len(months)], i%4/3, countries[i%len(countries)], 50+i*3)
	}
	path := filepath.Join(t.TempDir(), "hotel_bookings.csv")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0666))
	return path
}

func testConfig(t *testing.T) *story.Config {
	logger = zap.NewNop()
	cfg := story.DefaultConfig()
	cfg.Data = writeBookings(t)
	return cfg
}

func TestRenderStory(t *testing.T) {
	cfg := testConfig(t)
	var buf bytes.Buffer
	require.NoError(t, renderStory(context.Background(), &buf, cfg))
	out := buf.String()

	require.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	require.Equal(t, len(cfg.Steps), strings.Count(out, `<section class="step"`))
	require.Contains(t, out, "<details>", "no drill-downs captured")
	require.Contains(t, out, "data-drill=")
	require.NotContains(t, out, "<?xml")
	for _, s := range cfg.Steps {
		require.Contains(t, out, s.Text)
	}
}

func TestRenderStoryUnavailable(t *testing.T) {
	cfg := testConfig(t)
	cfg.Data = filepath.Join(t.TempDir(), "missing.csv")
	err := renderStory(context.Background(), new(bytes.Buffer), cfg)
	require.Error(t, err)
}

func TestPrintTable(t *testing.T) {
	ds := booking.Dataset{
		{Hotel: booking.CityHotel, IsCanceled: true},
		{Hotel: booking.CityHotel},
		{Hotel: booking.CityHotel},
		{Hotel: booking.ResortHotel},
	}
	var buf bytes.Buffer
	require.NoError(t, printTable(&buf, ds, []string{"hotel", "status"}, false))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	require.Equal(t, []string{"hotel", "status", "count"}, strings.Fields(lines[0]))

	require.Error(t, printTable(&buf, ds, []string{"adr"}, false))
	require.Error(t, printTable(&buf, ds, nil, false))
	require.Error(t, printTable(&buf, ds, []string{"hotel", "status", "month", "country"}, false))

	buf.Reset()
	require.NoError(t, printTable(&buf, ds, nil, true))
	require.Len(t, strings.Split(strings.TrimSpace(buf.String()), "\n"), len(ds)+1)
}

// step runs cmd, if any, and feeds its message back to m.
func step(t *testing.T, m tea.Model, cmd tea.Cmd) tea.Model {
	t.Helper()
	if cmd == nil {
		return m
	}
	m, next := m.Update(cmd())
	require.Nil(t, next)
	return m
}

func press(t *testing.T, m tea.Model, key tea.KeyMsg) tea.Model {
	t.Helper()
	m, cmd := m.Update(key)
	return step(t, m, cmd)
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func TestReader(t *testing.T) {
	cfg := testConfig(t)
	r, err := newReader(context.Background(), cfg, 80)
	require.NoError(t, err)

	var m tea.Model = r
	m = step(t, m, m.Init())
	require.NoError(t, r.err)
	require.Equal(t, story.Overview, r.ctl.State().Phase)
	require.Equal(t, 0, r.ctl.State().Step)
	require.Contains(t, m.View(), "Step 1 of")

	// Walk to the cancellations step, which has drill targets.
	m = press(t, m, runes("j"))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	require.Equal(t, 2, r.ctl.State().Step)
	require.NotEmpty(t, r.targets)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	require.Equal(t, 1%len(r.targets), r.target)
	want := r.targets[r.target]
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	st := r.ctl.State()
	require.Equal(t, story.Drilldown, st.Phase)
	require.Equal(t, want, *st.Selection)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, story.Overview, r.ctl.State().Phase)

	// Backing out of an overview reports the error without moving.
	m = press(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	require.ErrorIs(t, r.err, story.ErrNotDrilled)
	require.Contains(t, m.View(), story.ErrNotDrilled.Error())

	m = press(t, m, runes("k"))
	require.Equal(t, 1, r.ctl.State().Step)

	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
}

func TestReaderFailedStep(t *testing.T) {
	cfg := testConfig(t)
	cfg.Data = filepath.Join(t.TempDir(), "missing.csv")
	r, err := newReader(context.Background(), cfg, 80)
	require.NoError(t, err)

	var m tea.Model = r
	m = step(t, m, m.Init())
	require.Error(t, r.err)
	require.Equal(t, story.Idle, r.ctl.State().Phase)

	// The header keeps naming the step on screen when moving fails.
	m = press(t, m, runes("j"))
	require.Error(t, r.err)
	require.Equal(t, 0, r.step)
	require.Contains(t, m.View(), "Step 1 of")
	require.NotContains(t, m.View(), "Step 2 of")
}

func TestReaderResize(t *testing.T) {
	cfg := testConfig(t)
	r, err := newReader(context.Background(), cfg, 40)
	require.NoError(t, err)

	var m tea.Model = r
	m = step(t, m, m.Init())
	require.NoError(t, r.err)
	m, cmd := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	require.Nil(t, cmd)

	want, err := termsurface.Render(r.rec.Last(), 120)
	require.NoError(t, err)
	require.Contains(t, m.View(), want)
}
