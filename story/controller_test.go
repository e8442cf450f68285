// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package story

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/hotelbookings/hotelstory/booking"
	"github.com/hotelbookings/hotelstory/dataset"
	"github.com/hotelbookings/hotelstory/view"
)

type fakeCache struct {
	mu    sync.Mutex
	ds    booking.Dataset
	err   error
	calls int
}

func (c *fakeCache) Dataset(ctx context.Context) (booking.Dataset, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	return c.ds, c.err
}

func (c *fakeCache) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls > 0
}

func bookings() booking.Dataset {
	r := rand.New(rand.NewSource(7))
	countries := []string{"PRT", "GBR", "ESP", "DEU", "USA"}
	ds := make(booking.Dataset, 300)
	for i := range ds {
		ds[i] = &booking.Record{
			Hotel:        booking.Hotels[r.Intn(2)],
			Country:      countries[r.Intn(len(countries))],
			ArrivalMonth: time.Month(1 + r.Intn(12)),
			IsCanceled:   r.Intn(3) == 0,
			ADR:          float64(50 + r.Intn(150)),
			Children:     r.Intn(5) / 4,
		}
	}
	return ds
}

func newTestController(t *testing.T, cache Cache) (*Controller, *view.Recorder) {
	t.Helper()
	reg, err := DefaultConfig().Registry()
	require.NoError(t, err)
	rec := new(view.Recorder)
	return NewController(reg, cache, rec), rec
}

func stepOf(t *testing.T, id view.ID) int {
	t.Helper()
	for i, s := range DefaultConfig().Steps {
		if s.View == id {
			return i
		}
	}
	t.Fatalf("no step shows %s", id)
	return -1
}

func opNames(rec *view.Recorder) []string {
	var names []string
	for _, op := range rec.Ops() {
		names = append(names, op.Name)
	}
	return names
}

func TestDrillRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, rec := newTestController(t, &fakeCache{ds: bookings()})
	require.Equal(t, Idle, c.State().Phase)

	step := stepOf(t, view.Cancellations)
	require.NoError(t, c.OnStepEnter(ctx, step))
	overview := rec.Last()
	require.NotNil(t, overview)
	require.Equal(t, State{Phase: Overview, Step: step, View: view.Cancellations}, c.State())

	targets := overview.Targets()
	require.NotEmpty(t, targets)
	sel := targets[0]
	require.NoError(t, c.DrillInto(ctx, sel))
	st := c.State()
	require.Equal(t, Drilldown, st.Phase)
	require.Equal(t, view.Cancellations, st.View)
	require.Equal(t, sel, *st.Selection)

	require.NoError(t, c.ReturnToOverview(ctx))
	require.Equal(t, State{Phase: Overview, Step: step, View: view.Cancellations}, c.State())

	// The overview comes back exactly as it was first drawn.
	if diff := cmp.Diff(overview, rec.Last()); diff != "" {
		t.Errorf("overview changed after drill-down round trip (-first +again):\n%s", diff)
	}
	require.Equal(t, []string{"clear", "draw", "clear", "draw", "clear", "draw"}, opNames(rec))
	require.Zero(t, rec.Overlaps())
}

func TestStateCopy(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestController(t, &fakeCache{ds: bookings()})
	require.NoError(t, c.OnStepEnter(ctx, stepOf(t, view.Heatmap)))
	require.NoError(t, c.DrillInto(ctx, view.Selection{Month: time.July, Status: view.Canceled}))

	st := c.State()
	st.Selection.Month = time.March
	require.Equal(t, time.July, c.State().Selection.Month)
}

func TestUnmappedStep(t *testing.T) {
	ctx := context.Background()
	c, rec := newTestController(t, &fakeCache{ds: bookings()})
	require.NoError(t, c.OnStepEnter(ctx, 0))
	before := c.State()
	ops := len(rec.Ops())

	err := c.OnStepEnter(ctx, 99)
	require.ErrorIs(t, err, ErrUnmappedStep)
	require.Equal(t, before, c.State())
	require.Len(t, rec.Ops(), ops, "unmapped step touched the surface")

	require.ErrorIs(t, c.OnStepEnter(ctx, -1), ErrUnmappedStep)
}

func TestDrillIntoNothing(t *testing.T) {
	ctx := context.Background()
	c, rec := newTestController(t, &fakeCache{ds: bookings()})
	require.NoError(t, c.OnStepEnter(ctx, stepOf(t, view.Mosaic)))

	sel := view.Selection{Country: "XYZ", Status: view.Canceled}
	require.NoError(t, c.DrillInto(ctx, sel))
	st := c.State()
	require.Equal(t, Drilldown, st.Phase)
	require.Equal(t, sel, *st.Selection)
	require.True(t, rec.Last().Empty)

	require.NoError(t, c.ReturnToOverview(ctx))
	require.Equal(t, Overview, c.State().Phase)
	require.False(t, rec.Last().Empty)
}

func TestDrillErrors(t *testing.T) {
	ctx := context.Background()
	c, rec := newTestController(t, &fakeCache{ds: bookings()})

	require.ErrorIs(t, c.DrillInto(ctx, view.Selection{Hotel: booking.CityHotel}), ErrIdle)
	require.ErrorIs(t, c.ReturnToOverview(ctx), ErrNotDrilled)

	require.NoError(t, c.OnStepEnter(ctx, stepOf(t, view.ADROverview)))
	before := c.State()
	ops := len(rec.Ops())
	require.ErrorIs(t, c.DrillInto(ctx, view.Selection{Hotel: booking.CityHotel}), view.ErrNoDrill)
	require.Equal(t, before, c.State())
	require.Len(t, rec.Ops(), ops)
	require.ErrorIs(t, c.ReturnToOverview(ctx), ErrNotDrilled)
}

func TestRedrill(t *testing.T) {
	ctx := context.Background()
	c, rec := newTestController(t, &fakeCache{ds: bookings()})
	require.NoError(t, c.OnStepEnter(ctx, stepOf(t, view.Mosaic)))
	targets := rec.Last().Targets()
	require.GreaterOrEqual(t, len(targets), 2)

	require.NoError(t, c.DrillInto(ctx, targets[0]))
	require.NoError(t, c.DrillInto(ctx, targets[1]))
	require.Equal(t, targets[1], *c.State().Selection)
	require.Zero(t, rec.Overlaps())
}

func TestStepDuringDrilldown(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestController(t, &fakeCache{ds: bookings()})
	require.NoError(t, c.OnStepEnter(ctx, stepOf(t, view.Cancellations)))
	require.NoError(t, c.DrillInto(ctx, view.Selection{Hotel: booking.ResortHotel}))

	step := stepOf(t, view.Monthly)
	require.NoError(t, c.OnStepEnter(ctx, step))
	require.Equal(t, State{Phase: Overview, Step: step, View: view.Monthly}, c.State())
}

func TestDatasetUnavailable(t *testing.T) {
	ctx := context.Background()
	cause := &dataset.UnavailableError{Source: "test", Err: errors.New("no such file")}
	c, rec := newTestController(t, &fakeCache{err: cause})

	err := c.OnStepEnter(ctx, 0)
	require.ErrorIs(t, err, dataset.ErrUnavailable)
	require.Equal(t, Idle, c.State().Phase)
	require.Equal(t, []string{"clear", "notice"}, opNames(rec))
	require.Nil(t, rec.Last())
}

// failingSurface records like a Recorder but refuses to draw scenes
// of one view.
type failingSurface struct {
	view.Recorder
	fail view.ID
}

var errDraw = errors.New("draw failed")

func (s *failingSurface) Draw(sc *view.Scene) error {
	if sc.View == s.fail {
		return errDraw
	}
	return s.Recorder.Draw(sc)
}

func TestDrawFailureRestores(t *testing.T) {
	ctx := context.Background()
	reg, err := DefaultConfig().Registry()
	require.NoError(t, err)
	surf := &failingSurface{fail: view.Heatmap}
	c := NewController(reg, &fakeCache{ds: bookings()}, surf)

	step := stepOf(t, view.Cancellations)
	require.NoError(t, c.OnStepEnter(ctx, step))
	before := surf.Last()
	require.NotNil(t, before)

	err = c.OnStepEnter(ctx, stepOf(t, view.Heatmap))
	require.ErrorIs(t, err, errDraw)
	require.Equal(t, State{Phase: Overview, Step: step, View: view.Cancellations}, c.State())
	// The surface shows the scene the state names, not a blank one.
	if diff := cmp.Diff(before, surf.Last()); diff != "" {
		t.Errorf("scene after failed draw (-before +after):\n%s", diff)
	}
	require.Equal(t, []string{"clear", "draw", "clear", "clear", "draw"}, opNames(&surf.Recorder))
	require.Zero(t, surf.Overlaps())
}

func TestConcurrentSteps(t *testing.T) {
	ctx := context.Background()
	cache := dataset.NewCache(staticSource(bookings()))
	c, rec := newTestController(t, cache)

	var wg sync.WaitGroup
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			n := len(DefaultConfig().Steps)
			if err := c.OnStepEnter(ctx, i%n); err != nil {
				t.Error(err)
			}
		}(i)
	}
	wg.Wait()

	require.Zero(t, rec.Overlaps())
	require.Equal(t, 1, cache.Loads())
	require.Equal(t, Overview, c.State().Phase)
}

type staticSource booking.Dataset

func (s staticSource) Load(ctx context.Context) (booking.Dataset, error) {
	return booking.Dataset(s), nil
}

func (s staticSource) String() string { return "static" }
