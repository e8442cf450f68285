// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package story drives the booking story: it maps narrative steps to
// views, moves between a view's overview and its drill-downs, and
// keeps a single surface showing exactly one scene at a time.
package story

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/hotelbookings/hotelstory/booking"
	"github.com/hotelbookings/hotelstory/view"
)

var (
	// ErrUnmappedStep is returned by OnStepEnter for a step with
	// no view. The current view stays on screen.
	ErrUnmappedStep = errors.New("step has no view")

	// ErrNotDrilled is returned by ReturnToOverview when no
	// drill-down is showing.
	ErrNotDrilled = errors.New("not in a drill-down")

	// ErrIdle is returned by DrillInto before any step has been
	// entered.
	ErrIdle = errors.New("no view showing")
)

// A Phase is the stage of the controller's state machine.
type Phase int

const (
	Idle Phase = iota
	Overview
	Drilldown
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Overview:
		return "overview"
	case Drilldown:
		return "drilldown"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// State is what the controller is showing.
type State struct {
	Phase Phase

	// Step is the last entered step. It is -1 while Idle.
	Step int

	// View is the view on screen. It is empty while Idle.
	View view.ID

	// Selection is the drilled-into selection. It is non-nil
	// only in Drilldown.
	Selection *view.Selection
}

func (s State) String() string {
	switch s.Phase {
	case Overview:
		return fmt.Sprintf("overview(%s)", s.View)
	case Drilldown:
		return fmt.Sprintf("drilldown(%s, %s)", s.View, s.Selection)
	}
	return s.Phase.String()
}

// A Cache supplies the dataset. *dataset.Cache implements it.
type Cache interface {
	Dataset(ctx context.Context) (booking.Dataset, error)
	Loaded() bool
}

// Controller owns the story's view state. Its methods may be called
// from any goroutine; they are applied one at a time.
type Controller struct {
	reg     *view.Registry
	cache   Cache
	surface view.Surface
	log     *zap.Logger

	mu    sync.Mutex
	state State
}

// An Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger of a Controller.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// NewController returns an idle controller that renders the views of
// reg onto surface using the dataset from cache.
func NewController(reg *view.Registry, cache Cache, surface view.Surface, opts ...Option) *Controller {
	c := &Controller{
		reg:     reg,
		cache:   cache,
		surface: surface,
		log:     zap.NewNop(),
		state:   State{Phase: Idle, Step: -1},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

func (s State) clone() State {
	if s.Selection != nil {
		sel := *s.Selection
		s.Selection = &sel
	}
	return s
}

// OnStepEnter shows the overview of the view mapped to step.
//
// For an unmapped step it returns an error matching ErrUnmappedStep
// and leaves the surface and state alone.
func (c *Controller) OnStepEnter(ctx context.Context, step int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	id, ok := c.reg.ViewFor(step)
	if !ok {
		c.log.Warn("unmapped step", zap.Int("step", step), zap.Stringer("state", c.state))
		return fmt.Errorf("step %d: %w", step, ErrUnmappedStep)
	}
	if err := c.show(ctx, id, nil); err != nil {
		return fmt.Errorf("step %d: %w", step, err)
	}
	c.state = State{Phase: Overview, Step: step, View: id}
	c.log.Debug("entered step", zap.Int("step", step), zap.String("view", string(id)))
	return nil
}

// DrillInto shows the drill-down of the current view for sel. It is
// valid in Overview and in Drilldown, where it replaces the current
// drill-down. A selection that matches nothing shows an empty scene
// and still moves to Drilldown.
func (c *Controller) DrillInto(ctx context.Context, sel view.Selection) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Phase == Idle {
		return ErrIdle
	}
	id := c.state.View
	if err := c.show(ctx, id, &sel); err != nil {
		return fmt.Errorf("%s: drill into %s: %w", id, sel, err)
	}
	c.state = State{Phase: Drilldown, Step: c.state.Step, View: id, Selection: &sel}
	c.log.Debug("drilled down", zap.String("view", string(id)), zap.Stringer("selection", sel))
	return nil
}

// ReturnToOverview re-renders the overview of the drilled-into view.
// It returns ErrNotDrilled outside Drilldown.
func (c *Controller) ReturnToOverview(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Phase != Drilldown {
		return ErrNotDrilled
	}
	id := c.state.View
	if err := c.show(ctx, id, nil); err != nil {
		return fmt.Errorf("%s: %w", id, err)
	}
	c.state = State{Phase: Overview, Step: c.state.Step, View: id}
	c.log.Debug("returned to overview", zap.String("view", string(id)))
	return nil
}

// show replaces whatever is on the surface with the scene of view id.
// The surface is only touched once the new scene is ready, so a
// failure leaves the previous scene in place. If drawing the new scene
// fails partway, the scene of the current state is drawn again. The
// exception is an unavailable dataset, which replaces the scene with a
// notice.
func (c *Controller) show(ctx context.Context, id view.ID, sel *view.Selection) error {
	if !c.cache.Loaded() {
		c.log.Info("waiting for dataset", zap.String("view", string(id)))
	}
	ds, err := c.cache.Dataset(ctx)
	if err != nil {
		if ctx.Err() == nil {
			c.log.Error("dataset unavailable", zap.String("view", string(id)), zap.Error(err))
			c.surface.Clear()
			c.surface.Notice("The bookings data could not be loaded.")
		}
		return err
	}
	sc, err := c.reg.Scene(id, ds, sel)
	if err != nil {
		return err
	}
	c.surface.Clear()
	if err := c.surface.Draw(sc); err != nil {
		c.restore(ds)
		return err
	}
	return nil
}

// restore redraws the scene of the current state after a failed draw.
func (c *Controller) restore(ds booking.Dataset) {
	c.surface.Clear()
	if c.state.Phase == Idle {
		return
	}
	sc, err := c.reg.Scene(c.state.View, ds, c.state.Selection)
	if err == nil {
		err = c.surface.Draw(sc)
	}
	if err != nil {
		c.log.Error("restoring scene", zap.Stringer("state", c.state), zap.Error(err))
	}
}
