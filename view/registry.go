// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package view defines the booking story's views and the registry
// that maps narrative steps to them.
//
// A View turns the dataset (and, for a drill-down, a Selection) into
// a Scene: a plain-data description of marks, tooltips, and drill
// targets. Surfaces turn Scenes into pixels or text.
package view

import (
	"errors"
	"fmt"
	"sort"

	"github.com/hotelbookings/hotelstory/booking"
)

// An ID names a view.
type ID string

// ErrNoDrill is returned by View.Drill when a view has no drill-down.
var ErrNoDrill = errors.New("view has no drill-down")

// ErrUnknownView is returned for view IDs that were never registered.
var ErrUnknownView = errors.New("unknown view")

// DrillOptions control how a drill-down derives group-relative
// values.
type DrillOptions struct {
	// RecomputeBoundaries computes quartile boundaries over the
	// drilled-into subset instead of inheriting the boundaries of
	// the parent grouping.
	RecomputeBoundaries bool
}

// A View renders one overview chart and, optionally, its drill-down.
// Implementations must be pure functions of their arguments.
type View interface {
	ID() ID
	Overview(ds booking.Dataset) *Scene

	// Drill returns the detail scene for sel. It returns
	// ErrNoDrill if the view has no drill-down. A selection that
	// matches no records yields a Scene with Empty set, not an
	// error.
	Drill(ds booking.Dataset, sel Selection, opts DrillOptions) (*Scene, error)
}

// A Registry holds the views of a story and the step table that maps
// narrative steps to them.
type Registry struct {
	views map[ID]View
	opts  map[ID]DrillOptions
	steps map[int]ID
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		views: make(map[ID]View),
		opts:  make(map[ID]DrillOptions),
		steps: make(map[int]ID),
	}
}

// Register adds v to r. It panics if a view with the same ID is
// already registered.
func (r *Registry) Register(v View) {
	if _, ok := r.views[v.ID()]; ok {
		panic(fmt.Sprintf("view %q registered twice", v.ID()))
	}
	r.views[v.ID()] = v
}

// Lookup returns the view registered as id.
func (r *Registry) Lookup(id ID) (View, bool) {
	v, ok := r.views[id]
	return v, ok
}

// IDs returns the registered view IDs in sorted order.
func (r *Registry) IDs() []ID {
	ids := make([]ID, 0, len(r.views))
	for id := range r.views {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Map binds step to view id.
func (r *Registry) Map(step int, id ID) error {
	if _, ok := r.views[id]; !ok {
		return fmt.Errorf("step %d: %w %q", step, ErrUnknownView, id)
	}
	if step < 0 {
		return fmt.Errorf("step %d: negative step index", step)
	}
	r.steps[step] = id
	return nil
}

// ViewFor returns the view bound to step.
func (r *Registry) ViewFor(step int) (ID, bool) {
	id, ok := r.steps[step]
	return id, ok
}

// Steps returns the mapped step indexes in ascending order.
func (r *Registry) Steps() []int {
	steps := make([]int, 0, len(r.steps))
	for s := range r.steps {
		steps = append(steps, s)
	}
	sort.Ints(steps)
	return steps
}

// SetOptions sets the drill-down options of view id.
func (r *Registry) SetOptions(id ID, o DrillOptions) {
	r.opts[id] = o
}

// Options returns the drill-down options of view id.
func (r *Registry) Options(id ID) DrillOptions {
	return r.opts[id]
}

// Scene computes the scene of view id over ds. If sel is nil it is the
// overview; otherwise it is the drill-down into *sel.
func (r *Registry) Scene(id ID, ds booking.Dataset, sel *Selection) (*Scene, error) {
	v, ok := r.views[id]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownView, id)
	}
	var sc *Scene
	if sel == nil {
		sc = v.Overview(ds)
	} else {
		var err error
		sc, err = v.Drill(ds, *sel, r.opts[id])
		if err != nil {
			return nil, err
		}
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return sc, nil
}

// Render computes the scene of view id and draws it on s. The caller
// is responsible for clearing s first.
func (r *Registry) Render(s Surface, id ID, ds booking.Dataset, sel *Selection) (*Scene, error) {
	sc, err := r.Scene(id, ds, sel)
	if err != nil {
		return nil, err
	}
	if err := s.Draw(sc); err != nil {
		return nil, fmt.Errorf("drawing %s: %w", id, err)
	}
	return sc, nil
}
