// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package view

import "sync"

// An Op is one call recorded by a Recorder.
type Op struct {
	Name  string // "clear", "draw", or "notice"
	Scene *Scene
	Msg   string
}

// Recorder is a Surface that records the calls made to it. It is
// meant for tests. It reports a teardown violation if Draw is called
// twice without an intervening Clear.
type Recorder struct {
	mu      sync.Mutex
	ops     []Op
	dirty   bool
	overlap int
}

func (r *Recorder) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, Op{Name: "clear"})
	r.dirty = false
}

func (r *Recorder) Draw(s *Scene) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.dirty {
		r.overlap++
	}
	r.ops = append(r.ops, Op{Name: "draw", Scene: s})
	r.dirty = true
	return nil
}

func (r *Recorder) Notice(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, Op{Name: "notice", Msg: msg})
}

// Ops returns the recorded calls in order.
func (r *Recorder) Ops() []Op {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Op(nil), r.ops...)
}

// Last returns the most recently drawn scene, or nil.
func (r *Recorder) Last() *Scene {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.ops) - 1; i >= 0; i-- {
		if r.ops[i].Name == "draw" {
			return r.ops[i].Scene
		}
	}
	return nil
}

// Overlaps returns the number of draws that happened on a surface
// that had not been cleared since the previous draw.
func (r *Recorder) Overlaps() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.overlap
}
