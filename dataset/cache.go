// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dataset provides the process-wide bookings dataset cache.
//
// The cache loads its source at most once. Callers that ask for the
// dataset while the load is in flight wait for that same load; callers
// that come later get the cached result, which is either the dataset
// or the error that prevented loading it. A failed load is not
// retried.
package dataset

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/hotelbookings/hotelstory/booking"
)

// ErrUnavailable is matched by every error that prevented the dataset
// from loading.
var ErrUnavailable = errors.New("dataset unavailable")

// An UnavailableError reports why the dataset could not be loaded.
type UnavailableError struct {
	Source string
	Err    error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("dataset %s unavailable: %v", e.Source, e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrUnavailable) true.
func (e *UnavailableError) Is(target error) bool { return target == ErrUnavailable }

// Cache memoizes the dataset of a Source.
type Cache struct {
	src Source
	log *zap.Logger

	flight singleflight.Group

	mu     sync.Mutex
	loaded bool
	ds     booking.Dataset
	err    error
	loads  int
}

// An Option configures a Cache.
type Option func(*Cache)

// WithLogger sets the logger of a Cache.
func WithLogger(l *zap.Logger) Option {
	return func(c *Cache) { c.log = l }
}

// NewCache returns a cache for src. Nothing is loaded until the first
// call to Dataset.
func NewCache(src Source, opts ...Option) *Cache {
	c := &Cache{src: src, log: zap.NewNop()}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Dataset returns the dataset, loading it if this is the first call.
//
// If ctx is done before the load completes, Dataset returns ctx.Err()
// but the load continues and its result is cached for later callers.
func (c *Cache) Dataset(ctx context.Context) (booking.Dataset, error) {
	if ds, err, ok := c.cached(); ok {
		return ds, err
	}
	// The load must outlive any single caller.
	lctx := context.WithoutCancel(ctx)
	ch := c.flight.DoChan("dataset", func() (interface{}, error) {
		return c.load(lctx)
	})
	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(booking.Dataset), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *Cache) cached() (booking.Dataset, error, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ds, c.err, c.loaded
}

func (c *Cache) load(ctx context.Context) (booking.Dataset, error) {
	// A caller may have missed the cached result and started a
	// new flight just after the previous one finished.
	if ds, err, ok := c.cached(); ok {
		return ds, err
	}

	start := time.Now()
	c.log.Info("loading dataset", zap.Stringer("source", c.src))
	ds, err := c.src.Load(ctx)
	if err != nil {
		var uerr *UnavailableError
		if !errors.As(err, &uerr) {
			err = &UnavailableError{Source: c.src.String(), Err: err}
		}
		ds = nil
		c.log.Error("dataset unavailable", zap.Stringer("source", c.src), zap.Error(err))
	} else {
		c.log.Info("dataset loaded",
			zap.Stringer("source", c.src),
			zap.Int("records", len(ds)),
			zap.Duration("elapsed", time.Since(start)))
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loaded, c.ds, c.err = true, ds, err
	c.loads++
	return ds, err
}

// Loaded reports whether the load has completed, successfully or not.
func (c *Cache) Loaded() bool {
	_, _, ok := c.cached()
	return ok
}

// Loads returns the number of times the source has been loaded. It is
// never more than 1.
func (c *Cache) Loads() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loads
}
