// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package agg implements the aggregations behind the booking charts:
// grouped counts, quantiles and quartile labels, percentages,
// histogram bins, and stacked layers.
//
// Every function in this package is pure. Inputs are never modified.
package agg

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hotelbookings/hotelstory/booking"
)

var (
	// ErrEmpty is returned when an aggregation needs at least one
	// value and got none.
	ErrEmpty = errors.New("empty group")

	// ErrDivisionByZero is returned by percentage computations
	// over a group with no records.
	ErrDivisionByZero = errors.New("division by zero")
)

// A KeyFunc extracts one categorical grouping value from a record.
type KeyFunc func(*booking.Record) string

// Common key functions.
var (
	ByHotel   KeyFunc = func(r *booking.Record) string { return r.Hotel }
	ByCountry KeyFunc = func(r *booking.Record) string { return r.Country }
	ByMonth   KeyFunc = func(r *booking.Record) string { return r.ArrivalMonth.String() }
	ByStatus  KeyFunc = (*booking.Record).Status
	ByFamily  KeyFunc = (*booking.Record).Family
)

// MaxArity is the largest number of key functions GroupCount accepts.
const MaxArity = 3

// A Key identifies a group by up to MaxArity categorical values.
// Unused trailing components are empty.
type Key [MaxArity]string

// K builds a Key from its components.
func K(parts ...string) Key {
	if len(parts) > MaxArity {
		panic(fmt.Sprintf("key has %d components; at most %d allowed", len(parts), MaxArity))
	}
	var k Key
	copy(k[:], parts)
	return k
}

func (k Key) String() string {
	parts := k[:]
	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Counts maps group keys to the number of records in each group.
// Groups with no records are absent.
type Counts struct {
	arity int
	keys  []Key
	m     map[Key]int
}

// GroupCount groups recs by the given key functions and counts the
// records in each group. It panics unless 1 <= len(keys) <= MaxArity.
func GroupCount(recs booking.Dataset, keys ...KeyFunc) *Counts {
	if len(keys) < 1 || len(keys) > MaxArity {
		panic(fmt.Sprintf("GroupCount: arity %d out of range [1, %d]", len(keys), MaxArity))
	}
	c := &Counts{arity: len(keys), m: make(map[Key]int)}
	for _, r := range recs {
		var k Key
		for i, f := range keys {
			k[i] = f(r)
		}
		if _, ok := c.m[k]; !ok {
			c.keys = append(c.keys, k)
		}
		c.m[k]++
	}
	return c
}

// Arity returns the number of components in c's keys.
func (c *Counts) Arity() int { return c.arity }

// Keys returns c's keys in the order their first record appeared in
// the input.
func (c *Counts) Keys() []Key {
	return append([]Key(nil), c.keys...)
}

// Len returns the number of non-empty groups.
func (c *Counts) Len() int { return len(c.keys) }

// Get returns the count of group k, or 0 if the group is absent.
func (c *Counts) Get(k Key) int { return c.m[k] }

// Has reports whether group k has any records.
func (c *Counts) Has(k Key) bool {
	_, ok := c.m[k]
	return ok
}

// Total returns the sum of all counts.
func (c *Counts) Total() int {
	n := 0
	for _, v := range c.m {
		n += v
	}
	return n
}

// A Bucket is one group of a densified aggregation.
type Bucket struct {
	Key   Key
	Count int
}

// Densify expands c against the cartesian product of the given
// domains, in domain order with the last domain varying fastest.
// Combinations missing from c get a count of 0. The number of domains
// must match c's arity.
func Densify(c *Counts, domains ...[]string) []Bucket {
	if len(domains) != c.arity {
		panic(fmt.Sprintf("Densify: %d domains for arity %d", len(domains), c.arity))
	}
	n := 1
	for _, d := range domains {
		n *= len(d)
	}
	out := make([]Bucket, 0, n)
	var walk func(level int, k Key)
	walk = func(level int, k Key) {
		if level == len(domains) {
			out = append(out, Bucket{k, c.m[k]})
			return
		}
		for _, v := range domains[level] {
			k[level] = v
			walk(level+1, k)
		}
	}
	walk(0, Key{})
	return out
}

// Sub returns the counts of the groups whose leading component is
// first, keyed by the remaining components. It is how callers walk a
// multi-level grouping one level at a time.
func (c *Counts) Sub(first string) *Counts {
	if c.arity < 2 {
		panic("Sub of a single-level grouping")
	}
	s := &Counts{arity: c.arity - 1, m: make(map[Key]int)}
	for _, k := range c.keys {
		if k[0] != first {
			continue
		}
		var sk Key
		copy(sk[:], k[1:])
		s.keys = append(s.keys, sk)
		s.m[sk] = c.m[k]
	}
	return s
}

// Firsts returns the distinct leading components of c's keys in
// first-seen order.
func (c *Counts) Firsts() []string {
	seen := make(map[string]bool)
	var out []string
	for _, k := range c.keys {
		if !seen[k[0]] {
			seen[k[0]] = true
			out = append(out, k[0])
		}
	}
	return out
}
