// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package agg

import (
	"fmt"
	"math"
	"sort"

	"github.com/hotelbookings/hotelstory/booking"
)

// Quantile returns the p-quantile of sorted, which must be sorted in
// ascending order. It interpolates linearly between the two closest
// ranks (Hyndman and Fan method 7, the default of R and d3): the
// quantile sits at index p*(n-1). p is clamped to [0, 1].
//
// Quantile returns ErrEmpty if sorted is empty.
func Quantile(sorted []float64, p float64) (float64, error) {
	n := len(sorted)
	if n == 0 {
		return math.NaN(), ErrEmpty
	}
	if p <= 0 || n == 1 {
		return sorted[0], nil
	}
	if p >= 1 {
		return sorted[n-1], nil
	}
	h := p * float64(n-1)
	lo := int(math.Floor(h))
	hi := lo + 1
	if hi >= n {
		return sorted[n-1], nil
	}
	return sorted[lo] + (h-float64(lo))*(sorted[hi]-sorted[lo]), nil
}

// A Quartile labels a value by which quarter of its distribution it
// falls in.
type Quartile int

const (
	NoQuartile Quartile = iota
	Q1
	Q2
	Q3
	Q4
)

// AllQuartiles lists Q1 through Q4.
var AllQuartiles = []Quartile{Q1, Q2, Q3, Q4}

func (q Quartile) String() string {
	if q < Q1 || q > Q4 {
		return "Q?"
	}
	return fmt.Sprintf("Q%d", int(q))
}

// ParseQuartile parses "Q1" through "Q4".
func ParseQuartile(s string) (Quartile, error) {
	for _, q := range AllQuartiles {
		if q.String() == s {
			return q, nil
		}
	}
	return NoQuartile, fmt.Errorf("bad quartile %q", s)
}

// Boundaries are the three cut points between quartiles.
type Boundaries struct {
	Q1, Q2, Q3 float64
}

// BoundariesOf returns the 25th, 50th, and 75th percentiles of values.
// NaN values are ignored. values is not modified.
func BoundariesOf(values []float64) (Boundaries, error) {
	xs := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			xs = append(xs, v)
		}
	}
	if len(xs) == 0 {
		return Boundaries{}, ErrEmpty
	}
	sort.Float64s(xs)
	var b Boundaries
	// Quantile cannot fail on a non-empty slice.
	b.Q1, _ = Quantile(xs, 0.25)
	b.Q2, _ = Quantile(xs, 0.5)
	b.Q3, _ = Quantile(xs, 0.75)
	return b, nil
}

// AssignQuartile labels v against b. Ties go to the lower quartile.
// A NaN value gets NoQuartile.
func AssignQuartile(v float64, b Boundaries) Quartile {
	switch {
	case math.IsNaN(v):
		return NoQuartile
	case v <= b.Q1:
		return Q1
	case v <= b.Q2:
		return Q2
	case v <= b.Q3:
		return Q3
	}
	return Q4
}

// Quartiles is the quartile assignment of a record set, with the
// boundaries of every group.
type Quartiles struct {
	group  KeyFunc
	bounds map[string]Boundaries
	labels map[*booking.Record]Quartile
}

// AssignQuartiles computes ADR quartile boundaries separately within
// each group of recs (as given by group) and labels every record with
// a usable ADR. Records without one are labeled NoQuartile.
func AssignQuartiles(recs booking.Dataset, group KeyFunc) *Quartiles {
	byGroup := make(map[string][]float64)
	for _, r := range recs {
		g := group(r)
		if r.HasADR() {
			byGroup[g] = append(byGroup[g], r.ADR)
		} else if _, ok := byGroup[g]; !ok {
			byGroup[g] = nil
		}
	}
	q := &Quartiles{
		group:  group,
		bounds: make(map[string]Boundaries),
		labels: make(map[*booking.Record]Quartile, len(recs)),
	}
	for g, xs := range byGroup {
		if b, err := BoundariesOf(xs); err == nil {
			q.bounds[g] = b
		}
	}
	for _, r := range recs {
		q.labels[r] = q.Label(r)
	}
	return q
}

// Bounds returns the boundaries of group g.
func (q *Quartiles) Bounds(g string) (Boundaries, bool) {
	b, ok := q.bounds[g]
	return b, ok
}

// Of returns the quartile assigned to r, which must have been part of
// the assigned record set.
func (q *Quartiles) Of(r *booking.Record) Quartile {
	return q.labels[r]
}

// Label labels r against the boundaries of its group. Unlike Of, r
// need not have been part of the assigned record set.
func (q *Quartiles) Label(r *booking.Record) Quartile {
	b, ok := q.bounds[q.group(r)]
	if !ok || !r.HasADR() {
		return NoQuartile
	}
	return AssignQuartile(r.ADR, b)
}

// KeyFunc returns a key function that yields quartile labels
// according to q.
func (q *Quartiles) KeyFunc() KeyFunc {
	return func(r *booking.Record) string {
		if l := q.Label(r); l != NoQuartile {
			return l.String()
		}
		return ""
	}
}
