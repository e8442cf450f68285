// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package agg

import (
	"math"
	"sort"

	"github.com/aclements/go-moremath/stats"
)

// A Bin is one histogram bucket. It covers [Lower, Upper), except the
// last bin of a histogram, which also includes Upper.
type Bin struct {
	Lower, Upper float64
	Count        int
}

// HistogramBins divides [lo, hi] into n equal-width bins and counts
// the values falling in each. NaN values and values outside [lo, hi]
// are ignored. If n < 1, a single bin is used. If lo == hi, the
// result is one degenerate bin counting the values equal to lo.
func HistogramBins(values []float64, lo, hi float64, n int) []Bin {
	if n < 1 {
		n = 1
	}
	if math.IsNaN(lo) || math.IsNaN(hi) || hi < lo {
		return nil
	}
	if lo == hi {
		b := Bin{Lower: lo, Upper: hi}
		for _, v := range values {
			if v == lo {
				b.Count++
			}
		}
		return []Bin{b}
	}

	h := stats.NewLinearHist(lo, hi, n)
	bins := make([]Bin, n)
	for i := range bins {
		bins[i].Lower = h.BinToValue(float64(i))
		if i > 0 {
			bins[i-1].Upper = bins[i].Lower
		}
	}
	bins[0].Lower = lo
	bins[n-1].Upper = hi
	// Values are placed by the bounds themselves rather than by
	// dividing by the bin width, which rounds differently near a
	// bound.
	for _, v := range values {
		if math.IsNaN(v) || v < lo || v > hi {
			continue
		}
		i := sort.Search(n, func(i int) bool { return bins[i].Lower > v }) - 1
		bins[i].Count++
	}
	return bins
}

// Extent returns the smallest and largest non-NaN values. ok is false
// if there are none.
func Extent(values []float64) (lo, hi float64, ok bool) {
	xs := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			xs = append(xs, v)
		}
	}
	if len(xs) == 0 {
		return 0, 0, false
	}
	lo, hi = stats.Sample{Xs: xs}.Bounds()
	return lo, hi, true
}

// Mean returns the mean of the non-NaN values, or ErrEmpty.
func Mean(values []float64) (float64, error) {
	xs := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			xs = append(xs, v)
		}
	}
	if len(xs) == 0 {
		return 0, ErrEmpty
	}
	return stats.Mean(xs), nil
}
