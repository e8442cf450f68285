// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package agg

import "github.com/hotelbookings/hotelstory/booking"

// Percentage returns the percentage of recs for which pred is true.
// It returns ErrDivisionByZero if recs is empty; it never returns NaN.
func Percentage(recs booking.Dataset, pred func(*booking.Record) bool) (float64, error) {
	if len(recs) == 0 {
		return 0, ErrDivisionByZero
	}
	n := 0
	for _, r := range recs {
		if pred(r) {
			n++
		}
	}
	return 100 * float64(n) / float64(len(recs)), nil
}

// PercentOf returns 100*part/total, or ErrDivisionByZero if total is 0.
func PercentOf(part, total int) (float64, error) {
	if total == 0 {
		return 0, ErrDivisionByZero
	}
	return 100 * float64(part) / float64(total), nil
}

// A Split is the share of a group on either side of a predicate.
// Yes and No sum to 100.
type Split struct {
	Yes, No float64
	N       int
}

// SplitOf partitions recs by pred and returns both percentages.
func SplitOf(recs booking.Dataset, pred func(*booking.Record) bool) (Split, error) {
	yes, err := Percentage(recs, pred)
	if err != nil {
		return Split{}, err
	}
	return Split{Yes: yes, No: 100 - yes, N: len(recs)}, nil
}

// IsCanceled is the cancellation predicate.
func IsCanceled(r *booking.Record) bool { return r.IsCanceled }
