// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package booking reads hotel booking records.
//
// The input is the "hotel_bookings.csv" table: one row per booking,
// with a header row naming the columns. Only a handful of columns are
// consumed; the rest are ignored.
package booking

import (
	"math"
	"time"
)

// Hotel names as they appear in the dataset.
const (
	CityHotel   = "City Hotel"
	ResortHotel = "Resort Hotel"
)

// Hotels is the fixed hotel domain in display order.
var Hotels = []string{CityHotel, ResortHotel}

// Record is a single booking. Records are immutable once parsed.
type Record struct {
	Hotel   string
	Country string

	// ArrivalMonth is the month of the arrival date.
	ArrivalMonth time.Month

	IsCanceled bool

	// ADR is the average daily rate. It is NaN if the source
	// value was blank or not a number.
	ADR float64

	Children, Babies int
}

// HasADR reports whether r carries a usable average daily rate.
func (r *Record) HasADR() bool {
	return !math.IsNaN(r.ADR) && !math.IsInf(r.ADR, 0)
}

// HasFamily reports whether the booking includes children or babies.
func (r *Record) HasFamily() bool {
	return r.Children > 0 || r.Babies > 0
}

// A Dataset is the ordered sequence of records loaded from a source.
// It is shared and must not be modified after loading.
type Dataset []*Record

// ADRs returns the usable ADR values of ds in dataset order.
func (ds Dataset) ADRs() []float64 {
	xs := make([]float64, 0, len(ds))
	for _, r := range ds {
		if r.HasADR() {
			xs = append(xs, r.ADR)
		}
	}
	return xs
}

// Filter returns the records of ds for which keep returns true. The
// result shares records with ds.
func (ds Dataset) Filter(keep func(*Record) bool) Dataset {
	out := Dataset{}
	for _, r := range ds {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// Months lists the arrival month domain as it is spelled in the
// dataset, January first.
var Months = func() []string {
	ms := make([]string, 12)
	for i := range ms {
		ms[i] = time.Month(i + 1).String()
	}
	return ms
}()

// Status labels for the cancellation flag.
const (
	NotCanceled = "not canceled"
	Canceled    = "canceled"
)

// Statuses is the cancellation domain in stacking order: bookings that
// were kept sit beneath canceled ones.
var Statuses = []string{NotCanceled, Canceled}

// Status returns the status label of r.
func (r *Record) Status() string {
	if r.IsCanceled {
		return Canceled
	}
	return NotCanceled
}

// Family labels for the family categorization.
const (
	WithChildren    = "with children"
	WithoutChildren = "without children"
)

// Family returns the family label of r.
func (r *Record) Family() string {
	if r.HasFamily() {
		return WithChildren
	}
	return WithoutChildren
}
