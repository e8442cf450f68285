// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/hotelbookings/hotelstory/agg"
	"github.com/hotelbookings/hotelstory/booking"
)

// Status is a cancellation filter.
type Status int

const (
	AnyStatus Status = iota
	NotCanceled
	Canceled
)

// StatusOf returns the Status matching a cancellation flag.
func StatusOf(canceled bool) Status {
	if canceled {
		return Canceled
	}
	return NotCanceled
}

// ParseStatus parses a booking status label.
func ParseStatus(s string) (Status, error) {
	switch s {
	case booking.Canceled:
		return Canceled, nil
	case booking.NotCanceled:
		return NotCanceled, nil
	case "", "any":
		return AnyStatus, nil
	}
	return AnyStatus, fmt.Errorf("bad status %q", s)
}

func (s Status) String() string {
	switch s {
	case Canceled:
		return booking.Canceled
	case NotCanceled:
		return booking.NotCanceled
	}
	return "any"
}

// A Selection narrows a view to a subset of the dataset. Zero-valued
// fields match everything.
type Selection struct {
	Hotel    string
	Country  string
	Month    time.Month
	Status   Status
	Quartile agg.Quartile
}

// IsZero reports whether s selects the whole dataset.
func (s Selection) IsZero() bool { return s == Selection{} }

// Matches reports whether r satisfies the categorical fields of s.
// Quartile is not considered: it depends on boundaries that only the
// view computing them knows.
func (s Selection) Matches(r *booking.Record) bool {
	switch {
	case s.Hotel != "" && r.Hotel != s.Hotel:
		return false
	case s.Country != "" && r.Country != s.Country:
		return false
	case s.Month != 0 && r.ArrivalMonth != s.Month:
		return false
	case s.Status != AnyStatus && StatusOf(r.IsCanceled) != s.Status:
		return false
	}
	return true
}

// Filter returns the records of ds matching the categorical fields
// of s.
func (s Selection) Filter(ds booking.Dataset) booking.Dataset {
	return ds.Filter(s.Matches)
}

func (s Selection) String() string {
	var parts []string
	if s.Hotel != "" {
		parts = append(parts, "hotel="+s.Hotel)
	}
	if s.Country != "" {
		parts = append(parts, "country="+s.Country)
	}
	if s.Month != 0 {
		parts = append(parts, "month="+s.Month.String())
	}
	if s.Status != AnyStatus {
		parts = append(parts, "status="+s.Status.String())
	}
	if s.Quartile != agg.NoQuartile {
		parts = append(parts, "quartile="+s.Quartile.String())
	}
	if len(parts) == 0 {
		return "all"
	}
	return strings.Join(parts, " ")
}
