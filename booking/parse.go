// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package booking

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"
)

// Column names consumed by Parse.
const (
	colHotel    = "hotel"
	colCountry  = "country"
	colMonth    = "arrival_date_month"
	colCanceled = "is_canceled"
	colADR      = "adr"
	colChildren = "children"
	colBabies   = "babies"
)

var requiredCols = []string{colHotel, colCountry, colMonth, colCanceled, colADR}

// A ParseError reports a malformed value in the input.
type ParseError struct {
	Line   int // 1-based, counting the header
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: column %s: bad value %q: %v", e.Line, e.Column, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ErrMissingColumn is returned by Parse when the header lacks a
// required column.
var ErrMissingColumn = errors.New("missing column")

var monthByName = func() map[string]time.Month {
	m := make(map[string]time.Month)
	for i := time.January; i <= time.December; i++ {
		m[strings.ToLower(i.String())] = i
	}
	return m
}()

// ParseMonth parses a full English month name, ignoring case.
func ParseMonth(s string) (time.Month, error) {
	m, ok := monthByName[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("unknown month %q", s)
	}
	return m, nil
}

// Parse reads a bookings table from r. The first row must be a header.
// Columns are located by name, so their order does not matter.
//
// ADR values that are blank or not numbers become NaN. Blank or "NA"
// children and babies counts become 0. Any other malformed value is a
// *ParseError.
func Parse(r io.Reader) (Dataset, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty input: %w", ErrMissingColumn)
	} else if err != nil {
		return nil, err
	}
	idx := make(map[string]int)
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, ok := idx[name]; !ok {
			idx[name] = i
		}
	}
	for _, c := range requiredCols {
		if _, ok := idx[c]; !ok {
			return nil, fmt.Errorf("%w %q", ErrMissingColumn, c)
		}
	}
	optional := func(name string) int {
		if i, ok := idx[name]; ok {
			return i
		}
		return -1
	}
	iChildren, iBabies := optional(colChildren), optional(colBabies)

	ds := Dataset{}
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		field := func(i int) string {
			if i < 0 || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}
		bad := func(col, val string, err error) error {
			return &ParseError{Line: line, Column: col, Value: val, Err: err}
		}

		rec := &Record{
			Hotel:   field(idx[colHotel]),
			Country: field(idx[colCountry]),
		}

		v := field(idx[colMonth])
		if rec.ArrivalMonth, err = ParseMonth(v); err != nil {
			return nil, bad(colMonth, v, err)
		}

		switch v = field(idx[colCanceled]); v {
		case "0":
		case "1":
			rec.IsCanceled = true
		default:
			return nil, bad(colCanceled, v, errors.New("want 0 or 1"))
		}

		rec.ADR = parseADR(field(idx[colADR]))

		if rec.Children, err = parseCount(field(iChildren)); err != nil {
			return nil, bad(colChildren, field(iChildren), err)
		}
		if rec.Babies, err = parseCount(field(iBabies)); err != nil {
			return nil, bad(colBabies, field(iBabies), err)
		}

		ds = append(ds, rec)
	}
	return ds, nil
}

func parseADR(s string) float64 {
	if s == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) || v < 0 {
		return math.NaN()
	}
	return v
}

func parseCount(s string) (int, error) {
	if s == "" || s == "NA" {
		return 0, nil
	}
	// Some exports write counts as floats ("1.0").
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if v < 0 || v != math.Trunc(v) {
		return 0, fmt.Errorf("not a count")
	}
	return int(v), nil
}
