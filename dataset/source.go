// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataset

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/hotelbookings/hotelstory/booking"
)

// A Source loads the bookings dataset.
type Source interface {
	Load(ctx context.Context) (booking.Dataset, error)
	String() string
}

// SourceFor returns an HTTPSource for http and https URLs and a
// FileSource for anything else.
func SourceFor(location string) Source {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return &HTTPSource{URL: location}
	}
	return &FileSource{Path: location}
}

// FileSource reads a bookings CSV file.
type FileSource struct {
	Path string
}

func (s *FileSource) Load(ctx context.Context) (booking.Dataset, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return booking.Parse(f)
}

func (s *FileSource) String() string { return s.Path }

// HTTPSource fetches a bookings CSV file over HTTP.
type HTTPSource struct {
	URL string

	// Client is the client to use. If nil, http.DefaultClient is
	// used.
	Client *http.Client
}

func (s *HTTPSource) Load(ctx context.Context) (booking.Dataset, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", s.URL, nil)
	if err != nil {
		return nil, err
	}
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: %s", s.URL, resp.Status)
	}
	return booking.Parse(resp.Body)
}

func (s *HTTPSource) String() string { return s.URL }
