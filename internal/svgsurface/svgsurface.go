// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package svgsurface draws view scenes as SVG.
//
// Each panel of a scene becomes its own <svg> element, suitable for
// inlining in HTML. Tooltips become <title> children of their marks
// and drill-down targets become data-drill attributes.
package svgsurface

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"sync"

	svg "github.com/ajstarks/svgo"

	"github.com/hotelbookings/hotelstory/view"
)

// Surface is a view.Surface that keeps the SVG of the scene drawn
// since the last Clear.
type Surface struct {
	width, height int

	mu     sync.Mutex
	buf    bytes.Buffer
	notice string
}

// New returns a surface whose scenes are width by height pixels.
func New(width, height int) *Surface {
	return &Surface{width: width, height: height}
}

func (s *Surface) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buf.Reset()
	s.notice = ""
}

func (s *Surface) Draw(sc *view.Scene) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Render(&s.buf, sc, s.width, s.height)
}

func (s *Surface) Notice(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notice = msg
}

// Bytes returns the markup currently on the surface: the drawn
// scene, followed by the notice if one was posted.
func (s *Surface) Bytes() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append([]byte(nil), s.buf.Bytes()...)
	if s.notice != "" {
		out = append(out, fmt.Sprintf(`<p class="notice">%s</p>`, html.EscapeString(s.notice))...)
	}
	return out
}

// Render writes the SVG of sc to w. The panels of sc share the width
// equally.
func Render(w io.Writer, sc *view.Scene, width, height int) error {
	if sc.Empty || len(sc.Panels) == 0 {
		return writeSVG(w, width, height/4, func(c *svg.SVG) {
			c.Text(width/2, height/8, sc.Subtitle, `text-anchor="middle"`, `fill="#666"`)
		})
	}
	pw := width / len(sc.Panels)
	for _, p := range sc.Panels {
		var err error
		switch p.Kind {
		case view.KindHistogram:
			err = histogram(w, p, pw, height)
		case view.KindStrip:
			err = strip(w, p, pw, height)
		default:
			draw, ok := drawers[p.Kind]
			if !ok {
				return fmt.Errorf("%s: unknown panel kind %q", sc.View, p.Kind)
			}
			err = writeSVG(w, pw, height, func(c *svg.SVG) {
				title(c, p, pw)
				draw(c, p, frame(pw, height))
			})
		}
		if err != nil {
			return fmt.Errorf("%s: %w", sc.View, err)
		}
	}
	return nil
}

// writeSVG writes one <svg> element drawn by f, without the XML
// declaration svgo emits.
func writeSVG(w io.Writer, width, height int, f func(c *svg.SVG)) error {
	var buf bytes.Buffer
	c := svg.New(&buf)
	c.Start(width, height, `font-size="12px" font-family="Roboto,Helvetica,Arial,sans-serif"`)
	f(c)
	c.End()
	_, err := w.Write(stripDecl(buf.Bytes()))
	return err
}

func stripDecl(b []byte) []byte {
	if i := bytes.Index(b, []byte("<svg")); i > 0 {
		return b[i:]
	}
	return b
}

func title(c *svg.SVG, p *view.Panel, width int) {
	if p.Title != "" {
		c.Text(width/2, 16, p.Title, `text-anchor="middle"`, `font-weight="bold"`)
	}
}

// A box is a drawing area in pixels.
type box struct {
	x, y, w, h float64
}

func frame(width, height int) box {
	const left, top, right, bottom = 48, 28, 12, 36
	return box{left, top, float64(width - left - right), float64(height - top - bottom)}
}

// mark opens a group for one mark carrying its tooltip and drill
// target. The caller draws the mark and calls c.Gend.
func mark(c *svg.SVG, tooltip string, drill *view.Selection) {
	var attrs []string
	if drill != nil {
		attrs = append(attrs, fmt.Sprintf(`data-drill="%s"`, html.EscapeString(drill.String())), `class="drill"`)
	}
	c.Group(attrs...)
	if tooltip != "" {
		c.Title(tooltip)
	}
}
