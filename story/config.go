// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package story

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hotelbookings/hotelstory/view"
)

// DefaultData is the location of the bookings dataset used when a
// story names none.
const DefaultData = "data/hotel_bookings.csv"

// Config describes a story: where its data comes from, which view
// each narrative step shows, and how the views are tuned.
type Config struct {
	Title string `yaml:"title"`

	// Data is a file path or an http(s) URL of the bookings CSV.
	Data string `yaml:"data"`

	// Steps lists the narrative steps in scroll order. Step i
	// shows Steps[i].View.
	Steps []Step `yaml:"steps"`

	// Views holds per-view options keyed by view ID.
	Views map[view.ID]ViewConfig `yaml:"views"`

	Output OutputConfig `yaml:"output"`
}

// A Step is one narrative step of the story.
type Step struct {
	View view.ID `yaml:"view"`
	Text string  `yaml:"text"`
}

// ViewConfig tunes a single view. Fields that do not apply to a view
// are ignored.
type ViewConfig struct {
	// RecomputeBoundaries recomputes group-relative values, such
	// as quartile boundaries, over the drilled-into subset.
	RecomputeBoundaries bool `yaml:"recompute_boundaries"`

	// TopCountries restricts the mosaic and treemap views.
	TopCountries []string `yaml:"top_countries"`

	// HistogramBins is the bin count of the ADR quartile
	// drill-down.
	HistogramBins int `yaml:"histogram_bins"`

	// HighlightCanceled marks canceled flows in the hotel flow.
	HighlightCanceled bool `yaml:"highlight_canceled"`
}

// OutputConfig sizes rendered figures, in pixels.
type OutputConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

var defaultText = map[view.ID]string{
	view.ADROverview:     "City hotels charge more per night than resorts, on average.",
	view.ADRDistribution: "Averages hide the spread: resort prices swing with the season.",
	view.Cancellations:   "More than a third of all bookings never turn into a stay.",
	view.Monthly:         "Cancellations follow demand through the year.",
	view.Heatmap:         "Summer months carry the most cancellations.",
	view.ADRQuartiles:    "Pricier bookings are canceled more often.",
	view.Mosaic:          "Where guests come from changes how likely they are to cancel.",
	view.FamilySankey:    "Families favor resorts, and cancel less.",
	view.Treemap:         "A handful of countries account for most bookings.",
	view.HotelFlow:       "Following every booking from hotel to outcome.",
}

// DefaultConfig returns the standard story.
func DefaultConfig() *Config {
	o := view.DefaultOptions()
	cfg := &Config{
		Title: "Hotel bookings",
		Data:  DefaultData,
		Views: map[view.ID]ViewConfig{
			view.ADRQuartiles: {HistogramBins: o.HistogramBins},
			view.Mosaic:       {TopCountries: o.MosaicCountries},
			view.Treemap:      {TopCountries: o.TreemapCountries},
		},
		Output: OutputConfig{Width: 720, Height: 480},
	}
	for _, id := range view.DefaultSteps {
		cfg.Steps = append(cfg.Steps, Step{View: id, Text: defaultText[id]})
	}
	return cfg
}

// LoadConfig reads a story from a YAML file. Settings absent from the
// file keep their DefaultConfig values. A steps list replaces the
// default steps and a views entry replaces that view's defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading story: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing story %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("story %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports the first problem with c.
func (c *Config) Validate() error {
	if c.Data == "" {
		return fmt.Errorf("no data source")
	}
	if len(c.Steps) == 0 {
		return fmt.Errorf("no steps")
	}
	known := make(map[view.ID]bool)
	for _, v := range view.Standard(view.DefaultOptions()) {
		known[v.ID()] = true
	}
	for i, s := range c.Steps {
		if !known[s.View] {
			return fmt.Errorf("step %d: %w %q", i, view.ErrUnknownView, s.View)
		}
	}
	for id, vc := range c.Views {
		if !known[id] {
			return fmt.Errorf("views: %w %q", view.ErrUnknownView, id)
		}
		if vc.HistogramBins < 0 {
			return fmt.Errorf("views: %s: negative histogram_bins %d", id, vc.HistogramBins)
		}
	}
	if c.Output.Width < 0 || c.Output.Height < 0 {
		return fmt.Errorf("output: negative size %dx%d", c.Output.Width, c.Output.Height)
	}
	return nil
}

// ViewOptions returns the standard view options tuned by c.
func (c *Config) ViewOptions() view.Options {
	o := view.DefaultOptions()
	if vc, ok := c.Views[view.Mosaic]; ok && len(vc.TopCountries) > 0 {
		o.MosaicCountries = vc.TopCountries
	}
	if vc, ok := c.Views[view.Treemap]; ok && len(vc.TopCountries) > 0 {
		o.TreemapCountries = vc.TopCountries
	}
	if vc, ok := c.Views[view.ADRQuartiles]; ok && vc.HistogramBins > 0 {
		o.HistogramBins = vc.HistogramBins
	}
	o.HighlightCanceled = c.Views[view.HotelFlow].HighlightCanceled
	return o
}

// Registry returns a registry holding the standard views, tuned by c
// and mapped to c's steps.
func (c *Config) Registry() (*view.Registry, error) {
	r := view.NewRegistry()
	for _, v := range view.Standard(c.ViewOptions()) {
		r.Register(v)
	}
	for i, s := range c.Steps {
		if err := r.Map(i, s.View); err != nil {
			return nil, err
		}
	}
	for id, vc := range c.Views {
		r.SetOptions(id, view.DrillOptions{RecomputeBoundaries: vc.RecomputeBoundaries})
	}
	return r, nil
}
