// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command hotelstory tells the hotel bookings story.
//
// The story is a sequence of narrative steps, each showing one view
// of the bookings dataset: average daily rates, cancellations by
// hotel and month, where guests come from, and how bookings flow to
// their outcome. Many views can be drilled into.
//
// Usage:
//
//	hotelstory render [-o story.html]   write the story as a static HTML page
//	hotelstory read                      read the story in the terminal
//	hotelstory table [--by cols]         print booking counts
//
// The story is configured by a YAML file given with --config. Without
// one, the built-in story is told over data/hotel_bookings.csv, or the
// file or URL given with --data.
package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/hotelbookings/hotelstory/dataset"
	"github.com/hotelbookings/hotelstory/story"
	"github.com/hotelbookings/hotelstory/view"
)

var (
	logger *zap.Logger

	flagConfig  string
	flagData    string
	flagVerbose bool
	flagLogFile string
)

var rootCmd = &cobra.Command{
	Use:   "hotelstory",
	Short: "Tell the hotel bookings story",
	Long: `hotelstory renders or reads a scrollytelling story over the hotel
bookings dataset. Each narrative step shows one view; views with a
drill-down can be narrowed to a hotel, month, country, status, or rate
quartile.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if flagVerbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		if flagLogFile != "" {
			config.OutputPaths = []string{flagLogFile}
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "read the story from YAML `file`")
	rootCmd.PersistentFlags().StringVar(&flagData, "data", "", "load bookings from `file or URL`, overriding the story")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "write logs to `file` instead of stderr")

	rootCmd.AddCommand(renderCmd, readCmd, tableCmd)
}

func main() {
	log.SetPrefix("hotelstory: ")
	log.SetFlags(0)

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

// loadStory returns the story configured by the command line.
func loadStory() (*story.Config, error) {
	cfg := story.DefaultConfig()
	if flagConfig != "" {
		var err error
		cfg, err = story.LoadConfig(flagConfig)
		if err != nil {
			return nil, err
		}
	}
	if flagData != "" {
		cfg.Data = flagData
	}
	return cfg, cfg.Validate()
}

// newController returns a controller telling cfg's story onto s.
func newController(cfg *story.Config, s view.Surface) (*story.Controller, *dataset.Cache, error) {
	reg, err := cfg.Registry()
	if err != nil {
		return nil, nil, err
	}
	cache := dataset.NewCache(dataset.SourceFor(cfg.Data), dataset.WithLogger(logger.Named("dataset")))
	ctl := story.NewController(reg, cache, s, story.WithLogger(logger.Named("story")))
	return ctl, cache, nil
}

// tee is a surface that mirrors every call onto several surfaces.
type tee []view.Surface

func (t tee) Clear() {
	for _, s := range t {
		s.Clear()
	}
}

func (t tee) Draw(sc *view.Scene) error {
	for _, s := range t {
		if err := s.Draw(sc); err != nil {
			return err
		}
	}
	return nil
}

func (t tee) Notice(msg string) {
	for _, s := range t {
		s.Notice(msg)
	}
}
