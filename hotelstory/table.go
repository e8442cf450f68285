// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"

	"github.com/aclements/go-gg/table"
	"github.com/spf13/cobra"

	"github.com/hotelbookings/hotelstory/agg"
	"github.com/hotelbookings/hotelstory/booking"
	"github.com/hotelbookings/hotelstory/dataset"
)

var (
	flagBy      []string
	flagRecords bool
)

var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Print booking counts",
	Long: `table loads the bookings and prints the number of bookings in each
group of the columns given with --by (hotel, country, month, status,
family). With --records it prints one row per booking instead.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadStory()
		if err != nil {
			return err
		}
		cache := dataset.NewCache(dataset.SourceFor(cfg.Data), dataset.WithLogger(logger.Named("dataset")))
		ds, err := cache.Dataset(cmd.Context())
		if err != nil {
			return err
		}
		return printTable(cmd.OutOrStdout(), ds, flagBy, flagRecords)
	},
}

func init() {
	tableCmd.Flags().StringSliceVar(&flagBy, "by", []string{agg.ColHotel, agg.ColStatus}, "group by `columns`")
	tableCmd.Flags().BoolVar(&flagRecords, "records", false, "print every booking")
}

func printTable(w io.Writer, ds booking.Dataset, by []string, records bool) error {
	if records {
		table.Fprint(w, agg.Table(ds))
		return nil
	}
	if len(by) < 1 || len(by) > agg.MaxArity {
		return fmt.Errorf("--by needs 1 to %d columns, got %d", agg.MaxArity, len(by))
	}
	keys := make([]agg.KeyFunc, len(by))
	for i, col := range by {
		key, ok := agg.KeyFor(col)
		if !ok {
			return fmt.Errorf("cannot group by %q", col)
		}
		keys[i] = key
	}
	table.Fprint(w, agg.CountTable(agg.GroupCount(ds, keys...), by...))
	return nil
}
