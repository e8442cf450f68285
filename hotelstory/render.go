// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"html/template"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hotelbookings/hotelstory/internal/svgsurface"
	"github.com/hotelbookings/hotelstory/story"
	"github.com/hotelbookings/hotelstory/view"
)

var flagOut string

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Write the story as a static HTML page",
	Long: `render enters every step of the story in order and captures the
figure it shows, then drills into every target of that figure and
captures each drill-down. The result is a single HTML page.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadStory()
		if err != nil {
			return err
		}
		if flagOut == "" {
			return renderStory(cmd.Context(), cmd.OutOrStdout(), cfg)
		}
		f, err := os.Create(flagOut)
		if err != nil {
			return err
		}
		if err := renderStory(cmd.Context(), f, cfg); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	},
}

func init() {
	renderCmd.Flags().StringVarP(&flagOut, "output", "o", "", "write the page to `file` (default: stdout)")
}

type page struct {
	Title string
	Steps []pageStep
}

type pageStep struct {
	Index  int
	Text   string
	Figure template.HTML
	Drills []pageDrill
}

type pageDrill struct {
	Label  string
	Figure template.HTML
}

// renderStory tells cfg's story onto an SVG surface and writes the
// captured figures to w as HTML.
func renderStory(ctx context.Context, w io.Writer, cfg *story.Config) error {
	svgs := svgsurface.New(cfg.Output.Width, cfg.Output.Height)
	rec := new(view.Recorder)
	ctl, _, err := newController(cfg, tee{svgs, rec})
	if err != nil {
		return err
	}

	p := page{Title: cfg.Title}
	for i, st := range cfg.Steps {
		if err := ctl.OnStepEnter(ctx, i); err != nil {
			return err
		}
		ps := pageStep{Index: i, Text: st.Text, Figure: template.HTML(svgs.Bytes())}
		for _, sel := range rec.Last().Targets() {
			if err := ctl.DrillInto(ctx, sel); err != nil {
				return err
			}
			ps.Drills = append(ps.Drills, pageDrill{Label: sel.String(), Figure: template.HTML(svgs.Bytes())})
			if err := ctl.ReturnToOverview(ctx); err != nil {
				return err
			}
		}
		logger.Debug("rendered step", zap.Int("step", i), zap.String("view", string(st.View)), zap.Int("drills", len(ps.Drills)))
		p.Steps = append(p.Steps, ps)
	}
	if err := pageTemplate.Execute(w, p); err != nil {
		return fmt.Errorf("writing page: %w", err)
	}
	return nil
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: Roboto, Helvetica, Arial, sans-serif; max-width: 60rem; margin: 0 auto; }
.step { min-height: 80vh; padding: 2rem 0; }
.step p { font-size: 1.2rem; }
.drill { cursor: pointer; }
details { margin: .5rem 0; }
.notice { color: #e15759; font-weight: bold; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{range .Steps}}
<section class="step" id="step-{{.Index}}">
<p>{{.Text}}</p>
<figure>{{.Figure}}</figure>
{{range .Drills}}
<details>
<summary>{{.Label}}</summary>
<figure>{{.Figure}}</figure>
</details>
{{end}}
</section>
{{end}}
</body>
</html>
`))
