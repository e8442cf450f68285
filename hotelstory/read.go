// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hotelbookings/hotelstory/internal/termsurface"
	"github.com/hotelbookings/hotelstory/story"
	"github.com/hotelbookings/hotelstory/view"
)

var readCmd = &cobra.Command{
	Use:   "read",
	Short: "Read the story in the terminal",
	Long: `read shows the story one step at a time.

Keys:
  up/k, down/j     previous or next step
  left/h, right/l  choose a drill-down target
  enter            drill into the chosen target
  esc, backspace   return to the overview
  q                quit`,
	Args: cobra.NoArgs,
	PreRun: func(cmd *cobra.Command, args []string) {
		// Logs would scribble over the screen.
		if flagLogFile == "" {
			logger = zap.NewNop()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadStory()
		if err != nil {
			return err
		}
		m, err := newReader(cmd.Context(), cfg, 80)
		if err != nil {
			return err
		}
		_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
		return err
	},
}

var (
	stepStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#4e79a7")).Bold(true)
	cursorStyle = lipgloss.NewStyle().Reverse(true)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#e15759"))
	helpStyle   = lipgloss.NewStyle().Faint(true)
)

// reader is the bubbletea model of the read command. It is the step
// trigger of the story: every key that moves through the story becomes
// a controller transition run as a command.
type reader struct {
	ctx   context.Context
	cfg   *story.Config
	ctl   *story.Controller
	term  *termsurface.Surface
	rec   *view.Recorder

	step    int
	targets []view.Selection
	target  int
	busy    bool
	err     error
}

// doneMsg reports the end of a controller transition.
type doneMsg struct{ err error }

func newReader(ctx context.Context, cfg *story.Config, width int) (*reader, error) {
	term := termsurface.New(width)
	rec := new(view.Recorder)
	ctl, _, err := newController(cfg, tee{term, rec})
	if err != nil {
		return nil, err
	}
	return &reader{ctx: ctx, cfg: cfg, ctl: ctl, term: term, rec: rec}, nil
}

func (m *reader) run(f func(ctx context.Context) error) tea.Cmd {
	m.busy = true
	return func() tea.Msg {
		return doneMsg{f(m.ctx)}
	}
}

func (m *reader) Init() tea.Cmd {
	return m.enter(0)
}

// enter moves to step. m.step follows once the controller has
// entered it.
func (m *reader) enter(step int) tea.Cmd {
	return m.run(func(ctx context.Context) error { return m.ctl.OnStepEnter(ctx, step) })
}

func (m *reader) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.term.SetWidth(msg.Width)
		return m, nil

	case doneMsg:
		m.busy = false
		m.err = msg.err
		st := m.ctl.State()
		if st.Phase != story.Idle {
			m.step = st.Step
		}
		if st.Phase == story.Overview && msg.err == nil {
			m.targets = nil
			if sc := m.rec.Last(); sc != nil {
				m.targets = sc.Targets()
			}
			if m.target >= len(m.targets) {
				m.target = 0
			}
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
		if m.busy {
			return m, nil
		}
		switch msg.String() {
		case "down", "j":
			if m.step+1 < len(m.cfg.Steps) {
				m.target = 0
				return m, m.enter(m.step + 1)
			}
		case "up", "k":
			if m.step > 0 {
				m.target = 0
				return m, m.enter(m.step - 1)
			}
		case "right", "l":
			if len(m.targets) > 0 {
				m.target = (m.target + 1) % len(m.targets)
			}
		case "left", "h":
			if len(m.targets) > 0 {
				m.target = (m.target + len(m.targets) - 1) % len(m.targets)
			}
		case "enter":
			if len(m.targets) > 0 {
				sel := m.targets[m.target]
				return m, m.run(func(ctx context.Context) error { return m.ctl.DrillInto(ctx, sel) })
			}
		case "esc", "backspace":
			return m, m.run(m.ctl.ReturnToOverview)
		}
	}
	return m, nil
}

func (m *reader) View() string {
	var b strings.Builder
	b.WriteString(stepStyle.Render(fmt.Sprintf("Step %d of %d", m.step+1, len(m.cfg.Steps))))
	if m.step < len(m.cfg.Steps) {
		b.WriteString("  " + m.cfg.Steps[m.step].Text)
	}
	b.WriteString("\n\n")
	if m.busy && m.ctl.State().Phase == story.Idle {
		b.WriteString("Loading bookings…\n")
	}
	b.WriteString(m.term.String())
	if len(m.targets) > 0 {
		b.WriteString("\nDrill into: ")
		for i, t := range m.targets {
			label := t.String()
			if i == m.target {
				label = cursorStyle.Render(label)
			}
			b.WriteString(label + " ")
		}
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(errStyle.Render(m.err.Error()) + "\n")
	}
	b.WriteString(helpStyle.Render("↑/↓ step  ←/→ target  enter drill  esc back  q quit") + "\n")
	return b.String()
}
