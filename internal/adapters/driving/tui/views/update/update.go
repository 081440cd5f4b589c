// Package update provides the mailbox sync view for the TUI.
package update

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/briefwise-labs/briefwise-cli/internal/adapters/driving/tui/components/params"
	"github.com/briefwise-labs/briefwise-cli/internal/adapters/driving/tui/messages"
	"github.com/briefwise-labs/briefwise-cli/internal/adapters/driving/tui/styles"
	"github.com/briefwise-labs/briefwise-cli/internal/core/ports/driving"
)

// View represents the mailbox sync view.
type View struct {
	styles *styles.Styles
	digest driving.DigestService
	ctx    context.Context

	panel   *params.Panel
	spinner spinner.Model

	running bool
	report  *driving.SyncReport
	err     error

	width  int
	height int
}

// NewView creates a new sync view with the given parameter defaults.
func NewView(s *styles.Styles, digest driving.DigestService, defaults params.Defaults) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	panel := params.NewPanel(s, params.WindowDaysField(defaults.WindowDays))
	panel.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = s.Subtitle

	return &View{
		styles:  s,
		digest:  digest,
		ctx:     context.Background(),
		panel:   panel,
		spinner: sp,
		width:   80,
		height:  24,
	}
}

// WithContext sets the context used for sync calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the sync view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the sync view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}

		case "enter":
			if v.running {
				return v, nil
			}
			return v, v.run()
		}

		v.panel, cmd = v.panel.Update(msg)
		return v, cmd

	case messages.SyncCompleted:
		v.running = false
		v.report = msg.Report
		v.err = msg.Err
		return v, nil

	case spinner.TickMsg:
		if v.running {
			v.spinner, cmd = v.spinner.Update(msg)
			return v, cmd
		}
		return v, nil
	}

	return v, nil
}

// run launches the mailbox sync as a background command.
func (v *View) run() tea.Cmd {
	v.running = true
	v.err = nil
	v.report = nil

	windowDays := v.panel.Int(params.WindowDays)
	sync := func() tea.Msg {
		report, err := v.digest.Sync(v.ctx, windowDays)
		return messages.SyncCompleted{Report: report, Err: err}
	}
	return tea.Batch(v.spinner.Tick, sync)
}

// View renders the sync view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Update DB"))
	b.WriteString("\n\n")
	b.WriteString(v.panel.View())
	b.WriteString("\n")

	switch {
	case v.running:
		b.WriteString(v.spinner.View())
		b.WriteString(v.styles.Muted.Render(" Fetching newsletters..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %v", v.err)))
	case v.report != nil:
		b.WriteString(v.styles.Success.Render(fmt.Sprintf(
			"Fetched %d messages, inserted %d new documents.",
			v.report.Fetched, v.report.Inserted)))
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[h/l] Adjust window  [Enter] Update  [Esc] Menu"))

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}

// Report returns the last sync report.
func (v *View) Report() *driving.SyncReport {
	return v.report
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

// Running reports whether a sync is in flight.
func (v *View) Running() bool {
	return v.running
}
