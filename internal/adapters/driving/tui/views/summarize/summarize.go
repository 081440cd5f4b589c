// Package summarize provides the day-window summary view for the TUI.
package summarize

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/briefwise-labs/briefwise-cli/internal/adapters/driving/tui/components/params"
	"github.com/briefwise-labs/briefwise-cli/internal/adapters/driving/tui/messages"
	"github.com/briefwise-labs/briefwise-cli/internal/adapters/driving/tui/styles"
	"github.com/briefwise-labs/briefwise-cli/internal/core/ports/driving"
)

// View represents the summary view.
type View struct {
	styles *styles.Styles
	digest driving.DigestService
	ctx    context.Context

	panel    *params.Panel
	spinner  spinner.Model
	viewport viewport.Model

	running     bool
	answer      *driving.Answer
	err         error
	scrollFocus bool

	width  int
	height int
}

// NewView creates a new summary view with the given parameter defaults.
func NewView(s *styles.Styles, digest driving.DigestService, defaults params.Defaults) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	panel := params.NewPanel(s,
		params.WindowDaysField(defaults.WindowDays),
		params.TemperatureField(defaults.Temperature),
		params.MaxTokensField(defaults.MaxTokens),
		params.CountTokensField(defaults.CountTokens),
	)
	panel.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = s.Subtitle

	return &View{
		styles:   s,
		digest:   digest,
		ctx:      context.Background(),
		panel:    panel,
		spinner:  sp,
		viewport: viewport.New(80, 12),
		width:    80,
		height:   24,
	}
}

// WithContext sets the context used for generation calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the summary view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the summary view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}

		case "tab":
			if v.answer != nil {
				v.scrollFocus = !v.scrollFocus
				if v.scrollFocus {
					v.panel.Blur()
				} else {
					v.panel.Focus()
				}
			}
			return v, nil

		case "enter":
			if v.running {
				return v, nil
			}
			return v, v.run()
		}

		if v.scrollFocus {
			v.viewport, cmd = v.viewport.Update(msg)
			return v, cmd
		}
		v.panel, cmd = v.panel.Update(msg)
		return v, cmd

	case messages.AnswerCompleted:
		v.running = false
		v.answer = msg.Answer
		v.err = msg.Err
		if msg.Answer != nil {
			v.viewport.SetContent(msg.Answer.Text)
			v.viewport.GotoTop()
		}
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

// run launches the summary generation as a background command.
func (v *View) run() tea.Cmd {
	v.running = true
	v.err = nil
	v.answer = nil

	windowDays := v.panel.Int(params.WindowDays)
	genParams := driving.GenerateParams{
		Temperature: v.panel.Float(params.Temperature),
		MaxTokens:   v.panel.Int(params.MaxTokens),
		CountTokens: v.panel.Bool(params.CountTokens),
	}

	summarize := func() tea.Msg {
		answer, err := v.digest.Summarize(v.ctx, windowDays, genParams)
		return messages.AnswerCompleted{Answer: answer, Err: err}
	}
	return tea.Batch(v.spinner.Tick, summarize)
}

// View renders the summary view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Summarize"))
	b.WriteString("\n\n")
	b.WriteString(v.panel.View())
	b.WriteString("\n")

	switch {
	case v.running:
		b.WriteString(v.spinner.View())
		b.WriteString(v.styles.Muted.Render(" Generating summary..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %v", v.err)))
	case v.answer != nil:
		b.WriteString(v.styles.Border.Render(v.viewport.View()))
		if v.answer.InputTokens != nil {
			b.WriteString("\n")
			b.WriteString(v.styles.Muted.Render(fmt.Sprintf("Input tokens: %d", *v.answer.InputTokens)))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[h/l] Adjust  [Enter] Summarize  [Tab] Scroll  [Esc] Menu"))

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.viewport.Width = width - 4
	v.viewport.Height = height - 14
	if v.viewport.Height < 4 {
		v.viewport.Height = 4
	}
}

// Answer returns the last generated answer.
func (v *View) Answer() *driving.Answer {
	return v.answer
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

// Running reports whether a generation is in flight.
func (v *View) Running() bool {
	return v.running
}
