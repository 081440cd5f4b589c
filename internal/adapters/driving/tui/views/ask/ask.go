// Package ask provides the free-text question view for the TUI.
package ask

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/briefwise-labs/briefwise-cli/internal/adapters/driving/tui/components/params"
	"github.com/briefwise-labs/briefwise-cli/internal/adapters/driving/tui/messages"
	"github.com/briefwise-labs/briefwise-cli/internal/adapters/driving/tui/styles"
	"github.com/briefwise-labs/briefwise-cli/internal/core/ports/driving"
)

// focusTarget identifies which widget receives key input.
type focusTarget int

const (
	focusInput focusTarget = iota
	focusPanel
	focusResult
)

// View represents the question view.
type View struct {
	styles *styles.Styles
	digest driving.DigestService
	ctx    context.Context

	input    textinput.Model
	panel    *params.Panel
	spinner  spinner.Model
	viewport viewport.Model

	focus   focusTarget
	running bool
	answer  *driving.Answer
	err     error

	width  int
	height int
}

// NewView creates a new question view with the given parameter defaults.
func NewView(s *styles.Styles, digest driving.DigestService, defaults params.Defaults) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "Ask about your newsletters..."
	ti.CharLimit = 512
	ti.Width = 60
	ti.Focus()

	panel := params.NewPanel(s,
		params.TopKField(defaults.TopK),
		params.TemperatureField(defaults.Temperature),
		params.MaxTokensField(defaults.MaxTokens),
		params.CountTokensField(defaults.CountTokens),
	)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = s.Subtitle

	return &View{
		styles:   s,
		digest:   digest,
		ctx:      context.Background(),
		input:    ti,
		panel:    panel,
		spinner:  sp,
		viewport: viewport.New(80, 10),
		width:    80,
		height:   24,
	}
}

// WithContext sets the context used for generation calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the question view.
func (v *View) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the question view.
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
			v.cycleFocus()
			return v, nil

		case "enter":
			if v.running || strings.TrimSpace(v.input.Value()) == "" {
				return v, nil
			}
			return v, v.run()
		}

		switch v.focus {
		case focusInput:
			v.input, cmd = v.input.Update(msg)
		case focusPanel:
			v.panel, cmd = v.panel.Update(msg)
		case focusResult:
			v.viewport, cmd = v.viewport.Update(msg)
		}
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

	// Cursor blink and other component messages.
	if v.focus == focusInput {
		v.input, cmd = v.input.Update(msg)
	}
	return v, cmd
}

// cycleFocus rotates input focus between the question, the parameter
// panel and the result.
func (v *View) cycleFocus() {
	v.input.Blur()
	v.panel.Blur()

	switch v.focus {
	case focusInput:
		v.focus = focusPanel
		v.panel.Focus()
	case focusPanel:
		if v.answer != nil {
			v.focus = focusResult
		} else {
			v.focus = focusInput
			v.input.Focus()
		}
	case focusResult:
		v.focus = focusInput
		v.input.Focus()
	}
}

// run launches the retrieval-augmented answer as a background command.
func (v *View) run() tea.Cmd {
	v.running = true
	v.err = nil
	v.answer = nil

	question := v.input.Value()
	topK := v.panel.Int(params.TopK)
	genParams := driving.GenerateParams{
		Temperature: v.panel.Float(params.Temperature),
		MaxTokens:   v.panel.Int(params.MaxTokens),
		CountTokens: v.panel.Bool(params.CountTokens),
	}

	answer := func() tea.Msg {
		result, err := v.digest.Answer(v.ctx, question, topK, genParams)
		return messages.AnswerCompleted{Answer: result, Err: err}
	}
	return tea.Batch(v.spinner.Tick, answer)
}

// View renders the question view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Answer your query"))
	b.WriteString("\n\n")
	b.WriteString(v.styles.InputField.Render(v.input.View()))
	b.WriteString("\n\n")
	b.WriteString(v.panel.View())
	b.WriteString("\n")

	switch {
	case v.running:
		b.WriteString(v.spinner.View())
		b.WriteString(v.styles.Muted.Render(" Thinking..."))
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
	b.WriteString(v.styles.Help.Render("[Tab] Switch focus  [Enter] Ask  [Esc] Menu"))

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.input.Width = width - 20
	v.viewport.Width = width - 4
	v.viewport.Height = height - 18
	if v.viewport.Height < 4 {
		v.viewport.Height = 4
	}
}

// Question returns the current question text.
func (v *View) Question() string {
	return v.input.Value()
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
