// Package params provides the adjustable parameter panel shared by the
// action views.
package params

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/briefwise-labs/briefwise-cli/internal/adapters/driving/tui/styles"
)

// Kind identifies an adjustable parameter.
type Kind int

const (
	// Temperature is the sampling temperature (0 to 2).
	Temperature Kind = iota
	// MaxTokens is the output token cap (0 to 10000).
	MaxTokens
	// WindowDays is the trailing day window (0 to 31).
	WindowDays
	// TopK is the retrieval count (0 to 10).
	TopK
	// CountTokens toggles input token counting.
	CountTokens
)

// Defaults carries the configured starting values for the fields.
type Defaults struct {
	Temperature float64
	MaxTokens   int
	WindowDays  int
	TopK        int
	CountTokens bool
}

// DefaultValues returns the built-in parameter defaults.
func DefaultValues() Defaults {
	return Defaults{
		Temperature: 0.1,
		MaxTokens:   2000,
		WindowDays:  7,
		TopK:        2,
	}
}

// Field is one adjustable parameter with its bounds.
type Field struct {
	Kind  Kind
	Label string

	Min, Max, Step float64
	Value          float64

	// IsBool marks a toggle; Value 0 is off, anything else on.
	IsBool bool
}

// TemperatureField builds the temperature field.
func TemperatureField(value float64) Field {
	return Field{Kind: Temperature, Label: "Temperature", Min: 0, Max: 2, Step: 0.1, Value: value}
}

// MaxTokensField builds the max output tokens field.
func MaxTokensField(value int) Field {
	return Field{Kind: MaxTokens, Label: "Max tokens", Min: 0, Max: 10000, Step: 100, Value: float64(value)}
}

// WindowDaysField builds the day window field.
func WindowDaysField(value int) Field {
	return Field{Kind: WindowDays, Label: "Day window", Min: 0, Max: 31, Step: 1, Value: float64(value)}
}

// TopKField builds the retrieval count field.
func TopKField(value int) Field {
	return Field{Kind: TopK, Label: "Documents", Min: 0, Max: 10, Step: 1, Value: float64(value)}
}

// CountTokensField builds the token counting toggle.
func CountTokensField(value bool) Field {
	f := Field{Kind: CountTokens, Label: "Count tokens", IsBool: true}
	if value {
		f.Value = 1
	}
	return f
}

// Panel is a vertical list of adjustable fields.
type Panel struct {
	styles   *styles.Styles
	fields   []Field
	selected int
	focused  bool
}

// NewPanel creates a panel with the given fields.
func NewPanel(s *styles.Styles, fields ...Field) *Panel {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &Panel{styles: s, fields: fields}
}

// Update handles key messages when the panel is focused.
func (p *Panel) Update(msg tea.Msg) (*Panel, tea.Cmd) {
	if !p.focused {
		return p, nil
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}

	switch key.String() {
	case "up", "k":
		if p.selected > 0 {
			p.selected--
		}
	case "down", "j":
		if p.selected < len(p.fields)-1 {
			p.selected++
		}
	case "left", "h":
		p.adjust(-1)
	case "right", "l":
		p.adjust(1)
	case " ":
		f := &p.fields[p.selected]
		if f.IsBool {
			f.Value = 1 - f.Value
		}
	}
	return p, nil
}

// adjust moves the selected field by direction steps within its bounds.
func (p *Panel) adjust(direction float64) {
	f := &p.fields[p.selected]
	if f.IsBool {
		f.Value = 1 - f.Value
		return
	}

	v := f.Value + direction*f.Step
	if v < f.Min {
		v = f.Min
	}
	if v > f.Max {
		v = f.Max
	}
	f.Value = v
}

// View renders the panel.
func (p *Panel) View() string {
	var b strings.Builder
	for i, f := range p.fields {
		cursor := "  "
		style := p.styles.Normal
		if p.focused && i == p.selected {
			cursor = "> "
			style = p.styles.Selected
		}

		b.WriteString(cursor)
		b.WriteString(style.Render(fmt.Sprintf("%-12s %s", f.Label, p.format(f))))
		b.WriteString("\n")
	}
	return b.String()
}

// format renders a field's value.
func (p *Panel) format(f Field) string {
	if f.IsBool {
		if f.Value != 0 {
			return "on"
		}
		return "off"
	}
	if f.Step < 1 {
		return fmt.Sprintf("%.1f", f.Value)
	}
	return fmt.Sprintf("%d", int(f.Value))
}

// Focus gives the panel keyboard focus.
func (p *Panel) Focus() {
	p.focused = true
}

// Blur removes keyboard focus.
func (p *Panel) Blur() {
	p.focused = false
}

// Focused reports whether the panel has focus.
func (p *Panel) Focused() bool {
	return p.focused
}

// Float returns the value of the field with the given kind.
func (p *Panel) Float(kind Kind) float64 {
	for _, f := range p.fields {
		if f.Kind == kind {
			return f.Value
		}
	}
	return 0
}

// Int returns the value of the field with the given kind as an int.
func (p *Panel) Int(kind Kind) int {
	return int(p.Float(kind))
}

// Bool returns the value of the toggle with the given kind.
func (p *Panel) Bool(kind Kind) bool {
	return p.Float(kind) != 0
}
