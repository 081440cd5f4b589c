package params

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestPanel() *Panel {
	p := NewPanel(nil,
		TemperatureField(0.1),
		MaxTokensField(2000),
		CountTokensField(false),
	)
	p.Focus()
	return p
}

func TestPanel_AdjustWithinBounds(t *testing.T) {
	p := newTestPanel()

	p, _ = p.Update(key("l"))
	assert.InDelta(t, 0.2, p.Float(Temperature), 1e-9)

	p, _ = p.Update(key("h"))
	p, _ = p.Update(key("h"))
	p, _ = p.Update(key("h"))
	// Clamped at the minimum.
	assert.InDelta(t, 0, p.Float(Temperature), 1e-9)
}

func TestPanel_ClampsAtMax(t *testing.T) {
	p := NewPanel(nil, TopKField(10))
	p.Focus()

	p, _ = p.Update(key("l"))

	assert.Equal(t, 10, p.Int(TopK))
}

func TestPanel_NavigatesFields(t *testing.T) {
	p := newTestPanel()

	p, _ = p.Update(key("j"))
	p, _ = p.Update(key("l"))

	assert.Equal(t, 2100, p.Int(MaxTokens))
	// Temperature untouched.
	assert.InDelta(t, 0.1, p.Float(Temperature), 1e-9)
}

func TestPanel_TogglesBool(t *testing.T) {
	p := newTestPanel()

	p, _ = p.Update(key("j"))
	p, _ = p.Update(key("j"))
	assert.False(t, p.Bool(CountTokens))

	p, _ = p.Update(key(" "))
	assert.True(t, p.Bool(CountTokens))

	p, _ = p.Update(key(" "))
	assert.False(t, p.Bool(CountTokens))
}

func TestPanel_IgnoresKeysWhenBlurred(t *testing.T) {
	p := newTestPanel()
	p.Blur()

	p, _ = p.Update(key("l"))

	assert.InDelta(t, 0.1, p.Float(Temperature), 1e-9)
}

func TestPanel_ViewShowsValues(t *testing.T) {
	p := newTestPanel()

	view := p.View()

	assert.Contains(t, view, "Temperature")
	assert.Contains(t, view, "0.1")
	assert.Contains(t, view, "2000")
	assert.Contains(t, view, "off")
}
