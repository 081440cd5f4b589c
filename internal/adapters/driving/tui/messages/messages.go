// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/briefwise-labs/briefwise-cli/internal/core/ports/driving"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewSummarize is the day-window summary view.
	ViewSummarize
	// ViewAsk is the free-text question view.
	ViewAsk
	// ViewUpdate is the mailbox sync view.
	ViewUpdate
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewSummarize:
		return "summarize"
	case ViewAsk:
		return "ask"
	case ViewUpdate:
		return "update"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// AnswerCompleted carries a Summarize or Answer result back to the view.
type AnswerCompleted struct {
	Answer *driving.Answer
	Err    error
}

// SyncCompleted carries a mailbox sync outcome back to the view.
type SyncCompleted struct {
	Report *driving.SyncReport
	Err    error
}

// Quit signals the application should exit.
type Quit struct{}
