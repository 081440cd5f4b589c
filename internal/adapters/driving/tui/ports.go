// Package tui provides the interactive terminal user interface for
// Briefwise. It implements a driving adapter following hexagonal
// architecture principles.
package tui

import (
	"github.com/briefwise-labs/briefwise-cli/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the TUI.
type Ports struct {
	// Digest exposes the summarize, answer and sync actions.
	Digest driving.DigestService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Digest == nil {
		return ErrMissingDigestService
	}
	return nil
}
