package tui

import "errors"

// ErrMissingDigestService indicates the TUI was created without its
// core service.
var ErrMissingDigestService = errors.New("tui: digest service is required")
