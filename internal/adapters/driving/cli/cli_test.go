package cli

import (
	"context"
	"errors"

	"github.com/briefwise-labs/briefwise-cli/internal/core/ports/driving"
)

// mockDigestService implements driving.DigestService for testing.
type mockDigestService struct {
	answer *driving.Answer
	report *driving.SyncReport
	err    error

	gotQuestion string
	gotTopK     int
	gotDays     int
	gotParams   driving.GenerateParams
}

func (m *mockDigestService) Summarize(_ context.Context, windowDays int, opts driving.GenerateParams) (*driving.Answer, error) {
	m.gotDays = windowDays
	m.gotParams = opts
	return m.answer, m.err
}

func (m *mockDigestService) Answer(_ context.Context, question string, topK int, opts driving.GenerateParams) (*driving.Answer, error) {
	m.gotQuestion = question
	m.gotTopK = topK
	m.gotParams = opts
	return m.answer, m.err
}

func (m *mockDigestService) Sync(_ context.Context, windowDays int) (*driving.SyncReport, error) {
	m.gotDays = windowDays
	return m.report, m.err
}

// setupDigestTest injects a mock service and returns a cleanup. A nil
// mock leaves the service unconfigured.
func setupDigestTest(mock *mockDigestService) func() {
	old := digestService
	if mock == nil {
		digestService = nil
	} else {
		digestService = mock
	}
	return func() {
		digestService = old
	}
}

var errMock = errors.New("mock failure")
