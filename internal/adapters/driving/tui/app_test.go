package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/briefwise-labs/briefwise-cli/internal/adapters/driving/tui/components/params"
	"github.com/briefwise-labs/briefwise-cli/internal/adapters/driving/tui/messages"
	"github.com/briefwise-labs/briefwise-cli/internal/core/ports/driving"
)

type mockDigestService struct{}

func (mockDigestService) Summarize(context.Context, int, driving.GenerateParams) (*driving.Answer, error) {
	return &driving.Answer{Text: "summary"}, nil
}

func (mockDigestService) Answer(context.Context, string, int, driving.GenerateParams) (*driving.Answer, error) {
	return &driving.Answer{Text: "answer"}, nil
}

func (mockDigestService) Sync(context.Context, int) (*driving.SyncReport, error) {
	return &driving.SyncReport{Fetched: 1, Inserted: 1}, nil
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	app, err := NewApp(&Ports{Digest: mockDigestService{}}, params.DefaultValues())
	require.NoError(t, err)
	return app
}

func TestNewApp_RequiresDigestService(t *testing.T) {
	_, err := NewApp(&Ports{}, params.DefaultValues())
	assert.ErrorIs(t, err, ErrMissingDigestService)
}

func TestApp_StartsOnMenu(t *testing.T) {
	app := newTestApp(t)
	assert.Equal(t, messages.ViewMenu, app.CurrentView())
}

func TestApp_NotReadyBeforeWindowSize(t *testing.T) {
	app := newTestApp(t)
	assert.False(t, app.Ready())
	assert.Equal(t, "Initialising...", app.View())
}

func TestApp_WindowSizeMakesReady(t *testing.T) {
	app := newTestApp(t)

	model, _ := app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	updated := model.(*App)
	assert.True(t, updated.Ready())
	assert.Contains(t, updated.View(), "Briefwise")
}

func TestApp_ViewChangedNavigates(t *testing.T) {
	app := newTestApp(t)
	app.SetDimensions(100, 40)

	model, _ := app.Update(messages.ViewChanged{View: messages.ViewSummarize})

	updated := model.(*App)
	assert.Equal(t, messages.ViewSummarize, updated.CurrentView())
	assert.Contains(t, updated.View(), "Summarize")
}

func TestApp_CtrlCQuits(t *testing.T) {
	app := newTestApp(t)
	app.SetDimensions(100, 40)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestApp_MenuEnterOpensSummarize(t *testing.T) {
	app := newTestApp(t)
	app.SetDimensions(100, 40)

	// First menu item is Summarize; enter emits ViewChanged.
	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg := cmd()
	changed, ok := msg.(messages.ViewChanged)
	require.True(t, ok)
	assert.Equal(t, messages.ViewSummarize, changed.View)
}

// ctxRecordingDigest captures the context its Sync call receives.
type ctxRecordingDigest struct {
	mockDigestService
	gotCtx context.Context
}

func (d *ctxRecordingDigest) Sync(ctx context.Context, windowDays int) (*driving.SyncReport, error) {
	d.gotCtx = ctx
	return d.mockDigestService.Sync(ctx, windowDays)
}

func TestApp_WithContextReachesViews(t *testing.T) {
	digest := &ctxRecordingDigest{}
	app, err := NewApp(&Ports{Digest: digest}, params.DefaultValues())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	app.WithContext(ctx)
	app.SetDimensions(100, 40)
	app.currentView = messages.ViewUpdate

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	// Drain the command tree until the sync has run.
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 && digest.gotCtx == nil {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		if batch, ok := next().(tea.BatchMsg); ok {
			queue = append(queue, batch...)
		}
	}

	require.NotNil(t, digest.gotCtx)
	assert.ErrorIs(t, digest.gotCtx.Err(), context.Canceled)
}

func TestApp_AnswerErrorRecorded(t *testing.T) {
	app := newTestApp(t)
	app.SetDimensions(100, 40)
	app.currentView = messages.ViewSummarize

	model, _ := app.Update(messages.AnswerCompleted{Err: assert.AnError})

	updated := model.(*App)
	assert.Equal(t, assert.AnError, updated.Err())
}
