package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/briefwise-labs/briefwise-cli/internal/adapters/driving/tui/components/params"
	"github.com/briefwise-labs/briefwise-cli/internal/adapters/driving/tui/messages"
	"github.com/briefwise-labs/briefwise-cli/internal/adapters/driving/tui/styles"
	"github.com/briefwise-labs/briefwise-cli/internal/adapters/driving/tui/views/ask"
	"github.com/briefwise-labs/briefwise-cli/internal/adapters/driving/tui/views/menu"
	"github.com/briefwise-labs/briefwise-cli/internal/adapters/driving/tui/views/summarize"
	"github.com/briefwise-labs/briefwise-cli/internal/adapters/driving/tui/views/update"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// menuView is the main navigation menu.
	menuView *menu.View

	// summarizeView is the day-window summary view.
	summarizeView *summarize.View

	// askView is the free-text question view.
	askView *ask.View

	// updateView is the mailbox sync view.
	updateView *update.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports and
// parameter defaults.
func NewApp(ports *Ports, defaults params.Defaults) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()

	return &App{
		ports:         ports,
		ctx:           context.Background(),
		styles:        s,
		menuView:      menu.NewView(s),
		summarizeView: summarize.NewView(s, ports.Digest, defaults),
		askView:       ask.NewView(s, ports.Digest, defaults),
		updateView:    update.NewView(s, ports.Digest, defaults),
		currentView:   messages.ViewMenu,
	}, nil
}

// WithContext sets the context for the app and its views, so an
// in-flight generation or sync is cancelled with the program.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.summarizeView.WithContext(ctx)
	a.askView.WithContext(ctx)
	a.updateView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("briefwise - Newsletter Digest"),
	)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		// Forward to all views for proper sizing
		a.menuView.SetDimensions(msg.Width, msg.Height)
		a.summarizeView.SetDimensions(msg.Width, msg.Height)
		a.askView.SetDimensions(msg.Width, msg.Height)
		a.updateView.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a.forward(msg)

	case messages.ViewChanged:
		a.currentView = msg.View
		switch msg.View {
		case messages.ViewSummarize:
			return a, a.summarizeView.Init()
		case messages.ViewAsk:
			return a, a.askView.Init()
		case messages.ViewUpdate:
			return a, a.updateView.Init()
		case messages.ViewMenu:
			return a, a.menuView.Init()
		}
		return a, nil

	case messages.AnswerCompleted:
		if msg.Err != nil {
			a.err = msg.Err
		}
		return a.forward(msg)

	case messages.SyncCompleted:
		if msg.Err != nil {
			a.err = msg.Err
		}
		return a.forward(msg)

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages (spinner ticks, blinks) to the active view.
	_, cmd = a.forward(msg)
	return a, cmd
}

// forward routes a message to the active view.
func (a *App) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewSummarize:
		a.summarizeView, cmd = a.summarizeView.Update(msg)
	case messages.ViewAsk:
		a.askView, cmd = a.askView.Update(msg)
	case messages.ViewUpdate:
		a.updateView, cmd = a.updateView.Update(msg)
	}

	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewMenu:
		return a.menuView.View()
	case messages.ViewSummarize:
		return a.summarizeView.View()
	case messages.ViewAsk:
		return a.askView.View()
	case messages.ViewUpdate:
		return a.updateView.View()
	default:
		return a.menuView.View()
	}
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
}
