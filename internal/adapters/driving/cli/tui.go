package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/briefwise-labs/briefwise-cli/internal/adapters/driving/tui"
	"github.com/briefwise-labs/briefwise-cli/internal/adapters/driving/tui/components/params"
)

// TUIConfig holds configuration for the TUI command.
type TUIConfig struct {
	Defaults params.Defaults
}

// tuiConfig holds the current TUI configuration.
var tuiConfig *TUIConfig

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for Briefwise.

The TUI offers three actions: summarising recent newsletters, answering
a free-text question from the stored content, and updating the database
from your mailbox. Sampling parameters are adjustable in each view.

Controls:
  ↑/k, ↓/j - Navigate
  ←/h, →/l - Adjust parameters
  Enter    - Run action
  Esc      - Back to menu
  q        - Quit (from menu)`,
	RunE: runTUI,
}

// SetTUIConfig sets the configuration for the TUI command.
func SetTUIConfig(config *TUIConfig) {
	tuiConfig = config
}

func init() {
	rootCmd.AddCommand(tuiCmd)
	// Running briefwise without a subcommand opens the TUI.
	rootCmd.RunE = runTUI
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	defaults := params.DefaultValues()
	if tuiConfig != nil {
		defaults = tuiConfig.Defaults
	}

	app, err := tui.NewApp(&tui.Ports{Digest: digestService}, defaults)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	app.WithContext(cmd.Context())

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
