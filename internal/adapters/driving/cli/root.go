// Package cli implements the briefwise command line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/briefwise-labs/briefwise-cli/internal/core/ports/driving"
	"github.com/briefwise-labs/briefwise-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// digestService is the injected core service used by all commands.
var digestService driving.DigestService

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "briefwise",
	Short: "Summarise and query your newsletter emails",
	Long: `Briefwise fetches newsletter emails from your Gmail mailbox, stores
them in a local vector database and lets you summarise recent issues or
ask questions answered from the stored content.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// SetVersion sets the version displayed by the version command.
func SetVersion(v string) {
	version = v
}

// SetDigestService injects the core service used by the commands.
func SetDigestService(svc driving.DigestService) {
	digestService = svc
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
