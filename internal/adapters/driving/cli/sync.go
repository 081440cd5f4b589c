package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var syncDays int

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Fetch new newsletters into the database",
	Long: `Fetches newsletter emails received within the trailing day window
from the configured senders and stores the ones not yet in the database.`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().IntVarP(&syncDays, "days", "d", 7, "trailing day window to fetch")
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, _ []string) error {
	if digestService == nil {
		return errors.New("digest service not configured")
	}

	ctx := context.Background()
	cmd.Printf("Syncing newsletters from the last %d days...\n", syncDays)

	report, err := digestService.Sync(ctx, syncDays)
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	cmd.Printf("Fetched %d messages, inserted %d new documents.\n",
		report.Fetched, report.Inserted)
	return nil
}
