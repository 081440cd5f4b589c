package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/briefwise-labs/briefwise-cli/internal/core/ports/driving"
)

var (
	summarizeDays        int
	summarizeTemperature float64
	summarizeMaxTokens   int
	summarizeCountTokens bool
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize",
	Short: "Summarise stored newsletters from a day window",
	Long: `Generates a summary of all stored newsletters received within the
trailing day window, including up to five follow-up topics to explore.`,
	RunE: runSummarize,
}

func init() {
	summarizeCmd.Flags().IntVarP(&summarizeDays, "days", "d", 7, "trailing day window to summarise")
	summarizeCmd.Flags().Float64VarP(&summarizeTemperature, "temperature", "t", 0.1, "sampling temperature")
	summarizeCmd.Flags().IntVar(&summarizeMaxTokens, "max-tokens", 2000, "maximum output tokens")
	summarizeCmd.Flags().BoolVar(&summarizeCountTokens, "count-tokens", false, "report the input token count")
	rootCmd.AddCommand(summarizeCmd)
}

func runSummarize(cmd *cobra.Command, _ []string) error {
	if digestService == nil {
		return errors.New("digest service not configured")
	}

	answer, err := digestService.Summarize(context.Background(), summarizeDays, driving.GenerateParams{
		Temperature: summarizeTemperature,
		MaxTokens:   summarizeMaxTokens,
		CountTokens: summarizeCountTokens,
	})
	if err != nil {
		return fmt.Errorf("summarize failed: %w", err)
	}

	cmd.Println(answer.Text)
	if answer.InputTokens != nil {
		cmd.Printf("\nInput tokens: %d\n", *answer.InputTokens)
	}
	return nil
}
