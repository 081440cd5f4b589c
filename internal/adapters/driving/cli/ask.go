package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/briefwise-labs/briefwise-cli/internal/core/ports/driving"
)

var (
	askTopK        int
	askTemperature float64
	askMaxTokens   int
	askCountTokens bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Answer a question from stored newsletters",
	Long: `Answers a free-text question using the most similar stored
newsletters as context.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().IntVarP(&askTopK, "top-k", "k", 2, "number of documents to retrieve")
	askCmd.Flags().Float64VarP(&askTemperature, "temperature", "t", 0.1, "sampling temperature")
	askCmd.Flags().IntVar(&askMaxTokens, "max-tokens", 2000, "maximum output tokens")
	askCmd.Flags().BoolVar(&askCountTokens, "count-tokens", false, "report the input token count")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if digestService == nil {
		return errors.New("digest service not configured")
	}

	answer, err := digestService.Answer(context.Background(), args[0], askTopK, driving.GenerateParams{
		Temperature: askTemperature,
		MaxTokens:   askMaxTokens,
		CountTokens: askCountTokens,
	})
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	cmd.Println(answer.Text)
	if answer.InputTokens != nil {
		cmd.Printf("\nInput tokens: %d\n", *answer.InputTokens)
	}
	return nil
}
