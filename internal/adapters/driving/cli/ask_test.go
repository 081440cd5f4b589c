package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/briefwise-labs/briefwise-cli/internal/core/ports/driving"
)

func TestAskCmd_Use(t *testing.T) {
	assert.Equal(t, "ask [question]", askCmd.Use)
}

func TestAskCmd_RequiresQuestion(t *testing.T) {
	cleanup := setupDigestTest(&mockDigestService{})
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ask"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
}

func TestAskCmd_Executes(t *testing.T) {
	mock := &mockDigestService{answer: &driving.Answer{Text: "the answer"}}
	cleanup := setupDigestTest(mock)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"ask", "what is attention?", "--top-k", "3", "--count-tokens"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Equal(t, "what is attention?", mock.gotQuestion)
	assert.Equal(t, 3, mock.gotTopK)
	assert.True(t, mock.gotParams.CountTokens)
	assert.Contains(t, buf.String(), "the answer")
}

func TestAskCmd_PrintsTokenCount(t *testing.T) {
	tokens := 321
	mock := &mockDigestService{answer: &driving.Answer{Text: "answer", InputTokens: &tokens}}
	cleanup := setupDigestTest(mock)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"ask", "question?"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Input tokens: 321")
}
