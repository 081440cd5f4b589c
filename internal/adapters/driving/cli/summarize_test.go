package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/briefwise-labs/briefwise-cli/internal/core/ports/driving"
)

func TestSummarizeCmd_Use(t *testing.T) {
	assert.Equal(t, "summarize", summarizeCmd.Use)
}

func TestSummarizeCmd_Executes(t *testing.T) {
	mock := &mockDigestService{answer: &driving.Answer{Text: "the summary"}}
	cleanup := setupDigestTest(mock)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"summarize", "--days", "10", "--temperature", "0.5"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Equal(t, 10, mock.gotDays)
	assert.InDelta(t, 0.5, mock.gotParams.Temperature, 1e-9)
	assert.Contains(t, buf.String(), "the summary")
}

func TestSummarizeCmd_ServiceError(t *testing.T) {
	cleanup := setupDigestTest(&mockDigestService{err: errMock})
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"summarize"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "summarize failed")
}
