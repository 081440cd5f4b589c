package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/briefwise-labs/briefwise-cli/internal/core/ports/driving"
)

func TestSyncCmd_Use(t *testing.T) {
	assert.Equal(t, "sync", syncCmd.Use)
}

func TestSyncCmd_Short(t *testing.T) {
	assert.Equal(t, "Fetch new newsletters into the database", syncCmd.Short)
}

func TestSyncCmd_Executes(t *testing.T) {
	mock := &mockDigestService{report: &driving.SyncReport{Fetched: 5, Inserted: 3}}
	cleanup := setupDigestTest(mock)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"sync", "--days", "14"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Equal(t, 14, mock.gotDays)
	assert.Contains(t, buf.String(), "Fetched 5 messages, inserted 3 new documents.")
}

func TestSyncCmd_ServiceNotConfigured(t *testing.T) {
	cleanup := setupDigestTest(nil)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"sync"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "digest service not configured")
}

func TestSyncCmd_ServiceError(t *testing.T) {
	cleanup := setupDigestTest(&mockDigestService{err: errMock})
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"sync"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "sync failed")
}
