package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentFromEmail(t *testing.T) {
	received := time.Date(2025, time.March, 9, 14, 30, 0, 0, time.UTC)
	rec := EmailRecord{
		ID:       "msg-123",
		Subject:  "Weekly ML Digest",
		Sender:   "news@example.com",
		RawBody:  "<p>hello</p>",
		Body:     "hello",
		Received: received,
	}

	doc := DocumentFromEmail(rec)

	assert.Equal(t, "msg-123", doc.ID)
	assert.Equal(t, "hello", doc.Content)
	assert.Equal(t, "Weekly ML Digest", doc.Metadata.Subject)
	assert.Equal(t, "news@example.com", doc.Metadata.Sender)
	assert.Equal(t, "09:03:2025", doc.Metadata.Date)
}

func TestDocumentMetadata_ParseDate(t *testing.T) {
	m := DocumentMetadata{Date: "09:03:2025"}

	parsed, err := m.ParseDate()
	require.NoError(t, err)
	assert.Equal(t, 2025, parsed.Year())
	assert.Equal(t, time.March, parsed.Month())
	assert.Equal(t, 9, parsed.Day())
}

func TestDocumentMetadata_ParseDate_Invalid(t *testing.T) {
	m := DocumentMetadata{Date: "2025-03-09"}

	_, err := m.ParseDate()
	assert.Error(t, err)
}

func TestBodyFormat_String(t *testing.T) {
	assert.Equal(t, "text", FormatText.String())
	assert.Equal(t, "html", FormatHTML.String())
}
