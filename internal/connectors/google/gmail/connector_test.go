package gmail

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/gmail/v1"

	"github.com/briefwise-labs/briefwise-cli/internal/core/domain"
	"github.com/briefwise-labs/briefwise-cli/internal/normalisers/newsletter"
)

func encodeBody(s string) *gmail.MessagePartBody {
	return &gmail.MessagePartBody{Data: base64.URLEncoding.EncodeToString([]byte(s))}
}

func testConnector() *Connector {
	c := NewConnector(nil, newsletter.New())
	c.now = func() time.Time {
		return time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	}
	return c
}

func TestBuildQuery(t *testing.T) {
	after := time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC)

	q := BuildQuery([]string{"a@news.io", "b@digest.com"}, after)

	assert.Equal(t, "from:(a@news.io OR b@digest.com) after:2025/03/08", q)
}

func TestBuildQuery_SingleSender(t *testing.T) {
	after := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)

	q := BuildQuery([]string{"only@news.io"}, after)

	assert.Equal(t, "from:(only@news.io) after:2025/01/02", q)
}

func TestSelectBody_PrefersPlainOverHTML(t *testing.T) {
	payload := &gmail.MessagePart{
		MimeType: "multipart/alternative",
		Parts: []*gmail.MessagePart{
			{MimeType: "text/html", Body: encodeBody("<p>html</p>")},
			{MimeType: "text/plain", Body: encodeBody("plain text")},
		},
	}

	body := SelectBody(payload)

	assert.Equal(t, "plain text", body.Content)
	assert.Equal(t, domain.FormatText, body.Format)
	assert.True(t, body.HasPlain)
	assert.True(t, body.HasHTML)
}

func TestSelectBody_FallsBackToLastHTML(t *testing.T) {
	payload := &gmail.MessagePart{
		MimeType: "multipart/alternative",
		Parts: []*gmail.MessagePart{
			{MimeType: "text/html", Body: encodeBody("<p>first</p>")},
			{MimeType: "text/html", Body: encodeBody("<p>last</p>")},
		},
	}

	body := SelectBody(payload)

	assert.Equal(t, "<p>last</p>", body.Content)
	assert.Equal(t, domain.FormatHTML, body.Format)
	assert.False(t, body.HasPlain)
	assert.True(t, body.HasHTML)
}

func TestSelectBody_NestedMultipart(t *testing.T) {
	payload := &gmail.MessagePart{
		MimeType: "multipart/mixed",
		Parts: []*gmail.MessagePart{
			{
				MimeType: "multipart/alternative",
				Parts: []*gmail.MessagePart{
					{MimeType: "text/plain", Body: encodeBody("nested plain")},
					{MimeType: "text/html", Body: encodeBody("<p>nested</p>")},
				},
			},
		},
	}

	body := SelectBody(payload)

	assert.Equal(t, "nested plain", body.Content)
	assert.True(t, body.HasPlain)
}

func TestSelectBody_SinglePartClassifiedAsHTML(t *testing.T) {
	payload := &gmail.MessagePart{
		MimeType: "text/html",
		Body:     encodeBody("<HTML><body>doc</body></HTML>"),
	}

	body := SelectBody(payload)

	assert.Equal(t, domain.FormatHTML, body.Format)
	assert.True(t, body.HasHTML)
	assert.False(t, body.HasPlain)
}

func TestSelectBody_SinglePartPlain(t *testing.T) {
	payload := &gmail.MessagePart{
		MimeType: "text/plain",
		Body:     encodeBody("just text, no markup"),
	}

	body := SelectBody(payload)

	assert.Equal(t, domain.FormatText, body.Format)
	assert.Equal(t, "just text, no markup", body.Content)
	assert.True(t, body.HasPlain)
}

func TestSelectBody_NilPayload(t *testing.T) {
	body := SelectBody(nil)

	assert.Empty(t, body.Content)
	assert.Equal(t, domain.FormatText, body.Format)
	assert.False(t, body.HasPlain)
	assert.False(t, body.HasHTML)
}

func TestSelectBody_UndecodableBody(t *testing.T) {
	payload := &gmail.MessagePart{
		MimeType: "text/plain",
		Body:     &gmail.MessagePartBody{Data: "!!! not base64 !!!"},
	}

	body := SelectBody(payload)

	assert.Empty(t, body.Content)
	assert.False(t, body.HasPlain)
}

func TestDecodeBody_RawURLEncoding(t *testing.T) {
	// No padding, as some Gmail responses arrive.
	data := base64.RawURLEncoding.EncodeToString([]byte("hello"))

	assert.Equal(t, "hello", decodeBody(&gmail.MessagePartBody{Data: data}))
}

func TestToRecord(t *testing.T) {
	c := testConnector()
	msg := &gmail.Message{
		Id: "msg-1",
		Payload: &gmail.MessagePart{
			MimeType: "text/plain",
			Headers: []*gmail.MessagePartHeader{
				{Name: "Subject", Value: "Weekly digest"},
				{Name: "From", Value: "Digest <digest@news.io>"},
				{Name: "Date", Value: "Fri, 14 Mar 2025 09:30:00 +0000"},
			},
			Body: encodeBody("Hello\n\n\nWorld"),
		},
	}

	rec := c.toRecord(msg)

	assert.Equal(t, "msg-1", rec.ID)
	assert.Equal(t, "Weekly digest", rec.Subject)
	assert.Equal(t, "Digest <digest@news.io>", rec.Sender)
	assert.Equal(t, "Hello\nWorld", rec.Body)
	assert.Equal(t, "Hello\n\n\nWorld", rec.RawBody)
	require.False(t, rec.Received.IsZero())
	assert.Equal(t, 14, rec.Received.Day())
}

func TestToRecord_MissingHeaders(t *testing.T) {
	c := testConnector()
	msg := &gmail.Message{
		Id: "msg-2",
		Payload: &gmail.MessagePart{
			MimeType: "text/plain",
			Body:     encodeBody("body"),
		},
	}

	rec := c.toRecord(msg)

	assert.Empty(t, rec.Subject)
	assert.Empty(t, rec.Sender)
	assert.Equal(t, c.now(), rec.Received)
}

func TestToRecord_MalformedDateFallsBackToNow(t *testing.T) {
	c := testConnector()
	msg := &gmail.Message{
		Id: "msg-3",
		Payload: &gmail.MessagePart{
			MimeType: "text/plain",
			Headers: []*gmail.MessagePartHeader{
				{Name: "Date", Value: "not a date"},
			},
			Body: encodeBody("body"),
		},
	}

	rec := c.toRecord(msg)

	assert.Equal(t, c.now(), rec.Received)
}

func TestHeaderValue_CaseInsensitive(t *testing.T) {
	headers := []*gmail.MessagePartHeader{
		{Name: "subject", Value: "lowercased"},
	}

	assert.Equal(t, "lowercased", headerValue(headers, "Subject"))
	assert.Empty(t, headerValue(headers, "From"))
}
