// Package gmail fetches newsletter emails through the Gmail API.
package gmail

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"google.golang.org/api/gmail/v1"

	"github.com/briefwise-labs/briefwise-cli/internal/connectors/google"
	"github.com/briefwise-labs/briefwise-cli/internal/core/domain"
	"github.com/briefwise-labs/briefwise-cli/internal/core/ports/driven"
	"github.com/briefwise-labs/briefwise-cli/internal/logger"
)

// Ensure Connector implements the interface.
var _ driven.MailConnector = (*Connector)(nil)

// queryDateLayout is the date format Gmail search queries expect.
const queryDateLayout = "2006/01/02"

// Connector fetches messages from a Gmail mailbox.
type Connector struct {
	svc        *gmail.Service
	normaliser driven.Normaliser
	limiter    *google.RateLimiter

	// now is overridable for tests.
	now func() time.Time
}

// NewConnector creates a Gmail connector over an authenticated service.
func NewConnector(svc *gmail.Service, normaliser driven.Normaliser) *Connector {
	return &Connector{
		svc:        svc,
		normaliser: normaliser,
		limiter:    google.NewRateLimiter(),
		now:        time.Now,
	}
}

// Fetch returns messages from the given senders received within the
// trailing window of days. Messages with missing bodies produce records
// with empty normalised text; API errors propagate wrapped.
func (c *Connector) Fetch(
	ctx context.Context, senders []string, maxResults int64, windowDays int,
) ([]domain.EmailRecord, error) {
	query := BuildQuery(senders, c.now().AddDate(0, 0, -windowDays))
	logger.Section("Gmail Fetch")
	logger.Debug("Query: %q", query)

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	list, err := c.svc.Users.Messages.List("me").
		Q(query).MaxResults(maxResults).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", google.WrapError(err))
	}

	records := make([]domain.EmailRecord, 0, len(list.Messages))
	for _, ref := range list.Messages {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		msg, err := c.svc.Users.Messages.Get("me", ref.Id).
			Format("full").Context(ctx).Do()
		if err != nil {
			if google.IsRateLimited(err) {
				c.limiter.RecordRateLimitError(0)
			}
			return nil, fmt.Errorf("get message %s: %w", ref.Id, google.WrapError(err))
		}

		records = append(records, c.toRecord(msg))
	}

	logger.Info("Fetched %d messages", len(records))
	return records, nil
}

// Close releases resources.
func (c *Connector) Close() error {
	return nil
}

// toRecord converts an API message into a domain record, tolerating
// missing headers and bodies.
func (c *Connector) toRecord(msg *gmail.Message) domain.EmailRecord {
	var headers []*gmail.MessagePartHeader
	if msg.Payload != nil {
		headers = msg.Payload.Headers
	}

	body := SelectBody(msg.Payload)

	rec := domain.EmailRecord{
		ID:       msg.Id,
		Subject:  headerValue(headers, "Subject"),
		Sender:   headerValue(headers, "From"),
		RawBody:  body.Content,
		Received: parseDate(headerValue(headers, "Date"), c.now()),
		HasPlain: body.HasPlain,
		HasHTML:  body.HasHTML,
	}
	rec.Body = c.normaliser.Normalise(body.Content, body.Format)
	return rec
}

// BuildQuery builds a Gmail search query selecting messages from any of
// the senders received after the cutoff date.
func BuildQuery(senders []string, after time.Time) string {
	return fmt.Sprintf("from:(%s) after:%s",
		strings.Join(senders, " OR "), after.Format(queryDateLayout))
}

// SelectedBody is the outcome of body selection on a message payload.
type SelectedBody struct {
	Content  string
	Format   domain.BodyFormat
	HasPlain bool
	HasHTML  bool
}

// SelectBody picks the best available body from a message payload.
// Multipart messages prefer the first text/plain part, falling back to
// the last text/html part seen; single-part bodies are classified as
// HTML when they contain an HTML root tag. A missing body yields an
// empty plain text result.
func SelectBody(payload *gmail.MessagePart) SelectedBody {
	if payload == nil {
		return SelectedBody{Format: domain.FormatText}
	}

	if len(payload.Parts) > 0 {
		var plain, html string
		var hasPlain, hasHTML bool
		walkParts(payload.Parts, &plain, &html, &hasPlain, &hasHTML)

		if hasPlain {
			return SelectedBody{Content: plain, Format: domain.FormatText, HasPlain: true, HasHTML: hasHTML}
		}
		if hasHTML {
			return SelectedBody{Content: html, Format: domain.FormatHTML, HasHTML: true}
		}
		return SelectedBody{Format: domain.FormatText}
	}

	content := decodeBody(payload.Body)
	if isHTML(content) {
		return SelectedBody{Content: content, Format: domain.FormatHTML, HasHTML: true}
	}
	return SelectedBody{Content: content, Format: domain.FormatText, HasPlain: content != ""}
}

// walkParts scans parts depth-first, keeping the first plain text part
// and the last HTML part.
func walkParts(parts []*gmail.MessagePart, plain, html *string, hasPlain, hasHTML *bool) {
	for _, part := range parts {
		switch {
		case part.MimeType == "text/plain" && !*hasPlain:
			*plain = decodeBody(part.Body)
			*hasPlain = true
		case part.MimeType == "text/html":
			*html = decodeBody(part.Body)
			*hasHTML = true
		case len(part.Parts) > 0:
			walkParts(part.Parts, plain, html, hasPlain, hasHTML)
		}
	}
}

// decodeBody decodes the base64url-encoded body data.
func decodeBody(body *gmail.MessagePartBody) string {
	if body == nil || body.Data == "" {
		return ""
	}

	data, err := base64.URLEncoding.DecodeString(body.Data)
	if err != nil {
		data, err = base64.RawURLEncoding.DecodeString(body.Data)
		if err != nil {
			// Undecodable body is treated as missing.
			return ""
		}
	}
	return string(data)
}

// isHTML reports whether a single-part body looks like an HTML document.
func isHTML(content string) bool {
	return strings.Contains(strings.ToLower(content), "<html")
}

// headerValue returns the named header's value, or empty when missing.
func headerValue(headers []*gmail.MessagePartHeader, name string) string {
	for _, h := range headers {
		if strings.EqualFold(h.Name, name) {
			return h.Value
		}
	}
	return ""
}

// parseDate parses an RFC 5322 Date header, falling back to the given
// time when the header is missing or malformed.
func parseDate(value string, fallback time.Time) time.Time {
	if value == "" {
		return fallback
	}
	t, err := mail.ParseDate(value)
	if err != nil {
		return fallback
	}
	return t
}
