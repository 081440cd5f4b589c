package domain

import "time"

// BodyFormat identifies the format of an email body.
type BodyFormat int

const (
	// FormatText is a plain text body.
	FormatText BodyFormat = iota

	// FormatHTML is an HTML body.
	FormatHTML
)

// String returns the string representation of the body format.
func (f BodyFormat) String() string {
	if f == FormatHTML {
		return "html"
	}
	return "text"
}

// EmailRecord represents a single fetched newsletter email.
// It is immutable after the connector produces it; the only place it
// persists is the document store.
type EmailRecord struct {
	// ID is the provider's opaque message id, unique per message.
	// It is the dedupe key in the document store.
	ID string

	// Subject is the decoded Subject header, empty if missing.
	Subject string

	// Sender is the From header, empty if missing.
	Sender string

	// RawBody is the selected body before normalisation.
	RawBody string

	// Body is the normalised plain text body.
	Body string

	// Received is the date the message was received.
	// Falls back to the fetch time when the Date header cannot be parsed.
	Received time.Time

	// HasPlain indicates a text/plain part was available.
	HasPlain bool

	// HasHTML indicates a text/html part was available.
	HasHTML bool
}
