package domain

import (
	"fmt"
	"time"
)

// DateLayout is the metadata date format (day:month:year) used when
// persisting documents and when filtering by date window.
const DateLayout = "02:01:2006"

// StoredDocument is the persisted form of an email record.
// Invariant: at most one stored document exists per ID; documents are
// inserted once and never updated.
type StoredDocument struct {
	// ID equals the originating EmailRecord.ID.
	ID string

	// Content is the normalised body text.
	Content string

	// Metadata carries subject, sender and the received date.
	Metadata DocumentMetadata
}

// DocumentMetadata holds the searchable attributes stored next to a
// document's content.
type DocumentMetadata struct {
	Subject string
	Sender  string

	// Date is the received date formatted with DateLayout.
	Date string
}

// ParseDate parses the stored date string back into a time.Time.
func (m DocumentMetadata) ParseDate() (time.Time, error) {
	t, err := time.Parse(DateLayout, m.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse document date %q: %w", m.Date, err)
	}
	return t, nil
}

// DocumentFromEmail builds the stored form of an email record.
func DocumentFromEmail(rec EmailRecord) StoredDocument {
	return StoredDocument{
		ID:      rec.ID,
		Content: rec.Body,
		Metadata: DocumentMetadata{
			Subject: rec.Subject,
			Sender:  rec.Sender,
			Date:    rec.Received.Format(DateLayout),
		},
	}
}
