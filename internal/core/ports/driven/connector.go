package driven

import (
	"context"

	"github.com/briefwise-labs/briefwise-cli/internal/core/domain"
)

// MailConnector fetches newsletter emails from a mailbox provider.
type MailConnector interface {
	// Fetch returns the messages from any of the given sender addresses
	// received within the trailing window of days, newest API order.
	// Missing bodies yield records with an empty normalised body rather
	// than an error; authentication failures propagate.
	Fetch(ctx context.Context, senders []string, maxResults int64, windowDays int) ([]domain.EmailRecord, error)

	// Close releases resources.
	Close() error
}
