package driven

import "github.com/briefwise-labs/briefwise-cli/internal/core/domain"

// Normaliser converts raw email bodies into clean plain text.
// Normalisation is a sequence of best-effort textual rewrites; fragments
// that match no pattern pass through unchanged. The operation is
// idempotent: normalising already-normalised text returns it unchanged.
type Normaliser interface {
	// Normalise produces trimmed plain text from a body in the given format.
	Normalise(body string, format domain.BodyFormat) string
}
