// Package tokencount provides prompt token counting using tiktoken.
package tokencount

import (
	"fmt"
	"sync"

	"github.com/pkoukk/tiktoken-go"

	"github.com/briefwise-labs/briefwise-cli/internal/core/ports/driven"
)

// DefaultEncoding is the BPE encoding used for counting.
const DefaultEncoding = "cl100k_base"

// Counter counts tokens with a tiktoken encoding. The encoding is
// loaded lazily on first use since fetching the BPE ranks can touch the
// network on a cold cache.
type Counter struct {
	encoding string

	once sync.Once
	enc  *tiktoken.Tiktoken
	err  error
}

var _ driven.TokenCounter = (*Counter)(nil)

// NewCounter creates a token counter with the default encoding.
func NewCounter() *Counter {
	return &Counter{encoding: DefaultEncoding}
}

// NewCounterWithEncoding creates a token counter for a specific encoding.
func NewCounterWithEncoding(encoding string) *Counter {
	return &Counter{encoding: encoding}
}

// Count returns the number of tokens in the text.
func (c *Counter) Count(text string) (int, error) {
	c.once.Do(func() {
		c.enc, c.err = tiktoken.GetEncoding(c.encoding)
	})
	if c.err != nil {
		return 0, fmt.Errorf("load encoding %q: %w", c.encoding, c.err)
	}

	return len(c.enc.Encode(text, nil, nil)), nil
}
