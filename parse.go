package partstream

import (
	"io"

	"github.com/soramame/partstream/tokenizer"
)

// ParseOption adjusts a single parse invocation.
type ParseOption func(*parseConfig)

type parseConfig struct {
	limits Limits
}

// WithParseLimits overrides the parser's default limits for one invocation.
// Bounds are merged key by key; only the keys the override sets replace the
// defaults.
func WithParseLimits(l Limits) ParseOption {
	return func(c *parseConfig) {
		c.limits = c.limits.Merge(l)
	}
}

// Parse reads the multipart body from r, routing file parts to handler and
// recording every part in the returned ResultSet. A nil handler records file
// parts without consuming their streams. Parse returns once the stream has
// ended and every handler invocation has finished, or on the first failure:
// a limit violation (LimitError), a malformed body, a handler error
// (returned unmodified), or the stream closing early (ErrPrematureClose).
func (p *Parser) Parse(r io.Reader, handler FileHandlerFunc, options ...ParseOption) (*ResultSet, error) {
	c := parseConfig{limits: p.limits}
	for _, opt := range options {
		opt(&c)
	}

	tok := tokenizer.NewMIME(p.boundary, c.limits)
	return runParse(tok, r, handler)
}

// runParse wires an adapter to tok and drives the stream to settlement.
func runParse(tok tokenizer.Tokenizer, r io.Reader, handler FileHandlerFunc) (*ResultSet, error) {
	ad := newAdapter(tok, handler)
	tok.Subscribe(ad)
	tok.Run(r)
	return ad.Wait()
}
