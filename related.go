package partstream

import (
	"errors"
	"io"

	"github.com/soramame/partstream/tokenizer"
)

// ErrParserSettled is returned by RelatedParser.Write once the parse has
// settled and no further input is wanted.
var ErrParserSettled = errors.New("parse already settled")

// ErrNotStarted is returned by RelatedParser methods used before Start.
var ErrNotStarted = errors.New("parser not started")

// RelatedParser parses multipart/related bodies. Unlike Parser it is the
// sink the request stream is piped into: Start begins the engine, Write and
// Close implement the writable role, and Wait blocks for the outcome. The
// settlement semantics are identical to Parser; only the wiring topology
// differs.
type RelatedParser struct {
	boundary string
	limits   Limits

	pw *io.PipeWriter
	ad *adapter
}

func NewRelated(boundary string, options ...ParserOption) *RelatedParser {
	var c parserConfig
	for _, opt := range options {
		opt(&c)
	}

	return &RelatedParser{
		boundary: boundary,
		limits:   c.limits,
	}
}

// Start begins consuming writes, routing file parts to handler. It must be
// called exactly once, before the first Write; the writable methods and
// Wait return ErrNotStarted until then.
func (p *RelatedParser) Start(handler FileHandlerFunc, options ...ParseOption) {
	c := parseConfig{limits: p.limits}
	for _, opt := range options {
		opt(&c)
	}

	pr, pw := io.Pipe()
	tok := tokenizer.NewMIME(p.boundary, c.limits)
	ad := newAdapter(tok, handler)
	tok.Subscribe(ad)

	p.pw = pw
	p.ad = ad

	go func() {
		tok.Run(pr)
		// The engine has stopped, settled or not; fail further writes
		// instead of letting the producer block on a dead pipe.
		pr.CloseWithError(ErrParserSettled)
	}()
}

// Write pushes request-stream bytes into the parser. After settlement it
// fails with ErrParserSettled.
func (p *RelatedParser) Write(b []byte) (int, error) {
	if p.pw == nil {
		return 0, ErrNotStarted
	}
	return p.pw.Write(b)
}

// Close signals the end of the request stream. Closing before the terminal
// boundary surfaces ErrPrematureClose from Wait, unless something else
// already settled the parse.
func (p *RelatedParser) Close() error {
	if p.pw == nil {
		return ErrNotStarted
	}
	return p.pw.Close()
}

// CloseWithError signals that the request stream failed, e.g. the client
// disconnected. If the parse has not settled yet it settles with err.
func (p *RelatedParser) CloseWithError(err error) error {
	if p.pw == nil {
		return ErrNotStarted
	}
	return p.pw.CloseWithError(err)
}

// Wait blocks until the parse settles and returns its outcome.
func (p *RelatedParser) Wait() (*ResultSet, error) {
	if p.ad == nil {
		return nil, ErrNotStarted
	}
	return p.ad.Wait()
}
