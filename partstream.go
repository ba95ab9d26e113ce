// Package partstream parses multipart/form-data and multipart/related
// request bodies as streams: file parts are routed to a caller-supplied
// handler while they arrive, field parts are collected into a ResultSet, and
// configurable limits guard against resource exhaustion.
package partstream

import (
	"io"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/soramame/partstream/tokenizer"
)

var logger = log.With().Str("package", "partstream").Logger()

// SetLogger replaces the package logger. The parser only logs outcomes it
// cannot report through an error return, such as a second handler failing
// after the parse already settled.
func SetLogger(l zerolog.Logger) {
	logger = l
}

// Limits bounds a single parse. A nil field means unbounded; per-call limits
// are merged key by key over the parser's defaults.
type Limits = tokenizer.Limits

// Bound builds an optional limit value for a Limits record.
func Bound(n int64) *int64 {
	return tokenizer.Bound(n)
}

// Parser parses multipart bodies pulled from an io.Reader.
type Parser struct {
	boundary string
	limits   Limits
}

func NewParser(boundary string, options ...ParserOption) *Parser {
	var c parserConfig
	for _, opt := range options {
		opt(&c)
	}

	return &Parser{
		boundary: boundary,
		limits:   c.limits,
	}
}

type parserConfig struct {
	limits Limits
}

type ParserOption func(*parserConfig)

type DataSize int64

const (
	_ DataSize = 1 << (iota * 10)
	KB
	MB
	GB
)

// WithLimits merges l into the parser's default limits.
func WithLimits(l Limits) ParserOption {
	return func(c *parserConfig) {
		c.limits = c.limits.Merge(l)
	}
}

// WithMaxParts sets the maximum number of parts to be parsed.
func WithMaxParts(n uint) ParserOption {
	return func(c *parserConfig) {
		c.limits.Parts = Bound(int64(n))
	}
}

// WithMaxFiles sets the maximum number of file parts to be parsed.
func WithMaxFiles(n uint) ParserOption {
	return func(c *parserConfig) {
		c.limits.Files = Bound(int64(n))
	}
}

// WithMaxFields sets the maximum number of field parts to be parsed.
func WithMaxFields(n uint) ParserOption {
	return func(c *parserConfig) {
		c.limits.Fields = Bound(int64(n))
	}
}

// WithFieldNameSize sets the size past which field names are truncated.
func WithFieldNameSize(size DataSize) ParserOption {
	return func(c *parserConfig) {
		c.limits.FieldNameSize = Bound(int64(size))
	}
}

// WithFieldSize sets the size past which field values are truncated.
func WithFieldSize(size DataSize) ParserOption {
	return func(c *parserConfig) {
		c.limits.FieldSize = Bound(int64(size))
	}
}

// WithFileSize sets the size past which file streams are truncated.
func WithFileSize(size DataSize) ParserOption {
	return func(c *parserConfig) {
		c.limits.FileSize = Bound(int64(size))
	}
}

// WithMaxHeaderPairs sets the maximum number of header pairs per part.
func WithMaxHeaderPairs(n uint) ParserOption {
	return func(c *parserConfig) {
		c.limits.HeaderPairs = Bound(int64(n))
	}
}

// WithHeaderSize sets the maximum header block size per part.
func WithHeaderSize(size DataSize) ParserOption {
	return func(c *parserConfig) {
		c.limits.HeaderSize = Bound(int64(size))
	}
}

// FileInfo describes one file part handed to a FileHandlerFunc.
type FileInfo struct {
	FieldName string
	Filename  string
	Encoding  string
	MIMEType  string
}

// FileHandlerFunc handles one uploaded file part. It runs on its own
// goroutine and receives the part's bytes in connection order; a slow handler
// backpressures the read side of the connection. The reader can be asserted
// to interface{ Truncated() bool } to check whether the file-size bound cut
// the payload short. Returning an error fails the whole parse with that
// error.
type FileHandlerFunc func(r io.Reader, info FileInfo) error
