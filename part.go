package partstream

import (
	"io"

	"github.com/soramame/partstream/tokenizer"
)

// Part is one discrete section of the multipart body, either a form field or
// a file.
type Part interface {
	// PartName returns the field name the part was submitted under.
	PartName() string
}

// FieldPart is a form field observed in full. Truncated flags report that a
// size limit cut the name or value short; truncated parts are still recorded,
// never silently dropped.
type FieldPart struct {
	Name           string
	Value          string
	NameTruncated  bool
	ValueTruncated bool
	Encoding       string
	MIMEType       string
}

func (p FieldPart) PartName() string {
	return p.Name
}

// FilePart is a file section of the body. With a file handler installed the
// stream is consumed during the handler call; without one it is only readable
// until the parser advances to the next part.
type FilePart struct {
	FieldName string
	Stream    *tokenizer.FileStream
	Filename  string
	Encoding  string
	MIMEType  string
}

func (p FilePart) PartName() string {
	return p.FieldName
}

// handlerStream is the consumer side of the per-file pipe. It reports the
// producer stream's truncation state so handlers can check it after reading
// to EOF.
type handlerStream struct {
	io.Reader
	src *tokenizer.FileStream
}

func (s handlerStream) Truncated() bool {
	return s.src.Truncated()
}
