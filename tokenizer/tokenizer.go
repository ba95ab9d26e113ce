// Package tokenizer splits a raw multipart byte stream into part-boundary
// events: fields, files, limit violations, stream end and stream errors.
// The rest of the module consumes it through the Tokenizer interface, so a
// fake can stand in for the MIME decoder in tests.
package tokenizer

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/textproto"
	"strings"
	"sync"

	"github.com/soramame/partstream/internal/myio"
)

//go:generate mockgen -source=tokenizer.go -destination=mock/tokenizer.go -package=mock

var (
	// ErrTooManyHeaderPairs is returned when a part carries more header
	// pairs than Limits.HeaderPairs.
	ErrTooManyHeaderPairs = errors.New("too many header pairs in part")
	// ErrHeaderTooLarge is returned when a part's header block exceeds
	// Limits.HeaderSize.
	ErrHeaderTooLarge = errors.New("part header too large")
	// ErrPrematureClose is returned when the stream ends before the
	// terminal boundary.
	ErrPrematureClose = errors.New("premature close of multipart stream")
)

// LimitKind names a count bound enforced by the tokenizer.
type LimitKind int

const (
	LimitParts LimitKind = iota
	LimitFiles
	LimitFields
)

func (k LimitKind) String() string {
	switch k {
	case LimitParts:
		return "parts"
	case LimitFiles:
		return "files"
	case LimitFields:
		return "fields"
	}
	return "unknown"
}

// Limits bounds what the tokenizer accepts. A nil field means unbounded.
type Limits struct {
	FieldNameSize *int64
	FieldSize     *int64
	Fields        *int64
	FileSize      *int64
	Files         *int64
	Parts         *int64
	HeaderPairs   *int64
	HeaderSize    *int64
}

// Merge returns a copy of l with o's set bounds taking precedence, key by key.
func (l Limits) Merge(o Limits) Limits {
	if o.FieldNameSize != nil {
		l.FieldNameSize = o.FieldNameSize
	}
	if o.FieldSize != nil {
		l.FieldSize = o.FieldSize
	}
	if o.Fields != nil {
		l.Fields = o.Fields
	}
	if o.FileSize != nil {
		l.FileSize = o.FileSize
	}
	if o.Files != nil {
		l.Files = o.Files
	}
	if o.Parts != nil {
		l.Parts = o.Parts
	}
	if o.HeaderPairs != nil {
		l.HeaderPairs = o.HeaderPairs
	}
	if o.HeaderSize != nil {
		l.HeaderSize = o.HeaderSize
	}
	return l
}

// Bound builds an optional limit value.
func Bound(n int64) *int64 {
	return &n
}

// Field is a field-part event.
type Field struct {
	Name           string
	Value          []byte
	NameTruncated  bool
	ValueTruncated bool
	Encoding       string
	MIMEType       string
}

// File is a file-part event. Stream is only readable until the tokenizer
// advances to the next part; the listener must consume or abandon it before
// OnFile returns.
type File struct {
	FieldName string
	Stream    *FileStream
	Filename  string
	Encoding  string
	MIMEType  string
}

// Listener receives part-boundary events. Events arrive in body order from a
// single goroutine; OnEnd, OnError and OnLimit are terminal.
type Listener interface {
	OnField(f Field)
	OnFile(f File)
	OnLimit(kind LimitKind)
	OnEnd()
	OnError(err error)
}

// Tokenizer is the decoder the parser subscribes to.
type Tokenizer interface {
	Subscribe(l Listener)
	Unsubscribe()
	Run(r io.Reader)
}

const (
	defaultFieldMIMEType = "text/plain"
	defaultFileMIMEType  = "application/octet-stream"
	defaultEncoding      = "7bit"
)

// MIME is the mime/multipart-backed Tokenizer.
type MIME struct {
	boundary string
	limits   Limits

	mu       sync.Mutex
	listener Listener
}

func NewMIME(boundary string, limits Limits) *MIME {
	return &MIME{boundary: boundary, limits: limits}
}

func (t *MIME) Subscribe(l Listener) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.listener = l
}

func (t *MIME) Unsubscribe() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.listener = nil
}

func (t *MIME) current() Listener {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.listener
}

// Run reads the multipart stream from r until the terminal boundary, a
// terminal error, or until the listener unsubscribes. It emits exactly one
// terminal event per run unless unsubscribed first.
func (t *MIME) Run(r io.Reader) {
	var parts, files, fields int64

	mr := multipart.NewReader(r, t.boundary)
	for {
		l := t.current()
		if l == nil {
			return
		}

		part, err := mr.NextPart()
		if err != nil {
			if l = t.current(); l == nil {
				return
			}
			switch {
			case err == io.EOF:
				// The terminal boundary is reported as bare io.EOF;
				// a wrapped EOF means the stream was cut short.
				l.OnEnd()
			case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
				l.OnError(fmt.Errorf("%w: %w", ErrPrematureClose, err))
			default:
				l.OnError(fmt.Errorf("failed to read next part: %w", err))
			}
			return
		}

		if exceeded(t.limits.Parts, parts) {
			l.OnLimit(LimitParts)
			return
		}
		parts++

		if err := checkHeader(part.Header, t.limits); err != nil {
			l.OnError(err)
			return
		}

		name, filename, isFile := partIdentity(part)
		if isFile {
			if exceeded(t.limits.Files, files) {
				l.OnLimit(LimitFiles)
				return
			}
			files++
			t.emitFile(l, part, name, filename)
		} else {
			if exceeded(t.limits.Fields, fields) {
				l.OnLimit(LimitFields)
				return
			}
			fields++
			f, err := t.readField(part, name)
			if err != nil {
				l.OnError(err)
				return
			}
			l.OnField(f)
		}
	}
}

func exceeded(limit *int64, seen int64) bool {
	return limit != nil && seen >= *limit
}

func checkHeader(h textproto.MIMEHeader, limits Limits) error {
	var pairs, size int64
	for key, values := range h {
		pairs += int64(len(values))
		for _, v := range values {
			size += int64(len(key) + len(v))
		}
	}
	if limits.HeaderPairs != nil && pairs > *limits.HeaderPairs {
		return ErrTooManyHeaderPairs
	}
	if limits.HeaderSize != nil && size > *limits.HeaderSize {
		return ErrHeaderTooLarge
	}
	return nil
}

// partIdentity classifies a part. A Content-Disposition filename marks a
// file. multipart/related parts usually carry no form-data name at all, so a
// part without one falls back to its Content-ID and counts as a file.
func partIdentity(p *multipart.Part) (name, filename string, isFile bool) {
	name = p.FormName()
	filename = p.FileName()
	if filename != "" {
		if name == "" {
			name = contentID(p.Header)
		}
		return name, filename, true
	}
	if name == "" {
		if id := contentID(p.Header); id != "" {
			return id, "", true
		}
	}
	return name, "", false
}

func contentID(h textproto.MIMEHeader) string {
	return strings.Trim(h.Get("Content-Id"), "<>")
}

func mimeType(h textproto.MIMEHeader, fallback string) string {
	raw := h.Get("Content-Type")
	if raw == "" {
		return fallback
	}
	mt, _, err := mime.ParseMediaType(raw)
	if err != nil {
		return raw
	}
	return mt
}

func encoding(h textproto.MIMEHeader) string {
	if enc := h.Get("Content-Transfer-Encoding"); enc != "" {
		return enc
	}
	return defaultEncoding
}

func (t *MIME) emitFile(l Listener, part *multipart.Part, name, filename string) {
	var r io.Reader = part
	stream := NewFileStream(nil)
	if t.limits.FileSize != nil {
		r = &truncatingReader{r: part, remaining: *t.limits.FileSize, stream: stream}
	}
	stream.r = r

	l.OnFile(File{
		FieldName: name,
		Stream:    stream,
		Filename:  filename,
		Encoding:  encoding(part.Header),
		MIMEType:  mimeType(part.Header, defaultFileMIMEType),
	})

	// Whatever the listener left unread has to keep moving so the boundary
	// scan for the next part does not stall the connection.
	_ = myio.Drain(part)
}

func (t *MIME) readField(part *multipart.Part, name string) (Field, error) {
	f := Field{
		Name:     name,
		Encoding: encoding(part.Header),
		MIMEType: mimeType(part.Header, defaultFieldMIMEType),
	}
	if t.limits.FieldNameSize != nil && int64(len(f.Name)) > *t.limits.FieldNameSize {
		f.Name = f.Name[:*t.limits.FieldNameSize]
		f.NameTruncated = true
	}

	b := new(bytes.Buffer)
	if t.limits.FieldSize != nil {
		n, err := io.CopyN(b, part, *t.limits.FieldSize+1)
		if err != nil && !errors.Is(err, io.EOF) {
			return Field{}, fieldReadErr(f.Name, err)
		}
		if n > *t.limits.FieldSize {
			b.Truncate(int(*t.limits.FieldSize))
			f.ValueTruncated = true
			if err := myio.Drain(part); err != nil {
				return Field{}, fieldReadErr(f.Name, err)
			}
		}
	} else {
		if _, err := b.ReadFrom(part); err != nil {
			return Field{}, fieldReadErr(f.Name, err)
		}
	}
	f.Value = b.Bytes()

	return f, nil
}

// fieldReadErr wraps a part body read failure. A stream cut off inside a
// field value shows up here as an EOF from the part reader, not from
// NextPart, so the premature-close classification has to happen on this
// path too.
func fieldReadErr(name string, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: field %q: %w", ErrPrematureClose, name, err)
	}
	return fmt.Errorf("failed to read field %q: %w", name, err)
}
