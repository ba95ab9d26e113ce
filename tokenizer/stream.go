package tokenizer

import (
	"io"
	"sync/atomic"
)

// FileStream carries one file part's bytes. The truncation flag is shared
// between every stream derived from the same part, so a consumer reading from
// a pipe fed by the producer side still observes it.
type FileStream struct {
	r         io.Reader
	truncated *atomic.Bool
}

// NewFileStream wraps r as a file-part stream. It is exported for fake
// tokenizers in tests.
func NewFileStream(r io.Reader) *FileStream {
	return &FileStream{r: r, truncated: new(atomic.Bool)}
}

func (s *FileStream) Read(b []byte) (int, error) {
	return s.r.Read(b)
}

// Truncated reports whether the file-size bound cut the payload short. Only
// meaningful once the stream has been read to EOF.
func (s *FileStream) Truncated() bool {
	return s.truncated.Load()
}

// truncatingReader stops delivering bytes at the file-size bound and marks
// the stream truncated if the part had more to give.
type truncatingReader struct {
	r         io.Reader
	remaining int64
	stream    *FileStream
}

func (t *truncatingReader) Read(b []byte) (int, error) {
	if t.remaining <= 0 {
		// Probe one byte to tell an exact fit from a truncation.
		var probe [1]byte
		if n, _ := t.r.Read(probe[:]); n > 0 {
			t.stream.truncated.Store(true)
		}
		return 0, io.EOF
	}
	if int64(len(b)) > t.remaining {
		b = b[:t.remaining]
	}
	n, err := t.r.Read(b)
	t.remaining -= int64(n)
	return n, err
}
