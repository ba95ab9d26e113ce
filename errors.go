package partstream

import (
	"net/http"

	"github.com/soramame/partstream/tokenizer"
)

// LimitError reports that the body exceeded a configured parts, files or
// fields bound. In HTTP terms it is a 413.
type LimitError struct {
	// Limit names the offending bound: "parts", "files" or "fields".
	Limit string
}

func (e *LimitError) Error() string {
	return "Reached " + e.Limit + " limit"
}

// StatusCode returns the HTTP status the error translates to.
func (e *LimitError) StatusCode() int {
	return http.StatusRequestEntityTooLarge
}

var (
	// ErrPartsLimit is returned when the body has more parts than Limits.Parts.
	ErrPartsLimit = &LimitError{Limit: "parts"}
	// ErrFilesLimit is returned when the body has more file parts than Limits.Files.
	ErrFilesLimit = &LimitError{Limit: "files"}
	// ErrFieldsLimit is returned when the body has more field parts than Limits.Fields.
	ErrFieldsLimit = &LimitError{Limit: "fields"}

	// ErrTooManyHeaderPairs is returned when a part carries more header pairs
	// than Limits.HeaderPairs.
	ErrTooManyHeaderPairs = tokenizer.ErrTooManyHeaderPairs
	// ErrHeaderTooLarge is returned when a part's header block exceeds
	// Limits.HeaderSize.
	ErrHeaderTooLarge = tokenizer.ErrHeaderTooLarge
	// ErrPrematureClose is returned when the request stream closed before the
	// terminal boundary, and nothing else settled the parse first.
	ErrPrematureClose = tokenizer.ErrPrematureClose
)

// limitError maps a tokenizer limit event to its caller-facing error.
// It is pure: no I/O, no side effects.
func limitError(kind tokenizer.LimitKind) *LimitError {
	switch kind {
	case tokenizer.LimitParts:
		return ErrPartsLimit
	case tokenizer.LimitFiles:
		return ErrFilesLimit
	case tokenizer.LimitFields:
		return ErrFieldsLimit
	}
	return &LimitError{Limit: kind.String()}
}
