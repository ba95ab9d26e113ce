package partstream

import (
	"io"
	"sync"

	"github.com/soramame/partstream/internal/myio"
	"github.com/soramame/partstream/tokenizer"
)

type adapterState int

const (
	stateActive adapterState = iota
	stateDraining
	stateSettled
)

// adapter translates tokenizer events into ResultSet mutations and decides
// when the parse operation settles. It settles exactly once: the first
// terminal event or handler failure wins, later ones only trigger cleanup.
type adapter struct {
	tok     tokenizer.Tokenizer
	handler FileHandlerFunc

	mu       sync.Mutex
	state    adapterState
	rs       *ResultSet
	err      error
	inflight int
	ended    bool
	done     chan struct{}
}

func newAdapter(tok tokenizer.Tokenizer, handler FileHandlerFunc) *adapter {
	return &adapter{
		tok:     tok,
		handler: handler,
		rs:      newResultSet(),
		done:    make(chan struct{}),
	}
}

// Wait blocks until the parse operation settles. The ResultSet is never
// exposed before settlement.
func (a *adapter) Wait() (*ResultSet, error) {
	<-a.done

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.err != nil {
		return nil, a.err
	}
	return a.rs, nil
}

func (a *adapter) OnField(f tokenizer.Field) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state == stateSettled {
		return
	}

	a.rs.add(FieldPart{
		Name:           f.Name,
		Value:          string(f.Value),
		NameTruncated:  f.NameTruncated,
		ValueTruncated: f.ValueTruncated,
		Encoding:       f.Encoding,
		MIMEType:       f.MIMEType,
	})
}

func (a *adapter) OnFile(f tokenizer.File) {
	a.mu.Lock()
	if a.state == stateSettled {
		a.mu.Unlock()
		return
	}

	a.rs.add(FilePart{
		FieldName: f.FieldName,
		Stream:    f.Stream,
		Filename:  f.Filename,
		Encoding:  f.Encoding,
		MIMEType:  f.MIMEType,
	})

	if a.handler == nil {
		// The caller inspects the part through the ResultSet instead; the
		// stream stays attached, unconsumed.
		a.mu.Unlock()
		return
	}

	handler := a.handler
	a.inflight++
	a.mu.Unlock()

	info := FileInfo{
		FieldName: f.FieldName,
		Filename:  f.Filename,
		Encoding:  f.Encoding,
		MIMEType:  f.MIMEType,
	}

	pr, pw := io.Pipe()
	go func() {
		err := handler(handlerStream{Reader: pr, src: f.Stream}, info)
		if err != nil {
			pr.CloseWithError(err)
		} else {
			pr.Close()
		}
		a.handlerDone(err)
	}()

	// Pump the part's bytes through the pipe so the handler sees them in
	// connection order. A handler failure closes the read side, which aborts
	// the copy; the remainder is then drained so the rest of the multipart
	// stream keeps moving.
	if _, err := io.Copy(pw, f.Stream); err != nil {
		_ = myio.Drain(f.Stream)
	}
	_ = pw.Close()
}

func (a *adapter) OnEnd() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state == stateSettled {
		return
	}

	a.ended = true
	if a.inflight > 0 {
		a.state = stateDraining
		return
	}
	a.settleLocked(nil)
}

func (a *adapter) OnError(err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state == stateSettled {
		return
	}
	a.settleLocked(err)
}

func (a *adapter) OnLimit(kind tokenizer.LimitKind) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state == stateSettled {
		return
	}
	a.settleLocked(limitError(kind))
}

func (a *adapter) handlerDone(err error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.inflight--
	if a.state == stateSettled {
		if err != nil {
			// Settlement already happened, so the error cannot change the
			// outcome, but it should not vanish without a trace.
			logger.Warn().Err(err).Msg("file handler failed after parse settled")
		}
		return
	}
	if err != nil {
		a.settleLocked(err)
		return
	}
	if a.ended && a.inflight == 0 {
		a.settleLocked(nil)
	}
}

// settleLocked finishes the parse operation: records the outcome, removes
// the tokenizer listener and releases Wait. Callers hold a.mu and have
// checked the state is not already settled.
func (a *adapter) settleLocked(err error) {
	a.state = stateSettled
	a.err = err
	a.tok.Unsubscribe()
	close(a.done)
}
