package partstream

import (
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/soramame/partstream/tokenizer"
	"github.com/soramame/partstream/tokenizer/mock"
)

var errTest = errors.New("test error")

func fieldEvent(name, value string) tokenizer.Field {
	return tokenizer.Field{Name: name, Value: []byte(value), Encoding: "7bit", MIMEType: "text/plain"}
}

func fileEvent(name, content string) tokenizer.File {
	return tokenizer.File{
		FieldName: name,
		Stream:    tokenizer.NewFileStream(strings.NewReader(content)),
		Filename:  name + ".bin",
		Encoding:  "7bit",
		MIMEType:  "application/octet-stream",
	}
}

func TestAdapter_SingleSettlement(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	tok := mock.NewMockTokenizer(ctrl)
	// Listener cleanup must run exactly once no matter how many terminal
	// events arrive.
	tok.EXPECT().Unsubscribe().Times(1)

	ad := newAdapter(tok, nil)
	ad.OnField(fieldEvent("a", "1"))
	ad.OnEnd()

	rs, err := ad.Wait()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v, _ := rs.Value("a"); v != "1" {
		t.Errorf("value is wrong: expected: 1, actual: %s", v)
	}

	// Terminal events after settlement are no-ops.
	ad.OnEnd()
	ad.OnError(errTest)
	ad.OnLimit(tokenizer.LimitParts)
	ad.OnField(fieldEvent("b", "2"))

	rs2, err := ad.Wait()
	if err != nil {
		t.Fatalf("unexpected error after resettlement attempts: %v", err)
	}
	if rs2.Len() != 1 {
		t.Errorf("result set changed after settlement: %d parts", rs2.Len())
	}
}

func TestAdapter_LimitMapping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		kind tokenizer.LimitKind
		err  *LimitError
		msg  string
	}{
		{name: "parts", kind: tokenizer.LimitParts, err: ErrPartsLimit, msg: "Reached parts limit"},
		{name: "files", kind: tokenizer.LimitFiles, err: ErrFilesLimit, msg: "Reached files limit"},
		{name: "fields", kind: tokenizer.LimitFields, err: ErrFieldsLimit, msg: "Reached fields limit"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			tok := mock.NewMockTokenizer(ctrl)
			tok.EXPECT().Unsubscribe().Times(1)

			ad := newAdapter(tok, nil)
			ad.OnLimit(tc.kind)

			_, err := ad.Wait()
			if !errors.Is(err, tc.err) {
				t.Fatalf("unexpected error: %v", err)
			}
			if err.Error() != tc.msg {
				t.Errorf("message is wrong: expected: %s, actual: %s", tc.msg, err.Error())
			}
			var limitErr *LimitError
			if !errors.As(err, &limitErr) || limitErr.StatusCode() != 413 {
				t.Errorf("status code is wrong: %v", err)
			}
		})
	}
}

func TestAdapter_DrainsHandlersBeforeSuccess(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	tok := mock.NewMockTokenizer(ctrl)
	tok.EXPECT().Unsubscribe().Times(1)

	release := make(chan struct{})
	ad := newAdapter(tok, func(r io.Reader, info FileInfo) error {
		if _, err := io.ReadAll(r); err != nil {
			return err
		}
		<-release
		return nil
	})

	ad.OnFile(fileEvent("upload", "contents"))
	ad.OnEnd()

	waitDone := make(chan struct{})
	var (
		rs      *ResultSet
		waitErr error
	)
	go func() {
		rs, waitErr = ad.Wait()
		close(waitDone)
	}()

	select {
	case <-waitDone:
		t.Fatal("parse settled before the in-flight handler finished")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	<-waitDone

	if waitErr != nil {
		t.Fatalf("unexpected error: %v", waitErr)
	}
	if _, ok := rs.File("upload"); !ok {
		t.Error("file part is missing from the result set")
	}
}

func TestAdapter_FirstHandlerErrorWins(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	tok := mock.NewMockTokenizer(ctrl)
	tok.EXPECT().Unsubscribe().Times(1)

	err1 := errors.New("late failure")
	err2 := errors.New("first failure")

	secondFailed := make(chan struct{})
	firstDone := make(chan struct{})
	ad := newAdapter(tok, func(r io.Reader, info FileInfo) error {
		if info.FieldName == "f1" {
			defer close(firstDone)
			<-secondFailed
			return err1
		}
		defer close(secondFailed)
		return err2
	})

	ad.OnFile(fileEvent("f1", ""))
	ad.OnFile(fileEvent("f2", ""))

	_, err := ad.Wait()
	if !errors.Is(err, err2) {
		t.Fatalf("unexpected error: %v", err)
	}

	// The late failure is swallowed after cleanup; it must not change the
	// settled outcome.
	<-firstDone
	if _, err := ad.Wait(); !errors.Is(err, err2) {
		t.Errorf("settled error changed: %v", err)
	}
}

func TestAdapter_StreamErrorDuringDraining(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	tok := mock.NewMockTokenizer(ctrl)
	tok.EXPECT().Unsubscribe().Times(1)

	release := make(chan struct{})
	ad := newAdapter(tok, func(r io.Reader, info FileInfo) error {
		<-release
		return nil
	})

	ad.OnFile(fileEvent("upload", ""))
	ad.OnEnd()
	ad.OnError(errTest)

	_, err := ad.Wait()
	if !errors.Is(err, errTest) {
		t.Fatalf("unexpected error: %v", err)
	}

	close(release)
}

func TestAdapter_NoHandlerKeepsStreamAttached(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	tok := mock.NewMockTokenizer(ctrl)
	tok.EXPECT().Unsubscribe().Times(1)

	ad := newAdapter(tok, nil)
	ad.OnFile(fileEvent("upload", "contents"))
	ad.OnEnd()

	rs, err := ad.Wait()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, ok := rs.File("upload")
	if !ok {
		t.Fatal("file part is missing from the result set")
	}
	if f.Stream == nil {
		t.Error("file stream is not attached")
	}
}

type countingReader struct {
	r io.Reader
	n int
}

func (c *countingReader) Read(b []byte) (int, error) {
	n, err := c.r.Read(b)
	c.n += n
	return n, err
}

func TestAdapter_HandlerFailureDrainsStream(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	tok := mock.NewMockTokenizer(ctrl)
	tok.EXPECT().Unsubscribe().Times(1)

	content := strings.Repeat("a", 64*1024)
	cr := &countingReader{r: strings.NewReader(content)}

	ad := newAdapter(tok, func(r io.Reader, info FileInfo) error {
		// Fail without consuming the stream.
		return errTest
	})

	ad.OnFile(tokenizer.File{
		FieldName: "upload",
		Stream:    tokenizer.NewFileStream(cr),
		Filename:  "a.bin",
	})

	if cr.n != len(content) {
		t.Errorf("stream was not fully drained: %d of %d bytes consumed", cr.n, len(content))
	}

	_, err := ad.Wait()
	if !errors.Is(err, errTest) {
		t.Fatalf("unexpected error: %v", err)
	}
}
