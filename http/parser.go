package http

import (
	"io"
	"mime"
	"net/http"

	"github.com/soramame/partstream"
)

// Parser parses the multipart body of one *http.Request. Both
// multipart/form-data and multipart/related bodies are accepted; either way
// the body is pulled through the same engine, so the sink-style
// RelatedParser is not needed here.
type Parser struct {
	*partstream.Parser
	reader io.Reader
}

func NewParser(req *http.Request, options ...partstream.ParserOption) (*Parser, error) {
	contentType := req.Header.Get("Content-Type")
	d, params, err := mime.ParseMediaType(contentType)
	if err != nil || (d != "multipart/form-data" && d != "multipart/related") {
		return nil, http.ErrNotMultipart
	}

	boundary, ok := params["boundary"]
	if !ok {
		return nil, http.ErrMissingBoundary
	}

	return &Parser{
		Parser: partstream.NewParser(boundary, options...),
		reader: req.Body,
	}, nil
}

func (p *Parser) Parse(handler partstream.FileHandlerFunc, options ...partstream.ParseOption) (*partstream.ResultSet, error) {
	return p.Parser.Parse(p.reader, handler, options...)
}
