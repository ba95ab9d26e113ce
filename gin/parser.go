package ginform

import (
	"io"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/soramame/partstream"
)

// Parser parses the multipart body of a gin request.
type Parser struct {
	*partstream.Parser
	reader io.Reader
}

func NewParser(c *gin.Context, options ...partstream.ParserOption) (*Parser, error) {
	contentType := c.GetHeader("Content-Type")
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
		reader: c.Request.Body,
	}, nil
}

func (p *Parser) Parse(handler partstream.FileHandlerFunc, options ...partstream.ParseOption) (*partstream.ResultSet, error) {
	return p.Parser.Parse(p.reader, handler, options...)
}
