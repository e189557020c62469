package formatter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/pretty"

	"github.com/mcncl/fixturegen/internal/models"
)

// DefaultIndent is the number of spaces per nesting level in a fixture
const DefaultIndent = 2

// Formatter serializes documents as human-readable JSON
type Formatter struct {
	Indent          int
	TrailingNewline bool
}

// NewFormatter creates a Formatter with the default fixture layout
func NewFormatter() *Formatter {
	return &Formatter{Indent: DefaultIndent}
}

// Format encodes the document root with one level of indentation per nesting depth.
// Object keys come out sorted, so repeated runs over the same input are byte-identical.
func (f *Formatter) Format(doc models.Document) ([]byte, error) {
	indent := f.Indent
	if indent <= 0 {
		indent = DefaultIndent
	}

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", strings.Repeat(" ", indent))
	if err := encoder.Encode(doc.Root); err != nil {
		return nil, fmt.Errorf("failed to encode %s document: %w", doc.Kind, err)
	}

	out := bytes.TrimSuffix(buf.Bytes(), []byte("\n"))
	if f.TrailingNewline {
		out = append(out, '\n')
	}
	return out, nil
}

// Colorize highlights formatted JSON for a terminal
func Colorize(formatted []byte) []byte {
	return pretty.Color(formatted, pretty.TerminalStyle)
}
