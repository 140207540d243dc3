// Package editscript parses batch attribute edit scripts.
package editscript

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/participle/v2"
)

// Parser represents an edit script parser
type Parser struct {
	parser *participle.Parser[Script]
}

// NewParser creates a new edit script parser instance
func NewParser() (*Parser, error) {
	parser, err := participle.Build[Script](
		participle.Lexer(ScriptLexer),
		participle.Elide("Comment", "Whitespace"),
		participle.Unquote("String"),
		participle.UseLookahead(2),
	)
	if err != nil {
		return nil, fmt.Errorf("editscript: failed to build parser: %w", err)
	}

	return &Parser{parser: parser}, nil
}

// Parse parses an edit script from a reader. name is used in error
// positions.
func (p *Parser) Parse(name string, r io.Reader) (*Script, error) {
	script, err := p.parser.Parse(name, r)
	if err != nil {
		return nil, fmt.Errorf("editscript: parse error: %w", err)
	}
	return script, nil
}

// ParseString parses an edit script from a string
func (p *Parser) ParseString(input string) (*Script, error) {
	script, err := p.parser.ParseString("", input)
	if err != nil {
		return nil, fmt.Errorf("editscript: parse error: %w", err)
	}
	return script, nil
}

// ParseFile parses an edit script from a file path
func (p *Parser) ParseFile(filename string) (*Script, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("editscript: failed to open file: %w", err)
	}
	defer file.Close()

	return p.Parse(filename, file)
}
