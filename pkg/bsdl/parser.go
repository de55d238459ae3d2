package bsdl

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/participle/v2"
)

// Parser reads BSDL files. It is safe to reuse.
type Parser struct {
	parser *participle.Parser[BSDLFile]
}

// NewParser builds the BSDL grammar.
func NewParser() (*Parser, error) {
	parser, err := participle.Build[BSDLFile](
		participle.Lexer(entityLexer),
		participle.Elide("Comment", "Whitespace"),
		participle.UseLookahead(2),
	)
	if err != nil {
		return nil, fmt.Errorf("bsdl: build grammar: %w", err)
	}
	return &Parser{parser: parser}, nil
}

// Parse reads one BSDL document from r. name is used in error positions.
func (p *Parser) Parse(name string, r io.Reader) (*BSDLFile, error) {
	file, err := p.parser.Parse(name, r)
	if err != nil {
		return nil, fmt.Errorf("bsdl: %w", err)
	}
	return file, nil
}

// ParseString parses a BSDL document held in memory.
func (p *Parser) ParseString(input string) (*BSDLFile, error) {
	file, err := p.parser.ParseString("", input)
	if err != nil {
		return nil, fmt.Errorf("bsdl: %w", err)
	}
	return file, nil
}

// ParseFile opens and parses filename.
func (p *Parser) ParseFile(filename string) (*BSDLFile, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("bsdl: %w", err)
	}
	defer f.Close()

	return p.Parse(filename, f)
}
