package bsdl

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// ErrNoPinMap is returned when a file has no usable PIN_MAP_STRING constant.
var ErrNoPinMap = errors.New("bsdl: no pin map")

// PinMapEntry maps one port to its package pins. A bit vector port lists one
// pin per index, in the order of its range.
type PinMapEntry struct {
	Port string   `@Ident Colon`
	Pins []string `( @Ident | LParen @Ident ( Comma @Ident )* RParen )`
}

type pinMapString struct {
	Entries []*PinMapEntry `( @@ Comma? )*`
}

var pinMapLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `\s+`},
	// Pin designators may start with a digit (12) or a letter (A1).
	{Name: "Ident", Pattern: `[A-Za-z0-9_]+`},
	{Name: "Colon", Pattern: `:`},
	{Name: "Comma", Pattern: `,`},
	{Name: "LParen", Pattern: `\(`},
	{Name: "RParen", Pattern: `\)`},
})

var pinMapParser = participle.MustBuild[pinMapString](
	participle.Lexer(pinMapLexer),
	participle.Elide("Whitespace"),
)

// ParsePinMap parses the body of a PIN_MAP_STRING.
func ParsePinMap(s string) ([]PinMapEntry, error) {
	m, err := pinMapParser.ParseString("", s)
	if err != nil {
		return nil, fmt.Errorf("bsdl: pin map: %w", err)
	}
	out := make([]PinMapEntry, len(m.Entries))
	for i, e := range m.Entries {
		out[i] = *e
	}
	return out, nil
}

// PinMapName picks the PIN_MAP_STRING constant to use: name when set, else
// the PHYSICAL_PIN_MAP default, else the only pin map in the file.
func (e *Entity) PinMapName(name string) (string, error) {
	maps := e.Constants("PIN_MAP_STRING")
	if name == "" {
		name, _ = e.GenericDefault("PHYSICAL_PIN_MAP")
	}
	if name == "" {
		if len(maps) == 1 {
			return maps[0].Name, nil
		}
		return "", fmt.Errorf("%w: %d PIN_MAP_STRING constants and no PHYSICAL_PIN_MAP", ErrNoPinMap, len(maps))
	}
	for _, c := range maps {
		if strings.EqualFold(c.Name, name) {
			return c.Name, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrNoPinMap, name)
}

// PinMap parses the pin map selected by PinMapName.
func (e *Entity) PinMap(name string) ([]PinMapEntry, error) {
	name, err := e.PinMapName(name)
	if err != nil {
		return nil, err
	}
	for _, c := range e.Constants("PIN_MAP_STRING") {
		if c.Name == name {
			entries, err := ParsePinMap(c.Value.GetConcatenatedString())
			if err != nil {
				return nil, fmt.Errorf("%s: %w", name, err)
			}
			return entries, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrNoPinMap, name)
}
