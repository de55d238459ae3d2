package bsdl

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// BoundaryCell is one cell of the boundary scan register.
type BoundaryCell struct {
	Number   int
	CellType string // BC_1, BC_7...
	Port     string // "*" for internal cells
	Function string // input, output3, bidir, control...
	Safe     string
	Control  int // -1 when absent
	Disable  int // -1 when absent
	Result   string
}

// GetBoundaryCells parses BOUNDARY_REGISTER, sorted by cell number.
func (e *Entity) GetBoundaryCells() ([]BoundaryCell, error) {
	attr := e.Attribute("BOUNDARY_REGISTER")
	if attr == nil || attr.Is == nil {
		return nil, fmt.Errorf("bsdl: BOUNDARY_REGISTER attribute missing")
	}

	entries, err := boundaryEntries(attr.Is.GetConcatenatedString())
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("bsdl: BOUNDARY_REGISTER is empty")
	}

	cells := make([]BoundaryCell, 0, len(entries))
	for _, entry := range entries {
		fields := splitTopLevel(entry.body)
		if len(fields) < 3 {
			return nil, fmt.Errorf("bsdl: boundary cell %d has %d fields, want at least 3", entry.number, len(fields))
		}

		cell := BoundaryCell{
			Number:   entry.number,
			CellType: fields[0],
			Port:     fields[1],
			Function: strings.ToLower(fields[2]),
			Control:  -1,
			Disable:  -1,
		}
		if len(fields) >= 4 {
			cell.Safe = fields[3]
		}
		if len(fields) >= 5 {
			if v, ok := parseOptionalInt(fields[4]); ok {
				cell.Control = v
			}
		}
		if len(fields) >= 6 {
			if v, ok := parseOptionalInt(fields[5]); ok {
				cell.Disable = v
			}
		}
		if len(fields) >= 7 {
			cell.Result = fields[6]
		}
		cells = append(cells, cell)
	}

	sort.Slice(cells, func(i, j int) bool {
		return cells[i].Number < cells[j].Number
	})
	return cells, nil
}

type boundaryEntry struct {
	number int
	body   string
}

// boundaryEntries splits "0 (BC_1, Y(4), output3, X), 1 (...)" into numbered
// bodies. Port names may carry their own parentheses.
func boundaryEntries(raw string) ([]boundaryEntry, error) {
	var out []boundaryEntry
	i := 0
	for i < len(raw) {
		if !unicode.IsDigit(rune(raw[i])) {
			i++
			continue
		}
		start := i
		for i < len(raw) && unicode.IsDigit(rune(raw[i])) {
			i++
		}
		number, err := strconv.Atoi(raw[start:i])
		if err != nil {
			return nil, fmt.Errorf("bsdl: boundary cell number %q: %w", raw[start:i], err)
		}
		for i < len(raw) && unicode.IsSpace(rune(raw[i])) {
			i++
		}
		if i >= len(raw) || raw[i] != '(' {
			return nil, fmt.Errorf("bsdl: boundary cell %d: expected '('", number)
		}

		depth, open := 0, i
		for ; i < len(raw); i++ {
			if raw[i] == '(' {
				depth++
			} else if raw[i] == ')' {
				depth--
				if depth == 0 {
					break
				}
			}
		}
		if depth != 0 {
			return nil, fmt.Errorf("bsdl: boundary cell %d: unbalanced parentheses", number)
		}
		out = append(out, boundaryEntry{number: number, body: raw[open+1 : i]})
		i++
	}
	return out, nil
}

// splitTopLevel splits on commas outside parentheses.
func splitTopLevel(body string) []string {
	var out []string
	depth, start := 0, 0
	for i, r := range body {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				out = append(out, strings.TrimSpace(body[start:i]))
				start = i + 1
			}
		}
	}
	if last := strings.TrimSpace(body[start:]); last != "" {
		out = append(out, last)
	}
	return out
}

func splitAndTrim(body string) []string {
	parts := strings.Split(body, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func parseOptionalInt(val string) (int, bool) {
	if val == "*" || strings.EqualFold(val, "X") {
		return -1, false
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return -1, false
	}
	return parsed, true
}
