// Package render draws pinout layouts. Every back end works from the same
// Table: the layout projected onto a grid of spanning cells.
package render

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/OpenTraceLab/OpenTracePinout/pkg/pinout"
)

// CellKind is what a table cell shows.
type CellKind int

const (
	CellEmpty CellKind = iota
	// CellFiller connects a pin to a tag further out in aligned mode.
	CellFiller
	// CellTag is one group's labels in aligned mode.
	CellTag
	// CellTags stacks all labels of a pin in dense mode.
	CellTags
	CellName
	CellNumber
	CellBody
	CellDescription
)

func (k CellKind) String() string {
	switch k {
	case CellEmpty:
		return "empty"
	case CellFiller:
		return "filler"
	case CellTag:
		return "tag"
	case CellTags:
		return "tags"
	case CellName:
		return "name"
	case CellNumber:
		return "number"
	case CellBody:
		return "body"
	case CellDescription:
		return "description"
	}
	return "unknown"
}

// Align is the horizontal alignment of a cell's content.
type Align int

const (
	AlignCenter Align = iota
	AlignLeft
	AlignRight
)

// Cell is one table cell. Row and Col are set by Table.Place.
type Cell struct {
	Kind     CellKind
	RowSpan  int
	ColSpan  int
	Vertical bool
	Align    Align

	Pin  *pinout.Pin
	Tags []*pinout.Tag
	Body *pinout.Body
	Text string

	Row, Col int
}

// Segment is one line of a cell, or one column of a vertical cell.
type Segment struct {
	Text       string
	Background string
	Foreground string
	Bold       bool
	Small      bool
	Dashed     bool
	// Rule separates two variant names in the body.
	Rule bool
}

// Segments returns the content of c in reading order.
func (c *Cell) Segments() []Segment {
	switch c.Kind {
	case CellName:
		s := c.Pin.Style
		return []Segment{{
			Text:       c.Pin.Name,
			Background: s.Background,
			Foreground: s.Text,
			Dashed:     s.Border == pinout.BorderDashed,
		}}
	case CellNumber:
		if !c.Pin.HasNumber() {
			return nil
		}
		return []Segment{{Text: strconv.Itoa(c.Pin.Number)}}
	case CellTag, CellTags:
		segs := make([]Segment, 0, len(c.Tags))
		for _, t := range c.Tags {
			segs = append(segs, Segment{
				Text:       strings.Join(t.Values, " "),
				Background: t.Color,
				Foreground: t.ContrastColor,
			})
		}
		return segs
	case CellBody:
		return bodySegments(c.Body)
	case CellDescription:
		return []Segment{{Text: c.Text}}
	}
	return nil
}

func bodySegments(b *pinout.Body) []Segment {
	var segs []Segment
	if b.Manufacturer != "" {
		segs = append(segs, Segment{Text: b.Manufacturer})
	}
	for i, n := range b.Names {
		if i > 0 {
			segs = append(segs, Segment{Rule: true})
		}
		segs = append(segs, Segment{Text: n.Title, Bold: true})
		for _, d := range n.Details {
			segs = append(segs, Segment{Text: d, Small: true})
		}
	}
	return segs
}

// Table is a layout projected onto table rows, the way an HTML table lists
// its cells: a cell covered by a row span from above is not repeated.
type Table struct {
	Layout *pinout.Layout
	Rows   [][]*Cell
	Cols   int
}

// Project builds the table of a layout.
func Project(l *pinout.Layout) *Table {
	t := &Table{Layout: l, Cols: l.GridCols}

	if l.Top != nil {
		t.verticalSide(l.Top)
	}
	for i, r := range l.Rows {
		var row []*Cell
		row = append(row, t.tagCells(r.Left, pinout.SideLeft)...)
		row = append(row, pinCells(r.Left, pinout.SideLeft)...)
		if i == 0 {
			row = append(row, &Cell{
				Kind:    CellBody,
				RowSpan: l.Body.RowSpan,
				ColSpan: l.Body.ColSpan,
				Body:    &l.Body,
			})
		}
		row = append(row, pinCells(r.Right, pinout.SideRight)...)
		row = append(row, t.tagCells(r.Right, pinout.SideRight)...)
		t.Rows = append(t.Rows, row)
	}
	if l.Bottom != nil {
		t.verticalSide(l.Bottom)
	}

	for i := range l.Additional {
		extra := &l.Additional[i]
		row := []*Cell{
			{Kind: CellDescription, ColSpan: l.GridCols - 1 - l.TagBlockWidth(), Align: AlignRight, Text: extra.Description},
			{Kind: CellName, Pin: &extra.Pin},
		}
		row = append(row, t.tagCells(extra.Pin, pinout.SideRight)...)
		t.Rows = append(t.Rows, row)
	}

	for _, row := range t.Rows {
		for _, c := range row {
			if c.RowSpan == 0 {
				c.RowSpan = 1
			}
			if c.ColSpan == 0 {
				c.ColSpan = 1
			}
		}
	}
	t.Place()
	return t
}

// pinCells returns the name and number cells, name outermost.
func pinCells(p pinout.Pin, side pinout.Side) []*Cell {
	if p.IsSkipped() {
		return []*Cell{{Kind: CellEmpty, ColSpan: 2}}
	}
	name := &Cell{Kind: CellName, Pin: &p}
	number := &Cell{Kind: CellNumber, Pin: &p}
	if side == pinout.SideLeft {
		return []*Cell{name, number}
	}
	return []*Cell{number, name}
}

// tagCells returns the tag block of one pin.
func (t *Table) tagCells(p pinout.Pin, side pinout.Side) []*Cell {
	if p.IsSkipped() {
		if !t.Layout.Aligned {
			return []*Cell{{Kind: CellEmpty}}
		}
		if p.NumFunctions == 0 {
			return nil
		}
		return []*Cell{{Kind: CellEmpty, ColSpan: p.NumFunctions}}
	}

	if !t.Layout.Aligned {
		align := AlignLeft
		if side == pinout.SideLeft || side == pinout.SideTop {
			align = AlignRight
		}
		return []*Cell{{Kind: CellTags, Tags: p.Present(), Align: align, Vertical: side.Vertical()}}
	}

	tags := p.TagCells(side)
	cells := make([]*Cell, len(tags))
	for i, tc := range tags {
		switch {
		case tc.Tag != nil:
			cells[i] = &Cell{Kind: CellTag, Tags: []*pinout.Tag{tc.Tag}}
		case tc.Filler:
			cells[i] = &Cell{Kind: CellFiller}
		default:
			cells[i] = &Cell{Kind: CellEmpty}
		}
	}
	return cells
}

// verticalSide emits the three band rows of a quad top or bottom side.
func (t *Table) verticalSide(vs *pinout.VerticalSide) {
	const margin = 3
	for _, band := range vs.Bands {
		row := []*Cell{{Kind: CellEmpty, ColSpan: margin}}
		for i := range vs.Pins {
			p := vs.Pins[i]
			switch band {
			case pinout.BandNumber:
				if p.IsSkipped() {
					row = append(row, &Cell{Kind: CellEmpty})
				} else {
					row = append(row, &Cell{Kind: CellNumber, Pin: &p})
				}
			case pinout.BandName:
				if p.IsSkipped() {
					row = append(row, &Cell{Kind: CellEmpty})
				} else {
					row = append(row, &Cell{Kind: CellName, Pin: &p, Vertical: true})
				}
			case pinout.BandTags:
				row = append(row, t.tagCells(p, vs.Side)...)
			}
		}
		row = append(row, &Cell{Kind: CellEmpty, ColSpan: margin})
		t.Rows = append(t.Rows, row)
	}
}

// Place assigns grid coordinates to every cell, skipping positions covered by
// row spans from earlier rows.
func (t *Table) Place() {
	taken := make([][]bool, len(t.Rows))
	for i := range taken {
		taken[i] = make([]bool, t.Cols)
	}

	for r, row := range t.Rows {
		col := 0
		for _, c := range row {
			for col < t.Cols && taken[r][col] {
				col++
			}
			c.Row, c.Col = r, col
			for dr := 0; dr < c.RowSpan && r+dr < len(t.Rows); dr++ {
				for dc := 0; dc < c.ColSpan && col+dc < t.Cols; dc++ {
					taken[r+dr][col+dc] = true
				}
			}
			col += c.ColSpan
		}
	}
}

// Cells returns every cell in row order.
func (t *Table) Cells() []*Cell {
	var out []*Cell
	for _, row := range t.Rows {
		out = append(out, row...)
	}
	return out
}

// extent returns the size of a cell's content in characters and lines.
func extent(c *Cell) (w, h int) {
	if c.Kind == CellFiller {
		return 1, 1
	}
	for _, s := range c.Segments() {
		n := utf8.RuneCountInString(s.Text)
		if c.Vertical {
			w++
			h = max(h, n)
		} else {
			h++
			w = max(w, n)
		}
	}
	return w, h
}

// Tracks sizes the columns and rows of t so that every cell fits. Single-span
// cells are measured first; spanning cells then widen the last track they
// cover. Rows are at least one unit high.
func (t *Table) Tracks(measure func(*Cell) (w, h int), colGap, rowGap int) (cols, rows []int) {
	cells := t.Cells()
	cols = make([]int, t.Cols)
	rows = make([]int, len(t.Rows))
	for i := range rows {
		rows[i] = 1
	}

	for _, c := range cells {
		w, h := measure(c)
		if c.ColSpan == 1 && c.Col < len(cols) {
			cols[c.Col] = max(cols[c.Col], w)
		}
		if c.RowSpan == 1 {
			rows[c.Row] = max(rows[c.Row], h)
		}
	}
	for _, c := range cells {
		w, h := measure(c)
		if last := min(c.Col+c.ColSpan, len(cols)) - 1; c.ColSpan > 1 && last >= 0 {
			if have := spanSize(cols, c.Col, c.ColSpan, colGap); have < w {
				cols[last] += w - have
			}
		}
		if last := min(c.Row+c.RowSpan, len(rows)) - 1; c.RowSpan > 1 {
			if have := spanSize(rows, c.Row, c.RowSpan, rowGap); have < h {
				rows[last] += h - have
			}
		}
	}
	return cols, rows
}

// spanSize is the total size of n tracks starting at from, with gap between
// neighbouring tracks.
func spanSize(sizes []int, from, n, gap int) int {
	total := 0
	for i := from; i < from+n && i < len(sizes); i++ {
		total += sizes[i]
	}
	if n > 1 {
		total += (n - 1) * gap
	}
	return total
}
