package render

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/OpenTraceLab/OpenTracePinout/pkg/pinout"
)

// Options controls the terminal and SVG output.
type Options struct {
	Theme Theme
}

// Terminal writes diagrams as colored text. Colors are dropped when w is not
// a terminal.
func Terminal(w io.Writer, diagrams []*pinout.Diagram, opts Options) error {
	tr := &terminal{
		r:      lipgloss.NewRenderer(w),
		colors: GetColors(opts.Theme),
	}

	var b strings.Builder
	for i, d := range diagrams {
		if i > 0 {
			b.WriteString("\n")
		}
		tr.diagram(&b, d)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

type terminal struct {
	r      *lipgloss.Renderer
	colors *Colors
}

func (tr *terminal) diagram(b *strings.Builder, d *pinout.Diagram) {
	if d.ShowName {
		b.WriteString(tr.r.NewStyle().Bold(true).Render(d.Title))
		b.WriteString("\n")
	}
	for _, n := range d.Notes {
		b.WriteString(n)
		b.WriteString("\n")
	}
	if len(d.Legend) > 0 {
		b.WriteString(tr.legend(d.Legend))
		b.WriteString("\n")
	}

	for _, v := range d.Variants {
		b.WriteString("\n")
		if v.Err != nil {
			b.WriteString(tr.r.NewStyle().Foreground(lipgloss.Color(tr.colors.Error)).Render("error: " + v.Err.Error()))
			b.WriteString("\n")
			continue
		}
		b.WriteString(tr.table(Project(v.Layout)))
	}
}

func (tr *terminal) legend(entries []pinout.LegendEntry) string {
	badges := make([]string, 0, len(entries))
	for _, e := range entries {
		mark := "[ ]"
		if e.Visible {
			mark = "[x]"
		}
		seg := Segment{Text: mark + " " + e.Name, Background: e.Color, Foreground: e.ContrastColor}
		badges = append(badges, tr.style(seg).Faint(!e.Visible).Render(seg.Text))
	}
	return strings.Join(badges, " ")
}

func (tr *terminal) style(s Segment) lipgloss.Style {
	bg, fg := tr.colors.badgeColors(s)
	st := tr.r.NewStyle().Bold(s.Bold).Faint(s.Small).Underline(s.Dashed)
	if bg != "" {
		st = st.Background(lipgloss.Color(bg))
	}
	return st.Foreground(lipgloss.Color(fg))
}

// table renders a projected table on a character grid with one space between
// columns.
func (tr *terminal) table(t *Table) string {
	cells := t.Cells()
	rows := len(t.Rows)

	colW, rowH := t.Tracks(extent, 1, 0)

	owner := make([][]*Cell, rows)
	for i := range owner {
		owner[i] = make([]*Cell, t.Cols)
	}
	blocks := make(map[*Cell][]string, len(cells))
	for _, c := range cells {
		for r := c.Row; r < min(c.Row+c.RowSpan, rows); r++ {
			for col := c.Col; col < min(c.Col+c.ColSpan, t.Cols); col++ {
				owner[r][col] = c
			}
		}
		w := spanSize(colW, c.Col, c.ColSpan, 1)
		h := spanSize(rowH, c.Row, c.RowSpan, 0)
		blocks[c] = strings.Split(tr.cell(c, w, h), "\n")
	}

	offset := make([]int, rows+1)
	for r := 0; r < rows; r++ {
		offset[r+1] = offset[r] + rowH[r]
	}

	var b strings.Builder
	for r := 0; r < rows; r++ {
		for k := 0; k < rowH[r]; k++ {
			for col := 0; col < t.Cols; {
				o := owner[r][col]
				if o == nil || o.Col != col {
					b.WriteString(strings.Repeat(" ", colW[col]))
					col++
				} else {
					lines := blocks[o]
					if idx := offset[r] + k - offset[o.Row]; idx < len(lines) {
						b.WriteString(lines[idx])
					}
					col += o.ColSpan
				}
				if col < t.Cols {
					b.WriteString(" ")
				}
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

// cell renders c as a block of exactly w by h characters.
func (tr *terminal) cell(c *Cell, w, h int) string {
	blank := tr.r.Place(w, h, lipgloss.Left, lipgloss.Top, "")
	if w == 0 {
		return blank
	}

	switch c.Kind {
	case CellEmpty:
		return blank
	case CellFiller:
		line := tr.r.NewStyle().Foreground(lipgloss.Color(tr.colors.Filler)).Render(strings.Repeat("─", w))
		return tr.r.PlaceVertical(h, lipgloss.Center, line)
	}

	segs := c.Segments()
	if len(segs) == 0 {
		return blank
	}

	pos := lipgloss.Center
	switch c.Align {
	case AlignLeft:
		pos = lipgloss.Left
	case AlignRight:
		pos = lipgloss.Right
	}

	if c.Vertical {
		cols := make([]string, len(segs))
		for i, s := range segs {
			cols[i] = tr.style(s).Render(strings.Join(strings.Split(s.Text, ""), "\n"))
		}
		// Right-aligned vertical text sits against the package body below it.
		vpos := lipgloss.Top
		if c.Align == AlignRight {
			vpos = lipgloss.Bottom
		}
		return tr.r.Place(w, h, lipgloss.Center, vpos, lipgloss.JoinHorizontal(lipgloss.Top, cols...))
	}

	lines := make([]string, len(segs))
	for i, s := range segs {
		if s.Rule {
			lines[i] = strings.Repeat("─", w)
			continue
		}
		if c.Kind == CellBody && s.Background == "" {
			s.Background, s.Foreground = tr.colors.Body, tr.colors.BodyText
		}
		lines[i] = tr.style(s).Width(w).Align(pos).Render(s.Text)
	}
	if c.Kind == CellBody {
		return tr.r.Place(w, h, lipgloss.Center, lipgloss.Center, strings.Join(lines, "\n"),
			lipgloss.WithWhitespaceBackground(lipgloss.Color(tr.colors.Body)))
	}
	return tr.r.PlaceVertical(h, lipgloss.Center, strings.Join(lines, "\n"))
}
