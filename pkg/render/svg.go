package render

import (
	"bytes"
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/OpenTraceLab/OpenTracePinout/pkg/pinout"
)

const (
	svgMargin = 16
	svgGap    = 2
)

// metrics converts character extents to pixels for one font size.
type metrics struct {
	font  int
	charW int
	lineH int
	pad   int
}

func newMetrics(fontSize int) metrics {
	if fontSize <= 0 {
		fontSize = pinout.DefaultFontSize
	}
	return metrics{
		font:  fontSize,
		charW: max(1, fontSize*6/10),
		lineH: fontSize * 3 / 2,
		pad:   max(2, fontSize/3),
	}
}

func (m metrics) size(c *Cell) (w, h int) {
	switch c.Kind {
	case CellEmpty:
		return 0, 0
	case CellFiller:
		return m.charW, m.lineH
	}
	chars, lines := extent(c)
	if c.Vertical {
		return chars * m.lineH, lines*m.charW + 2*m.pad
	}
	return chars*m.charW + 2*m.pad, lines * m.lineH
}

// SVG writes diagrams as one SVG document, stacked top to bottom. The font
// size of every diagram comes from its settings.
func SVG(w io.Writer, diagrams []*pinout.Diagram, opts Options) error {
	colors := GetColors(opts.Theme)

	var body bytes.Buffer
	canvas := svg.New(&body)
	width, y := 0, svgMargin
	for _, d := range diagrams {
		dw, dh := svgDiagram(canvas, d, colors, svgMargin, y)
		width = max(width, dw)
		y += dh + svgMargin
	}

	out := svg.New(w)
	out.Start(width+2*svgMargin, y, `font-family="monospace"`)
	out.Rect(0, 0, width+2*svgMargin, y, "fill:"+colors.Background)
	if _, err := body.WriteTo(w); err != nil {
		return err
	}
	out.End()
	return nil
}

// svgDiagram draws one diagram with its top left corner at x, y and returns
// the size it used.
func svgDiagram(canvas *svg.SVG, d *pinout.Diagram, colors *Colors, x, y int) (w, h int) {
	m := newMetrics(d.Settings.FontSize)
	top := y

	canvas.Gid("chip-" + d.Chip)
	if d.ShowName {
		y += m.lineH
		canvas.Text(x, y, d.Title, fmt.Sprintf("font-size:%dpx;font-weight:bold;fill:%s", m.font*3/2, colors.Text))
		w = max(w, len(d.Title)*m.charW*3/2)
		y += m.pad
	}
	for _, n := range d.Notes {
		y += m.lineH
		canvas.Text(x, y, n, fmt.Sprintf("font-size:%dpx;fill:%s", m.font, colors.Text))
		w = max(w, len(n)*m.charW)
	}

	if len(d.Legend) > 0 {
		y += m.pad
		lx := x
		for _, e := range d.Legend {
			label := e.Name
			if !e.Visible {
				label += " (hidden)"
			}
			bw := len([]rune(label))*m.charW + 2*m.pad
			badge(canvas, m, colors, lx, y, bw, m.lineH, Segment{Text: label, Background: e.Color, Foreground: e.ContrastColor}, AlignCenter)
			lx += bw + m.pad
		}
		w = max(w, lx-x)
		y += m.lineH
	}

	for _, v := range d.Variants {
		y += m.lineH
		if v.Err != nil {
			y += m.lineH
			msg := "error: " + v.Err.Error()
			canvas.Text(x, y, msg, fmt.Sprintf("font-size:%dpx;fill:%s", m.font, colors.Error))
			w = max(w, len(msg)*m.charW)
			continue
		}
		tw, th := svgTable(canvas, Project(v.Layout), m, colors, x, y)
		w = max(w, tw)
		y += th
	}
	canvas.Gend()
	return w, y - top
}

func svgTable(canvas *svg.SVG, t *Table, m metrics, colors *Colors, x, y int) (w, h int) {
	cols, rows := t.Tracks(m.size, svgGap, svgGap)

	colX := make([]int, len(cols)+1)
	colX[0] = x
	for i, cw := range cols {
		colX[i+1] = colX[i] + cw + svgGap
	}
	rowY := make([]int, len(rows)+1)
	rowY[0] = y
	for i, rh := range rows {
		rowY[i+1] = rowY[i] + rh + svgGap
	}

	for _, c := range t.Cells() {
		cx, cy := colX[c.Col], rowY[c.Row]
		cw := spanSize(cols, c.Col, c.ColSpan, svgGap)
		ch := spanSize(rows, c.Row, c.RowSpan, svgGap)
		svgCell(canvas, c, m, colors, cx, cy, cw, ch)
	}
	return colX[len(cols)] - x, rowY[len(rows)] - y
}

func svgCell(canvas *svg.SVG, c *Cell, m metrics, colors *Colors, x, y, w, h int) {
	switch c.Kind {
	case CellEmpty:
		return
	case CellFiller:
		canvas.Line(x, y+h/2, x+w+svgGap, y+h/2, "stroke:"+colors.Filler+";stroke-width:2")
		return
	case CellBody:
		canvas.Rect(x, y, w, h, fmt.Sprintf("fill:%s;stroke:%s", colors.Body, colors.BodyBorder))
		segs := c.Segments()
		ty := y + (h-len(segs)*m.lineH)/2
		for _, s := range segs {
			if s.Rule {
				canvas.Line(x+m.pad, ty+m.lineH/2, x+w-m.pad, ty+m.lineH/2, "stroke:"+colors.BodyText)
			} else {
				st := fmt.Sprintf("font-size:%dpx;fill:%s;text-anchor:middle", m.font, colors.BodyText)
				if s.Bold {
					st += ";font-weight:bold"
				}
				if s.Small {
					st = fmt.Sprintf("font-size:%dpx;fill:%s;text-anchor:middle", m.font*4/5, colors.BodyText)
				}
				canvas.Text(x+w/2, ty+m.lineH*3/4, s.Text, st)
			}
			ty += m.lineH
		}
		return
	case CellNumber:
		for _, s := range c.Segments() {
			canvas.Text(x+w/2, y+h/2+m.font/3, s.Text,
				fmt.Sprintf("font-size:%dpx;fill:%s;text-anchor:middle", m.font, colors.Number))
		}
		return
	case CellDescription:
		canvas.Text(x+w-m.pad, y+h/2+m.font/3, c.Text,
			fmt.Sprintf("font-size:%dpx;fill:%s;text-anchor:end", m.font, colors.Text))
		return
	}

	segs := c.Segments()
	if len(segs) == 0 {
		return
	}
	if c.Vertical {
		// One rotated badge per segment, side by side.
		bw := w / len(segs)
		for i, s := range segs {
			verticalBadge(canvas, m, colors, x+i*bw, y, bw, h, s, c.Align == AlignRight)
		}
		return
	}
	bh := h / len(segs)
	for i, s := range segs {
		badge(canvas, m, colors, x, y+i*bh, w, bh, s, c.Align)
	}
}

func badgeStyle(colors *Colors, s Segment) (fill, text string) {
	bg, fg := colors.badgeColors(s)
	fill = "fill:none;stroke:" + colors.Border
	if bg != "" {
		fill = "fill:" + bg
		if s.Dashed {
			fill += ";stroke:" + colors.Border
		}
	}
	if s.Dashed {
		fill += ";stroke-dasharray:3,2"
	}
	return fill, "fill:" + fg
}

func badge(canvas *svg.SVG, m metrics, colors *Colors, x, y, w, h int, s Segment, align Align) {
	fill, text := badgeStyle(colors, s)
	canvas.Roundrect(x, y+1, w, h-2, m.pad, m.pad, fill)

	tx, anchor := x+w/2, "middle"
	switch align {
	case AlignLeft:
		tx, anchor = x+m.pad, "start"
	case AlignRight:
		tx, anchor = x+w-m.pad, "end"
	}
	canvas.Text(tx, y+h/2+m.font/3, s.Text,
		fmt.Sprintf("font-size:%dpx;%s;text-anchor:%s", m.font, text, anchor))
}

// verticalBadge draws s reading top to bottom. With toBody the text ends at
// the bottom edge, next to the package below it.
func verticalBadge(canvas *svg.SVG, m metrics, colors *Colors, x, y, w, h int, s Segment, toBody bool) {
	fill, text := badgeStyle(colors, s)
	canvas.Roundrect(x+1, y, w-2, h, m.pad, m.pad, fill)

	tx, ty, anchor := x+w/2-m.font/3, y+m.pad, "start"
	if toBody {
		ty, anchor = y+h-m.pad, "end"
	}
	canvas.Text(tx, ty, s.Text,
		fmt.Sprintf("font-size:%dpx;%s;text-anchor:%s", m.font, text, anchor),
		fmt.Sprintf(`transform="rotate(90 %d %d)"`, tx, ty))
}
