package render

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/OpenTraceLab/OpenTracePinout/pkg/colorutil"
	"github.com/OpenTraceLab/OpenTracePinout/pkg/pinout"
)

const (
	maxSheetName = 31
	// Rows above the pinout table: title, notes, legend, blank.
	sheetHeaderRows = 4
)

// Workbook builds a workbook with one sheet per chip variant. A variant that
// failed to arrange gets a sheet with its error.
func Workbook(diagrams []*pinout.Diagram, opts Options) (*excelize.File, error) {
	wb := &workbook{
		f:      excelize.NewFile(),
		colors: GetColors(opts.Theme),
		styles: make(map[cellStyle]int),
		names:  make(map[string]bool),
	}

	first := true
	for _, d := range diagrams {
		for _, v := range d.Variants {
			name := wb.sheetName(d.Chip + " " + v.Label)
			if first {
				if err := wb.f.SetSheetName("Sheet1", name); err != nil {
					return nil, err
				}
				first = false
			} else if _, err := wb.f.NewSheet(name); err != nil {
				return nil, err
			}
			if err := wb.variant(name, d, v); err != nil {
				return nil, fmt.Errorf("render: sheet %q: %w", name, err)
			}
		}
	}
	return wb.f, nil
}

type workbook struct {
	f      *excelize.File
	colors *Colors
	styles map[cellStyle]int
	names  map[string]bool
}

// cellStyle is the part of a cell's look that maps to an excelize style.
type cellStyle struct {
	fill, font string
	bold       bool
	align      Align
	vertical   bool
	border     bool
	dashed     bool
}

// sheetName makes s a valid, unique sheet name.
func (wb *workbook) sheetName(s string) string {
	s = strings.Map(func(r rune) rune {
		if strings.ContainsRune(`:\/?*[]'`, r) {
			return '_'
		}
		return r
	}, s)
	s = strings.TrimSpace(s)
	if s == "" {
		s = "Sheet"
	}

	name := truncate(s, maxSheetName)
	for i := 2; wb.names[strings.ToLower(name)]; i++ {
		suffix := fmt.Sprintf(" (%d)", i)
		name = truncate(s, maxSheetName-len(suffix)) + suffix
	}
	wb.names[strings.ToLower(name)] = true
	return name
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		return string(r[:n])
	}
	return s
}

func (wb *workbook) style(cs cellStyle) (int, error) {
	if id, ok := wb.styles[cs]; ok {
		return id, nil
	}

	st := &excelize.Style{
		Font: &excelize.Font{Bold: cs.bold, Color: cs.font, Size: 11},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
			WrapText:   true,
		},
	}
	switch cs.align {
	case AlignLeft:
		st.Alignment.Horizontal = "left"
	case AlignRight:
		st.Alignment.Horizontal = "right"
	}
	if cs.vertical {
		// 180 reads top to bottom.
		st.Alignment.TextRotation = 180
	}
	if cs.fill != "" {
		st.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{cs.fill}}
	}
	if cs.border {
		line := 1
		if cs.dashed {
			line = 3
		}
		for _, side := range []string{"left", "right", "top", "bottom"} {
			st.Border = append(st.Border, excelize.Border{Type: side, Color: wb.colors.Border, Style: line})
		}
	}

	id, err := wb.f.NewStyle(st)
	if err != nil {
		return 0, err
	}
	wb.styles[cs] = id
	return id, nil
}

func (wb *workbook) set(sheet string, col, row int, value string, cs cellStyle) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if value != "" {
		if err := wb.f.SetCellValue(sheet, cell, value); err != nil {
			return err
		}
	}
	id, err := wb.style(cs)
	if err != nil {
		return err
	}
	return wb.f.SetCellStyle(sheet, cell, cell, id)
}

func (wb *workbook) variant(sheet string, d *pinout.Diagram, v pinout.VariantResult) error {
	if err := wb.set(sheet, 1, 1, d.Title, cellStyle{bold: true, align: AlignLeft, font: wb.colors.Text}); err != nil {
		return err
	}
	if len(d.Notes) > 0 {
		if err := wb.set(sheet, 1, 2, strings.Join(d.Notes, "\n"), cellStyle{align: AlignLeft, font: wb.colors.Text}); err != nil {
			return err
		}
	}
	for i, e := range d.Legend {
		cs := cellStyle{fill: hexOr(e.Color, ""), font: hexOr(e.ContrastColor, wb.colors.Text), border: true, dashed: !e.Visible}
		if err := wb.set(sheet, i+1, 3, e.Name, cs); err != nil {
			return err
		}
	}

	if v.Err != nil {
		return wb.set(sheet, 1, sheetHeaderRows+1, "error: "+v.Err.Error(), cellStyle{align: AlignLeft, font: wb.colors.Error})
	}

	t := Project(v.Layout)
	for _, c := range t.Cells() {
		if err := wb.cell(sheet, c); err != nil {
			return err
		}
	}

	cols, _ := t.Tracks(extent, 0, 0)
	for i, w := range cols {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := wb.f.SetColWidth(sheet, name, name, float64(max(w, 1)+2)); err != nil {
			return err
		}
	}
	return nil
}

func (wb *workbook) cell(sheet string, c *Cell) error {
	col, row := c.Col+1, c.Row+sheetHeaderRows+1

	if c.ColSpan > 1 || c.RowSpan > 1 {
		from, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		to, err := excelize.CoordinatesToCellName(col+c.ColSpan-1, row+c.RowSpan-1)
		if err != nil {
			return err
		}
		if err := wb.f.MergeCell(sheet, from, to); err != nil {
			return err
		}
	}

	cs := cellStyle{align: c.Align, vertical: c.Vertical, font: wb.colors.Text}
	var lines []string
	switch c.Kind {
	case CellEmpty:
		return nil
	case CellFiller:
		cs.fill = wb.colors.Filler
	case CellBody:
		cs.fill, cs.font, cs.border = wb.colors.Body, wb.colors.BodyText, true
		cs.bold = true
		for _, s := range c.Segments() {
			if s.Rule {
				lines = append(lines, "")
				continue
			}
			lines = append(lines, s.Text)
		}
	case CellNumber:
		cs.font = wb.colors.Number
		for _, s := range c.Segments() {
			lines = append(lines, s.Text)
		}
	default:
		segs := c.Segments()
		for _, s := range segs {
			lines = append(lines, s.Text)
		}
		// A cell holds one fill; dense tags take the color of the first group.
		if len(segs) > 0 {
			bg, fg := wb.colors.badgeColors(segs[0])
			cs.fill, cs.font = bg, fg
			cs.dashed = segs[0].Dashed
			cs.border = c.Kind != CellDescription
		}
	}
	return wb.set(sheet, col, row, strings.Join(lines, "\n"), cs)
}

func hexOr(color, fallback string) string {
	if h := colorutil.Hex(color); h != "" {
		return h
	}
	return fallback
}
