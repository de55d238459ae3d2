package pinout

import (
	"fmt"
	"strings"

	"github.com/OpenTraceLab/OpenTracePinout/pkg/chip"
)

// Band is one of the three rows of a quad package's top or bottom side.
type Band int

const (
	BandNumber Band = iota
	BandName
	BandTags
)

func (b Band) String() string {
	switch b {
	case BandNumber:
		return "number"
	case BandName:
		return "name"
	case BandTags:
		return "tags"
	}
	return "unknown"
}

// Row pairs the pins on the left and right edge of the body.
type Row struct {
	Left, Right Pin
}

// VerticalSide is the top or bottom edge of a quad package. Bands lists the
// band rows in visual top-to-bottom order.
type VerticalSide struct {
	Side  Side
	Pins  []Pin
	Bands []Band
}

// NameBlock is one variant name: a title line plus smaller detail lines.
type NameBlock struct {
	Title   string
	Details []string
}

// Body is the package body and its position on the layout grid.
type Body struct {
	Manufacturer string
	Names        []NameBlock
	Row, Col     int
	RowSpan      int
	ColSpan      int
}

// ExtraPin is a pin outside the sequential numbering.
type ExtraPin struct {
	Description string
	Pin         Pin
}

// Layout is the arranged diagram of one variant.
//
// The grid is made of a tag block, a name column and a number column on each
// side of the body. In aligned mode the tag block has one column per visible
// group, otherwise a single column. Additional pins are extra rows below
// GridRows.
type Layout struct {
	Chip    string
	Variant string
	Package chip.Package
	Aligned bool
	Groups  int

	Rows       []Row
	Top        *VerticalSide
	Bottom     *VerticalSide
	Body       Body
	Additional []ExtraPin

	GridRows int
	GridCols int
}

// TagBlockWidth is the number of grid columns of one side's tag block.
func (l *Layout) TagBlockWidth() int {
	if l.Aligned {
		return l.Groups
	}
	return 1
}

// CheckVariant reports configuration errors of v as a *VariantError.
func CheckVariant(def *chip.Definition, v *chip.Variant) error {
	n := len(v.Pins)
	var err error
	switch v.Shape() {
	case chip.PackageDual:
		if n%2 != 0 {
			err = fmt.Errorf("%w: a dual package needs an even number of pins, got %d", ErrPinCount, n)
		}
	case chip.PackageQuad:
		if n%4 != 0 {
			err = fmt.Errorf("%w: a quad package needs a number of pins divisible by 4, got %d", ErrPinCount, n)
		}
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownPackage, v.Package)
	}
	if err == nil && n == 0 {
		err = fmt.Errorf("%w: the variant has no pins", ErrPinCount)
	}
	if err != nil {
		return &VariantError{Chip: def.Name, Variant: v.Label(def.Name), Err: err}
	}
	return nil
}

// Arrange lays out one variant of def under the given settings.
func Arrange(def *chip.Definition, v *chip.Variant, s Settings) (*Layout, error) {
	if err := CheckVariant(def, v); err != nil {
		return nil, err
	}

	l := &Layout{
		Chip:    def.Name,
		Variant: v.Label(def.Name),
		Package: v.Shape(),
		Groups:  VisibleCount(def.Data, s.Visible),
	}
	r := resolver{def: def, variant: v, visible: s.Visible, numbers: DisplayNumbers(v.Pins)}

	switch l.Package {
	case chip.PackageDual:
		l.Aligned = s.AlignData
		arrangeDual(l, r)
	case chip.PackageQuad:
		arrangeQuad(l, r)
	}

	l.Body.Manufacturer = def.Manufacturer
	l.Body.Names = nameBlocks(v.DisplayNames(def.Name))

	for _, extra := range v.AdditionalPins {
		pin := ResolvePin(def, chip.Pin(extra.Pin), NoNumber, s.Visible, Forward)
		pin.Slot = -1
		l.Additional = append(l.Additional, ExtraPin{Description: extra.Description, Pin: pin})
	}
	return l, nil
}

type resolver struct {
	def     *chip.Definition
	variant *chip.Variant
	visible GroupSet
	numbers []int
}

func (r resolver) pin(slot int, order Order) Pin {
	p := ResolvePin(r.def, r.variant.Pins[slot], r.numbers[slot], r.visible, order)
	p.Slot = slot
	return p
}

// arrangeDual reads the first half of the pins down the left edge and the
// second half up the right edge.
func arrangeDual(l *Layout, r resolver) {
	n := len(r.variant.Pins)
	rows := n / 2

	l.Rows = make([]Row, rows)
	for i := 0; i < rows; i++ {
		l.Rows[i] = Row{
			Left:  r.pin(i, Forward),
			Right: r.pin(n-1-i, Reverse),
		}
	}

	block := l.TagBlockWidth()
	l.Body.Row, l.Body.Col = 0, block+2
	l.Body.RowSpan, l.Body.ColSpan = rows, 1
	l.GridRows = rows
	l.GridCols = 2*(block+2) + 1
}

// arrangeQuad walks the pins counter-clockwise: left edge top to bottom,
// bottom edge left to right, right edge bottom to top, top edge right to left.
func arrangeQuad(l *Layout, r resolver) {
	perSide := len(r.variant.Pins) / 4

	l.Rows = make([]Row, perSide)
	for i := 0; i < perSide; i++ {
		l.Rows[i] = Row{
			Left:  r.pin(i, Forward),
			Right: r.pin(perSide-1-i+perSide*2, Reverse),
		}
	}

	top := &VerticalSide{Side: SideTop, Pins: make([]Pin, perSide)}
	bottom := &VerticalSide{Side: SideBottom, Pins: make([]Pin, perSide)}
	for i := 0; i < perSide; i++ {
		top.Pins[i] = r.pin(perSide*4-1-i, Forward)
		bottom.Pins[i] = r.pin(perSide+i, Reverse)
	}
	bottom.Bands = []Band{BandNumber, BandName, BandTags}
	top.Bands = []Band{BandTags, BandName, BandNumber}
	l.Top, l.Bottom = top, bottom

	const block = 1
	l.Body.Row, l.Body.Col = len(top.Bands), block+2
	l.Body.RowSpan, l.Body.ColSpan = perSide, perSide
	l.GridRows = len(top.Bands) + perSide + len(bottom.Bands)
	l.GridCols = 2*(block+2) + perSide
}

// nameBlocks splits every name at newlines into a title and detail lines.
func nameBlocks(names []string) []NameBlock {
	blocks := make([]NameBlock, 0, len(names))
	for _, n := range names {
		lines := strings.Split(n, "\n")
		blocks = append(blocks, NameBlock{Title: lines[0], Details: lines[1:]})
	}
	return blocks
}
