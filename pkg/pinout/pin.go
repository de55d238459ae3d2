package pinout

import "github.com/OpenTraceLab/OpenTracePinout/pkg/chip"

// PinKind tells a real pin from an empty package position.
type PinKind int

const (
	KindNormal PinKind = iota
	KindSkipped
)

// Side of the package a pin sits on.
type Side int

const (
	SideLeft Side = iota
	SideRight
	SideTop
	SideBottom
)

func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	case SideTop:
		return "top"
	case SideBottom:
		return "bottom"
	}
	return "unknown"
}

// Vertical reports whether pins on this side are drawn as columns.
func (s Side) Vertical() bool { return s == SideTop || s == SideBottom }

// Pin is a resolved pin of one render pass. It is never modified after
// resolution.
type Pin struct {
	Kind PinKind
	// Slot is the index into the variant's pin sequence, -1 for additional pins.
	Slot int
	// Number is the display number, NoNumber when none is shown.
	Number int
	Name   string
	Style  Style
	// Tags has one entry per visible group; nil entries mean no function.
	Tags []*Tag
	// NumFunctions is the visible group count, set for skipped pins only.
	NumFunctions int
}

func (p Pin) IsSkipped() bool { return p.Kind == KindSkipped }
func (p Pin) HasNumber() bool { return p.Number != NoNumber }

// ResolvePin resolves one slot: name style and function tags for a named pin,
// or a skipped marker carrying the number of visible groups.
func ResolvePin(def *chip.Definition, slot chip.PinSlot, number int, visible GroupSet, order Order) Pin {
	if slot.IsSkipped() {
		return Pin{
			Kind:         KindSkipped,
			Number:       NoNumber,
			NumFunctions: VisibleCount(def.Data, visible),
		}
	}
	return Pin{
		Kind:   KindNormal,
		Number: number,
		Name:   slot.Name(),
		Style:  ClassifyName(slot.Name(), def),
		Tags:   ResolveTags(slot.Name(), def.Data, visible, order),
	}
}

// TagCell is one column of a pin's tag row in aligned mode.
type TagCell struct {
	Tag *Tag
	// Filler marks an empty column between the pin and its outermost tag,
	// drawn as a connector.
	Filler bool
}

// TagCells lays out p's tags as aligned columns for a pin on side. On the
// right every empty column before the last tag is a filler, on the left every
// empty column after the first tag.
func (p Pin) TagCells(side Side) []TagCell {
	if p.IsSkipped() {
		return nil
	}

	first, last := len(p.Tags), 0
	for i, t := range p.Tags {
		if t == nil {
			continue
		}
		if i < first {
			first = i
		}
		last = i
	}

	cells := make([]TagCell, len(p.Tags))
	for i, t := range p.Tags {
		cells[i].Tag = t
		if t != nil {
			continue
		}
		switch side {
		case SideRight:
			cells[i].Filler = i < last
		case SideLeft:
			cells[i].Filler = i >= first
		}
	}
	return cells
}

// Present returns the non-nil tags in order.
func (p Pin) Present() []*Tag {
	out := make([]*Tag, 0, len(p.Tags))
	for _, t := range p.Tags {
		if t != nil {
			out = append(out, t)
		}
	}
	return out
}
