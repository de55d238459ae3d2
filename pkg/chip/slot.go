package chip

// SlotKind distinguishes the variants of a PinSlot.
type SlotKind uint8

const (
	// SlotNamed is a physical pin with a name.
	SlotNamed SlotKind = iota
	// SlotSkipped has no physical pin and consumes no display number.
	SlotSkipped
	// SlotSkippedWithNumber has no physical pin but still consumes a number.
	SlotSkippedWithNumber
)

func (k SlotKind) String() string {
	switch k {
	case SlotNamed:
		return "named"
	case SlotSkipped:
		return "skipped"
	case SlotSkippedWithNumber:
		return "skipped-with-number"
	default:
		return "unknown"
	}
}

// PinSlot is one position of a variant's physical pin sequence.
// The zero value is a named slot with an empty name and fails validation.
type PinSlot struct {
	kind SlotKind
	name string
}

var (
	// Skipped marks a package position without a pin and without a number.
	Skipped = PinSlot{kind: SlotSkipped}
	// SkippedWithNumber marks a position without a pin whose number is used up.
	SkippedWithNumber = PinSlot{kind: SlotSkippedWithNumber}
)

// Pin returns a named slot.
func Pin(name string) PinSlot {
	return PinSlot{kind: SlotNamed, name: name}
}

// Slots is the physical pin sequence of a variant.
type Slots []PinSlot

// Pins returns named slots for the given names.
func Pins(names ...string) []PinSlot {
	out := make([]PinSlot, len(names))
	for i, n := range names {
		out[i] = Pin(n)
	}
	return out
}

// Kind reports which variant the slot holds.
func (s PinSlot) Kind() SlotKind { return s.kind }

// Name is the pin name; empty for skipped slots.
func (s PinSlot) Name() string { return s.name }

// IsSkipped reports whether the slot has no physical pin.
func (s PinSlot) IsSkipped() bool { return s.kind != SlotNamed }

func (s PinSlot) String() string {
	if s.kind == SlotNamed {
		return s.name
	}
	return "<" + s.kind.String() + ">"
}
