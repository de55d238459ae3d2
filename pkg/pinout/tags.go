package pinout

import (
	"sort"

	"github.com/OpenTraceLab/OpenTracePinout/pkg/chip"
	"github.com/OpenTraceLab/OpenTracePinout/pkg/colorutil"
)

// Order is the traversal order over a chip's function groups.
type Order int

const (
	// Forward walks groups in declaration order.
	Forward Order = iota
	// Reverse walks groups last to first, mirroring the tag columns for pins
	// on the opposite side of the package.
	Reverse
)

func (o Order) String() string {
	if o == Reverse {
		return "reverse"
	}
	return "forward"
}

// GroupSet is a set of function group names.
type GroupSet map[string]struct{}

// NewGroupSet returns a set holding names.
func NewGroupSet(names ...string) GroupSet {
	s := make(GroupSet, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

func (s GroupSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

func (s GroupSet) Clone() GroupSet {
	out := make(GroupSet, len(s))
	for n := range s {
		out[n] = struct{}{}
	}
	return out
}

// Names returns the members sorted.
func (s GroupSet) Names() []string {
	out := make([]string, 0, len(s))
	for n := range s {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Tag is the set of labels one group assigns to one pin.
type Tag struct {
	Group         string
	Values        []string
	Color         string
	ContrastColor string
}

// VisibleCount is the number of groups shown under visible.
func VisibleCount(groups []chip.Group, visible GroupSet) int {
	n := 0
	for _, g := range groups {
		if visible.Has(g.Name) {
			n++
		}
	}
	return n
}

// ResolveTags returns one slot per visible group, walked in order. A slot is
// nil when the group assigns nothing to pinName. Labels within a slot keep
// their declaration order; a pin listed under several labels of the same group
// collects all of them.
func ResolveTags(pinName string, groups []chip.Group, visible GroupSet, order Order) []*Tag {
	tags := make([]*Tag, 0, len(groups))
	for i := range groups {
		g := &groups[i]
		if order == Reverse {
			g = &groups[len(groups)-1-i]
		}
		if !visible.Has(g.Name) {
			continue
		}
		tags = append(tags, matchGroup(pinName, g))
	}
	return tags
}

func matchGroup(pinName string, g *chip.Group) *Tag {
	var values []string
	for _, fn := range g.Functions {
		for _, p := range fn.Pins {
			if p == pinName {
				values = append(values, fn.Label)
			}
		}
	}
	if len(values) == 0 {
		return nil
	}

	background := g.Color
	if background == "" {
		background = colorutil.DefaultBackground
	}
	return &Tag{
		Group:         g.Name,
		Values:        values,
		Color:         background,
		ContrastColor: colorutil.Contrast(background),
	}
}
