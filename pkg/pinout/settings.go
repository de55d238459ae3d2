package pinout

import (
	"fmt"

	"github.com/OpenTraceLab/OpenTracePinout/pkg/chip"
)

const (
	DefaultFontSize = 12
)

// Settings is a read-only snapshot of the display preferences for one render
// pass.
type Settings struct {
	AlignData bool
	FontSize  int
	Visible   GroupSet
}

// DefaultSettings returns the default preferences with every group of def
// that is not hidden by default made visible.
func DefaultSettings(def *chip.Definition) Settings {
	return Settings{
		AlignData: true,
		FontSize:  DefaultFontSize,
		Visible:   DefaultVisible(def),
	}
}

// DefaultVisible returns the groups of def not marked defaultHidden.
func DefaultVisible(def *chip.Definition) GroupSet {
	s := make(GroupSet, len(def.Data))
	for _, g := range def.Data {
		if !g.DefaultHidden {
			s[g.Name] = struct{}{}
		}
	}
	return s
}

// Controller owns the global preferences and the visible groups of every
// chip. Layout code only sees the snapshots returned by Settings.
type Controller struct {
	alignData bool
	fontSize  int
	visible   map[string]GroupSet
}

func NewController() *Controller {
	return &Controller{
		alignData: true,
		fontSize:  DefaultFontSize,
		visible:   make(map[string]GroupSet),
	}
}

// Settings returns a copy of the current settings for def.
func (c *Controller) Settings(def *chip.Definition) Settings {
	return Settings{
		AlignData: c.alignData,
		FontSize:  c.fontSize,
		Visible:   c.groups(def).Clone(),
	}
}

func (c *Controller) groups(def *chip.Definition) GroupSet {
	s, ok := c.visible[def.Name]
	if !ok {
		s = DefaultVisible(def)
		c.visible[def.Name] = s
	}
	return s
}

// Show makes group visible for def.
func (c *Controller) Show(def *chip.Definition, group string) error {
	if _, ok := def.Group(group); !ok {
		return fmt.Errorf("%w: %q on %s", ErrUnknownGroup, group, def.Name)
	}
	c.groups(def)[group] = struct{}{}
	return nil
}

// Hide removes group from the visible set of def.
func (c *Controller) Hide(def *chip.Definition, group string) error {
	if _, ok := def.Group(group); !ok {
		return fmt.Errorf("%w: %q on %s", ErrUnknownGroup, group, def.Name)
	}
	delete(c.groups(def), group)
	return nil
}

// Toggle flips the visibility of group and reports whether it is now shown.
func (c *Controller) Toggle(def *chip.Definition, group string) (bool, error) {
	if c.groups(def).Has(group) {
		return false, c.Hide(def, group)
	}
	return true, c.Show(def, group)
}

func (c *Controller) SetAlign(on bool) { c.alignData = on }

func (c *Controller) SetFontSize(size int) error {
	if size <= 0 {
		return fmt.Errorf("pinout: font size must be positive, got %d", size)
	}
	c.fontSize = size
	return nil
}

// Reset drops every visibility change made for def.
func (c *Controller) Reset(def *chip.Definition) {
	delete(c.visible, def.Name)
}
