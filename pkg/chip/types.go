// Package chip defines the declarative chip description consumed by the pinout
// engine: chips, their package variants, the physical pin sequence and the
// named function groups that annotate pins.
package chip

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors returned by Validate.
var (
	ErrNoVariants     = errors.New("chip: definition has no variants")
	ErrDuplicateGroup = errors.New("chip: duplicate function group name")
	ErrEmptyPinName   = errors.New("chip: empty pin name")
	ErrEmptyName      = errors.New("chip: definition has no name")
)

// Package is the geometric arrangement of a variant's pins.
type Package string

const (
	// PackageDual has two parallel rows of pins (DIP, SOIC, TSSOP...).
	PackageDual Package = "dual"
	// PackageQuad has pins on four sides (QFP, QFN...).
	PackageQuad Package = "quad"
)

// Definition describes one chip and all of its package variants.
type Definition struct {
	Name         string              `yaml:"name"`
	Manufacturer string              `yaml:"manufacturer,omitempty"`
	Notes        string              `yaml:"notes,omitempty"`
	Variants     []Variant           `yaml:"variants"`
	Pins         map[string]PinStyle `yaml:"pins,omitempty"`
	Data         []Group             `yaml:"data"`
}

// PinStyle overrides the badge color of a pin name.
type PinStyle struct {
	Color string `yaml:"color,omitempty"`
}

// Variant is a specific physical package form of a chip.
type Variant struct {
	Name           Names           `yaml:"name,omitempty"`
	Package        Package         `yaml:"package,omitempty"`
	Pins           Slots           `yaml:"pins"`
	AdditionalPins []AdditionalPin `yaml:"additionalPins,omitempty"`
}

// AdditionalPin is a pin outside the sequential numbering, e.g. a thermal pad.
type AdditionalPin struct {
	Description string `yaml:"description"`
	Pin         string `yaml:"pin"`
}

// Names holds one or more display names. In YAML it is either a scalar or a
// sequence.
type Names []string

// Group is a named set of pin functions sharing one color ("ChipData").
type Group struct {
	Name          string    `yaml:"name"`
	Color         string    `yaml:"color,omitempty"`
	DefaultHidden bool      `yaml:"defaultHidden,omitempty"`
	Functions     Functions `yaml:"pins"`
}

// Function maps a tag label to the pins carrying it.
type Function struct {
	Label string
	Pins  []string
}

// Functions keeps the declaration order of a group's labels.
type Functions []Function

// Shape returns the package, defaulting to dual.
func (v *Variant) Shape() Package {
	if v.Package == "" {
		return PackageDual
	}
	return v.Package
}

// DisplayNames returns the variant names, falling back to the chip name.
func (v *Variant) DisplayNames(chipName string) []string {
	if len(v.Name) == 0 {
		return []string{chipName}
	}
	return v.Name
}

// Label is a single-line identifier for the variant, used in error messages.
func (v *Variant) Label(chipName string) string {
	names := v.DisplayNames(chipName)
	lines := make([]string, len(names))
	for i, n := range names {
		lines[i] = strings.ReplaceAll(n, "\n", " ")
	}
	return strings.Join(lines, " / ")
}

// Group returns the group with the given name.
func (d *Definition) Group(name string) (*Group, bool) {
	for i := range d.Data {
		if d.Data[i].Name == name {
			return &d.Data[i], true
		}
	}
	return nil, false
}

// OverrideColor returns the per-pin color override, if any.
func (d *Definition) OverrideColor(pin string) (string, bool) {
	style, ok := d.Pins[pin]
	if !ok || style.Color == "" {
		return "", false
	}
	return style.Color, true
}

// Validate checks the structural invariants of a definition. Pin count
// divisibility is a render-time concern and is not checked here.
func (d *Definition) Validate() error {
	if d.Name == "" {
		return ErrEmptyName
	}
	if len(d.Variants) == 0 {
		return fmt.Errorf("%s: %w", d.Name, ErrNoVariants)
	}

	seen := make(map[string]struct{}, len(d.Data))
	for _, g := range d.Data {
		if _, dup := seen[g.Name]; dup {
			return fmt.Errorf("%s: %w: %q", d.Name, ErrDuplicateGroup, g.Name)
		}
		seen[g.Name] = struct{}{}
	}

	for i := range d.Variants {
		v := &d.Variants[i]
		for idx, slot := range v.Pins {
			if slot.Kind() == SlotNamed && slot.Name() == "" {
				return fmt.Errorf("%s: variant %q slot %d: %w", d.Name, v.Label(d.Name), idx, ErrEmptyPinName)
			}
		}
		for _, extra := range v.AdditionalPins {
			if extra.Pin == "" {
				return fmt.Errorf("%s: variant %q additional pin %q: %w", d.Name, v.Label(d.Name), extra.Description, ErrEmptyPinName)
			}
		}
	}
	return nil
}
