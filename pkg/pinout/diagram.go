package pinout

import (
	"fmt"
	"strings"

	"github.com/OpenTraceLab/OpenTracePinout/pkg/chip"
	"github.com/OpenTraceLab/OpenTracePinout/pkg/colorutil"
)

// LegendEntry is one function group in the legend.
type LegendEntry struct {
	Name          string
	Color         string
	ContrastColor string
	Visible       bool
}

// VariantResult holds either the layout of a variant or the configuration
// error that stopped it.
type VariantResult struct {
	Label  string
	Layout *Layout
	Err    error
}

// Diagram is everything shown for one chip.
type Diagram struct {
	Chip     string
	Title    string
	ShowName bool
	Notes    []string
	Legend   []LegendEntry
	Settings Settings
	Variants []VariantResult
}

// Failed returns the errors of all variants that could not be arranged.
func (d *Diagram) Failed() []error {
	var errs []error
	for _, v := range d.Variants {
		if v.Err != nil {
			errs = append(errs, v.Err)
		}
	}
	return errs
}

// Build arranges every variant of def. A broken variant is recorded in its
// VariantResult and does not stop the others.
func Build(def *chip.Definition, s Settings, showName bool) *Diagram {
	d := &Diagram{
		Chip:     def.Name,
		Title:    Title(def),
		ShowName: showName,
		Settings: s,
	}
	if def.Notes != "" {
		d.Notes = strings.Split(strings.TrimRight(def.Notes, "\n"), "\n")
	}

	for _, g := range def.Data {
		d.Legend = append(d.Legend, LegendEntry{
			Name:          g.Name,
			Color:         g.Color,
			ContrastColor: colorutil.Contrast(g.Color),
			Visible:       s.Visible.Has(g.Name),
		})
	}

	for i := range def.Variants {
		v := &def.Variants[i]
		l, err := Arrange(def, v, s)
		d.Variants = append(d.Variants, VariantResult{Label: v.Label(def.Name), Layout: l, Err: err})
	}
	return d
}

// Title is the heading of a chip, e.g. "Texas Instruments 74HC595 (2 package variants)".
func Title(def *chip.Definition) string {
	noun := "variants"
	if len(def.Variants) == 1 {
		noun = "variant"
	}
	head := strings.TrimSpace(def.Manufacturer + " " + def.Name)
	return fmt.Sprintf("%s (%d package %s)", head, len(def.Variants), noun)
}
