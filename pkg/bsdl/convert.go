package bsdl

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/OpenTraceLab/OpenTracePinout/pkg/chip"
	"github.com/OpenTraceLab/OpenTracePinout/pkg/idcode"
	"github.com/OpenTraceLab/OpenTracePinout/pkg/idcode/deviceinfo"
)

var (
	ErrNoEntity    = errors.New("bsdl: file has no entity")
	ErrGridPackage = errors.New("bsdl: pin map uses grid designators")
	ErrUnknownPort = errors.New("bsdl: pin map names an undeclared port")
	ErrPinConflict = errors.New("bsdl: package pin mapped twice")
	ErrVectorPins  = errors.New("bsdl: bit vector pin count differs from its width")
)

// Colors of the generated groups.
const (
	jtagColor     = "#ff8000"
	portModeColor = "#808080"
	cellColor     = "#40c000"
)

var portModes = []string{"in", "out", "inout", "buffer", "linkage"}

// ImportOptions controls ToChip.
type ImportOptions struct {
	// PinMap selects the PIN_MAP_STRING constant. Empty uses the
	// PHYSICAL_PIN_MAP default.
	PinMap string
	// Package overrides the inferred package shape.
	Package chip.Package
	// PinCount is the number of sequentially numbered package pins. Mapped
	// pins above it become additional pins. Zero uses the highest mapped pin.
	PinCount int
}

// ToChip builds a chip definition from the entity of file. The variant is
// the selected pin map. Numbered pins without a port become numbered gaps.
func ToChip(file *BSDLFile, opts ImportOptions) (chip.Definition, error) {
	if file == nil || file.Entity == nil {
		return chip.Definition{}, ErrNoEntity
	}
	e := file.Entity

	mapName, err := e.PinMapName(opts.PinMap)
	if err != nil {
		return chip.Definition{}, err
	}
	entries, err := e.PinMap(mapName)
	if err != nil {
		return chip.Definition{}, err
	}

	byPin, err := mapPins(e, entries)
	if err != nil {
		return chip.Definition{}, fmt.Errorf("%s: %w", mapName, err)
	}

	numbers := make([]int, 0, len(byPin))
	for n := range byPin {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)

	count := opts.PinCount
	if count <= 0 && len(numbers) > 0 {
		count = numbers[len(numbers)-1]
	}

	v := chip.Variant{
		Name:    chip.Names{mapName},
		Package: opts.Package,
		Pins:    make([]chip.PinSlot, count),
	}
	if v.Package == "" {
		v.Package = inferPackage(mapName)
	}
	for i := range v.Pins {
		if name, ok := byPin[i+1]; ok {
			v.Pins[i] = chip.Pin(name)
		} else {
			v.Pins[i] = chip.SkippedWithNumber
		}
	}
	for _, n := range numbers {
		if n > count {
			v.AdditionalPins = append(v.AdditionalPins, chip.AdditionalPin{
				Description: "Pin " + strconv.Itoa(n),
				Pin:         byPin[n],
			})
		}
	}

	def := chip.Definition{
		Name:     e.Name,
		Variants: []chip.Variant{v},
	}
	def.Manufacturer, def.Notes = identify(e)

	if g, ok := jtagGroup(e); ok {
		def.Data = append(def.Data, g)
	}
	if g, ok := portModeGroup(e); ok {
		def.Data = append(def.Data, g)
	}
	if g, ok := boundaryGroup(e); ok {
		def.Data = append(def.Data, g)
	}

	if err := def.Validate(); err != nil {
		return chip.Definition{}, err
	}
	return def, nil
}

// mapPins resolves the pin map into package pin number -> signal name.
func mapPins(e *Entity, entries []PinMapEntry) (map[int]string, error) {
	signals := make(map[string][]string)
	vectors := make(map[string]bool)
	for _, p := range e.Ports() {
		for _, name := range p.Names {
			key := strings.ToUpper(name)
			sub := &Port{Names: []string{name}, Mode: p.Mode, Type: p.Type}
			signals[key] = sub.Signals()
			vectors[key] = p.Type != nil && p.Type.Range != nil
		}
	}

	byPin := make(map[int]string)
	for _, entry := range entries {
		key := strings.ToUpper(entry.Port)
		sigs, ok := signals[key]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownPort, entry.Port)
		}
		if vectors[key] && len(sigs) != len(entry.Pins) {
			return nil, fmt.Errorf("%w: %s has %d bits and %d pins", ErrVectorPins, entry.Port, len(sigs), len(entry.Pins))
		}

		for i, pin := range entry.Pins {
			n, err := strconv.Atoi(pin)
			if err != nil || n < 1 {
				return nil, fmt.Errorf("%w: %s on pin %q", ErrGridPackage, entry.Port, pin)
			}
			name := sigs[0]
			if vectors[key] {
				name = sigs[i]
			}
			if prev, dup := byPin[n]; dup {
				return nil, fmt.Errorf("%w: pin %d is %s and %s", ErrPinConflict, n, prev, name)
			}
			byPin[n] = name
		}
	}
	return byPin, nil
}

func inferPackage(name string) chip.Package {
	upper := strings.ToUpper(name)
	for _, quad := range []string{"QFP", "QFN", "LCC", "QFJ"} {
		if strings.Contains(upper, quad) {
			return chip.PackageQuad
		}
	}
	return chip.PackageDual
}

// identify derives the manufacturer and the notes from the identification
// attributes.
func identify(e *Entity) (manufacturer, notes string) {
	info := e.GetDeviceInfo()
	var lines []string

	if info.IDCode != "" {
		value, mask, wild := ParseBinaryString(info.IDCode)
		if wild {
			lines = append(lines, fmt.Sprintf("IDCODE 0x%08X, mask 0x%08X", value, mask))
		} else {
			lines = append(lines, fmt.Sprintf("IDCODE 0x%08X", value))
		}

		// The manufacturer field is bits 11..1 and must be fully specified.
		if mask&0xFFE == 0xFFE {
			if m, ok := idcode.Parse(value).Manufacturer(); ok {
				manufacturer = m.Name
			}
			if dev, ok := deviceinfo.Lookup(value); ok {
				lines = append(lines, fmt.Sprintf("%s: %s", dev.Name, dev.Description))
			}
		}
	}
	if info.InstructionLength > 0 {
		lines = append(lines, fmt.Sprintf("Instruction register: %d bits", info.InstructionLength))
	}
	if instructions := e.GetInstructionOpcodes(); len(instructions) > 0 {
		names := make([]string, len(instructions))
		for i, in := range instructions {
			names[i] = in.Name
		}
		lines = append(lines, "Instructions: "+strings.Join(names, ", "))
	}
	if info.BoundaryLength > 0 {
		lines = append(lines, fmt.Sprintf("Boundary register: %d cells", info.BoundaryLength))
	}
	return manufacturer, strings.Join(lines, "\n")
}

func jtagGroup(e *Entity) (chip.Group, bool) {
	tap := e.GetTAPConfig()
	g := chip.Group{Name: "JTAG", Color: jtagColor}
	for _, sig := range []struct{ label, port string }{
		{"TCK", tap.ScanClock},
		{"TMS", tap.ScanMode},
		{"TDI", tap.ScanIn},
		{"TDO", tap.ScanOut},
		{"TRST", tap.ScanReset},
	} {
		if sig.port != "" {
			g.Functions = append(g.Functions, chip.Function{Label: sig.label, Pins: []string{sig.port}})
		}
	}
	return g, len(g.Functions) > 0
}

func portModeGroup(e *Entity) (chip.Group, bool) {
	byMode := make(map[string][]string)
	for _, p := range e.Ports() {
		mode := strings.ToLower(p.Mode)
		byMode[mode] = append(byMode[mode], p.Signals()...)
	}

	g := chip.Group{Name: "Port Mode", Color: portModeColor, DefaultHidden: true}
	for _, mode := range portModes {
		if pins := byMode[mode]; len(pins) > 0 {
			g.Functions = append(g.Functions, chip.Function{Label: mode, Pins: pins})
		}
	}
	return g, len(g.Functions) > 0
}

// boundaryGroup labels every port with the functions of its boundary cells.
// Files without a boundary register get no group.
func boundaryGroup(e *Entity) (chip.Group, bool) {
	cells, err := e.GetBoundaryCells()
	if err != nil {
		return chip.Group{}, false
	}

	g := chip.Group{Name: "Boundary Cells", Color: cellColor, DefaultHidden: true}
	index := make(map[string]int)
	seen := make(map[string]bool)
	for _, c := range cells {
		if c.Port == "*" || c.Port == "" {
			continue
		}
		i, ok := index[c.Function]
		if !ok {
			i = len(g.Functions)
			index[c.Function] = i
			g.Functions = append(g.Functions, chip.Function{Label: c.Function})
		}
		if key := c.Function + "\x00" + c.Port; !seen[key] {
			seen[key] = true
			g.Functions[i].Pins = append(g.Functions[i].Pins, c.Port)
		}
	}
	return g, len(g.Functions) > 0
}
