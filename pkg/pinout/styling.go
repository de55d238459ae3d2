package pinout

import (
	"github.com/OpenTraceLab/OpenTracePinout/pkg/chip"
	"github.com/OpenTraceLab/OpenTracePinout/pkg/colorutil"
)

// Category is the semantic class of a pin name.
type Category int

const (
	CategoryDefault Category = iota
	CategoryCustom
	CategoryPower5V
	CategoryPower3V3
	CategoryCore
	CategoryGround
	CategoryCrystal
	CategoryReset
	CategoryTest
	CategoryNoConnect
)

var categoryNames = map[Category]string{
	CategoryDefault:   "default",
	CategoryCustom:    "custom",
	CategoryPower5V:   "power-5v",
	CategoryPower3V3:  "power-3v3",
	CategoryCore:      "core",
	CategoryGround:    "ground",
	CategoryCrystal:   "crystal",
	CategoryReset:     "reset",
	CategoryTest:      "test",
	CategoryNoConnect: "no-connect",
}

func (c Category) String() string {
	if s, ok := categoryNames[c]; ok {
		return s
	}
	return "unknown"
}

// BorderStyle of a pin name badge.
type BorderStyle int

const (
	BorderSolid BorderStyle = iota
	BorderDashed
)

// Style is the badge styling of a pin name. Background and Text are empty for
// CategoryDefault, leaving the presentation default in place.
type Style struct {
	Category   Category
	Background string
	Text       string
	Border     BorderStyle
}

// NoConnect is the literal pin name of an unconnected pin.
const NoConnect = "nc"

type nameClass struct {
	category   Category
	background string
	aliases    []string
}

// Matched in order; aliases are case sensitive.
var nameClasses = []nameClass{
	{CategoryPower5V, "red", []string{"VCC", "VDD", "V5", "5V", "5V0"}},
	{CategoryPower3V3, "#d00000", []string{"V33", "3V3", "VDDIO"}},
	{CategoryCore, "#700000", []string{"V18", "1V8", "V11", "1V1", "Vcore"}},
	{CategoryGround, "black", []string{"GND", "VSS", "AGND"}},
	{CategoryCrystal, "#ff8000", []string{"XI", "XO", "XI*", "XO*"}},
	{CategoryReset, "#40c000", []string{"RST", "RSTn", "RES", "RESn", "RUN"}},
	{CategoryTest, "#404040", []string{"TST"}},
}

// ClassifyName resolves the badge style of a pin name. A per-pin color in def
// wins over the built-in alias tables; unknown names get the default style.
func ClassifyName(name string, def *chip.Definition) Style {
	if def != nil {
		if c, ok := def.OverrideColor(name); ok {
			return filled(CategoryCustom, c)
		}
	}

	for _, class := range nameClasses {
		for _, alias := range class.aliases {
			if alias == name {
				return filled(class.category, class.background)
			}
		}
	}

	if name == NoConnect {
		s := filled(CategoryNoConnect, "white")
		s.Border = BorderDashed
		return s
	}
	return Style{Category: CategoryDefault}
}

func filled(c Category, background string) Style {
	return Style{
		Category:   c,
		Background: background,
		Text:       colorutil.Contrast(background),
	}
}
