package pinout

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/OpenTraceLab/OpenTracePinout/pkg/chip"
)

func testChip() *chip.Definition {
	return &chip.Definition{
		Name:         "T16",
		Manufacturer: "ACME",
		Pins:         map[string]chip.PinStyle{"P5": {Color: "#ff8000"}},
		Variants: []chip.Variant{{
			Name: chip.Names{"DIP-16"},
			Pins: chip.Pins("P1", "P2", "P3", "P4", "P5", "P6", "P7", "GND",
				"P9", "P10", "P11", "P12", "P13", "P14", "P15", "VCC"),
			AdditionalPins: []chip.AdditionalPin{{Description: "Pad", Pin: "GND"}},
		}},
		Data: []chip.Group{
			{Name: "ADC", Color: "#95B600", Functions: chip.Functions{
				{Label: "A0", Pins: []string{"P1"}},
				{Label: "A1", Pins: []string{"P2", "P16"}},
			}},
			{Name: "UART", Color: "blue", Functions: chip.Functions{
				{Label: "TX", Pins: []string{"P1"}},
				{Label: "RX", Pins: []string{"P15"}},
				{Label: "CTS", Pins: []string{"P1"}},
			}},
			{Name: "Timers", DefaultHidden: true, Functions: chip.Functions{
				{Label: "T0", Pins: []string{"P2"}},
			}},
		},
	}
}

func TestDisplayNumbers(t *testing.T) {
	tests := []struct {
		name string
		pins []chip.PinSlot
		want []int
	}{
		{"plain", chip.Pins("A", "B", "C"), []int{1, 2, 3}},
		{"skipped", []chip.PinSlot{chip.Pin("A"), chip.Skipped, chip.Pin("C"), chip.Pin("D")}, []int{1, NoNumber, 2, 3}},
		{"skipped with number", []chip.PinSlot{chip.Pin("A"), chip.SkippedWithNumber, chip.Pin("C"), chip.Pin("D")}, []int{1, NoNumber, 3, 4}},
		{"empty", nil, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DisplayNumbers(tt.pins)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DisplayNumbers() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolveTagsOneSlotPerVisibleGroup(t *testing.T) {
	def := testChip()

	for _, visible := range []GroupSet{
		NewGroupSet(),
		NewGroupSet("ADC"),
		NewGroupSet("ADC", "UART"),
		NewGroupSet("ADC", "UART", "Timers"),
	} {
		for _, name := range []string{"P1", "P9", "VCC"} {
			tags := ResolveTags(name, def.Data, visible, Forward)
			if len(tags) != len(visible) {
				t.Errorf("%s with %v: expected %d slots, got %d", name, visible.Names(), len(visible), len(tags))
			}
		}
	}
}

func TestResolveTagsCollectsLabels(t *testing.T) {
	def := testChip()
	tags := ResolveTags("P1", def.Data, NewGroupSet("ADC", "UART"), Forward)

	if tags[0] == nil || !reflect.DeepEqual(tags[0].Values, []string{"A0"}) {
		t.Fatalf("Unexpected ADC tag: %+v", tags[0])
	}
	if tags[1] == nil || !reflect.DeepEqual(tags[1].Values, []string{"TX", "CTS"}) {
		t.Fatalf("Expected TX and CTS in declaration order, got %+v", tags[1])
	}
	if tags[1].Color != "blue" || tags[1].ContrastColor != "white" {
		t.Errorf("Unexpected UART colors: %q %q", tags[1].Color, tags[1].ContrastColor)
	}

	none := ResolveTags("P9", def.Data, NewGroupSet("ADC", "UART"), Forward)
	if none[0] != nil || none[1] != nil {
		t.Errorf("Expected empty slots for P9, got %+v", none)
	}
}

func TestResolveTagsDefaultColor(t *testing.T) {
	def := testChip()
	tags := ResolveTags("P2", def.Data, NewGroupSet("Timers"), Forward)
	if tags[0] == nil {
		t.Fatal("Expected a Timers tag")
	}
	if tags[0].Color != "white" || tags[0].ContrastColor != "black" {
		t.Errorf("Expected white/black, got %q/%q", tags[0].Color, tags[0].ContrastColor)
	}
}

func TestResolveTagsOrderMirrors(t *testing.T) {
	def := testChip()
	visible := NewGroupSet("ADC", "UART", "Timers")

	fwd := ResolveTags("P2", def.Data, visible, Forward)
	rev := ResolveTags("P2", def.Data, visible, Reverse)
	if len(fwd) != len(rev) {
		t.Fatalf("Slot count differs: %d vs %d", len(fwd), len(rev))
	}
	for i := range fwd {
		if !reflect.DeepEqual(fwd[i], rev[len(rev)-1-i]) {
			t.Errorf("slot %d is not mirrored", i)
		}
	}
	if fwd[0] == nil || fwd[0].Group != "ADC" {
		t.Errorf("Expected ADC first in forward order, got %+v", fwd[0])
	}
}

func TestClassifyName(t *testing.T) {
	def := testChip()

	tests := []struct {
		name       string
		category   Category
		background string
		text       string
	}{
		{"VCC", CategoryPower5V, "red", "white"},
		{"5V0", CategoryPower5V, "red", "white"},
		{"3V3", CategoryPower3V3, "#d00000", "white"},
		{"Vcore", CategoryCore, "#700000", "white"},
		{"GND", CategoryGround, "black", "white"},
		{"XI*", CategoryCrystal, "#ff8000", "black"},
		{"RSTn", CategoryReset, "#40c000", "black"},
		{"TST", CategoryTest, "#404040", "white"},
		{"nc", CategoryNoConnect, "white", "black"},
		{"P5", CategoryCustom, "#ff8000", "black"},
		{"gnd", CategoryDefault, "", ""},
		{"NC", CategoryDefault, "", ""},
		{"P9", CategoryDefault, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := ClassifyName(tt.name, def)
			if s.Category != tt.category || s.Background != tt.background || s.Text != tt.text {
				t.Errorf("ClassifyName(%q) = %+v, want %s %q %q", tt.name, s, tt.category, tt.background, tt.text)
			}
		})
	}

	if ClassifyName("nc", def).Border != BorderDashed {
		t.Error("Expected dashed border for nc")
	}
}

func TestClassifyOverrideWins(t *testing.T) {
	def := testChip()
	def.Pins["VCC"] = chip.PinStyle{Color: "white"}

	s := ClassifyName("VCC", def)
	if s.Category != CategoryCustom || s.Background != "white" || s.Text != "black" {
		t.Errorf("Expected override to win, got %+v", s)
	}
}

func TestArrangeDual(t *testing.T) {
	def := testChip()
	l, err := Arrange(def, &def.Variants[0], DefaultSettings(def))
	if err != nil {
		t.Fatalf("Arrange failed: %v", err)
	}

	if len(l.Rows) != 8 {
		t.Fatalf("Expected 8 rows, got %d", len(l.Rows))
	}
	if l.Rows[0].Left.Slot != 0 || l.Rows[0].Right.Slot != 15 {
		t.Errorf("Row 0 = (%d, %d), want (0, 15)", l.Rows[0].Left.Slot, l.Rows[0].Right.Slot)
	}
	if l.Rows[7].Left.Slot != 7 || l.Rows[7].Right.Slot != 8 {
		t.Errorf("Row 7 = (%d, %d), want (7, 8)", l.Rows[7].Left.Slot, l.Rows[7].Right.Slot)
	}
	if l.Rows[0].Right.Name != "VCC" || l.Rows[0].Right.Number != 16 {
		t.Errorf("Unexpected right pin of row 0: %+v", l.Rows[0].Right)
	}

	if !l.Aligned || l.Groups != 2 || l.TagBlockWidth() != 2 {
		t.Errorf("Unexpected alignment: aligned=%v groups=%d", l.Aligned, l.Groups)
	}
	if l.Body.Row != 0 || l.Body.Col != 4 || l.Body.RowSpan != 8 || l.Body.ColSpan != 1 {
		t.Errorf("Unexpected body: %+v", l.Body)
	}
	if l.GridRows != 8 || l.GridCols != 9 {
		t.Errorf("Unexpected grid %dx%d", l.GridRows, l.GridCols)
	}
	if l.Body.Manufacturer != "ACME" || len(l.Body.Names) != 1 || l.Body.Names[0].Title != "DIP-16" {
		t.Errorf("Unexpected body text: %+v", l.Body)
	}

	// The right side mirrors the tag order.
	left := l.Rows[0].Left.Tags
	if left[0] == nil || left[0].Group != "ADC" {
		t.Errorf("Expected ADC first on the left, got %+v", left[0])
	}
	right := l.Rows[1].Right.Tags // P15
	if right[0] == nil || right[0].Group != "UART" {
		t.Errorf("Expected UART first on the right, got %+v", right[0])
	}

	if len(l.Additional) != 1 {
		t.Fatalf("Expected 1 additional pin, got %d", len(l.Additional))
	}
	pad := l.Additional[0]
	if pad.Description != "Pad" || pad.Pin.HasNumber() || pad.Pin.Slot != -1 || pad.Pin.Style.Category != CategoryGround {
		t.Errorf("Unexpected additional pin: %+v", pad)
	}
}

func TestArrangeDualDense(t *testing.T) {
	def := testChip()
	s := DefaultSettings(def)
	s.AlignData = false

	l, err := Arrange(def, &def.Variants[0], s)
	if err != nil {
		t.Fatalf("Arrange failed: %v", err)
	}
	if l.Aligned || l.TagBlockWidth() != 1 || l.GridCols != 7 || l.Body.Col != 3 {
		t.Errorf("Unexpected dense layout: aligned=%v cols=%d body=%+v", l.Aligned, l.GridCols, l.Body)
	}
}

func TestArrangeQuad(t *testing.T) {
	names := make([]string, 16)
	for i := range names {
		names[i] = "Q" + string(rune('A'+i))
	}
	def := &chip.Definition{
		Name:     "Q16",
		Variants: []chip.Variant{{Package: chip.PackageQuad, Pins: chip.Pins(names...)}},
	}

	l, err := Arrange(def, &def.Variants[0], DefaultSettings(def))
	if err != nil {
		t.Fatalf("Arrange failed: %v", err)
	}
	if l.Aligned {
		t.Error("Quad layouts are never aligned")
	}

	slots := func(pins []Pin) []int {
		out := make([]int, len(pins))
		for i, p := range pins {
			out[i] = p.Slot
		}
		return out
	}
	var left, right []int
	for _, r := range l.Rows {
		left = append(left, r.Left.Slot)
		right = append(right, r.Right.Slot)
	}

	if want := []int{0, 1, 2, 3}; !reflect.DeepEqual(left, want) {
		t.Errorf("left = %v, want %v", left, want)
	}
	if want := []int{11, 10, 9, 8}; !reflect.DeepEqual(right, want) {
		t.Errorf("right = %v, want %v", right, want)
	}
	if want := []int{4, 5, 6, 7}; !reflect.DeepEqual(slots(l.Bottom.Pins), want) {
		t.Errorf("bottom = %v, want %v", slots(l.Bottom.Pins), want)
	}
	if want := []int{15, 14, 13, 12}; !reflect.DeepEqual(slots(l.Top.Pins), want) {
		t.Errorf("top = %v, want %v", slots(l.Top.Pins), want)
	}

	if want := []Band{BandNumber, BandName, BandTags}; !reflect.DeepEqual(l.Bottom.Bands, want) {
		t.Errorf("bottom bands = %v", l.Bottom.Bands)
	}
	if want := []Band{BandTags, BandName, BandNumber}; !reflect.DeepEqual(l.Top.Bands, want) {
		t.Errorf("top bands = %v", l.Top.Bands)
	}

	if l.Body.Row != 3 || l.Body.Col != 3 || l.Body.RowSpan != 4 || l.Body.ColSpan != 4 {
		t.Errorf("Unexpected body: %+v", l.Body)
	}
	if l.GridRows != 10 || l.GridCols != 10 {
		t.Errorf("Unexpected grid %dx%d", l.GridRows, l.GridCols)
	}
}

func TestArrangeErrors(t *testing.T) {
	tests := []struct {
		name    string
		variant chip.Variant
		want    error
	}{
		{"odd dual", chip.Variant{Name: chip.Names{"BAD-DIP"}, Pins: chip.Pins("A", "B", "C")}, ErrPinCount},
		{"empty dual", chip.Variant{Name: chip.Names{"EMPTY"}}, ErrPinCount},
		{"empty quad", chip.Variant{Name: chip.Names{"EMPTY-QFN"}, Package: chip.PackageQuad}, ErrPinCount},
		{"quad not divisible", chip.Variant{Name: chip.Names{"BAD-QFN"}, Package: chip.PackageQuad, Pins: chip.Pins("A", "B", "C", "D", "E", "F")}, ErrPinCount},
		{"unknown package", chip.Variant{Name: chip.Names{"BAD-BGA"}, Package: "grid", Pins: chip.Pins("A", "B")}, ErrUnknownPackage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := &chip.Definition{Name: "X", Variants: []chip.Variant{tt.variant}}
			_, err := Arrange(def, &def.Variants[0], DefaultSettings(def))
			if !errors.Is(err, tt.want) {
				t.Fatalf("Expected %v, got %v", tt.want, err)
			}
			var verr *VariantError
			if !errors.As(err, &verr) {
				t.Fatalf("Expected *VariantError, got %T", err)
			}
			if verr.Variant != tt.variant.Name[0] {
				t.Errorf("Expected variant %q, got %q", tt.variant.Name[0], verr.Variant)
			}
			if !strings.Contains(err.Error(), tt.variant.Name[0]) {
				t.Errorf("Error does not name the variant: %v", err)
			}
		})
	}
}

func TestSkippedPins(t *testing.T) {
	def := &chip.Definition{
		Name: "S",
		Variants: []chip.Variant{{Pins: []chip.PinSlot{
			chip.Pin("A"), chip.Skipped, chip.SkippedWithNumber, chip.Pin("D"),
		}}},
		Data: []chip.Group{{Name: "G", Functions: chip.Functions{{Label: "x", Pins: []string{"A"}}}}},
	}

	l, err := Arrange(def, &def.Variants[0], DefaultSettings(def))
	if err != nil {
		t.Fatalf("Arrange failed: %v", err)
	}
	skipped := l.Rows[1].Left
	if !skipped.IsSkipped() || skipped.NumFunctions != 1 || skipped.HasNumber() {
		t.Errorf("Unexpected skipped pin: %+v", skipped)
	}
	if l.Rows[0].Right.Number != 3 {
		t.Errorf("Expected D to be pin 3, got %d", l.Rows[0].Right.Number)
	}
	if skipped.TagCells(SideLeft) != nil {
		t.Error("Skipped pins have no tag cells")
	}
}

func TestTagCells(t *testing.T) {
	tag := &Tag{Group: "g"}
	p := Pin{Tags: []*Tag{nil, tag, nil, tag, nil}}

	fillers := func(cells []TagCell) []bool {
		out := make([]bool, len(cells))
		for i, c := range cells {
			out[i] = c.Filler
		}
		return out
	}

	if got, want := fillers(p.TagCells(SideRight)), []bool{true, false, true, false, false}; !reflect.DeepEqual(got, want) {
		t.Errorf("right fillers = %v, want %v", got, want)
	}
	if got, want := fillers(p.TagCells(SideLeft)), []bool{false, false, true, false, true}; !reflect.DeepEqual(got, want) {
		t.Errorf("left fillers = %v, want %v", got, want)
	}

	empty := Pin{Tags: []*Tag{nil, nil}}
	if got := fillers(empty.TagCells(SideLeft)); !reflect.DeepEqual(got, []bool{false, false}) {
		t.Errorf("Expected no fillers without tags, got %v", got)
	}
	if got := len(p.Present()); got != 2 {
		t.Errorf("Expected 2 present tags, got %d", got)
	}
}

func TestHideShowRoundTrip(t *testing.T) {
	def := testChip()
	c := NewController()

	before, err := Arrange(def, &def.Variants[0], c.Settings(def))
	if err != nil {
		t.Fatalf("Arrange failed: %v", err)
	}

	if err := c.Hide(def, "UART"); err != nil {
		t.Fatalf("Hide failed: %v", err)
	}
	hidden, _ := Arrange(def, &def.Variants[0], c.Settings(def))
	if hidden.Groups != 1 {
		t.Errorf("Expected 1 visible group, got %d", hidden.Groups)
	}
	if err := c.Show(def, "UART"); err != nil {
		t.Fatalf("Show failed: %v", err)
	}

	after, _ := Arrange(def, &def.Variants[0], c.Settings(def))
	if !reflect.DeepEqual(before, after) {
		t.Error("Hide and show changed the layout")
	}
}

func TestController(t *testing.T) {
	def := testChip()
	c := NewController()

	s := c.Settings(def)
	if !s.AlignData || s.FontSize != DefaultFontSize {
		t.Errorf("Unexpected defaults: %+v", s)
	}
	if s.Visible.Has("Timers") || !s.Visible.Has("ADC") {
		t.Errorf("Unexpected default visibility: %v", s.Visible.Names())
	}

	// Snapshots are copies.
	s.Visible["Timers"] = struct{}{}
	if c.Settings(def).Visible.Has("Timers") {
		t.Error("Mutating a snapshot changed the controller")
	}

	shown, err := c.Toggle(def, "Timers")
	if err != nil || !shown {
		t.Fatalf("Toggle = %v, %v", shown, err)
	}
	if !c.Settings(def).Visible.Has("Timers") {
		t.Error("Expected Timers visible after toggle")
	}

	if err := c.Show(def, "Nope"); !errors.Is(err, ErrUnknownGroup) {
		t.Errorf("Expected ErrUnknownGroup, got %v", err)
	}
	if err := c.SetFontSize(0); err == nil {
		t.Error("Expected error for font size 0")
	}
	if err := c.SetFontSize(16); err != nil || c.Settings(def).FontSize != 16 {
		t.Errorf("SetFontSize failed: %v", err)
	}
	c.SetAlign(false)
	if c.Settings(def).AlignData {
		t.Error("Expected alignment off")
	}

	c.Reset(def)
	if c.Settings(def).Visible.Has("Timers") {
		t.Error("Reset kept Timers visible")
	}
}

func TestBuildIsolatesVariants(t *testing.T) {
	def := testChip()
	def.Variants = append(def.Variants, chip.Variant{Name: chip.Names{"BROKEN"}, Pins: chip.Pins("A", "B", "C")})

	d := Build(def, DefaultSettings(def), true)
	if d.Title != "ACME T16 (2 package variants)" {
		t.Errorf("Unexpected title %q", d.Title)
	}
	if len(d.Variants) != 2 {
		t.Fatalf("Expected 2 variant results, got %d", len(d.Variants))
	}
	if d.Variants[0].Err != nil || d.Variants[0].Layout == nil {
		t.Errorf("First variant should render: %v", d.Variants[0].Err)
	}
	if !errors.Is(d.Variants[1].Err, ErrPinCount) || d.Variants[1].Layout != nil {
		t.Errorf("Second variant should fail with ErrPinCount, got %v", d.Variants[1].Err)
	}
	if len(d.Failed()) != 1 {
		t.Errorf("Expected 1 failure, got %d", len(d.Failed()))
	}

	if len(d.Legend) != 3 || d.Legend[2].Visible || !d.Legend[0].Visible {
		t.Errorf("Unexpected legend: %+v", d.Legend)
	}
}

func TestBuildDeterministic(t *testing.T) {
	def := testChip()
	def.Notes = "line one\nline two\n"
	s := DefaultSettings(def)

	a := Build(def, s, false)
	b := Build(def, s, false)
	if !reflect.DeepEqual(a, b) {
		t.Error("Build is not deterministic")
	}
	if !reflect.DeepEqual(a.Notes, []string{"line one", "line two"}) {
		t.Errorf("Unexpected notes %q", a.Notes)
	}

	single := &chip.Definition{Name: "ONE", Variants: def.Variants[:1]}
	if got := Title(single); got != "ONE (1 package variant)" {
		t.Errorf("Unexpected title %q", got)
	}
}
