package bsdl

import (
	"errors"
	"strings"
	"testing"

	"github.com/OpenTraceLab/OpenTracePinout/pkg/chip"
)

const demoBSDL = `
-- Octal buffer with boundary scan, trimmed to four bits.
entity DEMO8 is
	generic (PHYSICAL_PIN_MAP : string := "DW");

	port (
		OE_NEG         : in bit;
		D              : in bit_vector(3 downto 0);
		Q              : out bit_vector(0 to 3);
		TCK, TMS, TDI  : in bit;
		TDO            : out bit;
		GND, VCC       : linkage bit
	);

	use STD_1149_1_2001.all;

	attribute COMPONENT_CONFORMANCE of DEMO8 : entity is "STD_1149_1_2001";
	attribute PIN_MAP of DEMO8 : entity is PHYSICAL_PIN_MAP;

	constant DW : PIN_MAP_STRING :=
		"OE_NEG : 1, D : (2, 3, 4, 5), TCK : 6, TMS : 7, " &
		"GND : (8, 17), Q : (9, 10, 11, 12), TDO : 13, TDI : 14, " &
		"VCC : 16";

	constant ZQN : PIN_MAP_STRING :=
		"OE_NEG : A1, D : (A2, A3, A4, B1), TCK : B2, TMS : B3, " &
		"GND : B4, Q : (C1, C2, C3, C4), TDO : D1, TDI : D2, VCC : D3";

	attribute TAP_SCAN_IN    of TDI : signal is true;
	attribute TAP_SCAN_MODE  of TMS : signal is true;
	attribute TAP_SCAN_OUT   of TDO : signal is true;
	attribute TAP_SCAN_CLOCK of TCK : signal is (20.0e6, BOTH);

	attribute INSTRUCTION_LENGTH of DEMO8 : entity is 8;
	attribute INSTRUCTION_OPCODE of DEMO8 : entity is
		"BYPASS (11111111, 10001000), " &
		"EXTEST (00000000), " &
		"IDCODE (00000110)";
	attribute INSTRUCTION_CAPTURE of DEMO8 : entity is "10000001";

	attribute IDCODE_REGISTER of DEMO8 : entity is
		"XXXX" &               -- version
		"0000000000000001" &   -- part number
		"00000010111" &        -- Texas Instruments
		"1";

	attribute BOUNDARY_LENGTH of DEMO8 : entity is 9;
	attribute BOUNDARY_REGISTER of DEMO8 : entity is
		"8 (BC_1, *, control, 0), " &
		"7 (BC_1, Q(3), output3, X, 8, 0, Z), " &
		"6 (BC_1, Q(2), output3, X, 8, 0, Z), " &
		"5 (BC_1, Q(1), output3, X, 8, 0, Z), " &
		"4 (BC_1, Q(0), output3, X, 8, 0, Z), " &
		"3 (BC_1, D(0), input, X), " &
		"2 (BC_1, D(1), input, X), " &
		"1 (BC_1, D(2), input, X), " &
		"0 (BC_1, D(3), input, X)";
end DEMO8;
`

func slotNames(slots []chip.PinSlot) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.String()
	}
	return out
}

func TestToChip(t *testing.T) {
	def, err := ToChip(parseDemo(t), ImportOptions{PinCount: 16})
	if err != nil {
		t.Fatalf("ToChip: %v", err)
	}

	if def.Name != "DEMO8" {
		t.Errorf("Name = %q", def.Name)
	}
	if def.Manufacturer != "Texas Instruments" {
		t.Errorf("Manufacturer = %q", def.Manufacturer)
	}
	if len(def.Variants) != 1 {
		t.Fatalf("Expected 1 variant, got %d", len(def.Variants))
	}

	v := def.Variants[0]
	if v.Label(def.Name) != "DW" {
		t.Errorf("variant = %q, want DW", v.Label(def.Name))
	}
	if v.Shape() != chip.PackageDual {
		t.Errorf("Shape() = %s, want dual", v.Shape())
	}

	want := []string{
		"OE_NEG", "D(3)", "D(2)", "D(1)", "D(0)", "TCK", "TMS", "GND",
		"Q(0)", "Q(1)", "Q(2)", "Q(3)", "TDO", "TDI", "<skipped-with-number>", "VCC",
	}
	if got := slotNames(v.Pins); strings.Join(got, " ") != strings.Join(want, " ") {
		t.Errorf("pins:\n got %v\nwant %v", got, want)
	}

	if len(v.AdditionalPins) != 1 || v.AdditionalPins[0] != (chip.AdditionalPin{Description: "Pin 17", Pin: "GND"}) {
		t.Errorf("AdditionalPins = %+v", v.AdditionalPins)
	}

	wantNotes := "IDCODE 0x0000102F, mask 0x0FFFFFFF\n" +
		"Instruction register: 8 bits\n" +
		"Instructions: BYPASS, EXTEST, IDCODE\n" +
		"Boundary register: 9 cells"
	if def.Notes != wantNotes {
		t.Errorf("Notes:\n%s\nwant:\n%s", def.Notes, wantNotes)
	}
}

func TestToChipGroups(t *testing.T) {
	def, err := ToChip(parseDemo(t), ImportOptions{})
	if err != nil {
		t.Fatalf("ToChip: %v", err)
	}

	tests := []struct {
		group  string
		hidden bool
		labels []string
		first  []string
	}{
		{"JTAG", false, []string{"TCK", "TMS", "TDI", "TDO"}, []string{"TCK"}},
		{"Port Mode", true, []string{"in", "out", "linkage"}, []string{"OE_NEG", "D(3)", "D(2)", "D(1)", "D(0)", "TCK", "TMS", "TDI"}},
		{"Boundary Cells", true, []string{"input", "output3"}, []string{"D(3)", "D(2)", "D(1)", "D(0)"}},
	}
	for _, tt := range tests {
		t.Run(tt.group, func(t *testing.T) {
			g, ok := def.Group(tt.group)
			if !ok {
				t.Fatalf("group %q missing", tt.group)
			}
			if g.DefaultHidden != tt.hidden {
				t.Errorf("DefaultHidden = %v, want %v", g.DefaultHidden, tt.hidden)
			}
			var labels []string
			for _, f := range g.Functions {
				labels = append(labels, f.Label)
			}
			if strings.Join(labels, ",") != strings.Join(tt.labels, ",") {
				t.Errorf("labels = %v, want %v", labels, tt.labels)
			}
			if strings.Join(g.Functions[0].Pins, ",") != strings.Join(tt.first, ",") {
				t.Errorf("pins of %s = %v, want %v", tt.labels[0], g.Functions[0].Pins, tt.first)
			}
		})
	}
}

func TestToChipWithoutPinCount(t *testing.T) {
	def, err := ToChip(parseDemo(t), ImportOptions{Package: chip.PackageQuad})
	if err != nil {
		t.Fatalf("ToChip: %v", err)
	}
	v := def.Variants[0]
	if len(v.Pins) != 17 {
		t.Errorf("Expected 17 numbered pins, got %d", len(v.Pins))
	}
	if len(v.AdditionalPins) != 0 {
		t.Errorf("AdditionalPins = %+v, want none", v.AdditionalPins)
	}
	if v.Package != chip.PackageQuad {
		t.Errorf("Package = %q, want the override", v.Package)
	}
}

func TestToChipGridPackage(t *testing.T) {
	_, err := ToChip(parseDemo(t), ImportOptions{PinMap: "zqn"})
	if !errors.Is(err, ErrGridPackage) {
		t.Fatalf("err = %v, want ErrGridPackage", err)
	}
}

func TestToChipErrors(t *testing.T) {
	const header = `entity BAD is
		port (A : in bit; B : out bit_vector(0 to 1));
		constant P : PIN_MAP_STRING := `

	tests := []struct {
		name   string
		pinMap string
		want   error
	}{
		{"undeclared port", `"A : 1, C : 2"`, ErrUnknownPort},
		{"vector width", `"A : 1, B : (2, 3, 4)"`, ErrVectorPins},
		{"pin used twice", `"A : 1, B : (1, 2)"`, ErrPinConflict},
	}

	parser, err := NewParser()
	if err != nil {
		t.Fatalf("Failed to create parser: %v", err)
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file, err := parser.ParseString(header + tt.pinMap + ";\nend BAD;")
			if err != nil {
				t.Fatalf("Failed to parse: %v", err)
			}
			if _, err := ToChip(file, ImportOptions{}); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := ToChip(&BSDLFile{}, ImportOptions{}); !errors.Is(err, ErrNoEntity) {
		t.Errorf("err = %v, want ErrNoEntity", err)
	}
}

func TestInferPackage(t *testing.T) {
	tests := map[string]chip.Package{
		"DW":       chip.PackageDual,
		"LQFP64":   chip.PackageQuad,
		"vqfn_32":  chip.PackageQuad,
		"PLCC44":   chip.PackageQuad,
		"TSSOP_20": chip.PackageDual,
	}
	for name, want := range tests {
		if got := inferPackage(name); got != want {
			t.Errorf("inferPackage(%q) = %s, want %s", name, got, want)
		}
	}
}
