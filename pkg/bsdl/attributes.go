package bsdl

import (
	"regexp"
	"strconv"
	"strings"
)

// Instruction is one entry of INSTRUCTION_OPCODE. An instruction may have
// several opcodes.
type Instruction struct {
	Name    string
	Opcodes []string // binary strings, e.g. "11111111"
}

// TAPConfig names the ports carrying the test access port signals.
type TAPConfig struct {
	ScanIn    string  // TDI
	ScanOut   string  // TDO
	ScanMode  string  // TMS
	ScanReset string  // TRST, optional
	ScanClock string  // TCK
	MaxFreq   float64 // Hz
	Edge      string  // BOTH, RISING or FALLING
}

// DeviceInfo is the identification part of a BSDL file.
type DeviceInfo struct {
	IDCode             string // 32 characters, X for don't care
	UserCode           string
	InstructionLength  int
	InstructionCapture string
	BoundaryLength     int
}

var instructionRegexp = regexp.MustCompile(`([A-Za-z][A-Za-z0-9_]*)\s*\(([^)]*)\)`)

// GetInstructions parses an INSTRUCTION_OPCODE value:
//
//	"BYPASS (11111111, 10001000), EXTEST (00000000)"
func GetInstructions(expr *Expression) []Instruction {
	if expr == nil {
		return nil
	}

	var instructions []Instruction
	for _, m := range instructionRegexp.FindAllStringSubmatch(expr.GetConcatenatedString(), -1) {
		instructions = append(instructions, Instruction{
			Name:    m[1],
			Opcodes: splitAndTrim(m[2]),
		})
	}
	return instructions
}

// ParseBinaryString reads a bit pattern such as "0001XXXX". Clear bits in mask
// are don't-care positions. Characters other than 0, 1 and X are ignored.
func ParseBinaryString(s string) (value uint32, mask uint32, hasWildcards bool) {
	for _, ch := range s {
		switch ch {
		case '1':
			value = value<<1 | 1
			mask = mask<<1 | 1
		case '0':
			value <<= 1
			mask = mask<<1 | 1
		case 'X', 'x':
			value <<= 1
			mask <<= 1
			hasWildcards = true
		}
	}
	return value, mask, hasWildcards
}

// GetDeviceInfo collects the identification attributes.
func (e *Entity) GetDeviceInfo() *DeviceInfo {
	info := &DeviceInfo{}
	for _, attr := range e.GetAttributes() {
		if attr.Spec == nil {
			continue
		}

		switch strings.ToUpper(attr.Spec.Name) {
		case "INSTRUCTION_LENGTH":
			if val, ok := attr.Spec.Is.GetInteger(); ok {
				info.InstructionLength = val
			}
		case "INSTRUCTION_CAPTURE":
			info.InstructionCapture = attr.Spec.Is.GetConcatenatedString()
		case "BOUNDARY_LENGTH":
			if val, ok := attr.Spec.Is.GetInteger(); ok {
				info.BoundaryLength = val
			}
		case "IDCODE_REGISTER":
			info.IDCode = attr.Spec.Is.GetConcatenatedString()
		case "USERCODE_REGISTER":
			info.UserCode = attr.Spec.Is.GetConcatenatedString()
		}
	}
	return info
}

// GetInstructionOpcodes returns the instruction set, or nil.
func (e *Entity) GetInstructionOpcodes() []Instruction {
	if spec := e.Attribute("INSTRUCTION_OPCODE"); spec != nil {
		return GetInstructions(spec.Is)
	}
	return nil
}

// GetTAPConfig reads the TAP_SCAN_* attributes. Each one is attached to the
// port carrying the signal.
func (e *Entity) GetTAPConfig() *TAPConfig {
	config := &TAPConfig{}
	for _, attr := range e.GetAttributes() {
		if attr.Spec == nil {
			continue
		}

		switch strings.ToUpper(attr.Spec.Name) {
		case "TAP_SCAN_IN":
			config.ScanIn = attr.Spec.Of
		case "TAP_SCAN_OUT":
			config.ScanOut = attr.Spec.Of
		case "TAP_SCAN_MODE":
			config.ScanMode = attr.Spec.Of
		case "TAP_SCAN_RESET":
			config.ScanReset = attr.Spec.Of
		case "TAP_SCAN_CLOCK":
			config.ScanClock = attr.Spec.Of
			config.MaxFreq, config.Edge = clockTuple(attr.Spec.Is)
		}
	}
	return config
}

// clockTuple reads (frequency, edge).
func clockTuple(expr *Expression) (freq float64, edge string) {
	if expr == nil || len(expr.Terms) == 0 || expr.Terms[0].Tuple == nil {
		return 0, ""
	}
	values := expr.Terms[0].Tuple.Values
	if len(values) >= 1 && len(values[0].Terms) > 0 {
		switch t := values[0].Terms[0]; {
		case t.Real != nil:
			freq = *t.Real
		case t.Integer != nil:
			freq = float64(*t.Integer)
		}
	}
	if len(values) >= 2 {
		edge, _ = values[1].GetIdent()
	}
	return freq, edge
}

// OpcodeToUint converts a binary opcode without wildcards.
func OpcodeToUint(opcode string) (uint, error) {
	val, err := strconv.ParseUint(opcode, 2, 32)
	return uint(val), err
}
