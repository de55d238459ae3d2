// Package idcode decodes IEEE 1149.1 IDCODE registers into manufacturer and
// part fields.
package idcode

import "fmt"

// IDCode is a decoded 32-bit IDCODE.
type IDCode struct {
	Raw              uint32
	Version          uint8  // [31:28]
	PartNumber       uint16 // [27:12]
	ManufacturerCode uint16 // [11:1] JEP106 bank and id
	Valid            bool   // bit 0 is always 1 in a real IDCODE
}

func (id IDCode) String() string {
	return fmt.Sprintf("0x%08X", id.Raw)
}

// Manufacturer is one JEP106 entry.
type Manufacturer struct {
	Code         uint16
	Name         string
	Abbreviation string
}
