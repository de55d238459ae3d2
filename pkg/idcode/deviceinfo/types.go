// Package deviceinfo names well-known parts by their IDCODE.
package deviceinfo

import "github.com/OpenTraceLab/OpenTracePinout/pkg/idcode"

// DeviceInfo describes one part family.
type DeviceInfo struct {
	IDCode       idcode.IDCode
	Manufacturer idcode.Manufacturer

	Name        string // "STM32F40x/41x"
	Family      string // "STM32F4"
	Description string // "ARM Cortex-M4 MCU with FPU"
	IRLength    int
}
