package deviceinfo

func init() {
	const stm = 0x020

	for _, d := range []struct {
		part uint16
		info DeviceInfo
	}{
		{0x410, DeviceInfo{Name: "STM32F10x (Medium-density)", Family: "STM32F1", Description: "ARM Cortex-M3 MCU"}},
		{0x412, DeviceInfo{Name: "STM32F10x (Low-density)", Family: "STM32F1", Description: "ARM Cortex-M3 MCU"}},
		{0x414, DeviceInfo{Name: "STM32F10x (High-density)", Family: "STM32F1", Description: "ARM Cortex-M3 MCU"}},
		{0x413, DeviceInfo{Name: "STM32F40x/41x", Family: "STM32F4", Description: "ARM Cortex-M4 MCU with FPU"}},
		{0x419, DeviceInfo{Name: "STM32F42x/43x", Family: "STM32F4", Description: "ARM Cortex-M4 MCU with FPU"}},
		{0x422, DeviceInfo{Name: "STM32F30x/31x", Family: "STM32F3", Description: "ARM Cortex-M4 MCU with FPU"}},
		{0x438, DeviceInfo{Name: "STM32F303x6/8, F334", Family: "STM32F3", Description: "ARM Cortex-M4 MCU with FPU"}},
		{0x449, DeviceInfo{Name: "STM32F74x/75x", Family: "STM32F7", Description: "ARM Cortex-M7 MCU with FPU"}},
		{0x450, DeviceInfo{Name: "STM32H74x/75x", Family: "STM32H7", Description: "ARM Cortex-M7 MCU with FPU"}},
	} {
		// The boundary scan TAP reports the device id with 0x6 in the top
		// nibble and has a 5-bit IR.
		d.info.IRLength = 5
		register(key{ManufacturerCode: stm, PartNumber: 0x6000 | d.part}, d.info)
	}
}
