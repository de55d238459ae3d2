package deviceinfo

import "github.com/OpenTraceLab/OpenTracePinout/pkg/idcode"

type key struct {
	ManufacturerCode uint16
	PartNumber       uint16
}

var db = make(map[key]DeviceInfo)

func register(k key, info DeviceInfo) {
	db[k] = info
}

// Lookup returns what is known about the part with the given IDCODE. The
// manufacturer is filled in even when the part itself is unknown.
func Lookup(raw uint32) (DeviceInfo, bool) {
	id := idcode.Parse(raw)
	m, _ := id.Manufacturer()

	info, ok := db[key{ManufacturerCode: id.ManufacturerCode, PartNumber: id.PartNumber}]
	info.IDCode = id
	info.Manufacturer = m
	return info, ok
}
