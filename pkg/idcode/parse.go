package idcode

// Parse splits a raw IDCODE into its fields.
func Parse(raw uint32) IDCode {
	return IDCode{
		Raw:              raw,
		Version:          uint8((raw >> 28) & 0xF),
		PartNumber:       uint16((raw >> 12) & 0xFFFF),
		ManufacturerCode: uint16((raw >> 1) & 0x7FF),
		Valid:            raw&0x1 == 0x1,
	}
}

// Manufacturer looks up the maker of id.
func (id IDCode) Manufacturer() (Manufacturer, bool) {
	return LookupManufacturer(id.ManufacturerCode)
}
