package pinout

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownPackage = errors.New("pinout: unknown package, only 'dual' and 'quad' are supported")
	ErrPinCount       = errors.New("pinout: pin count does not fit the package")
	ErrUnknownGroup   = errors.New("pinout: unknown function group")
)

// VariantError is a configuration error isolated to one chip variant.
type VariantError struct {
	Chip    string
	Variant string
	Err     error
}

func (e *VariantError) Error() string {
	return fmt.Sprintf("chip %s: variant %q: %v", e.Chip, e.Variant, e.Err)
}

func (e *VariantError) Unwrap() error { return e.Err }
