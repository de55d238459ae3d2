// Package catalog holds the chips built into the binary.
package catalog

import (
	"bytes"
	_ "embed"

	"github.com/OpenTraceLab/OpenTracePinout/pkg/chip"
)

//go:embed chips.yaml
var chipsYAML []byte

// All decodes the built-in chips in file order.
func All() ([]chip.Definition, error) {
	return chip.Decode(bytes.NewReader(chipsYAML))
}
