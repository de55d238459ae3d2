// Package pinout turns a chip definition and a set of visibility settings into
// a layout tree for a pinout diagram.
//
// A render pass runs in one direction:
//
//	variant pins -> DisplayNumbers -> ResolvePin (tags + name style) -> Arrange -> *Layout
//
// Every function in this package is pure. The settings are passed in
// explicitly and are only read; the same inputs always produce the same
// layout, so nothing is cached.
//
// Errors:
//
//	ErrUnknownPackage - variant package is neither "dual" nor "quad".
//	ErrPinCount       - no pins, or a pin count not divisible by the package's side count.
//	ErrUnknownGroup   - a settings mutation named a group the chip does not have.
//
// Configuration errors are reported per variant as *VariantError; sibling
// variants of the same chip still render.
package pinout
