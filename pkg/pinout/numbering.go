package pinout

import "github.com/OpenTraceLab/OpenTracePinout/pkg/chip"

// NoNumber is the display number of a slot that shows no number.
const NoNumber = 0

// DisplayNumbers returns the printed number of every slot, in physical order.
// Numbering starts at 1. A skipped slot gets NoNumber and leaves the counter
// alone; a skipped-with-number slot gets NoNumber but uses up a number.
func DisplayNumbers(pins []chip.PinSlot) []int {
	numbers := make([]int, len(pins))
	next := 1
	for i, slot := range pins {
		switch slot.Kind() {
		case chip.SlotSkipped:
			numbers[i] = NoNumber
		case chip.SlotSkippedWithNumber:
			numbers[i] = NoNumber
			next++
		default:
			numbers[i] = next
			next++
		}
	}
	return numbers
}
