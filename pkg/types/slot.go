package types

import "fmt"

// Slot identifies one of the three destination categories.
type Slot int

const (
	SlotOne Slot = iota
	SlotTwo
	SlotThree
)

// NumSlots is the number of destination categories
const NumSlots = 3

// Slots lists every slot in display order
var Slots = [NumSlots]Slot{SlotOne, SlotTwo, SlotThree}

func (s Slot) String() string {
	switch s {
	case SlotOne:
		return "One"
	case SlotTwo:
		return "Two"
	case SlotThree:
		return "Three"
	default:
		return fmt.Sprintf("Slot(%d)", int(s))
	}
}

// Valid reports whether s names one of the three categories
func (s Slot) Valid() bool {
	return s >= SlotOne && s <= SlotThree
}

// ParseSlot accepts "1".."3" or the slot names, case-insensitively.
func ParseSlot(v string) (Slot, error) {
	switch v {
	case "1", "one", "One", "ONE":
		return SlotOne, nil
	case "2", "two", "Two", "TWO":
		return SlotTwo, nil
	case "3", "three", "Three", "THREE":
		return SlotThree, nil
	}
	return 0, fmt.Errorf("unknown slot %q (want 1, 2 or 3)", v)
}
