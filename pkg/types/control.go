package types

// Control identifies the source of a user action. Shells map their buttons and
// keys onto a Control; nothing downstream ever looks at display text.
type Control int

const (
	ControlNone Control = iota
	ControlSortOne
	ControlSortTwo
	ControlSortThree
	ControlDelete
	ControlUndo
	ControlOpenFolder
	ControlChooseOne
	ControlChooseTwo
	ControlChooseThree
	ControlQuit
)

var controlNames = map[Control]string{
	ControlNone:        "none",
	ControlSortOne:     "sort_one",
	ControlSortTwo:     "sort_two",
	ControlSortThree:   "sort_three",
	ControlDelete:      "delete",
	ControlUndo:        "undo",
	ControlOpenFolder:  "open_folder",
	ControlChooseOne:   "choose_one",
	ControlChooseTwo:   "choose_two",
	ControlChooseThree: "choose_three",
	ControlQuit:        "quit",
}

func (c Control) String() string {
	if name, ok := controlNames[c]; ok {
		return name
	}
	return "unknown"
}

// SortControl returns the sort control for slot s
func SortControl(s Slot) Control {
	return ControlSortOne + Control(s)
}

// ChooseControl returns the destination picker control for slot s
func ChooseControl(s Slot) Control {
	return ControlChooseOne + Control(s)
}

// SortSlot reports which slot a sort control targets
func (c Control) SortSlot() (Slot, bool) {
	if c >= ControlSortOne && c <= ControlSortThree {
		return Slot(c - ControlSortOne), true
	}
	return 0, false
}

// ChooseSlot reports which slot a destination picker control targets
func (c Control) ChooseSlot() (Slot, bool) {
	if c >= ControlChooseOne && c <= ControlChooseThree {
		return Slot(c - ControlChooseOne), true
	}
	return 0, false
}

// ParseControl maps a config name back to its Control
func ParseControl(name string) (Control, bool) {
	for c, n := range controlNames {
		if n == name {
			return c, true
		}
	}
	return ControlNone, false
}
