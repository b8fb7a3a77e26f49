package types

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
)

// KeyMap holds the terminal key bindings for every control
type KeyMap struct {
	SortOne    key.Binding
	SortTwo    key.Binding
	SortThree  key.Binding
	Delete     key.Binding
	Undo       key.Binding
	OpenFolder key.Binding
	Quit       key.Binding
	Command    key.Binding
	Help       key.Binding
}

// NewKeyMap builds bindings from control name -> key names, as stored in config
func NewKeyMap(keys map[string][]string) KeyMap {
	bind := func(c Control, desc string) key.Binding {
		ks := keys[c.String()]
		if len(ks) == 0 {
			return key.NewBinding(key.WithDisabled())
		}
		return key.NewBinding(key.WithKeys(ks...), key.WithHelp(ks[0], desc))
	}
	return KeyMap{
		SortOne:    bind(ControlSortOne, "to One"),
		SortTwo:    bind(ControlSortTwo, "to Two"),
		SortThree:  bind(ControlSortThree, "to Three"),
		Delete:     bind(ControlDelete, "trash"),
		Undo:       bind(ControlUndo, "undo"),
		OpenFolder: bind(ControlOpenFolder, "open"),
		Quit:       bind(ControlQuit, "quit"),
		Command: key.NewBinding(
			key.WithKeys(":"),
			key.WithHelp(":", "command"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

// Lookup returns the control bound to k, or ControlNone
func (k KeyMap) Lookup(msg fmt.Stringer) Control {
	for _, b := range []struct {
		binding key.Binding
		control Control
	}{
		{k.SortOne, ControlSortOne},
		{k.SortTwo, ControlSortTwo},
		{k.SortThree, ControlSortThree},
		{k.Delete, ControlDelete},
		{k.Undo, ControlUndo},
		{k.OpenFolder, ControlOpenFolder},
		{k.Quit, ControlQuit},
	} {
		if key.Matches(msg, b.binding) {
			return b.control
		}
	}
	return ControlNone
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.SortOne, k.SortTwo, k.SortThree, k.Delete, k.Undo, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.SortOne, k.SortTwo, k.SortThree},
		{k.Delete, k.Undo},
		{k.OpenFolder, k.Command},
		{k.Help, k.Quit},
	}
}
