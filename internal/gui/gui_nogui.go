//go:build nogui

package gui

import (
	"fmt"
)

// Create fails: this build has no GUI driver
func (f *Factory) Create() (Interface, error) {
	return nil, fmt.Errorf("GUI not available in this build; use the tui command")
}

// IsGUIAvailable returns whether the GUI is available in this build
func IsGUIAvailable() bool {
	return false
}
