//go:build !nogui

package gui

import (
	"fyne.io/fyne/v2/app"
)

// AppID identifies the application to fyne's preference store
const AppID = "io.github.imgsort"

// Create returns a new GUI instance on the desktop driver
func (f *Factory) Create() (Interface, error) {
	return NewApp(f.config, f.session, app.NewWithID(AppID)), nil
}

// IsGUIAvailable returns whether the GUI is available in this build
func IsGUIAvailable() bool {
	return true
}
