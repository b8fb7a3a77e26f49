//go:build !nogui

package gui

import (
	"fmt"
	"path/filepath"

	"imgsort/internal/config"
	"imgsort/internal/log"
	"imgsort/internal/session"
	"imgsort/pkg/types"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// App is the GUI application
type App struct {
	fyneApp    fyne.App
	mainWindow fyne.Window
	cfg        *config.Config
	session    *session.Session
	keys       map[fyne.KeyName]types.Control

	preview       *canvas.Image
	viewport      *fyne.Container
	statusLabel   *widget.Label
	infoLabel     *widget.Label
	sortButtons   [types.NumSlots]*widget.Button
	chooseButtons [types.NumSlots]*widget.Button
	deleteButton  *widget.Button
	undoButton    *widget.Button
	openButton    *widget.Button
}

// NewApp builds the main window on fyneApp
func NewApp(cfg *config.Config, sess *session.Session, fyneApp fyne.App) *App {
	a := &App{
		fyneApp: fyneApp,
		cfg:     cfg,
		session: sess,
		keys:    keyBindings(cfg),
	}
	a.mainWindow = fyneApp.NewWindow("imgsort")
	a.setupMainWindow()
	a.render(sess.Snapshot())
	return a
}

// GetMainWindow returns the main window for testing purposes
func (a *App) GetMainWindow() fyne.Window {
	return a.mainWindow
}

// Run shows the window and blocks until it is closed
func (a *App) Run() {
	a.mainWindow.ShowAndRun()
}

func (a *App) setupMainWindow() {
	w, h := a.session.Viewport()

	// The bitmap is already fitted, the layout draws it 1:1
	a.preview = canvas.NewImageFromImage(nil)
	a.preview.FillMode = canvas.ImageFillStretch
	a.preview.ScaleMode = canvas.ImageScalePixels
	a.viewport = container.New(newViewportLayout(a.resized), a.preview)

	a.statusLabel = widget.NewLabel("")
	a.statusLabel.Wrapping = fyne.TextWrapWord
	a.infoLabel = widget.NewLabel("")
	a.infoLabel.TextStyle = fyne.TextStyle{Italic: true}

	sortRow := make([]fyne.CanvasObject, 0, types.NumSlots+2)
	chooseRow := make([]fyne.CanvasObject, 0, types.NumSlots+1)
	for _, slot := range types.Slots {
		slot := slot
		a.sortButtons[slot] = widget.NewButton(slot.String(), func() {
			a.dispatch(types.SortControl(slot))
		})
		a.sortButtons[slot].Importance = widget.HighImportance
		sortRow = append(sortRow, a.sortButtons[slot])

		a.chooseButtons[slot] = widget.NewButtonWithIcon("", theme.FolderIcon(), func() {
			a.dispatch(types.ChooseControl(slot))
		})
		chooseRow = append(chooseRow, a.chooseButtons[slot])
	}

	a.deleteButton = widget.NewButtonWithIcon("Delete", theme.DeleteIcon(), func() {
		a.dispatch(types.ControlDelete)
	})
	a.deleteButton.Importance = widget.DangerImportance
	a.undoButton = widget.NewButtonWithIcon("Undo", theme.ContentUndoIcon(), func() {
		a.dispatch(types.ControlUndo)
	})
	a.openButton = widget.NewButtonWithIcon("Open folder", theme.FolderOpenIcon(), func() {
		a.dispatch(types.ControlOpenFolder)
	})
	sortRow = append(sortRow, a.deleteButton, a.undoButton)
	chooseRow = append(chooseRow, a.openButton)

	controls := container.NewVBox(
		container.NewGridWithColumns(len(sortRow), sortRow...),
		container.NewGridWithColumns(len(chooseRow), chooseRow...),
		a.infoLabel,
		a.statusLabel,
	)

	a.mainWindow.SetContent(container.NewBorder(nil, controls, nil, nil, a.viewport))
	a.mainWindow.Resize(fyne.NewSize(float32(w), float32(h)+160))

	a.mainWindow.Canvas().SetOnTypedKey(a.handleKey)
}

func (a *App) handleKey(ke *fyne.KeyEvent) {
	if c, ok := a.keys[ke.Name]; ok {
		a.dispatch(c)
	}
}

// dispatch routes a control to the session or to the matching dialog
func (a *App) dispatch(c types.Control) {
	switch c {
	case types.ControlQuit:
		a.fyneApp.Quit()
		return
	case types.ControlOpenFolder:
		a.chooseFolder("Open folder", a.cfg.Directories.Source, a.OpenFolder)
		return
	}
	if slot, ok := c.ChooseSlot(); ok {
		a.chooseFolder("Folder for "+slot.String(), a.session.Engine().Destination(slot), func(dir string) {
			a.SetDestination(slot, dir)
		})
		return
	}

	had := a.session.Engine().Remaining()
	snap, err := a.session.Handle(c)
	a.render(snap)
	if err != nil {
		a.ShowError(fmt.Sprintf("Cannot %s", c), err)
		return
	}
	if had > 0 && snap.Remaining == 0 {
		a.ShowInfo("All images in " + filepath.Base(snap.Source) + " are sorted")
	}
}

// OpenFolder loads dir as the source folder
func (a *App) OpenFolder(dir string) {
	snap, err := a.session.Open(dir)
	a.render(snap)
	if err != nil {
		a.ShowError("Cannot open folder", err)
	}
}

// SetDestination assigns dir to slot
func (a *App) SetDestination(slot types.Slot, dir string) {
	snap, _ := a.session.SetDestination(slot, dir)
	a.render(snap)
}

func (a *App) chooseFolder(title, start string, onChosen func(dir string)) {
	d := dialog.NewFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil {
			a.ShowError(title, err)
			return
		}
		if uri == nil {
			return
		}
		onChosen(uri.Path())
	}, a.mainWindow)
	if start != "" {
		if lister, err := storage.ListerForURI(storage.NewFileURI(start)); err == nil {
			d.SetLocation(lister)
		}
	}
	d.Show()
}

func (a *App) resized(w, h int) {
	snap, err := a.session.Resize(w, h)
	a.render(snap)
	if err != nil {
		log.LogWithError(err).Warn("Preview failed after resize")
	}
}

// render copies a snapshot onto the widgets
func (a *App) render(snap session.Snapshot) {
	a.preview.Image = snap.Bitmap
	a.viewport.Refresh()
	a.preview.Refresh()

	for _, slot := range types.Slots {
		setEnabled(a.sortButtons[slot], snap.CanSort[slot])
		label := "Set " + slot.String()
		if dir := snap.Destinations[slot]; dir != "" {
			label = slot.String() + ": " + filepath.Base(dir)
		}
		a.chooseButtons[slot].SetText(label)
	}
	setEnabled(a.deleteButton, snap.CanDelete)
	setEnabled(a.undoButton, snap.CanUndo)

	a.statusLabel.SetText(snap.Status)
	info := fmt.Sprintf("%d left", snap.Remaining)
	if snap.Current != "" {
		info = filepath.Base(snap.Current) + " · " + info
	}
	if s := snap.Info.Summary(); s != "" {
		info += " · " + s
	}
	a.infoLabel.SetText(info)
}

// ShowError displays an error dialog
func (a *App) ShowError(title string, err error) {
	log.LogWithError(err).Error(title)
	dialog.ShowError(fmt.Errorf("%s: %w", title, err), a.mainWindow)
}

// ShowInfo displays an information message
func (a *App) ShowInfo(message string) {
	log.Info(message)
	dialog.ShowInformation("Info", message, a.mainWindow)
}

func setEnabled(b *widget.Button, enabled bool) {
	if enabled {
		b.Enable()
	} else {
		b.Disable()
	}
}
