//go:build !nogui

package gui

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"imgsort/internal/config"
	"imgsort/internal/organize"
	"imgsort/internal/session"
	"imgsort/internal/trash"
	"imgsort/pkg/testutils"
	"imgsort/pkg/types"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T, files ...string) (*App, string, string) {
	t.Helper()
	root := t.TempDir()
	src := filepath.Join(root, "inbox")
	dest := filepath.Join(root, "keep")
	require.NoError(t, os.MkdirAll(src, 0755))
	require.NoError(t, os.MkdirAll(dest, 0755))
	for _, name := range files {
		testutils.WritePNG(t, src, name, 40, 30)
	}

	store, err := trash.NewXDG(filepath.Join(root, "Trash"))
	require.NoError(t, err)
	cfg := config.New()
	cfg.Preview.Width, cfg.Preview.Height = 200, 150
	sess := session.New(cfg, organize.New(store, organize.DefaultOptions()))

	a := NewApp(cfg, sess, test.NewApp())
	t.Cleanup(func() { a.GetMainWindow().Close() })
	return a, src, dest
}

func TestInitialState(t *testing.T) {
	a, _, _ := newTestApp(t)

	for _, slot := range types.Slots {
		assert.True(t, a.sortButtons[slot].Disabled(), slot.String())
		assert.Equal(t, "Set "+slot.String(), a.chooseButtons[slot].Text)
	}
	assert.True(t, a.deleteButton.Disabled())
	assert.True(t, a.undoButton.Disabled())
	assert.False(t, a.openButton.Disabled())
	assert.Equal(t, "Open a folder to start", a.statusLabel.Text)
	assert.Equal(t, "0 left", a.infoLabel.Text)
}

func TestSortAndUndoThroughButtons(t *testing.T) {
	a, src, dest := newTestApp(t, "a.png", "b.png")

	a.OpenFolder(src)
	assert.False(t, a.deleteButton.Disabled())
	assert.True(t, a.sortButtons[types.SlotOne].Disabled())
	assert.NotNil(t, a.preview.Image)
	assert.Contains(t, a.infoLabel.Text, "a.png · 2 left")

	a.SetDestination(types.SlotOne, dest)
	assert.False(t, a.sortButtons[types.SlotOne].Disabled())
	assert.Equal(t, "One: keep", a.chooseButtons[types.SlotOne].Text)

	test.Tap(a.sortButtons[types.SlotOne])
	assert.True(t, testutils.Exists(filepath.Join(dest, "a.png")))
	assert.False(t, a.undoButton.Disabled())
	assert.Equal(t, "Moved a.png to One (1 left)", a.statusLabel.Text)

	test.Tap(a.undoButton)
	assert.True(t, testutils.Exists(filepath.Join(src, "a.png")))
	assert.True(t, a.undoButton.Disabled())
}

func TestKeyboardControls(t *testing.T) {
	a, src, dest := newTestApp(t, "a.png")
	a.OpenFolder(src)
	a.SetDestination(types.SlotTwo, dest)

	a.handleKey(&fyne.KeyEvent{Name: fyne.Key2})
	assert.True(t, testutils.Exists(filepath.Join(dest, "a.png")))

	a.handleKey(&fyne.KeyEvent{Name: fyne.KeyBackspace})
	assert.True(t, testutils.Exists(filepath.Join(src, "a.png")))

	// unbound keys do nothing
	a.handleKey(&fyne.KeyEvent{Name: fyne.KeyF1})
	assert.Equal(t, "Undid move of a.png (1 left)", a.statusLabel.Text)
}

func TestFailedSortIsReported(t *testing.T) {
	a, src, dest := newTestApp(t, "a.png")
	testutils.WritePNG(t, dest, "a.png", 2, 2)
	a.OpenFolder(src)
	a.SetDestination(types.SlotThree, dest)

	test.Tap(a.sortButtons[types.SlotThree])
	assert.Contains(t, a.statusLabel.Text, "Error:")
	assert.True(t, a.undoButton.Disabled())
	assert.False(t, a.sortButtons[types.SlotThree].Disabled(), "image was put back")
}

func TestPreviewKeepsPixelSize(t *testing.T) {
	a, src, _ := newTestApp(t, "a.png")
	a.OpenFolder(src)

	// a viewport far larger than the 40x30 fixture
	a.viewport.Resize(fyne.NewSize(400, 300))
	w, h := a.session.Viewport()
	assert.Equal(t, 400, w)
	assert.Equal(t, 300, h)

	require.NotNil(t, a.preview.Image)
	assert.Equal(t, 40, a.preview.Image.Bounds().Dx())
	assert.Equal(t, fyne.NewSize(40, 30), a.preview.Size())
	assert.Equal(t, fyne.NewPos(180, 135), a.preview.Position())
}

func TestBitmapSize(t *testing.T) {
	area := fyne.NewSize(100, 80)
	assert.Equal(t, fyne.NewSize(0, 0), bitmapSize(nil, area))
	assert.Equal(t, fyne.NewSize(20, 10), bitmapSize(image.NewNRGBA(image.Rect(0, 0, 20, 10)), area))
	assert.Equal(t, fyne.NewSize(100, 80), bitmapSize(image.NewNRGBA(image.Rect(0, 0, 300, 200)), area))
}

func TestFinishedQueueShowsInfo(t *testing.T) {
	a, src, dest := newTestApp(t, "a.png")
	a.OpenFolder(src)
	a.SetDestination(types.SlotOne, dest)
	require.Nil(t, a.GetMainWindow().Canvas().Overlays().Top())

	test.Tap(a.sortButtons[types.SlotOne])
	assert.Equal(t, "0 left", a.infoLabel.Text)
	assert.NotNil(t, a.GetMainWindow().Canvas().Overlays().Top(), "an info dialog is shown")
}

func TestKeyBindings(t *testing.T) {
	bindings := keyBindings(config.New())

	assert.Equal(t, types.ControlSortOne, bindings[fyne.Key1])
	assert.Equal(t, types.ControlDelete, bindings[fyne.KeyD])
	assert.Equal(t, types.ControlDelete, bindings[fyne.KeyDelete])
	assert.Equal(t, types.ControlUndo, bindings[fyne.KeyBackspace])
	assert.Equal(t, types.ControlOpenFolder, bindings[fyne.KeyO])
	assert.Equal(t, types.ControlQuit, bindings[fyne.KeyQ])

	_, ok := fyneKey("ctrl+c")
	assert.False(t, ok)
	k, ok := fyneKey("Enter")
	assert.True(t, ok)
	assert.Equal(t, fyne.KeyReturn, k)
}
