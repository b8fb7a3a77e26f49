package session_test

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"imgsort/internal/config"
	"imgsort/internal/errors"
	"imgsort/internal/organize"
	"imgsort/internal/preview"
	"imgsort/internal/session"
	"imgsort/internal/trash"
	"imgsort/pkg/testutils"
	"imgsort/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type env struct {
	src, dest string
	sess      *session.Session
	cfg       *config.Config
}

func setup(t *testing.T, files ...string) env {
	t.Helper()
	root := t.TempDir()
	e := env{src: filepath.Join(root, "inbox"), dest: filepath.Join(root, "keep")}
	require.NoError(t, os.MkdirAll(e.src, 0755))
	require.NoError(t, os.MkdirAll(e.dest, 0755))
	for _, name := range files {
		testutils.WritePNG(t, e.src, name, 200, 100)
	}

	store, err := trash.NewXDG(filepath.Join(root, "Trash"))
	require.NoError(t, err)
	e.cfg = config.New()
	e.cfg.Preview.Width, e.cfg.Preview.Height = 50, 50
	e.sess = session.New(e.cfg, organize.New(store, organize.DefaultOptions()),
		session.WithConfigPath(filepath.Join(root, "config.yaml")))
	return e
}

func TestInitialSnapshot(t *testing.T) {
	e := setup(t)
	snap := e.sess.Snapshot()
	assert.Nil(t, snap.Bitmap)
	assert.Equal(t, 0, snap.Remaining)
	assert.False(t, snap.CanDelete)
	assert.False(t, snap.CanUndo)
	assert.Equal(t, [types.NumSlots]bool{}, snap.CanSort)
	assert.Equal(t, "Open a folder to start", snap.Status)
}

func TestOpenAndSort(t *testing.T) {
	e := setup(t, "a.png", "b.png")

	snap, err := e.sess.Open(e.src)
	require.NoError(t, err)
	assert.Equal(t, 2, snap.Remaining)
	assert.Equal(t, filepath.Join(e.src, "a.png"), snap.Current)
	assert.Equal(t, image.Rect(0, 0, 50, 25), snap.Bitmap.Bounds())
	require.NotNil(t, snap.Info)
	assert.Equal(t, 200, snap.Info.Width)
	assert.True(t, snap.CanDelete)
	assert.False(t, snap.CanSort[types.SlotOne], "no destination yet")

	snap, err = e.sess.SetDestination(types.SlotOne, e.dest)
	require.NoError(t, err)
	assert.True(t, snap.CanSort[types.SlotOne])
	assert.Equal(t, e.dest, snap.Destinations[types.SlotOne])
	assert.Equal(t, e.dest, e.cfg.Destination(types.SlotOne))

	snap, err = e.sess.Handle(types.ControlSortOne)
	require.NoError(t, err)
	assert.Equal(t, 1, snap.Remaining)
	assert.Equal(t, filepath.Join(e.src, "b.png"), snap.Current)
	assert.True(t, snap.CanUndo)
	assert.Equal(t, "Moved a.png to One (1 left)", snap.Status)

	snap, err = e.sess.Handle(types.ControlUndo)
	require.NoError(t, err)
	assert.Equal(t, 2, snap.Remaining)
	assert.Equal(t, filepath.Join(e.src, "a.png"), snap.Current)
	assert.False(t, snap.CanUndo)
	assert.Equal(t, "Undid move of a.png (2 left)", snap.Status)
}

func TestDeleteToEmptyShowsPlaceholder(t *testing.T) {
	e := setup(t, "x.jpg")
	testutils.WriteJPEG(t, e.src, "x.jpg", 10, 10)

	_, err := e.sess.Open(e.src)
	require.NoError(t, err)

	snap, err := e.sess.Handle(types.ControlDelete)
	require.NoError(t, err)
	assert.Equal(t, 0, snap.Remaining)
	assert.Empty(t, snap.Current)
	assert.Nil(t, snap.Info)
	assert.False(t, snap.CanDelete)
	assert.True(t, snap.CanUndo)
	assert.Equal(t, image.Rect(0, 0, 50, 50), snap.Bitmap.Bounds())
	assert.Equal(t, preview.PlaceholderColor, snap.Bitmap.(*image.NRGBA).NRGBAAt(0, 0))
	assert.Equal(t, "Deleted x.jpg (0 left)", snap.Status)
}

func TestNoOpControls(t *testing.T) {
	e := setup(t)
	for _, c := range []types.Control{
		types.ControlSortTwo, types.ControlDelete, types.ControlUndo,
		types.ControlOpenFolder, types.ControlQuit, types.ControlNone,
	} {
		snap, err := e.sess.Handle(c)
		assert.NoError(t, err, c.String())
		assert.Equal(t, "Open a folder to start", snap.Status, c.String())
	}
}

func TestErrorsAreReported(t *testing.T) {
	e := setup(t, "a.png")
	_, err := e.sess.Open(e.src)
	require.NoError(t, err)
	_, err = e.sess.SetDestination(types.SlotTwo, e.dest)
	require.NoError(t, err)
	testutils.WritePNG(t, e.dest, "a.png", 1, 1)

	snap, err := e.sess.Handle(types.ControlSortTwo)
	require.Error(t, err)
	assert.True(t, errors.IsIo(err))
	assert.Contains(t, snap.Status, "Error: destination already exists")
	assert.Equal(t, 1, snap.Remaining, "requeued by default")
	assert.NotNil(t, snap.Bitmap)

	_, err = e.sess.Open(filepath.Join(e.src, "missing"))
	require.Error(t, err)
	assert.True(t, errors.IsIo(err))
}

func TestBrokenImageKeepsPreviousBitmap(t *testing.T) {
	e := setup(t, "a.png")
	require.NoError(t, os.WriteFile(filepath.Join(e.src, "b.png"), []byte("garbage"), 0644))

	snap, err := e.sess.Open(e.src)
	require.NoError(t, err)
	first := snap.Bitmap
	_, err = e.sess.SetDestination(types.SlotOne, e.dest)
	require.NoError(t, err)

	snap, err = e.sess.Handle(types.ControlSortOne)
	require.Error(t, err)
	assert.True(t, errors.IsDecode(err))
	assert.Equal(t, filepath.Join(e.src, "b.png"), snap.Current)
	assert.Same(t, first, snap.Bitmap)
	assert.True(t, snap.CanUndo, "the move itself succeeded")
}

func TestResize(t *testing.T) {
	e := setup(t, "a.png")
	_, err := e.sess.Open(e.src)
	require.NoError(t, err)

	snap, err := e.sess.Resize(100, 100)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 100, 50), snap.Bitmap.Bounds())
	w, h := e.sess.Viewport()
	assert.Equal(t, 100, w)
	assert.Equal(t, 100, h)

	snap, err = e.sess.Resize(0, 10)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 100, 50), snap.Bitmap.Bounds(), "invalid sizes are ignored")
}

func TestRememberFolders(t *testing.T) {
	e := setup(t, "a.png")
	e.cfg.Settings.Remember = true
	path := filepath.Join(filepath.Dir(e.src), "config.yaml")

	_, err := e.sess.SetDestination(types.SlotThree, e.dest)
	require.NoError(t, err)
	_, err = e.sess.Open(e.src)
	require.NoError(t, err)

	saved, err := config.LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, e.dest, saved.Destination(types.SlotThree))
	assert.Equal(t, e.src, saved.Directories.Source)
}
