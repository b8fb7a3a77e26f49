package main

import (
	"bytes"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"imgsort/internal/errors"
	"imgsort/internal/trash"
	"imgsort/pkg/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCommand executes the root command with a config that keeps the trash in dir
func runCommand(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	cfgPath := filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		data := fmt.Sprintf("trash:\n  dir: %s\npreview:\n  width: 64\n  height: 64\n", filepath.Join(dir, "Trash"))
		require.NoError(t, os.WriteFile(cfgPath, []byte(data), 0644))
	}

	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := cmd.Execute()
	return testutils.StripANSI(out.String()), err
}

func TestHelpListsCommands(t *testing.T) {
	output, err := runCommand(t, t.TempDir(), "--help")
	require.NoError(t, err)

	for _, name := range []string{"gui", "tui", "scan", "preview", "trash"} {
		assert.Contains(t, output, name)
	}
}

func TestScanCommand(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "inbox")
	require.NoError(t, os.MkdirAll(src, 0755))
	testutils.WritePNG(t, src, "b.png", 10, 5)
	testutils.WriteJPEG(t, src, "a.jpg", 8, 8)
	require.NoError(t, os.WriteFile(filepath.Join(src, "notes.txt"), []byte("x"), 0644))

	output, err := runCommand(t, dir, "scan", src)
	require.NoError(t, err)
	assert.Contains(t, output, "2 images")
	assert.Contains(t, output, "1  a.jpg")
	assert.Contains(t, output, "2  b.png")
	assert.NotContains(t, output, "notes.txt")

	output, err = runCommand(t, dir, "scan", "--details", src)
	require.NoError(t, err)
	assert.Contains(t, output, "b.png  10x5")

	_, err = runCommand(t, dir, "scan", filepath.Join(dir, "missing"))
	require.Error(t, err)
	assert.True(t, errors.IsIo(err))
}

func TestPreviewCommand(t *testing.T) {
	dir := t.TempDir()
	img := testutils.WritePNG(t, dir, "wide.png", 200, 50)
	out := filepath.Join(dir, "out.png")

	output, err := runCommand(t, dir, "preview", img, "-o", out, "--width", "100")
	require.NoError(t, err)
	assert.Contains(t, output, "(100x25)")

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Width)
	assert.Equal(t, 25, cfg.Height)
}

func TestPreviewCommandRejectsNonImage(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "fake.png")
	require.NoError(t, os.WriteFile(bad, []byte("not an image"), 0644))

	_, err := runCommand(t, dir, "preview", bad, "-o", filepath.Join(dir, "out.png"))
	require.Error(t, err)
	assert.True(t, errors.IsDecode(err))
}

func TestTrashCommands(t *testing.T) {
	dir := t.TempDir()
	output, err := runCommand(t, dir, "trash", "list")
	require.NoError(t, err)
	assert.Contains(t, output, "is empty")

	img := testutils.WritePNG(t, dir, "gone.png", 4, 4)
	store, err := trash.NewXDG(filepath.Join(dir, "Trash"))
	require.NoError(t, err)
	_, err = store.Put(img)
	require.NoError(t, err)
	require.False(t, testutils.Exists(img))

	output, err = runCommand(t, dir, "trash", "list")
	require.NoError(t, err)
	assert.Contains(t, output, img)

	output, err = runCommand(t, dir, "trash", "restore", img)
	require.NoError(t, err)
	assert.Contains(t, output, "Restored "+img)
	assert.True(t, testutils.Exists(img))

	_, err = runCommand(t, dir, "trash", "restore", img)
	require.Error(t, err)
	assert.True(t, errors.IsNotInTrash(err))
}

func TestInvalidConfigFails(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("preview:\n  width: -1\n"), 0644))

	_, err := runCommand(t, dir, "trash", "list")
	require.Error(t, err)
}

func TestThemeFlag(t *testing.T) {
	dir := t.TempDir()
	_, err := runCommand(t, dir, "--theme", "dark", "trash", "list")
	require.NoError(t, err)

	_, err = runCommand(t, dir, "--theme", "neon", "trash", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown theme "neon"`)
	assert.Contains(t, err.Error(), "monochrome")
}

func TestApplyThemeReachesOptions(t *testing.T) {
	dir := t.TempDir()
	opts := &rootOptions{cfgFile: filepath.Join(dir, "missing.yaml"), theme: "light"}
	require.NoError(t, opts.load())
	assert.Equal(t, "light", opts.cfg.Theme.Name)
	assert.Equal(t, "135", opts.cfg.Theme.Primary)
}
