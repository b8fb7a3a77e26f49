package analysis

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"imgsort/internal/errors"
	"imgsort/pkg/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspect(t *testing.T) {
	dir := t.TempDir()
	engine := New()

	t.Run("png", func(t *testing.T) {
		path := testutils.WritePNG(t, dir, "a.png", 64, 32)
		info, err := engine.Inspect(path)
		require.NoError(t, err)

		assert.Equal(t, path, info.Path)
		assert.Equal(t, "image/png", info.ContentType)
		assert.Equal(t, "png", info.Format)
		assert.Equal(t, 64, info.Width)
		assert.Equal(t, 32, info.Height)
		assert.Positive(t, info.Size)
		assert.True(t, info.Taken.IsZero(), "no EXIF in a plain png")
		assert.Empty(t, info.Camera)
	})

	t.Run("jpeg without exif", func(t *testing.T) {
		path := testutils.WriteJPEG(t, dir, "b.jpg", 10, 20)
		info, err := engine.Inspect(path)
		require.NoError(t, err)
		assert.Equal(t, "image/jpeg", info.ContentType)
		assert.Equal(t, "jpeg", info.Format)
		assert.Equal(t, 10, info.Width)
		assert.Equal(t, 20, info.Height)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := engine.Inspect(filepath.Join(dir, "missing.png"))
		require.Error(t, err)
		assert.True(t, errors.IsIo(err))
	})

	t.Run("not an image", func(t *testing.T) {
		path := filepath.Join(dir, "fake.png")
		require.NoError(t, os.WriteFile(path, []byte("plain text"), 0644))
		_, err := engine.Inspect(path)
		require.Error(t, err)
		assert.True(t, errors.IsDecode(err))
	})
}

func TestSummary(t *testing.T) {
	info := &Info{Width: 4000, Height: 3000, Size: 2 * 1024 * 1024}
	assert.Equal(t, "4000x3000 · 2.0 MiB", info.Summary())

	info.Camera = "X100V"
	info.Taken = time.Date(2021, 6, 1, 14, 3, 0, 0, time.Local)
	assert.Equal(t, "4000x3000 · 2.0 MiB · X100V · 2021-06-01 14:03", info.Summary())

	assert.Equal(t, "512 B", (&Info{Size: 512}).Summary())

	var none *Info
	assert.Empty(t, none.Summary())
}
