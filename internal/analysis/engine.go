package analysis

import (
	"fmt"
	"image"
	_ "image/jpeg" // register decoders for DecodeConfig
	_ "image/png"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/mknote"

	serr "imgsort/internal/errors"
	log "imgsort/internal/log"
)

// exifTimeLayout is how EXIF stores DateTimeOriginal
const exifTimeLayout = "2006:01:02 15:04:05"

var registerOnce sync.Once

// Info describes one image file for the status line
type Info struct {
	Path        string
	Size        int64
	ContentType string
	Format      string
	Width       int
	Height      int
	// Taken and Camera are zero when the file carries no EXIF data
	Taken  time.Time
	Camera string
}

// Summary renders the info as a single status line
func (i *Info) Summary() string {
	if i == nil {
		return ""
	}
	parts := []string{}
	if i.Width > 0 && i.Height > 0 {
		parts = append(parts, fmt.Sprintf("%dx%d", i.Width, i.Height))
	}
	parts = append(parts, humanSize(i.Size))
	if i.Camera != "" {
		parts = append(parts, i.Camera)
	}
	if !i.Taken.IsZero() {
		parts = append(parts, i.Taken.Format("2006-01-02 15:04"))
	}
	return strings.Join(parts, " · ")
}

// Engine reads file and EXIF metadata
type Engine struct{}

// New creates a new Analysis Engine instance and registers the maker note parsers
func New() *Engine {
	registerOnce.Do(func() {
		exif.RegisterParsers(mknote.All...)
	})
	return &Engine{}
}

// Inspect reads size, content type, dimensions and EXIF data for path.
// Missing or corrupt EXIF data is not an error.
func (e *Engine) Inspect(path string) (*Info, error) {
	logger := log.LogWithFields(log.F("path", path))

	stat, err := os.Stat(path)
	if err != nil {
		return nil, serr.Io("failed to stat file", path, err)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, serr.Io("failed to open file", path, err)
	}
	defer file.Close()

	// Read first 512 bytes for content type detection
	buffer := make([]byte, 512)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return nil, serr.Io("failed to read file", path, err)
	}

	info := &Info{
		Path:        path,
		Size:        stat.Size(),
		ContentType: http.DetectContentType(buffer[:n]),
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, serr.Io("failed to rewind file", path, err)
	}
	cfg, format, err := image.DecodeConfig(file)
	if err != nil {
		return nil, serr.NewImageError("cannot read image header", path, serr.DecodeFailure, err)
	}
	info.Width, info.Height, info.Format = cfg.Width, cfg.Height, format

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, serr.Io("failed to rewind file", path, err)
	}
	readExif(file, info, logger)

	logger.Debugf("Inspected %s image %dx%d", info.Format, info.Width, info.Height)
	return info, nil
}

func readExif(r io.Reader, info *Info, logger *log.Logger) {
	x, err := exif.Decode(r)
	if err != nil {
		logger.Debugf("No EXIF data found or failed to decode: %v", err)
		return
	}

	if dt, err := x.Get(exif.DateTimeOriginal); err == nil {
		dtStr, _ := dt.StringVal()
		if t, err := time.ParseInLocation(exifTimeLayout, strings.TrimSpace(dtStr), time.Local); err == nil {
			info.Taken = t
		}
	}
	if model, err := x.Get(exif.Model); err == nil {
		modelStr, _ := model.StringVal()
		info.Camera = strings.TrimSpace(strings.TrimRight(modelStr, "\x00"))
	}
}

func humanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
