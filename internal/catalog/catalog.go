// Package catalog holds the queue of images waiting for a sort decision.
package catalog

import (
	"os"
	"path/filepath"

	"imgsort/internal/errors"
	"imgsort/internal/log"

	"github.com/gobwas/glob"
)

// Allowlist is the fixed set of patterns a file name must match to be queued.
// Matching is case-sensitive: "c.JPEG" is not an image here.
var Allowlist = []string{"*.jpg", "*.jpeg", "*.png"}

var matchers = compileAllowlist()

func compileAllowlist() []glob.Glob {
	out := make([]glob.Glob, 0, len(Allowlist))
	for _, p := range Allowlist {
		out = append(out, glob.MustCompile(p))
	}
	return out
}

// IsImage reports whether name passes the extension allowlist
func IsImage(name string) bool {
	base := filepath.Base(name)
	for _, m := range matchers {
		if m.Match(base) {
			return true
		}
	}
	return false
}

// Option configures a Catalog
type Option func(*Catalog)

// WithScanOrder makes PopHead keep the remaining queue in scan order
// instead of moving the last entry to the front.
func WithScanOrder() Option {
	return func(c *Catalog) {
		c.keepOrder = true
	}
}

// Catalog is the ordered queue of pending image paths. Index 0 is the image
// currently on screen.
type Catalog struct {
	paths     []string
	keepOrder bool
}

// New creates a catalog holding paths in the given order
func New(paths []string, opts ...Option) *Catalog {
	c := &Catalog{paths: append([]string(nil), paths...)}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load scans dir (non-recursively) and queues every regular file that passes
// the allowlist, in directory order.
func Load(dir string, opts ...Option) (*Catalog, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, errors.Io("cannot resolve directory", dir, err)
	}

	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, errors.Io("cannot read directory", abs, err)
	}

	var paths []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if !IsImage(entry.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(abs, entry.Name()))
	}

	log.LogWithFields(log.F("directory", abs), log.F("images", len(paths))).Info("Loaded catalog")
	return New(paths, opts...), nil
}

// PeekHead returns the current image without removing it
func (c *Catalog) PeekHead() (string, bool) {
	if len(c.paths) == 0 {
		return "", false
	}
	return c.paths[0], true
}

// PopHead removes and returns the current image. Unless the catalog keeps scan
// order, the last entry is swapped into position 0, so the remaining order
// differs from the directory scan after the first pop.
func (c *Catalog) PopHead() (string, bool) {
	n := len(c.paths)
	if n == 0 {
		return "", false
	}
	head := c.paths[0]
	if c.keepOrder {
		copy(c.paths, c.paths[1:])
	} else {
		c.paths[0] = c.paths[n-1]
	}
	c.paths[n-1] = ""
	c.paths = c.paths[:n-1]
	return head, true
}

// PushFront makes path the current image, shifting the rest back
func (c *Catalog) PushFront(path string) {
	c.paths = append(c.paths, "")
	copy(c.paths[1:], c.paths)
	c.paths[0] = path
}

// Len returns the number of pending images
func (c *Catalog) Len() int {
	return len(c.paths)
}

// IsEmpty reports whether nothing is pending
func (c *Catalog) IsEmpty() bool {
	return len(c.paths) == 0
}

// Paths returns a copy of the queue in its current order
func (c *Catalog) Paths() []string {
	return append([]string(nil), c.paths...)
}
