// Package preview decodes the image at the head of the queue and fits it to
// the viewport the shell reports.
package preview

import (
	"image"
	"image/color"
	_ "image/jpeg" // register decoders
	_ "image/png"
	"os"

	"imgsort/internal/catalog"
	"imgsort/internal/errors"
	"imgsort/internal/log"

	"github.com/nfnt/resize"
	"golang.org/x/image/draw"
)

// PlaceholderColor fills the viewport when there is nothing to show
var PlaceholderColor = color.NRGBA{R: 0x30, G: 0x30, B: 0x30, A: 0xff}

// Fit scales an imgW×imgH image into a viewW×viewH viewport without ever
// enlarging it. The height is clamped first; the width is then clamped
// against the already scaled width. Dimensions are truncated, never below 1.
func Fit(imgW, imgH, viewW, viewH int) (w, h int, scale float64) {
	if imgW <= 0 || imgH <= 0 {
		return 1, 1, 1
	}
	viewW = max(viewW, 1)
	viewH = max(viewH, 1)

	scale = min(1, float64(viewH)/float64(imgH))
	scaledW := float64(imgW) * scale
	scale *= min(1, float64(viewW)/scaledW)

	w = max(int(float64(imgW)*scale), 1)
	h = max(int(float64(imgH)*scale), 1)
	return w, h, scale
}

// Placeholder returns a flat bitmap the size of the viewport
func Placeholder(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))
	draw.Draw(img, img.Bounds(), image.NewUniform(PlaceholderColor), image.Point{}, draw.Src)
	return img
}

// Pipeline renders previews and keeps the last good bitmap. A failed render
// leaves that bitmap in place.
type Pipeline struct {
	current image.Image
	path    string
	viewW   int
	viewH   int
}

// New creates a pipeline that starts out showing nothing
func New() *Pipeline {
	return &Pipeline{}
}

// Current returns the last bitmap rendered successfully, or nil
func (p *Pipeline) Current() image.Image {
	return p.current
}

// CurrentPath returns the file behind Current; empty for the placeholder
func (p *Pipeline) CurrentPath() string {
	return p.path
}

// Render decodes path and fits it to the viewport
func (p *Pipeline) Render(path string, viewW, viewH int) (image.Image, error) {
	if p.current != nil && p.path == path && p.viewW == viewW && p.viewH == viewH {
		return p.current, nil
	}

	img, err := Load(path, viewW, viewH)
	if err != nil {
		log.LogWithError(err).Warn("Preview failed; keeping previous image")
		return nil, err
	}
	p.set(img, path, viewW, viewH)
	return img, nil
}

// RenderHead renders the current image of c, or the placeholder when c is empty
func (p *Pipeline) RenderHead(c *catalog.Catalog, viewW, viewH int) (image.Image, error) {
	head, ok := c.PeekHead()
	if !ok {
		img := Placeholder(viewW, viewH)
		p.set(img, "", viewW, viewH)
		return img, nil
	}
	return p.Render(head, viewW, viewH)
}

func (p *Pipeline) set(img image.Image, path string, viewW, viewH int) {
	p.current = img
	p.path = path
	p.viewW = viewW
	p.viewH = viewH
}

// Load decodes path and returns it fitted to the viewport as an NRGBA bitmap.
func Load(path string, viewW, viewH int) (*image.NRGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewImageError("cannot open image", path, errors.DecodeFailure, err)
	}
	defer f.Close()

	src, format, err := image.Decode(f)
	if err != nil {
		return nil, errors.NewImageError("cannot decode image", path, errors.DecodeFailure, err)
	}

	b := src.Bounds()
	w, h, scale := Fit(b.Dx(), b.Dy(), viewW, viewH)
	log.LogWithFields(
		log.F("path", path),
		log.F("format", format),
		log.F("width", w),
		log.F("height", h),
		log.F("scale", scale),
	).Debug("Rendering preview")

	if scale < 1 {
		src = resize.Resize(uint(w), uint(h), src, resize.Lanczos3)
		if src == nil || src.Bounds().Empty() {
			return nil, errors.NewImageError("empty resize result", path, errors.ResizeFailure, nil)
		}
	}
	return toNRGBA(src), nil
}

func toNRGBA(src image.Image) *image.NRGBA {
	if img, ok := src.(*image.NRGBA); ok && img.Rect.Min == (image.Point{}) {
		return img
	}
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}
