//go:build !nogui

package gui

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
)

// viewportLayout centers images at their own pixel size and reports every
// new area, so previews are fitted to the space actually on screen.
type viewportLayout struct {
	onResize func(w, h int)
	last     fyne.Size
}

func newViewportLayout(onResize func(w, h int)) *viewportLayout {
	return &viewportLayout{onResize: onResize}
}

func (l *viewportLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	for _, o := range objects {
		s := size
		if img, ok := o.(*canvas.Image); ok {
			s = bitmapSize(img.Image, size)
		}
		o.Resize(s)
		o.Move(fyne.NewPos((size.Width-s.Width)/2, (size.Height-s.Height)/2))
	}
	if size == l.last {
		return
	}
	l.last = size
	if l.onResize != nil && size.Width >= 1 && size.Height >= 1 {
		l.onResize(int(size.Width), int(size.Height))
	}
}

func (l *viewportLayout) MinSize([]fyne.CanvasObject) fyne.Size {
	return fyne.NewSize(120, 90)
}

// bitmapSize is the bitmap's pixel size, never larger than area
func bitmapSize(img image.Image, area fyne.Size) fyne.Size {
	if img == nil {
		return fyne.NewSize(0, 0)
	}
	b := img.Bounds()
	return fyne.NewSize(
		min(float32(b.Dx()), area.Width),
		min(float32(b.Dy()), area.Height),
	)
}
