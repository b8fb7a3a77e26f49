package components

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// HalfBlock packs two vertical pixels into one terminal cell: the foreground
// paints the upper pixel and the background the lower one.
const HalfBlock = "▀"

// ImageView draws a bitmap with half-block cells. The rendered string is
// cached until a different bitmap is set.
type ImageView struct {
	img      image.Image
	rendered string
}

func NewImageView() *ImageView {
	return &ImageView{}
}

// SetImage replaces the bitmap
func (v *ImageView) SetImage(img image.Image) {
	if img == v.img {
		return
	}
	v.img = img
	v.rendered = renderHalfBlocks(img)
}

// Rows returns the terminal rows a bitmap of pixel height h occupies
func Rows(h int) int {
	return (h + 1) / 2
}

func (v *ImageView) View() string {
	return v.rendered
}

func renderHalfBlocks(img image.Image) string {
	if img == nil {
		return ""
	}
	b := img.Bounds()
	var sb strings.Builder
	for row := 0; row < Rows(b.Dy()); row++ {
		y := b.Min.Y + 2*row
		if row > 0 {
			sb.WriteByte('\n')
		}
		for x := b.Min.X; x < b.Max.X; x++ {
			style := lipgloss.NewStyle().Foreground(hexColor(img.At(x, y)))
			if y+1 < b.Max.Y {
				style = style.Background(hexColor(img.At(x, y+1)))
			}
			sb.WriteString(style.Render(HalfBlock))
		}
	}
	return sb.String()
}

func hexColor(c color.Color) lipgloss.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B))
}
