// Package imageutil provides the image plumbing around the mosaic core:
// decoding and encoding source and preview images, resampling, and a few
// synthetic images for tests.
package imageutil

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// RGB represents a color in the RGB color space with 8-bit channels.
type RGB struct {
	R, G, B uint8
}

// ToColor converts RGB to an opaque color.RGBA.
func (rgb RGB) ToColor() color.RGBA {
	return color.RGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255}
}

// RGBFromColor converts a color.Color to straight (non-premultiplied)
// RGB. Alpha is dropped, so a half transparent red reads as full red.
func RGBFromColor(c color.Color) RGB {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGB{R: n.R, G: n.G, B: n.B}
}

// RGBAImage wraps image.RGBA with convenience methods for pixel access.
// The origin is always (0, 0).
type RGBAImage struct {
	*image.RGBA
}

// NewRGBAImage creates a new RGBAImage with the specified dimensions.
func NewRGBAImage(width, height int) *RGBAImage {
	return &RGBAImage{
		RGBA: image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// RGBAImageFromImage converts any image.Image to an opaque RGBAImage
// anchored at the origin. Pixels keep their straight RGB values; alpha is
// discarded rather than multiplied in.
func RGBAImageFromImage(img image.Image) *RGBAImage {
	bounds := img.Bounds()
	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		if rgba, ok := img.(*image.RGBA); ok && bounds.Min == (image.Point{}) {
			return &RGBAImage{RGBA: rgba}
		}
		dst := NewRGBAImage(bounds.Dx(), bounds.Dy())
		draw.Draw(dst.RGBA, dst.Bounds(), img, bounds.Min, draw.Src)
		return dst
	}

	dst := NewRGBAImage(bounds.Dx(), bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			dst.SetRGB(x-bounds.Min.X, y-bounds.Min.Y, RGBFromColor(img.At(x, y)))
		}
	}
	return dst
}

// Width returns the image width.
func (img *RGBAImage) Width() int {
	return img.Bounds().Dx()
}

// Height returns the image height.
func (img *RGBAImage) Height() int {
	return img.Bounds().Dy()
}

// GetRGB returns the RGB value at (x, y).
func (img *RGBAImage) GetRGB(x, y int) RGB {
	c := img.RGBAAt(x, y)
	return RGB{R: c.R, G: c.G, B: c.B}
}

// SetRGB sets the RGB value at (x, y) with full opacity.
func (img *RGBAImage) SetRGB(x, y int, c RGB) {
	img.SetRGBA(x, y, c.ToColor())
}

// FlipVertical returns a copy of the image with its rows in reverse
// order, so the last row becomes the first.
func FlipVertical(img *RGBAImage) *RGBAImage {
	w, h := img.Width(), img.Height()
	dst := NewRGBAImage(w, h)
	rowBytes := w * 4
	for y := 0; y < h; y++ {
		src := img.Pix[y*img.Stride : y*img.Stride+rowBytes]
		dy := h - 1 - y
		copy(dst.Pix[dy*dst.Stride:dy*dst.Stride+rowBytes], src)
	}
	return dst
}
