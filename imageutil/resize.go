package imageutil

import (
	"image"

	"golang.org/x/image/draw"
)

// Interpolation specifies the interpolation method for resizing.
type Interpolation int

const (
	// InterpolationNearest copies a single representative source pixel
	// into each destination pixel. No averaging takes place, so every
	// output color exists in the source.
	InterpolationNearest Interpolation = iota

	// InterpolationArea uses Catmull-Rom, the closest equivalent to
	// OpenCV's INTER_AREA for downscaling. Output colors are blends.
	InterpolationArea
)

func (i Interpolation) scaler() draw.Scaler {
	switch i {
	case InterpolationArea:
		return draw.CatmullRom
	default:
		return draw.NearestNeighbor
	}
}

// Resize resizes an RGBA image to exactly width x height using the given
// interpolation method. The aspect ratio of the source is not preserved.
func Resize(img *RGBAImage, width, height int, interp Interpolation) *RGBAImage {
	dst := NewRGBAImage(width, height)
	dstRect := image.Rect(0, 0, width, height)
	interp.scaler().Scale(dst.RGBA, dstRect, img.RGBA, img.Bounds(), draw.Src, nil)
	return dst
}

