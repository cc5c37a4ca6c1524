package img2mosaic

import (
	"fmt"
	"image"

	"github.com/wbrown/img2mosaic/imageutil"
)

// Default grid resolution in cells.
const (
	DefaultWidth  = 48
	DefaultHeight = 48
)

// GridCell is one sampled cell of the source image.
type GridCell struct {
	X, Y   int
	Source RGB
}

// Grid is a Width x Height set of sampled cells. Cells are stored in
// row-major order, but consumers must not depend on it: Validate only
// requires every coordinate to appear exactly once.
type Grid struct {
	Width, Height int
	Cells         []GridCell
}

// NewGrid builds a row-major grid, calling at for each coordinate.
func NewGrid(width, height int, at func(x, y int) RGB) Grid {
	cells := make([]GridCell, 0, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			cells = append(cells, GridCell{X: x, Y: y, Source: at(x, y)})
		}
	}
	return Grid{Width: width, Height: height, Cells: cells}
}

// Validate checks that the grid holds exactly one cell per coordinate in
// [0,Width) x [0,Height).
func (g Grid) Validate() error {
	if g.Width <= 0 || g.Height <= 0 {
		return fmt.Errorf("%w: grid size %dx%d", ErrPreconditionViolation, g.Width, g.Height)
	}
	if len(g.Cells) != g.Width*g.Height {
		return fmt.Errorf("%w: grid %dx%d has %d cells, want %d",
			ErrPreconditionViolation, g.Width, g.Height, len(g.Cells), g.Width*g.Height)
	}
	seen := make([]bool, len(g.Cells))
	for _, c := range g.Cells {
		if c.X < 0 || c.X >= g.Width || c.Y < 0 || c.Y >= g.Height {
			return fmt.Errorf("%w: cell (%d,%d) outside %dx%d grid",
				ErrPreconditionViolation, c.X, c.Y, g.Width, g.Height)
		}
		idx := c.Y*g.Width + c.X
		if seen[idx] {
			return fmt.Errorf("%w: duplicate cell (%d,%d)", ErrPreconditionViolation, c.X, c.Y)
		}
		seen[idx] = true
	}
	return nil
}

// SampleGrid resamples img to exactly width x height with nearest
// neighbour sampling and returns it as a grid with the origin at the
// bottom: row y of the grid is row height-1-y of the resampled image.
// The source aspect ratio is ignored. Colors are read as straight RGB;
// alpha is discarded.
func SampleGrid(img image.Image, width, height int) (Grid, error) {
	if width <= 0 || height <= 0 {
		return Grid{}, fmt.Errorf("%w: grid size %dx%d must be positive", ErrConfig, width, height)
	}
	if img.Bounds().Empty() {
		return Grid{}, fmt.Errorf("%w: source image is empty", imageutil.ErrImage)
	}
	resized := imageutil.Resize(imageutil.RGBAImageFromImage(img), width, height,
		imageutil.InterpolationNearest)
	flipped := imageutil.FlipVertical(resized)
	return NewGrid(width, height, flipped.GetRGB), nil
}
