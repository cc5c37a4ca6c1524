package img2mosaic

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/wbrown/img2mosaic/imageutil"
)

// SortLayout returns a copy of assignments ordered by row then column
// (Y ascending, then X ascending). The sort is stable and the input is
// left untouched.
func SortLayout(assignments []Assignment) []Assignment {
	sorted := slices.Clone(assignments)
	slices.SortStableFunc(sorted, func(a, b Assignment) int {
		if c := cmp.Compare(a.Y, b.Y); c != 0 {
			return c
		}
		return cmp.Compare(a.X, b.X)
	})
	return sorted
}

// Layout is a complete, row-major mosaic: Cells[y*Width+x] holds the
// assignment for (x, y). Row 0 is the bottom row of the picture.
type Layout struct {
	Width, Height int
	Cells         []Assignment
}

// NewLayout sorts assignments and checks that they cover the
// width x height grid exactly once.
func NewLayout(width, height int, assignments []Assignment) (*Layout, error) {
	if len(assignments) != width*height {
		return nil, fmt.Errorf("%w: %d assignments for a %dx%d grid",
			ErrPreconditionViolation, len(assignments), width, height)
	}
	cells := SortLayout(assignments)
	for i, a := range cells {
		if a.X != i%width || a.Y != i/width {
			return nil, fmt.Errorf("%w: layout position %d holds cell (%d,%d)",
				ErrPreconditionViolation, i, a.X, a.Y)
		}
	}
	return &Layout{Width: width, Height: height, Cells: cells}, nil
}

// At returns the assignment at (x, y).
func (l *Layout) At(x, y int) (Assignment, bool) {
	if x < 0 || x >= l.Width || y < 0 || y >= l.Height {
		return Assignment{}, false
	}
	return l.Cells[y*l.Width+x], true
}

// Inspect describes the cell at (x, y) in the form
// "Selected Color: rgb(r, g, b), Position: xy(x, y)".
func (l *Layout) Inspect(x, y int) (string, error) {
	a, ok := l.At(x, y)
	if !ok {
		return "", fmt.Errorf("position (%d,%d) outside %dx%d layout", x, y, l.Width, l.Height)
	}
	return fmt.Sprintf("Selected Color: rgb(%d, %d, %d), Position: xy(%d, %d)",
		a.Color.R, a.Color.G, a.Color.B, a.X, a.Y), nil
}

// Image renders the layout one pixel per cell, upright: layout row y is
// drawn at image row Height-1-y.
func (l *Layout) Image() *imageutil.RGBAImage {
	img := imageutil.NewRGBAImage(l.Width, l.Height)
	for _, a := range l.Cells {
		img.SetRGB(a.X, l.Height-1-a.Y, a.Color)
	}
	return img
}
