package img2mosaic

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/wbrown/img2mosaic/imageutil"
)

func TestSampleGridFlipsVertically(t *testing.T) {
	const cols, rows = 4, 3
	img := imageutil.CreateBlockImage(cols, rows, 5)

	grid, err := SampleGrid(img, cols, rows)
	if err != nil {
		t.Fatal(err)
	}
	if err := grid.Validate(); err != nil {
		t.Fatalf("Sampled grid invalid: %v", err)
	}
	for _, c := range grid.Cells {
		want := imageutil.BlockColor(c.X, rows-1-c.Y, cols, rows)
		if c.Source != want {
			t.Errorf("Cell (%d,%d): expected source row %d color %v, got %v",
				c.X, c.Y, rows-1-c.Y, want, c.Source)
		}
	}
}

func TestSampleGridReadsStraightRGB(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, G: 0, B: 0, A: 128})
	img.SetNRGBA(1, 0, color.NRGBA{R: 0, G: 90, B: 200, A: 0})

	grid, err := SampleGrid(img, 2, 1)
	if err != nil {
		t.Fatal(err)
	}
	want := []RGB{{R: 255, G: 0, B: 0}, {R: 0, G: 90, B: 200}}
	for _, c := range grid.Cells {
		if c.Source != want[c.X] {
			t.Errorf("Cell (%d,%d): expected %v ignoring alpha, got %v",
				c.X, c.Y, want[c.X], c.Source)
		}
	}
}

func TestSampleGridIgnoresAspectRatio(t *testing.T) {
	img := imageutil.CreateGradientImage(200, 20)
	grid, err := SampleGrid(img, 8, 8)
	if err != nil {
		t.Fatal(err)
	}
	if grid.Width != 8 || grid.Height != 8 || len(grid.Cells) != 64 {
		t.Errorf("Expected an 8x8 grid, got %dx%d with %d cells",
			grid.Width, grid.Height, len(grid.Cells))
	}
}

func TestSampleGridErrors(t *testing.T) {
	img := imageutil.CreateGradientImage(4, 4)
	if _, err := SampleGrid(img, 0, 4); !errors.Is(err, ErrConfig) {
		t.Errorf("Zero width: expected ErrConfig, got %v", err)
	}
	empty := image.NewRGBA(image.Rect(0, 0, 0, 0))
	if _, err := SampleGrid(empty, 4, 4); !errors.Is(err, imageutil.ErrImage) {
		t.Errorf("Empty image: expected ErrImage, got %v", err)
	}
}

func TestGridValidate(t *testing.T) {
	tests := []struct {
		name string
		grid Grid
	}{
		{"zero size", Grid{}},
		{"missing cell", Grid{Width: 2, Height: 1, Cells: []GridCell{{X: 0, Y: 0}}}},
		{"out of bounds", Grid{Width: 1, Height: 1, Cells: []GridCell{{X: 1, Y: 0}}}},
		{"duplicate", Grid{Width: 2, Height: 1, Cells: []GridCell{{X: 1, Y: 0}, {X: 1, Y: 0}}}},
	}
	for _, tt := range tests {
		if err := tt.grid.Validate(); !errors.Is(err, ErrPreconditionViolation) {
			t.Errorf("%s: expected ErrPreconditionViolation, got %v", tt.name, err)
		}
	}

	shuffled := Grid{Width: 2, Height: 1, Cells: []GridCell{{X: 1, Y: 0}, {X: 0, Y: 0}}}
	if err := shuffled.Validate(); err != nil {
		t.Errorf("Cell order should not matter: %v", err)
	}
}
