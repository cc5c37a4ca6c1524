// Package gocv_compare checks the pure Go grid sampler against OpenCV
// (gocv). These tests require OpenCV to be installed.
//
// Run with: cd imageutil/gocv_compare && go test -v
package gocv_compare

import (
	"image"
	"testing"

	"github.com/wbrown/img2mosaic"
	"github.com/wbrown/img2mosaic/imageutil"
	"gocv.io/x/gocv"
)

// gocvToRGBA converts a gocv.Mat (BGR) to RGBAImage (RGB).
func gocvToRGBA(mat gocv.Mat) *imageutil.RGBAImage {
	height, width := mat.Rows(), mat.Cols()
	img := imageutil.NewRGBAImage(width, height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			vec := mat.GetVecbAt(y, x)
			img.SetRGB(x, y, imageutil.RGB{R: vec[2], G: vec[1], B: vec[0]})
		}
	}
	return img
}

// rgbaToGocv converts an RGBAImage to gocv.Mat (BGR).
func rgbaToGocv(img *imageutil.RGBAImage) gocv.Mat {
	mat := gocv.NewMatWithSize(img.Height(), img.Width(), gocv.MatTypeCV8UC3)

	for y := 0; y < img.Height(); y++ {
		for x := 0; x < img.Width(); x++ {
			c := img.GetRGB(x, y)
			mat.SetUCharAt(y, x*3, c.B)
			mat.SetUCharAt(y, x*3+1, c.G)
			mat.SetUCharAt(y, x*3+2, c.R)
		}
	}
	return mat
}

// Block images keep every nearest-neighbour pixel choice inside one solid
// block, so OpenCV's floor sampling and x/image's center sampling must
// agree exactly.
var blockCases = []struct {
	name       string
	cols, rows int
	block      int
}{
	{"Square", 8, 8, 4},
	{"Wide", 12, 5, 6},
	{"Default grid", img2mosaic.DefaultWidth, img2mosaic.DefaultHeight, 3},
}

func TestCompareNearestResize(t *testing.T) {
	for _, tc := range blockCases {
		t.Run(tc.name, func(t *testing.T) {
			img := imageutil.CreateBlockImage(tc.cols, tc.rows, tc.block)
			mat := rgbaToGocv(img)
			defer mat.Close()

			resizedMat := gocv.NewMat()
			defer resizedMat.Close()
			gocv.Resize(mat, &resizedMat, image.Point{X: tc.cols, Y: tc.rows},
				0, 0, gocv.InterpolationNearestNeighbor)

			pureGo := imageutil.Resize(img, tc.cols, tc.rows, imageutil.InterpolationNearest)
			if diff := imageutil.CalculateMaxDiff(gocvToRGBA(resizedMat), pureGo); diff != 0 {
				t.Errorf("Nearest resize differs from OpenCV, max diff %d", diff)
			}
		})
	}
}

func TestCompareFlip(t *testing.T) {
	img := imageutil.CreateBlockImage(5, 7, 2)
	mat := rgbaToGocv(img)
	defer mat.Close()

	flippedMat := gocv.NewMat()
	defer flippedMat.Close()
	gocv.Flip(mat, &flippedMat, 0) // around the x-axis

	if diff := imageutil.CalculateMaxDiff(gocvToRGBA(flippedMat), imageutil.FlipVertical(img)); diff != 0 {
		t.Errorf("Vertical flip differs from OpenCV, max diff %d", diff)
	}
}

func TestCompareSampleGrid(t *testing.T) {
	for _, tc := range blockCases {
		t.Run(tc.name, func(t *testing.T) {
			img := imageutil.CreateBlockImage(tc.cols, tc.rows, tc.block)
			mat := rgbaToGocv(img)
			defer mat.Close()

			resizedMat := gocv.NewMat()
			defer resizedMat.Close()
			gocv.Resize(mat, &resizedMat, image.Point{X: tc.cols, Y: tc.rows},
				0, 0, gocv.InterpolationNearestNeighbor)
			flippedMat := gocv.NewMat()
			defer flippedMat.Close()
			gocv.Flip(resizedMat, &flippedMat, 0)
			want := gocvToRGBA(flippedMat)

			grid, err := img2mosaic.SampleGrid(img, tc.cols, tc.rows)
			if err != nil {
				t.Fatal(err)
			}
			for _, c := range grid.Cells {
				if got := want.GetRGB(c.X, c.Y); got != c.Source {
					t.Fatalf("Cell (%d,%d): OpenCV %v, sampler %v", c.X, c.Y, got, c.Source)
				}
			}
		})
	}
}
