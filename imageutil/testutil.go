package imageutil

// CreateGradientImage creates a horizontal gray gradient test image.
func CreateGradientImage(width, height int) *RGBAImage {
	img := NewRGBAImage(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := uint8(255 * x / max(width-1, 1))
			img.SetRGB(x, y, RGB{v, v, v})
		}
	}
	return img
}

// CreateSolidImage creates a solid color image.
func CreateSolidImage(width, height int, c RGB) *RGBAImage {
	img := NewRGBAImage(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGB(x, y, c)
		}
	}
	return img
}

// CreateColorBarsImage creates a color bars test pattern of vertical
// stripes in the classic white, yellow, cyan, green, magenta, red, blue,
// black order.
func CreateColorBarsImage(width, height int) *RGBAImage {
	img := NewRGBAImage(width, height)
	colors := []RGB{
		{255, 255, 255}, // White
		{255, 255, 0},   // Yellow
		{0, 255, 255},   // Cyan
		{0, 255, 0},     // Green
		{255, 0, 255},   // Magenta
		{255, 0, 0},     // Red
		{0, 0, 255},     // Blue
		{0, 0, 0},       // Black
	}

	barWidth := max(width/len(colors), 1)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			colorIdx := min(x/barWidth, len(colors)-1)
			img.SetRGB(x, y, colors[colorIdx])
		}
	}
	return img
}

// CreateBlockImage creates an image of cols x rows solid blocks, each
// blockSize pixels square. Block (bx, by) has the color
// {bx*step, by*step, 128} with step spreading the indices over 0..255.
// Any nearest-neighbour downscale by blockSize lands on one pixel per
// block, which makes expected colors easy to compute.
func CreateBlockImage(cols, rows, blockSize int) *RGBAImage {
	img := NewRGBAImage(cols*blockSize, rows*blockSize)
	for y := 0; y < img.Height(); y++ {
		for x := 0; x < img.Width(); x++ {
			img.SetRGB(x, y, BlockColor(x/blockSize, y/blockSize, cols, rows))
		}
	}
	return img
}

// BlockColor returns the color CreateBlockImage uses for block (bx, by).
func BlockColor(bx, by, cols, rows int) RGB {
	return RGB{
		R: uint8(bx * 255 / max(cols-1, 1)),
		G: uint8(by * 255 / max(rows-1, 1)),
		B: 128,
	}
}

// CalculateMaxDiff calculates the maximum per-channel difference between
// two images, or 256 if their sizes differ.
func CalculateMaxDiff(img1, img2 *RGBAImage) int {
	if img1.Width() != img2.Width() || img1.Height() != img2.Height() {
		return 256
	}

	maxDiff := 0
	for y := 0; y < img1.Height(); y++ {
		for x := 0; x < img1.Width(); x++ {
			c1, c2 := img1.GetRGB(x, y), img2.GetRGB(x, y)
			maxDiff = max(maxDiff,
				abs(int(c1.R)-int(c2.R)),
				abs(int(c1.G)-int(c2.G)),
				abs(int(c1.B)-int(c2.B)))
		}
	}
	return maxDiff
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
