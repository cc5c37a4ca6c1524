package img2mosaic

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/wbrown/img2mosaic/imageutil"
)

// Luma weights applied to each channel difference before squaring. Green
// dominates and blue matters least, roughly following how bright each
// primary looks to the eye.
const (
	redWeight   = 0.3
	greenWeight = 0.59
	blueWeight  = 0.11
)

// RGB represents a color in the RGB color space with 8-bit channels.
type RGB = imageutil.RGB

// LumaDistance returns the luma-weighted squared distance between two
// colors: (0.3*dR)^2 + (0.59*dG)^2 + (0.11*dB)^2, where each delta is
// a.channel - b.channel.
func LumaDistance(a, b RGB) float64 {
	dr := (float64(a.R) - float64(b.R)) * redWeight
	dg := (float64(a.G) - float64(b.G)) * greenWeight
	db := (float64(a.B) - float64(b.B)) * blueWeight
	return dr*dr + dg*dg + db*db
}

// Hex formats a color as #rrggbb.
func Hex(c RGB) string {
	return toColorful(c).Hex()
}

// ParseHex parses a #rrggbb or #rgb string.
func ParseHex(s string) (RGB, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}, nil
}

func toColorful(c RGB) colorful.Color {
	cf, _ := colorful.MakeColor(c.ToColor())
	return cf
}

// rgbFromColor converts any color.Color, dropping alpha.
func rgbFromColor(c color.Color) RGB {
	return imageutil.RGBFromColor(c)
}
