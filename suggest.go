package img2mosaic

import (
	"cmp"
	"fmt"
	"image"
	"math"
	"slices"
	"strings"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
	"github.com/wbrown/img2mosaic/imageutil"
)

// SuggestMethod selects how SuggestPalette finds candidate colors.
type SuggestMethod int

const (
	SuggestDominant SuggestMethod = iota
	SuggestKMeans
)

func (m SuggestMethod) String() string {
	switch m {
	case SuggestKMeans:
		return "kmeans"
	default:
		return "dominant"
	}
}

// ParseSuggestMethod parses "dominant" or "kmeans".
func ParseSuggestMethod(s string) (SuggestMethod, error) {
	switch strings.ToLower(s) {
	case "dominant", "dominantcolor":
		return SuggestDominant, nil
	case "kmeans":
		return SuggestKMeans, nil
	}
	return 0, fmt.Errorf("unknown suggest method %q, options are dominant or kmeans", s)
}

type weightedColor struct {
	color  RGB
	weight float64
}

// SuggestPalette proposes a starting kit of up to k colors for img. Stock
// is split between the colors in proportion to how much of the image
// each covers, and always adds up to exactly cells, so the kit can build
// a mosaic of that many cells.
func SuggestPalette(img image.Image, k int, method SuggestMethod, cells int) ([]PaletteEntry, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: suggested palette size %d must be positive", ErrConfig, k)
	}
	if cells < 0 {
		return nil, fmt.Errorf("%w: negative cell count %d", ErrConfig, cells)
	}

	var candidates []weightedColor
	switch method {
	case SuggestKMeans:
		var err error
		if candidates, err = kmeansColors(img, k); err != nil {
			return nil, err
		}
	default:
		candidates = dominantColors(img, k)
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("no colors found in image")
	}

	slices.SortStableFunc(candidates, func(a, b weightedColor) int {
		return cmp.Compare(b.weight, a.weight)
	})
	counts := apportion(candidates, cells)

	entries := make([]PaletteEntry, len(candidates))
	for i, c := range candidates {
		entries[i] = PaletteEntry{Name: Hex(c.color), Color: c.color, Count: counts[i]}
	}
	return entries, nil
}

func dominantColors(img image.Image, k int) []weightedColor {
	found := dominantcolor.FindWeight(img, k)
	out := make([]weightedColor, 0, len(found))
	for _, c := range found {
		out = append(out, weightedColor{color: rgbFromColor(c.RGBA), weight: c.Weight})
	}
	return out
}

func kmeansColors(img image.Image, k int) ([]weightedColor, error) {
	b := img.Bounds()
	if b.Empty() {
		return nil, nil
	}

	// Downscale to keep kmeans tractable on large images.
	const maxSamples = 12000
	src := imageutil.RGBAImageFromImage(img)
	if n := b.Dx() * b.Dy(); n > maxSamples {
		scale := math.Sqrt(float64(maxSamples) / float64(n))
		w := max(int(float64(b.Dx())*scale), 1)
		h := max(int(float64(b.Dy())*scale), 1)
		src = imageutil.Resize(src, w, h, imageutil.InterpolationArea)
	}

	var dataset clusters.Observations
	for y := 0; y < src.Height(); y++ {
		for x := 0; x < src.Width(); x++ {
			c := src.GetRGB(x, y)
			dataset = append(dataset, clusters.Coordinates{
				float64(c.R) / 255.0,
				float64(c.G) / 255.0,
				float64(c.B) / 255.0,
			})
		}
	}
	k = min(k, len(dataset))

	cc, err := kmeans.New().Partition(dataset, k)
	if err != nil {
		return nil, fmt.Errorf("kmeans failed: %w", err)
	}

	out := make([]weightedColor, 0, len(cc))
	for _, c := range cc {
		if len(c.Observations) == 0 || len(c.Center) < 3 {
			continue
		}
		col := colorful.Color{R: c.Center[0], G: c.Center[1], B: c.Center[2]}.Clamped()
		r, g, bl := col.RGB255()
		out = append(out, weightedColor{
			color:  RGB{R: r, G: g, B: bl},
			weight: float64(len(c.Observations)),
		})
	}
	return out, nil
}

// apportion splits total between colors by weight using the largest
// remainder method, so the counts always sum to total.
func apportion(colors []weightedColor, total int) []int {
	weights := make([]float64, len(colors))
	var sum float64
	for i, c := range colors {
		weights[i] = max(c.weight, 0)
		sum += weights[i]
	}
	if sum == 0 {
		for i := range weights {
			weights[i] = 1
		}
		sum = float64(len(weights))
	}

	type remainder struct {
		idx  int
		frac float64
	}
	counts := make([]int, len(colors))
	rems := make([]remainder, len(colors))
	assigned := 0
	for i, w := range weights {
		share := float64(total) * w / sum
		counts[i] = int(math.Floor(share))
		assigned += counts[i]
		rems[i] = remainder{i, share - float64(counts[i])}
	}
	slices.SortStableFunc(rems, func(a, b remainder) int {
		return cmp.Compare(b.frac, a.frac)
	})
	for i := 0; assigned < total; i++ {
		counts[rems[i%len(rems)].idx]++
		assigned++
	}
	return counts
}
