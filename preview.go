package img2mosaic

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"github.com/wbrown/img2mosaic/imageutil"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// PreviewOptions controls RenderPreview.
type PreviewOptions struct {
	// CellSize is the side of one cell in pixels, gap included.
	CellSize int
	// Gap is the black border left between neighbouring cells.
	Gap int
	// Legend, when set, appends the usage report below the grid with a
	// swatch per color.
	Legend   *Usage
	FontSize float64
}

// DefaultPreviewOptions draws 12px cells with a 1px gap and no legend.
func DefaultPreviewOptions() PreviewOptions {
	return PreviewOptions{CellSize: 12, Gap: 1, FontSize: 12}
}

var legendFont = sync.OnceValues(func() (*truetype.Font, error) {
	return freetype.ParseFont(goregular.TTF)
})

// RenderPreview draws the layout as a grid of colored squares on black,
// upright (layout row 0 at the bottom of the image).
func RenderPreview(l *Layout, opts PreviewOptions) (*imageutil.RGBAImage, error) {
	if opts.CellSize < 1 {
		return nil, fmt.Errorf("preview cell size %d must be positive", opts.CellSize)
	}
	if opts.Gap < 0 || opts.Gap >= opts.CellSize {
		return nil, fmt.Errorf("preview gap %d must be in [0,%d)", opts.Gap, opts.CellSize)
	}
	gridW, gridH := l.Width*opts.CellSize, l.Height*opts.CellSize

	var (
		lines      []legendLine
		ttf        *truetype.Font
		lineHeight int
		legendW    int
	)
	if opts.Legend != nil {
		if opts.FontSize <= 0 {
			opts.FontSize = 12
		}
		var err error
		if ttf, err = legendFont(); err != nil {
			return nil, fmt.Errorf("failed to load legend font: %w", err)
		}
		lines = legendLines(*opts.Legend)
		lineHeight = int(math.Ceil(opts.FontSize * 1.5))
		legendW = measureLegend(ttf, opts.FontSize, lines, lineHeight)
	}

	width := max(gridW, legendW)
	height := gridH + len(lines)*lineHeight
	img := imageutil.NewRGBAImage(width, height)
	draw.Draw(img.RGBA, img.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)

	side := opts.CellSize - opts.Gap
	for _, a := range l.Cells {
		x0 := a.X * opts.CellSize
		y0 := (l.Height - 1 - a.Y) * opts.CellSize
		rect := image.Rect(x0, y0, x0+side, y0+side)
		draw.Draw(img.RGBA, rect, image.NewUniform(a.Color.ToColor()), image.Point{}, draw.Src)
	}

	if len(lines) > 0 {
		if err := drawLegend(img, ttf, opts.FontSize, lines, gridH, lineHeight); err != nil {
			return nil, err
		}
	}
	return img, nil
}

type legendLine struct {
	text   string
	swatch *RGB
}

func legendLines(u Usage) []legendLine {
	lines := make([]legendLine, 0, len(u.Lines)+1)
	for _, l := range u.Lines {
		if l.Count == 0 {
			continue
		}
		c := l.Color
		lines = append(lines, legendLine{
			text:   fmt.Sprintf("%s - %d pieces", l.Name, l.Count),
			swatch: &c,
		})
	}
	return append(lines, legendLine{text: fmt.Sprintf("Total Pieces: %d", u.Total)})
}

func measureLegend(ttf *truetype.Font, size float64, lines []legendLine, lineHeight int) int {
	face := truetype.NewFace(ttf, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingFull})
	defer face.Close()

	widest := 0
	for _, l := range lines {
		widest = max(widest, font.MeasureString(face, l.text).Ceil())
	}
	// swatch column plus margins
	return widest + 2*lineHeight
}

func drawLegend(img *imageutil.RGBAImage, ttf *truetype.Font, size float64,
	lines []legendLine, top, lineHeight int) error {
	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(ttf)
	ctx.SetFontSize(size)
	ctx.SetClip(img.Bounds())
	ctx.SetDst(img.RGBA)
	ctx.SetSrc(image.White)
	ctx.SetHinting(font.HintingFull)

	swatch := lineHeight * 2 / 3
	for i, l := range lines {
		y0 := top + i*lineHeight
		if l.swatch != nil {
			pad := (lineHeight - swatch) / 2
			rect := image.Rect(pad, y0+pad, pad+swatch, y0+pad+swatch)
			draw.Draw(img.RGBA, rect, image.NewUniform(l.swatch.ToColor()), image.Point{}, draw.Src)
		}
		baseline := y0 + (lineHeight+int(size))/2
		if _, err := ctx.DrawString(l.text, freetype.Pt(lineHeight+lineHeight/2, baseline)); err != nil {
			return fmt.Errorf("failed to draw legend: %w", err)
		}
	}
	return nil
}
