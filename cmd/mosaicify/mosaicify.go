package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/wbrown/img2mosaic"
	"github.com/wbrown/img2mosaic/imageutil"
)

// Exit codes, one per error kind.
const (
	exitFailure   = 1
	exitConfig    = 2
	exitImage     = 3
	exitExhausted = 4
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("mosaicify", flag.ContinueOnError)
	inputFile := fs.String("input", "",
		"Path to the input image file (required)")
	paletteFile := fs.String("palette", "perler16",
		"Path to the palette JSON file "+
			"(Embedded: "+strings.Join(img2mosaic.EmbeddedPalettes(), ", ")+")")
	width := fs.Int("width", img2mosaic.DefaultWidth,
		"Mosaic width in cells")
	height := fs.Int("height", img2mosaic.DefaultHeight,
		"Mosaic height in cells")
	seed := fs.String("seed", "",
		"Seed for the cell visiting order (default: random per run)")
	outputFile := fs.String("output", "",
		"Path to save a preview image (.png, .jpg, .gif, .qoi)")
	cellSize := fs.Int("cellsize", 12,
		"Preview cell size in pixels")
	legend := fs.Bool("legend", true,
		"Draw the usage report below the preview")
	patternFile := fs.String("pattern", "",
		"Path to save the pattern as JSON (.json.zst for compressed)")
	loadPattern := fs.String("load-pattern", "",
		"Path to a saved pattern to report on and re-render instead of building")
	inspect := fs.String("inspect", "",
		"Print the color at cell x,y (origin bottom-left)")
	suggest := fs.Int("suggest", 0,
		"Print a suggested palette of this many colors instead of building a mosaic")
	suggestMethod := fs.String("suggest-method", "dominant",
		"Palette suggestion method: dominant or kmeans")
	verbose := fs.Bool("v", false,
		"Print timing and fidelity statistics to stderr")
	if err := fs.Parse(args); err != nil {
		return exitConfig
	}

	out := outputs{
		inspect:  *inspect,
		preview:  *outputFile,
		cellSize: *cellSize,
		legend:   *legend,
	}

	if *loadPattern != "" {
		return runPattern(*loadPattern, out)
	}

	if *inputFile == "" {
		fmt.Fprintln(os.Stderr, "Please provide the image using the -input flag")
		fs.PrintDefaults()
		return exitConfig
	}

	img, err := imageutil.LoadImage(*inputFile)
	if err != nil {
		return fail(err)
	}

	if *suggest > 0 {
		return runSuggest(img, *suggest, *suggestMethod, *width * *height)
	}

	opts := []img2mosaic.BuilderOption{
		img2mosaic.WithGridSize(*width, *height),
	}
	if *seed != "" {
		s, err := strconv.ParseUint(*seed, 10, 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid seed %q: %v\n", *seed, err)
			return exitConfig
		}
		opts = append(opts, img2mosaic.WithSeed(s))
	}
	beginInit := time.Now()
	b := img2mosaic.NewBuilder(opts...)
	if err := b.LoadPalette(*paletteFile); err != nil {
		return fail(err)
	}
	endInit := time.Now()

	cells := *width * *height
	stock := 0
	for _, e := range b.Palette() {
		stock += e.Count
	}
	if stock < cells {
		fmt.Fprintf(os.Stderr, "Warning: palette holds %d pieces, mosaic needs %d\n", stock, cells)
	}

	res, err := b.Build(img)
	if err != nil {
		return fail(err)
	}
	endComputation := time.Now()

	if code := out.write(res.Layout, res.Usage); code != 0 {
		return code
	}

	if *patternFile != "" {
		if err := img2mosaic.WritePattern(*patternFile, img2mosaic.NewPattern(res)); err != nil {
			return fail(err)
		}
		fmt.Fprintf(os.Stderr, "Pattern written to %s\n", *patternFile)
	}

	if *verbose {
		fid := res.Fidelity
		fmt.Fprintf(os.Stderr, "Run: %s (seed %d)\n", res.RunID, res.Seed)
		fmt.Fprintf(os.Stderr, "Initialization time: %v\n", endInit.Sub(beginInit))
		fmt.Fprintf(os.Stderr, "Computation time: %v\n", endComputation.Sub(endInit))
		fmt.Fprintf(os.Stderr, "Quantization time: %v\n", b.LastRunTime())
		fmt.Fprintf(os.Stderr, "Distance: mean %.1f, stddev %.1f, max %.1f\n",
			fid.MeanDistance, fid.StdDev, fid.MaxDistance)
		fmt.Fprintf(os.Stderr, "Substituted cells: %d of %d\n", fid.Substituted, res.Usage.Total)
	}
	return 0
}

// outputs holds the report-side flags shared by a fresh build and a
// reloaded pattern.
type outputs struct {
	inspect  string
	preview  string
	cellSize int
	legend   bool
}

// write prints the inspected cell and the usage report, then renders the
// preview if one was requested.
func (o outputs) write(layout *img2mosaic.Layout, usage img2mosaic.Usage) int {
	if o.inspect != "" {
		x, y, err := parseCell(o.inspect)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return exitConfig
		}
		line, err := layout.Inspect(x, y)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return exitConfig
		}
		fmt.Println(line)
	}

	if _, err := usage.WriteTo(os.Stdout); err != nil {
		return fail(err)
	}

	if o.preview != "" {
		popts := img2mosaic.DefaultPreviewOptions()
		popts.CellSize = o.cellSize
		if o.legend {
			popts.Legend = &usage
		}
		preview, err := img2mosaic.RenderPreview(layout, popts)
		if err != nil {
			return fail(err)
		}
		if err := imageutil.SaveImage(preview, o.preview); err != nil {
			return fail(err)
		}
		fmt.Fprintf(os.Stderr, "Preview written to %s\n", o.preview)
	}
	return 0
}

// runPattern reports on a pattern saved by an earlier run.
func runPattern(path string, out outputs) int {
	p, err := img2mosaic.ReadPattern(path)
	if err != nil {
		return fail(err)
	}
	layout, err := p.Layout()
	if err != nil {
		return fail(fmt.Errorf("invalid pattern %s: %w", path, err))
	}
	fmt.Fprintf(os.Stderr, "Pattern %s (%dx%d, seed %d)\n", p.ID, p.Width, p.Height, p.Seed)
	return out.write(layout, img2mosaic.Summarize(layout.Cells))
}

func runSuggest(img *imageutil.RGBAImage, k int, methodName string, cells int) int {
	method, err := img2mosaic.ParseSuggestMethod(methodName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitConfig
	}
	entries, err := img2mosaic.SuggestPalette(img, k, method, cells)
	if err != nil {
		return fail(err)
	}
	data, err := img2mosaic.MarshalPalette(entries)
	if err != nil {
		return fail(err)
	}
	fmt.Println(string(data))
	return 0
}

// parseCell parses "x,y".
func parseCell(s string) (int, int, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, fmt.Errorf("invalid cell %q, expected x,y", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid cell x %q: %w", xs, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid cell y %q: %w", ys, err)
	}
	return x, y, nil
}

// fail prints err and returns the exit code for its kind.
func fail(err error) int {
	switch {
	case errors.Is(err, img2mosaic.ErrConfig):
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		return exitConfig
	case errors.Is(err, imageutil.ErrImage):
		fmt.Fprintf(os.Stderr, "Error processing image: %v\n", err)
		return exitImage
	case errors.Is(err, img2mosaic.ErrInventoryExhausted):
		fmt.Fprintf(os.Stderr, "Not enough pieces: %v\n", err)
		return exitExhausted
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitFailure
	}
}
