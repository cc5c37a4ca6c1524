package img2mosaic

import (
	"fmt"
	"image"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
)

// Builder runs the full mosaic pipeline: sample the source onto a grid,
// quantize it against a fresh inventory, then lay out and summarize the
// result. A Builder keeps its palette between runs; every Build starts
// from the palette's full stock.
type Builder struct {
	// Configuration options
	Width  int
	Height int

	// Palette state (private)
	palettePath string
	palette     []PaletteEntry
	paletteErr  error

	// Randomness (private)
	shuffler Shuffler
	seed     uint64
	seeded   bool

	// Stats (private)
	lastRunTime time.Duration
}

// BuilderOption is a functional option for configuring a Builder.
type BuilderOption func(*Builder)

// NewBuilder creates a new Builder with the given options.
// Default values: Width=48, Height=48, a fresh random seed per run.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{
		Width:  DefaultWidth,
		Height: DefaultHeight,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// WithGridSize sets the mosaic resolution in cells.
func WithGridSize(width, height int) BuilderOption {
	return func(b *Builder) {
		b.Width = width
		b.Height = height
	}
}

// WithPalette loads the palette at path (or an embedded kit name)
// immediately. A load error is reported by the next Build.
func WithPalette(path string) BuilderOption {
	return func(b *Builder) {
		b.paletteErr = b.LoadPalette(path)
	}
}

// WithPaletteEntries uses entries as the palette.
func WithPaletteEntries(entries []PaletteEntry) BuilderOption {
	return func(b *Builder) {
		b.SetPalette(entries)
	}
}

// WithSeed makes every run visit cells in the same order.
func WithSeed(seed uint64) BuilderOption {
	return func(b *Builder) {
		b.seed = seed
		b.seeded = true
	}
}

// WithShuffler sets the source of visiting order directly. It takes
// precedence over WithSeed.
func WithShuffler(s Shuffler) BuilderOption {
	return func(b *Builder) {
		b.shuffler = s
	}
}

// LoadPalette loads a palette definition. Reloading the path already
// loaded is a no-op.
func (b *Builder) LoadPalette(path string) error {
	if b.palette != nil && b.palettePath == path {
		return nil
	}
	entries, err := ReadPaletteFromJSON(path)
	if err != nil {
		return err
	}
	b.palette = entries
	b.palettePath = path
	b.paletteErr = nil
	return nil
}

// SetPalette replaces the palette with a copy of entries.
func (b *Builder) SetPalette(entries []PaletteEntry) {
	b.palette = append([]PaletteEntry(nil), entries...)
	b.palettePath = ""
	b.paletteErr = nil
}

// Palette returns a copy of the configured palette.
func (b *Builder) Palette() []PaletteEntry {
	return append([]PaletteEntry(nil), b.palette...)
}

// Result is the outcome of one successful run.
type Result struct {
	RunID uuid.UUID
	// Seed reproduces the visiting order with WithSeed. It is zero when
	// a custom Shuffler was supplied.
	Seed      uint64
	Grid      Grid
	Layout    *Layout
	Usage     Usage
	Fidelity  Fidelity
	Palette   []PaletteEntry
	Inventory []PaletteColor
}

// Build samples img onto the configured grid and builds the mosaic.
func (b *Builder) Build(img image.Image) (*Result, error) {
	grid, err := SampleGrid(img, b.Width, b.Height)
	if err != nil {
		return nil, err
	}
	return b.BuildGrid(grid)
}

// BuildGrid builds the mosaic for an already sampled grid.
func (b *Builder) BuildGrid(grid Grid) (*Result, error) {
	start := time.Now()
	defer func() { b.lastRunTime = time.Since(start) }()

	if b.paletteErr != nil {
		return nil, b.paletteErr
	}
	inv, err := BuildInventory(b.palette)
	if err != nil {
		return nil, err
	}

	shuffler, seed := b.shuffler, uint64(0)
	if shuffler == nil {
		seed = b.seed
		if !b.seeded {
			seed = rand.Uint64()
		}
		shuffler = rand.New(rand.NewPCG(seed, seed))
	}

	assignments, err := Quantize(grid, inv, shuffler)
	if err != nil {
		return nil, err
	}
	layout, err := NewLayout(grid.Width, grid.Height, assignments)
	if err != nil {
		return nil, fmt.Errorf("quantize produced an incomplete layout: %w", err)
	}

	return &Result{
		RunID:     uuid.New(),
		Seed:      seed,
		Grid:      grid,
		Layout:    layout,
		Usage:     Summarize(layout.Cells),
		Fidelity:  MeasureFidelity(layout.Cells),
		Palette:   b.Palette(),
		Inventory: inv.Colors(),
	}, nil
}

// LastRunTime returns how long the most recent BuildGrid took.
func (b *Builder) LastRunTime() time.Duration {
	return b.lastRunTime
}
