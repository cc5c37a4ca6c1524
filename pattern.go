package img2mosaic

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"
)

// Pattern is the portable form of a finished mosaic: the kit it was built
// from, how much of each color it uses, and the grid as palette indices.
type Pattern struct {
	ID      string         `json:"id"`
	Created time.Time      `json:"created"`
	Seed    uint64         `json:"seed,omitempty"`
	Width   int            `json:"width"`
	Height  int            `json:"height"`
	Palette []PatternColor `json:"palette"`
	Total   int            `json:"total"`
	// Rows holds palette indices, Rows[y][x], with row 0 at the bottom.
	Rows [][]int `json:"rows"`
}

// PatternColor is one palette entry of a Pattern.
type PatternColor struct {
	Name  string `json:"name"`
	Hex   string `json:"hex"`
	Stock int    `json:"stock"`
	Used  int    `json:"used"`
}

// NewPattern captures res as a Pattern.
func NewPattern(res *Result) Pattern {
	p := Pattern{
		ID:      res.RunID.String(),
		Created: time.Now().UTC(),
		Seed:    res.Seed,
		Width:   res.Layout.Width,
		Height:  res.Layout.Height,
		Palette: make([]PatternColor, len(res.Palette)),
		Total:   res.Usage.Total,
		Rows:    make([][]int, res.Layout.Height),
	}
	for i, e := range res.Palette {
		p.Palette[i] = PatternColor{Name: e.Name, Hex: Hex(e.Color), Stock: e.Count}
	}
	for y := range p.Rows {
		p.Rows[y] = make([]int, p.Width)
	}
	for _, a := range res.Layout.Cells {
		p.Rows[a.Y][a.X] = a.Index
		p.Palette[a.Index].Used++
	}
	return p
}

// Layout rebuilds the layout a Pattern describes. Source colors are not
// stored, so Source and Substituted are left zero.
func (p Pattern) Layout() (*Layout, error) {
	if p.Width <= 0 || p.Height <= 0 {
		return nil, fmt.Errorf("pattern size %dx%d must be positive", p.Width, p.Height)
	}
	if len(p.Rows) != p.Height {
		return nil, fmt.Errorf("pattern has %d rows, want %d", len(p.Rows), p.Height)
	}
	colors := make([]RGB, len(p.Palette))
	for i, c := range p.Palette {
		rgb, err := ParseHex(c.Hex)
		if err != nil {
			return nil, fmt.Errorf("pattern color %d: %w", i, err)
		}
		colors[i] = rgb
	}
	assignments := make([]Assignment, 0, p.Width*p.Height)
	for y, row := range p.Rows {
		if len(row) != p.Width {
			return nil, fmt.Errorf("pattern row %d has %d cells, want %d", y, len(row), p.Width)
		}
		for x, idx := range row {
			if idx < 0 || idx >= len(colors) {
				return nil, fmt.Errorf("pattern cell (%d,%d) has palette index %d", x, y, idx)
			}
			assignments = append(assignments, Assignment{
				X: x, Y: y, Index: idx, Name: p.Palette[idx].Name, Color: colors[idx],
			})
		}
	}
	return NewLayout(p.Width, p.Height, assignments)
}

// isCompressedPath reports whether path names a zstd-compressed pattern.
func isCompressedPath(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".zst")
}

// WritePattern saves p as JSON, zstd-compressed when path ends in ".zst".
func WritePattern(path string, p Pattern) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create pattern file: %w", err)
	}
	if err := EncodePattern(out, p, isCompressedPath(path)); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// EncodePattern writes p as indented JSON, optionally zstd-compressed.
func EncodePattern(w io.Writer, p Pattern, compress bool) error {
	if !compress {
		return writePatternJSON(w, p)
	}
	enc, err := zstd.NewWriter(w)
	if err != nil {
		return err
	}
	if err := writePatternJSON(enc, p); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

func writePatternJSON(w io.Writer, p Pattern) error {
	je := json.NewEncoder(w)
	je.SetIndent("", "  ")
	if err := je.Encode(p); err != nil {
		return fmt.Errorf("failed to encode pattern: %w", err)
	}
	return nil
}

// ReadPattern loads a pattern saved by WritePattern.
func ReadPattern(path string) (Pattern, error) {
	in, err := os.Open(path)
	if err != nil {
		return Pattern{}, fmt.Errorf("failed to open pattern file: %w", err)
	}
	defer in.Close()
	return DecodePattern(in, isCompressedPath(path))
}

// DecodePattern reads a pattern written by EncodePattern.
func DecodePattern(r io.Reader, compressed bool) (Pattern, error) {
	if compressed {
		dec, err := zstd.NewReader(r)
		if err != nil {
			return Pattern{}, err
		}
		defer dec.Close()
		r = dec
	}
	var p Pattern
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return Pattern{}, fmt.Errorf("failed to decode pattern: %w", err)
	}
	return p, nil
}
