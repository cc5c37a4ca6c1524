package img2mosaic

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

//go:embed colordata/*.json
var f embed.FS

// ErrConfig marks a palette configuration that is missing, malformed or
// empty.
var ErrConfig = errors.New("palette config error")

// PaletteEntry is one color of a kit: a display name, its color and how
// many pieces of it are available.
type PaletteEntry struct {
	Name  string
	Color RGB
	Count int
}

// paletteFile is the on-disk layout of a palette definition.
type paletteFile struct {
	Colors []paletteFileEntry `json:"colors"`
}

type paletteFileEntry struct {
	Name  string `json:"name"`
	R     *int   `json:"r,omitempty"`
	G     *int   `json:"g,omitempty"`
	B     *int   `json:"b,omitempty"`
	Hex   string `json:"hex,omitempty"`
	Count *int   `json:"count"`
}

// ReadPaletteFromJSON reads a palette definition by name. Embedded kits
// (see EmbeddedPalettes) are tried first, then the filesystem.
func ReadPaletteFromJSON(name string) ([]PaletteEntry, error) {
	template := "colordata/%s.json"
	data, vfsErr := f.ReadFile(fmt.Sprintf(template, name))
	if vfsErr != nil {
		var fsErr error
		data, fsErr = os.ReadFile(name)
		if fsErr != nil {
			return nil, fmt.Errorf("%w: error reading file: %w", ErrConfig, fsErr)
		}
	}
	return ParsePalette(data)
}

// EmbeddedPalettes lists the names of the built-in kits.
func EmbeddedPalettes() []string {
	entries, err := f.ReadDir("colordata")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	return names
}

// ParsePalette decodes and validates a JSON palette definition. Entry
// order is preserved; it decides which entry wins a distance tie.
func ParsePalette(data []byte) ([]PaletteEntry, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var pf paletteFile
	if err := dec.Decode(&pf); err != nil {
		return nil, fmt.Errorf("%w: error unmarshalling JSON: %w", ErrConfig, err)
	}
	if len(pf.Colors) == 0 {
		return nil, fmt.Errorf("%w: palette has no colors", ErrConfig)
	}

	entries := make([]PaletteEntry, 0, len(pf.Colors))
	for i, raw := range pf.Colors {
		entry, err := raw.toEntry()
		if err != nil {
			return nil, fmt.Errorf("%w: color %d (%q): %v", ErrConfig, i, raw.Name, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (e paletteFileEntry) toEntry() (PaletteEntry, error) {
	if e.Name == "" {
		return PaletteEntry{}, errors.New("missing name")
	}
	if e.Count == nil {
		return PaletteEntry{}, errors.New("missing count")
	}
	if *e.Count < 0 {
		return PaletteEntry{}, fmt.Errorf("negative count %d", *e.Count)
	}

	var c RGB
	switch {
	case e.Hex != "":
		if e.R != nil || e.G != nil || e.B != nil {
			return PaletteEntry{}, errors.New("both hex and r/g/b given")
		}
		var err error
		if c, err = ParseHex(e.Hex); err != nil {
			return PaletteEntry{}, err
		}
	case e.R != nil && e.G != nil && e.B != nil:
		for _, v := range []int{*e.R, *e.G, *e.B} {
			if v < 0 || v > 255 {
				return PaletteEntry{}, fmt.Errorf("channel value %d out of range 0-255", v)
			}
		}
		c = RGB{R: uint8(*e.R), G: uint8(*e.G), B: uint8(*e.B)}
	default:
		return PaletteEntry{}, errors.New("missing color: need r, g and b or hex")
	}

	return PaletteEntry{Name: e.Name, Color: c, Count: *e.Count}, nil
}

// MarshalPalette encodes entries in the palette file layout, using r/g/b
// channels.
func MarshalPalette(entries []PaletteEntry) ([]byte, error) {
	pf := paletteFile{Colors: make([]paletteFileEntry, len(entries))}
	for i, e := range entries {
		r, g, b, count := int(e.Color.R), int(e.Color.G), int(e.Color.B), e.Count
		pf.Colors[i] = paletteFileEntry{Name: e.Name, R: &r, G: &g, B: &b, Count: &count}
	}
	return json.MarshalIndent(pf, "", "  ")
}
