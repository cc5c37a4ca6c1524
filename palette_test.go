package img2mosaic

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestParsePalette(t *testing.T) {
	data := []byte(`{"colors": [
		{"name": "Red", "r": 200, "g": 30, "b": 40, "count": 10},
		{"name": "Sky", "hex": "#87ceeb", "count": 0}
	]}`)
	entries, err := ParsePalette(data)
	if err != nil {
		t.Fatalf("ParsePalette failed: %v", err)
	}
	want := []PaletteEntry{
		{Name: "Red", Color: RGB{R: 200, G: 30, B: 40}, Count: 10},
		{Name: "Sky", Color: RGB{R: 0x87, G: 0xce, B: 0xeb}, Count: 0},
	}
	if !slices.Equal(entries, want) {
		t.Errorf("Expected %+v, got %+v", want, entries)
	}
}

func TestParsePaletteErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed", `{"colors": [`},
		{"empty", `{"colors": []}`},
		{"missing colors", `{}`},
		{"unknown field", `{"colors": [{"name": "A", "r": 1, "g": 1, "b": 1, "count": 1, "qty": 2}]}`},
		{"channel range", `{"colors": [{"name": "A", "r": 256, "g": 1, "b": 1, "count": 1}]}`},
		{"negative channel", `{"colors": [{"name": "A", "r": -1, "g": 1, "b": 1, "count": 1}]}`},
		{"negative count", `{"colors": [{"name": "A", "r": 1, "g": 1, "b": 1, "count": -3}]}`},
		{"fractional count", `{"colors": [{"name": "A", "r": 1, "g": 1, "b": 1, "count": 1.5}]}`},
		{"missing count", `{"colors": [{"name": "A", "r": 1, "g": 1, "b": 1}]}`},
		{"missing channel", `{"colors": [{"name": "A", "r": 1, "g": 1, "count": 1}]}`},
		{"missing name", `{"colors": [{"r": 1, "g": 1, "b": 1, "count": 1}]}`},
		{"bad hex", `{"colors": [{"name": "A", "hex": "#zz0000", "count": 1}]}`},
		{"hex and channels", `{"colors": [{"name": "A", "hex": "#000000", "r": 1, "g": 1, "b": 1, "count": 1}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParsePalette([]byte(tt.data)); !errors.Is(err, ErrConfig) {
				t.Errorf("Expected ErrConfig, got %v", err)
			}
		})
	}
}

func TestEmbeddedPalettes(t *testing.T) {
	names := EmbeddedPalettes()
	if len(names) == 0 {
		t.Fatal("Expected embedded palettes")
	}
	for _, name := range names {
		entries, err := ReadPaletteFromJSON(name)
		if err != nil {
			t.Errorf("Embedded palette %s: %v", name, err)
			continue
		}
		total := 0
		for _, e := range entries {
			total += e.Count
		}
		if total < DefaultWidth*DefaultHeight {
			t.Errorf("Embedded palette %s holds %d pieces, too few for a default mosaic",
				name, total)
		}
	}
}

func TestReadPaletteFromFile(t *testing.T) {
	t.Parallel()
	entries := []PaletteEntry{
		{Name: "Black", Color: black, Count: 3},
		{Name: "White", Color: white, Count: 4},
	}
	data, err := MarshalPalette(entries)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "kit.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := ReadPaletteFromJSON(path)
	if err != nil {
		t.Fatalf("ReadPaletteFromJSON failed: %v", err)
	}
	if !slices.Equal(got, entries) {
		t.Errorf("Expected %+v, got %+v", entries, got)
	}
}

func TestReadPaletteMissing(t *testing.T) {
	_, err := ReadPaletteFromJSON(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, ErrConfig) || !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected ErrConfig wrapping os.ErrNotExist, got %v", err)
	}
}
