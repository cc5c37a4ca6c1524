package img2mosaic

import (
	"bytes"
	"testing"
)

func TestSummarizeOrderAndTotal(t *testing.T) {
	assignments := []Assignment{
		{Index: 2, Name: "White", Color: white},
		{Index: 0, Name: "Black", Color: black},
		{Index: 2, Name: "White", Color: white},
		{Index: 0, Name: "Black", Color: black},
		{Index: 0, Name: "Black", Color: black},
	}
	u := Summarize(assignments)
	if u.Total != 5 {
		t.Errorf("Expected total 5, got %d", u.Total)
	}
	want := "Black - 3 pieces\nWhite - 2 pieces\nTotal Pieces: 5\n"
	if got := u.String(); got != want {
		t.Errorf("Report mismatch:\n got: %q\nwant: %q", got, want)
	}

	var buf bytes.Buffer
	if _, err := u.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	if buf.String() != want {
		t.Errorf("WriteTo should match String, got %q", buf.String())
	}
}

func TestSummarizeNameCollisions(t *testing.T) {
	red := RGB{R: 255, G: 0, B: 0}
	darkRed := RGB{R: 128, G: 0, B: 0}
	u := Summarize([]Assignment{
		{Index: 0, Name: "Red", Color: red},
		{Index: 1, Name: "Red", Color: darkRed},
		{Index: 1, Name: "Red", Color: darkRed},
		{Index: 2, Name: "Red", Color: red},
	})

	counts := u.Counts()
	if len(counts) != 2 {
		t.Fatalf("Expected 2 distinguishable lines, got %v", counts)
	}
	if counts["Red (#ff0000)"] != 2 {
		t.Errorf("Same name and color should merge, got %v", counts)
	}
	if counts["Red (#800000)"] != 2 {
		t.Errorf("Different colors should stay apart, got %v", counts)
	}
}

func TestSummarizeGroupsByIndex(t *testing.T) {
	// Whatever name or color an assignment carries, its palette position
	// decides the line it is counted on.
	u := Summarize([]Assignment{
		{Index: 0, Name: "Black", Color: black},
		{Index: 0, Name: "Red", Color: RGB{R: 200, G: 0, B: 0}},
		{Index: 1, Name: "White", Color: white},
	})
	want := "Black - 2 pieces\nWhite - 1 pieces\nTotal Pieces: 3\n"
	if got := u.String(); got != want {
		t.Errorf("Report mismatch:\n got: %q\nwant: %q", got, want)
	}
}

func TestSummarizeLabelClash(t *testing.T) {
	u := Summarize([]Assignment{
		{Index: 0, Name: "Red", Color: RGB{R: 255, G: 0, B: 0}},
		{Index: 1, Name: "Red", Color: RGB{R: 128, G: 0, B: 0}},
		{Index: 2, Name: "Red (#ff0000)", Color: RGB{R: 0, G: 255, B: 0}},
	})

	seen := make(map[string]bool)
	for _, l := range u.Lines {
		if seen[l.Name] {
			t.Errorf("Duplicate report line %q", l.Name)
		}
		seen[l.Name] = true
	}
	counts := u.Counts()
	want := map[string]int{
		"Red (palette #0)": 1,
		"Red (#800000)":    1,
		"Red (#ff0000)":    1,
	}
	if len(counts) != len(want) {
		t.Fatalf("Expected %v, got %v", want, counts)
	}
	for name, n := range want {
		if counts[name] != n {
			t.Errorf("%s: expected %d, got %d", name, n, counts[name])
		}
	}
	if u.Lines[2].Color != (RGB{R: 0, G: 255, B: 0}) {
		t.Errorf("The palette name %q should keep its own color", u.Lines[2].Name)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	if got := Summarize(nil).String(); got != "Total Pieces: 0\n" {
		t.Errorf("Unexpected empty report %q", got)
	}
}
