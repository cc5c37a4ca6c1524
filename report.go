package img2mosaic

import (
	"fmt"
	"io"
	"slices"
	"strings"
)

// UsageLine is the number of pieces used of one palette color.
type UsageLine struct {
	Name  string
	Color RGB
	Count int
}

// Usage summarizes how many pieces of each color a mosaic needs.
type Usage struct {
	// Lines holds one entry per color actually used, in palette order.
	Lines []UsageLine
	// Total is the number of assignments summarized.
	Total int
}

// Summarize totals assignments per palette color. Entries are grouped by
// palette position; positions sharing both name and color are merged.
// When different colors share a name, each line is labelled with its hex
// value, as in "Red (#c42b1b)", so the counts stay distinguishable. A
// label that would clash with another line falls back to the palette
// position, as in "Red (palette #3)".
func Summarize(assignments []Assignment) Usage {
	byIndex := make(map[int]*UsageLine)
	for _, a := range assignments {
		line, ok := byIndex[a.Index]
		if !ok {
			line = &UsageLine{Name: a.Name, Color: a.Color}
			byIndex[a.Index] = line
		}
		line.Count++
	}

	indices := make([]int, 0, len(byIndex))
	for idx := range byIndex {
		indices = append(indices, idx)
	}
	slices.Sort(indices)

	type key struct {
		name  string
		color RGB
	}
	var (
		lines    []UsageLine
		firstIdx []int
	)
	pos := make(map[key]int)
	colorsPerName := make(map[string]int)
	for _, idx := range indices {
		line := byIndex[idx]
		k := key{line.Name, line.Color}
		if p, ok := pos[k]; ok {
			lines[p].Count += line.Count
			continue
		}
		pos[k] = len(lines)
		colorsPerName[line.Name]++
		lines = append(lines, *line)
		firstIdx = append(firstIdx, idx)
	}

	// Labels must stay unique, including against palette names that
	// happen to look like a generated label.
	taken := make(map[string]bool, len(lines))
	for _, l := range lines {
		if colorsPerName[l.Name] == 1 {
			taken[l.Name] = true
		}
	}
	for i := range lines {
		name := lines[i].Name
		if colorsPerName[name] == 1 {
			continue
		}
		label := fmt.Sprintf("%s (%s)", name, Hex(lines[i].Color))
		if taken[label] {
			label = fmt.Sprintf("%s (palette #%d)", name, firstIdx[i])
		}
		for n := 2; taken[label]; n++ {
			label = fmt.Sprintf("%s (palette #%d, %d)", name, firstIdx[i], n)
		}
		taken[label] = true
		lines[i].Name = label
	}

	return Usage{Lines: lines, Total: len(assignments)}
}

// Counts returns the usage as a name to count map.
func (u Usage) Counts() map[string]int {
	counts := make(map[string]int, len(u.Lines))
	for _, l := range u.Lines {
		counts[l.Name] += l.Count
	}
	return counts
}

// String renders the report: one "<name> - <count> pieces" line per used
// color followed by "Total Pieces: <total>".
func (u Usage) String() string {
	var sb strings.Builder
	for _, l := range u.Lines {
		if l.Count == 0 {
			continue
		}
		fmt.Fprintf(&sb, "%s - %d pieces\n", l.Name, l.Count)
	}
	fmt.Fprintf(&sb, "Total Pieces: %d\n", u.Total)
	return sb.String()
}

// WriteTo writes the report produced by String.
func (u Usage) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, u.String())
	return int64(n), err
}
