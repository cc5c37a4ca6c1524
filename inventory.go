package img2mosaic

import (
	"errors"
	"fmt"
	"math"
)

// ErrPreconditionViolation marks a broken call contract, such as taking a
// piece from an entry with no stock left. It points at a bug in the
// caller, not at bad input data.
var ErrPreconditionViolation = errors.New("precondition violation")

// PaletteColor is a palette entry together with its remaining stock.
type PaletteColor struct {
	Name      string
	Color     RGB
	Remaining int
}

// Inventory owns the mutable stock of every palette color for a single
// quantization run. Entry order is significant: when two entries are
// equally close to a sample the earlier one wins.
//
// An Inventory is not safe for concurrent use.
type Inventory struct {
	colors  []PaletteColor
	initial []int
}

// BuildInventory creates an Inventory from palette entries, copying them
// so the caller's slice is never mutated.
func BuildInventory(entries []PaletteEntry) (*Inventory, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: palette has no colors", ErrConfig)
	}
	inv := &Inventory{
		colors:  make([]PaletteColor, len(entries)),
		initial: make([]int, len(entries)),
	}
	for i, e := range entries {
		if e.Count < 0 {
			return nil, fmt.Errorf("%w: color %d (%q) has negative count %d",
				ErrConfig, i, e.Name, e.Count)
		}
		inv.colors[i] = PaletteColor{Name: e.Name, Color: e.Color, Remaining: e.Count}
		inv.initial[i] = e.Count
	}
	return inv, nil
}

// Len returns the number of palette entries.
func (inv *Inventory) Len() int {
	return len(inv.colors)
}

// Color returns a copy of entry i.
func (inv *Inventory) Color(i int) PaletteColor {
	return inv.colors[i]
}

// Colors returns a copy of every entry in palette order.
func (inv *Inventory) Colors() []PaletteColor {
	return append([]PaletteColor(nil), inv.colors...)
}

// Total returns the stock remaining across all entries.
func (inv *Inventory) Total() int {
	total := 0
	for _, c := range inv.colors {
		total += c.Remaining
	}
	return total
}

// Used returns how many pieces of entry i have been taken so far.
func (inv *Inventory) Used(i int) int {
	return inv.initial[i] - inv.colors[i].Remaining
}

// Depleted returns the names of entries with no stock left, in palette
// order. Entries that started with zero stock are included.
func (inv *Inventory) Depleted() []string {
	var names []string
	for _, c := range inv.colors {
		if c.Remaining == 0 {
			names = append(names, c.Name)
		}
	}
	return names
}

// NearestAvailable returns the index of the in-stock entry closest to c
// by LumaDistance. Entries with no remaining stock are skipped entirely.
// Ties keep the first entry seen in palette order. ok is false when no
// entry has stock.
func (inv *Inventory) NearestAvailable(c RGB) (index int, ok bool) {
	return inv.nearest(c, true)
}

// Nearest returns the index of the entry closest to c regardless of
// stock, using the same tie-break as NearestAvailable. It returns -1 for
// an empty inventory.
func (inv *Inventory) Nearest(c RGB) int {
	i, _ := inv.nearest(c, false)
	return i
}

func (inv *Inventory) nearest(c RGB, inStockOnly bool) (int, bool) {
	best, bestDist := -1, math.Inf(1)
	for i, entry := range inv.colors {
		if inStockOnly && entry.Remaining == 0 {
			continue
		}
		if d := LumaDistance(entry.Color, c); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, best >= 0
}

// Decrement takes one piece of entry i. The entry must have stock left;
// callers normally pass an index just returned by NearestAvailable.
func (inv *Inventory) Decrement(i int) error {
	if i < 0 || i >= len(inv.colors) {
		return fmt.Errorf("%w: palette index %d out of range [0,%d)",
			ErrPreconditionViolation, i, len(inv.colors))
	}
	if inv.colors[i].Remaining <= 0 {
		return fmt.Errorf("%w: decrement of %q with no remaining stock",
			ErrPreconditionViolation, inv.colors[i].Name)
	}
	inv.colors[i].Remaining--
	return nil
}
