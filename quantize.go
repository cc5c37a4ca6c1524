package img2mosaic

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInventoryExhausted is returned when a cell cannot be assigned
// because every palette entry is out of stock.
var ErrInventoryExhausted = errors.New("inventory exhausted")

// ExhaustedError describes where a run ran out of stock. It unwraps to
// ErrInventoryExhausted.
type ExhaustedError struct {
	// Cell is the cell that could not be assigned.
	Cell GridCell
	// Assigned counts cells assigned before stock ran out.
	Assigned int
	// Needed is the total number of cells in the grid.
	Needed int
	// Depleted names the palette entries with no stock, in palette order.
	Depleted []string
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("%v: no stock left for cell (%d,%d) after %d of %d cells; depleted: %s",
		ErrInventoryExhausted, e.Cell.X, e.Cell.Y, e.Assigned, e.Needed,
		strings.Join(e.Depleted, ", "))
}

func (e *ExhaustedError) Unwrap() error {
	return ErrInventoryExhausted
}

// Shuffler permutes n elements through swap. *math/rand/v2.Rand
// satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// Assignment records the palette entry chosen for one cell.
type Assignment struct {
	X, Y int
	// Index is the palette position of the chosen entry.
	Index int
	Name  string
	Color RGB
	// Source is the sampled color the entry replaces.
	Source RGB
	// Substituted is set when stock forced an entry farther from Source
	// than the closest one in the full palette.
	Substituted bool
}

// Quantize assigns every grid cell to a palette entry, taking one piece
// of stock per cell. Cells are visited in an order drawn from rng so that
// stock shortages spread over the whole image instead of starving
// whichever region would be visited last.
//
// Each cell receives the nearest entry that still has stock. If no entry
// has stock for some cell the run fails with an *ExhaustedError and no
// assignments are returned. On success the result has one assignment per
// cell, in visitation order; use SortLayout for row-major order.
func Quantize(grid Grid, inv *Inventory, rng Shuffler) ([]Assignment, error) {
	if inv == nil || rng == nil {
		return nil, fmt.Errorf("%w: quantize needs an inventory and a shuffler",
			ErrPreconditionViolation)
	}
	if err := grid.Validate(); err != nil {
		return nil, err
	}

	order := make([]int, len(grid.Cells))
	for i := range order {
		order[i] = i
	}
	rng.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})

	assignments := make([]Assignment, 0, len(order))
	for _, ci := range order {
		cell := grid.Cells[ci]
		idx, ok := inv.NearestAvailable(cell.Source)
		if !ok {
			return nil, &ExhaustedError{
				Cell:     cell,
				Assigned: len(assignments),
				Needed:   len(grid.Cells),
				Depleted: inv.Depleted(),
			}
		}
		entry := inv.Color(idx)
		best := inv.Color(inv.Nearest(cell.Source))
		if err := inv.Decrement(idx); err != nil {
			return nil, err
		}
		assignments = append(assignments, Assignment{
			X:           cell.X,
			Y:           cell.Y,
			Index:       idx,
			Name:        entry.Name,
			Color:       entry.Color,
			Source:      cell.Source,
			Substituted: LumaDistance(entry.Color, cell.Source) > LumaDistance(best.Color, cell.Source),
		})
	}
	return assignments, nil
}
