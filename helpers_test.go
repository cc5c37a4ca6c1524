package img2mosaic

import "math/rand/v2"

// inOrder visits cells in grid order.
type inOrder struct{}

func (inOrder) Shuffle(int, func(i, j int)) {}

var (
	black = RGB{R: 0, G: 0, B: 0}
	white = RGB{R: 255, G: 255, B: 255}
)

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

// randomGrid fills a width x height grid with colors drawn from seed.
func randomGrid(width, height int, seed uint64) Grid {
	r := seeded(seed)
	return NewGrid(width, height, func(x, y int) RGB {
		return RGB{R: uint8(r.IntN(256)), G: uint8(r.IntN(256)), B: uint8(r.IntN(256))}
	})
}

func mustInventory(entries ...PaletteEntry) *Inventory {
	inv, err := BuildInventory(entries)
	if err != nil {
		panic(err)
	}
	return inv
}
