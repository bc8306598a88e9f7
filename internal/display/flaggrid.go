package display

import "github.com/veyrune/hexfield/internal/hexgrid"

// Per-hex trace flags recorded while drawing a cycle.
const (
	flagBoard          uint8 = iota // on the board, untouched this cycle
	flagInvalidate                  // scheduled for redraw
	flagInvalidateUnit              // redraw caused by unit content
)

// flagGrid is a bounds-checked per-hex byte grid with a border margin, used
// to trace which hexes a draw cycle touched. Out-of-range access is a no-op
// read of flagBoard, never a fault.
type flagGrid struct {
	border int
	pitch  int
	rows   int
	cells  []uint8
}

func newFlagGrid(cols, rows, border int) *flagGrid {
	pitch := cols + 2*border
	return &flagGrid{
		border: border,
		pitch:  pitch,
		rows:   rows + 2*border,
		cells:  make([]uint8, pitch*(rows+2*border)),
	}
}

func (g *flagGrid) index(loc hexgrid.Loc) (int, bool) {
	x := loc.X + g.border
	y := loc.Y + g.border
	if x < 0 || x >= g.pitch || y < 0 || y >= g.rows {
		return 0, false
	}
	return y*g.pitch + x, true
}

func (g *flagGrid) set(loc hexgrid.Loc, v uint8) {
	if i, ok := g.index(loc); ok {
		g.cells[i] = v
	}
}

func (g *flagGrid) at(loc hexgrid.Loc) uint8 {
	if i, ok := g.index(loc); ok {
		return g.cells[i]
	}
	return flagBoard
}

func (g *flagGrid) reset() {
	for i := range g.cells {
		g.cells[i] = flagBoard
	}
}
