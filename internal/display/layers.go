package display

// Layer is a named drawing priority. The numeric values are internal draw
// order only and must never be persisted; gaps are reserved for callers that
// need to slot custom content between the named levels.
type Layer int

const (
	LayerTerrainBG        Layer = 0 // terrain drawn behind units
	LayerGridTop          Layer = 1 // top half of the hex grid outline
	LayerMouseoverOverlay Layer = 2 // editor-style overlay under the cursor
	LayerFootsteps        Layer = 3 // planned path markers
	LayerMouseoverTop     Layer = 4 // top half of the cursor image

	LayerUnitFirst Layer = 5 // first of the unit layer band

	LayerUnitBG          Layer = LayerUnitFirst + 10 // ellipse behind a unit
	LayerUnitDefault     Layer = LayerUnitFirst + 40 // default layer for unit figures
	LayerTerrainFG       Layer = LayerUnitFirst + 50 // terrain drawn in front of units
	LayerGridBottom      Layer = LayerUnitFirst + 51 // bottom half of the grid outline, under moving units
	LayerUnitMoveDefault Layer = LayerUnitFirst + 60 // default layer for moving units
	LayerUnitFG          Layer = LayerUnitFirst + 80 // ellipse in front of a unit
	LayerUnitMissile     Layer = LayerUnitFirst + 90 // missile frames
	LayerUnitLast        Layer = LayerUnitFirst + 100

	LayerUnitBar         Layer = LayerUnitLast + 10 // unit bars and overlays
	LayerReachmap        Layer = LayerUnitBar + 1   // stripes on unreachable hexes
	LayerMouseoverBottom Layer = LayerUnitBar + 2   // bottom half of the cursor image
	LayerFogShroud       Layer = LayerUnitBar + 3   // fog and shroud
	LayerArrows          Layer = LayerUnitBar + 4   // planned-move arrows
	LayerSelectedHex     Layer = LayerUnitBar + 5   // image on the selected hex
	LayerAttackIndicator Layer = LayerUnitBar + 6
	LayerMoveInfo        Layer = LayerUnitBar + 7 // movement info text
	LayerLingerOverlay   Layer = LayerUnitBar + 8
	LayerBorder          Layer = LayerUnitBar + 9 // map border tiles

	layerCount Layer = LayerBorder + 1
)

// DefaultLayerGroups is the default partition of layers into row-major
// groups. Each entry is the first layer of its group; groups are drawn in
// slice order. The exact membership is policy, not algorithm: callers with
// different layering needs pass their own table to New.
//
// Rendering runs group by group, and row by row inside a group, because
// units and foreground terrain spill into neighbouring rows. Drawing a whole
// group row-major keeps a tall unit from being overdrawn by terrain of a row
// already finished, while foreground terrain still lands on top of
// background terrain everywhere.
var DefaultLayerGroups = []Layer{
	LayerTerrainBG,
	LayerUnitFirst,
	LayerUnitMoveDefault,
	LayerReachmap,
}

// Bit widths of the ordering key fields. Group is most significant, then
// row, then column parity (odd columns overlap the row below), then layer,
// then column. The widths sum to 32.
const (
	keyBitsLayer  = 8
	keyBitsXHalf  = 9
	keyBitsY      = 10
	keyMaxBorder  = 3 // hexes of border around the board kept addressable
	keyShiftLayer = keyBitsXHalf
	keyShiftXPar  = keyShiftLayer + keyBitsLayer
	keyShiftY     = keyShiftXPar + 1
	keyShiftGroup = keyShiftY + keyBitsY
)

// layerGroupIndex returns the index of the group containing layer, given the
// ordered group table.
func layerGroupIndex(groups []Layer, layer Layer) uint32 {
	g := 0
	for i, first := range groups {
		if layer < first {
			break
		}
		g = i
	}
	return uint32(g)
}
