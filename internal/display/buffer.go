package display

import (
	"image"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/veyrune/hexfield/internal/hexgrid"
)

// blit is one queued draw request: one or more images rendered at the same
// screen offset, with an optional clip of the source. Blits live for a
// single frame.
type blit struct {
	key  uint32
	x    int
	y    int
	imgs []*ebiten.Image
	clip image.Rectangle // zero rectangle means the whole source
	loc  hexgrid.Loc
}

// drawBuffer accumulates the frame's blits and hands them back in paint
// order. The sort is stable, so blits sharing a key keep submission order
// and later submissions for the same cell and layer win.
type drawBuffer struct {
	items []blit
}

// key builds the ordering key for a (layer, loc) pair. It is a pure function
// of its inputs: group, then row, then column parity, then layer, then
// column. See the comment on DefaultLayerGroups for why groups outrank rows.
func (b *drawBuffer) key(groups []Layer, layer Layer, loc hexgrid.Loc) uint32 {
	x := uint32(loc.X + keyMaxBorder)
	y := uint32(loc.Y + keyMaxBorder)
	k := layerGroupIndex(groups, layer) << keyShiftGroup
	k |= y << keyShiftY
	// Parity comes from the raw column: odd columns hang half a hex lower
	// and must paint after every even column of the row.
	k |= uint32(loc.X&1) << keyShiftXPar
	k |= uint32(layer) << keyShiftLayer
	k |= x / 2
	return k
}

// add appends a blit for loc at screen position (x, y).
func (b *drawBuffer) add(groups []Layer, layer Layer, loc hexgrid.Loc, x, y int, clip image.Rectangle, imgs ...*ebiten.Image) {
	b.items = append(b.items, blit{
		key:  b.key(groups, layer, loc),
		x:    x,
		y:    y,
		imgs: imgs,
		clip: clip,
		loc:  loc,
	})
}

// sorted orders the buffered blits by key, keeping insertion order for ties,
// and returns the slice for committing.
func (b *drawBuffer) sorted() []blit {
	sort.SliceStable(b.items, func(i, j int) bool {
		return b.items[i].key < b.items[j].key
	})
	return b.items
}

// reset drops all buffered blits but keeps the backing array.
func (b *drawBuffer) reset() {
	b.items = b.items[:0]
}

// commit blits the buffered items onto dst in paint order and clears the
// buffer. Nil images degrade to a skip; a missing asset never aborts the
// frame.
func (b *drawBuffer) commit(groups []Layer, dst *ebiten.Image) {
	for _, it := range b.sorted() {
		for _, img := range it.imgs {
			if img == nil {
				continue
			}
			src := img
			if !it.clip.Empty() {
				sub, ok := img.SubImage(it.clip.Intersect(img.Bounds())).(*ebiten.Image)
				if !ok || sub.Bounds().Empty() {
					continue
				}
				src = sub
			}
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(float64(it.x), float64(it.y))
			dst.DrawImage(src, op)
		}
	}
	b.reset()
}
