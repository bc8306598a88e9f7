package hexgrid

import "image"

// Supported zoom levels in pixels per hex (tip to tip). Zoom must stay a
// multiple of ZoomIncrement or hex widths pick up rounding errors.
const (
	Zoom48 = 48
	Zoom56 = 56
	Zoom64 = 64
	Zoom72 = 72

	ZoomIncrement = 4

	MinZoom     = Zoom48
	MaxZoom     = Zoom72
	DefaultZoom = Zoom64
)

// AdjustZoom clamps zoom into [MinZoom, MaxZoom] and snaps it down to a
// multiple of ZoomIncrement.
func AdjustZoom(zoom int) int {
	if zoom < MinZoom {
		return MinZoom
	}
	if zoom > MaxZoom {
		return MaxZoom
	}
	return zoom - zoom%ZoomIncrement
}

// Geometry converts between hex coordinates and screen pixels for one
// viewport state. It is a value type: build one fresh from the current
// zoom/origin whenever needed, never store it.
type Geometry struct {
	Zoom    int             // pixels per hex, width and height
	ViewX   int             // map-space pixel of the left edge of MapRect
	ViewY   int             // map-space pixel of the top edge of MapRect
	MapRect image.Rectangle // screen area occupied by the map
}

// HexWidth returns the horizontal distance in pixels from one hex to the
// next hex in the same row.
func (g Geometry) HexWidth() int { return g.Zoom }

// HexSize returns the vertical size of a hex in pixels.
func (g Geometry) HexSize() int { return g.Zoom }

// halfShift returns the vertical offset applied to a column.
func (g Geometry) halfShift(x int) int {
	if x&1 != 0 {
		return g.HexSize() / 2
	}
	return 0
}

// LocX returns the on-screen x coordinate of the left edge of loc.
func (g Geometry) LocX(loc Loc) int {
	return g.MapRect.Min.X + loc.X*g.HexWidth() - g.ViewX
}

// LocY returns the on-screen y coordinate of the top edge of loc. Odd
// columns sit half a hex lower than even ones.
func (g Geometry) LocY(loc Loc) int {
	return g.MapRect.Min.Y + loc.Y*g.HexSize() - g.ViewY + g.halfShift(loc.X)
}

// LocRect returns the on-screen bounding box of loc.
func (g Geometry) LocRect(loc Loc) image.Rectangle {
	x := g.LocX(loc)
	y := g.LocY(loc)
	return image.Rect(x, y, x+g.HexWidth(), y+g.HexSize())
}

// LocCenter returns the on-screen centre pixel of loc.
func (g Geometry) LocCenter(loc Loc) image.Point {
	return image.Point{
		X: g.LocX(loc) + g.HexWidth()/2,
		Y: g.LocY(loc) + g.HexSize()/2,
	}
}

// PixelToHex returns the location under the screen pixel p, or NullLoc if p
// is outside the map area. The result may lie outside the board; callers
// holding the board size must range-check it.
func (g Geometry) PixelToHex(p image.Point) Loc {
	if !p.In(g.MapRect) {
		return NullLoc
	}
	mx := p.X - g.MapRect.Min.X + g.ViewX
	my := p.Y - g.MapRect.Min.Y + g.ViewY
	x := floorDiv(mx, g.HexWidth())
	y := floorDiv(my-g.halfShift(x), g.HexSize())
	return Loc{X: x, Y: y}
}

// HexesUnderRect returns the range of hexes whose bounding boxes intersect
// the screen rectangle r. The range errs on the side of inclusion: a hex
// fully outside r is never required, a hex touching r is always present.
func (g Geometry) HexesUnderRect(r image.Rectangle) RectOfHexes {
	r = r.Intersect(g.MapRect)
	if r.Empty() {
		return emptyRect()
	}
	tx := r.Min.X - g.MapRect.Min.X + g.ViewX
	ty := r.Min.Y - g.MapRect.Min.Y + g.ViewY
	hw := g.HexWidth()
	hs := g.HexSize()

	var out RectOfHexes
	out.Left = floorDiv(tx, hw)
	out.Right = floorDiv(tx+r.Dx()-1, hw)
	for parity := 0; parity < 2; parity++ {
		shift := 0
		if parity == 1 {
			shift = hs / 2
		}
		out.Top[parity] = floorDiv(ty-shift, hs)
		out.Bottom[parity] = floorDiv(ty+r.Dy()-1-shift, hs)
	}
	return out
}

// floorDiv divides rounding toward negative infinity, so hexes left of or
// above the map origin resolve to negative coordinates rather than zero.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
