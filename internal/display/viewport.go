package display

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/veyrune/hexfield/internal/hexgrid"
)

// ScrollMode selects how scroll-to-tile reaches its target.
type ScrollMode int

const (
	// ScrollModeOnScreen scrolls only if the target is not already visible.
	ScrollModeOnScreen ScrollMode = iota
	// ScrollModeScroll animates toward the target at the configured speed.
	ScrollModeScroll
	// ScrollModeWarp jumps so the target is centred immediately.
	ScrollModeWarp
)

// clampOrigin keeps the origin on the rendered map. A map smaller than the
// view pins the origin to zero.
func (d *Display) clampOrigin(x, y int) (int, int) {
	mw, mh := d.mapPixelSize()
	maxX := mw - d.mapRect.Dx()
	maxY := mh - d.mapRect.Dy()
	if maxX < 0 {
		maxX = 0
	}
	if maxY < 0 {
		maxY = 0
	}
	if x < 0 {
		x = 0
	} else if x > maxX {
		x = maxX
	}
	if y < 0 {
		y = 0
	} else if y > maxY {
		y = maxY
	}
	return x, y
}

func (d *Display) boundsCheck() {
	d.viewX, d.viewY = d.clampOrigin(d.viewX, d.viewY)
}

// Scroll moves the viewport by (dx, dy) pixels, clamped to the map bounds,
// and schedules redraw of the newly revealed region. Reports whether the
// origin actually moved.
func (d *Display) Scroll(dx, dy int) bool {
	nx, ny := d.clampOrigin(d.viewX+dx, d.viewY+dy)
	dx = nx - d.viewX
	dy = ny - d.viewY
	if dx == 0 && dy == 0 {
		return false
	}
	d.viewX, d.viewY = nx, ny
	d.shiftFrame(dx, dy)
	for _, fn := range d.scrollObservers {
		fn()
	}
	return true
}

// shiftFrame reuses the still-valid part of the composed frame after a
// scroll and invalidates the exposed strips. Without a frame yet, the first
// draw cycle paints everything anyway.
func (d *Display) shiftFrame(dx, dy int) {
	if d.frame == nil || d.backFrame == nil {
		d.InvalidateAll()
		return
	}
	d.backFrame.Clear()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(-dx), float64(-dy))
	d.backFrame.DrawImage(d.frame, op)
	d.frame, d.backFrame = d.backFrame, d.frame

	r := d.mapRect
	if dx > 0 {
		d.InvalidateRect(image.Rect(r.Max.X-dx, r.Min.Y, r.Max.X, r.Max.Y))
	} else if dx < 0 {
		d.InvalidateRect(image.Rect(r.Min.X, r.Min.Y, r.Min.X-dx, r.Max.Y))
	}
	if dy > 0 {
		d.InvalidateRect(image.Rect(r.Min.X, r.Max.Y-dy, r.Max.X, r.Max.Y))
	} else if dy < 0 {
		d.InvalidateRect(image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y-dy))
	}
}

// SetZoom adjusts the zoom by amount pixels per hex. The amount is snapped
// to a multiple of the zoom increment and the result clamped to
// [MinZoom, MaxZoom]; the view centre stays put. Reports whether the zoom
// changed.
func (d *Display) SetZoom(amount int) bool {
	amount -= amount % hexgrid.ZoomIncrement
	nz := d.zoom + amount
	if nz < d.minZoom {
		nz = d.minZoom
	}
	if nz > d.maxZoom {
		nz = d.maxZoom
	}
	if nz == d.zoom {
		return false
	}
	oz := d.zoom
	// Rescale the origin so the pixel at the view centre stays centred.
	d.viewX = (d.viewX+d.mapRect.Dx()/2)*nz/oz - d.mapRect.Dx()/2
	d.viewY = (d.viewY+d.mapRect.Dy()/2)*nz/oz - d.mapRect.Dy()/2
	d.zoom = nz
	d.boundsCheck()
	d.scrollTarget = nil
	d.RecalculateMinimap()
	d.InvalidateAll()
	d.log.Debug("zoom changed", zap.Int("from", oz), zap.Int("to", nz))
	return true
}

// SetDefaultZoom restores the configured zoom level.
func (d *Display) SetDefaultZoom() {
	d.SetZoom(hexgrid.AdjustZoom(d.cfg.Display.Zoom) - d.zoom)
}

// ScrollToTile brings loc into view. checkFogged suppresses scrolling to
// hexes the viewer cannot observe; force overrides the auto-scroll
// preference.
func (d *Display) ScrollToTile(loc hexgrid.Loc, mode ScrollMode, checkFogged, force bool) {
	if !d.OnBoard(loc) {
		d.log.Debug("scroll to off-board tile ignored", zap.Stringer("loc", loc))
		return
	}
	if checkFogged && d.fog.Shrouded(loc) {
		return
	}
	if !force && !d.cfg.Display.AutoScroll {
		return
	}
	c := d.mapCenterOf(loc)
	d.scrollToPixel(c.X, c.Y, mode)
}

// ScrollToTiles brings the first location into view and fits as many of the
// rest as possible, dropping trailing locations that cannot fit. addSpacing
// is a minimum border in hexes kept between the targets and the view edge.
func (d *Display) ScrollToTiles(locs []hexgrid.Loc, mode ScrollMode, checkFogged bool, addSpacing float64, force bool) {
	if !force && !d.cfg.Display.AutoScroll {
		return
	}
	var fit []image.Point
	for _, loc := range locs {
		if !d.OnBoard(loc) {
			continue
		}
		if checkFogged && d.fog.Shrouded(loc) {
			continue
		}
		fit = append(fit, d.mapCenterOf(loc))
	}
	if len(fit) == 0 {
		return
	}
	margin := int(addSpacing * float64(d.zoom))
	for len(fit) > 1 {
		box := boundingBox(fit).Inset(-margin)
		if box.Dx() <= d.mapRect.Dx() && box.Dy() <= d.mapRect.Dy() {
			break
		}
		fit = fit[:len(fit)-1]
	}
	box := boundingBox(fit)
	c := box.Min.Add(box.Max).Div(2)
	d.scrollToPixel(c.X, c.Y, mode)
}

// mapCenterOf returns the map-space centre pixel of loc.
func (d *Display) mapCenterOf(loc hexgrid.Loc) image.Point {
	g := hexgrid.Geometry{Zoom: d.zoom}
	return g.LocCenter(loc)
}

func boundingBox(pts []image.Point) image.Rectangle {
	box := image.Rectangle{Min: pts[0], Max: pts[0].Add(image.Point{1, 1})}
	for _, p := range pts[1:] {
		box = box.Union(image.Rectangle{Min: p, Max: p.Add(image.Point{1, 1})})
	}
	return box
}

// scrollToPixel moves the view so the map-space pixel (mx, my) is centred,
// honouring the scroll mode.
func (d *Display) scrollToPixel(mx, my int, mode ScrollMode) {
	ox, oy := d.clampOrigin(mx-d.mapRect.Dx()/2, my-d.mapRect.Dy()/2)
	switch mode {
	case ScrollModeWarp:
		d.scrollTarget = nil
		d.Scroll(ox-d.viewX, oy-d.viewY)
	case ScrollModeOnScreen:
		margin := d.zoom / 2
		sx := mx - d.viewX
		sy := my - d.viewY
		if sx >= margin && sx < d.mapRect.Dx()-margin &&
			sy >= margin && sy < d.mapRect.Dy()-margin {
			return
		}
		fallthrough
	case ScrollModeScroll:
		// Last write wins: a scroll in progress is simply replaced.
		d.scrollTarget = &image.Point{X: ox, Y: oy}
	}
}

// advanceScroll moves one animation step toward the scroll target. Runs
// once per draw cycle.
func (d *Display) advanceScroll() {
	if d.scrollTarget == nil {
		return
	}
	speed := d.cfg.Display.ScrollSpeed
	if d.cfg.Display.Turbo {
		speed *= d.cfg.Display.TurboSpeed
	}
	if speed < 1 {
		speed = 1
	}
	dx := d.scrollTarget.X - d.viewX
	dy := d.scrollTarget.Y - d.viewY
	step := int(speed)
	mx := clampStep(dx, step)
	my := clampStep(dy, step)
	if mx == 0 && my == 0 {
		d.scrollTarget = nil
		return
	}
	if !d.Scroll(mx, my) {
		// Clamped against the map edge; stop trying.
		d.scrollTarget = nil
		return
	}
	if d.scrollTarget != nil && d.viewX == d.scrollTarget.X && d.viewY == d.scrollTarget.Y {
		d.scrollTarget = nil
	}
}

func clampStep(delta, step int) int {
	if delta > step {
		return step
	}
	if delta < -step {
		return -step
	}
	return delta
}

// TileFullyOnScreen reports whether loc's full bounding box is inside the
// map area.
func (d *Display) TileFullyOnScreen(loc hexgrid.Loc) bool {
	if !d.OnBoard(loc) {
		return false
	}
	return d.Geometry().LocRect(loc).In(d.mapRect)
}

// TileNearlyOnScreen reports whether loc or one of its neighbours touches
// the map area.
func (d *Display) TileNearlyOnScreen(loc hexgrid.Loc) bool {
	if !loc.Valid() {
		return false
	}
	near := d.mapRect.Inset(-d.zoom)
	return d.Geometry().LocRect(loc).Overlaps(near)
}
