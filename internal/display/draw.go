package display

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"

	"github.com/veyrune/hexfield/internal/hexgrid"
)

// backgroundColor fills the map area outside the board.
var backgroundColor = color.RGBA{R: 12, G: 12, B: 14, A: 255}

// BufferAdd queues one draw request: imgs are blitted together at pos, in
// the paint order derived from (layer, loc). Any component may call this
// during a draw cycle, in any order. An empty clip uses the whole source.
func (d *Display) BufferAdd(layer Layer, loc hexgrid.Loc, pos image.Point, clip image.Rectangle, imgs ...*ebiten.Image) {
	d.buffer.add(d.groups, layer, loc, pos.X, pos.Y, clip, imgs...)
}

// Frame returns the composed map view. The caller presents it by blitting
// onto the screen at MapArea().Min; the image is valid until the next Draw.
func (d *Display) Frame() *ebiten.Image { return d.frame }

// Draw runs one draw cycle: consume the dirty set, redraw the affected
// hexes, and commit the draw buffer to the frame. With update unset the
// frame is composed but the frame budget and the scroll animation are left
// untouched (screenshot path); with force set the cycle runs even if the
// budget says to skip. Reports whether a cycle actually ran.
func (d *Display) Draw(update, force bool) bool {
	now := d.now()
	if !force && now.Before(d.nextDraw) {
		d.stats.SkippedFrames++
		return false
	}
	d.beginCycle(update)
	d.ensureFrames()

	locs, all := d.dirty.takeAndClear()
	d.compose(d.frame, locs, all)

	if update {
		d.nextDraw = now.Add(d.cfg.Display.FrameDelay)
		d.stats.Frames++
		if d.stats.Frames%300 == 0 {
			d.logFrameStats()
		}
	}
	return true
}

// beginCycle advances the per-cycle animation state. Composing without
// update (the screenshot path) must leave an in-flight scroll untouched.
func (d *Display) beginCycle(update bool) {
	if update {
		d.advanceScroll()
	}
}

// compose redraws the dirty hexes into frame and commits the buffer.
func (d *Display) compose(frame *ebiten.Image, locs hexgrid.LocSet, all bool) {
	area := d.VisibleHexes()
	d.drawArea.reset()
	drawn := 0

	if all {
		frame.Fill(backgroundColor)
		area.Each(func(loc hexgrid.Loc) {
			d.drawArea.set(loc, flagInvalidate)
			d.drawHex(loc)
			drawn++
		})
	} else {
		for loc := range locs {
			if !area.Contains(loc) {
				// Off-screen work is dropped; the scroll path re-invalidates
				// hexes as they come back into view.
				continue
			}
			d.drawArea.set(loc, flagInvalidate)
			d.drawHex(loc)
			drawn++
		}
	}

	d.stats.InvalidatedHexes += len(locs)
	d.stats.DrawnHexes += drawn
	d.buffer.commit(d.groups, frame)

	if d.drawCoords {
		d.drawCoordinates(frame, area)
	}
}

// ensureFrames lazily allocates the composed frame and its scroll-shift
// twin at the map area size.
func (d *Display) ensureFrames() {
	w, h := d.mapRect.Dx(), d.mapRect.Dy()
	if d.frame != nil {
		fw, fh := d.frame.Bounds().Dx(), d.frame.Bounds().Dy()
		if fw == w && fh == h {
			return
		}
	}
	d.frame = ebiten.NewImage(w, h)
	d.backFrame = ebiten.NewImage(w, h)
	d.dirty.invalidateAll()
}

// drawHex queues everything that lives on one hex: terrain, grid halves,
// fog, arrows, haloes and the selection/cursor overlays.
func (d *Display) drawHex(loc hexgrid.Loc) {
	g := d.Geometry()
	pos := image.Point{X: g.LocX(loc), Y: g.LocY(loc)}
	zoom := d.zoom
	d.tiles.ensure(zoom)

	if d.fog.Shrouded(loc) {
		d.BufferAdd(LayerFogShroud, loc, pos, image.Rectangle{}, d.tiles.shroud)
		return
	}

	bg := d.terrain.TerrainImages(loc, d.tod, false, zoom)
	if len(bg) > 0 {
		d.BufferAdd(LayerTerrainBG, loc, pos, image.Rectangle{}, bg...)
	}
	fg := d.terrain.TerrainImages(loc, d.tod, true, zoom)
	if len(fg) > 0 {
		d.BufferAdd(LayerTerrainFG, loc, pos, image.Rectangle{}, fg...)
	}

	if d.grid {
		half := zoom / 2
		d.BufferAdd(LayerGridTop, loc, pos,
			image.Rect(0, 0, zoom, half), d.tiles.grid)
		d.BufferAdd(LayerGridBottom, loc, image.Point{X: pos.X, Y: pos.Y + half},
			image.Rect(0, half, zoom, zoom), d.tiles.grid)
	}

	if d.fog.Fogged(loc) {
		d.BufferAdd(LayerFogShroud, loc, pos, image.Rectangle{}, d.tiles.fog)
	}

	for _, a := range d.arrowsAt(loc) {
		a.DrawSegment(d, loc)
	}
	d.drawHaloes(loc, pos)

	if loc == d.selected {
		d.BufferAdd(LayerSelectedHex, loc, pos, image.Rectangle{}, d.tiles.selected)
	}
	if loc == d.mouseover {
		d.BufferAdd(LayerMouseoverOverlay, loc, pos, image.Rectangle{}, d.tiles.mouseover)
	}
}

// drawCoordinates overlays each visible hex with its coordinates. Debug
// only; drawn straight onto the frame after commit.
func (d *Display) drawCoordinates(frame *ebiten.Image, area hexgrid.RectOfHexes) {
	g := d.Geometry()
	area.Each(func(loc hexgrid.Loc) {
		c := g.LocCenter(loc)
		ebitenutil.DebugPrintAt(frame, fmt.Sprintf("%d,%d", loc.X, loc.Y), c.X-12, c.Y-8)
	})
}

// DrawMinimapInto composites the minimap thumbnail and the viewport box
// into its themed rectangle on dst (the full screen).
func (d *Display) DrawMinimapInto(dst *ebiten.Image) {
	r := d.minimapRect
	if r.Dx() <= 0 || r.Dy() <= 0 {
		return
	}
	tex := d.minimapTexture(r.Dx(), r.Dy())
	if tex == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(r.Min.X), float64(r.Min.Y))
	dst.DrawImage(tex, op)

	// Viewport box: the on-map window scaled into the thumbnail.
	mw, mh := d.mapPixelSize()
	if mw == 0 || mh == 0 {
		return
	}
	bx := r.Min.X + d.viewX*r.Dx()/mw
	by := r.Min.Y + d.viewY*r.Dy()/mh
	bw := d.mapRect.Dx() * r.Dx() / mw
	bh := d.mapRect.Dy() * r.Dy() / mh
	if bw > r.Dx() {
		bw = r.Dx()
	}
	if bh > r.Dy() {
		bh = r.Dy()
	}
	vector.StrokeRect(dst, float32(bx), float32(by), float32(bw), float32(bh),
		1.0, color.RGBA{R: 240, G: 240, B: 240, A: 200}, false)
}

// logFrameStats emits the per-cycle work counters at debug level.
func (d *Display) logFrameStats() {
	d.log.Debug("draw cycle",
		zap.Int("frames", d.stats.Frames),
		zap.Int("invalidated", d.stats.InvalidatedHexes),
		zap.Int("drawn", d.stats.DrawnHexes),
	)
}
