package display

import (
	"image"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/veyrune/hexfield/internal/config"
	"github.com/veyrune/hexfield/internal/hexgrid"
)

// Display owns the screen-space presentation of the board: viewport origin
// and zoom, the dirty set, the per-frame draw buffer, the minimap cache and
// the overlay registries. It is single-threaded by design; every method must
// be called from the one rendering/update call stack.
type Display struct {
	cfg *config.Config
	log *zap.Logger

	terrain TerrainSource
	fog     FogPolicy
	cols    int
	rows    int

	// Viewport state. viewX/viewY is the map-space pixel at the top-left of
	// the map area; zoom is pixels per hex.
	viewX   int
	viewY   int
	zoom    int
	minZoom int
	maxZoom int

	screenRect  image.Rectangle
	mapRect     image.Rectangle
	minimapRect image.Rectangle

	dirty  *tracker
	buffer drawBuffer
	groups []Layer

	// Animated scroll target in map-space origin pixels. Nil means idle;
	// a new scroll-to replaces it outright (last write wins).
	scrollTarget *image.Point

	minimap minimapCache

	arrows    map[hexgrid.Loc][]Arrow
	haloes    map[int]*halo
	nextHalo  int
	selected  hexgrid.Loc
	mouseover hexgrid.Loc

	grid       bool
	drawCoords bool
	tod        TimeOfDay

	// Frame scheduler: draw cycles are skipped until nextDraw unless forced.
	nextDraw time.Time
	now      func() time.Time

	frame     *ebiten.Image
	backFrame *ebiten.Image
	tiles     tileCache

	drawArea *flagGrid
	stats    RenderStats

	scrollObservers []func()
	redrawObservers []func()
}

// RenderStats reports the work done by draw cycles since construction.
type RenderStats struct {
	Frames           int // committed draw cycles
	SkippedFrames    int // cycles gated away by the frame budget
	InvalidatedHexes int // hexes taken from the dirty set
	DrawnHexes       int // hexes actually redrawn (inside the draw area)
}

// New builds a Display over the given terrain and fog providers. Theme
// geometry is read from cfg once; call ReloadTheme after changing it.
// layerGroups may be nil to use DefaultLayerGroups.
func New(cfg *config.Config, terrain TerrainSource, fog FogPolicy, layerGroups []Layer, log *zap.Logger) *Display {
	if fog == nil {
		fog = NoFog{}
	}
	if layerGroups == nil {
		layerGroups = DefaultLayerGroups
	}
	if log == nil {
		log = zap.NewNop()
	}
	cols, rows := terrain.Size()
	d := &Display{
		cfg:       cfg,
		log:       log,
		terrain:   terrain,
		fog:       fog,
		cols:      cols,
		rows:      rows,
		zoom:      hexgrid.AdjustZoom(cfg.Display.Zoom),
		minZoom:   hexgrid.MinZoom,
		maxZoom:   hexgrid.MaxZoom,
		dirty:     newTracker(),
		groups:    layerGroups,
		arrows:    make(map[hexgrid.Loc][]Arrow),
		haloes:    make(map[int]*halo),
		selected:  hexgrid.NullLoc,
		mouseover: hexgrid.NullLoc,
		grid:      cfg.Display.Grid,
		now:       time.Now,
		drawArea:  newFlagGrid(cols, rows, keyMaxBorder),
	}
	d.applyTheme()
	d.minimap.dirty = true
	d.dirty.invalidateAll()
	return d
}

// applyTheme recomputes the screen layout rectangles from the theme config.
func (d *Display) applyTheme() {
	t := d.cfg.Theme
	d.screenRect = image.Rect(0, 0, t.ScreenWidth, t.ScreenHeight)
	d.mapRect = image.Rect(0, 0, t.ScreenWidth-t.Sidebar.W, t.ScreenHeight)
	d.minimapRect = image.Rect(t.Minimap.X, t.Minimap.Y, t.Minimap.X+t.Minimap.W, t.Minimap.Y+t.Minimap.H)
	d.boundsCheck()
}

// ReloadTheme re-reads the theme section of the config and schedules a full
// redraw.
func (d *Display) ReloadTheme() {
	d.applyTheme()
	d.frame = nil
	d.backFrame = nil
	d.InvalidateAll()
}

// Geometry returns the coordinate mapper for the current viewport state.
// It is a value: take a fresh one after any scroll or zoom.
func (d *Display) Geometry() hexgrid.Geometry {
	return hexgrid.Geometry{
		Zoom:    d.zoom,
		ViewX:   d.viewX,
		ViewY:   d.viewY,
		MapRect: d.mapRect,
	}
}

// Zoom returns the current zoom in pixels per hex.
func (d *Display) Zoom() int { return d.zoom }

// MapArea returns the screen rectangle the map is drawn into.
func (d *Display) MapArea() image.Rectangle { return d.mapRect }

// MinimapArea returns the screen rectangle reserved for the minimap.
func (d *Display) MinimapArea() image.Rectangle { return d.minimapRect }

// mapPixelSize returns the full board size in pixels at the current zoom.
// The extra half hex of height covers the odd-column shift.
func (d *Display) mapPixelSize() (w, h int) {
	g := d.Geometry()
	return d.cols * g.HexWidth(), d.rows*g.HexSize() + g.HexSize()/2
}

// OnBoard reports whether loc is a real board cell.
func (d *Display) OnBoard(loc hexgrid.Loc) bool {
	return loc.Valid() && loc.X >= 0 && loc.X < d.cols && loc.Y >= 0 && loc.Y < d.rows
}

// VisibleHexes returns the range of board hexes intersecting the map area.
func (d *Display) VisibleHexes() hexgrid.RectOfHexes {
	return d.Geometry().HexesUnderRect(d.mapRect).ClampTo(d.cols, d.rows)
}

// HexClickedOn resolves a screen pixel to the board hex under it, or NullLoc
// if the pixel is outside the map area or off the board.
func (d *Display) HexClickedOn(x, y int) hexgrid.Loc {
	loc := d.Geometry().PixelToHex(image.Point{X: x, Y: y})
	if !d.OnBoard(loc) {
		return hexgrid.NullLoc
	}
	return loc
}

// SelectHex marks loc as the selected hex, repainting the old and new one.
// Passing NullLoc clears the selection.
func (d *Display) SelectHex(loc hexgrid.Loc) {
	if loc.Valid() && !d.OnBoard(loc) {
		return
	}
	d.Invalidate(d.selected)
	d.selected = loc
	d.Invalidate(loc)
}

// HighlightHex marks loc as the mouse-over hex.
func (d *Display) HighlightHex(loc hexgrid.Loc) {
	if loc == d.mouseover {
		return
	}
	d.Invalidate(d.mouseover)
	d.mouseover = loc
	d.Invalidate(loc)
}

// SelectedHex returns the currently selected hex, NullLoc if none.
func (d *Display) SelectedHex() hexgrid.Loc { return d.selected }

// MouseoverHex returns the hex under the cursor, NullLoc if none.
func (d *Display) MouseoverHex() hexgrid.Loc { return d.mouseover }

// SetGrid toggles the hex outline overlay.
func (d *Display) SetGrid(on bool) {
	if d.grid != on {
		d.grid = on
		d.InvalidateAll()
	}
}

// SetDrawCoordinates toggles the per-hex coordinate debug overlay.
func (d *Display) SetDrawCoordinates(on bool) {
	if d.drawCoords != on {
		d.drawCoords = on
		d.InvalidateAll()
	}
}

// SetTimeOfDay changes the lighting variant and repaints everything.
func (d *Display) SetTimeOfDay(tod TimeOfDay) {
	if d.tod != tod {
		d.tod = tod
		d.InvalidateAll()
	}
}

// Invalidate marks one hex for redraw; off-board and null locations are
// ignored. Reports whether new work was added.
func (d *Display) Invalidate(loc hexgrid.Loc) bool {
	if !d.OnBoard(loc) {
		return false
	}
	return d.dirty.invalidate(loc)
}

// InvalidateSet marks every hex in locs for redraw.
func (d *Display) InvalidateSet(locs []hexgrid.Loc) bool {
	added := false
	for _, loc := range locs {
		if d.Invalidate(loc) {
			added = true
		}
	}
	return added
}

// InvalidateAll schedules a full repaint and notifies redraw observers.
func (d *Display) InvalidateAll() {
	d.dirty.invalidateAll()
	for _, fn := range d.redrawObservers {
		fn()
	}
}

// PropagateInvalidation promotes locs to fully dirty if any of them already
// is, so multi-hex content repaints in one piece.
func (d *Display) PropagateInvalidation(locs []hexgrid.Loc) bool {
	return d.dirty.propagate(locs)
}

// InvalidateRect marks every hex under the screen rectangle r for redraw.
func (d *Display) InvalidateRect(r image.Rectangle) bool {
	added := false
	d.Geometry().HexesUnderRect(r).ClampTo(d.cols, d.rows).Each(func(loc hexgrid.Loc) {
		if d.dirty.invalidate(loc) {
			added = true
		}
	})
	return added
}

// AddScrollObserver registers fn to run whenever the viewport origin moves.
func (d *Display) AddScrollObserver(fn func()) {
	d.scrollObservers = append(d.scrollObservers, fn)
}

// AddRedrawObserver registers fn to run on every full-repaint request.
func (d *Display) AddRedrawObserver(fn func()) {
	d.redrawObservers = append(d.redrawObservers, fn)
}

// Stats returns the accumulated render counters.
func (d *Display) Stats() RenderStats { return d.stats }
