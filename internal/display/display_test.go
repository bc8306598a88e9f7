package display

import (
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/veyrune/hexfield/internal/config"
	"github.com/veyrune/hexfield/internal/hexgrid"
)

// fakeTerrain is a board of the given size that never hands out images, so
// tests run without a graphics context.
type fakeTerrain struct {
	cols, rows int
}

func (f fakeTerrain) Size() (int, int) { return f.cols, f.rows }

func (f fakeTerrain) TerrainImages(hexgrid.Loc, TimeOfDay, bool, int) []*ebiten.Image {
	return nil
}

func (f fakeTerrain) MinimapColor(loc hexgrid.Loc) color.RGBA {
	if (loc.X+loc.Y)&1 == 0 {
		return color.RGBA{R: 40, G: 160, B: 40, A: 255}
	}
	return color.RGBA{R: 30, G: 120, B: 200, A: 255}
}

// allShroud hides the whole board.
type allShroud struct{}

func (allShroud) Shrouded(hexgrid.Loc) bool { return true }
func (allShroud) Fogged(hexgrid.Loc) bool   { return false }

// pathArrow is an Arrow whose path tests mutate between updates.
type pathArrow struct {
	path []hexgrid.Loc
}

func (a *pathArrow) Path() []hexgrid.Loc             { return a.path }
func (a *pathArrow) DrawSegment(*Display, hexgrid.Loc) {}

func newTestDisplay(t *testing.T, cols, rows int) *Display {
	t.Helper()
	cfg := config.Default()
	d := New(cfg, fakeTerrain{cols: cols, rows: rows}, nil, nil, nil)
	// Construction schedules a full repaint; drain it so assertions see
	// only the invalidations made by the test itself.
	d.dirty.takeAndClear()
	return d
}

func TestNew_Defaults(t *testing.T) {
	cfg := config.Default()
	d := New(cfg, fakeTerrain{cols: 50, rows: 50}, nil, nil, nil)
	if d.Zoom() != hexgrid.DefaultZoom {
		t.Fatalf("zoom=%d, want %d", d.Zoom(), hexgrid.DefaultZoom)
	}
	if !d.dirty.pending() {
		t.Fatal("a fresh display should have a full repaint queued")
	}
	if d.SelectedHex() != hexgrid.NullLoc || d.MouseoverHex() != hexgrid.NullLoc {
		t.Fatal("no hex should start selected or highlighted")
	}
	if d.frame != nil {
		t.Fatal("frames must not be allocated before the first draw cycle")
	}
	if got := d.MapArea().Dx(); got != cfg.Theme.ScreenWidth-cfg.Theme.Sidebar.W {
		t.Fatalf("map area width=%d, want screen minus sidebar", got)
	}
}

func TestHexClickedOn(t *testing.T) {
	d := newTestDisplay(t, 50, 50)
	if got := d.HexClickedOn(10, 10); got != (hexgrid.Loc{X: 0, Y: 0}) {
		t.Fatalf("click (10,10) resolved to %v, want (0,0)", got)
	}
	// Odd column: shifted down half a hex, so y=40 is still row 0.
	if got := d.HexClickedOn(70, 40); got != (hexgrid.Loc{X: 1, Y: 0}) {
		t.Fatalf("click (70,40) resolved to %v, want (1,0)", got)
	}
	// Sidebar pixels are outside the map area.
	if got := d.HexClickedOn(1100, 10); got != hexgrid.NullLoc {
		t.Fatalf("sidebar click resolved to %v, want NullLoc", got)
	}
	// Odd column, pixel above the shifted hex top resolves to y=-1, which
	// is off the board.
	if got := d.HexClickedOn(70, 10); got != hexgrid.NullLoc {
		t.Fatalf("click above shifted column resolved to %v, want NullLoc", got)
	}
}

func TestSelectHex_RepaintsOldAndNew(t *testing.T) {
	d := newTestDisplay(t, 50, 50)
	a := hexgrid.Loc{X: 2, Y: 2}
	b := hexgrid.Loc{X: 4, Y: 4}

	d.SelectHex(a)
	locs, all := d.dirty.takeAndClear()
	if all || !locs.Has(a) {
		t.Fatalf("selecting %v should mark it dirty, got %v", a, locs)
	}

	d.SelectHex(b)
	locs, _ = d.dirty.takeAndClear()
	if !locs.Has(a) || !locs.Has(b) {
		t.Fatalf("reselect should repaint old and new, got %v", locs)
	}
	if d.SelectedHex() != b {
		t.Fatalf("selected=%v, want %v", d.SelectedHex(), b)
	}

	d.SelectHex(hexgrid.NullLoc)
	if d.SelectedHex() != hexgrid.NullLoc {
		t.Fatal("NullLoc should clear the selection")
	}
}

func TestSelectHex_OffBoardIgnored(t *testing.T) {
	d := newTestDisplay(t, 10, 10)
	d.SelectHex(hexgrid.Loc{X: 3, Y: 3})
	d.dirty.takeAndClear()
	d.SelectHex(hexgrid.Loc{X: 99, Y: 99})
	if d.SelectedHex() != (hexgrid.Loc{X: 3, Y: 3}) {
		t.Fatal("off-board select should leave the selection unchanged")
	}
}

func TestHighlightHex_NoWorkWhenUnchanged(t *testing.T) {
	d := newTestDisplay(t, 50, 50)
	loc := hexgrid.Loc{X: 5, Y: 5}
	d.HighlightHex(loc)
	d.dirty.takeAndClear()
	d.HighlightHex(loc)
	if d.dirty.pending() {
		t.Fatal("re-highlighting the same hex should queue nothing")
	}
}

func TestInvalidate_OffBoardRejected(t *testing.T) {
	d := newTestDisplay(t, 10, 10)
	if d.Invalidate(hexgrid.Loc{X: -1, Y: 0}) {
		t.Fatal("border hex is not a board cell")
	}
	if d.Invalidate(hexgrid.Loc{X: 10, Y: 0}) {
		t.Fatal("past-the-edge hex should be rejected")
	}
	if d.dirty.pending() {
		t.Fatal("rejected invalidations queued work")
	}
}

func TestSetGrid_TogglesRepaint(t *testing.T) {
	d := newTestDisplay(t, 20, 20)
	before := d.grid
	d.SetGrid(!before)
	if _, all := d.dirty.takeAndClear(); !all {
		t.Fatal("grid toggle should repaint everything")
	}
	d.SetGrid(!before)
	if d.dirty.pending() {
		t.Fatal("setting the grid to its current state should queue nothing")
	}
}

func TestSetTimeOfDay(t *testing.T) {
	d := newTestDisplay(t, 20, 20)
	d.SetTimeOfDay(TimeNight)
	if _, all := d.dirty.takeAndClear(); !all {
		t.Fatal("lighting change should repaint everything")
	}
	d.SetTimeOfDay(TimeNight)
	if d.dirty.pending() {
		t.Fatal("unchanged lighting should queue nothing")
	}
}

func TestDraw_FrameBudgetGate(t *testing.T) {
	d := newTestDisplay(t, 20, 20)
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	d.now = func() time.Time { return t0 }
	d.nextDraw = t0.Add(50 * time.Millisecond)

	if d.Draw(true, false) {
		t.Fatal("draw before the budget should be skipped")
	}
	if d.Stats().SkippedFrames != 1 {
		t.Fatalf("skipped=%d, want 1", d.Stats().SkippedFrames)
	}
	if d.Stats().Frames != 0 {
		t.Fatal("skipped cycle must not count as a frame")
	}
}

func TestUpdateArrow_TransitionDirtySet(t *testing.T) {
	d := newTestDisplay(t, 50, 50)
	a := &pathArrow{path: []hexgrid.Loc{{X: 3, Y: 3}, {X: 3, Y: 4}}}
	d.AddArrow(a)
	d.dirty.takeAndClear()

	oldPath := a.path
	a.path = []hexgrid.Loc{{X: 3, Y: 4}, {X: 3, Y: 5}}
	d.UpdateArrow(a, oldPath)

	locs, all := d.dirty.takeAndClear()
	if all {
		t.Fatal("arrow update should not force a full repaint")
	}
	want := []hexgrid.Loc{{X: 3, Y: 3}, {X: 3, Y: 4}, {X: 3, Y: 5}}
	if len(locs) != len(want) {
		t.Fatalf("dirty set has %d hexes, want %d: %v", len(locs), len(want), locs)
	}
	for _, loc := range want {
		if !locs.Has(loc) {
			t.Fatalf("dirty set missing %v: %v", loc, locs)
		}
	}

	if len(d.arrowsAt(hexgrid.Loc{X: 3, Y: 3})) != 0 {
		t.Fatal("old head should no longer index the arrow")
	}
	if len(d.arrowsAt(hexgrid.Loc{X: 3, Y: 5})) != 1 {
		t.Fatal("new tail should index the arrow")
	}
}

func TestRemoveArrow(t *testing.T) {
	d := newTestDisplay(t, 50, 50)
	a := &pathArrow{path: []hexgrid.Loc{{X: 1, Y: 1}, {X: 2, Y: 1}}}
	d.AddArrow(a)
	d.dirty.takeAndClear()
	d.RemoveArrow(a)
	locs, _ := d.dirty.takeAndClear()
	if !locs.Has(hexgrid.Loc{X: 1, Y: 1}) || !locs.Has(hexgrid.Loc{X: 2, Y: 1}) {
		t.Fatalf("removal should repaint the footprint, got %v", locs)
	}
	if len(d.arrows) != 0 {
		t.Fatal("arrow index should be empty after removal")
	}
}

func TestHaloLifecycle(t *testing.T) {
	d := newTestDisplay(t, 50, 50)
	id1 := d.AddHalo(hexgrid.Loc{X: 2, Y: 2}, LayerUnitDefault, nil)
	id2 := d.AddHalo(hexgrid.Loc{X: 3, Y: 3}, LayerUnitDefault, nil)
	if id1 == id2 {
		t.Fatal("halo ids must be unique")
	}
	if d.HaloCount() != 2 {
		t.Fatalf("count=%d, want 2", d.HaloCount())
	}

	d.dirty.takeAndClear()
	d.MoveHalo(id1, hexgrid.Loc{X: 4, Y: 4})
	locs, _ := d.dirty.takeAndClear()
	if !locs.Has(hexgrid.Loc{X: 2, Y: 2}) || !locs.Has(hexgrid.Loc{X: 4, Y: 4}) {
		t.Fatalf("move should repaint both footprints, got %v", locs)
	}

	d.RemoveHalo(id1)
	d.RemoveHalo(id1) // double remove is a no-op
	if d.HaloCount() != 1 {
		t.Fatalf("count=%d, want 1", d.HaloCount())
	}
	locs, _ = d.dirty.takeAndClear()
	if !locs.Has(hexgrid.Loc{X: 4, Y: 4}) {
		t.Fatal("removal should repaint the last footprint")
	}
}

func TestHaloesAt_OrderedById(t *testing.T) {
	d := newTestDisplay(t, 50, 50)
	loc := hexgrid.Loc{X: 5, Y: 5}
	var ids []int
	for i := 0; i < 6; i++ {
		ids = append(ids, d.AddHalo(loc, LayerUnitBar, nil))
	}
	d.AddHalo(hexgrid.Loc{X: 6, Y: 5}, LayerUnitBar, nil)

	got := d.haloesAt(loc)
	if len(got) != len(ids) {
		t.Fatalf("got %d haloes on %v, want %d", len(got), loc, len(ids))
	}
	for i, h := range got {
		if h.id != ids[i] {
			t.Fatalf("position %d has id %d, want %d; haloes sharing a hex and layer tie on the ordering key, so draw order must follow registration", i, h.id, ids[i])
		}
		if h.loc != loc {
			t.Fatalf("halo %d sits on %v, want %v", h.id, h.loc, loc)
		}
	}
}

func TestBeginCycle_ScrollOnlyOnUpdate(t *testing.T) {
	d := newTestDisplay(t, 50, 50)
	d.scrollTarget = &image.Point{X: 400, Y: 0}

	d.beginCycle(false)
	if d.viewX != 0 {
		t.Fatal("composing without update must not advance the scroll animation")
	}
	if d.scrollTarget == nil {
		t.Fatal("composing without update must keep the scroll target")
	}

	d.beginCycle(true)
	if d.viewX == 0 {
		t.Fatal("an update cycle should advance the scroll")
	}
}

func TestObservers(t *testing.T) {
	d := newTestDisplay(t, 50, 50)
	scrolls, redraws := 0, 0
	d.AddScrollObserver(func() { scrolls++ })
	d.AddRedrawObserver(func() { redraws++ })

	d.Scroll(64, 0)
	if scrolls != 1 {
		t.Fatalf("scroll observers fired %d times, want 1", scrolls)
	}
	// Without a composed frame yet, the scroll degrades to a full repaint
	// and notifies the redraw observers too.
	if redraws != 1 {
		t.Fatalf("redraw observers fired %d times, want 1", redraws)
	}
	d.Scroll(0, 0)
	if scrolls != 1 {
		t.Fatal("a no-op scroll should not notify")
	}
	d.InvalidateAll()
	if redraws != 2 {
		t.Fatalf("redraw observers fired %d times, want 2", redraws)
	}
}

func TestVisibleHexes_ClampedToBoard(t *testing.T) {
	d := newTestDisplay(t, 5, 5)
	// Board is far smaller than the view; the range must not leave it.
	area := d.VisibleHexes()
	if area.Left < 0 || area.Right > 4 {
		t.Fatalf("columns [%d,%d] leave the board", area.Left, area.Right)
	}
	area.Each(func(loc hexgrid.Loc) {
		if !d.OnBoard(loc) {
			t.Fatalf("visible range yielded off-board hex %v", loc)
		}
	})
}
