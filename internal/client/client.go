package client

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"go.uber.org/zap"

	"github.com/veyrune/hexfield/internal/config"
	"github.com/veyrune/hexfield/internal/display"
	"github.com/veyrune/hexfield/internal/hexgrid"
)

// Game drives the render engine from the ebiten loop: it translates input
// into viewport and selection changes and presents the composed frame.
type Game struct {
	cfg *config.Config
	log *zap.Logger
	d   *display.Display

	prevKeys      map[ebiten.Key]bool
	prevMouseLeft bool
	coordsOn      bool

	times []display.TimeOfDay
	timeI int
}

// New wires the display to the ebiten loop.
func New(cfg *config.Config, d *display.Display, log *zap.Logger) *Game {
	if log == nil {
		log = zap.NewNop()
	}
	return &Game{
		cfg:      cfg,
		log:      log,
		d:        d,
		prevKeys: make(map[ebiten.Key]bool),
		times: []display.TimeOfDay{
			display.TimeDay, display.TimeDusk, display.TimeNight, display.TimeDawn,
		},
	}
}

func (g *Game) Update() error {
	g.handleInput()
	return nil
}

// handleInput processes keyboard and mouse (toggles edge-triggered).
func (g *Game) handleInput() {
	currentKeys := map[ebiten.Key]bool{}
	pressed := func(k ebiten.Key) bool {
		currentKeys[k] = ebiten.IsKeyPressed(k)
		return currentKeys[k] && !g.prevKeys[k]
	}

	// Viewport pan: WASD or arrow keys.
	pan := int(g.cfg.Display.ScrollSpeed)
	if pan < 1 {
		pan = 1
	}
	dx, dy := 0, 0
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		dy -= pan
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		dy += pan
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		dx -= pan
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		dx += pan
	}
	if dx != 0 || dy != 0 {
		g.d.Scroll(dx, dy)
	}

	// Zoom: mouse wheel or =/- keys, one increment per step.
	_, wy := ebiten.Wheel()
	if wy > 0 {
		g.d.SetZoom(hexgrid.ZoomIncrement)
	} else if wy < 0 {
		g.d.SetZoom(-hexgrid.ZoomIncrement)
	}
	if pressed(ebiten.KeyEqual) {
		g.d.SetZoom(hexgrid.ZoomIncrement)
	}
	if pressed(ebiten.KeyMinus) {
		g.d.SetZoom(-hexgrid.ZoomIncrement)
	}
	if pressed(ebiten.KeyDigit0) {
		g.d.SetDefaultZoom()
	}

	// G: grid, V: per-hex coordinates, T: cycle lighting.
	if pressed(ebiten.KeyG) {
		g.cfg.Display.Grid = !g.cfg.Display.Grid
		g.d.SetGrid(g.cfg.Display.Grid)
	}
	if pressed(ebiten.KeyV) {
		g.coordsOn = !g.coordsOn
		g.d.SetDrawCoordinates(g.coordsOn)
	}
	if pressed(ebiten.KeyT) {
		g.timeI = (g.timeI + 1) % len(g.times)
		g.d.SetTimeOfDay(g.times[g.timeI])
	}

	// Space: centre on the selected hex.
	if pressed(ebiten.KeySpace) {
		if sel := g.d.SelectedHex(); sel.Valid() {
			g.d.ScrollToTile(sel, display.ScrollModeScroll, false, true)
		}
	}

	// C: copy the selected hex (or the hex under the cursor) to the clipboard.
	if pressed(ebiten.KeyC) {
		loc := g.d.SelectedHex()
		if !loc.Valid() {
			loc = g.d.MouseoverHex()
		}
		if loc.Valid() {
			if err := clipboard.WriteAll(loc.String()); err != nil {
				g.log.Warn("clipboard write failed", zap.Error(err))
			}
		}
	}

	// F12: screenshot of the current view; shift+F12 renders the whole map.
	if pressed(ebiten.KeyF12) {
		mapOnly := ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight)
		path := fmt.Sprintf("screenshot-%d.png", time.Now().Unix())
		if _, err := g.d.Screenshot(path, mapOnly); err != nil {
			g.log.Warn("screenshot failed", zap.Error(err))
		}
	}

	g.handleMouse()
	g.prevKeys = currentKeys
}

func (g *Game) handleMouse() {
	mx, my := ebiten.CursorPosition()

	g.d.HighlightHex(g.d.HexClickedOn(mx, my))

	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	if left && !g.prevMouseLeft {
		if loc := g.d.MinimapLocationOn(mx, my); loc.Valid() {
			g.d.ScrollToTile(loc, display.ScrollModeWarp, false, true)
		} else if loc := g.d.HexClickedOn(mx, my); loc.Valid() {
			g.d.SelectHex(loc)
		}
	}
	g.prevMouseLeft = left
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.d.Draw(true, false)

	if frame := g.d.Frame(); frame != nil {
		op := &ebiten.DrawImageOptions{}
		r := g.d.MapArea()
		op.GeoM.Translate(float64(r.Min.X), float64(r.Min.Y))
		screen.DrawImage(frame, op)
	}
	g.d.DrawMinimapInto(screen)
	g.drawSidebar(screen)
}

// drawSidebar prints the status readout under the minimap.
func (g *Game) drawSidebar(screen *ebiten.Image) {
	x := g.d.MapArea().Max.X + 12
	y := g.d.MinimapArea().Max.Y + 12
	st := g.d.Stats()
	lines := []string{
		fmt.Sprintf("zoom     %d", g.d.Zoom()),
		fmt.Sprintf("selected %s", locLabel(g.d.SelectedHex())),
		fmt.Sprintf("cursor   %s", locLabel(g.d.MouseoverHex())),
		fmt.Sprintf("frames   %d (%d skipped)", st.Frames, st.SkippedFrames),
		fmt.Sprintf("redrawn  %d hexes", st.DrawnHexes),
	}
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, x, y+i*16)
	}
}

func locLabel(loc hexgrid.Loc) string {
	if !loc.Valid() {
		return "-"
	}
	return loc.String()
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.cfg.Theme.ScreenWidth, g.cfg.Theme.ScreenHeight
}
