package display

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/veyrune/hexfield/internal/hexgrid"
)

// TimeOfDay selects the lighting variant terrain sources render with.
type TimeOfDay int

const (
	TimeDay TimeOfDay = iota
	TimeDawn
	TimeDusk
	TimeNight
)

// TerrainSource supplies the board dimensions and per-hex imagery. It is the
// engine's only view of the map; game rules live elsewhere.
type TerrainSource interface {
	// Size returns the board dimensions in hexes.
	Size() (cols, rows int)
	// TerrainImages returns the image stack for loc, split into the layers
	// drawn behind units (foreground=false) and in front of them
	// (foreground=true). A nil or empty slice means nothing to draw.
	TerrainImages(loc hexgrid.Loc, tod TimeOfDay, foreground bool, zoom int) []*ebiten.Image
	// MinimapColor returns the thumbnail colour for loc.
	MinimapColor(loc hexgrid.Loc) color.RGBA
}

// FogPolicy reports which hexes the viewer may not see. Editor and in-game
// variants differ here, so it is injected rather than subclassed.
type FogPolicy interface {
	// Shrouded hexes are fully hidden.
	Shrouded(loc hexgrid.Loc) bool
	// Fogged hexes show terrain but hide contents.
	Fogged(loc hexgrid.Loc) bool
}

// NoFog is the FogPolicy that hides nothing (editor mode).
type NoFog struct{}

func (NoFog) Shrouded(hexgrid.Loc) bool { return false }
func (NoFog) Fogged(hexgrid.Loc) bool   { return false }

// HaloSource yields the current frame of an animated halo: the image and its
// pixel offset from the owning hex's top-left corner.
type HaloSource interface {
	HaloFrame() (img *ebiten.Image, offset image.Point)
}

// Arrow is an externally owned path overlay. The engine never takes
// ownership: arrows register, update, and remove themselves, and the engine
// keeps only a location index for invalidation and per-frame drawing.
type Arrow interface {
	// Path returns the hexes the arrow currently occupies, in order.
	Path() []hexgrid.Loc
	// DrawSegment queues the arrow's imagery for one occupied hex.
	DrawSegment(d *Display, loc hexgrid.Loc)
}
