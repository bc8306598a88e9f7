package terrain

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/veyrune/hexfield/internal/display"
	"github.com/veyrune/hexfield/internal/hexgrid"
)

// Type identifies the terrain of a hex.
type Type uint8

const (
	Grass     Type = iota // Default open ground
	Forest                // Tree cover, draws a canopy over units
	Hills                 // Rolling high ground
	Mountains             // Impassable peaks
	Water                 // Deep water
	Shallows              // Fordable water
	Sand                  // Desert / beach
	Swamp                 // Wetland
	Road                  // Paved or packed track
	Village               // Settlement hex
	Keep                  // Fortified hex
	typeCount             // sentinel
)

// baseColor returns the daytime colour of a terrain type. The minimap and
// the flat tile images both derive from it.
func baseColor(t Type) color.RGBA {
	switch t {
	case Grass:
		return color.RGBA{R: 88, G: 140, B: 60, A: 255}
	case Forest:
		return color.RGBA{R: 42, G: 94, B: 44, A: 255}
	case Hills:
		return color.RGBA{R: 126, G: 120, B: 78, A: 255}
	case Mountains:
		return color.RGBA{R: 130, G: 126, B: 130, A: 255}
	case Water:
		return color.RGBA{R: 38, G: 76, B: 150, A: 255}
	case Shallows:
		return color.RGBA{R: 70, G: 120, B: 178, A: 255}
	case Sand:
		return color.RGBA{R: 196, G: 176, B: 110, A: 255}
	case Swamp:
		return color.RGBA{R: 70, G: 96, B: 70, A: 255}
	case Road:
		return color.RGBA{R: 150, G: 134, B: 100, A: 255}
	case Village:
		return color.RGBA{R: 160, G: 110, B: 70, A: 255}
	case Keep:
		return color.RGBA{R: 110, G: 106, B: 112, A: 255}
	default:
		return color.RGBA{R: 88, G: 140, B: 60, A: 255}
	}
}

// shade darkens c by the lighting factor of the time of day.
func shade(c color.RGBA, tod display.TimeOfDay) color.RGBA {
	var mul int
	switch tod {
	case display.TimeDawn:
		mul = 224
	case display.TimeDusk:
		mul = 192
	case display.TimeNight:
		mul = 112
	default:
		return c
	}
	return color.RGBA{
		R: uint8(int(c.R) * mul / 256),
		G: uint8(int(c.G) * mul / 256),
		B: uint8(int(c.B) * mul / 256),
		A: c.A,
	}
}

// hasCanopy reports whether the type draws an overlay in front of units.
func hasCanopy(t Type) bool {
	return t == Forest || t == Mountains
}

// Map is a hex board of terrain types. It satisfies the renderer's terrain
// source interface; rules like movement cost live with the game, not here.
type Map struct {
	Cols, Rows int

	cells []Type
	tiles tileSet
}

// NewMap returns a Cols x Rows map of grass.
func NewMap(cols, rows int) *Map {
	return &Map{
		Cols:  cols,
		Rows:  rows,
		cells: make([]Type, cols*rows),
	}
}

func (m *Map) inBounds(loc hexgrid.Loc) bool {
	return loc.X >= 0 && loc.X < m.Cols && loc.Y >= 0 && loc.Y < m.Rows
}

// At returns the terrain at loc, grass if loc is off the map.
func (m *Map) At(loc hexgrid.Loc) Type {
	if !m.inBounds(loc) {
		return Grass
	}
	return m.cells[loc.Y*m.Cols+loc.X]
}

// Set writes the terrain at loc; off-map writes are ignored.
func (m *Map) Set(loc hexgrid.Loc, t Type) {
	if !m.inBounds(loc) {
		return
	}
	m.cells[loc.Y*m.Cols+loc.X] = t
}

// Size returns the board dimensions in hexes.
func (m *Map) Size() (cols, rows int) { return m.Cols, m.Rows }

// MinimapColor returns the thumbnail colour for loc.
func (m *Map) MinimapColor(loc hexgrid.Loc) color.RGBA {
	return baseColor(m.At(loc))
}

// TerrainImages returns the tile stack for loc. Background carries the flat
// terrain tile; foreground is the canopy overlay of types that draw over
// units, nil for the rest.
func (m *Map) TerrainImages(loc hexgrid.Loc, tod display.TimeOfDay, foreground bool, zoom int) []*ebiten.Image {
	t := m.At(loc)
	if foreground {
		if !hasCanopy(t) {
			return nil
		}
		return []*ebiten.Image{m.tiles.canopy(t, tod, zoom)}
	}
	return []*ebiten.Image{m.tiles.base(t, tod, zoom)}
}
