package display

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// tileCache holds the procedurally generated per-zoom overlay images: grid
// outline, selection and cursor highlights, fog and shroud washes. Rebuilt
// whenever the zoom changes.
type tileCache struct {
	zoom      int
	grid      *ebiten.Image
	selected  *ebiten.Image
	mouseover *ebiten.Image
	fog       *ebiten.Image
	shroud    *ebiten.Image
}

func (c *tileCache) ensure(zoom int) {
	if c.zoom == zoom && c.grid != nil {
		return
	}
	c.zoom = zoom
	z := float32(zoom)

	c.grid = ebiten.NewImage(zoom, zoom)
	vector.StrokeRect(c.grid, 0.5, 0.5, z-1, z-1, 1.0,
		color.RGBA{R: 90, G: 90, B: 96, A: 140}, false)

	c.selected = ebiten.NewImage(zoom, zoom)
	vector.StrokeRect(c.selected, 1, 1, z-2, z-2, 2.0,
		color.RGBA{R: 255, G: 240, B: 60, A: 220}, false)

	c.mouseover = ebiten.NewImage(zoom, zoom)
	vector.StrokeRect(c.mouseover, 1, 1, z-2, z-2, 1.5,
		color.RGBA{R: 220, G: 220, B: 220, A: 160}, false)

	c.fog = ebiten.NewImage(zoom, zoom)
	c.fog.Fill(color.RGBA{R: 0, G: 0, B: 0, A: 110})

	c.shroud = ebiten.NewImage(zoom, zoom)
	c.shroud.Fill(color.RGBA{R: 8, G: 8, B: 10, A: 255})
}
