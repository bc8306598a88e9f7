package terrain

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/veyrune/hexfield/internal/display"
)

// tileKey identifies one generated tile image.
type tileKey struct {
	t      Type
	tod    display.TimeOfDay
	zoom   int
	canopy bool
}

// tileSet caches the procedurally generated tile images. Images are built on
// first use, so a map constructed in tests never touches the GPU.
type tileSet struct {
	imgs map[tileKey]*ebiten.Image
}

func (s *tileSet) get(k tileKey) (*ebiten.Image, bool) {
	img, ok := s.imgs[k]
	return img, ok
}

func (s *tileSet) put(k tileKey, img *ebiten.Image) {
	if s.imgs == nil {
		s.imgs = make(map[tileKey]*ebiten.Image)
	}
	s.imgs[k] = img
}

// base returns the flat terrain tile for t at the given lighting and zoom.
func (s *tileSet) base(t Type, tod display.TimeOfDay, zoom int) *ebiten.Image {
	k := tileKey{t: t, tod: tod, zoom: zoom}
	if img, ok := s.get(k); ok {
		return img
	}
	img := ebiten.NewImage(zoom, zoom)
	img.Fill(shade(baseColor(t), tod))
	s.put(k, img)
	return img
}

// canopy returns the overlay drawn in front of units: a filled circle in a
// darker take on the terrain colour, covering the middle of the hex.
func (s *tileSet) canopy(t Type, tod display.TimeOfDay, zoom int) *ebiten.Image {
	k := tileKey{t: t, tod: tod, zoom: zoom, canopy: true}
	if img, ok := s.get(k); ok {
		return img
	}
	img := ebiten.NewImage(zoom, zoom)
	c := baseColor(t)
	c.R = uint8(int(c.R) * 3 / 4)
	c.G = uint8(int(c.G) * 3 / 4)
	c.B = uint8(int(c.B) * 3 / 4)
	c.A = 200
	half := float32(zoom) / 2
	vector.DrawFilledCircle(img, half, half, half*0.6, shade(c, tod), true)
	s.put(k, img)
	return img
}
