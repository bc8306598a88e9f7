package display

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
	xdraw "golang.org/x/image/draw"

	"github.com/veyrune/hexfield/internal/hexgrid"
)

// minimapCache holds the lazily rebuilt map thumbnail. The cache is never
// partially updated: a terrain or zoom change drops it whole and the next
// read rebuilds it.
type minimapCache struct {
	img    *image.RGBA
	tex    *ebiten.Image
	w, h   int
	dirty  bool
	redraw bool // units moved; re-blit wanted even though terrain is unchanged
}

// RecalculateMinimap drops the cached thumbnail. The rebuild is deferred to
// the next Minimap call.
func (d *Display) RecalculateMinimap() {
	d.minimap.img = nil
	d.minimap.tex = nil
	d.minimap.dirty = true
}

// RedrawMinimap schedules the minimap for re-presentation without rebuilding
// the terrain thumbnail, e.g. after units moved.
func (d *Display) RedrawMinimap() {
	d.minimap.redraw = true
}

// Minimap returns a w x h thumbnail of the full map terrain. A non-dirty
// cache of the same size is returned as-is; anything else triggers a full
// rebuild from the terrain source.
func (d *Display) Minimap(w, h int) *image.RGBA {
	if w <= 0 || h <= 0 {
		return nil
	}
	m := &d.minimap
	if !m.dirty && m.img != nil && m.w == w && m.h == h {
		return m.img
	}
	m.img = d.buildMinimap(w, h)
	m.tex = nil
	m.w, m.h = w, h
	m.dirty = false
	m.redraw = true
	d.log.Debug("minimap rebuilt", zap.Int("w", w), zap.Int("h", h))
	return m.img
}

// buildMinimap paints one pixel per hex (odd columns offset half a row) and
// scales the result to the requested size.
func (d *Display) buildMinimap(w, h int) *image.RGBA {
	// Two vertical sub-pixels per hex keep the odd-column offset visible.
	src := image.NewRGBA(image.Rect(0, 0, d.cols, d.rows*2+1))
	for x := 0; x < d.cols; x++ {
		shift := 0
		if x&1 != 0 {
			shift = 1
		}
		for y := 0; y < d.rows; y++ {
			c := d.terrain.MinimapColor(hexgrid.Loc{X: x, Y: y})
			src.SetRGBA(x, y*2+shift, c)
			src.SetRGBA(x, y*2+shift+1, c)
		}
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

// needsTexture reports whether the GPU copy of the thumbnail is missing or
// stale.
func (c *minimapCache) needsTexture() bool {
	return c.tex == nil || c.redraw
}

// minimapTexture returns the thumbnail as a GPU image for compositing,
// rebuilding the texture when the pixels changed or a re-present was
// requested.
func (d *Display) minimapTexture(w, h int) *ebiten.Image {
	img := d.Minimap(w, h)
	if img == nil {
		return nil
	}
	if d.minimap.needsTexture() {
		d.minimap.tex = ebiten.NewImageFromImage(img)
	}
	d.minimap.redraw = false
	return d.minimap.tex
}

// MinimapLocationOn resolves a screen pixel inside the minimap rectangle to
// the board hex it represents, or NullLoc when outside.
func (d *Display) MinimapLocationOn(x, y int) hexgrid.Loc {
	r := d.minimapRect
	p := image.Point{X: x, Y: y}
	if !p.In(r) || r.Dx() <= 0 || r.Dy() <= 0 {
		return hexgrid.NullLoc
	}
	loc := hexgrid.Loc{
		X: (x - r.Min.X) * d.cols / r.Dx(),
		Y: (y - r.Min.Y) * d.rows / r.Dy(),
	}
	if !d.OnBoard(loc) {
		return hexgrid.NullLoc
	}
	return loc
}
