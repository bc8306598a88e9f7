package display

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// Screenshot writes a PNG of the current view, or of the whole map when
// mapOnly is set, and returns the file size in bytes. A failure is reported
// as an error with a zero size; the render loop keeps running either way.
func (d *Display) Screenshot(path string, mapOnly bool) (int64, error) {
	var shot *ebiten.Image
	if mapOnly {
		shot = d.composeFullMap()
		defer shot.Deallocate()
	} else {
		// Compose pending work without touching the frame budget.
		d.Draw(false, true)
		shot = d.frame
	}
	if shot == nil {
		return 0, fmt.Errorf("screenshot %s: nothing composed yet", path)
	}

	b := shot.Bounds()
	pix := make([]byte, 4*b.Dx()*b.Dy())
	shot.ReadPixels(pix)
	img := &image.RGBA{Pix: pix, Stride: 4 * b.Dx(), Rect: image.Rect(0, 0, b.Dx(), b.Dy())}

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("screenshot %s: %w", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return 0, fmt.Errorf("screenshot %s: encode: %w", path, err)
	}
	st, err := f.Stat()
	if err != nil {
		return 0, fmt.Errorf("screenshot %s: %w", path, err)
	}
	d.log.Info("screenshot saved",
		zap.String("path", path),
		zap.Bool("map_only", mapOnly),
		zap.Int64("bytes", st.Size()),
	)
	return st.Size(), nil
}

// composeFullMap renders the entire board, ignoring the viewport, into a
// fresh image. Viewport state is restored afterwards and the on-screen
// region is left scheduled for repaint.
func (d *Display) composeFullMap() *ebiten.Image {
	mw, mh := d.mapPixelSize()
	big := ebiten.NewImage(mw, mh)

	savedX, savedY, savedRect := d.viewX, d.viewY, d.mapRect
	d.viewX, d.viewY = 0, 0
	d.mapRect = image.Rect(0, 0, mw, mh)

	big.Fill(backgroundColor)
	d.compose(big, nil, true)

	d.viewX, d.viewY, d.mapRect = savedX, savedY, savedRect
	d.dirty.invalidateAll()
	return big
}
