package display

import (
	"image"
	"sort"

	"go.uber.org/zap"

	"github.com/veyrune/hexfield/internal/hexgrid"
)

// halo is one registered animation handle. The source stays owned by the
// caller; the engine only remembers where to draw and invalidate it.
type halo struct {
	id    int
	loc   hexgrid.Loc
	layer Layer
	src   HaloSource
}

// AddArrow registers an arrow's current path for drawing and invalidation.
func (d *Display) AddArrow(a Arrow) {
	for _, loc := range a.Path() {
		d.arrows[loc] = append(d.arrows[loc], a)
	}
	d.InvalidateSet(a.Path())
}

// RemoveArrow deregisters the arrow and repaints the hexes it occupied.
func (d *Display) RemoveArrow(a Arrow) {
	for _, loc := range a.Path() {
		d.arrows[loc] = removeArrow(d.arrows[loc], a)
		if len(d.arrows[loc]) == 0 {
			delete(d.arrows, loc)
		}
	}
	d.InvalidateSet(a.Path())
}

// UpdateArrow is called by an arrow whose path changed. The old and new
// footprints repaint together so the transition never tears.
func (d *Display) UpdateArrow(a Arrow, oldPath []hexgrid.Loc) {
	for _, loc := range oldPath {
		d.arrows[loc] = removeArrow(d.arrows[loc], a)
		if len(d.arrows[loc]) == 0 {
			delete(d.arrows, loc)
		}
	}
	newPath := a.Path()
	for _, loc := range newPath {
		d.arrows[loc] = append(d.arrows[loc], a)
	}
	d.InvalidateSet(oldPath)
	if !d.PropagateInvalidation(newPath) {
		d.InvalidateSet(newPath)
	}
}

func removeArrow(list []Arrow, a Arrow) []Arrow {
	out := list[:0]
	for _, x := range list {
		if x != a {
			out = append(out, x)
		}
	}
	return out
}

// arrowsAt returns the arrows occupying loc.
func (d *Display) arrowsAt(loc hexgrid.Loc) []Arrow {
	return d.arrows[loc]
}

// AddHalo registers an animation handle at loc on the given layer and
// returns its id.
func (d *Display) AddHalo(loc hexgrid.Loc, layer Layer, src HaloSource) int {
	d.nextHalo++
	id := d.nextHalo
	d.haloes[id] = &halo{id: id, loc: loc, layer: layer, src: src}
	d.Invalidate(loc)
	d.log.Debug("halo added", zap.Int("id", id), zap.Stringer("loc", loc))
	return id
}

// MoveHalo relocates a halo, repainting both footprints.
func (d *Display) MoveHalo(id int, loc hexgrid.Loc) {
	h, ok := d.haloes[id]
	if !ok {
		return
	}
	d.Invalidate(h.loc)
	h.loc = loc
	d.Invalidate(loc)
}

// RemoveHalo frees the id and repaints the halo's last footprint.
func (d *Display) RemoveHalo(id int) {
	h, ok := d.haloes[id]
	if !ok {
		return
	}
	delete(d.haloes, id)
	d.Invalidate(h.loc)
}

// HaloCount returns the number of active halo handles.
func (d *Display) HaloCount() int { return len(d.haloes) }

// haloesAt returns the haloes on loc in ascending id order. Haloes sharing a
// hex and a layer tie on the ordering key, so submission order decides their
// z-order; iterating the registry map directly would make that order vary
// between cycles.
func (d *Display) haloesAt(loc hexgrid.Loc) []*halo {
	var out []*halo
	for _, h := range d.haloes {
		if h.loc == loc {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

// drawHaloes queues the current frame of every halo on loc, oldest first.
func (d *Display) drawHaloes(loc hexgrid.Loc, pos image.Point) {
	for _, h := range d.haloesAt(loc) {
		if h.src == nil {
			continue
		}
		img, off := h.src.HaloFrame()
		if img == nil {
			continue
		}
		d.BufferAdd(h.layer, loc, pos.Add(off), image.Rectangle{}, img)
	}
}
