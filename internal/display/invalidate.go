package display

import "github.com/veyrune/hexfield/internal/hexgrid"

// tracker is the dirty set of hexes awaiting redraw. Once the "everything"
// flag is up, individual entries stop mattering until the next takeAndClear.
type tracker struct {
	locs hexgrid.LocSet
	all  bool
}

func newTracker() *tracker {
	return &tracker{locs: make(hexgrid.LocSet)}
}

// invalidate marks one hex dirty and reports whether that added new work.
func (t *tracker) invalidate(loc hexgrid.Loc) bool {
	if t.all || !loc.Valid() {
		return false
	}
	return t.locs.Add(loc)
}

// invalidateSet marks every hex in locs dirty and reports whether any of
// them was new.
func (t *tracker) invalidateSet(locs []hexgrid.Loc) bool {
	added := false
	for _, loc := range locs {
		if t.invalidate(loc) {
			added = true
		}
	}
	return added
}

// invalidateAll raises the everything-dirty flag.
func (t *tracker) invalidateAll() {
	t.all = true
}

// propagate promotes the whole of locs to dirty if the dirty set already
// touches any of them. Overlays spanning several hexes repaint atomically
// this way instead of tearing. Reports whether new work was added.
func (t *tracker) propagate(locs []hexgrid.Loc) bool {
	if t.all {
		return false
	}
	touched := false
	for _, loc := range locs {
		if t.locs.Has(loc) {
			touched = true
			break
		}
	}
	if !touched {
		return false
	}
	return t.invalidateSet(locs)
}

// takeAndClear hands back the current dirty set and resets the tracker.
// Called exactly once per draw cycle.
func (t *tracker) takeAndClear() (locs hexgrid.LocSet, all bool) {
	locs, all = t.locs, t.all
	t.locs = make(hexgrid.LocSet)
	t.all = false
	return locs, all
}

// pending reports whether any redraw work is queued.
func (t *tracker) pending() bool {
	return t.all || len(t.locs) > 0
}
