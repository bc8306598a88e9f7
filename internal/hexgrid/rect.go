package hexgrid

// RectOfHexes is a rectangular range of hex columns with independent row
// bounds for even and odd columns, since odd columns sit half a hex lower
// on screen. For any column x in [Left, Right], the valid rows are
// [Top[x&1], Bottom[x&1]].
type RectOfHexes struct {
	Left   int
	Right  int
	Top    [2]int // row bounds for even and odd columns, respectively
	Bottom [2]int
}

func emptyRect() RectOfHexes {
	return RectOfHexes{Left: 0, Right: -1}
}

// Empty reports whether the range holds no hexes at all.
func (r RectOfHexes) Empty() bool {
	return r.Left > r.Right
}

// Contains reports whether loc falls inside the range.
func (r RectOfHexes) Contains(loc Loc) bool {
	if loc.X < r.Left || loc.X > r.Right {
		return false
	}
	p := loc.X & 1
	return loc.Y >= r.Top[p] && loc.Y <= r.Bottom[p]
}

// ClampTo intersects the range with a cols x rows board anchored at (0,0).
func (r RectOfHexes) ClampTo(cols, rows int) RectOfHexes {
	if r.Left < 0 {
		r.Left = 0
	}
	if r.Right > cols-1 {
		r.Right = cols - 1
	}
	for p := 0; p < 2; p++ {
		if r.Top[p] < 0 {
			r.Top[p] = 0
		}
		if r.Bottom[p] > rows-1 {
			r.Bottom[p] = rows - 1
		}
	}
	return r
}

// Each visits every hex in the range, walking rows top to bottom within a
// column before moving to the next column.
func (r RectOfHexes) Each(fn func(Loc)) {
	for x := r.Left; x <= r.Right; x++ {
		p := x & 1
		for y := r.Top[p]; y <= r.Bottom[p]; y++ {
			fn(Loc{X: x, Y: y})
		}
	}
}

// Count returns the number of hexes in the range.
func (r RectOfHexes) Count() int {
	if r.Empty() {
		return 0
	}
	n := 0
	for x := r.Left; x <= r.Right; x++ {
		p := x & 1
		if r.Bottom[p] >= r.Top[p] {
			n += r.Bottom[p] - r.Top[p] + 1
		}
	}
	return n
}
