package hexgrid

import (
	"image"
	"testing"
)

func testGeometry(zoom int) Geometry {
	return Geometry{
		Zoom:    zoom,
		ViewX:   0,
		ViewY:   0,
		MapRect: image.Rect(0, 0, 800, 600),
	}
}

func TestAdjustZoom_ClampAndSnap(t *testing.T) {
	cases := []struct{ in, want int }{
		{0, MinZoom},
		{47, MinZoom},
		{48, 48},
		{50, 48},
		{63, 60},
		{64, 64},
		{72, 72},
		{100, MaxZoom},
	}
	for _, c := range cases {
		if got := AdjustZoom(c.in); got != c.want {
			t.Fatalf("AdjustZoom(%d)=%d, want %d", c.in, got, c.want)
		}
	}
}

func TestGeometry_OddColumnShift(t *testing.T) {
	g := testGeometry(Zoom64)
	even := g.LocRect(Loc{X: 2, Y: 3})
	odd := g.LocRect(Loc{X: 3, Y: 3})
	if odd.Min.Y-even.Min.Y != g.HexSize()/2 {
		t.Fatalf("odd column should sit half a hex lower: even=%v odd=%v", even, odd)
	}
	if odd.Min.X-even.Min.X != g.HexWidth() {
		t.Fatalf("adjacent columns should be one hex width apart: even=%v odd=%v", even, odd)
	}
}

func TestGeometry_RoundTripAllZooms(t *testing.T) {
	for _, zoom := range []int{Zoom48, Zoom56, Zoom64, Zoom72} {
		g := testGeometry(zoom)
		g.ViewX = 137
		g.ViewY = 59
		for x := 0; x < 12; x++ {
			for y := 0; y < 9; y++ {
				loc := Loc{X: x, Y: y}
				c := g.LocCenter(loc)
				if !c.In(g.MapRect) {
					continue
				}
				if got := g.PixelToHex(c); got != loc {
					t.Fatalf("zoom %d: PixelToHex(center of %v)=%v", zoom, loc, got)
				}
			}
		}
	}
}

func TestGeometry_PixelToHexOutsideMapArea(t *testing.T) {
	g := testGeometry(Zoom64)
	outside := []image.Point{
		{X: -1, Y: 10},
		{X: 10, Y: -1},
		{X: 800, Y: 10},
		{X: 10, Y: 600},
	}
	for _, p := range outside {
		if got := g.PixelToHex(p); got != NullLoc {
			t.Fatalf("PixelToHex(%v)=%v, want NullLoc", p, got)
		}
	}
}

func TestGeometry_PixelToHexScrolled(t *testing.T) {
	g := testGeometry(Zoom48)
	g.ViewX = 96 // two columns scrolled off
	g.ViewY = 48 // one row scrolled off
	got := g.PixelToHex(image.Point{X: 1, Y: 1})
	if got != (Loc{X: 2, Y: 1}) {
		t.Fatalf("scrolled PixelToHex=(%v), want (2,1)", got)
	}
}

func TestGeometry_HexesUnderRectSuperset(t *testing.T) {
	// 800x600 window at zoom 64 over a 50x50 board: every board hex whose
	// bounding box intersects the window must be in the range, and every hex
	// in the range must intersect the window.
	g := testGeometry(Zoom64)
	screen := image.Rect(0, 0, 800, 600)
	r := g.HexesUnderRect(screen).ClampTo(50, 50)
	if r.Empty() {
		t.Fatal("visible range should not be empty")
	}

	inRange := make(LocSet)
	r.Each(func(loc Loc) {
		if !g.LocRect(loc).Overlaps(screen) {
			t.Fatalf("hex %v in range but does not intersect the screen", loc)
		}
		inRange.Add(loc)
	})

	for x := 0; x < 50; x++ {
		for y := 0; y < 50; y++ {
			loc := Loc{X: x, Y: y}
			if g.LocRect(loc).Overlaps(screen) && !inRange.Has(loc) {
				t.Fatalf("hex %v intersects the screen but is missing from the range", loc)
			}
		}
	}
}

func TestGeometry_HexesUnderRectParityBounds(t *testing.T) {
	g := testGeometry(Zoom64)
	// A thin strip across the top of the screen: even columns start at row 0,
	// odd columns (shifted down 32px) must reach row -1 to cover their upper
	// neighbour's spill.
	r := g.HexesUnderRect(image.Rect(0, 0, 800, 16))
	if r.Top[0] != 0 {
		t.Fatalf("even top=%d, want 0", r.Top[0])
	}
	if r.Top[1] != -1 {
		t.Fatalf("odd top=%d, want -1", r.Top[1])
	}
	if r.Bottom[0] != 0 || r.Bottom[1] != -1 {
		t.Fatalf("bottoms=%d,%d, want 0,-1", r.Bottom[0], r.Bottom[1])
	}
}

func TestGeometry_HexesUnderRectDisjoint(t *testing.T) {
	g := testGeometry(Zoom64)
	r := g.HexesUnderRect(image.Rect(900, 700, 1000, 800))
	if !r.Empty() {
		t.Fatalf("range for a rect outside the map area should be empty, got %+v", r)
	}
	if r.Count() != 0 {
		t.Fatalf("empty range Count=%d, want 0", r.Count())
	}
}

func TestRectOfHexes_EachOrder(t *testing.T) {
	r := RectOfHexes{Left: 0, Right: 1}
	r.Top = [2]int{0, 0}
	r.Bottom = [2]int{1, 1}
	var got []Loc
	r.Each(func(loc Loc) { got = append(got, loc) })
	want := []Loc{{0, 0}, {0, 1}, {1, 0}, {1, 1}}
	if len(got) != len(want) {
		t.Fatalf("Each visited %d hexes, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("visit %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestRectOfHexes_Contains(t *testing.T) {
	r := RectOfHexes{Left: 2, Right: 5}
	r.Top = [2]int{1, 0}
	r.Bottom = [2]int{4, 3}
	if !r.Contains(Loc{X: 2, Y: 1}) || !r.Contains(Loc{X: 3, Y: 0}) {
		t.Fatal("range should contain its corner hexes")
	}
	if r.Contains(Loc{X: 2, Y: 0}) {
		t.Fatal("even column row 0 is outside the even bounds")
	}
	if r.Contains(Loc{X: 1, Y: 2}) || r.Contains(Loc{X: 6, Y: 2}) {
		t.Fatal("columns outside [Left,Right] must not be contained")
	}
}

func TestLoc_NullAndParity(t *testing.T) {
	if NullLoc.Valid() {
		t.Fatal("NullLoc must not be valid")
	}
	if !(Loc{X: 0, Y: 0}).Valid() {
		t.Fatal("(0,0) must be valid")
	}
	if (Loc{X: 2, Y: 0}).OddCol() {
		t.Fatal("column 2 is even")
	}
	if !(Loc{X: -3, Y: 0}).OddCol() {
		t.Fatal("column -3 is odd")
	}
}

func TestFloorDiv(t *testing.T) {
	cases := []struct{ a, b, want int }{
		{7, 4, 1},
		{0, 4, 0},
		{-1, 4, -1},
		{-4, 4, -1},
		{-5, 4, -2},
	}
	for _, c := range cases {
		if got := floorDiv(c.a, c.b); got != c.want {
			t.Fatalf("floorDiv(%d,%d)=%d, want %d", c.a, c.b, got, c.want)
		}
	}
}
