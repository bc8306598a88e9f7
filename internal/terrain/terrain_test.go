package terrain

import (
	"testing"

	"github.com/veyrune/hexfield/internal/display"
	"github.com/veyrune/hexfield/internal/hexgrid"
)

func TestNewMap_DefaultGrass(t *testing.T) {
	m := NewMap(10, 8)
	if c, r := m.Size(); c != 10 || r != 8 {
		t.Fatalf("expected 10x8, got %dx%d", c, r)
	}
	for y := 0; y < m.Rows; y++ {
		for x := 0; x < m.Cols; x++ {
			if got := m.At(hexgrid.Loc{X: x, Y: y}); got != Grass {
				t.Fatalf("hex (%d,%d) type=%d, want Grass", x, y, got)
			}
		}
	}
}

func TestMap_SetAndAt(t *testing.T) {
	m := NewMap(5, 5)
	loc := hexgrid.Loc{X: 2, Y: 3}
	m.Set(loc, Water)
	if m.At(loc) != Water {
		t.Fatalf("set/at round trip failed, got %d", m.At(loc))
	}
	// Off-map access is safe and reads as grass.
	m.Set(hexgrid.Loc{X: -1, Y: 0}, Water)
	m.Set(hexgrid.Loc{X: 5, Y: 0}, Water)
	if m.At(hexgrid.Loc{X: -1, Y: 0}) != Grass || m.At(hexgrid.Loc{X: 5, Y: 0}) != Grass {
		t.Fatal("off-map hexes should read as grass")
	}
}

func TestMap_MinimapColorsDistinct(t *testing.T) {
	m := NewMap(3, 1)
	m.Set(hexgrid.Loc{X: 0, Y: 0}, Grass)
	m.Set(hexgrid.Loc{X: 1, Y: 0}, Water)
	m.Set(hexgrid.Loc{X: 2, Y: 0}, Mountains)
	a := m.MinimapColor(hexgrid.Loc{X: 0, Y: 0})
	b := m.MinimapColor(hexgrid.Loc{X: 1, Y: 0})
	c := m.MinimapColor(hexgrid.Loc{X: 2, Y: 0})
	if a == b || b == c || a == c {
		t.Fatalf("terrain colours should differ: %v %v %v", a, b, c)
	}
}

func TestShade_NightDarkens(t *testing.T) {
	day := baseColor(Grass)
	night := shade(day, display.TimeNight)
	if night.R >= day.R || night.G >= day.G || night.B >= day.B {
		t.Fatalf("night shade should darken: day=%v night=%v", day, night)
	}
	if night.A != day.A {
		t.Fatal("shading must not touch alpha")
	}
	if shade(day, display.TimeDay) != day {
		t.Fatal("daylight should be unshaded")
	}
}

func TestHasCanopy(t *testing.T) {
	if !hasCanopy(Forest) || !hasCanopy(Mountains) {
		t.Fatal("forest and mountains draw over units")
	}
	if hasCanopy(Grass) || hasCanopy(Water) {
		t.Fatal("flat terrain has no canopy")
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	a := Generate(40, 30, 7)
	b := Generate(40, 30, 7)
	for y := 0; y < 30; y++ {
		for x := 0; x < 40; x++ {
			loc := hexgrid.Loc{X: x, Y: y}
			if a.At(loc) != b.At(loc) {
				t.Fatalf("same seed diverged at (%d,%d)", x, y)
			}
		}
	}
}

func TestGenerate_SeedsDiffer(t *testing.T) {
	a := Generate(40, 30, 1)
	b := Generate(40, 30, 2)
	same := 0
	for y := 0; y < 30; y++ {
		for x := 0; x < 40; x++ {
			loc := hexgrid.Loc{X: x, Y: y}
			if a.At(loc) == b.At(loc) {
				same++
			}
		}
	}
	if same == 40*30 {
		t.Fatal("different seeds produced identical maps")
	}
}

func TestGenerate_TerrainVariety(t *testing.T) {
	m := Generate(60, 60, 42)
	counts := make(map[Type]int)
	for y := 0; y < m.Rows; y++ {
		for x := 0; x < m.Cols; x++ {
			counts[m.At(hexgrid.Loc{X: x, Y: y})]++
		}
	}
	if len(counts) < 3 {
		t.Fatalf("expected at least 3 terrain types, got %d: %v", len(counts), counts)
	}
}

func TestValueNoise_Range(t *testing.T) {
	for i := 0; i < 500; i++ {
		v := valueNoise(float64(i)*0.37, float64(i)*0.61, 99)
		if v < 0 || v > 1 {
			t.Fatalf("noise value %f out of [0,1]", v)
		}
	}
}
