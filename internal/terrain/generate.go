package terrain

import (
	"math"
	"math/rand"

	"github.com/veyrune/hexfield/internal/hexgrid"
)

// generateConfig holds the tuneable thresholds for the demo map generator.
type generateConfig struct {
	// Noise layer scales (smaller = broader features).
	ElevationScale float64
	MoistureScale  float64

	// Elevation thresholds (noise value 0-1).
	WaterThreshold    float64
	ShallowsThreshold float64
	HillsThreshold    float64
	MountainThreshold float64

	// Moisture thresholds on middle elevations.
	SwampThreshold  float64
	ForestThreshold float64
	SandThreshold   float64 // below this moisture → sand

	Villages int // villages per 1000 hexes
}

var defaultGenerateConfig = generateConfig{
	ElevationScale: 0.09,
	MoistureScale:  0.07,

	WaterThreshold:    0.30,
	ShallowsThreshold: 0.35,
	HillsThreshold:    0.68,
	MountainThreshold: 0.80,

	SwampThreshold:  0.72,
	ForestThreshold: 0.55,
	SandThreshold:   0.22,

	Villages: 8,
}

// Generate builds a cols x rows demo map from layered value noise. The same
// seed always yields the same map.
func Generate(cols, rows int, seed int64) *Map {
	m := NewMap(cols, rows)
	rng := rand.New(rand.NewSource(seed))
	cfg := defaultGenerateConfig

	elevSeed := rng.Int63()
	moistSeed := rng.Int63()

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			elev := valueNoise(float64(x)*cfg.ElevationScale, float64(y)*cfg.ElevationScale, elevSeed)
			moist := valueNoise(float64(x)*cfg.MoistureScale, float64(y)*cfg.MoistureScale, moistSeed)
			m.Set(hexgrid.Loc{X: x, Y: y}, classify(cfg, elev, moist))
		}
	}

	// Scatter villages on hospitable ground.
	want := cfg.Villages * cols * rows / 1000
	for i := 0; i < want*8 && want > 0; i++ {
		loc := hexgrid.Loc{X: rng.Intn(cols), Y: rng.Intn(rows)}
		switch m.At(loc) {
		case Grass, Forest, Hills:
			m.Set(loc, Village)
			want--
		}
	}
	return m
}

func classify(cfg generateConfig, elev, moist float64) Type {
	switch {
	case elev < cfg.WaterThreshold:
		return Water
	case elev < cfg.ShallowsThreshold:
		return Shallows
	case elev > cfg.MountainThreshold:
		return Mountains
	case elev > cfg.HillsThreshold:
		return Hills
	case moist > cfg.SwampThreshold:
		return Swamp
	case moist > cfg.ForestThreshold:
		return Forest
	case moist < cfg.SandThreshold:
		return Sand
	default:
		return Grass
	}
}

// valueNoise is smoothed lattice noise in [0,1].
func valueNoise(x, y float64, seed int64) float64 {
	x0 := math.Floor(x)
	y0 := math.Floor(y)
	fx := x - x0
	fy := y - y0

	// Smoothstep the lattice fractions.
	sx := fx * fx * (3 - 2*fx)
	sy := fy * fy * (3 - 2*fy)

	v00 := latticeValue(int64(x0), int64(y0), seed)
	v10 := latticeValue(int64(x0)+1, int64(y0), seed)
	v01 := latticeValue(int64(x0), int64(y0)+1, seed)
	v11 := latticeValue(int64(x0)+1, int64(y0)+1, seed)

	top := v00 + (v10-v00)*sx
	bottom := v01 + (v11-v01)*sx
	return top + (bottom-top)*sy
}

// latticeValue hashes a lattice point into [0,1].
func latticeValue(x, y, seed int64) float64 {
	h := uint64(x)*0x9e3779b97f4a7c15 ^ uint64(y)*0xc2b2ae3d27d4eb4f ^ uint64(seed)
	h ^= h >> 33
	h *= 0xff51afd7ed558ccd
	h ^= h >> 33
	return float64(h%(1<<20)) / float64(1<<20)
}
