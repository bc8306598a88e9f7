package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the full client configuration, loaded once at startup and again
// on explicit theme reload.
type Config struct {
	Display DisplayConfig `toml:"display"`
	Theme   ThemeConfig   `toml:"theme"`
	Logging LoggingConfig `toml:"logging"`
}

type DisplayConfig struct {
	Zoom        int           `toml:"zoom"`         // initial pixels per hex; snapped to a multiple of 4
	ScrollSpeed float64       `toml:"scroll_speed"` // animated scroll, pixels per draw cycle
	AutoScroll  bool          `toml:"auto_scroll"`  // allow the game to scroll the view on its own
	Turbo       bool          `toml:"turbo"`
	TurboSpeed  float64       `toml:"turbo_speed"` // scroll speed multiplier while turbo is on
	FrameDelay  time.Duration `toml:"frame_delay"` // minimum wall-clock time between draw cycles
	Grid        bool          `toml:"grid"`        // overlay hex outlines
}

// Rect is a pixel rectangle in screen coordinates.
type Rect struct {
	X int `toml:"x"`
	Y int `toml:"y"`
	W int `toml:"w"`
	H int `toml:"h"`
}

type ThemeConfig struct {
	ScreenWidth  int  `toml:"screen_width"`
	ScreenHeight int  `toml:"screen_height"`
	Sidebar      Rect `toml:"sidebar"` // right-hand panel; the map gets the rest
	Minimap      Rect `toml:"minimap"` // thumbnail position inside the sidebar
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

// Load reads a TOML config file over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Default returns the built-in configuration: a 1280x720 window with a
// 256px sidebar and a minimap in its top corner.
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			Zoom:        64,
			ScrollSpeed: 24,
			AutoScroll:  true,
			TurboSpeed:  2.0,
			FrameDelay:  20 * time.Millisecond,
			Grid:        false,
		},
		Theme: ThemeConfig{
			ScreenWidth:  1280,
			ScreenHeight: 720,
			Sidebar:      Rect{X: 1024, Y: 0, W: 256, H: 720},
			Minimap:      Rect{X: 1036, Y: 12, W: 232, H: 174},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
