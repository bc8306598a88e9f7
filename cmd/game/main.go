package main

import (
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/veyrune/hexfield/internal/client"
	"github.com/veyrune/hexfield/internal/config"
	"github.com/veyrune/hexfield/internal/display"
	"github.com/veyrune/hexfield/internal/terrain"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file")
	cols := flag.Int("cols", 64, "map width in hexes")
	rows := flag.Int("rows", 48, "map height in hexes")
	seed := flag.Int64("seed", 1, "map generation seed")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatal(err)
		}
		cfg = loaded
	}

	logger, err := buildLogger(cfg.Logging)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	m := terrain.Generate(*cols, *rows, *seed)
	d := display.New(cfg, m, nil, nil, logger)
	logger.Info("map generated",
		zap.Int("cols", *cols), zap.Int("rows", *rows), zap.Int64("seed", *seed))

	ebiten.SetWindowTitle("Hexfield")
	ebiten.SetWindowSize(cfg.Theme.ScreenWidth, cfg.Theme.ScreenHeight)
	if err := ebiten.RunGame(client.New(cfg, d, logger)); err != nil {
		logger.Fatal("game loop failed", zap.Error(err))
	}
}

// buildLogger assembles a zap logger from the logging config section.
func buildLogger(lc config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(lc.Level)
	if err != nil {
		return nil, err
	}
	var enc zapcore.Encoder
	if lc.Format == "json" {
		enc = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	} else {
		enc = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	}
	core := zapcore.NewCore(enc, zapcore.Lock(os.Stderr), level)
	return zap.New(core), nil
}
