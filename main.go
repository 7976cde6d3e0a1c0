package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/milk9111/brawler/config"
	"github.com/milk9111/brawler/observability"
	"github.com/milk9111/brawler/prefabs"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	debug := flag.Bool("debug", false, "enable debug mode: debug logging, overlay, and prefab hot reload")
	prefabDir := flag.String("prefabs", "", "directory whose prefab files override the embedded ones")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *debug {
		cfg.Logging.Level = "debug"
		cfg.Prefabs.Watch = true
	}
	if *prefabDir != "" {
		cfg.Prefabs.Dir = *prefabDir
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	prefabs.SetDir(cfg.Prefabs.Dir)
	game, err := NewGame(cfg, logger, *debug)
	if err != nil {
		logger.Fatal("start", zap.Error(err))
	}
	defer game.Close()

	ebiten.SetWindowSize(int(float64(cfg.Window.Width)*cfg.Window.Scale), int(float64(cfg.Window.Height)*cfg.Window.Scale))
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.Match.TickRate)

	if err := ebiten.RunGame(game); err != nil {
		logger.Error("game loop", zap.Error(err))
	}
}
