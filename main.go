package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/bestiary/logger"
	"github.com/milk9111/bestiary/prefabs"
	"github.com/milk9111/bestiary/telemetry"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug overlay and logging")
	levelName := flag.String("level", "arena", "level name in levels/ (basename, .json optional)")
	seed := flag.Int64("seed", 1, "random seed for enemy behavior")
	serve := flag.String("serve", "", "stream telemetry on this address, e.g. :8080")
	prefabDir := flag.String("prefabs", prefabs.DiskRoot, "directory of prefab overrides watched for edits")
	flag.Parse()

	opts := logger.FromEnv()
	if *debug {
		opts.Level = "debug"
	}
	log := logger.New(opts)
	prefabs.DiskRoot = *prefabDir

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	game, err := NewGame(GameOptions{Level: *levelName, Seed: *seed, Debug: *debug, Logger: log})
	if err != nil {
		log.WithError(err).Fatal("failed to build arena")
	}
	defer game.Close()

	if *serve != "" {
		hub := telemetry.NewHub(log)
		game.arena.Handle(hub.Forward(game.arena.World))
		go func() {
			if err := telemetry.ListenAndServe(ctx, *serve, hub); err != nil {
				log.WithError(err).Error("telemetry server stopped")
			}
		}()
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(game.width*2, game.height*2)
	ebiten.SetWindowTitle("bestiary")

	if err := ebiten.RunGame(game); err != nil {
		log.WithError(err).Error("game exited")
	}
}
