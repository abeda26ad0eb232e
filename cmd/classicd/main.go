// Command classicd runs the server: it loads configuration, opens or
// generates the level, and serves connections until interrupted.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/blockvale/classic/config"
	"github.com/blockvale/classic/console"
	"github.com/blockvale/classic/hub"
	"github.com/blockvale/classic/world"
)

func main() {
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	configPath := "classicd.toml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	levelPath := filepath.Join(".", cfg.LevelName+".level")
	store := world.GzipJSONStore{}
	w, err := loadOrGenerateWorld(store, levelPath, cfg)
	if err != nil {
		log.Error("failed to load or generate world", "err", err)
		os.Exit(1)
	}
	if x, y, z, yaw, pitch, ok := cfg.Spawn.SpawnPointOr(); ok {
		w.DefaultSpawn = &world.SpawnPoint{X: x, Y: y, Z: z, Yaw: yaw, Pitch: pitch}
	}

	playerStorePath := filepath.Join(".", cfg.LevelName+".players")
	ps, err := world.OpenPlayerStore(playerStorePath)
	if err != nil {
		log.Error("failed to open player store", "err", err)
		os.Exit(1)
	}
	defer ps.Close()

	h := hub.New(cfg, w, store, levelPath, ps, log)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	go func() {
		c := console.New(h, log)
		c.Run(ctx)
	}()

	log.Info("listening", "name", cfg.Name, "level", cfg.LevelName)
	if err := h.Run(ctx, "0.0.0.0:25565"); err != nil {
		log.Error("server exited with error", "err", err)
		os.Exit(1)
	}
}

// loadOrGenerateWorld opens the level at path, or generates a fresh one per
// cfg.Generation if no level file exists yet.
func loadOrGenerateWorld(store world.Store, path string, cfg config.Config) (*world.World, error) {
	w, err := store.Load(path)
	if err == nil {
		return w, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	w, err = world.New(cfg.LevelSizeX, cfg.LevelSizeY, cfg.LevelSizeZ, nil)
	if err != nil {
		return nil, err
	}
	switch cfg.Generation {
	case "flat", "":
		world.GenerateFlat(w)
	}
	return w, nil
}
