package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"time"

	"chosenoffset.com/deskpet/internal/asset"
	"chosenoffset.com/deskpet/internal/config"
	"chosenoffset.com/deskpet/internal/game"
	"chosenoffset.com/deskpet/internal/petscanner"
	ebitenrender "chosenoffset.com/deskpet/internal/render/ebiten"
)

func main() {
	configPath := flag.String("config", "deskpet.yaml", "path to a YAML or JSON config file")
	petName := flag.String("pet", "", "pet to run (overrides the config)")
	assetPath := flag.String("assets", "", "asset root directory (overrides the config)")
	list := flag.Bool("list", false, "list available pets and exit")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(*configPath, *petName, *assetPath, *list); err != nil {
		slog.Error("deskpet failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath, petName, assetPath string, list bool) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if petName != "" {
		cfg.Pet.Name = petName
	}
	if assetPath != "" {
		cfg.Pet.AssetPath = assetPath
	}

	slog.Info("Scanning asset directory for available pets", "path", cfg.Pet.AssetPath)
	pets, err := petscanner.ScanAssetDirectory(cfg.Pet.AssetPath)
	if err != nil {
		return err
	}

	if list {
		for _, p := range pets {
			fmt.Printf("%s\t%d animations\n", p.Name, len(p.Animations))
		}
		return nil
	}

	entry, ok := petscanner.FindPet(pets, cfg.Pet.Name)
	if !ok {
		return fmt.Errorf("pet %q not found in %s (try -list)", cfg.Pet.Name, cfg.Pet.AssetPath)
	}
	for _, name := range game.AnimationNames(cfg.Animation) {
		if !entry.HasAnimation(name) {
			slog.Warn("Animation missing, pet will keep its previous one", "pet", entry.Name, "animation", name)
		}
	}

	loader := ebitenrender.NewResourceLoader()
	engine := ebitenrender.NewEngine()
	input := ebitenrender.NewInputManager()

	lib := asset.NewLibrary(cfg.Pet.AssetPath, cfg.Pet.Scale, cfg.Animation, loader)
	rng := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), uint64(os.Getpid())))

	pet, err := game.NewPet(cfg, lib, input, engine, rng)
	if err != nil {
		return err
	}

	if sw, _ := engine.ScreenSize(); sw > 0 && cfg.Motion.RightBound+float64(pet.Width) > float64(sw) {
		slog.Info("Right bound extends past the screen", "bound", cfg.Motion.RightBound, "screen", sw)
	}

	engine.SetTPS(cfg.Motion.TickRate)
	engine.SetWindowSize(pet.Width, pet.Height)
	engine.SetWindowTitle(entry.Name)

	slog.Info("Starting pet", "pet", entry.Name, "width", pet.Width, "height", pet.Height)
	return engine.RunGame(pet)
}
