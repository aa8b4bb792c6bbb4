package game

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sort"

	"chosenoffset.com/deskpet/internal/anim"
	"chosenoffset.com/deskpet/internal/asset"
	"chosenoffset.com/deskpet/internal/behavior"
	"chosenoffset.com/deskpet/internal/config"
	"chosenoffset.com/deskpet/internal/motion"
	"chosenoffset.com/deskpet/internal/render"
)

// AnimationNames returns every animation the configuration knows about,
// sorted, with the default first.
func AnimationNames(cfg config.AnimationConfig) []string {
	names := make([]string, 0, len(cfg.FPS)+1)
	for name := range cfg.FPS {
		if name != cfg.Default {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return append([]string{cfg.Default}, names...)
}

// NewPet wires a pet from configuration. Known animations are preloaded so
// ticks never touch the disk. The default animation must exist because it
// sets the window size.
func NewPet(cfg *config.Config, lib *asset.Library, input render.InputManager, window render.Window, rng *rand.Rand) (*Pet, error) {
	name := cfg.Pet.Name

	loaded := lib.Preload(name, AnimationNames(cfg.Animation))
	slog.Info("Preloaded animations", "pet", name, "sequences", loaded)

	w, h, err := lib.FrameSize(anim.Key{Pet: name, Name: cfg.Animation.Default, Direction: motion.Right})
	if err != nil {
		return nil, fmt.Errorf("pet %s has no default animation: %w", name, err)
	}

	model := motion.New(cfg.Motion)
	machine, err := behavior.New(name, cfg.Animation.Default, cfg.Behavior, model, rng)
	if err != nil {
		return nil, fmt.Errorf("failed to create behavior: %w", err)
	}
	machine.SetExtent(float64(w), float64(h))

	player := anim.NewPlayer(lib)
	player.Play(machine.Key())

	return &Pet{
		Machine: machine,
		Player:  player,
		Input:   input,
		Window:  window,
		Width:   w,
		Height:  h,
		TPS:     cfg.Motion.TickRate,
	}, nil
}
