// Package config holds the tuning values for a desktop pet. The values are
// loaded once at startup and never change while the pet is running.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidWeightTable is returned when the post-walk behavior weights
// cannot be used for a weighted choice.
var ErrInvalidWeightTable = errors.New("invalid behavior weight table")

// Behavior names accepted in the weight table.
const (
	BehaviorIdle  = "idle"
	BehaviorSleep = "sleep"
	BehaviorPaw   = "paw"
	BehaviorLick  = "lick"
)

// Config holds all tuning for one pet
type Config struct {
	Pet       PetConfig       `json:"pet" yaml:"pet"`
	Motion    MotionConfig    `json:"motion" yaml:"motion"`
	Behavior  BehaviorConfig  `json:"behavior" yaml:"behavior"`
	Animation AnimationConfig `json:"animation" yaml:"animation"`
}

// PetConfig selects which pet is shown and where its art lives
type PetConfig struct {
	Name      string `json:"name" yaml:"name"`             // Directory name under AssetPath (e.g., "cat")
	AssetPath string `json:"asset_path" yaml:"asset_path"` // Root of the per-pet GIF directories
	Scale     int    `json:"scale" yaml:"scale"`           // Integer upscale applied to every frame
}

// MotionConfig defines the horizontal strip the pet lives on
type MotionConfig struct {
	SpawnX     float64 `json:"spawn_x" yaml:"spawn_x"`
	SpawnY     float64 `json:"spawn_y" yaml:"spawn_y"`         // Ground height, y is held here unless dragged
	Friction   float64 `json:"friction" yaml:"friction"`       // Per-tick velocity multiplier, in (0,1)
	LeftBound  float64 `json:"left_bound" yaml:"left_bound"`   // Leftmost x while walking
	RightBound float64 `json:"right_bound" yaml:"right_bound"` // Rightmost x while walking
	TickRate   int     `json:"tick_rate" yaml:"tick_rate"`     // Logic ticks per second; friction and speeds are tuned per tick
}

// IntRange is an inclusive integer range, sampled uniformly
type IntRange struct {
	Min int `json:"min" yaml:"min"`
	Max int `json:"max" yaml:"max"`
}

// BehaviorWeight is one entry of the post-walk weighted choice
type BehaviorWeight struct {
	Name   string  `json:"name" yaml:"name"`
	Weight float64 `json:"weight" yaml:"weight"`
}

// BehaviorConfig defines timings and probabilities of the state machine.
// Durations are in seconds.
type BehaviorConfig struct {
	IdleDuration IntRange `json:"idle_duration" yaml:"idle_duration"`
	WalkDuration IntRange `json:"walk_duration" yaml:"walk_duration"`
	Speed        IntRange `json:"speed" yaml:"speed"` // Pixels per tick while walking

	TurnChance          float64 `json:"turn_chance" yaml:"turn_chance"`                     // Chance to reverse when a walk starts
	MouseActivationDist float64 `json:"mouse_activation_dist" yaml:"mouse_activation_dist"` // Cursor distance that scares an idle pet
	ScareBonus          float64 `json:"scare_bonus" yaml:"scare_bonus"`                     // Seconds added to idle per scare
	ScareCooldown       float64 `json:"scare_cooldown" yaml:"scare_cooldown"`               // Seconds the scared animation holds

	ActivityThreshold float64 `json:"activity_threshold" yaml:"activity_threshold"` // Idle duration needed to roll an activity
	ActivityLead      float64 `json:"activity_lead" yaml:"activity_lead"`           // Activities end this long before their duration
	SleepBonus        float64 `json:"sleep_bonus" yaml:"sleep_bonus"`
	PawDuration       float64 `json:"paw_duration" yaml:"paw_duration"`
	LickVariants      int     `json:"lick_variants" yaml:"lick_variants"`

	// Weights is iterated in order; the idle remainder is an explicit entry.
	Weights []BehaviorWeight `json:"weights" yaml:"weights"`
}

// AnimationConfig controls playback rates
type AnimationConfig struct {
	Default    string             `json:"default" yaml:"default"`
	DefaultFPS float64            `json:"default_fps" yaml:"default_fps"` // Used when neither the table nor the GIF gives a rate
	FPS        map[string]float64 `json:"fps" yaml:"fps"`
}

// DefaultConfig returns the stock cat tuning
func DefaultConfig() *Config {
	return &Config{
		Pet: PetConfig{
			Name:      "cat",
			AssetPath: "assets",
			Scale:     3,
		},
		Motion: MotionConfig{
			SpawnX:     0,
			SpawnY:     872,
			Friction:   0.95,
			LeftBound:  50,
			RightBound: 1750,
			TickRate:   60,
		},
		Behavior: BehaviorConfig{
			IdleDuration:        IntRange{Min: 5, Max: 30},
			WalkDuration:        IntRange{Min: 3, Max: 7},
			Speed:               IntRange{Min: 1, Max: 4},
			TurnChance:          0.10,
			MouseActivationDist: 50,
			ScareBonus:          2,
			ScareCooldown:       3,
			ActivityThreshold:   10,
			ActivityLead:        4,
			SleepBonus:          60,
			PawDuration:         7,
			LickVariants:        2,
			Weights: []BehaviorWeight{
				{Name: BehaviorSleep, Weight: 0.1},
				{Name: BehaviorPaw, Weight: 0.1},
				{Name: BehaviorLick, Weight: 0.25},
				{Name: BehaviorIdle, Weight: 0.55},
			},
		},
		Animation: AnimationConfig{
			Default:    "idle0",
			DefaultFPS: 12,
			FPS: map[string]float64{
				"idle0":   7,
				"idle1":   7,
				"jump0":   8,
				"walk0":   8,
				"walk1":   8,
				"lick0":   7,
				"lick1":   6,
				"paw0":    6,
				"scared0": 10,
				"sleep0":  3,
			},
		},
	}
}

// LoadConfig loads a config file over the defaults. The format follows the
// extension: .yaml/.yml is YAML, anything else is JSON. A missing file
// yields the defaults.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()
	if path == "" {
		return config, config.Validate()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, config.Validate()
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, config)
	default:
		err = json.Unmarshal(data, config)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return config, nil
}

// Validate rejects tunings the pet cannot run with
func (c *Config) Validate() error {
	if c.Pet.Name == "" {
		return fmt.Errorf("pet name is required")
	}
	if c.Pet.Scale < 1 {
		return fmt.Errorf("pet scale must be at least 1, got %d", c.Pet.Scale)
	}

	m := c.Motion
	if m.Friction <= 0 || m.Friction >= 1 {
		return fmt.Errorf("friction must be in (0,1), got %g", m.Friction)
	}
	if m.LeftBound >= m.RightBound {
		return fmt.Errorf("left bound %g must be below right bound %g", m.LeftBound, m.RightBound)
	}
	if m.TickRate <= 0 {
		return fmt.Errorf("tick rate must be positive, got %d", m.TickRate)
	}

	if err := c.Behavior.Validate(); err != nil {
		return err
	}

	if c.Animation.Default == "" {
		return fmt.Errorf("default animation is required")
	}
	if c.Animation.DefaultFPS <= 0 {
		return fmt.Errorf("default fps must be positive, got %g", c.Animation.DefaultFPS)
	}
	for name, fps := range c.Animation.FPS {
		if fps <= 0 {
			return fmt.Errorf("fps for %s must be positive, got %g", name, fps)
		}
	}
	return nil
}

// Validate checks the ranges and the weight table
func (b BehaviorConfig) Validate() error {
	ranges := []struct {
		name string
		r    IntRange
	}{
		{"idle_duration", b.IdleDuration},
		{"walk_duration", b.WalkDuration},
		{"speed", b.Speed},
	}
	for _, nr := range ranges {
		if nr.r.Min < 0 || nr.r.Min > nr.r.Max {
			return fmt.Errorf("%s range [%d,%d] is invalid", nr.name, nr.r.Min, nr.r.Max)
		}
	}
	if b.TurnChance < 0 || b.TurnChance > 1 {
		return fmt.Errorf("turn chance must be in [0,1], got %g", b.TurnChance)
	}
	durations := []struct {
		name string
		v    float64
	}{
		{"mouse_activation_dist", b.MouseActivationDist},
		{"scare_bonus", b.ScareBonus},
		{"scare_cooldown", b.ScareCooldown},
		{"activity_threshold", b.ActivityThreshold},
		{"activity_lead", b.ActivityLead},
		{"sleep_bonus", b.SleepBonus},
		{"paw_duration", b.PawDuration},
	}
	for _, d := range durations {
		if d.v < 0 {
			return fmt.Errorf("%s must not be negative, got %g", d.name, d.v)
		}
	}
	if b.LickVariants < 1 {
		return fmt.Errorf("lick variants must be at least 1, got %d", b.LickVariants)
	}
	return ValidateWeights(b.Weights)
}

// ValidateWeights reports ErrInvalidWeightTable for unknown names, negative
// weights or a zero total.
func ValidateWeights(weights []BehaviorWeight) error {
	total := 0.0
	for _, w := range weights {
		switch w.Name {
		case BehaviorIdle, BehaviorSleep, BehaviorPaw, BehaviorLick:
		default:
			return fmt.Errorf("%w: unknown behavior %q", ErrInvalidWeightTable, w.Name)
		}
		if w.Weight < 0 {
			return fmt.Errorf("%w: negative weight %g for %s", ErrInvalidWeightTable, w.Weight, w.Name)
		}
		total += w.Weight
	}
	if total <= 0 {
		return fmt.Errorf("%w: weights sum to zero", ErrInvalidWeightTable)
	}
	return nil
}
