// Package anim plays looping frame sequences. A Player is advanced from the
// logic tick and switches sequences on request without ever running two
// frame timers at once.
package anim

import (
	"errors"
	"fmt"
	"log/slog"

	"chosenoffset.com/deskpet/internal/motion"
	"chosenoffset.com/deskpet/internal/render"
)

// ErrMissingAsset is returned by a Resolver that has no frames for a key.
var ErrMissingAsset = errors.New("missing animation asset")

// Key identifies one image sequence
type Key struct {
	Pet       string
	Name      string // e.g. "walk0"
	Direction motion.Direction
}

func (k Key) String() string {
	return fmt.Sprintf("%s/%s/%s", k.Pet, k.Name, k.Direction)
}

// Sequence is a resolved animation
type Sequence struct {
	Frames []render.Image
	FPS    float64
}

// Resolver turns a key into frames. Lookups happen on the tick, so
// implementations are expected to answer from memory.
type Resolver interface {
	Resolve(key Key) (Sequence, error)
}

// Player holds the active sequence and its frame timer.
type Player struct {
	resolver Resolver

	key     Key
	seq     Sequence
	active  bool
	index   int
	elapsed float64 // seconds since the current frame was shown
}

// NewPlayer creates a player with nothing loaded
func NewPlayer(r Resolver) *Player {
	return &Player{resolver: r}
}

// Play switches to key. Asking for the sequence that is already playing does
// nothing, so the frame cycle is not restarted. If the resolver has no frames
// for key the request is dropped and the current sequence keeps playing.
// Play reports whether the sequence changed.
func (p *Player) Play(key Key) bool {
	if p.active && key == p.key {
		return false
	}

	seq, err := p.resolver.Resolve(key)
	switch {
	case err != nil:
	case len(seq.Frames) == 0:
		err = ErrMissingAsset
	case seq.FPS <= 0:
		err = fmt.Errorf("non-positive fps %g", seq.FPS)
	}
	if err != nil {
		slog.Debug("anim: ignoring request", "key", key.String(), "err", err)
		return false
	}

	p.key = key
	p.seq = seq
	p.active = true
	p.index = 0
	p.elapsed = 0
	return true
}

// Advance moves the frame timer forward by dt seconds, stepping one frame
// every 1/fps seconds and wrapping at the end of the sequence.
func (p *Player) Advance(dt float64) {
	if !p.active {
		return
	}

	period := 1 / p.seq.FPS
	p.elapsed += dt
	for p.elapsed >= period {
		p.elapsed -= period
		p.index = (p.index + 1) % len(p.seq.Frames)
	}
}

// Frame returns the frame to display, or nil before the first Play
func (p *Player) Frame() render.Image {
	if !p.active {
		return nil
	}
	return p.seq.Frames[p.index]
}

// Current returns the playing key and whether anything is playing
func (p *Player) Current() (Key, bool) {
	return p.key, p.active
}

// Index returns the current frame index
func (p *Player) Index() int { return p.index }

// FPS returns the playback rate of the current sequence
func (p *Player) FPS() float64 { return p.seq.FPS }
