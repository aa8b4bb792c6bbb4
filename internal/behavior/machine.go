// Package behavior drives what the pet is doing: it owns the state, the
// per-state timers and the transitions, and picks the animation that matches.
package behavior

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"

	"chosenoffset.com/deskpet/internal/anim"
	"chosenoffset.com/deskpet/internal/config"
	"chosenoffset.com/deskpet/internal/motion"
)

// State is the pet's base behavior
type State int

const (
	Idle State = iota
	Walk
	Sleep
	Lick
	Paw
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Walk:
		return "walk"
	case Sleep:
		return "sleep"
	case Lick:
		return "lick"
	case Paw:
		return "paw"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Override replaces the animation of the base state without leaving it.
type Override int

const (
	NoOverride Override = iota
	Scared              // only ever set while Idle
)

// walkAnimThreshold is the |vx| above which the walk cycle is shown.
const walkAnimThreshold = 0.5

// Machine is the behavior state machine for one pet.
type Machine struct {
	pet    string
	cfg    config.BehaviorConfig
	motion *motion.Model
	rng    *rand.Rand
	choose *Chooser

	now   float64 // simulated clock, seconds
	state State
	start float64

	idleDuration float64
	walkDuration float64
	speed        int
	lickVariant  int

	override       Override
	scareStart     float64
	scaredCooldown float64

	dragging bool
	extent   mgl64.Vec2
	idleAnim string // shown at rest and right after a walk starts
	anim     string // last selected animation name
}

// New builds a machine in Idle showing idleAnim. It fails when the weight
// table is unusable.
func New(pet, idleAnim string, cfg config.BehaviorConfig, m *motion.Model, rng *rand.Rand) (*Machine, error) {
	choose, err := NewChooser(cfg.Weights)
	if err != nil {
		return nil, err
	}

	bm := &Machine{
		pet:      pet,
		cfg:      cfg,
		motion:   m,
		rng:      rng,
		choose:   choose,
		speed:    sampleInt(rng, cfg.Speed),
		idleAnim: idleAnim,
		anim:     idleAnim,
	}
	bm.enterIdle(true)
	return bm, nil
}

// SetExtent sets the sprite size used to find the pet's center
func (m *Machine) SetExtent(width, height float64) {
	m.extent = mgl64.Vec2{width, height}
}

// Tick advances the clock by dt seconds, moves the pet, runs the current
// state and returns the animation that should be playing.
func (m *Machine) Tick(dt float64, cursor mgl64.Vec2) anim.Key {
	m.now += dt
	if m.dragging {
		return m.Key()
	}

	m.motion.Integrate()

	elapsed := m.now - m.start
	switch m.state {
	case Idle:
		m.updateIdle(elapsed, cursor)
	case Walk:
		m.updateWalk(elapsed)
	case Sleep, Lick, Paw:
		if elapsed > m.idleDuration-m.cfg.ActivityLead {
			m.enterIdle(true)
		}
	}

	m.selectAnimation()
	return m.Key()
}

func (m *Machine) updateIdle(elapsed float64, cursor mgl64.Vec2) {
	if elapsed > m.idleDuration {
		m.enterWalk()
		return
	}

	if m.override == Scared && m.now-m.scareStart >= m.scaredCooldown {
		m.override = NoOverride
	}

	center := m.motion.Center(m.extent)
	if center.Sub(cursor).Len() > m.cfg.MouseActivationDist {
		return
	}

	switch {
	case cursor.X() < center.X():
		m.motion.Face(motion.Left)
	case cursor.X() > center.X():
		m.motion.Face(motion.Right)
	}

	if m.override == NoOverride && m.now-m.scareStart >= m.scaredCooldown {
		m.override = Scared
		m.idleDuration += m.cfg.ScareBonus
		m.scaredCooldown = m.cfg.ScareCooldown
		m.scareStart = m.now
		slog.Debug("behavior: scared", "pet", m.pet, "idle", m.idleDuration)
	}
}

func (m *Machine) updateWalk(elapsed float64) {
	if elapsed > m.walkDuration {
		m.finishWalk()
		return
	}
	m.motion.SetVelocity(float64(m.speed), m.motion.Direction())
	m.motion.ReflectAtBounds()
}

// finishWalk rolls what comes after a walk. Only long rests can turn into an
// activity; the rest always become Idle.
func (m *Machine) finishWalk() {
	m.idleDuration = float64(sampleInt(m.rng, m.cfg.IdleDuration))
	if m.idleDuration < m.cfg.ActivityThreshold {
		m.enterIdle(false)
		return
	}

	next := m.choose.Choose(m.rng)
	switch next {
	case Sleep:
		m.idleDuration += m.cfg.SleepBonus
	case Paw:
		m.idleDuration = m.cfg.PawDuration
	case Lick:
		m.lickVariant = m.rng.IntN(m.cfg.LickVariants)
	default:
		m.enterIdle(false)
		return
	}
	m.enter(next)
}

func (m *Machine) enterIdle(resample bool) {
	if resample {
		m.idleDuration = float64(sampleInt(m.rng, m.cfg.IdleDuration))
	}
	m.override = NoOverride
	m.scaredCooldown = 0
	m.scareStart = m.now
	m.enter(Idle)
}

func (m *Machine) enterWalk() {
	m.walkDuration = float64(sampleInt(m.rng, m.cfg.WalkDuration))
	m.speed = sampleInt(m.rng, m.cfg.Speed)
	if m.rng.Float64() < m.cfg.TurnChance {
		m.motion.Turn()
	}
	m.override = NoOverride
	m.anim = m.idleAnim
	m.enter(Walk)
}

func (m *Machine) enter(s State) {
	if s != m.state {
		slog.Debug("behavior: transition", "pet", m.pet, "from", m.state, "to", s, "idle", m.idleDuration, "walk", m.walkDuration)
	}
	m.state = s
	m.start = m.now
}

func (m *Machine) selectAnimation() {
	switch m.state {
	case Walk:
		if math.Abs(m.motion.Velocity()) > walkAnimThreshold {
			m.anim = "walk0"
		}
	case Sleep:
		m.anim = "sleep0"
	case Lick:
		m.anim = fmt.Sprintf("lick%d", m.lickVariant)
	case Paw:
		m.anim = "paw0"
	case Idle:
		if m.override == Scared {
			m.anim = "scared0"
		} else {
			m.anim = m.idleAnim
		}
	}
}

// Key returns the animation currently selected
func (m *Machine) Key() anim.Key {
	return anim.Key{Pet: m.pet, Name: m.anim, Direction: m.motion.Direction()}
}

// BeginDrag suspends motion and transitions while the user holds the pet
func (m *Machine) BeginDrag() {
	m.dragging = true
	m.motion.Stop()
}

// DragTo moves the held pet horizontally; y stays on the ground.
func (m *Machine) DragTo(pos mgl64.Vec2) {
	if !m.dragging {
		return
	}
	m.motion.SetPosition(mgl64.Vec2{pos.X(), m.motion.Ground()})
}

// EndDrag drops the pet back onto the strip
func (m *Machine) EndDrag() {
	if !m.dragging {
		return
	}
	m.dragging = false
	m.motion.Land()
	m.motion.ClampToBounds()
	m.motion.Stop()
}

// State returns the base state
func (m *Machine) State() State { return m.state }

// Override returns the active animation override
func (m *Machine) Override() Override { return m.override }

// Now returns the machine clock in seconds
func (m *Machine) Now() float64 { return m.now }

// Elapsed returns the time spent in the current state
func (m *Machine) Elapsed() float64 { return m.now - m.start }

// IdleDuration returns the duration used by Idle and the activities
func (m *Machine) IdleDuration() float64 { return m.idleDuration }

// WalkDuration returns the duration of the current or last walk
func (m *Machine) WalkDuration() float64 { return m.walkDuration }

// Speed returns the walking speed in pixels per tick
func (m *Machine) Speed() int { return m.speed }

// LickVariant returns the lick animation index
func (m *Machine) LickVariant() int { return m.lickVariant }

// Dragging reports whether the user holds the pet
func (m *Machine) Dragging() bool { return m.dragging }

// Motion returns the motion model driven by the machine
func (m *Machine) Motion() *motion.Model { return m.motion }

func sampleInt(rng *rand.Rand, r config.IntRange) int {
	return r.Min + rng.IntN(r.Max-r.Min+1)
}
