// Package motion implements the pet's one-dimensional movement: a horizontal
// velocity that decays with friction, and reflection at the strip's edges.
package motion

import (
	"github.com/go-gl/mathgl/mgl64"

	"chosenoffset.com/deskpet/internal/config"
)

// Direction is the facing of the pet. Its value is the sign applied to speed.
type Direction int

const (
	Left  Direction = -1
	Right Direction = 1
)

// Opposite returns the other facing
func (d Direction) Opposite() Direction {
	if d == Left {
		return Right
	}
	return Left
}

func (d Direction) String() string {
	if d == Left {
		return "left"
	}
	return "right"
}

// Model owns position, velocity, direction and the bounds of the strip.
// All values are per tick; see config.MotionConfig.TickRate.
type Model struct {
	pos       mgl64.Vec2
	vx        float64
	direction Direction

	friction    float64
	left, right float64
	ground      float64
}

// New spawns a model at the configured position facing right. A spawn point
// outside the bounds is clamped.
func New(cfg config.MotionConfig) *Model {
	m := &Model{
		pos:       mgl64.Vec2{cfg.SpawnX, cfg.SpawnY},
		direction: Right,
		friction:  cfg.Friction,
		left:      cfg.LeftBound,
		right:     cfg.RightBound,
		ground:    cfg.SpawnY,
	}
	m.ClampToBounds()
	return m
}

// Integrate advances one tick: x += vx, then vx decays by friction.
func (m *Model) Integrate() {
	m.pos[0] += m.vx
	m.vx *= m.friction
}

// SetVelocity sets vx to speed in the given direction
func (m *Model) SetVelocity(speed float64, d Direction) {
	m.vx = speed * float64(d)
}

// ReflectAtBounds turns the pet around when it runs into an edge while
// moving toward it. Only the direction flips; the speed magnitude is kept
// and vx follows the new direction.
func (m *Model) ReflectAtBounds() {
	switch {
	case m.pos[0] >= m.right && m.vx > 0:
		m.direction = Left
		m.pos[0] = m.right
		m.vx = -m.vx
	case m.pos[0] <= m.left && m.vx < 0:
		m.direction = Right
		m.pos[0] = m.left
		m.vx = -m.vx
	}
}

// ClampToBounds pulls x back into [left, right]
func (m *Model) ClampToBounds() {
	m.pos[0] = mgl64.Clamp(m.pos[0], m.left, m.right)
}

// Land puts the pet back on the ground line
func (m *Model) Land() {
	m.pos[1] = m.ground
}

// Stop zeroes the velocity
func (m *Model) Stop() {
	m.vx = 0
}

// Turn reverses the facing
func (m *Model) Turn() {
	m.direction = m.direction.Opposite()
}

// Face sets the facing
func (m *Model) Face(d Direction) {
	m.direction = d
}

// SetPosition moves the pet without any bounds check (used while dragging)
func (m *Model) SetPosition(p mgl64.Vec2) {
	m.pos = p
}

// Position returns the top-left corner of the pet
func (m *Model) Position() mgl64.Vec2 { return m.pos }

// Center returns the middle of a pet of the given size
func (m *Model) Center(extent mgl64.Vec2) mgl64.Vec2 {
	return m.pos.Add(extent.Mul(0.5))
}

// Velocity returns vx
func (m *Model) Velocity() float64 { return m.vx }

// Direction returns the current facing
func (m *Model) Direction() Direction { return m.direction }

// Bounds returns the left and right edges
func (m *Model) Bounds() (left, right float64) { return m.left, m.right }

// Ground returns the y the pet rests on
func (m *Model) Ground() float64 { return m.ground }
