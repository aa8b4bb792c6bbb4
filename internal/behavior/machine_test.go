package behavior

import (
	"math/rand/v2"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"chosenoffset.com/deskpet/internal/config"
	"chosenoffset.com/deskpet/internal/motion"
)

const dt = 1.0 / 60.0

// farAway is a cursor position no test pet comes near.
var farAway = mgl64.Vec2{-1e6, -1e6}

func newTestMachine(t *testing.T, mutate func(*config.Config)) *Machine {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Motion.SpawnX = 800
	if mutate != nil {
		mutate(cfg)
	}
	m, err := New("cat", cfg.Animation.Default, cfg.Behavior, motion.New(cfg.Motion), rand.New(rand.NewPCG(1, 2)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	m.SetExtent(96, 96)
	return m
}

func run(m *Machine, seconds float64, cursor mgl64.Vec2) {
	for elapsed := 0.0; elapsed < seconds; elapsed += dt {
		m.Tick(dt, cursor)
	}
}

func TestNewStartsIdle(t *testing.T) {
	m := newTestMachine(t, nil)
	if m.State() != Idle {
		t.Fatalf("Expected Idle, got %s", m.State())
	}
	if d := m.IdleDuration(); d < 5 || d > 30 {
		t.Errorf("Expected idle duration in [5,30], got %g", d)
	}
	if key := m.Key(); key.Name != "idle0" || key.Pet != "cat" {
		t.Errorf("Expected cat/idle0, got %s", key)
	}
}

func TestNewRejectsInvalidWeights(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Behavior.Weights = []config.BehaviorWeight{{Name: config.BehaviorIdle, Weight: 0}}
	_, err := New("cat", cfg.Animation.Default, cfg.Behavior, motion.New(cfg.Motion), rand.New(rand.NewPCG(1, 2)))
	if err == nil {
		t.Fatal("Expected an error for a zero weight table")
	}
}

func TestIdleToWalk(t *testing.T) {
	m := newTestMachine(t, func(c *config.Config) {
		c.Behavior.IdleDuration = config.IntRange{Min: 5, Max: 5}
		c.Behavior.WalkDuration = config.IntRange{Min: 4, Max: 4}
		c.Behavior.Speed = config.IntRange{Min: 3, Max: 3}
		c.Behavior.TurnChance = 0
	})

	run(m, 4.9, farAway)
	if m.State() != Idle {
		t.Fatalf("Expected still Idle at 4.9s, got %s", m.State())
	}

	run(m, 0.2, farAway)
	if m.State() != Walk {
		t.Fatalf("Expected Walk after 5s, got %s", m.State())
	}
	if m.WalkDuration() != 4 || m.Speed() != 3 {
		t.Errorf("Expected walk 4s at speed 3, got %gs at %d", m.WalkDuration(), m.Speed())
	}
	if m.Motion().Direction() != motion.Right {
		t.Errorf("Expected no turn with zero turn chance")
	}

	key := m.Tick(dt, farAway)
	if key.Name != "walk0" {
		t.Errorf("Expected walk0 while walking, got %s", key.Name)
	}
	if m.Motion().Velocity() != 3 {
		t.Errorf("Expected vx=3, got %g", m.Motion().Velocity())
	}
}

func TestWalkStartTurnChance(t *testing.T) {
	m := newTestMachine(t, func(c *config.Config) { c.Behavior.TurnChance = 1 })
	m.enterWalk()
	if m.Motion().Direction() != motion.Left {
		t.Fatalf("Expected a certain turn to face left")
	}
	m.enterWalk()
	if m.Motion().Direction() != motion.Right {
		t.Fatalf("Expected a second turn to face right again")
	}
}

func TestWalkToIdleCycle(t *testing.T) {
	for seed := uint64(0); seed < 50; seed++ {
		cfg := config.DefaultConfig()
		cfg.Motion.SpawnX = 400
		m, err := New("cat", cfg.Animation.Default, cfg.Behavior, motion.New(cfg.Motion), rand.New(rand.NewPCG(seed, seed+1)))
		if err != nil {
			t.Fatal(err)
		}
		m.SetExtent(96, 96)

		m.enterWalk()
		m.walkDuration = 5
		m.speed = 2
		m.Motion().Face(motion.Right)

		run(m, 5.1, farAway)

		switch m.State() {
		case Idle, Sleep, Paw, Lick:
		default:
			t.Fatalf("seed %d: expected a post-walk state, got %s", seed, m.State())
		}
		if m.State() == Paw {
			if m.IdleDuration() != 7 {
				t.Errorf("seed %d: expected paw to run for 7s, got %g", seed, m.IdleDuration())
			}
			continue
		}
		if m.IdleDuration() < 10 && m.State() != Idle {
			t.Errorf("seed %d: idle duration %g < 10 must give Idle, got %s", seed, m.IdleDuration(), m.State())
		}
	}
}

func TestWalkMovesAndReflects(t *testing.T) {
	m := newTestMachine(t, func(c *config.Config) { c.Motion.SpawnX = 1740 })
	m.enterWalk()
	m.walkDuration = 30
	m.speed = 4
	m.Motion().Face(motion.Right)

	run(m, 1, farAway)

	if m.Motion().Direction() != motion.Left {
		t.Errorf("Expected the right bound to turn the pet left")
	}
	if x := m.Motion().Position().X(); x > 1750 {
		t.Errorf("Expected x within bounds, got %g", x)
	}
	if m.Motion().Velocity() >= 0 {
		t.Errorf("Expected leftward velocity, got %g", m.Motion().Velocity())
	}
	if m.Speed() != 4 {
		t.Errorf("Expected speed magnitude kept at 4, got %d", m.Speed())
	}
}

func TestActivities(t *testing.T) {
	tests := []struct {
		behavior string
		state    State
		duration float64 // expected idle duration after the walk
		anims    []string
	}{
		{config.BehaviorSleep, Sleep, 20 + 60, []string{"sleep0"}},
		{config.BehaviorPaw, Paw, 7, []string{"paw0"}},
		{config.BehaviorLick, Lick, 20, []string{"lick0", "lick1"}},
	}

	for _, tt := range tests {
		t.Run(tt.behavior, func(t *testing.T) {
			m := newTestMachine(t, func(c *config.Config) {
				c.Behavior.IdleDuration = config.IntRange{Min: 20, Max: 20}
				c.Behavior.Weights = []config.BehaviorWeight{{Name: tt.behavior, Weight: 1}}
			})
			m.enterWalk()
			m.walkDuration = 1

			run(m, 1.1, farAway)

			if m.State() != tt.state {
				t.Fatalf("Expected %s, got %s", tt.state, m.State())
			}
			if m.IdleDuration() != tt.duration {
				t.Errorf("Expected duration %g, got %g", tt.duration, m.IdleDuration())
			}

			name := m.Key().Name
			found := false
			for _, a := range tt.anims {
				if a == name {
					found = true
				}
			}
			if !found {
				t.Errorf("Expected one of %v, got %s", tt.anims, name)
			}

			// Activities end ActivityLead seconds early.
			run(m, tt.duration-4-0.2, farAway)
			if m.State() != tt.state {
				t.Fatalf("Expected %s to still run, got %s", tt.state, m.State())
			}
			run(m, 0.4, farAway)
			if m.State() != Idle {
				t.Fatalf("Expected Idle after the activity, got %s", m.State())
			}
			if m.Key().Name != "idle0" {
				t.Errorf("Expected idle0, got %s", m.Key().Name)
			}
		})
	}
}

func TestShortRestIsAlwaysIdle(t *testing.T) {
	m := newTestMachine(t, func(c *config.Config) {
		c.Behavior.IdleDuration = config.IntRange{Min: 9, Max: 9}
		c.Behavior.Weights = []config.BehaviorWeight{{Name: config.BehaviorSleep, Weight: 1}}
	})
	m.enterWalk()
	m.walkDuration = 1

	run(m, 1.1, farAway)

	if m.State() != Idle {
		t.Fatalf("Expected Idle for a rest shorter than the threshold, got %s", m.State())
	}
	if m.IdleDuration() != 9 {
		t.Errorf("Expected the sampled duration to be kept, got %g", m.IdleDuration())
	}
}

func TestScareTrigger(t *testing.T) {
	m := newTestMachine(t, nil)
	m.idleDuration = 20
	center := m.Motion().Center(mgl64.Vec2{96, 96})

	key := m.Tick(dt, center.Add(mgl64.Vec2{10, 0}))

	if key.Name != "scared0" {
		t.Fatalf("Expected scared0, got %s", key.Name)
	}
	if m.IdleDuration() != 22 {
		t.Errorf("Expected idle duration 22, got %g", m.IdleDuration())
	}
	if m.State() != Idle || m.Override() != Scared {
		t.Errorf("Expected Idle with Scared override, got %s/%d", m.State(), m.Override())
	}
}

func TestScareCooldown(t *testing.T) {
	m := newTestMachine(t, nil)
	m.idleDuration = 25
	cursor := m.Motion().Center(mgl64.Vec2{96, 96})

	m.Tick(dt, cursor)
	run(m, 2.5, cursor)
	if m.IdleDuration() != 27 {
		t.Fatalf("Expected no second scare inside the cooldown, got idle %g", m.IdleDuration())
	}
	if m.Key().Name != "scared0" {
		t.Errorf("Expected scared0 during the cooldown, got %s", m.Key().Name)
	}

	run(m, 0.6, cursor)
	if m.IdleDuration() != 29 {
		t.Errorf("Expected a second scare after the cooldown, got idle %g", m.IdleDuration())
	}
}

func TestScareEndsWhenCursorLeaves(t *testing.T) {
	m := newTestMachine(t, nil)
	m.idleDuration = 25
	cursor := m.Motion().Center(mgl64.Vec2{96, 96})

	m.Tick(dt, cursor)
	run(m, 3.1, farAway)

	if m.Override() != NoOverride {
		t.Fatalf("Expected the override to expire")
	}
	if m.Key().Name != "idle0" {
		t.Errorf("Expected idle0 after the cooldown, got %s", m.Key().Name)
	}
	if m.IdleDuration() != 27 {
		t.Errorf("Expected exactly one scare, got idle %g", m.IdleDuration())
	}
}

func TestIdleFacesCursor(t *testing.T) {
	m := newTestMachine(t, func(c *config.Config) { c.Behavior.MouseActivationDist = 200 })
	m.idleDuration = 30
	center := m.Motion().Center(mgl64.Vec2{96, 96})

	m.Tick(dt, center.Sub(mgl64.Vec2{100, 0}))
	if m.Motion().Direction() != motion.Left {
		t.Errorf("Expected to face a cursor on the left")
	}
	if m.Key().Direction != motion.Left {
		t.Errorf("Expected the key to carry the new direction")
	}

	m.Tick(dt, center.Add(mgl64.Vec2{100, 0}))
	if m.Motion().Direction() != motion.Right {
		t.Errorf("Expected to face a cursor on the right")
	}
}

func TestNoScareOutsideIdle(t *testing.T) {
	m := newTestMachine(t, nil)
	m.enterWalk()
	m.walkDuration = 10
	before := m.IdleDuration()
	cursor := m.Motion().Center(mgl64.Vec2{96, 96})

	m.Tick(dt, cursor)

	if m.Override() != NoOverride || m.IdleDuration() != before {
		t.Errorf("Expected no scare while walking")
	}
}

func TestMachineTotality(t *testing.T) {
	known := map[string]bool{
		"idle0": true, "walk0": true, "sleep0": true, "paw0": true,
		"lick0": true, "lick1": true, "scared0": true,
	}
	states := []State{Idle, Walk, Sleep, Lick, Paw}
	elapsed := []float64{0, 0.5, 3, 6.99, 7, 7.01, 29, 30, 31, 120}
	durations := []float64{0, 2, 4, 7, 10, 30, 90}

	for _, s := range states {
		for _, e := range elapsed {
			for _, d := range durations {
				for _, cursor := range []mgl64.Vec2{farAway, {848, 920}} {
					m := newTestMachine(t, nil)
					m.state = s
					m.now = 1000
					m.start = m.now - e
					m.idleDuration = d
					m.walkDuration = d
					m.Motion().SetVelocity(3, motion.Right)

					key := m.Tick(dt, cursor)

					switch m.State() {
					case Idle, Walk, Sleep, Lick, Paw:
					default:
						t.Fatalf("%s e=%g d=%g: unknown state %s", s, e, d, m.State())
					}
					if !known[key.Name] {
						t.Fatalf("%s e=%g d=%g: unknown animation %q", s, e, d, key.Name)
					}
					if m.Override() == Scared && m.State() != Idle {
						t.Fatalf("%s e=%g d=%g: scared outside Idle", s, e, d)
					}
				}
			}
		}
	}
}

func TestDrag(t *testing.T) {
	m := newTestMachine(t, func(c *config.Config) {
		c.Behavior.Weights = []config.BehaviorWeight{{Name: config.BehaviorIdle, Weight: 1}}
	})
	m.enterWalk()
	m.walkDuration = 2

	m.BeginDrag()
	m.DragTo(mgl64.Vec2{3000, 100})
	run(m, 5, farAway)

	if m.State() != Walk {
		t.Errorf("Expected transitions to hold while dragged, got %s", m.State())
	}
	if p := m.Motion().Position(); p.X() != 3000 || p.Y() != 872 {
		t.Errorf("Expected pet at x=3000 on the ground, got (%g, %g)", p.X(), p.Y())
	}

	m.EndDrag()
	if m.Dragging() {
		t.Fatal("Expected drag to end")
	}
	p := m.Motion().Position()
	if p.X() != 1750 {
		t.Errorf("Expected x clamped to the right bound, got %g", p.X())
	}
	if p.Y() != 872 {
		t.Errorf("Expected y back on the ground, got %g", p.Y())
	}
	if m.Motion().Velocity() != 0 {
		t.Errorf("Expected velocity cleared, got %g", m.Motion().Velocity())
	}

	m.Tick(dt, farAway)
	if m.State() != Idle {
		t.Errorf("Expected the overdue walk to end on the next tick, got %s", m.State())
	}
}

func TestDragToIgnoredWhenNotDragging(t *testing.T) {
	m := newTestMachine(t, nil)
	before := m.Motion().Position()
	m.DragTo(mgl64.Vec2{1, 1})
	m.EndDrag()
	if m.Motion().Position() != before {
		t.Errorf("Expected no move without a drag")
	}
}

func TestWalkStartDropsScaredAnimation(t *testing.T) {
	m := newTestMachine(t, func(c *config.Config) {
		c.Behavior.IdleDuration = config.IntRange{Min: 1, Max: 1}
		c.Behavior.TurnChance = 0
	})

	// Hover until the idle period runs out while still scared
	center := m.Motion().Center(m.extent)
	for m.State() == Idle {
		m.Tick(dt, center)
		if m.State() == Idle && m.Override() != Scared {
			t.Fatal("Expected the cursor to keep the pet scared")
		}
	}

	if m.State() != Walk {
		t.Fatalf("Expected Walk, got %s", m.State())
	}
	if key := m.Key(); key.Name != "idle0" {
		t.Errorf("Expected idle0 on the first walk tick, got %s", key.Name)
	}
}

func TestIdleAnimationFollowsDefault(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Motion.SpawnX = 800
	m, err := New("cat", "idle1", cfg.Behavior, motion.New(cfg.Motion), rand.New(rand.NewPCG(1, 2)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if key := m.Key(); key.Name != "idle1" {
		t.Errorf("Expected idle1 before the first tick, got %s", key.Name)
	}
	if key := m.Tick(dt, farAway); key.Name != "idle1" {
		t.Errorf("Expected idle1 while idle, got %s", key.Name)
	}
}
