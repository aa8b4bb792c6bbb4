package behavior

import (
	"math/rand/v2"

	"chosenoffset.com/deskpet/internal/config"
)

// Chooser draws the activity that follows a walk.
type Chooser struct {
	entries []config.BehaviorWeight
	total   float64
}

// NewChooser validates the weight table and keeps its order
func NewChooser(weights []config.BehaviorWeight) (*Chooser, error) {
	if err := config.ValidateWeights(weights); err != nil {
		return nil, err
	}

	c := &Chooser{entries: append([]config.BehaviorWeight(nil), weights...)}
	for _, w := range weights {
		c.total += w.Weight
	}
	return c, nil
}

// Total returns the sum of all weights
func (c *Chooser) Total() float64 { return c.total }

// Pick maps r in [0, Total) to a state by walking the entries in order and
// returning the first whose cumulative weight exceeds r. Anything past the
// end falls back to Idle.
func (c *Chooser) Pick(r float64) State {
	cumulative := 0.0
	for _, e := range c.entries {
		cumulative += e.Weight
		if cumulative > r {
			return stateForBehavior(e.Name)
		}
	}
	return Idle
}

// Choose draws r uniformly and picks
func (c *Chooser) Choose(rng *rand.Rand) State {
	return c.Pick(rng.Float64() * c.total)
}

func stateForBehavior(name string) State {
	switch name {
	case config.BehaviorSleep:
		return Sleep
	case config.BehaviorPaw:
		return Paw
	case config.BehaviorLick:
		return Lick
	default:
		return Idle
	}
}
