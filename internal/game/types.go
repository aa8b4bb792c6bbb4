package game

import (
	"github.com/go-gl/mathgl/mgl64"
)

// grab tracks a drag in progress. Offset is the cursor position relative to
// the window's top-left corner when the button went down.
type grab struct {
	Active bool
	Offset mgl64.Vec2
}
