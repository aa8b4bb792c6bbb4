// Package game runs a pet inside the engine loop: it reads the cursor,
// ticks the behavior machine, plays the chosen animation and moves the
// window to wherever the pet is.
package game

import (
	"image"

	"github.com/go-gl/mathgl/mgl64"

	"chosenoffset.com/deskpet/internal/anim"
	"chosenoffset.com/deskpet/internal/behavior"
	"chosenoffset.com/deskpet/internal/render"
)

// Pet implements render.Game for a single pet.
type Pet struct {
	Machine *behavior.Machine
	Player  *anim.Player
	Input   render.InputManager
	Window  render.Window

	Width  int
	Height int
	TPS    int

	FrameCount int

	grab grab

	// last window position requested, to skip redundant moves
	placed    image.Point
	hasPlaced bool
}

// Update handles one logic tick
func (p *Pet) Update() error {
	dt := 1.0 / float64(p.TPS)

	cx, cy := p.Input.GetCursorPosition()
	cursor := mgl64.Vec2{float64(cx), float64(cy)}

	p.updateDrag(cursor)

	key := p.Machine.Tick(dt, cursor)
	p.Player.Play(key)
	p.Player.Advance(dt)

	p.placeWindow()
	p.FrameCount++
	return nil
}

func (p *Pet) updateDrag(cursor mgl64.Vec2) {
	pos := p.Machine.Motion().Position()

	switch {
	case p.Input.IsMouseButtonJustPressed(render.MouseButtonLeft):
		if !p.contains(cursor) {
			return
		}
		p.grab = grab{Active: true, Offset: cursor.Sub(pos)}
		p.Machine.BeginDrag()
	case p.grab.Active && p.Input.IsMouseButtonJustReleased(render.MouseButtonLeft):
		p.grab.Active = false
		p.Machine.EndDrag()
	case p.grab.Active:
		p.Machine.DragTo(cursor.Sub(p.grab.Offset))
	}
}

// contains reports whether a global cursor position is over the sprite
func (p *Pet) contains(cursor mgl64.Vec2) bool {
	rel := cursor.Sub(p.Machine.Motion().Position())
	return rel.X() >= 0 && rel.Y() >= 0 &&
		rel.X() < float64(p.Width) && rel.Y() < float64(p.Height)
}

func (p *Pet) placeWindow() {
	pos := p.Machine.Motion().Position()
	pt := image.Pt(int(pos.X()), int(pos.Y()))
	if p.hasPlaced && pt == p.placed {
		return
	}
	p.Window.SetWindowPosition(pt.X, pt.Y)
	p.placed = pt
	p.hasPlaced = true
}

// Dragging reports whether the user is holding the pet
func (p *Pet) Dragging() bool { return p.grab.Active }

// Layout returns the pet's logical screen size.
func (p *Pet) Layout(outsideWidth, outsideHeight int) (int, int) {
	return p.Width, p.Height
}
