package game

import (
	"chosenoffset.com/deskpet/internal/render"
)

// Draw renders the current frame. The window is transparent, so the screen
// is cleared first or the previous frame would show through.
func (p *Pet) Draw(screen render.Image) {
	screen.Clear()

	if frame := p.Player.Frame(); frame != nil {
		screen.DrawImage(frame)
	}
}
