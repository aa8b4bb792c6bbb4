// Package render abstracts the windowing and drawing backend so the pet logic
// never touches the graphics engine directly.
package render

import (
	"image"
)

// Image represents a renderable image surface that can be drawn to or drawn from.
// It abstracts the underlying image implementation.
type Image interface {
	// Properties
	Bounds() image.Rectangle
	Size() (width, height int)

	// Clear clears the image to transparent.
	Clear()

	// DrawImage draws src with its top-left corner at the origin.
	DrawImage(src Image)

	// Resource management
	Dispose()
}

// InputManager handles pointer input. Cursor positions are in global screen
// coordinates, not window coordinates.
type InputManager interface {
	GetCursorPosition() (x, y int)
	IsMouseButtonPressed(button MouseButton) bool
	IsMouseButtonJustPressed(button MouseButton) bool
	IsMouseButtonJustReleased(button MouseButton) bool
}

// MouseButton represents a mouse button.
type MouseButton int

// Mouse button constants
const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
)

// ResourceLoader turns decoded pictures into drawable images.
type ResourceLoader interface {
	NewImageFromImage(img image.Image) Image
}

// Game represents the game interface that the engine will call.
type Game interface {
	// Update updates the logic. It is called every tick (the engine's TPS).
	Update() error

	// Draw draws the screen. It is called every frame.
	Draw(screen Image)

	// Layout accepts the outside size (e.g., window size) and returns the logical screen size.
	Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int)
}

// Window is the part of the engine the pet moves around at runtime.
type Window interface {
	SetWindowPosition(x, y int)
	SetWindowSize(width, height int)
}

// Engine represents the engine that manages the loop and the window.
type Engine interface {
	Window

	// SetWindowTitle sets the window title.
	SetWindowTitle(title string)

	// SetTPS sets the number of Update calls per second.
	SetTPS(tps int)

	// ScreenSize returns the size of the monitor the window lives on.
	ScreenSize() (width, height int)

	// RunGame runs the loop with the provided game in a transparent,
	// undecorated, always-on-top window. It blocks until the game ends.
	RunGame(game Game) error
}
