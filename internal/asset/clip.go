// Package asset loads pet animations from GIF files and serves them to the
// animation player.
package asset

import (
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"io"

	xdraw "golang.org/x/image/draw"
)

// Clip is a decoded animation: full frames of equal size plus their delays
// in hundredths of a second.
type Clip struct {
	Frames []*image.RGBA
	Delays []int
}

// Decode reads every frame of a GIF and composites it onto the logical
// screen the way a GIF viewer would, honoring each frame's disposal.
func Decode(r io.Reader) (*Clip, error) {
	g, err := gif.DecodeAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode gif: %w", err)
	}
	if len(g.Image) == 0 {
		return nil, fmt.Errorf("gif has no frames")
	}

	bounds := image.Rect(0, 0, g.Config.Width, g.Config.Height)
	if bounds.Empty() {
		// Some encoders leave the logical screen unset.
		for _, frame := range g.Image {
			bounds = bounds.Union(frame.Bounds())
		}
	}

	canvas := image.NewRGBA(bounds)
	clip := &Clip{
		Frames: make([]*image.RGBA, 0, len(g.Image)),
		Delays: make([]int, 0, len(g.Image)),
	}

	for i, frame := range g.Image {
		disposal := byte(0)
		if i < len(g.Disposal) {
			disposal = g.Disposal[i]
		}

		var previous *image.RGBA
		if disposal == gif.DisposalPrevious {
			previous = cloneRGBA(canvas)
		}

		draw.Draw(canvas, frame.Bounds(), frame, frame.Bounds().Min, draw.Over)
		clip.Frames = append(clip.Frames, cloneRGBA(canvas))

		delay := 0
		if i < len(g.Delay) {
			delay = g.Delay[i]
		}
		clip.Delays = append(clip.Delays, delay)

		switch disposal {
		case gif.DisposalBackground:
			draw.Draw(canvas, frame.Bounds(), image.Transparent, image.Point{}, draw.Src)
		case gif.DisposalPrevious:
			canvas = previous
		}
	}

	return clip, nil
}

// Size returns the frame size
func (c *Clip) Size() (width, height int) {
	if len(c.Frames) == 0 {
		return 0, 0
	}
	b := c.Frames[0].Bounds()
	return b.Dx(), b.Dy()
}

// NativeFPS derives a playback rate from the first frame's delay. It
// returns 0 when the GIF carries no usable delay.
func (c *Clip) NativeFPS() float64 {
	if len(c.Delays) == 0 || c.Delays[0] <= 0 {
		return 0
	}
	return 100 / float64(c.Delays[0])
}

// Scale returns a copy enlarged by an integer factor with nearest-neighbour
// sampling, keeping pixel art crisp.
func (c *Clip) Scale(factor int) *Clip {
	if factor <= 1 {
		return c
	}

	out := &Clip{Delays: append([]int(nil), c.Delays...)}
	for _, frame := range c.Frames {
		b := frame.Bounds()
		dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
		xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), frame, b, xdraw.Src, nil)
		out.Frames = append(out.Frames, dst)
	}
	return out
}

// Mirror returns a horizontally flipped copy
func (c *Clip) Mirror() *Clip {
	out := &Clip{Delays: append([]int(nil), c.Delays...)}
	for _, frame := range c.Frames {
		b := frame.Bounds()
		dst := image.NewRGBA(b)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				dst.SetRGBA(b.Max.X-1-(x-b.Min.X), y, frame.RGBAAt(x, y))
			}
		}
		out.Frames = append(out.Frames, dst)
	}
	return out
}

// FlipGIF mirrors every frame of a GIF in place, keeping palettes, delays,
// disposal and loop count. Frame rectangles are mirrored across the logical
// screen so partial frames stay aligned.
func FlipGIF(g *gif.GIF) {
	width := g.Config.Width
	for i, frame := range g.Image {
		b := frame.Bounds()
		if width == 0 {
			width = b.Max.X
		}
		mirrored := image.Rect(width-b.Max.X, b.Min.Y, width-b.Min.X, b.Max.Y)
		dst := image.NewPaletted(mirrored, frame.Palette)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				dst.SetColorIndex(width-1-x, y, frame.ColorIndexAt(x, y))
			}
		}
		g.Image[i] = dst
	}
}

func cloneRGBA(src *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(src.Bounds())
	copy(dst.Pix, src.Pix)
	return dst
}
