// Package placeholders draws stand-in pet animations so a pet can run before
// real art exists. Every animation is a small blob whose color and motion
// hint at the state it stands for.
package placeholders

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"chosenoffset.com/deskpet/internal/asset"
)

// FrameSize is the edge length of placeholder frames before scaling
const FrameSize = 32

// FramesPerClip is the number of frames in each placeholder animation
const FramesPerClip = 6

// ColorPalette defines the blob colors per animation family
var ColorPalette = struct {
	Idle    color.RGBA
	Walk    color.RGBA
	Sleep   color.RGBA
	Lick    color.RGBA
	Paw     color.RGBA
	Scared  color.RGBA
	Jump    color.RGBA
	Unknown color.RGBA
	Outline color.RGBA
	Eye     color.RGBA
}{
	Idle:    color.RGBA{230, 170, 90, 255},  // Ginger
	Walk:    color.RGBA{240, 190, 110, 255}, // Lighter ginger
	Sleep:   color.RGBA{120, 130, 200, 255}, // Night blue
	Lick:    color.RGBA{240, 140, 160, 255}, // Tongue pink
	Paw:     color.RGBA{200, 150, 80, 255},  // Darker ginger
	Scared:  color.RGBA{255, 255, 120, 255}, // Startled yellow
	Jump:    color.RGBA{150, 220, 120, 255}, // Green
	Unknown: color.RGBA{180, 180, 180, 255}, // Gray
	Outline: color.RGBA{60, 40, 20, 255},    // Dark brown
	Eye:     color.RGBA{20, 20, 20, 255},    // Near black
}

// palette indexes: 0 transparent, 1 fill, 2 outline, 3 eye
func clipPalette(fill color.RGBA) color.Palette {
	return color.Palette{color.RGBA{}, fill, ColorPalette.Outline, ColorPalette.Eye}
}

// colorFor picks the blob color from the animation name's family
func colorFor(name string) color.RGBA {
	switch strings.TrimRight(name, "0123456789") {
	case "idle":
		return ColorPalette.Idle
	case "walk":
		return ColorPalette.Walk
	case "sleep":
		return ColorPalette.Sleep
	case "lick":
		return ColorPalette.Lick
	case "paw":
		return ColorPalette.Paw
	case "scared":
		return ColorPalette.Scared
	case "jump":
		return ColorPalette.Jump
	default:
		return ColorPalette.Unknown
	}
}

// CreateBlob draws one frame: an outlined ellipse resting on the bottom edge,
// squashed by squash pixels, with an eye on the right side (facing right).
func CreateBlob(pal color.Palette, squash, eyeOffset int, eyesOpen bool) *image.Paletted {
	img := image.NewPaletted(image.Rect(0, 0, FrameSize, FrameSize), pal)

	rx := FrameSize/2 - 2
	ry := FrameSize/3 - squash
	cx := FrameSize / 2
	cy := FrameSize - 2 - ry

	for y := 0; y < FrameSize; y++ {
		for x := 0; x < FrameSize; x++ {
			dx := float64(x - cx)
			dy := float64(y - cy)
			d := dx*dx/float64(rx*rx) + dy*dy/float64(ry*ry)

			if d <= 0.8 {
				img.SetColorIndex(x, y, 1)
			} else if d <= 1.0 {
				img.SetColorIndex(x, y, 2)
			}
		}
	}

	ex := cx + rx/2 + eyeOffset
	ey := cy - ry/3
	if eyesOpen {
		for dy := 0; dy < 2; dy++ {
			for dx := 0; dx < 2; dx++ {
				img.SetColorIndex(ex+dx, ey+dy, 3)
			}
		}
	} else {
		img.SetColorIndex(ex, ey+1, 3)
		img.SetColorIndex(ex+1, ey+1, 3)
	}

	return img
}

// CreateClip builds a looping placeholder GIF for an animation name
func CreateClip(name string) *gif.GIF {
	pal := clipPalette(colorFor(name))
	family := strings.TrimRight(name, "0123456789")

	g := &gif.GIF{
		Config: image.Config{Width: FrameSize, Height: FrameSize, ColorModel: pal},
	}
	for i := 0; i < FramesPerClip; i++ {
		squash, eyeOffset, eyesOpen := 0, 0, true

		switch family {
		case "walk":
			squash = i % 2
		case "sleep":
			squash = i / 3
			eyesOpen = false
		case "scared":
			squash = -2 + i%2
		case "paw", "lick":
			eyeOffset = i % 2
		default:
			eyesOpen = i != FramesPerClip-1 // blink on the last frame
		}

		g.Image = append(g.Image, CreateBlob(pal, squash, eyeOffset, eyesOpen))
		g.Delay = append(g.Delay, 12)
		g.Disposal = append(g.Disposal, gif.DisposalBackground)
	}
	return g
}

// SaveGIF writes a GIF to disk
func SaveGIF(g *gif.GIF, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return gif.EncodeAll(file, g)
}

// GenerateAndSave writes a placeholder for every name into root/pet. With
// flipped set, the mirrored _FLIPPED variants are written too. It returns
// the paths written.
func GenerateAndSave(root, pet string, names []string, flipped bool) ([]string, error) {
	dir := filepath.Join(root, pet)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", dir, err)
	}

	sorted := append([]string(nil), names...)
	sort.Strings(sorted)

	var written []string
	for _, name := range sorted {
		g := CreateClip(name)
		path := filepath.Join(dir, name+".gif")
		if err := SaveGIF(g, path); err != nil {
			return written, fmt.Errorf("failed to save %s: %w", path, err)
		}
		written = append(written, path)

		if !flipped {
			continue
		}
		asset.FlipGIF(g)
		path = filepath.Join(dir, name+asset.FlippedSuffix+".gif")
		if err := SaveGIF(g, path); err != nil {
			return written, fmt.Errorf("failed to save %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}
