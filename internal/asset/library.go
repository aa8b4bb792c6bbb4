package asset

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"chosenoffset.com/deskpet/internal/anim"
	"chosenoffset.com/deskpet/internal/config"
	"chosenoffset.com/deskpet/internal/motion"
	"chosenoffset.com/deskpet/internal/render"
)

// FlippedSuffix marks a pre-mirrored GIF next to its canonical file.
const FlippedSuffix = "_FLIPPED"

// Ext is the only file extension the library opens. Matching is case
// sensitive.
const Ext = ".gif"

// Library resolves animation keys from GIF files under a root directory:
// root/<pet>/<name>.gif faces right, root/<pet>/<name>_FLIPPED.gif faces
// left. Without a flipped file the canonical clip is mirrored in memory.
// Resolved sequences are cached.
type Library struct {
	root   string
	scale  int
	anim   config.AnimationConfig
	loader render.ResourceLoader

	cache   map[anim.Key]anim.Sequence
	missing map[anim.Key]error // failed lookups, never retried
	clips   map[string]*Clip   // decoded canonical clips by path
}

// NewLibrary creates a library reading from root
func NewLibrary(root string, scale int, cfg config.AnimationConfig, loader render.ResourceLoader) *Library {
	return &Library{
		root:    root,
		scale:   scale,
		anim:    cfg,
		loader:  loader,
		cache:   make(map[anim.Key]anim.Sequence),
		missing: make(map[anim.Key]error),
		clips:   make(map[string]*Clip),
	}
}

// Resolve implements anim.Resolver. A key without a canonical GIF yields
// anim.ErrMissingAsset. Failures are remembered, so a key is read from disk
// at most once.
func (l *Library) Resolve(key anim.Key) (anim.Sequence, error) {
	if seq, ok := l.cache[key]; ok {
		return seq, nil
	}
	if err, ok := l.missing[key]; ok {
		return anim.Sequence{}, err
	}

	clip, err := l.loadClip(key)
	if err != nil {
		l.missing[key] = err
		return anim.Sequence{}, err
	}

	seq := anim.Sequence{
		Frames: make([]render.Image, 0, len(clip.Frames)),
		FPS:    l.fps(key.Name, clip),
	}
	for _, frame := range clip.Frames {
		seq.Frames = append(seq.Frames, l.loader.NewImageFromImage(frame))
	}

	l.cache[key] = seq
	return seq, nil
}

// Preload resolves every name in both directions so later lookups never
// touch the disk. Missing names are logged and skipped.
func (l *Library) Preload(pet string, names []string) int {
	loaded := 0
	for _, name := range names {
		for _, dir := range []motion.Direction{motion.Right, motion.Left} {
			key := anim.Key{Pet: pet, Name: name, Direction: dir}
			if _, err := l.Resolve(key); err != nil {
				slog.Warn("asset: preload failed", "key", key.String(), "err", err)
				continue
			}
			loaded++
		}
	}
	return loaded
}

// FrameSize returns the scaled size of a resolved sequence
func (l *Library) FrameSize(key anim.Key) (width, height int, err error) {
	seq, err := l.Resolve(key)
	if err != nil {
		return 0, 0, err
	}
	w, h := seq.Frames[0].Size()
	return w, h, nil
}

func (l *Library) loadClip(key anim.Key) (*Clip, error) {
	base := filepath.Join(l.root, key.Pet, key.Name)

	if key.Direction == motion.Left {
		clip, err := l.readClip(base + FlippedSuffix + Ext)
		if err == nil {
			return clip, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	clip, err := l.readClip(base + Ext)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", anim.ErrMissingAsset, base+Ext)
		}
		return nil, err
	}

	if key.Direction == motion.Left {
		return clip.Mirror(), nil
	}
	return clip, nil
}

func (l *Library) readClip(path string) (*Clip, error) {
	if clip, ok := l.clips[path]; ok {
		return clip, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	clip, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	clip = clip.Scale(l.scale)

	l.clips[path] = clip
	return clip, nil
}

// fps picks the configured rate for name, then the GIF's own delay, then
// the default.
func (l *Library) fps(name string, clip *Clip) float64 {
	if fps, ok := l.anim.FPS[name]; ok && fps > 0 {
		return fps
	}
	if fps := clip.NativeFPS(); fps > 0 {
		return fps
	}
	return l.anim.DefaultFPS
}
