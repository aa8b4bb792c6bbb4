package petscanner

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"chosenoffset.com/deskpet/internal/asset"
)

// PetEntry represents a discoverable pet in the assets directory
type PetEntry struct {
	Name       string   // Display name (directory name)
	Dir        string   // Directory path relative to the assets root
	Animations []string // Animation names, without extension or flip suffix
}

// HasAnimation reports whether the pet ships an animation with this name
func (p PetEntry) HasAnimation(name string) bool {
	for _, a := range p.Animations {
		if a == name {
			return true
		}
	}
	return false
}

// ScanAssetDirectory scans the assets directory for available pets.
// Directories without at least one GIF are skipped.
func ScanAssetDirectory(root string) ([]PetEntry, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read asset directory: %w", err)
	}

	var pets []PetEntry

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		dirName := entry.Name()
		if strings.HasPrefix(dirName, ".") {
			continue
		}

		animations, err := scanAnimations(filepath.Join(root, dirName))
		if err != nil {
			// Skip directories that can't be read
			continue
		}

		if len(animations) > 0 {
			pets = append(pets, PetEntry{
				Name:       dirName,
				Dir:        dirName,
				Animations: animations,
			})
		}
	}

	return pets, nil
}

// FindPet returns the entry named name
func FindPet(pets []PetEntry, name string) (PetEntry, bool) {
	for _, p := range pets {
		if p.Name == name {
			return p, true
		}
	}
	return PetEntry{}, false
}

// scanAnimations lists the canonical (right-facing) GIFs in a pet directory
func scanAnimations(petPath string) ([]string, error) {
	entries, err := os.ReadDir(petPath)
	if err != nil {
		return nil, err
	}

	var animations []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		// Same rule as the asset library, which only opens lowercase .gif
		name := entry.Name()
		if filepath.Ext(name) != asset.Ext {
			continue
		}

		base := strings.TrimSuffix(name, asset.Ext)
		if strings.HasSuffix(base, asset.FlippedSuffix) {
			continue
		}
		animations = append(animations, base)
	}

	sort.Strings(animations)
	return animations, nil
}
