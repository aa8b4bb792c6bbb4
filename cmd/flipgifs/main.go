package main

import (
	"flag"
	"fmt"
	"image/gif"
	"os"
	"path/filepath"
	"strings"

	"chosenoffset.com/deskpet/internal/asset"
)

func main() {
	dir := flag.String("dir", ".", "directory of GIFs to mirror")
	flag.Parse()

	n, err := flipDir(*dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %d flipped GIFs\n", n)
}

// flipDir writes a _FLIPPED copy of every GIF in dir that is not one already
func flipDir(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", dir, err)
	}

	count := 0
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != asset.Ext {
			continue
		}
		base := strings.TrimSuffix(name, asset.Ext)
		if strings.HasSuffix(base, asset.FlippedSuffix) {
			continue
		}

		src := filepath.Join(dir, name)
		dst := filepath.Join(dir, base+asset.FlippedSuffix+asset.Ext)
		if err := flipFile(src, dst); err != nil {
			return count, err
		}
		fmt.Printf("  ✓ %s\n", dst)
		count++
	}
	return count, nil
}

func flipFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	g, err := gif.DecodeAll(in)
	in.Close()
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", src, err)
	}

	asset.FlipGIF(g)

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if err := gif.EncodeAll(out, g); err != nil {
		out.Close()
		return fmt.Errorf("failed to encode %s: %w", dst, err)
	}
	return out.Close()
}
