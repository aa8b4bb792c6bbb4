package main

import (
	"flag"
	"fmt"
	"os"

	"chosenoffset.com/deskpet/internal/config"
	"chosenoffset.com/deskpet/internal/game"
	"chosenoffset.com/deskpet/internal/placeholders"
)

func main() {
	defaults := config.DefaultConfig()

	assets := flag.String("assets", defaults.Pet.AssetPath, "asset root directory")
	pet := flag.String("pet", defaults.Pet.Name, "pet directory to fill")
	flipped := flag.Bool("flipped", false, "also write mirrored _FLIPPED variants")
	flag.Parse()

	fmt.Println("Desk Pet Placeholder Generator")
	fmt.Println("==============================")
	fmt.Println()

	written, err := placeholders.GenerateAndSave(*assets, *pet, game.AnimationNames(defaults.Animation), *flipped)
	for _, path := range written {
		fmt.Printf("  ✓ %s\n", path)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Printf("Done! Run deskpet -pet %s to see your placeholders in action.\n", *pet)
}
