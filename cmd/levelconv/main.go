// levelconv converts ASCII text maps into level YAML files for snek.
//
// Reads every *.txt under the input directory and writes one
// <name>.yaml per map into the output directory.
//
// Usage:
//
//	go run ./cmd/levelconv [input_dir] [output_dir]
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/snekecs/snek/internal/data"
)

func main() {
	inputDir := filepath.Join("data", "maps")
	outputDir := filepath.Join("data", "levels")

	if len(os.Args) >= 2 {
		inputDir = os.Args[1]
	}
	if len(os.Args) >= 3 {
		outputDir = os.Args[2]
	}

	paths, err := filepath.Glob(filepath.Join(inputDir, "*.txt"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error listing %s: %v\n", inputDir, err)
		os.Exit(1)
	}
	sort.Strings(paths)
	if len(paths) == 0 {
		fmt.Fprintf(os.Stderr, "no text maps found in %s\n", inputDir)
		os.Exit(1)
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "error creating output directory: %v\n", err)
		os.Exit(1)
	}

	failed := 0
	for _, path := range paths {
		lv, err := data.LoadTextMap(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: %s: %v, skipping\n", path, err)
			failed++
			continue
		}
		yamlData, err := data.MarshalLevel(lv)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error marshalling %s: %v\n", path, err)
			os.Exit(1)
		}
		outputPath := filepath.Join(outputDir, lv.Name+".yaml")
		header := fmt.Sprintf("# Level %s - converted from %s\n\n", lv.Name, filepath.Base(path))
		if err := os.WriteFile(outputPath, append([]byte(header), yamlData...), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "error writing %s: %v\n", outputPath, err)
			os.Exit(1)
		}
		fmt.Printf("  %s -> %s (%dx%d, %d walls, %d apples)\n",
			path, outputPath, lv.Width, lv.Height, len(lv.Walls), lv.Apples)
	}

	fmt.Printf("Converted %d of %d maps\n", len(paths)-failed, len(paths))
	if failed > 0 {
		os.Exit(1)
	}
}
