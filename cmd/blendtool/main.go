// blendtool is a CLI utility for inspecting and blending OBJ blendshapes.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Faultbox/blendview/internal/blend"
	"github.com/Faultbox/blendview/internal/config"
	"github.com/Faultbox/blendview/pkg/formats"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "weights", "w":
		cmdWeights(args)
	case "blend":
		cmdBlend(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`blendtool - OBJ blendshape utility

Usage:
  blendtool <command> [options]

Commands:
  info <file.obj>...                  Show mesh statistics
  weights <file>                      Show a weight vector
  blend [-config f] [-o out.obj]      Blend the configured shapes and write a flat OBJ

Examples:
  blendtool info data/faces/base.obj
  blendtool weights data/weights/0.weights
  blendtool blend -config blendview.yaml -weights data/weights/3.weights -o blended.obj`)
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func cmdInfo(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: blendtool info <file.obj>...")
		os.Exit(1)
	}

	for i, path := range args {
		m, err := formats.LoadOBJ(path)
		if err != nil {
			fail(err)
		}
		if i > 0 {
			fmt.Println()
		}
		fmt.Printf("Mesh:      %s\n", path)
		fmt.Printf("Positions: %d\n", len(m.Positions))
		fmt.Printf("Normals:   %d\n", len(m.Normals))
		fmt.Printf("Triangles: %d\n", len(m.Faces))
		fmt.Printf("Corners:   %d (%d floats per buffer)\n", m.CornerCount(), m.CornerCount()*3)
		if len(m.Groups) > 0 {
			fmt.Printf("Groups:    %v\n", m.Groups)
		}
		if m.Skipped > 0 {
			fmt.Printf("Skipped:   %d unsupported lines\n", m.Skipped)
		}
	}
}

func cmdWeights(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: blendtool weights <file>")
		os.Exit(1)
	}

	weights, err := formats.LoadWeights(args[0])
	if err != nil {
		fail(err)
	}

	var sum float32
	for i, w := range weights {
		fmt.Printf("  %3d  %g\n", i, w)
		sum += w
	}
	fmt.Println()
	fmt.Printf("Count: %d\n", len(weights))
	fmt.Printf("Sum:   %g\n", sum)
}

func cmdBlend(args []string) {
	fs := flag.NewFlagSet("blend", flag.ExitOnError)
	configPath := fs.String("config", "", "Config file (defaults are used when empty)")
	weightsPath := fs.String("weights", "", "Override the weight file")
	output := fs.String("o", "blended.obj", "Output OBJ file")
	blendNormals := fs.Bool("blend-normals", false, "Blend normals as well as positions")
	fs.Parse(args)

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.LoadFile(*configPath)
		if err != nil {
			fail(err)
		}
	}
	if *weightsPath != "" {
		cfg.Shapes.Weights = *weightsPath
	}
	if *blendNormals {
		cfg.Render.BlendNormals = true
	}

	set, err := blend.LoadShapeSet(cfg.Shapes.Base, cfg.Shapes.TargetPaths())
	if err != nil {
		fail(err)
	}
	weights, err := formats.LoadWeights(cfg.Shapes.Weights)
	if err != nil {
		fail(err)
	}
	res, err := set.Blend(weights, blend.Options{BlendNormals: cfg.Render.BlendNormals})
	if err != nil {
		fail(err)
	}

	if err := writeOBJ(*output, res); err != nil {
		fail(err)
	}
	fmt.Printf("Blended %d targets, %d triangles -> %s\n", len(set.Targets), res.Corners()/3, *output)
}

func writeOBJ(path string, res *blend.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := formats.WriteFlatOBJ(f, res.Positions, res.Normals); err != nil {
		return err
	}
	return f.Close()
}
