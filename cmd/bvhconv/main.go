package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/binzume/bvhconv/bvh"
)

func defaultOutputFile(input string) string {
	ext := strings.ToLower(filepath.Ext(input))
	base := input[0 : len(input)-len(ext)]
	if ext == ".bvh" {
		return base + ".glb"
	}
	return input + ".glb"
}

func defaultConfigFile(input string) string {
	confFile := input[0:len(input)-len(filepath.Ext(input))] + ".bvhconfig.yaml"
	if _, err := os.Stat(confFile); err != nil {
		return ""
	}
	return confFile
}

func printJointPositions(doc *bvh.Document, frame int) error {
	positions, err := doc.JointPositions(frame)
	if err != nil {
		return err
	}
	for i, j := range doc.JointList() {
		p := positions[i]
		fmt.Printf("%s\t%g\t%g\t%g\n", j.Name(), p.X, p.Y, p.Z)
	}
	return nil
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s input.bvh [output.glb|output.gltf|output.bvh]\n", os.Args[0])
		flag.PrintDefaults()
	}
	scale := flag.Float64("scale", 1, "scale lengths on load")
	frames := flag.Int("frames", -1, "resize to the number of frames (-1: keep)")
	confFile := flag.String("config", "", "config file for glTF conversion (.yaml)")
	gltfScale := flag.Float64("gltfscale", 0, "glTF unit scale (0: config or 0.01)")
	hierarchy := flag.Bool("hierarchy", false, "print joint hierarchy")
	pose := flag.Int("pose", -1, "print joint positions at the frame")
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		return
	}
	input := flag.Arg(0)
	output := flag.Arg(1)
	if output == "" {
		output = defaultOutputFile(input)
	}
	if *confFile == "" {
		*confFile = defaultConfigFile(input)
	}

	doc, err := bvh.LoadScaled(input, *scale)
	if err != nil {
		log.Fatal(err)
	}
	log.Print("channels: ", len(doc.Channels()))
	log.Print("frames: ", doc.Frames())
	log.Print("frame time: ", doc.FrameTime())

	if *hierarchy {
		doc.PrintJointHierarchy(os.Stdout)
	}
	if *pose >= 0 {
		if err := printJointPositions(doc, *pose); err != nil {
			log.Fatal(err)
		}
	}

	if *frames >= 0 {
		if err := doc.ResizeFrames(*frames); err != nil {
			log.Fatal(err)
		}
		log.Print("resized: ", doc.Frames())
	}

	log.Print("out: ", output)
	if err := saveDocument(doc, output, *confFile, *gltfScale); err != nil {
		log.Fatal(err)
	}
}
