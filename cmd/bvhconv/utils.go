package main

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/binzume/bvhconv/bvh"
	"github.com/binzume/bvhconv/converter"
	"github.com/binzume/bvhconv/gltfutil"
)

func saveAsGltf(doc *bvh.Document, output, confFile string, scale float64) error {
	option := &converter.BVHToGLTFOption{}
	if confFile != "" {
		log.Print("config: ", confFile)
		conf, err := converter.LoadConfig(confFile)
		if err != nil {
			return err
		}
		option = conf
	}
	if scale != 0 {
		option.Scale = scale
	}
	gltfdoc, err := converter.NewBVHToGLTFConverter(option).Convert(doc)
	if err != nil {
		return err
	}
	return gltfutil.Save(gltfdoc, output)
}

func saveDocument(doc *bvh.Document, output, confFile string, scale float64) error {
	ext := strings.ToLower(filepath.Ext(output))
	if ext == ".glb" || ext == ".gltf" {
		return saveAsGltf(doc, output, confFile, scale)
	} else if ext == ".bvh" {
		return doc.Save(output)
	}
	return fmt.Errorf("Unsuppored output type: %v", ext)
}
