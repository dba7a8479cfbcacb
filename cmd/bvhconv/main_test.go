package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/binzume/bvhconv/bvh"
)

const testBVH = "HIERARCHY\nROOT Hips\n{\n\tOFFSET 0 0 0\n\tCHANNELS 3 Xposition Yposition Zposition\n}\nMOTION\nFrames: 2\nFrame Time: 0.033333\n1 2 3\n4 5 6\n"

func TestDefaultOutputFile(t *testing.T) {
	if defaultOutputFile("a/walk.BVH") != "a/walk.glb" {
		t.Error(defaultOutputFile("a/walk.BVH"))
	}
	if defaultOutputFile("walk.txt") != "walk.txt.glb" {
		t.Error(defaultOutputFile("walk.txt"))
	}
}

func TestSaveDocument(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "walk.bvh")
	if err := os.WriteFile(input, []byte(testBVH), 0644); err != nil {
		t.Fatal(err)
	}
	if defaultConfigFile(input) != "" {
		t.Error("config should not exist")
	}
	conf := filepath.Join(dir, "walk.bvhconfig.yaml")
	if err := os.WriteFile(conf, []byte("animationName: walk\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if defaultConfigFile(input) != conf {
		t.Error("config not found")
	}

	doc, err := bvh.Load(input)
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"out.glb", "out.gltf", "out.bvh"} {
		if err := saveDocument(doc, filepath.Join(dir, name), conf, 1); err != nil {
			t.Error(name, err)
		}
	}
	if err := saveDocument(doc, filepath.Join(dir, "out.fbx"), "", 0); err == nil {
		t.Error("expected error")
	}

	doc2, err := bvh.Load(filepath.Join(dir, "out.bvh"))
	if err != nil || doc2.Frames() != 2 {
		t.Error("reload: ", err)
	}
}
