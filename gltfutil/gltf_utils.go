package gltfutil

import (
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"
)

func Load(path string) (*gltf.Document, error) {
	return gltf.Open(path)
}

// Save writes .glb as binary glTF, otherwise JSON with embedded buffers.
func Save(doc *gltf.Document, path string) error {
	if strings.ToLower(filepath.Ext(path)) == ".glb" {
		return gltf.SaveBinary(doc, path)
	}
	for _, b := range doc.Buffers {
		if b.URI == "" {
			b.EmbeddedResource()
		}
	}
	return gltf.Save(doc, path)
}

func FindNode(doc *gltf.Document, name string) (uint32, bool) {
	for i, n := range doc.Nodes {
		if n.Name == name {
			return uint32(i), true
		}
	}
	return 0, false
}
