package sceneio

import (
	"testing"

	"github.com/qmuntal/gltf"

	"github.com/mrigankad/tracer/material"
)

func TestGLTFMaterialDefaultsToMatteWithoutPBR(t *testing.T) {
	mat := gltfMaterial(&gltf.Material{})
	if _, ok := mat.(*material.Matte); !ok {
		t.Errorf("expected Matte for a material with no PBR block, got %T", mat)
	}
}

func TestLoadGLTFPrimitiveRequiresPosition(t *testing.T) {
	doc := &gltf.Document{}
	prim := gltf.Primitive{Attributes: map[string]uint32{}}
	if _, err := loadGLTFPrimitive(doc, prim); err == nil {
		t.Errorf("expected an error for a primitive with no POSITION attribute")
	}
}
