package geometry

import (
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toxichemicals/GO/holy-fireball/render"
)

func TestWriteGLB(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.glb")
	sphere := IcosphereMesh(mgl32.Vec3{}, 1, 2)
	square := SquareMesh(mgl32.Vec3{})

	require.NoError(t, WriteGLB(path,
		NamedMesh{Name: "icosphere", Mesh: sphere},
		NamedMesh{Name: "square", Mesh: square},
	))

	doc, err := gltf.Open(path)
	require.NoError(t, err)
	require.Len(t, doc.Meshes, 2)
	assert.Equal(t, "icosphere", doc.Meshes[0].Name)
	assert.Equal(t, "square", doc.Nodes[1].Name)
	assert.Len(t, doc.Scenes[0].Nodes, 2)

	prim := doc.Meshes[0].Primitives[0]
	assert.Equal(t, gltf.PrimitiveTriangles, prim.Mode)
	require.NotNil(t, prim.Indices)
	assert.EqualValues(t, len(sphere.Indices), doc.Accessors[*prim.Indices].Count)
	assert.EqualValues(t, len(sphere.Positions), doc.Accessors[prim.Attributes[gltf.POSITION]].Count)
	assert.Contains(t, prim.Attributes, gltf.NORMAL)
	assert.NotContains(t, prim.Attributes, gltf.COLOR_0)
}

func TestWriteGLBRejectsInvalidMesh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.glb")
	bad := SquareMesh(mgl32.Vec3{})
	bad.Indices = append(bad.Indices, 9)

	err := WriteGLB(path, NamedMesh{Name: "bad", Mesh: bad})
	assert.ErrorIs(t, err, render.ErrInvalidMesh)
}
