package geometry

import (
	"fmt"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toxichemicals/GO/holy-fireball/render"
	"github.com/toxichemicals/GO/holy-fireball/render/rendertest"
)

func checkMesh(t *testing.T, m render.MeshData) {
	t.Helper()
	require.NoError(t, m.Validate())
	assert.Zero(t, len(m.Indices)%3)
	assert.Len(t, m.Normals, len(m.Positions))
	for i, idx := range m.Indices {
		if int(idx) >= len(m.Positions) {
			t.Fatalf("index %d at %d out of range", idx, i)
		}
	}
	for _, p := range m.Positions {
		assert.Equal(t, float32(1), p[3])
	}
	for _, n := range m.Normals {
		assert.Equal(t, float32(0), n[3])
		assert.InDelta(t, 1, n.Vec3().Len(), 1e-5)
	}
}

// checkOutward asserts every triangle winds counter-clockwise seen from
// outside, taking center as the inside.
func checkOutward(t *testing.T, m render.MeshData, center mgl32.Vec3) {
	t.Helper()
	for f := 0; f < len(m.Indices); f += 3 {
		a := m.Positions[m.Indices[f]].Vec3()
		b := m.Positions[m.Indices[f+1]].Vec3()
		c := m.Positions[m.Indices[f+2]].Vec3()
		n := b.Sub(a).Cross(c.Sub(a))
		out := a.Add(b).Add(c).Mul(1.0 / 3).Sub(center)
		if n.Dot(out) <= 0 {
			t.Fatalf("triangle %d winds inward", f/3)
		}
	}
}

func TestIcosphereMesh(t *testing.T) {
	center := mgl32.Vec3{1, 2, 3}
	for level := 0; level <= 5; level++ {
		t.Run(fmt.Sprint(level), func(t *testing.T) {
			m := IcosphereMesh(center, 2, level)
			checkMesh(t, m)
			checkOutward(t, m, center)

			faces := 20 << (2 * level)
			assert.Len(t, m.Indices, faces*3)
			assert.Len(t, m.Positions, faces/2+2)
			for _, p := range m.Positions {
				assert.InDelta(t, 2, p.Vec3().Sub(center).Len(), 1e-4)
			}
		})
	}
}

func TestIcosphereClampsSubdivisions(t *testing.T) {
	assert.Len(t, IcosphereMesh(mgl32.Vec3{}, 1, -3).Indices, 60)
	assert.Equal(t, 20<<(2*MaxSubdivisions), len(IcosphereMesh(mgl32.Vec3{}, 1, MaxSubdivisions+1).Indices)/3)
}

func TestCubeMesh(t *testing.T) {
	center := mgl32.Vec3{0, 1, 0}
	m := CubeMesh(center)
	checkMesh(t, m)
	checkOutward(t, m, center)
	assert.Len(t, m.Positions, 8)
	assert.Len(t, m.Indices, 36)
}

func TestCubeFlatMesh(t *testing.T) {
	m := CubeFlatMesh(mgl32.Vec3{})
	checkMesh(t, m)
	checkOutward(t, m, mgl32.Vec3{})
	assert.Len(t, m.Positions, 24)
	assert.Len(t, m.Indices, 36)

	for f := 0; f < len(m.Indices); f += 3 {
		a := m.Positions[m.Indices[f]].Vec3()
		b := m.Positions[m.Indices[f+1]].Vec3()
		c := m.Positions[m.Indices[f+2]].Vec3()
		face := b.Sub(a).Cross(c.Sub(a)).Normalize()
		for _, i := range m.Indices[f : f+3] {
			assert.True(t, face.ApproxEqual(m.Normals[i].Vec3()), "normal %v on face %v", m.Normals[i], face)
		}
	}
}

func TestSquareMesh(t *testing.T) {
	m := SquareMesh(mgl32.Vec3{0, 0, -1})
	checkMesh(t, m)
	checkOutward(t, m, mgl32.Vec3{0, 0, -2})
	assert.Len(t, m.Indices, 6)
}

func TestShapesCreate(t *testing.T) {
	shapes := map[string]Shape{
		"icosphere": NewIcosphere(mgl32.Vec3{}, 1, 3),
		"cube":      NewCube(mgl32.Vec3{}),
		"cubeflat":  NewCubeFlat(mgl32.Vec3{}),
		"square":    NewSquare(mgl32.Vec3{}),
	}
	for name, s := range shapes {
		t.Run(name, func(t *testing.T) {
			dev := rendertest.New()
			ctx := render.NewContext(dev)

			assert.ErrorIs(t, s.BindIndex(), render.ErrNotCreated)
			require.NoError(t, s.Create(ctx))
			assert.Equal(t, len(s.Generate().Indices), s.ElementCount())
			assert.Equal(t, render.Triangles, s.DrawMode())
			assert.ErrorIs(t, s.Create(ctx), render.ErrAlreadyCreated)

			s.Release()
			assert.Zero(t, dev.LiveBuffers())
		})
	}
}
