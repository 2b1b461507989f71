// Package geometry generates the procedural meshes the renderer draws and
// wraps each of them as a render.Drawable.
package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/toxichemicals/GO/holy-fireball/render"
)

// MaxSubdivisions bounds icosphere tessellation. Level 8 already produces
// 1.3 million triangles.
const MaxSubdivisions = 8

// Shape is a drawable that can generate its own mesh.
type Shape interface {
	render.Drawable
	// Generate builds the CPU mesh without touching the device.
	Generate() render.MeshData
	// Create uploads Generate's output. It fails if the shape is already
	// created.
	Create(ctx *render.Context) error
	Release()
}

// Icosphere is a subdivided icosahedron projected onto a sphere.
type Icosphere struct {
	render.Buffers
	Center       mgl32.Vec3
	Radius       float32
	Subdivisions int
}

func NewIcosphere(center mgl32.Vec3, radius float32, subdivisions int) *Icosphere {
	return &Icosphere{Center: center, Radius: radius, Subdivisions: subdivisions}
}

func (s *Icosphere) Generate() render.MeshData {
	return IcosphereMesh(s.Center, s.Radius, s.Subdivisions)
}

func (s *Icosphere) Create(ctx *render.Context) error {
	return s.Upload(ctx, s.Generate())
}

// IcosphereMesh subdivides an icosahedron subdivisions times, clamped to
// [0, MaxSubdivisions]. Each level splits every triangle into four through
// its edge midpoints, which are shared between neighbouring triangles.
// Normals point away from center.
func IcosphereMesh(center mgl32.Vec3, radius float32, subdivisions int) render.MeshData {
	subdivisions = min(max(subdivisions, 0), MaxSubdivisions)

	t := float32((1 + math.Sqrt(5)) / 2)
	units := []mgl32.Vec3{
		{-1, t, 0}, {1, t, 0}, {-1, -t, 0}, {1, -t, 0},
		{0, -1, t}, {0, 1, t}, {0, -1, -t}, {0, 1, -t},
		{t, 0, -1}, {t, 0, 1}, {-t, 0, -1}, {-t, 0, 1},
	}
	for i := range units {
		units[i] = units[i].Normalize()
	}
	tris := []uint32{
		0, 11, 5, 0, 5, 1, 0, 1, 7, 0, 7, 10, 0, 10, 11,
		1, 5, 9, 5, 11, 4, 11, 10, 2, 10, 7, 6, 7, 1, 8,
		3, 9, 4, 3, 4, 2, 3, 2, 6, 3, 6, 8, 3, 8, 9,
		4, 9, 5, 2, 4, 11, 6, 2, 10, 8, 6, 7, 9, 8, 1,
	}

	for level := 0; level < subdivisions; level++ {
		mids := make(map[uint64]uint32, len(tris)/2)
		midpoint := func(a, b uint32) uint32 {
			key := uint64(min(a, b))<<32 | uint64(max(a, b))
			if i, ok := mids[key]; ok {
				return i
			}
			i := uint32(len(units))
			units = append(units, units[a].Add(units[b]).Normalize())
			mids[key] = i
			return i
		}

		next := make([]uint32, 0, len(tris)*4)
		for f := 0; f < len(tris); f += 3 {
			a, b, c := tris[f], tris[f+1], tris[f+2]
			ab, bc, ca := midpoint(a, b), midpoint(b, c), midpoint(c, a)
			next = append(next,
				a, ab, ca,
				b, bc, ab,
				c, ca, bc,
				ab, bc, ca,
			)
		}
		tris = next
	}

	m := render.MeshData{
		Positions: make([]mgl32.Vec4, len(units)),
		Normals:   make([]mgl32.Vec4, len(units)),
		Indices:   tris,
		Mode:      render.Triangles,
	}
	for i, u := range units {
		m.Positions[i] = center.Add(u.Mul(radius)).Vec4(1)
		m.Normals[i] = u.Vec4(0)
	}
	return m
}
