package geometry

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/toxichemicals/GO/holy-fireball/render"
)

// cubeFace is one side of the unit cube: its outward normal and two edge
// directions with u × v = normal, so corners listed -u-v, +u-v, +u+v, -u+v
// wind counter-clockwise seen from outside.
type cubeFace struct {
	normal, u, v mgl32.Vec3
}

var cubeFaces = [6]cubeFace{
	{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 0, 1}},
	{mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 1, 0}},
	{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}},
	{mgl32.Vec3{0, -1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}},
	{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}},
	{mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}},
}

func (f cubeFace) corners() [4]mgl32.Vec3 {
	return [4]mgl32.Vec3{
		f.normal.Sub(f.u).Sub(f.v),
		f.normal.Add(f.u).Sub(f.v),
		f.normal.Add(f.u).Add(f.v),
		f.normal.Sub(f.u).Add(f.v),
	}
}

// CubeFlatMesh returns a cube of half-extent 1 around center with four
// vertices per face so each face carries its own normal.
func CubeFlatMesh(center mgl32.Vec3) render.MeshData {
	m := render.MeshData{Mode: render.Triangles}
	for _, f := range cubeFaces {
		base := uint32(len(m.Positions))
		for _, c := range f.corners() {
			m.Positions = append(m.Positions, center.Add(c).Vec4(1))
			m.Normals = append(m.Normals, f.normal.Vec4(0))
		}
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return m
}

// CubeMesh returns a cube of half-extent 1 around center with the eight
// corners shared between faces. Normals are averaged along the corner
// diagonals, which makes the cube shade like a rounded blob.
func CubeMesh(center mgl32.Vec3) render.MeshData {
	m := render.MeshData{Mode: render.Triangles}
	seen := make(map[mgl32.Vec3]uint32, 8)
	index := func(c mgl32.Vec3) uint32 {
		if i, ok := seen[c]; ok {
			return i
		}
		i := uint32(len(m.Positions))
		m.Positions = append(m.Positions, center.Add(c).Vec4(1))
		m.Normals = append(m.Normals, c.Normalize().Vec4(0))
		seen[c] = i
		return i
	}
	for _, f := range cubeFaces {
		var q [4]uint32
		for i, c := range f.corners() {
			q[i] = index(c)
		}
		m.Indices = append(m.Indices, q[0], q[1], q[2], q[0], q[2], q[3])
	}
	return m
}

// Cube is the smooth-shaded cube. The skybox is a Cube as well.
type Cube struct {
	render.Buffers
	Center mgl32.Vec3
}

func NewCube(center mgl32.Vec3) *Cube {
	return &Cube{Center: center}
}

func (s *Cube) Generate() render.MeshData { return CubeMesh(s.Center) }

func (s *Cube) Create(ctx *render.Context) error {
	return s.Upload(ctx, s.Generate())
}

// CubeFlat is the flat-shaded cube.
type CubeFlat struct {
	render.Buffers
	Center mgl32.Vec3
}

func NewCubeFlat(center mgl32.Vec3) *CubeFlat {
	return &CubeFlat{Center: center}
}

func (s *CubeFlat) Generate() render.MeshData { return CubeFlatMesh(s.Center) }

func (s *CubeFlat) Create(ctx *render.Context) error {
	return s.Upload(ctx, s.Generate())
}
