package geometry

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/toxichemicals/GO/holy-fireball/render"
)

// SquareMesh returns a 2x2 square in the XY plane facing +Z.
func SquareMesh(center mgl32.Vec3) render.MeshData {
	normal := mgl32.Vec4{0, 0, 1, 0}
	return render.MeshData{
		Positions: []mgl32.Vec4{
			center.Add(mgl32.Vec3{-1, -1, 0}).Vec4(1),
			center.Add(mgl32.Vec3{1, -1, 0}).Vec4(1),
			center.Add(mgl32.Vec3{1, 1, 0}).Vec4(1),
			center.Add(mgl32.Vec3{-1, 1, 0}).Vec4(1),
		},
		Normals: []mgl32.Vec4{normal, normal, normal, normal},
		Indices: []uint32{0, 1, 2, 0, 2, 3},
		Mode:    render.Triangles,
	}
}

type Square struct {
	render.Buffers
	Center mgl32.Vec3
}

func NewSquare(center mgl32.Vec3) *Square {
	return &Square{Center: center}
}

func (s *Square) Generate() render.MeshData { return SquareMesh(s.Center) }

func (s *Square) Create(ctx *render.Context) error {
	return s.Upload(ctx, s.Generate())
}

var (
	_ Shape = (*Icosphere)(nil)
	_ Shape = (*Cube)(nil)
	_ Shape = (*CubeFlat)(nil)
	_ Shape = (*Square)(nil)
)
