// Package scene owns the drawables of the fireball scene and decides which
// of them are drawn each frame.
package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/toxichemicals/GO/holy-fireball/controls"
	"github.com/toxichemicals/GO/holy-fireball/geometry"
	"github.com/toxichemicals/GO/holy-fireball/render"
)

// Scene holds one of each shape plus the skybox. It exclusively owns their
// buffers.
type Scene struct {
	ctx *render.Context

	icosphere *geometry.Icosphere
	square    *geometry.Square
	cube      *geometry.Cube
	cubeFlat  *geometry.CubeFlat
	skybox    *geometry.Cube
}

// New creates and uploads every shape, with the icosphere at the given
// tessellation level.
func New(ctx *render.Context, tessellations int) (*Scene, error) {
	origin := mgl32.Vec3{}
	s := &Scene{
		ctx:       ctx,
		icosphere: geometry.NewIcosphere(origin, 1, tessellations),
		square:    geometry.NewSquare(origin),
		cube:      geometry.NewCube(origin),
		cubeFlat:  geometry.NewCubeFlat(origin),
		skybox:    geometry.NewCube(origin),
	}
	for _, sh := range s.shapes() {
		if err := sh.Create(ctx); err != nil {
			s.Release()
			return nil, fmt.Errorf("create scene: %w", err)
		}
	}
	return s, nil
}

func (s *Scene) shapes() []geometry.Shape {
	return []geometry.Shape{s.icosphere, s.square, s.cube, s.cubeFlat, s.skybox}
}

// Tessellations returns the subdivision level of the current icosphere.
func (s *Scene) Tessellations() int {
	return s.icosphere.Subdivisions
}

// SetTessellations replaces the icosphere when level differs from the
// current one. The old icosphere's buffers are released first. On failure
// the old icosphere stays in place.
func (s *Scene) SetTessellations(level int) error {
	if level == s.icosphere.Subdivisions {
		return nil
	}
	next := geometry.NewIcosphere(s.icosphere.Center, s.icosphere.Radius, level)
	// Generate before releasing so a bad mesh never leaves the scene empty.
	mesh := next.Generate()
	if err := mesh.Validate(); err != nil {
		return fmt.Errorf("rebuild icosphere: %w", err)
	}
	s.icosphere.Release()
	if err := next.Upload(s.ctx, mesh); err != nil {
		return fmt.Errorf("rebuild icosphere: %w", err)
	}
	s.icosphere = next
	render.Logger().Info("rebuilt icosphere", "tessellations", level, "triangles", len(mesh.Indices)/3)
	return nil
}

// Icosphere returns the current icosphere.
func (s *Scene) Icosphere() *geometry.Icosphere { return s.icosphere }

// Drawables returns the frame's draw list: the selected shape followed by
// the skybox.
func (s *Scene) Drawables(shape controls.Shape) []render.Drawable {
	var d render.Drawable
	switch shape {
	case controls.ShapeCubeFlat:
		d = s.cubeFlat
	case controls.ShapeCube:
		d = s.cube
	case controls.ShapeSquare:
		d = s.square
	default:
		d = s.icosphere
	}
	return []render.Drawable{d, s.skybox}
}

// Meshes returns the uploaded mesh of every shape, for export.
func (s *Scene) Meshes() []geometry.NamedMesh {
	return []geometry.NamedMesh{
		{Name: "icosphere", Mesh: s.icosphere.Mesh()},
		{Name: "square", Mesh: s.square.Mesh()},
		{Name: "cube", Mesh: s.cube.Mesh()},
		{Name: "cubeflat", Mesh: s.cubeFlat.Mesh()},
		{Name: "skybox", Mesh: s.skybox.Mesh()},
	}
}

// Release frees every shape's buffers.
func (s *Scene) Release() {
	for _, sh := range s.shapes() {
		sh.Release()
	}
}

// Export writes every uploaded mesh to path as binary glTF.
func (s *Scene) Export(path string) error {
	return geometry.WriteGLB(path, s.Meshes()...)
}

// Generate builds the scene's meshes on the CPU only, for exporting without
// a graphics context.
func Generate(tessellations int) []geometry.NamedMesh {
	origin := mgl32.Vec3{}
	return []geometry.NamedMesh{
		{Name: "icosphere", Mesh: geometry.IcosphereMesh(origin, 1, tessellations)},
		{Name: "square", Mesh: geometry.SquareMesh(origin)},
		{Name: "cube", Mesh: geometry.CubeMesh(origin)},
		{Name: "cubeflat", Mesh: geometry.CubeFlatMesh(origin)},
		{Name: "skybox", Mesh: geometry.CubeMesh(origin)},
	}
}
