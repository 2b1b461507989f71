package geometry

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/toxichemicals/GO/holy-fireball/render"
)

// NamedMesh is a mesh labelled for export.
type NamedMesh struct {
	Name string
	Mesh render.MeshData
}

func gltfMode(m render.DrawMode) gltf.PrimitiveMode {
	switch m {
	case render.Points:
		return gltf.PrimitivePoints
	case render.Lines:
		return gltf.PrimitiveLines
	case render.LineLoop:
		return gltf.PrimitiveLineLoop
	case render.LineStrip:
		return gltf.PrimitiveLineStrip
	case render.TriangleStrip:
		return gltf.PrimitiveTriangleStrip
	case render.TriangleFan:
		return gltf.PrimitiveTriangleFan
	}
	return gltf.PrimitiveTriangles
}

// vec3s drops the w component, which glTF does not store.
func vec3s(vs []mgl32.Vec4) [][3]float32 {
	out := make([][3]float32, len(vs))
	for i, v := range vs {
		out[i] = [3]float32{v[0], v[1], v[2]}
	}
	return out
}

func vec4s(vs []mgl32.Vec4) [][4]float32 {
	out := make([][4]float32, len(vs))
	for i, v := range vs {
		out[i] = [4]float32(v)
	}
	return out
}

// WriteGLB writes meshes to path as a binary glTF file, one node per mesh.
func WriteGLB(path string, meshes ...NamedMesh) error {
	doc := gltf.NewDocument()
	for i, nm := range meshes {
		if err := nm.Mesh.Validate(); err != nil {
			return fmt.Errorf("export %s: %w", nm.Name, err)
		}
		prim := &gltf.Primitive{
			Mode:    gltfMode(nm.Mesh.Mode),
			Indices: gltf.Index(modeler.WriteIndices(doc, nm.Mesh.Indices)),
			Attributes: map[string]int{
				gltf.POSITION: modeler.WritePosition(doc, vec3s(nm.Mesh.Positions)),
			},
		}
		if len(nm.Mesh.Normals) > 0 {
			prim.Attributes[gltf.NORMAL] = modeler.WriteNormal(doc, vec3s(nm.Mesh.Normals))
		}
		if len(nm.Mesh.Colors) > 0 {
			prim.Attributes[gltf.COLOR_0] = modeler.WriteColor(doc, vec4s(nm.Mesh.Colors))
		}
		doc.Meshes = append(doc.Meshes, &gltf.Mesh{Name: nm.Name, Primitives: []*gltf.Primitive{prim}})
		doc.Nodes = append(doc.Nodes, &gltf.Node{Name: nm.Name, Mesh: gltf.Index(i)})
		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, i)
	}
	if err := gltf.SaveBinary(doc, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
