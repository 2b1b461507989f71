package render

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Drawable is anything a Program can draw: a set of vertex attribute
// buffers plus an index buffer.
type Drawable interface {
	// BindPosition binds the position buffer and reports whether one exists.
	BindPosition() bool
	// BindNormal binds the normal buffer and reports whether one exists.
	BindNormal() bool
	// BindColor binds the color buffer and reports whether one exists.
	BindColor() bool
	// BindIndex binds the index buffer. It fails with ErrNotCreated if the
	// buffers were never uploaded.
	BindIndex() error
	ElementCount() int
	DrawMode() DrawMode
}

// MeshData is the CPU side of a drawable: one 4-component vector per vertex
// for each attribute and the indices into them.
type MeshData struct {
	Positions []mgl32.Vec4
	Normals   []mgl32.Vec4 // optional
	Colors    []mgl32.Vec4 // optional
	Indices   []uint32
	Mode      DrawMode
}

// Validate checks the buffer format contract: attribute arrays line up,
// the index count is a whole number of primitives and every index points
// at an existing vertex.
func (m *MeshData) Validate() error {
	n := len(m.Positions)
	if n == 0 {
		return fmt.Errorf("%w: no positions", ErrInvalidMesh)
	}
	if len(m.Normals) != 0 && len(m.Normals) != n {
		return fmt.Errorf("%w: %d normals for %d positions", ErrInvalidMesh, len(m.Normals), n)
	}
	if len(m.Colors) != 0 && len(m.Colors) != n {
		return fmt.Errorf("%w: %d colors for %d positions", ErrInvalidMesh, len(m.Colors), n)
	}
	if len(m.Indices) == 0 {
		return fmt.Errorf("%w: no indices", ErrInvalidMesh)
	}
	if per := m.Mode.Vertices(); per > 0 && len(m.Indices)%per != 0 {
		return fmt.Errorf("%w: %d indices is not a multiple of %d for %s", ErrInvalidMesh, len(m.Indices), per, m.Mode)
	}
	for i, idx := range m.Indices {
		if int(idx) >= n {
			return fmt.Errorf("%w: index %d at %d out of range for %d positions", ErrInvalidMesh, idx, i, n)
		}
	}
	return nil
}

// flatten packs 4-component vectors into the float layout uploaded to the
// device.
func flatten(vs []mgl32.Vec4) []float32 {
	out := make([]float32, 0, len(vs)*4)
	for _, v := range vs {
		out = append(out, v[0], v[1], v[2], v[3])
	}
	return out
}

// Buffers holds the device buffers of one drawable. Shapes embed it and
// call Upload from their Create method.
//
// Buffers are immutable once uploaded. The owner must call Release before
// discarding the drawable or uploading different data.
type Buffers struct {
	ctx *Context

	pos, nor, col, idx BufferHandle

	count int
	mode  DrawMode
	mesh  MeshData
}

// Upload validates mesh and uploads it into new device buffers.
func (b *Buffers) Upload(ctx *Context, mesh MeshData) error {
	if b.Created() {
		return ErrAlreadyCreated
	}
	if err := mesh.Validate(); err != nil {
		return err
	}
	dev := ctx.Device()

	b.idx = dev.CreateBuffer()
	dev.BindBuffer(ElementArrayBuffer, b.idx)
	dev.BufferUint32(ElementArrayBuffer, mesh.Indices)

	b.pos = uploadFloats(dev, mesh.Positions)
	if len(mesh.Normals) > 0 {
		b.nor = uploadFloats(dev, mesh.Normals)
	}
	if len(mesh.Colors) > 0 {
		b.col = uploadFloats(dev, mesh.Colors)
	}

	b.ctx = ctx
	b.count = len(mesh.Indices)
	b.mode = mesh.Mode
	b.mesh = mesh

	Logger().Debug("uploaded drawable",
		"vertices", len(mesh.Positions), "indices", b.count, "mode", b.mode)
	return nil
}

func uploadFloats(dev Device, vs []mgl32.Vec4) BufferHandle {
	h := dev.CreateBuffer()
	dev.BindBuffer(ArrayBuffer, h)
	dev.BufferFloat32(ArrayBuffer, flatten(vs))
	return h
}

// Created reports whether Upload succeeded and Release was not called since.
func (b *Buffers) Created() bool {
	return b.ctx != nil
}

// Release deletes every buffer. It is safe to call more than once.
func (b *Buffers) Release() {
	if b.ctx == nil {
		return
	}
	dev := b.ctx.Device()
	for _, h := range []BufferHandle{b.idx, b.pos, b.nor, b.col} {
		if h != 0 {
			dev.DeleteBuffer(h)
		}
	}
	*b = Buffers{}
}

func (b *Buffers) bindArray(h BufferHandle) bool {
	if h == 0 {
		return false
	}
	b.ctx.Device().BindBuffer(ArrayBuffer, h)
	return true
}

func (b *Buffers) BindPosition() bool { return b.bindArray(b.pos) }
func (b *Buffers) BindNormal() bool   { return b.bindArray(b.nor) }
func (b *Buffers) BindColor() bool    { return b.bindArray(b.col) }

func (b *Buffers) BindIndex() error {
	if !b.Created() {
		return ErrNotCreated
	}
	b.ctx.Device().BindBuffer(ElementArrayBuffer, b.idx)
	return nil
}

func (b *Buffers) ElementCount() int  { return b.count }
func (b *Buffers) DrawMode() DrawMode { return b.mode }

// Mesh returns the data that was uploaded.
func (b *Buffers) Mesh() MeshData { return b.mesh }
