package render

import "github.com/go-gl/mathgl/mgl32"

// BufferTarget selects which binding point a buffer is attached to.
type BufferTarget int

const (
	ArrayBuffer BufferTarget = iota
	ElementArrayBuffer
)

// ShaderStage identifies the pipeline stage of a shader unit.
type ShaderStage int

const (
	VertexStage ShaderStage = iota
	FragmentStage
)

func (s ShaderStage) String() string {
	switch s {
	case VertexStage:
		return "vertex"
	case FragmentStage:
		return "fragment"
	}
	return "unknown"
}

// DrawMode is the primitive topology used for an indexed draw.
type DrawMode int

const (
	Points DrawMode = iota
	Lines
	LineLoop
	LineStrip
	Triangles
	TriangleStrip
	TriangleFan
)

// Vertices returns how many indices make up one primitive, or 0 for strip,
// loop and fan modes where any index count is valid.
func (m DrawMode) Vertices() int {
	switch m {
	case Points:
		return 1
	case Lines:
		return 2
	case Triangles:
		return 3
	}
	return 0
}

func (m DrawMode) String() string {
	switch m {
	case Points:
		return "points"
	case Lines:
		return "lines"
	case LineLoop:
		return "line-loop"
	case LineStrip:
		return "line-strip"
	case Triangles:
		return "triangles"
	case TriangleStrip:
		return "triangle-strip"
	case TriangleFan:
		return "triangle-fan"
	}
	return "unknown"
}

// Handles returned by a Device. Zero is never a valid handle.
type (
	BufferHandle  uint32
	ShaderHandle  uint32
	ProgramHandle uint32
)

// Device is the set of graphics calls the render layer issues. core.Device
// implements it on top of OpenGL; rendertest.Device records calls for tests.
//
// All methods are called from the thread that owns the graphics context.
type Device interface {
	CreateBuffer() BufferHandle
	DeleteBuffer(b BufferHandle)
	BindBuffer(target BufferTarget, b BufferHandle)
	BufferFloat32(target BufferTarget, data []float32)
	BufferUint32(target BufferTarget, data []uint32)

	// CompileShader returns the new shader, its info log and whether
	// compilation succeeded. A failed shader has already been deleted.
	CompileShader(stage ShaderStage, source string) (ShaderHandle, string, bool)
	DeleteShader(s ShaderHandle)
	// LinkProgram returns the new program, its info log and whether
	// linking succeeded. A failed program has already been deleted.
	LinkProgram(shaders []ShaderHandle) (ProgramHandle, string, bool)
	DeleteProgram(p ProgramHandle)
	UseProgram(p ProgramHandle)

	// AttribLocation and UniformLocation return -1 for names the program
	// does not declare.
	AttribLocation(p ProgramHandle, name string) int32
	UniformLocation(p ProgramHandle, name string) int32

	Uniform1f(location int32, v float32)
	Uniform4f(location int32, v mgl32.Vec4)
	UniformMatrix4(location int32, m mgl32.Mat4)

	EnableAttrib(index uint32)
	DisableAttrib(index uint32)
	// AttribPointer describes the bound array buffer as tightly packed
	// 4-component floats for the given attribute.
	AttribPointer(index uint32)
	DrawElements(mode DrawMode, count int32)

	ClearColor(r, g, b, a float32)
	Clear()
	Viewport(x, y, width, height int32)
}
