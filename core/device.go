package core

import (
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/toxichemicals/GO/holy-fireball/render"
)

// Device issues render calls against the current OpenGL 4.1 core context.
// It must only be used from the thread that made the context current.
type Device struct {
	vao uint32
}

var _ render.Device = (*Device)(nil)

// NewDevice loads the GL entry points, enables depth testing and binds the
// vertex array object every attribute is recorded into.
func NewDevice() (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, err
	}
	d := &Device{}
	gl.Enable(gl.DEPTH_TEST)

	// Core profile refuses attribute setup without a bound VAO.
	gl.GenVertexArrays(1, &d.vao)
	gl.BindVertexArray(d.vao)
	return d, nil
}

// Version returns the GL version string of the context.
func (d *Device) Version() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

// Release deletes the device's vertex array object.
func (d *Device) Release() {
	gl.BindVertexArray(0)
	gl.DeleteVertexArrays(1, &d.vao)
}

func glTarget(t render.BufferTarget) uint32 {
	if t == render.ElementArrayBuffer {
		return gl.ELEMENT_ARRAY_BUFFER
	}
	return gl.ARRAY_BUFFER
}

func glMode(m render.DrawMode) uint32 {
	switch m {
	case render.Points:
		return gl.POINTS
	case render.Lines:
		return gl.LINES
	case render.LineLoop:
		return gl.LINE_LOOP
	case render.LineStrip:
		return gl.LINE_STRIP
	case render.TriangleStrip:
		return gl.TRIANGLE_STRIP
	case render.TriangleFan:
		return gl.TRIANGLE_FAN
	}
	return gl.TRIANGLES
}

func (d *Device) CreateBuffer() render.BufferHandle {
	var b uint32
	gl.GenBuffers(1, &b)
	return render.BufferHandle(b)
}

func (d *Device) DeleteBuffer(b render.BufferHandle) {
	h := uint32(b)
	gl.DeleteBuffers(1, &h)
}

func (d *Device) BindBuffer(target render.BufferTarget, b render.BufferHandle) {
	gl.BindBuffer(glTarget(target), uint32(b))
}

func (d *Device) BufferFloat32(target render.BufferTarget, data []float32) {
	gl.BufferData(glTarget(target), len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
}

func (d *Device) BufferUint32(target render.BufferTarget, data []uint32) {
	gl.BufferData(glTarget(target), len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
}

func (d *Device) CompileShader(stage render.ShaderStage, source string) (render.ShaderHandle, string, bool) {
	xtype := uint32(gl.VERTEX_SHADER)
	if stage == render.FragmentStage {
		xtype = gl.FRAGMENT_SHADER
	}
	shader := gl.CreateShader(xtype)
	glShaderSource(shader, source)
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, strings.TrimRight(log, "\x00"), false
	}
	return render.ShaderHandle(shader), "", true
}

// glShaderSource passes GLSL source to OpenGL. go-gl expects C strings, so
// the source is NUL-terminated if it is not already.
func glShaderSource(shader uint32, source string) {
	if !strings.HasSuffix(source, "\x00") {
		source += "\x00"
	}
	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
}

func (d *Device) DeleteShader(s render.ShaderHandle) {
	gl.DeleteShader(uint32(s))
}

func (d *Device) LinkProgram(shaders []render.ShaderHandle) (render.ProgramHandle, string, bool) {
	program := gl.CreateProgram()
	for _, s := range shaders {
		gl.AttachShader(program, uint32(s))
	}
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)
		return 0, strings.TrimRight(log, "\x00"), false
	}
	for _, s := range shaders {
		gl.DetachShader(program, uint32(s))
	}
	return render.ProgramHandle(program), "", true
}

func (d *Device) DeleteProgram(p render.ProgramHandle) {
	gl.DeleteProgram(uint32(p))
}

func (d *Device) UseProgram(p render.ProgramHandle) {
	gl.UseProgram(uint32(p))
}

func (d *Device) AttribLocation(p render.ProgramHandle, name string) int32 {
	return gl.GetAttribLocation(uint32(p), gl.Str(name+"\x00"))
}

func (d *Device) UniformLocation(p render.ProgramHandle, name string) int32 {
	return gl.GetUniformLocation(uint32(p), gl.Str(name+"\x00"))
}

func (d *Device) Uniform1f(location int32, v float32) {
	gl.Uniform1f(location, v)
}

func (d *Device) Uniform4f(location int32, v mgl32.Vec4) {
	gl.Uniform4fv(location, 1, &v[0])
}

func (d *Device) UniformMatrix4(location int32, m mgl32.Mat4) {
	gl.UniformMatrix4fv(location, 1, false, &m[0])
}

func (d *Device) EnableAttrib(index uint32) {
	gl.EnableVertexAttribArray(index)
}

func (d *Device) DisableAttrib(index uint32) {
	gl.DisableVertexAttribArray(index)
}

func (d *Device) AttribPointer(index uint32) {
	gl.VertexAttribPointer(index, 4, gl.FLOAT, false, 0, gl.PtrOffset(0))
}

func (d *Device) DrawElements(mode render.DrawMode, count int32) {
	gl.DrawElements(glMode(mode), count, gl.UNSIGNED_INT, gl.PtrOffset(0))
}

func (d *Device) ClearColor(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
}

func (d *Device) Clear() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (d *Device) Viewport(x, y, width, height int32) {
	gl.Viewport(x, y, width, height)
}
