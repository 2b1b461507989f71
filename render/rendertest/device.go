// Package rendertest provides a recording render.Device for tests that
// exercise the render layer without a graphics context.
package rendertest

import (
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/toxichemicals/GO/holy-fireball/render"
)

// DrawCall is one recorded DrawElements.
type DrawCall struct {
	Program render.ProgramHandle
	Mode    render.DrawMode
	Count   int32
	Index   render.BufferHandle
	// Attribs maps each enabled attribute index to the array buffer
	// bound when it was pointed.
	Attribs map[uint32]render.BufferHandle
}

// Device records every call. A program declares an attribute or uniform
// when the name appears in the source of one of its shaders.
type Device struct {
	// CompileFailures makes compilation of a stage fail with this log.
	CompileFailures map[render.ShaderStage]string
	// LinkFailure makes every link fail with this log when non-empty.
	LinkFailure string

	UseProgramCalls int
	Clears          int
	ClearRGBA       [4]float32
	Viewports       [][4]int32
	Draws           []DrawCall

	next     uint32
	buffers  map[render.BufferHandle][]float32
	indices  map[render.BufferHandle][]uint32
	shaders  map[render.ShaderHandle]string
	programs map[render.ProgramHandle]*program
	active   render.ProgramHandle

	array, element render.BufferHandle
	enabled        map[uint32]render.BufferHandle
	uniforms       map[int32]any
	uniformWrites  int
}

type program struct {
	source   string
	attribs  map[string]int32
	uniforms map[string]int32
}

func New() *Device {
	return &Device{
		buffers:  make(map[render.BufferHandle][]float32),
		indices:  make(map[render.BufferHandle][]uint32),
		shaders:  make(map[render.ShaderHandle]string),
		programs: make(map[render.ProgramHandle]*program),
		enabled:  make(map[uint32]render.BufferHandle),
		uniforms: make(map[int32]any),
	}
}

func (d *Device) handle() uint32 {
	d.next++
	return d.next
}

func (d *Device) CreateBuffer() render.BufferHandle {
	h := render.BufferHandle(d.handle())
	d.buffers[h] = nil
	return h
}

func (d *Device) DeleteBuffer(b render.BufferHandle) {
	if _, ok := d.buffers[b]; !ok {
		panic(fmt.Sprintf("rendertest: delete of unknown buffer %d", b))
	}
	delete(d.buffers, b)
	delete(d.indices, b)
}

func (d *Device) BindBuffer(target render.BufferTarget, b render.BufferHandle) {
	if _, ok := d.buffers[b]; !ok {
		panic(fmt.Sprintf("rendertest: bind of unknown buffer %d", b))
	}
	switch target {
	case render.ArrayBuffer:
		d.array = b
	case render.ElementArrayBuffer:
		d.element = b
	}
}

func (d *Device) BufferFloat32(target render.BufferTarget, data []float32) {
	d.buffers[d.array] = slices.Clone(data)
}

func (d *Device) BufferUint32(target render.BufferTarget, data []uint32) {
	d.indices[d.element] = slices.Clone(data)
}

func (d *Device) CompileShader(stage render.ShaderStage, source string) (render.ShaderHandle, string, bool) {
	if log, ok := d.CompileFailures[stage]; ok {
		return 0, log, false
	}
	h := render.ShaderHandle(d.handle())
	d.shaders[h] = source
	return h, "", true
}

func (d *Device) DeleteShader(s render.ShaderHandle) {
	delete(d.shaders, s)
}

func (d *Device) LinkProgram(shaders []render.ShaderHandle) (render.ProgramHandle, string, bool) {
	if d.LinkFailure != "" {
		return 0, d.LinkFailure, false
	}
	var src strings.Builder
	for _, s := range shaders {
		src.WriteString(d.shaders[s])
		src.WriteByte('\n')
	}
	h := render.ProgramHandle(d.handle())
	d.programs[h] = &program{
		source:   src.String(),
		attribs:  make(map[string]int32),
		uniforms: make(map[string]int32),
	}
	return h, "", true
}

func (d *Device) DeleteProgram(p render.ProgramHandle) {
	delete(d.programs, p)
	if d.active == p {
		d.active = 0
	}
}

func (d *Device) UseProgram(p render.ProgramHandle) {
	d.UseProgramCalls++
	d.active = p
}

func (d *Device) AttribLocation(p render.ProgramHandle, name string) int32 {
	pr := d.programs[p]
	if pr == nil || !declares(pr.source, name) {
		return -1
	}
	if loc, ok := pr.attribs[name]; ok {
		return loc
	}
	loc := int32(len(pr.attribs))
	pr.attribs[name] = loc
	return loc
}

// UniformLocation hands out locations that are unique across programs so
// recorded values can be looked up without tracking the bound program.
func (d *Device) UniformLocation(p render.ProgramHandle, name string) int32 {
	pr := d.programs[p]
	if pr == nil || !declares(pr.source, name) {
		return -1
	}
	if loc, ok := pr.uniforms[name]; ok {
		return loc
	}
	loc := int32(d.handle())
	pr.uniforms[name] = loc
	return loc
}

// declares reports whether name appears in src as a whole identifier.
func declares(src, name string) bool {
	return regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\b`).MatchString(src)
}

func (d *Device) setUniform(loc int32, v any) {
	if d.active == 0 {
		panic("rendertest: uniform write with no active program")
	}
	d.uniformWrites++
	d.uniforms[loc] = v
}

func (d *Device) Uniform1f(loc int32, v float32)         { d.setUniform(loc, v) }
func (d *Device) Uniform4f(loc int32, v mgl32.Vec4)      { d.setUniform(loc, v) }
func (d *Device) UniformMatrix4(loc int32, m mgl32.Mat4) { d.setUniform(loc, m) }
func (d *Device) ClearColor(r, g, b, a float32)          { d.ClearRGBA = [4]float32{r, g, b, a} }
func (d *Device) Clear()                                 { d.Clears++ }
func (d *Device) Viewport(x, y, width, height int32)     { d.Viewports = append(d.Viewports, [4]int32{x, y, width, height}) }
func (d *Device) AttribPointer(index uint32)             { d.enabled[index] = d.array }
func (d *Device) DisableAttrib(index uint32)             { delete(d.enabled, index) }
func (d *Device) EnableAttrib(index uint32)              { d.enabled[index] = 0 }

func (d *Device) DrawElements(mode render.DrawMode, count int32) {
	d.Draws = append(d.Draws, DrawCall{
		Program: d.active,
		Mode:    mode,
		Count:   count,
		Index:   d.element,
		Attribs: maps.Clone(d.enabled),
	})
}

// Uniform returns the last value written to the named uniform of p.
func (d *Device) Uniform(p render.ProgramHandle, name string) (any, bool) {
	pr := d.programs[p]
	if pr == nil {
		return nil, false
	}
	loc, ok := pr.uniforms[name]
	if !ok {
		return nil, false
	}
	v, ok := d.uniforms[loc]
	return v, ok
}

// UniformWrites counts every uniform upload.
func (d *Device) UniformWrites() int { return d.uniformWrites }

// EnabledAttribs returns the attribute indices currently enabled.
func (d *Device) EnabledAttribs() []uint32 {
	return slices.Sorted(maps.Keys(d.enabled))
}

// LiveBuffers returns how many buffers exist.
func (d *Device) LiveBuffers() int { return len(d.buffers) }

// BufferExists reports whether b was created and not yet deleted.
func (d *Device) BufferExists(b render.BufferHandle) bool {
	_, ok := d.buffers[b]
	return ok
}

// Floats returns the data uploaded into array buffer b.
func (d *Device) Floats(b render.BufferHandle) []float32 { return d.buffers[b] }

// Indices returns the data uploaded into index buffer b.
func (d *Device) Indices(b render.BufferHandle) []uint32 { return d.indices[b] }

// LivePrograms returns how many programs exist.
func (d *Device) LivePrograms() int { return len(d.programs) }

// Active returns the program the device considers bound.
func (d *Device) Active() render.ProgramHandle { return d.active }

var _ render.Device = (*Device)(nil)
