package render

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Names the program resolves at link time. A name missing from the linked
// program disables that binding.
const (
	AttribPosition = "vs_Pos"
	AttribNormal   = "vs_Nor"
	AttribColor    = "vs_Col"

	UniformEye            = "u_Eye"
	UniformResolution     = "u_Res"
	UniformModel          = "u_Model"
	UniformModelInvTr     = "u_ModelInvTr"
	UniformViewProj       = "u_ViewProj"
	UniformColorPrimary   = "u_Color_Primary"
	UniformColorSecondary = "u_Color_Secondary"
	UniformTime           = "u_Time"
	UniformSetting1       = "u_Setting_1"
	UniformSetting2       = "u_Setting_2"
	UniformSetting3       = "u_Setting_3"
)

// Shader is one compiled unit, ready to be linked into a Program.
type Shader struct {
	ctx    *Context
	stage  ShaderStage
	handle ShaderHandle
}

// NewShader compiles source for stage. A compiler failure is returned as
// a *CompileError.
func NewShader(ctx *Context, stage ShaderStage, source string) (*Shader, error) {
	h, log, ok := ctx.Device().CompileShader(stage, source)
	if !ok {
		return nil, &CompileError{Stage: stage, Log: log}
	}
	return &Shader{ctx: ctx, stage: stage, handle: h}, nil
}

// Stage returns the pipeline stage of the unit.
func (s *Shader) Stage() ShaderStage { return s.stage }

// Release deletes the unit. Programs already linked from it stay valid.
func (s *Shader) Release() {
	if s.handle != 0 {
		s.ctx.Device().DeleteShader(s.handle)
		s.handle = 0
	}
}

// AttribSlot is a vertex attribute index that may be absent from the
// program.
type AttribSlot struct {
	index uint32
	ok    bool
}

func attribSlot(loc int32) AttribSlot {
	if loc < 0 {
		return AttribSlot{}
	}
	return AttribSlot{index: uint32(loc), ok: true}
}

// Index returns the attribute index and whether the program declares it.
func (s AttribSlot) Index() (uint32, bool) { return s.index, s.ok }

// UniformSlot is a uniform location that may be absent from the program.
type UniformSlot struct {
	loc int32
	ok  bool
}

func uniformSlot(loc int32) UniformSlot {
	if loc < 0 {
		return UniformSlot{}
	}
	return UniformSlot{loc: loc, ok: true}
}

// Location returns the uniform location and whether the program declares it.
func (s UniformSlot) Location() (int32, bool) { return s.loc, s.ok }

// Program is a linked shader program with every attribute and uniform slot
// resolved once at construction.
type Program struct {
	ctx    *Context
	handle ProgramHandle

	attrPos AttribSlot
	attrNor AttribSlot
	attrCol AttribSlot

	unifRes            UniformSlot
	unifEye            UniformSlot
	unifModel          UniformSlot
	unifModelInvTr     UniformSlot
	unifViewProj       UniformSlot
	unifColorPrimary   UniformSlot
	unifColorSecondary UniformSlot
	unifTime           UniformSlot
	unifSet1           UniformSlot
	unifSet2           UniformSlot
	unifSet3           UniformSlot
}

// NewProgram links shaders into a program. It needs at least one vertex and
// one fragment unit. A linker failure is returned as a *LinkError.
func NewProgram(ctx *Context, shaders ...*Shader) (*Program, error) {
	var vert, frag bool
	handles := make([]ShaderHandle, 0, len(shaders))
	for _, s := range shaders {
		switch s.stage {
		case VertexStage:
			vert = true
		case FragmentStage:
			frag = true
		}
		handles = append(handles, s.handle)
	}
	if !vert || !frag {
		return nil, ErrMissingStage
	}

	dev := ctx.Device()
	h, log, ok := dev.LinkProgram(handles)
	if !ok {
		return nil, &LinkError{Log: log}
	}

	attr := func(name string) AttribSlot { return attribSlot(dev.AttribLocation(h, name)) }
	unif := func(name string) UniformSlot { return uniformSlot(dev.UniformLocation(h, name)) }

	p := &Program{
		ctx:    ctx,
		handle: h,

		attrPos: attr(AttribPosition),
		attrNor: attr(AttribNormal),
		attrCol: attr(AttribColor),

		unifEye:            unif(UniformEye),
		unifRes:            unif(UniformResolution),
		unifModel:          unif(UniformModel),
		unifModelInvTr:     unif(UniformModelInvTr),
		unifViewProj:       unif(UniformViewProj),
		unifColorPrimary:   unif(UniformColorPrimary),
		unifColorSecondary: unif(UniformColorSecondary),
		unifTime:           unif(UniformTime),
		unifSet1:           unif(UniformSetting1),
		unifSet2:           unif(UniformSetting2),
		unifSet3:           unif(UniformSetting3),
	}
	Logger().Info("linked program", "handle", h,
		"position", p.attrPos.ok, "normal", p.attrNor.ok, "color", p.attrCol.ok)
	return p, nil
}

// BuildProgram compiles a vertex and a fragment source and links them. The
// intermediate units are released whether or not linking succeeds.
func BuildProgram(ctx *Context, vertSrc, fragSrc string) (*Program, error) {
	vert, err := NewShader(ctx, VertexStage, vertSrc)
	if err != nil {
		return nil, err
	}
	defer vert.Release()
	frag, err := NewShader(ctx, FragmentStage, fragSrc)
	if err != nil {
		return nil, err
	}
	defer frag.Release()

	p, err := NewProgram(ctx, vert, frag)
	if err != nil {
		return nil, fmt.Errorf("build program: %w", err)
	}
	return p, nil
}

// Handle returns the device program.
func (p *Program) Handle() ProgramHandle { return p.handle }

// Attrib returns the slot resolved for one of the Attrib* names.
func (p *Program) Attrib(name string) AttribSlot {
	switch name {
	case AttribPosition:
		return p.attrPos
	case AttribNormal:
		return p.attrNor
	case AttribColor:
		return p.attrCol
	}
	return AttribSlot{}
}

// Activate makes p the bound program.
func (p *Program) Activate() {
	p.ctx.Use(p.handle)
}

// Release deletes the program.
func (p *Program) Release() {
	if p.handle != 0 {
		p.ctx.deleteProgram(p.handle)
		p.handle = 0
	}
}

func (p *Program) set1f(s UniformSlot, v float32) {
	if s.ok {
		p.ctx.Device().Uniform1f(s.loc, v)
	}
}

func (p *Program) set4f(s UniformSlot, v mgl32.Vec4) {
	if s.ok {
		p.ctx.Device().Uniform4f(s.loc, v)
	}
}

func (p *Program) setMat4(s UniformSlot, m mgl32.Mat4) {
	if s.ok {
		p.ctx.Device().UniformMatrix4(s.loc, m)
	}
}

// SetResolution uploads the aspect ratio width/height. Nothing is uploaded
// for a zero-height surface.
func (p *Program) SetResolution(width, height int) {
	p.Activate()
	if height <= 0 {
		Logger().Debug("skipping resolution for empty surface", "width", width, "height", height)
		return
	}
	p.set1f(p.unifRes, float32(width)/float32(height))
}

func (p *Program) SetEye(eye mgl32.Vec4) {
	p.Activate()
	p.set4f(p.unifEye, eye)
}

// SetModelMatrix uploads model and, when the program declares it, the
// inverse transpose used to transform normals. A singular model leaves the
// inverse transpose at its previous value.
func (p *Program) SetModelMatrix(model mgl32.Mat4) {
	p.Activate()
	p.setMat4(p.unifModel, model)

	if !p.unifModelInvTr.ok {
		return
	}
	invTr, ok := ModelInverseTranspose(model)
	if !ok {
		Logger().Debug("model matrix is singular, keeping previous inverse transpose")
		return
	}
	p.setMat4(p.unifModelInvTr, invTr)
}

func (p *Program) SetViewProjMatrix(vp mgl32.Mat4) {
	p.Activate()
	p.setMat4(p.unifViewProj, vp)
}

func (p *Program) SetColorPrimary(c mgl32.Vec4) {
	p.Activate()
	p.set4f(p.unifColorPrimary, c)
}

func (p *Program) SetColorSecondary(c mgl32.Vec4) {
	p.Activate()
	p.set4f(p.unifColorSecondary, c)
}

// SetSettings uploads the three effect settings positionally.
func (p *Program) SetSettings(s0, s1, s2 float32) {
	p.Activate()
	p.set1f(p.unifSet1, s0)
	p.set1f(p.unifSet2, s1)
	p.set1f(p.unifSet3, s2)
}

func (p *Program) SetTime(t float32) {
	p.Activate()
	p.set1f(p.unifTime, t)
}

// Draw issues one indexed draw call for d. Attributes are enabled only when
// both the program and d provide them, and every attribute enabled here is
// disabled again before Draw returns.
func (p *Program) Draw(d Drawable) error {
	p.Activate()

	if err := d.BindIndex(); err != nil {
		return err
	}

	dev := p.ctx.Device()
	var enabled [3]uint32
	n := 0
	bind := func(s AttribSlot, has func() bool) {
		if !s.ok || !has() {
			return
		}
		dev.EnableAttrib(s.index)
		dev.AttribPointer(s.index)
		enabled[n] = s.index
		n++
	}
	bind(p.attrPos, d.BindPosition)
	bind(p.attrNor, d.BindNormal)
	bind(p.attrCol, d.BindColor)

	dev.DrawElements(d.DrawMode(), int32(d.ElementCount()))

	for _, idx := range enabled[:n] {
		dev.DisableAttrib(idx)
	}
	return nil
}

// ModelInverseTranspose returns the inverse of the transpose of m, the
// matrix that carries normals through m. It reports false when m is
// singular.
func ModelInverseTranspose(m mgl32.Mat4) (mgl32.Mat4, bool) {
	t := m.Transpose()
	if t.Det() == 0 {
		return mgl32.Mat4{}, false
	}
	return t.Inv(), true
}
