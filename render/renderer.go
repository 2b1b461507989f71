package render

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera is what the renderer reads from the camera each frame.
type Camera interface {
	ProjectionMatrix() mgl32.Mat4
	ViewMatrix() mgl32.Mat4
	Position() mgl32.Vec3
}

// Renderer draws one frame: it pushes the shared uniforms into a program
// once and then draws each drawable with it.
type Renderer struct {
	ctx           *Context
	width, height int
}

func NewRenderer(ctx *Context) *Renderer {
	return &Renderer{ctx: ctx}
}

func (r *Renderer) SetClearColor(red, green, blue, alpha float32) {
	r.ctx.Device().ClearColor(red, green, blue, alpha)
}

// SetSize records the output size and resizes the viewport to match.
func (r *Renderer) SetSize(width, height int) {
	r.width, r.height = width, height
	r.ctx.Device().Viewport(0, 0, int32(width), int32(height))
}

func (r *Renderer) Size() (width, height int) {
	return r.width, r.height
}

// Clear clears the color and depth buffers.
func (r *Renderer) Clear() {
	r.ctx.Device().Clear()
}

// Render pushes the frame uniforms into prog and draws every drawable in
// order. The model matrix is always identity; placement is baked into each
// drawable's vertices. The first draw failure stops the frame.
func (r *Renderer) Render(cam Camera, prog *Program, drawables []Drawable,
	settings mgl32.Vec3, color1, color2 mgl32.Vec4, time float32) error {

	model := mgl32.Ident4()
	viewProj := cam.ProjectionMatrix().Mul4(cam.ViewMatrix())
	eye := cam.Position().Vec4(1)

	prog.SetResolution(r.width, r.height)
	prog.SetEye(eye)
	prog.SetModelMatrix(model)
	prog.SetViewProjMatrix(viewProj)
	prog.SetColorPrimary(color1)
	prog.SetColorSecondary(color2)
	prog.SetSettings(settings[0], settings[1], settings[2])
	prog.SetTime(time)

	for i, d := range drawables {
		if err := prog.Draw(d); err != nil {
			return fmt.Errorf("draw %d: %w", i, err)
		}
	}
	return nil
}
