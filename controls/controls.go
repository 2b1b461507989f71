// Package controls holds the user-adjustable parameters of the fireball and
// converts them into the values the renderer forwards to the shader.
package controls

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// EffectSizeBias is subtracted from the effect size before it reaches the
// shader.
const EffectSizeBias = 0.05

// Parameter ranges.
const (
	MinTessellations = 0
	MaxTessellations = 8
	MinFireHeight    = 0.0
	MaxFireHeight    = 1.6
	MinNoiseOctave   = 1
	MaxNoiseOctave   = 5
	MinEffectSize    = 0.0
	MaxEffectSize    = 0.8
)

// RGB is a color with 8-bit channels.
type RGB [3]int

// Vec4 returns the color normalized to [0, 1] with alpha 1.
func (c RGB) Vec4() mgl32.Vec4 {
	return mgl32.Vec4{float32(c[0]) / 255, float32(c[1]) / 255, float32(c[2]) / 255, 1}
}

func (c RGB) clamp() RGB {
	for i := range c {
		c[i] = min(max(c[i], 0), 255)
	}
	return c
}

// Controls is the state of the control panel.
type Controls struct {
	Tessellations  int     `toml:"tessellations"`
	FireHeight     float32 `toml:"fire_height"`
	NoiseOctave    float32 `toml:"noise_octave"`
	EffectSize     float32 `toml:"effect_size"`
	ColorPrimary   RGB     `toml:"color_primary"`
	ColorSecondary RGB     `toml:"color_secondary"`
	Shape          Shape   `toml:"shape"`
}

// Default returns the values Reset restores.
func Default() Controls {
	return Controls{
		Tessellations:  5,
		FireHeight:     0.6,
		NoiseOctave:    2,
		EffectSize:     0.5,
		ColorPrimary:   RGB{230, 205, 205},
		ColorSecondary: RGB{132, 144, 202},
		Shape:          ShapeIcosphere,
	}
}

// Reset restores the defaults.
func (c *Controls) Reset() {
	*c = Default()
}

// Clamp forces every value into its range.
func (c *Controls) Clamp() {
	c.Tessellations = min(max(c.Tessellations, MinTessellations), MaxTessellations)
	c.FireHeight = mgl32.Clamp(c.FireHeight, MinFireHeight, MaxFireHeight)
	c.NoiseOctave = mgl32.Clamp(c.NoiseOctave, MinNoiseOctave, MaxNoiseOctave)
	c.EffectSize = mgl32.Clamp(c.EffectSize, MinEffectSize, MaxEffectSize)
	c.ColorPrimary = c.ColorPrimary.clamp()
	c.ColorSecondary = c.ColorSecondary.clamp()
	if !c.Shape.valid() {
		c.Shape = ShapeIcosphere
	}
}

// Settings returns the three shader settings in uniform order: fire height,
// noise octave and the biased effect size.
func (c *Controls) Settings() mgl32.Vec3 {
	return mgl32.Vec3{c.FireHeight, c.NoiseOctave, c.EffectSize - EffectSizeBias}
}

func (c *Controls) PrimaryColor() mgl32.Vec4   { return c.ColorPrimary.Vec4() }
func (c *Controls) SecondaryColor() mgl32.Vec4 { return c.ColorSecondary.Vec4() }

// String summarizes the controls for the window title.
func (c *Controls) String() string {
	return fmt.Sprintf("%s tess %d | fire %.1f | octave %.0f | size %.1f",
		c.Shape, c.Tessellations, c.FireHeight, c.NoiseOctave, c.EffectSize)
}

// Action is one keyboard adjustment of the controls.
type Action int

const (
	TessellationsUp Action = iota
	TessellationsDown
	FireHeightUp
	FireHeightDown
	NoiseOctaveUp
	NoiseOctaveDown
	EffectSizeUp
	EffectSizeDown
	ShowIcosphere
	ShowCubeFlat
	ShowCube
	ShowSquare
	Reset
)

// step snaps v+delta to one decimal so repeated steps do not drift.
func step(v, delta float32) float32 {
	return float32(math.Round(float64(v+delta)*10) / 10)
}

// Apply performs a and clamps the result.
func (c *Controls) Apply(a Action) {
	switch a {
	case TessellationsUp:
		c.Tessellations++
	case TessellationsDown:
		c.Tessellations--
	case FireHeightUp:
		c.FireHeight = step(c.FireHeight, 0.1)
	case FireHeightDown:
		c.FireHeight = step(c.FireHeight, -0.1)
	case NoiseOctaveUp:
		c.NoiseOctave = step(c.NoiseOctave, 1)
	case NoiseOctaveDown:
		c.NoiseOctave = step(c.NoiseOctave, -1)
	case EffectSizeUp:
		c.EffectSize = step(c.EffectSize, 0.1)
	case EffectSizeDown:
		c.EffectSize = step(c.EffectSize, -0.1)
	case ShowIcosphere:
		c.Shape = ShapeIcosphere
	case ShowCubeFlat:
		c.Shape = ShapeCubeFlat
	case ShowCube:
		c.Shape = ShapeCube
	case ShowSquare:
		c.Shape = ShapeSquare
	case Reset:
		c.Reset()
	}
	c.Clamp()
}
