package controls

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsApplyEffectSizeBias(t *testing.T) {
	c := Controls{FireHeight: 0.6, NoiseOctave: 2, EffectSize: 0.5}
	s := c.Settings()
	assert.InDelta(t, 0.6, s[0], 1e-6)
	assert.InDelta(t, 2, s[1], 1e-6)
	assert.InDelta(t, 0.45, s[2], 1e-6)
}

func TestColorsNormalized(t *testing.T) {
	c := Default()
	assert.Equal(t, mgl32.Vec4{230.0 / 255, 205.0 / 255, 205.0 / 255, 1}, c.PrimaryColor())
	assert.Equal(t, mgl32.Vec4{132.0 / 255, 144.0 / 255, 202.0 / 255, 1}, c.SecondaryColor())
	assert.Equal(t, mgl32.Vec4{0, 1, 0, 1}, RGB{0, 255, 0}.Vec4())
}

func TestReset(t *testing.T) {
	c := Controls{Tessellations: 1, FireHeight: 1.5, Shape: ShapeSquare}
	c.Apply(Reset)
	assert.Equal(t, Default(), c)
}

func TestApply(t *testing.T) {
	tests := []struct {
		name    string
		actions []Action
		check   func(t *testing.T, c Controls)
	}{
		{"tessellations up", []Action{TessellationsUp}, func(t *testing.T, c Controls) {
			assert.Equal(t, 6, c.Tessellations)
		}},
		{"tessellations capped", []Action{TessellationsUp, TessellationsUp, TessellationsUp, TessellationsUp}, func(t *testing.T, c Controls) {
			assert.Equal(t, MaxTessellations, c.Tessellations)
		}},
		{"fire height steps", []Action{FireHeightUp, FireHeightUp, FireHeightDown}, func(t *testing.T, c Controls) {
			assert.Equal(t, float32(0.7), c.FireHeight)
		}},
		{"fire height floor", []Action{FireHeightDown, FireHeightDown, FireHeightDown, FireHeightDown, FireHeightDown, FireHeightDown, FireHeightDown}, func(t *testing.T, c Controls) {
			assert.Equal(t, float32(MinFireHeight), c.FireHeight)
		}},
		{"octave floor", []Action{NoiseOctaveDown, NoiseOctaveDown}, func(t *testing.T, c Controls) {
			assert.Equal(t, float32(MinNoiseOctave), c.NoiseOctave)
		}},
		{"effect size capped", []Action{EffectSizeUp, EffectSizeUp, EffectSizeUp, EffectSizeUp}, func(t *testing.T, c Controls) {
			assert.Equal(t, float32(MaxEffectSize), c.EffectSize)
		}},
		{"shape", []Action{ShowCube}, func(t *testing.T, c Controls) {
			assert.Equal(t, ShapeCube, c.Shape)
		}},
		{"reset after changes", []Action{ShowSquare, FireHeightUp, Reset}, func(t *testing.T, c Controls) {
			assert.Equal(t, Default(), c)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			for _, a := range tt.actions {
				c.Apply(a)
			}
			tt.check(t, c)
		})
	}
}

func TestClamp(t *testing.T) {
	c := Controls{
		Tessellations:  12,
		FireHeight:     -1,
		NoiseOctave:    9,
		EffectSize:     2,
		ColorPrimary:   RGB{-5, 300, 10},
		ColorSecondary: RGB{1, 2, 3},
		Shape:          Shape(42),
	}
	c.Clamp()
	assert.Equal(t, Controls{
		Tessellations:  MaxTessellations,
		FireHeight:     MinFireHeight,
		NoiseOctave:    MaxNoiseOctave,
		EffectSize:     MaxEffectSize,
		ColorPrimary:   RGB{0, 255, 10},
		ColorSecondary: RGB{1, 2, 3},
		Shape:          ShapeIcosphere,
	}, c)
}

func TestShapeText(t *testing.T) {
	for s := ShapeIcosphere; s <= ShapeSquare; s++ {
		text, err := s.MarshalText()
		require.NoError(t, err)
		var back Shape
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, s, back)
	}
	var s Shape
	assert.Error(t, s.UnmarshalText([]byte("torus")))
	_, err := Shape(-1).MarshalText()
	assert.Error(t, err)
	assert.Equal(t, "Shape(7)", Shape(7).String())
}

func TestString(t *testing.T) {
	c := Default()
	assert.Equal(t, "icosphere tess 5 | fire 0.6 | octave 2 | size 0.5", c.String())
}
