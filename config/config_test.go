package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toxichemicals/GO/holy-fireball/controls"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fireball.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, controls.Default(), cfg.Controls)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[window]
width = 640
vsync = false

[shaders]
dir = "shaders"
watch = true

[controls]
tessellations = 3
fire_height = 1.2
color_primary = [255, 0, 0]
shape = "cube"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 640, cfg.Window.Width)
	assert.Equal(t, 720, cfg.Window.Height)
	assert.Equal(t, "Holy Fireball", cfg.Window.Title)
	assert.False(t, cfg.Window.VSync)
	assert.Equal(t, Shaders{Dir: "shaders", Watch: true}, cfg.Shaders)

	assert.Equal(t, 3, cfg.Controls.Tessellations)
	assert.InDelta(t, 1.2, cfg.Controls.FireHeight, 1e-6)
	assert.Equal(t, controls.RGB{255, 0, 0}, cfg.Controls.ColorPrimary)
	assert.Equal(t, controls.ShapeCube, cfg.Controls.Shape)
	assert.Equal(t, controls.Default().ColorSecondary, cfg.Controls.ColorSecondary)
}

func TestLoadClampsControls(t *testing.T) {
	path := writeConfig(t, `
[controls]
tessellations = 42
effect_size = -1.0
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, controls.MaxTessellations, cfg.Controls.Tessellations)
	assert.Zero(t, cfg.Controls.EffectSize)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown key", "[window]\nfullscreen = true\n"},
		{"bad syntax", "[window\n"},
		{"bad shape", "[controls]\nshape = \"torus\"\n"},
		{"zero size", "[window]\nheight = 0\n"},
		{"watch without dir", "[shaders]\nwatch = true\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoadInvalidIsSentinel(t *testing.T) {
	_, err := Load(writeConfig(t, "[window]\nwidth = -1\n"))
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
