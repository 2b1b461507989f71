package shaders

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toxichemicals/GO/holy-fireball/render"
	"github.com/toxichemicals/GO/holy-fireball/render/rendertest"
)

func TestDefaultDeclaresRendererNames(t *testing.T) {
	src := Default()
	for _, name := range []string{
		render.AttribPosition, render.AttribNormal,
		render.UniformModel, render.UniformModelInvTr, render.UniformViewProj,
		render.UniformTime, render.UniformSetting1, render.UniformSetting2, render.UniformSetting3,
	} {
		assert.Contains(t, src.Vertex, name)
	}
	for _, name := range []string{
		render.UniformEye, render.UniformColorPrimary, render.UniformColorSecondary,
	} {
		assert.Contains(t, src.Fragment, name)
	}
	assert.Contains(t, src.Vertex, "#version 410 core")
	assert.Contains(t, src.Fragment, "#version 410 core")
}

func TestBuildDefault(t *testing.T) {
	dev := rendertest.New()
	prog, err := Build(render.NewContext(dev), Default())
	require.NoError(t, err)

	_, ok := prog.Attrib(render.AttribPosition).Index()
	assert.True(t, ok)
	_, ok = prog.Attrib(render.AttribNormal).Index()
	assert.True(t, ok)
	_, ok = prog.Attrib(render.AttribColor).Index()
	assert.False(t, ok)
}

func TestLoadEmptyDir(t *testing.T) {
	src, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), src)
}

func TestLoadFallsBackPerUnit(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FragmentFile), []byte("custom"), 0o644))

	src, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, Default().Vertex, src.Vertex)
	assert.Equal(t, "custom", src.Fragment)
}

func TestLoadUnreadable(t *testing.T) {
	dir := t.TempDir()
	// A directory in place of the file cannot be read.
	require.NoError(t, os.Mkdir(filepath.Join(dir, VertexFile), 0o755))

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestWatcher(t *testing.T) {
	dir := t.TempDir()
	w, err := Watch(dir)
	require.NoError(t, err)
	defer w.Close()

	assert.False(t, w.Changed())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, VertexFile), []byte("void main() {}"), 0o644))

	require.Eventually(t, w.Changed, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}

func TestWatchMissingDir(t *testing.T) {
	_, err := Watch(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
