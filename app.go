package main

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/toxichemicals/GO/holy-fireball/camera"
	"github.com/toxichemicals/GO/holy-fireball/config"
	"github.com/toxichemicals/GO/holy-fireball/controls"
	"github.com/toxichemicals/GO/holy-fireball/core"
	"github.com/toxichemicals/GO/holy-fireball/render"
	"github.com/toxichemicals/GO/holy-fireball/scene"
	"github.com/toxichemicals/GO/holy-fireball/shaders"
)

const (
	orbitDegreesPerPixel = 0.3
	zoomPerScrollStep    = 0.9
)

var keyActions = map[glfw.Key][2]controls.Action{
	glfw.KeyT: {controls.TessellationsUp, controls.TessellationsDown},
	glfw.KeyF: {controls.FireHeightUp, controls.FireHeightDown},
	glfw.KeyO: {controls.NoiseOctaveUp, controls.NoiseOctaveDown},
	glfw.KeyE: {controls.EffectSizeUp, controls.EffectSizeDown},
	glfw.Key1: {controls.ShowIcosphere, controls.ShowIcosphere},
	glfw.Key2: {controls.ShowCubeFlat, controls.ShowCubeFlat},
	glfw.Key3: {controls.ShowCube, controls.ShowCube},
	glfw.Key4: {controls.ShowSquare, controls.ShowSquare},
	glfw.KeyR: {controls.Reset, controls.Reset},
}

// app ties the window, the GL device and the scene together.
type app struct {
	window   *core.Window
	device   *core.Device
	ctx      *render.Context
	renderer *render.Renderer
	camera   *camera.Camera
	scene    *scene.Scene
	program  *render.Program

	shaderDir string
	watcher   *shaders.Watcher

	controls controls.Controls
	time     float32
	fps      float64
}

func newApp(cfg config.Config) (_ *app, err error) {
	a := &app{controls: cfg.Controls, shaderDir: cfg.Shaders.Dir}
	// Undo partial initialization.
	defer func() {
		if err != nil {
			a.shutdown()
		}
	}()

	a.window, err = core.NewWindow(core.WindowConfig{
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		Title:  cfg.Window.Title,
		VSync:  cfg.Window.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("window initialization failed: %w", err)
	}

	a.device, err = core.NewDevice()
	if err != nil {
		return nil, fmt.Errorf("OpenGL initialization failed: %w", err)
	}
	slog.Info("OpenGL ready", "version", a.device.Version())

	a.ctx = render.NewContext(a.device)
	a.renderer = render.NewRenderer(a.ctx)
	a.renderer.SetClearColor(0.2, 0.2, 0.2, 1)
	a.camera = camera.New(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, 0})

	src, err := shaders.Load(a.shaderDir)
	if err != nil {
		return nil, fmt.Errorf("shader setup failed: %w", err)
	}
	a.program, err = shaders.Build(a.ctx, src)
	if err != nil {
		return nil, fmt.Errorf("shader setup failed: %w", err)
	}

	a.scene, err = scene.New(a.ctx, a.controls.Tessellations)
	if err != nil {
		return nil, err
	}

	if cfg.Shaders.Watch {
		a.watcher, err = shaders.Watch(a.shaderDir)
		if err != nil {
			return nil, err
		}
		slog.Info("watching shaders", "dir", a.shaderDir)
	}

	a.window.OnResize = a.resize
	a.window.OnKey = a.key
	a.window.OnDrag = func(dx, dy float64) {
		a.camera.Orbit(float32(-dx*orbitDegreesPerPixel), float32(dy*orbitDegreesPerPixel))
	}
	a.window.OnScroll = func(dy float64) {
		a.camera.Zoom(float32(math.Pow(zoomPerScrollStep, dy)))
	}
	a.resize(a.window.FramebufferSize())
	a.showStatus(0)
	return a, nil
}

func (a *app) resize(width, height int) {
	a.renderer.SetSize(width, height)
	if height > 0 {
		a.camera.SetAspectRatio(float32(width) / float32(height))
		a.camera.UpdateProjectionMatrix()
	}
}

func (a *app) key(key glfw.Key, mods glfw.ModifierKey) {
	if key == glfw.KeyV {
		a.window.SetVSync(!a.window.VSync())
		slog.Info("vsync toggled", "on", a.window.VSync())
		return
	}
	actions, ok := keyActions[key]
	if !ok {
		return
	}
	action := actions[0]
	if mods&glfw.ModShift != 0 {
		action = actions[1]
	}
	a.controls.Apply(action)
	a.showStatus(a.fps)
}

func (a *app) showStatus(fps float64) {
	a.fps = fps
	a.window.SetStatus(fmt.Sprintf("%.0f FPS | %s", fps, a.controls.String()))
}

// frame advances the clock and draws the selected shape and the skybox.
func (a *app) frame() error {
	a.time++
	a.camera.Update()
	a.renderer.Clear()

	if err := a.scene.SetTessellations(a.controls.Tessellations); err != nil {
		slog.Error("tessellation change failed", "error", err)
		a.controls.Tessellations = a.scene.Tessellations()
	}
	a.reloadShaders()

	return a.renderer.Render(a.camera, a.program, a.scene.Drawables(a.controls.Shape),
		a.controls.Settings(), a.controls.PrimaryColor(), a.controls.SecondaryColor(), a.time)
}

// reloadShaders swaps in a rebuilt program after the shader files changed.
// A broken edit keeps the current program.
func (a *app) reloadShaders() {
	if a.watcher == nil || !a.watcher.Changed() {
		return
	}
	src, err := shaders.Load(a.shaderDir)
	if err != nil {
		slog.Error("shader reload failed", "error", err)
		return
	}
	prog, err := shaders.Build(a.ctx, src)
	if err != nil {
		slog.Error("shader reload failed, keeping previous program", "error", err)
		return
	}
	a.program.Release()
	a.program = prog
	slog.Info("shaders reloaded")
}

func (a *app) shutdown() {
	if a.watcher != nil {
		a.watcher.Close()
	}
	if a.scene != nil {
		a.scene.Release()
	}
	if a.program != nil {
		a.program.Release()
	}
	if a.device != nil {
		a.device.Release()
	}
	if a.window != nil {
		a.window.Shutdown()
	}
}
