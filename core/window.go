// Package core owns the platform side of the renderer: the GLFW window with
// its OpenGL context, and the OpenGL implementation of render.Device.
package core

import (
	"fmt"
	"runtime"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// WindowConfig describes the window to open.
type WindowConfig struct {
	Width, Height int
	Title         string
	VSync         bool
}

// Window wraps a GLFW window and its OpenGL 4.1 core context.
type Window struct {
	window *glfw.Window
	title  string
	vsync  bool

	// OnResize is called with the new framebuffer size.
	OnResize func(width, height int)
	// OnKey is called for key presses and repeats.
	OnKey func(key glfw.Key, mods glfw.ModifierKey)
	// OnDrag is called with the cursor delta while the left button is held.
	OnDrag func(dx, dy float64)
	// OnScroll is called with the vertical scroll offset.
	OnScroll func(dy float64)

	dragging     bool
	lastX, lastY float64

	fpsFrames         int
	fpsLastUpdateTime time.Time
}

// NewWindow initializes GLFW, opens the window and makes its context
// current. The calling goroutine stays locked to its OS thread until
// Shutdown.
func NewWindow(cfg WindowConfig) (*Window, error) {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		runtime.UnlockOSThread()
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		runtime.UnlockOSThread()
		return nil, fmt.Errorf("failed to create GLFW window: %w", err)
	}
	window.MakeContextCurrent()

	w := &Window{
		window:            window,
		title:             cfg.Title,
		fpsLastUpdateTime: time.Now(),
	}
	w.SetVSync(cfg.VSync)

	window.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		if w.OnResize != nil {
			w.OnResize(width, height)
		}
	})
	window.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
		if action == glfw.Release {
			return
		}
		if key == glfw.KeyEscape {
			window.SetShouldClose(true)
			return
		}
		if w.OnKey != nil {
			w.OnKey(key, mods)
		}
	})
	window.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		if button != glfw.MouseButtonLeft {
			return
		}
		w.dragging = action == glfw.Press
		w.lastX, w.lastY = window.GetCursorPos()
	})
	window.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		if !w.dragging {
			return
		}
		dx, dy := x-w.lastX, y-w.lastY
		w.lastX, w.lastY = x, y
		if w.OnDrag != nil {
			w.OnDrag(dx, dy)
		}
	})
	window.SetScrollCallback(func(_ *glfw.Window, _, dy float64) {
		if w.OnScroll != nil {
			w.OnScroll(dy)
		}
	})
	return w, nil
}

// FramebufferSize returns the drawable size in pixels.
func (w *Window) FramebufferSize() (int, int) {
	return w.window.GetFramebufferSize()
}

// SetVSync caps (true) or uncaps (false) the swap rate.
func (w *Window) SetVSync(on bool) {
	w.vsync = on
	if on {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
}

// VSync reports whether the swap rate is capped.
func (w *Window) VSync() bool { return w.vsync }

func (w *Window) ShouldClose() bool { return w.window.ShouldClose() }

func (w *Window) PollEvents() { glfw.PollEvents() }

func (w *Window) SwapBuffers() { w.window.SwapBuffers() }

// SetStatus shows status after the window title.
func (w *Window) SetStatus(status string) {
	w.window.SetTitle(fmt.Sprintf("%s | %s", w.title, status))
}

// FrameDone counts a rendered frame and returns the frames per second once
// a second has passed since the last report.
func (w *Window) FrameDone() (fps float64, ok bool) {
	w.fpsFrames++
	elapsed := time.Since(w.fpsLastUpdateTime)
	if elapsed < time.Second {
		return 0, false
	}
	fps = float64(w.fpsFrames) / elapsed.Seconds()
	w.fpsFrames = 0
	w.fpsLastUpdateTime = time.Now()
	return fps, true
}

// Shutdown destroys the window, terminates GLFW and unlocks the OS thread.
func (w *Window) Shutdown() {
	w.window.Destroy()
	glfw.Terminate()
	runtime.UnlockOSThread()
}
