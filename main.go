// Command holy-fireball renders an animated fireball with OpenGL 4.1.
//
// Keys: T/F/O/E raise tessellation, fire height, noise octaves and effect
// size (hold Shift to lower), 1-4 pick the shape, R resets, V toggles VSync,
// Escape quits. Drag with the left button to orbit and scroll to zoom.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/toxichemicals/GO/holy-fireball/config"
	"github.com/toxichemicals/GO/holy-fireball/geometry"
	"github.com/toxichemicals/GO/holy-fireball/render"
	"github.com/toxichemicals/GO/holy-fireball/scene"
)

func main() {
	configPath := flag.String("config", "", "TOML configuration file")
	shaderDir := flag.String("shaders", "", "directory with fireball-vert.glsl and fireball-frag.glsl")
	watch := flag.Bool("watch", false, "reload shaders when files in the shader directory change")
	export := flag.String("export", "", "write the scene geometry to this .glb file and exit")
	verbose := flag.Bool("v", false, "log debug output")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	render.SetLogger(logger)

	cfg, err := loadConfig(*configPath, *shaderDir, *watch)
	if err != nil {
		logger.Error("configuration failed", "error", err)
		os.Exit(1)
	}

	if *export != "" {
		if err := geometry.WriteGLB(*export, scene.Generate(cfg.Controls.Tessellations)...); err != nil {
			logger.Error("export failed", "error", err)
			os.Exit(1)
		}
		logger.Info("exported scene", "path", *export)
		return
	}

	if err := run(cfg); err != nil {
		logger.Error("application failed", "error", err)
		os.Exit(1)
	}
}

// loadConfig reads the configuration file, if any, and applies the flags
// on top of it.
func loadConfig(path, shaderDir string, watch bool) (config.Config, error) {
	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return config.Config{}, err
		}
	}
	if shaderDir != "" {
		cfg.Shaders.Dir = shaderDir
	}
	if watch {
		cfg.Shaders.Watch = true
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("flags: %w", err)
	}
	return cfg, nil
}

func run(cfg config.Config) error {
	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer a.shutdown()

	slog.Info("engine initialized, starting main loop")
	for !a.window.ShouldClose() {
		a.window.PollEvents()
		if err := a.frame(); err != nil {
			return err
		}
		a.window.SwapBuffers()
		if fps, ok := a.window.FrameDone(); ok {
			a.showStatus(fps)
		}
	}
	slog.Info("engine shutting down")
	return nil
}
