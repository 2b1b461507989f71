// Package config loads the TOML configuration of the fireball viewer.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/toxichemicals/GO/holy-fireball/controls"
)

type Window struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
	VSync  bool   `toml:"vsync"`
}

type Shaders struct {
	// Dir holds fireball-vert.glsl and fireball-frag.glsl. Empty means the
	// built-in units.
	Dir   string `toml:"dir"`
	Watch bool   `toml:"watch"`
}

// Config is the whole configuration file. Keys left out keep their
// defaults.
type Config struct {
	Window   Window            `toml:"window"`
	Shaders  Shaders           `toml:"shaders"`
	Controls controls.Controls `toml:"controls"`
}

var ErrInvalid = errors.New("invalid config")

func Default() Config {
	return Config{
		Window: Window{
			Width:  1280,
			Height: 720,
			Title:  "Holy Fireball",
			VSync:  true,
		},
		Controls: controls.Default(),
	}
}

// Load reads path over the defaults. Unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	defer f.Close()

	dec := toml.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			return Config{}, fmt.Errorf("load config %s:\n%s", path, derr.String())
		}
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects an unusable window and clamps the controls into range.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	if c.Shaders.Watch && c.Shaders.Dir == "" {
		return fmt.Errorf("%w: shaders.watch needs shaders.dir", ErrInvalid)
	}
	c.Controls.Clamp()
	return nil
}
