package arbor

import (
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/pelletier/go-toml/v2"
)

// RunConfig configures the window and frame driver used by Run.
type RunConfig struct {
	Title      string
	Width      int
	Height     int
	TPS        int   // ticks per second; Update receives dt = 1/TPS
	ClearColor Color // background fill before each frame
	ShowFPS    bool  // attach an FPS overlay node
	Debug      bool  // enable Scene debug mode
	Keys       KeyBindings
}

// DefaultRunConfig returns a 1280x720 window at 60 TPS with no key bindings.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		Title:      "arbor",
		Width:      1280,
		Height:     720,
		TPS:        60,
		ClearColor: Color{0.118, 0.118, 0.157, 1},
		Keys:       KeyBindings{},
	}
}

// fileConfig is the TOML layout of a RunConfig:
//
//	debug = false
//
//	[window]
//	title = "Tank"
//	width = 1280
//	height = 720
//	tps = 60
//	show_fps = true
//	clear_color = [0.1, 0.1, 0.15, 1.0]
//
//	[keys]
//	forward = ["W", "ArrowUp"]
type fileConfig struct {
	Debug  bool `toml:"debug"`
	Window struct {
		Title      string    `toml:"title"`
		Width      int       `toml:"width"`
		Height     int       `toml:"height"`
		TPS        int       `toml:"tps"`
		ShowFPS    bool      `toml:"show_fps"`
		ClearColor []float64 `toml:"clear_color"`
	} `toml:"window"`
	Keys map[string][]string `toml:"keys"`
}

// LoadRunConfig parses a TOML run configuration. Fields that are absent keep
// the values from DefaultRunConfig; key bindings in the file are added to
// (and override) the defaults.
func LoadRunConfig(data []byte) (RunConfig, error) {
	cfg := DefaultRunConfig()

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return cfg, fmt.Errorf("parse run config: %w", err)
	}

	cfg.Debug = fc.Debug
	cfg.ShowFPS = fc.Window.ShowFPS
	if fc.Window.Title != "" {
		cfg.Title = fc.Window.Title
	}
	if fc.Window.Width < 0 || fc.Window.Height < 0 || fc.Window.TPS < 0 {
		return cfg, fmt.Errorf("parse run config: negative window size or tps")
	}
	if fc.Window.Width > 0 {
		cfg.Width = fc.Window.Width
	}
	if fc.Window.Height > 0 {
		cfg.Height = fc.Window.Height
	}
	if fc.Window.TPS > 0 {
		cfg.TPS = fc.Window.TPS
	}
	if fc.Window.ClearColor != nil {
		c, err := parseColor(fc.Window.ClearColor)
		if err != nil {
			return cfg, fmt.Errorf("parse run config: clear_color: %w", err)
		}
		cfg.ClearColor = c
	}

	for name, keyNames := range fc.Keys {
		keys := make([]ebiten.Key, 0, len(keyNames))
		for _, kn := range keyNames {
			k, err := ParseKey(kn)
			if err != nil {
				return cfg, fmt.Errorf("parse run config: keys.%s: %w", name, err)
			}
			keys = append(keys, k)
		}
		cfg.Keys[Key(name)] = keys
	}
	return cfg, nil
}

// LoadRunConfigFile reads and parses a TOML run configuration file.
func LoadRunConfigFile(path string) (RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultRunConfig(), fmt.Errorf("read run config: %w", err)
	}
	return LoadRunConfig(data)
}

// parseColor accepts [r, g, b] or [r, g, b, a] with components in [0, 1].
func parseColor(v []float64) (Color, error) {
	if len(v) != 3 && len(v) != 4 {
		return Color{}, fmt.Errorf("want 3 or 4 components, got %d", len(v))
	}
	for _, c := range v {
		if c < 0 || c > 1 {
			return Color{}, fmt.Errorf("component %v outside [0, 1]", c)
		}
	}
	c := Color{v[0], v[1], v[2], 1}
	if len(v) == 4 {
		c.A = v[3]
	}
	return c, nil
}
