package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/spaghettifunk/idraw/engine/core"
)

const (
	BackendOpenGL   = "opengl"
	BackendHeadless = "headless"
)

type Config struct {
	Window   WindowConfig   `toml:"window"`
	Log      LogConfig      `toml:"log"`
	Renderer RendererConfig `toml:"renderer"`
	Assets   AssetsConfig   `toml:"assets"`
}

type WindowConfig struct {
	// The application name used in windowing.
	Title string `toml:"title"`
	// Window starting position.
	X uint32 `toml:"x"`
	Y uint32 `toml:"y"`
	// Window starting size.
	Width  uint32 `toml:"width"`
	Height uint32 `toml:"height"`
	VSync  bool   `toml:"vsync"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

type RendererConfig struct {
	// Either "opengl" or "headless".
	Backend string `toml:"backend"`
	// Initial byte capacity of each draw context vertex stream.
	VertexBufferSize int `toml:"vertex_buffer_size"`
	// Initial byte capacity of the per-frame command buffer.
	CommandBufferSize int `toml:"command_buffer_size"`
	// Maximum chord deviation, in pixels, when tessellating curves.
	CircleErrorRate float32 `toml:"circle_error_rate"`
	// Optional .fnt or .ttf file. Empty uses the built-in font.
	DefaultFont     string     `toml:"default_font"`
	DefaultFontSize float64    `toml:"default_font_size"`
	ClearColor      [4]float32 `toml:"clear_color"`
}

type AssetsConfig struct {
	Dir       string `toml:"dir"`
	HotReload bool   `toml:"hot_reload"`
}

func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "idraw",
			X:      100,
			Y:      100,
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Log: LogConfig{Level: "info"},
		Renderer: RendererConfig{
			Backend:           BackendOpenGL,
			VertexBufferSize:  64 * 1024,
			CommandBufferSize: 16 * 1024,
			CircleErrorRate:   0.5,
			DefaultFontSize:   16,
			ClearColor:        [4]float32{0.1, 0.1, 0.1, 1},
		},
		Assets: AssetsConfig{
			Dir:       "assets",
			HotReload: true,
		},
	}
}

// Load reads a TOML file on top of the defaults. A missing file is not an
// error: the defaults are returned.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		core.LogWarn("config file '%s' not found, using defaults", path)
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config '%s': %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Save(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (c *Config) Validate() error {
	switch c.Renderer.Backend {
	case BackendOpenGL, BackendHeadless:
	default:
		return fmt.Errorf("renderer backend '%s': %w", c.Renderer.Backend, core.ErrUnknownBackend)
	}
	if c.Window.Width == 0 || c.Window.Height == 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Renderer.CircleErrorRate <= 0 {
		return fmt.Errorf("circle_error_rate must be positive, got %f", c.Renderer.CircleErrorRate)
	}
	if _, err := core.ParseLogLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// LogLevel returns the parsed log level. Validate guarantees it parses.
func (c *Config) LogLevel() core.LogLevel {
	l, _ := core.ParseLogLevel(c.Log.Level)
	return l
}
