package sketchpad

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("sketchpad: invalid config")

// fileConfig is the on-disk layout of a config file:
//
//	log_level = "debug"
//	frame_interval = "16ms"
//	demo_circle = true
//	border_thickness = 0.02
//
//	[window]
//	width = 800
//	height = 600
//	title = "sketch"
//	vsync = false
//
//	[colors]
//	clear = "#ffffff"
//	grid = "#00000040"
//	fill = "#e6e6e6"
//	border = "#000000"
type fileConfig struct {
	LogLevel        string     `toml:"log_level"`
	FrameInterval   string     `toml:"frame_interval"`
	DemoCircle      bool       `toml:"demo_circle"`
	BorderThickness float32    `toml:"border_thickness"`
	Window          fileWindow `toml:"window"`
	Colors          fileColors `toml:"colors"`
}

type fileWindow struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
	VSync  bool   `toml:"vsync"`
}

type fileColors struct {
	Clear  RGBA `toml:"clear"`
	Grid   RGBA `toml:"grid"`
	Fill   RGBA `toml:"fill"`
	Border RGBA `toml:"border"`
}

func toFile(c Config) fileConfig {
	return fileConfig{
		LogLevel:        c.LogLevel.String(),
		FrameInterval:   c.FrameInterval.String(),
		DemoCircle:      c.DemoCircle,
		BorderThickness: c.BorderThickness,
		Window: fileWindow{
			Width:  c.Window.Width,
			Height: c.Window.Height,
			Title:  c.Window.Title,
			VSync:  c.Window.VSync,
		},
		Colors: fileColors{
			Clear:  c.ClearColor,
			Grid:   c.GridColor,
			Fill:   c.Fill,
			Border: c.Border,
		},
	}
}

func (f fileConfig) config() (Config, error) {
	c := Config{
		Window: WindowConfig{
			Width:  f.Window.Width,
			Height: f.Window.Height,
			Title:  f.Window.Title,
			VSync:  f.Window.VSync,
		},
		ClearColor:      f.Colors.Clear,
		GridColor:       f.Colors.Grid,
		Fill:            f.Colors.Fill,
		Border:          f.Colors.Border,
		BorderThickness: f.BorderThickness,
		DemoCircle:      f.DemoCircle,
	}

	d, err := time.ParseDuration(f.FrameInterval)
	if err != nil {
		return Config{}, fmt.Errorf("%w: frame_interval: %w", ErrInvalidConfig, err)
	}
	c.FrameInterval = d

	if err := c.LogLevel.UnmarshalText([]byte(f.LogLevel)); err != nil {
		return Config{}, fmt.Errorf("%w: log_level: %w", ErrInvalidConfig, err)
	}
	return c, nil
}

// DecodeConfig reads a TOML config from r. Keys absent from the input keep
// their DefaultConfig values; opts are applied after decoding.
func DecodeConfig(r io.Reader, opts ...Option) (Config, error) {
	fc := toFile(DefaultConfig())
	md, err := toml.NewDecoder(r).Decode(&fc)
	if err != nil {
		return Config{}, fmt.Errorf("sketchpad: decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		Logger().Warn("sketchpad: unknown config keys", "keys", strings.Join(keys, ","))
	}

	cfg, err := fc.config()
	if err != nil {
		return Config{}, err
	}
	cfg.Apply(opts...)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads the TOML config file at path. A missing file is reported
// as an error satisfying errors.Is(err, fs.ErrNotExist).
func LoadConfig(path string, opts ...Option) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()

	cfg, err := DecodeConfig(f, opts...)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	Logger().Debug("sketchpad: config loaded", "path", path)
	return cfg, nil
}

// Validate reports values the application cannot run with.
func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	case c.FrameInterval < 0:
		return fmt.Errorf("%w: negative frame interval %v", ErrInvalidConfig, c.FrameInterval)
	case c.BorderThickness < 0:
		return fmt.Errorf("%w: negative border thickness %v", ErrInvalidConfig, c.BorderThickness)
	}
	return nil
}
