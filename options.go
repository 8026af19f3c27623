package sketchpad

import (
	"log/slog"
	"time"
)

// Option configures a Config.
// Use functional options to override individual defaults.
//
// Example:
//
//	cfg := sketchpad.NewConfig(
//		sketchpad.WithWindowSize(800, 600),
//		sketchpad.WithDemoCircle(true),
//	)
type Option func(*Config)

// WindowConfig describes the native window.
type WindowConfig struct {
	Width  int
	Height int
	Title  string
	VSync  bool
}

// Config holds everything the application reads at start-up.
type Config struct {
	Window WindowConfig

	// FrameInterval is the sleep between two loop iterations.
	FrameInterval time.Duration

	// ClearColor fills the surface before the layers are drawn.
	ClearColor RGBA
	// GridColor is the line color of the background grid.
	GridColor RGBA
	// Fill and Border color rectangles committed by the drawer.
	Fill   RGBA
	Border RGBA
	// BorderThickness is the rectangle border width in drawing units.
	BorderThickness float32

	// DemoCircle seeds the scene with a circle at the origin.
	DemoCircle bool

	LogLevel slog.Level
}

// Default values.
const (
	DefaultWidth           = 1024
	DefaultHeight          = 768
	DefaultTitle           = "sketchpad"
	DefaultFrameInterval   = 34 * time.Millisecond
	DefaultBorderThickness = 0.01
)

// Default colors.
var (
	DefaultClearColor = White
	DefaultGridColor  = RGBA{R: 0, G: 0, B: 0, A: 0.25}
	DefaultFill       = RGBA{R: 0.9, G: 0.9, B: 0.9, A: 1}
	DefaultBorder     = RGBA{R: 0, G: 0, B: 0, A: 1}
)

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
			Title:  DefaultTitle,
			VSync:  true,
		},
		FrameInterval:   DefaultFrameInterval,
		ClearColor:      DefaultClearColor,
		GridColor:       DefaultGridColor,
		Fill:            DefaultFill,
		Border:          DefaultBorder,
		BorderThickness: DefaultBorderThickness,
		LogLevel:        slog.LevelInfo,
	}
}

// NewConfig returns DefaultConfig with opts applied in order.
func NewConfig(opts ...Option) Config {
	cfg := DefaultConfig()
	cfg.Apply(opts...)
	return cfg
}

// Apply applies opts to c in order.
func (c *Config) Apply(opts ...Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// WithWindowSize sets the initial window size in pixels.
func WithWindowSize(width, height int) Option {
	return func(c *Config) {
		c.Window.Width = width
		c.Window.Height = height
	}
}

// WithTitle sets the window title.
func WithTitle(title string) Option {
	return func(c *Config) {
		c.Window.Title = title
	}
}

// WithVSync requests or disables vertical sync.
func WithVSync(on bool) Option {
	return func(c *Config) {
		c.Window.VSync = on
	}
}

// WithFrameInterval sets the sleep between frames. Zero disables pacing.
func WithFrameInterval(d time.Duration) Option {
	return func(c *Config) {
		c.FrameInterval = d
	}
}

// WithClearColor sets the surface clear color.
func WithClearColor(clr RGBA) Option {
	return func(c *Config) {
		c.ClearColor = clr
	}
}

// WithGridColor sets the background grid line color.
func WithGridColor(clr RGBA) Option {
	return func(c *Config) {
		c.GridColor = clr
	}
}

// WithColors sets the fill and border of newly drawn rectangles.
func WithColors(fill, border RGBA) Option {
	return func(c *Config) {
		c.Fill = fill
		c.Border = border
	}
}

// WithBorderThickness sets the rectangle border width.
func WithBorderThickness(t float32) Option {
	return func(c *Config) {
		c.BorderThickness = t
	}
}

// WithDemoCircle toggles the start-up circle at the origin.
func WithDemoCircle(on bool) Option {
	return func(c *Config) {
		c.DemoCircle = on
	}
}

// WithLogLevel sets the minimum level logged by the command.
func WithLogLevel(level slog.Level) Option {
	return func(c *Config) {
		c.LogLevel = level
	}
}
