// Command sketchpad opens a window with a background grid and lets the user
// draw rectangles by dragging with the primary mouse button.
//
// Settings are read from sketchpad.toml in the working directory when the
// file exists; otherwise the defaults apply.
package main

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/gogpu/sketchpad"
	"github.com/gogpu/sketchpad/app"
	"github.com/gogpu/sketchpad/integration/gogpuapp"
	"github.com/gogpu/sketchpad/render"
)

const configFile = "sketchpad.toml"

func main() {
	if err := run(); err != nil {
		attrs := []any{slog.Any("err", err)}
		if diag := sketchpad.DiagnosticOf(err); diag != "" {
			attrs = append(attrs, slog.String("diagnostic", diag))
		}
		sketchpad.Logger().Error("sketchpad failed", attrs...)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig(configFile)
	if err != nil {
		return err
	}
	sketchpad.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	})))

	return gogpuapp.Run(cfg, func(b render.Backend) (*app.App, error) {
		return app.New(b, cfg)
	})
}

// loadConfig reads path, falling back to the defaults when it is missing.
func loadConfig(path string) (sketchpad.Config, error) {
	cfg, err := sketchpad.LoadConfig(path)
	if errors.Is(err, fs.ErrNotExist) {
		return sketchpad.DefaultConfig(), nil
	}
	return cfg, err
}
