// Package config holds the tunables the drawing core depends on.
package config

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config is the set of constants supplied to the board.
type Config struct {
	// Threshold is the distance above which new samples are densified.
	Threshold float64 `toml:"threshold"`
	// Capacity is the number of points a quadtree node holds before it
	// subdivides.
	Capacity int `toml:"capacity"`
	// HistoryDepth bounds both the undo and the redo stack.
	HistoryDepth int `toml:"history_depth"`

	MinRadius float64 `toml:"min_radius"`
	MaxRadius float64 `toml:"max_radius"`

	CanvasWidth  int `toml:"canvas_width"`
	CanvasHeight int `toml:"canvas_height"`

	BrushWidth   int     `toml:"brush_width"`
	EraserRadius float64 `toml:"eraser_radius"`

	// Debug draws quadtree boundaries over the canvas.
	Debug bool `toml:"debug"`
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		Threshold:    3,
		Capacity:     4,
		HistoryDepth: 50,
		MinRadius:    1,
		MaxRadius:    200,
		CanvasWidth:  1024,
		CanvasHeight: 768,
		BrushWidth:   10,
		EraserRadius: 20,
	}
}

// Load reads a TOML file over the defaults. Keys missing from the file keep
// their default value.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("could not read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%w: unknown key %q in %s", ErrInvalid, undecoded[0].String(), path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first out-of-range value.
func (c Config) Validate() error {
	switch {
	case c.Threshold < 0:
		return fmt.Errorf("%w: threshold must not be negative", ErrInvalid)
	case c.Capacity < 1:
		return fmt.Errorf("%w: capacity must be at least 1", ErrInvalid)
	case c.HistoryDepth < 1:
		return fmt.Errorf("%w: history_depth must be at least 1", ErrInvalid)
	case c.MinRadius <= 0:
		return fmt.Errorf("%w: min_radius must be positive", ErrInvalid)
	case c.MaxRadius < c.MinRadius:
		return fmt.Errorf("%w: max_radius %.1f below min_radius %.1f", ErrInvalid, c.MaxRadius, c.MinRadius)
	case c.CanvasWidth < 1 || c.CanvasHeight < 1:
		return fmt.Errorf("%w: canvas must be at least 1x1", ErrInvalid)
	case c.BrushWidth < 1:
		return fmt.Errorf("%w: brush_width must be positive", ErrInvalid)
	}
	return nil
}

// ClampRadius limits r to [MinRadius, MaxRadius].
func (c Config) ClampRadius(r float64) float64 {
	if r < c.MinRadius {
		return c.MinRadius
	}
	if r > c.MaxRadius {
		return c.MaxRadius
	}
	return r
}
