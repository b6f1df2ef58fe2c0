// Package config loads the playground settings from a TOML file. Every
// field has a default, so an empty or partial file is valid.
package config

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/wesen/snapcanvas/pkg/align"
	"github.com/wesen/snapcanvas/pkg/drawutil"
	"github.com/wesen/snapcanvas/pkg/geom"
	"github.com/wesen/snapcanvas/pkg/viewport"
)

// ErrInvalid is returned for values that cannot be normalized.
var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	Viewport ViewportConfig `toml:"viewport"`
	Align    AlignConfig    `toml:"align"`
	Grid     GridConfig     `toml:"grid"`
	Log      LogConfig      `toml:"log"`
}

type ViewportConfig struct {
	MinZoom       float64       `toml:"min_zoom"`
	MaxZoom       float64       `toml:"max_zoom"`
	DefaultZoom   float64       `toml:"default_zoom"`
	ZoomStep      float64       `toml:"zoom_step"`
	ZoomInFactor  float64       `toml:"zoom_in_factor"`
	ZoomOutFactor float64       `toml:"zoom_out_factor"`
	FitPadding    float64       `toml:"fit_padding"`
	Bounds        *BoundsConfig `toml:"bounds"`
}

// BoundsConfig limits how far the camera may pan. It only applies when
// both Width and Height are positive.
type BoundsConfig struct {
	X      float64 `toml:"x"`
	Y      float64 `toml:"y"`
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

type AlignConfig struct {
	Enabled       bool    `toml:"enabled"`
	BaseThreshold float64 `toml:"base_threshold"`
	MinScale      float64 `toml:"min_scale"`
	NearbyFactor  float64 `toml:"nearby_factor"`
	SizeFactor    float64 `toml:"size_factor"`
}

type GridConfig struct {
	Visible bool    `toml:"visible"`
	Minor   float64 `toml:"minor"`
	Major   float64 `toml:"major"`
	MinorAt float64 `toml:"minor_at"`
}

type LogConfig struct {
	// File receives the log output; empty disables logging.
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// Default returns the stock settings.
func Default() Config {
	vc := viewport.DefaultConfig()
	ao := align.DefaultOptions()
	g := drawutil.DefaultGrid()
	return Config{
		Viewport: ViewportConfig{
			MinZoom:       vc.MinZoom,
			MaxZoom:       vc.MaxZoom,
			DefaultZoom:   vc.DefaultZoom,
			ZoomStep:      vc.ZoomStep,
			ZoomInFactor:  vc.ZoomInFactor,
			ZoomOutFactor: vc.ZoomOutFactor,
			FitPadding:    vc.FitPadding,
		},
		Align: AlignConfig{
			Enabled:       !ao.Disabled,
			BaseThreshold: ao.BaseThreshold,
			MinScale:      ao.MinScale,
			NearbyFactor:  ao.NearbyFactor,
			SizeFactor:    ao.SizeFactor,
		},
		Grid: GridConfig{
			Visible: true,
			Minor:   g.Minor,
			Major:   g.Major,
			MinorAt: g.MinorAt,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads path on top of the defaults. An empty path returns the
// defaults. Unknown keys are rejected so typos do not go unnoticed.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("load config %s: unknown keys %s: %w", path, strings.Join(keys, ", "), ErrInvalid)
	}
	return cfg.normalized()
}

// Parse decodes TOML text on top of the defaults.
func Parse(text string) (Config, error) {
	cfg := Default()
	if _, err := toml.Decode(text, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg.normalized()
}

// normalized replaces unusable values with defaults and orders the zoom
// range.
func (cfg Config) normalized() (Config, error) {
	def := Default()
	n := cfg

	v := &n.Viewport
	positive(&v.MinZoom, def.Viewport.MinZoom)
	positive(&v.MaxZoom, def.Viewport.MaxZoom)
	if v.MinZoom > v.MaxZoom {
		v.MinZoom, v.MaxZoom = v.MaxZoom, v.MinZoom
	}
	positive(&v.DefaultZoom, def.Viewport.DefaultZoom)
	v.DefaultZoom = min(max(v.DefaultZoom, v.MinZoom), v.MaxZoom)
	positive(&v.ZoomStep, def.Viewport.ZoomStep)
	positive(&v.ZoomInFactor, def.Viewport.ZoomInFactor)
	positive(&v.ZoomOutFactor, def.Viewport.ZoomOutFactor)
	if v.FitPadding < 0 || math.IsNaN(v.FitPadding) {
		v.FitPadding = def.Viewport.FitPadding
	}
	if b := v.Bounds; b != nil && (b.Width <= 0 || b.Height <= 0) {
		v.Bounds = nil
	}

	a := &n.Align
	positive(&a.BaseThreshold, def.Align.BaseThreshold)
	positive(&a.MinScale, def.Align.MinScale)
	positive(&a.NearbyFactor, def.Align.NearbyFactor)
	if a.SizeFactor < 0 || math.IsNaN(a.SizeFactor) {
		a.SizeFactor = def.Align.SizeFactor
	}

	g := &n.Grid
	positive(&g.Minor, def.Grid.Minor)
	positive(&g.Major, def.Grid.Major)
	if g.Major < g.Minor {
		return Config{}, fmt.Errorf("grid major %v below minor %v: %w", g.Major, g.Minor, ErrInvalid)
	}

	n.Log.File = strings.TrimSpace(n.Log.File)
	n.Log.Level = strings.TrimSpace(n.Log.Level)
	if n.Log.Level == "" {
		n.Log.Level = def.Log.Level
	}
	if _, err := log.ParseLevel(n.Log.Level); err != nil {
		return Config{}, fmt.Errorf("log level %q: %w", n.Log.Level, ErrInvalid)
	}
	return n, nil
}

func positive(v *float64, def float64) {
	if !(*v > 0) || math.IsInf(*v, 0) {
		*v = def
	}
}

// ── Conversions ──

// Camera returns the viewport settings.
func (cfg Config) Camera() viewport.Config {
	v := cfg.Viewport
	out := viewport.Config{
		MinZoom:       v.MinZoom,
		MaxZoom:       v.MaxZoom,
		DefaultZoom:   v.DefaultZoom,
		ZoomStep:      v.ZoomStep,
		ZoomInFactor:  v.ZoomInFactor,
		ZoomOutFactor: v.ZoomOutFactor,
		FitPadding:    v.FitPadding,
	}
	if b := v.Bounds; b != nil {
		r := geom.R(b.X, b.Y, b.Width, b.Height)
		out.Bounds = &r
	}
	return out
}

// AlignOptions returns the snapping settings.
func (cfg Config) AlignOptions() align.Options {
	a := cfg.Align
	return align.Options{
		BaseThreshold: a.BaseThreshold,
		MinScale:      a.MinScale,
		NearbyFactor:  a.NearbyFactor,
		SizeFactor:    a.SizeFactor,
		Disabled:      !a.Enabled,
	}
}

// DrawGrid returns the background grid. The coarser zoom bands keep the
// stock 2x and 4x widening of the configured spacing.
func (cfg Config) DrawGrid() drawutil.Grid {
	g := drawutil.DefaultGrid()
	g.Minor, g.Major, g.MinorAt = cfg.Grid.Minor, cfg.Grid.Major, cfg.Grid.MinorAt
	g.Levels = []drawutil.GridLevel{
		{Below: 0.25, Minor: cfg.Grid.Minor * 4, Major: cfg.Grid.Major * 4},
		{Below: 0.5, Minor: cfg.Grid.Minor * 2, Major: cfg.Grid.Major * 2},
	}
	return g
}

// LogLevel returns the parsed log level.
func (cfg Config) LogLevel() log.Level {
	lvl, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
