package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
)

func writeFile(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "snapcanvas.toml")
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// ── Defaults ──

func TestDefaultMatchesPackages(t *testing.T) {
	cfg := Default()
	cam := cfg.Camera()
	if cam.MinZoom != 0.1 || cam.MaxZoom != 4 || cam.DefaultZoom != 1 {
		t.Errorf("zoom range: expected 0.1..4 default 1, got %v..%v default %v", cam.MinZoom, cam.MaxZoom, cam.DefaultZoom)
	}
	if cam.Bounds != nil {
		t.Errorf("bounds: expected none, got %v", *cam.Bounds)
	}
	opts := cfg.AlignOptions()
	if opts.BaseThreshold != 8 || opts.MinScale != 0.1 || opts.Disabled {
		t.Errorf("align: expected threshold 8, min scale 0.1, enabled; got %+v", opts)
	}
	if cfg.LogLevel() != log.InfoLevel {
		t.Errorf("log level: expected info, got %v", cfg.LogLevel())
	}
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\"): %v", err)
	}
	if cfg.Viewport != Default().Viewport {
		t.Errorf("expected defaults, got %+v", cfg.Viewport)
	}
}

// ── Loading ──

func TestLoadPartialFile(t *testing.T) {
	path := writeFile(t, `
[viewport]
max_zoom = 8

[viewport.bounds]
x = -500
y = -500
width = 1000
height = 1000

[align]
enabled = false
base_threshold = 12

[log]
file = "  snap.log "
level = "debug"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cam := cfg.Camera()
	if cam.MaxZoom != 8 || cam.MinZoom != 0.1 {
		t.Errorf("zoom range: expected 0.1..8, got %v..%v", cam.MinZoom, cam.MaxZoom)
	}
	if cam.Bounds == nil || cam.Bounds.Width != 1000 || cam.Bounds.X != -500 {
		t.Errorf("bounds: expected (-500,-500,1000,1000), got %v", cam.Bounds)
	}
	opts := cfg.AlignOptions()
	if !opts.Disabled || opts.BaseThreshold != 12 || opts.SizeFactor != 0.75 {
		t.Errorf("align: got %+v", opts)
	}
	if cfg.Log.File != "snap.log" || cfg.LogLevel() != log.DebugLevel {
		t.Errorf("log: expected snap.log at debug, got %q at %v", cfg.Log.File, cfg.LogLevel())
	}
	if !cfg.Grid.Visible || cfg.Grid.Minor != 20 {
		t.Errorf("grid: expected untouched defaults, got %+v", cfg.Grid)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("missing file: expected an error")
	}
}

func TestLoadUnknownKey(t *testing.T) {
	path := writeFile(t, "[viewport]\nmax_zom = 8\n")
	_, err := Load(path)
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("unknown key: expected ErrInvalid, got %v", err)
	}
}

func TestParseSyntaxError(t *testing.T) {
	if _, err := Parse("[viewport\n"); err == nil {
		t.Error("syntax error: expected an error")
	}
}

// ── Normalization ──

func TestNormalized(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		check func(t *testing.T, cfg Config)
	}{
		{
			name: "swapped zoom range",
			text: "[viewport]\nmin_zoom = 5\nmax_zoom = 0.5\n",
			check: func(t *testing.T, cfg Config) {
				if cfg.Viewport.MinZoom != 0.5 || cfg.Viewport.MaxZoom != 5 {
					t.Errorf("expected 0.5..5, got %v..%v", cfg.Viewport.MinZoom, cfg.Viewport.MaxZoom)
				}
			},
		},
		{
			name: "default zoom clamped",
			text: "[viewport]\ndefault_zoom = 10\n",
			check: func(t *testing.T, cfg Config) {
				if cfg.Viewport.DefaultZoom != 4 {
					t.Errorf("expected 4, got %v", cfg.Viewport.DefaultZoom)
				}
			},
		},
		{
			name: "non-positive values fall back",
			text: "[viewport]\nmin_zoom = 0\nzoom_in_factor = -1\n[align]\nbase_threshold = 0\nmin_scale = -2\n",
			check: func(t *testing.T, cfg Config) {
				if cfg.Viewport.MinZoom != 0.1 || cfg.Viewport.ZoomInFactor != 1.2 {
					t.Errorf("viewport: got %+v", cfg.Viewport)
				}
				if cfg.Align.BaseThreshold != 8 || cfg.Align.MinScale != 0.1 {
					t.Errorf("align: got %+v", cfg.Align)
				}
			},
		},
		{
			name: "empty bounds dropped",
			text: "[viewport.bounds]\nwidth = 100\n",
			check: func(t *testing.T, cfg Config) {
				if cfg.Camera().Bounds != nil {
					t.Errorf("expected no bounds, got %v", cfg.Camera().Bounds)
				}
			},
		},
		{
			name: "empty level",
			text: "[log]\nlevel = \"\"\n",
			check: func(t *testing.T, cfg Config) {
				if cfg.Log.Level != "info" {
					t.Errorf("expected info, got %q", cfg.Log.Level)
				}
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := Parse(tc.text)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			tc.check(t, cfg)
		})
	}
}

func TestNormalizedRejects(t *testing.T) {
	for _, text := range []string{
		"[log]\nlevel = \"loud\"\n",
		"[grid]\nminor = 50\nmajor = 10\n",
	} {
		if _, err := Parse(text); !errors.Is(err, ErrInvalid) {
			t.Errorf("%q: expected ErrInvalid, got %v", text, err)
		}
	}
}

func TestDrawGridScalesBands(t *testing.T) {
	cfg, err := Parse("[grid]\nminor = 10\nmajor = 50\n")
	if err != nil {
		t.Fatal(err)
	}
	g := cfg.DrawGrid()
	tests := []struct {
		zoom         float64
		minor, major float64
	}{
		{1, 10, 50},
		{0.4, 20, 100},
		{0.2, 40, 200},
	}
	for _, tc := range tests {
		minor, major, _ := g.Spacing(tc.zoom)
		if minor != tc.minor || major != tc.major {
			t.Errorf("zoom %v: expected %v/%v, got %v/%v", tc.zoom, tc.minor, tc.major, minor, major)
		}
	}
}
