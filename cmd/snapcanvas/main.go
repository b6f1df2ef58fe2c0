// snapcanvas is a terminal playground for the canvas core: click to
// select, drag to move with alignment snapping, wheel to zoom.
//
// Run: GOWORK=off go run ./cmd/snapcanvas/ -scene scenes/shapes.js
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/log"

	"github.com/wesen/snapcanvas/internal/canvasui"
	"github.com/wesen/snapcanvas/internal/config"
	"github.com/wesen/snapcanvas/internal/scenescript"
	"github.com/wesen/snapcanvas/pkg/scene"
)

func main() {
	configPath := flag.String("config", "", "TOML settings file")
	scenePath := flag.String("scene", "", "scene script to open (default: built-in demo)")
	flag.Parse()

	if err := run(*configPath, *scenePath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, scenePath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger, closeLog, err := openLog(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	store, err := loadScene(scenePath)
	if err != nil {
		return err
	}
	logger.Info("scene loaded", "path", scenePath, "elements", store.Len())

	m := canvasui.NewModel(store, canvasui.Options{
		Camera:   cfg.Camera(),
		Align:    cfg.AlignOptions(),
		Grid:     cfg.DrawGrid(),
		HideGrid: !cfg.Grid.Visible,
		Logger:   logger,
	})
	if _, err := tea.NewProgram(m).Run(); err != nil {
		return err
	}
	return nil
}

func loadScene(path string) (*scene.Store, error) {
	if path == "" {
		return scenescript.Demo()
	}
	return scenescript.LoadFile(path)
}

// openLog writes to the configured file. The terminal belongs to the UI,
// so without a file the logger discards everything.
func openLog(cfg config.Config) (*log.Logger, func(), error) {
	if cfg.Log.File == "" {
		return log.New(io.Discard), func() {}, nil
	}
	f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		Level:           cfg.LogLevel(),
		ReportTimestamp: true,
		Prefix:          "snapcanvas",
	})
	return logger, func() { f.Close() }, nil
}
