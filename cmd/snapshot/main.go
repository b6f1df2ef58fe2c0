// snapshot renders scene scripts to PNG files, several at a time.
//
// Run: GOWORK=off go run ./cmd/snapshot/ -out /tmp/shots scenes/*.js
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/wesen/snapcanvas/internal/config"
	"github.com/wesen/snapcanvas/internal/scenescript"
	"github.com/wesen/snapcanvas/pkg/align"
	"github.com/wesen/snapcanvas/pkg/snapshot"
)

var errUsage = errors.New("usage")

// job is one scene script and its output file.
type job struct {
	Script string
	Out    string
}

// drag is an optional move applied before rendering.
type drag struct {
	ID     string
	DX, DY float64
}

type settings struct {
	Config   config.Config
	Snapshot snapshot.Options
	Drag     *drag
	Jobs     int
}

func main() {
	configPath := flag.String("config", "", "TOML settings file")
	outDir := flag.String("out", ".", "directory for the PNG files")
	width := flag.Int("width", 800, "image width in pixels")
	height := flag.Int("height", 600, "image height in pixels")
	zoom := flag.Float64("zoom", 0, "camera zoom (0 fits the content)")
	center := flag.String("center", "", "camera center as x,y (with -zoom)")
	grid := flag.Bool("grid", false, "draw the background grid")
	dragSpec := flag.String("drag", "", "snap-drag an element first, as id:dx,dy")
	jobs := flag.Int("j", runtime.NumCPU(), "scripts rendered in parallel")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "snapshot"})
	if *verbose {
		logger.SetLevel(log.DebugLevel)
	}

	if err := func() error {
		if flag.NArg() == 0 {
			return fmt.Errorf("%w: snapshot [flags] scene.js...", errUsage)
		}
		cfg, err := config.Load(*configPath)
		if err != nil {
			return err
		}
		s := settings{Config: cfg, Jobs: *jobs}

		s.Snapshot = snapshot.DefaultOptions()
		s.Snapshot.Width, s.Snapshot.Height = *width, *height
		s.Snapshot.Limits = cfg.Camera()
		s.Snapshot.Padding = cfg.Viewport.FitPadding
		if *zoom > 0 {
			x, y, err := parsePair(*center)
			if err != nil {
				return fmt.Errorf("-center: %w", err)
			}
			s.Snapshot.View.X, s.Snapshot.View.Y, s.Snapshot.View.Zoom = x, y, *zoom
		}
		if *grid {
			g := cfg.DrawGrid()
			s.Snapshot.Grid = &g
		}
		if *dragSpec != "" {
			d, err := parseDrag(*dragSpec)
			if err != nil {
				return fmt.Errorf("-drag: %w", err)
			}
			s.Drag = &d
		}
		return renderAll(context.Background(), logger, s, plan(flag.Args(), *outDir))
	}(); err != nil {
		logger.Error("snapshot failed", "err", err)
		if errors.Is(err, errUsage) {
			flag.Usage()
			os.Exit(2)
		}
		os.Exit(1)
	}
}

// plan maps each script to <out>/<name>.png.
func plan(scripts []string, outDir string) []job {
	out := make([]job, len(scripts))
	for i, path := range scripts {
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		out[i] = job{Script: path, Out: filepath.Join(outDir, name+".png")}
	}
	return out
}

// renderAll renders every job, at most s.Jobs at a time. The first error
// cancels the jobs that have not started.
func renderAll(ctx context.Context, logger *log.Logger, s settings, jobs []job) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(s.Jobs, 1))
	for _, j := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := renderOne(s, j); err != nil {
				return fmt.Errorf("%s: %w", j.Script, err)
			}
			logger.Info("wrote snapshot", "script", j.Script, "out", j.Out)
			return nil
		})
	}
	return g.Wait()
}

func renderOne(s settings, j job) error {
	store, err := scenescript.LoadFile(j.Script)
	if err != nil {
		return err
	}
	opts := s.Snapshot
	if s.Drag != nil {
		eng := align.NewEngine(s.Config.AlignOptions())
		zoom := snapshot.Camera(store, opts).Zoom
		res, err := snapshot.Drag(store, eng, []string{s.Drag.ID}, s.Drag.DX, s.Drag.DY, zoom)
		if err != nil {
			return err
		}
		opts.Guides = res
		opts.Selected = []string{s.Drag.ID}
	}
	return snapshot.WriteFile(j.Out, store, opts)
}

// parseDrag reads "id:dx,dy". The id may itself contain colons.
func parseDrag(s string) (drag, error) {
	i := strings.LastIndexByte(s, ':')
	if i <= 0 {
		return drag{}, fmt.Errorf("%q: expected id:dx,dy", s)
	}
	dx, dy, err := parsePair(s[i+1:])
	if err != nil {
		return drag{}, err
	}
	return drag{ID: s[:i], DX: dx, DY: dy}, nil
}

// parsePair reads "x,y". An empty string is the origin.
func parsePair(s string) (float64, float64, error) {
	if s == "" {
		return 0, 0, nil
	}
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, fmt.Errorf("%q: expected x,y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%q: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%q: %w", s, err)
	}
	if math.IsNaN(x+y) || math.IsInf(x+y, 0) {
		return 0, 0, fmt.Errorf("%q: not finite", s)
	}
	return x, y, nil
}
