package main

import (
	"context"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/wesen/snapcanvas/internal/config"
	"github.com/wesen/snapcanvas/pkg/snapshot"
)

// ── Flags ──

func TestParseDrag(t *testing.T) {
	tests := []struct {
		in   string
		want drag
		ok   bool
	}{
		{"target:96,50", drag{ID: "target", DX: 96, DY: 50}, true},
		{"a:b:-1.5, 2", drag{ID: "a:b", DX: -1.5, DY: 2}, true},
		{"target:", drag{ID: "target"}, true},
		{":1,2", drag{}, false},
		{"target", drag{}, false},
		{"target:1", drag{}, false},
		{"target:x,2", drag{}, false},
		{"target:NaN,2", drag{}, false},
	}
	for _, tc := range tests {
		got, err := parseDrag(tc.in)
		if (err == nil) != tc.ok {
			t.Errorf("parseDrag(%q): expected ok=%v, got err %v", tc.in, tc.ok, err)
			continue
		}
		if tc.ok && got != tc.want {
			t.Errorf("parseDrag(%q): expected %+v, got %+v", tc.in, tc.want, got)
		}
	}
}

func TestPlan(t *testing.T) {
	got := plan([]string{"scenes/align.js", "other/shapes.scene.js"}, "out")
	want := []job{
		{Script: "scenes/align.js", Out: filepath.Join("out", "align.png")},
		{Script: "other/shapes.scene.js", Out: filepath.Join("out", "shapes.scene.png")},
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("plan[%d]: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

// ── Rendering ──

func writeScript(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func testSettings() settings {
	opts := snapshot.DefaultOptions()
	opts.Width, opts.Height = 200, 150
	return settings{Config: config.Default(), Snapshot: opts, Jobs: 2}
}

func TestRenderAll(t *testing.T) {
	dir := t.TempDir()
	var scripts []string
	for _, name := range []string{"a.js", "b.js", "c.js"} {
		scripts = append(scripts, writeScript(t, dir, name,
			`rect({id: "target", x: 0, y: 0, w: 100, h: 50}); rect({x: 100, y: 200, w: 100, h: 80});`))
	}
	s := testSettings()
	s.Drag = &drag{ID: "target", DX: 96, DY: 50}

	jobs := plan(scripts, dir)
	if err := renderAll(context.Background(), log.New(io.Discard), s, jobs); err != nil {
		t.Fatal(err)
	}
	for _, j := range jobs {
		f, err := os.Open(j.Out)
		if err != nil {
			t.Fatalf("%s: %v", j.Out, err)
		}
		cfg, err := png.DecodeConfig(f)
		f.Close()
		if err != nil || cfg.Width != 200 || cfg.Height != 150 {
			t.Errorf("%s: expected a 200x150 PNG, got %+v (%v)", j.Out, cfg, err)
		}
	}
}

func TestRenderAllReportsFailures(t *testing.T) {
	dir := t.TempDir()
	good := writeScript(t, dir, "good.js", `rect({});`)
	bad := writeScript(t, dir, "bad.js", `rect({`)

	err := renderAll(context.Background(), log.New(io.Discard), testSettings(), plan([]string{good, bad}, dir))
	if err == nil {
		t.Fatal("renderAll: expected the syntax error to surface")
	}

	s := testSettings()
	s.Drag = &drag{ID: "missing"}
	err = renderAll(context.Background(), log.New(io.Discard), s, plan([]string{good}, dir))
	if err == nil {
		t.Error("renderAll: expected an error for a missing drag id")
	}
}

func TestRenderAllCancelled(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "a.js", `rect({});`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := renderAll(ctx, log.New(io.Discard), testSettings(), plan([]string{path}, dir)); err == nil {
		t.Error("renderAll: expected a cancelled context to stop the batch")
	}
	if _, err := os.Stat(filepath.Join(dir, "a.png")); !os.IsNotExist(err) {
		t.Errorf("cancelled batch: expected no output, got %v", err)
	}
}
