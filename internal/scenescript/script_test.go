package scenescript

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/wesen/snapcanvas/pkg/geom"
	"github.com/wesen/snapcanvas/pkg/scene"
)

const alignScene = `
var target = rect({id: "target", x: 96, y: 50, w: 50, h: 50});
var ref = rect({id: "ref", x: 100, y: 150, w: 100, h: 50, label: "ref"});
circle({x: 300, y: 300, w: 40, h: 40});
triangle({id: "tri", x: 0, y: 0, w: 100, h: 100, rotation: 0.5});
text({id: "title", x: 10, y: -40, label: "hello"});
print("built", target, ref);
`

// ── Constructors ──

func TestLoadBuildsElements(t *testing.T) {
	store, err := Load(alignScene)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if store.Len() != 5 {
		t.Fatalf("elements: expected 5, got %d", store.Len())
	}

	ref, ok := store.Get("ref")
	if !ok {
		t.Fatal("ref: not found")
	}
	want := scene.Element{
		ID: "ref", Type: scene.TypeShape, ShapeType: geom.ShapeRectangle,
		X: 100, Y: 150, Width: 100, Height: 50, Visible: true, ZIndex: 1, Label: "ref",
	}
	if ref.ID != want.ID || ref.Rect() != want.Rect() || ref.ZIndex != want.ZIndex || ref.Label != want.Label || !ref.Visible {
		t.Errorf("ref: expected %+v, got %+v", want, ref)
	}

	tri, _ := store.Get("tri")
	if tri.Shape() != geom.ShapeTriangle || tri.Rotation != 0.5 {
		t.Errorf("tri: expected rotated triangle, got %s rotation %v", tri.Shape(), tri.Rotation)
	}

	title, _ := store.Get("title")
	if title.Type != scene.TypeText || title.Width != 120 || title.Height != 30 {
		t.Errorf("title: expected 120x30 text, got %s %vx%v", title.Type, title.Width, title.Height)
	}
}

func TestGeneratedIDsAreReturned(t *testing.T) {
	s := New()
	if err := s.Run("t.js", `var id = circle({}); print(id.length > 0, typeof id);`); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(s.Output) != 1 || s.Output[0] != "true string" {
		t.Errorf("output: expected [\"true string\"], got %q", s.Output)
	}
	els := s.Store().Elements()
	if len(els) != 1 || els[0].ID == "" || els[0].Width != 100 {
		t.Errorf("circle: expected one 100-wide element with an id, got %+v", els)
	}
}

func TestOptionDefaults(t *testing.T) {
	store, err := Load(`rect({x: 1}); rect({visible: false, z: 9}); image()`)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	els := store.Elements()
	if !els[0].Visible || els[0].ZIndex != 0 || els[0].X != 1 {
		t.Errorf("first: got %+v", els[0])
	}
	if els[1].Visible || els[1].ZIndex != 9 {
		t.Errorf("second: expected hidden with z 9, got %+v", els[1])
	}
	if els[2].Type != scene.TypeImage || els[2].ZIndex != 2 {
		t.Errorf("image: expected z 2, got %+v", els[2])
	}
}

// ── Groups ──

func TestGroupAndMove(t *testing.T) {
	store, err := Load(`
var a = rect({id: "a", x: 0, y: 0, w: 10, h: 10});
var b = rect({id: "b", x: 20, y: 20, w: 10, h: 10});
var g = group([a, b]);
move(g, 5, -5);
`)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	var g scene.Element
	for _, el := range store.Elements() {
		if el.Type == scene.TypeGroup {
			g = el
		}
	}
	if g.Rect() != geom.R(5, -5, 30, 30) {
		t.Errorf("group: expected (5,-5,30,30), got %v", g.Rect())
	}
	a, _ := store.Get("a")
	if a.ParentGroup != g.ID || a.X != 5 || a.Y != -5 {
		t.Errorf("a: expected moved child of %s, got %+v", g.ID, a)
	}
}

// ── Errors ──

func TestScriptErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		is   error
	}{
		{"syntax", `rect({x: 1`, nil},
		{"throw", `throw new Error("boom")`, nil},
		{"bad options", `rect(5)`, nil},
		{"duplicate id", `rect({id: "a"}); rect({id: "a"})`, nil},
		{"single group", `group([rect({})])`, scene.ErrNotGroupable},
		{"move missing", `move("nope", 1, 1)`, scene.ErrNotFound},
		{"move nan", `move(rect({}), "x", 1)`, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(tc.src)
			if !errors.Is(err, ErrScript) {
				t.Fatalf("expected ErrScript, got %v", err)
			}
			if tc.is != nil && !errors.Is(err, tc.is) {
				t.Errorf("expected %v in chain, got %v", tc.is, err)
			}
		})
	}
}

func TestTimeout(t *testing.T) {
	s := New()
	s.Timeout = 50 * time.Millisecond
	err := s.Run("loop.js", `for (;;) {}`)
	if !errors.Is(err, ErrScript) {
		t.Fatalf("expected ErrScript, got %v", err)
	}
	// the runtime stays usable after an interrupt
	if err := s.Run("next.js", `rect({})`); err != nil {
		t.Errorf("after interrupt: %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.js")
	if err := os.WriteFile(path, []byte(alignScene), 0o644); err != nil {
		t.Fatal(err)
	}
	store, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if _, ok := store.Get("target"); !ok {
		t.Error("target: not found")
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.js")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file: expected os.ErrNotExist, got %v", err)
	}
}

// ── Bundled scenes ──

func TestDemo(t *testing.T) {
	store, err := Demo()
	if err != nil {
		t.Fatalf("Demo: %v", err)
	}
	// seven shapes and one group
	if store.Len() != 8 {
		t.Errorf("elements: expected 8, got %d", store.Len())
	}
	groups := 0
	for _, el := range store.Elements() {
		if el.Type == scene.TypeGroup {
			groups++
			if len(el.Children) != 2 {
				t.Errorf("group: expected 2 children, got %v", el.Children)
			}
		}
	}
	if groups != 1 {
		t.Errorf("groups: expected 1, got %d", groups)
	}
}

func TestBundledScenesLoad(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("..", "..", "scenes", "*.js"))
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) == 0 {
		t.Skip("no example scenes")
	}
	for _, p := range paths {
		store, err := LoadFile(p)
		if err != nil {
			t.Errorf("%s: %v", p, err)
			continue
		}
		if store.Len() == 0 {
			t.Errorf("%s: expected elements", p)
		}
	}
}
