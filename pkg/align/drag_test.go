package align

import (
	"reflect"
	"testing"

	"github.com/wesen/snapcanvas/pkg/geom"
	"github.com/wesen/snapcanvas/pkg/scene"
)

func groupScene() []scene.Element {
	a := rect("a", 0, 0, 10, 10)
	a.ParentGroup = "g"
	b := rect("b", 30, 20, 10, 10)
	b.ParentGroup = "g"
	g := scene.Element{ID: "g", Type: scene.TypeGroup, X: 0, Y: 0, Width: 40, Height: 30,
		Visible: true, Children: []string{"a", "b"}}
	return []scene.Element{a, b, g, rect("other", 104, 150, 50, 50)}
}

// ── DragTarget ──

func TestDragTargetSingleKeepsRotation(t *testing.T) {
	tri := rect("t", 10, 10, 20, 20)
	tri.ShapeType = geom.ShapeTriangle
	tri.Rotation = 0.5
	got, ok := DragTarget([]scene.Element{tri}, []string{"t"}, 5, -5)
	if !ok {
		t.Fatal("DragTarget: expected ok")
	}
	want := geom.Geometry{X: 15, Y: 5, Width: 20, Height: 20, Rotation: 0.5, Shape: geom.ShapeTriangle}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestDragTargetGroupUsesUnion(t *testing.T) {
	got, ok := DragTarget(groupScene(), []string{"g"}, 100, 0)
	if !ok {
		t.Fatal("DragTarget: expected ok")
	}
	want := geom.Geometry{X: 100, Y: 0, Width: 40, Height: 30, Shape: geom.ShapeRectangle}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestDragTargetSelectionDropsRotation(t *testing.T) {
	a := rect("a", 0, 0, 10, 10)
	a.Rotation = 1
	els := []scene.Element{a, rect("b", 20, 20, 5, 5)}
	got, _ := DragTarget(els, []string{"a", "b"}, 0, 0)
	if got.Rotation != 0 || got.Rect() != geom.R(0, 0, 25, 25) {
		t.Errorf("multi-select target: got %+v", got)
	}
}

func TestDragTargetUnknown(t *testing.T) {
	if _, ok := DragTarget(groupScene(), []string{"nope"}, 0, 0); ok {
		t.Error("unknown id should not produce a target")
	}
}

func TestDraggedIDs(t *testing.T) {
	got := DraggedIDs(groupScene(), []string{"g", "a", "missing"})
	want := []string{"g", "a", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

// ── Snap ──

func TestSnapExcludesDragged(t *testing.T) {
	els := []scene.Element{rect("self", 96, 50, 100, 50)}
	e := NewEngine(DefaultOptions())
	// the dragged element itself would always snap at distance 0
	res := e.Snap(target(99, 50, 100, 50), els, []string{"self"}, 1)
	if !reflect.DeepEqual(res, Identity()) {
		t.Errorf("only the dragged element present: expected identity, got %+v", res)
	}
}

func TestSnapExcludesGroupChildren(t *testing.T) {
	els := groupScene()
	e := NewEngine(DefaultOptions())
	tgt, _ := DragTarget(els, []string{"g"}, 100, 0)
	res := e.Snap(tgt, els, []string{"g"}, 1)
	if res.DX != 4 {
		t.Errorf("expected dx=4 toward other, got %v", res.DX)
	}
	for _, l := range res.VerticalLines {
		if l.End.Y < 150 {
			t.Errorf("guideline points at a dragged element: %+v", l)
		}
	}
}

func TestSnapDisabled(t *testing.T) {
	opts := DefaultOptions()
	opts.Disabled = true
	e := NewEngine(opts)
	res := e.Snap(target(96, 50, 100, 50), []scene.Element{rect("ref", 100, 200, 100, 80)}, nil, 1)
	if !reflect.DeepEqual(res, Identity()) {
		t.Errorf("disabled: expected identity, got %+v", res)
	}
}
