// Package scenescript builds scenes from small JavaScript programs run in
// goja. A script calls shape constructors such as rect({x: 10, y: 10})
// which add elements to a scene.Store and return their ids.
package scenescript

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/dop251/goja"

	"github.com/wesen/snapcanvas/pkg/geom"
	"github.com/wesen/snapcanvas/pkg/scene"
)

// ErrScript wraps every failure raised while running a script.
var ErrScript = errors.New("scenescript: script failed")

// DefaultTimeout bounds how long a script may run.
const DefaultTimeout = 2 * time.Second

// Script runs scene programs against one store.
type Script struct {
	Output  []string
	Timeout time.Duration

	store   *scene.Store
	runtime *goja.Runtime
}

// New creates a script environment with an empty store.
func New() *Script {
	s := &Script{
		Timeout: DefaultTimeout,
		store:   scene.NewStore(),
		runtime: goja.New(),
	}

	s.runtime.Set("print", func(call goja.FunctionCall) goja.Value {
		parts := make([]string, len(call.Arguments))
		for i, arg := range call.Arguments {
			parts[i] = arg.String()
		}
		s.Output = append(s.Output, strings.Join(parts, " "))
		return goja.Undefined()
	})

	s.runtime.Set("rect", s.constructor(scene.TypeShape, geom.ShapeRectangle))
	s.runtime.Set("roundedRect", s.constructor(scene.TypeShape, geom.ShapeRoundedRect))
	s.runtime.Set("circle", s.constructor(scene.TypeShape, geom.ShapeCircle))
	s.runtime.Set("triangle", s.constructor(scene.TypeShape, geom.ShapeTriangle))
	s.runtime.Set("text", s.constructor(scene.TypeText, ""))
	s.runtime.Set("image", s.constructor(scene.TypeImage, ""))
	s.runtime.Set("group", s.group)
	s.runtime.Set("move", s.move)

	return s
}

// Store returns the scene built so far.
func (s *Script) Store() *scene.Store { return s.store }

// Run executes src. Elements added before a failure stay in the store.
func (s *Script) Run(name, src string) error {
	s.runtime.ClearInterrupt()
	if s.Timeout > 0 {
		timer := time.AfterFunc(s.Timeout, func() {
			s.runtime.Interrupt("timeout")
		})
		defer timer.Stop()
	}
	if _, err := s.runtime.RunScript(name, src); err != nil {
		var interrupted *goja.InterruptedError
		if errors.As(err, &interrupted) {
			s.runtime.ClearInterrupt()
			return fmt.Errorf("%w: %s: interrupted after %v", ErrScript, name, s.Timeout)
		}
		return fmt.Errorf("%w: %w", ErrScript, err)
	}
	return nil
}

// Load runs src in a fresh environment and returns the resulting scene.
func Load(src string) (*scene.Store, error) {
	s := New()
	if err := s.Run("scene.js", src); err != nil {
		return nil, err
	}
	return s.Store(), nil
}

// LoadFile reads and runs the script at path.
func LoadFile(path string) (*scene.Store, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene %s: %w", path, err)
	}
	s := New()
	if err := s.Run(path, string(src)); err != nil {
		return nil, err
	}
	return s.Store(), nil
}

// ── Builtins ──

func (s *Script) constructor(typ scene.Type, shape geom.Shape) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		opts, err := s.options(call.Argument(0))
		if err != nil {
			panic(s.runtime.NewTypeError("%s", err.Error()))
		}
		el := scene.Element{
			ID:        opts.str("id", ""),
			Type:      typ,
			ShapeType: shape,
			X:         opts.num("x", 0),
			Y:         opts.num("y", 0),
			Width:     opts.num("w", defaultSize(typ).Width),
			Height:    opts.num("h", defaultSize(typ).Height),
			Rotation:  opts.num("rotation", 0),
			Visible:   opts.flag("visible", true),
			ZIndex:    int(opts.num("z", float64(s.store.Len()))),
			Label:     opts.str("label", ""),
		}
		if el.ID != "" {
			if _, exists := s.store.Get(el.ID); exists {
				panic(s.runtime.NewTypeError("duplicate id %q", el.ID))
			}
		}
		return s.runtime.ToValue(s.store.Add(el))
	}
}

func (s *Script) group(call goja.FunctionCall) goja.Value {
	var ids []string
	if err := s.runtime.ExportTo(call.Argument(0), &ids); err != nil {
		panic(s.runtime.NewTypeError("group expects an array of ids"))
	}
	gid, err := s.store.Group(ids)
	if err != nil {
		panic(s.runtime.NewGoError(err))
	}
	return s.runtime.ToValue(gid)
}

func (s *Script) move(call goja.FunctionCall) goja.Value {
	id := call.Argument(0).String()
	dx, dy := call.Argument(1).ToFloat(), call.Argument(2).ToFloat()
	if math.IsNaN(dx) || math.IsNaN(dy) {
		panic(s.runtime.NewTypeError("move expects numeric offsets"))
	}
	if err := s.store.Move(id, dx, dy); err != nil {
		panic(s.runtime.NewGoError(err))
	}
	return goja.Undefined()
}

func defaultSize(typ scene.Type) geom.Rect {
	if typ == scene.TypeText {
		return geom.R(0, 0, 120, 30)
	}
	return geom.R(0, 0, 100, 100)
}

// options is the exported form of a constructor's argument object.
type options map[string]any

func (s *Script) options(v goja.Value) (options, error) {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return options{}, nil
	}
	m, ok := v.Export().(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected an options object, got %s", v.String())
	}
	return options(m), nil
}

func (o options) num(key string, def float64) float64 {
	var f float64
	switch v := o[key].(type) {
	case int64:
		f = float64(v)
	case float64:
		f = v
	default:
		return def
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return def
	}
	return f
}

func (o options) str(key, def string) string {
	if v, ok := o[key].(string); ok {
		return v
	}
	return def
}

func (o options) flag(key string, def bool) bool {
	if v, ok := o[key].(bool); ok {
		return v
	}
	return def
}

//go:embed demo.js
var demoSrc string

// Demo returns the starter scene the playground opens without a file.
func Demo() (*scene.Store, error) {
	s := New()
	if err := s.Run("demo.js", demoSrc); err != nil {
		return nil, err
	}
	return s.Store(), nil
}
