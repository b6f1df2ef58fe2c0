// Package align computes snapping corrections and guidelines for an
// element being dragged among reference elements.
//
// The engine compares the nine snap points of the target against the snap
// points of every nearby reference and picks, independently per axis, the
// smallest correction within a zoom-scaled threshold. Guidelines connect
// the corrected target points to the reference points they line up with.
package align

import (
	"math"

	"github.com/wesen/snapcanvas/pkg/geom"
	"github.com/wesen/snapcanvas/pkg/scene"
)

// Axis is the orientation of a guideline.
type Axis string

const (
	Vertical   Axis = "vertical"
	Horizontal Axis = "horizontal"
)

// LineType says what kind of points a guideline connects.
type LineType string

const (
	LineCenter LineType = "center"
	LineVertex LineType = "vertex"
	LineEdge   LineType = "edge"
)

// Guideline connects a snapped target point to the reference point it
// aligns with.
type Guideline struct {
	Start geom.Point `json:"start"`
	End   geom.Point `json:"end"`
	Axis  Axis       `json:"axis"`
	Type  LineType   `json:"type"`
}

// Result is the correction to add to the drag delta and the guidelines to
// draw. DX and DY are zero when nothing is in range on that axis.
type Result struct {
	DX              float64     `json:"dx"`
	DY              float64     `json:"dy"`
	VerticalLines   []Guideline `json:"verticalLines"`
	HorizontalLines []Guideline `json:"horizontalLines"`
}

// Identity returns a result that changes nothing.
func Identity() Result {
	return Result{VerticalLines: []Guideline{}, HorizontalLines: []Guideline{}}
}

// Options tunes the engine.
type Options struct {
	// BaseThreshold is the snap distance in screen pixels at zoom 1.
	BaseThreshold float64
	// MinScale bounds the zoom used to scale the threshold.
	MinScale float64
	// NearbyFactor multiplies the threshold for the reference prefilter.
	NearbyFactor float64
	// SizeFactor adds a share of the target's larger side to the prefilter.
	SizeFactor float64
	// Disabled turns Snap into a no-op.
	Disabled bool
}

// DefaultOptions returns the stock snapping behavior.
func DefaultOptions() Options {
	return Options{
		BaseThreshold: 8,
		MinScale:      0.1,
		NearbyFactor:  20,
		SizeFactor:    0.75,
	}
}

// Engine is a configured alignment calculator. The zero value is not
// useful; start from DefaultOptions.
type Engine struct {
	Options Options
}

// NewEngine returns an engine with the given options.
func NewEngine(opts Options) *Engine { return &Engine{Options: opts} }

// Compute aligns target against refs with the default options. scale is the
// current viewport zoom.
func Compute(target geom.Geometry, refs []scene.Element, scale float64) Result {
	return (&Engine{Options: DefaultOptions()}).Compute(target, refs, scale)
}

// Threshold returns the snap distance in world units at the given zoom.
func (e *Engine) Threshold(scale float64) float64 {
	if !(scale > e.Options.MinScale) {
		scale = e.Options.MinScale
	}
	return e.Options.BaseThreshold / scale
}

type candidate struct {
	d           float64
	target, ref SnapPoint
}

// Compute aligns target against refs. Group children and invisible
// references are ignored. It does not look at Options.Disabled.
func (e *Engine) Compute(target geom.Geometry, refs []scene.Element, scale float64) Result {
	res := Identity()
	threshold := e.Threshold(scale)
	if math.IsNaN(threshold) || math.IsInf(threshold, 0) {
		return res
	}

	targetBox := geom.Box(target).AABB()
	if isPoint(targetBox) {
		return res
	}
	targetPts := SnapPoints(target)
	maxDist := threshold*e.Options.NearbyFactor +
		math.Max(targetBox.Width, targetBox.Height)*e.Options.SizeFactor

	var refPts [][]SnapPoint
	for _, ref := range refs {
		if !ref.IsTopLevel() || !ref.Visible {
			continue
		}
		bounds := RefBounds(ref)
		if isPoint(bounds) {
			continue
		}
		dx, dy := targetBox.Gap(bounds)
		if dx > maxDist || dy > maxDist {
			continue
		}
		refPts = append(refPts, SnapPoints(ref.Geometry()))
	}

	var xs, ys []candidate
	for _, tp := range targetPts {
		for _, pts := range refPts {
			for _, rp := range pts {
				if d := rp.X - tp.X; math.Abs(d) <= threshold {
					xs = append(xs, candidate{d: d, target: tp, ref: rp})
				}
				if d := rp.Y - tp.Y; math.Abs(d) <= threshold {
					ys = append(ys, candidate{d: d, target: tp, ref: rp})
				}
			}
		}
	}

	xs = closest(xs)
	ys = closest(ys)
	if len(xs) > 0 {
		res.DX = xs[0].d
	}
	if len(ys) > 0 {
		res.DY = ys[0].d
	}
	res.VerticalLines = guidelines(xs, Vertical, res.DX)
	res.HorizontalLines = guidelines(ys, Horizontal, res.DY)
	return res
}

// isPoint reports whether r has collapsed to a single point. Such boxes
// neither snap nor attract.
func isPoint(r geom.Rect) bool {
	return r.Width == 0 && r.Height == 0
}

// closest keeps the candidates whose |d| equals the minimum, in order.
func closest(cs []candidate) []candidate {
	if len(cs) == 0 {
		return nil
	}
	best := math.Inf(1)
	for _, c := range cs {
		best = math.Min(best, math.Abs(c.d))
	}
	var out []candidate
	for _, c := range cs {
		if math.Abs(c.d) == best {
			out = append(out, c)
		}
	}
	return out
}

type lineKey struct {
	axis Axis
	pos  float64
}

func guidelines(cs []candidate, axis Axis, offset float64) []Guideline {
	out := []Guideline{}
	seen := make(map[lineKey]bool)
	for _, c := range cs {
		start := c.target.Point
		pos := 0.0
		if axis == Vertical {
			start.X += offset
			pos = start.X
		} else {
			start.Y += offset
			pos = start.Y
		}
		key := lineKey{axis, math.Round(pos*100) / 100}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, Guideline{
			Start: start,
			End:   c.ref.Point,
			Axis:  axis,
			Type:  lineType(c.target.Type, c.ref.Type),
		})
	}
	return out
}

func lineType(a, b SnapType) LineType {
	switch {
	case a == SnapCenter || b == SnapCenter:
		return LineCenter
	case a == SnapVertex || b == SnapVertex:
		return LineVertex
	}
	return LineEdge
}
