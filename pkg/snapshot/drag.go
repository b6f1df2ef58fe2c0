package snapshot

import (
	"fmt"

	"github.com/wesen/snapcanvas/pkg/align"
	"github.com/wesen/snapcanvas/pkg/scene"
)

// Drag moves ids by (dx, dy) the way a pointer drag at zoom would: the
// moved geometry is snapped against the rest of the scene and the store
// receives the corrected offset. The returned result carries the
// guidelines to draw.
func Drag(store *scene.Store, eng *align.Engine, ids []string, dx, dy, zoom float64) (align.Result, error) {
	for _, id := range ids {
		if _, ok := store.Get(id); !ok {
			return align.Identity(), fmt.Errorf("drag %s: %w", id, scene.ErrNotFound)
		}
	}
	elements := store.Elements()
	target, ok := align.DragTarget(elements, ids, dx, dy)
	if !ok {
		return align.Identity(), fmt.Errorf("drag %v: %w", ids, scene.ErrNotFound)
	}
	res := eng.Snap(target, elements, ids, zoom)
	for _, id := range ids {
		if err := store.Move(id, dx+res.DX, dy+res.DY); err != nil {
			return res, fmt.Errorf("drag %s: %w", id, err)
		}
	}
	return res, nil
}
