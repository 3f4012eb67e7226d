package system

import (
	"sort"

	"github.com/milk9111/savematter/ecs"
	"github.com/milk9111/savematter/ecs/component"
)

// PaintEntry is one drawable body as seen by the painter.
type PaintEntry struct {
	Entity  ecs.Entity
	Layer   int
	CenterY float64
}

// SortPaintOrder orders entries back to front: ascending layer, and bodies
// on the main layer by ascending vertical center. Ties keep their input
// order.
func SortPaintOrder(entries []PaintEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Layer != b.Layer {
			return a.Layer < b.Layer
		}
		if a.Layer == component.LayerMain {
			return a.CenterY < b.CenterY
		}
		return false
	})
}

// PaintOrder collects every drawable body in the world in paint order.
func PaintOrder(w *ecs.World) []PaintEntry {
	var entries []PaintEntry
	ecs.ForEach2(w, component.RenderLayerComponent.Kind(), component.BodyComponent.Kind(), func(e ecs.Entity, layer *component.RenderLayer, body *component.Body) {
		entries = append(entries, PaintEntry{Entity: e, Layer: layer.Index, CenterY: body.Rect.CenterY()})
	})
	SortPaintOrder(entries)
	return entries
}
