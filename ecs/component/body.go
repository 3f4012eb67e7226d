package component

import "github.com/milk9111/savematter/common"

// Body is the placement of anything that takes part in the simulation.
// Rect is the visual rectangle. Actors that collide with a smaller box than
// they draw carry a Hitbox as well; its center is kept on the Rect center.
type Body struct {
	Rect      common.Rect
	OldRect   common.Rect
	Hitbox    common.Rect
	OldHitbox common.Rect
	HasHitbox bool
}

// Bounds is the rectangle used for collision and overlap tests.
func (b *Body) Bounds() common.Rect {
	if b.HasHitbox {
		return b.Hitbox
	}
	return b.Rect
}

// OldBounds is Bounds as it was at the last Snapshot.
func (b *Body) OldBounds() common.Rect {
	if b.HasHitbox {
		return b.OldHitbox
	}
	return b.OldRect
}

// Snapshot records the current rectangles as the previous-frame state.
func (b *Body) Snapshot() {
	b.OldRect = b.Rect
	b.OldHitbox = b.Hitbox
}

// Move translates both rectangles.
func (b *Body) Move(dx, dy float64) {
	b.Rect.X += dx
	b.Rect.Y += dy
	b.Hitbox.X += dx
	b.Hitbox.Y += dy
}

// SyncRect re-centers the visual rectangle on the hitbox.
func (b *Body) SyncRect() {
	if b.HasHitbox {
		b.Rect.SetCenter(b.Hitbox.Center())
	}
}

var BodyComponent = NewComponent[Body]()
