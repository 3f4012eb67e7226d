package system

import (
	"github.com/milk9111/savematter/ecs"
	"github.com/milk9111/savematter/ecs/component"
)

// PlatformMotionSystem moves linear platforms and saws between their end
// points and records each one's displacement for riders.
type PlatformMotionSystem struct{}

func NewPlatformMotionSystem() *PlatformMotionSystem {
	return &PlatformMotionSystem{}
}

func (s *PlatformMotionSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Delta()

	ecs.ForEach2(w, component.MovingPlatformComponent.Kind(), component.BodyComponent.Kind(), func(e ecs.Entity, mp *component.MovingPlatform, body *component.Body) {
		body.Snapshot()
		before := body.Rect.Center()

		body.Move(mp.Direction.X*mp.Speed*dt, mp.Direction.Y*mp.Speed*dt)
		checkBorder(mp, body)

		after := body.Rect.Center()
		mp.Displacement = after.Sub(before)

		if mp.Flip {
			if sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
				sprite.FacingLeft = mp.Axis == component.AxisX && mp.Reverse
				sprite.FlipY = mp.Axis == component.AxisY && mp.Reverse
			}
		}
	})
}

// checkBorder turns the platform around when its leading edge reaches an
// end point, clamping the edge onto it.
func checkBorder(mp *component.MovingPlatform, body *component.Body) {
	r := &body.Rect
	switch mp.Axis {
	case component.AxisX:
		if r.Right() >= mp.End.X && mp.Direction.X > 0 {
			mp.Direction.X = -1
			body.Move(mp.End.X-r.Right(), 0)
		}
		if r.Left() <= mp.Start.X && mp.Direction.X < 0 {
			mp.Direction.X = 1
			body.Move(mp.Start.X-r.Left(), 0)
		}
		mp.Reverse = mp.Direction.X < 0
	case component.AxisY:
		if r.Bottom() >= mp.End.Y && mp.Direction.Y > 0 {
			mp.Direction.Y = -1
			body.Move(0, mp.End.Y-r.Bottom())
		}
		if r.Top() <= mp.Start.Y && mp.Direction.Y < 0 {
			mp.Direction.Y = 1
			body.Move(0, mp.Start.Y-r.Top())
		}
		mp.Reverse = mp.Direction.Y < 0
	}
}
