package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/savematter/common"
	"github.com/milk9111/savematter/ecs"
	"github.com/milk9111/savematter/ecs/component"
)

// OrbitSystem swings bodies around a fixed center. Positions are recomputed
// from the angle every frame so they never drift off the circle.
type OrbitSystem struct{}

func NewOrbitSystem() *OrbitSystem {
	return &OrbitSystem{}
}

func (s *OrbitSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Delta()

	ecs.ForEach2(w, component.OrbitComponent.Kind(), component.BodyComponent.Kind(), func(_ ecs.Entity, o *component.Orbit, body *component.Body) {
		body.Snapshot()
		AdvanceOrbit(o, dt)
		body.Rect.SetCenter(OrbitPosition(o))
		if body.HasHitbox {
			body.Hitbox.SetCenter(body.Rect.Center())
		}
	})
}

// AdvanceOrbit moves the angle and turns a bounded orbit around at its end
// angles.
func AdvanceOrbit(o *component.Orbit, dt float64) {
	o.Angle += o.Direction * o.Speed * dt
	if o.FullCircle() {
		return
	}
	if o.Angle >= o.EndAngle {
		o.Direction = -1
	}
	if o.Angle < o.StartAngle {
		o.Direction = 1
	}
}

// OrbitPosition is the point on the circle for the current angle.
func OrbitPosition(o *component.Orbit) cp.Vector {
	return o.Center.Add(cp.ForAngle(common.Radians(o.Angle)).Mult(o.Radius))
}
