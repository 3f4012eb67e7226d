package system

import (
	"math"

	"github.com/milk9111/savematter/ecs"
	"github.com/milk9111/savematter/ecs/component"
)

// TurretSystem starts a firing cycle when the player stands level with a
// turret, in front of it and within range, and asks for a projectile on the
// firing frame.
type TurretSystem struct{}

func NewTurretSystem() *TurretSystem {
	return &TurretSystem{}
}

func (s *TurretSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Delta()

	player, ok := w.First(component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	target := ecs.MustGet(w, player, component.BodyComponent.Kind(), "turret").Bounds().Center()

	ecs.ForEach3(w, component.TurretComponent.Kind(), component.BodyComponent.Kind(), component.AnimationComponent.Kind(), func(_ ecs.Entity, t *component.Turret, body *component.Body, anim *component.Animation) {
		pos := body.Rect.Center()

		near := pos.Distance(target) < t.Range
		front := pos.X < target.X
		if t.Direction < 0 {
			front = pos.X > target.X
		}
		level := math.Abs(pos.Y-target.Y) < t.Tolerance

		if near && front && level && !t.Cooldown.Active() {
			anim.State = component.AnimFire
			anim.Frame = 0
			t.Firing = true
			t.Cooldown.Activate()
		}

		anim.Frame += anim.Speed * dt
		if int(anim.Frame) < anim.FrameCount(anim.State) {
			if t.Firing && int(anim.Frame) == t.FireFrame && !t.HasFired {
				w.Events().Emit(ecs.EventSpawnProjectile, ecs.SpawnProjectile{
					X:         pos.X + t.Muzzle*t.Direction,
					Y:         pos.Y,
					Direction: t.Direction,
				})
				t.HasFired = true
			}
			return
		}

		anim.Frame = 0
		if t.Firing {
			anim.State = component.AnimIdle
			t.Firing = false
			t.HasFired = false
		}
	})
}
