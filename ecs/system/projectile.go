package system

import (
	"github.com/milk9111/savematter/ecs"
	"github.com/milk9111/savematter/ecs/component"
)

// ProjectileSystem flies projectiles in a straight line and removes them
// once their lifetime runs out.
type ProjectileSystem struct{}

func NewProjectileSystem() *ProjectileSystem {
	return &ProjectileSystem{}
}

func (s *ProjectileSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Delta()

	ecs.ForEach2(w, component.ProjectileComponent.Kind(), component.BodyComponent.Kind(), func(e ecs.Entity, p *component.Projectile, body *component.Body) {
		if p.Lifetime != nil && !p.Lifetime.Active() {
			w.DestroyEntity(e)
			return
		}
		body.Snapshot()
		body.Move(p.Direction*p.Speed*dt, 0)
	})
}
