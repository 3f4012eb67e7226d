package system

import (
	"github.com/milk9111/savematter/ecs"
	"github.com/milk9111/savematter/ecs/component"
)

// ParticleSystem plays one-shot effects and removes them after their last
// frame.
type ParticleSystem struct{}

func NewParticleSystem() *ParticleSystem {
	return &ParticleSystem{}
}

func (s *ParticleSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Delta()

	ecs.ForEach(w, component.ParticleComponent.Kind(), func(e ecs.Entity, p *component.Particle) {
		p.Frame += p.Speed * dt
		if p.Frame >= float64(p.Frames) {
			w.DestroyEntity(e)
		}
	})
}
