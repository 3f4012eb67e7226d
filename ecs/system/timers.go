package system

import (
	"github.com/milk9111/savematter/ecs"
	"github.com/milk9111/savematter/ecs/component"
	"github.com/milk9111/savematter/timer"
)

// TimerSystem polls every timer owned by a component once per frame, before
// any behavior reads them.
type TimerSystem struct{}

func NewTimerSystem() *TimerSystem {
	return &TimerSystem{}
}

func (s *TimerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.TimersComponent.Kind(), func(_ ecs.Entity, timers *component.Timers) {
		for _, t := range *timers {
			t.Update()
		}
	})
	ecs.ForEach(w, component.ProjectileComponent.Kind(), func(_ ecs.Entity, p *component.Projectile) {
		poll(p.Lifetime, p.Reverse)
	})
	ecs.ForEach(w, component.PatrolComponent.Kind(), func(_ ecs.Entity, p *component.Patrol) {
		poll(p.Reverse)
	})
	ecs.ForEach(w, component.TurretComponent.Kind(), func(_ ecs.Entity, t *component.Turret) {
		poll(t.Cooldown)
	})
	ecs.ForEach(w, component.SkyComponent.Kind(), func(_ ecs.Entity, sky *component.Sky) {
		poll(sky.CloudTimer)
	})
}

func poll(timers ...*timer.Timer) {
	for _, t := range timers {
		if t != nil {
			t.Update()
		}
	}
}
