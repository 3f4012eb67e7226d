package system

import (
	"github.com/milk9111/savematter/ecs"
	"github.com/milk9111/savematter/ecs/component"
)

// AnimationSystem advances looping decorative animations.
type AnimationSystem struct{}

func NewAnimationSystem() *AnimationSystem {
	return &AnimationSystem{}
}

func (s *AnimationSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Delta()

	ecs.ForEach(w, component.AnimationComponent.Kind(), func(_ ecs.Entity, anim *component.Animation) {
		if anim.Looping {
			anim.Frame += anim.Speed * dt
		}
	})
}
