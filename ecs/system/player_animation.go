package system

import (
	"github.com/milk9111/savematter/ecs"
	"github.com/milk9111/savematter/ecs/component"
)

// PlayerAnimationSystem picks the player's animation state from contact and
// velocity, advances it and ends attacks once their cycle has played.
type PlayerAnimationSystem struct{}

func NewPlayerAnimationSystem() *PlayerAnimationSystem {
	return &PlayerAnimationSystem{}
}

func (s *PlayerAnimationSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	e, ok := w.First(component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	player := ecs.MustGet(w, e, component.PlayerComponent.Kind(), "player animation")
	vel := ecs.MustGet(w, e, component.VelocityComponent.Kind(), "player animation")
	contact := ecs.MustGet(w, e, component.SurfaceContactComponent.Kind(), "player animation")
	anim := ecs.MustGet(w, e, component.AnimationComponent.Kind(), "player animation")

	anim.State = PlayerAnimState(player, contact, vel)
	AnimatePlayer(player, anim, w.Delta())

	if sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
		sprite.FacingLeft = !player.FacingRight
	}
}

// PlayerAnimState maps the player's situation to an animation state.
func PlayerAnimState(player *component.Player, contact *component.SurfaceContact, vel *component.Velocity) string {
	switch {
	case contact.Floor:
		if player.Attacking {
			return component.AnimAttack
		}
		if vel.X == 0 {
			return component.AnimIdle
		}
		return component.AnimRun
	case player.Attacking:
		return component.AnimAirAttack
	case contact.Left || contact.Right:
		return component.AnimWall
	case vel.Y < 0:
		return component.AnimJump
	default:
		return component.AnimFall
	}
}

// AnimatePlayer advances the frame index. A finished ground attack falls
// back to idle, and the attack flag clears once the index passes the end of
// the current state's cycle.
func AnimatePlayer(player *component.Player, anim *component.Animation, dt float64) {
	anim.Frame += anim.Speed * dt
	if anim.State == component.AnimAttack && anim.Frame >= float64(anim.FrameCount(component.AnimAttack)) {
		anim.State = component.AnimIdle
	}
	if player.Attacking && anim.Frame > float64(anim.FrameCount(anim.State)) {
		player.Attacking = false
	}
}
