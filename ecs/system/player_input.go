package system

import (
	"github.com/milk9111/savematter/common"
	"github.com/milk9111/savematter/ecs"
	"github.com/milk9111/savematter/ecs/component"
)

// PlayerInputSystem turns the frame's Input into player intent: horizontal
// velocity, facing, drop-through, attacks and jump requests.
type PlayerInputSystem struct{}

func NewPlayerInputSystem() *PlayerInputSystem {
	return &PlayerInputSystem{}
}

func (s *PlayerInputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	e, ok := w.First(component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	in, ok := ecs.Get(w, e, component.InputComponent.Kind())
	if !ok {
		return
	}
	player := ecs.MustGet(w, e, component.PlayerComponent.Kind(), "player input")
	vel := ecs.MustGet(w, e, component.VelocityComponent.Kind(), "player input")
	timers := ecs.MustGet(w, e, component.TimersComponent.Kind(), "player input")
	anim := ecs.MustGet(w, e, component.AnimationComponent.Kind(), "player input")

	// A wall jump owns the horizontal push until its timer runs out.
	if !timers.Active(component.TimerWallJump) {
		x := common.Clamp(in.MoveX, -1, 1)
		switch {
		case x > 0:
			player.FacingRight = true
		case x < 0:
			player.FacingRight = false
		}
		vel.X = x * player.Tuning.Speed

		if in.Down {
			timers.Activate(component.TimerPlatformFall)
		}

		if in.Attack && !timers.Active(component.TimerAttackBlock) {
			player.Attacking = true
			anim.Frame = 0
			timers.Activate(component.TimerAttackBlock)
			w.Events().Emit(ecs.EventSound, ecs.SoundCue{Name: "attack"})
		}
	}

	if in.Jump {
		player.JumpRequested = true
	}
}
