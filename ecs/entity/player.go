package entity

import (
	"fmt"
	"time"

	"golang.org/x/image/colornames"

	"github.com/milk9111/savematter/ecs"
	"github.com/milk9111/savematter/ecs/component"
	"github.com/milk9111/savematter/prefabs"
)

var playerTimers = []string{
	component.TimerWallJump,
	component.TimerWallSlideBlock,
	component.TimerPlatformFall,
	component.TimerAttackBlock,
	component.TimerImmunity,
}

func tuningOf(spec *prefabs.PlayerSpec) component.PlayerTuning {
	return component.PlayerTuning{
		Speed:       spec.Speed,
		Gravity:     spec.Gravity,
		JumpSpeed:   spec.JumpSpeed,
		WallSlide:   spec.WallSlide,
		ProbeSize:   spec.ProbeSize,
		CeilingPush: spec.CeilingPush,
	}
}

// NewPlayerAt places the player with the top-left corner of its sprite at x, y.
func NewPlayerAt(w *ecs.World, ctx *Context, x, y float64) (ecs.Entity, error) {
	spec := ctx.Bundle.Player

	timers := make(component.Timers, len(playerTimers))
	for _, name := range playerTimers {
		ms, ok := spec.TimersMS[name]
		if !ok {
			return 0, fmt.Errorf("player: %w: no %s timer", prefabs.ErrInvalidSpec, name)
		}
		t, err := ctx.timer(ms)
		if err != nil {
			return 0, fmt.Errorf("player: timer %s: %w", name, err)
		}
		timers[name] = t
	}

	rect := rectOf(spec.Size, x, y)
	hitbox := rect.Inflate(-spec.HitboxInset.Width, -spec.HitboxInset.Height)

	player := w.CreateEntity()
	if err := ecs.Add(w, player, component.PlayerTagComponent.Kind(), &component.PlayerTag{}); err != nil {
		return 0, fmt.Errorf("player: add player tag: %w", err)
	}
	if err := ecs.Add(w, player, component.PlayerComponent.Kind(), &component.Player{
		Tuning:      tuningOf(spec),
		FacingRight: true,
	}); err != nil {
		return 0, fmt.Errorf("player: add player: %w", err)
	}
	if err := addDrawn(w, player, hitboxBody(rect, hitbox), spriteOf(spec.Sprite, colornames.Royalblue), component.LayerMain); err != nil {
		return 0, fmt.Errorf("player: %w", err)
	}
	if err := ecs.Add(w, player, component.VelocityComponent.Kind(), &component.Velocity{}); err != nil {
		return 0, fmt.Errorf("player: add velocity: %w", err)
	}
	if err := ecs.Add(w, player, component.SurfaceContactComponent.Kind(), &component.SurfaceContact{}); err != nil {
		return 0, fmt.Errorf("player: add contact: %w", err)
	}
	if err := ecs.Add(w, player, component.InputComponent.Kind(), &component.Input{}); err != nil {
		return 0, fmt.Errorf("player: add input: %w", err)
	}
	if err := ecs.Add(w, player, component.AnimationComponent.Kind(), animationOf(spec.Animation, component.AnimIdle, false)); err != nil {
		return 0, fmt.Errorf("player: add animation: %w", err)
	}
	if err := ecs.Add(w, player, component.TimersComponent.Kind(), &timers); err != nil {
		return 0, fmt.Errorf("player: add timers: %w", err)
	}
	return player, nil
}

// ApplyPlayerSpec pushes reloaded tuning onto the live player. Position,
// velocity and running timers are left alone.
func ApplyPlayerSpec(w *ecs.World, spec *prefabs.PlayerSpec) error {
	if err := spec.Validate(); err != nil {
		return err
	}
	e, ok := w.First(component.PlayerTagComponent.Kind())
	if !ok {
		return nil
	}
	if player, ok := ecs.Get(w, e, component.PlayerComponent.Kind()); ok {
		player.Tuning = tuningOf(spec)
	}
	if anim, ok := ecs.Get(w, e, component.AnimationComponent.Kind()); ok {
		anim.Speed = spec.Animation.Speed
		for k, v := range spec.Animation.Frames {
			anim.Counts[k] = v
		}
	}
	if timers, ok := ecs.Get(w, e, component.TimersComponent.Kind()); ok {
		for name, ms := range spec.TimersMS {
			if t, ok := (*timers)[name]; ok {
				t.SetDuration(time.Duration(ms) * time.Millisecond)
			}
		}
	}
	if sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
		sprite.Key = spec.Sprite.Image
		sprite.Color = spec.Sprite.Color.OrDefault(sprite.Color)
	}
	return nil
}
