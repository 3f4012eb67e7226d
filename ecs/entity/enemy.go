package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"golang.org/x/image/colornames"

	"github.com/milk9111/savematter/ecs"
	"github.com/milk9111/savematter/ecs/component"
	"github.com/milk9111/savematter/levels"
	"github.com/milk9111/savematter/prefabs"
)

// buildTooth adds a patrolling hostile heading off in a random direction.
func buildTooth(w *ecs.World, ctx *Context, obj levels.Entity) error {
	spec := ctx.Bundle.Enemies.Patrol
	reverse, err := ctx.timer(spec.ReverseCooldown)
	if err != nil {
		return fmt.Errorf("tooth: reverse timer: %w", err)
	}
	dir := 1.0
	if ctx.Rand.IntN(2) == 0 {
		dir = -1
	}

	e := w.CreateEntity()
	sprite := spriteOf(spec.Sprite, colornames.Firebrick)
	sprite.FacingLeft = dir < 0
	if err := addDrawn(w, e, staticBody(rectOf(spec.Size, obj.X, obj.Y)), sprite, component.LayerMain); err != nil {
		return fmt.Errorf("tooth: %w", err)
	}
	if err := ecs.Add(w, e, component.PatrolComponent.Kind(), &component.Patrol{Direction: dir, Speed: spec.Speed, Reverse: reverse}); err != nil {
		return fmt.Errorf("tooth: add patrol: %w", err)
	}
	if err := ecs.Add(w, e, component.AnimationComponent.Kind(), animationOf(spec.Animation, component.AnimRun, true)); err != nil {
		return fmt.Errorf("tooth: add animation: %w", err)
	}
	if err := ecs.Add(w, e, component.DamageComponent.Kind(), &component.Damage{}); err != nil {
		return fmt.Errorf("tooth: add damage: %w", err)
	}
	if err := ecs.Add(w, e, component.MeleeTargetTagComponent.Kind(), &component.MeleeTargetTag{}); err != nil {
		return fmt.Errorf("tooth: add melee target: %w", err)
	}
	return nil
}

type shellProps struct {
	Reverse bool `yaml:"reverse"`
}

// buildShell adds a stationary turret that is also solid ground.
func buildShell(w *ecs.World, ctx *Context, obj levels.Entity) error {
	spec := ctx.Bundle.Enemies.Turret
	props, err := prefabs.DecodeSpec[shellProps](obj.Props)
	if err != nil {
		return fmt.Errorf("shell props: %w", err)
	}
	cooldown, err := ctx.timer(spec.Cooldown)
	if err != nil {
		return fmt.Errorf("shell: cooldown timer: %w", err)
	}
	dir := 1.0
	if props.Reverse {
		dir = -1
	}

	e := w.CreateEntity()
	sprite := spriteOf(spec.Sprite, colornames.Mediumpurple)
	sprite.FacingLeft = props.Reverse
	if err := addDrawn(w, e, staticBody(rectOf(spec.Size, obj.X, obj.Y)), sprite, component.LayerMain); err != nil {
		return fmt.Errorf("shell: %w", err)
	}
	if err := addCollider(w, e, component.LayerSolid); err != nil {
		return fmt.Errorf("shell: %w", err)
	}
	if err := ecs.Add(w, e, component.TurretComponent.Kind(), &component.Turret{
		Direction: dir,
		Range:     spec.Range,
		Tolerance: spec.Tolerance,
		FireFrame: spec.FireFrame,
		Muzzle:    spec.Muzzle,
		Cooldown:  cooldown,
	}); err != nil {
		return fmt.Errorf("shell: add turret: %w", err)
	}
	if err := ecs.Add(w, e, component.AnimationComponent.Kind(), animationOf(spec.Animation, component.AnimIdle, false)); err != nil {
		return fmt.Errorf("shell: add animation: %w", err)
	}
	return nil
}

// SpawnProjectile fires a pearl centered on x, y. Its lifetime starts
// immediately.
func SpawnProjectile(w *ecs.World, ctx *Context, x, y, dir float64) (ecs.Entity, error) {
	spec := ctx.Bundle.Enemies.Projectile
	lifetime, err := ctx.timer(spec.Lifetime)
	if err != nil {
		return 0, fmt.Errorf("pearl: lifetime timer: %w", err)
	}
	reverse, err := ctx.timer(spec.ReverseCooldown)
	if err != nil {
		return 0, fmt.Errorf("pearl: reverse timer: %w", err)
	}
	lifetime.Activate()

	r := rectOf(spec.Size, 0, 0)
	r.SetCenter(cp.Vector{X: x, Y: y})

	e := w.CreateEntity()
	if err := addDrawn(w, e, staticBody(r), spriteOf(spec.Sprite, colornames.Ghostwhite), component.LayerMain); err != nil {
		return 0, fmt.Errorf("pearl: %w", err)
	}
	if err := ecs.Add(w, e, component.ProjectileComponent.Kind(), &component.Projectile{
		Direction: dir,
		Speed:     spec.Speed,
		Lifetime:  lifetime,
		Reverse:   reverse,
	}); err != nil {
		return 0, fmt.Errorf("pearl: add projectile: %w", err)
	}
	if err := ecs.Add(w, e, component.DamageComponent.Kind(), &component.Damage{Deflectable: true}); err != nil {
		return 0, fmt.Errorf("pearl: add damage: %w", err)
	}
	if err := ecs.Add(w, e, component.MeleeTargetTagComponent.Kind(), &component.MeleeTargetTag{}); err != nil {
		return 0, fmt.Errorf("pearl: add melee target: %w", err)
	}
	return e, nil
}
