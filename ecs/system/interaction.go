package system

import (
	"fmt"

	"github.com/milk9111/savematter/common"
	"github.com/milk9111/savematter/ecs"
	"github.com/milk9111/savematter/ecs/component"
	"github.com/milk9111/savematter/timer"
)

// ProgressState is the run-wide resource state damage and pickups change.
type ProgressState interface {
	Health() int
	SetHealth(int)
	Coins() int
	SetCoins(int)
}

// PickupEffects maps a pickup kind to its effect on health and coins.
type PickupEffects interface {
	Apply(kind string, health, coins int) (int, int, error)
}

// InteractionSystem runs the cross-entity checks once movement has settled:
// projectiles against walls, hazards and pickups against the player, the
// player's attack against enemies, and the level exits. The order of the
// checks is part of the game rules.
type InteractionSystem struct {
	progress ProgressState
	effects  PickupEffects
}

func NewInteractionSystem(progress ProgressState, effects PickupEffects) *InteractionSystem {
	return &InteractionSystem{progress: progress, effects: effects}
}

func (s *InteractionSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	playerEntity, ok := w.First(component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	player := ecs.MustGet(w, playerEntity, component.PlayerComponent.Kind(), "interaction")
	body := ecs.MustGet(w, playerEntity, component.BodyComponent.Kind(), "interaction")
	timers := ecs.MustGet(w, playerEntity, component.TimersComponent.Kind(), "interaction")

	s.projectilesVsSolids(w)
	s.hazards(w, body, timers)
	s.pickups(w, body)
	s.melee(w, player, body)
	if s.levelBounds(w, body) {
		return
	}
	s.goal(w, body)
}

func (s *InteractionSystem) projectilesVsSolids(w *ecs.World) {
	space := newObstacleSpace(w)

	ecs.ForEach2(w, component.ProjectileComponent.Kind(), component.BodyComponent.Kind(), func(e ecs.Entity, _ *component.Projectile, b *component.Body) {
		if !space.hits(b.Bounds(), component.LayerSolid) {
			return
		}
		w.DestroyEntity(e)
		emitEffect(w, b.Bounds())
	})
}

func (s *InteractionSystem) hazards(w *ecs.World, body *component.Body, timers *component.Timers) {
	ecs.ForEach2(w, component.DamageComponent.Kind(), component.BodyComponent.Kind(), func(e ecs.Entity, dmg *component.Damage, b *component.Body) {
		if !b.Bounds().Intersects(body.Hitbox) {
			return
		}
		if !timers.Active(component.TimerImmunity) {
			s.progress.SetHealth(s.progress.Health() - 1)
			timers.Activate(component.TimerImmunity)
			w.Events().Emit(ecs.EventSound, ecs.SoundCue{Name: "damage"})
		}
		if dmg.Deflectable {
			w.DestroyEntity(e)
			emitEffect(w, b.Bounds())
		}
	})
}

func (s *InteractionSystem) pickups(w *ecs.World, body *component.Body) {
	for _, e := range w.Query(component.PickupComponent.Kind(), component.BodyComponent.Kind()) {
		b, _ := ecs.Get(w, e, component.BodyComponent.Kind())
		if !b.Bounds().Intersects(body.Hitbox) {
			continue
		}
		pickup, _ := ecs.Get(w, e, component.PickupComponent.Kind())

		health, coins := s.progress.Health(), s.progress.Coins()
		newHealth, newCoins, err := s.effects.Apply(pickup.Kind, health, coins)
		if err != nil {
			panic(fmt.Sprintf("interaction system: pickup %q: %v", pickup.Kind, err))
		}
		if newHealth != health {
			s.progress.SetHealth(newHealth)
		}
		if newCoins != coins {
			s.progress.SetCoins(newCoins)
		}

		w.DestroyEntity(e)
		w.Events().Emit(ecs.EventSound, ecs.SoundCue{Name: "coin"})
		emitEffect(w, b.Bounds())
		return
	}
}

func (s *InteractionSystem) melee(w *ecs.World, player *component.Player, body *component.Body) {
	if !player.Attacking {
		return
	}
	ecs.ForEach2(w, component.MeleeTargetTagComponent.Kind(), component.BodyComponent.Kind(), func(e ecs.Entity, _ *component.MeleeTargetTag, b *component.Body) {
		if !b.Rect.Intersects(body.Rect) {
			return
		}
		targetX, playerX := b.Rect.CenterX(), body.Rect.CenterX()
		facing := (player.FacingRight && playerX < targetX) || (!player.FacingRight && playerX > targetX)
		if !facing {
			return
		}
		if p, ok := ecs.Get(w, e, component.ProjectileComponent.Kind()); ok {
			reverse(&p.Direction, p.Reverse)
		}
		if p, ok := ecs.Get(w, e, component.PatrolComponent.Kind()); ok {
			reverse(&p.Direction, p.Reverse)
		}
	})
}

// levelBounds keeps the player inside the level horizontally and reports
// whether falling out of the bottom ended the level.
func (s *InteractionSystem) levelBounds(w *ecs.World, body *component.Body) bool {
	level, ok := w.First(component.LevelBoundsComponent.Kind())
	if !ok {
		return false
	}
	bounds, _ := ecs.Get(w, level, component.LevelBoundsComponent.Kind())

	if body.Hitbox.Left() < 0 {
		body.Hitbox.SetLeft(0)
	}
	if body.Hitbox.Right() > bounds.Width {
		body.Hitbox.SetRight(bounds.Width)
	}
	body.SyncRect()

	if body.Hitbox.Bottom() > bounds.Height {
		w.Events().Emit(ecs.EventLevelExit, ecs.LevelExit{Target: ecs.TargetOverworld, Value: ecs.PenaltyExit, HasValue: true})
		return true
	}
	return false
}

func (s *InteractionSystem) goal(w *ecs.World, body *component.Body) {
	for _, e := range w.Query(component.GoalComponent.Kind()) {
		goal, _ := ecs.Get(w, e, component.GoalComponent.Kind())
		if goal.Rect.Intersects(body.Hitbox) {
			w.Events().Emit(ecs.EventLevelExit, ecs.LevelExit{Target: ecs.TargetOverworld, Value: goal.Unlock, HasValue: true})
			return
		}
	}
}

// reverse turns a target around unless it was turned around recently.
func reverse(direction *float64, cooldown *timer.Timer) {
	if cooldown != nil && cooldown.Active() {
		return
	}
	*direction = -*direction
	if cooldown != nil {
		cooldown.Activate()
	}
}

func emitEffect(w *ecs.World, r common.Rect) {
	c := r.Center()
	w.Events().Emit(ecs.EventSpawnEffect, ecs.SpawnEffect{X: c.X, Y: c.Y})
}
