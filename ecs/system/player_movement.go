package system

import (
	"github.com/milk9111/savematter/common"
	"github.com/milk9111/savematter/ecs"
	"github.com/milk9111/savematter/ecs/component"
)

// PlayerMovementSystem integrates the player's velocity and resolves the
// hitbox against solid and one-way geometry, one axis at a time. Which side
// of an obstacle the player hit is decided from both rectangles as they were
// at the start of the frame.
type PlayerMovementSystem struct{}

func NewPlayerMovementSystem() *PlayerMovementSystem {
	return &PlayerMovementSystem{}
}

func (s *PlayerMovementSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	e, ok := w.First(component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	player := ecs.MustGet(w, e, component.PlayerComponent.Kind(), "player movement")
	body := ecs.MustGet(w, e, component.BodyComponent.Kind(), "player movement")
	vel := ecs.MustGet(w, e, component.VelocityComponent.Kind(), "player movement")
	contact := ecs.MustGet(w, e, component.SurfaceContactComponent.Kind(), "player movement")
	timers := ecs.MustGet(w, e, component.TimersComponent.Kind(), "player movement")
	if !body.HasHitbox {
		panic("player movement system: player has no hitbox")
	}

	dt := w.Delta()
	tuning := player.Tuning
	space := newObstacleSpace(w)

	body.Snapshot()

	// Ride along with last frame's platform. Platforms have already moved
	// this frame, so the carry goes first and the resolver sees the player
	// where the platform took it.
	if contact.Platform != 0 {
		if mp, ok := ecs.Get(w, ecs.EntityFromRaw(contact.Platform), component.MovingPlatformComponent.Kind()); ok {
			body.Hitbox.Move(mp.Displacement)
		}
	}

	body.Hitbox.X += vel.X * dt
	resolveHorizontal(&body.Hitbox, body.OldHitbox, space.near(body.Hitbox, body.OldHitbox, component.LayerSolid))

	if !contact.Floor && contact.OnWall() && !timers.Active(component.TimerWallSlideBlock) {
		vel.Y = 0
		body.Hitbox.Y += tuning.Gravity / tuning.WallSlide * dt
	} else {
		vel.Y += tuning.Gravity / 2 * dt
		body.Hitbox.Y += vel.Y * dt
		vel.Y += tuning.Gravity / 2 * dt
	}

	if player.JumpRequested {
		switch {
		case contact.Floor:
			vel.Y = -tuning.JumpSpeed
			timers.Activate(component.TimerWallSlideBlock)
			body.Hitbox.Y--
			w.Events().Emit(ecs.EventSound, ecs.SoundCue{Name: "jump"})
		case contact.OnWall() && !timers.Active(component.TimerWallSlideBlock):
			timers.Activate(component.TimerWallJump)
			vel.Y = -tuning.JumpSpeed
			if contact.Left {
				vel.X = tuning.Speed
			} else {
				vel.X = -tuning.Speed
			}
			w.Events().Emit(ecs.EventSound, ecs.SoundCue{Name: "jump"})
		}
		player.JumpRequested = false
	}

	resolveVertical(&body.Hitbox, body.OldHitbox, &vel.Y, space.near(body.Hitbox, body.OldHitbox, component.LayerSolid), tuning.CeilingPush)
	if !timers.Active(component.TimerPlatformFall) {
		resolveOneWay(&body.Hitbox, body.OldHitbox, &vel.Y, space.near(body.Hitbox, body.OldHitbox, component.LayerOneWay))
	}

	body.SyncRect()
}

func resolveHorizontal(hitbox *common.Rect, old common.Rect, solids []obstacle) {
	for _, o := range solids {
		if !o.rect.Intersects(*hitbox) {
			continue
		}
		if hitbox.Left() <= o.rect.Right() && old.Left() >= o.old.Right()-sideTolerance {
			hitbox.SetLeft(o.rect.Right())
		}
		if hitbox.Right() >= o.rect.Left() && old.Right() <= o.old.Left()+sideTolerance {
			hitbox.SetRight(o.rect.Left())
		}
	}
}

func resolveVertical(hitbox *common.Rect, old common.Rect, vy *float64, solids []obstacle, ceilingPush float64) {
	for _, o := range solids {
		if !o.rect.Intersects(*hitbox) {
			continue
		}
		if hitbox.Top() <= o.rect.Bottom() && old.Top() >= o.old.Bottom()-sideTolerance {
			hitbox.SetTop(o.rect.Bottom())
			if o.moving {
				hitbox.Y += ceilingPush
			}
		}
		if hitbox.Bottom() >= o.rect.Top() && old.Bottom() <= o.old.Top()+sideTolerance {
			hitbox.SetBottom(o.rect.Top())
		}
		*vy = 0
	}
}

// resolveOneWay only ever stops a body that was above the platform's top
// edge at the start of the frame.
func resolveOneWay(hitbox *common.Rect, old common.Rect, vy *float64, oneWays []obstacle) {
	for _, o := range oneWays {
		if !o.rect.Intersects(*hitbox) {
			continue
		}
		if hitbox.Bottom() >= o.rect.Top() && old.Bottom() <= o.old.Top()+sideTolerance {
			hitbox.SetBottom(o.rect.Top())
			if *vy > 0 {
				*vy = 0
			}
		}
	}
}
