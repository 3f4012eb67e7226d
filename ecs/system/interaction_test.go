package system

import (
	"fmt"
	"testing"
	"time"

	"github.com/milk9111/savematter/common"
	"github.com/milk9111/savematter/ecs"
	"github.com/milk9111/savematter/ecs/component"
)

type fakeProgress struct {
	health, coins int
}

func (p *fakeProgress) Health() int     { return p.health }
func (p *fakeProgress) SetHealth(v int) { p.health = v }
func (p *fakeProgress) Coins() int      { return p.coins }
func (p *fakeProgress) SetCoins(v int)  { p.coins = v }

// fakeEffects maps a kind to health and coin deltas.
type fakeEffects map[string][2]int

func (f fakeEffects) Apply(kind string, health, coins int) (int, int, error) {
	d, ok := f[kind]
	if !ok {
		return health, coins, fmt.Errorf("unknown pickup %q", kind)
	}
	return health + d[0], coins + d[1], nil
}

var testEffects = fakeEffects{"gold": {0, 5}, "potion": {1, 0}}

func newInteractionRig(t *testing.T) (*rig, *fakeProgress, *InteractionSystem) {
	r := newRig(t)
	level := r.w.CreateEntity()
	r.must(ecs.Add(r.w, level, component.LevelBoundsComponent.Kind(), &component.LevelBounds{Width: 1000, Height: 800}))
	r.addPlayer(100, 400)
	progress := &fakeProgress{health: 5}
	return r, progress, NewInteractionSystem(progress, testEffects)
}

func (r *rig) addBody(x, y, w, h float64) ecs.Entity {
	r.t.Helper()
	e := r.w.CreateEntity()
	rect := common.NewRect(x, y, w, h)
	r.must(ecs.Add(r.w, e, component.BodyComponent.Kind(), &component.Body{Rect: rect, OldRect: rect}))
	return e
}

func (r *rig) addProjectile(x, y float64, deflectable bool) (ecs.Entity, *component.Projectile) {
	r.t.Helper()
	e := r.addBody(x, y, 16, 16)
	lifetime := r.ms(5000)
	lifetime.Activate()
	p := &component.Projectile{Direction: 1, Speed: 150, Lifetime: lifetime, Reverse: r.ms(250)}
	r.must(ecs.Add(r.w, e, component.ProjectileComponent.Kind(), p))
	r.must(ecs.Add(r.w, e, component.DamageComponent.Kind(), &component.Damage{Deflectable: deflectable}))
	r.must(ecs.Add(r.w, e, component.MeleeTargetTagComponent.Kind(), &component.MeleeTargetTag{}))
	return e, p
}

func TestHazardDamageIsGatedByImmunity(t *testing.T) {
	r, progress, sys := newInteractionRig(t)
	hazard := r.addBody(120, 420, 20, 20)
	r.must(ecs.Add(r.w, hazard, component.DamageComponent.Kind(), &component.Damage{}))

	sys.Update(r.w)
	if progress.health != 4 {
		t.Fatalf("health = %d, want 4", progress.health)
	}
	if got := eventsOf(r.w.Events().Drain(), ecs.EventSound); len(got) != 1 {
		t.Fatalf("sounds = %d, want 1 damage cue", len(got))
	}

	sys.Update(r.w)
	if progress.health != 4 {
		t.Fatalf("immune player lost health: %d", progress.health)
	}
	if got := eventsOf(r.w.Events().Drain(), ecs.EventSound); len(got) != 0 {
		t.Fatalf("immune hit played %d sounds", len(got))
	}

	r.clock.Advance(0.65)
	NewTimerSystem().Update(r.w)
	sys.Update(r.w)
	if progress.health != 3 {
		t.Fatalf("health = %d after immunity ran out, want 3", progress.health)
	}
	if !r.w.IsAlive(hazard) {
		t.Fatalf("static hazards must survive contact")
	}
}

func TestDeflectableHazardIsDestroyed(t *testing.T) {
	r, progress, sys := newInteractionRig(t)
	r.timers().Activate(component.TimerImmunity)
	pearl, _ := r.addProjectile(120, 420, true)

	sys.Update(r.w)

	if r.w.IsAlive(pearl) {
		t.Fatalf("projectile should be destroyed on hit")
	}
	if progress.health != 5 {
		t.Fatalf("health = %d, immunity should have blocked the hit", progress.health)
	}
	events := r.w.Events().Drain()
	if got := eventsOf(events, ecs.EventSpawnEffect); len(got) != 1 {
		t.Fatalf("effects = %d, want 1", len(got))
	}
	if got := eventsOf(events, ecs.EventSound); len(got) != 0 {
		t.Fatalf("sounds = %d, want none while immune", len(got))
	}
}

func TestProjectileHitsSolid(t *testing.T) {
	r, _, sys := newInteractionRig(t)
	r.addSolid(600, 300, 64, 64)
	pearl, _ := r.addProjectile(590, 320, true)

	sys.Update(r.w)

	if r.w.IsAlive(pearl) {
		t.Fatalf("projectile should be destroyed by the wall")
	}
	effects := eventsOf(r.w.Events().Drain(), ecs.EventSpawnEffect)
	if len(effects) != 1 {
		t.Fatalf("effects = %d, want 1", len(effects))
	}
	if fx := effects[0].Data.(ecs.SpawnEffect); fx.X != 598 || fx.Y != 328 {
		t.Fatalf("effect at %v,%v, want projectile center 598,328", fx.X, fx.Y)
	}
}

func TestOnePickupPerFrame(t *testing.T) {
	r, progress, sys := newInteractionRig(t)
	gold := r.addBody(110, 410, 20, 20)
	r.must(ecs.Add(r.w, gold, component.PickupComponent.Kind(), &component.Pickup{Kind: "gold"}))
	potion := r.addBody(120, 420, 20, 20)
	r.must(ecs.Add(r.w, potion, component.PickupComponent.Kind(), &component.Pickup{Kind: "potion"}))

	sys.Update(r.w)
	if r.w.IsAlive(gold) || !r.w.IsAlive(potion) {
		t.Fatalf("first frame should collect only the first pickup")
	}
	if progress.coins != 5 || progress.health != 5 {
		t.Fatalf("progress = %+v, want 5 coins 5 health", *progress)
	}
	events := r.w.Events().Drain()
	if len(eventsOf(events, ecs.EventSound)) != 1 || len(eventsOf(events, ecs.EventSpawnEffect)) != 1 {
		t.Fatalf("events = %+v, want one cue and one effect", events)
	}

	sys.Update(r.w)
	if r.w.IsAlive(potion) || progress.health != 6 {
		t.Fatalf("second frame should collect the potion: health = %d", progress.health)
	}
}

func TestMeleeDeflects(t *testing.T) {
	cases := []struct {
		name      string
		x         float64
		attacking bool
		wantDir   float64
	}{
		{"in_front", 170, true, 1},
		{"behind", 40, true, -1},
		{"not_attacking", 170, false, -1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, _, sys := newInteractionRig(t)
			r.playerState().Attacking = c.attacking
			e := r.addBody(c.x, 420, 40, 40)
			patrol := &component.Patrol{Direction: -1, Speed: 200, Reverse: r.ms(250)}
			r.must(ecs.Add(r.w, e, component.PatrolComponent.Kind(), patrol))
			r.must(ecs.Add(r.w, e, component.MeleeTargetTagComponent.Kind(), &component.MeleeTargetTag{}))

			sys.Update(r.w)
			if patrol.Direction != c.wantDir {
				t.Fatalf("direction = %v, want %v", patrol.Direction, c.wantDir)
			}
			if !r.w.IsAlive(e) {
				t.Fatalf("melee must not destroy its target")
			}
		})
	}
}

func TestMeleeReversalCooldown(t *testing.T) {
	r, _, sys := newInteractionRig(t)
	r.playerState().Attacking = true
	_, pearl := r.addProjectile(170, 380, false)
	pearl.Direction = -1
	r.timers().Activate(component.TimerImmunity)

	sys.Update(r.w)
	if pearl.Direction != 1 {
		t.Fatalf("direction = %v, want 1 after deflection", pearl.Direction)
	}
	sys.Update(r.w)
	if pearl.Direction != 1 {
		t.Fatalf("deflected twice within the cooldown")
	}

	r.clock.Advance(0.3)
	poll(pearl.Reverse)
	sys.Update(r.w)
	if pearl.Direction != -1 {
		t.Fatalf("direction = %v, want -1 once the cooldown ran out", pearl.Direction)
	}
}

func TestLevelBoundsAndGoal(t *testing.T) {
	cases := []struct {
		name     string
		x, y     float64
		goal     bool
		wantX    float64
		wantExit *ecs.LevelExit
	}{
		{name: "clamp_left", x: -10, y: 400, wantX: 0},
		{name: "clamp_right", x: 970, y: 400, wantX: 948},
		{name: "inside", x: 300, y: 400, wantX: 300},
		{name: "fell_out", x: 300, y: 760, goal: true, wantX: 300,
			wantExit: &ecs.LevelExit{Target: ecs.TargetOverworld, Value: ecs.PenaltyExit, HasValue: true}},
		{name: "goal", x: 300, y: 400, goal: true, wantX: 300,
			wantExit: &ecs.LevelExit{Target: ecs.TargetOverworld, Value: 2, HasValue: true}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, _, sys := newInteractionRig(t)
			body := r.body(r.player)
			body.Hitbox.X, body.Hitbox.Y = c.x, c.y
			body.SyncRect()
			if c.goal {
				g := r.w.CreateEntity()
				r.must(ecs.Add(r.w, g, component.GoalComponent.Kind(), &component.Goal{Rect: common.NewRect(280, 380, 100, 500), Unlock: 2}))
			}

			sys.Update(r.w)

			if body.Hitbox.X != c.wantX {
				t.Fatalf("x = %v, want %v", body.Hitbox.X, c.wantX)
			}
			if body.Rect.Center() != body.Hitbox.Center() {
				t.Fatalf("visual rect not re-centered on the hitbox")
			}
			exits := eventsOf(r.w.Events().Drain(), ecs.EventLevelExit)
			if c.wantExit == nil {
				if len(exits) != 0 {
					t.Fatalf("exits = %+v, want none", exits)
				}
				return
			}
			if len(exits) != 1 || exits[0].Data.(ecs.LevelExit) != *c.wantExit {
				t.Fatalf("exits = %+v, want exactly %+v", exits, *c.wantExit)
			}
		})
	}
}

func TestProjectileExpires(t *testing.T) {
	r := newRig(t)
	pearl, _ := r.addProjectile(0, 0, true)
	systems := []ecs.System{NewTimerSystem(), NewProjectileSystem()}

	r.step(systems...)
	if !r.w.IsAlive(pearl) {
		t.Fatalf("projectile died early")
	}
	if x := r.body(pearl).Rect.X; !near(x, 150*frame) {
		t.Fatalf("x = %v, want %v", x, 150*frame)
	}

	r.clock.Advance((5 * time.Second).Seconds())
	r.step(systems...)
	if r.w.IsAlive(pearl) {
		t.Fatalf("projectile outlived its lifetime")
	}
}
