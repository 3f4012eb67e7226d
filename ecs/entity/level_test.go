package entity

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/milk9111/savematter/ecs"
	"github.com/milk9111/savematter/ecs/component"
	"github.com/milk9111/savematter/levels"
	"github.com/milk9111/savematter/prefabs"
	"github.com/milk9111/savematter/timer"
)

func newContext(t *testing.T) *Context {
	t.Helper()
	bundle, err := prefabs.LoadBundle()
	if err != nil {
		t.Fatalf("LoadBundle: %v", err)
	}
	return &Context{Bundle: bundle, Clock: timer.NewSimClock(), Rand: rand.New(rand.NewPCG(7, 11))}
}

func smallLevel(entities ...levels.Entity) *levels.Level {
	tiles := make([]int, 10*6)
	for x := 0; x < 10; x++ {
		tiles[5*10+x] = 1
	}
	lvl := &levels.Level{
		Width: 10, Height: 6, TileSize: 64, Unlock: 4, HorizonLine: 200,
		Layers:   []levels.TileLayer{{Name: "terrain", Collision: levels.CollisionSolid, Tiles: tiles}},
		Entities: append([]levels.Entity{{Type: levels.TypePlayer, X: 100, Y: 200}}, entities...),
	}
	return lvl
}

func TestBuildEmbeddedLevel(t *testing.T) {
	lvl, err := levels.Load(1)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	ctx := newContext(t)
	w := ecs.NewWorld()
	player, err := BuildLevel(w, lvl, ctx)
	if err != nil {
		t.Fatalf("BuildLevel: %v", err)
	}

	for _, kind := range []component.Kind{
		component.PlayerComponent.Kind(),
		component.BodyComponent.Kind(),
		component.TimersComponent.Kind(),
		component.SurfaceContactComponent.Kind(),
	} {
		if len(w.Query(kind)) == 0 {
			t.Fatalf("no entity carries %v", kind)
		}
	}
	if got := len(w.Query(component.PlayerTagComponent.Kind())); got != 1 {
		t.Fatalf("players = %d, want 1", got)
	}
	if !ecs.Has(w, player, component.PlayerTagComponent.Kind()) {
		t.Fatalf("returned entity is not the player")
	}

	levelEntity, ok := w.First(component.LevelBoundsComponent.Kind())
	if !ok {
		t.Fatalf("no level bounds")
	}
	bounds, _ := ecs.Get(w, levelEntity, component.LevelBoundsComponent.Kind())
	if bounds.Width != 2560 || bounds.Height != 768 {
		t.Fatalf("bounds = %+v", bounds)
	}

	if got := len(w.Query(component.DriftComponent.Kind())); got != ctx.Bundle.World.Sky.InitialClouds {
		t.Fatalf("clouds = %d, want %d", got, ctx.Bundle.World.Sky.InitialClouds)
	}
	if got := len(w.Query(component.PatrolComponent.Kind())); got != 2 {
		t.Fatalf("patrols = %d, want 2", got)
	}
	if got := len(w.Query(component.TurretComponent.Kind())); got != 1 {
		t.Fatalf("turrets = %d, want 1", got)
	}
	// one spike ball plus a link every 20 units of its 120 radius
	if got := len(w.Query(component.OrbitComponent.Kind())); got != 7 {
		t.Fatalf("orbiters = %d, want 7", got)
	}
	goals := w.Query(component.GoalComponent.Kind())
	if len(goals) != 1 {
		t.Fatalf("goals = %d, want 1", len(goals))
	}
	goal, _ := ecs.Get(w, goals[0], component.GoalComponent.Kind())
	if goal.Unlock != lvl.Unlock {
		t.Fatalf("goal unlock = %d, want %d", goal.Unlock, lvl.Unlock)
	}
	if _, ok := w.First(component.CameraComponent.Kind()); !ok {
		t.Fatalf("no camera")
	}
}

func TestPlayerHitboxIsInset(t *testing.T) {
	ctx := newContext(t)
	w := ecs.NewWorld()
	player, err := BuildLevel(w, smallLevel(), ctx)
	if err != nil {
		t.Fatalf("BuildLevel: %v", err)
	}
	body, _ := ecs.Get(w, player, component.BodyComponent.Kind())
	spec := ctx.Bundle.Player
	if body.Rect.Width != spec.Size.Width || body.Hitbox.Width != spec.Size.Width-spec.HitboxInset.Width {
		t.Fatalf("rect %+v hitbox %+v", body.Rect, body.Hitbox)
	}
	if body.Rect.Center() != body.Hitbox.Center() {
		t.Fatalf("hitbox not centered: %v vs %v", body.Rect.Center(), body.Hitbox.Center())
	}
	timers, _ := ecs.Get(w, player, component.TimersComponent.Kind())
	if got := (*timers)[component.TimerImmunity].Duration().Milliseconds(); got != 650 {
		t.Fatalf("immunity = %dms", got)
	}
}

func TestMergedColliders(t *testing.T) {
	tests := []struct {
		name  string
		kind  component.CollisionLayer
		tiles []int
		want  int
	}{
		{"block", component.LayerSolid, []int{1, 1, 1, 1, 1, 1}, 1},
		{"two_columns", component.LayerSolid, []int{1, 0, 1, 1, 0, 1}, 2},
		{"one_way_rows", component.LayerOneWay, []int{1, 1, 1, 1, 1, 1}, 2},
		{"empty", component.LayerSolid, []int{0, 0, 0, 0, 0, 0}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ecs.NewWorld()
			if err := addMergedTileColliders(w, tt.tiles, 3, 2, 64, tt.kind); err != nil {
				t.Fatalf("addMergedTileColliders: %v", err)
			}
			if got := len(w.Query(component.ColliderComponent.Kind())); got != tt.want {
				t.Fatalf("colliders = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFloorSpikeHitbox(t *testing.T) {
	tests := []struct {
		name     string
		inverted bool
		wantTop  float64
	}{
		{"upright", false, 132},
		{"inverted", true, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := newContext(t)
			w := ecs.NewWorld()
			_, err := BuildLevel(w, smallLevel(levels.Entity{
				Type: levels.TypeFloorSpike, X: 300, Y: 100, Width: 64, Height: 64,
				Props: map[string]any{"inverted": tt.inverted},
			}), ctx)
			if err != nil {
				t.Fatalf("BuildLevel: %v", err)
			}
			spikes := w.Query(component.DamageComponent.Kind())
			if len(spikes) != 1 {
				t.Fatalf("damage sources = %d", len(spikes))
			}
			body, _ := ecs.Get(w, spikes[0], component.BodyComponent.Kind())
			if body.Bounds().Top() != tt.wantTop || body.Bounds().Height != 32 {
				t.Fatalf("hitbox = %+v", body.Bounds())
			}
			sprite, _ := ecs.Get(w, spikes[0], component.SpriteComponent.Kind())
			if sprite.FlipY != tt.inverted {
				t.Fatalf("FlipY = %v", sprite.FlipY)
			}
		})
	}
}

func TestMovingObjectAxis(t *testing.T) {
	ctx := newContext(t)
	w := ecs.NewWorld()
	_, err := BuildLevel(w, smallLevel(
		levels.Entity{Type: levels.TypeMoving, X: 100, Y: 50, Width: 300, Height: 20, Props: map[string]any{"platform": true, "speed": 100}},
		levels.Entity{Type: levels.TypeMoving, Name: "saw", X: 500, Y: 0, Width: 20, Height: 200, Props: map[string]any{"speed": 50}},
	), ctx)
	if err != nil {
		t.Fatalf("BuildLevel: %v", err)
	}
	var platforms, saws int
	for _, e := range w.Query(component.MovingPlatformComponent.Kind()) {
		mp, _ := ecs.Get(w, e, component.MovingPlatformComponent.Kind())
		body, _ := ecs.Get(w, e, component.BodyComponent.Kind())
		if body.Rect.Center() != mp.Start {
			t.Fatalf("body starts at %v, want %v", body.Rect.Center(), mp.Start)
		}
		if ecs.Has(w, e, component.ColliderComponent.Kind()) {
			platforms++
			if mp.Axis != component.AxisX || mp.End.X != 400 {
				t.Fatalf("platform = %+v", mp)
			}
			continue
		}
		saws++
		if mp.Axis != component.AxisY || mp.End.Y != 200 || !ecs.Has(w, e, component.DamageComponent.Kind()) {
			t.Fatalf("saw = %+v", mp)
		}
	}
	if platforms != 1 || saws != 1 {
		t.Fatalf("platforms=%d saws=%d", platforms, saws)
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name string
		obj  levels.Entity
		want error
	}{
		{"unknown_item", levels.Entity{Type: levels.TypeItem, Name: "banana"}, ErrUnknownItem},
		{"empty_crate", levels.Entity{Type: levels.TypeCrate, X: 10, Y: 10}, ErrEmptyShape},
		{"empty_path", levels.Entity{Type: levels.TypeMoving}, ErrEmptyShape},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildLevel(ecs.NewWorld(), smallLevel(tt.obj), newContext(t))
			if !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := BuildLevel(ecs.NewWorld(), smallLevel(), &Context{}); !errors.Is(err, ErrNoBundle) {
		t.Fatalf("got %v, want ErrNoBundle", err)
	}
}

func TestSpawnProjectile(t *testing.T) {
	ctx := newContext(t)
	w := ecs.NewWorld()
	e, err := SpawnProjectile(w, ctx, 200, 300, -1)
	if err != nil {
		t.Fatalf("SpawnProjectile: %v", err)
	}
	p, _ := ecs.Get(w, e, component.ProjectileComponent.Kind())
	if !p.Lifetime.Active() || p.Reverse.Active() {
		t.Fatalf("lifetime active=%v reverse active=%v", p.Lifetime.Active(), p.Reverse.Active())
	}
	body, _ := ecs.Get(w, e, component.BodyComponent.Kind())
	if c := body.Rect.Center(); c.X != 200 || c.Y != 300 {
		t.Fatalf("center = %v", c)
	}
	dmg, _ := ecs.Get(w, e, component.DamageComponent.Kind())
	if !dmg.Deflectable {
		t.Fatalf("projectile should be deflectable")
	}
}

func TestApplyPlayerSpec(t *testing.T) {
	ctx := newContext(t)
	w := ecs.NewWorld()
	player, err := BuildLevel(w, smallLevel(), ctx)
	if err != nil {
		t.Fatalf("BuildLevel: %v", err)
	}
	spec := *ctx.Bundle.Player
	spec.Speed = 320
	spec.TimersMS = map[string]int{component.TimerImmunity: 900}
	if err := ApplyPlayerSpec(w, &spec); err != nil {
		t.Fatalf("ApplyPlayerSpec: %v", err)
	}
	p, _ := ecs.Get(w, player, component.PlayerComponent.Kind())
	if p.Tuning.Speed != 320 {
		t.Fatalf("speed = %v", p.Tuning.Speed)
	}
	timers, _ := ecs.Get(w, player, component.TimersComponent.Kind())
	if got := (*timers)[component.TimerImmunity].Duration().Milliseconds(); got != 900 {
		t.Fatalf("immunity = %dms", got)
	}
}
