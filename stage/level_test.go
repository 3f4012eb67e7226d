package stage

import (
	"io"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/milk9111/savematter/common"
	"github.com/milk9111/savematter/ecs"
	"github.com/milk9111/savematter/ecs/component"
	"github.com/milk9111/savematter/levels"
	"github.com/milk9111/savematter/prefabs"
	"github.com/milk9111/savematter/progress"
)

const frame = 1.0 / 60

func newConfig(t *testing.T) (Config, *progress.State) {
	t.Helper()
	bundle, err := prefabs.LoadBundle()
	if err != nil {
		t.Fatalf("LoadBundle: %v", err)
	}
	state := progress.New()
	return Config{
		Bundle:   bundle,
		Progress: state,
		Rand:     rand.New(rand.NewPCG(3, 5)),
		Logger:   log.New(io.Discard),
	}, state
}

// flatLevel is ten tiles wide with a floor whose top is at y=320.
func flatLevel(entities ...levels.Entity) *levels.Level {
	tiles := make([]int, 10*6)
	for x := 0; x < 10; x++ {
		tiles[5*10+x] = 1
	}
	return &levels.Level{
		Width: 10, Height: 6, TileSize: 64, Unlock: 2, HorizonLine: 200,
		Layers:   []levels.TileLayer{{Name: "terrain", Collision: levels.CollisionSolid, Tiles: tiles}},
		Entities: append([]levels.Entity{{Type: levels.TypePlayer, X: 100, Y: 200}}, entities...),
	}
}

func newLevel(t *testing.T, lvl *levels.Level) (*Level, *progress.State) {
	t.Helper()
	cfg, state := newConfig(t)
	l, err := NewLevel(1, lvl, cfg)
	if err != nil {
		t.Fatalf("NewLevel: %v", err)
	}
	return l, state
}

func (l *Level) playerBody(t *testing.T) *component.Body {
	t.Helper()
	body, ok := ecs.Get(l.world, l.player, component.BodyComponent.Kind())
	if !ok {
		t.Fatalf("player has no body")
	}
	return body
}

func TestPlayerSettlesOnFloor(t *testing.T) {
	l, _ := newLevel(t, flatLevel())
	for i := 0; i < 120; i++ {
		l.Step(frame, component.Input{})
	}
	if got := l.playerBody(t).Hitbox.Bottom(); got != 320 {
		t.Fatalf("hitbox bottom = %v, want 320", got)
	}
	contact, _ := ecs.Get(l.world, l.player, component.SurfaceContactComponent.Kind())
	if !contact.Floor {
		t.Fatalf("expected floor contact")
	}
	if c := l.PlayerCenter(); c.Y != 290 {
		t.Fatalf("PlayerCenter = %v", c)
	}
}

func TestStepClampsDelta(t *testing.T) {
	l, _ := newLevel(t, flatLevel())
	l.Step(5, component.Input{})
	if got := l.Elapsed(); got != 100*time.Millisecond {
		t.Fatalf("elapsed = %v, want 100ms", got)
	}
	l.Step(-1, component.Input{})
	if got := l.Elapsed(); got != 100*time.Millisecond {
		t.Fatalf("negative dt moved the clock to %v", got)
	}
}

func TestInputMovesPlayer(t *testing.T) {
	l, _ := newLevel(t, flatLevel())
	for i := 0; i < 60; i++ {
		l.Step(frame, component.Input{})
	}
	start := l.PlayerCenter().X
	for i := 0; i < 30; i++ {
		l.Step(frame, component.Input{MoveX: 1})
	}
	if moved := l.PlayerCenter().X - start; moved < 90 || moved > 110 {
		t.Fatalf("moved %v in half a second, want about 100", moved)
	}
}

func TestGoalExitLatches(t *testing.T) {
	l, _ := newLevel(t, flatLevel(levels.Entity{Type: levels.TypeFlag, X: 500, Y: 128, Width: 64, Height: 192}))
	body := l.playerBody(t)
	body.Hitbox = common.NewRect(506, 250, body.Hitbox.Width, body.Hitbox.Height)
	body.SyncRect()

	events := l.Step(frame, component.Input{})
	var exit *ecs.LevelExit
	for _, evt := range events {
		if x, ok := evt.Data.(ecs.LevelExit); ok {
			exit = &x
		}
	}
	if exit == nil {
		t.Fatalf("expected a level exit, got %+v", events)
	}
	if exit.Target != ecs.TargetOverworld || exit.Value != 2 || !exit.HasValue {
		t.Fatalf("exit = %+v", exit)
	}
	if got, ok := l.Exit(); !ok || got != *exit {
		t.Fatalf("Exit() = %+v, %v", got, ok)
	}
	if events := l.Step(frame, component.Input{}); events != nil {
		t.Fatalf("finished level still stepping: %+v", events)
	}
}

func TestFallingOutCostsHealth(t *testing.T) {
	l, state := newLevel(t, flatLevel())
	body := l.playerBody(t)
	body.Hitbox = common.NewRect(300, 500, body.Hitbox.Width, body.Hitbox.Height)
	body.SyncRect()

	l.Step(frame, component.Input{})
	exit, ok := l.Exit()
	if !ok || !exit.Penalty() {
		t.Fatalf("expected penalty exit, got %+v %v", exit, ok)
	}
	// the exit is applied by the game, not the level
	if state.Health() != progress.StartingHealth {
		t.Fatalf("health = %d", state.Health())
	}
}

func TestHazardDamageEndsTheRun(t *testing.T) {
	l, state := newLevel(t, flatLevel(levels.Entity{Type: levels.TypeFloorSpike, X: 64, Y: 256, Width: 192, Height: 64}))

	frames := 0
	for ; frames < 600 && !l.GameOver(); frames++ {
		l.Step(frame, component.Input{})
	}
	if !l.GameOver() {
		t.Fatalf("standing on a spike for 10s did not end the run, health = %d", state.Health())
	}
	if got := state.Health(); got != 0 {
		t.Fatalf("health = %d, want 0", got)
	}
	// one hit per immunity window
	if frames < 4*39 {
		t.Fatalf("run ended after %d frames, faster than the immunity window allows", frames)
	}
	if _, ok := l.Exit(); ok {
		t.Fatalf("game over should not latch a level exit")
	}
	if events := l.Step(frame, component.Input{}); events != nil {
		t.Fatalf("level still stepping after game over: %+v", events)
	}
	if got := state.Health(); got != 0 {
		t.Fatalf("health changed after game over: %d", got)
	}
}

func TestTurretProjectileIsSpawnedAfterThePass(t *testing.T) {
	l, _ := newLevel(t, flatLevel(levels.Entity{
		Type: levels.TypeShell, X: 400, Y: 256, Width: 64, Height: 64,
		Props: map[string]any{"reverse": true},
	}))

	fired := false
	for i := 0; i < 90 && !fired; i++ {
		for _, evt := range l.Step(frame, component.Input{}) {
			spawn, ok := evt.Data.(ecs.SpawnProjectile)
			if !ok {
				continue
			}
			fired = true
			if spawn.Direction != -1 || spawn.X != 432-50 {
				t.Fatalf("spawn = %+v", spawn)
			}
		}
	}
	if !fired {
		t.Fatalf("turret never fired")
	}
	if got := len(l.world.Query(component.ProjectileComponent.Kind())); got != 1 {
		t.Fatalf("projectiles = %d, want 1", got)
	}
}

func TestPickupAppliesEffect(t *testing.T) {
	l, state := newLevel(t, flatLevel(levels.Entity{Type: levels.TypeItem, Name: "gold", X: 100, Y: 256}))
	l.Step(frame, component.Input{})
	if state.Coins() != 5 {
		t.Fatalf("coins = %d, want 5", state.Coins())
	}
	if got := len(l.world.Query(component.PickupComponent.Kind())); got != 0 {
		t.Fatalf("pickup still in the world")
	}
	if got := len(l.world.Query(component.ParticleComponent.Kind())); got != 1 {
		t.Fatalf("particles = %d, want 1", got)
	}
	for i := 0; i < 60; i++ {
		l.Step(frame, component.Input{})
	}
	if got := len(l.world.Query(component.ParticleComponent.Kind())); got != 0 {
		t.Fatalf("particle outlived its animation")
	}
}

func TestNewLevelNeedsProgress(t *testing.T) {
	cfg, _ := newConfig(t)
	cfg.Progress = nil
	if _, err := NewLevel(1, flatLevel(), cfg); err != ErrNoProgress {
		t.Fatalf("got %v, want ErrNoProgress", err)
	}
}
