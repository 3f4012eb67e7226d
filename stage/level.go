package stage

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jakecoffman/cp"

	"github.com/milk9111/savematter/ecs"
	"github.com/milk9111/savematter/ecs/component"
	"github.com/milk9111/savematter/ecs/entity"
	"github.com/milk9111/savematter/ecs/system"
	"github.com/milk9111/savematter/levels"
	"github.com/milk9111/savematter/prefabs"
	"github.com/milk9111/savematter/timer"
)

var ErrNoProgress = errors.New("stage: missing progress state")

// startTime is where every level's clock begins.
const startTime = time.Second

type Config struct {
	Bundle   *prefabs.Bundle
	Progress system.ProgressState
	Rand     *rand.Rand
	Logger   *log.Logger
}

// Level is one running level: its world, its clock and the fixed order in
// which systems see a frame.
type Level struct {
	ID int

	world     *ecs.World
	input     component.Input
	clock     *timer.SimClock
	ctx       *entity.Context
	scheduler *ecs.Scheduler
	logger    *log.Logger
	maxDelta  float64
	player    ecs.Entity
	progress  system.ProgressState
	exit      *ecs.LevelExit
	gameOver  bool
}

func NewLevel(id int, lvl *levels.Level, cfg Config) (*Level, error) {
	if cfg.Progress == nil {
		return nil, ErrNoProgress
	}
	if cfg.Bundle == nil || cfg.Bundle.World == nil {
		return nil, entity.ErrNoBundle
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewPCG(uint64(id), uint64(time.Now().UnixNano())))
	}

	clock := timer.NewSimClock()
	clock.Set(startTime)

	ctx := &entity.Context{Bundle: cfg.Bundle, Clock: clock, Rand: cfg.Rand}
	w := ecs.NewWorld()
	player, err := entity.BuildLevel(w, lvl, ctx)
	if err != nil {
		return nil, fmt.Errorf("stage: build level %d: %w", id, err)
	}

	l := &Level{
		ID:       id,
		world:    w,
		clock:    clock,
		ctx:      ctx,
		logger:   cfg.Logger.WithPrefix(fmt.Sprintf("level %d", id)),
		maxDelta: cfg.Bundle.World.MaxDelta,
		player:   player,
		progress: cfg.Progress,
	}
	l.scheduler = ecs.NewScheduler(
		system.NewTimerSystem(),
		ecs.SystemFunc(l.feedInput),
		system.NewPlayerInputSystem(),
		system.NewPlatformMotionSystem(),
		system.NewOrbitSystem(),
		system.NewPatrolSystem(),
		system.NewTurretSystem(),
		system.NewProjectileSystem(),
		system.NewPlayerMovementSystem(),
		system.NewContactSystem(),
		system.NewPlayerAnimationSystem(),
		system.NewAnimationSystem(),
		system.NewInteractionSystem(cfg.Progress, cfg.Bundle.Effects),
		system.NewParticleSystem(),
		system.NewCloudSystem(),
		system.NewCameraSystem(),
	)
	// Place the camera before the first frame is drawn.
	system.NewCameraSystem().Update(w)
	l.logger.Debug("level built", "name", lvl.Name, "entities", w.Count(), "systems", l.scheduler.Len())
	return l, nil
}

// Step advances the level by dt seconds with the given input and returns the
// events the frame produced. Spawns requested during the frame are created
// after the pass. Once the level has exited or the run is over, Step does
// nothing.
func (l *Level) Step(dt float64, in component.Input) []ecs.Event {
	if l.exit != nil || l.gameOver {
		return nil
	}
	if dt < 0 {
		dt = 0
	}
	if dt > l.maxDelta {
		dt = l.maxDelta
	}

	l.clock.Advance(dt)
	l.world.SetDelta(dt)
	l.input = in

	l.scheduler.Update(l.world)

	events := l.world.Events().Drain()
	for _, evt := range events {
		switch data := evt.Data.(type) {
		case ecs.SpawnEffect:
			if _, err := entity.SpawnEffect(l.world, l.ctx, data.X, data.Y); err != nil {
				l.logger.Error("spawn effect", "error", err)
			}
		case ecs.SpawnProjectile:
			if _, err := entity.SpawnProjectile(l.world, l.ctx, data.X, data.Y, data.Direction); err != nil {
				l.logger.Error("spawn projectile", "error", err)
			}
		case ecs.LevelExit:
			if l.exit == nil {
				exit := data
				l.exit = &exit
				l.logger.Info("level exit", "target", data.Target, "value", data.Value, "has_value", data.HasValue)
			}
		}
	}
	l.world.Flush()

	if l.progress.Health() <= 0 {
		l.gameOver = true
		l.logger.Info("out of health", "health", l.progress.Health())
	}
	return events
}

func (l *Level) feedInput(w *ecs.World) {
	if input, ok := ecs.Get(w, l.player, component.InputComponent.Kind()); ok {
		*input = l.input
	}
}

// GameOver reports whether health ran out during a step. It is checked
// before Exit; a frame can end the run and latch an exit together.
func (l *Level) GameOver() bool {
	return l.gameOver
}

// Exit reports the exit the level ended with, if any.
func (l *Level) Exit() (ecs.LevelExit, bool) {
	if l.exit == nil {
		return ecs.LevelExit{}, false
	}
	return *l.exit, true
}

// PlayerCenter is the center of the player's hitbox.
func (l *Level) PlayerCenter() cp.Vector {
	body, ok := ecs.Get(l.world, l.player, component.BodyComponent.Kind())
	if !ok {
		return cp.Vector{}
	}
	return body.Bounds().Center()
}

// ApplyPlayerSpec swaps in reloaded player tuning.
func (l *Level) ApplyPlayerSpec(spec *prefabs.PlayerSpec) error {
	if err := entity.ApplyPlayerSpec(l.world, spec); err != nil {
		return err
	}
	l.ctx.Bundle.Player = spec
	return nil
}

func (l *Level) World() *ecs.World {
	return l.world
}

// Elapsed is the simulated time since the level started.
func (l *Level) Elapsed() time.Duration {
	return l.clock.Now() - startTime
}
