package main

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/savematter/assets"
	"github.com/milk9111/savematter/ecs"
	"github.com/milk9111/savematter/ecs/component"
	"github.com/milk9111/savematter/ecs/render"
	"github.com/milk9111/savematter/levels"
	"github.com/milk9111/savematter/prefabs"
	"github.com/milk9111/savematter/progress"
	"github.com/milk9111/savematter/stage"
	"github.com/milk9111/savematter/storage"
)

const stickDeadzone = 0.2

type GameOptions struct {
	Logger *log.Logger
	Store  *storage.Store
	Slot   int
	Level  int
	Debug  bool
	Watch  bool
	Mute   bool
	Seed   uint64
}

type Game struct {
	logger   *log.Logger
	store    *storage.Store
	slot     int
	seed     uint64
	debug    bool
	paused   bool
	bundle   *prefabs.Bundle
	state    *progress.State
	level    *stage.Level
	renderer *render.Renderer
	sounds   *assets.Sounds
	watcher  *prefabs.Watcher
	last     time.Time
}

func NewGame(opts GameOptions) (*Game, error) {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	bundle, err := prefabs.LoadBundle()
	if err != nil {
		return nil, fmt.Errorf("load prefabs: %w", err)
	}

	g := &Game{
		logger:   opts.Logger,
		store:    opts.Store,
		slot:     opts.Slot,
		seed:     opts.Seed,
		debug:    opts.Debug,
		bundle:   bundle,
		state:    progress.New(),
		renderer: render.NewRenderer(bundle.World),
		sounds:   assets.NewSounds(opts.Mute),
	}
	g.renderer.Debug = opts.Debug

	if err := g.restore(); err != nil {
		return nil, err
	}
	g.state.Subscribe(progress.ObserverFuncs{
		Health: func(v int) { g.logger.Debug("health changed", "health", v) },
		Coins:  func(v int) { g.logger.Debug("coins changed", "coins", v) },
	})

	start := g.state.CurrentLevel()
	if opts.Level != 0 {
		start = opts.Level
	}
	if !levels.Exists(start) {
		start = firstLevel()
	}
	if err := g.loadLevel(start); err != nil {
		return nil, err
	}

	if opts.Watch {
		w, err := prefabs.NewWatcher("prefabs")
		if err != nil {
			g.logger.Warn("hot reload disabled", "error", err)
		} else {
			g.watcher = w
			g.logger.Info("watching prefabs for changes")
		}
	}
	return g, nil
}

func firstLevel() int {
	ids := levels.IDs()
	if len(ids) == 0 {
		return 1
	}
	return ids[0]
}

func (g *Game) restore() error {
	if g.store == nil {
		return nil
	}
	snap, err := g.store.Load(g.slot)
	if errors.Is(err, storage.ErrNoSave) {
		g.logger.Info("starting a new run", "slot", g.slot)
		return nil
	}
	if err != nil {
		return fmt.Errorf("load slot %d: %w", g.slot, err)
	}
	g.state.Restore(snap)
	if !g.state.Alive() {
		g.resetRun()
	}
	g.logger.Info("save loaded", "slot", g.slot, "level", snap.CurrentLevel, "health", g.state.Health(), "coins", g.state.Coins())
	return nil
}

func (g *Game) save() {
	if g.store == nil {
		return
	}
	if err := g.store.Save(g.slot, g.state.Snapshot()); err != nil {
		g.logger.Error("save failed", "slot", g.slot, "error", err)
	}
}

func (g *Game) resetRun() {
	g.state.Restore(progress.New().Snapshot())
	g.state.SetCurrentLevel(firstLevel())
}

func (g *Game) loadLevel(id int) error {
	lvl, err := levels.Load(id)
	if err != nil {
		return fmt.Errorf("load level %d: %w", id, err)
	}
	level, err := stage.NewLevel(id, lvl, stage.Config{
		Bundle:   g.bundle,
		Progress: g.state,
		Rand:     rand.New(rand.NewPCG(g.seed, uint64(id))),
		Logger:   g.logger,
	})
	if err != nil {
		return err
	}
	g.level = level
	g.state.SetCurrentLevel(id)
	g.last = time.Time{}
	g.logger.Info("level loaded", "id", id, "name", lvl.Name)
	return nil
}

func (g *Game) Close() error {
	g.save()
	if g.watcher != nil {
		return g.watcher.Close()
	}
	return nil
}

func (g *Game) ScreenSize() (int, int) {
	return int(g.bundle.World.Screen.Width), int(g.bundle.World.Screen.Height)
}

func (g *Game) Update() error {
	g.pollWatcher()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.debug = !g.debug
		g.renderer.Debug = g.debug
	}

	now := time.Now()
	dt := 1.0 / 60
	if !g.last.IsZero() {
		dt = now.Sub(g.last).Seconds()
	}
	g.last = now
	if g.paused {
		return nil
	}

	for _, evt := range g.level.Step(dt, readInput()) {
		if cue, ok := evt.Data.(ecs.SoundCue); ok {
			if err := g.sounds.Play(cue.Name); err != nil {
				g.logger.Debug("sound", "cue", cue.Name, "error", err)
			}
		}
	}

	if g.level.GameOver() {
		return g.gameOver()
	}
	exit, ok := g.level.Exit()
	if !ok {
		return nil
	}
	outcome := stage.ApplyExit(g.state, g.level.ID, exit, levels.Exists)
	if outcome.GameOver {
		return g.gameOver()
	}
	g.save()
	return g.loadLevel(outcome.Next)
}

// gameOver starts a fresh run at the first level and saves it.
func (g *Game) gameOver() error {
	g.logger.Info("game over", "level", g.level.ID, "coins", g.state.Coins())
	g.resetRun()
	g.save()
	return g.loadLevel(g.state.CurrentLevel())
}

// readInput samples keyboard and the first gamepad. Jump and attack fire
// only on the frame they are pressed.
func readInput() component.Input {
	left := ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft)
	right := ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight)

	in := component.Input{
		Down:   ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown),
		Jump:   inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyW) || inpututil.IsKeyJustPressed(ebiten.KeyArrowUp),
		Attack: inpututil.IsKeyJustPressed(ebiten.KeyJ) || inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
	}
	if left {
		in.MoveX -= 1
	}
	if right {
		in.MoveX += 1
	}

	if gamepads := ebiten.GamepadIDs(); len(gamepads) > 0 {
		id := gamepads[0]
		leftX := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		if math.Abs(leftX) > stickDeadzone {
			in.MoveX = leftX
		}
		if ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftLeft) {
			in.MoveX = -1
		}
		if ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftRight) {
			in.MoveX = 1
		}

		leftY := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		in.Down = in.Down || leftY > 0.5 || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftBottom)
		in.Jump = in.Jump || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom)
		in.Attack = in.Attack || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightLeft)
	}
	return in
}

// pollWatcher applies prefab changes. Player tuning is swapped into the
// running level; any other change restarts it with the reloaded bundle.
func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case change, ok := <-g.watcher.Changes:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(change)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			g.logger.Error("watcher", "error", err)
		default:
			return
		}
	}
}

func (g *Game) reload(change prefabs.Change) {
	name := change.Name
	if name == "player.yaml" {
		spec, err := prefabs.LoadPlayerSpec()
		if err != nil {
			g.logger.Error("reload player", "error", err)
			return
		}
		if err := g.level.ApplyPlayerSpec(spec); err != nil {
			g.logger.Error("apply player", "error", err)
			return
		}
		mod, _ := prefabs.ModTime(name)
		g.logger.Info("player reloaded", "modified", mod.Format(time.TimeOnly))
		return
	}

	bundle, err := prefabs.LoadBundle()
	if err != nil {
		g.logger.Error("reload prefabs", "file", name, "script", change.Script, "error", err)
		return
	}
	g.bundle = bundle
	g.renderer = render.NewRenderer(bundle.World)
	g.renderer.Debug = g.debug
	render.ForgetImages()
	g.logger.Info("prefabs reloaded, restarting level", "file", name)
	if err := g.loadLevel(g.level.ID); err != nil {
		g.logger.Error("restart level", "error", err)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(g.level.World(), screen)

	hud := fmt.Sprintf("Level %d  Health %d  Coins %d", g.level.ID, g.state.Health(), g.state.Coins())
	if g.debug {
		c := g.level.PlayerCenter()
		hud += fmt.Sprintf("\nFPS %.1f  TPS %.1f  t=%s  player %.0f,%.0f",
			ebiten.ActualFPS(), ebiten.ActualTPS(), g.level.Elapsed().Truncate(time.Millisecond), c.X, c.Y)
	}
	if g.paused {
		hud += "\nPAUSED"
	}
	ebitenutil.DebugPrint(screen, hud)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return g.bundle.World.Screen.Width, g.bundle.World.Screen.Height
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
