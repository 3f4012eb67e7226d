package entity

import (
	"fmt"
	"strings"

	"github.com/milk9111/savematter/ecs"
	"github.com/milk9111/savematter/ecs/component"
	"github.com/milk9111/savematter/ecs/system"
	"github.com/milk9111/savematter/levels"
	"github.com/milk9111/savematter/timer"
)

type buildFn func(w *ecs.World, ctx *Context, obj levels.Entity) error

var entityRegistry = map[string]buildFn{
	levels.TypeCrate:      buildBlock,
	levels.TypeBarrel:     buildBlock,
	levels.TypePalm:       buildPalm,
	levels.TypeDecoration: buildDecoration,
	levels.TypeWater:      buildWater,
	levels.TypeFloorSpike: buildFloorSpike,
	levels.TypeSaw:        buildSaw,
	levels.TypeMoving:     buildMoving,
	levels.TypeSpike:      buildOrbitSpike,
	levels.TypeFlag:       buildFlag,
	levels.TypeTooth:      buildTooth,
	levels.TypeShell:      buildShell,
	levels.TypeItem:       buildItem,
}

// BuildLevel loads a validated level into the world and returns the player.
func BuildLevel(w *ecs.World, lvl *levels.Level, ctx *Context) (ecs.Entity, error) {
	if err := ctx.validate(); err != nil {
		return 0, err
	}
	if err := lvl.Validate(); err != nil {
		return 0, err
	}
	ctx.level = lvl

	if _, err := NewLevelEntity(w, lvl, ctx); err != nil {
		return 0, err
	}

	for i := range lvl.Layers {
		if err := addTileLayer(w, lvl, &lvl.Layers[i]); err != nil {
			return 0, fmt.Errorf("layer %q: %w", lvl.Layers[i].Name, err)
		}
	}

	var player ecs.Entity
	for _, obj := range lvl.Entities {
		typ := strings.ToLower(obj.Type)
		if typ == levels.TypePlayer {
			e, err := NewPlayerAt(w, ctx, obj.X, obj.Y)
			if err != nil {
				return 0, err
			}
			player = e
			continue
		}
		build, ok := entityRegistry[typ]
		if !ok {
			return 0, fmt.Errorf("%w: %q", levels.ErrUnknownEntity, obj.Type)
		}
		if err := build(w, ctx, obj); err != nil {
			return 0, err
		}
	}

	if _, err := NewCamera(w, ctx); err != nil {
		return 0, err
	}
	return player, nil
}

// NewLevelEntity holds the level bounds and the sky with its cloud spawner.
func NewLevelEntity(w *ecs.World, lvl *levels.Level, ctx *Context) (ecs.Entity, error) {
	width, height := lvl.PixelSize()
	spec := ctx.Bundle.World.Sky

	e := w.CreateEntity()
	if err := ecs.Add(w, e, component.LevelBoundsComponent.Kind(), &component.LevelBounds{
		Width:       width,
		Height:      height,
		TopLimit:    lvl.TopLimit,
		HorizonLine: lvl.HorizonLine,
	}); err != nil {
		return 0, fmt.Errorf("level: add bounds: %w", err)
	}

	sky := &component.Sky{
		Rand:        ctx.Rand,
		LargeSpeed:  spec.LargeSpeed,
		LargeWidth:  spec.LargeCloud.Width,
		CloudKeys:   spec.CloudImages,
		CloudWidth:  spec.CloudSize.Width,
		CloudHeight: spec.CloudSize.Height,
		MinSpeed:    spec.MinSpeed,
		MaxSpeed:    spec.MaxSpeed,
		SpawnMargin: spec.SpawnMargin,
		Parallax:    ctx.Bundle.World.Parallax,
	}
	cloudTimer, err := ctx.timer(spec.CloudInterval, timer.WithRepeat(), timer.WithCallback(func() {
		sky.Pending++
	}))
	if err != nil {
		return 0, fmt.Errorf("level: cloud timer: %w", err)
	}
	cloudTimer.Activate()
	sky.CloudTimer = cloudTimer

	if err := ecs.Add(w, e, component.SkyComponent.Kind(), sky); err != nil {
		return 0, fmt.Errorf("level: add sky: %w", err)
	}

	// Clouds already in the sky when the level opens.
	for i := 0; i < spec.InitialClouds; i++ {
		x := ctx.Rand.Float64() * (width + spec.SpawnMargin[1])
		y := lvl.TopLimit + ctx.Rand.Float64()*(lvl.HorizonLine-lvl.TopLimit)
		system.SpawnCloud(w, sky, x, y)
	}
	return e, nil
}

// NewCamera adds the viewport sized to the screen in world.yaml.
func NewCamera(w *ecs.World, ctx *Context) (ecs.Entity, error) {
	screen := ctx.Bundle.World.Screen
	camera := w.CreateEntity()
	if err := ecs.Add(w, camera, component.CameraTagComponent.Kind(), &component.CameraTag{}); err != nil {
		return 0, fmt.Errorf("camera: add camera tag: %w", err)
	}
	if err := ecs.Add(w, camera, component.CameraComponent.Kind(), &component.Camera{
		ScreenWidth:  screen.Width,
		ScreenHeight: screen.Height,
	}); err != nil {
		return 0, fmt.Errorf("camera: add camera component: %w", err)
	}
	return camera, nil
}
