package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/savematter/ecs"
	"github.com/milk9111/savematter/ecs/component"
)

// CameraSystem centers the viewport on the player's hitbox, clamped so the
// view never leaves the level.
type CameraSystem struct{}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

func (cs *CameraSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	camEntity, ok := w.First(component.CameraComponent.Kind())
	if !ok {
		return
	}
	cam, _ := ecs.Get(w, camEntity, component.CameraComponent.Kind())

	player, ok := w.First(component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	target := ecs.MustGet(w, player, component.BodyComponent.Kind(), "camera").Bounds().Center()

	level, ok := w.First(component.LevelBoundsComponent.Kind())
	if !ok {
		return
	}
	bounds, _ := ecs.Get(w, level, component.LevelBoundsComponent.Kind())

	cam.Offset = ViewportOffset(target, cam.ScreenWidth, cam.ScreenHeight, *bounds)
}

// ViewportOffset is the translation from world to screen space that puts
// target in the middle of the screen. Each axis is clamped to its borders:
// left 0, right screenW-levelW, top TopLimit, bottom screenH-levelH.
func ViewportOffset(target cp.Vector, screenW, screenH float64, bounds component.LevelBounds) cp.Vector {
	off := cp.Vector{X: screenW/2 - target.X, Y: screenH/2 - target.Y}

	off.X = math.Min(off.X, 0)
	off.X = math.Max(off.X, screenW-bounds.Width)
	off.Y = math.Min(off.Y, bounds.TopLimit)
	off.Y = math.Max(off.Y, screenH-bounds.Height)
	return off
}
