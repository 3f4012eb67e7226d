package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"golang.org/x/image/colornames"

	"github.com/milk9111/savematter/ecs"
	"github.com/milk9111/savematter/ecs/component"
	"github.com/milk9111/savematter/levels"
)

// buildItem centers a pickup in the tile whose top-left corner is the
// object's position.
func buildItem(w *ecs.World, ctx *Context, obj levels.Entity) error {
	items := ctx.Bundle.Items
	item, ok := items.Items[obj.Name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownItem, obj.Name)
	}
	tile := ctx.level.Tile()
	r := rectOf(items.Size, 0, 0)
	r.SetCenter(cp.Vector{X: obj.X + tile/2, Y: obj.Y + tile/2})

	e := w.CreateEntity()
	if err := addDrawn(w, e, staticBody(r), spriteOf(item.Sprite, colornames.Gold), component.LayerMain); err != nil {
		return fmt.Errorf("item %s: %w", obj.Name, err)
	}
	if err := ecs.Add(w, e, component.PickupComponent.Kind(), &component.Pickup{Kind: obj.Name}); err != nil {
		return fmt.Errorf("item %s: add pickup: %w", obj.Name, err)
	}
	return ecs.Add(w, e, component.AnimationComponent.Kind(), &component.Animation{
		State:   component.AnimIdle,
		Speed:   ctx.Bundle.World.AnimSpeed,
		Counts:  map[string]int{component.AnimIdle: 4},
		Looping: true,
	})
}

// SpawnEffect adds a one-shot particle centered on x, y.
func SpawnEffect(w *ecs.World, ctx *Context, x, y float64) (ecs.Entity, error) {
	spec := ctx.Bundle.World.Effect
	r := rectOf(spec.Size, 0, 0)
	r.SetCenter(cp.Vector{X: x, Y: y})

	e := w.CreateEntity()
	if err := addDrawn(w, e, staticBody(r), spriteOf(spec.Sprite, colornames.White), component.LayerForeground); err != nil {
		return 0, fmt.Errorf("effect: %w", err)
	}
	if err := ecs.Add(w, e, component.ParticleComponent.Kind(), &component.Particle{Frames: spec.Frames, Speed: spec.Speed}); err != nil {
		return 0, fmt.Errorf("effect: add particle: %w", err)
	}
	return e, nil
}
