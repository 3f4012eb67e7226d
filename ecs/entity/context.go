package entity

import (
	"errors"
	"fmt"
	"image/color"
	"math/rand/v2"
	"time"

	"github.com/milk9111/savematter/common"
	"github.com/milk9111/savematter/ecs"
	"github.com/milk9111/savematter/ecs/component"
	"github.com/milk9111/savematter/levels"
	"github.com/milk9111/savematter/prefabs"
	"github.com/milk9111/savematter/timer"
)

var (
	ErrEmptyShape  = errors.New("entity: object has no extent")
	ErrUnknownItem = errors.New("entity: unknown item")
	ErrNoBundle    = errors.New("entity: missing prefab bundle")
)

// Context carries what every builder needs.
type Context struct {
	Bundle *prefabs.Bundle
	Clock  timer.Clock
	Rand   *rand.Rand

	level *levels.Level
}

func (c *Context) validate() error {
	if c == nil || c.Bundle == nil || c.Bundle.Player == nil || c.Bundle.Enemies == nil ||
		c.Bundle.Items == nil || c.Bundle.World == nil {
		return ErrNoBundle
	}
	if c.Clock == nil {
		return timer.ErrNilClock
	}
	if c.Rand == nil {
		c.Rand = rand.New(rand.NewPCG(1, 2))
	}
	return nil
}

func (c *Context) timer(ms int, opts ...timer.Option) (*timer.Timer, error) {
	return timer.New(c.Clock, time.Duration(ms)*time.Millisecond, opts...)
}

func rectOf(size prefabs.SizeSpec, x, y float64) common.Rect {
	return common.NewRect(x, y, size.Width, size.Height)
}

func spriteOf(spec prefabs.SpriteSpec, fallback color.RGBA) *component.Sprite {
	return &component.Sprite{Key: spec.Image, Color: spec.Color.OrDefault(fallback)}
}

// addDrawn attaches the visual parts every drawn body shares.
func addDrawn(w *ecs.World, e ecs.Entity, body component.Body, sprite *component.Sprite, layer int) error {
	if err := ecs.Add(w, e, component.BodyComponent.Kind(), &body); err != nil {
		return fmt.Errorf("add body: %w", err)
	}
	if err := ecs.Add(w, e, component.SpriteComponent.Kind(), sprite); err != nil {
		return fmt.Errorf("add sprite: %w", err)
	}
	if err := ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: layer}); err != nil {
		return fmt.Errorf("add render layer: %w", err)
	}
	return nil
}

func staticBody(r common.Rect) component.Body {
	return component.Body{Rect: r, OldRect: r}
}

func hitboxBody(r, hitbox common.Rect) component.Body {
	return component.Body{Rect: r, OldRect: r, Hitbox: hitbox, OldHitbox: hitbox, HasHitbox: true}
}

func animationOf(spec prefabs.AnimationSpec, state string, looping bool) *component.Animation {
	counts := make(map[string]int, len(spec.Frames))
	for k, v := range spec.Frames {
		counts[k] = v
	}
	return &component.Animation{State: state, Speed: spec.Speed, Counts: counts, Looping: looping}
}
