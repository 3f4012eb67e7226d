package entity

import (
	"fmt"
	"image/color"

	"github.com/jakecoffman/cp"
	"golang.org/x/image/colornames"

	"github.com/milk9111/savematter/common"
	"github.com/milk9111/savematter/ecs"
	"github.com/milk9111/savematter/ecs/component"
	"github.com/milk9111/savematter/levels"
	"github.com/milk9111/savematter/prefabs"
)

var tileColors = map[string]color.RGBA{
	levels.CollisionSolid:  colornames.Sienna,
	levels.CollisionOneWay: colornames.Burlywood,
	levels.CollisionNone:   colornames.Rosybrown,
}

// addTileLayer creates one drawable entity per tile and merged colliders for
// layers that collide.
func addTileLayer(w *ecs.World, lvl *levels.Level, layer *levels.TileLayer) error {
	tile := lvl.Tile()
	renderLayer := component.LayerBackgroundTiles
	if layer.Collision != levels.CollisionNone {
		renderLayer = component.LayerMain
	}
	for y := 0; y < lvl.Height; y++ {
		for x := 0; x < lvl.Width; x++ {
			id := layer.At(lvl.Width, x, y)
			if id <= 0 {
				continue
			}
			e := w.CreateEntity()
			r := common.NewRect(float64(x)*tile, float64(y)*tile, tile, tile)
			sprite := &component.Sprite{Key: fmt.Sprintf("tiles/%d.png", id), Color: tileColors[layer.Collision]}
			if err := addDrawn(w, e, staticBody(r), sprite, renderLayer); err != nil {
				return fmt.Errorf("tile %d,%d: %w", x, y, err)
			}
		}
	}

	switch layer.Collision {
	case levels.CollisionSolid:
		return addMergedTileColliders(w, layer.Tiles, lvl.Width, lvl.Height, tile, component.LayerSolid)
	case levels.CollisionOneWay:
		return addMergedTileColliders(w, layer.Tiles, lvl.Width, lvl.Height, tile, component.LayerOneWay)
	}
	return nil
}

// addMergedTileColliders covers the filled tiles of a layer with as few
// rectangles as a greedy row-then-column sweep finds.
func addMergedTileColliders(w *ecs.World, layer []int, width, height int, tileSize float64, kind component.CollisionLayer) error {
	if width <= 0 || height <= 0 {
		return nil
	}
	visited := make([]bool, width*height)
	index := func(x, y int) int { return y*width + x }
	filled := func(i int) bool { return i < len(layer) && !visited[i] && layer[i] > 0 }

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !filled(index(x, y)) {
				continue
			}

			maxW := 0
			for x2 := x; x2 < width && filled(index(x2, y)); x2++ {
				maxW++
			}

			maxH := 1
			// One-way colliders stay one tile tall so only their top edge counts.
			for y2 := y + 1; y2 < height && kind == component.LayerSolid; y2++ {
				rowOK := true
				for x2 := x; x2 < x+maxW; x2++ {
					if !filled(index(x2, y2)) {
						rowOK = false
						break
					}
				}
				if !rowOK {
					break
				}
				maxH++
			}

			for yy := y; yy < y+maxH; yy++ {
				for xx := x; xx < x+maxW; xx++ {
					visited[index(xx, yy)] = true
				}
			}

			r := common.NewRect(float64(x)*tileSize, float64(y)*tileSize, float64(maxW)*tileSize, float64(maxH)*tileSize)
			if _, err := NewCollider(w, r, kind); err != nil {
				return err
			}
		}
	}

	return nil
}

// NewCollider adds invisible static geometry.
func NewCollider(w *ecs.World, r common.Rect, kind component.CollisionLayer) (ecs.Entity, error) {
	if r.Empty() {
		return 0, fmt.Errorf("collider: %w", ErrEmptyShape)
	}
	e := w.CreateEntity()
	body := staticBody(r)
	if err := ecs.Add(w, e, component.BodyComponent.Kind(), &body); err != nil {
		return 0, fmt.Errorf("collider: add body: %w", err)
	}
	if err := addCollider(w, e, kind); err != nil {
		return 0, err
	}
	return e, nil
}

func addCollider(w *ecs.World, e ecs.Entity, kind component.CollisionLayer) error {
	if err := ecs.Add(w, e, component.ColliderComponent.Kind(), &component.Collider{Layer: kind}); err != nil {
		return fmt.Errorf("collider: add collision layer: %w", err)
	}
	return nil
}

func objectRect(obj levels.Entity) (common.Rect, error) {
	r := common.NewRect(obj.X, obj.Y, obj.Width, obj.Height)
	if r.Empty() {
		return r, fmt.Errorf("%s at %v,%v: %w", obj.Type, obj.X, obj.Y, ErrEmptyShape)
	}
	return r, nil
}

func buildBlock(w *ecs.World, _ *Context, obj levels.Entity) error {
	r, err := objectRect(obj)
	if err != nil {
		return err
	}
	e := w.CreateEntity()
	if err := addDrawn(w, e, staticBody(r), &component.Sprite{Key: obj.Type + ".png", Color: colornames.Saddlebrown}, component.LayerMain); err != nil {
		return err
	}
	return addCollider(w, e, component.LayerSolid)
}

func buildPalm(w *ecs.World, _ *Context, obj levels.Entity) error {
	r, err := objectRect(obj)
	if err != nil {
		return err
	}
	key := obj.Name
	if key == "" {
		key = obj.Type
	}
	e := w.CreateEntity()
	if err := addDrawn(w, e, staticBody(r), &component.Sprite{Key: key + ".png", Color: colornames.Olivedrab}, component.LayerMain); err != nil {
		return err
	}
	return addCollider(w, e, component.LayerOneWay)
}

func buildDecoration(w *ecs.World, _ *Context, obj levels.Entity) error {
	r, err := objectRect(obj)
	if err != nil {
		return err
	}
	if obj.Name == "" {
		obj.Name = obj.Type
	}
	return addDrawn(w, w.CreateEntity(), staticBody(r), &component.Sprite{Key: obj.Name + ".png", Color: colornames.Goldenrod}, component.LayerBackgroundDetails)
}

func buildWater(w *ecs.World, ctx *Context, obj levels.Entity) error {
	r, err := objectRect(obj)
	if err != nil {
		return err
	}
	tile := ctx.Bundle.World.TileSize
	if tile <= 0 {
		tile = levels.DefaultTileSize
	}
	for y := r.Top(); y < r.Bottom(); y += tile {
		key := "water_body.png"
		if y == r.Top() {
			key = "water_top.png"
		}
		for x := r.Left(); x < r.Right(); x += tile {
			e := w.CreateEntity()
			sprite := &component.Sprite{Key: key, Color: ctx.Bundle.World.Sky.SeaColor.OrDefault(colornames.Steelblue)}
			if err := addDrawn(w, e, staticBody(common.NewRect(x, y, tile, tile)), sprite, component.LayerWater); err != nil {
				return err
			}
		}
	}
	return nil
}

type floorSpikeProps struct {
	Inverted bool `yaml:"inverted"`
}

func buildFloorSpike(w *ecs.World, ctx *Context, obj levels.Entity) error {
	r, err := objectRect(obj)
	if err != nil {
		return err
	}
	props, err := prefabs.DecodeSpec[floorSpikeProps](obj.Props)
	if err != nil {
		return fmt.Errorf("floor spike props: %w", err)
	}
	inset := ctx.Bundle.World.Hazards.FloorSpikeInset
	hitbox := common.NewRect(r.X, r.Y, r.Width, r.Height-inset)
	if !props.Inverted {
		hitbox.Y += inset
	}

	e := w.CreateEntity()
	sprite := &component.Sprite{Key: "floor_spike.png", Color: colornames.Silver, FlipY: props.Inverted}
	if err := addDrawn(w, e, hitboxBody(r, hitbox), sprite, component.LayerMain); err != nil {
		return err
	}
	return ecs.Add(w, e, component.DamageComponent.Kind(), &component.Damage{})
}

func buildSaw(w *ecs.World, _ *Context, obj levels.Entity) error {
	r, err := objectRect(obj)
	if err != nil {
		return err
	}
	e := w.CreateEntity()
	if err := addDrawn(w, e, staticBody(r), &component.Sprite{Key: "saw.png", Color: colornames.Slategray}, component.LayerMain); err != nil {
		return err
	}
	return ecs.Add(w, e, component.DamageComponent.Kind(), &component.Damage{})
}

type movingProps struct {
	Platform bool    `yaml:"platform"`
	Speed    float64 `yaml:"speed"`
	Flip     bool    `yaml:"flip"`
}

// buildMoving turns a path rectangle into a body travelling along its long
// side. Platforms carry the player; anything else hurts and gets a chain.
func buildMoving(w *ecs.World, ctx *Context, obj levels.Entity) error {
	path, err := objectRect(obj)
	if err != nil {
		return err
	}
	props, err := prefabs.DecodeSpec[movingProps](obj.Props)
	if err != nil {
		return fmt.Errorf("moving props: %w", err)
	}

	mp := component.MovingPlatform{Speed: props.Speed, Flip: props.Flip}
	if path.Width > path.Height {
		mp.Axis = component.AxisX
		mp.Start = cp.Vector{X: path.Left(), Y: path.CenterY()}
		mp.End = cp.Vector{X: path.Right(), Y: path.CenterY()}
		mp.Direction = cp.Vector{X: 1}
	} else {
		mp.Axis = component.AxisY
		mp.Start = cp.Vector{X: path.CenterX(), Y: path.Top()}
		mp.End = cp.Vector{X: path.CenterX(), Y: path.Bottom()}
		mp.Direction = cp.Vector{Y: 1}
	}

	hazards := ctx.Bundle.World.Hazards
	size := hazards.Saw
	fill := colornames.Slategray
	if props.Platform {
		size = hazards.Platform
		fill = colornames.Peru
	}
	r := rectOf(size, 0, 0)
	r.SetCenter(mp.Start)

	key := obj.Name
	if key == "" {
		key = "platform"
	}
	e := w.CreateEntity()
	if err := addDrawn(w, e, staticBody(r), &component.Sprite{Key: key + ".png", Color: fill}, component.LayerMain); err != nil {
		return err
	}
	if err := ecs.Add(w, e, component.MovingPlatformComponent.Kind(), &mp); err != nil {
		return fmt.Errorf("moving: add moving platform: %w", err)
	}
	if props.Platform {
		return addCollider(w, e, component.LayerOneWay)
	}
	if err := ecs.Add(w, e, component.DamageComponent.Kind(), &component.Damage{}); err != nil {
		return err
	}
	return addChain(w, ctx, mp.Start, mp.End)
}

// addChain lays decorative links along a saw's track.
func addChain(w *ecs.World, ctx *Context, start, end cp.Vector) error {
	hazards := ctx.Bundle.World.Hazards
	length := start.Distance(end)
	dir := end.Sub(start).Normalize()
	for d := 0.0; d < length; d += hazards.ChainSpacing {
		r := rectOf(hazards.Chain, 0, 0)
		r.SetCenter(start.Add(dir.Mult(d)))
		e := w.CreateEntity()
		if err := addDrawn(w, e, staticBody(r), &component.Sprite{Key: "saw_chain.png", Color: colornames.Dimgray}, component.LayerBackgroundDetails); err != nil {
			return err
		}
	}
	return nil
}

type orbitProps struct {
	Radius     float64 `yaml:"radius"`
	Speed      float64 `yaml:"speed"`
	StartAngle float64 `yaml:"start_angle"`
	EndAngle   float64 `yaml:"end_angle"`
}

// buildOrbitSpike adds a damaging spike ball swinging around the object's
// center plus the chain links between them.
func buildOrbitSpike(w *ecs.World, ctx *Context, obj levels.Entity) error {
	r, err := objectRect(obj)
	if err != nil {
		return err
	}
	props, err := prefabs.DecodeSpec[orbitProps](obj.Props)
	if err != nil {
		return fmt.Errorf("spike props: %w", err)
	}
	center := r.Center()
	hazards := ctx.Bundle.World.Hazards

	spike := w.CreateEntity()
	if err := addOrbiter(w, spike, center, props, props.Radius, hazards.Spike, "spike.png", colornames.Darkgray, component.LayerMain); err != nil {
		return err
	}
	if err := ecs.Add(w, spike, component.DamageComponent.Kind(), &component.Damage{}); err != nil {
		return err
	}

	for radius := 0.0; radius < props.Radius; radius += hazards.ChainSpacing {
		link := w.CreateEntity()
		if err := addOrbiter(w, link, center, props, radius, hazards.Chain, "spike_chain.png", colornames.Dimgray, component.LayerBackgroundDetails); err != nil {
			return err
		}
	}
	return nil
}

func addOrbiter(w *ecs.World, e ecs.Entity, center cp.Vector, props orbitProps, radius float64, size prefabs.SizeSpec, key string, c color.RGBA, layer int) error {
	o := &component.Orbit{
		Center:     center,
		Radius:     radius,
		Speed:      props.Speed,
		Angle:      props.StartAngle,
		Direction:  1,
		StartAngle: props.StartAngle,
		EndAngle:   props.EndAngle,
	}
	r := rectOf(size, 0, 0)
	r.SetCenter(center.Add(cp.ForAngle(common.Radians(o.Angle)).Mult(radius)))
	if err := addDrawn(w, e, staticBody(r), &component.Sprite{Key: key, Color: c}, layer); err != nil {
		return err
	}
	return ecs.Add(w, e, component.OrbitComponent.Kind(), o)
}

func buildFlag(w *ecs.World, ctx *Context, obj levels.Entity) error {
	r, err := objectRect(obj)
	if err != nil {
		return err
	}
	e := w.CreateEntity()
	if err := addDrawn(w, e, staticBody(r), &component.Sprite{Key: "flag.png", Color: colornames.Crimson}, component.LayerMain); err != nil {
		return err
	}
	return ecs.Add(w, e, component.GoalComponent.Kind(), &component.Goal{Rect: r, Unlock: ctx.level.Unlock})
}
