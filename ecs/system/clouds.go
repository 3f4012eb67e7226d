package system

import (
	"golang.org/x/image/colornames"

	"github.com/milk9111/savematter/common"
	"github.com/milk9111/savematter/ecs"
	"github.com/milk9111/savematter/ecs/component"
)

// CloudSystem scrolls the large background cloud, spawns a small cloud past
// the right edge of the level each time the sky's timer fires and drifts
// clouds left until they leave the level.
type CloudSystem struct{}

func NewCloudSystem() *CloudSystem {
	return &CloudSystem{}
}

func (s *CloudSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Delta()

	if e, ok := w.First(component.SkyComponent.Kind()); ok {
		sky, _ := ecs.Get(w, e, component.SkyComponent.Kind())
		bounds := ecs.MustGet(w, e, component.LevelBoundsComponent.Kind(), "cloud")

		sky.LargeCloudX -= sky.LargeSpeed * dt
		if sky.LargeWidth > 0 && sky.LargeCloudX <= -sky.LargeWidth {
			sky.LargeCloudX = 0
		}

		for ; sky.Pending > 0; sky.Pending-- {
			x := bounds.Width + uniform(sky, sky.SpawnMargin[0], sky.SpawnMargin[1])
			y := uniform(sky, bounds.TopLimit, bounds.HorizonLine)
			SpawnCloud(w, sky, x, y)
		}
	}

	ecs.ForEach2(w, component.DriftComponent.Kind(), component.BodyComponent.Kind(), func(e ecs.Entity, d *component.Drift, body *component.Body) {
		body.Move(d.Direction*d.Speed*dt, 0)
		if body.Rect.Right() <= 0 {
			w.DestroyEntity(e)
		}
	})
}

// SpawnCloud adds one drifting cloud with its top-left corner at x, y.
func SpawnCloud(w *ecs.World, sky *component.Sky, x, y float64) ecs.Entity {
	e := w.CreateEntity()
	rect := common.NewRect(x, y, sky.CloudWidth, sky.CloudHeight)
	key := ""
	if len(sky.CloudKeys) > 0 {
		key = sky.CloudKeys[sky.Rand.IntN(len(sky.CloudKeys))]
	}
	if err := ecs.Add(w, e, component.BodyComponent.Kind(), &component.Body{Rect: rect, OldRect: rect}); err != nil {
		panic("cloud system: add body: " + err.Error())
	}
	if err := ecs.Add(w, e, component.DriftComponent.Kind(), &component.Drift{
		Speed:     uniform(sky, sky.MinSpeed, sky.MaxSpeed),
		Direction: -1,
	}); err != nil {
		panic("cloud system: add drift: " + err.Error())
	}
	if err := ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{Key: key, Color: cloudColor}); err != nil {
		panic("cloud system: add sprite: " + err.Error())
	}
	if err := ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: component.LayerClouds, Parallax: sky.Parallax}); err != nil {
		panic("cloud system: add render layer: " + err.Error())
	}
	return e
}

func uniform(sky *component.Sky, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + sky.Rand.Float64()*(hi-lo)
}

var cloudColor = colornames.Whitesmoke
