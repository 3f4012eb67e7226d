package render

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/colorm"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"golang.org/x/image/colornames"

	"github.com/milk9111/savematter/ecs"
	"github.com/milk9111/savematter/ecs/component"
	"github.com/milk9111/savematter/ecs/system"
	"github.com/milk9111/savematter/prefabs"
)

const horizonWidth = 4

// Renderer paints the sky and every drawable body of a world.
type Renderer struct {
	sky        color.RGBA
	horizon    color.RGBA
	sea        color.RGBA
	largeKey   string
	largeH     float64
	Debug      bool
	tick       int
	whiteFlash colorm.ColorM
}

func NewRenderer(spec *prefabs.WorldSpec) *Renderer {
	r := &Renderer{
		sky:      spec.Sky.Color.OrDefault(color.RGBA{R: 0xdd, G: 0xc6, B: 0xa1, A: 0xff}),
		horizon:  spec.Sky.HorizonColor.OrDefault(color.RGBA{R: 0xf5, G: 0xf1, B: 0xde, A: 0xff}),
		sea:      spec.Sky.SeaColor.OrDefault(color.RGBA{R: 0x92, G: 0xa9, B: 0xce, A: 0xff}),
		largeKey: spec.Sky.LargeCloudKey,
		largeH:   spec.Sky.LargeCloud.Height,
	}
	r.whiteFlash.Scale(0, 0, 0, 1)
	r.whiteFlash.Translate(1, 1, 1, 0)
	return r
}

func (r *Renderer) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	r.tick++

	offset := cp.Vector{}
	if camEntity, ok := w.First(component.CameraComponent.Kind()); ok {
		cam, _ := ecs.Get(w, camEntity, component.CameraComponent.Kind())
		offset = cam.Offset
	}

	r.drawSky(w, screen, offset)

	flashing := ecs.Entity(0)
	if player, ok := w.First(component.PlayerTagComponent.Kind()); ok {
		if timers, ok := ecs.Get(w, player, component.TimersComponent.Kind()); ok && timers.Active(component.TimerImmunity) && r.tick%2 == 0 {
			flashing = player
		}
	}

	for _, entry := range system.PaintOrder(w) {
		body, _ := ecs.Get(w, entry.Entity, component.BodyComponent.Kind())
		sprite, ok := ecs.Get(w, entry.Entity, component.SpriteComponent.Kind())
		if !ok {
			continue
		}
		layer, _ := ecs.Get(w, entry.Entity, component.RenderLayerComponent.Kind())
		parallax := layer.Parallax
		if parallax == 0 {
			parallax = 1
		}
		x := body.Rect.X + offset.X*parallax
		y := body.Rect.Y + offset.Y*parallax
		r.drawSprite(screen, sprite, x, y, body.Rect.Width, body.Rect.Height, entry.Entity == flashing)

		if r.Debug && body.HasHitbox {
			hb := body.Hitbox
			vector.StrokeRect(screen, float32(hb.X+offset.X), float32(hb.Y+offset.Y), float32(hb.Width), float32(hb.Height), 1, colornames.Red, false)
		}
	}
}

func (r *Renderer) drawSky(w *ecs.World, screen *ebiten.Image, offset cp.Vector) {
	screen.Fill(r.sky)

	levelEntity, ok := w.First(component.LevelBoundsComponent.Kind())
	if !ok {
		return
	}
	bounds, _ := ecs.Get(w, levelEntity, component.LevelBoundsComponent.Kind())
	sw := float32(screen.Bounds().Dx())
	sh := float32(screen.Bounds().Dy())
	horizon := float32(bounds.HorizonLine + offset.Y)

	if sky, ok := ecs.Get(w, levelEntity, component.SkyComponent.Kind()); ok && r.largeKey != "" {
		if img, err := LoadImage(r.largeKey); err == nil {
			width := float64(img.Bounds().Dx())
			for i := 0.0; i < 2; i++ {
				op := &ebiten.DrawImageOptions{}
				op.GeoM.Translate(sky.LargeCloudX+width*i+offset.X*sky.Parallax, float64(horizon)-r.largeH)
				screen.DrawImage(img, op)
			}
		}
	}

	if horizon < sh {
		vector.FillRect(screen, 0, horizon, sw, sh-horizon, r.sea, false)
	}
	vector.StrokeLine(screen, 0, horizon, sw, horizon, horizonWidth, r.horizon, false)
}

func (r *Renderer) drawSprite(screen *ebiten.Image, sprite *component.Sprite, x, y, width, height float64, flash bool) {
	img, err := LoadImage(sprite.Key)
	if err != nil {
		fill := sprite.Color
		if flash {
			fill = colornames.White
		}
		if fill.A == 0 {
			return
		}
		vector.FillRect(screen, float32(x), float32(y), float32(width), float32(height), fill, false)
		return
	}

	iw := float64(img.Bounds().Dx())
	ih := float64(img.Bounds().Dy())
	sx, sy := 1.0, 1.0
	if iw > 0 && ih > 0 {
		sx, sy = width/iw, height/ih
	}

	geo := ebiten.GeoM{}
	if sprite.FacingLeft {
		geo.Scale(-1, 1)
		geo.Translate(iw, 0)
	}
	if sprite.FlipY {
		geo.Scale(1, -1)
		geo.Translate(0, ih)
	}
	geo.Scale(sx, sy)
	geo.Translate(math.Round(x), math.Round(y))

	if flash {
		op := &colorm.DrawImageOptions{GeoM: geo}
		colorm.DrawImage(screen, img, r.whiteFlash, op)
		return
	}
	screen.DrawImage(img, &ebiten.DrawImageOptions{GeoM: geo})
}
