package system

import (
	"github.com/milk9111/savematter/common"
	"github.com/milk9111/savematter/ecs"
	"github.com/milk9111/savematter/ecs/component"
)

// ContactSystem probes thin rectangles below and beside the player's hitbox
// to find floor and wall contact and the moving platform being ridden.
type ContactSystem struct{}

func NewContactSystem() *ContactSystem {
	return &ContactSystem{}
}

func (s *ContactSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	e, ok := w.First(component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	player := ecs.MustGet(w, e, component.PlayerComponent.Kind(), "contact")
	body := ecs.MustGet(w, e, component.BodyComponent.Kind(), "contact")
	vel := ecs.MustGet(w, e, component.VelocityComponent.Kind(), "contact")
	contact := ecs.MustGet(w, e, component.SurfaceContactComponent.Kind(), "contact")

	*contact = senseContacts(body.Hitbox, vel.Y, player.Tuning.ProbeSize, newObstacleSpace(w))
}

// senseContacts is the probe test itself. Landing on one-way geometry only
// counts while the body is not moving up.
func senseContacts(hitbox common.Rect, vy, thickness float64, space *obstacleSpace) component.SurfaceContact {
	floor := common.NewRect(hitbox.Left(), hitbox.Bottom(), hitbox.Width, thickness)
	left := common.NewRect(hitbox.Left()-thickness, hitbox.Top()+hitbox.Height/4, thickness, hitbox.Height/2)
	right := common.NewRect(hitbox.Right(), hitbox.Top()+hitbox.Height/4, thickness, hitbox.Height/2)

	under := space.query(floor, component.LayerSolid)
	underOneWay := space.query(floor, component.LayerOneWay)
	c := component.SurfaceContact{
		Floor: len(under) > 0 || (len(underOneWay) > 0 && vy >= 0),
		Left:  space.hits(left, component.LayerSolid),
		Right: space.hits(right, component.LayerSolid),
	}

	for _, group := range [][]obstacle{under, underOneWay} {
		for _, o := range group {
			if o.moving {
				c.Platform = o.entity.Raw()
				return c
			}
		}
	}
	return c
}
