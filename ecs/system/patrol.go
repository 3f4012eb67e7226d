package system

import (
	"github.com/milk9111/savematter/common"
	"github.com/milk9111/savematter/ecs"
	"github.com/milk9111/savematter/ecs/component"
)

// PatrolSystem walks ground enemies and turns them around at walls and at
// the end of the ground they stand on.
type PatrolSystem struct{}

func NewPatrolSystem() *PatrolSystem {
	return &PatrolSystem{}
}

func (s *PatrolSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Delta()

	space := newObstacleSpace(w)

	ecs.ForEach2(w, component.PatrolComponent.Kind(), component.BodyComponent.Kind(), func(e ecs.Entity, p *component.Patrol, body *component.Body) {
		body.Snapshot()
		body.Move(p.Direction*p.Speed*dt, 0)
		if patrolBlocked(body.Rect, p.Direction, space) {
			p.Direction = -p.Direction
		}
		if sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
			sprite.FacingLeft = p.Direction < 0
		}
	})
}

// patrolBlocked reports whether a patrolling body moving in dir has run out
// of ground ahead or touched a wall. Its own ground must be in space.
func patrolBlocked(r common.Rect, dir float64, space *obstacleSpace) bool {
	floorRight := common.NewRect(r.Right(), r.Bottom(), 1, 1)
	floorLeft := common.NewRect(r.Left()-1, r.Bottom(), 1, 1)
	wall := common.NewRect(r.Left()-1, r.Top(), r.Width+2, 1)

	switch {
	case dir > 0 && !space.hits(floorRight, component.LayerSolid):
		return true
	case dir < 0 && !space.hits(floorLeft, component.LayerSolid):
		return true
	}
	return space.hits(wall, component.LayerSolid)
}
