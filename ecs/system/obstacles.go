package system

import (
	"math"
	"sort"

	"github.com/jakecoffman/cp"
	"github.com/solarlune/resolv"

	"github.com/milk9111/savematter/common"
	"github.com/milk9111/savematter/ecs"
	"github.com/milk9111/savematter/ecs/component"
)

// sideTolerance absorbs float drift when deciding which side of an obstacle
// a body came from, so a body resting flush against a surface still counts
// as having been outside it.
const sideTolerance = 0.5

const (
	tagSolid  = "solid"
	tagOneWay = "oneway"
	tagQuery  = "query"

	// spaceCell is the resolv cell size in world units.
	spaceCell = 32
	// sweepMargin widens resolver queries past the frame's travel, so an
	// obstacle the hitbox is pushed into is still a candidate.
	sweepMargin = 64
)

type obstacle struct {
	index  int
	entity ecs.Entity
	layer  component.CollisionLayer
	rect   common.Rect
	old    common.Rect
	moving bool
}

// obstacleSpace files every collider of a frame in a resolv space. Cell
// lookup narrows the candidates; whether a candidate overlaps is decided on
// the rects, where touching edges do not count.
type obstacleSpace struct {
	space     *resolv.Space
	origin    cp.Vector
	cursor    *resolv.Object
	obstacles []obstacle
}

// newObstacleSpace snapshots every collider's current and previous bounds.
func newObstacleSpace(w *ecs.World) *obstacleSpace {
	var obstacles []obstacle
	ecs.ForEach2(w, component.ColliderComponent.Kind(), component.BodyComponent.Kind(), func(e ecs.Entity, c *component.Collider, body *component.Body) {
		if c.Layer != component.LayerSolid && c.Layer != component.LayerOneWay {
			panic("collision: unknown layer " + c.Layer.String())
		}
		obstacles = append(obstacles, obstacle{
			entity: e,
			layer:  c.Layer,
			rect:   body.Bounds(),
			old:    body.OldBounds(),
			moving: ecs.Has(w, e, component.MovingPlatformComponent.Kind()),
		})
	})
	return indexObstacles(obstacles)
}

func indexObstacles(obstacles []obstacle) *obstacleSpace {
	s := &obstacleSpace{obstacles: obstacles}
	if len(obstacles) == 0 {
		return s
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, o := range obstacles {
		minX, minY = math.Min(minX, o.rect.Left()), math.Min(minY, o.rect.Top())
		maxX, maxY = math.Max(maxX, o.rect.Right()), math.Max(maxY, o.rect.Bottom())
	}
	// Two spare cells on every side keep registered objects inside the grid.
	s.origin = cp.Vector{X: minX - 2*spaceCell, Y: minY - 2*spaceCell}
	width := int(math.Ceil(maxX-minX)) + 4*spaceCell
	height := int(math.Ceil(maxY-minY)) + 4*spaceCell
	s.space = resolv.NewSpace(width, height, spaceCell, spaceCell)

	for i := range s.obstacles {
		o := &s.obstacles[i]
		o.index = i
		obj := s.object(o.rect, layerTag(o.layer))
		obj.Data = i
		s.space.Add(obj)
	}
	s.cursor = s.object(common.Rect{}, tagQuery)
	s.space.Add(s.cursor)
	return s
}

// object places r in space coordinates. Objects are one unit larger than
// the rect so the last partial cell it covers is always registered.
func (s *obstacleSpace) object(r common.Rect, tag string) *resolv.Object {
	return resolv.NewObject(r.X-s.origin.X, r.Y-s.origin.Y, r.Width+1, r.Height+1, tag)
}

func layerTag(layer component.CollisionLayer) string {
	if layer == component.LayerOneWay {
		return tagOneWay
	}
	return tagSolid
}

// query returns the obstacles on layer that overlap r, in collection order.
func (s *obstacleSpace) query(r common.Rect, layer component.CollisionLayer) []obstacle {
	if s.space == nil {
		return nil
	}
	s.cursor.X = r.X - s.origin.X
	s.cursor.Y = r.Y - s.origin.Y
	s.cursor.W = r.Width + 1
	s.cursor.H = r.Height + 1
	s.cursor.Update()

	collision := s.cursor.Check(0, 0, layerTag(layer))
	if collision == nil {
		return nil
	}
	var out []obstacle
	for _, obj := range collision.Objects {
		o := s.obstacles[obj.Data.(int)]
		if o.rect.Intersects(r) {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].index < out[j].index })
	return out
}

func (s *obstacleSpace) hits(r common.Rect, layer component.CollisionLayer) bool {
	return len(s.query(r, layer)) > 0
}

// near lists the obstacles on layer a body moving from old to now could end
// up touching while it is resolved.
func (s *obstacleSpace) near(now, old common.Rect, layer component.CollisionLayer) []obstacle {
	sweep := now.Union(old).Inflate(2*sweepMargin, 2*sweepMargin)
	return s.query(sweep, layer)
}
