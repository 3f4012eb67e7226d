package system

import (
	"math"
	"testing"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/savematter/common"
	"github.com/milk9111/savematter/ecs"
	"github.com/milk9111/savematter/ecs/component"
	"github.com/milk9111/savematter/timer"
)

const frame = 1.0 / 60

var testTuning = component.PlayerTuning{
	Speed:       200,
	Gravity:     1300,
	JumpSpeed:   900,
	WallSlide:   10,
	ProbeSize:   2,
	CeilingPush: 6,
}

// rig is a small world with a simulation clock for driving systems frame by
// frame.
type rig struct {
	t      *testing.T
	w      *ecs.World
	clock  *timer.SimClock
	player ecs.Entity
}

func newRig(t *testing.T) *rig {
	t.Helper()
	clock := timer.NewSimClock()
	clock.Set(time.Second)
	return &rig{t: t, w: ecs.NewWorld(), clock: clock}
}

func (r *rig) ms(n int) *timer.Timer {
	return timer.MustNew(r.clock, time.Duration(n)*time.Millisecond)
}

// addPlayer places a 52x60 hitbox with its top-left corner at x, y.
func (r *rig) addPlayer(x, y float64) ecs.Entity {
	r.t.Helper()
	w := r.w
	e := w.CreateEntity()
	hitbox := common.NewRect(x, y, 52, 60)
	rect := common.RectFromCenter(hitbox.Center(), 128, 96)
	r.must(ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}))
	r.must(ecs.Add(w, e, component.PlayerComponent.Kind(), &component.Player{Tuning: testTuning, FacingRight: true}))
	r.must(ecs.Add(w, e, component.BodyComponent.Kind(), &component.Body{
		Rect: rect, OldRect: rect, Hitbox: hitbox, OldHitbox: hitbox, HasHitbox: true,
	}))
	r.must(ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{}))
	r.must(ecs.Add(w, e, component.SurfaceContactComponent.Kind(), &component.SurfaceContact{}))
	r.must(ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{}))
	r.must(ecs.Add(w, e, component.AnimationComponent.Kind(), &component.Animation{
		State:  component.AnimIdle,
		Speed:  6,
		Counts: map[string]int{component.AnimIdle: 5, component.AnimRun: 6, component.AnimAttack: 4, component.AnimAirAttack: 4},
	}))
	timers := component.Timers{
		component.TimerWallJump:       r.ms(400),
		component.TimerWallSlideBlock: r.ms(250),
		component.TimerPlatformFall:   r.ms(100),
		component.TimerAttackBlock:    r.ms(500),
		component.TimerImmunity:       r.ms(650),
	}
	r.must(ecs.Add(w, e, component.TimersComponent.Kind(), &timers))
	r.player = e
	return e
}

func (r *rig) addCollider(layer component.CollisionLayer, x, y, w, h float64) ecs.Entity {
	r.t.Helper()
	e := r.w.CreateEntity()
	rect := common.NewRect(x, y, w, h)
	r.must(ecs.Add(r.w, e, component.BodyComponent.Kind(), &component.Body{Rect: rect, OldRect: rect}))
	r.must(ecs.Add(r.w, e, component.ColliderComponent.Kind(), &component.Collider{Layer: layer}))
	return e
}

func (r *rig) addSolid(x, y, w, h float64) ecs.Entity {
	return r.addCollider(component.LayerSolid, x, y, w, h)
}

func (r *rig) addOneWay(x, y, w, h float64) ecs.Entity {
	return r.addCollider(component.LayerOneWay, x, y, w, h)
}

func (r *rig) addPlatform(layer component.CollisionLayer, rect common.Rect, mp component.MovingPlatform) ecs.Entity {
	r.t.Helper()
	e := r.addCollider(layer, rect.X, rect.Y, rect.Width, rect.Height)
	r.must(ecs.Add(r.w, e, component.MovingPlatformComponent.Kind(), &mp))
	return e
}

// step advances the clock one frame and runs systems in order.
func (r *rig) step(systems ...ecs.System) {
	r.clock.Advance(frame)
	r.w.SetDelta(frame)
	for _, s := range systems {
		s.Update(r.w)
	}
}

func (r *rig) must(err error) {
	r.t.Helper()
	if err != nil {
		r.t.Fatalf("setup: %v", err)
	}
}

func (r *rig) body(e ecs.Entity) *component.Body {
	r.t.Helper()
	b, ok := ecs.Get(r.w, e, component.BodyComponent.Kind())
	if !ok {
		r.t.Fatalf("entity %v has no body", e)
	}
	return b
}

func (r *rig) velocity() *component.Velocity {
	v, _ := ecs.Get(r.w, r.player, component.VelocityComponent.Kind())
	return v
}

func (r *rig) contact() *component.SurfaceContact {
	c, _ := ecs.Get(r.w, r.player, component.SurfaceContactComponent.Kind())
	return c
}

func (r *rig) input() *component.Input {
	in, _ := ecs.Get(r.w, r.player, component.InputComponent.Kind())
	return in
}

func (r *rig) playerState() *component.Player {
	p, _ := ecs.Get(r.w, r.player, component.PlayerComponent.Kind())
	return p
}

func (r *rig) timers() *component.Timers {
	tm, _ := ecs.Get(r.w, r.player, component.TimersComponent.Kind())
	return tm
}

func eventsOf(events []ecs.Event, typ ecs.EventType) []ecs.Event {
	var out []ecs.Event
	for _, e := range events {
		if e.Type == typ {
			out = append(out, e)
		}
	}
	return out
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func nearVec(a, b cp.Vector) bool {
	return near(a.X, b.X) && near(a.Y, b.Y)
}

func vec(x, y float64) cp.Vector {
	return cp.Vector{X: x, Y: y}
}
