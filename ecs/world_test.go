package ecs

import (
	"errors"
	"testing"

	"github.com/milk9111/savematter/ecs/component"
)

func TestWorldEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_create_destroy_middle", 3, 1},
		{"none_destroy", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, w.CreateEntity())
			}
			if w.Count() != c.create {
				t.Fatalf("expected %d entities, got %d", c.create, w.Count())
			}
			if c.destroyIndex >= 0 {
				if !w.DestroyEntity(ents[c.destroyIndex]) {
					t.Fatalf("DestroyEntity should return true for alive entity")
				}
				if w.IsAlive(ents[c.destroyIndex]) {
					t.Fatalf("entity should not be alive after destruction")
				}
				if w.DestroyEntity(ents[c.destroyIndex]) {
					t.Fatalf("second DestroyEntity should report false")
				}
			}
		})
	}
}

func TestWorldComponents(t *testing.T) {
	w := NewWorld()
	ints := component.NewComponent[int]()
	strs := component.NewComponent[string]()

	e1 := w.CreateEntity()
	e2 := w.CreateEntity()

	ten, a, b := 10, "a", "b"
	if err := Add(w, e1, ints.Kind(), &ten); err != nil {
		t.Fatalf("add int: %v", err)
	}
	if err := Add(w, e1, strs.Kind(), &a); err != nil {
		t.Fatalf("add str e1: %v", err)
	}
	if err := Add(w, e2, strs.Kind(), &b); err != nil {
		t.Fatalf("add str e2: %v", err)
	}

	v, ok := Get(w, e1, ints.Kind())
	if !ok || *v != 10 {
		t.Fatalf("expected 10, got %v ok=%v", v, ok)
	}
	*v = 11
	if v2, _ := Get(w, e1, ints.Kind()); *v2 != 11 {
		t.Fatalf("Get should return the stored pointer")
	}

	both := w.Query(ints.Kind(), strs.Kind())
	if len(both) != 1 || both[0] != e1 {
		t.Fatalf("query ints+strs = %v, want [%v]", both, e1)
	}

	seen := 0
	ForEach2(w, strs.Kind(), ints.Kind(), func(e Entity, s *string, i *int) {
		seen++
		if e != e1 || *s != "a" || *i != 11 {
			t.Fatalf("unexpected ForEach2 visit %v %q %d", e, *s, *i)
		}
	})
	if seen != 1 {
		t.Fatalf("ForEach2 visited %d entities", seen)
	}

	if !Remove(w, e1, ints.Kind()) {
		t.Fatalf("Remove should report true")
	}
	if Has(w, e1, ints.Kind()) {
		t.Fatalf("component still present after Remove")
	}
	if Remove(w, e1, ints.Kind()) {
		t.Fatalf("second Remove should report false")
	}
}

func TestWorldAddErrors(t *testing.T) {
	w := NewWorld()
	ints := component.NewComponent[int]()
	e := w.CreateEntity()
	one := 1

	if err := Add(w, e, ints.Kind(), nil); !errors.Is(err, component.ErrNilComponent) {
		t.Fatalf("nil value: %v", err)
	}
	if err := Add(w, e, component.ComponentKind[int]{}, &one); !errors.Is(err, component.ErrInvalidComponentKind) {
		t.Fatalf("zero kind: %v", err)
	}
	w.DestroyEntity(e)
	if err := Add(w, e, ints.Kind(), &one); !errors.Is(err, component.ErrEntityNotAlive) {
		t.Fatalf("dead entity: %v", err)
	}
}

func TestWorldDestroyIsDeferredUntilFlush(t *testing.T) {
	w := NewWorld()
	ints := component.NewComponent[int]()
	ents := make([]Entity, 3)
	for i := range ents {
		ents[i] = w.CreateEntity()
		v := i
		if err := Add(w, ents[i], ints.Kind(), &v); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	visited := 0
	ForEach(w, ints.Kind(), func(e Entity, _ *int) {
		visited++
		// destroying later entities mid-iteration must hide them
		w.DestroyEntity(ents[2])
	})
	if visited != 2 {
		t.Fatalf("visited %d, want 2", visited)
	}

	if _, ok := Get(w, ents[2], ints.Kind()); ok {
		t.Fatalf("dead entity component still visible")
	}

	w.Flush()
	reused := w.CreateEntity()
	if reused == ents[2] {
		t.Fatalf("recycled id must carry a new generation")
	}
	if reused.id() != ents[2].id() {
		t.Fatalf("expected id %d to be recycled, got %d", ents[2].id(), reused.id())
	}
	if Has(w, reused, ints.Kind()) {
		t.Fatalf("recycled entity inherited a component")
	}
}

func TestEventQueueDrain(t *testing.T) {
	w := NewWorld()
	w.Events().Emit(EventSound, SoundCue{Name: "coin"})
	w.Events().Emit(EventLevelExit, LevelExit{Target: TargetOverworld, Value: PenaltyExit, HasValue: true})

	evts := w.Events().Drain()
	if len(evts) != 2 {
		t.Fatalf("drained %d events", len(evts))
	}
	exit, ok := evts[1].Data.(LevelExit)
	if !ok || !exit.Penalty() {
		t.Fatalf("expected penalty exit, got %#v", evts[1].Data)
	}
	if _, ok := exit.Unlock(); ok {
		t.Fatalf("penalty exit must not unlock")
	}
	if w.Events().Len() != 0 {
		t.Fatalf("queue not empty after drain")
	}
}

func TestSchedulerRunsInOrder(t *testing.T) {
	w := NewWorld()
	var got []string
	step := func(name string) System {
		return SystemFunc(func(*World) { got = append(got, name) })
	}
	s := NewScheduler(step("timers"), nil, step("movement"), step("camera"))
	if s.Len() != 3 {
		t.Fatalf("expected nil systems to be skipped, got %d", s.Len())
	}
	s.Update(w)
	s.Update(w)
	want := []string{"timers", "movement", "camera", "timers", "movement", "camera"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestEntityRawRoundTrip(t *testing.T) {
	w := NewWorld()
	e := w.CreateEntity()
	if EntityFromRaw(e.Raw()) != e {
		t.Fatalf("raw handle did not round trip")
	}
	w.DestroyEntity(e)
	w.Flush()
	again := w.CreateEntity()
	if again.Raw() == e.Raw() {
		t.Fatalf("recycled slot reused the old handle")
	}
	if w.IsAlive(EntityFromRaw(e.Raw())) {
		t.Fatalf("stale handle is alive")
	}
}
