package ecs

import "github.com/milk9111/savematter/ecs/component"

// World owns entities, their components and the frame's event queue.
// Destroyed entities stop being alive immediately but keep their storage
// slots until Flush, so handles stay stable for the rest of the frame.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]store
	pending  []Entity
	events   EventQueue
	delta    float64
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]store)}
}

// CreateEntity allocates a new entity.
func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// DestroyEntity marks an entity as dead. It reports false if the entity was
// already dead.
func (w *World) DestroyEntity(e Entity) bool {
	if w == nil || !w.entities.kill(e) {
		return false
	}
	w.pending = append(w.pending, e)
	return true
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	return w != nil && w.entities.isAlive(e)
}

// Count returns the number of live entities.
func (w *World) Count() int {
	if w == nil {
		return 0
	}
	return w.entities.count()
}

// Flush drops the components of every entity destroyed since the last flush
// and recycles their ids.
func (w *World) Flush() {
	if w == nil {
		return
	}
	for _, e := range w.pending {
		for _, s := range w.stores {
			s.remove(e)
		}
		w.entities.release(e)
	}
	w.pending = w.pending[:0]
}

// SetDelta sets the elapsed seconds systems integrate over this frame.
func (w *World) SetDelta(dt float64) {
	if w != nil {
		w.delta = dt
	}
}

// Delta returns the elapsed seconds of the current frame.
func (w *World) Delta() float64 {
	if w == nil {
		return 0
	}
	return w.delta
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// Query returns the live entities that have every given component, in the
// storage order of the first kind.
func (w *World) Query(kinds ...component.Kind) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	sets := make([]store, 0, len(kinds))
	for _, k := range kinds {
		s, ok := w.stores[k.ID()]
		if !ok {
			return nil
		}
		sets = append(sets, s)
	}
	out := make([]Entity, 0, len(sets[0].entities()))
	for _, e := range sets[0].entities() {
		if !w.entities.isAlive(e) {
			continue
		}
		match := true
		for _, s := range sets[1:] {
			if !s.has(e) {
				match = false
				break
			}
		}
		if match {
			out = append(out, e)
		}
	}
	return out
}

// First returns the first live entity carrying kind.
func (w *World) First(kind component.Kind) (Entity, bool) {
	if w == nil {
		return 0, false
	}
	s, ok := w.stores[kind.ID()]
	if !ok {
		return 0, false
	}
	for _, e := range s.entities() {
		if w.entities.isAlive(e) {
			return e, true
		}
	}
	return 0, false
}
