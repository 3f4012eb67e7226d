package ecs

import "github.com/milk9111/savematter/ecs/component"

func setFor[T any](w *World, kind component.ComponentKind[T], create bool) *SparseSet[T] {
	if w == nil {
		return nil
	}
	if w.stores == nil {
		w.stores = make(map[component.ComponentID]store)
	}
	if s, ok := w.stores[kind.ID()]; ok {
		set, ok := s.(*SparseSet[T])
		if !ok {
			panic("ecs: component kind registered with a different type")
		}
		return set
	}
	if !create {
		return nil
	}
	set := &SparseSet[T]{}
	w.stores[kind.ID()] = set
	return set
}

// Add attaches or replaces a component.
func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if !kind.Valid() {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	if !w.IsAlive(e) {
		return component.ErrEntityNotAlive
	}
	setFor(w, kind, true).Set(e, value)
	return nil
}

// Remove detaches a component, reporting whether it was present.
func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	s := setFor(w, kind, false)
	if s == nil || !s.has(e) {
		return false
	}
	s.remove(e)
	return true
}

func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	if !w.IsAlive(e) {
		return false
	}
	s := setFor(w, kind, false)
	return s != nil && s.has(e)
}

// Get returns the stored component pointer; mutations are visible to every
// other system.
func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	if !w.IsAlive(e) {
		return nil, false
	}
	s := setFor(w, kind, false)
	if s == nil {
		return nil, false
	}
	v := s.Get(e)
	return v, v != nil
}

// MustGet is Get for components a system cannot run without.
func MustGet[T any](w *World, e Entity, kind component.ComponentKind[T], who string) *T {
	v, ok := Get(w, e, kind)
	if !ok {
		panic(who + " system: entity " + e.String() + " missing " + kind.Name())
	}
	return v
}

// ForEach calls fn for every live entity holding kind. The entity list is
// snapshotted first so fn may add components or destroy entities.
func ForEach[T any](w *World, kind component.ComponentKind[T], fn func(Entity, *T)) {
	s := setFor(w, kind, false)
	if s == nil {
		return
	}
	ents := append([]Entity(nil), s.denseEntities...)
	for _, e := range ents {
		if !w.entities.isAlive(e) {
			continue
		}
		if v := s.Get(e); v != nil {
			fn(e, v)
		}
	}
}

func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	sb := setFor(w, kb, false)
	if sb == nil {
		return
	}
	ForEach(w, ka, func(e Entity, a *A) {
		if b := sb.Get(e); b != nil {
			fn(e, a, b)
		}
	})
}

func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	sc := setFor(w, kc, false)
	if sc == nil {
		return
	}
	ForEach2(w, ka, kb, func(e Entity, a *A, b *B) {
		if c := sc.Get(e); c != nil {
			fn(e, a, b, c)
		}
	})
}

// First returns the first live entity holding kind.
func First[T any](w *World, kind component.ComponentKind[T]) (Entity, bool) {
	return w.First(kind)
}
