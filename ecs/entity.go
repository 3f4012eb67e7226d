package ecs

import "fmt"

// Entity packs a slot index in the low 32 bits and the slot's generation in
// the high 32 bits. A recycled slot gets a new generation, so stale handles
// held by components (a ridden platform, a turret's target) fail IsAlive.
type Entity uint64

type entityID uint32
type generation uint32

const entityIDBits = 32

func makeEntity(id entityID, gen generation) Entity {
	return Entity(uint64(gen)<<entityIDBits | uint64(id))
}

// EntityFromRaw restores a handle stored as a plain integer.
func EntityFromRaw(raw uint64) Entity {
	return Entity(raw)
}

// Raw is the handle as a plain integer, for components that must not import
// this package.
func (e Entity) Raw() uint64 {
	return uint64(e)
}

func (e Entity) id() entityID {
	return entityID(uint32(e))
}

func (e Entity) generation() generation {
	return generation(uint32(uint64(e) >> entityIDBits))
}

func (e Entity) String() string {
	return fmt.Sprintf("%d.%d", e.id(), e.generation())
}

// Valid reports whether e could refer to an entity. Use World.IsAlive to
// check that it still does.
func (e Entity) Valid() bool {
	return e.id() > 0
}
