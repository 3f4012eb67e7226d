package ecs

// EventType identifies what an event asks the orchestrator to do.
type EventType string

const (
	EventSound           EventType = "sound"
	EventSpawnEffect     EventType = "spawn_effect"
	EventSpawnProjectile EventType = "spawn_projectile"
	EventLevelExit       EventType = "level_exit"
)

// Event is a command emitted by a system during a frame. Systems never act
// on them directly; the level drains the queue after the pass.
type Event struct {
	Type EventType
	Data any
}

// SoundCue asks for a fire-and-forget sound.
type SoundCue struct {
	Name string
}

// SpawnEffect asks for a transient particle effect centered on X, Y.
type SpawnEffect struct {
	X, Y float64
}

// SpawnProjectile asks for a projectile fired from X, Y.
type SpawnProjectile struct {
	X, Y      float64
	Direction float64
}

// ExitTarget selects what the game switches to when a level ends.
type ExitTarget int

const (
	TargetLevel ExitTarget = iota
	TargetOverworld
)

func (t ExitTarget) String() string {
	if t == TargetLevel {
		return "level"
	}
	return "overworld"
}

// PenaltyExit is the exit value that costs the player one health.
const PenaltyExit = -1

// LevelExit carries the switch(target, unlock_or_penalty) contract. HasValue
// false is a plain transition.
type LevelExit struct {
	Target   ExitTarget
	Value    int
	HasValue bool
}

// Penalty reports whether the exit costs health.
func (x LevelExit) Penalty() bool {
	return x.HasValue && x.Value == PenaltyExit
}

// Unlock returns the level index unlocked by this exit.
func (x LevelExit) Unlock() (int, bool) {
	if !x.HasValue || x.Value < 0 {
		return 0, false
	}
	return x.Value, true
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Emit pushes data under the given type.
func (q *EventQueue) Emit(t EventType, data any) {
	q.Push(Event{Type: t, Data: data})
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}
