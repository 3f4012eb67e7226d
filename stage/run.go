package stage

import (
	"github.com/milk9111/savematter/ecs"
	"github.com/milk9111/savematter/progress"
)

// Outcome is what the game does after a level exit has been applied.
type Outcome struct {
	Next     int
	GameOver bool
}

// ApplyExit records exit in state and picks the level to load next. A
// penalty costs one health and replays the level; an unlock raises the
// unlocked level and moves on to it when it exists. exists reports whether
// a level id can be loaded.
func ApplyExit(state *progress.State, current int, exit ecs.LevelExit, exists func(int) bool) Outcome {
	next := current
	switch {
	case !exit.HasValue:
	case exit.Penalty():
		state.SetHealth(state.Health() - 1)
		if !state.Alive() {
			return Outcome{Next: current, GameOver: true}
		}
	case exit.Target == ecs.TargetLevel:
		if exists(exit.Value) {
			next = exit.Value
		}
	default:
		if unlock, ok := exit.Unlock(); ok {
			state.Unlock(unlock)
			if exists(unlock) {
				next = unlock
			}
		}
	}
	state.SetCurrentLevel(next)
	return Outcome{Next: next}
}
