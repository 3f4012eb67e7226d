package component

import "github.com/milk9111/savematter/timer"

// Patrol walks a ground enemy along a ledge, turning at walls and drops.
type Patrol struct {
	Direction float64
	Speed     float64
	Reverse   *timer.Timer
}

var PatrolComponent = NewComponent[Patrol]()
