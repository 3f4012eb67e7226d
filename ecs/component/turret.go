package component

import "github.com/milk9111/savematter/timer"

// Turret fires projectiles along its facing when the player is level with
// it and within range.
type Turret struct {
	Direction float64
	Range     float64
	Tolerance float64
	FireFrame int
	Muzzle    float64
	Firing    bool
	HasFired  bool
	Cooldown  *timer.Timer
}

var TurretComponent = NewComponent[Turret]()
