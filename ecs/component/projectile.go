package component

import "github.com/milk9111/savematter/timer"

type Projectile struct {
	Direction float64
	Speed     float64
	Lifetime  *timer.Timer
	Reverse   *timer.Timer
}

var ProjectileComponent = NewComponent[Projectile]()
