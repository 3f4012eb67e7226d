package component

import "github.com/milk9111/savematter/timer"

const (
	TimerWallJump       = "wall_jump"
	TimerWallSlideBlock = "wall_slide_block"
	TimerPlatformFall   = "platform_fall"
	TimerAttackBlock    = "attack_block"
	TimerImmunity       = "immunity_frames"
)

// Timers is a named set of timers owned by one entity.
type Timers map[string]*timer.Timer

// Active reports whether the named timer exists and is running.
func (t Timers) Active(name string) bool {
	tm, ok := t[name]
	return ok && tm.Active()
}

// Activate starts the named timer if it exists.
func (t Timers) Activate(name string) {
	if tm, ok := t[name]; ok {
		tm.Activate()
	}
}

var TimersComponent = NewComponent[Timers]()
