package component

// PlayerTuning holds the movement constants loaded from the player prefab.
type PlayerTuning struct {
	Speed       float64
	Gravity     float64
	JumpSpeed   float64
	WallSlide   float64 // divisor applied to gravity while sliding
	ProbeSize   float64
	CeilingPush float64
}

// Player is the controllable actor's state between frames.
type Player struct {
	Tuning        PlayerTuning
	FacingRight   bool
	Attacking     bool
	JumpRequested bool
}

var PlayerComponent = NewComponent[Player]()
