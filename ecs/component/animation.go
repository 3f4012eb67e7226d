package component

const (
	AnimIdle      = "idle"
	AnimRun       = "run"
	AnimJump      = "jump"
	AnimFall      = "fall"
	AnimWall      = "wall"
	AnimAttack    = "attack"
	AnimAirAttack = "air_attack"
	AnimFire      = "fire"
)

// Animation tracks a frame index per named state. Frame is fractional and
// grows by Speed frames per second.
type Animation struct {
	State  string
	Frame  float64
	Speed  float64
	Counts map[string]int
	// Looping animations are advanced by the generic animation system.
	Looping bool
}

// FrameCount returns the number of frames of state, at least 1.
func (a *Animation) FrameCount(state string) int {
	if n := a.Counts[state]; n > 0 {
		return n
	}
	return 1
}

// Index is the frame to draw.
func (a *Animation) Index() int {
	n := a.FrameCount(a.State)
	i := int(a.Frame) % n
	if i < 0 {
		i += n
	}
	return i
}

var AnimationComponent = NewComponent[Animation]()
