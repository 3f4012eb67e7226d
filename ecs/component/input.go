package component

// Input is the per-frame intent fed into the player.
type Input struct {
	MoveX  float64
	Down   bool
	Jump   bool
	Attack bool
}

var InputComponent = NewComponent[Input]()
