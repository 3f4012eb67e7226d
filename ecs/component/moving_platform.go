package component

import "github.com/jakecoffman/cp"

type Axis int

const (
	AxisX Axis = iota
	AxisY
)

// MovingPlatform travels back and forth between Start and End along one
// axis. Displacement is what it moved during the current frame.
type MovingPlatform struct {
	Start        cp.Vector
	End          cp.Vector
	Axis         Axis
	Speed        float64
	Direction    cp.Vector
	Flip         bool
	Reverse      bool
	Displacement cp.Vector
}

var MovingPlatformComponent = NewComponent[MovingPlatform]()
