package component

import "github.com/jakecoffman/cp"

// Camera holds the viewport offset added to world positions when drawing.
type Camera struct {
	ScreenWidth  float64
	ScreenHeight float64
	Offset       cp.Vector
}

var CameraComponent = NewComponent[Camera]()
