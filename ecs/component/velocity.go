package component

import "github.com/jakecoffman/cp"

// Velocity is in pixels per second.
type Velocity struct {
	cp.Vector
}

var VelocityComponent = NewComponent[Velocity]()
