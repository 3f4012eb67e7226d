package component

import "github.com/jakecoffman/cp"

// Orbit places a body on a circle around Center. Angles are in degrees.
// A negative EndAngle means a full circle; otherwise the body swings between
// StartAngle and EndAngle.
type Orbit struct {
	Center     cp.Vector
	Radius     float64
	Speed      float64
	Angle      float64
	Direction  float64
	StartAngle float64
	EndAngle   float64
}

// FullCircle reports whether the orbit never turns back.
func (o *Orbit) FullCircle() bool {
	return o.EndAngle < 0
}

var OrbitComponent = NewComponent[Orbit]()
