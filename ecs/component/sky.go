package component

import (
	"math/rand/v2"

	"github.com/milk9111/savematter/timer"
)

// Sky owns the ambient cloud spawner.
type Sky struct {
	CloudTimer  *timer.Timer
	Pending     int
	Rand        *rand.Rand
	LargeCloudX float64
	LargeSpeed  float64
	LargeWidth  float64
	CloudKeys   []string
	CloudWidth  float64
	CloudHeight float64
	MinSpeed    float64
	MaxSpeed    float64
	// SpawnMargin is how far past the level's right edge new clouds start,
	// as a [min, max) range.
	SpawnMargin [2]float64
	// Parallax is copied onto every cloud's render layer.
	Parallax float64
}

// Drift moves a body horizontally at a constant speed.
type Drift struct {
	Speed     float64
	Direction float64
}

var (
	SkyComponent   = NewComponent[Sky]()
	DriftComponent = NewComponent[Drift]()
)
