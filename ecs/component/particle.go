package component

// Particle is a one-shot effect destroyed after its last frame.
type Particle struct {
	Frame  float64
	Frames int
	Speed  float64
}

var ParticleComponent = NewComponent[Particle]()
