package component

// SurfaceContact is recomputed every frame from thin probe rectangles around
// the player's hitbox.
type SurfaceContact struct {
	Floor bool
	Left  bool
	Right bool
	// Platform is the raw entity handle of the moving platform the player
	// rides, or zero.
	Platform uint64
}

// OnWall reports contact with exactly one wall.
func (c *SurfaceContact) OnWall() bool {
	return c.Left != c.Right
}

var SurfaceContactComponent = NewComponent[SurfaceContact]()
