package component

const (
	LayerBackdrop = iota - 1
	LayerBackground
	LayerClouds
	LayerBackgroundTiles
	LayerPath
	LayerBackgroundDetails
	LayerMain
	LayerWater
	LayerForeground
	LayerUI
)

// RenderLayer is used to sort draw order deterministically. Bodies on
// LayerMain are further sorted by their vertical center.
type RenderLayer struct {
	Index int
	// Parallax scales the camera offset for this body; 0 means 1.
	Parallax float64
}

var RenderLayerComponent = NewComponent[RenderLayer]()
