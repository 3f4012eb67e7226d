package component

import "image/color"

// Sprite names the image drawn over a body's rect. When the image cannot be
// resolved the renderer fills the rect with Color.
type Sprite struct {
	Key        string
	Color      color.RGBA
	FacingLeft bool
	FlipY      bool
}

var SpriteComponent = NewComponent[Sprite]()
