package render

import "github.com/hajimehoshi/ebiten/v2"

var (
	images  = map[string]*ebiten.Image{}
	missing = map[string]bool{}
)

// RegisterImage stores an image by key.
func RegisterImage(key string, img *ebiten.Image) {
	if key == "" || img == nil {
		return
	}
	images[key] = img
	delete(missing, key)
}

// GetImage returns a cached image by key.
func GetImage(key string) *ebiten.Image {
	if key == "" {
		return nil
	}
	return images[key]
}

// ForgetImages drops the cache so changed files are read again.
func ForgetImages() {
	images = map[string]*ebiten.Image{}
	missing = map[string]bool{}
}
