package render

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/savematter/assets"
)

var ErrImageNotFound = errors.New("render: image not found")

// imageSources are searched in order: loose files next to the binary first,
// so art can be swapped while the game runs, then the embedded set.
var imageSources = []fs.FS{
	os.DirFS(filepath.Join("assets", "images")),
	assets.Images,
}

// LoadImage returns the image for a sprite key, decoding it on first use. A
// key that was not found is not searched again until ForgetImages.
func LoadImage(key string) (*ebiten.Image, error) {
	if key == "" {
		return nil, fmt.Errorf("%w: empty key", ErrImageNotFound)
	}
	if img := GetImage(key); img != nil {
		return img, nil
	}
	if missing[key] {
		return nil, fmt.Errorf("%w: %s", ErrImageNotFound, key)
	}

	name := assets.ImagePath(key)
	for _, src := range imageSources {
		img, err := assets.DecodeImage(src, name)
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrInvalid) {
			continue
		}
		if err != nil {
			missing[key] = true
			return nil, err
		}
		RegisterImage(key, img)
		return img, nil
	}
	missing[key] = true
	return nil, fmt.Errorf("%w: %s", ErrImageNotFound, key)
}
