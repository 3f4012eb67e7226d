// Package assets embeds the game's images and synthesizes its sound cues.
package assets

import (
	"bytes"
	"embed"
	"fmt"
	"image"
	_ "image/png"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

//go:embed images
var embedded embed.FS

// Images is the embedded image tree, rooted at images/.
var Images fs.FS = mustSub(embedded, "images")

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic("assets: " + err.Error())
	}
	return sub
}

// ImagePath turns a sprite key such as "tiles/1.png", "images/tiles/1.png"
// or "assets/images/tiles/1.png" into a path relative to Images.
func ImagePath(key string) string {
	if key == "" {
		return ""
	}
	s := filepath.ToSlash(key)
	if idx := strings.LastIndex(s, "assets/"); idx >= 0 {
		s = s[idx+len("assets/"):]
	}
	s = strings.TrimPrefix(s, "images/")
	return path.Clean(s)
}

// DecodeImage reads name from fsys and uploads it as an ebiten image.
func DecodeImage(fsys fs.FS, name string) (*ebiten.Image, error) {
	b, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("assets: decode %s: %w", name, err)
	}
	return ebiten.NewImageFromImage(img), nil
}
