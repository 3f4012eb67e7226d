package prefabs

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Root is the directory whose files override the embedded prefabs, so specs
// and scripts can be tuned without rebuilding.
const Root = "prefabs"

//go:embed *.yaml scripts/*.tengo
var embedded embed.FS

// Load returns a prefab file, preferring the on-disk copy under Root.
func Load(name string) ([]byte, error) {
	return read(cleanPrefabPath(name))
}

// LoadScript returns a script from the scripts directory.
func LoadScript(name string) ([]byte, error) {
	return read("scripts/" + strings.TrimPrefix(cleanPrefabPath(name), "scripts/"))
}

// ModTime reports when the on-disk override of name last changed.
func ModTime(name string) (time.Time, bool) {
	info, err := os.Stat(diskPath(cleanPrefabPath(name)))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

func read(clean string) ([]byte, error) {
	if data, err := os.ReadFile(diskPath(clean)); err == nil {
		return data, nil
	}
	return fs.ReadFile(embedded, clean)
}

// cleanPrefabPath turns "prefabs/x.yaml", "./x.yaml" or "x.yaml" into the
// embedded name "x.yaml".
func cleanPrefabPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(filepath.Clean(path))
	s = strings.TrimPrefix(s, "./")
	return strings.TrimPrefix(s, Root+"/")
}

func diskPath(clean string) string {
	return filepath.Join(Root, filepath.FromSlash(clean))
}
