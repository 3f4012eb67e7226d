package levels

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strconv"
	"strings"
)

//go:embed *.json
var LevelsFS embed.FS

var (
	ErrNoPlayer      = errors.New("levels: level has no player")
	ErrManyPlayers   = errors.New("levels: level has more than one player")
	ErrBadLayer      = errors.New("levels: tile layer does not match level size")
	ErrUnknownEntity = errors.New("levels: unknown entity type")
	ErrBadSize       = errors.New("levels: level size must be positive")
)

const DefaultTileSize = 64

// Collision modes for tile layers.
const (
	CollisionNone   = ""
	CollisionSolid  = "solid"
	CollisionOneWay = "one_way"
)

// Entity types understood by the level builder.
const (
	TypePlayer     = "player"
	TypeCrate      = "crate"
	TypeBarrel     = "barrel"
	TypeFloorSpike = "floor_spike"
	TypeSaw        = "saw"
	TypePalm       = "palm"
	TypeFlag       = "flag"
	TypeMoving     = "moving"
	TypeSpike      = "spike"
	TypeTooth      = "tooth"
	TypeShell      = "shell"
	TypeItem       = "item"
	TypeWater      = "water"
	TypeDecoration = "decoration"
)

var knownTypes = map[string]bool{
	TypePlayer: true, TypeCrate: true, TypeBarrel: true, TypeFloorSpike: true,
	TypeSaw: true, TypePalm: true, TypeFlag: true, TypeMoving: true,
	TypeSpike: true, TypeTooth: true, TypeShell: true, TypeItem: true,
	TypeWater: true, TypeDecoration: true,
}

type Level struct {
	Name        string      `json:"name"`
	Width       int         `json:"width"`
	Height      int         `json:"height"`
	TileSize    int         `json:"tile_size,omitempty"`
	Unlock      int         `json:"level_unlock"`
	TopLimit    float64     `json:"top_limit"`
	HorizonLine float64     `json:"horizon_line"`
	Background  string      `json:"background,omitempty"`
	Layers      []TileLayer `json:"layers"`
	Entities    []Entity    `json:"entities,omitempty"`
}

// TileLayer is a row-major grid of tile indices; 0 is empty.
type TileLayer struct {
	Name      string `json:"name"`
	Collision string `json:"collision,omitempty"`
	Tiles     []int  `json:"tiles"`
}

type Entity struct {
	Type   string         `json:"type"`
	Name   string         `json:"name,omitempty"`
	X      float64        `json:"x"`
	Y      float64        `json:"y"`
	Width  float64        `json:"width,omitempty"`
	Height float64        `json:"height,omitempty"`
	Props  map[string]any `json:"props,omitempty"`
}

func (l *Level) Tile() float64 {
	if l.TileSize <= 0 {
		return DefaultTileSize
	}
	return float64(l.TileSize)
}

// PixelSize returns the level's extent in world units.
func (l *Level) PixelSize() (float64, float64) {
	t := l.Tile()
	return float64(l.Width) * t, float64(l.Height) * t
}

// At returns the tile index at column x, row y.
func (t *TileLayer) At(width, x, y int) int {
	return t.Tiles[y*width+x]
}

func (l *Level) Player() (Entity, bool) {
	for _, e := range l.Entities {
		if e.Type == TypePlayer {
			return e, true
		}
	}
	return Entity{}, false
}

func (l *Level) Validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrBadSize, l.Width, l.Height)
	}
	for _, layer := range l.Layers {
		if len(layer.Tiles) != l.Width*l.Height {
			return fmt.Errorf("%w: layer %q has %d tiles, want %d", ErrBadLayer, layer.Name, len(layer.Tiles), l.Width*l.Height)
		}
		switch layer.Collision {
		case CollisionNone, CollisionSolid, CollisionOneWay:
		default:
			return fmt.Errorf("%w: layer %q collision %q", ErrBadLayer, layer.Name, layer.Collision)
		}
	}
	players := 0
	for i, e := range l.Entities {
		if !knownTypes[e.Type] {
			return fmt.Errorf("%w: entity %d %q", ErrUnknownEntity, i, e.Type)
		}
		if e.Type == TypePlayer {
			players++
		}
	}
	switch {
	case players == 0:
		return ErrNoPlayer
	case players > 1:
		return fmt.Errorf("%w: %d", ErrManyPlayers, players)
	}
	return nil
}

func Parse(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	if err := lvl.Validate(); err != nil {
		return nil, err
	}
	return &lvl, nil
}

func LoadLevelFromFS(name string) (*Level, error) {
	data, err := fs.ReadFile(LevelsFS, name)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	return Parse(data)
}

// LoadFile reads a level from disk.
func LoadFile(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	return Parse(data)
}

func Load(id int) (*Level, error) {
	return LoadLevelFromFS(strconv.Itoa(id) + ".json")
}

func Exists(id int) bool {
	_, err := fs.Stat(LevelsFS, strconv.Itoa(id)+".json")
	return err == nil
}

// IDs lists the embedded level numbers in ascending order.
func IDs() []int {
	entries, err := fs.ReadDir(LevelsFS, ".")
	if err != nil {
		return nil
	}
	var ids []int
	for _, e := range entries {
		n, err := strconv.Atoi(strings.TrimSuffix(e.Name(), ".json"))
		if err == nil {
			ids = append(ids, n)
		}
	}
	sort.Ints(ids)
	return ids
}
