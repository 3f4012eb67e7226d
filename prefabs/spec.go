package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidSpec is wrapped by every validation failure.
var ErrInvalidSpec = errors.New("prefabs: invalid spec")

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// DecodeSpec converts a loosely typed map, such as a level object's
// properties, into T by way of YAML.
func DecodeSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type SizeSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

func (s SizeSpec) valid() bool {
	return s.Width > 0 && s.Height > 0
}

type SpriteSpec struct {
	Image string    `yaml:"image"`
	Color YAMLColor `yaml:"color"`
}

type AnimationSpec struct {
	Speed  float64        `yaml:"speed"`
	Frames map[string]int `yaml:"frames"`
}

type PlayerSpec struct {
	Size        SizeSpec       `yaml:"size"`
	HitboxInset SizeSpec       `yaml:"hitbox_inset"`
	Speed       float64        `yaml:"speed"`
	Gravity     float64        `yaml:"gravity"`
	JumpSpeed   float64        `yaml:"jump_speed"`
	WallSlide   float64        `yaml:"wall_slide_divisor"`
	ProbeSize   float64        `yaml:"contact_probe"`
	CeilingPush float64        `yaml:"ceiling_push"`
	TimersMS    map[string]int `yaml:"timers_ms"`
	Animation   AnimationSpec  `yaml:"animation"`
	Sprite      SpriteSpec     `yaml:"sprite"`
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec]("player.yaml")
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

func (s *PlayerSpec) Validate() error {
	switch {
	case !s.Size.valid():
		return fmt.Errorf("%w: player size %+v", ErrInvalidSpec, s.Size)
	case s.Size.Width-s.HitboxInset.Width <= 0 || s.Size.Height-s.HitboxInset.Height <= 0:
		return fmt.Errorf("%w: player hitbox inset %+v leaves no hitbox", ErrInvalidSpec, s.HitboxInset)
	case s.WallSlide <= 0:
		return fmt.Errorf("%w: wall_slide_divisor must be positive", ErrInvalidSpec)
	case s.ProbeSize <= 0:
		return fmt.Errorf("%w: contact_probe must be positive", ErrInvalidSpec)
	}
	for name, ms := range s.TimersMS {
		if ms <= 0 {
			return fmt.Errorf("%w: player timer %s = %dms", ErrInvalidSpec, name, ms)
		}
	}
	return nil
}

type PatrolSpec struct {
	Size            SizeSpec      `yaml:"size"`
	Speed           float64       `yaml:"speed"`
	ReverseCooldown int           `yaml:"reverse_cooldown_ms"`
	Animation       AnimationSpec `yaml:"animation"`
	Sprite          SpriteSpec    `yaml:"sprite"`
}

type TurretSpec struct {
	Size      SizeSpec      `yaml:"size"`
	Range     float64       `yaml:"range"`
	Tolerance float64       `yaml:"vertical_tolerance"`
	Cooldown  int           `yaml:"cooldown_ms"`
	FireFrame int           `yaml:"fire_frame"`
	Muzzle    float64       `yaml:"muzzle_offset"`
	Animation AnimationSpec `yaml:"animation"`
	Sprite    SpriteSpec    `yaml:"sprite"`
}

type ProjectileSpec struct {
	Size            SizeSpec   `yaml:"size"`
	Speed           float64    `yaml:"speed"`
	Lifetime        int        `yaml:"lifetime_ms"`
	ReverseCooldown int        `yaml:"reverse_cooldown_ms"`
	Sprite          SpriteSpec `yaml:"sprite"`
}

type EnemiesSpec struct {
	Patrol     PatrolSpec     `yaml:"tooth"`
	Turret     TurretSpec     `yaml:"shell"`
	Projectile ProjectileSpec `yaml:"pearl"`
}

func LoadEnemiesSpec() (*EnemiesSpec, error) {
	spec, err := LoadSpec[EnemiesSpec]("enemies.yaml")
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

func (s *EnemiesSpec) Validate() error {
	switch {
	case !s.Patrol.Size.valid() || !s.Turret.Size.valid() || !s.Projectile.Size.valid():
		return fmt.Errorf("%w: enemy sizes must be positive", ErrInvalidSpec)
	case s.Patrol.ReverseCooldown <= 0 || s.Projectile.ReverseCooldown <= 0:
		return fmt.Errorf("%w: reverse cooldowns must be positive", ErrInvalidSpec)
	case s.Turret.Cooldown <= 0 || s.Projectile.Lifetime <= 0:
		return fmt.Errorf("%w: shell cooldown and pearl lifetime must be positive", ErrInvalidSpec)
	case s.Turret.FireFrame >= s.Turret.Animation.Frames["fire"]:
		return fmt.Errorf("%w: shell fire_frame %d is past its fire animation", ErrInvalidSpec, s.Turret.FireFrame)
	}
	return nil
}

type ItemSpec struct {
	// Effect is an inline script; Script names a file under scripts/.
	Effect string     `yaml:"effect"`
	Script string     `yaml:"script"`
	Sprite SpriteSpec `yaml:"sprite"`
}

type ItemsSpec struct {
	Size  SizeSpec            `yaml:"size"`
	Items map[string]ItemSpec `yaml:"items"`
}

func LoadItemsSpec() (*ItemsSpec, error) {
	spec, err := LoadSpec[ItemsSpec]("items.yaml")
	if err != nil {
		return nil, err
	}
	if !spec.Size.valid() || len(spec.Items) == 0 {
		return nil, fmt.Errorf("%w: items.yaml needs a size and at least one item", ErrInvalidSpec)
	}
	return &spec, nil
}

type SkySpec struct {
	Color         YAMLColor  `yaml:"color"`
	HorizonColor  YAMLColor  `yaml:"horizon_color"`
	SeaColor      YAMLColor  `yaml:"sea_color"`
	CloudInterval int        `yaml:"cloud_interval_ms"`
	InitialClouds int        `yaml:"initial_clouds"`
	CloudSize     SizeSpec   `yaml:"cloud_size"`
	CloudImages   []string   `yaml:"cloud_images"`
	MinSpeed      float64    `yaml:"min_speed"`
	MaxSpeed      float64    `yaml:"max_speed"`
	SpawnMargin   [2]float64 `yaml:"spawn_margin"`
	LargeCloud    SizeSpec   `yaml:"large_cloud"`
	LargeSpeed    float64    `yaml:"large_cloud_speed"`
	LargeCloudKey string     `yaml:"large_cloud_image"`
}

type EffectSpec struct {
	Size   SizeSpec   `yaml:"size"`
	Frames int        `yaml:"frames"`
	Speed  float64    `yaml:"speed"`
	Sprite SpriteSpec `yaml:"sprite"`
}

// HazardsSpec sizes the level geometry that has no extent of its own in the
// level file: a moving object's rect describes its path, not its body.
type HazardsSpec struct {
	Platform        SizeSpec `yaml:"platform"`
	Saw             SizeSpec `yaml:"saw"`
	Spike           SizeSpec `yaml:"spike"`
	Chain           SizeSpec `yaml:"chain"`
	ChainSpacing    float64  `yaml:"chain_spacing"`
	FloorSpikeInset float64  `yaml:"floor_spike_inset"`
}

type WorldSpec struct {
	Screen    SizeSpec    `yaml:"screen"`
	TileSize  float64     `yaml:"tile_size"`
	MaxDelta  float64     `yaml:"max_dt"`
	AnimSpeed float64     `yaml:"anim_speed"`
	Parallax  float64     `yaml:"parallax"`
	Hazards   HazardsSpec `yaml:"hazards"`
	Sky       SkySpec     `yaml:"sky"`
	Effect    EffectSpec  `yaml:"effect"`
}

func LoadWorldSpec() (*WorldSpec, error) {
	spec, err := LoadSpec[WorldSpec]("world.yaml")
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

func (s *WorldSpec) Validate() error {
	switch {
	case !s.Screen.valid():
		return fmt.Errorf("%w: screen size %+v", ErrInvalidSpec, s.Screen)
	case s.MaxDelta <= 0:
		return fmt.Errorf("%w: max_dt must be positive", ErrInvalidSpec)
	case s.Sky.CloudInterval <= 0:
		return fmt.Errorf("%w: cloud_interval_ms must be positive", ErrInvalidSpec)
	case s.Sky.MaxSpeed < s.Sky.MinSpeed:
		return fmt.Errorf("%w: cloud speed range %v..%v", ErrInvalidSpec, s.Sky.MinSpeed, s.Sky.MaxSpeed)
	case s.Hazards.ChainSpacing <= 0:
		return fmt.Errorf("%w: chain_spacing must be positive", ErrInvalidSpec)
	case !s.Hazards.Platform.valid() || !s.Hazards.Saw.valid() || !s.Hazards.Spike.valid():
		return fmt.Errorf("%w: hazard sizes must be positive", ErrInvalidSpec)
	case s.Effect.Frames <= 0:
		return fmt.Errorf("%w: effect needs at least one frame", ErrInvalidSpec)
	}
	return nil
}

// YAMLColor parses "#rrggbb" or "#rrggbbaa".
type YAMLColor struct {
	color.Color
}

// OrDefault returns the parsed color, or fallback when none was given.
func (c YAMLColor) OrDefault(fallback color.RGBA) color.RGBA {
	if c.Color == nil {
		return fallback
	}
	return color.RGBAModel.Convert(c.Color).(color.RGBA)
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
