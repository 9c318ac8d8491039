package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"time"

	"github.com/milk9111/flapper/course"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

const (
	WorldFile  = "world.yaml"
	CourseFile = "course.yaml"
	PlayerFile = "player.yaml"
)

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

type WorldSpec struct {
	Name           string    `yaml:"name"`
	Width          float64   `yaml:"width"`
	Height         float64   `yaml:"height"`
	RestartDelayMS int       `yaml:"restart_delay_ms"`
	Background     YAMLColor `yaml:"background"`
}

func (s WorldSpec) RestartDelay() time.Duration {
	return time.Duration(s.RestartDelayMS) * time.Millisecond
}

type CourseSpec struct {
	Name          string       `yaml:"name"`
	PairCount     int          `yaml:"pair_count"`
	Gap           course.Range `yaml:"gap"`
	Spacing       course.Range `yaml:"spacing"`
	Band          course.Range `yaml:"band"`
	PairWidth     float64      `yaml:"pair_width"`
	SegmentLength float64      `yaml:"segment_length"`
	ScrollSpeed   float64      `yaml:"scroll_speed"`
	Color         YAMLColor    `yaml:"color"`
}

// CourseConfig converts the prefab into the stream's parameters.
func (s CourseSpec) CourseConfig() course.Config {
	return course.Config{
		PairCount:     s.PairCount,
		Gap:           s.Gap,
		Spacing:       s.Spacing,
		Band:          s.Band,
		PairWidth:     s.PairWidth,
		SegmentLength: s.SegmentLength,
	}
}

type PointSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type SizeSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type PlayerSpec struct {
	Name         string    `yaml:"name"`
	Start        PointSpec `yaml:"start"`
	Size         SizeSpec  `yaml:"size"`
	Mass         float64   `yaml:"mass"`
	Gravity      float64   `yaml:"gravity"`
	FlapImpulse  float64   `yaml:"flap_impulse"`
	Color        YAMLColor `yaml:"color"`
	DamagedColor YAMLColor `yaml:"damaged_color"`
}

// Config is everything one round is built from. It is passed by value and
// never mutated once a round has started.
type Config struct {
	World  WorldSpec
	Course CourseSpec
	Player PlayerSpec
}

// LoadConfig reads and validates the world, course and player prefabs.
func LoadConfig() (Config, error) {
	world, err := LoadSpec[WorldSpec](WorldFile)
	if err != nil {
		return Config{}, err
	}
	courseSpec, err := LoadSpec[CourseSpec](CourseFile)
	if err != nil {
		return Config{}, err
	}
	player, err := LoadSpec[PlayerSpec](PlayerFile)
	if err != nil {
		return Config{}, err
	}
	cfg := Config{World: world, Course: courseSpec, Player: player}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.World.Width <= 0 || c.World.Height <= 0 {
		return fmt.Errorf("%w: world size %.0fx%.0f", ErrInvalidSpec, c.World.Width, c.World.Height)
	}
	if c.World.RestartDelayMS < 0 {
		return fmt.Errorf("%w: negative restart delay", ErrInvalidSpec)
	}
	if err := c.Course.CourseConfig().Validate(); err != nil {
		return fmt.Errorf("prefabs: %s: %w", CourseFile, err)
	}
	if c.Course.ScrollSpeed < 0 {
		return fmt.Errorf("%w: negative scroll speed", ErrInvalidSpec)
	}
	if c.Player.Size.Width <= 0 || c.Player.Size.Height <= 0 {
		return fmt.Errorf("%w: player size %.0fx%.0f", ErrInvalidSpec, c.Player.Size.Width, c.Player.Size.Height)
	}
	return nil
}

// YAMLColor accepts "#RRGGBB", "#RRGGBBAA" or an SVG colour name.
type YAMLColor struct {
	color.RGBA
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	if named, ok := colornames.Map[strings.ToLower(value.Value)]; ok {
		c.RGBA = named
		return nil
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

	c.RGBA = color.RGBA{R: r, G: g, B: b, A: a}
	return nil
}
