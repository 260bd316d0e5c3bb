package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/rigidsim/internal/dynamo"
	"github.com/san-kum/rigidsim/internal/physics"
	"github.com/san-kum/rigidsim/internal/scene"
)

const (
	DefaultScene  = "moon"
	DefaultEngine = physics.EngineBox2D
)

// Config holds the parameters of one run. Gravity and Launch, when set,
// override what the scene declares.
type Config struct {
	Scene              string         `yaml:"scene"`
	SceneFile          string         `yaml:"scene_file,omitempty"`
	Engine             string         `yaml:"engine"`
	Dt                 float64        `yaml:"dt"`
	Steps              int            `yaml:"steps"`
	VelocityIterations int            `yaml:"velocity_iterations"`
	PositionIterations int            `yaml:"position_iterations"`
	Gravity            *GravityConfig `yaml:"gravity,omitempty"`
	Launch             *LaunchConfig  `yaml:"launch,omitempty"`
}

type GravityConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type LaunchConfig struct {
	AngleDeg float64 `yaml:"angle_deg"`
	Speed    float64 `yaml:"speed"`
}

func DefaultConfig() *Config {
	return &Config{
		Scene:              DefaultScene,
		Engine:             DefaultEngine,
		Dt:                 dynamo.DefaultDt,
		Steps:              dynamo.DefaultSteps,
		VelocityIterations: dynamo.DefaultVelocityIterations,
		PositionIterations: dynamo.DefaultPositionIterations,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Driver returns the stepping parameters for the simulation loop.
func (c *Config) Driver() dynamo.Config {
	cfg := dynamo.DefaultConfig()
	cfg.Dt = c.Dt
	cfg.Steps = c.Steps
	cfg.VelocityIterations = c.VelocityIterations
	cfg.PositionIterations = c.PositionIterations
	return cfg
}

// Apply writes the gravity and launch overrides into sc. A launch override
// on a scene without one launches its first tracked body.
func (c *Config) Apply(sc *scene.Scene) error {
	if c.Gravity != nil {
		sc.Gravity = scene.Vec2{X: c.Gravity.X, Y: c.Gravity.Y}
	}
	if c.Launch != nil {
		if sc.Launch == nil {
			body := sc.Tracked()
			if body == "" {
				return fmt.Errorf("%w: launch override needs a tracked body in %s", scene.ErrInvalidScene, sc.Name)
			}
			sc.Launch = &scene.Launch{Body: body}
		}
		sc.Launch.AngleDeg = c.Launch.AngleDeg
		sc.Launch.Speed = c.Launch.Speed
	}
	return nil
}

// LoadScene resolves the scene named by the config, reading SceneFile when
// set, and applies the overrides to it.
func (c *Config) LoadScene() (*scene.Scene, error) {
	var (
		sc  *scene.Scene
		err error
	)
	if c.SceneFile != "" {
		sc, err = scene.Load(c.SceneFile)
	} else {
		sc, err = scene.Builtin(c.Scene)
	}
	if err != nil {
		return nil, err
	}
	if err := c.Apply(sc); err != nil {
		return nil, err
	}
	return sc, nil
}
