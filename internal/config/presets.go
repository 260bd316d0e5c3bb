package config

import "sort"

func preset(sceneName string, edit func(c *Config)) *Config {
	c := DefaultConfig()
	c.Scene = sceneName
	edit(c)
	return c
}

var Presets = map[string]map[string]*Config{
	"moon": {
		"moon": preset("moon", func(c *Config) {}),
		"earth": preset("moon", func(c *Config) {
			c.Gravity = &GravityConfig{Y: -9.81}
		}),
		"long": preset("moon", func(c *Config) {
			c.Steps = 600
		}),
	},
	"launch": {
		"classic": preset("launch", func(c *Config) {
			c.Launch = &LaunchConfig{AngleDeg: 45, Speed: 400}
		}),
		"lob": preset("launch", func(c *Config) {
			c.Steps = 180
			c.Launch = &LaunchConfig{AngleDeg: 70, Speed: 10}
		}),
		"flat": preset("launch", func(c *Config) {
			c.Steps = 120
			c.Launch = &LaunchConfig{AngleDeg: 15, Speed: 10}
		}),
	},
	"machine": {
		"default": preset("machine", func(c *Config) {
			c.Steps = 600
		}),
		"fine": preset("machine", func(c *Config) {
			c.Dt = 1.0 / 120.0
			c.Steps = 1200
			c.VelocityIterations = 8
			c.PositionIterations = 3
		}),
	},
}

func GetPreset(sceneName, name string) *Config {
	scenePresets, ok := Presets[sceneName]
	if !ok {
		return nil
	}
	cfg, ok := scenePresets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets(sceneName string) []string {
	scenePresets, ok := Presets[sceneName]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(scenePresets))
	for name := range scenePresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
