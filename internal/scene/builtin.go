package scene

import (
	"fmt"
	"sort"
)

var builtins = map[string]func() *Scene{
	"moon":    NewMoon,
	"launch":  NewLaunch,
	"machine": NewMachine,
}

// Builtin returns a fresh copy of a built-in scene.
func Builtin(name string) (*Scene, error) {
	fn, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", ErrUnknownScene, name, Names())
	}
	return fn(), nil
}

func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func friction(f float64) *float64 { return &f }

// NewMoon drops a 2x2 box from 20 m onto a wide floor under lunar gravity.
func NewMoon() *Scene {
	return &Scene{
		Name:        "moon",
		Description: "box dropped from rest under lunar gravity",
		Gravity:     Vec2{X: 0, Y: -1.62},
		Bodies: []Body{
			{Name: "ground", Kind: Static, X: 0, Y: -10, Width: 100, Height: 2, Density: 0},
			{Name: "box", Kind: Dynamic, X: 0, Y: 20, Width: 2, Height: 2, Density: 1, Friction: friction(0)},
		},
		Track:  []string{"box"},
		Output: OutputPose,
		Checks: []Check{
			{Name: "horizontal_drift", Kind: CheckAxisDrift, Bodies: []string{"box"}, Axis: "x", Tolerance: 1e-6},
		},
	}
}

// NewLaunch fires a small plank at 45 degrees under Earth gravity.
func NewLaunch() *Scene {
	return &Scene{
		Name:        "launch",
		Description: "plank launched at 45 degrees under earth gravity",
		Gravity:     Vec2{X: 0, Y: -9.81},
		Bodies: []Body{
			{Name: "projectile", Kind: Dynamic, X: 0, Y: 0, Width: 0.4, Height: 0.1, Density: 1, Friction: friction(0.3)},
		},
		Track:  []string{"projectile"},
		Output: OutputPosition,
		Launch: &Launch{Body: "projectile", AngleDeg: 45, Speed: 400},
		Checks: []Check{
			{Name: "descent_after_apex", Kind: CheckDescent, Bodies: []string{"projectile"}, Tolerance: 0},
		},
	}
}

// px builds a body whose centre is given in window pixels.
func px(name string, kind BodyKind, x, y, w, h, angleDeg, density float64, color string) Body {
	if kind == Static {
		color = "red"
	}
	return Body{
		Name:     name,
		Kind:     kind,
		X:        x / PixelsPerMeter,
		Y:        y / PixelsPerMeter,
		Width:    w,
		Height:   h,
		AngleDeg: angleDeg,
		Density:  density,
		Color:    color,
	}
}

// NewMachine is the rendered contraption: ramps and blocks plus one of each
// joint kind, laid out for a 900x900 window.
func NewMachine() *Scene {
	return &Scene{
		Name:        "machine",
		Description: "ramps, blocks, pulley, distance, prismatic+gear and revolute joints",
		Gravity:     Vec2{X: 0, Y: -0.1},
		Bodies: []Body{
			px("ramp1", Static, 20, 850, 10, 1, -30, 1, ""),
			px("ramp2", Static, 165, 700, 8, 1, 0, 1, ""),
			px("ramp3", Static, 473, 800, 10, 1, 0, 1, ""),
			px("ramp4", Static, 600, 730, 15, 1, -20, 1, ""),
			px("ramp5", Static, 664, 440, 5, 1, 0, 1, ""),
			px("ramp6", Static, 700, 380, 11, 1, 30, 1, ""),
			px("block1", Dynamic, 20, 900, 1, 1, 0, 2, "blue"),
			px("block2", Dynamic, 135, 745, 1, 8, 0, 1, "blue"),
			px("block3", Dynamic, 180, 745, 1, 8, 0, 1, "blue"),
			px("block4", Dynamic, 424, 830, 1, 6, 0, 0.5, "blue"),
			px("block5", Dynamic, 470, 830, 1, 6, 0, 0.5, "blue"),
			px("block6", Dynamic, 674, 469, 1, 4, 0, 1, "blue"),

			px("pulley_a", Dynamic, 265, 500, 8, 1, 0, 1, "yellow"),
			px("pulley_b", Dynamic, 380, 400, 8, 1, 0, 1, "yellow"),
			px("pulley_anchor_a", Static, 265, 900, 1, 1, 0, 0, ""),
			px("pulley_anchor_b", Static, 380, 900, 1, 1, 0, 0, ""),

			px("distance_bar", Dynamic, 690, 700, 1, 5, 0, 1, "yellow"),
			px("distance_post", Static, 690, 640, 1, 1, 0, 1, ""),

			px("slider_a", Dynamic, 690, 585, 4, 1, 0, 1, "yellow"),
			px("slider_anchor_a", Static, 500, 585, 1, 1, 0, 0, ""),
			px("slider_b", Dynamic, 500, 485, 4, 1, 0, 1, "yellow"),
			px("slider_anchor_b", Static, 690, 485, 1, 1, 0, 0, ""),

			px("rotor", Dynamic, 550, 300, 7, 1, 0, 1, "green"),
			px("rotor_anchor", Static, 550, 300, 1, 1, 0, 0, ""),
		},
		Joints: []Joint{
			{Name: "pulley", Kind: PulleyJoint, BodyA: "pulley_a", BodyB: "pulley_b",
				GroundA: "pulley_anchor_a", GroundB: "pulley_anchor_b", Ratio: 1},
			{Name: "distance", Kind: DistanceJoint, BodyA: "distance_bar", BodyB: "distance_post"},
			{Name: "slide_a", Kind: PrismaticJoint, BodyA: "slider_anchor_a", BodyB: "slider_a",
				Axis: Vec2{X: 1}, Lower: -19, EnableLimit: true},
			{Name: "slide_b", Kind: PrismaticJoint, BodyA: "slider_anchor_b", BodyB: "slider_b",
				Axis: Vec2{X: 1}, Upper: 19, EnableLimit: true},
			{Name: "gear", Kind: GearJoint, BodyA: "slider_a", BodyB: "slider_b",
				Joint1: "slide_a", Joint2: "slide_b", Ratio: 1},
			{Name: "hinge", Kind: RevoluteJoint, BodyA: "rotor_anchor", BodyB: "rotor"},
		},
		Track:  []string{"distance_bar"},
		Output: OutputPose,
		Checks: []Check{
			{Name: "distance_separation", Kind: CheckSeparation, Bodies: []string{"distance_bar", "distance_post"}, Tolerance: 0.05},
			{Name: "pulley_length", Kind: CheckPulley, Bodies: []string{"pulley_a", "pulley_b", "pulley_anchor_a", "pulley_anchor_b"}, Ratio: 1, Tolerance: 0.05},
			{Name: "slider_a_axis", Kind: CheckAxisDrift, Bodies: []string{"slider_a"}, Axis: "y", Tolerance: 0.01},
			{Name: "slider_b_axis", Kind: CheckAxisDrift, Bodies: []string{"slider_b"}, Axis: "y", Tolerance: 0.01},
			{Name: "rotor_pin_x", Kind: CheckAxisDrift, Bodies: []string{"rotor"}, Axis: "x", Tolerance: 0.01},
			{Name: "rotor_pin_y", Kind: CheckAxisDrift, Bodies: []string{"rotor"}, Axis: "y", Tolerance: 0.01},
		},
		Window: Window{Width: 900, Height: 900, Title: "rigidsim: machine"},
	}
}
