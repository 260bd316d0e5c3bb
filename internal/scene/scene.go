package scene

import (
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// PixelsPerMeter converts scene metres to window pixels.
const PixelsPerMeter = 10.0

type BodyKind string

const (
	Static  BodyKind = "static"
	Dynamic BodyKind = "dynamic"
)

type JointKind string

const (
	DistanceJoint  JointKind = "distance"
	PulleyJoint    JointKind = "pulley"
	PrismaticJoint JointKind = "prismatic"
	GearJoint      JointKind = "gear"
	RevoluteJoint  JointKind = "revolute"
)

type OutputFormat string

const (
	// OutputPose prints x, y and angle of the tracked body.
	OutputPose OutputFormat = "pose"
	// OutputPosition prints x and y of the tracked body.
	OutputPosition OutputFormat = "position"
)

type Vec2 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Body is a box-shaped rigid body. X and Y locate its centre in metres;
// Width and Height are full extents.
type Body struct {
	Name     string   `yaml:"name"`
	Kind     BodyKind `yaml:"kind"`
	X        float64  `yaml:"x"`
	Y        float64  `yaml:"y"`
	Width    float64  `yaml:"width"`
	Height   float64  `yaml:"height"`
	AngleDeg float64  `yaml:"angle_deg,omitempty"`
	Density  float64  `yaml:"density"`
	Friction *float64 `yaml:"friction,omitempty"`
	Color    string   `yaml:"color,omitempty"`
	Velocity Vec2     `yaml:"velocity,omitempty"`
}

func (b Body) Angle() float64 { return b.AngleDeg * math.Pi / 180 }

// Joint ties BodyA to BodyB. Which fields matter depends on Kind:
// pulley uses GroundA/GroundB and Ratio, prismatic uses Axis and the
// translation limits, gear couples the joints named Joint1 and Joint2.
type Joint struct {
	Name        string    `yaml:"name"`
	Kind        JointKind `yaml:"kind"`
	BodyA       string    `yaml:"body_a"`
	BodyB       string    `yaml:"body_b"`
	GroundA     string    `yaml:"ground_a,omitempty"`
	GroundB     string    `yaml:"ground_b,omitempty"`
	Axis        Vec2      `yaml:"axis,omitempty"`
	Lower       float64   `yaml:"lower,omitempty"`
	Upper       float64   `yaml:"upper,omitempty"`
	EnableLimit bool      `yaml:"enable_limit,omitempty"`
	Ratio       float64   `yaml:"ratio,omitempty"`
	Joint1      string    `yaml:"joint1,omitempty"`
	Joint2      string    `yaml:"joint2,omitempty"`
}

// Launch gives Body an initial velocity of Speed along AngleDeg.
type Launch struct {
	Body     string  `yaml:"body"`
	AngleDeg float64 `yaml:"angle_deg"`
	Speed    float64 `yaml:"speed"`
}

func (l Launch) Velocity() Vec2 {
	rad := l.AngleDeg * math.Pi / 180
	return Vec2{X: l.Speed * math.Cos(rad), Y: l.Speed * math.Sin(rad)}
}

type CheckKind string

const (
	CheckAxisDrift  CheckKind = "axis_drift"
	CheckSeparation CheckKind = "separation"
	CheckDescent    CheckKind = "descent"
	CheckPulley     CheckKind = "pulley"
	CheckSteps      CheckKind = "steps"
)

// StepsCheckName names the step counter added to every run that declares no
// steps check.
const StepsCheckName = "steps"

// Check is a property the scene should hold while it runs. Bodies lists
// the bodies it reads: one for axis_drift and descent, two for separation,
// four (a, b, ground a, ground b) for pulley.
type Check struct {
	Name      string    `yaml:"name"`
	Kind      CheckKind `yaml:"kind"`
	Bodies    []string  `yaml:"bodies,omitempty"`
	Axis      string    `yaml:"axis,omitempty"`
	Ratio     float64   `yaml:"ratio,omitempty"`
	Expect    float64   `yaml:"expect,omitempty"`
	Tolerance float64   `yaml:"tolerance"`
}

type Window struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

type Scene struct {
	Name        string       `yaml:"name"`
	Description string       `yaml:"description,omitempty"`
	Gravity     Vec2         `yaml:"gravity"`
	Bodies      []Body       `yaml:"bodies"`
	Joints      []Joint      `yaml:"joints,omitempty"`
	Track       []string     `yaml:"track,omitempty"`
	Output      OutputFormat `yaml:"output,omitempty"`
	Launch      *Launch      `yaml:"launch,omitempty"`
	Checks      []Check      `yaml:"checks,omitempty"`
	Window      Window       `yaml:"window,omitempty"`
}

// Body returns the named body declaration.
func (s *Scene) Body(name string) (Body, bool) {
	for _, b := range s.Bodies {
		if b.Name == name {
			return b, true
		}
	}
	return Body{}, false
}

// Tracked returns the body whose state is printed, or "" if none.
func (s *Scene) Tracked() string {
	if len(s.Track) > 0 {
		return s.Track[0]
	}
	for _, b := range s.Bodies {
		if b.Kind == Dynamic {
			return b.Name
		}
	}
	return ""
}

// InitialVelocity returns the starting velocity of the named body, taking
// the launch into account.
func (s *Scene) InitialVelocity(name string) Vec2 {
	if s.Launch != nil && s.Launch.Body == name {
		return s.Launch.Velocity()
	}
	b, _ := s.Body(name)
	return b.Velocity
}

// HasJoints reports whether any joint is declared.
func (s *Scene) HasJoints() bool { return len(s.Joints) > 0 }

func (s *Scene) WindowOrDefault() Window {
	w := s.Window
	if w.Width == 0 {
		w.Width = 900
	}
	if w.Height == 0 {
		w.Height = 900
	}
	if w.Title == "" {
		w.Title = "rigidsim: " + s.Name
	}
	return w
}

func (s *Scene) Clone() *Scene {
	c := *s
	c.Bodies = make([]Body, len(s.Bodies))
	for i, b := range s.Bodies {
		if b.Friction != nil {
			f := *b.Friction
			b.Friction = &f
		}
		c.Bodies[i] = b
	}
	c.Joints = append([]Joint(nil), s.Joints...)
	c.Track = append([]string(nil), s.Track...)
	c.Checks = make([]Check, len(s.Checks))
	for i, ch := range s.Checks {
		ch.Bodies = append([]string(nil), ch.Bodies...)
		c.Checks[i] = ch
	}
	if s.Launch != nil {
		l := *s.Launch
		c.Launch = &l
	}
	return &c
}

func (s *Scene) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidScene)
	}
	if len(s.Bodies) == 0 {
		return fmt.Errorf("%w: %s has no bodies", ErrInvalidScene, s.Name)
	}

	bodies := make(map[string]bool, len(s.Bodies))
	for _, b := range s.Bodies {
		if b.Name == "" {
			return fmt.Errorf("%w: body without name", ErrInvalidScene)
		}
		if bodies[b.Name] {
			return fmt.Errorf("%w: duplicate body %q", ErrInvalidScene, b.Name)
		}
		bodies[b.Name] = true
		if b.Kind != Static && b.Kind != Dynamic {
			return fmt.Errorf("%w: body %q has unknown kind %q", ErrInvalidScene, b.Name, b.Kind)
		}
		if b.Width <= 0 || b.Height <= 0 {
			return fmt.Errorf("%w: body %q must have a positive size", ErrInvalidScene, b.Name)
		}
		if b.Density < 0 {
			return fmt.Errorf("%w: body %q has negative density", ErrInvalidScene, b.Name)
		}
	}

	joints := make(map[string]JointKind, len(s.Joints))
	for _, j := range s.Joints {
		if j.Name == "" {
			return fmt.Errorf("%w: joint without name", ErrInvalidScene)
		}
		if _, dup := joints[j.Name]; dup {
			return fmt.Errorf("%w: duplicate joint %q", ErrInvalidScene, j.Name)
		}
		for _, ref := range []string{j.BodyA, j.BodyB} {
			if !bodies[ref] {
				return fmt.Errorf("%w: joint %q references unknown body %q", ErrInvalidScene, j.Name, ref)
			}
		}
		if j.BodyA == j.BodyB {
			return fmt.Errorf("%w: joint %q connects body %q to itself", ErrInvalidScene, j.Name, j.BodyA)
		}

		switch j.Kind {
		case DistanceJoint, RevoluteJoint:
		case PrismaticJoint:
			if j.Axis == (Vec2{}) {
				return fmt.Errorf("%w: prismatic joint %q needs an axis", ErrInvalidScene, j.Name)
			}
		case PulleyJoint:
			if !bodies[j.GroundA] || !bodies[j.GroundB] {
				return fmt.Errorf("%w: pulley joint %q needs two ground bodies", ErrInvalidScene, j.Name)
			}
			if j.Ratio <= 0 {
				return fmt.Errorf("%w: pulley joint %q needs a positive ratio", ErrInvalidScene, j.Name)
			}
		case GearJoint:
			for _, ref := range []string{j.Joint1, j.Joint2} {
				kind, ok := joints[ref]
				if !ok {
					return fmt.Errorf("%w: gear joint %q references unknown joint %q", ErrInvalidScene, j.Name, ref)
				}
				if kind != PrismaticJoint && kind != RevoluteJoint {
					return fmt.Errorf("%w: gear joint %q can only couple prismatic or revolute joints", ErrInvalidScene, j.Name)
				}
			}
		default:
			return fmt.Errorf("%w: joint %q has unknown kind %q", ErrInvalidScene, j.Name, j.Kind)
		}
		joints[j.Name] = j.Kind
	}

	for _, name := range s.Track {
		if !bodies[name] {
			return fmt.Errorf("%w: tracked body %q not declared", ErrInvalidScene, name)
		}
	}
	if s.Launch != nil && !bodies[s.Launch.Body] {
		return fmt.Errorf("%w: launch body %q not declared", ErrInvalidScene, s.Launch.Body)
	}

	switch s.Output {
	case "", OutputPose, OutputPosition:
	default:
		return fmt.Errorf("%w: unknown output format %q", ErrInvalidScene, s.Output)
	}

	checks := make(map[string]bool, len(s.Checks))
	for _, c := range s.Checks {
		if checks[c.Name] {
			return fmt.Errorf("%w: duplicate check %q", ErrInvalidScene, c.Name)
		}
		checks[c.Name] = true
		if c.Name == StepsCheckName && c.Kind != CheckSteps {
			return fmt.Errorf("%w: check name %q is reserved for the step counter", ErrInvalidScene, c.Name)
		}
		for _, ref := range c.Bodies {
			if !bodies[ref] {
				return fmt.Errorf("%w: check %q references unknown body %q", ErrInvalidScene, c.Name, ref)
			}
		}
	}
	return nil
}

func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scene
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

func Save(path string, sc *Scene) error {
	data, err := yaml.Marshal(sc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Encode writes sc as YAML, in the format Load reads.
func Encode(w io.Writer, sc *Scene) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(sc); err != nil {
		return err
	}
	return enc.Close()
}
