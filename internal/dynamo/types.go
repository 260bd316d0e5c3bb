package dynamo

import "math"

// BodyState is the kinematic snapshot of one body after a step.
type BodyState struct {
	Name  string  `json:"name"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Angle float64 `json:"angle"`
	VX    float64 `json:"vx"`
	VY    float64 `json:"vy"`
}

func (b BodyState) IsValid() bool {
	for _, v := range [...]float64{b.X, b.Y, b.Angle, b.VX, b.VY} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Frame holds every body of a world after step Step (1-based).
type Frame struct {
	Step   int         `json:"step"`
	Time   float64     `json:"time"`
	Bodies []BodyState `json:"bodies"`
}

// Body returns the named body state.
func (f Frame) Body(name string) (BodyState, bool) {
	for _, b := range f.Bodies {
		if b.Name == name {
			return b, true
		}
	}
	return BodyState{}, false
}

func (f Frame) IsValid() bool {
	for _, b := range f.Bodies {
		if !b.IsValid() {
			return false
		}
	}
	return true
}

func (f Frame) Clone() Frame {
	c := Frame{Step: f.Step, Time: f.Time, Bodies: make([]BodyState, len(f.Bodies))}
	copy(c.Bodies, f.Bodies)
	return c
}

// World is an external rigid-body engine holding bodies and joints.
type World interface {
	Step(dt float64, velocityIterations, positionIterations int)
	Bodies() []BodyState
}

type Metric interface {
	Name() string
	Observe(f Frame)
	Value() float64
	Reset()
}

type Observer interface {
	OnFrame(f Frame)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(f Frame)

func (fn ObserverFunc) OnFrame(f Frame) { fn(f) }

const (
	DefaultDt                 = 1.0 / 60.0
	DefaultSteps              = 60
	DefaultVelocityIterations = 6
	DefaultPositionIterations = 2
)

type Config struct {
	Dt                 float64
	Steps              int
	VelocityIterations int
	PositionIterations int
	ValidateState      bool
	// Keep retains every frame in Result.Frames.
	Keep bool
}

func DefaultConfig() Config {
	return Config{
		Dt:                 DefaultDt,
		Steps:              DefaultSteps,
		VelocityIterations: DefaultVelocityIterations,
		PositionIterations: DefaultPositionIterations,
		ValidateState:      true,
		Keep:               true,
	}
}

type Result struct {
	Frames     []Frame
	Metrics    map[string]float64
	StepsTaken int
	Errors     []error
}

// Last returns the final frame, if any.
func (r *Result) Last() (Frame, bool) {
	if r == nil || len(r.Frames) == 0 {
		return Frame{}, false
	}
	return r.Frames[len(r.Frames)-1], true
}
