package dynamo

import (
	"context"
	"fmt"
)

type Simulator struct {
	world     World
	metrics   []Metric
	observers []Observer
	step      int
	time      float64
	last      Frame
}

func New(w World) *Simulator {
	return &Simulator{
		world:     w,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) World() World { return s.world }

// Steps reports how many steps have been taken since the last Reset.
func (s *Simulator) Steps() int { return s.step }

func (s *Simulator) Time() float64 { return s.time }

// Last returns the most recent frame. Before the first step it holds the
// initial body states at step 0.
func (s *Simulator) Last() Frame {
	if s.step == 0 && s.last.Bodies == nil && s.world != nil {
		s.last = Frame{Bodies: s.world.Bodies()}
	}
	return s.last
}

// Reset swaps in a fresh world and rewinds the clock. Metrics are reset too.
func (s *Simulator) Reset(w World) {
	s.world = w
	s.step = 0
	s.time = 0
	s.last = Frame{}
	for _, m := range s.metrics {
		m.Reset()
	}
}

// Advance steps the world once and hands the frame to metrics and observers.
func (s *Simulator) Advance(cfg Config) Frame {
	s.world.Step(cfg.Dt, cfg.VelocityIterations, cfg.PositionIterations)
	s.step++
	s.time += cfg.Dt

	f := Frame{Step: s.step, Time: s.time, Bodies: s.world.Bodies()}
	s.last = f

	for _, m := range s.metrics {
		m.Observe(f)
	}
	for _, obs := range s.observers {
		obs.OnFrame(f)
	}
	return f
}

// Run executes exactly cfg.Steps steps.
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := s.Validate(cfg); err != nil {
		return nil, err
	}
	if cfg.Steps == 0 {
		return nil, fmt.Errorf("%w: steps must be positive for a bounded run", ErrInvalidConfig)
	}

	result := &Result{
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}
	if cfg.Keep {
		result.Frames = make([]Frame, 0, cfg.Steps)
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	for i := 0; i < cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			s.collect(result)
			return result, ctx.Err()
		default:
		}

		f := s.Advance(cfg)
		result.StepsTaken++

		if cfg.ValidateState && !f.IsValid() {
			result.Errors = append(result.Errors, &SimulationError{Step: f.Step, Time: f.Time, Wrapped: ErrInvalidState})
			break
		}

		if cfg.Keep {
			result.Frames = append(result.Frames, f)
		}
	}

	s.collect(result)
	return result, nil
}

func (s *Simulator) collect(result *Result) {
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

// Validate reports whether cfg can drive the current world. Steps == 0 is
// accepted here since only Run needs a bound.
func (s *Simulator) Validate(cfg Config) error {
	if s.world == nil {
		return ErrNoWorld
	}
	if cfg.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %f", ErrInvalidConfig, cfg.Dt)
	}
	if cfg.Steps < 0 {
		return fmt.Errorf("%w: steps must not be negative, got %d", ErrInvalidConfig, cfg.Steps)
	}
	if cfg.VelocityIterations <= 0 || cfg.PositionIterations <= 0 {
		return fmt.Errorf("%w: solver iterations must be positive, got %d/%d",
			ErrInvalidConfig, cfg.VelocityIterations, cfg.PositionIterations)
	}
	return nil
}

// RunWithCallback steps until callback returns false, the context is done, or
// cfg.Steps steps were taken. Steps == 0 means no step limit.
func (s *Simulator) RunWithCallback(ctx context.Context, cfg Config, callback func(Frame) bool) error {
	if err := s.Validate(cfg); err != nil {
		return err
	}

	for i := 0; cfg.Steps == 0 || i < cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		f := s.Advance(cfg)

		if cfg.ValidateState && !f.IsValid() {
			return &SimulationError{Step: f.Step, Time: f.Time, Wrapped: ErrInvalidState}
		}

		if !callback(f) {
			return nil
		}
	}

	return nil
}
