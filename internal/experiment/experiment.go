package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/rigidsim/internal/dynamo"
	"github.com/san-kum/rigidsim/internal/metrics"
	"github.com/san-kum/rigidsim/internal/scene"
)

type Config struct {
	Scene  *scene.Scene
	Engine string
	Driver dynamo.Config
}

type Experiment struct {
	cfg       Config
	simulator *dynamo.Simulator
}

func New(cfg Config) *Experiment {
	return &Experiment{cfg: cfg}
}

// Prepare builds the world and the scene metrics from the registry.
func (e *Experiment) Prepare(r *Registry) error {
	if e.cfg.Scene == nil {
		return fmt.Errorf("experiment has no scene")
	}
	world, err := r.GetWorld(e.cfg.Engine, e.cfg.Scene)
	if err != nil {
		return fmt.Errorf("build %s world: %w", e.cfg.Engine, err)
	}
	ms, err := r.DefaultMetrics(e.cfg.Scene)
	if err != nil {
		return err
	}
	return e.Setup(world, ms)
}

func (e *Experiment) Setup(world dynamo.World, ms []dynamo.Metric) error {
	e.simulator = dynamo.New(world)
	for _, m := range ms {
		e.simulator.AddMetric(m)
	}
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*dynamo.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	return e.simulator.Run(ctx, e.cfg.Driver)
}

// Evaluate checks a finished run against the scene's checks.
func (e *Experiment) Evaluate(result *dynamo.Result) []metrics.Outcome {
	if e.cfg.Scene == nil || result == nil {
		return nil
	}
	return metrics.Evaluate(e.cfg.Scene.Checks, result.Metrics)
}

// Simulator returns the underlying simulator for adding observers.
func (e *Experiment) Simulator() *dynamo.Simulator {
	return e.simulator
}

func (e *Experiment) Config() Config {
	return e.cfg
}
