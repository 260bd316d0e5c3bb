package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/rigidsim/internal/dynamo"
	"github.com/san-kum/rigidsim/internal/metrics"
	"github.com/san-kum/rigidsim/internal/physics"
	"github.com/san-kum/rigidsim/internal/scene"
)

type Registry struct {
	scenes  map[string]func() *scene.Scene
	engines map[string]func(*scene.Scene) (dynamo.World, error)
}

func NewRegistry() *Registry {
	r := &Registry{
		scenes:  make(map[string]func() *scene.Scene),
		engines: make(map[string]func(*scene.Scene) (dynamo.World, error)),
	}

	r.scenes["moon"] = scene.NewMoon
	r.scenes["launch"] = scene.NewLaunch
	r.scenes["machine"] = scene.NewMachine

	for _, name := range physics.Engines() {
		engine := name
		r.engines[engine] = func(sc *scene.Scene) (dynamo.World, error) {
			return physics.New(engine, sc)
		}
	}

	return r
}

// RegisterScene adds or replaces a named scene factory.
func (r *Registry) RegisterScene(name string, fn func() *scene.Scene) {
	r.scenes[name] = fn
}

func (r *Registry) GetScene(name string) (*scene.Scene, error) {
	fn, ok := r.scenes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", scene.ErrUnknownScene, name)
	}
	return fn(), nil
}

func (r *Registry) GetWorld(engine string, sc *scene.Scene) (dynamo.World, error) {
	fn, ok := r.engines[engine]
	if !ok {
		return nil, fmt.Errorf("%w: %s", physics.ErrUnknownEngine, engine)
	}
	return fn(sc)
}

func (r *Registry) ListScenes() []string {
	return sortedKeys(r.scenes)
}

func (r *Registry) ListEngines() []string {
	return sortedKeys(r.engines)
}

// DefaultMetrics returns the scene's checks as metrics plus a step counter.
func (r *Registry) DefaultMetrics(sc *scene.Scene) ([]dynamo.Metric, error) {
	ms, err := metrics.ForScene(sc)
	if err != nil {
		return nil, err
	}
	for _, c := range sc.Checks {
		if c.Kind == scene.CheckSteps {
			return ms, nil
		}
	}
	return append(ms, metrics.NewStepCount("")), nil
}

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
