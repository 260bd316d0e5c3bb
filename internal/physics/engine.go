package physics

import (
	"fmt"
	"sort"

	"github.com/san-kum/rigidsim/internal/dynamo"
	"github.com/san-kum/rigidsim/internal/scene"
)

const (
	EngineBox2D    = "box2d"
	EngineChipmunk = "chipmunk"
)

// DefaultFriction is box2d's fixture default, used by both engines when a
// body leaves friction unset.
const DefaultFriction = 0.2

var engines = map[string]func(*scene.Scene) (dynamo.World, error){
	EngineBox2D: func(sc *scene.Scene) (dynamo.World, error) {
		w, err := NewBox2D(sc)
		if err != nil {
			return nil, err
		}
		return w, nil
	},
	EngineChipmunk: func(sc *scene.Scene) (dynamo.World, error) {
		w, err := NewChipmunk(sc)
		if err != nil {
			return nil, err
		}
		return w, nil
	},
}

// New builds sc with the named engine.
func New(engine string, sc *scene.Scene) (dynamo.World, error) {
	build, ok := engines[engine]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", ErrUnknownEngine, engine, Engines())
	}
	return build(sc)
}

func Engines() []string {
	names := make([]string, 0, len(engines))
	for name := range engines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func friction(b scene.Body) float64 {
	if b.Friction != nil {
		return *b.Friction
	}
	return DefaultFriction
}
