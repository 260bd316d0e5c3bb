package dynamo

import (
	"context"
	"errors"
	"sync"
)

// Ensemble runs several independently built worlds side by side, one
// goroutine and one Simulator per world.
type Ensemble struct {
	factories []func() (World, error)
}

func NewEnsemble(factories ...func() (World, error)) *Ensemble {
	return &Ensemble{factories: factories}
}

// Run steps every world with the same config. A world that fails to build
// or run leaves a nil slot in the results; the failures are joined into the
// returned error.
func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, len(e.factories))
	errs := make([]error, len(e.factories))

	var wg sync.WaitGroup
	for i, build := range e.factories {
		wg.Add(1)
		go func(idx int, build func() (World, error)) {
			defer wg.Done()

			w, err := build()
			if err != nil {
				errs[idx] = err
				return
			}
			results[idx], errs[idx] = New(w).Run(ctx, cfg)
		}(i, build)
	}

	wg.Wait()

	for i, err := range errs {
		if err != nil {
			results[i] = nil
		}
	}

	return results, errors.Join(errs...)
}
