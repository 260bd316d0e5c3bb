package render

import (
	"context"

	"github.com/san-kum/rigidsim/internal/dynamo"
)

// Loop runs the simulation on surface until it asks to close, ctx is done or
// cfg.Steps steps were taken (0 means no limit). Each frame syncs the
// sprites to the current pose, steps once, then draws. Nothing is drawn
// once ShouldClose reports true, and surface is closed on return. It
// returns the number of frames drawn.
func Loop(ctx context.Context, surface Surface, sim *dynamo.Simulator, cfg dynamo.Config, sprites *Sprites) (int, error) {
	defer surface.Close()

	if err := sim.Validate(cfg); err != nil {
		return 0, err
	}

	frames := 0
	for {
		select {
		case <-ctx.Done():
			return frames, ctx.Err()
		default:
		}

		if surface.ShouldClose() {
			return frames, nil
		}
		if cfg.Steps > 0 && sim.Steps() >= cfg.Steps {
			return frames, nil
		}

		sprites.Sync(sim.Last())
		f := sim.Advance(cfg)
		if cfg.ValidateState && !f.IsValid() {
			return frames, &dynamo.SimulationError{Step: f.Step, Time: f.Time, Wrapped: dynamo.ErrInvalidState}
		}

		surface.BeginFrame(Background)
		for _, s := range sprites.Items() {
			surface.DrawBox(s)
		}
		surface.EndFrame()
		frames++
	}
}
