package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/rigidsim/internal/dynamo"
	"github.com/san-kum/rigidsim/internal/experiment"
	"github.com/san-kum/rigidsim/internal/metrics"
	"github.com/san-kum/rigidsim/internal/physics"
	"github.com/san-kum/rigidsim/internal/render"
	"github.com/san-kum/rigidsim/internal/report"
	"github.com/san-kum/rigidsim/internal/storage"
	"github.com/san-kum/rigidsim/internal/stream"
	"github.com/san-kum/rigidsim/internal/viz"
)

// runScene prints one line per step for the tracked body. Only those lines
// go to stdout; check reports and run ids go to stderr.
func runScene(cmd *cobra.Command, args []string) error {
	cfg, sc, err := resolve(cmd, args, "moon", false)
	if err != nil {
		return err
	}

	exp := experiment.New(experiment.Config{Scene: sc, Engine: cfg.Engine, Driver: cfg.Driver()})
	if err := exp.Prepare(experiment.NewRegistry()); err != nil {
		return err
	}

	printer := report.NewPrinter(os.Stdout, sc.Output, sc.Tracked())
	exp.Simulator().AddObserver(printer)

	ctx, cancel := signalContext()
	defer cancel()

	result, err := exp.Run(ctx)
	if err != nil {
		return err
	}
	if err := printer.Err(); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if len(result.Errors) > 0 {
		return result.Errors[0]
	}

	outcomes := exp.Evaluate(result)

	if save {
		passed := make(map[string]bool, len(outcomes))
		for _, o := range outcomes {
			passed[o.Check.Name] = o.Passed
		}
		info := storage.RunInfo{
			Scene:              sc.Name,
			Engine:             cfg.Engine,
			Dt:                 cfg.Dt,
			Steps:              cfg.Steps,
			VelocityIterations: cfg.VelocityIterations,
			PositionIterations: cfg.PositionIterations,
			Checks:             passed,
		}
		runID, err := storage.New(dataDir).Save(info, result)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "run id: %s\n", runID)
	}

	if check {
		return reportChecks(outcomes)
	}
	return nil
}

func reportChecks(outcomes []metrics.Outcome) error {
	if len(outcomes) == 0 {
		fmt.Fprintln(os.Stderr, viz.Muted.Render("no checks declared"))
		return nil
	}
	fmt.Fprintln(os.Stderr, viz.Title.Render("checks"))
	failed := 0
	for _, o := range outcomes {
		fmt.Fprintln(os.Stderr, viz.CheckLine(o.Check.Name, o.Value, o.Check.Tolerance, o.Passed))
		if !o.Passed {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d checks failed", failed, len(outcomes))
	}
	return nil
}

func runWindow(cmd *cobra.Command, args []string) error {
	cfg, sc, err := resolve(cmd, args, "machine", true)
	if err != nil {
		return err
	}

	world, err := physics.New(cfg.Engine, sc)
	if err != nil {
		return err
	}
	sim := dynamo.New(world)

	ctx, cancel := signalContext()
	defer cancel()

	win := sc.WindowOrDefault()
	surface := render.NewWindow(win.Width, win.Height, win.Title)
	frames, err := render.Loop(ctx, surface, sim, cfg.Driver(), render.NewSprites(sc, float64(win.Height)))
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	fmt.Fprintf(os.Stderr, "%d frames, %.2fs simulated\n", frames, sim.Time())
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, sc, err := resolve(cmd, args, "moon", true)
	if err != nil {
		return err
	}

	build := func() (dynamo.World, error) { return physics.New(cfg.Engine, sc) }
	m, err := viz.NewModel(sc, build, cfg.Driver())
	if err != nil {
		return err
	}
	return viz.Run(m)
}

func runStream(cmd *cobra.Command, args []string) error {
	cfg, sc, err := resolve(cmd, args, "machine", true)
	if err != nil {
		return err
	}

	world, err := physics.New(cfg.Engine, sc)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	hub := stream.NewHub(sc)
	serveErr := make(chan error, 1)
	go func() {
		err := stream.Serve(ctx, addr, hub)
		if err != nil {
			cancel()
		}
		serveErr <- err
	}()

	taken, runErr := stream.Run(ctx, hub, dynamo.New(world), cfg.Driver(), fps)
	cancel()
	if err := <-serveErr; err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "streamed %d steps\n", taken)
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}
	return nil
}

func compareEngines(cmd *cobra.Command, args []string) error {
	cfg, sc, err := resolve(cmd, args, "moon", false)
	if err != nil {
		return err
	}

	factories := make([]func() (dynamo.World, error), len(engines))
	for i, name := range engines {
		engineName := name
		factories[i] = func() (dynamo.World, error) {
			w, err := physics.New(engineName, sc)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", engineName, err)
			}
			return w, nil
		}
	}

	start := time.Now()
	results, runErr := dynamo.NewEnsemble(factories...).Run(context.Background(), cfg.Driver())
	elapsed := time.Since(start)

	tracked := sc.Tracked()
	fmt.Printf("comparing engines for %s (%s, dt=%.4f, steps=%d)\n\n", sc.Name, tracked, cfg.Dt, cfg.Steps)
	fmt.Printf("%-10s  %12s  %12s  %12s\n", "engine", "x", "y", "angle")
	fmt.Println(strings.Repeat("-", 52))

	for i, res := range results {
		if res == nil {
			fmt.Printf("%-10s  %s\n", engines[i], viz.StatusFailed.Render("failed"))
			continue
		}
		last, ok := res.Last()
		if !ok {
			fmt.Printf("%-10s  no frames\n", engines[i])
			continue
		}
		b, _ := last.Body(tracked)
		fmt.Printf("%-10s  %12.6f  %12.6f  %12.6f\n", engines[i], b.X, b.Y, b.Angle)
	}
	fmt.Printf("\ncompleted in %v\n", elapsed)
	return runErr
}
