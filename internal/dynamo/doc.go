// Package dynamo provides the fixed-timestep driver shared by every rigidsim
// front end.
//
// The package does not integrate anything itself. A [World] wraps an external
// rigid-body engine and the [Simulator] only decides when to step it and who
// gets to see the result:
//
//   - [World]: engine adapter (step + read back body state)
//   - [Frame]: post-step snapshot of every body
//   - [Observer]: receives each frame (printers, renderers, streams)
//   - [Metric]: folds frames into a single value (constraint checks)
//   - [Simulator]: runs the loop
//
// # Example
//
//	w, _ := physics.NewBox2D(scene.NewMoon())
//	sim := dynamo.New(w)
//	sim.AddObserver(report.NewPrinter(os.Stdout, scene.OutputPose, "box"))
//	result, _ := sim.Run(ctx, dynamo.DefaultConfig())
//
// # Thread Safety
//
// Simulator instances are NOT thread-safe. For side-by-side runs use
// [Ensemble], which gives each run its own world.
package dynamo
