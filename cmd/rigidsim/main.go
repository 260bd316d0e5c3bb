package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/san-kum/rigidsim/internal/config"
	"github.com/san-kum/rigidsim/internal/dynamo"
	"github.com/san-kum/rigidsim/internal/physics"
	"github.com/san-kum/rigidsim/internal/scene"
	"github.com/san-kum/rigidsim/internal/stream"
)

var (
	dataDir    string
	dt         float64
	steps      int
	velIters   int
	posIters   int
	engine     string
	configFile string
	sceneFile  string
	preset     string
	angle      float64
	speed      float64
	save       bool
	check      bool
	// stream
	addr string
	fps  int
	// plot, export-svg
	plotBody  string
	svgWidth  int
	svgHeight int
	// compare
	engines []string
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "rigidsim",
		Short:        "rigid-body demo scenes on box2d and chipmunk",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".rigidsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [scene]",
		Short: "step a scene and print the tracked body every frame",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScene,
	}
	addSimFlags(runCmd)
	runCmd.Flags().BoolVar(&save, "save", false, "store the run in the data directory")
	runCmd.Flags().BoolVar(&check, "check", false, "evaluate the scene checks and report to stderr")

	windowCmd := &cobra.Command{
		Use:   "window [scene]",
		Short: "render a scene in a window until it is closed",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runWindow,
	}
	addSimFlags(windowCmd)

	liveCmd := &cobra.Command{
		Use:   "live [scene]",
		Short: "run a scene with live terminal visualization",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addSimFlags(liveCmd)

	streamCmd := &cobra.Command{
		Use:   "stream [scene]",
		Short: "stream frames to websocket clients",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runStream,
	}
	addSimFlags(streamCmd)
	streamCmd.Flags().StringVar(&addr, "addr", "localhost:8080", "listen address")
	streamCmd.Flags().IntVar(&fps, "fps", stream.DefaultFPS, "frames per second")

	compareCmd := &cobra.Command{
		Use:   "compare [scene]",
		Short: "run a scene on several engines side by side",
		Args:  cobra.MaximumNArgs(1),
		RunE:  compareEngines,
	}
	addSimFlags(compareCmd)
	compareCmd.Flags().StringSliceVar(&engines, "engines", physics.Engines(), "engines to compare")

	scenesCmd := &cobra.Command{
		Use:   "scenes",
		Short: "list built-in scenes",
		RunE:  listScenes,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [scene]",
		Short: "list available presets for a scene",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for scene: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	dumpCmd := &cobra.Command{
		Use:   "dump [scene]",
		Short: "print a built-in scene as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := scene.Builtin(args[0])
			if err != nil {
				return err
			}
			return scene.Encode(os.Stdout, sc)
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&plotBody, "body", "", "body to plot (default: the scene's tracked body)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run frames to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "draw run trajectories as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&plotBody, "body", "", "body to draw (default: every body)")
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 800, "image width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 450, "image height")

	rootCmd.AddCommand(runCmd, windowCmd, liveCmd, streamCmd, compareCmd, scenesCmd, presetsCmd, dumpCmd,
		listCmd, plotCmd, exportCSVCmd, exportJSONCmd, exportSVGCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", dynamo.DefaultDt, "timestep in seconds")
	cmd.Flags().IntVar(&steps, "steps", dynamo.DefaultSteps, "number of steps (window, live and stream run until stopped unless set)")
	cmd.Flags().IntVar(&velIters, "vel-iters", dynamo.DefaultVelocityIterations, "velocity solver iterations")
	cmd.Flags().IntVar(&posIters, "pos-iters", dynamo.DefaultPositionIterations, "position solver iterations")
	cmd.Flags().StringVar(&engine, "engine", config.DefaultEngine, "physics engine")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&sceneFile, "scene-file", "", "scene file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().Float64Var(&angle, "angle", 45, "launch angle in degrees")
	cmd.Flags().Float64Var(&speed, "speed", 400, "launch speed")
}

// resolve merges preset, config file and flags, in that order, and loads the
// scene. Commands that run until stopped leave steps unbounded unless
// --steps is given.
func resolve(cmd *cobra.Command, args []string, defaultScene string, unbounded bool) (*config.Config, *scene.Scene, error) {
	name := defaultScene
	if len(args) > 0 {
		name = args[0]
	}

	cfg := config.DefaultConfig()
	cfg.Scene = name

	if preset != "" {
		p := config.GetPreset(name, preset)
		if p == nil {
			return nil, nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(name))
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		if len(args) > 0 {
			cfg.Scene = name
		}
	}

	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("steps") {
		cfg.Steps = steps
	} else if unbounded {
		cfg.Steps = 0
	}
	if cmd.Flags().Changed("vel-iters") {
		cfg.VelocityIterations = velIters
	}
	if cmd.Flags().Changed("pos-iters") {
		cfg.PositionIterations = posIters
	}
	if cmd.Flags().Changed("engine") {
		cfg.Engine = engine
	}
	if cmd.Flags().Changed("scene-file") {
		cfg.SceneFile = sceneFile
	}

	sc, err := cfg.LoadScene()
	if err != nil {
		return nil, nil, err
	}

	if cmd.Flags().Changed("angle") || cmd.Flags().Changed("speed") {
		launch := config.LaunchConfig{AngleDeg: angle, Speed: speed}
		if sc.Launch != nil {
			if !cmd.Flags().Changed("angle") {
				launch.AngleDeg = sc.Launch.AngleDeg
			}
			if !cmd.Flags().Changed("speed") {
				launch.Speed = sc.Launch.Speed
			}
		}
		override := config.Config{Launch: &launch}
		if err := override.Apply(sc); err != nil {
			return nil, nil, err
		}
		cfg.Launch = &launch
	}

	return cfg, sc, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}
