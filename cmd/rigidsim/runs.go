package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/rigidsim/internal/export"
	"github.com/san-kum/rigidsim/internal/physics"
	"github.com/san-kum/rigidsim/internal/scene"
	"github.com/san-kum/rigidsim/internal/storage"
	"github.com/san-kum/rigidsim/internal/viz"
)

func listScenes(cmd *cobra.Command, args []string) error {
	fmt.Println(viz.Title.Render("scenes"))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, name := range scene.Names() {
		sc, err := scene.Builtin(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "  %s\t%d bodies\t%d joints\t%s\n", name, len(sc.Bodies), len(sc.Joints), sc.Description)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Println()
	fmt.Println(viz.Muted.Render(fmt.Sprintf("engines: %v", physics.Engines())))
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENE\tENGINE\tTIME\tSTEPS\tDT\tCHECKS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%.4fs\t%s\n",
			run.ID,
			run.Scene,
			run.Engine,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.StepsTaken,
			run.Dt,
			checkSummary(run.Checks),
		)
	}
	return w.Flush()
}

func checkSummary(checks map[string]bool) string {
	if len(checks) == 0 {
		return "-"
	}
	passed := 0
	for _, ok := range checks {
		if ok {
			passed++
		}
	}
	return fmt.Sprintf("%d/%d", passed, len(checks))
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data to plot")
	}

	body := plotBody
	if body == "" {
		body = defaultPlotBody(meta)
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scene: %s (%s)\n", meta.Scene, meta.Engine)
	fmt.Printf("body: %s\n", body)
	fmt.Printf("samples: %d\n\n", len(frames))

	for _, column := range []string{"x", "y", "angle"} {
		data, err := storage.Series(frames, body, column)
		if err != nil {
			return err
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("%s %s vs step", body, column)),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	if len(meta.Metrics) > 0 {
		names := make([]string, 0, len(meta.Metrics))
		for name := range meta.Metrics {
			names = append(names, name)
		}
		sort.Strings(names)
		fmt.Println("metrics:")
		for _, name := range names {
			fmt.Printf("  %s: %.6f\n", name, meta.Metrics[name])
		}
	}
	return nil
}

// defaultPlotBody picks the tracked body of the built-in scene the run came
// from, or the last stored body.
func defaultPlotBody(meta *storage.RunMetadata) string {
	if sc, err := scene.Builtin(meta.Scene); err == nil {
		if name := sc.Tracked(); name != "" {
			return name
		}
	}
	if len(meta.Bodies) > 0 {
		return meta.Bodies[len(meta.Bodies)-1]
	}
	return ""
}

func exportCSV(cmd *cobra.Command, args []string) error {
	frames, err := storage.New(dataDir).LoadFrames(args[0])
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data to export")
	}
	return storage.WriteFrames(os.Stdout, frames)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, meta, frames)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}

	bodies := meta.Bodies
	if plotBody != "" {
		bodies = []string{plotBody}
	}
	return export.WriteSVG(os.Stdout, export.Tracks(frames, bodies), svgWidth, svgHeight)
}
