package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/dpend/internal/analysis"
	"github.com/san-kum/dpend/internal/config"
	"github.com/san-kum/dpend/internal/export"
	"github.com/san-kum/dpend/internal/metrics"
	"github.com/san-kum/dpend/internal/sim"
	"github.com/san-kum/dpend/internal/storage"
	"github.com/san-kum/dpend/internal/viz"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	dataDir    string
	configFile string
	preset     string
	dt         float64
	frames     int
	gravity    float64
	mass1      float64
	mass2      float64
	length1    float64
	length2    float64
	theta1     float64
	theta2     float64
	omega1     float64
	omega2     float64
	traceCap   int
	noSave     bool
	outFile    string
	epsilon    float64
	members    int
	braille    bool
)

// main registers the dpend commands and executes the root command, exiting
// with status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:          "dpend",
		Short:        "double pendulum simulator",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".dpend", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a headless simulation and store it",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addSimFlags(runCmd.Flags())
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "animate the pendulum in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addSimFlags(liveCmd.Flags())

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "run perturbed copies side by side and plot their divergence",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addSimFlags(sweepCmd.Flags())
	sweepCmd.Flags().Float64Var(&epsilon, "epsilon", 1e-6, "perturbation of theta2 per member")
	sweepCmd.Flags().IntVar(&members, "members", 4, "number of perturbed runs")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a stored run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency and chaos analysis of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "draw a stored run as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default <run_id>.svg)")
	exportSVGCmd.Flags().BoolVar(&braille, "braille", false, "draw the last frame and trail as the live view shows them")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tM1\tL1\tTHETA1\tM2\tL2\tTHETA2\tDT")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%g\t%g\t%.3f\t%g\t%g\t%.3f\t%g\n",
					name, p.Arm1.Mass, p.Arm1.Length, p.Arm1.Angle,
					p.Arm2.Mass, p.Arm2.Length, p.Arm2.Angle, p.Dt)
			}
			return w.Flush()
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, sweepCmd, listCmd, plotCmd, analyzeCmd, exportJSONCmd, exportSVGCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSimFlags(fs *pflag.FlagSet) {
	def := config.DefaultConfig()
	fs.StringVar(&configFile, "config", "", "config file path (yaml)")
	fs.StringVar(&preset, "preset", "", "use preset configuration")
	fs.Float64Var(&dt, "dt", def.Dt, "timestep in seconds")
	fs.IntVar(&frames, "frames", def.Frames, "number of frames")
	fs.Float64Var(&gravity, "gravity", def.Gravity, "gravitational acceleration")
	fs.Float64Var(&mass1, "m1", def.Arm1.Mass, "mass of the first arm")
	fs.Float64Var(&mass2, "m2", def.Arm2.Mass, "mass of the second arm")
	fs.Float64Var(&length1, "l1", def.Arm1.Length, "length of the first arm")
	fs.Float64Var(&length2, "l2", def.Arm2.Length, "length of the second arm")
	fs.Float64Var(&theta1, "theta1", def.Arm1.Angle, "initial angle of the first arm (rad)")
	fs.Float64Var(&theta2, "theta2", def.Arm2.Angle, "initial angle of the second arm (rad)")
	fs.Float64Var(&omega1, "omega1", 0, "initial angular velocity of the first arm")
	fs.Float64Var(&omega2, "omega2", 0, "initial angular velocity of the second arm")
	fs.IntVar(&traceCap, "trace", def.TraceCapacity, "trail length")
}

// resolveConfig layers defaults, preset, config file and explicit flags, in
// that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	apply := func(name string, fn func()) {
		if flags.Changed(name) {
			fn()
		}
	}
	apply("dt", func() { cfg.Dt = dt })
	apply("frames", func() { cfg.Frames = frames })
	apply("gravity", func() { cfg.Gravity = gravity })
	apply("m1", func() { cfg.Arm1.Mass = mass1 })
	apply("m2", func() { cfg.Arm2.Mass = mass2 })
	apply("l1", func() { cfg.Arm1.Length = length1 })
	apply("l2", func() { cfg.Arm2.Length = length2 })
	apply("theta1", func() { cfg.Arm1.Angle = theta1 })
	apply("theta2", func() { cfg.Arm2.Angle = theta2 })
	apply("omega1", func() { cfg.Arm1.AngularVelocity = omega1 })
	apply("omega2", func() { cfg.Arm2.AngularVelocity = omega2 })
	apply("trace", func() { cfg.TraceCapacity = traceCap })

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	s, err := cfg.NewSimulator()
	if err != nil {
		return err
	}
	for _, m := range metrics.Defaults() {
		s.AddMetric(m)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running %s simulation (%d frames, dt=%g)...\n", cfg.Name, cfg.Frames, cfg.Dt)
	start := time.Now()

	result, err := s.Run(ctx, cfg.Frames)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", time.Since(start))
	fmt.Printf("simulated: %.2fs\n", s.Elapsed(len(result.Frames)))
	fmt.Printf("energy drift: %.6f\n", result.EnergyDrift)
	fmt.Println("\nmetrics:")
	for _, m := range metrics.Defaults() {
		fmt.Printf("  %s: %.6f\n", m.Name(), result.Metrics[m.Name()])
	}

	if noSave {
		return nil
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(cfg, result)
	if err != nil {
		return err
	}
	fmt.Printf("\nrun id: %s\n", runID)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	s, err := cfg.NewSimulator()
	if err != nil {
		return err
	}
	rec, err := cfg.NewRecorder()
	if err != nil {
		return err
	}

	return viz.Run(s, rec, cfg.Name)
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if members < 2 {
		return fmt.Errorf("sweep needs at least 2 members, got %d", members)
	}

	sims := make([]*sim.Simulator, members)
	for i := range sims {
		c := *cfg
		c.Arm2.Angle += float64(i) * epsilon
		if sims[i], err = c.NewSimulator(); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := sim.NewEnsemble(sims...).Run(ctx, cfg.Frames)
	if err != nil {
		return err
	}

	fmt.Printf("%d runs, theta2 perturbed by multiples of %g\n\n", members, epsilon)
	for i := 1; i < len(results); i++ {
		div := sim.Divergence(results[0], results[i])
		graph := asciigraph.Plot(div,
			asciigraph.Height(8),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("far joint distance, run 0 vs run %d", i)),
		)
		fmt.Println(graph)
		fmt.Println()
	}
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
	fmt.Fprintln(w, "ID\tNAME\tTIME\tFRAMES\tDT\tDRIFT")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.4fs\t%.6f\n",
			run.ID,
			run.Config.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Frames,
			run.Config.Dt,
			run.EnergyDrift,
		)
	}

	return w.Flush()
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

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("preset: %s\n", meta.Config.Name)
	fmt.Printf("frames: %d\n\n", len(frames))

	series := []struct {
		caption string
		value   func(sim.Frame) float64
	}{
		{"theta1 (rad)", func(f sim.Frame) float64 { return f.State.Arm1.Angle }},
		{"theta2 (rad)", func(f sim.Frame) float64 { return f.State.Arm2.Angle }},
		{"far joint x", func(f sim.Frame) float64 { return f.Joint2.X }},
		{"far joint y", func(f sim.Frame) float64 { return f.Joint2.Y }},
		{"total energy", func(f sim.Frame) float64 { return f.State.Energy() }},
	}

	for _, s := range series {
		data := make([]float64, len(frames))
		for i, f := range frames {
			data[i] = s.value(f)
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(s.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
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

	if outFile == "" {
		return storage.ExportJSON(os.Stdout, meta, frames)
	}

	f, err := os.Create(outFile)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := storage.ExportJSON(f, meta, frames); err != nil {
		return err
	}
	fmt.Printf("exported %d frames to %s\n", len(frames), outFile)
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
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

	if len(frames) < 4 {
		return fmt.Errorf("not enough frames to analyze: %d", len(frames))
	}

	theta1 := make([]float64, len(frames))
	theta2 := make([]float64, len(frames))
	for i, f := range frames {
		theta1[i] = f.State.Arm1.Angle
		theta2[i] = f.State.Arm2.Angle
	}

	dt := meta.Config.Dt
	spectrum := analysis.PowerSpectrum(analysis.Truncate(theta1))
	if len(spectrum) > 1 {
		graph := asciigraph.Plot(spectrum[1:],
			asciigraph.Height(15),
			asciigraph.Width(80),
			asciigraph.Caption("power spectrum (theta1)"),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	fmt.Printf("dominant frequency theta1: %.4f Hz\n", analysis.DominantFrequency(theta1, dt))
	fmt.Printf("dominant frequency theta2: %.4f Hz\n", analysis.DominantFrequency(theta2, dt))

	initial, err := meta.Config.State()
	if err != nil {
		return err
	}
	lambda, err := analysis.LyapunovExponent(initial, dt, len(frames), 1e-8)
	if err != nil {
		return err
	}

	regime := "regular"
	if lambda > 0.1 {
		regime = "chaotic"
	}
	fmt.Printf("largest lyapunov exponent: %.4f 1/s (%s)\n", lambda, regime)

	return nil
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

	reach := meta.Config.Arm1.Length + meta.Config.Arm2.Length
	var svg string
	if braille {
		svg, err = export.BrailleSVG(frames, reach, meta.Config.TraceCapacity, 4)
		if err != nil {
			return err
		}
	} else {
		svg = export.TrajectoryToSVG(frames, reach, 600, "#00ccff")
	}
	if svg == "" {
		return fmt.Errorf("not enough frames to draw: %d", len(frames))
	}

	path := outFile
	if path == "" {
		path = runID + ".svg"
	}
	if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}
