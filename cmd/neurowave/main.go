package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/neurowave/internal/analysis"
	"github.com/san-kum/neurowave/internal/basis"
	"github.com/san-kum/neurowave/internal/config"
	"github.com/san-kum/neurowave/internal/sim"
	"github.com/san-kum/neurowave/internal/store"
	"github.com/san-kum/neurowave/internal/wave"
)

var (
	configFile string
	method     string
	gammaS     float64
	rs         float64
	dt         float64
	duration   float64
	vertices   int
	modes      int
	workers    int
	outFile    string
	vertex     int
	plotWidth  int
	plotHeight int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "neurowave",
		Short: "eigenmode wave simulation of cortical activity",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation on a synthetic harmonic basis",
		RunE:  runSimulation,
	}
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&method, "method", "", "solver method (ode|fourier)")
	runCmd.Flags().Float64Var(&gammaS, "gamma", wave.DefaultGamma, "damping rate gamma_s")
	runCmd.Flags().Float64Var(&rs, "rs", wave.DefaultLengthScale, "spatial length scale r_s")
	runCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "sample spacing")
	runCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "simulated duration")
	runCmd.Flags().IntVar(&vertices, "vertices", config.DefaultVertices, "vertex count of the synthetic surface")
	runCmd.Flags().IntVar(&modes, "modes", config.DefaultModes, "number of eigenmodes")
	runCmd.Flags().IntVar(&workers, "workers", 0, "parallel mode solves (0 = all cpus)")
	runCmd.Flags().StringVar(&outFile, "out", "", "save run as JSON")

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "run both solver methods and report their disagreement",
		RunE:  compareMethods,
	}
	compareCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	compareCmd.Flags().Float64Var(&gammaS, "gamma", wave.DefaultGamma, "damping rate gamma_s")
	compareCmd.Flags().Float64Var(&rs, "rs", wave.DefaultLengthScale, "spatial length scale r_s")
	compareCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "sample spacing")
	compareCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "simulated duration")
	compareCmd.Flags().IntVar(&vertices, "vertices", config.DefaultVertices, "vertex count")
	compareCmd.Flags().IntVar(&modes, "modes", config.DefaultModes, "number of eigenmodes")

	plotCmd := &cobra.Command{
		Use:   "plot [run.json]",
		Short: "plot one vertex trace of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&vertex, "vertex", -1, "vertex index (-1 = middle)")
	plotCmd.Flags().IntVar(&plotWidth, "width", 80, "plot width")
	plotCmd.Flags().IntVar(&plotHeight, "height", 15, "plot height")

	spectrumCmd := &cobra.Command{
		Use:   "spectrum [run.json]",
		Short: "power spectrum of one vertex trace",
		Args:  cobra.ExactArgs(1),
		RunE:  spectrumRun,
	}
	spectrumCmd.Flags().IntVar(&vertex, "vertex", -1, "vertex index (-1 = middle)")
	spectrumCmd.Flags().IntVar(&plotWidth, "width", 80, "plot width")
	spectrumCmd.Flags().IntVar(&plotHeight, "height", 15, "plot height")

	exportCmd := &cobra.Command{
		Use:   "export [run.json]",
		Short: "export a saved run as CSV on stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	rootCmd.AddCommand(runCmd, compareCmd, plotCmd, spectrumCmd, exportCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if cmd.Flags().Changed("method") {
		cfg.Method = method
	}
	if cmd.Flags().Changed("gamma") {
		cfg.GammaS = gammaS
	}
	if cmd.Flags().Changed("rs") {
		cfg.RS = rs
	}
	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("vertices") {
		cfg.Vertices = vertices
	}
	if cmd.Flags().Changed("modes") {
		cfg.Modes = modes
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = workers
	}
	return cfg, nil
}

// buildStimulus samples the configured stimulus on the synthetic surface: a
// spatial Gaussian bump switched on over a temporal window.
func buildStimulus(cfg *config.Config, times wave.TimeGrid) *mat.Dense {
	st := cfg.Stimulus
	field := mat.NewDense(cfg.Vertices, len(times), nil)
	for i := 0; i < cfg.Vertices; i++ {
		x := float64(i) / float64(cfg.Vertices-1)
		dx := (x - st.Center) / st.Width
		spatial := st.Amplitude * math.Exp(-0.5*dx*dx)
		for j, t := range times {
			if t >= st.Onset && t < st.Onset+st.Duration {
				field.Set(i, j, spatial)
			}
		}
	}
	return field
}

func simulate(cfg *config.Config, m wave.Method) (*mat.Dense, wave.TimeGrid, error) {
	b, err := basis.Harmonic(cfg.Vertices, cfg.Modes)
	if err != nil {
		return nil, nil, err
	}
	times := cfg.TimeGrid()
	input := buildStimulus(cfg, times)

	simulator, err := sim.New(b, sim.Config{
		Method:  m,
		Params:  cfg.Params(),
		Workers: cfg.Workers,
	})
	if err != nil {
		return nil, nil, err
	}

	field, err := simulator.Run(context.Background(), input, times)
	if err != nil {
		return nil, nil, err
	}
	return field, times, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	m, err := wave.ParseMethod(cfg.Method)
	if err != nil {
		return err
	}

	field, times, err := simulate(cfg, m)
	if err != nil {
		return err
	}

	peak, peakVertex := fieldPeak(field)
	trace := vertexTrace(field, peakVertex)

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintf(w, "method\t%s\n", m)
	fmt.Fprintf(w, "vertices\t%d\n", cfg.Vertices)
	fmt.Fprintf(w, "modes\t%d\n", cfg.Modes)
	fmt.Fprintf(w, "gamma_s\t%g\n", cfg.GammaS)
	fmt.Fprintf(w, "r_s\t%g\n", cfg.RS)
	fmt.Fprintf(w, "samples\t%d\n", len(times))
	fmt.Fprintf(w, "peak activity\t%.6g (vertex %d)\n", peak, peakVertex)
	fmt.Fprintf(w, "dominant freq\t%.4g\n", analysis.DominantFrequency(trace, cfg.Dt))
	w.Flush()

	if outFile != "" {
		run := store.FromField(m.String(), cfg.GammaS, cfg.RS, cfg.Modes, times, field)
		if err := store.SaveJSON(outFile, run); err != nil {
			return err
		}
		fmt.Printf("saved %s\n", outFile)
	}
	return nil
}

func compareMethods(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	odeField, _, err := simulate(cfg, wave.MethodODE)
	if err != nil {
		return err
	}
	fourierField, _, err := simulate(cfg, wave.MethodFourier)
	if err != nil {
		return err
	}

	v, t := odeField.Dims()
	maxAbs, maxDiff := 0.0, 0.0
	for i := 0; i < v; i++ {
		for j := 0; j < t; j++ {
			maxAbs = math.Max(maxAbs, math.Abs(odeField.At(i, j)))
			maxDiff = math.Max(maxDiff, math.Abs(odeField.At(i, j)-fourierField.At(i, j)))
		}
	}
	rel := 0.0
	if maxAbs > 0 {
		rel = maxDiff / maxAbs
	}

	fmt.Printf("max |ode - fourier| = %.6g (relative %.6g)\n", maxDiff, rel)
	return nil
}

func loadTrace(path string) (*store.Run, []float64, error) {
	run, err := store.LoadJSON(path)
	if err != nil {
		return nil, nil, err
	}
	idx := vertex
	if idx < 0 {
		idx = len(run.Field) / 2
	}
	if idx >= len(run.Field) {
		return nil, nil, fmt.Errorf("vertex %d out of range (run has %d)", idx, len(run.Field))
	}
	return run, run.Field[idx], nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	_, trace, err := loadTrace(args[0])
	if err != nil {
		return err
	}
	fmt.Println(asciigraph.Plot(trace,
		asciigraph.Width(plotWidth),
		asciigraph.Height(plotHeight),
		asciigraph.Caption("activity")))
	return nil
}

func spectrumRun(cmd *cobra.Command, args []string) error {
	run, trace, err := loadTrace(args[0])
	if err != nil {
		return err
	}
	ps := analysis.PowerSpectrum(trace)
	fmt.Println(asciigraph.Plot(ps,
		asciigraph.Width(plotWidth),
		asciigraph.Height(plotHeight),
		asciigraph.Caption("power spectrum")))
	if len(run.Times) > 1 {
		dt := run.Times[1] - run.Times[0]
		fmt.Printf("dominant frequency: %.4g\n", analysis.DominantFrequency(trace, dt))
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	run, err := store.LoadJSON(args[0])
	if err != nil {
		return err
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := make([]string, 0, len(run.Field)+1)
	header = append(header, "time")
	for i := range run.Field {
		header = append(header, "v"+strconv.Itoa(i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for j, t := range run.Times {
		rec := make([]string, 0, len(run.Field)+1)
		rec = append(rec, strconv.FormatFloat(t, 'g', -1, 64))
		for i := range run.Field {
			rec = append(rec, strconv.FormatFloat(run.Field[i][j], 'g', -1, 64))
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

func fieldPeak(field *mat.Dense) (float64, int) {
	v, t := field.Dims()
	peak, peakVertex := 0.0, 0
	for i := 0; i < v; i++ {
		for j := 0; j < t; j++ {
			if a := math.Abs(field.At(i, j)); a > peak {
				peak, peakVertex = a, i
			}
		}
	}
	return peak, peakVertex
}

func vertexTrace(field *mat.Dense, i int) []float64 {
	_, t := field.Dims()
	trace := make([]float64, t)
	mat.Row(trace, i, field)
	return trace
}
