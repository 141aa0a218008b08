package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/asolade/outbreak/internal/analysis"
	"github.com/asolade/outbreak/internal/automation"
	"github.com/asolade/outbreak/internal/config"
	"github.com/asolade/outbreak/internal/epi"
	"github.com/asolade/outbreak/internal/export"
	"github.com/asolade/outbreak/internal/integrators"
	"github.com/asolade/outbreak/internal/metrics"
	"github.com/asolade/outbreak/internal/model"
	"github.com/asolade/outbreak/internal/optim"
	"github.com/asolade/outbreak/internal/solve"
	"github.com/asolade/outbreak/internal/storage"
	"github.com/asolade/outbreak/internal/viz"
)

var (
	dataDir    string
	variant    string
	integrator string
	maxStep    float64
	horizon    int
	// Epidemic parameters
	beta0      float64
	sigma      float64
	gammaRate  float64
	fatality   float64
	tau        float64
	decay      float64
	corpseBeta float64
	// Initial conditions
	s0 float64
	i0 float64
	// Config file and preset selection
	configFile string
	scenario   string
	preset     string
	// Adaptive stepping
	adaptiveStep bool
	tolerance    float64
	// Plot options
	withSusceptible bool
	// Sweep options
	sweepParam     string
	sweepFrom      float64
	sweepTo        float64
	sweepSteps     int
	sweepObjective string
	// SVG export
	svgOut string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "outbreak",
		Short: "SEIRD epidemic simulation lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".outbreak", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run an outbreak simulation",
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&scenario, "scenario", "nigeria2014", "preset scenario")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "compare transmission variants on the same outbreak",
		RunE:  compareVariants,
	}
	addSimFlags(compareCmd)

	compareIntegCmd := &cobra.Command{
		Use:   "compare-integrators [integrator1] [integrator2] ...",
		Short: "compare integrators on the same outbreak",
		Args:  cobra.MinimumNArgs(2),
		RunE:  compareIntegrators,
	}
	addSimFlags(compareIntegCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().BoolVar(&withSusceptible, "susceptible", false, "include the susceptible curve")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run the outbreak with live visualization",
		RunE:  runLive,
	}
	addSimFlags(liveCmd)

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [scenario]",
		Short: "list available presets for a scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for scenario: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "estimate growth rate and R0 from a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "grid search one parameter for the lowest outcome metric",
		RunE:  sweepParameter,
	}
	addSimFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "tau", "parameter to sweep (beta0, sigma, gamma, fatality, tau, decay, corpse_beta)")
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 1, "sweep range start")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 30, "sweep range end")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 10, "grid points")
	sweepCmd.Flags().StringVar(&sweepObjective, "objective", "deaths", "metric to minimize")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export run data to an SVG chart",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&svgOut, "out", "", "output file (default stdout)")
	exportSVGCmd.Flags().BoolVar(&withSusceptible, "susceptible", false, "include the susceptible curve")

	batchCmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "run a scripted scenario file",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}

	rootCmd.AddCommand(runCmd, compareCmd, compareIntegCmd, listCmd, plotCmd, liveCmd, exportCmd,
		exportCSVCmd, exportJSONCmd, exportSVGCmd, presetsCmd, analyzeCmd, sweepCmd, batchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	def := model.NigeriaParams()
	cmd.Flags().StringVar(&variant, "variant", config.DefaultVariant, "transmission variant (constant, decaying)")
	cmd.Flags().StringVar(&integrator, "integrator", config.DefaultIntegrator, "integrator (euler, rk4, rk45)")
	cmd.Flags().Float64Var(&maxStep, "max-step", config.DefaultMaxStep, "maximum internal step (days)")
	cmd.Flags().IntVar(&horizon, "days", config.DefaultHorizon, "simulation horizon (days)")
	cmd.Flags().Float64Var(&beta0, "beta0", def.Beta0, "baseline transmission rate")
	cmd.Flags().Float64Var(&sigma, "sigma", def.Sigma, "incubation rate (1/latent period)")
	cmd.Flags().Float64Var(&gammaRate, "gamma", def.Gamma, "removal rate (1/infectious period)")
	cmd.Flags().Float64Var(&fatality, "fatality", def.Fatality, "case fatality fraction")
	cmd.Flags().Float64Var(&tau, "tau", def.InterventionDay, "intervention day")
	cmd.Flags().Float64Var(&decay, "decay", def.Decay, "post-intervention decay rate")
	cmd.Flags().Float64Var(&corpseBeta, "corpse-beta", def.CorpseBeta, "corpse transmission rate")
	cmd.Flags().Float64Var(&s0, "s0", 1e6, "initial susceptible population")
	cmd.Flags().Float64Var(&i0, "i0", 1, "initial infectious count")
	cmd.Flags().BoolVar(&adaptiveStep, "adaptive", false, "let the integrator's error estimate pick step sizes (rk45)")
	cmd.Flags().Float64Var(&tolerance, "tol", 1e-6, "adaptive error tolerance")
}

// solveConfig builds the solver options from a resolved run config plus
// the adaptive flags.
func solveConfig(cfg *config.Config) solve.Config {
	return solve.Config{MaxStep: cfg.MaxStep, Adaptive: adaptiveStep, Tol: tolerance}
}

func getIntegrator(name string) (epi.Integrator, error) {
	switch name {
	case "euler":
		return integrators.NewEuler(), nil
	case "rk4":
		return integrators.NewRK4(), nil
	case "rk45":
		return integrators.NewRK45(), nil
	}
	return nil, fmt.Errorf("unknown integrator: %s (available: euler, rk4, rk45)", name)
}

// flagParams assembles a parameter set from the sim flags.
func flagParams() model.Params {
	return model.Params{
		Beta0:           beta0,
		Sigma:           sigma,
		Gamma:           gammaRate,
		Fatality:        fatality,
		InterventionDay: tau,
		Decay:           decay,
		CorpseBeta:      corpseBeta,
	}
}

// resolveConfig merges preset, config file, and flags. CLI flags override
// the config file; the config file overrides the preset.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		pc := config.GetPreset(scenario, preset)
		if pc == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(scenario))
		}
		*cfg = *pc
	}

	if configFile != "" {
		fc, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		*cfg = *fc
	}

	if cmd.Flags().Changed("variant") {
		cfg.Variant = variant
	}
	if cmd.Flags().Changed("integrator") {
		cfg.Integrator = integrator
	}
	if cmd.Flags().Changed("max-step") {
		cfg.MaxStep = maxStep
	}
	if cmd.Flags().Changed("days") {
		cfg.Horizon = horizon
	}
	if cmd.Flags().Changed("beta0") {
		cfg.Params.Beta0 = beta0
	}
	if cmd.Flags().Changed("sigma") {
		cfg.Params.Sigma = sigma
	}
	if cmd.Flags().Changed("gamma") {
		cfg.Params.Gamma = gammaRate
	}
	if cmd.Flags().Changed("fatality") {
		cfg.Params.Fatality = fatality
	}
	if cmd.Flags().Changed("tau") {
		cfg.Params.InterventionDay = tau
	}
	if cmd.Flags().Changed("decay") {
		cfg.Params.Decay = decay
	}
	if cmd.Flags().Changed("corpse-beta") {
		cfg.Params.CorpseBeta = corpseBeta
	}
	if cmd.Flags().Changed("s0") {
		cfg.InitState.Susceptible = s0
	}
	if cmd.Flags().Changed("i0") {
		cfg.InitState.Infectious = i0
	}

	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Params.Validate(); err != nil {
		return err
	}

	tx := model.FromParams(cfg.Variant, cfg.Params)
	if tx == nil {
		return fmt.Errorf("unknown transmission variant: %s", cfg.Variant)
	}

	integ, err := getIntegrator(cfg.Integrator)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	solver := solve.New(model.NewSEIRD(cfg.Params, tx), integ)
	for _, m := range metrics.Defaults() {
		solver.AddMetric(m)
	}

	fmt.Printf("running %s outbreak (%d days, R0=%.2f)...\n",
		cfg.Variant, cfg.Horizon, cfg.Params.R0(cfg.InitState.Susceptible))
	start := time.Now()

	traj, err := solver.Run(context.Background(), cfg.GetInitState(), cfg.OutputTimes(), solveConfig(cfg))
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(cfg.Variant, cfg.Integrator, cfg.MaxStep, cfg.Params, traj)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("samples: %d (internal steps: %d)\n", traj.Len(), traj.StepsTaken)
	fmt.Printf("conservation drift: %.3e\n", traj.Drift)
	fmt.Println("\nmetrics:")
	for name, val := range traj.Metrics {
		fmt.Printf("  %s: %.4f\n", name, val)
	}

	return nil
}

func compareVariants(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Params.Validate(); err != nil {
		return err
	}

	integ, err := getIntegrator(cfg.Integrator)
	if err != nil {
		return err
	}

	variants := []string{"constant", "decaying"}
	results, err := solve.RunVariants(context.Background(), cfg.Params, integ,
		cfg.GetInitState(), cfg.OutputTimes(), solveConfig(cfg), variants...)
	if err != nil {
		return err
	}

	fmt.Printf("constant vs. time-decaying transmission (%d days, intervention at day %.0f)\n\n",
		cfg.Horizon, cfg.Params.InterventionDay)

	viz.PlotComparison(os.Stdout, epi.I, results)
	viz.PlotComparison(os.Stdout, epi.D, results)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VARIANT\tFINAL_SUSCEPTIBLE\tFINAL_DEATHS\tPEAK_INFECTIOUS")
	for _, res := range results {
		peak := 0.0
		for _, v := range res.Trajectory.Series(epi.I) {
			if v > peak {
				peak = v
			}
		}
		final := res.Trajectory.Final()
		fmt.Fprintf(w, "%s\t%.0f\t%.1f\t%.1f\n", res.Variant, final.Susceptible, final.Dead, peak)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	constFinal := results[0].Trajectory.Final()
	decayFinal := results[1].Trajectory.Final()
	fmt.Printf("\ndeaths averted by intervention: %.1f\n", constFinal.Dead-decayFinal.Dead)

	return nil
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Params.Validate(); err != nil {
		return err
	}

	tx := model.FromParams(cfg.Variant, cfg.Params)
	if tx == nil {
		return fmt.Errorf("unknown transmission variant: %s", cfg.Variant)
	}

	fmt.Printf("comparing integrators on the %s variant (%d days, max step %.2f)\n\n",
		cfg.Variant, cfg.Horizon, cfg.MaxStep)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEGRATOR\tFINAL_DEATHS\tDRIFT\tSTEPS\tTIME_MS")

	for _, name := range args {
		integ, err := getIntegrator(name)
		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\n", name, err)
			continue
		}

		solver := solve.New(model.NewSEIRD(cfg.Params, tx), integ)

		start := time.Now()
		traj, err := solver.Run(context.Background(), cfg.GetInitState(), cfg.OutputTimes(), solveConfig(cfg))
		elapsed := time.Since(start)

		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\n", name, err)
			continue
		}

		fmt.Fprintf(w, "%s\t%.2f\t%.2e\t%d\t%.2f\n",
			name, traj.Final().Dead, traj.Drift, traj.StepsTaken,
			float64(elapsed.Microseconds())/1000)
	}

	return w.Flush()
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
	fmt.Fprintln(w, "ID\tVARIANT\tTIME\tDAYS\tMAX_STEP\tINTEG\tDEATHS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.0f\t%.2f\t%s\t%.1f\n",
			run.ID,
			run.Variant,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Horizon,
			run.MaxStep,
			run.Integrator,
			run.Metrics["deaths"],
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

	traj, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}

	if traj.Len() == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("variant: %s\n", meta.Variant)
	fmt.Printf("samples: %d\n\n", traj.Len())

	// The susceptible curve dwarfs the epidemic compartments; leave it
	// out unless asked for.
	viz.PlotCompartments(os.Stdout, traj, viz.PlotOptions{OmitSusceptible: !withSusceptible})

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Params.Validate(); err != nil {
		return err
	}

	tx := model.FromParams(cfg.Variant, cfg.Params)
	if tx == nil {
		return fmt.Errorf("unknown transmission variant: %s", cfg.Variant)
	}

	integ, err := getIntegrator(cfg.Integrator)
	if err != nil {
		return err
	}

	m := viz.NewModel(model.NewSEIRD(cfg.Params, tx), integ, cfg.GetInitState(), cfg.MaxStep)

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	traj, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	if traj.Len() == 0 {
		return fmt.Errorf("no data to export")
	}
	return storage.ExportCSV(os.Stdout, traj)
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	traj, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	if traj.Len() < 3 {
		return fmt.Errorf("not enough data to analyze")
	}

	times, infectious := analysis.GrowthWindow(traj.Times, traj.Series(epi.I))
	r, err := analysis.GrowthRate(times, infectious)
	if err != nil {
		return err
	}

	fmt.Printf("growth analysis: %s\n", meta.ID)
	fmt.Printf("variant: %s\n", meta.Variant)
	fmt.Printf("fit window: day %.0f to %.0f (%d samples)\n\n", times[0], times[len(times)-1], len(times))

	fmt.Printf("exponential growth rate: %.4f /day\n", r)
	fmt.Printf("doubling time: %.2f days\n", analysis.DoublingTime(r))
	fmt.Printf("implied R0: %.2f\n", analysis.ImpliedR0(r, meta.Params.Sigma, meta.Params.Gamma))
	fmt.Printf("parametric R0 (beta0*S0/gamma): %.2f\n", meta.Params.R0(traj.States[0][epi.S]))

	return nil
}

func sweepParameter(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	integ, err := getIntegrator(cfg.Integrator)
	if err != nil {
		return err
	}

	search := optim.NewGridSearch([]string{sweepParam}, [][]float64{optim.Range(sweepFrom, sweepTo, sweepSteps)})

	run := func(ctx context.Context, overrides map[string]float64) (map[string]float64, error) {
		p := cfg.Params
		for name, v := range overrides {
			if err := automation.ApplyOverride(&p, name, v); err != nil {
				return nil, err
			}
		}
		if err := p.Validate(); err != nil {
			return nil, err
		}

		tx := model.FromParams(cfg.Variant, p)
		if tx == nil {
			return nil, fmt.Errorf("unknown transmission variant: %s", cfg.Variant)
		}

		solver := solve.New(model.NewSEIRD(p, tx), integ)
		for _, m := range metrics.Defaults() {
			solver.AddMetric(m)
		}

		traj, err := solver.Run(ctx, cfg.GetInitState(), cfg.OutputTimes(), solveConfig(cfg))
		if err != nil {
			return nil, err
		}
		return traj.Metrics, nil
	}

	fmt.Printf("sweeping %s over [%.2f, %.2f] (%d points) to minimize %s...\n",
		sweepParam, sweepFrom, sweepTo, sweepSteps, sweepObjective)

	bestParams, bestVal, err := search.Search(context.Background(), run, sweepObjective)
	if err != nil {
		return err
	}
	if bestParams == nil {
		return fmt.Errorf("no grid point produced a valid run")
	}

	fmt.Printf("\nbest %s: %.4f\n", sweepObjective, bestVal)
	for name, v := range bestParams {
		fmt.Printf("  %s = %.4f\n", name, v)
	}

	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	traj, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	if traj.Len() < 2 {
		return fmt.Errorf("no data to export")
	}

	compartments := []int{epi.E, epi.I, epi.R, epi.D}
	if withSusceptible {
		compartments = append([]int{epi.S}, compartments...)
	}

	svg := export.TrajectorySVG(traj, compartments, 800, 400)

	if svgOut == "" {
		fmt.Println(svg)
		return nil
	}
	return os.WriteFile(svgOut, []byte(svg), 0644)
}

func runBatch(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("scenario: %s\n", scenario.Name)
	if scenario.Description != "" {
		fmt.Println(scenario.Description)
	}

	runIDs, err := automation.RunScenario(context.Background(), scenario, st)
	if err != nil {
		return err
	}

	fmt.Printf("\ncompleted %d runs:\n", len(runIDs))
	for _, id := range runIDs {
		fmt.Printf("  %s\n", id)
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	traj, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, meta, traj)
}
