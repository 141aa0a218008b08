// Package automation runs scripted sequences of outbreak simulations.
package automation

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/asolade/outbreak/internal/epi"
	"github.com/asolade/outbreak/internal/integrators"
	"github.com/asolade/outbreak/internal/metrics"
	"github.com/asolade/outbreak/internal/model"
	"github.com/asolade/outbreak/internal/solve"
	"github.com/asolade/outbreak/internal/storage"
)

// Scenario defines a scripted simulation sequence.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is a single simulation in a scenario. Params overrides the
// Nigeria 2014 baseline field by field; omitted fields keep the baseline.
type ScenarioStep struct {
	Variant     string             `yaml:"variant"`
	Integrator  string             `yaml:"integrator"`
	Days        int                `yaml:"days"`
	MaxStep     float64            `yaml:"max_step"`
	Susceptible float64            `yaml:"susceptible"`
	Infectious  float64            `yaml:"infectious"`
	Params      map[string]float64 `yaml:"params"`
}

// LoadScenario loads a scenario from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}

	return &scenario, nil
}

// ApplyOverride sets one named parameter on p. Unknown names are an error
// so typos in scenario files do not silently run the baseline.
func ApplyOverride(p *model.Params, name string, v float64) error {
	switch name {
	case "beta0":
		p.Beta0 = v
	case "sigma":
		p.Sigma = v
	case "gamma":
		p.Gamma = v
	case "fatality":
		p.Fatality = v
	case "tau":
		p.InterventionDay = v
	case "decay":
		p.Decay = v
	case "corpse_beta":
		p.CorpseBeta = v
	default:
		return fmt.Errorf("unknown parameter: %s", name)
	}
	return nil
}

// RunScenario executes all steps in order, saving each run, and returns
// the stored run IDs.
func RunScenario(ctx context.Context, scenario *Scenario, st *storage.Store) ([]string, error) {
	runIDs := make([]string, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		fmt.Printf("running step %d/%d: %s\n", i+1, len(scenario.Steps), step.Variant)

		p := model.NigeriaParams()
		for name, v := range step.Params {
			if err := ApplyOverride(&p, name, v); err != nil {
				return runIDs, fmt.Errorf("step %d: %w", i+1, err)
			}
		}
		if err := p.Validate(); err != nil {
			return runIDs, fmt.Errorf("step %d: %w", i+1, err)
		}

		tx := model.FromParams(step.Variant, p)
		if tx == nil {
			return runIDs, fmt.Errorf("step %d: unknown transmission variant: %s", i+1, step.Variant)
		}

		if step.Integrator == "" {
			step.Integrator = "rk4"
		}

		var integ epi.Integrator
		switch step.Integrator {
		case "euler":
			integ = integrators.NewEuler()
		case "rk4":
			integ = integrators.NewRK4()
		case "rk45":
			integ = integrators.NewRK45()
		default:
			return runIDs, fmt.Errorf("step %d: unknown integrator: %s", i+1, step.Integrator)
		}

		days := step.Days
		if days <= 0 {
			days = 100
		}
		maxStep := step.MaxStep
		if maxStep <= 0 {
			maxStep = 0.5
		}
		s0 := step.Susceptible
		if s0 <= 0 {
			s0 = 1e6
		}
		i0 := step.Infectious
		if i0 <= 0 {
			i0 = 1
		}

		solver := solve.New(model.NewSEIRD(p, tx), integ)
		for _, m := range metrics.Defaults() {
			solver.AddMetric(m)
		}

		x0 := epi.State{s0, 0, i0, 0, 0}
		traj, err := solver.Run(ctx, x0, solve.DailyTimes(days), solve.Config{MaxStep: maxStep})
		if err != nil {
			return runIDs, fmt.Errorf("step %d: %w", i+1, err)
		}

		runID, err := st.Save(step.Variant, step.Integrator, maxStep, p, traj)
		if err != nil {
			return runIDs, fmt.Errorf("step %d: %w", i+1, err)
		}
		runIDs = append(runIDs, runID)
	}

	return runIDs, nil
}
