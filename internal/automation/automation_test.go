package automation

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/asolade/outbreak/internal/model"
	"github.com/asolade/outbreak/internal/storage"
)

const scenarioYAML = `name: intervention-timing
description: baseline vs delayed intervention
steps:
  - variant: constant
    days: 30
  - variant: decaying
    days: 30
    max_step: 0.25
    params:
      tau: 10
`

func writeScenario(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(scenarioYAML), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadScenario(t *testing.T) {
	scenario, err := LoadScenario(writeScenario(t))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if scenario.Name != "intervention-timing" {
		t.Errorf("name = %s", scenario.Name)
	}
	if len(scenario.Steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(scenario.Steps))
	}
	if scenario.Steps[1].Params["tau"] != 10 {
		t.Errorf("tau override = %g, want 10", scenario.Steps[1].Params["tau"])
	}
}

func TestApplyOverride(t *testing.T) {
	p := model.NigeriaParams()

	if err := ApplyOverride(&p, "tau", 30); err != nil {
		t.Fatalf("override failed: %v", err)
	}
	if p.InterventionDay != 30 {
		t.Errorf("tau = %g, want 30", p.InterventionDay)
	}

	if err := ApplyOverride(&p, "r_nought", 2); err == nil {
		t.Error("expected error for unknown parameter")
	}
}

func TestRunScenario(t *testing.T) {
	scenario, err := LoadScenario(writeScenario(t))
	if err != nil {
		t.Fatal(err)
	}

	st := storage.New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	runIDs, err := RunScenario(context.Background(), scenario, st)
	if err != nil {
		t.Fatalf("scenario failed: %v", err)
	}
	if len(runIDs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runIDs))
	}

	meta, err := st.Load(runIDs[1])
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Params.InterventionDay != 10 {
		t.Errorf("stored tau = %g, want 10", meta.Params.InterventionDay)
	}
	if meta.Horizon != 30 {
		t.Errorf("horizon = %g, want 30", meta.Horizon)
	}
	if _, ok := meta.Metrics["deaths"]; !ok {
		t.Errorf("missing deaths metric: %v", meta.Metrics)
	}
}

func TestRunScenario_BadStep(t *testing.T) {
	cases := []struct {
		name string
		step ScenarioStep
	}{
		{"unknown variant", ScenarioStep{Variant: "stochastic"}},
		{"unknown integrator", ScenarioStep{Variant: "constant", Integrator: "leapfrog"}},
		{"unknown parameter", ScenarioStep{Variant: "constant", Params: map[string]float64{"mu": 1}}},
		{"bad parameter value", ScenarioStep{Variant: "constant", Params: map[string]float64{"fatality": 2}}},
	}

	st := storage.New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			scenario := &Scenario{Name: "bad", Steps: []ScenarioStep{tc.step}}
			if _, err := RunScenario(context.Background(), scenario, st); err == nil {
				t.Error("expected error")
			}
		})
	}
}
