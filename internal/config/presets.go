package config

import "github.com/asolade/outbreak/internal/model"

var Presets = map[string]map[string]*Config{
	"nigeria2014": {
		"constant": {
			Variant: "constant", Integrator: "rk4", MaxStep: 0.5, Horizon: 100,
			Params:    model.NigeriaParams(),
			InitState: InitStateConfig{Susceptible: 1e6, Infectious: 1},
		},
		"decaying": {
			Variant: "decaying", Integrator: "rk4", MaxStep: 0.5, Horizon: 100,
			Params:    model.NigeriaParams(),
			InitState: InitStateConfig{Susceptible: 1e6, Infectious: 1},
		},
	},
	"hypothetical": {
		"late-intervention": {
			Variant: "decaying", Integrator: "rk4", MaxStep: 0.5, Horizon: 200,
			Params:    lateIntervention(),
			InitState: InitStateConfig{Susceptible: 1e6, Infectious: 1},
		},
		"corpse-transmission": {
			Variant: "decaying", Integrator: "rk4", MaxStep: 0.25, Horizon: 100,
			Params:    corpseTransmission(),
			InitState: InitStateConfig{Susceptible: 1e6, Infectious: 1},
		},
	},
}

func lateIntervention() model.Params {
	p := model.NigeriaParams()
	p.InterventionDay = 30
	return p
}

func corpseTransmission() model.Params {
	p := model.NigeriaParams()
	p.CorpseBeta = 5e-8
	return p
}

func GetPreset(scenario, preset string) *Config {
	scenarioPresets, ok := Presets[scenario]
	if !ok {
		return nil
	}
	cfg, ok := scenarioPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(scenario string) []string {
	scenarioPresets, ok := Presets[scenario]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(scenarioPresets))
	for name := range scenarioPresets {
		names = append(names, name)
	}
	return names
}
