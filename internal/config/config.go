package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/asolade/outbreak/internal/epi"
	"github.com/asolade/outbreak/internal/model"
)

const (
	DefaultVariant    = "decaying"
	DefaultIntegrator = "rk4"
	DefaultMaxStep    = 0.5
	DefaultHorizon    = 100
)

type Config struct {
	Variant    string          `yaml:"variant"`
	Integrator string          `yaml:"integrator"`
	MaxStep    float64         `yaml:"max_step"`
	Horizon    int             `yaml:"horizon"`
	Params     model.Params    `yaml:"params"`
	InitState  InitStateConfig `yaml:"init_state"`
}

type InitStateConfig struct {
	Susceptible float64 `yaml:"susceptible"`
	Exposed     float64 `yaml:"exposed"`
	Infectious  float64 `yaml:"infectious"`
	Recovered   float64 `yaml:"recovered"`
	Dead        float64 `yaml:"dead"`
}

func DefaultConfig() *Config {
	return &Config{
		Variant:    DefaultVariant,
		Integrator: DefaultIntegrator,
		MaxStep:    DefaultMaxStep,
		Horizon:    DefaultHorizon,
		Params:     model.NigeriaParams(),
		InitState: InitStateConfig{
			Susceptible: 1e6,
			Infectious:  1,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) GetInitState() epi.State {
	return epi.State{
		c.InitState.Susceptible,
		c.InitState.Exposed,
		c.InitState.Infectious,
		c.InitState.Recovered,
		c.InitState.Dead,
	}
}

// OutputTimes returns the daily output grid 0..Horizon.
func (c *Config) OutputTimes() []float64 {
	times := make([]float64, c.Horizon+1)
	for i := range times {
		times[i] = float64(i)
	}
	return times
}
