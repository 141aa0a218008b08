package model

import (
	"fmt"

	"github.com/asolade/outbreak/internal/epi"
)

// Params holds the coefficients of one SEIRD run. Rates are per day.
type Params struct {
	Beta0           float64 `yaml:"beta0" json:"beta0"`                       // baseline transmission rate
	Sigma           float64 `yaml:"sigma" json:"sigma"`                       // incubation rate (1/sigma = mean incubation period)
	Gamma           float64 `yaml:"gamma" json:"gamma"`                       // recovery-or-death rate
	Fatality        float64 `yaml:"fatality" json:"fatality"`                 // case fatality fraction, in [0,1]
	InterventionDay float64 `yaml:"intervention_day" json:"intervention_day"` // day control measures begin (tau)
	Decay           float64 `yaml:"decay" json:"decay"`                       // post-intervention transmission decay rate (k)
	CorpseBeta      float64 `yaml:"corpse_beta" json:"corpse_beta"`           // environmental/corpse transmission coefficient (a)
}

// NigeriaParams returns the published fit for the 2014 Nigeria Ebola
// outbreak (Althaus et al.).
func NigeriaParams() Params {
	return Params{
		Beta0:           1.22e-6,
		Sigma:           1.0 / 9.31,
		Gamma:           1.0 / 7.41,
		Fatality:        0.39,
		InterventionDay: 3,
		Decay:           0.19,
		CorpseBeta:      0,
	}
}

// Validate reports parameter errors before any integration work begins.
func (p Params) Validate() error {
	if p.Beta0 <= 0 {
		return fmt.Errorf("beta0: %w", epi.ErrMissingParameter)
	}
	if p.Sigma <= 0 {
		return fmt.Errorf("sigma: %w", epi.ErrMissingParameter)
	}
	if p.Gamma <= 0 {
		return fmt.Errorf("gamma: %w", epi.ErrMissingParameter)
	}
	if p.Fatality < 0 || p.Fatality > 1 {
		return fmt.Errorf("fatality %.3f not in [0,1]: %w", p.Fatality, epi.ErrParameterBounds)
	}
	if p.InterventionDay < 0 {
		return fmt.Errorf("intervention_day %.3f negative: %w", p.InterventionDay, epi.ErrParameterBounds)
	}
	if p.Decay < 0 {
		return fmt.Errorf("decay %.3f negative: %w", p.Decay, epi.ErrParameterBounds)
	}
	if p.CorpseBeta < 0 {
		return fmt.Errorf("corpse_beta %.3f negative: %w", p.CorpseBeta, epi.ErrParameterBounds)
	}
	return nil
}

// R0 returns the basic reproduction number for an initial susceptible
// population s0.
func (p Params) R0(s0 float64) float64 {
	return p.Beta0 * s0 / p.Gamma
}
