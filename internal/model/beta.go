package model

import "math"

// Transmission is the time-varying transmission-rate term beta(t).
// Implementations must be continuous functions of t, since integrators
// evaluate the rate function at sub-step times.
type Transmission interface {
	Beta(t float64) float64
	Name() string
}

// ConstantBeta keeps transmission at the baseline rate for all t.
type ConstantBeta struct {
	Beta0 float64
}

func NewConstantBeta(beta0 float64) *ConstantBeta {
	return &ConstantBeta{Beta0: beta0}
}

func (c *ConstantBeta) Beta(t float64) float64 { return c.Beta0 }
func (c *ConstantBeta) Name() string           { return "constant" }

// DecayingBeta holds the baseline rate until the intervention day, then
// decays it exponentially: beta0 * exp(-k*(t-tau)) for t >= tau.
// Continuous at tau: Beta(tau) == Beta0.
type DecayingBeta struct {
	Beta0 float64
	Tau   float64
	K     float64
}

func NewDecayingBeta(beta0, tau, k float64) *DecayingBeta {
	return &DecayingBeta{Beta0: beta0, Tau: tau, K: k}
}

func (d *DecayingBeta) Beta(t float64) float64 {
	if t < d.Tau {
		return d.Beta0
	}
	return d.Beta0 * math.Exp(-d.K*(t-d.Tau))
}

func (d *DecayingBeta) Name() string { return "decaying" }

// FromParams constructs the named transmission variant from a parameter
// set. Returns nil for an unknown variant name.
func FromParams(variant string, p Params) Transmission {
	switch variant {
	case "constant":
		return NewConstantBeta(p.Beta0)
	case "decaying":
		return NewDecayingBeta(p.Beta0, p.InterventionDay, p.Decay)
	default:
		return nil
	}
}
