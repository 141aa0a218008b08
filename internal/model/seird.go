package model

import "github.com/asolade/outbreak/internal/epi"

// SEIRD is the five-compartment Ebola model. The equation body is
// identical for every transmission variant; the variant only changes
// beta(t).
//
//	dS/dt = -beta(t)*S*I - a*S*D
//	dE/dt =  beta(t)*S*I + a*S*D - sigma*E
//	dI/dt =  sigma*E - gamma*I
//	dR/dt = (1-f)*gamma*I
//	dD/dt =  f*gamma*I
type SEIRD struct {
	Params Params
	Tx     Transmission
}

func NewSEIRD(p Params, tx Transmission) *SEIRD {
	return &SEIRD{Params: p, Tx: tx}
}

func (m *SEIRD) StateDim() int { return epi.NumCompartments }

// Derivative computes the instantaneous rates. Pure: no clamping, no
// side effects. Slightly negative compartments under large steps are
// the solver's concern, not this function's.
func (m *SEIRD) Derivative(x epi.State, t float64) epi.State {
	p := m.Params
	force := m.Tx.Beta(t)*x[epi.S]*x[epi.I] + p.CorpseBeta*x[epi.S]*x[epi.D]
	exit := p.Gamma * x[epi.I]

	return epi.State{
		-force,
		force - p.Sigma*x[epi.E],
		p.Sigma*x[epi.E] - exit,
		(1 - p.Fatality) * exit,
		p.Fatality * exit,
	}
}

// DefaultState is the canonical outbreak seed: one infectious case in a
// fully susceptible population of one million.
func (m *SEIRD) DefaultState() epi.State {
	return epi.State{1e6, 0, 1, 0, 0}
}

func (m *SEIRD) GetParams() map[string]float64 {
	return map[string]float64{
		"beta0":       m.Params.Beta0,
		"sigma":       m.Params.Sigma,
		"gamma":       m.Params.Gamma,
		"fatality":    m.Params.Fatality,
		"tau":         m.Params.InterventionDay,
		"decay":       m.Params.Decay,
		"corpse_beta": m.Params.CorpseBeta,
	}
}

func (m *SEIRD) SetParam(name string, v float64) {
	switch name {
	case "beta0":
		m.Params.Beta0 = v
		switch tx := m.Tx.(type) {
		case *ConstantBeta:
			tx.Beta0 = v
		case *DecayingBeta:
			tx.Beta0 = v
		}
	case "sigma":
		m.Params.Sigma = v
	case "gamma":
		m.Params.Gamma = v
	case "fatality":
		m.Params.Fatality = v
	case "tau":
		m.Params.InterventionDay = v
		if tx, ok := m.Tx.(*DecayingBeta); ok {
			tx.Tau = v
		}
	case "decay":
		m.Params.Decay = v
		if tx, ok := m.Tx.(*DecayingBeta); ok {
			tx.K = v
		}
	case "corpse_beta":
		m.Params.CorpseBeta = v
	}
}
