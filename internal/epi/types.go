package epi

import "math"

// Compartment indices into a State vector.
const (
	S = iota // susceptible
	E        // exposed (infected, not yet infectious)
	I        // infectious
	R        // recovered
	D        // cumulative deaths
	NumCompartments
)

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Sum returns the total population across all compartments. With no
// births or migration this quantity is conserved by the equations.
func (s State) Sum() float64 {
	total := 0.0
	for _, v := range s {
		total += v
	}
	return total
}

// MinComponent returns the smallest compartment value. Useful for
// detecting numerical undershoot below zero.
func (s State) MinComponent() float64 {
	if len(s) == 0 {
		return 0
	}
	min := s[0]
	for _, v := range s[1:] {
		if v < min {
			min = v
		}
	}
	return min
}

// System is the rate function of an epidemic model. Derivative must be
// pure: repeated calls with identical inputs return identical results.
type System interface {
	Derivative(x State, t float64) State
	StateDim() int
}

type Integrator interface {
	Step(dyn System, x State, t float64, dt float64) State
}

type AdaptiveIntegrator interface {
	Integrator
	StepAdaptive(dyn System, x State, t, dt, tol float64) (State, float64, error)
}

// Metric observes states along a trajectory and reduces them to a
// single summary value.
type Metric interface {
	Name() string
	Observe(x State, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(x State, t float64)
}
