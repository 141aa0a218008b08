package integrators

import "github.com/asolade/outbreak/internal/epi"

type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(dyn epi.System, x epi.State, t float64, dt float64) epi.State {
	dx := dyn.Derivative(x, t)
	result := make(epi.State, len(x))
	for i := range x {
		result[i] = x[i] + dt*dx[i]
	}
	return result
}
