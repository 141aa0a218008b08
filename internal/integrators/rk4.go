package integrators

import "github.com/asolade/outbreak/internal/epi"

// RK4 is the classical fourth-order Runge-Kutta method. Step holds no
// state between calls, so one instance may serve concurrent solver runs.
type RK4 struct{}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Step(dyn epi.System, x epi.State, t, dt float64) epi.State {
	n := len(x)

	k1 := dyn.Derivative(x, t)

	mid := make(epi.State, n)
	for i := 0; i < n; i++ {
		mid[i] = x[i] + dt*0.5*k1[i]
	}
	k2 := dyn.Derivative(mid, t+dt*0.5)

	for i := 0; i < n; i++ {
		mid[i] = x[i] + dt*0.5*k2[i]
	}
	k3 := dyn.Derivative(mid, t+dt*0.5)

	for i := 0; i < n; i++ {
		mid[i] = x[i] + dt*k3[i]
	}
	k4 := dyn.Derivative(mid, t+dt)

	result := make(epi.State, n)
	dt6 := dt / 6.0
	for i := 0; i < n; i++ {
		result[i] = x[i] + dt6*(k1[i]+2*k2[i]+2*k3[i]+k4[i])
	}

	return result
}
