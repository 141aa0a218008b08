package integrators

import (
	"math"
	"testing"

	"github.com/asolade/outbreak/internal/epi"
)

// Harmonic oscillator with known analytic solution, used to check
// integration accuracy independent of any epidemic model.
type oscillator struct{}

func (o *oscillator) Derivative(x epi.State, t float64) epi.State {
	return epi.State{x[1], -x[0]}
}

func (o *oscillator) StateDim() int { return 2 }

func TestRK4Accuracy(t *testing.T) {
	dyn := &oscillator{}
	integ := NewRK4()

	x := epi.State{1.0, 0.0}
	dt := 0.01
	steps := 100

	for i := 0; i < steps; i++ {
		x = integ.Step(dyn, x, float64(i)*dt, dt)
	}

	expectedX := math.Cos(float64(steps) * dt)
	expectedV := -math.Sin(float64(steps) * dt)

	if math.Abs(x[0]-expectedX) > 1e-4 {
		t.Errorf("position error too large: got %.6f, expected %.6f", x[0], expectedX)
	}

	if math.Abs(x[1]-expectedV) > 1e-4 {
		t.Errorf("velocity error too large: got %.6f, expected %.6f", x[1], expectedV)
	}
}

func TestRK4Deterministic(t *testing.T) {
	dyn := &oscillator{}
	integ := NewRK4()

	x0 := epi.State{1.0, 0.0}
	a := integ.Step(dyn, x0, 0, 0.5)
	b := integ.Step(dyn, x0, 0, 0.5)

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("repeated Step differs at %d: %g vs %g", i, a[i], b[i])
		}
	}
}

func TestEulerFirstOrder(t *testing.T) {
	// Exponential decay x' = -x: Euler with a coarse step should still
	// land within first-order error of exp(-1).
	decay := &expDecay{}
	integ := NewEuler()

	x := epi.State{1.0}
	dt := 0.001
	for i := 0; i < 1000; i++ {
		x = integ.Step(decay, x, float64(i)*dt, dt)
	}

	if math.Abs(x[0]-math.Exp(-1)) > 1e-3 {
		t.Errorf("got %.6f, expected ~%.6f", x[0], math.Exp(-1))
	}
}

type expDecay struct{}

func (d *expDecay) Derivative(x epi.State, t float64) epi.State {
	return epi.State{-x[0]}
}

func (d *expDecay) StateDim() int { return 1 }
