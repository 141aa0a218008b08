package integrators

import (
	"math"

	"github.com/asolade/outbreak/internal/epi"
)

// Dormand-Prince 5(4) tableau. dpNodes holds the stage times as fractions
// of dt, dpStage the stage coupling coefficients, dpOrder5/dpOrder4 the
// fifth- and embedded fourth-order solution weights. The seventh stage is
// evaluated at the accepted solution (FSAL), so its coupling row equals
// the fifth-order weights.
var (
	dpNodes = [7]float64{0, 1.0 / 5, 3.0 / 10, 4.0 / 5, 8.0 / 9, 1, 1}

	dpStage = [7][6]float64{
		{},
		{1.0 / 5},
		{3.0 / 40, 9.0 / 40},
		{44.0 / 45, -56.0 / 15, 32.0 / 9},
		{19372.0 / 6561, -25360.0 / 2187, 64448.0 / 6561, -212.0 / 729},
		{9017.0 / 3168, -355.0 / 33, 46732.0 / 5247, 49.0 / 176, -5103.0 / 18656},
		{35.0 / 384, 0, 500.0 / 1113, 125.0 / 192, -2187.0 / 6784, 11.0 / 84},
	}

	dpOrder5 = [7]float64{35.0 / 384, 0, 500.0 / 1113, 125.0 / 192, -2187.0 / 6784, 11.0 / 84, 0}
	dpOrder4 = [7]float64{5179.0 / 57600, 0, 7571.0 / 16695, 393.0 / 640, -92097.0 / 339200, 187.0 / 2100, 1.0 / 40}
)

// errFloor keeps the per-component error scale away from zero for
// compartments sitting at 0.
const errFloor = 1e-10

type RK45 struct {
	safety   float64
	minScale float64
	maxScale float64
}

func NewRK45() *RK45 {
	return &RK45{
		safety:   0.9,
		minScale: 0.2,
		maxScale: 10.0,
	}
}

func (r *RK45) Step(dyn epi.System, x epi.State, t, dt float64) epi.State {
	newX, _, _ := r.StepAdaptive(dyn, x, t, dt, 1e-6)
	return newX
}

// StepAdaptive takes one fifth-order step and returns the new state along
// with a suggested next step size derived from the embedded fourth-order
// error estimate. The step itself is always taken; the caller decides what
// to do with the suggestion.
func (r *RK45) StepAdaptive(dyn epi.System, x epi.State, t, dt, tol float64) (epi.State, float64, error) {
	n := len(x)

	var k [7]epi.State
	k[0] = dyn.Derivative(x, t)

	var xNew epi.State
	for s := 1; s < 7; s++ {
		stage := make(epi.State, n)
		for i := 0; i < n; i++ {
			acc := 0.0
			for j := 0; j < s; j++ {
				acc += dpStage[s][j] * k[j][i]
			}
			stage[i] = x[i] + dt*acc
		}
		if s == 6 {
			xNew = stage
		}
		k[s] = dyn.Derivative(stage, t+dpNodes[s]*dt)
	}

	// largest scaled component of the 5th-vs-4th order difference
	errNorm := 0.0
	for i := 0; i < n; i++ {
		diff := 0.0
		for s := 0; s < 7; s++ {
			diff += (dpOrder5[s] - dpOrder4[s]) * k[s][i]
		}
		scale := math.Abs(x[i]) + math.Abs(dt*k[0][i]) + errFloor
		errNorm = math.Max(errNorm, math.Abs(dt*diff)/scale)
	}

	ratio := errNorm / tol
	var dtNext float64
	switch {
	case ratio == 0:
		dtNext = dt * r.maxScale
	case ratio > 1:
		dtNext = dt * math.Max(r.minScale, r.safety*math.Pow(ratio, -0.25))
	default:
		dtNext = dt * math.Min(r.maxScale, r.safety*math.Pow(ratio, -0.2))
	}

	return xNew, dtNext, nil
}
