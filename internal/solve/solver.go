package solve

import (
	"context"
	"math"

	"github.com/asolade/outbreak/internal/epi"
)

// Config controls the internal integration grid.
type Config struct {
	// MaxStep caps the internal step size in days. With fixed stepping the
	// solver subdivides each output interval into equal steps no larger
	// than this, so every requested output time lands exactly on a step
	// boundary.
	MaxStep float64

	// Adaptive drives an AdaptiveIntegrator by its embedded error
	// estimate, with steps clamped to land exactly on each output time.
	// Ignored when the integrator has no adaptive form.
	Adaptive bool

	// Tol is the per-step error tolerance for adaptive stepping.
	Tol float64

	// MinStep aborts an adaptive run whose suggested step falls below it.
	MinStep float64
}

func DefaultConfig() Config {
	return Config{MaxStep: 0.5, Tol: 1e-6, MinStep: 1e-9}
}

// Solver advances an epidemic system over a sequence of requested output
// times. Run keeps all per-run state local, so a Solver without attached
// metrics may be shared across concurrent runs; metrics accumulate between
// Reset calls and make a Solver single-run at a time.
type Solver struct {
	dyn       epi.System
	integ     epi.Integrator
	metrics   []epi.Metric
	observers []epi.Observer
}

func New(dyn epi.System, integ epi.Integrator) *Solver {
	return &Solver{
		dyn:     dyn,
		integ:   integ,
		metrics: make([]epi.Metric, 0),
	}
}

func (s *Solver) AddMetric(m epi.Metric) { s.metrics = append(s.metrics, m) }

// AddObserver registers a callback invoked after every internal step,
// including steps between output times.
func (s *Solver) AddObserver(o epi.Observer) { s.observers = append(s.observers, o) }

// Run performs a single forward sweep from t=0 through the last requested
// time and returns one state per requested time. Inputs are never mutated.
// Invalid inputs and numerical instability abort the run with no
// trajectory.
func (s *Solver) Run(ctx context.Context, x0 epi.State, times []float64, cfg Config) (*Trajectory, error) {
	if err := validateTimes(times); err != nil {
		return nil, err
	}
	if err := s.validateState(x0); err != nil {
		return nil, err
	}
	if cfg.MaxStep <= 0 {
		cfg.MaxStep = DefaultConfig().MaxStep
	}
	if cfg.Tol <= 0 {
		cfg.Tol = DefaultConfig().Tol
	}
	if cfg.MinStep <= 0 {
		cfg.MinStep = DefaultConfig().MinStep
	}

	adaptive, ok := s.integ.(epi.AdaptiveIntegrator)
	useAdaptive := cfg.Adaptive && ok

	for _, m := range s.metrics {
		m.Reset()
	}

	traj := &Trajectory{
		Times:   make([]float64, 0, len(times)),
		States:  make([]epi.State, 0, len(times)),
		Metrics: make(map[string]float64),
	}

	x := x0.Clone()
	t := 0.0
	initialTotal := x.Sum()
	steps := 0

	for _, target := range times {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		var err error
		if useAdaptive {
			x, steps, err = s.advanceAdaptive(adaptive, x, t, target, steps, cfg)
		} else {
			x, steps, err = s.advanceFixed(x, t, target, steps, cfg)
		}
		if err != nil {
			return nil, err
		}
		// land exactly on the requested time
		t = target

		for _, m := range s.metrics {
			m.Observe(x, t)
		}

		traj.Times = append(traj.Times, target)
		traj.States = append(traj.States, x.Clone())
	}

	traj.StepsTaken = steps
	if initialTotal != 0 {
		traj.Drift = math.Abs(x.Sum()-initialTotal) / math.Abs(initialTotal)
	}
	for _, m := range s.metrics {
		traj.Metrics[m.Name()] = m.Value()
	}

	return traj, nil
}

// advanceFixed subdivides [t, target] into equal steps no larger than
// MaxStep.
func (s *Solver) advanceFixed(x epi.State, t, target float64, steps int, cfg Config) (epi.State, int, error) {
	span := target - t
	if span <= 0 {
		return x, steps, nil
	}

	n := int(math.Ceil(span/cfg.MaxStep - 1e-12))
	if n < 1 {
		n = 1
	}
	dt := span / float64(n)

	for i := 0; i < n; i++ {
		next := s.integ.Step(s.dyn, x, t, dt)
		steps++
		if !next.IsValid() {
			return nil, steps, &epi.SolveError{Step: steps, Time: t, State: x, Wrapped: epi.ErrUnstable}
		}
		x = next
		t += dt
		for _, o := range s.observers {
			o.OnStep(x, t)
		}
	}
	return x, steps, nil
}

// advanceAdaptive lets the integrator's error estimate choose step sizes
// within [t, target], clamping the final step to hit target exactly.
func (s *Solver) advanceAdaptive(integ epi.AdaptiveIntegrator, x epi.State, t, target float64, steps int, cfg Config) (epi.State, int, error) {
	dt := math.Min(cfg.MaxStep, target-t)

	for target-t > 1e-12 {
		if dt > target-t {
			dt = target - t
		}

		next, dtNext, err := integ.StepAdaptive(s.dyn, x, t, dt, cfg.Tol)
		steps++
		if err != nil {
			return nil, steps, &epi.SolveError{Step: steps, Time: t, State: x, Wrapped: err}
		}
		if !next.IsValid() {
			return nil, steps, &epi.SolveError{Step: steps, Time: t, State: x, Wrapped: epi.ErrUnstable}
		}

		x = next
		t += dt
		for _, o := range s.observers {
			o.OnStep(x, t)
		}

		if dtNext < cfg.MinStep {
			return nil, steps, &epi.SolveError{Step: steps, Time: t, State: x, Wrapped: epi.ErrStepTooSmall}
		}
		dt = math.Min(dtNext, cfg.MaxStep)
	}
	return x, steps, nil
}

func validateTimes(times []float64) error {
	if len(times) == 0 {
		return epi.ErrInvalidTimes
	}
	if times[0] < 0 {
		return epi.ErrInvalidTimes
	}
	for i := 1; i < len(times); i++ {
		if times[i] <= times[i-1] {
			return epi.ErrInvalidTimes
		}
	}
	return nil
}

func (s *Solver) validateState(x0 epi.State) error {
	if len(x0) != s.dyn.StateDim() {
		return epi.ErrDimensionMismatch
	}
	if !x0.IsValid() {
		return epi.ErrUnstable
	}
	for _, v := range x0 {
		if v < 0 {
			return epi.ErrNegativeState
		}
	}
	return nil
}

// DailyTimes returns the default output grid 0..horizon at one-day spacing.
func DailyTimes(horizon int) []float64 {
	times := make([]float64, horizon+1)
	for i := range times {
		times[i] = float64(i)
	}
	return times
}
