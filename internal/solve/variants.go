package solve

import (
	"context"
	"fmt"
	"sync"

	"github.com/asolade/outbreak/internal/epi"
	"github.com/asolade/outbreak/internal/model"
)

// VariantResult pairs a transmission-variant name with its trajectory.
type VariantResult struct {
	Variant    string
	Trajectory *Trajectory
}

// RunVariants integrates the same parameter set and initial state under
// each named transmission variant, one goroutine per variant. The runs
// share only the integrator, which must be stateless (all integrators in
// this module are); each run gets its own model and solver.
func RunVariants(ctx context.Context, p model.Params, integ epi.Integrator, x0 epi.State, times []float64, cfg Config, variants ...string) ([]VariantResult, error) {
	results := make([]VariantResult, len(variants))
	errs := make([]error, len(variants))

	var wg sync.WaitGroup
	for i, variant := range variants {
		wg.Add(1)
		go func(idx int, name string) {
			defer wg.Done()

			tx := model.FromParams(name, p)
			if tx == nil {
				errs[idx] = fmt.Errorf("unknown transmission variant: %s", name)
				return
			}

			s := New(model.NewSEIRD(p, tx), integ)
			traj, err := s.Run(ctx, x0, times, cfg)
			results[idx] = VariantResult{Variant: name, Trajectory: traj}
			errs[idx] = err
		}(i, variant)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
