package analysis

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/asolade/outbreak/internal/epi"
	"github.com/asolade/outbreak/internal/integrators"
	"github.com/asolade/outbreak/internal/model"
	"github.com/asolade/outbreak/internal/solve"
)

func TestGrowthRate_ExactExponential(t *testing.T) {
	r := 0.3
	times := make([]float64, 20)
	series := make([]float64, 20)
	for i := range times {
		times[i] = float64(i)
		series[i] = 5 * math.Exp(r*times[i])
	}

	got, err := GrowthRate(times, series)
	if err != nil {
		t.Fatalf("fit failed: %v", err)
	}
	if math.Abs(got-r) > 1e-9 {
		t.Errorf("growth rate = %g, want %g", got, r)
	}
}

func TestGrowthRate_SkipsNonPositive(t *testing.T) {
	times := []float64{0, 1, 2, 3, 4}
	series := []float64{0, -1, math.E, math.E * math.E, math.E * math.E * math.E}

	got, err := GrowthRate(times, series)
	if err != nil {
		t.Fatalf("fit failed: %v", err)
	}
	if math.Abs(got-1.0) > 1e-9 {
		t.Errorf("growth rate = %g, want 1", got)
	}
}

func TestGrowthRate_InsufficientData(t *testing.T) {
	cases := []struct {
		name   string
		times  []float64
		series []float64
	}{
		{"empty", nil, nil},
		{"one positive sample", []float64{0, 1}, []float64{1, 0}},
		{"all zero", []float64{0, 1, 2}, []float64{0, 0, 0}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := GrowthRate(tc.times, tc.series); !errors.Is(err, ErrInsufficientData) {
				t.Errorf("expected ErrInsufficientData, got %v", err)
			}
		})
	}
}

func TestDoublingTime(t *testing.T) {
	if got := DoublingTime(math.Ln2); math.Abs(got-1) > 1e-12 {
		t.Errorf("doubling time = %g, want 1", got)
	}
	if got := DoublingTime(0); !math.IsInf(got, 1) {
		t.Errorf("doubling time at r=0 = %g, want +Inf", got)
	}
	if got := DoublingTime(-math.Ln2); math.Abs(got+1) > 1e-12 {
		t.Errorf("halving time = %g, want -1", got)
	}
}

func TestImpliedR0_ZeroGrowth(t *testing.T) {
	if got := ImpliedR0(0, 0.5, 0.2); got != 1 {
		t.Errorf("implied R0 at r=0 = %g, want 1", got)
	}
}

func TestGrowthWindow(t *testing.T) {
	times := []float64{0, 1, 2, 3, 4}
	series := []float64{1, 4, 9, 5, 2}

	wt, ws := GrowthWindow(times, series)
	if len(wt) != 2 || len(ws) != 2 {
		t.Fatalf("window length = %d, want 2 (prefix before peak)", len(wt))
	}
	if ws[len(ws)-1] != 4 {
		t.Errorf("last window sample = %g, want 4", ws[len(ws)-1])
	}
}

// The early epidemic grows exponentially at the rate the linearized
// system predicts, so the fitted rate should recover the parametric R0.
func TestGrowthRate_RecoversR0(t *testing.T) {
	p := model.NigeriaParams()
	dyn := model.NewSEIRD(p, model.NewConstantBeta(p.Beta0))

	times := make([]float64, 11)
	for i := range times {
		times[i] = 5 + float64(i) // skip the seeding transient
	}

	s := solve.New(dyn, integrators.NewRK4())
	traj, err := s.Run(context.Background(), dyn.DefaultState(), times, solve.DefaultConfig())
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}

	r, err := GrowthRate(traj.Times, traj.Series(epi.I))
	if err != nil {
		t.Fatalf("fit failed: %v", err)
	}
	if r <= 0 {
		t.Fatalf("expected positive growth, got %g", r)
	}

	implied := ImpliedR0(r, p.Sigma, p.Gamma)
	parametric := p.R0(1e6)
	if math.Abs(implied-parametric)/parametric > 0.15 {
		t.Errorf("implied R0 = %.2f, parametric = %.2f", implied, parametric)
	}
}
