package model

import (
	"errors"
	"math"
	"testing"

	"github.com/asolade/outbreak/internal/epi"
)

func nigeriaModel(variant string) *SEIRD {
	p := NigeriaParams()
	return NewSEIRD(p, FromParams(variant, p))
}

func TestSEIRD_DerivativeAtSeed(t *testing.T) {
	m := nigeriaModel("constant")
	x := epi.State{1e6, 0, 1, 0, 0}

	dx := m.Derivative(x, 0)

	force := 1.22e-6 * 1e6 * 1.0
	exit := (1.0 / 7.41) * 1.0

	if math.Abs(dx[epi.S]+force) > 1e-12 {
		t.Errorf("dS = %g, want %g", dx[epi.S], -force)
	}
	if math.Abs(dx[epi.E]-force) > 1e-12 {
		t.Errorf("dE = %g, want %g", dx[epi.E], force)
	}
	if math.Abs(dx[epi.I]+exit) > 1e-12 {
		t.Errorf("dI = %g, want %g", dx[epi.I], -exit)
	}
	if math.Abs(dx[epi.R]-0.61*exit) > 1e-12 {
		t.Errorf("dR = %g, want %g", dx[epi.R], 0.61*exit)
	}
	if math.Abs(dx[epi.D]-0.39*exit) > 1e-12 {
		t.Errorf("dD = %g, want %g", dx[epi.D], 0.39*exit)
	}
}

func TestSEIRD_RatesSumToZero(t *testing.T) {
	// Total population is conserved, so the derivative components must
	// cancel exactly at any state and time.
	for _, variant := range []string{"constant", "decaying"} {
		m := nigeriaModel(variant)
		states := []epi.State{
			{1e6, 0, 1, 0, 0},
			{9e5, 5e4, 3e4, 1.5e4, 5e3},
			{1e5, 1e3, 10, 8e5, 9.899e4},
		}
		for _, x := range states {
			for _, tm := range []float64{0, 2.9, 3, 17.25, 100} {
				dx := m.Derivative(x, tm)
				sum := 0.0
				for _, v := range dx {
					sum += v
				}
				if math.Abs(sum) > 1e-9 {
					t.Errorf("%s: rate sum %g at t=%.2f", variant, sum, tm)
				}
			}
		}
	}
}

func TestSEIRD_Pure(t *testing.T) {
	m := nigeriaModel("decaying")
	x := epi.State{9e5, 5e4, 3e4, 1.5e4, 5e3}

	a := m.Derivative(x, 12.5)
	b := m.Derivative(x, 12.5)

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("repeated evaluation differs at component %d: %g vs %g", i, a[i], b[i])
		}
	}
	if x[epi.S] != 9e5 {
		t.Error("Derivative mutated its input state")
	}
}

func TestSEIRD_CorpseTransmission(t *testing.T) {
	p := NigeriaParams()
	p.CorpseBeta = 5e-8
	m := NewSEIRD(p, NewConstantBeta(p.Beta0))

	x := epi.State{9e5, 0, 0, 0, 1e3}
	dx := m.Derivative(x, 0)

	// No infectious individuals: the only force of infection is the
	// corpse channel a*S*D.
	want := 5e-8 * 9e5 * 1e3
	if math.Abs(dx[epi.S]+want) > 1e-9 {
		t.Errorf("dS = %g, want %g", dx[epi.S], -want)
	}
	if math.Abs(dx[epi.E]-want) > 1e-9 {
		t.Errorf("dE = %g, want %g", dx[epi.E], want)
	}
}

func TestParams_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Params)
		wantErr error
	}{
		{"nominal", func(p *Params) {}, nil},
		{"missing beta0", func(p *Params) { p.Beta0 = 0 }, epi.ErrMissingParameter},
		{"missing sigma", func(p *Params) { p.Sigma = 0 }, epi.ErrMissingParameter},
		{"missing gamma", func(p *Params) { p.Gamma = 0 }, epi.ErrMissingParameter},
		{"fatality above one", func(p *Params) { p.Fatality = 1.2 }, epi.ErrParameterBounds},
		{"fatality negative", func(p *Params) { p.Fatality = -0.1 }, epi.ErrParameterBounds},
		{"negative decay", func(p *Params) { p.Decay = -0.19 }, epi.ErrParameterBounds},
		{"negative corpse term", func(p *Params) { p.CorpseBeta = -1e-8 }, epi.ErrParameterBounds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NigeriaParams()
			tt.mutate(&p)
			err := p.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestParams_R0(t *testing.T) {
	p := NigeriaParams()
	r0 := p.R0(1e6)
	want := 1.22e-6 * 1e6 * 7.41
	if math.Abs(r0-want) > 1e-9 {
		t.Errorf("R0 = %f, want %f", r0, want)
	}
}

func TestSEIRD_SetParamUpdatesTransmission(t *testing.T) {
	m := nigeriaModel("decaying")

	m.SetParam("beta0", 2e-6)
	if got := m.Tx.Beta(0); got != 2e-6 {
		t.Errorf("Beta(0) = %g after SetParam, want 2e-6", got)
	}

	m.SetParam("decay", 0.5)
	want := 2e-6 * math.Exp(-0.5*1)
	if got := m.Tx.Beta(4); math.Abs(got-want) > 1e-18 {
		t.Errorf("Beta(4) = %g after decay update, want %g", got, want)
	}
}
