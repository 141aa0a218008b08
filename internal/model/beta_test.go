package model

import (
	"math"
	"testing"
)

func TestConstantBeta(t *testing.T) {
	tx := NewConstantBeta(1.22e-6)
	for _, tt := range []float64{0, 1.5, 3, 50, 100} {
		if got := tx.Beta(tt); got != 1.22e-6 {
			t.Errorf("Beta(%.1f) = %g, want 1.22e-6", tt, got)
		}
	}
}

func TestDecayingBeta_ContinuousAtTau(t *testing.T) {
	tx := NewDecayingBeta(1.22e-6, 3, 0.19)

	before := tx.Beta(3 - 1e-12)
	at := tx.Beta(3)

	if before != 1.22e-6 {
		t.Errorf("Beta(tau-) = %g, want beta0", before)
	}
	if at != 1.22e-6 {
		t.Errorf("Beta(tau) = %g, want beta0 exactly", at)
	}
}

func TestDecayingBeta_StrictlyDecreasingAfterTau(t *testing.T) {
	tx := NewDecayingBeta(1.22e-6, 3, 0.19)

	prev := tx.Beta(3)
	for day := 3.5; day <= 100; day += 0.5 {
		cur := tx.Beta(day)
		if cur >= prev {
			t.Fatalf("Beta(%.1f) = %g not below Beta at previous sample %g", day, cur, prev)
		}
		prev = cur
	}
}

func TestDecayingBeta_ExponentialForm(t *testing.T) {
	tx := NewDecayingBeta(1.22e-6, 3, 0.19)

	got := tx.Beta(10)
	want := 1.22e-6 * math.Exp(-0.19*7)
	if math.Abs(got-want) > 1e-18 {
		t.Errorf("Beta(10) = %g, want %g", got, want)
	}
}

func TestFromParams(t *testing.T) {
	p := NigeriaParams()

	tests := []struct {
		variant string
		wantNil bool
	}{
		{"constant", false},
		{"decaying", false},
		{"exotic", true},
	}

	for _, tt := range tests {
		tx := FromParams(tt.variant, p)
		if (tx == nil) != tt.wantNil {
			t.Errorf("FromParams(%q): got %v", tt.variant, tx)
		}
		if tx != nil && tx.Name() != tt.variant {
			t.Errorf("FromParams(%q).Name() = %q", tt.variant, tx.Name())
		}
	}
}
