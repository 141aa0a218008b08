package metrics

import (
	"math"
	"testing"

	"github.com/asolade/outbreak/internal/epi"
)

func TestPeakInfection(t *testing.T) {
	m := NewPeakInfection()

	m.Observe(epi.State{100, 0, 5, 0, 0}, 0)
	m.Observe(epi.State{80, 10, 12, 2, 1}, 1)
	m.Observe(epi.State{70, 8, 9, 15, 3}, 2)

	if m.Value() != 12 {
		t.Errorf("peak = %f, want 12", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("Reset did not clear peak")
	}
}

func TestPeakDay(t *testing.T) {
	m := NewPeakDay()

	m.Observe(epi.State{100, 0, 5, 0, 0}, 0)
	m.Observe(epi.State{80, 10, 12, 2, 1}, 7)
	m.Observe(epi.State{70, 8, 9, 15, 3}, 14)

	if m.Value() != 7 {
		t.Errorf("peak day = %f, want 7", m.Value())
	}
}

func TestDeathToll(t *testing.T) {
	m := NewDeathToll()

	m.Observe(epi.State{100, 0, 5, 0, 0}, 0)
	m.Observe(epi.State{70, 8, 9, 15, 3.5}, 14)

	if m.Value() != 3.5 {
		t.Errorf("deaths = %f, want 3.5", m.Value())
	}
}

func TestAttackRate(t *testing.T) {
	m := NewAttackRate()

	m.Observe(epi.State{99, 0, 1, 0, 0}, 0)
	m.Observe(epi.State{40, 5, 5, 30, 20}, 50)

	want := 50.0 / 100.0
	if math.Abs(m.Value()-want) > 1e-12 {
		t.Errorf("attack rate = %f, want %f", m.Value(), want)
	}
}

func TestDefaults(t *testing.T) {
	names := map[string]bool{}
	for _, m := range Defaults() {
		names[m.Name()] = true
	}
	for _, want := range []string{"peak_infectious", "peak_day", "deaths", "attack_rate"} {
		if !names[want] {
			t.Errorf("missing default metric %q", want)
		}
	}
}
