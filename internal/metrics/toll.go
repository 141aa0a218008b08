package metrics

import "github.com/asolade/outbreak/internal/epi"

// DeathToll reports the cumulative death count at the end of the run.
// D is monotone, so the last observation is the total.
type DeathToll struct {
	name string
	last float64
}

func NewDeathToll() *DeathToll {
	return &DeathToll{name: "deaths"}
}

func (d *DeathToll) Name() string { return d.name }

func (d *DeathToll) Observe(x epi.State, t float64) {
	d.last = x[epi.D]
}

func (d *DeathToll) Value() float64 { return d.last }

func (d *DeathToll) Reset() { d.last = 0 }

// AttackRate reports the fraction of the population that left the
// susceptible pool by the end of the run: (R + D) / N.
type AttackRate struct {
	name    string
	total   float64
	removed float64
	samples int
}

func NewAttackRate() *AttackRate {
	return &AttackRate{name: "attack_rate"}
}

func (a *AttackRate) Name() string { return a.name }

func (a *AttackRate) Observe(x epi.State, t float64) {
	if a.samples == 0 {
		a.total = x.Sum()
	}
	a.removed = x[epi.R] + x[epi.D]
	a.samples++
}

func (a *AttackRate) Value() float64 {
	if a.total == 0 {
		return 0
	}
	return a.removed / a.total
}

func (a *AttackRate) Reset() {
	a.total = 0
	a.removed = 0
	a.samples = 0
}
