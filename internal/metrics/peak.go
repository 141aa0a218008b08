package metrics

import "github.com/asolade/outbreak/internal/epi"

// PeakInfection tracks the maximum of the infectious compartment.
type PeakInfection struct {
	name string
	max  float64
}

func NewPeakInfection() *PeakInfection {
	return &PeakInfection{name: "peak_infectious"}
}

func (p *PeakInfection) Name() string { return p.name }

func (p *PeakInfection) Observe(x epi.State, t float64) {
	if x[epi.I] > p.max {
		p.max = x[epi.I]
	}
}

func (p *PeakInfection) Value() float64 { return p.max }

func (p *PeakInfection) Reset() { p.max = 0 }

// PeakDay records the time at which the infectious compartment peaks.
type PeakDay struct {
	name string
	max  float64
	day  float64
}

func NewPeakDay() *PeakDay {
	return &PeakDay{name: "peak_day"}
}

func (p *PeakDay) Name() string { return p.name }

func (p *PeakDay) Observe(x epi.State, t float64) {
	if x[epi.I] > p.max {
		p.max = x[epi.I]
		p.day = t
	}
}

func (p *PeakDay) Value() float64 { return p.day }

func (p *PeakDay) Reset() {
	p.max = 0
	p.day = 0
}
