package metrics

import "github.com/asolade/outbreak/internal/epi"

// Defaults returns the standard summary set attached to every stored run.
func Defaults() []epi.Metric {
	return []epi.Metric{
		NewPeakInfection(),
		NewPeakDay(),
		NewDeathToll(),
		NewAttackRate(),
	}
}
