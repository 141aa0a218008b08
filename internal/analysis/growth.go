// Package analysis provides diagnostics over stored epidemic runs.
package analysis

import (
	"errors"
	"math"
)

var ErrInsufficientData = errors.New("not enough positive samples for a fit")

// GrowthRate fits log y(t) = log y0 + r*t by least squares and returns r,
// the exponential growth rate per day. Samples with y <= 0 are skipped.
func GrowthRate(times, series []float64) (float64, error) {
	var n float64
	var sumT, sumY, sumTT, sumTY float64

	for i := range series {
		if i >= len(times) || series[i] <= 0 {
			continue
		}
		t := times[i]
		y := math.Log(series[i])
		n++
		sumT += t
		sumY += y
		sumTT += t * t
		sumTY += t * y
	}

	if n < 2 {
		return 0, ErrInsufficientData
	}

	denom := n*sumTT - sumT*sumT
	if denom == 0 {
		return 0, ErrInsufficientData
	}

	return (n*sumTY - sumT*sumY) / denom, nil
}

// DoublingTime converts a growth rate to the time for the infectious count
// to double. Negative rates give a (negative) halving time.
func DoublingTime(r float64) float64 {
	if r == 0 {
		return math.Inf(1)
	}
	return math.Ln2 / r
}

// ImpliedR0 recovers the basic reproduction number from an observed
// exponential growth rate, using the SEIR relation
// R0 = (1 + r/sigma)(1 + r/gamma).
func ImpliedR0(r, sigma, gamma float64) float64 {
	return (1 + r/sigma) * (1 + r/gamma)
}

// GrowthWindow returns the prefix of the series before its maximum, the
// region where exponential growth is a sensible fit. At least two samples
// are always returned when available.
func GrowthWindow(times, series []float64) ([]float64, []float64) {
	peak := 0
	for i, v := range series {
		if v > series[peak] {
			peak = i
		}
	}
	if peak < 2 {
		peak = min(2, len(series))
	}
	return times[:peak], series[:peak]
}
