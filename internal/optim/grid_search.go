// Package optim searches epidemic parameter space for runs that minimize
// an outcome metric.
package optim

import (
	"context"
	"math"
)

// RunFunc executes one simulation with the given parameter overrides and
// returns its summary metrics.
type RunFunc func(ctx context.Context, params map[string]float64) (map[string]float64, error)

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Range builds n evenly spaced values over [from, to].
func Range(from, to float64, n int) []float64 {
	if n < 2 {
		return []float64{from}
	}
	vals := make([]float64, n)
	step := (to - from) / float64(n-1)
	for i := range vals {
		vals[i] = from + float64(i)*step
	}
	return vals
}

// Search evaluates every grid point and returns the parameter combination
// with the lowest value of metricName. Failed runs are skipped.
func (g *GridSearch) Search(ctx context.Context, run RunFunc, metricName string) (map[string]float64, float64, error) {
	best := math.Inf(1)
	var bestParams map[string]float64

	g.searchRecursive(ctx, 0, make(map[string]float64), run, metricName, &best, &bestParams)

	return bestParams, best, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	run RunFunc,
	metricName string,
	best *float64,
	bestParams *map[string]float64,
) {
	if depth == len(g.paramNames) {
		metrics, err := run(ctx, current)
		if err != nil {
			return
		}

		// A misspelled objective must not win with a zero value.
		val, ok := metrics[metricName]
		if !ok {
			return
		}
		if val < *best {
			*best = val
			*bestParams = make(map[string]float64)
			for k, v := range current {
				(*bestParams)[k] = v
			}
		}
		return
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		g.searchRecursive(ctx, depth+1, newParams, run, metricName, best, bestParams)
	}
}
