package solve

import "github.com/asolade/outbreak/internal/epi"

// Trajectory is the immutable result of one solver run: one compartment
// vector per requested output time, in request order.
type Trajectory struct {
	Times      []float64
	States     []epi.State
	Metrics    map[string]float64
	Drift      float64 // relative conservation error of the total population
	StepsTaken int
}

// Point is the named-field record consumed by rendering and export.
// The field names are part of the downstream contract.
type Point struct {
	Time        float64 `json:"time"`
	Susceptible float64 `json:"susceptible"`
	Exposed     float64 `json:"exposed"`
	Infectious  float64 `json:"infectious"`
	Recovered   float64 `json:"recovered"`
	Dead        float64 `json:"dead"`
}

func (tr *Trajectory) Len() int { return len(tr.Times) }

func (tr *Trajectory) At(i int) Point {
	return toPoint(tr.Times[i], tr.States[i])
}

func (tr *Trajectory) Final() Point {
	return tr.At(len(tr.Times) - 1)
}

// Points reshapes the trajectory into named records, one per output time.
func (tr *Trajectory) Points() []Point {
	pts := make([]Point, len(tr.Times))
	for i := range tr.Times {
		pts[i] = toPoint(tr.Times[i], tr.States[i])
	}
	return pts
}

// Series extracts one compartment as a flat slice, for plotting.
func (tr *Trajectory) Series(compartment int) []float64 {
	out := make([]float64, len(tr.States))
	for i, x := range tr.States {
		out[i] = x[compartment]
	}
	return out
}

func toPoint(t float64, x epi.State) Point {
	return Point{
		Time:        t,
		Susceptible: x[epi.S],
		Exposed:     x[epi.E],
		Infectious:  x[epi.I],
		Recovered:   x[epi.R],
		Dead:        x[epi.D],
	}
}
