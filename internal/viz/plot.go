package viz

import (
	"fmt"
	"io"

	"github.com/guptarohit/asciigraph"

	"github.com/asolade/outbreak/internal/epi"
	"github.com/asolade/outbreak/internal/solve"
)

const (
	plotWidth  = 80
	plotHeight = 10
)

var compartmentCaptions = map[int]string{
	epi.S: "susceptible",
	epi.E: "exposed",
	epi.I: "infectious",
	epi.R: "recovered",
	epi.D: "dead (cumulative)",
}

// PlotOptions controls which series are drawn.
type PlotOptions struct {
	// OmitSusceptible drops the susceptible curve, whose scale dwarfs the
	// other compartments; the convention for the time-decaying run.
	OmitSusceptible bool
}

// PlotCompartments renders one chart per compartment of a trajectory.
func PlotCompartments(w io.Writer, traj *solve.Trajectory, opts PlotOptions) {
	for c := 0; c < epi.NumCompartments; c++ {
		if opts.OmitSusceptible && c == epi.S {
			continue
		}

		graph := asciigraph.Plot(traj.Series(c),
			asciigraph.Height(plotHeight),
			asciigraph.Width(plotWidth),
			asciigraph.Caption(compartmentCaptions[c]),
		)
		fmt.Fprintln(w, graph)
		fmt.Fprintln(w)
	}
}

// PlotComparison overlays one compartment from each variant run.
func PlotComparison(w io.Writer, compartment int, results []solve.VariantResult) {
	series := make([][]float64, len(results))
	colors := []asciigraph.AnsiColor{asciigraph.Red, asciigraph.Green, asciigraph.Blue, asciigraph.Yellow}
	for i, res := range results {
		series[i] = res.Trajectory.Series(compartment)
	}

	graph := asciigraph.PlotMany(series,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.SeriesColors(colors[:len(series)]...),
		asciigraph.Caption(compartmentCaptions[compartment]),
	)
	fmt.Fprintln(w, graph)

	for i, res := range results {
		fmt.Fprintln(w, captionStyle.Render(fmt.Sprintf("  series %d: %s beta", i+1, res.Variant)))
	}
	fmt.Fprintln(w)
}
