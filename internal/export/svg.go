// Package export renders trajectories to formats outside the terminal.
package export

import (
	"fmt"
	"strings"

	"github.com/asolade/outbreak/internal/epi"
	"github.com/asolade/outbreak/internal/solve"
)

var compartmentColors = map[int]string{
	epi.S: "#4a9eff",
	epi.E: "#ffd24a",
	epi.I: "#ff4a4a",
	epi.R: "#4aff7a",
	epi.D: "#c0c0c0",
}

var compartmentNames = map[int]string{
	epi.S: "susceptible",
	epi.E: "exposed",
	epi.I: "infectious",
	epi.R: "recovered",
	epi.D: "dead",
}

// TrajectorySVG draws the selected compartments of a trajectory as one SVG
// line chart. All series share the time axis; the value axis spans the
// combined range of the selected compartments.
func TrajectorySVG(traj *solve.Trajectory, compartments []int, width, height int) string {
	if traj.Len() < 2 || len(compartments) == 0 {
		return ""
	}

	minT, maxT := traj.Times[0], traj.Times[traj.Len()-1]
	minY, maxY := 0.0, 0.0
	for _, c := range compartments {
		for _, v := range traj.Series(c) {
			if v > maxY {
				maxY = v
			}
			if v < minY {
				minY = v
			}
		}
	}

	rangeT := maxT - minT
	rangeY := maxY - minY
	if rangeT == 0 {
		rangeT = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.05
	maxY += rangeY * 0.05
	rangeY = maxY - minY

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for _, c := range compartments {
		series := traj.Series(c)

		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, compartmentColors[c]))
		for i, v := range series {
			x := (traj.Times[i] - minT) / rangeT * float64(width)
			y := float64(height) - (v-minY)/rangeY*float64(height)

			if i == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString("\"/>\n")
	}

	for i, c := range compartments {
		sb.WriteString(fmt.Sprintf(`<text x="8" y="%d" fill="%s" font-family="monospace" font-size="12">%s</text>
`, 16+i*16, compartmentColors[c], compartmentNames[c]))
	}

	sb.WriteString("</svg>")
	return sb.String()
}
