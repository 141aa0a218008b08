package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/asolade/outbreak/internal/solve"
)

type ExportData struct {
	ID         string             `json:"id"`
	Variant    string             `json:"variant"`
	Integrator string             `json:"integrator"`
	MaxStep    float64            `json:"max_step"`
	Horizon    float64            `json:"horizon"`
	Steps      int                `json:"steps"`
	Points     []solve.Point      `json:"points"`
	Metrics    map[string]float64 `json:"metrics"`
	Drift      float64            `json:"drift"`
}

// ExportJSON writes a run as a single JSON document of named records.
func ExportJSON(w io.Writer, meta *RunMetadata, traj *solve.Trajectory) error {
	data := ExportData{
		ID:         meta.ID,
		Variant:    meta.Variant,
		Integrator: meta.Integrator,
		MaxStep:    meta.MaxStep,
		Horizon:    meta.Horizon,
		Steps:      traj.Len(),
		Points:     traj.Points(),
		Metrics:    traj.Metrics,
		Drift:      traj.Drift,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// ExportCSV writes a trajectory in the same column layout the store uses.
func ExportCSV(w io.Writer, traj *solve.Trajectory) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, pt := range traj.Points() {
		row := []string{
			strconv.FormatFloat(pt.Time, 'f', 6, 64),
			strconv.FormatFloat(pt.Susceptible, 'f', 6, 64),
			strconv.FormatFloat(pt.Exposed, 'f', 6, 64),
			strconv.FormatFloat(pt.Infectious, 'f', 6, 64),
			strconv.FormatFloat(pt.Recovered, 'f', 6, 64),
			strconv.FormatFloat(pt.Dead, 'f', 6, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	return cw.Error()
}
