package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/asolade/outbreak/internal/epi"
	"github.com/asolade/outbreak/internal/model"
	"github.com/asolade/outbreak/internal/solve"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Variant    string             `json:"variant"`
	Timestamp  time.Time          `json:"timestamp"`
	Integrator string             `json:"integrator"`
	MaxStep    float64            `json:"max_step"`
	Horizon    float64            `json:"horizon"`
	Params     model.Params       `json:"params"`
	Metrics    map[string]float64 `json:"metrics"`
	Drift      float64            `json:"drift"`
}

var csvHeader = []string{"time", "susceptible", "exposed", "infectious", "recovered", "dead"}

func (s *Store) Save(variant, integrator string, maxStep float64, p model.Params, traj *solve.Trajectory) (string, error) {
	runID := fmt.Sprintf("%s_%d", variant, time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(s.baseDir, 0755); err != nil {
		return "", err
	}
	// Mkdir, not MkdirAll: a duplicate ID must fail loudly rather than
	// overwrite an earlier run's files.
	if err := os.Mkdir(runDir, 0755); err != nil {
		return "", err
	}

	horizon := 0.0
	if traj.Len() > 0 {
		horizon = traj.Times[traj.Len()-1]
	}

	meta := RunMetadata{
		ID:         runID,
		Variant:    variant,
		Timestamp:  time.Now(),
		Integrator: integrator,
		MaxStep:    maxStep,
		Horizon:    horizon,
		Params:     p,
		Metrics:    traj.Metrics,
		Drift:      traj.Drift,
	}

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvPath := filepath.Join(runDir, "trajectory.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write(csvHeader); err != nil {
		return "", err
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
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadTrajectory reads a stored run back into trajectory form. Metrics
// come from the metadata file, not the CSV.
func (s *Store) LoadTrajectory(runID string) (*solve.Trajectory, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}

	csvPath := filepath.Join(s.baseDir, runID, "trajectory.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	traj := &solve.Trajectory{
		Times:   make([]float64, 0, len(records)),
		States:  make([]epi.State, 0, len(records)),
		Metrics: meta.Metrics,
		Drift:   meta.Drift,
	}

	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) != len(csvHeader) {
			continue
		}

		vals := make([]float64, len(record))
		ok := true
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				ok = false
				break
			}
			vals[j] = v
		}
		if !ok {
			continue
		}

		traj.Times = append(traj.Times, vals[0])
		traj.States = append(traj.States, epi.State(vals[1:]))
	}

	return traj, nil
}
