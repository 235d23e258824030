package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/logistic/internal/logistic"
)

const (
	MetadataFile   = "metadata.json"
	TrajectoryFile = "trajectory.csv"
	CyclesFile     = "cycles.csv"
	StepImage      = "logistic.svg"
	ScanImage      = "feigenbaum.svg"
)

// Store writes run artifacts into a single output directory. Later runs
// overwrite earlier ones.
type Store struct {
	baseDir string
	logger  *slog.Logger
}

func New(baseDir string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{baseDir: baseDir, logger: logger}
}

func (s *Store) Dir() string {
	return s.baseDir
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type StepMetadata struct {
	A          float64 `json:"a"`
	X0         float64 `json:"x0"`
	Tolerance  float64 `json:"tolerance"`
	Iterations int     `json:"iterations"`
	Converged  bool    `json:"converged"`
	Lyapunov   float64 `json:"lyapunov"`
}

type ScanMetadata struct {
	AMin      float64 `json:"a_min"`
	AMax      float64 `json:"a_max"`
	Points    int     `json:"points"`
	X0        float64 `json:"x0"`
	Tolerance float64 `json:"tolerance"`
	Scatter   int     `json:"scatter_points"`
	Truncated int     `json:"truncated"`
}

type RunMetadata struct {
	Timestamp time.Time     `json:"timestamp"`
	Step      *StepMetadata `json:"step,omitempty"`
	Scan      *ScanMetadata `json:"scan,omitempty"`
	Artifacts []string      `json:"artifacts"`
}

// SaveBestEffort runs a save and logs its failure instead of returning
// it. It reports whether the save succeeded.
func (s *Store) SaveBestEffort(what string, save func() error) bool {
	if err := save(); err != nil {
		s.logger.Error("save failed", "artifact", what, "dir", s.baseDir, "err", err)
		return false
	}
	s.logger.Debug("saved", "artifact", what, "dir", s.baseDir)
	return true
}

func (s *Store) WriteFile(name string, data []byte) error {
	if err := s.Init(); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.baseDir, name), data, 0644)
}

func (s *Store) SaveImage(name, svg string) error {
	if svg == "" {
		return fmt.Errorf("%s: nothing to render", name)
	}
	return s.WriteFile(name, []byte(svg))
}

func (s *Store) SaveMetadata(meta RunMetadata) error {
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return err
	}
	return s.WriteFile(MetadataFile, append(data, '\n'))
}

func (s *Store) LoadMetadata() (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, MetadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("%s: %w", MetadataFile, err)
	}
	return &meta, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func (s *Store) writeCSV(name string, header []string, rows [][]string) error {
	if err := s.Init(); err != nil {
		return err
	}
	f, err := os.Create(filepath.Join(s.baseDir, name))
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	return f.Close()
}

func (s *Store) readCSV(name string) ([][]string, error) {
	f, err := os.Open(filepath.Join(s.baseDir, name))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: missing header", name)
	}
	return records[1:], nil
}

// SaveTrajectory writes one row per iterate.
func (s *Store) SaveTrajectory(traj []float64) error {
	rows := make([][]string, len(traj))
	for i, x := range traj {
		rows[i] = []string{strconv.Itoa(i), formatFloat(x)}
	}
	return s.writeCSV(TrajectoryFile, []string{"n", "x"}, rows)
}

func (s *Store) LoadTrajectory() ([]float64, error) {
	rows, err := s.readCSV(TrajectoryFile)
	if err != nil {
		return nil, err
	}

	traj := make([]float64, 0, len(rows))
	for i, row := range rows {
		if len(row) < 2 {
			return nil, fmt.Errorf("%s row %d: expected 2 fields, got %d", TrajectoryFile, i+1, len(row))
		}
		x, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", TrajectoryFile, i+1, err)
		}
		traj = append(traj, x)
	}
	return traj, nil
}

// SaveCycles writes one row per tail value, records in scan order.
func (s *Store) SaveCycles(m logistic.CycleMap) error {
	rows := make([][]string, 0, m.PointCount())
	for _, rec := range m {
		for i, x := range rec.Tail {
			rows = append(rows, []string{
				formatFloat(rec.A),
				strconv.Itoa(i),
				formatFloat(x),
				strconv.Itoa(rec.Iterations),
				strconv.FormatBool(rec.Truncated),
			})
		}
	}
	return s.writeCSV(CyclesFile, []string{"a", "index", "x", "iterations", "truncated"}, rows)
}

// LoadCycles rebuilds a cycle map; a row with index 0 starts a new record.
func (s *Store) LoadCycles() (logistic.CycleMap, error) {
	rows, err := s.readCSV(CyclesFile)
	if err != nil {
		return nil, err
	}

	var m logistic.CycleMap
	for i, row := range rows {
		if len(row) < 5 {
			return nil, fmt.Errorf("%s row %d: expected 5 fields, got %d", CyclesFile, i+1, len(row))
		}
		a, err := strconv.ParseFloat(row[0], 64)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", CyclesFile, i+1, err)
		}
		idx, err := strconv.Atoi(row[1])
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", CyclesFile, i+1, err)
		}
		x, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", CyclesFile, i+1, err)
		}
		iters, err := strconv.Atoi(row[3])
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", CyclesFile, i+1, err)
		}
		truncated, err := strconv.ParseBool(row[4])
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", CyclesFile, i+1, err)
		}

		if idx == 0 || len(m) == 0 {
			m = append(m, logistic.CycleRecord{A: a, Iterations: iters, Truncated: truncated})
		}
		m[len(m)-1].Tail = append(m[len(m)-1].Tail, x)
	}
	return m, nil
}
