package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/dpend/internal/config"
	"github.com/san-kum/dpend/internal/pendulum"
	"github.com/san-kum/dpend/internal/sim"
)

const (
	metadataFile = "metadata.json"
	framesFile   = "frames.csv"
)

var ErrMalformedRow = errors.New("storage: malformed frame row")

var header = []string{"frame", "time", "theta1", "theta2", "omega1", "omega2", "x1", "y1", "x2", "y2"}

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
	ID          string             `json:"id"`
	Timestamp   time.Time          `json:"timestamp"`
	Config      config.Config      `json:"config"`
	Frames      int                `json:"frames"`
	EnergyDrift float64            `json:"energy_drift"`
	Metrics     map[string]float64 `json:"metrics"`
}

// Save writes metadata.json and frames.csv into a new run directory and
// returns the run id. On failure the run directory is removed again.
func (s *Store) Save(cfg *config.Config, result *sim.Result) (runID string, err error) {
	now := time.Now()
	id, err := s.newRunDir(fmt.Sprintf("%s_%d", cfg.Name, now.UnixNano()))
	if err != nil {
		return "", err
	}
	runDir := filepath.Join(s.baseDir, id)
	defer func() {
		if err != nil {
			os.RemoveAll(runDir)
		}
	}()

	meta := RunMetadata{
		ID:          id,
		Timestamp:   now,
		Config:      *cfg,
		Frames:      len(result.Frames),
		EnergyDrift: result.EnergyDrift,
		Metrics:     result.Metrics,
	}

	if err = writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", fmt.Errorf("write %s: %w", metadataFile, err)
	}

	if err = writeFrames(filepath.Join(runDir, framesFile), result.Frames); err != nil {
		return "", fmt.Errorf("write %s: %w", framesFile, err)
	}

	return id, nil
}

// newRunDir creates a fresh directory for base, adding a counter suffix if
// the name is taken.
func (s *Store) newRunDir(base string) (string, error) {
	if err := os.MkdirAll(s.baseDir, 0755); err != nil {
		return "", err
	}
	id := base
	for i := 1; ; i++ {
		err := os.Mkdir(filepath.Join(s.baseDir, id), 0755)
		if err == nil {
			return id, nil
		}
		if !os.IsExist(err) {
			return "", err
		}
		id = fmt.Sprintf("%s_%d", base, i)
	}
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func writeFrames(path string, frames []sim.Frame) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}

	for _, fr := range frames {
		row := []string{
			strconv.Itoa(fr.Index),
			formatFloat(fr.Time),
			formatFloat(fr.State.Arm1.Angle),
			formatFloat(fr.State.Arm2.Angle),
			formatFloat(fr.State.Arm1.AngularVelocity),
			formatFloat(fr.State.Arm2.AngularVelocity),
			formatFloat(fr.Joint1.X),
			formatFloat(fr.Joint1.Y),
			formatFloat(fr.Joint2.X),
			formatFloat(fr.Joint2.Y),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// List returns the metadata of every stored run, oldest first. Directories
// without readable metadata are skipped.
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

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}

		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadFrames reads the frames of a run back. Masses, lengths and gravity
// come from the run's stored config; accelerations are not persisted.
func (s *Store) LoadFrames(runID string) ([]sim.Frame, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filepath.Join(s.baseDir, runID, framesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return []sim.Frame{}, nil
	}

	base := pendulum.State{
		Arm1:    meta.Config.Arm1.Arm(),
		Arm2:    meta.Config.Arm2.Arm(),
		Gravity: meta.Config.Gravity,
	}

	frames := make([]sim.Frame, 0, len(records)-1)
	for i, record := range records[1:] {
		fr, err := parseFrame(record, base)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", framesFile, i+2, err)
		}
		frames = append(frames, fr)
	}

	return frames, nil
}

func parseFrame(record []string, base pendulum.State) (sim.Frame, error) {
	if len(record) != len(header) {
		return sim.Frame{}, fmt.Errorf("%w: %d fields", ErrMalformedRow, len(record))
	}

	index, err := strconv.Atoi(record[0])
	if err != nil {
		return sim.Frame{}, fmt.Errorf("%w: %v", ErrMalformedRow, err)
	}

	vals := make([]float64, len(record)-1)
	for i, field := range record[1:] {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return sim.Frame{}, fmt.Errorf("%w: %v", ErrMalformedRow, err)
		}
		vals[i] = v
	}

	st := base
	st.Arm1.Angle, st.Arm2.Angle = vals[1], vals[2]
	st.Arm1.AngularVelocity, st.Arm2.AngularVelocity = vals[3], vals[4]

	return sim.Frame{
		Index:  index,
		Time:   vals[0],
		State:  st,
		Joint1: pendulum.Position{X: vals[5], Y: vals[6]},
		Joint2: pendulum.Position{X: vals[7], Y: vals[8]},
	}, nil
}
