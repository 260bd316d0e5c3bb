package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/san-kum/rigidsim/internal/dynamo"
)

const (
	metadataFile = "metadata.json"
	framesFile   = "frames.csv"
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

// RunInfo describes how a run was produced.
type RunInfo struct {
	Scene              string
	Engine             string
	Dt                 float64
	Steps              int
	VelocityIterations int
	PositionIterations int
	Checks             map[string]bool
}

type RunMetadata struct {
	ID                 string             `json:"id"`
	Scene              string             `json:"scene"`
	Engine             string             `json:"engine"`
	Timestamp          time.Time          `json:"timestamp"`
	Dt                 float64            `json:"dt"`
	Steps              int                `json:"steps"`
	StepsTaken         int                `json:"steps_taken"`
	VelocityIterations int                `json:"velocity_iterations"`
	PositionIterations int                `json:"position_iterations"`
	Bodies             []string           `json:"bodies"`
	Metrics            map[string]float64 `json:"metrics"`
	Checks             map[string]bool    `json:"checks,omitempty"`
}

// Save writes the run under a fresh id and returns it.
func (s *Store) Save(info RunInfo, result *dynamo.Result) (string, error) {
	if result == nil {
		return "", errors.New("storage: nil result")
	}
	if err := s.Init(); err != nil {
		return "", err
	}

	now := time.Now()
	runID, runDir, err := s.makeRunDir(info.Scene, now)
	if err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:                 runID,
		Scene:              info.Scene,
		Engine:             info.Engine,
		Timestamp:          now,
		Dt:                 info.Dt,
		Steps:              info.Steps,
		StepsTaken:         result.StepsTaken,
		VelocityIterations: info.VelocityIterations,
		PositionIterations: info.PositionIterations,
		Bodies:             bodyNames(result.Frames),
		Metrics:            result.Metrics,
		Checks:             info.Checks,
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, framesFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := WriteFrames(csvFile, result.Frames); err != nil {
		return "", err
	}
	return runID, nil
}

func (s *Store) makeRunDir(sceneName string, now time.Time) (string, string, error) {
	base := fmt.Sprintf("%s_%s", sceneName, now.Format("20060102-150405"))
	for i := 0; ; i++ {
		id := base
		if i > 0 {
			id = fmt.Sprintf("%s-%d", base, i)
		}
		dir := filepath.Join(s.baseDir, id)
		err := os.Mkdir(dir, 0755)
		if err == nil {
			return id, dir, nil
		}
		if !os.IsExist(err) {
			return "", "", err
		}
	}
}

// List returns every stored run, oldest first.
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

	sort.SliceStable(runs, func(i, j int) bool {
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
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

func (s *Store) LoadFrames(runID string) ([]dynamo.Frame, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, framesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	frames, err := ReadFrames(file)
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return frames, nil
}

func bodyNames(frames []dynamo.Frame) []string {
	if len(frames) == 0 {
		return nil
	}
	names := make([]string, len(frames[0].Bodies))
	for i, b := range frames[0].Bodies {
		names[i] = b.Name
	}
	return names
}
