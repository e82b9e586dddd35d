package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/pagescroll/internal/engine"
)

// ErrRunNotFound is returned when a run id has no metadata on disk.
var ErrRunNotFound = errors.New("storage: run not found")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string { return s.baseDir }

// RunMetadata describes one recorded animation.
type RunMetadata struct {
	ID            string             `json:"id"`
	Document      string             `json:"document"`
	Target        string             `json:"target"`
	Namespace     string             `json:"namespace"`
	Timestamp     time.Time          `json:"timestamp"`
	Easing        string             `json:"easing"`
	DurationMs    int64              `json:"duration_ms"`
	IntervalMs    int64              `json:"interval_ms"`
	Offset        float64            `json:"offset"`
	Vertical      bool               `json:"vertical"`
	Interruptible bool               `json:"interruptible"`
	Outcome       string             `json:"outcome"`
	Start         float64            `json:"start"`
	End           float64            `json:"end"`
	Completed     bool               `json:"completed"`
	Exhausted     bool               `json:"exhausted"`
	Metrics       map[string]float64 `json:"metrics"`
}

// FrameRecord is one row of frames.csv.
type FrameRecord struct {
	ElapsedMs float64 `json:"elapsed_ms"`
	Candidate float64 `json:"candidate"`
	Accepted  bool    `json:"accepted"`
	Done      bool    `json:"done"`
}

func Records(frames []engine.Frame) []FrameRecord {
	out := make([]FrameRecord, len(frames))
	for i, f := range frames {
		out[i] = FrameRecord{
			ElapsedMs: float64(f.Elapsed) / float64(time.Millisecond),
			Candidate: f.Candidate,
			Accepted:  f.Accepted,
			Done:      f.Done,
		}
	}
	return out
}

func runName(target string) string {
	name := strings.TrimPrefix(target, "#")
	name = strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == ' ' || r == '.' {
			return '-'
		}
		return r
	}, name)
	if name == "" {
		name = "run"
	}
	return name
}

// Save writes meta and frames under a new run directory and returns the
// run id. meta.ID and meta.Timestamp are filled in.
func (s *Store) Save(meta RunMetadata, frames []engine.Frame) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", runName(meta.Target), now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = now

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

	csvPath := filepath.Join(runDir, "frames.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write([]string{"elapsed_ms", "candidate", "accepted", "done"}); err != nil {
		return "", err
	}
	for _, r := range Records(frames) {
		row := []string{
			strconv.FormatFloat(r.ElapsedMs, 'f', 3, 64),
			strconv.FormatFloat(r.Candidate, 'f', 2, 64),
			strconv.FormatBool(r.Accepted),
			strconv.FormatBool(r.Done),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return runID, nil
}

// List returns every readable run, newest first.
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
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}

	return &meta, nil
}

// Latest returns the most recent run.
func (s *Store) Latest() (*RunMetadata, error) {
	runs, err := s.List()
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, ErrRunNotFound
	}
	return &runs[0], nil
}

func (s *Store) LoadFrames(runID string) ([]FrameRecord, error) {
	csvPath := filepath.Join(s.baseDir, runID, "frames.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return []FrameRecord{}, nil
	}

	frames := make([]FrameRecord, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 4 {
			continue
		}
		elapsed, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		candidate, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			continue
		}
		accepted, _ := strconv.ParseBool(record[2])
		done, _ := strconv.ParseBool(record[3])
		frames = append(frames, FrameRecord{
			ElapsedMs: elapsed,
			Candidate: candidate,
			Accepted:  accepted,
			Done:      done,
		})
	}

	return frames, nil
}

type ExportData struct {
	Run    RunMetadata   `json:"run"`
	Steps  int           `json:"steps"`
	Frames []FrameRecord `json:"frames"`
}

// ExportJSON writes a run's metadata and frames as one indented document.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	frames, err := s.LoadFrames(runID)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(ExportData{
		Run:    *meta,
		Steps:  len(frames),
		Frames: frames,
	})
}
