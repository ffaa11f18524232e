package services

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/trendops/storecheck/internal/models"
)

// RunStore defines the interface for run persistence
type RunStore interface {
	CreateRun(run *models.Run) error
	FinishRun(run *models.Run) error
}

// Recorder receives run lifecycle events from the journey runner
type Recorder interface {
	RecordStart(run *models.Run) error
	RecordFinish(run *models.Run) error
}

// StoreRecorder persists run lifecycle events through a RunStore
type StoreRecorder struct {
	store RunStore
}

// NewStoreRecorder creates a recorder backed by a run store
func NewStoreRecorder(store RunStore) *StoreRecorder {
	return &StoreRecorder{
		store: store,
	}
}

// RecordStart stores the freshly created run
func (r *StoreRecorder) RecordStart(run *models.Run) error {
	if err := r.store.CreateRun(run); err != nil {
		return fmt.Errorf("failed to record run start: %w", err)
	}
	return nil
}

// RecordFinish stores the terminal state of the run
func (r *StoreRecorder) RecordFinish(run *models.Run) error {
	if err := r.store.FinishRun(run); err != nil {
		return fmt.Errorf("failed to record run finish: %w", err)
	}
	return nil
}

// runRecord is the JSON line written for each finished run
type runRecord struct {
	ID             string    `json:"id"`
	Reference      string    `json:"reference"`
	Journey        string    `json:"journey"`
	BaseURL        string    `json:"baseUrl"`
	Status         string    `json:"status"`
	Failure        string    `json:"failure,omitempty"`
	Screenshot     string    `json:"screenshot,omitempty"`
	DurationMillis int64     `json:"durationMillis"`
	FinishedAt     time.Time `json:"finishedAt"`
}

// JSONLRecorder appends finished runs to a JSON lines results file
type JSONLRecorder struct {
	path string
}

// NewJSONLRecorder creates a recorder writing to the given results file
func NewJSONLRecorder(path string) *JSONLRecorder {
	return &JSONLRecorder{
		path: path,
	}
}

// RecordStart is a no-op, only terminal states reach the results file
func (r *JSONLRecorder) RecordStart(run *models.Run) error {
	return nil
}

// RecordFinish appends one JSON line describing the finished run
func (r *JSONLRecorder) RecordFinish(run *models.Run) error {
	if dir := filepath.Dir(r.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create results directory: %w", err)
		}
	}

	line, err := json.Marshal(runRecord{
		ID:             run.ID,
		Reference:      run.Reference,
		Journey:        run.Journey,
		BaseURL:        run.BaseURL,
		Status:         string(run.Status),
		Failure:        run.Failure,
		Screenshot:     run.Screenshot,
		DurationMillis: run.Duration().Milliseconds(),
		FinishedAt:     run.FinishedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal run record: %w", err)
	}

	file, err := os.OpenFile(r.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open results file: %w", err)
	}
	defer file.Close()

	if _, err := file.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("failed to write run record: %w", err)
	}

	return nil
}

// MultiRecorder fans run lifecycle events out to several recorders
type MultiRecorder struct {
	recorders []Recorder
}

// NewMultiRecorder creates a recorder forwarding to all given recorders
func NewMultiRecorder(recorders ...Recorder) *MultiRecorder {
	return &MultiRecorder{
		recorders: recorders,
	}
}

// RecordStart forwards the event to every recorder and reports the first
// failure after all of them ran
func (m *MultiRecorder) RecordStart(run *models.Run) error {
	var firstErr error
	for _, recorder := range m.recorders {
		if err := recorder.RecordStart(run); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// RecordFinish forwards the event to every recorder and reports the first
// failure after all of them ran
func (m *MultiRecorder) RecordFinish(run *models.Run) error {
	var firstErr error
	for _, recorder := range m.recorders {
		if err := recorder.RecordFinish(run); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
