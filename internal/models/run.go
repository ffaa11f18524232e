package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RunStatus represents valid journey run states
type RunStatus string

// Run statuses
const (
	RunStatusPending RunStatus = "pending"
	RunStatusRunning RunStatus = "running"
	RunStatusPassed  RunStatus = "passed"
	RunStatusFailed  RunStatus = "failed"
	RunStatusSkipped RunStatus = "skipped"
)

// Run represents one execution of a journey against a storefront
type Run struct {
	ID         string
	Reference  string
	Journey    string
	BaseURL    string
	Status     RunStatus
	Failure    string
	Screenshot string
	CreatedAt  time.Time
	StartedAt  time.Time
	FinishedAt time.Time
}

// Domain errors
var (
	ErrEmptyJourneyName        = errors.New("journey name cannot be empty")
	ErrEmptyBaseURL            = errors.New("base URL cannot be empty")
	ErrInvalidStatusTransition = errors.New("invalid run status transition")
)

// NewRun creates a pending run for a journey with validation
func NewRun(journey, baseURL string) (*Run, error) {
	if err := validateRunInput(journey, baseURL); err != nil {
		return nil, err
	}

	reference := fmt.Sprintf("RUN-%s-%d", journey, time.Now().Unix())

	return &Run{
		ID:        uuid.New().String(),
		Reference: reference,
		Journey:   journey,
		BaseURL:   baseURL,
		Status:    RunStatusPending,
		CreatedAt: time.Now(),
	}, nil
}

// validateRunInput validates run creation parameters
func validateRunInput(journey, baseURL string) error {
	if journey == "" {
		return ErrEmptyJourneyName
	}
	if baseURL == "" {
		return ErrEmptyBaseURL
	}
	return nil
}

// Start marks the run as executing
func (r *Run) Start() error {
	if r.Status != RunStatusPending {
		return fmt.Errorf("%w: cannot start run with status %s", ErrInvalidStatusTransition, r.Status)
	}

	r.Status = RunStatusRunning
	r.StartedAt = time.Now()
	return nil
}

// Pass marks the run as passed
func (r *Run) Pass() error {
	if r.Status != RunStatusRunning {
		return fmt.Errorf("%w: cannot pass run with status %s", ErrInvalidStatusTransition, r.Status)
	}

	r.Status = RunStatusPassed
	r.FinishedAt = time.Now()
	return nil
}

// Fail marks the run as failed with the reason that stopped it
func (r *Run) Fail(reason string) error {
	if r.Status == RunStatusPassed || r.Status == RunStatusSkipped {
		return fmt.Errorf("%w: cannot fail run with status %s", ErrInvalidStatusTransition, r.Status)
	}
	if reason == "" {
		return errors.New("failure reason cannot be empty")
	}

	r.Status = RunStatusFailed
	r.Failure = reason
	r.FinishedAt = time.Now()
	return nil
}

// Skip marks the run as skipped before or during execution
func (r *Run) Skip(reason string) error {
	if r.Status == RunStatusPassed || r.Status == RunStatusFailed {
		return fmt.Errorf("%w: cannot skip run with status %s", ErrInvalidStatusTransition, r.Status)
	}

	r.Status = RunStatusSkipped
	r.Failure = reason
	r.FinishedAt = time.Now()
	return nil
}

// AttachScreenshot records the path of the screenshot taken for this run
func (r *Run) AttachScreenshot(path string) {
	r.Screenshot = path
}

// IsPending returns true if the run has not started yet
func (r *Run) IsPending() bool {
	return r.Status == RunStatusPending
}

// IsRunning returns true if the run is executing
func (r *Run) IsRunning() bool {
	return r.Status == RunStatusRunning
}

// IsPassed returns true if the run passed
func (r *Run) IsPassed() bool {
	return r.Status == RunStatusPassed
}

// IsFailed returns true if the run failed
func (r *Run) IsFailed() bool {
	return r.Status == RunStatusFailed
}

// IsSkipped returns true if the run was skipped
func (r *Run) IsSkipped() bool {
	return r.Status == RunStatusSkipped
}

// IsFinished returns true once the run reached a terminal status
func (r *Run) IsFinished() bool {
	return r.Status == RunStatusPassed || r.Status == RunStatusFailed || r.Status == RunStatusSkipped
}

// Duration returns how long the run executed, zero until it finished
func (r *Run) Duration() time.Duration {
	if r.StartedAt.IsZero() || r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Outcome returns a short human readable result line
func (r *Run) Outcome() string {
	switch r.Status {
	case RunStatusPassed:
		return fmt.Sprintf("%s passed in %s", r.Journey, r.Duration().Round(time.Millisecond))
	case RunStatusFailed:
		return fmt.Sprintf("%s failed: %s", r.Journey, r.Failure)
	case RunStatusSkipped:
		return fmt.Sprintf("%s skipped: %s", r.Journey, r.Failure)
	default:
		return fmt.Sprintf("%s %s", r.Journey, r.Status)
	}
}
