package models

import (
	"strings"
	"testing"
	"time"
)

func TestNewRun(t *testing.T) {
	tests := []struct {
		name    string
		journey string
		baseURL string
		wantErr error
	}{
		{
			name:    "valid run",
			journey: "search-laptop",
			baseURL: "https://www.trendyol.com",
			wantErr: nil,
		},
		{
			name:    "empty journey name",
			journey: "",
			baseURL: "https://www.trendyol.com",
			wantErr: ErrEmptyJourneyName,
		},
		{
			name:    "empty base URL",
			journey: "search-laptop",
			baseURL: "",
			wantErr: ErrEmptyBaseURL,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run, err := NewRun(tt.journey, tt.baseURL)

			if tt.wantErr != nil {
				if err != tt.wantErr {
					t.Errorf("NewRun() error = %v, wantErr %v", err, tt.wantErr)
				}
				if run != nil {
					t.Error("Expected run to be nil when error occurs")
				}
				return
			}

			if err != nil {
				t.Errorf("NewRun() unexpected error = %v", err)
				return
			}

			if run.ID == "" {
				t.Error("Run ID should not be empty")
			}
			if run.Reference == "" {
				t.Error("Run reference should not be empty")
			}
			if !strings.Contains(run.Reference, tt.journey) {
				t.Errorf("Expected reference to contain journey name, got %s", run.Reference)
			}
			if run.Status != RunStatusPending {
				t.Errorf("Expected status %s, got %s", RunStatusPending, run.Status)
			}
			if run.Journey != tt.journey {
				t.Errorf("Expected journey %s, got %s", tt.journey, run.Journey)
			}
			if run.BaseURL != tt.baseURL {
				t.Errorf("Expected base URL %s, got %s", tt.baseURL, run.BaseURL)
			}
		})
	}
}

func TestRun_Start(t *testing.T) {
	tests := []struct {
		name         string
		initialState RunStatus
		wantErr      bool
	}{
		{
			name:         "start pending run",
			initialState: RunStatusPending,
			wantErr:      false,
		},
		{
			name:         "cannot start running run",
			initialState: RunStatusRunning,
			wantErr:      true,
		},
		{
			name:         "cannot start passed run",
			initialState: RunStatusPassed,
			wantErr:      true,
		},
		{
			name:         "cannot start failed run",
			initialState: RunStatusFailed,
			wantErr:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run := &Run{
				ID:      "test-id",
				Journey: "search-laptop",
				Status:  tt.initialState,
			}

			err := run.Start()

			if (err != nil) != tt.wantErr {
				t.Errorf("Start() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if !tt.wantErr {
				if run.Status != RunStatusRunning {
					t.Errorf("Expected status %s, got %s", RunStatusRunning, run.Status)
				}
				if run.StartedAt.IsZero() {
					t.Error("Expected StartedAt to be set")
				}
			}
		})
	}
}

func TestRun_Pass(t *testing.T) {
	tests := []struct {
		name         string
		initialState RunStatus
		wantErr      bool
	}{
		{
			name:         "pass running run",
			initialState: RunStatusRunning,
			wantErr:      false,
		},
		{
			name:         "cannot pass pending run",
			initialState: RunStatusPending,
			wantErr:      true,
		},
		{
			name:         "cannot pass failed run",
			initialState: RunStatusFailed,
			wantErr:      true,
		},
		{
			name:         "cannot pass skipped run",
			initialState: RunStatusSkipped,
			wantErr:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run := &Run{
				ID:      "test-id",
				Journey: "search-laptop",
				Status:  tt.initialState,
			}

			err := run.Pass()

			if (err != nil) != tt.wantErr {
				t.Errorf("Pass() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if !tt.wantErr {
				if run.Status != RunStatusPassed {
					t.Errorf("Expected status %s, got %s", RunStatusPassed, run.Status)
				}
				if run.FinishedAt.IsZero() {
					t.Error("Expected FinishedAt to be set")
				}
			}
		})
	}
}

func TestRun_Fail(t *testing.T) {
	tests := []struct {
		name         string
		initialState RunStatus
		reason       string
		wantErr      bool
	}{
		{
			name:         "fail running run",
			initialState: RunStatusRunning,
			reason:       "search box never appeared",
			wantErr:      false,
		},
		{
			name:         "fail pending run",
			initialState: RunStatusPending,
			reason:       "browser launch failed",
			wantErr:      false,
		},
		{
			name:         "cannot fail passed run",
			initialState: RunStatusPassed,
			reason:       "late failure",
			wantErr:      true,
		},
		{
			name:         "cannot fail skipped run",
			initialState: RunStatusSkipped,
			reason:       "late failure",
			wantErr:      true,
		},
		{
			name:         "empty failure reason",
			initialState: RunStatusRunning,
			reason:       "",
			wantErr:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run := &Run{
				ID:      "test-id",
				Journey: "search-laptop",
				Status:  tt.initialState,
			}

			err := run.Fail(tt.reason)

			if (err != nil) != tt.wantErr {
				t.Errorf("Fail() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if !tt.wantErr {
				if run.Status != RunStatusFailed {
					t.Errorf("Expected status %s, got %s", RunStatusFailed, run.Status)
				}
				if run.Failure != tt.reason {
					t.Errorf("Expected failure %q, got %q", tt.reason, run.Failure)
				}
			}
		})
	}
}

func TestRun_Skip(t *testing.T) {
	tests := []struct {
		name         string
		initialState RunStatus
		wantErr      bool
	}{
		{
			name:         "skip pending run",
			initialState: RunStatusPending,
			wantErr:      false,
		},
		{
			name:         "skip running run",
			initialState: RunStatusRunning,
			wantErr:      false,
		},
		{
			name:         "cannot skip passed run",
			initialState: RunStatusPassed,
			wantErr:      true,
		},
		{
			name:         "cannot skip failed run",
			initialState: RunStatusFailed,
			wantErr:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run := &Run{
				ID:      "test-id",
				Journey: "search-laptop",
				Status:  tt.initialState,
			}

			err := run.Skip("no out of stock product available")

			if (err != nil) != tt.wantErr {
				t.Errorf("Skip() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if !tt.wantErr && run.Status != RunStatusSkipped {
				t.Errorf("Expected status %s, got %s", RunStatusSkipped, run.Status)
			}
		})
	}
}

func TestRun_StatusChecks(t *testing.T) {
	run := &Run{
		ID:      "test-id",
		Journey: "search-laptop",
		Status:  RunStatusPending,
	}

	if !run.IsPending() {
		t.Error("Expected run to be pending")
	}
	if run.IsFinished() {
		t.Error("Expected pending run to not be finished")
	}

	run.Status = RunStatusRunning
	if !run.IsRunning() {
		t.Error("Expected run to be running")
	}
	if run.IsFinished() {
		t.Error("Expected running run to not be finished")
	}

	run.Status = RunStatusPassed
	if !run.IsPassed() {
		t.Error("Expected run to be passed")
	}
	if !run.IsFinished() {
		t.Error("Expected passed run to be finished")
	}

	run.Status = RunStatusFailed
	if !run.IsFailed() {
		t.Error("Expected run to be failed")
	}

	run.Status = RunStatusSkipped
	if !run.IsSkipped() {
		t.Error("Expected run to be skipped")
	}
	if !run.IsFinished() {
		t.Error("Expected skipped run to be finished")
	}
}

func TestRun_Duration(t *testing.T) {
	start := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		startedAt  time.Time
		finishedAt time.Time
		expected   time.Duration
	}{
		{
			name:       "finished run",
			startedAt:  start,
			finishedAt: start.Add(42 * time.Second),
			expected:   42 * time.Second,
		},
		{
			name:      "never started",
			startedAt: time.Time{},
			expected:  0,
		},
		{
			name:      "still running",
			startedAt: start,
			expected:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run := &Run{
				StartedAt:  tt.startedAt,
				FinishedAt: tt.finishedAt,
			}

			if got := run.Duration(); got != tt.expected {
				t.Errorf("Duration() = %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestRun_Outcome(t *testing.T) {
	start := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		run      *Run
		expected string
	}{
		{
			name: "passed run",
			run: &Run{
				Journey:    "add-to-cart",
				Status:     RunStatusPassed,
				StartedAt:  start,
				FinishedAt: start.Add(3 * time.Second),
			},
			expected: "add-to-cart passed in 3s",
		},
		{
			name: "failed run",
			run: &Run{
				Journey: "add-to-cart",
				Status:  RunStatusFailed,
				Failure: "cart stayed empty",
			},
			expected: "add-to-cart failed: cart stayed empty",
		},
		{
			name: "skipped run",
			run: &Run{
				Journey: "add-to-cart",
				Status:  RunStatusSkipped,
				Failure: "product out of stock",
			},
			expected: "add-to-cart skipped: product out of stock",
		},
		{
			name: "pending run",
			run: &Run{
				Journey: "add-to-cart",
				Status:  RunStatusPending,
			},
			expected: "add-to-cart pending",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.run.Outcome(); got != tt.expected {
				t.Errorf("Outcome() = %q, want %q", got, tt.expected)
			}
		})
	}
}
