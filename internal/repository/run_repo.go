package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/trendops/storecheck/internal/database"
	"github.com/trendops/storecheck/internal/models"
)

// RunRepository handles database operations for journey runs
type RunRepository struct {
	db *sql.DB
}

// NewRunRepository creates a new run repository
func NewRunRepository() *RunRepository {
	return &RunRepository{
		db: database.DB,
	}
}

// NewRunRepositoryWithDB creates a new run repository with a specific database connection
func NewRunRepositoryWithDB(db *sql.DB) *RunRepository {
	return &RunRepository{
		db: db,
	}
}

// CreateRun stores a freshly created run
func (r *RunRepository) CreateRun(run *models.Run) error {
	query := `
		INSERT INTO runs (id, reference, journey, base_url, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	now := time.Now()
	_, err := r.db.Exec(query,
		run.ID,
		run.Reference,
		run.Journey,
		run.BaseURL,
		run.Status,
		now,
	)

	if err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}

	run.CreatedAt = now

	return nil
}

// GetRunByReference retrieves a run by its reference
func (r *RunRepository) GetRunByReference(reference string) (*models.Run, error) {
	query := `
		SELECT id, reference, journey, base_url, status,
		       COALESCE(failure, ''), COALESCE(screenshot, ''),
		       created_at, started_at, finished_at
		FROM runs
		WHERE reference = $1
	`

	run := &models.Run{}
	var startedAt, finishedAt sql.NullTime
	err := r.db.QueryRow(query, reference).Scan(
		&run.ID,
		&run.Reference,
		&run.Journey,
		&run.BaseURL,
		&run.Status,
		&run.Failure,
		&run.Screenshot,
		&run.CreatedAt,
		&startedAt,
		&finishedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run not found")
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	if startedAt.Valid {
		run.StartedAt = startedAt.Time
	}
	if finishedAt.Valid {
		run.FinishedAt = finishedAt.Time
	}

	return run, nil
}

// FinishRun persists the terminal state of a run
func (r *RunRepository) FinishRun(run *models.Run) error {
	query := `
		UPDATE runs
		SET status = $1, failure = $2, screenshot = $3, started_at = $4, finished_at = $5
		WHERE reference = $6
	`

	result, err := r.db.Exec(query,
		run.Status,
		run.Failure,
		run.Screenshot,
		nullTime(run.StartedAt),
		nullTime(run.FinishedAt),
		run.Reference,
	)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("run not found")
	}

	return nil
}

// ListRecentRuns retrieves the most recently created runs, newest first
func (r *RunRepository) ListRecentRuns(limit int) ([]*models.Run, error) {
	query := `
		SELECT id, reference, journey, base_url, status,
		       COALESCE(failure, ''), COALESCE(screenshot, ''),
		       created_at, started_at, finished_at
		FROM runs
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*models.Run
	for rows.Next() {
		run := &models.Run{}
		var startedAt, finishedAt sql.NullTime
		err := rows.Scan(
			&run.ID,
			&run.Reference,
			&run.Journey,
			&run.BaseURL,
			&run.Status,
			&run.Failure,
			&run.Screenshot,
			&run.CreatedAt,
			&startedAt,
			&finishedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if startedAt.Valid {
			run.StartedAt = startedAt.Time
		}
		if finishedAt.Valid {
			run.FinishedAt = finishedAt.Time
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}

	return runs, nil
}

// nullTime maps the zero time to NULL so unstarted runs keep empty columns
func nullTime(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t
}
