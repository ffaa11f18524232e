package database

import (
	"fmt"
	"log"
)

// RunMigrations creates the necessary database tables
func RunMigrations() error {
	if DB == nil {
		return fmt.Errorf("database connection not initialized")
	}

	// Create runs table
	createRunsTable := `
	CREATE TABLE IF NOT EXISTS runs (
		id UUID PRIMARY KEY,
		reference VARCHAR(255) UNIQUE NOT NULL,
		journey VARCHAR(255) NOT NULL,
		base_url VARCHAR(512) NOT NULL,
		status VARCHAR(50) NOT NULL,
		failure TEXT,
		screenshot VARCHAR(512),
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		started_at TIMESTAMP,
		finished_at TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_runs_reference ON runs(reference);
	CREATE INDEX IF NOT EXISTS idx_runs_journey ON runs(journey);
	CREATE INDEX IF NOT EXISTS idx_runs_status ON runs(status);
	`

	_, err := DB.Exec(createRunsTable)
	if err != nil {
		return fmt.Errorf("failed to create runs table: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}
