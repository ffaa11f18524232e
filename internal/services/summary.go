package services

import (
	"fmt"
	"time"

	"github.com/trendops/storecheck/internal/models"
)

// Summary aggregates the outcome of a batch of runs
type Summary struct {
	Total    int
	Passed   int
	Failed   int
	Skipped  int
	Duration time.Duration
}

// Summarize folds a batch of runs into counts per outcome
func Summarize(runs []*models.Run) Summary {
	var summary Summary
	for _, run := range runs {
		summary.Total++
		switch {
		case run.IsPassed():
			summary.Passed++
		case run.IsFailed():
			summary.Failed++
		case run.IsSkipped():
			summary.Skipped++
		}
		summary.Duration += run.Duration()
	}
	return summary
}

// AllPassed returns true when the batch ran and nothing failed
func (s Summary) AllPassed() bool {
	return s.Total > 0 && s.Failed == 0
}

// String renders the one line outcome printed at the end of a suite
func (s Summary) String() string {
	return fmt.Sprintf("%d journeys: %d passed, %d failed, %d skipped in %s",
		s.Total, s.Passed, s.Failed, s.Skipped, s.Duration.Round(time.Millisecond))
}
