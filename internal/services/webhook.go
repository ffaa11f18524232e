package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/trendops/storecheck/internal/models"
)

// Notifier announces finished suites to an external listener
type Notifier interface {
	NotifySuiteFinished(report *SuiteReport) error
}

// HTTPNotifier implements Notifier by posting the report to a webhook
type HTTPNotifier struct {
	webhookURL string
	httpClient *http.Client
}

// NewNotifier creates a webhook notifier for the given URL
func NewNotifier(webhookURL string) Notifier {
	return &HTTPNotifier{
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// SuiteReport represents the payload sent after a suite finishes
type SuiteReport struct {
	Suite          string      `json:"suite"`
	BaseURL        string      `json:"baseUrl"`
	Total          int         `json:"total"`
	Passed         int         `json:"passed"`
	Failed         int         `json:"failed"`
	Skipped        int         `json:"skipped"`
	DurationMillis int64       `json:"durationMillis"`
	FinishedAt     time.Time   `json:"finishedAt"`
	Runs           []RunReport `json:"runs"`
}

// RunReport represents one run inside a suite report
type RunReport struct {
	Journey        string `json:"journey"`
	Reference      string `json:"reference"`
	Status         string `json:"status"`
	Failure        string `json:"failure,omitempty"`
	Screenshot     string `json:"screenshot,omitempty"`
	DurationMillis int64  `json:"durationMillis"`
}

// BuildSuiteReport assembles the webhook payload for a finished batch of runs
func BuildSuiteReport(suite, baseURL string, runs []*models.Run) *SuiteReport {
	summary := Summarize(runs)

	report := &SuiteReport{
		Suite:          suite,
		BaseURL:        baseURL,
		Total:          summary.Total,
		Passed:         summary.Passed,
		Failed:         summary.Failed,
		Skipped:        summary.Skipped,
		DurationMillis: summary.Duration.Milliseconds(),
		FinishedAt:     time.Now(),
		Runs:           make([]RunReport, 0, len(runs)),
	}

	for _, run := range runs {
		report.Runs = append(report.Runs, RunReport{
			Journey:        run.Journey,
			Reference:      run.Reference,
			Status:         string(run.Status),
			Failure:        run.Failure,
			Screenshot:     run.Screenshot,
			DurationMillis: run.Duration().Milliseconds(),
		})
	}

	return report
}

// NotifySuiteFinished posts the suite report to the webhook
func (n *HTTPNotifier) NotifySuiteFinished(report *SuiteReport) error {
	// Marshal request
	reqBody, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	// Create HTTP request
	httpReq, err := http.NewRequest("POST", n.webhookURL, bytes.NewBuffer(reqBody))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	// Set headers
	httpReq.Header.Set("Content-Type", "application/json")

	// Send request
	resp, err := n.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	// Read response body
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	// Check status code
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		log.Printf("Webhook error (status %d): %s", resp.StatusCode, string(body))
		return fmt.Errorf("webhook returned status %d: %s", resp.StatusCode, string(body))
	}

	log.Printf("Suite report delivered (status %d)", resp.StatusCode)

	return nil
}
