package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/trendops/storecheck/internal/models"
)

func TestBuildSuiteReport(t *testing.T) {
	start := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	runs := []*models.Run{
		{
			Reference:  "RUN-search-laptop-1",
			Journey:    "search-laptop",
			Status:     models.RunStatusPassed,
			StartedAt:  start,
			FinishedAt: start.Add(2 * time.Second),
		},
		{
			Reference:  "RUN-add-to-cart-1",
			Journey:    "add-to-cart",
			Status:     models.RunStatusFailed,
			Failure:    "cart stayed empty",
			StartedAt:  start,
			FinishedAt: start.Add(4 * time.Second),
		},
	}

	report := BuildSuiteReport("smoke", "https://www.trendyol.com", runs)

	if report.Suite != "smoke" {
		t.Errorf("Expected suite smoke, got %s", report.Suite)
	}
	if report.BaseURL != "https://www.trendyol.com" {
		t.Errorf("Expected base URL to carry over, got %s", report.BaseURL)
	}
	if report.Total != 2 || report.Passed != 1 || report.Failed != 1 || report.Skipped != 0 {
		t.Errorf("Unexpected counts: %+v", report)
	}
	if report.DurationMillis != 6000 {
		t.Errorf("Expected duration 6000ms, got %d", report.DurationMillis)
	}
	if len(report.Runs) != 2 {
		t.Fatalf("Expected 2 run reports, got %d", len(report.Runs))
	}
	if report.Runs[1].Failure != "cart stayed empty" {
		t.Errorf("Expected failure to carry over, got %q", report.Runs[1].Failure)
	}
	if report.FinishedAt.IsZero() {
		t.Error("Expected FinishedAt to be set")
	}
}

func TestHTTPNotifier_NotifySuiteFinished(t *testing.T) {
	t.Run("delivers the report", func(t *testing.T) {
		var gotMethod, gotContentType string
		var gotReport SuiteReport

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method
			gotContentType = r.Header.Get("Content-Type")
			if err := json.NewDecoder(r.Body).Decode(&gotReport); err != nil {
				t.Errorf("Failed to decode report: %v", err)
			}
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		notifier := NewNotifier(server.URL)
		report := BuildSuiteReport("smoke", "https://www.trendyol.com", []*models.Run{
			{Reference: "RUN-1", Journey: "search-laptop", Status: models.RunStatusPassed},
		})

		if err := notifier.NotifySuiteFinished(report); err != nil {
			t.Fatalf("NotifySuiteFinished() error = %v", err)
		}

		if gotMethod != http.MethodPost {
			t.Errorf("Expected POST, got %s", gotMethod)
		}
		if gotContentType != "application/json" {
			t.Errorf("Expected application/json, got %s", gotContentType)
		}
		if gotReport.Suite != "smoke" {
			t.Errorf("Expected suite smoke in payload, got %s", gotReport.Suite)
		}
		if len(gotReport.Runs) != 1 {
			t.Errorf("Expected 1 run in payload, got %d", len(gotReport.Runs))
		}
	})

	t.Run("accepts any 2xx status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusAccepted)
		}))
		defer server.Close()

		notifier := NewNotifier(server.URL)
		err := notifier.NotifySuiteFinished(&SuiteReport{Suite: "smoke"})
		if err != nil {
			t.Errorf("NotifySuiteFinished() error = %v", err)
		}
	})

	t.Run("reports non 2xx status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "listener is down", http.StatusInternalServerError)
		}))
		defer server.Close()

		notifier := NewNotifier(server.URL)
		err := notifier.NotifySuiteFinished(&SuiteReport{Suite: "smoke"})

		if err == nil {
			t.Fatal("Expected error for 500 response")
		}
		if !strings.Contains(err.Error(), "500") {
			t.Errorf("Expected status code in error, got %v", err)
		}
	})

	t.Run("reports unreachable webhook", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		notifier := NewNotifier(server.URL)
		err := notifier.NotifySuiteFinished(&SuiteReport{Suite: "smoke"})

		if err == nil {
			t.Fatal("Expected error for closed webhook endpoint")
		}
	})
}
