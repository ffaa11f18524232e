package journey

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/trendops/storecheck/internal/browser"
	"github.com/trendops/storecheck/internal/config"
	"github.com/trendops/storecheck/internal/models"
	"github.com/trendops/storecheck/internal/services"
)

// Runner executes journeys against one storefront and records every run.
// Journeys share the session's current tab unless Isolated is set, in which
// case each one starts on a fresh tab.
type Runner struct {
	Session  *browser.Session
	Target   config.TargetConfig
	Recorder services.Recorder
	Logger   zerolog.Logger
	Isolated bool

	// Capture takes the failure screenshot and returns its path. The CLI
	// wires screenshot capture here; nil disables it.
	Capture func(label string) (string, error)
}

// RunAll executes the journeys in order and returns their runs. A journey
// failure does not stop the remaining journeys; only a run that cannot be
// created at all aborts the loop.
func (r *Runner) RunAll(journeys []Journey) ([]*models.Run, error) {
	runs := make([]*models.Run, 0, len(journeys))
	for _, j := range journeys {
		run, err := r.runOne(j)
		if err != nil {
			return runs, err
		}
		runs = append(runs, run)
	}
	return runs, nil
}

// runOne drives a single journey through the run status machine
func (r *Runner) runOne(j Journey) (*models.Run, error) {
	run, err := models.NewRun(j.Name, r.Target.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create run for %s: %w", j.Name, err)
	}

	logger := r.Logger.With().
		Str("journey", j.Name).
		Str("reference", run.Reference).
		Logger()

	if r.Isolated {
		if _, err := r.Session.NewPage(); err != nil {
			if skipErr := run.Skip(fmt.Sprintf("could not open a fresh tab: %v", err)); skipErr != nil {
				logger.Error().Err(skipErr).Msg("marking run skipped failed")
			}
			r.recordFinish(run, logger)
			logger.Warn().Err(err).Msg("journey skipped")
			return run, nil
		}
	}

	if err := run.Start(); err != nil {
		return nil, fmt.Errorf("failed to start run %s: %w", run.Reference, err)
	}
	if err := r.Recorder.RecordStart(run); err != nil {
		logger.Warn().Err(err).Msg("recording run start failed")
	}
	logger.Info().Str("base_url", r.Target.BaseURL).Msg("journey started")

	if err := r.execute(j, logger); err != nil {
		r.finishFailed(run, err, logger)
	} else {
		if passErr := run.Pass(); passErr != nil {
			logger.Error().Err(passErr).Msg("marking run passed failed")
		}
		logger.Info().Dur("duration", run.Duration()).Msg("journey passed")
	}

	r.recordFinish(run, logger)
	return run, nil
}

// execute runs the journey body, turning panics into plain failures
func (r *Runner) execute(j Journey, logger zerolog.Logger) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("journey panicked: %v", rec)
		}
	}()

	return j.Run(&Context{
		Session: r.Session,
		Target:  r.Target,
		Log:     logger,
	})
}

// finishFailed attaches the failure screenshot when capture is wired and
// moves the run to failed
func (r *Runner) finishFailed(run *models.Run, cause error, logger zerolog.Logger) {
	if r.Capture != nil {
		if path, err := r.Capture(run.Journey); err != nil {
			logger.Warn().Err(err).Msg("failure screenshot not captured")
		} else if path != "" {
			run.AttachScreenshot(path)
			logger.Info().Str("screenshot", path).Msg("failure screenshot captured")
		}
	}

	reason := cause.Error()
	if reason == "" {
		reason = "journey failed"
	}
	if failErr := run.Fail(reason); failErr != nil {
		logger.Error().Err(failErr).Msg("marking run failed failed")
	}
	logger.Error().Err(cause).Msg("journey failed")
}

func (r *Runner) recordFinish(run *models.Run, logger zerolog.Logger) {
	if err := r.Recorder.RecordFinish(run); err != nil {
		logger.Warn().Err(err).Msg("recording run finish failed")
	}
}
