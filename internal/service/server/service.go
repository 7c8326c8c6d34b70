package server

import (
	"context"
	"errors"
	"sync"

	"github.com/Snorps/better-medical-alerts/internal/domain/alert"
	"github.com/Snorps/better-medical-alerts/internal/domain/health"
	"github.com/Snorps/better-medical-alerts/internal/logger"
	"github.com/Snorps/better-medical-alerts/internal/metrics"
	repo "github.com/Snorps/better-medical-alerts/internal/repository/snapshot"
)

// rosterEvaluator is the part of the evaluator the service depends on.
type rosterEvaluator interface {
	Evaluate(ctx context.Context, roster *health.Roster) *alert.Report
}

// service encapsulates evaluation, metrics and the last watched report.
// It is unexported to keep the transport decoupled from the implementation.
type service struct {
	// evaluator classifies rosters.
	evaluator rosterEvaluator
	// recorder accumulates evaluation statistics.
	recorder *metrics.Recorder
	// metricsFile is the optional Prometheus textfile path.
	metricsFile string

	// last is the report of the most recent watched snapshot.
	last *alert.Report
	// mu protects concurrent access to last.
	mu sync.RWMutex
}

// newService creates a service and evaluates the snapshot the repository
// already holds, if any. A snapshot that fails to load is logged and the
// service starts without a report.
func newService(
	ctx context.Context,
	evaluator rosterEvaluator,
	repository repo.Repository,
	metricsFile string,
) *service {
	s := &service{
		evaluator:   evaluator,
		recorder:    metrics.NewRecorder(),
		metricsFile: metricsFile,
	}

	if repository == nil {
		return s
	}

	roster, err := repository.Load(ctx)

	switch {
	case err == nil:
		s.Refresh(ctx, roster)
	case errors.Is(err, repo.ErrNotFound):
		logger.Info(ctx, "No snapshot yet, waiting for the game to write one")
	default:
		logger.WarnKV(ctx, "Initial snapshot could not be loaded", "error", err)
	}

	return s
}

// Evaluate classifies an ad-hoc roster. The watched report is left untouched.
func (s *service) Evaluate(ctx context.Context, roster *health.Roster) (*alert.Report, error) {
	return s.evaluate(ctx, roster), nil
}

// Refresh evaluates a watched snapshot and makes it the last report.
func (s *service) Refresh(ctx context.Context, roster *health.Roster) {
	report := s.evaluate(ctx, roster)

	s.mu.Lock()
	s.last = report
	s.mu.Unlock()

	firing := make([]string, 0, len(alert.Categories))
	for _, res := range report.Firing() {
		firing = append(firing, res.Category.String())
	}

	logger.InfoKV(ctx, "Snapshot evaluated", "tick", report.Tick, "firing", firing)
}

// LastReport returns the report of the last watched snapshot.
func (s *service) LastReport(context.Context) (*alert.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.last == nil {
		return nil, alert.ErrNoReport
	}

	return s.last, nil
}

func (s *service) evaluate(ctx context.Context, roster *health.Roster) *alert.Report {
	report := s.evaluator.Evaluate(ctx, roster)

	actors := 0
	if roster != nil {
		actors = len(roster.Actors)
	}

	s.recorder.Observe(report, actors)

	if s.metricsFile != "" {
		if err := s.recorder.WriteFile(s.metricsFile); err != nil {
			logger.ErrorKV(ctx, "Failed to write metrics file", "path", s.metricsFile, "error", err)
		}
	}

	return report
}
