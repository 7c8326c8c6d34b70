package evaluator

import (
	"context"
	"time"

	"github.com/Snorps/better-medical-alerts/internal/domain/alert"
	"github.com/Snorps/better-medical-alerts/internal/domain/health"
	"github.com/Snorps/better-medical-alerts/internal/i18n"
	"github.com/Snorps/better-medical-alerts/internal/logger"
)

const (
	// DefaultBleedOutThreshold is one in-game day at the reference tick rate.
	DefaultBleedOutThreshold = 20000
	// DefaultTicksPerDay is the game's day length.
	DefaultTicksPerDay = 60000
)

// FeatureFlags answers whether optional game content is enabled.
type FeatureFlags interface {
	FeatureActive(name string) bool
}

// BloodLossEstimator estimates how many ticks an actor has left before
// dying of blood loss.
type BloodLossEstimator interface {
	TicksUntilDeath(actor *health.Actor) int
}

// Translator resolves a translation key with positional arguments.
type Translator interface {
	Translate(key string, args ...string) string
}

// Evaluator computes alert reports from roster snapshots.
type Evaluator struct {
	// estimator projects time to death by blood loss.
	estimator BloodLossEstimator
	// translator renders labels and explanations.
	translator Translator
	// bleedOutThreshold is the exclusive upper bound on ticks to death.
	bleedOutThreshold int
	// ticksPerDay converts per-day severity rates into per-tick rates.
	ticksPerDay float64
	// now is the clock stamped on reports.
	now func() time.Time
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithEstimator replaces the blood loss estimator.
func WithEstimator(estimator BloodLossEstimator) Option {
	return func(e *Evaluator) {
		if estimator != nil {
			e.estimator = estimator
		}
	}
}

// WithTranslator replaces the translator.
func WithTranslator(translator Translator) Option {
	return func(e *Evaluator) {
		if translator != nil {
			e.translator = translator
		}
	}
}

// WithBleedOutThreshold sets the bleed-out threshold in ticks.
func WithBleedOutThreshold(ticks int) Option {
	return func(e *Evaluator) {
		if ticks > 0 {
			e.bleedOutThreshold = ticks
		}
	}
}

// WithTicksPerDay sets the day length used by the projections.
// It also applies to the default estimator.
func WithTicksPerDay(ticks int) Option {
	return func(e *Evaluator) {
		if ticks > 0 {
			e.ticksPerDay = float64(ticks)
		}
	}
}

// WithClock sets the clock stamped on reports.
func WithClock(now func() time.Time) Option {
	return func(e *Evaluator) {
		if now != nil {
			e.now = now
		}
	}
}

// New builds an Evaluator with the English catalog, the snapshot estimator
// and the default thresholds, then applies the options.
func New(opts ...Option) *Evaluator {
	e := &Evaluator{
		translator:        i18n.Default(),
		bleedOutThreshold: DefaultBleedOutThreshold,
		ticksPerDay:       DefaultTicksPerDay,
		now:               time.Now,
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.estimator == nil {
		e.estimator = SnapshotEstimator{TicksPerDay: e.ticksPerDay}
	}

	return e
}

// Evaluate classifies every actor of the roster and renders the three alerts.
// A nil roster yields three empty results.
func (e *Evaluator) Evaluate(ctx context.Context, roster *health.Roster) *alert.Report {
	ctx = logger.WithName(ctx, "evaluator")

	report := &alert.Report{
		EvaluatedAt: e.now(),
		Results:     make([]*alert.Result, 0, len(alert.Categories)),
	}

	if roster != nil {
		report.Tick = roster.Tick
	}

	groups := e.aggregate(ctx, roster)

	for _, category := range alert.Categories {
		result := alert.NewResult(category, groups[category])
		e.explain(result)
		report.Results = append(report.Results, result)
	}

	logger.DebugKV(ctx, "Roster evaluated",
		"tick", report.Tick,
		"bleeding", len(groups[alert.Bleeding]),
		"infection", len(groups[alert.Infection]),
		"life_threatening", len(groups[alert.LifeThreatening]),
	)

	return report
}
