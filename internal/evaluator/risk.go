package evaluator

import (
	"math"

	"github.com/Snorps/better-medical-alerts/internal/domain/health"
)

// minBleedRatePerDay is the rate below which the game treats an actor as not bleeding.
const minBleedRatePerDay = 0.0001

// SnapshotEstimator estimates ticks to death from the snapshot itself.
// It trusts the game's own figure when the snapshot carries one and
// otherwise projects the remaining blood at the current bleed rate.
type SnapshotEstimator struct {
	// TicksPerDay converts the per-day bleed rate into ticks.
	TicksPerDay float64
}

// TicksUntilDeath implements BloodLossEstimator.
func (s SnapshotEstimator) TicksUntilDeath(actor *health.Actor) int {
	if actor.TicksUntilBloodLossDeath != nil {
		return *actor.TicksUntilBloodLossDeath
	}

	rate := actor.BleedRatePerDay
	if math.IsNaN(rate) || rate < minBleedRatePerDay {
		return math.MaxInt32
	}

	var lost float64
	if c := actor.FirstOfKind(health.KindBloodLoss); c != nil {
		lost = c.Severity
	}

	ticksPerDay := s.TicksPerDay
	if ticksPerDay <= 0 {
		ticksPerDay = DefaultTicksPerDay
	}

	ticks := (1 - lost) / rate * ticksPerDay

	switch {
	case ticks <= 0:
		return 0
	case ticks >= math.MaxInt32:
		return math.MaxInt32
	default:
		return int(ticks)
	}
}

// bleedingOut reports whether the actor has a counting blood loss condition
// and will die of it within the threshold.
func (e *Evaluator) bleedingOut(actor *health.Actor) bool {
	if actor.FirstOfKind(health.KindBloodLoss) == nil {
		return false
	}

	return e.estimator.TicksUntilDeath(actor) < e.bleedOutThreshold
}

// InfectionProjection is the outcome of the immunity-versus-severity race
// for one wound infection.
type InfectionProjection struct {
	// ImmunityPerTick is the immunity gained per tick.
	ImmunityPerTick float64
	// SeverityPerTick is the severity gained per tick.
	SeverityPerTick float64
	// RemainingImmunityTicks is the time until immunity completes, +Inf if never.
	RemainingImmunityTicks float64
	// RemainingSeverityTicks is the time until severity peaks, +Inf if never.
	RemainingSeverityTicks float64
	// Deadly is set when severity is projected to peak first.
	Deadly bool
}

// ProjectInfection races the immune system against the disease.
//
// A non-positive immunity rate means immunity never completes; a
// non-positive severity rate means the disease never worsens and cannot win.
// NaN rates or levels never produce a deadly projection.
func ProjectInfection(condition *health.Condition, ticksPerDay float64) InfectionProjection {
	process := condition.Immunity

	p := InfectionProjection{
		ImmunityPerTick:        process.ImmunityPerTick,
		RemainingImmunityTicks: math.Inf(1),
		RemainingSeverityTicks: math.Inf(1),
	}

	if ticksPerDay > 0 {
		p.SeverityPerTick = process.SeverityPerDay / ticksPerDay
	}

	if p.ImmunityPerTick > 0 {
		p.RemainingImmunityTicks = (1 - process.Immunity) / p.ImmunityPerTick
	}

	if p.SeverityPerTick > 0 {
		p.RemainingSeverityTicks = (1 - condition.Severity) / p.SeverityPerTick
	}

	p.Deadly = p.SeverityPerTick > 0 &&
		!math.IsNaN(p.ImmunityPerTick) &&
		!math.IsNaN(p.RemainingImmunityTicks) &&
		!math.IsNaN(p.RemainingSeverityTicks) &&
		p.RemainingImmunityTicks > p.RemainingSeverityTicks

	return p
}

// deadlyInfection reports whether any counting wound infection with an
// immunity process is projected to kill before immunity completes.
func (e *Evaluator) deadlyInfection(actor *health.Actor) bool {
	for _, c := range actor.Conditions {
		if c == nil || c.Kind != health.KindWoundInfection || !c.Counts() || c.Immunity == nil {
			continue
		}

		if ProjectInfection(c, e.ticksPerDay).Deadly {
			return true
		}
	}

	return false
}
