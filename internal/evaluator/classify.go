package evaluator

import (
	"github.com/Snorps/better-medical-alerts/internal/domain/alert"
	"github.com/Snorps/better-medical-alerts/internal/domain/health"
)

// Classify returns the single category the actor belongs to, if any.
// Exemption is not checked here; Evaluate does that once per actor.
func (e *Evaluator) Classify(actor *health.Actor) (alert.Category, bool) {
	switch {
	case e.bleedingOut(actor):
		return alert.Bleeding, true
	case e.deadlyInfection(actor):
		return alert.Infection, true
	case lifeThreatening(actor):
		return alert.LifeThreatening, true
	default:
		return 0, false
	}
}

// lifeThreatening reports whether the actor has a counting, life-threatening
// condition that is neither blood loss nor a wound infection. Those two are
// reported by their own alerts or not at all.
func lifeThreatening(actor *health.Actor) bool {
	for _, c := range actor.Conditions {
		if !c.Counts() || !c.Stage.LifeThreatening {
			continue
		}

		if c.Kind == health.KindBloodLoss || c.Kind == health.KindWoundInfection {
			continue
		}

		return true
	}

	return false
}
