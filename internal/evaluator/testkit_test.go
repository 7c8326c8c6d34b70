package evaluator

import "github.com/Snorps/better-medical-alerts/internal/domain/health"

// fixedEstimator returns a preset ticks-to-death per actor ID.
type fixedEstimator map[string]int

// TicksUntilDeath implements BloodLossEstimator.
func (f fixedEstimator) TicksUntilDeath(actor *health.Actor) int {
	if ticks, ok := f[actor.ID]; ok {
		return ticks
	}

	return 1 << 30
}

// flags is a static FeatureFlags implementation.
type flags map[string]bool

// FeatureActive implements FeatureFlags.
func (f flags) FeatureActive(name string) bool { return f[name] }

func bloodLoss(severity float64) *health.Condition {
	return &health.Condition{
		Kind:     health.KindBloodLoss,
		Label:    "blood loss",
		Stage:    &health.Stage{Label: "severe", LifeThreatening: true},
		Severity: severity,
	}
}

func infection(severity, immunity, immunityPerTick, severityPerDay float64) *health.Condition {
	return &health.Condition{
		Kind:     health.KindWoundInfection,
		Label:    "infection",
		Stage:    &health.Stage{Label: "major", LifeThreatening: true},
		Severity: severity,
		BodyPart: "left-leg",
		Immunity: &health.ImmunityProcess{
			Immunity:        immunity,
			ImmunityPerTick: immunityPerTick,
			SeverityPerDay:  severityPerDay,
		},
	}
}

func lifeThreateningOn(part string) *health.Condition {
	return &health.Condition{
		Kind:     health.KindOther,
		Label:    "plague",
		Stage:    &health.Stage{Label: "extreme", LifeThreatening: true},
		Severity: 0.8,
		BodyPart: part,
	}
}

func actor(id string, conditions ...*health.Condition) *health.Actor {
	return &health.Actor{
		ID:           id,
		Name:         id + " Full",
		ShortName:    id,
		CoreBodyPart: "torso",
		Conditions:   conditions,
	}
}

// fatalInfection is a wound infection that wins the race at 1000 ticks per day.
func fatalInfection() *health.Condition {
	return infection(0.3, 0.2, 0.00001, 0.1)
}

// containedInfection is a wound infection the immune system wins at 1000 ticks per day.
func containedInfection() *health.Condition {
	return infection(0.3, 0.2, 0.0001, 0.01)
}
