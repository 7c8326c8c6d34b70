package evaluator

import "github.com/Snorps/better-medical-alerts/internal/domain/health"

// IsExempt reports whether the actor is excluded from every medical alert.
// Deathresting and deathless actors cannot die of their conditions, but only
// when the content that introduces those states is active.
func IsExempt(features FeatureFlags, actor *health.Actor) bool {
	if features == nil || !features.FeatureActive(health.FeatureBiotech) {
		return false
	}

	return actor.Deathresting() || actor.Deathless()
}
