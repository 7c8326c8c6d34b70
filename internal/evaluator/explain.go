package evaluator

import (
	"strings"

	"github.com/Snorps/better-medical-alerts/internal/domain/alert"
	"github.com/Snorps/better-medical-alerts/internal/domain/health"
)

// memberLinePrefix starts every line of the member list.
const memberLinePrefix = "  - "

// FormatMembers renders one "  - name" line per actor.
func FormatMembers(actors []*health.Actor) string {
	var sb strings.Builder

	for _, a := range actors {
		sb.WriteString(memberLinePrefix)
		sb.WriteString(a.DisplayName())
		sb.WriteByte('\n')
	}

	return sb.String()
}

// OffCore reports whether any actor has a condition whose active stage is
// life-threatening on a body part other than the actor's core part.
// Immunity is not consulted.
func OffCore(actors []*health.Actor) bool {
	for _, a := range actors {
		for _, c := range a.Conditions {
			if c.LifeThreatening() && c.BodyPart != "" && c.BodyPart != a.CoreBodyPart {
				return true
			}
		}
	}

	return false
}

// explain fills the label, off-core flag and explanation of a result.
func (e *Evaluator) explain(result *alert.Result) {
	actors := result.Actors()

	result.OffCore = OffCore(actors)
	result.Label = e.translator.Translate(result.Category.LabelKey())
	result.Explanation = e.translator.Translate(
		result.Category.DescriptionKey(result.OffCore),
		FormatMembers(actors),
	)
}
