package evaluator

import (
	"context"

	"github.com/Snorps/better-medical-alerts/internal/domain/alert"
	"github.com/Snorps/better-medical-alerts/internal/domain/health"
	"github.com/Snorps/better-medical-alerts/internal/logger"
)

// aggregate groups the roster by category, keeping roster order and the
// first occurrence of each actor ID. Actors without an ID are only
// deduplicated by identity.
func (e *Evaluator) aggregate(ctx context.Context, roster *health.Roster) map[alert.Category][]*health.Actor {
	groups := make(map[alert.Category][]*health.Actor, len(alert.Categories))
	if roster == nil {
		return groups
	}

	seen := make(map[string]struct{}, len(roster.Actors))
	seenAnonymous := make(map[*health.Actor]struct{})

	for _, actor := range roster.Actors {
		if actor == nil {
			continue
		}

		if actor.ID == "" {
			if _, dup := seenAnonymous[actor]; dup {
				continue
			}

			seenAnonymous[actor] = struct{}{}
		} else {
			if _, dup := seen[actor.ID]; dup {
				continue
			}

			seen[actor.ID] = struct{}{}
		}

		if IsExempt(roster, actor) {
			logger.DebugKV(ctx, "Actor exempt from medical alerts", "actor", actor.ID)

			continue
		}

		category, ok := e.Classify(actor)
		if !ok {
			continue
		}

		logger.DebugKV(ctx, "Actor alerted", "actor", actor.ID, "category", category.String())

		groups[category] = append(groups[category], actor)
	}

	return groups
}
