package alert

import (
	"errors"
	"time"

	"github.com/Snorps/better-medical-alerts/internal/domain/health"
)

// ErrNoReport is returned when no roster has been evaluated yet.
var ErrNoReport = errors.New("no report available yet")

// Member is an actor listed by an alert.
type Member struct {
	// ID is the actor's roster ID.
	ID string
	// Name is the display name used in the explanation.
	Name string
}

// Result is the outcome of one category for one evaluation.
type Result struct {
	// Category is the alert category.
	Category Category
	// Priority is the display priority.
	Priority Priority
	// Label is the translated short label.
	Label string
	// Members lists the culprits in roster order, without duplicates.
	Members []Member
	// OffCore is set when a member has a life-threatening condition outside the core body part.
	OffCore bool
	// Explanation is the translated multi-line description.
	Explanation string

	// actors keeps the roster entries behind Members for in-process callers.
	actors []*health.Actor
}

// NewResult builds a result whose Members mirror the given actors.
func NewResult(category Category, actors []*health.Actor) *Result {
	members := make([]Member, 0, len(actors))
	for _, a := range actors {
		members = append(members, Member{ID: a.ID, Name: a.DisplayName()})
	}

	return &Result{
		Category: category,
		Priority: category.Priority(),
		Members:  members,
		actors:   actors,
	}
}

// Active reports whether the alert should be shown.
func (r *Result) Active() bool {
	return r != nil && len(r.Members) > 0
}

// Actors returns the roster entries behind Members. Results decoded from
// the wire have none.
func (r *Result) Actors() []*health.Actor {
	return r.actors
}

// MemberIDs returns the member IDs in order.
func (r *Result) MemberIDs() []string {
	ids := make([]string, 0, len(r.Members))
	for _, m := range r.Members {
		ids = append(ids, m.ID)
	}

	return ids
}

// Report holds the three category results of one evaluation.
type Report struct {
	// Tick is the game tick of the evaluated snapshot.
	Tick int64
	// EvaluatedAt is the wall-clock time of the evaluation.
	EvaluatedAt time.Time
	// Results holds one entry per category, in Categories order.
	Results []*Result
}

// Result returns the result of the given category, or nil.
func (r *Report) Result(c Category) *Result {
	for _, res := range r.Results {
		if res.Category == c {
			return res
		}
	}

	return nil
}

// Firing returns the results that have members.
func (r *Report) Firing() []*Result {
	out := make([]*Result, 0, len(r.Results))
	for _, res := range r.Results {
		if res.Active() {
			out = append(out, res)
		}
	}

	return out
}

// CategoryOf returns the category listing the actor, if any.
func (r *Report) CategoryOf(actorID string) (Category, bool) {
	for _, res := range r.Results {
		for _, m := range res.Members {
			if m.ID == actorID {
				return res.Category, true
			}
		}
	}

	return 0, false
}
