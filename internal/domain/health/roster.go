package health

import "slices"

// FeatureBiotech is the content expansion that introduces deathrest and the deathless gene.
const FeatureBiotech = "biotech"

// Roster is a point-in-time view of every actor the alerts should consider.
type Roster struct {
	// Tick is the game tick at which the snapshot was taken.
	Tick int64
	// ActiveFeatures lists the content expansions enabled in the game.
	ActiveFeatures []string
	// Actors is the roster in the game's iteration order.
	Actors []*Actor
}

// FeatureActive reports whether the named content expansion is enabled.
func (r *Roster) FeatureActive(name string) bool {
	return r != nil && slices.Contains(r.ActiveFeatures, name)
}

// Clone returns a deep copy of the roster.
func (r *Roster) Clone() *Roster {
	if r == nil {
		return nil
	}

	cloned := &Roster{
		Tick:           r.Tick,
		ActiveFeatures: slices.Clone(r.ActiveFeatures),
		Actors:         make([]*Actor, len(r.Actors)),
	}

	for i, a := range r.Actors {
		cloned.Actors[i] = a.Clone()
	}

	return cloned
}
