package health

// Flag is a bit set describing states that suspend medical alerts.
type Flag uint8

const (
	// FlagDeathresting marks an actor in deathrest (suspended).
	FlagDeathresting Flag = 1 << iota
	// FlagDeathless marks an actor carrying the deathless gene (immortal).
	FlagDeathless
)

// Has reports whether all bits of f are set.
func (s Flag) Has(f Flag) bool {
	return s&f == f
}

// Actor is a colonist or prisoner as seen by the alert engine.
type Actor struct {
	// ID uniquely identifies the actor within the roster.
	ID string
	// Name is the full name.
	Name string
	// ShortName is the name used in alert explanations.
	ShortName string
	// Flags holds the deathrest and deathless markers.
	Flags Flag
	// CoreBodyPart is the ID of the actor's core part (torso for humans).
	CoreBodyPart string
	// BleedRatePerDay is the total blood loss rate across all wounds.
	BleedRatePerDay float64
	// TicksUntilBloodLossDeath is the game's own estimate, nil when not supplied.
	TicksUntilBloodLossDeath *int
	// Conditions is the ordered list of health conditions.
	Conditions []*Condition
}

// DisplayName returns the short name, falling back to the full name and then the ID.
func (a *Actor) DisplayName() string {
	switch {
	case a.ShortName != "":
		return a.ShortName
	case a.Name != "":
		return a.Name
	default:
		return a.ID
	}
}

// Deathresting reports whether the actor is suspended in deathrest.
func (a *Actor) Deathresting() bool {
	return a.Flags.Has(FlagDeathresting)
}

// Deathless reports whether the actor carries the deathless gene.
func (a *Actor) Deathless() bool {
	return a.Flags.Has(FlagDeathless)
}

// FirstOfKind returns the first condition of the given kind that counts
// toward alerts, or nil.
func (a *Actor) FirstOfKind(kind Kind) *Condition {
	for _, c := range a.Conditions {
		if c != nil && c.Kind == kind && c.Counts() {
			return c
		}
	}

	return nil
}

// Clone returns a deep copy of the actor.
func (a *Actor) Clone() *Actor {
	if a == nil {
		return nil
	}

	cloned := *a

	if a.TicksUntilBloodLossDeath != nil {
		ticks := *a.TicksUntilBloodLossDeath
		cloned.TicksUntilBloodLossDeath = &ticks
	}

	cloned.Conditions = make([]*Condition, len(a.Conditions))
	for i, c := range a.Conditions {
		cloned.Conditions[i] = c.Clone()
	}

	return &cloned
}
