package health

// Kind tags a condition with the part of the fixed vocabulary the engine cares about.
type Kind int

const (
	// KindOther is any condition that is neither blood loss nor a wound infection.
	KindOther Kind = iota
	// KindBloodLoss is accumulated blood loss.
	KindBloodLoss
	// KindWoundInfection is an infected wound racing the immune system.
	KindWoundInfection
)

// String returns the snapshot spelling of the kind.
func (k Kind) String() string {
	switch k {
	case KindBloodLoss:
		return "blood_loss"
	case KindWoundInfection:
		return "wound_infection"
	default:
		return "other"
	}
}

// ParseKind maps a snapshot spelling back to a Kind. Unknown values are KindOther.
func ParseKind(s string) Kind {
	switch s {
	case "blood_loss":
		return KindBloodLoss
	case "wound_infection":
		return KindWoundInfection
	default:
		return KindOther
	}
}

// Stage is the currently active stage of a condition.
type Stage struct {
	// Label is the stage name shown by the game, e.g. "major".
	Label string
	// LifeThreatening marks stages that kill if left untreated.
	LifeThreatening bool
}

// ImmunityProcess is the immunity-versus-severity race attached to an infection.
type ImmunityProcess struct {
	// Immunity is the current immunity level, 0..1.
	Immunity float64
	// ImmunityPerTick is the immunity gained per tick for this condition,
	// already adjusted by the game for the actor being sick.
	ImmunityPerTick float64
	// SeverityPerDay is the severity gained per day while untreated.
	SeverityPerDay float64
}

// FullyImmune reports whether the immune system has neutralized the condition.
func (p *ImmunityProcess) FullyImmune() bool {
	return p != nil && p.Immunity >= 1
}

// Condition is one health condition of an actor.
type Condition struct {
	// Kind tags the condition.
	Kind Kind
	// Label is the display name of the condition.
	Label string
	// Stage is the active stage, nil when the condition has none.
	Stage *Stage
	// Severity is the current severity, 0 and up.
	Severity float64
	// BodyPart is the affected part ID, empty for systemic conditions.
	BodyPart string
	// Immunity is the attached immunity process, if any.
	Immunity *ImmunityProcess
}

// Active reports whether the condition currently has a stage.
func (c *Condition) Active() bool {
	return c != nil && c.Stage != nil
}

// FullyImmune reports whether the condition can no longer hurt the actor.
func (c *Condition) FullyImmune() bool {
	return c.Immunity.FullyImmune()
}

// Counts reports whether the condition may contribute to any alert:
// it has an active stage and the actor is not fully immune to it.
func (c *Condition) Counts() bool {
	return c.Active() && !c.FullyImmune()
}

// LifeThreatening reports whether the active stage is life-threatening.
func (c *Condition) LifeThreatening() bool {
	return c.Active() && c.Stage.LifeThreatening
}

// Clone returns a deep copy of the condition.
func (c *Condition) Clone() *Condition {
	if c == nil {
		return nil
	}

	cloned := *c

	if c.Stage != nil {
		stage := *c.Stage
		cloned.Stage = &stage
	}

	if c.Immunity != nil {
		immunity := *c.Immunity
		cloned.Immunity = &immunity
	}

	return &cloned
}
