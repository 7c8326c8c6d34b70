package alert

// Category is a mutually exclusive bucket a struggling actor can fall into.
type Category int

const (
	// Bleeding is imminent death by blood loss.
	Bleeding Category = iota
	// Infection is a wound infection projected to kill before immunity completes.
	Infection
	// LifeThreatening is any other life-threatening condition.
	LifeThreatening
)

// Categories lists every category in display order.
//
//nolint:gochecknoglobals // Read-only lookup table.
var Categories = []Category{Bleeding, Infection, LifeThreatening}

// Priority tells the game how urgently to show an alert.
type Priority string

// PriorityCritical is shown in red above every other alert.
const PriorityCritical Priority = "critical"

// String returns the stable name used in logs, metrics and on the wire.
func (c Category) String() string {
	switch c {
	case Bleeding:
		return "bleeding"
	case Infection:
		return "infection"
	case LifeThreatening:
		return "life_threatening"
	default:
		return "unknown"
	}
}

// ParseCategory maps a stable name back to a Category.
func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories {
		if c.String() == s {
			return c, true
		}
	}

	return 0, false
}

// Priority returns the display priority. Every medical alert is critical.
func (c Category) Priority() Priority {
	return PriorityCritical
}

// LabelKey is the translation key of the alert's short label.
func (c Category) LabelKey() string {
	switch c {
	case Bleeding:
		return "PawnsBleedingOut"
	case Infection:
		return "PawnsInfectedDeadly"
	default:
		return "PawnsWithLifeThreateningDisease"
	}
}

// DescriptionKey is the translation key of the explanation template.
// Only the generic category has a distinct template for conditions on a
// non-core body part, which hints that amputation may help.
func (c Category) DescriptionKey(offCore bool) string {
	switch c {
	case Bleeding:
		return "PawnsBleedingOutDesc"
	case Infection:
		return "PawnsInfectedDeadlyDesc"
	default:
		if offCore {
			return "PawnsWithLifeThreateningDiseaseAmputationDesc"
		}

		return "PawnsWithLifeThreateningDiseaseDesc"
	}
}
