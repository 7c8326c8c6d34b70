package snapshot

import (
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/Snorps/better-medical-alerts/internal/domain/health"
)

// EncodeRoster converts a roster into a Struct.
func EncodeRoster(roster *health.Roster) (*structpb.Struct, error) {
	if roster == nil {
		roster = new(health.Roster)
	}

	features := make([]any, 0, len(roster.ActiveFeatures))
	for _, f := range roster.ActiveFeatures {
		features = append(features, f)
	}

	actors := make([]any, 0, len(roster.Actors))
	for _, a := range roster.Actors {
		if a == nil {
			continue
		}

		actors = append(actors, encodeActor(a))
	}

	s, err := structpb.NewStruct(map[string]any{
		"tick":            roster.Tick,
		"active_features": features,
		"actors":          actors,
	})
	if err != nil {
		return nil, fmt.Errorf("encode roster: %w", err)
	}

	return s, nil
}

func encodeActor(a *health.Actor) map[string]any {
	conditions := make([]any, 0, len(a.Conditions))
	for _, c := range a.Conditions {
		if c == nil {
			continue
		}

		conditions = append(conditions, encodeCondition(c))
	}

	out := map[string]any{
		"id":                 a.ID,
		"name":               a.Name,
		"short_name":         a.ShortName,
		"deathresting":       a.Deathresting(),
		"deathless":          a.Deathless(),
		"core_body_part":     a.CoreBodyPart,
		"bleed_rate_per_day": a.BleedRatePerDay,
		"conditions":         conditions,
	}

	if a.TicksUntilBloodLossDeath != nil {
		out["ticks_until_blood_loss_death"] = *a.TicksUntilBloodLossDeath
	}

	return out
}

func encodeCondition(c *health.Condition) map[string]any {
	out := map[string]any{
		"kind":     c.Kind.String(),
		"label":    c.Label,
		"severity": c.Severity,
	}

	if c.BodyPart != "" {
		out["body_part"] = c.BodyPart
	}

	if c.Stage != nil {
		out["stage"] = map[string]any{
			"label":            c.Stage.Label,
			"life_threatening": c.Stage.LifeThreatening,
		}
	}

	if c.Immunity != nil {
		out["immunity"] = map[string]any{
			"immunity":          c.Immunity.Immunity,
			"immunity_per_tick": c.Immunity.ImmunityPerTick,
			"severity_per_day":  c.Immunity.SeverityPerDay,
		}
	}

	return out
}

// DecodeRoster converts a Struct into a roster.
func DecodeRoster(s *structpb.Struct) (*health.Roster, error) {
	root := newObject("", s)

	tick, err := root.integer("tick")
	if err != nil {
		return nil, err
	}

	features, err := root.stringList("active_features")
	if err != nil {
		return nil, err
	}

	values, err := root.list("actors")
	if err != nil {
		return nil, err
	}

	roster := &health.Roster{
		Tick:           tick,
		ActiveFeatures: features,
		Actors:         make([]*health.Actor, 0, len(values)),
	}

	for i, v := range values {
		o, err := element("actors", i, v)
		if err != nil {
			return nil, err
		}

		a, err := decodeActor(o)
		if err != nil {
			return nil, err
		}

		roster.Actors = append(roster.Actors, a)
	}

	return roster, nil
}

//nolint:cyclop // Flat field-by-field decoding.
func decodeActor(o object) (*health.Actor, error) {
	var (
		a   health.Actor
		err error
	)

	if a.ID, err = o.requiredStr("id"); err != nil {
		return nil, err
	}

	if a.Name, err = o.str("name"); err != nil {
		return nil, err
	}

	if a.ShortName, err = o.str("short_name"); err != nil {
		return nil, err
	}

	if a.CoreBodyPart, err = o.str("core_body_part"); err != nil {
		return nil, err
	}

	if a.BleedRatePerDay, err = o.num("bleed_rate_per_day"); err != nil {
		return nil, err
	}

	resting, err := o.boolean("deathresting")
	if err != nil {
		return nil, err
	}

	if resting {
		a.Flags |= health.FlagDeathresting
	}

	deathless, err := o.boolean("deathless")
	if err != nil {
		return nil, err
	}

	if deathless {
		a.Flags |= health.FlagDeathless
	}

	ticks, present, err := o.optTicks("ticks_until_blood_loss_death")
	if err != nil {
		return nil, err
	}

	if present {
		a.TicksUntilBloodLossDeath = &ticks
	}

	values, err := o.list("conditions")
	if err != nil {
		return nil, err
	}

	a.Conditions = make([]*health.Condition, 0, len(values))

	for i, v := range values {
		co, err := element(o.at("conditions"), i, v)
		if err != nil {
			return nil, err
		}

		c, err := decodeCondition(co)
		if err != nil {
			return nil, err
		}

		a.Conditions = append(a.Conditions, c)
	}

	return &a, nil
}

func decodeCondition(o object) (*health.Condition, error) {
	var (
		c   health.Condition
		err error
	)

	kind, err := o.str("kind")
	if err != nil {
		return nil, err
	}

	c.Kind = health.ParseKind(kind)

	if c.Label, err = o.str("label"); err != nil {
		return nil, err
	}

	if c.Severity, err = o.num("severity"); err != nil {
		return nil, err
	}

	if c.BodyPart, err = o.str("body_part"); err != nil {
		return nil, err
	}

	stage, ok, err := o.child("stage")
	if err != nil {
		return nil, err
	}

	if ok {
		c.Stage = new(health.Stage)

		if c.Stage.Label, err = stage.str("label"); err != nil {
			return nil, err
		}

		if c.Stage.LifeThreatening, err = stage.boolean("life_threatening"); err != nil {
			return nil, err
		}
	}

	immunity, ok, err := o.child("immunity")
	if err != nil {
		return nil, err
	}

	if ok {
		c.Immunity = new(health.ImmunityProcess)

		if c.Immunity.Immunity, err = immunity.num("immunity"); err != nil {
			return nil, err
		}

		if c.Immunity.ImmunityPerTick, err = immunity.num("immunity_per_tick"); err != nil {
			return nil, err
		}

		if c.Immunity.SeverityPerDay, err = immunity.num("severity_per_day"); err != nil {
			return nil, err
		}
	}

	return &c, nil
}
