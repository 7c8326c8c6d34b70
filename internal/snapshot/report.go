package snapshot

import (
	"fmt"
	"time"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/Snorps/better-medical-alerts/internal/domain/alert"
)

// EncodeReport converts a report into a Struct.
func EncodeReport(report *alert.Report) (*structpb.Struct, error) {
	if report == nil {
		report = new(alert.Report)
	}

	results := make([]any, 0, len(report.Results))
	for _, r := range report.Results {
		members := make([]any, 0, len(r.Members))
		for _, m := range r.Members {
			members = append(members, map[string]any{"id": m.ID, "name": m.Name})
		}

		results = append(results, map[string]any{
			"category":    r.Category.String(),
			"priority":    string(r.Priority),
			"label":       r.Label,
			"members":     members,
			"off_core":    r.OffCore,
			"explanation": r.Explanation,
		})
	}

	fields := map[string]any{
		"tick":    report.Tick,
		"results": results,
	}

	if !report.EvaluatedAt.IsZero() {
		fields["evaluated_at"] = report.EvaluatedAt.UTC().Format(time.RFC3339Nano)
	}

	s, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("encode report: %w", err)
	}

	return s, nil
}

// DecodeReport converts a Struct into a report. Decoded results carry
// members by ID and name only.
func DecodeReport(s *structpb.Struct) (*alert.Report, error) {
	root := newObject("", s)

	tick, err := root.integer("tick")
	if err != nil {
		return nil, err
	}

	report := &alert.Report{Tick: tick}

	evaluatedAt, err := root.str("evaluated_at")
	if err != nil {
		return nil, err
	}

	if evaluatedAt != "" {
		if report.EvaluatedAt, err = time.Parse(time.RFC3339Nano, evaluatedAt); err != nil {
			return nil, fmt.Errorf("evaluated_at: %w", err)
		}
	}

	values, err := root.list("results")
	if err != nil {
		return nil, err
	}

	for i, v := range values {
		o, err := element("results", i, v)
		if err != nil {
			return nil, err
		}

		r, err := decodeResult(o)
		if err != nil {
			return nil, err
		}

		report.Results = append(report.Results, r)
	}

	return report, nil
}

//nolint:cyclop // Flat field-by-field decoding.
func decodeResult(o object) (*alert.Result, error) {
	name, err := o.str("category")
	if err != nil {
		return nil, err
	}

	category, ok := alert.ParseCategory(name)
	if !ok {
		return nil, fmt.Errorf("%s: unknown category %q: %w", o.at("category"), name, ErrType)
	}

	r := alert.NewResult(category, nil)

	priority, err := o.str("priority")
	if err != nil {
		return nil, err
	}

	if priority != "" {
		r.Priority = alert.Priority(priority)
	}

	if r.Label, err = o.str("label"); err != nil {
		return nil, err
	}

	if r.OffCore, err = o.boolean("off_core"); err != nil {
		return nil, err
	}

	if r.Explanation, err = o.str("explanation"); err != nil {
		return nil, err
	}

	members, err := o.list("members")
	if err != nil {
		return nil, err
	}

	for i, v := range members {
		m, err := element(o.at("members"), i, v)
		if err != nil {
			return nil, err
		}

		var member alert.Member

		if member.ID, err = m.str("id"); err != nil {
			return nil, err
		}

		if member.Name, err = m.str("name"); err != nil {
			return nil, err
		}

		r.Members = append(r.Members, member)
	}

	return r, nil
}
