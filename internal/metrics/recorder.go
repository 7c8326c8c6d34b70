package metrics

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"google.golang.org/protobuf/proto"

	"github.com/Snorps/better-medical-alerts/internal/config"
	"github.com/Snorps/better-medical-alerts/internal/domain/alert"
)

// Metric names.
const (
	EvaluationsTotal = "medalert_evaluations_total"
	AlertMembers     = "medalert_alert_members"
	RosterActors     = "medalert_roster_actors"
	LastTick         = "medalert_last_snapshot_tick"
)

// Snapshot is a point-in-time copy of the recorder.
type Snapshot struct {
	// Evaluations is the number of rosters evaluated so far.
	Evaluations uint64
	// Actors is the roster size of the last evaluation.
	Actors int
	// Tick is the game tick of the last evaluated roster.
	Tick int64
	// Members is the member count per category in the last evaluation.
	Members map[alert.Category]int
}

// Recorder accumulates evaluation statistics. It is safe for concurrent use.
type Recorder struct {
	// mu protects every field below.
	mu sync.Mutex
	// evaluations counts Observe calls.
	evaluations uint64
	// actors is the roster size of the last evaluation.
	actors int
	// tick is the game tick of the last evaluated roster.
	tick int64
	// members is the member count per category in the last evaluation.
	members map[alert.Category]int
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		members: make(map[alert.Category]int, len(alert.Categories)),
	}
}

// Observe records one evaluation of a roster with the given number of actors.
func (r *Recorder) Observe(report *alert.Report, actors int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.evaluations++
	r.actors = actors
	r.tick = report.Tick

	for _, c := range alert.Categories {
		r.members[c] = 0
	}

	for _, res := range report.Results {
		r.members[res.Category] = len(res.Members)
	}
}

// Snapshot returns a copy of the current values.
func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		Evaluations: r.evaluations,
		Actors:      r.actors,
		Tick:        r.tick,
		Members:     make(map[alert.Category]int, len(r.members)),
	}

	for k, v := range r.members {
		out.Members[k] = v
	}

	return out
}

// Families renders the current values as metric families.
func (r *Recorder) Families() []*dto.MetricFamily {
	s := r.Snapshot()

	members := &dto.MetricFamily{
		Name: proto.String(AlertMembers),
		Help: proto.String("Actors listed by each medical alert in the last evaluation."),
		Type: dto.MetricType_GAUGE.Enum(),
	}

	for _, c := range alert.Categories {
		members.Metric = append(members.Metric, &dto.Metric{
			Label: []*dto.LabelPair{{Name: proto.String("category"), Value: proto.String(c.String())}},
			Gauge: &dto.Gauge{Value: proto.Float64(float64(s.Members[c]))},
		})
	}

	return []*dto.MetricFamily{
		{
			Name:   proto.String(EvaluationsTotal),
			Help:   proto.String("Roster evaluations performed."),
			Type:   dto.MetricType_COUNTER.Enum(),
			Metric: []*dto.Metric{{Counter: &dto.Counter{Value: proto.Float64(float64(s.Evaluations))}}},
		},
		members,
		{
			Name:   proto.String(RosterActors),
			Help:   proto.String("Actors in the last evaluated roster."),
			Type:   dto.MetricType_GAUGE.Enum(),
			Metric: []*dto.Metric{{Gauge: &dto.Gauge{Value: proto.Float64(float64(s.Actors))}}},
		},
		{
			Name:   proto.String(LastTick),
			Help:   proto.String("Game tick of the last evaluated snapshot."),
			Type:   dto.MetricType_GAUGE.Enum(),
			Metric: []*dto.Metric{{Gauge: &dto.Gauge{Value: proto.Float64(float64(s.Tick))}}},
		},
	}
}

// Write encodes the metric families in the Prometheus text format.
func (r *Recorder) Write(w io.Writer) error {
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))

	for _, mf := range r.Families() {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("encode %s: %w", mf.GetName(), err)
		}
	}

	return nil
}

// WriteFile writes the exposition to path atomically.
func (r *Recorder) WriteFile(path string) error {
	var buf bytes.Buffer
	if err := r.Write(&buf); err != nil {
		return err
	}

	path = filepath.Clean(path)
	tmp := path + ".tmp"

	if err := os.WriteFile(tmp, buf.Bytes(), config.DefaultFilePermissions); err != nil {
		return fmt.Errorf("write metrics file: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace metrics file: %w", err)
	}

	return nil
}
